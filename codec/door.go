package codec

import (
	"ftledit/readers"
	"ftledit/types"
	"ftledit/writers"
)

// Doors are written in layout order.  The map is keyed by coordinate so that
// editing doesn't depend on that order.

func doorOpaqueLen(f SavedGameFeatures) int {
	if f.Extended {
		return 1
	}
	return 0
}

func decodeDoors(r *readers.Reader, f SavedGameFeatures, layout *types.ShipLayout) (map[types.DoorCoordinate]types.DoorState, error) {
	doors := make(map[types.DoorCoordinate]types.DoorState, len(layout.Doors))
	for i, coord := range layout.Doors {
		r.Enter("door[%d]", i)
		var d types.DoorState
		var err error
		if f.Extended {
			if err = r.ReadIntsInto(&d.CurrentMaxHealth, &d.Health, &d.NominalHealth); err != nil {
				return nil, err
			}
		}
		if err = r.ReadBoolsInto(&d.Open, &d.WalkingThrough); err != nil {
			return nil, err
		}
		d.Opaque = make([]int32, doorOpaqueLen(f))
		for j := range d.Opaque {
			if d.Opaque[j], err = r.ReadInt(); err != nil {
				return nil, err
			}
		}
		doors[coord] = d
		r.Leave()
	}
	return doors, nil
}

func encodeDoors(w *writers.Writer, f SavedGameFeatures, layout *types.ShipLayout, doors map[types.DoorCoordinate]types.DoorState) error {
	if len(doors) != len(layout.Doors) {
		return w.Mismatch("%d doors, layout %s has %d", len(doors), layout.ID, len(layout.Doors))
	}
	for i, coord := range layout.Doors {
		w.Enter("door[%d]", i)
		d, ok := doors[coord]
		if !ok {
			return w.Mismatch("no state for door at %d,%d (vertical %d)", coord.X, coord.Y, coord.Vertical)
		}
		if len(d.Opaque) != doorOpaqueLen(f) {
			return w.Mismatch("door has %d opaque values, format wants %d", len(d.Opaque), doorOpaqueLen(f))
		}
		if f.Extended {
			w.WriteIntFields(d.CurrentMaxHealth, d.Health, d.NominalHealth)
		}
		w.WriteBool(d.Open)
		w.WriteBool(d.WalkingThrough)
		w.WriteIntFields(d.Opaque...)
		w.Leave()
	}
	return nil
}
