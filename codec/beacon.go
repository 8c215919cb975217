package codec

import (
	"ftledit/readers"
	"ftledit/types"
	"ftledit/writers"
)

func decodeBeacon(r *readers.Reader, f SavedGameFeatures) (types.BeaconState, error) {
	var b types.BeaconState
	var err error
	if b.VisitCount, err = r.ReadInt(); err != nil {
		return b, err
	}
	if b.VisitCount > 0 {
		bg := &types.BeaconBackground{}
		if bg.StarscapeImage, err = r.ReadString(); err != nil {
			return b, err
		}
		if bg.SpriteImage, err = r.ReadString(); err != nil {
			return b, err
		}
		if err = r.ReadIntsInto(&bg.SpriteX, &bg.SpriteY, &bg.SpriteRotation); err != nil {
			return b, err
		}
		b.Background = bg
	}
	if b.Seen, err = r.ReadBool(); err != nil {
		return b, err
	}

	enemy, err := r.ReadBool()
	if err != nil {
		return b, err
	}
	if enemy {
		e := &types.BeaconEnemy{}
		if e.ShipEventID, err = r.ReadString(); err != nil {
			return b, err
		}
		if e.AutoBlueprintID, err = r.ReadString(); err != nil {
			return b, err
		}
		if e.ShipEventSeed, err = r.ReadInt(); err != nil {
			return b, err
		}
		b.Enemy = e
	}

	fleet, err := r.ReadInt()
	if err != nil {
		return b, err
	}
	b.FleetPresence = types.FleetPresence(fleet)
	if b.UnderAttack, err = r.ReadBool(); err != nil {
		return b, err
	}

	store, err := r.ReadBool()
	if err != nil {
		return b, err
	}
	if store {
		r.Enter("store")
		if b.Store, err = decodeStore(r, f); err != nil {
			return b, err
		}
		r.Leave()
	}
	return b, nil
}

func encodeBeacon(w *writers.Writer, f SavedGameFeatures, b types.BeaconState) error {
	if (b.VisitCount > 0) != (b.Background != nil) {
		return w.Mismatch("visit count %d doesn't agree with background present = %v", b.VisitCount, b.Background != nil)
	}
	w.WriteInt(b.VisitCount)
	if bg := b.Background; bg != nil {
		w.WriteString(bg.StarscapeImage)
		w.WriteString(bg.SpriteImage)
		w.WriteIntFields(bg.SpriteX, bg.SpriteY, bg.SpriteRotation)
	}
	w.WriteBool(b.Seen)

	w.WriteBool(b.Enemy != nil)
	if e := b.Enemy; e != nil {
		w.WriteString(e.ShipEventID)
		w.WriteString(e.AutoBlueprintID)
		w.WriteInt(e.ShipEventSeed)
	}

	w.WriteInt(int32(b.FleetPresence))
	w.WriteBool(b.UnderAttack)

	w.WriteBool(b.Store != nil)
	if b.Store != nil {
		w.Enter("store")
		if err := encodeStore(w, f, b.Store); err != nil {
			return err
		}
		w.Leave()
	}
	return nil
}
