package codec

import (
	"ftledit/readers"
	"ftledit/types"
	"ftledit/writers"
)

// Rooms carry no count: the layout says how many there are.

func decodeRooms(r *readers.Reader, f SavedGameFeatures, layout *types.ShipLayout) ([]types.RoomState, error) {
	rooms := make([]types.RoomState, len(layout.Rooms))
	for i, shape := range layout.Rooms {
		r.Enter("room[%d]", i)
		room := &rooms[i]
		var err error
		if room.Oxygen, err = r.ReadInt(); err != nil {
			return nil, err
		}
		room.Squares = make([]types.Square, shape.SquareCount())
		for j := range room.Squares {
			r.Enter("square[%d]", j)
			sq := &room.Squares[j]
			if err := r.ReadIntsInto(&sq.FireHealth, &sq.IgnitionProgress, &sq.Opaque); err != nil {
				return nil, err
			}
			r.Leave()
		}
		if f.Extended {
			var square, direction int32
			if err := r.ReadIntsInto(&square, &direction); err != nil {
				return nil, err
			}
			station := types.Station{Square: square, Direction: types.StationDirection(direction)}
			if station != types.NoStation {
				room.Station = &station
			}
		}
		r.Leave()
	}
	return rooms, nil
}

func encodeRooms(w *writers.Writer, f SavedGameFeatures, layout *types.ShipLayout, rooms []types.RoomState) error {
	if len(rooms) != len(layout.Rooms) {
		return w.Mismatch("%d rooms, layout %s has %d", len(rooms), layout.ID, len(layout.Rooms))
	}
	for i, shape := range layout.Rooms {
		w.Enter("room[%d]", i)
		room := &rooms[i]
		if len(room.Squares) != shape.SquareCount() {
			return w.Mismatch("%d squares, layout room is %dx%d", len(room.Squares), shape.SquaresH, shape.SquaresV)
		}
		w.WriteInt(room.Oxygen)
		for _, sq := range room.Squares {
			w.WriteIntFields(sq.FireHealth, sq.IgnitionProgress, sq.Opaque)
		}
		if f.Extended {
			station := types.NoStation
			if room.Station != nil {
				station = *room.Station
			}
			w.WriteIntFields(station.Square, int32(station.Direction))
		}
		w.Leave()
	}
	return nil
}

func decodeBreach(r *readers.Reader) (types.Breach, error) {
	var b types.Breach
	err := r.ReadIntsInto(&b.X, &b.Y, &b.Health)
	return b, err
}

func encodeBreach(w *writers.Writer, b types.Breach) error {
	w.WriteIntFields(b.X, b.Y, b.Health)
	return nil
}
