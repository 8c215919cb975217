package types

// ShipBlueprint is the part of a ship definition the codec needs: the byte stream
// does not say how many system records a ship has, the blueprint does.
type ShipBlueprint struct {
	ID          string
	LayoutID    string
	WeaponSlots int
	DroneSlots  int

	// Number of rooms each installed system occupies.  Missing entries mean the
	// system is not installed, which still costs one (empty) record on disk.
	SystemRooms map[SystemType]int
}

// SystemRecords is how many system records of type t a ship of this blueprint writes.
func (bp *ShipBlueprint) SystemRecords(t SystemType) int {
	if n := bp.SystemRooms[t]; n > 1 {
		return n
	}
	return 1
}

// ShipLayout is the floor plan: room sizes and door positions.
type ShipLayout struct {
	ID    string
	Rooms []RoomShape // in room-id order
	Doors []DoorCoordinate
}

type RoomShape struct {
	X, Y     int
	SquaresH int // width in squares
	SquaresV int // height in squares
}

func (r RoomShape) SquareCount() int {
	return r.SquaresH * r.SquaresV
}
