package blueprints

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"ftledit/types"
)

// The game's layout files are a keyword on one line followed by its values, one per
// line:
//
//	ROOM
//	0     id
//	14    x
//	2     y
//	2     width
//	1     height
//	DOOR
//	15    x
//	3     y
//	0     room on the left/top
//	1     room on the right/bottom
//	0     vertical
//
// Only rooms and doors matter for save files; offsets and the shield ellipse are
// read and thrown away.
var layoutKeywords = map[string]int{
	"X_OFFSET":   1,
	"Y_OFFSET":   1,
	"HORIZONTAL": 1,
	"VERTICAL":   1,
	"ELLIPSE":    4,
	"ROOM":       5,
	"DOOR":       5,
}

// ParseLayout reads a layout file.  Rooms come back in id order, doors in file
// order, which is the order a saved game writes them in.
func ParseLayout(id string, r io.Reader) (*types.ShipLayout, error) {
	lines, err := layoutLines(r)
	if err != nil {
		return nil, err
	}

	layout := &types.ShipLayout{ID: id, Rooms: []types.RoomShape{}, Doors: []types.DoorCoordinate{}}
	type numberedRoom struct {
		id    int
		shape types.RoomShape
	}
	var rooms []numberedRoom

	for i := 0; i < len(lines); {
		keyword := lines[i]
		n, ok := layoutKeywords[keyword]
		if !ok {
			return nil, fmt.Errorf("layout %s: unknown keyword %q on line %d", id, keyword, i+1)
		}
		if i+n >= len(lines) {
			return nil, fmt.Errorf("layout %s: %s on line %d needs %d values", id, keyword, i+1, n)
		}
		values := make([]int, n)
		for j := range values {
			if values[j], err = strconv.Atoi(lines[i+1+j]); err != nil {
				return nil, fmt.Errorf("layout %s: %s value on line %d: %w", id, keyword, i+2+j, err)
			}
		}
		i += n + 1

		switch keyword {
		case "ROOM":
			rooms = append(rooms, numberedRoom{values[0], types.RoomShape{X: values[1], Y: values[2], SquaresH: values[3], SquaresV: values[4]}})
		case "DOOR":
			layout.Doors = append(layout.Doors, types.DoorCoordinate{X: int32(values[0]), Y: int32(values[1]), Vertical: int32(values[4])})
		}
	}

	slices.SortFunc(rooms, func(a, b numberedRoom) int { return a.id - b.id })
	for i, room := range rooms {
		if room.id != i {
			return nil, fmt.Errorf("layout %s: room ids are not 0..%d (found %d at position %d)", id, len(rooms)-1, room.id, i)
		}
		if room.shape.SquaresH <= 0 || room.shape.SquaresV <= 0 {
			return nil, fmt.Errorf("layout %s: room %d is %dx%d", id, room.id, room.shape.SquaresH, room.shape.SquaresV)
		}
		layout.Rooms = append(layout.Rooms, room.shape)
	}
	return layout, nil
}

func layoutLines(r io.Reader) ([]string, error) {
	var out []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			out = append(out, line)
		}
	}
	return out, scanner.Err()
}
