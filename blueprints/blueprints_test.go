package blueprints

import (
	"errors"
	"strings"
	"testing"

	"ftledit/types"
)

func TestLoad(t *testing.T) {
	c, err := Load("testdata")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if ids := c.BlueprintIDs(); len(ids) != 2 || ids[0] != "TEST_CRUISER" || ids[1] != "TEST_SCOUT" {
		t.Errorf("BlueprintIDs = %v", ids)
	}

	bp, err := c.ShipBlueprint("TEST_CRUISER")
	if err != nil {
		t.Fatalf("ShipBlueprint: %v", err)
	}
	if bp.LayoutID != "test_cruiser" || bp.WeaponSlots != 3 || bp.DroneSlots != 2 {
		t.Errorf("unexpected blueprint %+v", bp)
	}
	if got := bp.SystemRecords(types.SystemArtillery); got != 2 {
		t.Errorf("artillery records = %d, want 2", got)
	}
	if got := bp.SystemRecords(types.SystemHacking); got != 1 {
		t.Errorf("hacking records = %d, want 1", got)
	}

	layout, err := c.ShipLayout(bp.LayoutID)
	if err != nil {
		t.Fatalf("ShipLayout: %v", err)
	}
	wantSquares := []int{4, 2, 2, 2}
	if len(layout.Rooms) != len(wantSquares) {
		t.Fatalf("%d rooms, want %d", len(layout.Rooms), len(wantSquares))
	}
	for i, want := range wantSquares {
		if got := layout.Rooms[i].SquareCount(); got != want {
			t.Errorf("room %d has %d squares, want %d", i, got, want)
		}
	}
	wantDoors := []types.DoorCoordinate{{X: 2, Y: 0, Vertical: 1}, {X: 4, Y: 0, Vertical: 1}, {X: 2, Y: 1, Vertical: 0}}
	if len(layout.Doors) != len(wantDoors) {
		t.Fatalf("%d doors, want %d", len(layout.Doors), len(wantDoors))
	}
	for i := range wantDoors {
		if layout.Doors[i] != wantDoors[i] {
			t.Errorf("door %d = %v, want %v", i, layout.Doors[i], wantDoors[i])
		}
	}

	again, _ := c.ShipLayout(bp.LayoutID)
	if again != layout {
		t.Errorf("layout was not cached")
	}
}

func TestNotFound(t *testing.T) {
	c, err := Load("testdata")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := c.ShipBlueprint("NOPE"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing blueprint: got %v", err)
	}
	if _, err := c.ShipLayout("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing layout: got %v", err)
	}
	if _, err := New().ShipLayout("test_cruiser"); !errors.Is(err, ErrNotFound) {
		t.Errorf("in-memory catalog should not touch the disk: got %v", err)
	}
}

func TestParseLayoutErrors(t *testing.T) {
	tests := []struct {
		name   string
		layout string
		want   string
	}{
		{"unknown keyword", "ROOM\n0\n0\n0\n1\n1\nWINDOW\n1\n", "unknown keyword"},
		{"short room", "ROOM\n0\n0\n0\n", "needs 5 values"},
		{"not a number", "ROOM\n0\nzero\n0\n1\n1\n", "ROOM value on line 3"},
		{"gap in ids", "ROOM\n0\n0\n0\n1\n1\nROOM\n2\n1\n0\n1\n1\n", "room ids"},
		{"empty room", "ROOM\n0\n0\n0\n0\n1\n", "is 0x1"},
	}
	for _, test := range tests {
		_, err := ParseLayout("bad", strings.NewReader(test.layout))
		if err == nil || !strings.Contains(err.Error(), test.want) {
			t.Errorf("%s: got %v, want error containing %q", test.name, err, test.want)
		}
	}
}

func TestBadBlueprintFile(t *testing.T) {
	c := New()
	if err := c.parseBlueprints([]byte("blueprints:\n  X:\n    layout: x\n    systems: {warp: 1}\n")); err == nil {
		t.Errorf("unknown system accepted")
	}
	if err := c.parseBlueprints([]byte("blueprints:\n  X:\n    weapon_slots: 1\n")); err == nil {
		t.Errorf("blueprint without layout accepted")
	}
}
