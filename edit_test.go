package main

import (
	"errors"
	"reflect"
	"testing"

	"ftledit/types"
	"ftledit/utils"
)

func TestInstalledSystems(t *testing.T) {
	systems := []types.SystemState{
		{Type: types.SystemShields, Capacity: 4},
		{Type: types.SystemArtillery}, // empty slot
		{Type: types.SystemArtillery, Capacity: 2},
		{Type: types.SystemArtillery, Capacity: 3},
		{Type: types.SystemPilot, Capacity: 1},
	}
	names := installedSystems(systems)
	want := map[int]string{0: "Shields", 2: "Artillery 1", 3: "Artillery 2", 4: "Pilot"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("installedSystems = %v, want %v", names, want)
	}

	i, matched, err := utils.Lookup(names, "artillery 2", "installed system")
	if err != nil || i != 3 || matched != "Artillery 2" {
		t.Errorf("Lookup(artillery 2) = %d, %q, %v", i, matched, err)
	}
	var ambiguous *utils.AmbiguousError
	if _, _, err := utils.Lookup(names, "art", "installed system"); !errors.As(err, &ambiguous) {
		t.Errorf("Lookup(art) = %v, want ambiguous", err)
	}
}
