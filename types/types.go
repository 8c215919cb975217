package types

import (
	"fmt"
	"slices"
)

// Document kinds, as used in error messages and entity paths.
const (
	DocProfile   = "profile"
	DocSavedGame = "savedgame"
)

type Difficulty int32

const (
	DifficultyEasy Difficulty = iota
	DifficultyNormal
	DifficultyHard
)

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "Easy"
	case DifficultyNormal:
		return "Normal"
	case DifficultyHard:
		return "Hard"
	}
	return fmt.Sprintf("Unknown (%d)", int32(d))
}

// SystemType identifies a ship system.  The numbering is the engine's, which is
// also the order system records appear in a saved game.
type SystemType int32

const (
	SystemShields SystemType = iota
	SystemEngines
	SystemOxygen
	SystemWeapons
	SystemDroneCtrl
	SystemMedbay
	SystemPilot
	SystemSensors
	SystemDoors
	SystemTeleporter
	SystemCloaking
	SystemArtillery
	SystemBattery
	SystemClonebay
	SystemMindControl
	SystemHacking

	SystemCount
)

var systemNames = []string{
	"Shields", "Engines", "Oxygen", "Weapons", "Drone Control", "Medbay", "Pilot", "Sensors",
	"Doors", "Teleporter", "Cloaking", "Artillery", "Battery", "Clonebay", "Mind Control", "Hacking",
}

// systemIDs are the blueprint/XML names
var systemIDs = []string{
	"shields", "engines", "oxygen", "weapons", "drones", "medbay", "pilot", "sensors",
	"doors", "teleporter", "cloaking", "artillery", "battery", "clonebay", "mind", "hacking",
}

func (t SystemType) String() string {
	if t >= 0 && t < SystemCount {
		return systemNames[t]
	}
	return fmt.Sprintf("Unknown system (%d)", int32(t))
}

// ID returns the name the game's data files use for the system.
func (t SystemType) ID() string {
	if t >= 0 && t < SystemCount {
		return systemIDs[t]
	}
	return ""
}

// SystemTypeByID is the reverse of SystemType.ID.
func SystemTypeByID(id string) (SystemType, bool) {
	i := slices.Index(systemIDs, id)
	if i < 0 {
		return 0, false
	}
	return SystemType(i), true
}

type StoreItemType int32

const (
	StoreItemWeapon StoreItemType = iota
	StoreItemDrone
	StoreItemAugment
	StoreItemCrew
	StoreItemSystem
)

func (t StoreItemType) String() string {
	names := []string{"Weapon", "Drone", "Augment", "Crew", "System"}
	if t >= 0 && int(t) < len(names) {
		return names[t]
	}
	return fmt.Sprintf("Unknown item type (%d)", int32(t))
}

type FleetPresence int32

const (
	FleetNone FleetPresence = iota
	FleetRebel
	FleetFederation
	FleetBoth
)

type StationDirection int32

const (
	StationDown StationDirection = iota
	StationRight
	StationUp
	StationLeft
	StationNone
)

// MysteryBytes is a span the codec could not account for.  It is never
// interpreted, only written back where it was found.
type MysteryBytes struct {
	Context string `yaml:"context"` // entity path at capture time
	Offset  int64  `yaml:"offset"`  // absolute offset of the first byte in the original stream
	Data    []byte `yaml:"data"`
}

func (m MysteryBytes) Clone() MysteryBytes {
	m.Data = slices.Clone(m.Data)
	return m
}

func (m MysteryBytes) String() string {
	return fmt.Sprintf("%d mystery bytes at %d (%s)", len(m.Data), m.Offset, m.Context)
}

func cloneMystery(in []MysteryBytes) []MysteryBytes {
	if in == nil {
		return nil
	}
	out := make([]MysteryBytes, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}
