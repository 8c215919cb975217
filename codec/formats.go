package codec

import (
	"ftledit/types"
)

// ProfileFeatures are the differences between profile formats.
type ProfileFeatures struct {
	VariantC  bool // a second unlock flag per ship, for the C layouts
	ScoreDLC  bool // scores remember whether the expansion was on
	NewbieTip bool // a trailing tutorial-tip level
}

// SavedGameFeatures are the differences between saved game formats.
type SavedGameFeatures struct {
	// Extended is the post-expansion layout: the extra systems, extended system
	// info, drone and weapon modules and a few dozen more fields.
	Extended bool

	StoreItemExtra       bool
	LockdownCrystals     bool
	CrewMasteries        bool
	CrewTrailingFlag     bool
	InlineWeaponCooldown bool

	// How many system types have records, from the start of the system order.
	SystemTypes int
}

var profileFormats = NewDispatcher[ProfileFeatures](types.DocProfile)

var savedGameFormats = NewDispatcher[SavedGameFeatures](types.DocSavedGame)

func init() {
	profileFormats.mustRegister(4, ProfileFeatures{})
	profileFormats.mustRegister(9, ProfileFeatures{VariantC: true, ScoreDLC: true, NewbieTip: true})

	v2 := SavedGameFeatures{InlineWeaponCooldown: true, SystemTypes: int(types.SystemArtillery) + 1}
	v7 := SavedGameFeatures{Extended: true, SystemTypes: int(types.SystemCount)}
	v8 := v7
	v8.StoreItemExtra = true
	v8.LockdownCrystals = true
	v8.CrewMasteries = true
	v9 := v8
	v9.CrewTrailingFlag = true

	savedGameFormats.mustRegister(2, v2)
	savedGameFormats.mustRegister(7, v7)
	savedGameFormats.mustRegister(8, v8)
	savedGameFormats.mustRegister(9, v9)
}

// SupportedProfileVersions and SupportedSavedGameVersions list what can be read.
func SupportedProfileVersions() []int32 {
	return profileFormats.Supported()
}

func SupportedSavedGameVersions() []int32 {
	return savedGameFormats.Supported()
}

// SavedGameFeaturesFor exposes a version's features, so editors can hide what a
// format can't store.
func SavedGameFeaturesFor(version int32) (SavedGameFeatures, error) {
	return savedGameFormats.Lookup(version)
}

func ProfileFeaturesFor(version int32) (ProfileFeatures, error) {
	return profileFormats.Lookup(version)
}

// ShipCatalog supplies the blueprint data a saved game does not carry: how many
// system records a ship has, and the room and door layout of its hull.
type ShipCatalog interface {
	ShipBlueprint(id string) (*types.ShipBlueprint, error)
	ShipLayout(id string) (*types.ShipLayout, error)
}
