package tables

// These tables are in their own file because they are large.
// Everything in here is an id the game writes into its files; display names are
// only for humans and can be fixed at will, ids can not.

import "slices"

// ShipSlotCount is the number of ship-unlock records in a profile.
// The game reserves 12 even though it only ever shipped 10 hulls.
const ShipSlotCount = 12

// ShipBaseIDs are in unlock-record order.  The last two slots have never held a ship
// but are still read and written.
var ShipBaseIDs = [ShipSlotCount]string{
	"PLAYER_SHIP_HARD",
	"PLAYER_SHIP_STEALTH",
	"PLAYER_SHIP_MANTIS",
	"PLAYER_SHIP_CIRCLE",
	"PLAYER_SHIP_FED",
	"PLAYER_SHIP_JELLY",
	"PLAYER_SHIP_ROCK",
	"PLAYER_SHIP_ENERGY",
	"PLAYER_SHIP_CRYSTAL",
	"PLAYER_SHIP_ANAEROBIC",
	"SHIP_SLOT_10",
	"SHIP_SLOT_11",
}

var ShipNames = map[string]string{
	"PLAYER_SHIP_HARD":      "Kestrel Cruiser",
	"PLAYER_SHIP_STEALTH":   "Stealth Cruiser",
	"PLAYER_SHIP_MANTIS":    "Mantis Cruiser",
	"PLAYER_SHIP_CIRCLE":    "Engi Cruiser",
	"PLAYER_SHIP_FED":       "Federation Cruiser",
	"PLAYER_SHIP_JELLY":     "Slug Cruiser",
	"PLAYER_SHIP_ROCK":      "Rock Cruiser",
	"PLAYER_SHIP_ENERGY":    "Zoltan Cruiser",
	"PLAYER_SHIP_CRYSTAL":   "Crystal Cruiser",
	"PLAYER_SHIP_ANAEROBIC": "Lanius Cruiser",
}

// DefaultShip is the one hull every new profile has.
const DefaultShip = "PLAYER_SHIP_HARD"

// StateVarIDs are the state variables with a fixed slot in a saved game.
// Every slot is read whether or not the game version in question ever touches it.
// Order matters: this is the on-disk order.
var StateVarIDs = []string{
	"blue_alien",
	"dead_crew",
	"destroyed_rock",
	"env_danger",
	"fired_shot",
	"killed_crew",
	"nebula",
	"offensive_drone",
	"reactor_upgrade",
	"store_purchase",
	"store_repair",
	"suffocated_crew",
	"system_upgrade",
	"teleported",
	"used_cloak",
	"used_drone",
	"used_mind",
	"used_missile",
	"weapon_upgrade",
}

func IsKnownStateVar(id string) bool {
	return slices.Contains(StateVarIDs, id)
}

var Races = map[string]string{
	"human":     "Human",
	"engi":      "Engi",
	"mantis":    "Mantis",
	"slug":      "Slug",
	"rock":      "Rock",
	"energy":    "Zoltan",
	"crystal":   "Crystal",
	"anaerobic": "Lanius",
	"battle":    "Boarding Drone",
}

// Achievements maps the ids found in profiles to something readable.
// Unknown ids are fine - the profile keeps whatever it finds.
var Achievements = map[string]string{
	"ACH_SECTOR_5":           "Just Getting Started",
	"ACH_SECTOR_8":           "All the Way",
	"ACH_BEAT_FLAGSHIP":      "Victory",
	"ACH_UNLOCK_ALL":         "Full Fleet",
	"ACH_FULL_ARSENAL":       "Full Arsenal",
	"ACH_TOUGH_SHIP":         "Tough Little Ship",
	"ACH_MASTER_OF_PATIENCE": "Master of Patience",
	"ACH_DIPLOMATIC":         "Diplomatic Immunity",
	"ACH_CREW_MASTERY":       "Best of the Best",
	"ACH_NO_DAMAGE":          "Ace Pilot",
}

// FleetPresences, indexed by types.FleetPresence
var FleetPresences = []string{"None", "Rebel", "Federation", "Both"}
