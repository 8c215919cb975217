package types

import (
	"maps"
	"slices"

	"ftledit/tables"
)

// Profile is the persistent player record: achievements, unlocked ships, high scores.
type Profile struct {
	Version      int32                       `yaml:"version"`
	Achievements []AchievementRecord         `yaml:"achievements"`
	ShipUnlocks  map[string]ShipAvailability `yaml:"ship_unlocks"` // keyed by ship base id, see tables.ShipBaseIDs
	Stats        Stats                       `yaml:"stats"`

	// Only stored by the expansion format.
	NewbieTipLevel int32 `yaml:"newbie_tip_level"`

	Mystery []MysteryBytes `yaml:"mystery"`
}

type AchievementRecord struct {
	ID         string     `yaml:"id"`
	Difficulty Difficulty `yaml:"difficulty"`
}

// ShipAvailability says which layouts of a hull can be picked.  Layout B is
// unlocked by achievements, so it has no flag of its own.
type ShipAvailability struct {
	UnlockedA bool `yaml:"unlocked_a"`
	UnlockedC bool `yaml:"unlocked_c"` // expansion only
}

type Stats struct {
	TopScores []Score        `yaml:"top_scores"`
	ShipBest  []Score        `yaml:"ship_best"`
	Session   SessionRecords `yaml:"session"`
	Totals    TotalRecords   `yaml:"totals"`
	Crew      CrewRecords    `yaml:"crew"`
}

type Score struct {
	ShipName   string     `yaml:"ship_name"`
	ShipID     string     `yaml:"ship_id"`
	Value      int32      `yaml:"value"`
	Sector     int32      `yaml:"sector"`
	Difficulty Difficulty `yaml:"difficulty"`
	Victory    bool       `yaml:"victory"`
	DLC        bool       `yaml:"dlc"` // expansion only
}

// SessionRecords are per-game bests.
type SessionRecords struct {
	MostShipsDefeated   int32 `yaml:"most_ships_defeated"`
	MostBeaconsExplored int32 `yaml:"most_beacons_explored"`
	MostScrapCollected  int32 `yaml:"most_scrap_collected"`
	MostCrewHired       int32 `yaml:"most_crew_hired"`
}

// TotalRecords accumulate across every game played.
type TotalRecords struct {
	ShipsDefeated   int32 `yaml:"ships_defeated"`
	BeaconsExplored int32 `yaml:"beacons_explored"`
	ScrapCollected  int32 `yaml:"scrap_collected"`
	CrewHired       int32 `yaml:"crew_hired"`
	GamesPlayed     int32 `yaml:"games_played"`
	Victories       int32 `yaml:"victories"`
}

type CrewRecords struct {
	MostRepairs         CrewRecord `yaml:"most_repairs"`
	MostCombatKills     CrewRecord `yaml:"most_combat_kills"`
	MostPilotedEvasions CrewRecord `yaml:"most_piloted_evasions"`
	MostJumpsSurvived   CrewRecord `yaml:"most_jumps_survived"`
	MostSkillMasteries  CrewRecord `yaml:"most_skill_masteries"`
}

// InOrder returns the records in the order the file stores them.
func (c *CrewRecords) InOrder() []*CrewRecord {
	return []*CrewRecord{&c.MostRepairs, &c.MostCombatKills, &c.MostPilotedEvasions, &c.MostJumpsSurvived, &c.MostSkillMasteries}
}

type CrewRecord struct {
	Name  string `yaml:"name"`
	Race  string `yaml:"race"`
	Male  bool   `yaml:"male"`
	Value int32  `yaml:"value"`
}

// NewProfile makes the profile a fresh install would write: nothing achieved, only
// the Kestrel available.
func NewProfile(version int32) *Profile {
	p := &Profile{
		Version:      version,
		Achievements: []AchievementRecord{},
		ShipUnlocks:  map[string]ShipAvailability{},
		Stats: Stats{
			TopScores: []Score{},
			ShipBest:  []Score{},
		},
	}
	for _, id := range tables.ShipBaseIDs {
		p.ShipUnlocks[id] = ShipAvailability{}
	}
	p.ShipUnlocks[tables.DefaultShip] = ShipAvailability{UnlockedA: true}
	return p
}

func (p *Profile) FormatVersion() int32 {
	return p.Version
}

func (p *Profile) HasAchievement(id string) bool {
	return slices.ContainsFunc(p.Achievements, func(a AchievementRecord) bool { return a.ID == id })
}

func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	out := *p
	out.Achievements = slices.Clone(p.Achievements)
	out.ShipUnlocks = maps.Clone(p.ShipUnlocks)
	out.Stats.TopScores = slices.Clone(p.Stats.TopScores)
	out.Stats.ShipBest = slices.Clone(p.Stats.ShipBest)
	out.Mystery = cloneMystery(p.Mystery)
	return &out
}
