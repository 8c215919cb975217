package types

import (
	"maps"
	"slices"

	"ftledit/tables"
)

// SavedGame is an in-progress run (continue.sav).
type SavedGame struct {
	Version int32 `yaml:"version"`

	DLCEnabled bool       `yaml:"dlc_enabled"` // extended
	Difficulty Difficulty `yaml:"difficulty"`

	TotalShipsDefeated   int32 `yaml:"total_ships_defeated"`
	TotalBeaconsExplored int32 `yaml:"total_beacons_explored"`
	TotalScrapCollected  int32 `yaml:"total_scrap_collected"`
	TotalCrewHired       int32 `yaml:"total_crew_hired"`

	// Copies of PlayerShip.Name and PlayerShip.BlueprintID that the game keeps at
	// the top of the file.  Use SetPlayerShipName/SetPlayerShipBlueprint to change
	// them, the codec writes whatever is here.
	PlayerShipName        string `yaml:"player_ship_name"`
	PlayerShipBlueprintID string `yaml:"player_ship_blueprint_id"`

	OneBasedSectorNumber int32 `yaml:"one_based_sector_number"`

	// No idea.  Changing it doesn't seem to do anything, so it stays as found.
	HeaderOpaque int32 `yaml:"header_opaque"`

	PlayerShip ShipState  `yaml:"player_ship"`
	NearbyShip *ShipState `yaml:"nearby_ship"` // nil when there is no ship at the current beacon

	Cargo []string `yaml:"cargo"`

	Sector        SectorState        `yaml:"sector"`
	RebelFlagship RebelFlagshipState `yaml:"rebel_flagship"`
	StateVars     StateVars          `yaml:"state_vars"`

	Mystery []MysteryBytes `yaml:"mystery"`
}

// SectorState is the map of the current sector plus the rebel pursuit.
// TreeSeed and Visitation feed the sector-tree generator; nothing in here reads them.
type SectorState struct {
	TreeSeed   int32 `yaml:"tree_seed"`
	LayoutSeed int32 `yaml:"layout_seed"`

	RebelFleetOffset int32 `yaml:"rebel_fleet_offset"`
	RebelFleetFudge  int32 `yaml:"rebel_fleet_fudge"`
	RebelPursuitMod  int32 `yaml:"rebel_pursuit_mod"`

	Waiting       bool  `yaml:"waiting"`         // extended
	WaitEventSeed int32 `yaml:"wait_event_seed"` // extended

	// Usually empty.  Possibly an event name; nobody has caught it with anything
	// interesting in it.  Extended.
	OpaqueText string `yaml:"opaque_text"`

	HazardsVisible          bool  `yaml:"hazards_visible"`
	RebelFlagshipVisible    bool  `yaml:"rebel_flagship_visible"`
	RebelFlagshipHop        int32 `yaml:"rebel_flagship_hop"`
	RebelFlagshipMoving     bool  `yaml:"rebel_flagship_moving"`
	RebelFlagshipRetreating bool  `yaml:"rebel_flagship_retreating"` // extended
	RebelFlagshipBaseTurns  int32 `yaml:"rebel_flagship_base_turns"` // extended

	Visitation []bool `yaml:"visitation"`

	Number                int32 `yaml:"number"`
	IsHiddenCrystalWorlds bool  `yaml:"is_hidden_crystal_worlds"`

	Beacons         []BeaconState `yaml:"beacons"`
	CurrentBeaconID int32         `yaml:"current_beacon_id"`

	// Ordered, because the game writes them in the order it placed them.
	QuestEvents        []QuestEvent `yaml:"quest_events"`
	DistantQuestEvents []string     `yaml:"distant_quest_events"`
}

type QuestEvent struct {
	EventID  string `yaml:"event_id"`
	BeaconID int32  `yaml:"beacon_id"`
}

type RebelFlagshipState struct {
	PendingStage int32   `yaml:"pending_stage"`
	Occupancy    []int32 `yaml:"occupancy"` // crew count per flagship room
}

type BeaconState struct {
	VisitCount int32             `yaml:"visit_count"`
	Background *BeaconBackground `yaml:"background"` // present exactly when VisitCount > 0

	Seen          bool          `yaml:"seen"`
	Enemy         *BeaconEnemy  `yaml:"enemy"`
	FleetPresence FleetPresence `yaml:"fleet_presence"`
	UnderAttack   bool          `yaml:"under_attack"`
	Store         *StoreState   `yaml:"store"`
}

type BeaconBackground struct {
	StarscapeImage string `yaml:"starscape_image"`
	SpriteImage    string `yaml:"sprite_image"`
	SpriteX        int32  `yaml:"sprite_x"`
	SpriteY        int32  `yaml:"sprite_y"`
	SpriteRotation int32  `yaml:"sprite_rotation"`
}

type BeaconEnemy struct {
	ShipEventID     string `yaml:"ship_event_id"`
	AutoBlueprintID string `yaml:"auto_blueprint_id"`
	ShipEventSeed   int32  `yaml:"ship_event_seed"`
}

type StoreState struct {
	Shelves    []StoreShelf `yaml:"shelves"` // always two in format 2
	Fuel       int32        `yaml:"fuel"`
	Missiles   int32        `yaml:"missiles"`
	DroneParts int32        `yaml:"drone_parts"`
}

type StoreShelf struct {
	ItemType StoreItemType `yaml:"item_type"`
	Items    [3]*StoreItem `yaml:"items"` // nil = empty slot
}

type StoreItem struct {
	ItemID    string  `yaml:"item_id"`
	Available bool    `yaml:"available"` // false once bought
	Opaque    []int32 `yaml:"opaque"`    // one value in format 8+
}

type StateVar struct {
	ID    string `yaml:"id"`
	Value int32  `yaml:"value"`
}

// StateVars is the saved game's variable table.  Known holds the fixed slots
// (tables.StateVarIDs); Extra holds everything else in file order.
type StateVars struct {
	Known map[string]int32 `yaml:"known"`
	Extra []StateVar       `yaml:"extra"`
}

func (v *StateVars) Get(id string) (int32, bool) {
	if tables.IsKnownStateVar(id) {
		value, ok := v.Known[id]
		return value, ok
	}
	for _, sv := range v.Extra {
		if sv.ID == id {
			return sv.Value, true
		}
	}
	return 0, false
}

func (v *StateVars) Set(id string, value int32) {
	if tables.IsKnownStateVar(id) {
		if v.Known == nil {
			v.Known = map[string]int32{}
		}
		v.Known[id] = value
		return
	}
	for i := range v.Extra {
		if v.Extra[i].ID == id {
			v.Extra[i].Value = value
			return
		}
	}
	v.Extra = append(v.Extra, StateVar{id, value})
}

// NewSavedGame starts a run around an existing player ship.
func NewSavedGame(version int32, player *ShipState) *SavedGame {
	g := &SavedGame{
		Version:    version,
		PlayerShip: *player.Clone(),
		Cargo:      []string{},
		Sector: SectorState{
			Visitation:         []bool{},
			Beacons:            []BeaconState{},
			QuestEvents:        []QuestEvent{},
			DistantQuestEvents: []string{},
		},
		RebelFlagship:        RebelFlagshipState{Occupancy: []int32{}},
		StateVars:            StateVars{Known: map[string]int32{}, Extra: []StateVar{}},
		OneBasedSectorNumber: 1,
	}
	for _, id := range tables.StateVarIDs {
		g.StateVars.Known[id] = 0
	}
	g.SetPlayerShipName(player.Name)
	g.SetPlayerShipBlueprint(player.BlueprintID)
	return g
}

func (g *SavedGame) FormatVersion() int32 {
	return g.Version
}

// SetPlayerShipName renames the player ship in both places the game stores it.
func (g *SavedGame) SetPlayerShipName(name string) {
	g.PlayerShipName = name
	g.PlayerShip.Name = name
}

// SetPlayerShipBlueprint changes the blueprint id in both places.  The rooms and
// doors still have to match the new blueprint's layout before encoding.
func (g *SavedGame) SetPlayerShipBlueprint(id string) {
	g.PlayerShipBlueprintID = id
	g.PlayerShip.BlueprintID = id
}

// NamesInSync reports whether the redundant header copies match the player ship.
func (g *SavedGame) NamesInSync() bool {
	return g.PlayerShipName == g.PlayerShip.Name && g.PlayerShipBlueprintID == g.PlayerShip.BlueprintID
}

func (g *SavedGame) Clone() *SavedGame {
	if g == nil {
		return nil
	}
	out := *g
	out.PlayerShip = *g.PlayerShip.Clone()
	out.NearbyShip = g.NearbyShip.Clone()
	out.Cargo = slices.Clone(g.Cargo)
	out.Sector = g.Sector.Clone()
	out.RebelFlagship.Occupancy = slices.Clone(g.RebelFlagship.Occupancy)
	out.StateVars = StateVars{Known: maps.Clone(g.StateVars.Known), Extra: slices.Clone(g.StateVars.Extra)}
	out.Mystery = cloneMystery(g.Mystery)
	return &out
}

func (s SectorState) Clone() SectorState {
	s.Visitation = slices.Clone(s.Visitation)
	if s.Beacons != nil {
		beacons := make([]BeaconState, len(s.Beacons))
		for i := range s.Beacons {
			beacons[i] = s.Beacons[i].Clone()
		}
		s.Beacons = beacons
	}
	s.QuestEvents = slices.Clone(s.QuestEvents)
	s.DistantQuestEvents = slices.Clone(s.DistantQuestEvents)
	return s
}

func (b BeaconState) Clone() BeaconState {
	if b.Background != nil {
		bg := *b.Background
		b.Background = &bg
	}
	if b.Enemy != nil {
		enemy := *b.Enemy
		b.Enemy = &enemy
	}
	if b.Store != nil {
		store := b.Store.Clone()
		b.Store = &store
	}
	return b
}

func (s StoreState) Clone() StoreState {
	if s.Shelves != nil {
		shelves := make([]StoreShelf, len(s.Shelves))
		for i, shelf := range s.Shelves {
			for j, item := range shelf.Items {
				if item != nil {
					copied := *item
					copied.Opaque = slices.Clone(item.Opaque)
					shelf.Items[j] = &copied
				}
			}
			shelves[i] = shelf
		}
		s.Shelves = shelves
	}
	return s
}
