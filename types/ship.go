package types

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
)

// ShipState is one ship in a saved game: the player's, or whatever is nearby.
//
// Fields commented "extended" only exist in the post-expansion formats (7+) and are
// ignored when writing format 2.
type ShipState struct {
	BlueprintID string `yaml:"blueprint_id"`
	Name        string `yaml:"name"`
	GfxBaseName string `yaml:"gfx_base_name"`

	// Not stored in the file; filled in from the blueprint when decoding.
	LayoutID string `yaml:"layout_id"`

	StartingCrew []StartingCrew `yaml:"starting_crew"`

	Hostile         bool  `yaml:"hostile"`           // extended
	JumpChargeTicks int32 `yaml:"jump_charge_ticks"` // extended
	Jumping         bool  `yaml:"jumping"`           // extended
	JumpAnimTicks   int32 `yaml:"jump_anim_ticks"`   // extended

	Hull       int32 `yaml:"hull"`
	Fuel       int32 `yaml:"fuel"`
	DroneParts int32 `yaml:"drone_parts"`
	Missiles   int32 `yaml:"missiles"`
	Scrap      int32 `yaml:"scrap"`

	Crew []CrewState `yaml:"crew"`

	ReservePowerCapacity int32 `yaml:"reserve_power_capacity"`

	// Installed systems in on-disk order.  A system type may repeat when it spans
	// several rooms (the flagship's artillery); a zero-capacity entry there is an
	// empty slot in front of an installed one.
	Systems []SystemState `yaml:"systems"`

	// Extra state for systems that have it.  At most one entry per installed
	// system, see ExtendedSystemInfo.
	ExtendedSystems []ExtendedSystemInfo `yaml:"extended_systems"`

	Rooms    []RoomState                  `yaml:"rooms"` // one per layout room, in room-id order
	Breaches []Breach                     `yaml:"breaches"`
	Doors    map[DoorCoordinate]DoorState `yaml:"doors"`

	CloakAnimTicks   int32             `yaml:"cloak_anim_ticks"`  // extended
	LockdownCrystals []LockdownCrystal `yaml:"lockdown_crystals"` // format 8+

	Weapons  []WeaponState `yaml:"weapons"`
	Drones   []DroneState  `yaml:"drones"`
	Augments []string      `yaml:"augments"`
}

type StartingCrew struct {
	Race string `yaml:"race"`
	Name string `yaml:"name"`
}

type SystemState struct {
	Type SystemType `yaml:"type"`

	Capacity          int32 `yaml:"capacity"`
	Power             int32 `yaml:"power"`
	DamagedBars       int32 `yaml:"damaged_bars"`
	IonizedBars       int32 `yaml:"ionized_bars"`
	DeionizationTicks int32 `yaml:"deionization_ticks"`
	RepairProgress    int32 `yaml:"repair_progress"`
	DamageProgress    int32 `yaml:"damage_progress"`

	BatteryPower             int32 `yaml:"battery_power"`              // extended
	HackLevel                int32 `yaml:"hack_level"`                 // extended
	Hacked                   bool  `yaml:"hacked"`                     // extended
	TemporaryCapacityCap     int32 `yaml:"temporary_capacity_cap"`     // extended
	TemporaryCapacityLoss    int32 `yaml:"temporary_capacity_loss"`    // extended
	TemporaryCapacityDivisor int32 `yaml:"temporary_capacity_divisor"` // extended
}

type RoomState struct {
	Oxygen  int32    `yaml:"oxygen"`
	Squares []Square `yaml:"squares"` // row-major, width*height of the layout room
	Station *Station `yaml:"station"` // extended; nil when nothing is stationed here
}

type Square struct {
	FireHealth       int32 `yaml:"fire_health"`
	IgnitionProgress int32 `yaml:"ignition_progress"`
	Opaque           int32 `yaml:"opaque"` // usually -1
}

// Station is where a crew member returns to in a room.
type Station struct {
	Square    int32            `yaml:"square"`
	Direction StationDirection `yaml:"direction"`
}

// NoStation is what the game writes for a room without a station.
var NoStation = Station{Square: -1, Direction: StationNone}

type Breach struct {
	X      int32 `yaml:"x"`
	Y      int32 `yaml:"y"`
	Health int32 `yaml:"health"`
}

// DoorCoordinate locates a door between two squares.  Vertical doors sit on a
// square's left edge, horizontal ones on its top edge.
type DoorCoordinate struct {
	X        int32 `yaml:"x"`
	Y        int32 `yaml:"y"`
	Vertical int32 `yaml:"vertical"`
}

// MarshalText gives doors a flat "x,y,vertical" key when dumped.
func (c DoorCoordinate) MarshalText() ([]byte, error) {
	return fmt.Appendf(nil, "%d,%d,%d", c.X, c.Y, c.Vertical), nil
}

func (c *DoorCoordinate) UnmarshalText(text []byte) error {
	_, err := fmt.Sscanf(string(text), "%d,%d,%d", &c.X, &c.Y, &c.Vertical)
	if err != nil {
		return fmt.Errorf("door %q: %w", text, err)
	}
	return nil
}

type DoorState struct {
	CurrentMaxHealth int32   `yaml:"current_max_health"` // extended
	Health           int32   `yaml:"health"`             // extended
	NominalHealth    int32   `yaml:"nominal_health"`     // extended
	Open             bool    `yaml:"open"`
	WalkingThrough   bool    `yaml:"walking_through"`
	Opaque           []int32 `yaml:"opaque"` // one value in extended formats, none in format 2
}

type CrewState struct {
	Name               string `yaml:"name"`
	Race               string `yaml:"race"`
	EnemyBoardingDrone bool   `yaml:"enemy_boarding_drone"`
	Health             int32  `yaml:"health"`
	SpriteX            int32  `yaml:"sprite_x"`
	SpriteY            int32  `yaml:"sprite_y"`
	RoomID             int32  `yaml:"room_id"`
	RoomSquare         int32  `yaml:"room_square"`
	PlayerControlled   bool   `yaml:"player_controlled"`

	CloneReady      int32 `yaml:"clone_ready"`       // extended
	DeathOrder      int32 `yaml:"death_order"`       // extended
	MindControlled  bool  `yaml:"mind_controlled"`   // extended
	SavedRoomSquare int32 `yaml:"saved_room_square"` // extended
	SavedRoomID     int32 `yaml:"saved_room_id"`     // extended

	PilotSkill  int32 `yaml:"pilot_skill"`
	EngineSkill int32 `yaml:"engine_skill"`
	ShieldSkill int32 `yaml:"shield_skill"`
	WeaponSkill int32 `yaml:"weapon_skill"`
	RepairSkill int32 `yaml:"repair_skill"`
	CombatSkill int32 `yaml:"combat_skill"`

	Male bool `yaml:"male"`

	Repairs         int32 `yaml:"repairs"`
	CombatKills     int32 `yaml:"combat_kills"`
	PilotedEvasions int32 `yaml:"piloted_evasions"`
	JumpsSurvived   int32 `yaml:"jumps_survived"`
	SkillMasteries  int32 `yaml:"skill_masteries"`

	StunTicks           int32 `yaml:"stun_ticks"`            // extended
	HealthBoost         int32 `yaml:"health_boost"`          // extended
	ClonebayPriority    int32 `yaml:"clonebay_priority"`     // extended
	DamageBoost         int32 `yaml:"damage_boost"`          // extended
	UniversalDeathCount int32 `yaml:"universal_death_count"` // extended

	// Two per skill, in skill order.  Format 8+.
	Masteries [12]bool `yaml:"masteries"`

	// Values nobody has figured out yet.  Length depends on the format, see
	// codec.CrewOpaqueLen.
	Opaque []int32 `yaml:"opaque"`
}

type WeaponState struct {
	WeaponID      string        `yaml:"weapon_id"`
	Armed         bool          `yaml:"armed"`
	CooldownTicks int32         `yaml:"cooldown_ticks"` // format 2 only
	Module        *WeaponModule `yaml:"module"`         // extended formats; nil in format 2
}

type WeaponModule struct {
	CooldownTicks     int32 `yaml:"cooldown_ticks"`
	CooldownTicksGoal int32 `yaml:"cooldown_ticks_goal"`
	SubcooldownTicks  int32 `yaml:"subcooldown_ticks"`
	Boost             int32 `yaml:"boost"`
	Charge            int32 `yaml:"charge"`
}

type DroneState struct {
	DroneID          string `yaml:"drone_id"`
	Armed            bool   `yaml:"armed"`
	PlayerControlled bool   `yaml:"player_controlled"`
	BodyX            int32  `yaml:"body_x"`
	BodyY            int32  `yaml:"body_y"`
	BodyRoomID       int32  `yaml:"body_room_id"`
	BodyRoomSquare   int32  `yaml:"body_room_square"`
	Health           int32  `yaml:"health"`

	Extended *ExtendedDroneInfo `yaml:"extended"` // extended formats; nil in format 2
}

type ExtendedDroneInfo struct {
	Deployed bool      `yaml:"deployed"`
	Arrived  bool      `yaml:"arrived"`
	Pod      *DronePod `yaml:"pod"` // only boarding/hacking drones in flight have one
}

type DronePod struct {
	MourningTicks    int32 `yaml:"mourning_ticks"`
	CurrentSpace     int32 `yaml:"current_space"`
	DestinationSpace int32 `yaml:"destination_space"`
	CurrentX         int32 `yaml:"current_x"`
	CurrentY         int32 `yaml:"current_y"`
	GoalX            int32 `yaml:"goal_x"`
	GoalY            int32 `yaml:"goal_y"`
	BodyHealth       int32 `yaml:"body_health"`
}

type LockdownCrystal struct {
	CurrentX      int32 `yaml:"current_x"`
	CurrentY      int32 `yaml:"current_y"`
	Speed         int32 `yaml:"speed"`
	GoalX         int32 `yaml:"goal_x"`
	GoalY         int32 `yaml:"goal_y"`
	Arrived       bool  `yaml:"arrived"`
	Done          bool  `yaml:"done"`
	Lifetime      int32 `yaml:"lifetime"`
	SuperFreeze   bool  `yaml:"super_freeze"`
	LockingRoom   int32 `yaml:"locking_room"`
	AnimDirection int32 `yaml:"anim_direction"`
	ShardProgress int32 `yaml:"shard_progress"`
}

// NewShipState builds a ship with nothing going on: full oxygen, no fires, doors
// shut, no crew, systems or equipment.  Rooms and doors come from the layout.
func NewShipState(bp *ShipBlueprint, layout *ShipLayout, extended bool) *ShipState {
	s := &ShipState{
		BlueprintID:  bp.ID,
		LayoutID:     layout.ID,
		GfxBaseName:  layout.ID,
		StartingCrew: []StartingCrew{},
		Crew:         []CrewState{},
		Systems:      []SystemState{},
		Rooms:        make([]RoomState, len(layout.Rooms)),
		Breaches:     []Breach{},
		Doors:        map[DoorCoordinate]DoorState{},
		Weapons:      []WeaponState{},
		Drones:       []DroneState{},
		Augments:     []string{},
	}
	if extended {
		s.ExtendedSystems = []ExtendedSystemInfo{&ShieldsInfo{Opaque: [2]int32{}}}
	}
	for i, shape := range layout.Rooms {
		room := RoomState{Oxygen: 100, Squares: make([]Square, shape.SquareCount())}
		for j := range room.Squares {
			room.Squares[j].Opaque = -1
		}
		s.Rooms[i] = room
	}
	for _, coord := range layout.Doors {
		door := DoorState{Opaque: []int32{}}
		if extended {
			door.Opaque = []int32{0}
		}
		s.Doors[coord] = door
	}
	return s
}

// System returns the first state for a system type, or nil if it isn't installed.
func (s *ShipState) System(t SystemType) *SystemState {
	for i := range s.Systems {
		if s.Systems[i].Type == t && s.Systems[i].Capacity > 0 {
			return &s.Systems[i]
		}
	}
	return nil
}

// HasSystem reports whether a system type is installed.
func (s *ShipState) HasSystem(t SystemType) bool {
	return s.System(t) != nil
}

// ExtendedInfo returns the extended info entries for a system type, in order.
func (s *ShipState) ExtendedInfo(t SystemType) []ExtendedSystemInfo {
	var out []ExtendedSystemInfo
	for _, info := range s.ExtendedSystems {
		if info.SystemType() == t {
			out = append(out, info)
		}
	}
	return out
}

// WeaponSlots pads the weapon list with nils up to the blueprint's mount count.
// Nil is an empty mount.
func (s *ShipState) WeaponSlots(bp *ShipBlueprint) []*WeaponState {
	out := make([]*WeaponState, max(bp.WeaponSlots, len(s.Weapons)))
	for i := range s.Weapons {
		out[i] = &s.Weapons[i]
	}
	return out
}

// DroneSlots is WeaponSlots for drones.
func (s *ShipState) DroneSlots(bp *ShipBlueprint) []*DroneState {
	out := make([]*DroneState, max(bp.DroneSlots, len(s.Drones)))
	for i := range s.Drones {
		out[i] = &s.Drones[i]
	}
	return out
}

func (s *ShipState) Clone() *ShipState {
	if s == nil {
		return nil
	}
	out := *s
	out.StartingCrew = slices.Clone(s.StartingCrew)
	if s.Crew != nil {
		out.Crew = make([]CrewState, len(s.Crew))
		for i := range s.Crew {
			out.Crew[i] = s.Crew[i].Clone()
		}
	}
	out.Systems = slices.Clone(s.Systems)
	if s.ExtendedSystems != nil {
		out.ExtendedSystems = make([]ExtendedSystemInfo, len(s.ExtendedSystems))
		for i, info := range s.ExtendedSystems {
			out.ExtendedSystems[i] = info.cloneInfo()
		}
	}
	if s.Rooms != nil {
		out.Rooms = make([]RoomState, len(s.Rooms))
		for i := range s.Rooms {
			out.Rooms[i] = s.Rooms[i].Clone()
		}
	}
	out.Breaches = slices.Clone(s.Breaches)
	if s.Doors != nil {
		out.Doors = make(map[DoorCoordinate]DoorState, len(s.Doors))
		for k, v := range s.Doors {
			out.Doors[k] = v.Clone()
		}
	}
	out.LockdownCrystals = slices.Clone(s.LockdownCrystals)
	if s.Weapons != nil {
		out.Weapons = make([]WeaponState, len(s.Weapons))
		for i := range s.Weapons {
			out.Weapons[i] = s.Weapons[i].Clone()
		}
	}
	if s.Drones != nil {
		out.Drones = make([]DroneState, len(s.Drones))
		for i := range s.Drones {
			out.Drones[i] = s.Drones[i].Clone()
		}
	}
	out.Augments = slices.Clone(s.Augments)
	return &out
}

func (r RoomState) Clone() RoomState {
	r.Squares = slices.Clone(r.Squares)
	if r.Station != nil {
		station := *r.Station
		r.Station = &station
	}
	return r
}

func (d DoorState) Clone() DoorState {
	d.Opaque = slices.Clone(d.Opaque)
	return d
}

func (c CrewState) Clone() CrewState {
	c.Opaque = slices.Clone(c.Opaque)
	return c
}

func (w WeaponState) Clone() WeaponState {
	if w.Module != nil {
		module := *w.Module
		w.Module = &module
	}
	return w
}

func (d DroneState) Clone() DroneState {
	if d.Extended != nil {
		ext := *d.Extended
		if ext.Pod != nil {
			pod := *ext.Pod
			ext.Pod = &pod
		}
		d.Extended = &ext
	}
	return d
}

// DoorCoordinates returns the door keys sorted by position, for printing.
func (s *ShipState) DoorCoordinates() []DoorCoordinate {
	coords := slices.Collect(maps.Keys(s.Doors))
	slices.SortFunc(coords, func(a, b DoorCoordinate) int {
		return cmp.Or(
			cmp.Compare(a.Y, b.Y),
			cmp.Compare(a.X, b.X),
			cmp.Compare(a.Vertical, b.Vertical),
		)
	})
	return coords
}
