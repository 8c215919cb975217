package codec

import (
	"bytes"
	"encoding/binary"
	"testing"

	"ftledit/blueprints"
	"ftledit/types"
)

// builder writes test input without going through writers.Writer, so decoders are
// checked against bytes the encoder didn't produce.
type builder struct {
	buf bytes.Buffer
}

func (b *builder) ints(vals ...int32) *builder {
	for _, v := range vals {
		binary.Write(&b.buf, binary.LittleEndian, v)
	}
	return b
}

func (b *builder) bools(vals ...bool) *builder {
	for _, v := range vals {
		if v {
			b.ints(1)
		} else {
			b.ints(0)
		}
	}
	return b
}

func (b *builder) str(s string) *builder {
	b.ints(int32(len(s)))
	b.buf.WriteString(s)
	return b
}

func (b *builder) raw(data ...byte) *builder {
	b.buf.Write(data)
	return b
}

func (b *builder) bytes() []byte {
	return b.buf.Bytes()
}

func testCatalog() *blueprints.Catalog {
	c := blueprints.New()
	c.Add(&types.ShipBlueprint{
		ID:          "TEST_CRUISER",
		LayoutID:    "test_cruiser",
		WeaponSlots: 3,
		DroneSlots:  2,
		SystemRooms: map[types.SystemType]int{
			types.SystemShields:   1,
			types.SystemEngines:   1,
			types.SystemPilot:     1,
			types.SystemArtillery: 2,
			types.SystemHacking:   1,
		},
	}, &types.ShipLayout{
		ID:    "test_cruiser",
		Rooms: []types.RoomShape{{X: 0, Y: 0, SquaresH: 2, SquaresV: 2}, {X: 2, Y: 0, SquaresH: 2, SquaresV: 1}, {X: 4, Y: 0, SquaresH: 1, SquaresV: 2}, {X: 2, Y: 1, SquaresH: 2, SquaresV: 1}},
		Doors: []types.DoorCoordinate{{X: 2, Y: 0, Vertical: 1}, {X: 4, Y: 0, Vertical: 1}, {X: 2, Y: 1, Vertical: 0}},
	})
	c.Add(&types.ShipBlueprint{
		ID:          "TEST_SCOUT",
		LayoutID:    "test_scout",
		WeaponSlots: 2,
		SystemRooms: map[types.SystemType]int{types.SystemPilot: 1},
	}, &types.ShipLayout{
		ID:    "test_scout",
		Rooms: []types.RoomShape{{X: 0, Y: 0, SquaresH: 1, SquaresV: 1}},
		Doors: []types.DoorCoordinate{},
	})
	return c
}

func testShip(t *testing.T, catalog ShipCatalog, blueprintID string, f SavedGameFeatures) *types.ShipState {
	t.Helper()
	bp, err := catalog.ShipBlueprint(blueprintID)
	if err != nil {
		t.Fatalf("ShipBlueprint: %v", err)
	}
	layout, err := catalog.ShipLayout(bp.LayoutID)
	if err != nil {
		t.Fatalf("ShipLayout: %v", err)
	}
	return types.NewShipState(bp, layout, f.Extended)
}

// sampleGame is a player cruiser with four rooms, two systems and three crew, at
// the only beacon of the sector, which has a store.
func sampleGame(t *testing.T, version int32) *types.SavedGame {
	t.Helper()
	f, err := SavedGameFeaturesFor(version)
	if err != nil {
		t.Fatalf("SavedGameFeaturesFor(%d): %v", version, err)
	}
	ship := testShip(t, testCatalog(), "TEST_CRUISER", f)
	ship.Name = "The Test"
	ship.Hull, ship.Fuel, ship.DroneParts, ship.Missiles, ship.Scrap = 30, 16, 3, 8, 120
	ship.ReservePowerCapacity = 8
	ship.StartingCrew = []types.StartingCrew{{Race: "human", Name: "Alice"}}
	ship.Systems = []types.SystemState{
		{Type: types.SystemShields, Capacity: 2, Power: 2},
		{Type: types.SystemPilot, Capacity: 1, Power: 1, DamagedBars: 1, RepairProgress: 40},
	}
	for i, name := range []string{"Alice", "Bob", "Carol"} {
		ship.Crew = append(ship.Crew, types.CrewState{
			Name:             name,
			Race:             "human",
			Health:           100 - int32(i),
			RoomID:           int32(i),
			PlayerControlled: true,
			Male:             i%2 == 1,
			PilotSkill:       int32(i),
			Repairs:          int32(10 * i),
			Opaque:           make([]int32, CrewOpaqueLen(f)),
		})
	}
	if f.CrewMasteries {
		ship.Crew[0].Masteries[0] = true
		ship.Crew[0].Masteries[11] = true
	}
	ship.Rooms[0].Oxygen = 55
	ship.Rooms[1].Squares[1].FireHealth = 40
	if f.Extended {
		ship.Rooms[2].Station = &types.Station{Square: 1, Direction: types.StationUp}
	}
	ship.Breaches = []types.Breach{{X: 1, Y: 0, Health: 80}}
	door := ship.Doors[types.DoorCoordinate{X: 2, Y: 1, Vertical: 0}]
	door.Open = true
	ship.Doors[types.DoorCoordinate{X: 2, Y: 1, Vertical: 0}] = door
	if f.LockdownCrystals {
		ship.LockdownCrystals = []types.LockdownCrystal{{CurrentX: 10, GoalX: 20, Arrived: true, Lifetime: 300}}
	}

	weapon := types.WeaponState{WeaponID: "LASER_BURST_1", Armed: true}
	drone := types.DroneState{DroneID: "COMBAT_1", Health: 1, BodyRoomID: -1}
	if f.Extended {
		weapon.Module = &types.WeaponModule{CooldownTicks: 500, CooldownTicksGoal: 10000}
		drone.Extended = &types.ExtendedDroneInfo{Deployed: true, Pod: &types.DronePod{GoalX: 3, BodyHealth: 1}}
	} else {
		weapon.CooldownTicks = 7
	}
	ship.Weapons = []types.WeaponState{weapon}
	ship.Drones = []types.DroneState{drone}
	ship.Augments = []string{"SCRAP_COLLECTOR"}

	g := types.NewSavedGame(version, ship)
	g.Difficulty = types.DifficultyNormal
	g.TotalScrapCollected = 300
	g.Cargo = []string{"ARTEMIS"}
	g.Sector.TreeSeed = 12345
	g.Sector.LayoutSeed = 999
	g.Sector.Visitation = []bool{true, false, true}
	g.Sector.Number = 2
	if f.Extended {
		g.DLCEnabled = true
		g.Sector.OpaqueText = "x"
	}
	item := &types.StoreItem{ItemID: "BOMB_1", Available: true, Opaque: make([]int32, storeItemOpaqueLen(f))}
	g.Sector.Beacons = []types.BeaconState{{
		VisitCount: 1,
		Background: &types.BeaconBackground{StarscapeImage: "BG_1", SpriteImage: "PLANET_1", SpriteX: 5},
		Seen:       true,
		Enemy:      &types.BeaconEnemy{ShipEventID: "PIRATE", AutoBlueprintID: "AUTO_BASIC", ShipEventSeed: 4},
		Store: &types.StoreState{
			Shelves: []types.StoreShelf{
				{ItemType: types.StoreItemWeapon, Items: [3]*types.StoreItem{item, nil, nil}},
				{ItemType: types.StoreItemDrone},
			},
			Fuel: 5,
		},
	}}
	g.Sector.QuestEvents = []types.QuestEvent{{EventID: "QUEST_1", BeaconID: 0}}
	g.RebelFlagship.Occupancy = []int32{1, 2}
	g.StateVars.Set("blue_alien", 1)
	g.StateVars.Set("custom_var", 9)
	return g
}
