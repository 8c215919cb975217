package codec

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"ftledit/blueprints"
	"ftledit/tables"
	"ftledit/types"
)

// scoutGameV2 is a minimal format 2 saved game around TEST_SCOUT, built by hand.
// shipStart is the offset the player ship begins at.
func scoutGameV2() (b *builder, shipStart int) {
	b = &builder{}
	b.ints(2)
	b.ints(1, 3, 4, 5, 6)
	b.str("Scout").str("TEST_SCOUT")
	b.ints(1, 77)

	shipStart = b.buf.Len()
	b.str("TEST_SCOUT").str("Scout").str("scout_gfx")
	b.ints(0)
	b.ints(10, 0, 0, 0, 0)
	b.ints(0)
	b.ints(4)
	for t := types.SystemType(0); t <= types.SystemArtillery; t++ {
		if t == types.SystemPilot {
			b.ints(1, 1, 0, 0, 0, 0, 0)
		} else {
			b.ints(0)
		}
	}
	b.ints(100, 0, 0, -1)
	b.ints(0)
	b.ints(0, 0, 0)

	b.bools(false)
	b.ints(0)

	b.ints(7, 8, 0, 0, 0)
	b.bools(false, false).ints(0).bools(false)
	b.ints(0)
	b.ints(0).bools(false)
	b.ints(0)
	b.ints(0)
	b.ints(0)
	b.ints(0)

	b.ints(0, 0)

	b.ints(5)
	for range len(tables.StateVarIDs) - 1 {
		b.ints(0)
	}
	b.ints(0)
	return b, shipStart
}

func TestDecodeSavedGameV2(t *testing.T) {
	b, _ := scoutGameV2()
	b.raw(0xde, 0xad)
	data := b.bytes()
	catalog := testCatalog()

	g, err := DecodeSavedGame(data, catalog)
	if err != nil {
		t.Fatalf("DecodeSavedGame: %v", err)
	}
	if g.Version != 2 || g.Difficulty != types.DifficultyNormal || g.TotalCrewHired != 6 || g.HeaderOpaque != 77 {
		t.Errorf("header = %+v", g)
	}
	if !g.NamesInSync() {
		t.Errorf("header names %q/%q, ship %q/%q", g.PlayerShipName, g.PlayerShipBlueprintID, g.PlayerShip.Name, g.PlayerShip.BlueprintID)
	}
	ship := g.PlayerShip
	if ship.LayoutID != "test_scout" || ship.Hull != 10 || ship.ReservePowerCapacity != 4 {
		t.Errorf("ship = %+v", ship)
	}
	wantSystems := []types.SystemState{{Type: types.SystemPilot, Capacity: 1, Power: 1}}
	if !reflect.DeepEqual(ship.Systems, wantSystems) {
		t.Errorf("systems = %+v", ship.Systems)
	}
	if len(ship.Rooms) != 1 || ship.Rooms[0].Oxygen != 100 || ship.Rooms[0].Squares[0].Opaque != -1 || ship.Rooms[0].Station != nil {
		t.Errorf("rooms = %+v", ship.Rooms)
	}
	if ship.ExtendedSystems != nil {
		t.Errorf("format 2 ship has extended info %v", ship.ExtendedSystems)
	}
	if g.NearbyShip != nil {
		t.Errorf("unexpected nearby ship")
	}
	if g.Sector.TreeSeed != 7 || g.Sector.LayoutSeed != 8 {
		t.Errorf("sector = %+v", g.Sector)
	}
	if v, ok := g.StateVars.Get("blue_alien"); !ok || v != 5 {
		t.Errorf("blue_alien = %d, %v", v, ok)
	}
	if len(g.Mystery) != 1 || !bytes.Equal(g.Mystery[0].Data, []byte{0xde, 0xad}) || g.Mystery[0].Offset != int64(len(data)-2) {
		t.Errorf("mystery = %v", g.Mystery)
	}

	out, err := EncodeSavedGame(g, catalog)
	if err != nil {
		t.Fatalf("EncodeSavedGame: %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Errorf("re-encoded saved game differs:\n got %x\nwant %x", out, data)
	}
}

func TestSavedGameTruncated(t *testing.T) {
	b, shipStart := scoutGameV2()
	data := b.bytes()[:shipStart+10]
	_, err := DecodeSavedGame(data, testCatalog())
	var truncated *types.TruncatedInputError
	if !errors.As(err, &truncated) {
		t.Fatalf("got %v, want TruncatedInputError", err)
	}
	if truncated.Path != "savedgame.ship[0]" || truncated.Offset != int64(shipStart+4) {
		t.Errorf("got %+v", truncated)
	}
}

func TestSavedGameUnknownBlueprint(t *testing.T) {
	b, _ := scoutGameV2()
	_, err := DecodeSavedGame(b.bytes(), blueprints.New())
	if !errors.Is(err, blueprints.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) || decodeErr.Stage != StageHeaderRead {
		t.Errorf("got %v", err)
	}
}

func TestSavedGameUnsupportedVersion(t *testing.T) {
	_, err := DecodeSavedGame((&builder{}).ints(3, 0).bytes(), testCatalog())
	var versionErr *types.UnsupportedFormatVersionError
	if !errors.As(err, &versionErr) || !reflect.DeepEqual(versionErr.Supported, []int32{2, 7, 8, 9}) {
		t.Errorf("got %v", err)
	}
}

func TestSavedGameRoundTrip(t *testing.T) {
	catalog := testCatalog()
	for _, version := range SupportedSavedGameVersions() {
		g := sampleGame(t, version)
		data, err := EncodeSavedGame(g, catalog)
		if err != nil {
			t.Fatalf("version %d: EncodeSavedGame: %v", version, err)
		}
		decoded, err := DecodeSavedGame(data, catalog)
		if err != nil {
			t.Fatalf("version %d: DecodeSavedGame: %v", version, err)
		}
		if !reflect.DeepEqual(decoded, g) {
			t.Errorf("version %d: decoded game differs:\n got %+v\nwant %+v", version, decoded, g)
		}
		again, err := EncodeSavedGame(decoded, catalog)
		if err != nil {
			t.Fatalf("version %d: re-encode: %v", version, err)
		}
		if !bytes.Equal(again, data) {
			t.Errorf("version %d: re-encoded bytes differ", version)
		}
		_, fidelity, err := VerifySavedGame(data, catalog)
		if err != nil || !fidelity.Identical {
			t.Errorf("version %d: verify = %v, %v", version, fidelity, err)
		}
	}
}

// cruiserGameV9 is a format 9 saved game around TEST_CRUISER, built by hand: four
// rooms, shields and pilot installed, three crew, no nearby ship, and one beacon
// with a store.  Every field gets a value of its own so a misplaced read shows up.
func cruiserGameV9() *builder {
	b := &builder{}
	b.ints(9)
	b.bools(true)
	b.ints(1, 11, 12, 300, 14)
	b.str("The Test").str("TEST_CRUISER")
	b.ints(2, 88)

	b.str("TEST_CRUISER").str("The Test").str("cruiser_gfx")
	b.ints(1).str("human").str("Alice")
	b.bools(true).ints(21).bools(false).ints(22)
	b.ints(30, 16, 3, 8, 120)

	b.ints(3)
	for i, name := range []string{"Alice", "Bob", "Carol"} {
		n := int32(i) * 100
		b.str(name).str("human").bools(false)
		b.ints(100-int32(i), n+1, n+2, int32(i), n+3)
		b.bools(true)
		b.ints(n+4, n+5).bools(i == 1).ints(n+6, n+7)
		b.ints(n+8, n+9, n+10, n+11, n+12, n+13)
		b.bools(i == 2)
		b.ints(n+14, n+15, n+16, n+17, n+18)
		b.ints(n+19, n+20, n+21, n+22, n+23, n+24)
		for m := range 12 {
			b.bools(i == 0 && m == 11)
		}
		b.ints(n+25, n+26)
	}
	b.ints(8)

	for t := types.SystemType(0); t < types.SystemCount; t++ {
		switch t {
		case types.SystemShields:
			b.ints(2, 2, 0, 0, 0, 0, 0)
			b.ints(31, 32).bools(false).ints(33, 34, 35)
		case types.SystemPilot:
			b.ints(1, 1, 1, 0, 0, 40, 0)
			b.ints(0, 0).bools(true).ints(0, 0, 0)
		case types.SystemArtillery:
			b.ints(0, 0)
		default:
			b.ints(0)
		}
	}
	b.ints(2, 0, 4, 41).bools(true).ints(42).bools(false).ints(43).bools(true).ints(44).ints(45, 46)

	for i, squares := range []int{4, 2, 2, 2} {
		b.ints(100 - int32(i))
		for j := range squares {
			b.ints(int32(j), 0, -1)
		}
		if i == 2 {
			b.ints(1, int32(types.StationUp))
		} else {
			b.ints(-1, int32(types.StationNone))
		}
	}
	b.ints(1).ints(1, 0, 80)
	b.ints(50, 51, 52).bools(false, false).ints(0)
	b.ints(53, 54, 55).bools(false, true).ints(0)
	b.ints(56, 57, 58).bools(true, false).ints(0)
	b.ints(59)
	b.ints(1).ints(10, 11, 12, 20, 21).bools(true, false).ints(300).bools(false).ints(2, 3, 4)

	b.ints(1).str("LASER_BURST_1").bools(true)
	b.ints(1).str("COMBAT_1").bools(true, false).ints(5, 6, -1, 0, 1)
	b.ints(1).str("SCRAP_COLLECTOR")
	b.bools(true, false, true).ints(60, 61, 62, 63, 64, 3, 65, 1)
	b.ints(500, 10000, 66, 67, 68)

	b.bools(false)
	b.ints(1).str("ARTEMIS")

	b.ints(12345, 999, 70, 71, 72)
	b.bools(true).ints(73).str("x")
	b.bools(true, false).ints(74).bools(false)
	b.bools(true).ints(75)
	b.ints(3).bools(true, false, true)
	b.ints(2).bools(false)
	b.ints(1)
	b.ints(1).str("BG_1").str("PLANET_1").ints(5, 6, 7)
	b.bools(true)
	b.bools(true).str("PIRATE").str("AUTO_BASIC").ints(4)
	b.ints(int32(types.FleetRebel)).bools(false)
	b.bools(true)
	b.ints(2)
	b.ints(int32(types.StoreItemWeapon))
	b.ints(1).str("BOMB_1").ints(76)
	b.ints(0).str("LASER_HEAVY_1").ints(77)
	b.ints(-1)
	b.ints(int32(types.StoreItemDrone), -1, -1, -1)
	b.ints(5, 6, 7)
	b.ints(0)
	b.ints(1).str("QUEST_1").ints(0)
	b.ints(1).str("DISTANT_1")

	b.ints(3)
	b.ints(2, 1, 2)

	for i := range tables.StateVarIDs {
		b.ints(int32(i))
	}
	b.ints(1).str("custom_var").ints(9)
	return b
}

func TestSavedGameV9Scenario(t *testing.T) {
	catalog := testCatalog()
	data := cruiserGameV9().bytes()
	g, err := DecodeSavedGame(data, catalog)
	if err != nil {
		t.Fatalf("DecodeSavedGame: %v", err)
	}

	if !g.DLCEnabled || g.Difficulty != types.DifficultyNormal || g.TotalScrapCollected != 300 || g.HeaderOpaque != 88 || !g.NamesInSync() {
		t.Errorf("header = %+v", g)
	}
	ship := g.PlayerShip
	if len(ship.Rooms) != 4 || len(ship.Systems) != 2 || len(ship.Crew) != 3 || g.NearbyShip != nil {
		t.Fatalf("rooms %d systems %d crew %d nearby %v", len(ship.Rooms), len(ship.Systems), len(ship.Crew), g.NearbyShip)
	}
	if !ship.Hostile || ship.JumpChargeTicks != 21 || ship.JumpAnimTicks != 22 || ship.Scrap != 120 || ship.ReservePowerCapacity != 8 {
		t.Errorf("ship = %+v", ship)
	}

	bob := ship.Crew[1]
	wantBob := types.CrewState{
		Name: "Bob", Race: "human", Health: 99, SpriteX: 101, SpriteY: 102, RoomID: 1, RoomSquare: 103,
		PlayerControlled: true,
		CloneReady:       104, DeathOrder: 105, MindControlled: true, SavedRoomSquare: 106, SavedRoomID: 107,
		PilotSkill: 108, EngineSkill: 109, ShieldSkill: 110, WeaponSkill: 111, RepairSkill: 112, CombatSkill: 113,
		Repairs: 114, CombatKills: 115, PilotedEvasions: 116, JumpsSurvived: 117, SkillMasteries: 118,
		StunTicks: 119, HealthBoost: 120, ClonebayPriority: 121, DamageBoost: 122, UniversalDeathCount: 124,
		Opaque: []int32{123, 125, 126},
	}
	if !reflect.DeepEqual(bob, wantBob) {
		t.Errorf("crew[1]:\n got %+v\nwant %+v", bob, wantBob)
	}
	if ship.Crew[2].Name != "Carol" || !ship.Crew[2].Male || !ship.Crew[0].Masteries[11] || ship.Crew[0].Masteries[0] {
		t.Errorf("crew = %+v", ship.Crew)
	}

	wantSystems := []types.SystemState{
		{Type: types.SystemShields, Capacity: 2, Power: 2, BatteryPower: 31, HackLevel: 32, TemporaryCapacityCap: 33, TemporaryCapacityLoss: 34, TemporaryCapacityDivisor: 35},
		{Type: types.SystemPilot, Capacity: 1, Power: 1, DamagedBars: 1, RepairProgress: 40, Hacked: true},
	}
	if !reflect.DeepEqual(ship.Systems, wantSystems) {
		t.Errorf("systems:\n got %+v\nwant %+v", ship.Systems, wantSystems)
	}
	if len(ship.ExtendedSystems) != 1 {
		t.Fatalf("extended systems = %v", ship.ExtendedSystems)
	}
	shields, ok := ship.ExtendedSystems[0].(*types.ShieldsInfo)
	if !ok || shields.ShieldLayers != 2 || shields.EnergyShieldMax != 4 || !shields.ShieldDropAnimOn || shields.ShieldRaiseAnimTicks != 43 || shields.Opaque != [2]int32{45, 46} {
		t.Errorf("shields info = %+v", ship.ExtendedSystems[0])
	}

	if ship.Rooms[3].Oxygen != 97 || ship.Rooms[0].Squares[3].FireHealth != 3 {
		t.Errorf("rooms = %+v", ship.Rooms)
	}
	if st := ship.Rooms[2].Station; st == nil || st.Direction != types.StationUp || st.Square != 1 {
		t.Errorf("station = %v", st)
	}
	if ship.Rooms[0].Station != nil {
		t.Errorf("room 0 station = %v", ship.Rooms[0].Station)
	}
	doors := ship.Doors
	if d := doors[types.DoorCoordinate{X: 2, Y: 1}]; !d.Open || d.CurrentMaxHealth != 56 || d.NominalHealth != 58 {
		t.Errorf("door 2,1 = %+v", d)
	}
	if d := doors[types.DoorCoordinate{X: 4, Y: 0, Vertical: 1}]; d.Open || !d.WalkingThrough || d.Health != 54 {
		t.Errorf("door 4,0 = %+v", d)
	}
	if ship.CloakAnimTicks != 59 {
		t.Errorf("cloak anim = %d", ship.CloakAnimTicks)
	}
	if len(ship.LockdownCrystals) != 1 || ship.LockdownCrystals[0].Lifetime != 300 || ship.LockdownCrystals[0].ShardProgress != 4 {
		t.Errorf("crystals = %+v", ship.LockdownCrystals)
	}
	if ship.Weapons[0].Module == nil || *ship.Weapons[0].Module != (types.WeaponModule{CooldownTicks: 500, CooldownTicksGoal: 10000, SubcooldownTicks: 66, Boost: 67, Charge: 68}) {
		t.Errorf("weapon = %+v", ship.Weapons[0])
	}
	if ext := ship.Drones[0].Extended; ext == nil || !ext.Deployed || ext.Arrived || ext.Pod == nil || ext.Pod.GoalX != 3 || ext.Pod.BodyHealth != 1 {
		t.Errorf("drone = %+v", ship.Drones[0])
	}
	if slots := ship.DroneSlots(&types.ShipBlueprint{DroneSlots: 2}); len(slots) != 2 || slots[0] == nil || slots[1] != nil {
		t.Errorf("drone slots = %v", slots)
	}

	sector := g.Sector
	if sector.TreeSeed != 12345 || !reflect.DeepEqual(sector.Visitation, []bool{true, false, true}) {
		t.Errorf("sector seed %d visitation %v", sector.TreeSeed, sector.Visitation)
	}
	if !sector.Waiting || sector.WaitEventSeed != 73 || sector.OpaqueText != "x" || !sector.RebelFlagshipRetreating || sector.RebelFlagshipBaseTurns != 75 || sector.Number != 2 {
		t.Errorf("sector = %+v", sector)
	}
	if len(sector.Beacons) != 1 || sector.Beacons[0].Store == nil {
		t.Fatalf("beacons = %+v", sector.Beacons)
	}
	store := sector.Beacons[0].Store
	item := store.Shelves[0].Items[0]
	if item == nil || item.ItemID != "BOMB_1" || !item.Available || !reflect.DeepEqual(item.Opaque, []int32{76}) {
		t.Errorf("store item = %+v", item)
	}
	if sold := store.Shelves[0].Items[1]; sold == nil || sold.Available || store.Shelves[0].Items[2] != nil {
		t.Errorf("shelf = %+v", store.Shelves[0])
	}
	if store.Fuel != 5 || store.DroneParts != 7 {
		t.Errorf("store = %+v", store)
	}
	if g.RebelFlagship.PendingStage != 3 || !reflect.DeepEqual(g.RebelFlagship.Occupancy, []int32{1, 2}) {
		t.Errorf("flagship = %+v", g.RebelFlagship)
	}
	if v, ok := g.StateVars.Get("dead_crew"); !ok || v != 1 {
		t.Errorf("dead_crew = %d, %v", v, ok)
	}
	if v, ok := g.StateVars.Get("custom_var"); !ok || v != 9 {
		t.Errorf("custom_var = %d, %v", v, ok)
	}
	if len(g.Mystery) != 0 {
		t.Errorf("unexpected mystery %v", g.Mystery)
	}

	out, err := EncodeSavedGame(g, catalog)
	if err != nil {
		t.Fatalf("EncodeSavedGame: %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Errorf("re-encoded saved game differs:\n got %x\nwant %x", out, data)
	}
}

// Editing known fields moves the trailing bytes along with the end of the file but
// leaves them untouched.
func TestMysteryKeptThroughEdit(t *testing.T) {
	catalog := testCatalog()
	tail := []byte{1, 2, 3, 4, 5, 6, 7}
	data := cruiserGameV9().raw(tail...).bytes()

	g, err := DecodeSavedGame(data, catalog)
	if err != nil {
		t.Fatalf("DecodeSavedGame: %v", err)
	}
	if len(g.Mystery) != 1 || !bytes.Equal(g.Mystery[0].Data, tail) || g.Mystery[0].Offset != int64(len(data)-len(tail)) {
		t.Fatalf("mystery = %v", g.Mystery)
	}

	g.PlayerShip.Scrap = 999
	g.PlayerShip.Crew[1].Name = "Bob the Builder"
	out, err := EncodeSavedGame(g, catalog)
	if err != nil {
		t.Fatalf("EncodeSavedGame: %v", err)
	}
	if grew := len(out) - len(data); grew != len("Bob the Builder")-len("Bob") {
		t.Errorf("file grew by %d bytes", grew)
	}
	if !bytes.HasSuffix(out, tail) {
		t.Errorf("trailing bytes lost: %x", out[len(out)-len(tail):])
	}

	again, err := DecodeSavedGame(out, catalog)
	if err != nil {
		t.Fatalf("DecodeSavedGame after edit: %v", err)
	}
	if again.PlayerShip.Scrap != 999 || again.PlayerShip.Crew[1].Name != "Bob the Builder" {
		t.Errorf("edits lost: scrap %d, crew %q", again.PlayerShip.Scrap, again.PlayerShip.Crew[1].Name)
	}
	if len(again.Mystery) != 1 || !bytes.Equal(again.Mystery[0].Data, tail) || again.Mystery[0].Offset != int64(len(out)-len(tail)) {
		t.Errorf("mystery after edit = %v", again.Mystery)
	}
}

func TestSavedGameNearbyShip(t *testing.T) {
	catalog := testCatalog()
	g := sampleGame(t, 7)
	f, _ := SavedGameFeaturesFor(7)
	nearby := testShip(t, catalog, "TEST_SCOUT", f)
	nearby.Name = "Pirate Scout"
	nearby.Hostile = true
	nearby.Systems = []types.SystemState{{Type: types.SystemPilot, Capacity: 1, Power: 1, Hacked: true}}
	g.NearbyShip = nearby

	data, err := EncodeSavedGame(g, catalog)
	if err != nil {
		t.Fatalf("EncodeSavedGame: %v", err)
	}
	decoded, err := DecodeSavedGame(data, catalog)
	if err != nil {
		t.Fatalf("DecodeSavedGame: %v", err)
	}
	if !reflect.DeepEqual(decoded.NearbyShip, nearby) {
		t.Errorf("nearby ship differs:\n got %+v\nwant %+v", decoded.NearbyShip, nearby)
	}
}

// Artillery spans two rooms on the test cruiser; an empty first slot has to stay
// in front of the installed one.
func TestSystemPlaceholdersAndExtendedInfo(t *testing.T) {
	catalog := testCatalog()
	g := sampleGame(t, 9)
	ship := &g.PlayerShip
	ship.Systems = append(ship.Systems,
		types.SystemState{Type: types.SystemArtillery},
		types.SystemState{Type: types.SystemArtillery, Capacity: 3, Power: 2},
		types.SystemState{Type: types.SystemMindControl, Capacity: 2},
		types.SystemState{Type: types.SystemHacking, Capacity: 1, HackLevel: 1},
	)
	ship.ExtendedSystems = append(ship.ExtendedSystems,
		&types.HackingInfo{TargetSystemType: types.SystemWeapons, Arrived: true, DisruptionTicksGoal: 100},
		&types.MindControlInfo{MindControlTicksGoal: 50},
		&types.ArtilleryInfo{Module: types.WeaponModule{Charge: 1}},
	)

	data, err := EncodeSavedGame(g, catalog)
	if err != nil {
		t.Fatalf("EncodeSavedGame: %v", err)
	}
	decoded, err := DecodeSavedGame(data, catalog)
	if err != nil {
		t.Fatalf("DecodeSavedGame: %v", err)
	}
	if !reflect.DeepEqual(decoded.PlayerShip.Systems, ship.Systems) {
		t.Errorf("systems:\n got %+v\nwant %+v", decoded.PlayerShip.Systems, ship.Systems)
	}
	var kinds []types.SystemType
	for _, info := range decoded.PlayerShip.ExtendedSystems {
		kinds = append(kinds, info.SystemType())
	}
	wantKinds := []types.SystemType{types.SystemShields, types.SystemHacking, types.SystemMindControl, types.SystemArtillery}
	if !reflect.DeepEqual(kinds, wantKinds) {
		t.Errorf("extended info order = %v, want %v", kinds, wantKinds)
	}
	if got := decoded.PlayerShip.System(types.SystemArtillery); got == nil || got.Capacity != 3 {
		t.Errorf("System(artillery) = %+v", got)
	}
	if hacking := decoded.PlayerShip.ExtendedInfo(types.SystemHacking); len(hacking) != 1 || hacking[0].(*types.HackingInfo).TargetSystemType != types.SystemWeapons {
		t.Errorf("hacking info = %v", hacking)
	}
}

func TestEncodeStructuralMismatch(t *testing.T) {
	catalog := testCatalog()
	tests := []struct {
		name    string
		version int32
		mutate  func(g *types.SavedGame)
		want    string
	}{
		{"extra room", 9, func(g *types.SavedGame) {
			g.PlayerShip.Rooms = append(g.PlayerShip.Rooms, types.RoomState{})
		}, "5 rooms"},
		{"wrong square count", 9, func(g *types.SavedGame) {
			g.PlayerShip.Rooms[0].Squares = g.PlayerShip.Rooms[0].Squares[:3]
		}, "3 squares"},
		{"missing door", 9, func(g *types.SavedGame) {
			delete(g.PlayerShip.Doors, types.DoorCoordinate{X: 4, Y: 0, Vertical: 1})
		}, "2 doors"},
		{"moved door", 9, func(g *types.SavedGame) {
			delete(g.PlayerShip.Doors, types.DoorCoordinate{X: 4, Y: 0, Vertical: 1})
			g.PlayerShip.Doors[types.DoorCoordinate{X: 9, Y: 9}] = types.DoorState{Opaque: []int32{0}}
		}, "no state for door"},
		{"door opaque", 7, func(g *types.SavedGame) {
			g.PlayerShip.Doors[types.DoorCoordinate{X: 2, Y: 1}] = types.DoorState{}
		}, "opaque"},
		{"too many artillery", 9, func(g *types.SavedGame) {
			for range 3 {
				g.PlayerShip.Systems = append(g.PlayerShip.Systems, types.SystemState{Type: types.SystemArtillery, Capacity: 1})
				g.PlayerShip.ExtendedSystems = append(g.PlayerShip.ExtendedSystems, &types.ArtilleryInfo{})
			}
		}, "room for 2"},
		{"crew opaque", 8, func(g *types.SavedGame) {
			g.PlayerShip.Crew[1].Opaque = []int32{0, 0, 0}
		}, "3 opaque values"},
		{"weapon module", 7, func(g *types.SavedGame) {
			g.PlayerShip.Weapons[0].Module = nil
		}, "no module state"},
		{"drone extended", 9, func(g *types.SavedGame) {
			g.PlayerShip.Drones[0].Extended = nil
		}, "no extended state"},
		{"missing shields info", 7, func(g *types.SavedGame) {
			g.PlayerShip.ExtendedSystems = nil
		}, "Shields extended info"},
		{"hacking without info", 9, func(g *types.SavedGame) {
			g.PlayerShip.Systems = append(g.PlayerShip.Systems, types.SystemState{Type: types.SystemHacking, Capacity: 1})
		}, "Hacking extended info"},
		{"battery in format 2", 2, func(g *types.SavedGame) {
			g.PlayerShip.Systems = append(g.PlayerShip.Systems, types.SystemState{Type: types.SystemBattery, Capacity: 1})
		}, "can't be stored"},
		{"beacon background", 9, func(g *types.SavedGame) {
			g.Sector.Beacons[0].VisitCount = 0
		}, "visit count 0"},
		{"three shelves in format 2", 2, func(g *types.SavedGame) {
			store := g.Sector.Beacons[0].Store
			store.Shelves = append(store.Shelves, types.StoreShelf{})
		}, "exactly 2"},
		{"store item opaque", 8, func(g *types.SavedGame) {
			g.Sector.Beacons[0].Store.Shelves[0].Items[0].Opaque = nil
		}, "store item"},
		{"layout", 9, func(g *types.SavedGame) {
			g.PlayerShip.LayoutID = "somewhere_else"
		}, "laid out as"},
		{"state var slot", 9, func(g *types.SavedGame) {
			g.StateVars.Known["not_a_slot"] = 1
		}, "not_a_slot"},
	}
	for _, test := range tests {
		g := sampleGame(t, test.version)
		test.mutate(g)
		_, err := EncodeSavedGame(g, catalog)
		var encodeErr *EncodeError
		var mismatch *types.StructuralMismatchError
		if !errors.As(err, &encodeErr) || !errors.As(err, &mismatch) {
			t.Errorf("%s: got %v, want a structural mismatch", test.name, err)
			continue
		}
		if !strings.Contains(mismatch.Detail, test.want) {
			t.Errorf("%s: got %q, want it to mention %q", test.name, mismatch.Detail, test.want)
		}
		if !strings.HasPrefix(mismatch.Path, types.DocSavedGame) {
			t.Errorf("%s: path %q", test.name, mismatch.Path)
		}
	}
}

func TestEncodeLeavesNoPartialOutput(t *testing.T) {
	g := sampleGame(t, 9)
	g.PlayerShip.Rooms = nil
	var buf bytes.Buffer
	if err := WriteSavedGame(&buf, g, testCatalog()); err == nil {
		t.Fatalf("expected an error")
	}
	if buf.Len() != 0 {
		t.Errorf("%d bytes written for a failed encode", buf.Len())
	}
}
