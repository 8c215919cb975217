package main

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"ftledit/codec"
	"ftledit/tables"
	"ftledit/types"
	"ftledit/utils"
)

// ettable is something that can be get-ted, and usually set-ted.
type ettable struct {
	get func(d *document) (string, error)

	// set returns the value actually used, which fuzzy matching can make different
	// from what was asked for.  nil for read-only things.
	set func(d *document, to string) (string, error)

	// options lists the allowed values, for things that have a fixed set of them
	options func(d *document) []string
}

func ettablesFor(kind codec.Kind) map[string]ettable {
	if kind == codec.KindProfile {
		return profileEttables
	}
	return savedGameEttables
}

func listEttables(table map[string]ettable, settable bool) string {
	var names []string
	for _, k := range slices.Sorted(maps.Keys(table)) {
		if settable && table[k].set == nil {
			continue
		}
		names = append(names, "   "+k)
	}
	return strings.Join(names, "\n")
}

// parseCount reads the sort of number a player has a pile of.
func parseCount(to, what string) (int32, error) {
	n, err := strconv.ParseInt(to, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", what, to)
	}
	if n < 0 {
		return 0, errors.New("negative values are not allowed for " + what)
	}
	return int32(n), nil
}

// splitPair splits "thing:value", the argument format for settables that are lists.
func splitPair(to, what string) (string, string, error) {
	thing, value, ok := strings.Cut(to, ":")
	if !ok {
		return "", "", fmt.Errorf("expected argument to \"set %s\" is \"thing:value\"", what)
	}
	return thing, value, nil
}

// shipCount is an ettable for one of the player ship's resource counters.
func shipCount(what string, field func(s *types.ShipState) *int32) ettable {
	return ettable{
		get: func(d *document) (string, error) {
			return fmt.Sprint(*field(&d.game.PlayerShip)), nil
		},
		set: func(d *document, to string) (string, error) {
			n, err := parseCount(to, what)
			if err != nil {
				return "", err
			}
			*field(&d.game.PlayerShip) = n
			return fmt.Sprint(n), nil
		},
	}
}

func listOf(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, "\n")
}

// installedSystems names the installed systems by index.  A type installed more than
// once (artillery spanning two rooms) gets numbered: "Artillery 1", "Artillery 2".
func installedSystems(systems []types.SystemState) map[int]string {
	count := map[types.SystemType]int{}
	for _, s := range systems {
		if s.Capacity > 0 {
			count[s.Type]++
		}
	}
	names := map[int]string{}
	seen := map[types.SystemType]int{}
	for i, s := range systems {
		if s.Capacity == 0 {
			continue
		}
		seen[s.Type]++
		names[i] = s.Type.String()
		if count[s.Type] > 1 {
			names[i] += fmt.Sprintf(" %d", seen[s.Type])
		}
	}
	return names
}

var difficultyNames = map[types.Difficulty]string{
	types.DifficultyEasy:   types.DifficultyEasy.String(),
	types.DifficultyNormal: types.DifficultyNormal.String(),
	types.DifficultyHard:   types.DifficultyHard.String(),
}

var savedGameEttables = map[string]ettable{
	"scrap":       shipCount("scrap", func(s *types.ShipState) *int32 { return &s.Scrap }),
	"fuel":        shipCount("fuel", func(s *types.ShipState) *int32 { return &s.Fuel }),
	"missiles":    shipCount("missiles", func(s *types.ShipState) *int32 { return &s.Missiles }),
	"drone parts": shipCount("drone parts", func(s *types.ShipState) *int32 { return &s.DroneParts }),
	"hull":        shipCount("hull", func(s *types.ShipState) *int32 { return &s.Hull }),
	"reactor":     shipCount("reactor", func(s *types.ShipState) *int32 { return &s.ReservePowerCapacity }),

	"ship name": {
		get: func(d *document) (string, error) {
			if !d.game.NamesInSync() {
				return fmt.Sprintf("%s (header says %s)", d.game.PlayerShip.Name, d.game.PlayerShipName), nil
			}
			return d.game.PlayerShip.Name, nil
		},
		set: func(d *document, to string) (string, error) {
			d.game.SetPlayerShipName(to)
			return to, nil
		},
	},

	"blueprint": {
		get: func(d *document) (string, error) {
			return d.game.PlayerShip.BlueprintID, nil
		},
	},

	"difficulty": {
		get: func(d *document) (string, error) {
			return d.game.Difficulty.String(), nil
		},
		set: func(d *document, to string) (string, error) {
			diff, name, err := utils.Lookup(difficultyNames, to, "difficulty")
			if err != nil {
				return "", err
			}
			d.game.Difficulty = diff
			return name, nil
		},
		options: func(d *document) []string {
			return slices.Sorted(maps.Values(difficultyNames))
		},
	},

	"dlc": {
		get: func(d *document) (string, error) {
			f, _ := codec.SavedGameFeaturesFor(d.version)
			if !f.Extended {
				return "not stored in format " + fmt.Sprint(d.version), nil
			}
			return fmt.Sprint(d.game.DLCEnabled), nil
		},
		set: func(d *document, to string) (string, error) {
			f, _ := codec.SavedGameFeaturesFor(d.version)
			if !f.Extended {
				return "", fmt.Errorf("format %d has no expansion flag", d.version)
			}
			on, name, err := utils.Lookup(map[bool]string{true: "true", false: "false"}, to, "dlc")
			if err != nil {
				return "", err
			}
			d.game.DLCEnabled = on
			return name, nil
		},
		options: func(d *document) []string { return []string{"false", "true"} },
	},

	"sector": {
		get: func(d *document) (string, error) {
			return fmt.Sprint(d.game.OneBasedSectorNumber), nil
		},
		set: func(d *document, to string) (string, error) {
			n, err := parseCount(to, "sector")
			if err != nil {
				return "", err
			}
			if n < 1 {
				return "", errors.New("sectors are numbered from 1")
			}
			d.game.OneBasedSectorNumber = n
			return fmt.Sprint(n), nil
		},
	},

	// The game regenerates the sector map from this, so changing it reshuffles
	// the sector tree without touching the current sector.
	"sector seed": {
		get: func(d *document) (string, error) {
			return fmt.Sprint(d.game.Sector.TreeSeed), nil
		},
		set: func(d *document, to string) (string, error) {
			n, err := strconv.ParseInt(to, 10, 32)
			if err != nil {
				return "", fmt.Errorf("sector seed: %q is not a number", to)
			}
			d.game.Sector.TreeSeed = int32(n)
			return fmt.Sprint(n), nil
		},
	},

	"systems": {
		get: func(d *document) (string, error) {
			systems := d.game.PlayerShip.Systems
			names := installedSystems(systems)
			var out []string
			for i, s := range systems {
				if name, ok := names[i]; ok {
					out = append(out, fmt.Sprintf("%s: capacity %d, power %d, damaged %d", name, s.Capacity, s.Power, s.DamagedBars))
				}
			}
			return listOf(out), nil
		},
		// "shields:8" sets the capacity of an installed system.  Installing new
		// systems needs rooms and extended info the editor can't make up.
		set: func(d *document, to string) (string, error) {
			name, value, err := splitPair(to, "systems")
			if err != nil {
				return "", err
			}
			i, matched, err := utils.Lookup(installedSystems(d.game.PlayerShip.Systems), name, "installed system")
			if err != nil {
				return "", err
			}
			capacity, err := parseCount(value, "system capacity")
			if err != nil {
				return "", err
			}
			if capacity == 0 {
				return "", errors.New("systems can't be uninstalled, only resized")
			}
			s := &d.game.PlayerShip.Systems[i]
			s.Capacity = capacity
			s.Power = min(s.Power, capacity)
			s.DamagedBars = min(s.DamagedBars, capacity)
			return fmt.Sprintf("%s:%d", matched, capacity), nil
		},
	},

	"crew": {
		get: func(d *document) (string, error) {
			var out []string
			for _, c := range d.game.PlayerShip.Crew {
				race := c.Race
				if name, ok := tables.Races[c.Race]; ok {
					race = name
				}
				out = append(out, fmt.Sprintf("%s (%s): health %d, room %d", c.Name, race, c.Health, c.RoomID))
			}
			return listOf(out), nil
		},
	},

	"weapons": {
		get: func(d *document) (string, error) {
			bp, err := d.catalog.ShipBlueprint(d.game.PlayerShip.BlueprintID)
			if err != nil {
				return "", err
			}
			var out []string
			for i, w := range d.game.PlayerShip.WeaponSlots(bp) {
				switch {
				case w == nil:
					out = append(out, fmt.Sprintf("%d: empty", i+1))
				case w.Armed:
					out = append(out, fmt.Sprintf("%d: %s (armed)", i+1, w.WeaponID))
				default:
					out = append(out, fmt.Sprintf("%d: %s", i+1, w.WeaponID))
				}
			}
			return listOf(out), nil
		},
	},

	"drones": {
		get: func(d *document) (string, error) {
			bp, err := d.catalog.ShipBlueprint(d.game.PlayerShip.BlueprintID)
			if err != nil {
				return "", err
			}
			var out []string
			for i, dr := range d.game.PlayerShip.DroneSlots(bp) {
				if dr == nil {
					out = append(out, fmt.Sprintf("%d: empty", i+1))
				} else {
					out = append(out, fmt.Sprintf("%d: %s", i+1, dr.DroneID))
				}
			}
			return listOf(out), nil
		},
	},

	"augments": {
		get: func(d *document) (string, error) {
			return listOf(d.game.PlayerShip.Augments), nil
		},
	},

	"cargo": {
		get: func(d *document) (string, error) {
			return listOf(d.game.Cargo), nil
		},
	},

	"vars": {
		get: func(d *document) (string, error) {
			var out []string
			for _, id := range tables.StateVarIDs {
				v, _ := d.game.StateVars.Get(id)
				out = append(out, fmt.Sprintf("%s: %d", id, v))
			}
			for _, v := range d.game.StateVars.Extra {
				out = append(out, fmt.Sprintf("%s: %d (unlisted)", v.ID, v.Value))
			}
			return listOf(out), nil
		},
		set: func(d *document, to string) (string, error) {
			name, value, err := splitPair(to, "vars")
			if err != nil {
				return "", err
			}
			ids := slices.Clone(tables.StateVarIDs)
			for _, v := range d.game.StateVars.Extra {
				ids = append(ids, v.ID)
			}
			id, err := utils.LookupName(ids, name, "state variable")
			if err != nil {
				return "", err
			}
			n, err := strconv.ParseInt(value, 10, 32)
			if err != nil {
				return "", fmt.Errorf("%s: %q is not a number", id, value)
			}
			d.game.StateVars.Set(id, int32(n))
			return fmt.Sprintf("%s:%d", id, n), nil
		},
	},
}

// shipDisplayNames covers every unlock slot, named or not.
func shipDisplayNames() map[string]string {
	names := map[string]string{}
	for _, id := range tables.ShipBaseIDs {
		names[id] = id
		if name, ok := tables.ShipNames[id]; ok {
			names[id] = name
		}
	}
	return names
}

func totalCount(what string, field func(t *types.TotalRecords) *int32) ettable {
	return ettable{
		get: func(d *document) (string, error) {
			return fmt.Sprint(*field(&d.profile.Stats.Totals)), nil
		},
		set: func(d *document, to string) (string, error) {
			n, err := parseCount(to, what)
			if err != nil {
				return "", err
			}
			*field(&d.profile.Stats.Totals) = n
			return fmt.Sprint(n), nil
		},
	}
}

var profileEttables = map[string]ettable{
	"unlocks": {
		get: func(d *document) (string, error) {
			names := shipDisplayNames()
			var out []string
			for _, id := range tables.ShipBaseIDs {
				u := d.profile.ShipUnlocks[id]
				out = append(out, fmt.Sprintf("%s: %s", names[id], unlockString(u)))
			}
			return listOf(out), nil
		},
		// "stealth:A+C", "mantis:none"
		set: func(d *document, to string) (string, error) {
			name, value, err := splitPair(to, "unlocks")
			if err != nil {
				return "", err
			}
			id, matched, err := utils.Lookup(shipDisplayNames(), name, "ship")
			if err != nil {
				return "", err
			}
			var u types.ShipAvailability
			for _, layout := range strings.Split(strings.ToUpper(value), "+") {
				switch layout {
				case "A":
					u.UnlockedA = true
				case "C":
					u.UnlockedC = true
				case "NONE", "":
				default:
					return "", fmt.Errorf("unknown layout %q, expected A, C, A+C or none", layout)
				}
			}
			f, _ := codec.ProfileFeaturesFor(d.version)
			if u.UnlockedC && !f.VariantC {
				return "", fmt.Errorf("format %d profiles have no C layouts", d.version)
			}
			d.profile.ShipUnlocks[id] = u
			return matched + ":" + unlockString(u), nil
		},
	},

	"achievements": {
		get: func(d *document) (string, error) {
			var out []string
			for _, a := range d.profile.Achievements {
				name, ok := tables.Achievements[a.ID]
				if !ok {
					name = "Unknown (" + a.ID + ")"
				}
				out = append(out, fmt.Sprintf("%s (%s)", name, a.Difficulty))
			}
			return listOf(out), nil
		},
		// "victory:hard" adds or changes one, "victory:empty" removes it
		set: func(d *document, to string) (string, error) {
			name, value, err := splitPair(to, "achievements")
			if err != nil {
				return "", err
			}
			id, matched, err := utils.Lookup(tables.Achievements, name, "achievement")
			if err != nil {
				return "", err
			}
			i := slices.IndexFunc(d.profile.Achievements, func(a types.AchievementRecord) bool { return a.ID == id })

			if value == "empty" {
				if i >= 0 {
					d.profile.Achievements = slices.Delete(d.profile.Achievements, i, i+1)
				}
				return matched + ":empty", nil
			}
			diff, diffName, err := utils.Lookup(difficultyNames, value, "difficulty")
			if err != nil {
				return "", err
			}
			if i >= 0 {
				d.profile.Achievements[i].Difficulty = diff
			} else {
				d.profile.Achievements = append(d.profile.Achievements, types.AchievementRecord{ID: id, Difficulty: diff})
			}
			return matched + ":" + diffName, nil
		},
	},

	"newbie tip level": {
		get: func(d *document) (string, error) {
			f, _ := codec.ProfileFeaturesFor(d.version)
			if !f.NewbieTip {
				return "not stored in format " + fmt.Sprint(d.version), nil
			}
			return fmt.Sprint(d.profile.NewbieTipLevel), nil
		},
		set: func(d *document, to string) (string, error) {
			f, _ := codec.ProfileFeaturesFor(d.version)
			if !f.NewbieTip {
				return "", fmt.Errorf("format %d has no tip level", d.version)
			}
			n, err := parseCount(to, "newbie tip level")
			if err != nil {
				return "", err
			}
			d.profile.NewbieTipLevel = n
			return fmt.Sprint(n), nil
		},
	},

	"games played": totalCount("games played", func(t *types.TotalRecords) *int32 { return &t.GamesPlayed }),
	"victories":    totalCount("victories", func(t *types.TotalRecords) *int32 { return &t.Victories }),

	"top scores": {
		get: func(d *document) (string, error) {
			var out []string
			for i, s := range d.profile.Stats.TopScores {
				line := fmt.Sprintf("%d: %d - %s (%s), sector %d, %s", i+1, s.Value, s.ShipName, s.ShipID, s.Sector, s.Difficulty)
				if s.Victory {
					line += ", victory"
				}
				out = append(out, line)
			}
			return listOf(out), nil
		},
	},
}

func unlockString(u types.ShipAvailability) string {
	switch {
	case u.UnlockedA && u.UnlockedC:
		return "A+C"
	case u.UnlockedA:
		return "A"
	case u.UnlockedC:
		return "C"
	}
	return "none"
}

// lookupEttable fuzzy-matches what against the table.
func lookupEttable(table map[string]ettable, what string, settable bool) (string, ettable, error) {
	names := slices.Collect(maps.Keys(table))
	if settable {
		names = slices.DeleteFunc(names, func(k string) bool { return table[k].set == nil })
	}
	name, err := utils.LookupName(names, what, "settable")
	if err != nil {
		verb := "gettable"
		if settable {
			verb = "settable"
		}
		return "", ettable{}, fmt.Errorf("%w.  %ss are:\n%s", err, strings.ToUpper(verb[:1])+verb[1:], listEttables(table, settable))
	}
	return name, table[name], nil
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <file> <what>",
		Short: "Display the current state of something",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.load(args[0])
			if err != nil {
				return err
			}
			table := ettablesFor(d.kind)
			if len(args) < 2 {
				return errors.New("get what?  Gettables are:\n" + listEttables(table, false))
			}
			_, e, err := lookupEttable(table, args[1], false)
			if err != nil {
				return err
			}
			str, err := e.get(d)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), str)
			return nil
		},
	}
}

func newSetCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "set <file> <what> <to>",
		Short: "Change something and write the file back",
		Long: `Change something and write the file back.  The old file is kept with .old on
the end of its name, unless --out sends the result somewhere else.

It is usually not necessary to type the full name of something: "drone" will be
recognized as "drone parts".  Lists are set one entry at a time as "entry:value",
e.g. "set continue.sav systems shields:4".`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.load(args[0])
			if err != nil {
				return err
			}
			what, e, err := lookupEttable(ettablesFor(d.kind), args[1], true)
			if err != nil {
				return err
			}
			if len(args) < 3 {
				msg := "set " + what + " to what?"
				if e.options != nil {
					msg += "  Options are:\n   " + strings.Join(e.options(d), "\n   ")
				}
				return errors.New(msg)
			}

			matched, err := e.set(d, args[2])
			if err != nil {
				return err
			}
			if err := a.save(d, out); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), what, "set to", matched)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "write the edited file here instead of over the original")
	return cmd
}
