// Package blueprints supplies the ship data a saved game leaves out.
//
// A data directory holds blueprints.yaml, mapping blueprint ids to their layout and
// system rooms, and one <layout>.txt per hull in the game's own layout format.
package blueprints

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"ftledit/types"
)

const BlueprintFile = "blueprints.yaml"

var ErrNotFound = errors.New("not in catalog")

// blueprintEntry is one blueprint as written in blueprints.yaml:
//
//	PLAYER_SHIP_HARD:
//	  layout: kestral
//	  weapon_slots: 4
//	  drone_slots: 2
//	  systems: {shields: 1, engines: 1, pilot: 1}
type blueprintEntry struct {
	Layout      string         `yaml:"layout"`
	WeaponSlots int            `yaml:"weapon_slots"`
	DroneSlots  int            `yaml:"drone_slots"`
	Systems     map[string]int `yaml:"systems"`
}

type blueprintFile struct {
	Blueprints map[string]blueprintEntry `yaml:"blueprints"`
}

// Catalog holds blueprints and layouts.  Layouts are read from the data directory
// the first time they are asked for.
type Catalog struct {
	dir string

	mu         sync.Mutex
	blueprints map[string]*types.ShipBlueprint
	layouts    map[string]*types.ShipLayout
}

// New returns an empty catalog with no data directory.  Fill it with Add.
func New() *Catalog {
	return &Catalog{blueprints: map[string]*types.ShipBlueprint{}, layouts: map[string]*types.ShipLayout{}}
}

// Load reads dir/blueprints.yaml.
func Load(dir string) (*Catalog, error) {
	data, err := os.ReadFile(filepath.Join(dir, BlueprintFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read blueprints: %w", err)
	}
	c := New()
	c.dir = dir
	if err := c.parseBlueprints(data); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", BlueprintFile, err)
	}
	return c, nil
}

func (c *Catalog) parseBlueprints(data []byte) error {
	var file blueprintFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return err
	}
	for id, entry := range file.Blueprints {
		if entry.Layout == "" {
			return fmt.Errorf("blueprint %s: layout is required", id)
		}
		bp := &types.ShipBlueprint{
			ID:          id,
			LayoutID:    entry.Layout,
			WeaponSlots: entry.WeaponSlots,
			DroneSlots:  entry.DroneSlots,
			SystemRooms: map[types.SystemType]int{},
		}
		for name, rooms := range entry.Systems {
			t, ok := types.SystemTypeByID(name)
			if !ok {
				return fmt.Errorf("blueprint %s: unknown system %q", id, name)
			}
			bp.SystemRooms[t] = rooms
		}
		c.blueprints[id] = bp
	}
	return nil
}

// Add puts a blueprint and its layout in the catalog, replacing any with the same ids.
func (c *Catalog) Add(bp *types.ShipBlueprint, layout *types.ShipLayout) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blueprints[bp.ID] = bp
	if layout != nil {
		c.layouts[layout.ID] = layout
	}
}

func (c *Catalog) ShipBlueprint(id string) (*types.ShipBlueprint, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	bp, ok := c.blueprints[id]
	if !ok {
		return nil, fmt.Errorf("blueprint %q: %w", id, ErrNotFound)
	}
	return bp, nil
}

func (c *Catalog) ShipLayout(id string) (*types.ShipLayout, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if layout, ok := c.layouts[id]; ok {
		return layout, nil
	}
	if c.dir == "" {
		return nil, fmt.Errorf("layout %q: %w", id, ErrNotFound)
	}

	f, err := os.Open(filepath.Join(c.dir, id+".txt"))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("layout %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	layout, err := ParseLayout(id, f)
	if err != nil {
		return nil, err
	}
	c.layouts[id] = layout
	return layout, nil
}

// BlueprintIDs lists the known blueprints, sorted.
func (c *Catalog) BlueprintIDs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Sorted(maps.Keys(c.blueprints))
}
