package codec

import (
	"fmt"

	"ftledit/readers"
	"ftledit/types"
	"ftledit/writers"
)

// shipShape is the blueprint data a ship record can't be read without.
type shipShape struct {
	bp     *types.ShipBlueprint
	layout *types.ShipLayout
}

func lookupShip(catalog ShipCatalog, blueprintID string) (shipShape, error) {
	bp, err := catalog.ShipBlueprint(blueprintID)
	if err != nil {
		return shipShape{}, fmt.Errorf("ship blueprint %q: %w", blueprintID, err)
	}
	layout, err := catalog.ShipLayout(bp.LayoutID)
	if err != nil {
		return shipShape{}, fmt.Errorf("ship layout %q (blueprint %q): %w", bp.LayoutID, blueprintID, err)
	}
	return shipShape{bp, layout}, nil
}

func decodeShip(r *readers.Reader, f SavedGameFeatures, catalog ShipCatalog) (*types.ShipState, error) {
	s := &types.ShipState{}
	var err error
	if s.BlueprintID, err = r.ReadString(); err != nil {
		return nil, err
	}
	shape, err := lookupShip(catalog, s.BlueprintID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.Path(), err)
	}
	s.LayoutID = shape.layout.ID

	if s.Name, err = r.ReadString(); err != nil {
		return nil, err
	}
	if s.GfxBaseName, err = r.ReadString(); err != nil {
		return nil, err
	}
	if s.StartingCrew, err = readers.ReadList(r, "startingCrew", decodeStartingCrew); err != nil {
		return nil, err
	}
	if f.Extended {
		if s.Hostile, err = r.ReadBool(); err != nil {
			return nil, err
		}
		if s.JumpChargeTicks, err = r.ReadInt(); err != nil {
			return nil, err
		}
		if s.Jumping, err = r.ReadBool(); err != nil {
			return nil, err
		}
		if s.JumpAnimTicks, err = r.ReadInt(); err != nil {
			return nil, err
		}
	}
	if err = r.ReadIntsInto(&s.Hull, &s.Fuel, &s.DroneParts, &s.Missiles, &s.Scrap); err != nil {
		return nil, err
	}
	s.Crew, err = readers.ReadList(r, "crew", func(r *readers.Reader) (types.CrewState, error) {
		return decodeCrew(r, f)
	})
	if err != nil {
		return nil, err
	}
	if s.ReservePowerCapacity, err = r.ReadInt(); err != nil {
		return nil, err
	}

	if s.Systems, err = decodeSystems(r, f, shape.bp); err != nil {
		return nil, err
	}
	if f.Extended {
		if s.ExtendedSystems, err = decodeExtendedInfoGroup(r, earlyExtendedInfo, s.Systems); err != nil {
			return nil, err
		}
	}

	if s.Rooms, err = decodeRooms(r, f, shape.layout); err != nil {
		return nil, err
	}
	if s.Breaches, err = readers.ReadList(r, "breach", decodeBreach); err != nil {
		return nil, err
	}
	if s.Doors, err = decodeDoors(r, f, shape.layout); err != nil {
		return nil, err
	}
	if f.Extended {
		if s.CloakAnimTicks, err = r.ReadInt(); err != nil {
			return nil, err
		}
	}
	if f.LockdownCrystals {
		if s.LockdownCrystals, err = readers.ReadList(r, "crystal", decodeLockdownCrystal); err != nil {
			return nil, err
		}
	}

	s.Weapons, err = readers.ReadList(r, "weapon", func(r *readers.Reader) (types.WeaponState, error) {
		return decodeWeapon(r, f)
	})
	if err != nil {
		return nil, err
	}
	if s.Drones, err = readers.ReadList(r, "drone", decodeDrone); err != nil {
		return nil, err
	}
	if s.Augments, err = readers.ReadStrings(r, "augment"); err != nil {
		return nil, err
	}
	if !f.Extended {
		return s, nil
	}

	for i := range s.Drones {
		r.Enter("drone[%d]", i)
		if s.Drones[i].Extended, err = decodeExtendedDrone(r); err != nil {
			return nil, err
		}
		r.Leave()
	}
	for i := range s.Weapons {
		r.Enter("weapon[%d]", i)
		module, err := decodeWeaponModule(r)
		if err != nil {
			return nil, err
		}
		s.Weapons[i].Module = &module
		r.Leave()
	}
	late, err := decodeExtendedInfoGroup(r, lateExtendedInfo, s.Systems)
	if err != nil {
		return nil, err
	}
	s.ExtendedSystems = append(s.ExtendedSystems, late...)
	return s, nil
}

func encodeShip(w *writers.Writer, f SavedGameFeatures, catalog ShipCatalog, s *types.ShipState) error {
	shape, err := lookupShip(catalog, s.BlueprintID)
	if err != nil {
		return fmt.Errorf("%s: %w", w.Path(), err)
	}
	if s.LayoutID != "" && s.LayoutID != shape.layout.ID {
		return w.Mismatch("ship is laid out as %s, blueprint %s uses %s", s.LayoutID, s.BlueprintID, shape.layout.ID)
	}
	if f.Extended {
		if err := checkExtendedInfo(w, s); err != nil {
			return err
		}
	}

	w.WriteString(s.BlueprintID)
	w.WriteString(s.Name)
	w.WriteString(s.GfxBaseName)
	if err := writers.WriteList(w, "startingCrew", s.StartingCrew, encodeStartingCrew); err != nil {
		return err
	}
	if f.Extended {
		w.WriteBool(s.Hostile)
		w.WriteInt(s.JumpChargeTicks)
		w.WriteBool(s.Jumping)
		w.WriteInt(s.JumpAnimTicks)
	}
	w.WriteIntFields(s.Hull, s.Fuel, s.DroneParts, s.Missiles, s.Scrap)
	err = writers.WriteList(w, "crew", s.Crew, func(w *writers.Writer, c types.CrewState) error {
		return encodeCrew(w, f, c)
	})
	if err != nil {
		return err
	}
	w.WriteInt(s.ReservePowerCapacity)

	if err := encodeSystems(w, f, shape.bp, s.Systems); err != nil {
		return err
	}
	if f.Extended {
		encodeExtendedInfoGroup(w, earlyExtendedInfo, s.ExtendedSystems)
	}

	if err := encodeRooms(w, f, shape.layout, s.Rooms); err != nil {
		return err
	}
	if err := writers.WriteList(w, "breach", s.Breaches, encodeBreach); err != nil {
		return err
	}
	if err := encodeDoors(w, f, shape.layout, s.Doors); err != nil {
		return err
	}
	if f.Extended {
		w.WriteInt(s.CloakAnimTicks)
	}
	if f.LockdownCrystals {
		if err := writers.WriteList(w, "crystal", s.LockdownCrystals, encodeLockdownCrystal); err != nil {
			return err
		}
	}

	err = writers.WriteList(w, "weapon", s.Weapons, func(w *writers.Writer, wp types.WeaponState) error {
		return encodeWeapon(w, f, wp)
	})
	if err != nil {
		return err
	}
	err = writers.WriteList(w, "drone", s.Drones, func(w *writers.Writer, d types.DroneState) error {
		return encodeDrone(w, f, d)
	})
	if err != nil {
		return err
	}
	writers.WriteStrings(w, s.Augments)
	if !f.Extended {
		return nil
	}

	for i := range s.Drones {
		encodeExtendedDrone(w, s.Drones[i].Extended)
	}
	for i := range s.Weapons {
		encodeWeaponModule(w, s.Weapons[i].Module)
	}
	encodeExtendedInfoGroup(w, lateExtendedInfo, s.ExtendedSystems)
	return nil
}
