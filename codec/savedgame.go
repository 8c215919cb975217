package codec

import (
	"bytes"
	"io"

	"ftledit/readers"
	"ftledit/types"
	"ftledit/writers"
)

// DecodeSavedGame decodes continue.sav.  The catalog supplies what the file leaves
// out: system record counts and room/door layouts for each ship.
func DecodeSavedGame(data []byte, catalog ShipCatalog) (*types.SavedGame, error) {
	return ReadSavedGame(bytes.NewReader(data), catalog)
}

func ReadSavedGame(rs io.ReadSeeker, catalog ShipCatalog) (*types.SavedGame, error) {
	body := func(r *readers.Reader, version int32, f SavedGameFeatures) (*types.SavedGame, error) {
		return decodeSavedGameBody(r, version, f, catalog)
	}
	g, mystery, err := decode(savedGameFormats, rs, body)
	if err != nil {
		return nil, err
	}
	g.Mystery = mystery
	return g, nil
}

func EncodeSavedGame(g *types.SavedGame, catalog ShipCatalog) ([]byte, error) {
	body := func(w *writers.Writer, f SavedGameFeatures, g *types.SavedGame) error {
		return encodeSavedGameBody(w, f, g, catalog)
	}
	return encode(savedGameFormats, g.Version, g, g.Mystery, body)
}

func WriteSavedGame(w io.Writer, g *types.SavedGame, catalog ShipCatalog) error {
	data, err := EncodeSavedGame(g, catalog)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return &types.IOFailureError{Op: "write saved game", Err: err}
	}
	return nil
}

func decodeSavedGameBody(r *readers.Reader, version int32, f SavedGameFeatures, catalog ShipCatalog) (*types.SavedGame, error) {
	g := &types.SavedGame{Version: version}
	var err error

	if f.Extended {
		if g.DLCEnabled, err = r.ReadBool(); err != nil {
			return nil, err
		}
	}
	var difficulty int32
	err = r.ReadIntsInto(&difficulty, &g.TotalShipsDefeated, &g.TotalBeaconsExplored, &g.TotalScrapCollected, &g.TotalCrewHired)
	if err != nil {
		return nil, err
	}
	g.Difficulty = types.Difficulty(difficulty)
	if g.PlayerShipName, err = r.ReadString(); err != nil {
		return nil, err
	}
	if g.PlayerShipBlueprintID, err = r.ReadString(); err != nil {
		return nil, err
	}
	if err = r.ReadIntsInto(&g.OneBasedSectorNumber, &g.HeaderOpaque); err != nil {
		return nil, err
	}

	r.Enter("ship[0]")
	player, err := decodeShip(r, f, catalog)
	if err != nil {
		return nil, err
	}
	g.PlayerShip = *player
	r.Leave()

	nearby, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	if nearby {
		r.Enter("ship[1]")
		if g.NearbyShip, err = decodeShip(r, f, catalog); err != nil {
			return nil, err
		}
		r.Leave()
	}

	if g.Cargo, err = readers.ReadStrings(r, "cargo"); err != nil {
		return nil, err
	}

	r.Enter("sector")
	if g.Sector, err = decodeSector(r, f); err != nil {
		return nil, err
	}
	r.Leave()

	r.Enter("flagship")
	if g.RebelFlagship.PendingStage, err = r.ReadInt(); err != nil {
		return nil, err
	}
	if g.RebelFlagship.Occupancy, err = readers.ReadInts(r, "occupancy"); err != nil {
		return nil, err
	}
	r.Leave()

	r.Enter("vars")
	if g.StateVars, err = decodeStateVars(r); err != nil {
		return nil, err
	}
	r.Leave()
	return g, nil
}

func decodeSector(r *readers.Reader, f SavedGameFeatures) (types.SectorState, error) {
	var s types.SectorState
	var err error
	if err = r.ReadIntsInto(&s.TreeSeed, &s.LayoutSeed, &s.RebelFleetOffset, &s.RebelFleetFudge, &s.RebelPursuitMod); err != nil {
		return s, err
	}
	if f.Extended {
		if s.Waiting, err = r.ReadBool(); err != nil {
			return s, err
		}
		if s.WaitEventSeed, err = r.ReadInt(); err != nil {
			return s, err
		}
		if s.OpaqueText, err = r.ReadString(); err != nil {
			return s, err
		}
	}
	if err = r.ReadBoolsInto(&s.HazardsVisible, &s.RebelFlagshipVisible); err != nil {
		return s, err
	}
	if s.RebelFlagshipHop, err = r.ReadInt(); err != nil {
		return s, err
	}
	if s.RebelFlagshipMoving, err = r.ReadBool(); err != nil {
		return s, err
	}
	if f.Extended {
		if s.RebelFlagshipRetreating, err = r.ReadBool(); err != nil {
			return s, err
		}
		if s.RebelFlagshipBaseTurns, err = r.ReadInt(); err != nil {
			return s, err
		}
	}
	if s.Visitation, err = readers.ReadBools(r, "visited"); err != nil {
		return s, err
	}
	if s.Number, err = r.ReadInt(); err != nil {
		return s, err
	}
	if s.IsHiddenCrystalWorlds, err = r.ReadBool(); err != nil {
		return s, err
	}
	s.Beacons, err = readers.ReadList(r, "beacon", func(r *readers.Reader) (types.BeaconState, error) {
		return decodeBeacon(r, f)
	})
	if err != nil {
		return s, err
	}
	if s.CurrentBeaconID, err = r.ReadInt(); err != nil {
		return s, err
	}
	s.QuestEvents, err = readers.ReadList(r, "quest", func(r *readers.Reader) (types.QuestEvent, error) {
		var q types.QuestEvent
		var err error
		if q.EventID, err = r.ReadString(); err != nil {
			return q, err
		}
		q.BeaconID, err = r.ReadInt()
		return q, err
	})
	if err != nil {
		return s, err
	}
	s.DistantQuestEvents, err = readers.ReadStrings(r, "distantQuest")
	return s, err
}

func encodeSavedGameBody(w *writers.Writer, f SavedGameFeatures, g *types.SavedGame, catalog ShipCatalog) error {
	if f.Extended {
		w.WriteBool(g.DLCEnabled)
	}
	w.WriteIntFields(int32(g.Difficulty), g.TotalShipsDefeated, g.TotalBeaconsExplored, g.TotalScrapCollected, g.TotalCrewHired)
	w.WriteString(g.PlayerShipName)
	w.WriteString(g.PlayerShipBlueprintID)
	w.WriteIntFields(g.OneBasedSectorNumber, g.HeaderOpaque)

	w.Enter("ship[0]")
	if err := encodeShip(w, f, catalog, &g.PlayerShip); err != nil {
		return err
	}
	w.Leave()
	w.WriteBool(g.NearbyShip != nil)
	if g.NearbyShip != nil {
		w.Enter("ship[1]")
		if err := encodeShip(w, f, catalog, g.NearbyShip); err != nil {
			return err
		}
		w.Leave()
	}

	writers.WriteStrings(w, g.Cargo)

	w.Enter("sector")
	if err := encodeSector(w, f, &g.Sector); err != nil {
		return err
	}
	w.Leave()

	w.WriteInt(g.RebelFlagship.PendingStage)
	writers.WriteInts(w, g.RebelFlagship.Occupancy)

	w.Enter("vars")
	if err := encodeStateVars(w, &g.StateVars); err != nil {
		return err
	}
	w.Leave()
	return nil
}

func encodeSector(w *writers.Writer, f SavedGameFeatures, s *types.SectorState) error {
	w.WriteIntFields(s.TreeSeed, s.LayoutSeed, s.RebelFleetOffset, s.RebelFleetFudge, s.RebelPursuitMod)
	if f.Extended {
		w.WriteBool(s.Waiting)
		w.WriteInt(s.WaitEventSeed)
		w.WriteString(s.OpaqueText)
	}
	w.WriteBool(s.HazardsVisible)
	w.WriteBool(s.RebelFlagshipVisible)
	w.WriteInt(s.RebelFlagshipHop)
	w.WriteBool(s.RebelFlagshipMoving)
	if f.Extended {
		w.WriteBool(s.RebelFlagshipRetreating)
		w.WriteInt(s.RebelFlagshipBaseTurns)
	}
	writers.WriteBools(w, s.Visitation)
	w.WriteInt(s.Number)
	w.WriteBool(s.IsHiddenCrystalWorlds)
	err := writers.WriteList(w, "beacon", s.Beacons, func(w *writers.Writer, b types.BeaconState) error {
		return encodeBeacon(w, f, b)
	})
	if err != nil {
		return err
	}
	w.WriteInt(s.CurrentBeaconID)
	err = writers.WriteList(w, "quest", s.QuestEvents, func(w *writers.Writer, q types.QuestEvent) error {
		w.WriteString(q.EventID)
		w.WriteInt(q.BeaconID)
		return nil
	})
	if err != nil {
		return err
	}
	writers.WriteStrings(w, s.DistantQuestEvents)
	return nil
}
