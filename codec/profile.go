package codec

import (
	"bytes"
	"io"
	"slices"

	"ftledit/readers"
	"ftledit/tables"
	"ftledit/types"
	"ftledit/writers"
)

// DecodeProfile decodes a whole profile (prof.sav or ae_prof.sav).
func DecodeProfile(data []byte) (*types.Profile, error) {
	return ReadProfile(bytes.NewReader(data))
}

func ReadProfile(rs io.ReadSeeker) (*types.Profile, error) {
	p, mystery, err := decode(profileFormats, rs, decodeProfileBody)
	if err != nil {
		return nil, err
	}
	p.Mystery = mystery
	return p, nil
}

func EncodeProfile(p *types.Profile) ([]byte, error) {
	return encode(profileFormats, p.Version, p, p.Mystery, encodeProfileBody)
}

func WriteProfile(w io.Writer, p *types.Profile) error {
	data, err := EncodeProfile(p)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	if err != nil {
		return &types.IOFailureError{Op: "write profile", Err: err}
	}
	return nil
}

func decodeProfileBody(r *readers.Reader, version int32, f ProfileFeatures) (*types.Profile, error) {
	p := &types.Profile{Version: version, ShipUnlocks: map[string]types.ShipAvailability{}}

	var err error
	p.Achievements, err = readers.ReadList(r, "achievement", decodeAchievement)
	if err != nil {
		return nil, err
	}

	for i, id := range tables.ShipBaseIDs {
		r.Enter("unlock[%d]", i)
		var unlock types.ShipAvailability
		if unlock.UnlockedA, err = r.ReadBool(); err != nil {
			return nil, err
		}
		if f.VariantC {
			if unlock.UnlockedC, err = r.ReadBool(); err != nil {
				return nil, err
			}
		}
		p.ShipUnlocks[id] = unlock
		r.Leave()
	}

	r.Enter("stats")
	if p.Stats, err = decodeStats(r, f); err != nil {
		return nil, err
	}
	r.Leave()

	if f.NewbieTip {
		if p.NewbieTipLevel, err = r.ReadInt(); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func decodeAchievement(r *readers.Reader) (types.AchievementRecord, error) {
	var a types.AchievementRecord
	var err error
	if a.ID, err = r.ReadString(); err != nil {
		return a, err
	}
	difficulty, err := r.ReadInt()
	a.Difficulty = types.Difficulty(difficulty)
	return a, err
}

func decodeStats(r *readers.Reader, f ProfileFeatures) (types.Stats, error) {
	var s types.Stats
	score := func(r *readers.Reader) (types.Score, error) {
		return decodeScore(r, f)
	}
	var err error
	if s.TopScores, err = readers.ReadList(r, "topScore", score); err != nil {
		return s, err
	}
	if s.ShipBest, err = readers.ReadList(r, "shipBest", score); err != nil {
		return s, err
	}

	err = r.ReadIntsInto(
		&s.Session.MostShipsDefeated, &s.Totals.ShipsDefeated,
		&s.Session.MostBeaconsExplored, &s.Totals.BeaconsExplored,
		&s.Session.MostScrapCollected, &s.Totals.ScrapCollected,
		&s.Session.MostCrewHired, &s.Totals.CrewHired,
		&s.Totals.GamesPlayed, &s.Totals.Victories,
	)
	if err != nil {
		return s, err
	}

	records := s.Crew.InOrder()
	for i, rec := range records {
		r.Enter("crewRecord[%d]", i)
		if *rec, err = decodeCrewRecord(r); err != nil {
			return s, err
		}
		r.Leave()
	}
	return s, nil
}

func decodeScore(r *readers.Reader, f ProfileFeatures) (types.Score, error) {
	var s types.Score
	var err error
	if s.ShipName, err = r.ReadString(); err != nil {
		return s, err
	}
	if s.ShipID, err = r.ReadString(); err != nil {
		return s, err
	}
	var difficulty int32
	if err = r.ReadIntsInto(&s.Value, &s.Sector, &difficulty); err != nil {
		return s, err
	}
	s.Difficulty = types.Difficulty(difficulty)
	if s.Victory, err = r.ReadBool(); err != nil {
		return s, err
	}
	if f.ScoreDLC {
		if s.DLC, err = r.ReadBool(); err != nil {
			return s, err
		}
	}
	return s, nil
}

func decodeCrewRecord(r *readers.Reader) (types.CrewRecord, error) {
	var c types.CrewRecord
	var err error
	if c.Name, err = r.ReadString(); err != nil {
		return c, err
	}
	if c.Race, err = r.ReadString(); err != nil {
		return c, err
	}
	if c.Male, err = r.ReadBool(); err != nil {
		return c, err
	}
	c.Value, err = r.ReadInt()
	return c, err
}

func encodeProfileBody(w *writers.Writer, f ProfileFeatures, p *types.Profile) error {
	err := writers.WriteList(w, "achievement", p.Achievements, func(w *writers.Writer, a types.AchievementRecord) error {
		w.WriteString(a.ID)
		w.WriteInt(int32(a.Difficulty))
		return nil
	})
	if err != nil {
		return err
	}

	for id := range p.ShipUnlocks {
		if !slices.Contains(tables.ShipBaseIDs[:], id) {
			return w.Mismatch("ship unlock for %q, which has no slot", id)
		}
	}
	for _, id := range tables.ShipBaseIDs {
		unlock := p.ShipUnlocks[id]
		w.WriteBool(unlock.UnlockedA)
		if f.VariantC {
			w.WriteBool(unlock.UnlockedC)
		}
	}

	encodeScore := func(w *writers.Writer, s types.Score) error {
		w.WriteString(s.ShipName)
		w.WriteString(s.ShipID)
		w.WriteIntFields(s.Value, s.Sector, int32(s.Difficulty))
		w.WriteBool(s.Victory)
		if f.ScoreDLC {
			w.WriteBool(s.DLC)
		}
		return nil
	}
	s := &p.Stats
	if err := writers.WriteList(w, "topScore", s.TopScores, encodeScore); err != nil {
		return err
	}
	if err := writers.WriteList(w, "shipBest", s.ShipBest, encodeScore); err != nil {
		return err
	}
	w.WriteIntFields(
		s.Session.MostShipsDefeated, s.Totals.ShipsDefeated,
		s.Session.MostBeaconsExplored, s.Totals.BeaconsExplored,
		s.Session.MostScrapCollected, s.Totals.ScrapCollected,
		s.Session.MostCrewHired, s.Totals.CrewHired,
		s.Totals.GamesPlayed, s.Totals.Victories,
	)
	for _, rec := range s.Crew.InOrder() {
		w.WriteString(rec.Name)
		w.WriteString(rec.Race)
		w.WriteBool(rec.Male)
		w.WriteInt(rec.Value)
	}

	if f.NewbieTip {
		w.WriteInt(p.NewbieTipLevel)
	}
	return nil
}
