package codec

import (
	"ftledit/readers"
	"ftledit/types"
	"ftledit/writers"
)

// CrewOpaqueLen is how many unexplained ints a crew member carries in a format:
// one in the middle of the extended fields, one flag from format 9 on, and one at
// the very end.  They are stored in CrewState.Opaque in that order.
func CrewOpaqueLen(f SavedGameFeatures) int {
	n := 0
	if f.Extended {
		n += 2
	}
	if f.CrewTrailingFlag {
		n++
	}
	return n
}

func decodeCrew(r *readers.Reader, f SavedGameFeatures) (types.CrewState, error) {
	var c types.CrewState
	var err error
	if c.Name, err = r.ReadString(); err != nil {
		return c, err
	}
	if c.Race, err = r.ReadString(); err != nil {
		return c, err
	}
	if c.EnemyBoardingDrone, err = r.ReadBool(); err != nil {
		return c, err
	}
	if err = r.ReadIntsInto(&c.Health, &c.SpriteX, &c.SpriteY, &c.RoomID, &c.RoomSquare); err != nil {
		return c, err
	}
	if c.PlayerControlled, err = r.ReadBool(); err != nil {
		return c, err
	}
	if f.Extended {
		if err = r.ReadIntsInto(&c.CloneReady, &c.DeathOrder); err != nil {
			return c, err
		}
		if c.MindControlled, err = r.ReadBool(); err != nil {
			return c, err
		}
		if err = r.ReadIntsInto(&c.SavedRoomSquare, &c.SavedRoomID); err != nil {
			return c, err
		}
	}
	err = r.ReadIntsInto(&c.PilotSkill, &c.EngineSkill, &c.ShieldSkill, &c.WeaponSkill, &c.RepairSkill, &c.CombatSkill)
	if err != nil {
		return c, err
	}
	if c.Male, err = r.ReadBool(); err != nil {
		return c, err
	}
	if err = r.ReadIntsInto(&c.Repairs, &c.CombatKills, &c.PilotedEvasions, &c.JumpsSurvived, &c.SkillMasteries); err != nil {
		return c, err
	}

	c.Opaque = make([]int32, CrewOpaqueLen(f))
	if !f.Extended {
		return c, nil
	}
	if err = r.ReadIntsInto(&c.StunTicks, &c.HealthBoost, &c.ClonebayPriority, &c.DamageBoost, &c.Opaque[0], &c.UniversalDeathCount); err != nil {
		return c, err
	}
	if f.CrewMasteries {
		for i := range c.Masteries {
			if c.Masteries[i], err = r.ReadBool(); err != nil {
				return c, err
			}
		}
	}
	if f.CrewTrailingFlag {
		if c.Opaque[1], err = r.ReadInt(); err != nil {
			return c, err
		}
	}
	c.Opaque[len(c.Opaque)-1], err = r.ReadInt()
	return c, err
}

func encodeCrew(w *writers.Writer, f SavedGameFeatures, c types.CrewState) error {
	if len(c.Opaque) != CrewOpaqueLen(f) {
		return w.Mismatch("crew member has %d opaque values, format wants %d", len(c.Opaque), CrewOpaqueLen(f))
	}
	w.WriteString(c.Name)
	w.WriteString(c.Race)
	w.WriteBool(c.EnemyBoardingDrone)
	w.WriteIntFields(c.Health, c.SpriteX, c.SpriteY, c.RoomID, c.RoomSquare)
	w.WriteBool(c.PlayerControlled)
	if f.Extended {
		w.WriteIntFields(c.CloneReady, c.DeathOrder)
		w.WriteBool(c.MindControlled)
		w.WriteIntFields(c.SavedRoomSquare, c.SavedRoomID)
	}
	w.WriteIntFields(c.PilotSkill, c.EngineSkill, c.ShieldSkill, c.WeaponSkill, c.RepairSkill, c.CombatSkill)
	w.WriteBool(c.Male)
	w.WriteIntFields(c.Repairs, c.CombatKills, c.PilotedEvasions, c.JumpsSurvived, c.SkillMasteries)
	if !f.Extended {
		return nil
	}
	w.WriteIntFields(c.StunTicks, c.HealthBoost, c.ClonebayPriority, c.DamageBoost, c.Opaque[0], c.UniversalDeathCount)
	if f.CrewMasteries {
		for _, m := range c.Masteries {
			w.WriteBool(m)
		}
	}
	if f.CrewTrailingFlag {
		w.WriteInt(c.Opaque[1])
	}
	w.WriteInt(c.Opaque[len(c.Opaque)-1])
	return nil
}

func decodeStartingCrew(r *readers.Reader) (types.StartingCrew, error) {
	var c types.StartingCrew
	var err error
	if c.Race, err = r.ReadString(); err != nil {
		return c, err
	}
	c.Name, err = r.ReadString()
	return c, err
}

func encodeStartingCrew(w *writers.Writer, c types.StartingCrew) error {
	w.WriteString(c.Race)
	w.WriteString(c.Name)
	return nil
}
