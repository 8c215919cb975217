package codec

import (
	"ftledit/readers"
	"ftledit/types"
	"ftledit/writers"
)

// System records come in system-type order, and a ship writes max(1, rooms) of each
// type whether it has the system or not.  Capacity 0 means "not installed" and
// nothing else follows it.
//
// Zero-capacity records are dropped when decoding, except when one sits in front
// of an installed record of the same type; that one is kept as a placeholder so
// the records go back in the same slots.

func decodeSystems(r *readers.Reader, f SavedGameFeatures, bp *types.ShipBlueprint) ([]types.SystemState, error) {
	out := []types.SystemState{}
	for t := types.SystemType(0); int(t) < f.SystemTypes; t++ {
		var placeholders []types.SystemState
		for i := range bp.SystemRecords(t) {
			r.Enter("%s[%d]", t.ID(), i)
			s := types.SystemState{Type: t}
			var err error
			start := r.Offset()
			if s.Capacity, err = r.ReadInt(); err != nil {
				return nil, err
			}
			switch {
			case s.Capacity < 0:
				return nil, &types.StructuralMismatchError{Path: r.Path(), Offset: start, Detail: "negative system capacity"}
			case s.Capacity == 0:
				placeholders = append(placeholders, s)
			default:
				if err := decodeSystemBody(r, f, &s); err != nil {
					return nil, err
				}
				out = append(out, placeholders...)
				placeholders = nil
				out = append(out, s)
			}
			r.Leave()
		}
	}
	return out, nil
}

func decodeSystemBody(r *readers.Reader, f SavedGameFeatures, s *types.SystemState) error {
	err := r.ReadIntsInto(&s.Power, &s.DamagedBars, &s.IonizedBars, &s.DeionizationTicks, &s.RepairProgress, &s.DamageProgress)
	if err != nil || !f.Extended {
		return err
	}
	if err := r.ReadIntsInto(&s.BatteryPower, &s.HackLevel); err != nil {
		return err
	}
	if s.Hacked, err = r.ReadBool(); err != nil {
		return err
	}
	return r.ReadIntsInto(&s.TemporaryCapacityCap, &s.TemporaryCapacityLoss, &s.TemporaryCapacityDivisor)
}

func encodeSystems(w *writers.Writer, f SavedGameFeatures, bp *types.ShipBlueprint, systems []types.SystemState) error {
	for _, s := range systems {
		if s.Type < 0 || int(s.Type) >= f.SystemTypes {
			return w.Mismatch("%s system can't be stored in this format", s.Type)
		}
		if s.Capacity < 0 {
			return w.Mismatch("%s system has negative capacity", s.Type)
		}
	}
	for t := types.SystemType(0); int(t) < f.SystemTypes; t++ {
		var records []types.SystemState
		for _, s := range systems {
			if s.Type == t {
				records = append(records, s)
			}
		}
		n := bp.SystemRecords(t)
		if len(records) > n {
			return w.Mismatch("%d %s systems, blueprint %s has room for %d", len(records), t, bp.ID, n)
		}
		for i := range n {
			if i >= len(records) {
				w.WriteInt(0)
				continue
			}
			s := records[i]
			w.WriteInt(s.Capacity)
			if s.Capacity > 0 {
				encodeSystemBody(w, f, &s)
			}
		}
	}
	return nil
}

func encodeSystemBody(w *writers.Writer, f SavedGameFeatures, s *types.SystemState) {
	w.WriteIntFields(s.Power, s.DamagedBars, s.IonizedBars, s.DeionizationTicks, s.RepairProgress, s.DamageProgress)
	if !f.Extended {
		return
	}
	w.WriteIntFields(s.BatteryPower, s.HackLevel)
	w.WriteBool(s.Hacked)
	w.WriteIntFields(s.TemporaryCapacityCap, s.TemporaryCapacityLoss, s.TemporaryCapacityDivisor)
}

func installedCount(systems []types.SystemState, t types.SystemType) int {
	n := 0
	for _, s := range systems {
		if s.Type == t && s.Capacity > 0 {
			n++
		}
	}
	return n
}

// Extended info is written in two groups: these after the system records...
var earlyExtendedInfo = []types.SystemType{types.SystemClonebay, types.SystemBattery, types.SystemShields, types.SystemCloaking}

// ...and these at the very end of the ship.
var lateExtendedInfo = []types.SystemType{types.SystemHacking, types.SystemMindControl, types.SystemArtillery}

// expectedExtendedInfo is how many info entries of type t a ship with these systems carries.
func expectedExtendedInfo(t types.SystemType, systems []types.SystemState) int {
	switch t {
	case types.SystemShields:
		return 1
	case types.SystemArtillery:
		return installedCount(systems, t)
	case types.SystemClonebay, types.SystemBattery, types.SystemCloaking, types.SystemHacking, types.SystemMindControl:
		return min(1, installedCount(systems, t))
	}
	return 0
}

func decodeExtendedInfoGroup(r *readers.Reader, group []types.SystemType, systems []types.SystemState) ([]types.ExtendedSystemInfo, error) {
	var out []types.ExtendedSystemInfo
	for _, t := range group {
		for i := range expectedExtendedInfo(t, systems) {
			r.Enter("%sInfo[%d]", t.ID(), i)
			info, err := decodeExtendedInfo(r, t)
			if err != nil {
				return nil, err
			}
			r.Leave()
			out = append(out, info)
		}
	}
	return out, nil
}

func decodeExtendedInfo(r *readers.Reader, t types.SystemType) (types.ExtendedSystemInfo, error) {
	var err error
	switch t {
	case types.SystemClonebay:
		info := &types.ClonebayInfo{}
		err = r.ReadIntsInto(&info.BuildTicks, &info.BuildTicksGoal, &info.DoomTicks)
		return info, err

	case types.SystemBattery:
		info := &types.BatteryInfo{}
		if info.Active, err = r.ReadBool(); err != nil {
			return nil, err
		}
		err = r.ReadIntsInto(&info.UsedBattery, &info.DischargeTicks)
		return info, err

	case types.SystemShields:
		info := &types.ShieldsInfo{}
		err = r.ReadIntsInto(&info.ShieldLayers, &info.EnergyShieldLayers, &info.EnergyShieldMax, &info.ShieldRechargeTicks)
		if err != nil {
			return nil, err
		}
		anims := []struct {
			on    *bool
			ticks *int32
		}{
			{&info.ShieldDropAnimOn, &info.ShieldDropAnimTicks},
			{&info.ShieldRaiseAnimOn, &info.ShieldRaiseAnimTicks},
			{&info.EnergyShieldAnimOn, &info.EnergyShieldAnimTicks},
		}
		for _, anim := range anims {
			if *anim.on, err = r.ReadBool(); err != nil {
				return nil, err
			}
			if *anim.ticks, err = r.ReadInt(); err != nil {
				return nil, err
			}
		}
		err = r.ReadIntsInto(&info.Opaque[0], &info.Opaque[1])
		return info, err

	case types.SystemCloaking:
		info := &types.CloakingInfo{}
		err = r.ReadIntsInto(&info.Opaque[0], &info.Opaque[1], &info.CloakTicksGoal, &info.CloakTicks)
		return info, err

	case types.SystemHacking:
		info := &types.HackingInfo{}
		var target int32
		if err = r.ReadIntsInto(&target, &info.StartX, &info.StartY, &info.GoalX, &info.GoalY); err != nil {
			return nil, err
		}
		info.TargetSystemType = types.SystemType(target)
		if err = r.ReadBoolsInto(&info.Arrived, &info.SetUp); err != nil {
			return nil, err
		}
		if err = r.ReadIntsInto(&info.DisruptionTicks, &info.DisruptionTicksGoal); err != nil {
			return nil, err
		}
		info.Disrupting, err = r.ReadBool()
		return info, err

	case types.SystemMindControl:
		info := &types.MindControlInfo{}
		err = r.ReadIntsInto(&info.MindControlTicks, &info.MindControlTicksGoal)
		return info, err

	case types.SystemArtillery:
		info := &types.ArtilleryInfo{}
		info.Module, err = decodeWeaponModule(r)
		return info, err
	}
	return nil, r.Mismatch("%s has no extended info", t)
}

// checkExtendedInfo makes sure every system that needs extended info has exactly
// the right amount, and nothing else does.
func checkExtendedInfo(w *writers.Writer, s *types.ShipState) error {
	counts := map[types.SystemType]int{}
	for _, info := range s.ExtendedSystems {
		if info == nil {
			return w.Mismatch("nil extended system info")
		}
		counts[info.SystemType()]++
	}
	for t := types.SystemType(0); t < types.SystemCount; t++ {
		if want := expectedExtendedInfo(t, s.Systems); counts[t] != want {
			return w.Mismatch("%d %s extended info entries, expected %d", counts[t], t, want)
		}
	}
	return nil
}

func encodeExtendedInfoGroup(w *writers.Writer, group []types.SystemType, infos []types.ExtendedSystemInfo) {
	for _, t := range group {
		for _, info := range infos {
			if info.SystemType() == t {
				encodeExtendedInfo(w, info)
			}
		}
	}
}

func encodeExtendedInfo(w *writers.Writer, info types.ExtendedSystemInfo) {
	switch info := info.(type) {
	case *types.ClonebayInfo:
		w.WriteIntFields(info.BuildTicks, info.BuildTicksGoal, info.DoomTicks)
	case *types.BatteryInfo:
		w.WriteBool(info.Active)
		w.WriteIntFields(info.UsedBattery, info.DischargeTicks)
	case *types.ShieldsInfo:
		w.WriteIntFields(info.ShieldLayers, info.EnergyShieldLayers, info.EnergyShieldMax, info.ShieldRechargeTicks)
		w.WriteBool(info.ShieldDropAnimOn)
		w.WriteInt(info.ShieldDropAnimTicks)
		w.WriteBool(info.ShieldRaiseAnimOn)
		w.WriteInt(info.ShieldRaiseAnimTicks)
		w.WriteBool(info.EnergyShieldAnimOn)
		w.WriteInt(info.EnergyShieldAnimTicks)
		w.WriteIntFields(info.Opaque[:]...)
	case *types.CloakingInfo:
		w.WriteIntFields(info.Opaque[:]...)
		w.WriteIntFields(info.CloakTicksGoal, info.CloakTicks)
	case *types.HackingInfo:
		w.WriteIntFields(int32(info.TargetSystemType), info.StartX, info.StartY, info.GoalX, info.GoalY)
		w.WriteBool(info.Arrived)
		w.WriteBool(info.SetUp)
		w.WriteIntFields(info.DisruptionTicks, info.DisruptionTicksGoal)
		w.WriteBool(info.Disrupting)
	case *types.MindControlInfo:
		w.WriteIntFields(info.MindControlTicks, info.MindControlTicksGoal)
	case *types.ArtilleryInfo:
		encodeWeaponModule(w, &info.Module)
	}
}
