package codec

import (
	"ftledit/readers"
	"ftledit/types"
	"ftledit/writers"
)

// Format 2 keeps the cooldown inline.  The extended formats drop it and write a
// WeaponModule per weapon near the end of the ship instead.

func decodeWeapon(r *readers.Reader, f SavedGameFeatures) (types.WeaponState, error) {
	var wp types.WeaponState
	var err error
	if wp.WeaponID, err = r.ReadString(); err != nil {
		return wp, err
	}
	if wp.Armed, err = r.ReadBool(); err != nil {
		return wp, err
	}
	if f.InlineWeaponCooldown {
		wp.CooldownTicks, err = r.ReadInt()
	}
	return wp, err
}

func encodeWeapon(w *writers.Writer, f SavedGameFeatures, wp types.WeaponState) error {
	if f.Extended && wp.Module == nil {
		return w.Mismatch("weapon %s has no module state", wp.WeaponID)
	}
	w.WriteString(wp.WeaponID)
	w.WriteBool(wp.Armed)
	if f.InlineWeaponCooldown {
		w.WriteInt(wp.CooldownTicks)
	}
	return nil
}

func decodeWeaponModule(r *readers.Reader) (types.WeaponModule, error) {
	var m types.WeaponModule
	err := r.ReadIntsInto(&m.CooldownTicks, &m.CooldownTicksGoal, &m.SubcooldownTicks, &m.Boost, &m.Charge)
	return m, err
}

func encodeWeaponModule(w *writers.Writer, m *types.WeaponModule) {
	w.WriteIntFields(m.CooldownTicks, m.CooldownTicksGoal, m.SubcooldownTicks, m.Boost, m.Charge)
}
