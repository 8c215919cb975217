package codec

import (
	"ftledit/readers"
	"ftledit/types"
	"ftledit/writers"
)

func decodeDrone(r *readers.Reader) (types.DroneState, error) {
	var d types.DroneState
	var err error
	if d.DroneID, err = r.ReadString(); err != nil {
		return d, err
	}
	if err = r.ReadBoolsInto(&d.Armed, &d.PlayerControlled); err != nil {
		return d, err
	}
	err = r.ReadIntsInto(&d.BodyX, &d.BodyY, &d.BodyRoomID, &d.BodyRoomSquare, &d.Health)
	return d, err
}

func encodeDrone(w *writers.Writer, f SavedGameFeatures, d types.DroneState) error {
	if f.Extended && d.Extended == nil {
		return w.Mismatch("drone %s has no extended state", d.DroneID)
	}
	w.WriteString(d.DroneID)
	w.WriteBool(d.Armed)
	w.WriteBool(d.PlayerControlled)
	w.WriteIntFields(d.BodyX, d.BodyY, d.BodyRoomID, d.BodyRoomSquare, d.Health)
	return nil
}

func decodeExtendedDrone(r *readers.Reader) (*types.ExtendedDroneInfo, error) {
	info := &types.ExtendedDroneInfo{}
	var present bool
	if err := r.ReadBoolsInto(&info.Deployed, &info.Arrived, &present); err != nil {
		return nil, err
	}
	if !present {
		return info, nil
	}
	pod := &types.DronePod{}
	err := r.ReadIntsInto(&pod.MourningTicks, &pod.CurrentSpace, &pod.DestinationSpace,
		&pod.CurrentX, &pod.CurrentY, &pod.GoalX, &pod.GoalY, &pod.BodyHealth)
	if err != nil {
		return nil, err
	}
	info.Pod = pod
	return info, nil
}

func encodeExtendedDrone(w *writers.Writer, info *types.ExtendedDroneInfo) {
	w.WriteBool(info.Deployed)
	w.WriteBool(info.Arrived)
	w.WriteBool(info.Pod != nil)
	if pod := info.Pod; pod != nil {
		w.WriteIntFields(pod.MourningTicks, pod.CurrentSpace, pod.DestinationSpace,
			pod.CurrentX, pod.CurrentY, pod.GoalX, pod.GoalY, pod.BodyHealth)
	}
}

func decodeLockdownCrystal(r *readers.Reader) (types.LockdownCrystal, error) {
	var c types.LockdownCrystal
	var err error
	if err = r.ReadIntsInto(&c.CurrentX, &c.CurrentY, &c.Speed, &c.GoalX, &c.GoalY); err != nil {
		return c, err
	}
	if err = r.ReadBoolsInto(&c.Arrived, &c.Done); err != nil {
		return c, err
	}
	if c.Lifetime, err = r.ReadInt(); err != nil {
		return c, err
	}
	if c.SuperFreeze, err = r.ReadBool(); err != nil {
		return c, err
	}
	err = r.ReadIntsInto(&c.LockingRoom, &c.AnimDirection, &c.ShardProgress)
	return c, err
}

func encodeLockdownCrystal(w *writers.Writer, c types.LockdownCrystal) error {
	w.WriteIntFields(c.CurrentX, c.CurrentY, c.Speed, c.GoalX, c.GoalY)
	w.WriteBool(c.Arrived)
	w.WriteBool(c.Done)
	w.WriteInt(c.Lifetime)
	w.WriteBool(c.SuperFreeze)
	w.WriteIntFields(c.LockingRoom, c.AnimDirection, c.ShardProgress)
	return nil
}
