package types

// ExtendedSystemInfo is the extra state some systems carry in the post-expansion
// formats.  The set of implementations is closed: one struct per system type that
// has any, and a system type that has none never gets an entry.
type ExtendedSystemInfo interface {
	SystemType() SystemType
	cloneInfo() ExtendedSystemInfo
}

type ClonebayInfo struct {
	BuildTicks     int32 `yaml:"build_ticks"`
	BuildTicksGoal int32 `yaml:"build_ticks_goal"`
	DoomTicks      int32 `yaml:"doom_ticks"`
}

type BatteryInfo struct {
	Active         bool  `yaml:"active"`
	UsedBattery    int32 `yaml:"used_battery"`
	DischargeTicks int32 `yaml:"discharge_ticks"`
}

// ShieldsInfo is written for every ship in the extended formats, shields or not.
type ShieldsInfo struct {
	ShieldLayers        int32 `yaml:"shield_layers"`
	EnergyShieldLayers  int32 `yaml:"energy_shield_layers"`
	EnergyShieldMax     int32 `yaml:"energy_shield_max"`
	ShieldRechargeTicks int32 `yaml:"shield_recharge_ticks"`

	ShieldDropAnimOn    bool  `yaml:"shield_drop_anim_on"`
	ShieldDropAnimTicks int32 `yaml:"shield_drop_anim_ticks"`

	ShieldRaiseAnimOn    bool  `yaml:"shield_raise_anim_on"`
	ShieldRaiseAnimTicks int32 `yaml:"shield_raise_anim_ticks"`

	EnergyShieldAnimOn    bool  `yaml:"energy_shield_anim_on"`
	EnergyShieldAnimTicks int32 `yaml:"energy_shield_anim_ticks"`

	// A pair that is usually noise and sometimes 0.
	Opaque [2]int32 `yaml:"opaque"`
}

type CloakingInfo struct {
	// Unknown.  Seen as 0 and as garbage, with no visible effect either way.
	Opaque         [2]int32 `yaml:"opaque"`
	CloakTicksGoal int32    `yaml:"cloak_ticks_goal"`
	CloakTicks     int32    `yaml:"cloak_ticks"`
}

type HackingInfo struct {
	TargetSystemType    SystemType `yaml:"target_system_type"`
	StartX              int32      `yaml:"start_x"`
	StartY              int32      `yaml:"start_y"`
	GoalX               int32      `yaml:"goal_x"`
	GoalY               int32      `yaml:"goal_y"`
	Arrived             bool       `yaml:"arrived"`
	SetUp               bool       `yaml:"set_up"`
	DisruptionTicks     int32      `yaml:"disruption_ticks"`
	DisruptionTicksGoal int32      `yaml:"disruption_ticks_goal"`
	Disrupting          bool       `yaml:"disrupting"`
}

type MindControlInfo struct {
	MindControlTicks     int32 `yaml:"mind_control_ticks"`
	MindControlTicksGoal int32 `yaml:"mind_control_ticks_goal"`
}

// ArtilleryInfo exists once per artillery system record.
type ArtilleryInfo struct {
	Module WeaponModule `yaml:"module"`
}

func (*ClonebayInfo) SystemType() SystemType    { return SystemClonebay }
func (*BatteryInfo) SystemType() SystemType     { return SystemBattery }
func (*ShieldsInfo) SystemType() SystemType     { return SystemShields }
func (*CloakingInfo) SystemType() SystemType    { return SystemCloaking }
func (*HackingInfo) SystemType() SystemType     { return SystemHacking }
func (*MindControlInfo) SystemType() SystemType { return SystemMindControl }
func (*ArtilleryInfo) SystemType() SystemType   { return SystemArtillery }

func (i *ClonebayInfo) cloneInfo() ExtendedSystemInfo    { c := *i; return &c }
func (i *BatteryInfo) cloneInfo() ExtendedSystemInfo     { c := *i; return &c }
func (i *ShieldsInfo) cloneInfo() ExtendedSystemInfo     { c := *i; return &c }
func (i *CloakingInfo) cloneInfo() ExtendedSystemInfo    { c := *i; return &c }
func (i *HackingInfo) cloneInfo() ExtendedSystemInfo     { c := *i; return &c }
func (i *MindControlInfo) cloneInfo() ExtendedSystemInfo { c := *i; return &c }
func (i *ArtilleryInfo) cloneInfo() ExtendedSystemInfo   { c := *i; return &c }
