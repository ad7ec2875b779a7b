// Package config provides YAML-based combat tuning and difficulty
// management for voidrun.
package config

// CombatConfig contains all tuning for a combat session. Distances are in
// arena units, durations in frames unless the field says otherwise.
type CombatConfig struct {
	Arena      ArenaConfig      `yaml:"arena"`
	Player     PlayerConfig     `yaml:"player"`
	Regen      RegenConfig      `yaml:"regen"`
	Modules    ModuleConfig     `yaml:"modules"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Enemies    EnemyConfig      `yaml:"enemies"`
	Boss       BossConfig       `yaml:"boss"`
	EnemyFire  EnemyFireConfig  `yaml:"enemy_fire"`
	Weapons    WeaponConfig     `yaml:"weapons"`
	Loot       LootConfig       `yaml:"loot"`
	Particles  ParticleConfig   `yaml:"particles"`
	Objectives ObjectiveConfig  `yaml:"objectives"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// ArenaConfig is the playfield size. The player starts at its centre.
type ArenaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlayerConfig defines avatar physics.
type PlayerConfig struct {
	Radius          float64 `yaml:"radius"`
	Accel           float64 `yaml:"accel"`
	Friction        float64 `yaml:"friction"`
	HeadingDeadzone float64 `yaml:"heading_deadzone"`
}

// RegenConfig defines passive shield and capacitor regeneration.
type RegenConfig struct {
	Interval       int     `yaml:"interval"`
	ShieldFraction float64 `yaml:"shield_fraction"` // of max shield per interval, before relics
}

// ModuleConfig defines active module auto-triggering.
type ModuleConfig struct {
	TriggerThreshold float64 `yaml:"trigger_threshold"` // fraction of max below which repairs fire
	DefaultCycle     float64 `yaml:"default_cycle"`     // seconds
}

// SpawnConfig defines the standard spawn policy and boss placement.
type SpawnConfig struct {
	Interval     int     `yaml:"interval"`
	MaxEnemies   int     `yaml:"max_enemies"`
	KiterChance  float64 `yaml:"kiter_chance"`
	EdgeMargin   float64 `yaml:"edge_margin"` // added to half the arena's larger side
	BossDistance float64 `yaml:"boss_distance"`
}

// EnemyConfig defines regular enemies.
type EnemyConfig struct {
	BaseHP            float64 `yaml:"base_hp"`
	HPPerLevel        float64 `yaml:"hp_per_level"`
	ChaserSpeedMin    float64 `yaml:"chaser_speed_min"`
	ChaserSpeedJitter float64 `yaml:"chaser_speed_jitter"`
	ChaserRadius      float64 `yaml:"chaser_radius"`
	KiterSpeed        float64 `yaml:"kiter_speed"`
	KiterRadius       float64 `yaml:"kiter_radius"`
	KiterRange        float64 `yaml:"kiter_range"`
	KiterReloadJitter float64 `yaml:"kiter_reload_jitter"`
	BandBuffer        float64 `yaml:"band_buffer"`
	RetreatFactor     float64 `yaml:"retreat_factor"`
	ContactDamage     float64 `yaml:"contact_damage"` // per frame of overlap
	Pushback          float64 `yaml:"pushback"`
}

// BossConfig defines the boss encounter.
type BossConfig struct {
	BaseHP     float64 `yaml:"base_hp"`
	HPPerLevel float64 `yaml:"hp_per_level"`
	Speed      float64 `yaml:"speed"`
	Range      float64 `yaml:"range"`
	Radius     float64 `yaml:"radius"`
}

// EnemyFireConfig defines enemy projectiles.
type EnemyFireConfig struct {
	ShotSpeed   float64 `yaml:"shot_speed"`
	ShotLife    int     `yaml:"shot_life"`
	KiterDamage float64 `yaml:"kiter_damage"`
	BossDamage  float64 `yaml:"boss_damage"`
	KiterRadius float64 `yaml:"kiter_radius"`
	BossRadius  float64 `yaml:"boss_radius"`
	KiterSpread float64 `yaml:"kiter_spread"` // radians
	BossSpread  float64 `yaml:"boss_spread"`
	KiterReload int     `yaml:"kiter_reload"`
	BossReload  int     `yaml:"boss_reload"`
}

// WeaponConfig defines player projectiles and fire cadence.
type WeaponConfig struct {
	ShotSpeed      float64 `yaml:"shot_speed"`
	MissileSpeed   float64 `yaml:"missile_speed"`
	ShotRadius     float64 `yaml:"shot_radius"`
	MissileRadius  float64 `yaml:"missile_radius"`
	ShotLife       int     `yaml:"shot_life"`
	HomingTurnRate float64 `yaml:"homing_turn_rate"`
	MinCadence     int     `yaml:"min_cadence"`     // frames
	CadenceStagger int     `yaml:"cadence_stagger"` // frames per weapon index
	DefaultRange   float64 `yaml:"default_range"`
	DefaultRate    float64 `yaml:"default_rate"`   // seconds
	DefaultReload  float64 `yaml:"default_reload"` // seconds
}

// LootConfig defines drops and loot physics.
type LootConfig struct {
	XPValue        int     `yaml:"xp_value"`
	BossXPDrops    int     `yaml:"boss_xp_drops"`
	CreditChance   float64 `yaml:"credit_chance"`
	CreditMin      int     `yaml:"credit_min"`
	CreditSpread   int     `yaml:"credit_spread"`
	MaterialChance float64 `yaml:"material_chance"`
	MaterialMin    int     `yaml:"material_min"`
	MaterialSpread int     `yaml:"material_spread"`
	BossMultiplier int     `yaml:"boss_multiplier"`
	Decay          float64 `yaml:"decay"`
	MagnetRadius   float64 `yaml:"magnet_radius"`
	MagnetAccel    float64 `yaml:"magnet_accel"`
	MaxSpeed       float64 `yaml:"max_speed"`
}

// ParticleConfig defines cosmetic particle lifetimes.
type ParticleConfig struct {
	TrailInterval int `yaml:"trail_interval"`
	TrailLife     int `yaml:"trail_life"`
	SparkLife     int `yaml:"spark_life"`
	SparkCount    int `yaml:"spark_count"`
	HitLife       int `yaml:"hit_life"`
	HitCount      int `yaml:"hit_count"`
	RepairLife    int `yaml:"repair_life"`
}

// ObjectiveConfig defines the kill target of a standard node.
type ObjectiveConfig struct {
	BaseKills     int `yaml:"base_kills"`
	KillsPerLevel int `yaml:"kills_per_level"`
}

// DifficultyConfig defines the difficulty progression across sectors.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a run.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "sector" or "none"
	MaxAt int    `yaml:"max_at"` // sector at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	HPMultiplier     float64 `yaml:"hp_multiplier"`     // added to enemy HP scale at max difficulty
	DamageMultiplier float64 `yaml:"damage_multiplier"` // added to enemy damage scale at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means fixed.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	case "":
		return DifficultyFixed, true
	default:
		return "", false
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
