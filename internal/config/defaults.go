package config

import (
	_ "embed"
)

//go:embed defaults/combat.yaml
var defaultCombatYAML []byte

// DefaultCombatConfig returns the default combat configuration.
func DefaultCombatConfig() CombatConfig {
	return CombatConfig{
		Arena: ArenaConfig{
			Width:  1200,
			Height: 800,
		},
		Player: PlayerConfig{
			Radius:          15,
			Accel:           0.15,
			Friction:        0.92,
			HeadingDeadzone: 0.05,
		},
		Regen: RegenConfig{
			Interval:       60,
			ShieldFraction: 0.01,
		},
		Modules: ModuleConfig{
			TriggerThreshold: 0.9,
			DefaultCycle:     5,
		},
		Spawn: SpawnConfig{
			Interval:     60,
			MaxEnemies:   50,
			KiterChance:  0.3,
			EdgeMargin:   50,
			BossDistance: 400,
		},
		Enemies: EnemyConfig{
			BaseHP:            20,
			HPPerLevel:        5,
			ChaserSpeedMin:    0.5,
			ChaserSpeedJitter: 0.5,
			ChaserRadius:      10,
			KiterSpeed:        0.8,
			KiterRadius:       12,
			KiterRange:        300,
			KiterReloadJitter: 60,
			BandBuffer:        50,
			RetreatFactor:     0.5,
			ContactDamage:     0.5,
			Pushback:          2,
		},
		Boss: BossConfig{
			BaseHP:     1000,
			HPPerLevel: 200,
			Speed:      1,
			Range:      500,
			Radius:     40,
		},
		EnemyFire: EnemyFireConfig{
			ShotSpeed:   5,
			ShotLife:    120,
			KiterDamage: 5,
			BossDamage:  10,
			KiterRadius: 4,
			BossRadius:  8,
			KiterSpread: 0.05,
			BossSpread:  0.2,
			KiterReload: 120,
			BossReload:  15,
		},
		Weapons: WeaponConfig{
			ShotSpeed:      10,
			MissileSpeed:   6,
			ShotRadius:     3,
			MissileRadius:  5,
			ShotLife:       120,
			HomingTurnRate: 0.15,
			MinCadence:     5,
			CadenceStagger: 10,
			DefaultRange:   300,
			DefaultRate:    1,
			DefaultReload:  3,
		},
		Loot: LootConfig{
			XPValue:        10,
			BossXPDrops:    20,
			CreditChance:   0.4,
			CreditMin:      10,
			CreditSpread:   20,
			MaterialChance: 0.2,
			MaterialMin:    1,
			MaterialSpread: 3,
			BossMultiplier: 10,
			Decay:          0.9,
			MagnetRadius:   150,
			MagnetAccel:    0.6,
			MaxSpeed:       7,
		},
		Particles: ParticleConfig{
			TrailInterval: 5,
			TrailLife:     10,
			SparkLife:     15,
			SparkCount:    3,
			HitLife:       20,
			HitCount:      5,
			RepairLife:    30,
		},
		Objectives: ObjectiveConfig{
			BaseKills:     15,
			KillsPerLevel: 3,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "sector",
				MaxAt: 30,
			},
			Scaling: ScalingConfig{
				HPMultiplier:     1.0,
				DamageMultiplier: 0.5,
			},
		},
	}
}

// DefaultYAML returns the embedded default combat YAML.
func DefaultYAML() []byte {
	return defaultCombatYAML
}
