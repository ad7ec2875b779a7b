package combat

import (
	"math"

	"github.com/vovakirdan/voidrun/internal/core"
)

// spawn runs the node's spawn policy: a single boss for boss nodes,
// otherwise one regular enemy per spawn interval up to the cap.
func (s *Session) spawn() {
	if s.node == NodeBoss {
		if !s.bossSpawned {
			s.spawnBoss()
			s.bossSpawned = true
		}
		return
	}

	sc := s.cfg.Spawn
	if sc.Interval <= 0 || s.frame%sc.Interval != 0 || len(s.enemies) >= sc.MaxEnemies {
		return
	}

	angle := s.rng.Float64() * 2 * math.Pi
	dist := math.Max(s.arena.X, s.arena.Y)/2 + sc.EdgeMargin
	pos := s.avatar.Pos.Add(core.FromAngle(angle, dist))

	ec := s.cfg.Enemies
	hp := (ec.BaseHP + ec.HPPerLevel*float64(s.player.Level)) * s.hpScale

	e := &Enemy{
		ID:    s.newID(),
		Pos:   pos,
		HP:    hp,
		MaxHP: hp,
	}
	if s.rng.Float64() < sc.KiterChance {
		e.Kind = EnemyKiter
		e.Radius = ec.KiterRadius
		e.Speed = ec.KiterSpeed
		e.AttackRange = ec.KiterRange
		e.Damage = s.cfg.EnemyFire.KiterDamage * s.dmgScale
		e.ReloadTimer = s.rng.Float64() * ec.KiterReloadJitter
	} else {
		e.Kind = EnemyChaser
		e.Radius = ec.ChaserRadius
		e.Speed = ec.ChaserSpeedMin + s.rng.Float64()*ec.ChaserSpeedJitter
	}
	s.enemies = append(s.enemies, e)
}

func (s *Session) spawnBoss() {
	bc := s.cfg.Boss
	angle := s.rng.Float64() * 2 * math.Pi
	hp := (bc.BaseHP + bc.HPPerLevel*float64(s.player.Level)) * s.hpScale

	s.enemies = append(s.enemies, &Enemy{
		ID:          s.newID(),
		Kind:        EnemyBoss,
		Pos:         s.avatar.Pos.Add(core.FromAngle(angle, s.cfg.Spawn.BossDistance)),
		Radius:      bc.Radius,
		HP:          hp,
		MaxHP:       hp,
		Speed:       bc.Speed,
		Damage:      s.cfg.EnemyFire.BossDamage * s.dmgScale,
		AttackRange: bc.Range,
	})
}
