package combat

import "github.com/vovakirdan/voidrun/internal/core"

// updateEnemies moves every enemy, lets ranged enemies fire and applies
// contact damage.
func (s *Session) updateEnemies() {
	ec := s.cfg.Enemies
	a := &s.avatar

	for _, e := range s.enemies {
		toPlayer := a.Pos.Sub(e.Pos)
		dist := toPlayer.Len()
		dir := toPlayer.Normalize()

		switch e.Kind {
		case EnemyChaser:
			e.Pos = e.Pos.Add(dir.Scale(e.Speed))

		case EnemyKiter, EnemyBoss:
			band := e.AttackRange
			if band <= 0 {
				band = ec.KiterRange
			}
			if dist > band+ec.BandBuffer {
				e.Pos = e.Pos.Add(dir.Scale(e.Speed))
			} else if dist < band-ec.BandBuffer {
				e.Pos = e.Pos.Sub(dir.Scale(e.Speed * ec.RetreatFactor))
			}

			if e.ReloadTimer > 0 {
				e.ReloadTimer--
			} else if dist <= band+ec.BandBuffer {
				s.enemyFire(e, toPlayer)
			}
		}

		if dist < a.Radius+e.Radius {
			applyDamage(&a.HP, ec.ContactDamage*s.dmgScale)
			e.Pos = e.Pos.Sub(dir.Scale(ec.Pushback))
		}
	}
}

// enemyFire spawns a shot aimed at the player with random spread.
func (s *Session) enemyFire(e *Enemy, toPlayer core.Vec2) {
	fc := s.cfg.EnemyFire

	spread, radius, reload := fc.KiterSpread, fc.KiterRadius, fc.KiterReload
	color := core.ColorAmber
	if e.Kind == EnemyBoss {
		spread, radius, reload = fc.BossSpread, fc.BossRadius, fc.BossReload
		color = core.ColorBrightRed
	}

	angle := toPlayer.Angle() + s.jitter(spread)
	s.projectiles = append(s.projectiles, &Projectile{
		ID:     s.newID(),
		Pos:    e.Pos,
		Vel:    core.FromAngle(angle, fc.ShotSpeed),
		Radius: radius,
		Damage: e.Damage,
		Life:   fc.ShotLife,
		Owner:  OwnerEnemy,
		Color:  color,
	})
	e.ReloadTimer = float64(reload)
}

// enemyByID looks up a live enemy.
func (s *Session) enemyByID(id EntityID) *Enemy {
	for _, e := range s.enemies {
		if e.ID == id {
			return e
		}
	}
	return nil
}
