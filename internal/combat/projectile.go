package combat

import "github.com/vovakirdan/voidrun/internal/core"

// updateProjectiles steers homing shots, moves everything, resolves one
// collision per projectile and drops spent shots.
func (s *Session) updateProjectiles() {
	wc := s.cfg.Weapons
	pc := s.cfg.Particles
	trail := pc.TrailInterval > 0 && s.frame%pc.TrailInterval == 0

	alive := s.projectiles[:0]
	for _, p := range s.projectiles {
		if p.Homing && p.Owner == OwnerPlayer {
			if target := s.enemyByID(p.TargetID); target != nil {
				ideal := core.FromAngle(target.Pos.Sub(p.Pos).Angle(), wc.MissileSpeed)
				p.Vel = p.Vel.Add(ideal.Sub(p.Vel).Scale(wc.HomingTurnRate))
			}
		}

		p.Pos = p.Pos.Add(p.Vel)
		p.Life--

		if trail {
			s.emit(p.Pos, core.Vec2{}, pc.TrailLife, p.Color)
		}

		if !s.collide(p) && p.Life > 0 {
			alive = append(alive, p)
		}
	}
	clear(s.projectiles[len(alive):])
	s.projectiles = alive
}

// collide applies p to the first thing it overlaps and reports a hit.
func (s *Session) collide(p *Projectile) bool {
	pc := s.cfg.Particles

	if p.Owner == OwnerPlayer {
		for _, e := range s.enemies {
			if e.HP <= 0 || !core.Overlaps(p.Pos, p.Radius, e.Pos, e.Radius) {
				continue
			}
			e.HP -= p.Damage
			s.burst(p.Pos, pc.SparkCount, 3, pc.SparkLife, core.ColorBrightWhite)
			return true
		}
		return false
	}

	a := &s.avatar
	if !core.Overlaps(p.Pos, p.Radius, a.Pos, a.Radius) {
		return false
	}
	applyDamage(&a.HP, p.Damage)
	s.burst(a.Pos, pc.HitCount, 4, pc.HitLife, core.ColorRed)
	return true
}
