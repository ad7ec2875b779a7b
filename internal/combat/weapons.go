package combat

import (
	"math"

	"github.com/vovakirdan/voidrun/internal/core"
	"github.com/vovakirdan/voidrun/internal/ship"
)

// autoFire cycles every fitted weapon: reload countdown, cadence gate,
// ammo check, targeting and the shot itself.
func (s *Session) autoFire() {
	wc := s.cfg.Weapons

	for idx := range s.weapons {
		w := &s.weapons[idx]

		if w.ReloadTimer > 0 {
			w.ReloadTimer--
			if w.ReloadTimer == 0 {
				w.Ammo = w.Def.AmmoCapacity
			}
			continue
		}

		if (s.frame+idx*wc.CadenceStagger)%s.cadence(w.Def) != 0 {
			continue
		}

		if w.usesAmmo() && w.Ammo <= 0 {
			reload := w.Def.ReloadTime
			if reload <= 0 {
				reload = wc.DefaultReload
			}
			w.ReloadTimer = int(math.Round(reload * FramesPerSecond))
			continue
		}

		target := s.nearestEnemy(s.weaponRange(w.Def))
		if target == nil {
			continue
		}

		s.firePlayerShot(w.Def, target)
		if w.usesAmmo() {
			w.Ammo--
		}
	}
}

// cadence returns the frames between shots of a weapon, never below the
// configured floor.
func (s *Session) cadence(def ship.Item) int {
	rof := def.RateOfFire
	if rof <= 0 {
		rof = s.cfg.Weapons.DefaultRate
	}
	frames := int(math.Ceil(rof * FramesPerSecond * (1 - s.derived.FireRateMult)))
	return max(s.cfg.Weapons.MinCadence, frames, 1)
}

// weaponRange is the weapon's range stretched by fitted range bonuses.
func (s *Session) weaponRange(def ship.Item) float64 {
	r := def.Range
	if r <= 0 {
		r = s.cfg.Weapons.DefaultRange
	}
	return r * (1 + s.derived.RangeBonus)
}

// nearestEnemy returns the closest enemy strictly within maxDist. On a tie
// the earliest spawned enemy wins.
func (s *Session) nearestEnemy(maxDist float64) *Enemy {
	var nearest *Enemy
	best := maxDist
	for _, e := range s.enemies {
		if d := e.Pos.Dist(s.avatar.Pos); d < best {
			best = d
			nearest = e
		}
	}
	return nearest
}

// shotDamage is base damage times the global multiplier, the firing
// module's own category bonus and every other fitted module's bonus of the
// same category. Missiles use missile bonuses, everything else turret
// bonuses.
func (s *Session) shotDamage(def ship.Item) float64 {
	missile := def.IsMissile()
	bonus := func(it ship.Item) float64 {
		if missile {
			return it.MissileDamageBonus
		}
		return it.TurretDamageBonus
	}

	dmg := def.Damage * s.derived.DamageMult * (1 + bonus(def))

	skipped := false
	for _, m := range s.player.Modules {
		if !skipped && m.ID == def.ID {
			skipped = true
			continue
		}
		dmg *= 1 + bonus(m)
	}
	return dmg
}

func (s *Session) firePlayerShot(def ship.Item, target *Enemy) {
	wc := s.cfg.Weapons
	missile := def.IsMissile()

	speed, radius := wc.ShotSpeed, wc.ShotRadius
	if missile {
		speed, radius = wc.MissileSpeed, wc.MissileRadius
	}

	angle := target.Pos.Sub(s.avatar.Pos).Angle()
	s.projectiles = append(s.projectiles, &Projectile{
		ID:       s.newID(),
		Pos:      s.avatar.Pos,
		Vel:      core.FromAngle(angle, speed),
		Radius:   radius,
		Damage:   s.shotDamage(def),
		Life:     wc.ShotLife,
		Owner:    OwnerPlayer,
		Homing:   missile,
		TargetID: target.ID,
		Color:    damageColor(def.DamageType),
	})
}

func damageColor(t ship.DamageType) core.Color {
	switch t {
	case ship.DamageEM:
		return core.ColorBrightBlue
	case ship.DamageThermal:
		return core.ColorYellow
	case ship.DamageKinetic:
		return core.ColorGray
	case ship.DamageExplosive:
		return core.ColorRed
	default:
		return core.ColorOrange
	}
}
