package combat

import "github.com/vovakirdan/voidrun/internal/core"

const (
	xpLootRadius       = 4
	creditLootRadius   = 5
	materialLootRadius = 6
)

// reapEnemies removes destroyed enemies, counts kills, fires relic on-kill
// effects and rolls drops.
func (s *Session) reapEnemies() {
	alive := s.enemies[:0]
	for _, e := range s.enemies {
		if e.HP > 0 {
			alive = append(alive, e)
			continue
		}
		s.kills++
		s.onKill()
		s.dropLoot(e)
	}
	clear(s.enemies[len(alive):])
	s.enemies = alive
}

func (s *Session) onKill() {
	a := &s.avatar
	for _, r := range s.player.Relics {
		if r.AmmoRefillOnKill > 0 {
			for i := range s.weapons {
				w := &s.weapons[i]
				if w.usesAmmo() {
					w.Ammo = min(w.Def.AmmoCapacity, w.Ammo+r.AmmoRefillOnKill)
				}
			}
		}
		if r.CapRefillOnKill > 0 {
			a.Cap = min(a.CapMax, a.Cap+r.CapRefillOnKill)
		}
		if r.HealOnKill > 0 {
			a.HP.Hull = min(a.MaxHP.Hull, a.HP.Hull+r.HealOnKill)
		}
	}
}

func (s *Session) dropLoot(e *Enemy) {
	lc := s.cfg.Loot
	boss := e.Kind == EnemyBoss

	mult, xpDrops := 1, 1
	if boss {
		mult, xpDrops = lc.BossMultiplier, lc.BossXPDrops
	}

	for range xpDrops {
		offset := core.V(s.rng.Float64()*20-10, s.rng.Float64()*20-10)
		s.addLoot(e.Pos.Add(offset), core.V(s.jitter(4), s.jitter(4)), LootXP, lc.XPValue, xpLootRadius)
	}

	if s.rng.Float64() < lc.CreditChance || boss {
		value := (s.intn(lc.CreditSpread) + lc.CreditMin) * mult
		s.addLoot(e.Pos, core.V(s.jitter(3), s.jitter(3)), LootCredit, value, creditLootRadius)
	}

	if s.rng.Float64() < lc.MaterialChance || boss {
		value := (s.intn(lc.MaterialSpread) + lc.MaterialMin) * mult
		s.addLoot(e.Pos, core.V(s.jitter(3), s.jitter(3)), LootMaterial, value, materialLootRadius)
	}
}

func (s *Session) addLoot(pos, vel core.Vec2, kind LootKind, value int, radius float64) {
	s.loot = append(s.loot, &Loot{
		ID:     s.newID(),
		Pos:    pos,
		Vel:    vel,
		Kind:   kind,
		Value:  value,
		Radius: radius,
	})
}

// updateLoot drifts pickups, pulls the ones inside the magnet radius
// toward the player and collects those touching the player.
func (s *Session) updateLoot() {
	lc := s.cfg.Loot
	a := &s.avatar
	magnet := lc.MagnetRadius * s.derived.MagnetMult

	alive := s.loot[:0]
	for _, l := range s.loot {
		l.Pos = l.Pos.Add(l.Vel)
		l.Vel = l.Vel.Scale(lc.Decay)

		toPlayer := a.Pos.Sub(l.Pos)
		dist := toPlayer.Len()

		l.Magnetized = dist < magnet
		if l.Magnetized {
			l.Vel = l.Vel.Add(toPlayer.Normalize().Scale(lc.MagnetAccel)).ClampLen(lc.MaxSpeed)
		}

		if dist < a.Radius+l.Radius {
			s.collect(l)
			continue
		}
		alive = append(alive, l)
	}
	clear(s.loot[len(alive):])
	s.loot = alive
}

func (s *Session) collect(l *Loot) {
	switch l.Kind {
	case LootXP:
		s.collected.XP += l.Value
	case LootCredit:
		s.collected.Credits += l.Value
	case LootMaterial:
		s.collected.Materials += l.Value
	}
}
