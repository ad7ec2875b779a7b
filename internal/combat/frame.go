package combat

// WeaponStatus is the HUD line for one fitted weapon.
type WeaponStatus struct {
	Name      string
	Ammo      int
	Capacity  int // 0 for weapons without a magazine
	Reloading bool
	Reload    float64 // fraction of the reload done, 0..1
}

// Frame is a read-only view of everything the presentation layer may
// draw for the current frame. Slices are copies.
type Frame struct {
	Frame  int
	State  State
	Node   NodeKind
	Paused bool

	ArenaW, ArenaH float64

	Player      Avatar
	Enemies     []Enemy
	Projectiles []Projectile
	Particles   []Particle
	Loot        []Loot
	Weapons     []WeaponStatus

	HasBoss  bool
	BossHP   float64 // fraction of max
	BossName string

	Kills      int
	KillTarget int

	Collected LootTotals
	Credits   int // persistent plus collected
	Materials int
	XP        int // persistent plus collected
	XPToNext  int
	Level     int
}

// Frame returns the presentation view of the session.
func (s *Session) Frame() Frame {
	f := Frame{
		Frame:      s.frame,
		State:      s.state,
		Node:       s.node,
		Paused:     s.paused,
		ArenaW:     s.arena.X,
		ArenaH:     s.arena.Y,
		Player:     s.avatar,
		Kills:      s.kills,
		KillTarget: s.killTarget,
		Collected:  s.collected,
		Credits:    s.player.Credits + s.collected.Credits,
		Materials:  s.player.Materials + s.collected.Materials,
		XP:         s.player.XP + s.collected.XP,
		XPToNext:   s.player.XPToNextLevel,
		Level:      s.player.Level,
	}

	f.Enemies = make([]Enemy, len(s.enemies))
	for i, e := range s.enemies {
		f.Enemies[i] = *e
		if e.Kind == EnemyBoss && !f.HasBoss {
			f.HasBoss = true
			f.BossName = "Pirate Dreadnought"
			if e.MaxHP > 0 {
				f.BossHP = max(0, e.HP/e.MaxHP)
			}
		}
	}
	f.Projectiles = make([]Projectile, len(s.projectiles))
	for i, p := range s.projectiles {
		f.Projectiles[i] = *p
	}
	f.Particles = make([]Particle, len(s.particles))
	for i, p := range s.particles {
		f.Particles[i] = *p
	}
	f.Loot = make([]Loot, len(s.loot))
	for i, l := range s.loot {
		f.Loot[i] = *l
	}

	f.Weapons = make([]WeaponStatus, len(s.weapons))
	for i, w := range s.weapons {
		ws := WeaponStatus{
			Name:      w.Def.Name,
			Ammo:      w.Ammo,
			Capacity:  w.Def.AmmoCapacity,
			Reloading: w.ReloadTimer > 0,
		}
		if ws.Reloading {
			total := w.Def.ReloadTime
			if total <= 0 {
				total = s.cfg.Weapons.DefaultReload
			}
			ws.Reload = 1 - float64(w.ReloadTimer)/(total*FramesPerSecond)
		}
		f.Weapons[i] = ws
	}
	return f
}
