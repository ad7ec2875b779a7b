package combat

import "math"

// Snapshot is a compact digest of session state used to compare runs.
// Positions are stored in hundredths of a unit.
type Snapshot struct {
	Tick       uint64
	State      string
	Kills      int
	KillTarget int

	PlayerX, PlayerY int
	Shield           int
	Armor            int
	Hull             int
	Cap              int

	Credits   int
	Materials int
	XP        int

	// Each enemy is 4 ints: Kind, X, Y, HP
	EnemyData []int
	// Each projectile is 4 ints: Owner, X, Y, Life
	ProjectileData []int
	// Each loot is 4 ints: Kind, X, Y, Value
	LootData []int
	// Each weapon is 2 ints: Ammo, ReloadTimer
	WeaponData []int
}

func fixed(v float64) int {
	return int(math.Round(v * 100))
}

// Snapshot returns the current session state as a Snapshot.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:       uint64(s.frame), //#nosec G115 -- frame is never negative
		State:      s.state.String(),
		Kills:      s.kills,
		KillTarget: s.killTarget,
		PlayerX:    fixed(s.avatar.Pos.X),
		PlayerY:    fixed(s.avatar.Pos.Y),
		Shield:     fixed(s.avatar.HP.Shield),
		Armor:      fixed(s.avatar.HP.Armor),
		Hull:       fixed(s.avatar.HP.Hull),
		Cap:        fixed(s.avatar.Cap),
		Credits:    s.collected.Credits,
		Materials:  s.collected.Materials,
		XP:         s.collected.XP,
	}

	snap.EnemyData = make([]int, 0, len(s.enemies)*4)
	for _, e := range s.enemies {
		snap.EnemyData = append(snap.EnemyData, int(e.Kind), fixed(e.Pos.X), fixed(e.Pos.Y), fixed(e.HP))
	}
	snap.ProjectileData = make([]int, 0, len(s.projectiles)*4)
	for _, p := range s.projectiles {
		snap.ProjectileData = append(snap.ProjectileData, int(p.Owner), fixed(p.Pos.X), fixed(p.Pos.Y), p.Life)
	}
	snap.LootData = make([]int, 0, len(s.loot)*4)
	for _, l := range s.loot {
		snap.LootData = append(snap.LootData, int(l.Kind), fixed(l.Pos.X), fixed(l.Pos.Y), l.Value)
	}
	snap.WeaponData = make([]int, 0, len(s.weapons)*2)
	for _, w := range s.weapons {
		snap.WeaponData = append(snap.WeaponData, w.Ammo, w.ReloadTimer)
	}
	return snap
}

// Hash returns a hash of the snapshot for quick comparison.
func (snap Snapshot) Hash() uint64 {
	var h uint64 = 17
	h = h*31 + snap.Tick
	for _, c := range snap.State {
		h = h*31 + uint64(c) //#nosec G115 -- hash computation
	}
	h = h*31 + uint64(snap.Kills)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.KillTarget) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PlayerX)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PlayerY)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Shield)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Armor)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Hull)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Cap)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Credits)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Materials)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.XP)         //#nosec G115 -- hash computation

	for _, data := range [][]int{snap.EnemyData, snap.ProjectileData, snap.LootData, snap.WeaponData} {
		h = h*31 + uint64(len(data)) //#nosec G115 -- hash computation
		for _, v := range data {
			h = h*31 + uint64(v) //#nosec G115 -- hash computation
		}
	}
	return h
}
