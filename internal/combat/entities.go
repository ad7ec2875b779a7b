package combat

import (
	"github.com/vovakirdan/voidrun/internal/core"
	"github.com/vovakirdan/voidrun/internal/ship"
)

// EntityID identifies an entity within one session. IDs are handed out
// in increasing order and never reused.
type EntityID uint64

// EnemyKind is the enemy archetype.
type EnemyKind int

const (
	EnemyChaser EnemyKind = iota // melee, seeks the player
	EnemyKiter                   // ranged, holds a distance band
	EnemyBoss
)

// String returns the kind name.
func (k EnemyKind) String() string {
	switch k {
	case EnemyChaser:
		return "chaser"
	case EnemyKiter:
		return "kiter"
	case EnemyBoss:
		return "boss"
	default:
		return "unknown"
	}
}

// Avatar is the player's ship inside a session.
type Avatar struct {
	Pos     core.Vec2
	Vel     core.Vec2
	Heading float64 // radians
	Radius  float64

	HP          ship.Layers
	MaxHP       ship.Layers
	Cap         float64
	CapMax      float64
	CapRecharge float64
}

// Enemy is a hostile ship.
type Enemy struct {
	ID          EntityID
	Kind        EnemyKind
	Pos         core.Vec2
	Radius      float64
	HP          float64
	MaxHP       float64
	Speed       float64
	Damage      float64 // per shot
	AttackRange float64 // 0 for chasers
	ReloadTimer float64 // frames until the next shot
}

// Owner is the side that fired a projectile.
type Owner int

const (
	OwnerPlayer Owner = iota
	OwnerEnemy
)

// Projectile is a shot in flight.
type Projectile struct {
	ID       EntityID
	Pos      core.Vec2
	Vel      core.Vec2
	Radius   float64
	Damage   float64
	Life     int // frames left
	Owner    Owner
	Homing   bool
	TargetID EntityID // looked up every frame; the target may be gone
	Color    core.Color
}

// Particle is cosmetic only.
type Particle struct {
	Pos     core.Vec2
	Vel     core.Vec2
	Life    int
	MaxLife int
	Color   core.Color
}

// LootKind is what a pickup grants.
type LootKind int

const (
	LootXP LootKind = iota
	LootCredit
	LootMaterial
)

// String returns the kind name.
func (k LootKind) String() string {
	switch k {
	case LootXP:
		return "xp"
	case LootCredit:
		return "credit"
	case LootMaterial:
		return "material"
	default:
		return "unknown"
	}
}

// Loot is a pickup drifting in the arena.
type Loot struct {
	ID         EntityID
	Pos        core.Vec2
	Vel        core.Vec2
	Kind       LootKind
	Value      int
	Radius     float64
	Magnetized bool
}

// weaponSlot pairs an equipped weapon with its runtime state.
type weaponSlot struct {
	Def         ship.Item
	Ammo        int
	ReloadTimer int // frames; > 0 while reloading
}

// moduleSlot pairs an active module with its cooldown.
type moduleSlot struct {
	Def      ship.Item
	Cooldown int // frames
}

func newWeaponSlot(def ship.Item) weaponSlot {
	return weaponSlot{Def: def, Ammo: def.AmmoCapacity}
}

// usesAmmo reports whether the weapon has a magazine.
func (w *weaponSlot) usesAmmo() bool {
	return w.Def.AmmoCapacity > 0
}

// syncWeaponSlots rebuilds the slot list for a new weapon list, carrying
// runtime state over to weapons that are still fitted.
func syncWeaponSlots(old []weaponSlot, defs []ship.Item) []weaponSlot {
	used := make([]bool, len(old))
	out := make([]weaponSlot, 0, len(defs))
	for _, def := range defs {
		slot := newWeaponSlot(def)
		for i := range old {
			if !used[i] && old[i].Def.ID == def.ID {
				used[i] = true
				slot.Ammo = min(old[i].Ammo, def.AmmoCapacity)
				slot.ReloadTimer = old[i].ReloadTimer
				break
			}
		}
		out = append(out, slot)
	}
	return out
}

// syncModuleSlots is syncWeaponSlots for active modules.
func syncModuleSlots(old []moduleSlot, defs []ship.Item) []moduleSlot {
	used := make([]bool, len(old))
	out := make([]moduleSlot, 0, len(defs))
	for _, def := range defs {
		slot := moduleSlot{Def: def}
		for i := range old {
			if !used[i] && old[i].Def.ID == def.ID {
				used[i] = true
				slot.Cooldown = old[i].Cooldown
				break
			}
		}
		out = append(out, slot)
	}
	return out
}
