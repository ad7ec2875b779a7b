package combat

import (
	"math"

	"github.com/vovakirdan/voidrun/internal/core"
	"github.com/vovakirdan/voidrun/internal/ship"
)

// regen restores shield and capacitor once per regen interval.
func (s *Session) regen() {
	interval := s.cfg.Regen.Interval
	if interval <= 0 || s.frame%interval != 0 {
		return
	}

	a := &s.avatar
	if a.HP.Shield < a.MaxHP.Shield {
		amount := a.MaxHP.Shield * (s.cfg.Regen.ShieldFraction + s.derived.ShieldRegenMult)
		a.HP.Shield = min(a.MaxHP.Shield, a.HP.Shield+amount)
	}
	if a.Cap < a.CapMax {
		a.Cap = min(a.CapMax, a.Cap+a.CapRecharge)
	}
}

// updateModules auto-cycles repair modules whose layer is below the
// trigger threshold and whose capacitor cost can be paid.
func (s *Session) updateModules() {
	a := &s.avatar
	threshold := s.cfg.Modules.TriggerThreshold

	for i := range s.modules {
		m := &s.modules[i]
		if m.Cooldown > 0 {
			m.Cooldown--
			continue
		}

		def := m.Def
		trigger := (def.RepairShield > 0 && a.HP.Shield < a.MaxHP.Shield*threshold) ||
			(def.RepairArmor > 0 && a.HP.Armor < a.MaxHP.Armor*threshold) ||
			(def.RepairHull > 0 && a.HP.Hull < a.MaxHP.Hull*threshold)
		if !trigger || a.Cap < def.CapCost {
			continue
		}

		a.Cap -= def.CapCost
		a.HP.Shield = min(a.MaxHP.Shield, a.HP.Shield+def.RepairShield)
		a.HP.Armor = min(a.MaxHP.Armor, a.HP.Armor+def.RepairArmor)
		a.HP.Hull = min(a.MaxHP.Hull, a.HP.Hull+def.RepairHull)

		cycle := def.ActivationTime
		if cycle <= 0 {
			cycle = s.cfg.Modules.DefaultCycle
		}
		m.Cooldown = int(math.Round(cycle * FramesPerSecond))

		s.emit(a.Pos, core.V(0, -1), s.cfg.Particles.RepairLife, repairColor(def))
	}
}

func repairColor(def ship.Item) core.Color {
	switch {
	case def.RepairShield > 0:
		return core.ColorBrightBlue
	case def.RepairArmor > 0:
		return core.ColorYellow
	default:
		return core.ColorRed
	}
}

// move applies directional input, the speed cap, friction and the arena
// bounds to the avatar.
func (s *Session) move(dir core.Vec2) {
	a := &s.avatar
	pc := s.cfg.Player

	a.Vel = a.Vel.Add(dir.Scale(pc.Accel)).ClampLen(s.derived.Speed)
	a.Pos = a.Pos.Add(a.Vel)
	a.Vel = a.Vel.Scale(pc.Friction)

	a.Pos.X = core.ClampF(a.Pos.X, 0, s.arena.X)
	a.Pos.Y = core.ClampF(a.Pos.Y, 0, s.arena.Y)

	if math.Abs(a.Vel.X) > pc.HeadingDeadzone || math.Abs(a.Vel.Y) > pc.HeadingDeadzone {
		a.Heading = a.Vel.Angle()
	}
}

// applyDamage removes dmg from the first non-empty layer, shield first.
// A hit never spills over into the next layer.
func applyDamage(hp *ship.Layers, dmg float64) {
	switch {
	case hp.Shield > 0:
		hp.Shield = max(0, hp.Shield-dmg)
	case hp.Armor > 0:
		hp.Armor = max(0, hp.Armor-dmg)
	default:
		hp.Hull = max(0, hp.Hull-dmg)
	}
}
