package combat

import (
	"math"

	"github.com/vovakirdan/voidrun/internal/core"
)

// DefaultDangerRadius is the autopilot's flee distance.
const DefaultDangerRadius = 180

// steerDeadzone keeps the eight-way input close to the wanted heading.
const steerDeadzone = 0.38 // sin(22.5°)

// centreSlack is how far from the arena centre the idle autopilot drifts.
const centreSlack = 100

// Autopilot returns steering for a headless run. It flees the nearest
// live enemy inside danger, otherwise flies to the nearest pickup,
// otherwise holds near the arena centre. Weapons fire on their own.
func Autopilot(f Frame, danger float64) core.InputFrame {
	p := f.Player.Pos
	centre := core.V(f.ArenaW/2, f.ArenaH/2)

	if e, d, ok := nearestEnemy(f); ok && d < danger {
		// lean toward the centre so fleeing never pins us on a wall
		away := p.Sub(e.Pos).Normalize().Add(centre.Sub(p).Normalize().Scale(0.5))
		return steer(away)
	}
	if l, ok := nearestLoot(f); ok {
		return steer(l.Pos.Sub(p))
	}
	if p.Dist(centre) > centreSlack {
		return steer(centre.Sub(p))
	}
	return core.NewInputFrame()
}

func nearestEnemy(f Frame) (Enemy, float64, bool) {
	best := math.Inf(1)
	idx := -1
	for i, e := range f.Enemies {
		if e.HP <= 0 {
			continue
		}
		if d := f.Player.Pos.Dist(e.Pos); d < best {
			best, idx = d, i
		}
	}
	if idx < 0 {
		return Enemy{}, 0, false
	}
	return f.Enemies[idx], best, true
}

func nearestLoot(f Frame) (Loot, bool) {
	best := math.Inf(1)
	idx := -1
	for i, l := range f.Loot {
		if d := f.Player.Pos.Dist(l.Pos); d < best {
			best, idx = d, i
		}
	}
	if idx < 0 {
		return Loot{}, false
	}
	return f.Loot[idx], true
}

// steer maps a wanted direction onto the eight input directions.
func steer(v core.Vec2) core.InputFrame {
	in := core.NewInputFrame()
	n := v.Normalize()
	switch {
	case n.X > steerDeadzone:
		in.Set(core.ActionRight)
	case n.X < -steerDeadzone:
		in.Set(core.ActionLeft)
	}
	switch {
	case n.Y > steerDeadzone:
		in.Set(core.ActionDown)
	case n.Y < -steerDeadzone:
		in.Set(core.ActionUp)
	}
	return in
}
