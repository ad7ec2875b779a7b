package combat

import (
	"math"

	"github.com/vovakirdan/voidrun/internal/core"
)

// Visual characters for rendering
const (
	ChaserChar     = 'x'
	KiterChar      = '▲'
	BossChar       = '█'
	ShotChar       = '·'
	MissileChar    = '*'
	EnemyShotChar  = '•'
	XPChar         = '∘'
	CreditChar     = '$'
	MaterialChar   = '▴'
	ParticleChar   = '.'
	GridChar       = '·'
	gridSpacing    = 100 // arena units between grid dots
	bossHalfWidth  = 2
	bossHalfHeight = 1
)

// headingGlyphs are indexed by heading octant, starting east, clockwise
// (screen y grows downward).
var headingGlyphs = []rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

// viewport maps arena coordinates onto a screen.
type viewport struct {
	sx, sy float64
	w, h   int
}

func newViewport(dst *core.Screen, arenaW, arenaH float64) viewport {
	return viewport{
		sx: float64(dst.Width()) / arenaW,
		sy: float64(dst.Height()) / arenaH,
		w:  dst.Width(),
		h:  dst.Height(),
	}
}

func (v viewport) cell(p core.Vec2) (int, int, bool) {
	x := int(math.Floor(p.X * v.sx))
	y := int(math.Floor(p.Y * v.sy))
	return x, y, x >= 0 && x < v.w && y >= 0 && y < v.h
}

// Render draws the arena scaled onto dst. Bars and text panels are left
// to the caller.
func (s *Session) Render(dst *core.Screen) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() == 0 || s.state == StateClosed {
		return
	}
	vp := newViewport(dst, s.arena.X, s.arena.Y)

	s.renderGrid(dst, vp)

	for _, p := range s.particles {
		if x, y, ok := vp.cell(p.Pos); ok {
			dst.SetCell(x, y, ParticleChar, p.Color)
		}
	}

	for _, l := range s.loot {
		x, y, ok := vp.cell(l.Pos)
		if !ok {
			continue
		}
		switch l.Kind {
		case LootXP:
			dst.SetCell(x, y, XPChar, core.ColorBrightBlue)
		case LootCredit:
			dst.SetCell(x, y, CreditChar, core.ColorBrightYellow)
		case LootMaterial:
			dst.SetCell(x, y, MaterialChar, core.ColorGray)
		}
	}

	for _, e := range s.enemies {
		s.renderEnemy(dst, vp, e)
	}

	for _, p := range s.projectiles {
		x, y, ok := vp.cell(p.Pos)
		if !ok {
			continue
		}
		switch {
		case p.Owner == OwnerEnemy:
			dst.SetCell(x, y, EnemyShotChar, p.Color)
		case p.Homing:
			dst.SetCell(x, y, MissileChar, p.Color)
		default:
			dst.SetCell(x, y, ShotChar, p.Color)
		}
	}

	if x, y, ok := vp.cell(s.avatar.Pos); ok {
		dst.SetCell(x, y, headingGlyph(s.avatar.Heading), core.ColorBrightCyan)
	}
}

func (s *Session) renderGrid(dst *core.Screen, vp viewport) {
	for ax := gridSpacing / 2.0; ax < s.arena.X; ax += gridSpacing {
		for ay := gridSpacing / 2.0; ay < s.arena.Y; ay += gridSpacing {
			if x, y, ok := vp.cell(core.V(ax, ay)); ok {
				dst.SetCell(x, y, GridChar, core.ColorDarkGray)
			}
		}
	}
}

func (s *Session) renderEnemy(dst *core.Screen, vp viewport, e *Enemy) {
	x, y, ok := vp.cell(e.Pos)
	switch e.Kind {
	case EnemyBoss:
		// the boss is big enough to show even when its centre is off screen
		for dy := -bossHalfHeight; dy <= bossHalfHeight; dy++ {
			for dx := -bossHalfWidth; dx <= bossHalfWidth; dx++ {
				dst.SetCell(x+dx, y+dy, BossChar, core.ColorRed)
			}
		}
	case EnemyKiter:
		if ok {
			dst.SetCell(x, y, KiterChar, core.ColorOrange)
		}
	default:
		if ok {
			color := core.ColorBrightRed
			if e.MaxHP > 0 && e.HP < e.MaxHP/2 {
				color = core.ColorRed
			}
			dst.SetCell(x, y, ChaserChar, color)
		}
	}
}

func headingGlyph(heading float64) rune {
	octant := int(math.Round(heading/(math.Pi/4))) % 8
	if octant < 0 {
		octant += 8
	}
	return headingGlyphs[octant]
}
