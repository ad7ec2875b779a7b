package combat

import "github.com/vovakirdan/voidrun/internal/core"

// emit adds a single particle.
func (s *Session) emit(pos, vel core.Vec2, life int, c core.Color) {
	if life <= 0 {
		return
	}
	s.particles = append(s.particles, &Particle{
		Pos:     pos,
		Vel:     vel,
		Life:    life,
		MaxLife: life,
		Color:   c,
	})
}

// burst adds n particles scattered with random velocity in [-spread/2, spread/2).
func (s *Session) burst(pos core.Vec2, n int, spread float64, life int, c core.Color) {
	for range n {
		s.emit(pos, core.V(s.jitter(spread), s.jitter(spread)), life, c)
	}
}

// updateParticles ages particles out.
func (s *Session) updateParticles() {
	alive := s.particles[:0]
	for _, p := range s.particles {
		p.Pos = p.Pos.Add(p.Vel)
		p.Life--
		if p.Life > 0 {
			alive = append(alive, p)
		}
	}
	clear(s.particles[len(alive):])
	s.particles = alive
}
