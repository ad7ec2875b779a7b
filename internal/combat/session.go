// Package combat is the real-time arena simulation. A Session is created
// from a snapshot of the player's persistent state, stepped once per frame
// and reports completion, death or a level-up request back to the caller.
// It never writes persistent state itself.
package combat

import (
	"github.com/vovakirdan/voidrun/internal/config"
	"github.com/vovakirdan/voidrun/internal/core"
	"github.com/vovakirdan/voidrun/internal/ship"
)

// FramesPerSecond converts item timings (seconds) to frames.
const FramesPerSecond = 60

// NodeKind selects the spawn policy and objective.
type NodeKind int

const (
	NodeStandard NodeKind = iota
	NodeBoss
)

// String returns the node kind name.
func (n NodeKind) String() string {
	if n == NodeBoss {
		return "boss"
	}
	return "standard"
}

// Vitals is the in-progress health and capacitor carried between sessions.
type Vitals struct {
	HP  ship.Layers
	Cap float64
}

// VitalsOf reads the current vitals off a player's stat sheet.
func VitalsOf(ps ship.PlayerState) Vitals {
	return Vitals{HP: ps.Stats.HP, Cap: ps.Stats.Cap.Current}
}

// Start is everything a session needs to begin.
type Start struct {
	Player ship.PlayerState // read-only baseline; the session keeps its own copy
	Node   NodeKind
	Vitals Vitals // resumed as-is, clamped to the derived maxima
	Sector int    // run depth, drives difficulty scaling
}

// LootTotals are pickups collected during the session.
type LootTotals struct {
	Credits   int
	Materials int
	XP        int
}

// Completion is handed back when the objective is met.
type Completion struct {
	Loot   LootTotals
	Vitals Vitals
}

// State is the session lifecycle state.
type State int

const (
	StateRunning State = iota
	StateLevelUpPending
	StateCompleted
	StateDied
	StateClosed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateLevelUpPending:
		return "levelup"
	case StateCompleted:
		return "completed"
	case StateDied:
		return "died"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Outcome is what a single Step produced.
type Outcome int

const (
	OutcomeRunning   Outcome = iota
	OutcomePaused            // no simulation work was done
	OutcomeLevelUp           // the XP threshold was crossed this frame
	OutcomeCompleted         // kill target reached this frame
	OutcomeDied              // hull reached zero this frame
	OutcomeClosed            // the session was closed
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeRunning:
		return "running"
	case OutcomePaused:
		return "paused"
	case OutcomeLevelUp:
		return "levelup"
	case OutcomeCompleted:
		return "completed"
	case OutcomeDied:
		return "died"
	case OutcomeClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// StepResult contains the outcome of a single frame.
type StepResult struct {
	Outcome    Outcome
	Completion *Completion // set with OutcomeCompleted
}

// Session is one combat encounter. It is not safe for concurrent use;
// the owner steps it from a single goroutine.
type Session struct {
	cfg   config.CombatConfig
	rng   Rand
	node  NodeKind
	arena core.Vec2 // width, height

	player  ship.PlayerState // in-session copy
	derived ship.Derived

	avatar      Avatar
	enemies     []*Enemy
	projectiles []*Projectile
	particles   []*Particle
	loot        []*Loot
	weapons     []weaponSlot
	modules     []moduleSlot
	collected   LootTotals

	frame       int
	kills       int
	killTarget  int
	bossSpawned bool
	nextID      EntityID

	hpScale  float64
	dmgScale float64

	state      State
	paused     bool
	completion *Completion
}

// New creates a session from a player snapshot.
func New(start Start, cfg config.CombatConfig, rng Rand) *Session {
	if rng == nil {
		rng = NewRand(0)
	}
	dm := config.NewDifficultyManager(cfg.Difficulty)

	s := &Session{
		cfg:      cfg,
		rng:      rng,
		node:     start.Node,
		arena:    core.V(cfg.Arena.Width, cfg.Arena.Height),
		player:   start.Player.Clone(),
		hpScale:  dm.HPScale(start.Sector),
		dmgScale: dm.DamageScale(start.Sector),
		state:    StateRunning,
	}
	s.derived = ship.Derive(s.player)

	s.avatar = Avatar{
		Pos:    s.arena.Scale(0.5),
		Radius: cfg.Player.Radius,
		HP:     start.Vitals.HP,
		Cap:    start.Vitals.Cap,
	}
	s.syncMax()

	s.weapons = syncWeaponSlots(nil, s.derived.Weapons)
	s.modules = syncModuleSlots(nil, s.derived.ActiveModules)

	if s.node == NodeBoss {
		s.killTarget = 1
	} else {
		s.killTarget = cfg.Objectives.BaseKills + s.player.Level*cfg.Objectives.KillsPerLevel
	}
	return s
}

// State returns the lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Paused reports whether the external pause flag is set.
func (s *Session) Paused() bool {
	return s.paused
}

// SetPaused freezes or unfreezes the frame loop. While paused, Step does
// no simulation work.
func (s *Session) SetPaused(p bool) {
	s.paused = p
}

// UpdatePlayer pushes a new player snapshot into a live session. Only the
// maxima follow it; current HP and capacitor are never rescaled.
func (s *Session) UpdatePlayer(ps ship.PlayerState) {
	if s.state == StateClosed {
		return
	}
	s.player = ps.Clone()
	s.derived = ship.Derive(s.player)
	s.syncMax()
	s.weapons = syncWeaponSlots(s.weapons, s.derived.Weapons)
	s.modules = syncModuleSlots(s.modules, s.derived.ActiveModules)
}

// AcknowledgeLevelUp resumes a session waiting on a level-up choice.
func (s *Session) AcknowledgeLevelUp() {
	if s.state == StateLevelUpPending {
		s.state = StateRunning
	}
}

// Close releases every entity store. Later Steps return OutcomeClosed.
func (s *Session) Close() {
	s.enemies = nil
	s.projectiles = nil
	s.particles = nil
	s.loot = nil
	s.weapons = nil
	s.modules = nil
	s.completion = nil
	s.state = StateClosed
}

// Step advances the session by one frame.
func (s *Session) Step(in core.InputFrame) StepResult {
	switch s.state {
	case StateClosed:
		return StepResult{Outcome: OutcomeClosed}
	case StateDied:
		return StepResult{Outcome: OutcomeDied}
	case StateCompleted:
		return StepResult{Outcome: OutcomeCompleted, Completion: s.completion}
	case StateLevelUpPending:
		return StepResult{Outcome: OutcomePaused}
	}
	if s.paused {
		return StepResult{Outcome: OutcomePaused}
	}

	s.frame++
	s.derived = ship.Derive(s.player)
	s.syncMax()

	s.regen()
	s.updateModules()
	s.move(in.Direction())
	s.spawn()
	s.updateEnemies()
	s.autoFire()
	s.updateProjectiles()
	s.reapEnemies()
	s.updateLoot()
	s.updateParticles()

	return s.checkTermination()
}

// checkTermination evaluates death, objective and level-up in that order.
func (s *Session) checkTermination() StepResult {
	if s.avatar.HP.Hull <= 0 {
		s.state = StateDied
		return StepResult{Outcome: OutcomeDied}
	}

	if s.kills >= s.killTarget {
		s.state = StateCompleted
		s.completion = &Completion{
			Loot:   s.collected,
			Vitals: Vitals{HP: s.avatar.HP, Cap: s.avatar.Cap},
		}
		return StepResult{Outcome: OutcomeCompleted, Completion: s.completion}
	}

	if s.player.XP+s.collected.XP >= s.player.XPToNextLevel {
		cost := s.player.XPToNextLevel - s.player.XP
		s.collected.XP = max(0, s.collected.XP-cost)
		s.state = StateLevelUpPending
		return StepResult{Outcome: OutcomeLevelUp}
	}

	return StepResult{Outcome: OutcomeRunning}
}

// syncMax copies derived maxima onto the avatar and pulls current values
// down if a maximum dropped.
func (s *Session) syncMax() {
	a := &s.avatar
	a.MaxHP = s.derived.MaxHP
	a.CapMax = s.derived.CapMax
	a.CapRecharge = s.derived.CapRecharge

	a.HP.Shield = core.ClampF(a.HP.Shield, 0, a.MaxHP.Shield)
	a.HP.Armor = core.ClampF(a.HP.Armor, 0, a.MaxHP.Armor)
	a.HP.Hull = core.ClampF(a.HP.Hull, 0, a.MaxHP.Hull)
	a.Cap = core.ClampF(a.Cap, 0, a.CapMax)
}

func (s *Session) newID() EntityID {
	s.nextID++
	return s.nextID
}

func (s *Session) intn(n int) int {
	if n <= 0 {
		return 0
	}
	return s.rng.Intn(n)
}

// jitter returns a value in [-span/2, span/2).
func (s *Session) jitter(span float64) float64 {
	return (s.rng.Float64() - 0.5) * span
}
