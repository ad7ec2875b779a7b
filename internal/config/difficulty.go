package config

import "math"

// DifficultyManager scales enemy strength by how deep into the run the
// player is.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty scaling is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled
}

// Level returns the difficulty level (0.0 to 1.0) for a sector.
// Disabled managers always report 0 so enemy stats stay at their base.
func (d *DifficultyManager) Level(sector int) float64 {
	if !d.cfg.Enabled {
		return 0
	}
	if d.cfg.Progression.Type != "sector" {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}
	progress := clampF(float64(sector)/maxAt, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// HPScale returns the multiplier applied to enemy HP in a sector.
func (d *DifficultyManager) HPScale(sector int) float64 {
	return 1.0 + d.Level(sector)*d.cfg.Scaling.HPMultiplier
}

// DamageScale returns the multiplier applied to enemy damage in a sector.
func (d *DifficultyManager) DamageScale(sector int) float64 {
	return 1.0 + d.Level(sector)*d.cfg.Scaling.DamageMultiplier
}

// clampF restricts a float64 to [lo, hi].
func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
