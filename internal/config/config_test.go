package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedYAMLMatchesDefaults(t *testing.T) {
	cfg := DefaultCombatConfig()
	var fromYAML CombatConfig
	require.NoError(t, yaml.Unmarshal(DefaultYAML(), &fromYAML))
	assert.Equal(t, cfg, fromYAML)
}

func TestLoadCombatCustomPathPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "combat.yaml")
	require.NoError(t, os.WriteFile(path, []byte("spawn:\n  max_enemies: 12\n"), 0o644))

	cfg, err := LoadCombat(path)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Spawn.MaxEnemies)
	assert.Equal(t, 60, cfg.Spawn.Interval, "unset keys keep their defaults")
	assert.InDelta(t, 0.92, cfg.Player.Friction, 1e-9)
}

func TestLoadCombatCustomPathErrors(t *testing.T) {
	_, err := LoadCombat(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("spawn: [1, 2"), 0o644))
	_, err = LoadCombat(bad)
	assert.Error(t, err)
}

func TestLoadCombatFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadCombat("")
	require.NoError(t, err)
	assert.Equal(t, DefaultCombatConfig(), cfg)
}

func TestLoadCombatLocalConfigsDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.MkdirAll("configs", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("configs", "combat.yaml"), []byte("arena:\n  width: 640\n"), 0o644))

	cfg, err := LoadCombat("")
	require.NoError(t, err)
	assert.InDelta(t, 640, cfg.Arena.Width, 1e-9)
	assert.InDelta(t, 800, cfg.Arena.Height, 1e-9)
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in   string
		want DifficultyPreset
		ok   bool
	}{
		{"easy", DifficultyEasy, true},
		{"normal", DifficultyNormal, true},
		{"hard", DifficultyHard, true},
		{"fixed", DifficultyFixed, true},
		{"", DifficultyFixed, true},
		{"nightmare", "", false},
	}
	for _, tc := range tests {
		got, ok := ParsePreset(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestApplyCombatPreset(t *testing.T) {
	cfg := DefaultCombatConfig()
	ApplyCombatPreset(&cfg, DifficultyHard)
	assert.True(t, cfg.Difficulty.Enabled)
	assert.InDelta(t, 0.7, cfg.Difficulty.InitialLevel, 1e-9)
	assert.Equal(t, 70, cfg.Spawn.MaxEnemies)

	cfg = DefaultCombatConfig()
	ApplyCombatPreset(&cfg, DifficultyFixed)
	assert.False(t, cfg.Difficulty.Enabled)
	assert.Equal(t, 50, cfg.Spawn.MaxEnemies)
}

func TestDifficultyManager(t *testing.T) {
	cfg := DefaultCombatConfig().Difficulty

	off := NewDifficultyManager(cfg)
	assert.False(t, off.IsEnabled())
	assert.Zero(t, off.Level(10))
	assert.InDelta(t, 1.0, off.HPScale(10), 1e-9)
	assert.InDelta(t, 1.0, off.DamageScale(10), 1e-9)

	cfg.Enabled = true
	cfg.InitialLevel = 0.3
	dm := NewDifficultyManager(cfg)
	assert.InDelta(t, 0.3, dm.Level(0), 1e-9)
	assert.InDelta(t, 0.65, dm.Level(15), 1e-9)
	assert.InDelta(t, 1.0, dm.Level(30), 1e-9)
	assert.InDelta(t, 1.0, dm.Level(300), 1e-9, "clamped past max_at")
	assert.InDelta(t, 2.0, dm.HPScale(30), 1e-9)
	assert.InDelta(t, 1.5, dm.DamageScale(30), 1e-9)

	cfg.Progression.Type = "none"
	flat := NewDifficultyManager(cfg)
	assert.InDelta(t, 0.3, flat.Level(25), 1e-9)
}
