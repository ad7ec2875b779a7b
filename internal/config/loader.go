package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const combatFile = "combat.yaml"

// LoadCombat loads combat configuration.
// Search order: customPath -> ~/.voidrun/configs/combat.yaml -> ./configs/combat.yaml -> embedded default
//
// Files are decoded over the defaults, so a partial file only overrides
// the keys it sets.
func LoadCombat(customPath string) (CombatConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return CombatConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg := DefaultCombatConfig()
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return CombatConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(combatFile); userCfgPath != "" {
		if cfg, ok := tryLoad(userCfgPath); ok {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, ok := tryLoad(filepath.Join("configs", combatFile)); ok {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg := DefaultCombatConfig()
	if err := yaml.Unmarshal(defaultCombatYAML, &cfg); err != nil {
		return DefaultCombatConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func tryLoad(path string) (CombatConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return CombatConfig{}, false
	}
	cfg := DefaultCombatConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return CombatConfig{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".voidrun", "configs", filename)
}

// ApplyCombatPreset modifies the config based on a difficulty preset.
func ApplyCombatPreset(cfg *CombatConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust the arena pressure on the ends of the scale
	switch preset {
	case DifficultyEasy:
		cfg.Spawn.MaxEnemies = 30
		cfg.Spawn.KiterChance = 0.2
	case DifficultyHard:
		cfg.Spawn.MaxEnemies = 70
		cfg.Spawn.KiterChance = 0.4
	}
}
