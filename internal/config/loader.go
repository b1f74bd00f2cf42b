package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "rogue.yaml"

// LoadRogue loads the run tuning.
// Search order: customPath -> ~/.brickrogue/configs/rogue.yaml -> ./configs/rogue.yaml -> embedded default.
// Files are decoded over the defaults, so a file only needs the keys it changes.
func LoadRogue(customPath string) (RogueConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return RogueConfig{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := parseRogue(data)
		if err != nil {
			return RogueConfig{}, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseRogue(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if cfg, err := parseRogue(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := parseRogue(defaultRogueYAML)
	if err != nil {
		return DefaultRogueConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func parseRogue(data []byte) (RogueConfig, error) {
	cfg := DefaultRogueConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RogueConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return RogueConfig{}, err
	}
	return cfg, nil
}

// Validate reports tuning values the simulation cannot run with.
func (c RogueConfig) Validate() error {
	var errs []error
	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		errs = append(errs, errors.New("field size must be positive"))
	}
	if c.Bricks.Cols <= 0 || c.Bricks.BaseRows <= 0 {
		errs = append(errs, errors.New("bricks.cols and bricks.base_rows must be positive"))
	}
	if c.Bricks.MaxRows < c.Bricks.BaseRows {
		errs = append(errs, errors.New("bricks.max_rows is below bricks.base_rows"))
	}
	if c.Bricks.GapFraction < 0 || c.Bricks.GapFraction >= 1 {
		errs = append(errs, fmt.Errorf("bricks.gap_fraction %v is outside [0,1)", c.Bricks.GapFraction))
	}
	if c.Ball.MinSpeed <= 0 || c.Ball.MaxSpeed < c.Ball.MinSpeed {
		errs = append(errs, errors.New("ball speeds need 0 < min_speed <= max_speed"))
	}
	if c.Gameplay.Lives <= 0 {
		errs = append(errs, errors.New("gameplay.lives must be positive"))
	}
	if c.Gameplay.BossInterval <= 0 {
		errs = append(errs, errors.New("gameplay.boss_interval must be positive"))
	}
	return errors.Join(errs...)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".brickrogue", "configs", filename)
}

// ApplyRoguePreset modifies the config based on a difficulty preset.
func ApplyRoguePreset(cfg *RogueConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
		cfg.Gameplay.TimePressure *= 2
		cfg.Paddle.Width *= 1.2
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
		cfg.Gameplay.TimePressure /= 2
		cfg.Gameplay.DescentSpeed *= 1.5
	}
}
