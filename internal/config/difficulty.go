package config

import "math"

// DifficultyManager derives the ball speed multiplier from the wave number.
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

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the difficulty level (0.0 to 1.0) at the given wave.
// Wave 1 sits at the initial level; MaxAt reaches 1.0.
func (d *DifficultyManager) Level(wave int) float64 {
	if !d.IsEnabled() || d.cfg.Progression.Type != "wave" {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt - 1)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}
	progress := clampF(float64(wave-1)/maxAt, 0.0, 1.0)

	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// WaveMultiplier returns the ball speed multiplier for the given wave.
func (d *DifficultyManager) WaveMultiplier(wave int) float64 {
	return 1.0 + d.Level(wave)*d.cfg.Scaling.SpeedMultiplier
}

// clampF restricts a float64 to [lo, hi].
func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
