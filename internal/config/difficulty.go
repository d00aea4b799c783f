package config

import "math"

// DifficultyManager calculates dynamic game parameters based on score/time.
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

// Level returns the current difficulty level (0.0 to 1.0) for the given
// score and elapsed seconds.
func (d *DifficultyManager) Level(score int, seconds float64) float64 {
	if !d.cfg.Enabled {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = seconds / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Speed scales a base speed from base to base*(1+SpeedMultiplier).
func (d *DifficultyManager) Speed(base float64, score int, seconds float64) float64 {
	return base * (1.0 + d.Level(score, seconds)*d.cfg.Scaling.SpeedMultiplier)
}

// Shrink reduces a base value (a spawn interval, a gap) by up to
// SpawnReduction of it. The result never drops below a tenth of the base.
func (d *DifficultyManager) Shrink(base float64, score int, seconds float64) float64 {
	reduction := clampF(d.Level(score, seconds)*d.cfg.Scaling.SpawnReduction, 0.0, 0.9)
	return base * (1.0 - reduction)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
