package config

import (
	"fmt"
	"math"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// rateScale returns the multiplier applied to base and step of both curves.
func rateScale(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.5
	case DifficultyHard:
		return 1.5
	default:
		return 1.0
	}
}

// At returns the capped rate for a 0-based level index.
func (c RateCurve) At(levelIndex int) float64 {
	if levelIndex < 0 {
		levelIndex = 0
	}
	return clampF(c.Base+c.Step*float64(levelIndex), 0, c.Max)
}

// DifficultyManager turns the difficulty curves into per-level brick rates.
type DifficultyManager struct {
	cfg    DifficultyConfig
	preset DifficultyPreset
}

// NewDifficultyManager creates a new difficulty manager. An invalid preset
// in the config falls back to normal.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	preset, err := ParsePreset(cfg.Preset)
	if err != nil {
		preset = DifficultyNormal
	}
	return &DifficultyManager{cfg: cfg, preset: preset}
}

// Preset returns the active preset.
func (d *DifficultyManager) Preset() DifficultyPreset {
	return d.preset
}

// IsProgressive reports whether rates grow with the level index.
func (d *DifficultyManager) IsProgressive() bool {
	return d.preset != DifficultyFixed
}

func (d *DifficultyManager) scaled(c RateCurve) RateCurve {
	s := rateScale(d.preset)
	return RateCurve{Base: c.Base * s, Step: c.Step * s, Max: c.Max}
}

// BrickRates returns the hard-brick and unbreakable-brick probabilities for a
// 0-based level index. Both are non-decreasing in the index and capped.
func (d *DifficultyManager) BrickRates(levelIndex int) (hard, unbreakable float64) {
	if !d.IsProgressive() {
		levelIndex = 0
	}
	return d.scaled(d.cfg.Hard).At(levelIndex), d.scaled(d.cfg.Unbreakable).At(levelIndex)
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *ArkanoidConfig, preset DifficultyPreset) {
	cfg.Difficulty.Preset = string(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
		cfg.Paddle.Width = 120
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
		cfg.Paddle.Width = 80
	}
	if cfg.Gameplay.MaxLives < cfg.Gameplay.Lives {
		cfg.Gameplay.MaxLives = cfg.Gameplay.Lives
	}
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
