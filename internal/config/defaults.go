package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/arkanoid.yaml
var defaultArkanoidYAML []byte

// DefaultArkanoidConfig returns the hardcoded default configuration.
// It mirrors defaults/arkanoid.yaml and is used when the embedded file
// cannot be decoded.
func DefaultArkanoidConfig() ArkanoidConfig {
	return ArkanoidConfig{
		Playfield: PlayfieldConfig{Width: 800, Height: 600},
		Paddle: PaddleConfig{
			Width:        100,
			Height:       12,
			Speed:        6,
			Inset:        10,
			BottomOffset: 40,
		},
		Ball: BallConfig{
			Radius:   8,
			Speed:    6.2,
			MaxVX:    5.0,
			MinVYArg: 1,
		},
		Serve: ServeConfig{
			SwayAmplitude: 30,
			SwayStep:      0.08,
		},
		Bricks: BrickConfig{
			SideMargin:   16,
			Gap:          4,
			Height:       20,
			Top:          60,
			PowerUpEvery: 9,
		},
		Scoring: ScoringConfig{Destroy: 10, Damage: 2},
		Gameplay: GameplayConfig{
			Lives:    3,
			MaxLives: 9,
			Levels:   5,
			TickRate: 60,
		},
		PowerUps: PowerUpConfig{
			DropSize:       18,
			DropSpeed:      2,
			ExpandFactor:   1.5,
			ExpandDuration: 10 * time.Second,
			GunDuration:    5 * time.Second,
			GunCadence:     200 * time.Millisecond,
			BulletSpeed:    12,
			MuzzleInset:    6,
			LaserHalfWidth: 4,
			LaserLifetime:  120 * time.Millisecond,
			BonusSpread:    1.5,
			BonusLift:      0.5,
		},
		Difficulty: DifficultyConfig{
			Preset:      string(DifficultyNormal),
			Hard:        RateCurve{Base: 0.10, Step: 0.05, Max: 0.35},
			Unbreakable: RateCurve{Base: 0.05, Step: 0.03, Max: 0.20},
		},
		Audio: AudioConfig{Music: true, Sounds: true},
		Assets: AssetsConfig{
			Roots: []string{"./assets", "~/.arkanoid/assets"},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultArkanoidYAML
}
