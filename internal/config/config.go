// Package config provides YAML/TOML configuration loading, environment
// overrides and difficulty presets for the arkanoid game.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ArkanoidConfig contains all tunable gameplay settings.
type ArkanoidConfig struct {
	Playfield  PlayfieldConfig  `yaml:"playfield" toml:"playfield"`
	Paddle     PaddleConfig     `yaml:"paddle" toml:"paddle"`
	Ball       BallConfig       `yaml:"ball" toml:"ball"`
	Serve      ServeConfig      `yaml:"serve" toml:"serve"`
	Bricks     BrickConfig      `yaml:"bricks" toml:"bricks"`
	Scoring    ScoringConfig    `yaml:"scoring" toml:"scoring"`
	Gameplay   GameplayConfig   `yaml:"gameplay" toml:"gameplay"`
	PowerUps   PowerUpConfig    `yaml:"powerups" toml:"powerups"`
	Difficulty DifficultyConfig `yaml:"difficulty" toml:"difficulty"`
	Audio      AudioConfig      `yaml:"audio" toml:"audio"`
	Assets     AssetsConfig     `yaml:"assets" toml:"assets"`
}

// PlayfieldConfig is the logical arena size in pixels.
type PlayfieldConfig struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// PaddleConfig defines the paddle geometry and movement.
type PaddleConfig struct {
	Width        float64 `yaml:"width" toml:"width"`
	Height       float64 `yaml:"height" toml:"height"`
	Speed        float64 `yaml:"speed" toml:"speed"`                 // pixels per tick
	Inset        float64 `yaml:"inset" toml:"inset"`                 // gap kept from each side wall
	BottomOffset float64 `yaml:"bottom_offset" toml:"bottom_offset"` // paddle top = height - offset
}

// BallConfig defines the ball and the paddle-bounce model.
type BallConfig struct {
	Radius   float64 `yaml:"radius" toml:"radius"`
	Speed    float64 `yaml:"speed" toml:"speed"`   // speed after a paddle bounce or launch
	MaxVX    float64 `yaml:"max_vx" toml:"max_vx"` // |vx| at the paddle edge
	MinVYArg float64 `yaml:"min_vy_arg" toml:"min_vy_arg"` // floor of speed²-vx² before sqrt
}

// ServeConfig controls the sway of the ball while it sits on the paddle.
type ServeConfig struct {
	SwayAmplitude float64 `yaml:"sway_amplitude" toml:"sway_amplitude"` // pixels
	SwayStep      float64 `yaml:"sway_step" toml:"sway_step"`           // radians per tick
}

// BrickConfig defines the brick grid layout.
type BrickConfig struct {
	SideMargin   int `yaml:"side_margin" toml:"side_margin"`
	Gap          int `yaml:"gap" toml:"gap"`
	Height       int `yaml:"height" toml:"height"`
	Top          int `yaml:"top" toml:"top"`
	PowerUpEvery int `yaml:"powerup_every" toml:"powerup_every"` // about 1 in N cells carries a power-up
}

// LayoutColumns is the width of the built-in layouts; the grid settings
// must leave room for at least that many bricks.
const LayoutColumns = 10

// BrickWidth is the width of one brick when cols bricks share a row of a
// playfield width pixels wide. It is zero or negative when they do not fit.
func (b BrickConfig) BrickWidth(width float64, cols int) int {
	if cols <= 0 {
		return 0
	}
	avail := int(width) - 2*b.SideMargin
	return (avail - (cols-1)*b.Gap) / cols
}

// ScoringConfig defines points per brick event.
type ScoringConfig struct {
	Destroy int `yaml:"destroy" toml:"destroy"`
	Damage  int `yaml:"damage" toml:"damage"`
}

// GameplayConfig defines lives and campaign length.
type GameplayConfig struct {
	Lives    int `yaml:"lives" toml:"lives"`
	MaxLives int `yaml:"max_lives" toml:"max_lives"`
	Levels   int `yaml:"levels" toml:"levels"`
	TickRate int `yaml:"tick_rate" toml:"tick_rate"`
}

// PowerUpConfig defines drops, timed effects and projectiles.
type PowerUpConfig struct {
	DropSize       float64       `yaml:"drop_size" toml:"drop_size"`
	DropSpeed      float64       `yaml:"drop_speed" toml:"drop_speed"`
	ExpandFactor   float64       `yaml:"expand_factor" toml:"expand_factor"`
	ExpandDuration time.Duration `yaml:"expand_duration" toml:"expand_duration"`
	GunDuration    time.Duration `yaml:"gun_duration" toml:"gun_duration"`
	GunCadence     time.Duration `yaml:"gun_cadence" toml:"gun_cadence"`
	BulletSpeed    float64       `yaml:"bullet_speed" toml:"bullet_speed"`
	MuzzleInset    float64       `yaml:"muzzle_inset" toml:"muzzle_inset"`
	LaserHalfWidth float64       `yaml:"laser_half_width" toml:"laser_half_width"`
	LaserLifetime  time.Duration `yaml:"laser_lifetime" toml:"laser_lifetime"`
	BonusSpread    float64       `yaml:"bonus_spread" toml:"bonus_spread"`
	BonusLift      float64       `yaml:"bonus_lift" toml:"bonus_lift"`
}

// DifficultyConfig defines how brick classes scale with the level index.
type DifficultyConfig struct {
	Preset      string    `yaml:"preset" toml:"preset"`
	Hard        RateCurve `yaml:"hard" toml:"hard"`
	Unbreakable RateCurve `yaml:"unbreakable" toml:"unbreakable"`
}

// RateCurve is a capped linear probability: min(Max, Base + Step*level).
type RateCurve struct {
	Base float64 `yaml:"base" toml:"base"`
	Step float64 `yaml:"step" toml:"step"`
	Max  float64 `yaml:"max" toml:"max"`
}

// AudioConfig toggles music and sound effects.
type AudioConfig struct {
	Music  bool `yaml:"music" toml:"music"`
	Sounds bool `yaml:"sounds" toml:"sounds"`
}

// AssetsConfig lists asset search roots, highest priority first.
type AssetsConfig struct {
	Roots []string `yaml:"roots" toml:"roots"`
	Skin  int      `yaml:"skin" toml:"skin"`
}

// Validate checks that the settings describe a playable arena.
func (c ArkanoidConfig) Validate() error {
	var errs []error
	if c.Playfield.Width <= 0 || c.Playfield.Height <= 0 {
		errs = append(errs, fmt.Errorf("playfield must be positive, got %vx%v", c.Playfield.Width, c.Playfield.Height))
	}
	if c.Paddle.Width <= 0 || c.Paddle.Width+2*c.Paddle.Inset > c.Playfield.Width {
		errs = append(errs, fmt.Errorf("paddle width %v does not fit the playfield", c.Paddle.Width))
	}
	if c.Ball.Radius <= 0 || c.Ball.Speed <= 0 {
		errs = append(errs, errors.New("ball radius and speed must be positive"))
	}
	// Every bounce must keep |v| == speed: vx can never exceed what the
	// vy floor leaves over.
	if c.Ball.MinVYArg <= 0 || c.Ball.MaxVX < 0 ||
		c.Ball.MaxVX*c.Ball.MaxVX > c.Ball.Speed*c.Ball.Speed-c.Ball.MinVYArg {
		errs = append(errs, fmt.Errorf("ball max_vx %v and min_vy_arg %v do not fit speed %v",
			c.Ball.MaxVX, c.Ball.MinVYArg, c.Ball.Speed))
	}
	if c.Bricks.Height <= 0 || c.Bricks.PowerUpEvery <= 0 {
		errs = append(errs, errors.New("brick height and powerup_every must be positive"))
	}
	if c.Bricks.SideMargin < 0 || c.Bricks.Gap < 0 ||
		c.Bricks.BrickWidth(c.Playfield.Width, LayoutColumns) <= 0 {
		errs = append(errs, fmt.Errorf("side_margin %d and gap %d leave no room for %d bricks",
			c.Bricks.SideMargin, c.Bricks.Gap, LayoutColumns))
	}
	if c.PowerUps.ExpandFactor <= 0 {
		errs = append(errs, fmt.Errorf("expand_factor must be positive, got %v", c.PowerUps.ExpandFactor))
	}
	if c.PowerUps.DropSpeed <= 0 || c.PowerUps.BulletSpeed <= 0 {
		errs = append(errs, errors.New("drop_speed and bullet_speed must be positive"))
	}
	if c.Gameplay.Lives <= 0 || c.Gameplay.MaxLives < c.Gameplay.Lives {
		errs = append(errs, fmt.Errorf("lives %d must be positive and at most max_lives %d", c.Gameplay.Lives, c.Gameplay.MaxLives))
	}
	if c.Gameplay.Levels <= 0 {
		errs = append(errs, errors.New("levels must be positive"))
	}
	if c.Gameplay.TickRate <= 0 {
		errs = append(errs, errors.New("tick_rate must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}

// TickDuration is the simulated time advanced by one tick.
func (c ArkanoidConfig) TickDuration() time.Duration {
	if c.Gameplay.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.Gameplay.TickRate)
}
