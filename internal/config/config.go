// Package config provides YAML/TOML game configuration loading, difficulty
// presets and wave pacing for Invaders.
package config

import (
	"errors"
	"fmt"
)

// InvadersConfig contains all tunables for one campaign.
// World units are abstract; the origin is bottom-left and y grows upward.
type InvadersConfig struct {
	Screen     ScreenConfig     `yaml:"screen" toml:"screen"`
	Ship       ShipConfig       `yaml:"ship" toml:"ship"`
	Aliens     AlienConfig      `yaml:"aliens" toml:"aliens"`
	Bolts      BoltConfig       `yaml:"bolts" toml:"bolts"`
	Gameplay   GameplayConfig   `yaml:"gameplay" toml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty" toml:"difficulty"`
}

// ScreenConfig is the size of the play field in world units.
type ScreenConfig struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// ShipConfig defines the player ship.
type ShipConfig struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
	Bottom float64 `yaml:"bottom" toml:"bottom"` // center y of a fresh ship
	Step   float64 `yaml:"step" toml:"step"`     // horizontal move per frame
	Lives  int     `yaml:"lives" toml:"lives"`
}

// AlienConfig defines the enemy formation.
type AlienConfig struct {
	Width     float64 `yaml:"width" toml:"width"`
	Height    float64 `yaml:"height" toml:"height"`
	HSep      float64 `yaml:"h_sep" toml:"h_sep"`
	VSep      float64 `yaml:"v_sep" toml:"v_sep"`
	Ceiling   float64 `yaml:"ceiling" toml:"ceiling"` // gap between top row and screen top
	Rows      int     `yaml:"rows" toml:"rows"`
	Cols      int     `yaml:"cols" toml:"cols"`
	Tiers     int     `yaml:"tiers" toml:"tiers"`
	HWalk     float64 `yaml:"h_walk" toml:"h_walk"`
	VWalk     float64 `yaml:"v_walk" toml:"v_walk"`
	BaseSpeed float64 `yaml:"base_speed" toml:"base_speed"` // seconds between steps on wave 0
}

// BoltConfig defines projectiles.
type BoltConfig struct {
	Width    float64 `yaml:"width" toml:"width"`
	Height   float64 `yaml:"height" toml:"height"`
	Speed    float64 `yaml:"speed" toml:"speed"`         // world units per frame
	FireRate int     `yaml:"fire_rate" toml:"fire_rate"` // upper bound of the enemy fire countdown
}

// GameplayConfig defines campaign rules.
type GameplayConfig struct {
	Waves       int     `yaml:"waves" toml:"waves"`
	DefenseLine float64 `yaml:"defense_line" toml:"defense_line"`
}

// DifficultyConfig defines how the formation speeds up.
type DifficultyConfig struct {
	WaveScaling     bool    `yaml:"wave_scaling" toml:"wave_scaling"`           // divide base speed by wave+1
	KillSpeedFactor float64 `yaml:"kill_speed_factor" toml:"kill_speed_factor"` // step threshold multiplier per kill
	MinSpeed        float64 `yaml:"min_speed" toml:"min_speed"`                 // floor for the step threshold
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value to a preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	case "":
		return DifficultyNormal, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Normal leaves the loaded values untouched.
func ApplyPreset(cfg *InvadersConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Ship.Lives = 5
		cfg.Aliens.BaseSpeed *= 1.25
		cfg.Bolts.FireRate = 8
	case DifficultyHard:
		cfg.Ship.Lives = 2
		cfg.Aliens.BaseSpeed *= 0.75
		cfg.Bolts.FireRate = 3
	case DifficultyFixed:
		cfg.Difficulty.WaveScaling = false
		cfg.Difficulty.KillSpeedFactor = 1
	}
}

// FormationWidth is the distance from the left edge of the first column to
// the right edge of the last one, including the outer separators.
func (c InvadersConfig) FormationWidth() float64 {
	n := float64(c.Aliens.Cols)
	return n*c.Aliens.Width + (n+1)*c.Aliens.HSep
}

// Validate rejects configurations the simulation cannot run.
func (c InvadersConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Screen.Width > 0 && c.Screen.Height > 0, "screen size must be positive")
	check(c.Ship.Width > 0 && c.Ship.Height > 0, "ship size must be positive")
	check(c.Ship.Width <= c.Screen.Width, "ship wider than screen")
	check(c.Ship.Step > 0, "ship step must be positive")
	check(c.Ship.Lives > 0, "ship lives must be positive")
	check(c.Aliens.Width > 0 && c.Aliens.Height > 0, "alien size must be positive")
	check(c.Aliens.Rows > 0 && c.Aliens.Cols > 0, "formation needs at least one row and column")
	check(c.Aliens.Tiers > 0, "alien tiers must be positive")
	check(c.Aliens.HWalk > 0 && c.Aliens.VWalk > 0, "alien walk strides must be positive")
	check(c.Aliens.BaseSpeed > 0, "alien base speed must be positive")
	check(c.FormationWidth() <= c.Screen.Width, "formation width %.1f exceeds screen width %.1f",
		c.FormationWidth(), c.Screen.Width)
	check(c.Bolts.Width > 0 && c.Bolts.Height > 0, "bolt size must be positive")
	check(c.Bolts.Speed > 0, "bolt speed must be positive")
	check(c.Bolts.FireRate >= 0, "fire rate must not be negative")
	check(c.Gameplay.Waves > 0, "waves must be positive")
	check(c.Gameplay.DefenseLine >= 0 && c.Gameplay.DefenseLine < c.Screen.Height,
		"defense line must lie on screen")
	check(c.Difficulty.KillSpeedFactor > 0 && c.Difficulty.KillSpeedFactor <= 1,
		"kill speed factor must be in (0, 1]")
	check(c.Difficulty.MinSpeed >= 0, "min speed must not be negative")

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}
