package config

import (
	_ "embed"
)

//go:embed defaults/invaders.yaml
var defaultInvadersYAML []byte

// DefaultInvadersConfig returns the built-in configuration.
// It matches defaults/invaders.yaml and is used if the embedded file fails to parse.
func DefaultInvadersConfig() InvadersConfig {
	const alienW, alienH = 33, 33
	return InvadersConfig{
		Screen: ScreenConfig{Width: 800, Height: 700},
		Ship: ShipConfig{
			Width:  44,
			Height: 44,
			Bottom: 32,
			Step:   5,
			Lives:  3,
		},
		Aliens: AlienConfig{
			Width:     alienW,
			Height:    alienH,
			HSep:      16,
			VSep:      16,
			Ceiling:   100,
			Rows:      5,
			Cols:      12,
			Tiers:     3,
			HWalk:     alienW / 4.0,
			VWalk:     alienH / 2.0,
			BaseSpeed: 1.0,
		},
		Bolts: BoltConfig{
			Width:    4,
			Height:   16,
			Speed:    10,
			FireRate: 5,
		},
		Gameplay: GameplayConfig{
			Waves:       3,
			DefenseLine: 100,
		},
		Difficulty: DifficultyConfig{
			WaveScaling:     true,
			KillSpeedFactor: 0.97,
			MinSpeed:        0.02,
		},
	}
}
