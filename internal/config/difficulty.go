package config

import "math"

// Pace calculates the formation step threshold for a wave.
// A lower threshold means the formation steps more often.
type Pace struct {
	base    float64
	scaling bool
	factor  float64
	floor   float64
}

// NewPace creates a pace calculator from the aliens and difficulty sections.
func NewPace(cfg InvadersConfig) Pace {
	return Pace{
		base:    cfg.Aliens.BaseSpeed,
		scaling: cfg.Difficulty.WaveScaling,
		factor:  cfg.Difficulty.KillSpeedFactor,
		floor:   cfg.Difficulty.MinSpeed,
	}
}

// Base returns the unscaled step threshold.
func (p Pace) Base() float64 {
	return p.base
}

// WaveSpeed returns the initial threshold for the given wave index.
// Wave 0 always starts at the base threshold.
func (p Pace) WaveSpeed(wave int) float64 {
	if !p.scaling || wave <= 0 {
		return p.base
	}
	return p.clamp(p.base / float64(wave+1))
}

// AfterKill returns the threshold after one more enemy is destroyed.
func (p Pace) AfterKill(speed float64) float64 {
	return p.clamp(speed * p.factor)
}

func (p Pace) clamp(speed float64) float64 {
	// The floor only applies when configured; a zero floor still keeps the
	// threshold positive since the factor is in (0, 1].
	return math.Max(speed, p.floor)
}
