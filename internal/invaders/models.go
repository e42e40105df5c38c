// Package invaders implements the Alien Invaders campaign: a ship that fires
// upward at a marching formation of enemies that fire back.
//
// The package holds pure simulation logic. World coordinates are float64
// with the origin at the bottom-left and y growing upward; renderers map
// them onto their own surfaces.
package invaders

import (
	"github.com/vovakirdan/invaders/internal/config"
	"github.com/vovakirdan/invaders/internal/core"
)

// Ship is the player's ship. A destroyed ship is represented by a nil *Ship.
type Ship struct {
	X, Y float64 // center
	W, H float64
}

// NewShip creates a ship at the spawn position: centered horizontally,
// resting at the configured bottom.
func NewShip(cfg config.InvadersConfig) *Ship {
	return &Ship{
		X: cfg.Screen.Width / 2,
		Y: cfg.Ship.Bottom,
		W: cfg.Ship.Width,
		H: cfg.Ship.Height,
	}
}

// Bounds returns the ship's rectangle.
func (s *Ship) Bounds() core.RectF {
	return core.CenteredRectF(s.X, s.Y, s.W, s.H)
}

// Move applies one frame of horizontal input. The ship's half-width never
// crosses either screen edge.
func (s *Ship) Move(in core.InputFrame, step, screenW float64) {
	dx := 0.0
	if in.Has(core.ActionLeft) {
		dx -= step
	}
	if in.Has(core.ActionRight) {
		dx += step
	}
	s.X = core.ClampF(s.X+dx, s.W/2, screenW-s.W/2)
}

// Enemy is one slot of the formation.
type Enemy struct {
	X, Y  float64 // center
	W, H  float64
	Tier  int // 1..Tiers, drives points and sprite
	Frame int // walk animation frame, 0 or 1
	Alive bool
}

// Bounds returns the enemy's rectangle.
func (e *Enemy) Bounds() core.RectF {
	return core.CenteredRectF(e.X, e.Y, e.W, e.H)
}

// Points is the score awarded for destroying this enemy.
func (e *Enemy) Points() int {
	return e.Tier * 100
}

// Bottom returns the y of the enemy's lower edge.
func (e *Enemy) Bottom() float64 {
	return e.Y - e.H/2
}

// Bolt is a projectile. The sign of VY decides who fired it and is never
// changed after creation.
type Bolt struct {
	X, Y float64 // center
	W, H float64
	VY   float64 // world units per frame
}

// IsPlayerBolt reports whether the bolt travels upward.
func (b Bolt) IsPlayerBolt() bool {
	return b.VY > 0
}

// Bounds returns the bolt's rectangle.
func (b Bolt) Bounds() core.RectF {
	return core.CenteredRectF(b.X, b.Y, b.W, b.H)
}

// Hits reports whether any corner of the bolt lies inside body.
func (b Bolt) Hits(body core.RectF) bool {
	return b.Bounds().AnyCornerIn(body)
}

// OffScreen reports whether the bolt has fully left the screen vertically.
func (b Bolt) OffScreen(screenH float64) bool {
	return b.Y-b.H/2 >= screenH || b.Y+b.H/2 <= 0
}
