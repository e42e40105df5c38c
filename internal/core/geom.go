// Package core provides fundamental types and utilities shared by the game
// logic and the platform layers. It has no external dependencies (especially
// no Bubble Tea or Ebiten) so the simulation stays pure and testable.
package core

// Rect is an integer axis-aligned box in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the cell (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// RectF is an axis-aligned box in world units.
// (MinX, MinY) is the corner with the smallest coordinates; the world's y axis
// points up, so MinY is the bottom edge.
type RectF struct {
	MinX, MinY float64
	W, H       float64
}

// CenteredRectF builds a box of size (w, h) centered on (cx, cy).
func CenteredRectF(cx, cy, w, h float64) RectF {
	return RectF{MinX: cx - w/2, MinY: cy - h/2, W: w, H: h}
}

// MaxX returns the right edge.
func (r RectF) MaxX() float64 {
	return r.MinX + r.W
}

// MaxY returns the top edge.
func (r RectF) MaxY() float64 {
	return r.MinY + r.H
}

// ContainsPoint reports whether (x, y) lies inside the box. Edges count as inside.
func (r RectF) ContainsPoint(x, y float64) bool {
	return x >= r.MinX && x <= r.MaxX() && y >= r.MinY && y <= r.MaxY()
}

// Corners returns the four corners of the box.
func (r RectF) Corners() [4][2]float64 {
	return [4][2]float64{
		{r.MinX, r.MaxY()},
		{r.MaxX(), r.MaxY()},
		{r.MinX, r.MinY},
		{r.MaxX(), r.MinY},
	}
}

// AnyCornerIn reports whether any corner of r lies inside other.
// This is the only hit test the games need.
func (r RectF) AnyCornerIn(other RectF) bool {
	for _, c := range r.Corners() {
		if other.ContainsPoint(c[0], c[1]) {
			return true
		}
	}
	return false
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
