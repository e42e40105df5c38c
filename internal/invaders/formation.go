package invaders

import (
	"fmt"

	"github.com/vovakirdan/invaders/internal/config"
)

// Formation is the fixed rows x cols grid of enemy slots.
// Slots are stored in a flat slice indexed by row*cols+col. A slot is
// cleared by dropping its Alive flag; the grid never changes shape.
// Row 0 is the bottom row.
type Formation struct {
	rows, cols int
	cells      []Enemy
	live       int
}

// NewFormation lays out a full formation for the given configuration.
func NewFormation(cfg config.InvadersConfig) *Formation {
	a := cfg.Aliens
	f := &Formation{
		rows:  a.Rows,
		cols:  a.Cols,
		cells: make([]Enemy, a.Rows*a.Cols),
		live:  a.Rows * a.Cols,
	}

	rowsF := float64(a.Rows)
	bottomY := cfg.Screen.Height - (a.Ceiling + a.Height/2 + a.Height*rowsF + a.VSep*(rowsF-1))
	firstX := a.HSep + a.Width/2

	for row := 0; row < a.Rows; row++ {
		tier := (row/2)%a.Tiers + 1
		for col := 0; col < a.Cols; col++ {
			f.cells[row*a.Cols+col] = Enemy{
				X:     firstX + float64(col)*(a.Width+a.HSep),
				Y:     bottomY + float64(row)*(a.Height+a.VSep),
				W:     a.Width,
				H:     a.Height,
				Tier:  tier,
				Alive: true,
			}
		}
	}
	return f
}

// Rows returns the number of rows.
func (f *Formation) Rows() int { return f.rows }

// Cols returns the number of columns.
func (f *Formation) Cols() int { return f.cols }

// At returns the slot at (row, col). It panics on out of range indices.
func (f *Formation) At(row, col int) *Enemy {
	if row < 0 || row >= f.rows || col < 0 || col >= f.cols {
		panic(fmt.Sprintf("invaders: formation index (%d, %d) out of range %dx%d", row, col, f.rows, f.cols))
	}
	return &f.cells[row*f.cols+col]
}

// Kill clears the slot at (row, col) and reports whether it was alive.
func (f *Formation) Kill(row, col int) bool {
	e := f.At(row, col)
	if !e.Alive {
		return false
	}
	e.Alive = false
	f.live--
	return true
}

// LiveCount returns the number of live enemies.
func (f *Formation) LiveCount() int { return f.live }

// Empty reports whether every slot is cleared.
func (f *Formation) Empty() bool { return f.live == 0 }

// Extent returns the smallest and largest x among live enemies.
// ok is false when the formation is empty.
func (f *Formation) Extent() (minX, maxX float64, ok bool) {
	for i := range f.cells {
		e := &f.cells[i]
		if !e.Alive {
			continue
		}
		if !ok {
			minX, maxX, ok = e.X, e.X, true
			continue
		}
		minX = min(minX, e.X)
		maxX = max(maxX, e.X)
	}
	return minX, maxX, ok
}

// LowestInColumn returns the live enemy with the smallest row index in col.
func (f *Formation) LowestInColumn(col int) (*Enemy, bool) {
	for row := 0; row < f.rows; row++ {
		if e := f.At(row, col); e.Alive {
			return e, true
		}
	}
	return nil, false
}

// LowestEdge returns the smallest lower-edge y among live enemies.
func (f *Formation) LowestEdge() (float64, bool) {
	lowest, ok := 0.0, false
	for i := range f.cells {
		e := &f.cells[i]
		if !e.Alive {
			continue
		}
		if !ok || e.Bottom() < lowest {
			lowest, ok = e.Bottom(), true
		}
	}
	return lowest, ok
}

// Each calls fn for every live enemy, bottom row first.
func (f *Formation) Each(fn func(row, col int, e *Enemy)) {
	for i := range f.cells {
		if f.cells[i].Alive {
			fn(i/f.cols, i%f.cols, &f.cells[i])
		}
	}
}

// Shift moves every live enemy by (dx, dy). With animate set each one also
// flips its walk frame.
func (f *Formation) Shift(dx, dy float64, animate bool) {
	f.Each(func(_, _ int, e *Enemy) {
		e.X += dx
		e.Y += dy
		if animate {
			e.Frame ^= 1
		}
	})
}
