package invaders

import "math"

// Snapshot captures a wave's state for determinism testing.
// Uses primitive types only for stable comparison.
type Snapshot struct {
	Frame         uint64
	ShipAlive     bool
	ShipX         float64
	Lives         int
	Score         int
	Outcome       Outcome
	Speed         float64
	Elapsed       float64
	Dir           float64
	GoDown        bool
	FireCountdown int
	Muted         bool

	// Enemy slots, row*cols+col: 1 if alive, followed by X and Y.
	Alive   []bool
	EnemyXY []float64

	// Bolts, 3 values each: X, Y, VY.
	BoltData []float64

	RNGState uint64
}

// Snapshot returns the current wave state.
func (w *Wave) Snapshot() Snapshot {
	snap := Snapshot{
		Frame:         w.frame,
		ShipAlive:     w.ship != nil,
		Lives:         w.lives,
		Score:         w.score,
		Outcome:       w.outcome,
		Speed:         w.speed,
		Elapsed:       w.elapsed,
		Dir:           w.dir,
		GoDown:        w.goDown,
		FireCountdown: w.fireCountdown,
		Muted:         w.muted,
		Alive:         make([]bool, len(w.formation.cells)),
		EnemyXY:       make([]float64, 0, 2*len(w.formation.cells)),
		BoltData:      make([]float64, 0, 3*len(w.bolts)),
		RNGState:      w.rng.State(),
	}
	if w.ship != nil {
		snap.ShipX = w.ship.X
	}
	for i, e := range w.formation.cells {
		snap.Alive[i] = e.Alive
		snap.EnemyXY = append(snap.EnemyXY, e.X, e.Y)
	}
	for _, b := range w.bolts {
		snap.BoltData = append(snap.BoltData, b.X, b.Y, b.VY)
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Frame
	mix := func(v uint64) { h = h*31 + v }
	mixF := func(f float64) { mix(math.Float64bits(f)) }
	mixB := func(b bool) {
		if b {
			mix(1)
		} else {
			mix(0)
		}
	}

	mixB(snap.ShipAlive)
	mixF(snap.ShipX)
	mix(uint64(snap.Lives))   //#nosec G115 -- hash computation
	mix(uint64(snap.Score))   //#nosec G115 -- hash computation
	mix(uint64(snap.Outcome)) //#nosec G115 -- hash computation
	mixF(snap.Speed)
	mixF(snap.Elapsed)
	mixF(snap.Dir)
	mixB(snap.GoDown)
	mix(uint64(snap.FireCountdown)) //#nosec G115 -- hash computation
	mixB(snap.Muted)
	for _, a := range snap.Alive {
		mixB(a)
	}
	for _, f := range snap.EnemyXY {
		mixF(f)
	}
	for _, f := range snap.BoltData {
		mixF(f)
	}
	mix(snap.RNGState)
	return h
}
