package invaders

import (
	"fmt"
	"math"

	"github.com/vovakirdan/invaders/internal/config"
	"github.com/vovakirdan/invaders/internal/core"
)

// Outcome is the result of a wave so far.
type Outcome int

const (
	OutcomePlaying Outcome = iota
	OutcomeLost
	OutcomeWon
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomePlaying:
		return "playing"
	case OutcomeLost:
		return "lost"
	case OutcomeWon:
		return "won"
	default:
		return "unknown"
	}
}

// Wave simulates one level: the ship, the formation and every bolt.
//
// Update advances one frame in a fixed order: ship movement, formation
// movement, player fire and bolt travel, enemy fire, collisions, outcome,
// mute toggle. Later phases observe the effects of earlier ones.
type Wave struct {
	cfg   config.InvadersConfig
	pace  config.Pace
	index int
	rng   *RNG
	snd   SoundPlayer
	edges *core.EdgeDetector

	ship      *Ship
	formation *Formation
	bolts     []Bolt

	lives   int
	score   int
	outcome Outcome
	muted   bool

	speed         float64 // seconds between formation steps
	elapsed       float64 // time since the last step
	dir           float64 // +1 right, -1 left
	goDown        bool    // direction changed, next step moves down
	fireCountdown int     // formation steps until enemies may fire
	frame         uint64
	kills         int
}

// NewWave creates the wave with the given zero-based index. The score
// carries over from earlier waves. It panics if cfg does not validate.
func NewWave(cfg config.InvadersConfig, waveIndex, carriedScore int, rng *RNG, snd SoundPlayer) *Wave {
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("invaders: %v", err))
	}
	if rng == nil {
		panic("invaders: nil rng")
	}
	if snd == nil {
		snd = NopSound{}
	}

	pace := config.NewPace(cfg)
	return &Wave{
		cfg:           cfg,
		pace:          pace,
		index:         waveIndex,
		rng:           rng,
		snd:           snd,
		edges:         core.NewEdgeDetector(),
		ship:          NewShip(cfg),
		formation:     NewFormation(cfg),
		lives:         cfg.Ship.Lives,
		score:         carriedScore,
		speed:         pace.WaveSpeed(waveIndex),
		elapsed:       pace.Base(),
		dir:           1,
		fireCountdown: rng.IntRange(0, cfg.Bolts.FireRate),
	}
}

// Update advances the wave by one frame. dt is the elapsed time in seconds;
// a negative or non-finite dt panics.
func (w *Wave) Update(in core.InputFrame, dt float64) {
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		panic(fmt.Sprintf("invaders: invalid frame delta %v", dt))
	}
	w.frame++

	if w.ship != nil {
		w.ship.Move(in, w.cfg.Ship.Step, w.cfg.Screen.Width)
	}
	w.moveFormation(dt)
	w.firePlayer(in)
	w.moveBolts()
	w.fireEnemy()
	w.resolveCollisions()
	w.resolveOutcome()
	w.toggleMute(in)

	w.edges.Commit(in, core.ActionFire)
}

func (w *Wave) moveFormation(dt float64) {
	a := w.cfg.Aliens
	if minX, maxX, ok := w.formation.Extent(); ok {
		dir := w.dir
		if maxX >= w.cfg.Screen.Width-a.HSep-a.Width/2 {
			dir = -1
		} else if minX <= a.HSep+a.Width/2 {
			dir = 1
		}
		if dir != w.dir {
			w.dir = dir
			w.goDown = true
		}
	}

	if w.elapsed < w.speed {
		w.elapsed += dt
		return
	}

	if w.goDown {
		w.formation.Shift(0, -a.VWalk, false)
		w.goDown = false
	} else {
		w.formation.Shift(w.dir*a.HWalk, 0, true)
	}
	w.elapsed = 0
	w.fireCountdown--
}

func (w *Wave) firePlayer(in core.InputFrame) {
	if w.ship == nil || !w.edges.Pressed(in, core.ActionFire) || w.hasPlayerBolt() {
		return
	}
	b := w.cfg.Bolts
	w.bolts = append(w.bolts, Bolt{
		X:  w.ship.X,
		Y:  w.ship.Y + w.ship.H/2 + b.Height/2,
		W:  b.Width,
		H:  b.Height,
		VY: b.Speed,
	})
	w.play(SoundShipFire)
}

func (w *Wave) hasPlayerBolt() bool {
	for _, b := range w.bolts {
		if b.IsPlayerBolt() {
			return true
		}
	}
	return false
}

func (w *Wave) moveBolts() {
	kept := w.bolts[:0]
	for _, b := range w.bolts {
		b.Y += b.VY
		if b.OffScreen(w.cfg.Screen.Height) {
			continue
		}
		kept = append(kept, b)
	}
	w.bolts = kept
}

// fireEnemy picks a random column every frame. Its lowest enemy fires only
// when a formation step is due and the countdown has run out.
func (w *Wave) fireEnemy() {
	col := w.rng.Intn(w.formation.Cols())
	shooter, ok := w.formation.LowestInColumn(col)
	if !ok {
		return
	}
	if w.elapsed < w.speed || w.fireCountdown > 1 {
		return
	}

	b := w.cfg.Bolts
	w.bolts = append(w.bolts, Bolt{
		X:  shooter.X,
		Y:  shooter.Y - shooter.H/2 - b.Height/2,
		W:  b.Width,
		H:  b.Height,
		VY: -b.Speed,
	})
	w.fireCountdown = w.rng.IntRange(0, b.FireRate)
	w.play(SoundAlienFire)
}

func (w *Wave) resolveCollisions() {
	kept := w.bolts[:0]
	for _, b := range w.bolts {
		if b.IsPlayerBolt() {
			if w.hitEnemy(b) {
				continue
			}
		} else if w.ship != nil && b.Hits(w.ship.Bounds()) {
			w.destroyShip()
			return
		}
		kept = append(kept, b)
	}
	w.bolts = kept
}

// hitEnemy kills the first live enemy the bolt touches.
func (w *Wave) hitEnemy(b Bolt) bool {
	for row := 0; row < w.formation.Rows(); row++ {
		for col := 0; col < w.formation.Cols(); col++ {
			e := w.formation.At(row, col)
			if !e.Alive || !b.Hits(e.Bounds()) {
				continue
			}
			w.formation.Kill(row, col)
			w.score += e.Points()
			w.speed = w.pace.AfterKill(w.speed)
			w.kills++
			w.play(SoundAlienDeath)
			return true
		}
	}
	return false
}

// destroyShip removes the ship and every bolt of both factions.
func (w *Wave) destroyShip() {
	w.ship = nil
	w.lives--
	w.bolts = nil
	w.play(SoundShipDeath)
}

// resolveOutcome checks loss first and win second, so a wave cleared in the
// same frame the last life is lost counts as won.
func (w *Wave) resolveOutcome() {
	if w.lives <= 0 {
		w.outcome = OutcomeLost
	} else if edge, ok := w.formation.LowestEdge(); ok && edge <= w.cfg.Gameplay.DefenseLine {
		w.outcome = OutcomeLost
	}
	if w.formation.Empty() {
		w.outcome = OutcomeWon
	}
}

func (w *Wave) toggleMute(in core.InputFrame) {
	if !w.muted && in.Has(core.ActionMute) {
		w.muted = true
	} else if w.muted && in.Has(core.ActionUnmute) {
		w.muted = false
	}
}

func (w *Wave) play(s Sound) {
	if !w.muted {
		w.snd.Play(s)
	}
}

// Ship returns the current ship, or nil while it is destroyed.
func (w *Wave) Ship() *Ship { return w.ship }

// SetShip puts a (respawned) ship into play.
func (w *Wave) SetShip(s *Ship) { w.ship = s }

// Lives returns the remaining lives.
func (w *Wave) Lives() int { return w.lives }

// Outcome returns the wave result so far.
func (w *Wave) Outcome() Outcome { return w.outcome }

// Score returns the campaign score including carried points.
func (w *Wave) Score() int { return w.score }

// Speed returns the current seconds between formation steps.
func (w *Wave) Speed() float64 { return w.speed }

// Index returns the zero-based wave number.
func (w *Wave) Index() int { return w.index }

// Kills returns the number of enemies destroyed in this wave.
func (w *Wave) Kills() int { return w.kills }

// Muted reports whether sound effects are suppressed.
func (w *Wave) Muted() bool { return w.muted }

// SetMuted carries the mute flag over from an earlier wave.
func (w *Wave) SetMuted(m bool) { w.muted = m }

// Formation returns the enemy grid. Callers must not modify it.
func (w *Wave) Formation() *Formation { return w.formation }

// Bolts returns a copy of the bolts in flight.
func (w *Wave) Bolts() []Bolt {
	out := make([]Bolt, len(w.bolts))
	copy(out, w.bolts)
	return out
}

// Config returns the configuration the wave runs with.
func (w *Wave) Config() config.InvadersConfig { return w.cfg }
