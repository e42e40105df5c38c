package invaders

import (
	"math"
	"testing"

	"github.com/vovakirdan/invaders/internal/config"
	"github.com/vovakirdan/invaders/internal/core"
)

// recordingSound remembers every effect it is asked to play.
type recordingSound struct {
	played []Sound
}

func (r *recordingSound) Play(s Sound) { r.played = append(r.played, s) }

func (r *recordingSound) count(s Sound) int {
	n := 0
	for _, p := range r.played {
		if p == s {
			n++
		}
	}
	return n
}

func smallConfig() config.InvadersConfig {
	cfg := config.DefaultInvadersConfig()
	cfg.Aliens.Rows = 5
	cfg.Aliens.Cols = 5
	return cfg
}

// settledWave returns a wave whose first formation step has already
// happened. With dt = 0 afterwards the formation holds still and enemies
// never fire.
func settledWave(t *testing.T, cfg config.InvadersConfig, snd SoundPlayer) *Wave {
	t.Helper()
	w := NewWave(cfg, 0, 0, NewRNG(1), snd)
	w.Update(core.NewInputFrame(), 0)
	return w
}

func idle() core.InputFrame { return core.NewInputFrame() }

func TestNewWaveLayout(t *testing.T) {
	cfg := smallConfig()
	w := NewWave(cfg, 0, 250, NewRNG(1), nil)
	f := w.Formation()

	if f.LiveCount() != 25 {
		t.Fatalf("LiveCount() = %d, expected 25", f.LiveCount())
	}
	if w.Score() != 250 {
		t.Errorf("Score() = %d, expected carried 250", w.Score())
	}
	if w.Lives() != cfg.Ship.Lives {
		t.Errorf("Lives() = %d, expected %d", w.Lives(), cfg.Ship.Lives)
	}
	if s := w.Ship(); s == nil || s.X != 400 || s.Y != cfg.Ship.Bottom {
		t.Errorf("Ship() = %+v, expected spawn at (400, %v)", s, cfg.Ship.Bottom)
	}

	first := f.At(0, 0)
	if first.X != 32.5 || first.Y != 354.5 {
		t.Errorf("bottom-left enemy at (%v, %v), expected (32.5, 354.5)", first.X, first.Y)
	}
	if next := f.At(1, 1); next.X-first.X != 49 || next.Y-first.Y != 49 {
		t.Errorf("pitch = (%v, %v), expected (49, 49)", next.X-first.X, next.Y-first.Y)
	}

	tiers := []int{1, 1, 2, 2, 3}
	for row, tier := range tiers {
		if got := f.At(row, 0).Tier; got != tier {
			t.Errorf("row %d tier = %d, expected %d", row, got, tier)
		}
	}
}

func TestWaveSpeedByIndex(t *testing.T) {
	cfg := smallConfig()
	tests := []struct {
		index    int
		expected float64
	}{
		{0, 1.0},
		{1, 0.5},
		{2, 1.0 / 3},
	}

	for _, tc := range tests {
		w := NewWave(cfg, tc.index, 0, NewRNG(1), nil)
		if math.Abs(w.Speed()-tc.expected) > 1e-12 {
			t.Errorf("wave %d Speed() = %v, expected %v", tc.index, w.Speed(), tc.expected)
		}
	}
}

func TestShipStaysOnScreen(t *testing.T) {
	cfg := smallConfig()
	w := settledWave(t, cfg, nil)
	half := cfg.Ship.Width / 2

	for i := 0; i < 200; i++ {
		w.Update(core.FrameOf(core.ActionLeft), 0)
		if x := w.Ship().X; x < half || x > cfg.Screen.Width-half {
			t.Fatalf("frame %d: ship x = %v out of bounds", i, x)
		}
	}
	if w.Ship().X != half {
		t.Errorf("ship x = %v, expected pinned at %v", w.Ship().X, half)
	}

	for i := 0; i < 200; i++ {
		w.Update(core.FrameOf(core.ActionRight), 0)
	}
	if w.Ship().X != cfg.Screen.Width-half {
		t.Errorf("ship x = %v, expected pinned at %v", w.Ship().X, cfg.Screen.Width-half)
	}
}

func TestSinglePlayerBolt(t *testing.T) {
	snd := &recordingSound{}
	w := settledWave(t, smallConfig(), snd)

	for i := 0; i < 12; i++ {
		in := idle()
		if i%2 == 0 {
			in = core.FrameOf(core.ActionFire)
		}
		w.Update(in, 0)

		if n := len(w.Bolts()); n != 1 {
			t.Fatalf("frame %d: %d bolts, expected exactly 1", i, n)
		}
	}
	if got := snd.count(SoundShipFire); got != 1 {
		t.Errorf("fire sound played %d times, expected 1", got)
	}

	b := w.Bolts()[0]
	if !b.IsPlayerBolt() {
		t.Error("bolt should belong to the player")
	}
	if b.X != w.Ship().X {
		t.Errorf("bolt x = %v, expected ship x %v", b.X, w.Ship().X)
	}
}

func TestFireNeedsRisingEdge(t *testing.T) {
	w := settledWave(t, smallConfig(), nil)
	w.Update(core.FrameOf(core.ActionFire), 0)
	w.bolts = nil

	// Still held: no new bolt.
	w.Update(core.FrameOf(core.ActionFire), 0)
	if len(w.Bolts()) != 0 {
		t.Error("holding fire should not spawn another bolt")
	}

	w.Update(idle(), 0)
	w.Update(core.FrameOf(core.ActionFire), 0)
	if len(w.Bolts()) != 1 {
		t.Errorf("%d bolts after a fresh press, expected 1", len(w.Bolts()))
	}
}

func TestBoltsLeaveScreen(t *testing.T) {
	cfg := smallConfig()
	w := settledWave(t, cfg, nil)
	w.bolts = []Bolt{
		{X: 700, Y: cfg.Screen.Height - 8, W: 4, H: 16, VY: 10},
		{X: 700, Y: 12, W: 4, H: 16, VY: -10},
	}

	w.Update(idle(), 0)
	if len(w.Bolts()) != 2 {
		t.Fatalf("%d bolts after one frame, expected both still partly on screen", len(w.Bolts()))
	}

	w.Update(idle(), 0)
	if len(w.Bolts()) != 0 {
		t.Errorf("%d bolts after leaving the screen, expected 0", len(w.Bolts()))
	}
}

func TestKillScoresByTier(t *testing.T) {
	snd := &recordingSound{}
	w := settledWave(t, smallConfig(), snd)
	f := w.Formation()

	targets := []struct {
		row, col int
		points   int
	}{
		{0, 0, 100},
		{2, 1, 200},
		{4, 2, 300},
	}

	score := w.Score()
	for i, tc := range targets {
		e := f.At(tc.row, tc.col)
		w.bolts = append(w.bolts, Bolt{X: e.X, Y: e.Y, W: 4, H: 16, VY: 10})
		w.Update(idle(), 0)

		if e.Alive {
			t.Fatalf("target %d still alive", i)
		}
		if got := w.Score() - score; got != tc.points {
			t.Errorf("target %d awarded %d, expected %d", i, got, tc.points)
		}
		if len(w.Bolts()) != 0 {
			t.Errorf("target %d: bolt should be consumed by its hit", i)
		}
		score = w.Score()
	}

	if snd.count(SoundAlienDeath) != len(targets) {
		t.Errorf("death sound played %d times, expected %d", snd.count(SoundAlienDeath), len(targets))
	}
	if w.Kills() != len(targets) {
		t.Errorf("Kills() = %d, expected %d", w.Kills(), len(targets))
	}
}

func TestSpeedRampsPerKill(t *testing.T) {
	w := settledWave(t, smallConfig(), nil)
	f := w.Formation()
	initial := w.Speed()

	for k := 1; k <= 10; k++ {
		e := f.At(k/5, k%5)
		prev := w.Speed()
		w.bolts = append(w.bolts, Bolt{X: e.X, Y: e.Y, W: 4, H: 16, VY: 10})
		w.Update(idle(), 0)

		if w.Speed() >= prev || w.Speed() <= 0 {
			t.Fatalf("kill %d: speed %v did not strictly decrease from %v", k, w.Speed(), prev)
		}
		if expected := initial * math.Pow(0.97, float64(k)); math.Abs(w.Speed()-expected) > 1e-12 {
			t.Errorf("kill %d: speed = %v, expected %v", k, w.Speed(), expected)
		}
	}
}

// Fire once at a bottom-row enemy and let the bolt fly until it connects.
func TestScenarioSingleShotKill(t *testing.T) {
	cfg := smallConfig()
	w := settledWave(t, cfg, nil)
	f := w.Formation()

	target := f.At(0, 2)
	w.SetShip(&Ship{X: target.X, Y: cfg.Ship.Bottom, W: cfg.Ship.Width, H: cfg.Ship.Height})
	w.Update(core.FrameOf(core.ActionFire), 0)

	lastY := 0.0
	for i := 0; i < 100 && len(w.Bolts()) > 0; i++ {
		lastY = w.Bolts()[0].Y
		w.Update(idle(), 0)
	}

	if f.LiveCount() != 24 {
		t.Fatalf("LiveCount() = %d, expected exactly one kill", f.LiveCount())
	}
	if target.Alive {
		t.Error("the enemy above the ship should be the one removed")
	}
	if w.Score() != target.Points() {
		t.Errorf("Score() = %d, expected %d", w.Score(), target.Points())
	}

	// The bolt connected within one step of overlapping the enemy.
	reach := (target.H+cfg.Bolts.Height)/2 + cfg.Bolts.Speed
	if math.Abs(lastY+cfg.Bolts.Speed-target.Y) > reach {
		t.Errorf("bolt hit at y = %v, too far from enemy y = %v", lastY+cfg.Bolts.Speed, target.Y)
	}
}

func enemyBoltOnShip(w *Wave) Bolt {
	s := w.Ship()
	return Bolt{X: s.X, Y: s.Y + s.H/2 + 8 + 5, W: 4, H: 16, VY: -10}
}

func TestShipHitClearsBolts(t *testing.T) {
	snd := &recordingSound{}
	w := settledWave(t, smallConfig(), snd)
	lives := w.Lives()

	w.Update(core.FrameOf(core.ActionFire), 0)
	w.bolts = append(w.bolts,
		enemyBoltOnShip(w),
		Bolt{X: 700, Y: 400, W: 4, H: 16, VY: -10},
	)
	w.Update(idle(), 0)

	if w.Ship() != nil {
		t.Error("ship should be destroyed")
	}
	if w.Lives() != lives-1 {
		t.Errorf("Lives() = %d, expected %d", w.Lives(), lives-1)
	}
	if len(w.Bolts()) != 0 {
		t.Errorf("%d bolts left, expected all cleared", len(w.Bolts()))
	}
	if w.Outcome() != OutcomePlaying {
		t.Errorf("Outcome() = %v, expected playing with lives left", w.Outcome())
	}
	if snd.count(SoundShipDeath) != 1 {
		t.Error("ship death sound should play once")
	}
}

// Lose the last life to an enemy bolt.
func TestScenarioLastLife(t *testing.T) {
	cfg := smallConfig()
	cfg.Ship.Lives = 1
	w := settledWave(t, cfg, nil)

	w.bolts = append(w.bolts, enemyBoltOnShip(w))
	w.Update(idle(), 0)

	if w.Lives() != 0 {
		t.Errorf("Lives() = %d, expected 0", w.Lives())
	}
	if w.Outcome() != OutcomeLost {
		t.Errorf("Outcome() = %v, expected lost", w.Outcome())
	}
	if w.Ship() != nil {
		t.Error("ship should be absent")
	}
}

// An empty grid wins on the next evaluation whatever else is going on.
func TestScenarioClearedGrid(t *testing.T) {
	w := settledWave(t, smallConfig(), nil)
	f := w.Formation()
	for row := 0; row < f.Rows(); row++ {
		for col := 0; col < f.Cols(); col++ {
			f.Kill(row, col)
		}
	}
	w.bolts = append(w.bolts, Bolt{X: 700, Y: 400, W: 4, H: 16, VY: -10})

	w.Update(idle(), 0)

	if w.Outcome() != OutcomeWon {
		t.Errorf("Outcome() = %v, expected won", w.Outcome())
	}
	if len(w.Bolts()) == 0 {
		t.Error("bolts in flight should not matter for the win")
	}
}

// Losing the last life in the frame the grid empties still counts as won:
// the loss is evaluated first and the win overwrites it.
func TestSimultaneousWinAndLoss(t *testing.T) {
	cfg := smallConfig()
	cfg.Ship.Lives = 1
	w := settledWave(t, cfg, nil)
	f := w.Formation()

	for row := 0; row < f.Rows(); row++ {
		for col := 0; col < f.Cols(); col++ {
			if row != 0 || col != 4 {
				f.Kill(row, col)
			}
		}
	}
	last := f.At(0, 4)
	w.bolts = append(w.bolts,
		Bolt{X: last.X, Y: last.Y, W: 4, H: 16, VY: 10},
		enemyBoltOnShip(w),
	)
	w.Update(idle(), 0)

	if w.Lives() != 0 || !f.Empty() {
		t.Fatalf("setup failed: lives=%d live enemies=%d", w.Lives(), f.LiveCount())
	}
	if w.Outcome() != OutcomeWon {
		t.Errorf("Outcome() = %v, expected won to override lost", w.Outcome())
	}
}

func TestDefenseLine(t *testing.T) {
	tests := []struct {
		name     string
		gap      float64 // distance of the lowest edge above the line
		expected Outcome
	}{
		{"above the line", 0.5, OutcomePlaying},
		{"touching the line", 0, OutcomeLost},
		{"below the line", -3, OutcomeLost},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := smallConfig()
			w := settledWave(t, cfg, nil)
			f := w.Formation()

			edge, _ := f.LowestEdge()
			f.Shift(0, cfg.Gameplay.DefenseLine+tc.gap-edge, false)
			w.Update(idle(), 0)

			if w.Outcome() != tc.expected {
				t.Errorf("Outcome() = %v, expected %v", w.Outcome(), tc.expected)
			}
		})
	}
}

func TestFormationMarchesAndDrops(t *testing.T) {
	cfg := smallConfig()
	w := NewWave(cfg, 0, 0, NewRNG(3), nil)
	w.SetShip(nil)
	f := w.Formation()
	rightBound := cfg.Screen.Width - cfg.Aliens.HSep - cfg.Aliens.Width/2

	startY := f.At(0, 0).Y
	for i := 0; i < 1000; i++ {
		x, y := f.At(0, 0).X, f.At(0, 0).Y
		_, maxX, _ := f.Extent()
		w.Update(idle(), 1)

		dx, dy := f.At(0, 0).X-x, f.At(0, 0).Y-y
		if dy == 0 {
			if dx != 0 && dx != cfg.Aliens.HWalk {
				t.Fatalf("frame %d: horizontal stride %v, expected %v", i, dx, cfg.Aliens.HWalk)
			}
			continue
		}

		if dx != 0 || dy != -cfg.Aliens.VWalk {
			t.Errorf("drop moved (%v, %v), expected (0, %v)", dx, dy, -cfg.Aliens.VWalk)
		}
		if maxX < rightBound {
			t.Errorf("dropped at maxX %v before reaching %v", maxX, rightBound)
		}
		if y != startY {
			t.Errorf("first drop from y %v, expected %v", y, startY)
		}
		if w.dir != -1 {
			t.Error("formation should head left after the drop")
		}
		return
	}
	t.Fatal("formation never dropped")
}

func TestWalkAnimation(t *testing.T) {
	w := NewWave(smallConfig(), 0, 0, NewRNG(1), nil)
	e := w.Formation().At(0, 0)
	if e.Frame != 0 {
		t.Fatalf("initial frame = %d", e.Frame)
	}
	w.Update(idle(), 0)
	if e.Frame != 1 {
		t.Errorf("frame after a horizontal step = %d, expected 1", e.Frame)
	}
}

func TestEnemyFireOnlyOnSteps(t *testing.T) {
	// Without time passing no step is ever due, so nobody fires.
	quiet := settledWave(t, smallConfig(), nil)
	quiet.SetShip(nil)
	for i := 0; i < 200; i++ {
		quiet.Update(idle(), 0)
	}
	if len(quiet.Bolts()) != 0 {
		t.Errorf("%d enemy bolts without formation steps, expected 0", len(quiet.Bolts()))
	}

	snd := &recordingSound{}
	w := NewWave(smallConfig(), 0, 0, NewRNG(5), snd)
	w.SetShip(nil)
	for i := 0; i < 20; i++ {
		w.Update(idle(), 1)
	}

	if snd.count(SoundAlienFire) == 0 {
		t.Fatal("enemies never fired")
	}
	for _, b := range w.Bolts() {
		if b.IsPlayerBolt() || b.VY != -w.cfg.Bolts.Speed {
			t.Errorf("enemy bolt VY = %v, expected %v", b.VY, -w.cfg.Bolts.Speed)
		}
	}
}

func TestMuteToggle(t *testing.T) {
	snd := &recordingSound{}
	w := settledWave(t, smallConfig(), snd)

	w.Update(core.FrameOf(core.ActionMute), 0)
	if !w.Muted() {
		t.Fatal("mute key should mute")
	}

	w.Update(core.FrameOf(core.ActionFire), 0)
	if len(w.Bolts()) != 1 {
		t.Fatal("muting should not affect firing")
	}
	if len(snd.played) != 0 {
		t.Errorf("played %v while muted", snd.played)
	}

	w.Update(core.FrameOf(core.ActionUnmute), 0)
	if w.Muted() {
		t.Error("unmute key should unmute")
	}
}

func TestWaveDeterminism(t *testing.T) {
	run := func(seed int64) Snapshot {
		w := NewWave(smallConfig(), 1, 0, NewRNG(seed), nil)
		for i := 0; i < 600; i++ {
			in := idle()
			switch {
			case i%40 < 15:
				in.Set(core.ActionLeft)
			case i%40 < 30:
				in.Set(core.ActionRight)
			}
			if i%7 == 0 {
				in.Set(core.ActionFire)
			}
			w.Update(in, 1.0/60)
		}
		return w.Snapshot()
	}

	a, b := run(42), run(42)
	if a.Hash() != b.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", a.Hash(), b.Hash())
	}
	if a.Score != b.Score || a.Lives != b.Lives {
		t.Errorf("Determinism failed: score %d/%d lives %d/%d", a.Score, b.Score, a.Lives, b.Lives)
	}

	if c := run(43); c.RNGState == a.RNGState {
		t.Error("different seeds should diverge")
	}
}

func TestWavePreconditions(t *testing.T) {
	mustPanic := func(name string, fn func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Errorf("%s: expected panic", name)
			}
		}()
		fn()
	}

	w := NewWave(smallConfig(), 0, 0, NewRNG(1), nil)
	mustPanic("negative dt", func() { w.Update(idle(), -0.1) })
	mustPanic("NaN dt", func() { w.Update(idle(), math.NaN()) })
	mustPanic("row out of range", func() { w.Formation().At(5, 0) })
	mustPanic("col out of range", func() { w.Formation().At(0, -1) })

	bad := smallConfig()
	bad.Aliens.Cols = 50
	mustPanic("invalid config", func() { NewWave(bad, 0, 0, NewRNG(1), nil) })
}
