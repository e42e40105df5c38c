// Package window runs the game in a desktop window with Ebitengine. The
// simulation is the same fixed-tick Game the terminal uses; only input and
// drawing differ.
package window

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/invaders/internal/core"
	"github.com/vovakirdan/invaders/internal/invaders"
	"github.com/vovakirdan/invaders/internal/storage"
)

// Options configures a Window.
type Options struct {
	Scale    float64               // Window size relative to the world; 0 means 1
	TickRate int                   // Simulation ticks per second; 0 means 60
	Seed     int64                 // 0 picks a seed from the clock
	Store    *storage.Store        // Optional score store
	Logger   *log.Logger           // Optional logger
	Pressed  func(ebiten.Key) bool // Key state source; defaults to ebiten.IsKeyPressed
}

// Window is an ebiten.Game driving one invaders campaign.
type Window struct {
	game    *invaders.Game
	opts    Options
	logger  *log.Logger
	state   core.GameState
	saved   bool
	restart bool // restart key held last tick
}

// New wraps game for the window frontend and resets it.
func New(game *invaders.Game, opts Options) *Window {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	if opts.Pressed == nil {
		opts.Pressed = ebiten.IsKeyPressed
	}

	w := &Window{
		game:   game,
		opts:   opts,
		logger: opts.Logger,
	}
	if w.logger == nil {
		w.logger = log.New(io.Discard)
	}
	w.reset(opts.Seed)
	return w
}

func (w *Window) reset(seed int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cfg := w.game.App().Config()
	w.game.Reset(core.RuntimeConfig{
		ScreenW:  int(cfg.Screen.Width),
		ScreenH:  int(cfg.Screen.Height),
		TickRate: w.opts.TickRate,
		Seed:     seed,
	})
	w.state = w.game.State()
	w.saved = false
}

// Update advances one tick. It returns ebiten.Termination on quit.
func (w *Window) Update() error {
	in := pollInput(w.opts.Pressed)

	if in.Has(core.ActionQuit) {
		return ebiten.Termination
	}

	held := in.Has(core.ActionRestart)
	pressed := held && !w.restart
	w.restart = held
	if pressed && w.state.GameOver {
		w.reset(0)
		return nil
	}

	w.state = w.game.Step(in).State
	if w.state.GameOver && !w.saved {
		w.saveResult()
		w.saved = true
	}
	return nil
}

func (w *Window) saveResult() {
	if w.opts.Store == nil || w.state.Score <= 0 {
		return
	}
	wave, outcome := w.game.Result()
	entry := storage.ScoreEntry{
		GameID:  w.game.ID(),
		Score:   w.state.Score,
		Wave:    wave,
		Outcome: outcome,
	}
	if _, err := w.opts.Store.SaveResult(entry); err != nil {
		w.logger.Warn("could not save score", "err", err)
		return
	}
	w.logger.Info("score saved", "score", entry.Score, "wave", wave, "outcome", outcome)
}

// Draw renders the background, the wave and the message.
func (w *Window) Draw(screen *ebiten.Image) {
	app := w.game.App()
	cfg := app.Config()

	screen.Fill(background)
	if wave := app.Wave(); wave != nil {
		drawWave(screen, wave)
	}
	if msg, ok := app.Message(); ok {
		drawMessage(screen, msg, cfg.Screen.Width, cfg.Screen.Height)
	}
}

// Layout keeps the logical screen at world size; ebiten scales it.
func (w *Window) Layout(_, _ int) (int, int) {
	cfg := w.game.App().Config()
	return int(cfg.Screen.Width), int(cfg.Screen.Height)
}

// State returns the state reported by the last tick.
func (w *Window) State() core.GameState {
	return w.state
}

// Run opens the window and blocks until it is closed.
func Run(w *Window, title string) error {
	width, height := w.Layout(0, 0)
	ebiten.SetWindowSize(int(float64(width)*w.opts.Scale), int(float64(height)*w.opts.Scale))
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizable(true)
	ebiten.SetTPS(w.opts.TickRate)

	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
