package invaders

import (
	"sync"

	"github.com/vovakirdan/invaders/internal/core"
	"github.com/vovakirdan/invaders/internal/registry"
)

// GameID is the registry and score-table identifier.
const GameID = "invaders"

var (
	defaultsMu  sync.Mutex
	defaultOpts []Option
)

// SetDefaultOptions sets the options used by games created through the
// registry. The CLI calls it once after loading configuration.
func SetDefaultOptions(opts ...Option) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	defaultOpts = append([]Option(nil), opts...)
}

func currentDefaults() []Option {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	return append([]Option(nil), defaultOpts...)
}

// Game adapts an App to the platform's fixed-tick game interface.
type Game struct {
	app *App
	dt  float64
}

// NewGame creates a registry game. Explicit options apply after the
// package defaults.
func NewGame(opts ...Option) *Game {
	all := append(currentDefaults(), opts...)
	return &Game{
		app: NewApp(all...),
		dt:  core.DefaultConfig().TickSeconds(),
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return GameID }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Alien Invaders" }

// Reset restarts the campaign on the welcome screen.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.dt = cfg.TickSeconds()
	g.app.Reset(cfg.Seed)
}

// Step advances one fixed tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.app.Update(in, g.dt)
	return core.StepResult{State: g.State()}
}

// Render draws the current frame.
func (g *Game) Render(dst *core.Screen) {
	g.app.Render(dst)
}

// State reports score and completion to the platform.
func (g *Game) State() core.GameState {
	s := g.app.State()
	return core.GameState{
		Score:    g.app.Score(),
		GameOver: s == StateComplete,
		Paused:   s != StateActive,
	}
}

// Result reports the wave reached and how the campaign ended so far.
func (g *Game) Result() (wave int, outcome string) {
	w := g.app.Wave()
	if w == nil {
		return 0, ""
	}
	return w.Index() + 1, w.Outcome().String()
}

// App returns the underlying controller.
func (g *Game) App() *App { return g.app }

func init() {
	registry.Register(GameID, func() registry.Game {
		return NewGame()
	})
}
