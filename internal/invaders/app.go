package invaders

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/invaders/internal/config"
	"github.com/vovakirdan/invaders/internal/core"
)

// State is the top-level state of a campaign.
type State int

const (
	StateInactive State = iota // welcome screen, no wave yet
	StateNewWave               // a fresh wave is shown for one frame
	StateActive                // play in progress
	StatePaused                // waiting on the player after a lost life or a finished wave
	StateContinue              // a respawned ship is shown for one frame
	StateComplete              // game over or victory, terminal
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateInactive:
		return "inactive"
	case StateNewWave:
		return "newwave"
	case StateActive:
		return "active"
	case StatePaused:
		return "paused"
	case StateContinue:
		return "continue"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Player-facing messages.
const (
	MsgWelcome      = "Press 'S' to Play\n'M' to mute // 'P' to unmute"
	MsgContinue     = "Press 'S' to Continue"
	MsgGameOver     = "Game Over!"
	MsgVictory      = "You won the game!"
	MsgWaveComplete = "You completed the wave.\nPress 'S' to Continue"
	MsgReady        = "Ready!"
)

// App is the campaign state controller. It owns the current wave, carries
// the score between waves and decides what the player is told.
//
// Every state except StateActive shows a message, and every state except
// StateInactive has a wave.
type App struct {
	cfg    config.InvadersConfig
	snd    SoundPlayer
	logger *log.Logger
	seed   int64
	rng    *RNG

	state     State
	prevState State
	edges     *core.EdgeDetector

	wave       *Wave
	wavesDone  int
	carried    int
	muted      bool
	message    string
	hasMessage bool
}

// Option configures an App.
type Option func(*App)

// WithConfig sets the campaign configuration.
func WithConfig(cfg config.InvadersConfig) Option {
	return func(a *App) { a.cfg = cfg }
}

// WithSound sets the sound effect sink.
func WithSound(snd SoundPlayer) Option {
	return func(a *App) {
		if snd != nil {
			a.snd = snd
		}
	}
}

// WithLogger sets the logger for state changes.
func WithLogger(l *log.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithSeed sets the RNG seed used for enemy fire.
func WithSeed(seed int64) Option {
	return func(a *App) { a.seed = seed }
}

// NewApp creates a controller on the welcome screen.
// It panics if the configuration does not validate.
func NewApp(opts ...Option) *App {
	a := &App{
		cfg:    config.DefaultInvadersConfig(),
		snd:    NopSound{},
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(a)
	}
	if err := a.cfg.Validate(); err != nil {
		panic("invaders: " + err.Error())
	}
	a.Reset(a.seed)
	return a
}

// Reset returns to the welcome screen with a new seed.
func (a *App) Reset(seed int64) {
	a.seed = seed
	a.rng = NewRNG(seed)
	a.state = StateInactive
	a.prevState = StateInactive
	a.edges = core.NewEdgeDetector()
	a.wave = nil
	a.wavesDone = 0
	a.carried = 0
	a.muted = false
	a.setMessage(MsgWelcome)
}

// Update advances the controller by one frame of dt seconds.
func (a *App) Update(in core.InputFrame, dt float64) {
	pressed := a.edges.Pressed(in, core.ActionStart)

	switch a.state {
	case StateInactive:
		if pressed {
			a.beginWave()
		}
	case StateNewWave, StateContinue:
		a.clearMessage()
		a.state = StateActive
	case StateActive:
		a.updateActive(in, dt)
	case StatePaused:
		a.updatePaused(pressed)
	case StateComplete:
	}

	if a.state != a.prevState {
		a.logger.Debug("state change", "from", a.prevState, "to", a.state)
	}
	a.prevState = a.state
	a.edges.Commit(in, core.ActionStart)
}

func (a *App) updateActive(in core.InputFrame, dt float64) {
	a.wave.Update(in, dt)
	a.muted = a.wave.Muted()

	if a.wave.Ship() == nil && a.wave.Lives() > 0 {
		a.setMessage(MsgContinue)
		a.state = StatePaused
	}
	switch a.wave.Outcome() {
	case OutcomeLost:
		a.setMessage(MsgGameOver)
		a.state = StatePaused
	case OutcomeWon:
		if a.finalWave() {
			a.setMessage(MsgVictory)
		} else {
			a.setMessage(MsgWaveComplete)
		}
		a.state = StatePaused
	}
}

func (a *App) updatePaused(pressed bool) {
	switch a.wave.Outcome() {
	case OutcomeLost:
		a.setMessage(MsgGameOver)
		a.complete()
	case OutcomeWon:
		if a.finalWave() {
			a.setMessage(MsgVictory)
			a.complete()
			return
		}
		a.setMessage(MsgWaveComplete)
		if pressed {
			a.wavesDone++
			a.carried = a.wave.Score()
			a.beginWave()
		}
	default:
		if pressed {
			a.wave.SetShip(NewShip(a.cfg))
			a.setMessage(MsgReady)
			a.state = StateContinue
		}
	}
}

// beginWave builds the next wave and enters StateNewWave.
func (a *App) beginWave() {
	a.wave = NewWave(a.cfg, a.wavesDone, a.carried, a.rng, a.snd)
	a.wave.SetMuted(a.muted)
	a.setMessage(printerWave(a.wavesDone))
	a.state = StateNewWave
	a.logger.Info("wave started", "wave", a.wavesDone+1, "score", a.carried, "speed", a.wave.Speed())
}

func (a *App) complete() {
	a.state = StateComplete
	a.logger.Info("campaign complete", "outcome", a.wave.Outcome(), "score", a.wave.Score(), "wave", a.wavesDone+1)
}

func (a *App) finalWave() bool {
	return a.wavesDone >= a.cfg.Gameplay.Waves-1
}

func (a *App) setMessage(s string) {
	a.message = s
	a.hasMessage = true
}

func (a *App) clearMessage() {
	a.message = ""
	a.hasMessage = false
}

// State returns the current state.
func (a *App) State() State { return a.state }

// Message returns the text shown to the player, if any.
func (a *App) Message() (string, bool) { return a.message, a.hasMessage }

// Wave returns the current wave, or nil on the welcome screen.
func (a *App) Wave() *Wave { return a.wave }

// WavesDone returns the number of completed waves.
func (a *App) WavesDone() int { return a.wavesDone }

// Score returns the campaign score.
func (a *App) Score() int {
	if a.wave != nil {
		return a.wave.Score()
	}
	return a.carried
}

// Config returns the campaign configuration.
func (a *App) Config() config.InvadersConfig { return a.cfg }

// Render draws the background, the wave and the message, in that order.
// It does not change any state.
func (a *App) Render(dst *core.Screen) {
	dst.Clear()
	if a.wave != nil {
		a.wave.Render(dst, NewViewport(dst, a.cfg))
	}
	if a.hasMessage {
		renderMessage(dst, a.message)
	}
}

func printerWave(index int) string {
	return printer.Sprintf("Wave %d", index+1)
}
