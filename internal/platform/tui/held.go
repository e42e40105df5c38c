package tui

import (
	"time"

	"github.com/vovakirdan/invaders/internal/core"
)

// DefaultHoldWindow is how long a key press counts as held. Terminals only
// report presses, so a held key is seen as a stream of auto-repeat events;
// the window must cover the gap between two repeats.
const DefaultHoldWindow = 150 * time.Millisecond

// HeldInput turns discrete key presses into held actions.
// An action stays held until the window after its latest press runs out.
type HeldInput struct {
	window time.Duration
	until  map[core.Action]time.Time
}

// NewHeldInput creates a tracker. A non-positive window uses DefaultHoldWindow.
func NewHeldInput(window time.Duration) *HeldInput {
	if window <= 0 {
		window = DefaultHoldWindow
	}
	return &HeldInput{
		window: window,
		until:  make(map[core.Action]time.Time),
	}
}

// Press records a press of a at now.
func (h *HeldInput) Press(a core.Action, now time.Time) {
	if a == core.ActionNone {
		return
	}
	h.until[a] = now.Add(h.window)
}

// Release drops a immediately.
func (h *HeldInput) Release(a core.Action) {
	delete(h.until, a)
}

// Reset releases every action.
func (h *HeldInput) Reset() {
	clear(h.until)
}

// Frame returns the actions held at now and forgets expired ones.
func (h *HeldInput) Frame(now time.Time) core.InputFrame {
	frame := core.NewInputFrame()
	for a, until := range h.until {
		if now.Before(until) {
			frame.Set(a)
			continue
		}
		delete(h.until, a)
	}
	return frame
}
