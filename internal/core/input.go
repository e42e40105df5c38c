package core

// Action represents a semantic game action, abstracted from physical keys.
// Games read held actions from an InputFrame; the platform decides which
// keys produce them.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Left arrow, A - move ship left
	ActionRight          // Right arrow, D - move ship right
	ActionFire           // Space - fire a bolt
	ActionStart          // S, Enter - start the game / continue after a pause
	ActionMute           // M - silence sound effects
	ActionUnmute         // P - restore sound effects
	ActionRestart        // R - restart after the game is complete
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionFire:
		return "Fire"
	case ActionStart:
		return "Start"
	case ActionMute:
		return "Mute"
	case ActionUnmute:
		return "Unmute"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame is the set of actions held during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they are held this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// FrameOf builds an input frame with the given actions held.
func FrameOf(actions ...Action) InputFrame {
	f := NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set marks an action as held for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action is held this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}

// EdgeDetector turns held actions into "pressed this frame" events.
// An action is pressed when it is held now and was not held in the frame
// passed to the last Commit.
type EdgeDetector struct {
	prev map[Action]bool
}

// NewEdgeDetector creates a detector that treats every action as released.
func NewEdgeDetector() *EdgeDetector {
	return &EdgeDetector{prev: make(map[Action]bool)}
}

// Pressed reports a rising edge of a in the given frame.
func (d *EdgeDetector) Pressed(in InputFrame, a Action) bool {
	return in.Has(a) && !d.prev[a]
}

// Held reports whether a was held in the last committed frame.
func (d *EdgeDetector) Held(a Action) bool {
	return d.prev[a]
}

// Commit records the frame as the previous frame for the next comparison.
// Only the given actions are tracked; with no actions every action in the
// frame is recorded and everything else is considered released.
func (d *EdgeDetector) Commit(in InputFrame, actions ...Action) {
	if len(actions) == 0 {
		clear(d.prev)
		for a, held := range in.Actions {
			if held {
				d.prev[a] = true
			}
		}
		return
	}
	for _, a := range actions {
		d.prev[a] = in.Has(a)
	}
}
