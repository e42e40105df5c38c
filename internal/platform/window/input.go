package window

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/invaders/internal/core"
)

// keyBindings lists the physical keys for each action. Ebiten reports real
// key state, so a frame holds exactly the keys that are down.
var keyBindings = []struct {
	action core.Action
	keys   []ebiten.Key
}{
	{core.ActionLeft, []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}},
	{core.ActionRight, []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}},
	{core.ActionFire, []ebiten.Key{ebiten.KeySpace}},
	{core.ActionStart, []ebiten.Key{ebiten.KeyS, ebiten.KeyEnter}},
	{core.ActionMute, []ebiten.Key{ebiten.KeyM}},
	{core.ActionUnmute, []ebiten.Key{ebiten.KeyP}},
	{core.ActionRestart, []ebiten.Key{ebiten.KeyR}},
	{core.ActionQuit, []ebiten.Key{ebiten.KeyQ, ebiten.KeyEscape}},
}

// pollInput builds the frame for the keys pressed reports as down.
func pollInput(pressed func(ebiten.Key) bool) core.InputFrame {
	frame := core.NewInputFrame()
	for _, b := range keyBindings {
		for _, k := range b.keys {
			if pressed(k) {
				frame.Set(b.action)
				break
			}
		}
	}
	return frame
}
