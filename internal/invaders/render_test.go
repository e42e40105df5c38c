package invaders

import (
	"strings"
	"testing"

	"github.com/vovakirdan/invaders/internal/core"
)

func TestViewport(t *testing.T) {
	v := Viewport{Cols: 80, Rows: 24, WorldW: 800, WorldH: 700}

	tests := []struct {
		name     string
		x, y     float64
		col, row int
	}{
		{"origin is bottom-left", 0, 0, 0, 23},
		{"center", 400, 350, 40, 11},
		{"top edge clamps to first row", 799, 700, 79, 0},
		{"below the floor clamps to last row", 10, -20, 1, 23},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			col, row := v.Cell(tc.x, tc.y)
			if col != tc.col || row != tc.row {
				t.Errorf("Cell(%v, %v) = (%d, %d), expected (%d, %d)", tc.x, tc.y, col, row, tc.col, tc.row)
			}
		})
	}
}

func TestFormatScore(t *testing.T) {
	tests := []struct {
		score    int
		expected string
	}{
		{0, "0"},
		{900, "900"},
		{12300, "12,300"},
	}

	for _, tc := range tests {
		if got := FormatScore(tc.score); got != tc.expected {
			t.Errorf("FormatScore(%d) = %q, expected %q", tc.score, got, tc.expected)
		}
	}
}

func TestWaveRender(t *testing.T) {
	w := NewWave(smallConfig(), 0, 0, NewRNG(1), nil)
	w.score = 12300
	w.bolts = []Bolt{
		{X: 400, Y: 300, W: 4, H: 16, VY: 10},
		{X: 600, Y: 300, W: 4, H: 16, VY: -10},
	}

	screen := core.NewScreen(80, 24)
	w.Render(screen, NewViewport(screen, w.Config()))
	out := screen.String()

	for _, want := range []string{"Score: 12,300", "Wave 1", "♥♥♥", ShipSprite, "/o\\", "{@}", "<#>"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}

	v := NewViewport(screen, w.Config())
	col, row := v.Cell(400, 300)
	if screen.Get(col, row) != PlayerBoltChar {
		t.Errorf("player bolt cell = %q", screen.Get(col, row))
	}
	col, row = v.Cell(600, 300)
	if c := screen.GetCell(col, row); c.Rune != EnemyBoltChar || c.Color != core.ColorBrightRed {
		t.Errorf("enemy bolt cell = %+v", c)
	}
	if screen.Get(0, v.Row(w.Config().Gameplay.DefenseLine)) != DefenseLineChar {
		t.Error("defense line should span the screen")
	}
}

func TestRenderMessageBox(t *testing.T) {
	screen := core.NewScreen(40, 12)
	renderMessage(screen, MsgWaveComplete)

	out := screen.String()
	if !strings.Contains(out, "You completed the wave.") || !strings.Contains(out, "Press 'S' to Continue") {
		t.Errorf("message not drawn:\n%s", out)
	}
	if !strings.Contains(out, "┌") || !strings.Contains(out, "┘") {
		t.Error("message should be boxed")
	}
}
