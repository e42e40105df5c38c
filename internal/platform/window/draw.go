package window

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/vovakirdan/invaders/internal/core"
	"github.com/vovakirdan/invaders/internal/invaders"
)

const (
	lineHeight   = 16
	hudMargin    = 8
	messagePadX  = 24
	messagePadY  = 16
	boltMinWidth = 2
)

var (
	fontFace   = text.NewGoXFace(basicfont.Face7x13)
	background = color.RGBA{8, 8, 20, 255}
	boxFill    = color.RGBA{20, 20, 40, 230}
)

// palette maps terminal colors onto window colors.
var palette = map[core.Color]color.RGBA{
	core.ColorDefault:      {220, 220, 220, 255},
	core.ColorRed:          {200, 40, 40, 255},
	core.ColorGreen:        {40, 180, 40, 255},
	core.ColorYellow:       {200, 180, 40, 255},
	core.ColorBlue:         {60, 90, 220, 255},
	core.ColorMagenta:      {200, 60, 200, 255},
	core.ColorCyan:         {40, 180, 200, 255},
	core.ColorWhite:        {235, 235, 235, 255},
	core.ColorBrightRed:    {255, 80, 80, 255},
	core.ColorBrightGreen:  {90, 255, 90, 255},
	core.ColorBrightYellow: {255, 235, 80, 255},
	core.ColorBrightCyan:   {90, 240, 255, 255},
	core.ColorGray:         {120, 120, 130, 255},
}

func rgba(c core.Color) color.RGBA {
	if v, ok := palette[c]; ok {
		return v
	}
	return palette[core.ColorDefault]
}

// screenRect converts a world box (y up) to image coordinates (y down).
func screenRect(r core.RectF, worldH float64) (x, y, w, h float32) {
	return float32(r.MinX), float32(worldH - r.MaxY()), float32(r.W), float32(r.H)
}

func fillRect(dst *ebiten.Image, r core.RectF, worldH float64, clr color.Color) {
	x, y, w, h := screenRect(r, worldH)
	vector.DrawFilledRect(dst, x, y, w, h, clr, false)
}

// drawWave draws the defense line, the formation, the ship, the bolts and
// the HUD.
func drawWave(dst *ebiten.Image, wave *invaders.Wave) {
	cfg := wave.Config()
	worldW, worldH := cfg.Screen.Width, cfg.Screen.Height

	lineY := float32(worldH - cfg.Gameplay.DefenseLine)
	vector.StrokeLine(dst, 0, lineY, float32(worldW), lineY, 1, rgba(core.ColorGray), false)

	wave.Formation().Each(func(_, _ int, e *invaders.Enemy) {
		drawEnemy(dst, e, worldH)
	})

	if ship := wave.Ship(); ship != nil {
		drawShip(dst, ship, worldH)
	}

	for _, b := range wave.Bolts() {
		clr := rgba(core.ColorBrightRed)
		if b.IsPlayerBolt() {
			clr = rgba(core.ColorWhite)
		}
		r := b.Bounds()
		if r.W < boltMinWidth {
			r = core.CenteredRectF(b.X, b.Y, boltMinWidth, r.H)
		}
		fillRect(dst, r, worldH, clr)
	}

	drawHUD(dst, wave, worldW)
}

// drawEnemy draws a body with legs that alternate with the walk frame.
func drawEnemy(dst *ebiten.Image, e *invaders.Enemy, worldH float64) {
	clr := rgba(invaders.TierColor(e.Tier))
	b := e.Bounds()

	body := core.RectF{MinX: b.MinX, MinY: b.MinY + b.H/3, W: b.W, H: b.H * 2 / 3}
	fillRect(dst, body, worldH, clr)

	eyeW := b.W / 6
	for _, ex := range []float64{b.MinX + b.W/4, b.MaxX() - b.W/4 - eyeW} {
		fillRect(dst, core.RectF{MinX: ex, MinY: b.MinY + b.H*0.6, W: eyeW, H: eyeW}, worldH, background)
	}

	legW := b.W / 5
	legs := []float64{b.MinX, b.MaxX() - legW}
	if e.Frame&1 == 1 {
		legs = []float64{b.MinX + legW, b.MaxX() - 2*legW}
	}
	for _, lx := range legs {
		fillRect(dst, core.RectF{MinX: lx, MinY: b.MinY, W: legW, H: b.H / 3}, worldH, clr)
	}
}

func drawShip(dst *ebiten.Image, s *invaders.Ship, worldH float64) {
	clr := rgba(core.ColorBrightYellow)
	b := s.Bounds()

	fillRect(dst, core.RectF{MinX: b.MinX, MinY: b.MinY, W: b.W, H: b.H / 2}, worldH, clr)
	turretW := b.W / 5
	fillRect(dst, core.CenteredRectF(s.X, b.MinY+b.H*0.75, turretW, b.H/2), worldH, clr)
}

func drawHUD(dst *ebiten.Image, wave *invaders.Wave, worldW float64) {
	drawText(dst, "Score: "+invaders.FormatScore(wave.Score()), hudMargin, hudMargin, rgba(core.ColorWhite))

	label := "Wave " + invaders.FormatScore(wave.Index()+1)
	if wave.Muted() {
		label += " (muted)"
	}
	drawText(dst, label, (worldW-text.Advance(label, fontFace))/2, hudMargin, rgba(core.ColorGray))

	lives := "Lives: " + invaders.FormatScore(max(wave.Lives(), 0))
	drawText(dst, lives, worldW-text.Advance(lives, fontFace)-hudMargin, hudMargin, rgba(core.ColorRed))
}

// drawMessage draws a boxed multi-line message in the middle of the world.
func drawMessage(dst *ebiten.Image, msg string, worldW, worldH float64) {
	lines := strings.Split(msg, "\n")
	width := 0.0
	for _, l := range lines {
		width = max(width, text.Advance(l, fontFace))
	}

	boxW := width + 2*messagePadX
	boxH := float64(len(lines)*lineHeight) + 2*messagePadY
	x := (worldW - boxW) / 2
	y := (worldH - boxH) / 2

	vector.DrawFilledRect(dst, float32(x), float32(y), float32(boxW), float32(boxH), boxFill, false)
	vector.StrokeRect(dst, float32(x), float32(y), float32(boxW), float32(boxH), 1, rgba(core.ColorWhite), false)

	for i, l := range lines {
		lx := (worldW - text.Advance(l, fontFace)) / 2
		drawText(dst, l, lx, y+messagePadY+float64(i*lineHeight), rgba(core.ColorBrightYellow))
	}
}

func drawText(dst *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, fontFace, op)
}
