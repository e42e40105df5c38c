package invaders

import (
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vovakirdan/invaders/internal/config"
	"github.com/vovakirdan/invaders/internal/core"
)

// Visual characters for rendering
const (
	ShipSprite      = "▟█▙"
	PlayerBoltChar  = '|'
	EnemyBoltChar   = '¦'
	DefenseLineChar = '─'
	LifeChar        = '♥'
	messagePaddingX = 2
	messagePaddingY = 1
)

// Enemy sprites by tier, two walk frames each.
var enemySprites = [][2]string{
	{"/o\\", "\\o/"},
	{"{@}", "}@{"},
	{"<#>", ">#<"},
}

var tierColors = []core.Color{core.ColorBrightGreen, core.ColorBrightCyan, core.ColorMagenta}

var printer = message.NewPrinter(language.English)

// TierColor returns the color of enemies in the given tier.
func TierColor(tier int) core.Color {
	return tierColors[(tier-1)%len(tierColors)]
}

// FormatScore renders a score with thousands separators.
func FormatScore(score int) string {
	return printer.Sprintf("%d", score)
}

// Viewport maps world coordinates onto screen cells. World y grows upward,
// screen rows grow downward.
type Viewport struct {
	Cols, Rows     int
	WorldW, WorldH float64
}

// NewViewport fits the whole world onto dst.
func NewViewport(dst *core.Screen, cfg config.InvadersConfig) Viewport {
	return Viewport{
		Cols:   dst.Width(),
		Rows:   dst.Height(),
		WorldW: cfg.Screen.Width,
		WorldH: cfg.Screen.Height,
	}
}

// Col converts a world x to a column.
func (v Viewport) Col(x float64) int {
	return int(math.Floor(x / v.WorldW * float64(v.Cols)))
}

// Row converts a world y to a row.
func (v Viewport) Row(y float64) int {
	r := int(math.Floor(y / v.WorldH * float64(v.Rows)))
	return v.Rows - 1 - core.Clamp(r, 0, v.Rows-1)
}

// Cell converts a world point to a cell.
func (v Viewport) Cell(x, y float64) (col, row int) {
	return v.Col(x), v.Row(y)
}

// Render draws the defense line, the formation, the ship, the bolts and the
// HUD into dst.
func (w *Wave) Render(dst *core.Screen, v Viewport) {
	dst.DrawHLineColored(0, v.Row(w.cfg.Gameplay.DefenseLine), v.Cols, DefenseLineChar, core.ColorGray)

	w.formation.Each(func(_, _ int, e *Enemy) {
		sprites := enemySprites[(e.Tier-1)%len(enemySprites)]
		drawSprite(dst, v, e.X, e.Y, sprites[e.Frame&1], TierColor(e.Tier))
	})

	if w.ship != nil {
		drawSprite(dst, v, w.ship.X, w.ship.Y, ShipSprite, core.ColorBrightYellow)
	}

	for _, b := range w.bolts {
		col, row := v.Cell(b.X, b.Y)
		if b.IsPlayerBolt() {
			dst.SetColored(col, row, PlayerBoltChar, core.ColorWhite)
		} else {
			dst.SetColored(col, row, EnemyBoltChar, core.ColorBrightRed)
		}
	}

	w.renderHUD(dst)
}

func (w *Wave) renderHUD(dst *core.Screen) {
	dst.DrawTextColored(1, 0, "Score: "+FormatScore(w.score), core.ColorWhite)

	lives := strings.Repeat(string(LifeChar), max(w.lives, 0))
	dst.DrawTextColored(dst.Width()-1-len([]rune(lives)), 0, lives, core.ColorRed)

	label := printer.Sprintf("Wave %d", w.index+1)
	if w.muted {
		label += " (muted)"
	}
	dst.DrawTextCenteredColored(0, label, core.ColorGray)
}

// drawSprite centers a one-line sprite on the cell under (x, y).
func drawSprite(dst *core.Screen, v Viewport, x, y float64, sprite string, c core.Color) {
	col, row := v.Cell(x, y)
	dst.DrawTextColored(col-len([]rune(sprite))/2, row, sprite, c)
}

// renderMessage draws a boxed, centered multi-line message.
func renderMessage(dst *core.Screen, text string) {
	lines := strings.Split(text, "\n")
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}

	boxW := width + 2*messagePaddingX + 2
	boxH := len(lines) + 2*messagePaddingY + 2
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	for i, l := range lines {
		dst.DrawTextCenteredColored(box.Y+1+messagePaddingY+i, l, core.ColorBrightYellow)
	}
}
