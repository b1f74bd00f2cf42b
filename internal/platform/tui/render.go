package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/brickrogue/internal/core"
	"github.com/vovakirdan/brickrogue/internal/games/rogue"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorBrightCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorPurple:        lipgloss.NewStyle().Foreground(lipgloss.Color("93")),
	core.ColorGold:          lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			// Collect consecutive cells with same color
			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// hudRows is the number of screen rows above the playfield.
const hudRows = 2

// Layout maps field pixels onto screen cells. The field keeps its aspect
// ratio, counting a terminal cell as twice as tall as it is wide.
type Layout struct {
	Field  core.Rect // inner playfield in cells
	sx, sy float64
}

// NewLayout fits a field of fieldW x fieldH pixels into a screen.
func NewLayout(screenW, screenH int, fieldW, fieldH float64) Layout {
	rows := max(screenH-hudRows-2, 1)
	cols := int(float64(rows) * 2 * fieldW / fieldH)
	cols = core.Clamp(cols, 1, max(screenW-2, 1))

	x := max((screenW-cols)/2, 1)
	return Layout{
		Field: core.NewRect(x, hudRows+1, cols, rows),
		sx:    float64(cols) / fieldW,
		sy:    float64(rows) / fieldH,
	}
}

// CellX returns the screen column of a field x coordinate.
func (l Layout) CellX(px float64) int {
	return l.Field.X + int(px*l.sx)
}

// CellY returns the screen row of a field y coordinate.
func (l Layout) CellY(py float64) int {
	return l.Field.Y + int(py*l.sy)
}

// FieldX returns the field x coordinate at the centre of a screen column.
func (l Layout) FieldX(cellX int) float64 {
	if l.sx == 0 {
		return 0
	}
	return (float64(cellX-l.Field.X) + 0.5) / l.sx
}

// brickLook returns the glyph and colour of a brick kind.
func brickLook(k rogue.BrickKind) (rune, core.Color) {
	switch k {
	case rogue.BrickTough:
		return '▓', core.ColorYellow
	case rogue.BrickTough3:
		return '▓', core.ColorOrange
	case rogue.BrickExplosive:
		return '*', core.ColorRed
	case rogue.BrickBombPurple:
		return '*', core.ColorPurple
	case rogue.BrickBombRed:
		return '*', core.ColorBrightRed
	case rogue.BrickBombGold:
		return '*', core.ColorGold
	case rogue.BrickGold:
		return '█', core.ColorGold
	case rogue.BrickMystery:
		return '?', core.ColorBrightMagenta
	case rogue.BrickIndestructible:
		return '▒', core.ColorGray
	default:
		return '█', core.ColorCyan
	}
}

// DrawRun draws the HUD and playfield of a run.
func DrawRun(s *core.Screen, r *rogue.Run) {
	s.Clear()
	cfg := r.Config()
	l := NewLayout(s.Width(), s.Height(), cfg.Field.Width, cfg.Field.Height)

	drawHUD(s, r)
	s.DrawBox(core.NewRect(l.Field.X-1, l.Field.Y-1, l.Field.W+2, l.Field.H+2), core.ColorGray)

	letters, _ := r.Letters()
	for _, b := range r.Bricks() {
		glyph, color := brickLook(b.Kind)
		left := l.CellX(b.X - cfg.Bricks.Width/2)
		right := max(l.CellX(b.X+cfg.Bricks.Width/2)-1, left)
		y := l.CellY(b.Y)
		for x := left; x <= right; x++ {
			s.SetColored(x, y, glyph, color)
		}
		mid := (left + right) / 2
		switch {
		case b.Letter >= 0 && b.Letter < len(letters):
			s.SetColored(mid, y, []rune(letters[b.Letter])[0], core.ColorBrightWhite)
		case b.Level > 0:
			s.SetColored(mid, y, rune('0'+min(b.Level, 9)), core.ColorBrightWhite)
		}
	}

	for _, d := range r.Drops() {
		color := core.ColorGold
		if d.Kind == rogue.DropPowerUp {
			color = core.ColorBrightMagenta
		}
		s.SetColored(l.CellX(d.X), l.CellY(d.Y), d.Glyph(), color)
	}

	paddle := r.Paddle()
	pColor := core.ColorBrightWhite
	if r.PowerMode() {
		pColor = core.ColorBrightYellow
	}
	left := l.CellX(paddle.X - paddle.Width/2)
	right := max(l.CellX(paddle.X+paddle.Width/2)-1, left)
	for x := left; x <= right; x++ {
		s.SetColored(x, l.CellY(paddle.Y), '▀', pColor)
	}

	for _, b := range r.Balls() {
		glyph, color := 'o', core.ColorBrightWhite
		if b.Fireball {
			glyph, color = '@', core.ColorOrange
		}
		s.SetColored(l.CellX(b.X), l.CellY(b.Y), glyph, color)
	}

	switch {
	case r.Paused():
		s.DrawTextCentered(l.Field.Y+l.Field.H/2, " PAUSED - p to resume ", core.ColorBrightYellow)
	case r.State() == rogue.StateWaveCleared:
		s.DrawTextCentered(l.Field.Y+l.Field.H/2, fmt.Sprintf(" WAVE %d CLEARED ", r.Wave()), core.ColorBrightGreen)
	case r.State() == rogue.StatePlaying && len(r.Balls()) > 0 && !r.Balls()[0].Launched:
		s.DrawTextCentered(l.Field.Y+l.Field.H*2/3, "space to launch", core.ColorGray)
	}
}

func drawHUD(s *core.Screen, r *rogue.Run) {
	wave := fmt.Sprintf("Wave %d", r.Wave())
	waveColor := core.ColorBrightWhite
	if r.IsBossWave() {
		wave += " BOSS"
		waveColor = core.ColorBrightRed
	}
	s.DrawTextColored(1, 0, wave, waveColor)

	stats := fmt.Sprintf("Score %s  Lives %d  Coins %d  Gems %d",
		humanize.Comma(int64(r.Score())), r.Lives(), r.Coins(), r.Gems())
	s.DrawTextColored(len(wave)+3, 0, stats, core.ColorWhite)

	if c := r.Combo(); c > 0 {
		combo := fmt.Sprintf("Combo %d x%.1f", c, r.ComboMultiplier())
		s.DrawTextColored(s.Width()-len(combo)-1, 0, combo, core.ColorBrightCyan)
	}

	// Second row: letters, effects, time pressure
	x := 1
	letters, got := r.Letters()
	for i, letter := range letters {
		color := core.ColorGray
		if i < len(got) && got[i] {
			color = core.ColorBrightYellow
		}
		s.DrawTextColored(x, 1, letter, color)
		x += 2
	}
	x++

	for _, e := range r.Effects() {
		text := e.String()
		if left := r.EffectRemaining(e); left > 0 {
			text += fmt.Sprintf(" %.0fs", left.Seconds())
		}
		s.DrawTextColored(x, 1, text, core.ColorBrightGreen)
		x += len(text) + 2
	}

	switch {
	case r.Pressure():
		s.DrawTextColored(s.Width()-10, 1, "PRESSURE!", core.ColorBrightRed)
	case r.Config().Gameplay.TimePressure > 0:
		text := fmt.Sprintf("%.0fs", r.PressureIn().Seconds())
		s.DrawTextColored(s.Width()-len(text)-1, 1, text, core.ColorGray)
	}
}
