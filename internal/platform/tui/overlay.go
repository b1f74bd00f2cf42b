package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/brickrogue/internal/games/rogue"
	"github.com/vovakirdan/brickrogue/internal/progress"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)
	cursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	currencyText = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	messageStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("10"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// menuKeys is the help shown under the shop and game over panels.
type menuKeys struct {
	up, down, selectKey, extra, quit key.Binding
}

func (k menuKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.up, k.down, k.selectKey, k.extra, k.quit}
}

func (k menuKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// shopEntries returns the shop rows; the last row continues to the next wave.
func shopEntries() []rogue.PowerUpKind {
	return rogue.AllPowerUps()
}

// renderShop renders the between-wave shop.
func renderShop(r *rogue.Run, cursor int, message string, km KeyMap, h help.Model, width, height int) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("SHOP - wave %d cleared", r.Wave())))
	b.WriteString("\n")
	b.WriteString(currencyText.Render(fmt.Sprintf("Coins %d", r.Coins())))
	if n := r.PendingBalls(); n > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("   +%d ball(s) at next launch", n)))
	}
	b.WriteString("\n\n")

	items := shopEntries()
	for i, k := range items {
		price := r.ShopPrice(k)
		line := fmt.Sprintf("%-14s %4d", k.String(), price)
		b.WriteString(menuLine(line, i == cursor, price <= r.Coins()))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(menuLine(fmt.Sprintf("Continue to wave %d", r.Wave()+1), cursor == len(items), true))

	if message != "" {
		b.WriteString("\n\n")
		b.WriteString(messageStyle.Render(message))
	}

	keys := menuKeys{up: km.Up, down: km.Down, selectKey: km.Select, extra: km.Back, quit: km.Quit}
	return place(panelStyle.Render(b.String()), helpStyle.Render(h.View(keys)), width, height)
}

// renderGameOver renders the run summary and the permanent upgrade list.
func renderGameOver(r *rogue.Run, summary *rogue.RunSummary, cursor int, message string, km KeyMap, h help.Model, width, height int) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("GAME OVER"))
	b.WriteString("\n\n")
	if summary != nil {
		fmt.Fprintf(&b, "Score    %s\n", humanize.Comma(int64(summary.Score)))
		fmt.Fprintf(&b, "Wave     %d\n", summary.Wave)
		fmt.Fprintf(&b, "Bricks   %s\n", humanize.Comma(int64(summary.BricksDestroyed)))
		fmt.Fprintf(&b, "Coins    %d   Gems +%d   Shards +%d\n", summary.Coins, summary.Gems, summary.Shards)
		fmt.Fprintf(&b, "Time     %s   (%s)\n", summary.Duration.Round(time.Second), reasonText(summary.Reason))
	}
	b.WriteString("\n")
	b.WriteString(currencyText.Render(fmt.Sprintf("Gems %d   Shards %d", r.Gems(), r.Shards())))
	b.WriteString("\n\n")

	reg := r.Registry()
	for i, k := range progress.AllUpgrades() {
		cost, ok := reg.Cost(k)
		price := "MAX"
		if ok {
			price = fmt.Sprintf("%d gems", cost)
		}
		line := fmt.Sprintf("%-16s %d/%d  %s", k.String(), reg.Level(k), reg.MaxLevel(k), price)
		b.WriteString(menuLine(line, i == cursor, ok && cost <= r.Gems()))
		b.WriteString("\n")
	}

	if message != "" {
		b.WriteString("\n")
		b.WriteString(messageStyle.Render(message))
	}

	keys := menuKeys{up: km.Up, down: km.Down, selectKey: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "buy upgrade"),
	), extra: km.Restart, quit: km.Quit}
	return place(panelStyle.Render(b.String()), helpStyle.Render(h.View(keys)), width, height)
}

func menuLine(text string, selected, enabled bool) string {
	switch {
	case selected:
		return cursorStyle.Render("> " + text)
	case !enabled:
		return dimStyle.Render("  " + text)
	default:
		return "  " + text
	}
}

func reasonText(r rogue.EndReason) string {
	switch r {
	case rogue.ReasonLives:
		return "out of lives"
	case rogue.ReasonOverrun:
		return "bricks reached the paddle"
	case rogue.ReasonQuit:
		return "abandoned"
	default:
		return "ended"
	}
}

func place(panel, helpLine string, width, height int) string {
	body := lipgloss.JoinVertical(lipgloss.Center, panel, "", helpLine)
	if width <= 0 || height <= 0 {
		return body
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}
