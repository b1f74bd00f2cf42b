package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/brickrogue/internal/core"
	"github.com/vovakirdan/brickrogue/internal/games/rogue"
	"github.com/vovakirdan/brickrogue/internal/platform/arena"
	"github.com/vovakirdan/brickrogue/internal/progress"
	"github.com/vovakirdan/brickrogue/internal/savefile"
	"github.com/vovakirdan/brickrogue/internal/storage"
)

// moveHold is how many ticks a single key press keeps the paddle moving.
// Terminals report key presses and repeats but never releases.
const moveHold = 6

// Session is where a model persists progress and finished runs.
type Session struct {
	Profile string
	Saves   savefile.Store
	Runs    *storage.Store // optional
	Logger  *log.Logger
}

// Model is the Bubble Tea model driving one run.
type Model struct {
	run     *rogue.Run
	arena   *arena.Arena
	screen  *core.Screen
	session Session
	config  core.RuntimeConfig

	keyMapper  *KeyMapper
	help       help.Model
	inputFrame core.InputFrame

	move      int
	moveTicks int
	pointerX  float64
	pointer   bool

	cursor   int // shop or upgrade selection
	message  string
	summary  *rogue.RunSummary
	quitting bool
}

// NewModel creates a model for a started run.
func NewModel(run *rogue.Run, session Session, cfg core.RuntimeConfig) Model {
	if session.Logger == nil {
		session.Logger = log.Default()
	}
	return Model{
		run:        run,
		arena:      arena.New(run.Config()),
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		session:    session,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey routes a key press by run state.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	switch m.run.State() {
	case rogue.StateShop:
		return m.handleShopKey(msg)
	case rogue.StateGameOver:
		return m.handleGameOverKey(msg)
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.persist(m.run.Abandon())
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		m.persist(m.run.Abandon())
		m.cursor = 0
		return m, nil
	case action == core.ActionLeft:
		m.move, m.moveTicks, m.pointer = -1, moveHold, false
	case action == core.ActionRight:
		m.move, m.moveTicks, m.pointer = 1, moveHold, false
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}
	return m, nil
}

func (m Model) handleShopKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := shopEntries()
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionUp:
		m.cursor = (m.cursor + len(items)) % (len(items) + 1)
	case MenuActionDown:
		m.cursor = (m.cursor + 1) % (len(items) + 1)
	case MenuActionSelect:
		if m.cursor == len(items) {
			m.run.ContinueToNextWave()
			m.cursor, m.message = 0, ""
			return m, nil
		}
		k := items[m.cursor]
		if m.run.BuyShopItem(k) {
			m.message = "Bought " + k.String()
		} else {
			m.message = "Not enough coins"
		}
	case MenuActionQuit:
		m.persist(m.run.Abandon())
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleGameOverKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if action, _ := m.keyMapper.MapKey(msg); action == core.ActionRestart {
		m.run.Start()
		m.summary = nil
		m.cursor, m.message = 0, ""
		return m, nil
	}

	upgrades := progress.AllUpgrades()
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionUp:
		m.cursor = (m.cursor + len(upgrades) - 1) % len(upgrades)
	case MenuActionDown:
		m.cursor = (m.cursor + 1) % len(upgrades)
	case MenuActionSelect:
		k := upgrades[m.cursor]
		if m.run.Registry().Purchase(k, m.run.Ledger()) {
			m.message = fmt.Sprintf("%s is now level %d", k, m.run.Registry().Level(k))
			savefile.SaveOrLog(m.session.Saves, m.run.Save(), m.session.Logger)
		} else {
			m.message = "Cannot buy " + k.String()
		}
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleMouse steers the paddle with the pointer.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.run.State() != rogue.StatePlaying {
		return m, nil
	}
	cfg := m.run.Config()
	l := NewLayout(m.screen.Width(), m.screen.Height(), cfg.Field.Width, cfg.Field.Height)
	m.pointerX = core.ClampF(l.FieldX(msg.X), 0, cfg.Field.Width)
	m.pointer = true

	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		m.inputFrame.Set(core.ActionLaunch)
	}
	return m, nil
}

// handleResize processes window resize events. The layout scales, so the
// run keeps going.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.help.Width = msg.Width
	return m, nil
}

// handleTick advances the arena and the run by one tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	in := rogue.Input{
		Launch:     m.inputFrame.Has(core.ActionLaunch),
		Pause:      m.inputFrame.Has(core.ActionPause),
		PointerX:   m.pointerX,
		HasPointer: m.pointer,
	}
	if m.moveTicks > 0 {
		in.Move = m.move
		m.moveTicks--
	}

	m.persist(m.arena.Tick(m.run, m.config.TickDuration(), in))

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// persist writes the save record and run history a step asked for.
func (m *Model) persist(res rogue.StepResult) {
	if res.SaveRequested {
		savefile.SaveOrLog(m.session.Saves, m.run.Save(), m.session.Logger)
	}
	if res.Summary == nil {
		return
	}
	m.summary = res.Summary
	if m.session.Runs == nil {
		return
	}
	id, err := m.session.Runs.SaveRun(storage.NewRunRecord(m.session.Profile, *res.Summary))
	if err != nil {
		m.session.Logger.Error("Failed to record run", "error", err)
		return
	}
	m.session.Logger.Debug("Run recorded", "id", id, "score", res.Summary.Score)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	DrawRun(m.screen, m.run)

	dir := filepath.Join(os.Getenv("HOME"), ".brickrogue", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.session.Logger.Warn("Cannot create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("wave%d_%s.txt", m.run.Wave(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.session.Logger.Warn("Cannot save screenshot", "error", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	keys := m.keyMapper.Keys()
	switch m.run.State() {
	case rogue.StateShop:
		return renderShop(m.run, m.cursor, m.message, keys, m.help, m.screen.Width(), m.screen.Height())
	case rogue.StateGameOver:
		return renderGameOver(m.run, m.summary, m.cursor, m.message, keys, m.help, m.screen.Width(), m.screen.Height())
	}

	DrawRun(m.screen, m.run)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program for a run.
func Run(run *rogue.Run, session Session, cfg core.RuntimeConfig) error {
	model := NewModel(run, session, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	_, err := p.Run()
	return err
}
