package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/brickrogue/internal/core"
	"github.com/vovakirdan/brickrogue/internal/games/rogue"
	"github.com/vovakirdan/brickrogue/internal/platform/tui"
	"github.com/vovakirdan/brickrogue/internal/savefile"
	"github.com/vovakirdan/brickrogue/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a run",
	Long: `Start a run in the terminal. A terminal of 40 rows or more is best.

Controls:
  Left/Right, A/D, mouse  - Move paddle
  Space, click            - Launch ball
  P                       - Pause
  Up/Down, Enter          - Shop and upgrade menus
  Esc                     - Abandon run
  R                       - New run (after game over)
  Q/Ctrl+C                - Quit
  Ctrl+S                  - Save screenshot

Difficulty options:
  easy   - Extra lives, slower brick descent
  normal - Default tuning with wave progression
  hard   - Fewer lives, early and faster descent
  fixed  - No wave progression

Logs go to ~/.brickrogue/brickrogue.log.

Examples:
  brickrogue play
  brickrogue play --profile alice --difficulty easy
  brickrogue play --config ./my-rogue.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(_ *cobra.Command, _ []string) error {
	logger, closeLog := fileLogger()
	defer closeLog()

	cfg, err := loadConfig(flagConfig, flagDifficulty)
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed(),
	}

	saves := openSaves(logger)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run database: %v\n", err)
		// Continue without run history
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	run := rogue.NewRun(cfg, savefile.LoadOrDefault(saves, logger), rc.Seed)
	run.SetLogger(logger)
	logger.Info("Starting run", "profile", flagProfile, "seed", rc.Seed)

	if err := tui.Run(run, tui.Session{
		Profile: flagProfile,
		Saves:   saves,
		Runs:    store,
		Logger:  logger,
	}, rc); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
