// brickrogue is a roguelike brick breaker for the terminal.
//
// Usage:
//
//	brickrogue play              - Start a run
//	brickrogue sim               - Run a headless autopilot simulation
//	brickrogue upgrades          - List permanent upgrades
//	brickrogue upgrades buy <k>  - Buy an upgrade level with gems
//	brickrogue stats             - Show run history for a profile
//	brickrogue reset --yes       - Wipe a profile's progress and history
//	brickrogue serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible runs
//	--db <path>         - Set database path (default: ~/.brickrogue/runs.db)
//	--profile <name>    - Save profile (default: default)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/brickrogue/internal/config"
	"github.com/vovakirdan/brickrogue/internal/savefile"
	"github.com/vovakirdan/brickrogue/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagProfile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "brickrogue",
	Short: "Brick Rogue - a roguelike brick breaker in your terminal",
	Long: `Brick Rogue is a brick breaker with waves, a shop between waves and
permanent upgrades bought with gems earned across runs.

Available commands:
  play      - Start a run
  sim       - Run a headless autopilot simulation
  upgrades  - List or buy permanent upgrades
  stats     - View run history
  reset     - Wipe a profile
  serve     - Start SSH server for remote play

Examples:
  brickrogue play
  brickrogue play --difficulty hard
  brickrogue sim --duration 5m --seed 42
  brickrogue upgrades buy paddleSize
  brickrogue stats -i
  brickrogue serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.brickrogue/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", storage.DefaultProfile, "Save profile name")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(upgradesCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the command logger at the --log-level level.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "brickrogue",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// fileLogger logs to ~/.brickrogue/brickrogue.log, for commands that own
// the terminal. The returned close func is never nil.
func fileLogger() (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return newLogger(io.Discard), func() {}
	}
	dir := filepath.Join(home, ".brickrogue")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return newLogger(io.Discard), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "brickrogue.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return newLogger(io.Discard), func() {}
	}
	return newLogger(f), func() { f.Close() }
}

// loadConfig loads the game tuning and applies a difficulty preset.
func loadConfig(path, difficulty string) (config.RogueConfig, error) {
	cfg, err := config.LoadRogue(path)
	if err != nil {
		return config.RogueConfig{}, err
	}
	if difficulty != "" {
		preset, ok := config.ParsePreset(difficulty)
		if !ok {
			return config.RogueConfig{}, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", difficulty)
		}
		config.ApplyRoguePreset(&cfg, preset)
	}
	return cfg, nil
}

// openSaves opens the profile's save store, falling back to memory.
func openSaves(logger *log.Logger) savefile.Store {
	s, err := savefile.Open(flagProfile)
	if err != nil {
		logger.Warn("save data unavailable, progress will not persist", "error", err)
		return savefile.NewMemoryStore()
	}
	return s
}

// seed returns --seed, or the current time when unset.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
