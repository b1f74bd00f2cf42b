package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/brickrogue/internal/storage"
)

var (
	flagResetYes     bool
	flagResetKeepLog bool
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe a profile's progress and run history",
	Long: `Reset the profile's save record to defaults and delete its recorded runs.
Gems, shards, upgrades and prestige unlocks are lost.

Examples:
  brickrogue reset --yes
  brickrogue reset --profile alice --yes --keep-history`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&flagResetYes, "yes", false, "Confirm the reset")
	resetCmd.Flags().BoolVar(&flagResetKeepLog, "keep-history", false, "Keep recorded runs")
}

func runReset(_ *cobra.Command, _ []string) error {
	if !flagResetYes {
		return errors.New("refusing to reset without --yes")
	}
	logger := newLogger(os.Stderr)

	if _, err := openSaves(logger).Reset(); err != nil {
		return fmt.Errorf("resetting progress: %w", err)
	}
	fmt.Printf("Progress of %s reset.\n", flagProfile)

	if flagResetKeepLog {
		return nil
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.ClearRuns(flagProfile); err != nil {
		return err
	}
	fmt.Printf("Run history of %s cleared.\n", flagProfile)
	return nil
}
