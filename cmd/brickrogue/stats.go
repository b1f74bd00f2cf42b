package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/brickrogue/internal/platform/tui"
	"github.com/vovakirdan/brickrogue/internal/savefile"
	"github.com/vovakirdan/brickrogue/internal/storage"
)

var (
	flagStatsInteractive bool
	flagStatsLimit       int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show run history for a profile",
	Long: `Display lifetime totals and the best runs of a profile.

Examples:
  brickrogue stats
  brickrogue stats --profile alice --limit 20
  brickrogue stats -i`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVarP(&flagStatsInteractive, "interactive", "i", false, "Browse runs in a table")
	statsCmd.Flags().IntVar(&flagStatsLimit, "limit", 10, "Number of runs to list")
}

func runStats(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagStatsInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, flagProfile, width, height)
	}

	logger := newLogger(os.Stderr)
	save := savefile.LoadOrDefault(openSaves(logger), logger)

	stats, err := store.Stats(flagProfile)
	if err != nil {
		return err
	}

	fmt.Printf("Profile %s\n\n", flagProfile)
	fmt.Printf("  Gems           %s\n", humanize.Comma(int64(save.Gems)))
	fmt.Printf("  Shards         %s\n", humanize.Comma(int64(save.Shards)))
	fmt.Printf("  Highest wave   %d\n", save.HighestWave)
	fmt.Printf("  Total runs     %s\n", humanize.Comma(int64(save.TotalRuns)))
	fmt.Printf("  Bricks broken  %s\n", humanize.Comma(int64(save.TotalBricksDestroyed)))
	fmt.Printf("  Coins earned   %s\n", humanize.Comma(int64(save.TotalCoinsEarned)))
	fmt.Printf("  Gems earned    %s\n", humanize.Comma(int64(save.TotalGemsEarned)))
	fmt.Println()

	if stats.Runs == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'brickrogue play' to record the first run!")
		return nil
	}

	fmt.Printf("  Recorded runs  %d, played %s, last %s\n",
		stats.Runs, stats.PlayTime.Round(time.Second), humanize.Time(stats.LastPlayed))
	fmt.Printf("  Average score  %s\n", humanize.Comma(int64(stats.AvgScore)))
	fmt.Println()

	runs, err := store.TopRuns(flagProfile, flagStatsLimit)
	if err != nil {
		return err
	}

	fmt.Printf("  %-4s  %-10s  %-4s  %-8s  %-8s  %s\n", "Rank", "Score", "Wave", "Time", "End", "Date")
	fmt.Printf("  %-4s  %-10s  %-4s  %-8s  %-8s  %s\n", "----", "-----", "----", "----", "---", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-10s  %-4d  %-8s  %-8s  %s\n", i+1, humanize.Comma(int64(r.Score)), r.Wave,
			r.Duration.Round(time.Second), r.Reason, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Printf("Best: %s\n", humanize.Comma(int64(stats.BestScore)))
	return nil
}
