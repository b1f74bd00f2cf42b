package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/brickrogue/internal/progress"
	"github.com/vovakirdan/brickrogue/internal/savefile"
)

var upgradesCmd = &cobra.Command{
	Use:   "upgrades",
	Short: "List permanent upgrades",
	Long: `Show the profile's permanent upgrades, prestige unlocks and balance.

Upgrades are bought with gems, prestige unlocks with shards.

Examples:
  brickrogue upgrades
  brickrogue upgrades buy paddleSize
  brickrogue upgrades buy luckyStart --profile alice`,
	Args: cobra.NoArgs,
	RunE: runUpgradesList,
}

var upgradesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List permanent upgrades",
	Args:  cobra.NoArgs,
	RunE:  runUpgradesList,
}

var upgradesBuyCmd = &cobra.Command{
	Use:   "buy <key>",
	Short: "Buy one upgrade level or a prestige unlock",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpgradesBuy,
}

func init() {
	upgradesCmd.AddCommand(upgradesListCmd)
	upgradesCmd.AddCommand(upgradesBuyCmd)
}

func runUpgradesList(_ *cobra.Command, _ []string) error {
	logger := newLogger(os.Stderr)
	cfg, err := loadConfig("", "")
	if err != nil {
		return err
	}
	save := savefile.LoadOrDefault(openSaves(logger), logger)
	reg := progress.NewRegistry(cfg, save)

	fmt.Printf("Profile %s: %d gems, %d shards, highest wave %d\n\n", flagProfile, save.Gems, save.Shards, save.HighestWave)

	fmt.Printf("  %-14s  %-16s  %-6s  %s\n", "Key", "Upgrade", "Level", "Next")
	fmt.Printf("  %-14s  %-16s  %-6s  %s\n", "---", "-------", "-----", "----")
	for _, k := range progress.AllUpgrades() {
		next := "max"
		if cost, ok := reg.Cost(k); ok {
			next = fmt.Sprintf("%d gems", cost)
		}
		level := fmt.Sprintf("%d/%d", reg.Level(k), reg.MaxLevel(k))
		fmt.Printf("  %-14s  %-16s  %-6s  %s\n", k.Key(), k.String(), level, next)
	}

	fmt.Println()
	fmt.Printf("  %-14s  %-16s  %s\n", "Key", "Prestige", "Cost")
	fmt.Printf("  %-14s  %-16s  %s\n", "---", "--------", "----")
	for _, p := range progress.AllPrestige() {
		cost := "owned"
		if c, ok := reg.PrestigeCost(p); ok {
			cost = fmt.Sprintf("%d shards", c)
		}
		fmt.Printf("  %-14s  %-16s  %s\n", p.Key(), p.String(), cost)
	}

	fmt.Println()
	fmt.Println("Run 'brickrogue upgrades buy <key>' to buy.")
	return nil
}

func runUpgradesBuy(_ *cobra.Command, args []string) error {
	logger := newLogger(os.Stderr)
	cfg, err := loadConfig("", "")
	if err != nil {
		return err
	}
	saves := openSaves(logger)
	save := savefile.LoadOrDefault(saves, logger)
	reg := progress.NewRegistry(cfg, save)
	ledger := progress.NewLedger(save)

	var bought string
	if k, ok := progress.ParseUpgrade(args[0]); ok {
		cost, _ := reg.Cost(k)
		if !reg.Purchase(k, ledger) {
			return fmt.Errorf("cannot buy %s: level %d/%d, cost %d, gems %d",
				k, reg.Level(k), reg.MaxLevel(k), cost, ledger.Gems())
		}
		bought = fmt.Sprintf("%s is now level %d (%d gems left)", k, reg.Level(k), ledger.Gems())
	} else if p, ok := progress.ParsePrestige(args[0]); ok {
		cost, _ := reg.PrestigeCost(p)
		if !reg.PurchasePrestige(p, ledger) {
			return fmt.Errorf("cannot unlock %s: owned %t, cost %d, shards %d",
				p, reg.HasPrestige(p), cost, ledger.Shards())
		}
		bought = fmt.Sprintf("%s unlocked (%d shards left)", p, ledger.Shards())
	} else {
		return fmt.Errorf("unknown upgrade %q, run 'brickrogue upgrades' for the keys", args[0])
	}

	if err := saves.Save(save); err != nil {
		return fmt.Errorf("saving progress: %w", err)
	}
	fmt.Println(bought)
	return nil
}
