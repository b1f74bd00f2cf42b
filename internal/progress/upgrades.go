package progress

import (
	"math"
	"time"

	"github.com/vovakirdan/brickrogue/internal/config"
)

// UpgradeKind identifies a permanent, gem-bought upgrade.
type UpgradeKind int

const (
	UpgradeStartingCoins UpgradeKind = iota
	UpgradePaddleSize
	UpgradeBallSpeed
	UpgradeCoinMult
	UpgradeExtraLives
	UpgradeCritChance
	UpgradeShopDiscount
)

// AllUpgrades lists every upgrade in display order.
func AllUpgrades() []UpgradeKind {
	return []UpgradeKind{
		UpgradeStartingCoins,
		UpgradePaddleSize,
		UpgradeBallSpeed,
		UpgradeCoinMult,
		UpgradeExtraLives,
		UpgradeCritChance,
		UpgradeShopDiscount,
	}
}

// Key returns the save-record key of the upgrade.
func (k UpgradeKind) Key() string {
	switch k {
	case UpgradeStartingCoins:
		return "startingCoins"
	case UpgradePaddleSize:
		return "paddleSize"
	case UpgradeBallSpeed:
		return "ballSpeed"
	case UpgradeCoinMult:
		return "coinMult"
	case UpgradeExtraLives:
		return "extraLives"
	case UpgradeCritChance:
		return "critChance"
	case UpgradeShopDiscount:
		return "shopDiscount"
	default:
		return ""
	}
}

// String returns the display name.
func (k UpgradeKind) String() string {
	switch k {
	case UpgradeStartingCoins:
		return "Starting Coins"
	case UpgradePaddleSize:
		return "Paddle Size"
	case UpgradeBallSpeed:
		return "Ball Control"
	case UpgradeCoinMult:
		return "Coin Multiplier"
	case UpgradeExtraLives:
		return "Extra Lives"
	case UpgradeCritChance:
		return "Critical Hits"
	case UpgradeShopDiscount:
		return "Shop Discount"
	default:
		return "Unknown"
	}
}

// ParseUpgrade resolves a save-record key.
func ParseUpgrade(key string) (UpgradeKind, bool) {
	for _, k := range AllUpgrades() {
		if k.Key() == key {
			return k, true
		}
	}
	return 0, false
}

// PrestigeKind identifies a permanent, shard-bought unlock.
type PrestigeKind int

const (
	PrestigeGoldenPaddle PrestigeKind = iota // coin and gem multiplier
	PrestigeDoubleGems
	PrestigeLuckyStart // every run starts with a shield
	PrestigeBossHunter // boss waves pay more gems
)

// AllPrestige lists every prestige unlock.
func AllPrestige() []PrestigeKind {
	return []PrestigeKind{PrestigeGoldenPaddle, PrestigeDoubleGems, PrestigeLuckyStart, PrestigeBossHunter}
}

// Key returns the save-record key of the unlock.
func (p PrestigeKind) Key() string {
	switch p {
	case PrestigeGoldenPaddle:
		return "goldenPaddle"
	case PrestigeDoubleGems:
		return "doubleGems"
	case PrestigeLuckyStart:
		return "luckyStart"
	case PrestigeBossHunter:
		return "bossHunter"
	default:
		return ""
	}
}

// String returns the display name.
func (p PrestigeKind) String() string {
	switch p {
	case PrestigeGoldenPaddle:
		return "Golden Paddle"
	case PrestigeDoubleGems:
		return "Double Gems"
	case PrestigeLuckyStart:
		return "Lucky Start"
	case PrestigeBossHunter:
		return "Boss Hunter"
	default:
		return "Unknown"
	}
}

// ParsePrestige resolves a save-record key.
func ParsePrestige(key string) (PrestigeKind, bool) {
	for _, p := range AllPrestige() {
		if p.Key() == key {
			return p, true
		}
	}
	return 0, false
}

// Registry holds permanent upgrade levels and prestige flags from the save
// record, derives the gameplay multipliers they imply, and tracks the
// run's temporary effects.
type Registry struct {
	upgrades config.UpgradesConfig
	prestige config.PrestigeConfig
	save     *SaveState

	clock time.Duration
	temps map[EffectKind]tempEffect
}

// NewRegistry creates a registry over the given save record.
func NewRegistry(cfg config.RogueConfig, save *SaveState) *Registry {
	save.Normalize()
	return &Registry{
		upgrades: cfg.Upgrades,
		prestige: cfg.Prestige,
		save:     save,
		temps:    make(map[EffectKind]tempEffect),
	}
}

func (r *Registry) table(k UpgradeKind) (config.UpgradeTable, bool) {
	switch k {
	case UpgradeStartingCoins:
		return r.upgrades.StartingCoins, true
	case UpgradePaddleSize:
		return r.upgrades.PaddleSize, true
	case UpgradeBallSpeed:
		return r.upgrades.BallSpeed, true
	case UpgradeCoinMult:
		return r.upgrades.CoinMult, true
	case UpgradeExtraLives:
		return r.upgrades.ExtraLives, true
	case UpgradeCritChance:
		return r.upgrades.CritChance, true
	case UpgradeShopDiscount:
		return r.upgrades.ShopDiscount, true
	default:
		return config.UpgradeTable{}, false
	}
}

// Level returns the current level, bounded by the cost table.
func (r *Registry) Level(k UpgradeKind) int {
	t, ok := r.table(k)
	if !ok {
		return 0
	}
	return min(max(r.save.Upgrades[k.Key()], 0), len(t.Costs))
}

// MaxLevel returns the length of the upgrade's cost table.
func (r *Registry) MaxLevel(k UpgradeKind) int {
	t, _ := r.table(k)
	return len(t.Costs)
}

// Cost returns the gem cost of the next level. ok is false when the
// upgrade is maxed or unknown.
func (r *Registry) Cost(k UpgradeKind) (cost int, ok bool) {
	t, known := r.table(k)
	if !known {
		return 0, false
	}
	lvl := r.Level(k)
	if lvl >= len(t.Costs) {
		return 0, false
	}
	return t.Costs[lvl], true
}

// Purchase spends gems from the ledger and raises the level by one.
// It fails without change when maxed, unknown or unaffordable.
func (r *Registry) Purchase(k UpgradeKind, l *Ledger) bool {
	cost, ok := r.Cost(k)
	if !ok || !l.SpendGems(cost) {
		return false
	}
	r.save.Upgrades[k.Key()] = r.Level(k) + 1
	return true
}

// HasPrestige reports whether an unlock is owned.
func (r *Registry) HasPrestige(p PrestigeKind) bool {
	return r.save.Prestige[p.Key()]
}

// PrestigeCost returns the shard cost of an unlock. ok is false when it
// is already owned or unknown.
func (r *Registry) PrestigeCost(p PrestigeKind) (cost int, ok bool) {
	if r.HasPrestige(p) {
		return 0, false
	}
	switch p {
	case PrestigeGoldenPaddle:
		return r.prestige.GoldenPaddle, true
	case PrestigeDoubleGems:
		return r.prestige.DoubleGems, true
	case PrestigeLuckyStart:
		return r.prestige.LuckyStart, true
	case PrestigeBossHunter:
		return r.prestige.BossHunter, true
	default:
		return 0, false
	}
}

// PurchasePrestige spends shards and sets the unlock.
func (r *Registry) PurchasePrestige(p PrestigeKind, l *Ledger) bool {
	cost, ok := r.PrestigeCost(p)
	if !ok || !l.SpendShards(cost) {
		return false
	}
	r.save.Prestige[p.Key()] = true
	return true
}

func (r *Registry) step(k UpgradeKind) float64 {
	t, _ := r.table(k)
	return float64(r.Level(k)) * t.Step
}

// StartingCoinsBonus is added to the base starting coins.
func (r *Registry) StartingCoinsBonus() int {
	return int(r.step(UpgradeStartingCoins))
}

// PaddleSizeMultiplier scales the base paddle width.
func (r *Registry) PaddleSizeMultiplier() float64 {
	return 1 + r.step(UpgradePaddleSize)
}

// BallSpeedReduction is the fraction removed from the base ball speed. The
// speed cap is not reduced.
func (r *Registry) BallSpeedReduction() float64 {
	return min(r.step(UpgradeBallSpeed), 0.9)
}

// CoinMultiplier scales every coin award.
func (r *Registry) CoinMultiplier() float64 {
	m := 1 + r.step(UpgradeCoinMult)
	if r.HasPrestige(PrestigeGoldenPaddle) {
		m *= r.prestige.GoldenMultiplier
	}
	return m
}

// ExtraLives is added to the base lives.
func (r *Registry) ExtraLives() int {
	return int(r.step(UpgradeExtraLives))
}

// CritChance is the probability that a brick hit is critical.
func (r *Registry) CritChance() float64 {
	return min(r.step(UpgradeCritChance), 1)
}

// ShopDiscount is the fraction taken off shop prices.
func (r *Registry) ShopDiscount() float64 {
	return min(r.step(UpgradeShopDiscount), 1)
}

// GemMultiplier scales every gem award.
func (r *Registry) GemMultiplier() float64 {
	m := 1.0
	if r.HasPrestige(PrestigeGoldenPaddle) {
		m *= r.prestige.GoldenMultiplier
	}
	if r.HasPrestige(PrestigeDoubleGems) {
		m *= r.prestige.GemMultiplier
	}
	return m
}

// BossGemMultiplier applies on top of GemMultiplier for boss waves.
func (r *Registry) BossGemMultiplier() float64 {
	if r.HasPrestige(PrestigeBossHunter) {
		return r.prestige.BossMultiplier
	}
	return 1
}

// ShopPrice applies the shop discount to a base price.
func (r *Registry) ShopPrice(base int) int {
	return DiscountedPrice(base, r.ShopDiscount())
}

// DiscountedPrice returns floor(base*(1-discount)).
func DiscountedPrice(base int, discount float64) int {
	if base <= 0 {
		return 0
	}
	return int(math.Floor(float64(base) * (1 - discount)))
}
