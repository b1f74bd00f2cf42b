// Package config provides YAML-based tuning for brickrogue: field geometry,
// brick stats, spawn probabilities, rewards, shop prices, upgrade tables and
// the difficulty presets that scale them.
package config

import "time"

// RogueConfig contains all tuning for a run.
type RogueConfig struct {
	Field      FieldConfig      `yaml:"field"`
	Paddle     PaddleConfig     `yaml:"paddle"`
	Ball       BallConfig       `yaml:"ball"`
	Bricks     BricksConfig     `yaml:"bricks"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Gameplay   GameplayConfig   `yaml:"gameplay"`
	Bombs      BombConfig       `yaml:"bombs"`
	PowerUps   PowerUpConfig    `yaml:"powerups"`
	Shop       ShopConfig       `yaml:"shop"`
	Upgrades   UpgradesConfig   `yaml:"upgrades"`
	Prestige   PrestigeConfig   `yaml:"prestige"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// FieldConfig is the playfield size in pixels.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PaddleConfig defines the paddle geometry and keyboard speed.
type PaddleConfig struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	YOffset float64 `yaml:"y_offset"` // distance of the paddle centre from the bottom
	Speed   float64 `yaml:"speed"`    // pixels per second
}

// BallConfig defines ball speeds in pixels per second.
type BallConfig struct {
	Radius            float64 `yaml:"radius"`
	BaseSpeed         float64 `yaml:"base_speed"`
	MaxSpeed          float64 `yaml:"max_speed"`
	MinSpeed          float64 `yaml:"min_speed"`
	RallyAcceleration float64 `yaml:"rally_acceleration"` // speed gained per paddle return
	MaxBounceAngle    float64 `yaml:"max_bounce_angle"`   // degrees from vertical
	MinHorizontal     float64 `yaml:"min_horizontal"`     // minimum |vx| after a paddle bounce
}

// BricksConfig defines grid geometry, merge/fall tuning and per-kind stats.
type BricksConfig struct {
	Width        float64       `yaml:"width"`
	Height       float64       `yaml:"height"`
	Padding      float64       `yaml:"padding"`
	Top          float64       `yaml:"top"`
	Side         float64       `yaml:"side"`
	Cols         int           `yaml:"cols"`
	BaseRows     int           `yaml:"base_rows"`
	MaxRows      int           `yaml:"max_rows"`
	WavesPerRow  int           `yaml:"waves_per_row"`
	GapFraction  float64       `yaml:"gap_fraction"`
	FallDuration time.Duration `yaml:"fall_duration"`
	MergeBonus   float64       `yaml:"merge_bonus"`       // stat scaling per merge level
	MergeScore   float64       `yaml:"merge_score_bonus"` // score scaling per merge level
	Kinds        BrickKinds    `yaml:"kinds"`
}

// BrickKinds holds the base stats of every brick kind.
type BrickKinds struct {
	Normal         BrickStats `yaml:"normal"`
	Tough          BrickStats `yaml:"tough"`
	Tough3         BrickStats `yaml:"tough3"`
	Explosive      BrickStats `yaml:"explosive"`
	BombPurple     BrickStats `yaml:"bomb_purple"`
	BombRed        BrickStats `yaml:"bomb_red"`
	BombGold       BrickStats `yaml:"bomb_gold"`
	Gold           BrickStats `yaml:"gold"`
	Mystery        BrickStats `yaml:"mystery"`
	Indestructible BrickStats `yaml:"indestructible"`
}

// BrickStats are the base values of one brick kind. HP below zero means
// the brick cannot be destroyed.
type BrickStats struct {
	HP       int `yaml:"hp"`
	Points   int `yaml:"points"`
	CoinDrop int `yaml:"coin_drop"`
}

// SpawnConfig holds the per-kind probability bands used by the wave
// generator, in resolution order.
type SpawnConfig struct {
	Indestructible SpawnBand `yaml:"indestructible"`
	Tough3         SpawnBand `yaml:"tough3"`
	Tough          SpawnBand `yaml:"tough"`
	Explosive      SpawnBand `yaml:"explosive"`
	BombPurple     SpawnBand `yaml:"bomb_purple"`
	BombRed        SpawnBand `yaml:"bomb_red"`
	BombGold       SpawnBand `yaml:"bomb_gold"`
	Gold           SpawnBand `yaml:"gold"`
	Mystery        SpawnBand `yaml:"mystery"`
}

// Row gates for spawn bands.
const (
	RowGateNone        = ""            // band resolves on every row
	RowGateCollapse    = "collapse"    // band has zero width outside the top half
	RowGateFallthrough = "fallthrough" // band keeps its width but does not resolve outside the top half
)

// SpawnBand is a linear ramp with a cap: zero before MinWave, then
// Base + (wave-MinWave)*PerWave, never above Max.
type SpawnBand struct {
	Base    float64 `yaml:"base"`
	PerWave float64 `yaml:"per_wave"`
	Max     float64 `yaml:"max"`
	MinWave int     `yaml:"min_wave"`
	RowGate string  `yaml:"row_gate"`
}

// Chance returns the band width at the given wave.
func (b SpawnBand) Chance(wave int) float64 {
	if wave < b.MinWave {
		return 0
	}
	c := b.Base + float64(wave-b.MinWave)*b.PerWave
	if b.Max > 0 && c > b.Max {
		c = b.Max
	}
	if c < 0 {
		return 0
	}
	return c
}

// GameplayConfig defines lives, rewards and wave pacing.
type GameplayConfig struct {
	Lives             int           `yaml:"lives"`
	StartingCoins     int           `yaml:"starting_coins"`
	GemsPerWave       int           `yaml:"gems_per_wave"`
	GemsPerBoss       int           `yaml:"gems_per_boss"`
	ShardsPerBoss     int           `yaml:"shards_per_boss"`
	BossInterval      int           `yaml:"boss_interval"`
	ComboPenalty      int           `yaml:"combo_penalty"`
	TimePressure      time.Duration `yaml:"time_pressure"`
	DescentSpeed      float64       `yaml:"descent_speed"` // pixels per second
	WaveTransition    time.Duration `yaml:"wave_transition"`
	PowerModeDuration time.Duration `yaml:"power_mode_duration"`
	Letters           []string      `yaml:"letters"`
	CoinFallSpeed     float64       `yaml:"coin_fall_speed"`
	PowerUpFallSpeed  float64       `yaml:"powerup_fall_speed"`
}

// BombConfig defines explosion radii in pixels.
type BombConfig struct {
	DefaultRadius  float64 `yaml:"default_radius"`
	PurpleRadius   float64 `yaml:"purple_radius"`
	RedRadius      float64 `yaml:"red_radius"`
	GoldBonusCoins int     `yaml:"gold_bonus_coins"`
}

// PowerUpConfig defines timed effect durations and their strength.
type PowerUpConfig struct {
	Wide           time.Duration `yaml:"wide"`
	Fireball       time.Duration `yaml:"fireball"`
	Slow           time.Duration `yaml:"slow"`
	Magnet         time.Duration `yaml:"magnet"`
	WideMultiplier float64       `yaml:"wide_multiplier"`
	PowerModeWide  float64       `yaml:"power_mode_wide"`
	SlowFactor     float64       `yaml:"slow_factor"`
	FireballDamage int           `yaml:"fireball_damage"`
	MagnetPull     float64       `yaml:"magnet_pull"` // pixels per second towards the paddle
	ExtraBallAngle float64       `yaml:"extra_ball_angle"`
}

// ShopConfig holds coin prices of the between-wave shop.
type ShopConfig struct {
	ExtraBall int `yaml:"extra_ball"`
	Wide      int `yaml:"wide"`
	Fireball  int `yaml:"fireball"`
	Slow      int `yaml:"slow"`
	Shield    int `yaml:"shield"`
	Magnet    int `yaml:"magnet"`
}

// UpgradesConfig holds the gem cost table and per-level step of every
// permanent upgrade. The table length is the maximum level.
type UpgradesConfig struct {
	StartingCoins UpgradeTable `yaml:"starting_coins"`
	PaddleSize    UpgradeTable `yaml:"paddle_size"`
	BallSpeed     UpgradeTable `yaml:"ball_speed"`
	CoinMult      UpgradeTable `yaml:"coin_mult"`
	ExtraLives    UpgradeTable `yaml:"extra_lives"`
	CritChance    UpgradeTable `yaml:"crit_chance"`
	ShopDiscount  UpgradeTable `yaml:"shop_discount"`
}

// UpgradeTable is one permanent upgrade's costs and effect per level.
type UpgradeTable struct {
	Costs []int   `yaml:"costs"`
	Step  float64 `yaml:"step"`
}

// PrestigeConfig holds shard costs and strengths of prestige unlocks.
type PrestigeConfig struct {
	GoldenPaddle     int     `yaml:"golden_paddle"`
	DoubleGems       int     `yaml:"double_gems"`
	LuckyStart       int     `yaml:"lucky_start"`
	BossHunter       int     `yaml:"boss_hunter"`
	GoldenMultiplier float64 `yaml:"golden_multiplier"`
	GemMultiplier    float64 `yaml:"gem_multiplier"`
	BossMultiplier   float64 `yaml:"boss_multiplier"`
}

// DifficultyConfig defines the wave-based speed progression.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a run.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "wave" or "none"
	MaxAt int    `yaml:"max_at"` // wave at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // added to ball speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset returns the preset with the given name.
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(name); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	}
	return "", false
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.1
	case DifficultyHard:
		return 0.4
	default:
		return 0.0
	}
}
