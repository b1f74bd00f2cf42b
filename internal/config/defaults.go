package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/rogue.yaml
var defaultRogueYAML []byte

// DefaultYAML returns the embedded default tuning file.
func DefaultYAML() []byte {
	return defaultRogueYAML
}

// DefaultRogueConfig returns the hardcoded default tuning. It mirrors
// defaults/rogue.yaml and is used when the embedded file cannot be parsed.
func DefaultRogueConfig() RogueConfig {
	return RogueConfig{
		Field:  FieldConfig{Width: 480, Height: 800},
		Paddle: PaddleConfig{Width: 100, Height: 20, YOffset: 60, Speed: 800},
		Ball: BallConfig{
			Radius:            10,
			BaseSpeed:         400,
			MaxSpeed:          600,
			MinSpeed:          300,
			RallyAcceleration: 0.02,
			MaxBounceAngle:    60,
			MinHorizontal:     50,
		},
		Bricks: BricksConfig{
			Width:        52,
			Height:       24,
			Padding:      4,
			Top:          100,
			Side:         20,
			Cols:         8,
			BaseRows:     6,
			MaxRows:      10,
			WavesPerRow:  3,
			GapFraction:  0.1,
			FallDuration: 150 * time.Millisecond,
			MergeBonus:   0.5,
			MergeScore:   0.5,
			Kinds: BrickKinds{
				Normal:         BrickStats{HP: 1, Points: 10, CoinDrop: 1},
				Tough:          BrickStats{HP: 2, Points: 25, CoinDrop: 2},
				Tough3:         BrickStats{HP: 3, Points: 40, CoinDrop: 3},
				Explosive:      BrickStats{HP: 1, Points: 15, CoinDrop: 1},
				BombPurple:     BrickStats{HP: 1, Points: 30, CoinDrop: 2},
				BombRed:        BrickStats{HP: 1, Points: 30, CoinDrop: 2},
				BombGold:       BrickStats{HP: 1, Points: 40, CoinDrop: 3},
				Gold:           BrickStats{HP: 1, Points: 50, CoinDrop: 5},
				Mystery:        BrickStats{HP: 1, Points: 20, CoinDrop: 1},
				Indestructible: BrickStats{HP: -1},
			},
		},
		Spawn: SpawnConfig{
			Indestructible: SpawnBand{Base: 0.05, Max: 0.05, MinWave: 4, RowGate: RowGateCollapse},
			Tough3:         SpawnBand{Base: 0.05, PerWave: 0.02, Max: 0.2, MinWave: 5, RowGate: RowGateFallthrough},
			Tough:          SpawnBand{Base: 0.1, PerWave: 0.02, Max: 0.4, RowGate: RowGateFallthrough},
			Explosive:      SpawnBand{Base: 0.08, Max: 0.08, MinWave: 3},
			BombPurple:     SpawnBand{Base: 0.03, Max: 0.03, MinWave: 6},
			BombRed:        SpawnBand{Base: 0.03, Max: 0.03, MinWave: 8},
			BombGold:       SpawnBand{Base: 0.02, Max: 0.02, MinWave: 10},
			Gold:           SpawnBand{Base: 0.05, Max: 0.05},
			Mystery:        SpawnBand{Base: 0.05, Max: 0.05},
		},
		Gameplay: GameplayConfig{
			Lives:             3,
			StartingCoins:     0,
			GemsPerWave:       1,
			GemsPerBoss:       5,
			ShardsPerBoss:     1,
			BossInterval:      5,
			ComboPenalty:      10,
			TimePressure:      60 * time.Second,
			DescentSpeed:      10,
			WaveTransition:    1500 * time.Millisecond,
			PowerModeDuration: 10 * time.Second,
			Letters:           []string{"A", "T", "T", "A", "C", "K"},
			CoinFallSpeed:     200,
			PowerUpFallSpeed:  150,
		},
		Bombs: BombConfig{
			DefaultRadius:  80,
			PurpleRadius:   130,
			RedRadius:      100,
			GoldBonusCoins: 10,
		},
		PowerUps: PowerUpConfig{
			Wide:           15 * time.Second,
			Fireball:       10 * time.Second,
			Slow:           10 * time.Second,
			Magnet:         12 * time.Second,
			WideMultiplier: 1.4,
			PowerModeWide:  1.5,
			SlowFactor:     0.6,
			FireballDamage: 3,
			MagnetPull:     300,
			ExtraBallAngle: 45,
		},
		Shop: ShopConfig{ExtraBall: 30, Wide: 20, Fireball: 40, Slow: 25, Shield: 35, Magnet: 30},
		Upgrades: UpgradesConfig{
			StartingCoins: UpgradeTable{Costs: []int{5, 10, 15, 20, 30, 40, 50, 75, 100, 150}, Step: 5},
			PaddleSize:    UpgradeTable{Costs: []int{10, 25, 50, 100, 200}, Step: 0.05},
			BallSpeed:     UpgradeTable{Costs: []int{10, 25, 50, 100, 200}, Step: 0.03},
			CoinMult:      UpgradeTable{Costs: []int{5, 10, 20, 35, 50, 75, 100, 150, 200, 300}, Step: 0.1},
			ExtraLives:    UpgradeTable{Costs: []int{20, 75, 200}, Step: 1},
			CritChance:    UpgradeTable{Costs: []int{5, 10, 20, 35, 50, 75, 100, 150, 200, 300}, Step: 0.01},
			ShopDiscount:  UpgradeTable{Costs: []int{15, 40, 80, 150, 300}, Step: 0.05},
		},
		Prestige: PrestigeConfig{
			GoldenPaddle:     3,
			DoubleGems:       5,
			LuckyStart:       2,
			BossHunter:       4,
			GoldenMultiplier: 1.25,
			GemMultiplier:    2,
			BossMultiplier:   2,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression:  ProgressionConfig{Type: "wave", MaxAt: 20},
			Scaling:      ScalingConfig{SpeedMultiplier: 0.5},
		},
	}
}
