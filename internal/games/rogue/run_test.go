package rogue

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/brickrogue/internal/config"
	"github.com/vovakirdan/brickrogue/internal/progress"
)

const tick = time.Second / 60

func testConfig() config.RogueConfig {
	cfg := config.DefaultRogueConfig()
	cfg.Gameplay.Letters = nil
	return cfg
}

func newTestRun(t *testing.T, cfg config.RogueConfig, save *progress.SaveState) *Run {
	t.Helper()
	if save == nil {
		save = progress.DefaultSave()
	}
	return NewRun(cfg, save, 42)
}

// launchBall launches the resting ball and returns it.
func launchBall(t *testing.T, r *Run) *Ball {
	t.Helper()
	r.Step(tick, Input{Launch: true}, nil)
	if len(r.Balls()) == 0 || !r.Balls()[0].Launched {
		t.Fatal("ball did not launch")
	}
	return r.Balls()[0]
}

func hit(b *Ball, brick *Brick) []Event {
	return []Event{{Kind: EventBallHitBrick, Ball: b.ID, Brick: brick.ID}}
}

func findBrick(t *testing.T, r *Run, col, row int) *Brick {
	t.Helper()
	for _, b := range r.Bricks() {
		if b.Col == col && b.Row == row {
			return b
		}
	}
	t.Fatalf("no brick at (%d, %d)", col, row)
	return nil
}

func TestRunStart(t *testing.T) {
	save := progress.DefaultSave()
	save.Upgrades["extraLives"] = 1
	save.Upgrades["startingCoins"] = 2
	r := newTestRun(t, testConfig(), save)

	if r.State() != StatePlaying || r.Wave() != 1 {
		t.Fatalf("state=%v wave=%d, want playing/1", r.State(), r.Wave())
	}
	if r.Lives() != 4 {
		t.Errorf("Lives = %d, want 4", r.Lives())
	}
	if r.Coins() != 10 {
		t.Errorf("Coins = %d, want 10", r.Coins())
	}
	if len(r.Balls()) != 1 || r.Balls()[0].Launched {
		t.Fatal("run should start with one resting ball")
	}
	if len(r.Bricks()) == 0 || r.BricksRemaining() == 0 {
		t.Error("wave 1 has no bricks")
	}
	if r.Balls()[0].Speed() != 0 {
		t.Error("resting ball should have zero velocity")
	}
}

func TestSingleBrickWave(t *testing.T) {
	r := newTestRun(t, testConfig(), nil)
	r.LoadLayout([]Placement{{Col: 0, Row: 0, Kind: BrickNormal}})
	b := launchBall(t, r)
	brick := r.Bricks()[0]

	res := r.Step(tick, Input{}, hit(b, brick))
	if res.Score != 10 {
		t.Errorf("Score = %d, want 10", res.Score)
	}
	if len(r.Drops()) != 1 || r.Drops()[0].Kind != DropCoin || r.Drops()[0].Value != 1 {
		t.Fatalf("expected one coin drop worth 1, got %+v", r.Drops())
	}
	if r.BricksRemaining() != 0 {
		t.Errorf("BricksRemaining = %d, want 0", r.BricksRemaining())
	}
	if !r.IsWaveComplete() {
		t.Error("wave should be complete")
	}
	if res.State != StateWaveCleared || !res.SaveRequested {
		t.Errorf("state=%v save=%v, want wave_cleared/true", res.State, res.SaveRequested)
	}
	if r.Gems() != 1 {
		t.Errorf("Gems = %d, want 1", r.Gems())
	}
	if r.Save().HighestWave != 1 || r.Save().TotalBricksDestroyed != 1 {
		t.Errorf("save stats highest=%d bricks=%d", r.Save().HighestWave, r.Save().TotalBricksDestroyed)
	}

	res = r.Step(testConfig().Gameplay.WaveTransition, Input{}, nil)
	if res.State != StateShop {
		t.Fatalf("state = %v, want shop", res.State)
	}
	if !r.ContinueToNextWave() {
		t.Fatal("ContinueToNextWave failed in the shop")
	}
	if r.Wave() != 2 || r.State() != StatePlaying || len(r.Drops()) != 0 {
		t.Errorf("wave=%d state=%v drops=%d", r.Wave(), r.State(), len(r.Drops()))
	}
}

func TestCoinCollection(t *testing.T) {
	r := newTestRun(t, testConfig(), nil)
	r.LoadLayout([]Placement{{Col: 0, Row: 0, Kind: BrickGold}, {Col: 5, Row: 0, Kind: BrickNormal}})
	b := launchBall(t, r)
	r.Step(tick, Input{}, hit(b, findBrick(t, r, 0, 0)))

	coin := r.Drops()[0]
	r.Step(tick, Input{}, []Event{{Kind: EventCoinReachedPaddle, Drop: coin.ID}})
	if r.Coins() != 5 {
		t.Errorf("Coins = %d, want 5", r.Coins())
	}
	if len(r.Drops()) != 0 {
		t.Error("collected coin still falling")
	}

	// A second report for the same coin is ignored.
	r.Step(tick, Input{}, []Event{{Kind: EventCoinReachedPaddle, Drop: coin.ID}})
	if r.Coins() != 5 {
		t.Errorf("coin collected twice: %d", r.Coins())
	}
}

func TestFallAndMergeInRun(t *testing.T) {
	cfg := testConfig()
	r := newTestRun(t, cfg, nil)
	r.LoadLayout([]Placement{
		{Col: 0, Row: 0, Kind: BrickNormal},
		{Col: 0, Row: 1, Kind: BrickNormal},
		{Col: 0, Row: 2, Kind: BrickNormal},
	})
	b := launchBall(t, r)

	r.Step(tick, Input{}, hit(b, findBrick(t, r, 0, 1)))
	if r.BricksRemaining() != 2 {
		t.Fatalf("BricksRemaining = %d, want 2", r.BricksRemaining())
	}
	if r.IsWaveComplete() {
		t.Fatal("wave complete during a fall")
	}

	res := r.Step(cfg.Bricks.FallDuration, Input{}, nil)
	if len(r.Bricks()) != 1 {
		t.Fatalf("%d bricks left, want 1", len(r.Bricks()))
	}
	merged := r.Bricks()[0]
	if merged.Row != 2 || merged.Level != 1 || merged.MaxHP != 2 {
		t.Errorf("row=%d level=%d maxHP=%d, want 2/1/2", merged.Row, merged.Level, merged.MaxHP)
	}
	if r.BricksRemaining() != 1 {
		t.Errorf("BricksRemaining = %d, want 1", r.BricksRemaining())
	}
	found := false
	for _, c := range res.Changes {
		if c.Kind == ChangeBrickMerged && c.ID == merged.ID {
			found = true
		}
	}
	if !found {
		t.Error("merge not reported")
	}

	// The merged brick pays out with its merge bonus.
	r.Step(tick, Input{}, hit(b, merged))
	r.Step(tick, Input{}, hit(b, merged))
	if r.State() != StateWaveCleared {
		t.Fatalf("state = %v, want wave_cleared", r.State())
	}
	// 10 for the first brick, floor(15 * 1.5) for the merged one.
	if r.Score() != 32 {
		t.Errorf("Score = %d, want 32", r.Score())
	}
}

func TestLoneExplosionDestroysNothing(t *testing.T) {
	r := newTestRun(t, testConfig(), nil)
	r.LoadLayout([]Placement{
		{Col: 0, Row: 0, Kind: BrickExplosive},
		{Col: 7, Row: 5, Kind: BrickNormal},
	})
	b := launchBall(t, r)

	res := r.Step(tick, Input{}, hit(b, findBrick(t, r, 0, 0)))
	if len(res.Explosions) != 1 {
		t.Fatalf("explosions = %d, want 1", len(res.Explosions))
	}
	ex := res.Explosions[0]
	if ex.Destroyed != 0 || ex.BonusCoins != 0 {
		t.Errorf("destroyed=%d bonus=%d, want 0/0", ex.Destroyed, ex.BonusCoins)
	}
	if len(r.Bricks()) != 1 || r.BricksRemaining() != 1 {
		t.Errorf("bricks=%d remaining=%d, want 1/1", len(r.Bricks()), r.BricksRemaining())
	}
}

func TestExplosionDoesNotChain(t *testing.T) {
	r := newTestRun(t, testConfig(), nil)
	r.LoadLayout([]Placement{
		{Col: 0, Row: 0, Kind: BrickExplosive},
		{Col: 1, Row: 0, Kind: BrickExplosive},
		{Col: 0, Row: 1, Kind: BrickTough},
		{Col: 3, Row: 0, Kind: BrickNormal},
	})
	b := launchBall(t, r)

	res := r.Step(tick, Input{}, hit(b, findBrick(t, r, 0, 0)))
	if len(res.Explosions) != 1 {
		t.Fatalf("explosions = %d, want 1 (no chain)", len(res.Explosions))
	}
	if res.Explosions[0].Destroyed != 1 {
		t.Errorf("destroyed = %d, want 1", res.Explosions[0].Destroyed)
	}
	tough := findBrick(t, r, 0, 1)
	if tough.HP != 1 {
		t.Errorf("tough HP = %d, want 1 after blast damage", tough.HP)
	}
	findBrick(t, r, 3, 0)
	if r.BricksRemaining() != 2 {
		t.Errorf("BricksRemaining = %d, want 2", r.BricksRemaining())
	}
}

func TestExplosionFallsCloseEveryGap(t *testing.T) {
	r := newTestRun(t, testConfig(), nil)
	r.LoadLayout([]Placement{
		{Col: 0, Row: 0, Kind: BrickTough3},
		{Col: 0, Row: 1, Kind: BrickNormal},
		{Col: 0, Row: 2, Kind: BrickExplosive},
		{Col: 0, Row: 3, Kind: BrickNormal},
		{Col: 0, Row: 4, Kind: BrickTough3},
		{Col: 7, Row: 5, Kind: BrickNormal},
	})
	top := findBrick(t, r, 0, 0)
	b := launchBall(t, r)

	res := r.Step(tick, Input{}, hit(b, findBrick(t, r, 0, 2)))
	if len(res.Explosions) != 1 || res.Explosions[0].Destroyed != 2 {
		t.Fatalf("explosions = %+v, want one destroying 2", res.Explosions)
	}
	for range 120 {
		r.Step(tick, Input{}, nil)
	}

	if r.grid.Busy() {
		t.Fatal("grid still busy after the falls")
	}
	var column []*Brick
	for _, br := range r.Bricks() {
		if br.Col == 0 {
			column = append(column, br)
		}
	}
	if len(column) != 1 {
		t.Fatalf("%d bricks left in column 0, want 1", len(column))
	}
	merged := column[0]
	if merged.Row != 4 || merged.Level != 1 || merged.Kind != BrickTough3 {
		t.Errorf("row=%d level=%d kind=%v, want 4/1/%v", merged.Row, merged.Level, merged.Kind, BrickTough3)
	}
	if r.grid.Get(top.ID) != nil {
		t.Error("top brick should have merged into the bottom one")
	}
	if r.BricksRemaining() != 2 {
		t.Errorf("BricksRemaining = %d, want 2", r.BricksRemaining())
	}
}

func TestCriticalHitDoublesDamageAndScore(t *testing.T) {
	tests := []struct {
		name      string
		critLevel int
		wantHP    int
		wantScore int
	}{
		{"no crit", 0, 1, 0},
		{"crit", 1, 0, 50}, // 2 x 25 points x combo 1
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Upgrades.CritChance = config.UpgradeTable{Costs: []int{1}, Step: 1}
			save := progress.DefaultSave()
			save.Upgrades[progress.UpgradeCritChance.Key()] = tt.critLevel
			r := newTestRun(t, cfg, save)
			r.LoadLayout([]Placement{
				{Col: 0, Row: 0, Kind: BrickTough},
				{Col: 7, Row: 5, Kind: BrickNormal},
			})
			tough := findBrick(t, r, 0, 0)
			b := launchBall(t, r)

			r.Step(tick, Input{}, hit(b, tough))

			if tough.HP != tt.wantHP {
				t.Errorf("tough HP = %d, want %d", tough.HP, tt.wantHP)
			}
			if got := r.grid.Get(tough.ID) == nil; got != (tt.wantHP == 0) {
				t.Errorf("destroyed = %v, want %v", got, tt.wantHP == 0)
			}
			if r.Score() != tt.wantScore {
				t.Errorf("Score = %d, want %d", r.Score(), tt.wantScore)
			}
		})
	}
}

func TestBallSpeedUpgradeKeepsCap(t *testing.T) {
	cfg := testConfig()
	save := progress.DefaultSave()
	save.Upgrades[progress.UpgradeBallSpeed.Key()] = 2
	r := newTestRun(t, cfg, save)
	b := launchBall(t, r)

	want := cfg.Ball.BaseSpeed * (1 - r.Registry().BallSpeedReduction())
	if r.Registry().BallSpeedReduction() <= 0 {
		t.Fatal("upgrade gave no reduction")
	}
	if math.Abs(b.BaseSpeed-want) > 1e-9 {
		t.Errorf("BaseSpeed = %v, want %v", b.BaseSpeed, want)
	}
	if b.MaxSpeed != cfg.Ball.MaxSpeed {
		t.Errorf("MaxSpeed = %v, want unreduced %v", b.MaxSpeed, cfg.Ball.MaxSpeed)
	}
}

func TestGoldBombBonusCoins(t *testing.T) {
	cfg := testConfig()
	r := newTestRun(t, cfg, nil)
	r.LoadLayout([]Placement{{Col: 0, Row: 0, Kind: BrickBombGold}, {Col: 7, Row: 5, Kind: BrickNormal}})
	b := launchBall(t, r)

	res := r.Step(tick, Input{}, hit(b, findBrick(t, r, 0, 0)))
	if res.Explosions[0].BonusCoins != cfg.Bombs.GoldBonusCoins {
		t.Errorf("bonus = %d, want %d", res.Explosions[0].BonusCoins, cfg.Bombs.GoldBonusCoins)
	}
	total := 0
	for _, d := range r.Drops() {
		total += d.Value
	}
	if total != cfg.Bricks.Kinds.BombGold.CoinDrop+cfg.Bombs.GoldBonusCoins {
		t.Errorf("coins dropped = %d", total)
	}
}

func TestIndestructibleBrickNotCounted(t *testing.T) {
	r := newTestRun(t, testConfig(), nil)
	r.LoadLayout([]Placement{
		{Col: 0, Row: 0, Kind: BrickIndestructible},
		{Col: 4, Row: 0, Kind: BrickNormal},
	})
	b := launchBall(t, r)
	if r.BricksRemaining() != 1 {
		t.Fatalf("BricksRemaining = %d, want 1", r.BricksRemaining())
	}

	r.Step(tick, Input{}, hit(b, findBrick(t, r, 0, 0)))
	if len(r.Bricks()) != 2 {
		t.Fatal("indestructible brick destroyed")
	}
	r.Step(tick, Input{}, hit(b, findBrick(t, r, 4, 0)))
	if r.State() != StateWaveCleared {
		t.Errorf("state = %v, want wave_cleared with only indestructible left", r.State())
	}
}

func TestComboScalesRewards(t *testing.T) {
	r := newTestRun(t, testConfig(), nil)
	var layout []Placement
	for col := range 8 {
		layout = append(layout, Placement{Col: col, Row: 0, Kind: BrickNormal})
		layout = append(layout, Placement{Col: col, Row: 2, Kind: BrickIndestructible})
	}
	r.LoadLayout(layout)
	b := launchBall(t, r)

	r.Step(tick, Input{}, []Event{{Kind: EventBallHitPaddle, Ball: b.ID}})
	for range 10 {
		r.Step(tick, Input{}, hit(b, findBrick(t, r, 0, 2)))
	}
	if r.Combo() != 10 || r.ComboMultiplier() != 1.5 {
		t.Fatalf("combo=%d mult=%v, want 10/1.5", r.Combo(), r.ComboMultiplier())
	}

	r.Step(tick, Input{}, hit(b, findBrick(t, r, 0, 0)))
	// The eleventh hit lands first, then pays 10 * 1.5.
	if r.Score() != 15 {
		t.Errorf("Score = %d, want 15", r.Score())
	}
	if r.Drops()[0].Value != 1 {
		t.Errorf("coin = %d, want floor(1 * 1.5) = 1", r.Drops()[0].Value)
	}
}

func TestPaddleHitAimsAndAccelerates(t *testing.T) {
	cfg := testConfig()
	r := newTestRun(t, cfg, nil)
	b := launchBall(t, r)

	r.Step(tick, Input{}, []Event{{Kind: EventBallHitPaddle, Ball: b.ID, Offset: 1}})
	if b.RallyHits != 1 {
		t.Errorf("RallyHits = %d, want 1", b.RallyHits)
	}
	want := cfg.Ball.BaseSpeed * (1 + cfg.Ball.RallyAcceleration)
	if math.Abs(b.Speed()-want) > 1e-6 {
		t.Errorf("speed = %v, want %v", b.Speed(), want)
	}
	if b.VY >= 0 || b.VX <= 0 {
		t.Errorf("ball should leave up and right, got v=(%v, %v)", b.VX, b.VY)
	}
	angle := math.Atan2(b.VX, -b.VY) * 180 / math.Pi
	if math.Abs(angle-cfg.Ball.MaxBounceAngle) > 1e-6 {
		t.Errorf("angle = %v, want %v", angle, cfg.Ball.MaxBounceAngle)
	}
}

func TestSlowMotionClampsToMinimum(t *testing.T) {
	cfg := testConfig()
	r := newTestRun(t, cfg, nil)
	b := launchBall(t, r)

	r.activatePowerUp(PowerSlow)
	r.Step(tick, Input{}, nil)
	want := max(cfg.Ball.BaseSpeed*cfg.PowerUps.SlowFactor, cfg.Ball.MinSpeed)
	if math.Abs(b.Speed()-want) > 1e-6 {
		t.Errorf("slowed speed = %v, want %v", b.Speed(), want)
	}

	r.Step(cfg.PowerUps.Slow, Input{}, nil)
	if math.Abs(b.Speed()-cfg.Ball.BaseSpeed) > 1e-6 {
		t.Errorf("speed after slow expired = %v, want %v", b.Speed(), cfg.Ball.BaseSpeed)
	}
}

func TestReactivationResetsTimer(t *testing.T) {
	cfg := testConfig()
	r := newTestRun(t, cfg, nil)
	launchBall(t, r)

	r.activatePowerUp(PowerWide)
	if r.Paddle().Width != r.Paddle().BaseWidth*cfg.PowerUps.WideMultiplier {
		t.Fatalf("paddle width = %v", r.Paddle().Width)
	}
	r.Step(5*time.Second, Input{}, nil)
	r.activatePowerUp(PowerWide)
	if got := r.EffectRemaining(progress.EffectWide); got != cfg.PowerUps.Wide {
		t.Errorf("remaining = %v, want %v", got, cfg.PowerUps.Wide)
	}

	r.Step(cfg.PowerUps.Wide, Input{}, nil)
	if r.Paddle().Width != r.Paddle().BaseWidth {
		t.Errorf("paddle width = %v after expiry, want %v", r.Paddle().Width, r.Paddle().BaseWidth)
	}
}

func TestBallLossCostsLives(t *testing.T) {
	r := newTestRun(t, testConfig(), nil)
	lives := r.Lives()

	for i := 1; i <= lives; i++ {
		b := launchBall(t, r)
		res := r.Step(tick, Input{}, []Event{{Kind: EventBallExitedBottom, Ball: b.ID}})
		if res.Lives != lives-i {
			t.Fatalf("loss %d: lives = %d, want %d", i, res.Lives, lives-i)
		}
		if i < lives {
			if len(r.Balls()) != 1 || r.Balls()[0].Launched {
				t.Fatalf("loss %d: expected a fresh resting ball", i)
			}
			continue
		}
		if res.State != StateGameOver || res.Summary == nil {
			t.Fatalf("expected game over with summary, got %v", res.State)
		}
		if res.Summary.Reason != ReasonLives {
			t.Errorf("reason = %q, want lives", res.Summary.Reason)
		}
	}

	if res := r.Step(tick, Input{}, nil); res.Summary != nil {
		t.Error("summary reported twice")
	}
	if r.Save().TotalRuns != 1 {
		t.Errorf("TotalRuns = %d, want 1", r.Save().TotalRuns)
	}
}

func TestShieldSavesLastBall(t *testing.T) {
	r := newTestRun(t, testConfig(), nil)
	b := launchBall(t, r)
	r.activatePowerUp(PowerShield)

	r.Step(tick, Input{}, []Event{{Kind: EventBallHitPaddle, Ball: b.ID}})
	res := r.Step(tick, Input{}, []Event{{Kind: EventBallExitedBottom, Ball: b.ID}})
	if res.Lives != testConfig().Gameplay.Lives {
		t.Errorf("lives = %d, shield should have saved the ball", res.Lives)
	}
	if r.Registry().HasTemp(progress.EffectShield) {
		t.Error("shield should be consumed")
	}
	if len(r.Balls()) != 1 {
		t.Errorf("balls = %d, want a respawned ball", len(r.Balls()))
	}
	if r.Combo() != 0 {
		t.Error("combo should reset when the last ball is lost")
	}
}

func TestExtraBallKeepsRunAlive(t *testing.T) {
	r := newTestRun(t, testConfig(), nil)
	b := launchBall(t, r)
	r.activatePowerUp(PowerExtraBall)
	if len(r.Balls()) != 2 {
		t.Fatalf("balls = %d, want 2", len(r.Balls()))
	}

	res := r.Step(tick, Input{}, []Event{{Kind: EventBallExitedBottom, Ball: b.ID}})
	if res.Lives != testConfig().Gameplay.Lives || len(r.Balls()) != 1 {
		t.Errorf("lives=%d balls=%d, losing one of two balls should cost nothing", res.Lives, len(r.Balls()))
	}
}

func TestPowerMode(t *testing.T) {
	cfg := testConfig()
	cfg.Gameplay.Letters = []string{"A", "B"}
	r := newTestRun(t, cfg, nil)
	r.LoadLayout([]Placement{
		{Col: 0, Row: 0, Kind: BrickNormal},
		{Col: 2, Row: 0, Kind: BrickNormal},
		{Col: 4, Row: 0, Kind: BrickNormal},
	})
	b := launchBall(t, r)

	var lettered []*Brick
	for _, brick := range r.Bricks() {
		if brick.Letter != NoLetter {
			lettered = append(lettered, brick)
		}
	}
	if len(lettered) != 2 {
		t.Fatalf("lettered bricks = %d, want 2", len(lettered))
	}

	r.Step(tick, Input{}, hit(b, lettered[0]))
	if r.PowerMode() {
		t.Fatal("power mode started with one letter")
	}
	r.Step(tick, Input{}, hit(b, lettered[1]))
	if !r.PowerMode() {
		t.Fatal("power mode did not start")
	}
	reg := r.Registry()
	for _, k := range []progress.EffectKind{progress.EffectWide, progress.EffectFireball, progress.EffectShield} {
		if !reg.HasTemp(k) {
			t.Errorf("%v not active in power mode", k)
		}
	}
	if r.Paddle().Width != r.Paddle().BaseWidth*cfg.PowerUps.PowerModeWide {
		t.Errorf("paddle width = %v", r.Paddle().Width)
	}

	// Use the shield, then let power mode run out.
	r.Step(tick, Input{}, []Event{{Kind: EventBallExitedBottom, Ball: b.ID}})
	if reg.HasTemp(progress.EffectShield) || r.Lives() != cfg.Gameplay.Lives {
		t.Fatal("shield should have saved the ball")
	}

	r.Step(cfg.Gameplay.PowerModeDuration, Input{}, nil)
	if r.PowerMode() {
		t.Error("power mode still running")
	}
	if reg.HasTemp(progress.EffectWide) || reg.HasTemp(progress.EffectFireball) {
		t.Error("wide paddle and fireball should revert")
	}
	if r.Paddle().Width != r.Paddle().BaseWidth {
		t.Errorf("paddle width = %v, want base", r.Paddle().Width)
	}
	for _, ball := range r.Balls() {
		if ball.Fireball {
			t.Error("ball still fireball")
		}
	}
}

func TestFireballDamage(t *testing.T) {
	r := newTestRun(t, testConfig(), nil)
	r.LoadLayout([]Placement{{Col: 0, Row: 0, Kind: BrickTough3}, {Col: 5, Row: 0, Kind: BrickNormal}})
	b := launchBall(t, r)
	r.activatePowerUp(PowerFireball)
	if !b.Fireball {
		t.Fatal("ball should be a fireball")
	}

	r.Step(tick, Input{}, hit(b, findBrick(t, r, 0, 0)))
	if len(r.Bricks()) != 1 {
		t.Error("fireball should destroy a 3 HP brick in one hit")
	}
}

func TestTimePressureOverrun(t *testing.T) {
	cfg := testConfig()
	cfg.Gameplay.TimePressure = time.Second
	cfg.Gameplay.DescentSpeed = 1000
	r := newTestRun(t, cfg, nil)
	r.LoadLayout([]Placement{{Col: 0, Row: 0, Kind: BrickNormal}})

	res := r.Step(500*time.Millisecond, Input{}, nil)
	if r.Pressure() || res.State != StatePlaying {
		t.Fatal("pressure started early")
	}

	res = r.Step(time.Second, Input{}, nil)
	if res.State != StateGameOver || res.Summary == nil || res.Summary.Reason != ReasonOverrun {
		t.Fatalf("state=%v summary=%+v, want overrun game over", res.State, res.Summary)
	}
	if res.Lives != r.Lives() || r.Lives() == 0 {
		t.Error("overrun should end the run regardless of lives")
	}
}

func TestPauseFreezesRun(t *testing.T) {
	cfg := testConfig()
	r := newTestRun(t, cfg, nil)
	b := launchBall(t, r)
	r.activatePowerUp(PowerWide)
	before := r.PressureIn()

	res := r.Step(tick, Input{Pause: true}, nil)
	if !res.Paused {
		t.Fatal("run should be paused")
	}
	r.Step(time.Minute, Input{}, []Event{{Kind: EventBallExitedBottom, Ball: b.ID}})
	if r.PressureIn() != before {
		t.Error("wave timer advanced while paused")
	}
	if r.EffectRemaining(progress.EffectWide) != cfg.PowerUps.Wide {
		t.Error("effect timer advanced while paused")
	}
	if len(r.Balls()) != 1 || r.Lives() != cfg.Gameplay.Lives {
		t.Error("events applied while paused")
	}

	res = r.Step(tick, Input{Pause: true}, nil)
	if res.Paused {
		t.Error("second toggle should resume")
	}
}

func TestShopPurchases(t *testing.T) {
	cfg := testConfig()
	save := progress.DefaultSave()
	save.Upgrades["shopDiscount"] = 2
	r := newTestRun(t, cfg, save)

	if r.BuyShopItem(PowerWide) {
		t.Fatal("purchase outside the shop succeeded")
	}

	r.LoadLayout([]Placement{{Col: 0, Row: 0, Kind: BrickNormal}})
	b := launchBall(t, r)
	r.Step(tick, Input{}, hit(b, r.Bricks()[0]))
	r.Step(cfg.Gameplay.WaveTransition, Input{}, nil)
	if r.State() != StateShop {
		t.Fatalf("state = %v, want shop", r.State())
	}

	if got := r.ShopPrice(PowerWide); got != 18 {
		t.Errorf("discounted price = %d, want 18", got)
	}
	coins := r.Coins()
	if r.BuyShopItem(PowerWide) {
		t.Fatal("unaffordable purchase succeeded")
	}
	if r.Coins() != coins {
		t.Fatal("failed purchase changed coins")
	}

	r.Ledger().AddCoins(100, 1)
	if !r.BuyShopItem(PowerWide) || r.Coins() != coins+100-18 {
		t.Fatalf("purchase failed or wrong change: coins=%d", r.Coins())
	}
	if !r.Registry().HasTemp(progress.EffectWide) {
		t.Error("wide paddle not active after purchase")
	}

	if !r.BuyShopItem(PowerExtraBall) || r.PendingBalls() != 1 {
		t.Fatal("extra ball purchase not queued")
	}
	r.ContinueToNextWave()
	if len(r.Balls()) != 1 {
		t.Fatalf("balls = %d before launch, want 1", len(r.Balls()))
	}
	r.Step(tick, Input{Launch: true}, nil)
	if len(r.Balls()) != 2 || r.PendingBalls() != 0 {
		t.Errorf("balls = %d after launch, want 2", len(r.Balls()))
	}
}

func TestBossWaveRewards(t *testing.T) {
	cfg := testConfig()
	cfg.Gameplay.BossInterval = 1
	save := progress.DefaultSave()
	save.Prestige["bossHunter"] = true
	r := newTestRun(t, cfg, save)
	r.LoadLayout([]Placement{{Col: 0, Row: 0, Kind: BrickNormal}})
	b := launchBall(t, r)

	r.Step(tick, Input{}, hit(b, r.Bricks()[0]))
	wantGems := int(float64(cfg.Gameplay.GemsPerBoss) * cfg.Prestige.BossMultiplier)
	if r.Gems() != wantGems {
		t.Errorf("Gems = %d, want %d", r.Gems(), wantGems)
	}
	if r.Shards() != cfg.Gameplay.ShardsPerBoss {
		t.Errorf("Shards = %d, want %d", r.Shards(), cfg.Gameplay.ShardsPerBoss)
	}
}

func TestLuckyStartGrantsShield(t *testing.T) {
	save := progress.DefaultSave()
	save.Prestige["luckyStart"] = true
	r := newTestRun(t, testConfig(), save)
	if !r.Registry().HasTemp(progress.EffectShield) {
		t.Error("lucky start should grant a shield")
	}
}

func TestEventsProcessedByKind(t *testing.T) {
	r := newTestRun(t, testConfig(), nil)
	r.LoadLayout([]Placement{{Col: 0, Row: 0, Kind: BrickNormal}, {Col: 5, Row: 0, Kind: BrickNormal}})
	b := launchBall(t, r)

	// The loss is listed first but resolves after the brick hit, so the
	// hit still counts.
	r.Step(tick, Input{}, []Event{
		{Kind: EventBallExitedBottom, Ball: b.ID},
		{Kind: EventBallHitBrick, Ball: b.ID, Brick: findBrick(t, r, 0, 0).ID},
	})
	if r.Score() != 10 {
		t.Errorf("Score = %d, want 10", r.Score())
	}
	if r.Lives() != testConfig().Gameplay.Lives-1 {
		t.Errorf("Lives = %d", r.Lives())
	}
}

func TestRunDeterminism(t *testing.T) {
	play := func() Snapshot {
		r := NewRun(config.DefaultRogueConfig(), progress.DefaultSave(), 12345)
		r.Step(tick, Input{Launch: true}, nil)
		for i := range 120 {
			in := Input{Move: 1}
			if i%3 == 0 {
				in.Move = -1
			}
			var events []Event
			if i%10 == 0 && len(r.Bricks()) > 0 {
				events = hit(r.Balls()[0], r.Bricks()[i%len(r.Bricks())])
			}
			r.Step(tick, in, events)
		}
		return r.Snapshot()
	}

	s1, s2 := play(), play()
	if s1.Hash() != s2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", s1.Hash(), s2.Hash())
	}
	if s1.Score != s2.Score || s1.BricksRemaining != s2.BricksRemaining {
		t.Errorf("Determinism failed: score %d/%d remaining %d/%d", s1.Score, s2.Score, s1.BricksRemaining, s2.BricksRemaining)
	}
}

func TestAbandonEndsRun(t *testing.T) {
	r := newTestRun(t, testConfig(), nil)
	res := r.Abandon()
	if res.State != StateGameOver || res.Summary == nil || res.Summary.Reason != ReasonQuit {
		t.Fatalf("got state=%v summary=%+v", res.State, res.Summary)
	}
	if !res.SaveRequested {
		t.Error("abandoning should request a save")
	}
}

func TestRestartResetsRun(t *testing.T) {
	r := newTestRun(t, testConfig(), nil)
	r.Abandon()
	r.Start()
	if r.State() != StatePlaying || r.Wave() != 1 || r.Score() != 0 {
		t.Errorf("restart left state=%v wave=%d score=%d", r.State(), r.Wave(), r.Score())
	}
}
