package rogue

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/brickrogue/internal/config"
	"github.com/vovakirdan/brickrogue/internal/core"
	"github.com/vovakirdan/brickrogue/internal/progress"
)

// paddleSmoothing is the fraction of the distance to the pointer the
// paddle covers each tick.
const paddleSmoothing = 0.3

// restGap is the space between a resting ball and the paddle.
const restGap = 2

// State is the run's top-level state.
type State int

const (
	StatePlaying     State = iota // ball in play
	StateWaveCleared              // wave done, waiting for the shop
	StateShop                     // between waves
	StateGameOver                 // run finished
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateWaveCleared:
		return "wave_cleared"
	case StateShop:
		return "shop"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// EndReason says why a run ended.
type EndReason string

const (
	ReasonNone    EndReason = ""
	ReasonLives   EndReason = "lives"   // last life lost
	ReasonOverrun EndReason = "overrun" // bricks reached the paddle
	ReasonQuit    EndReason = "quit"    // player abandoned the run
)

// Input is the player's intent for one tick.
type Input struct {
	PointerX   float64
	HasPointer bool
	Move       int // -1 left, 1 right, keyboard movement
	Launch     bool
	Pause      bool // toggles pause
}

// RunSummary is reported once when a run ends.
type RunSummary struct {
	Score           int
	Wave            int
	Coins           int // coins collected during the run
	Gems            int // gems earned during the run
	Shards          int
	BricksDestroyed int
	Reason          EndReason
	Duration        time.Duration
}

// StepResult is what one Step produced.
type StepResult struct {
	State         State
	Paused        bool
	Score         int
	Lives         int
	Wave          int
	Coins         int
	Changes       []Change
	Explosions    []Explosion
	SaveRequested bool
	Summary       *RunSummary
}

// Run is one play session: balls, lives, waves, drops and rewards.
// It is single-threaded; the front end calls Step once per tick with the
// collision events the arena reported.
type Run struct {
	cfg        config.RogueConfig
	save       *progress.SaveState
	ledger     *progress.Ledger
	registry   *progress.Registry
	difficulty *config.DifficultyManager
	rng        *RNG
	sched      *Scheduler
	waves      *WaveGenerator
	grid       *Grid
	combo      *Combo
	logger     *log.Logger

	paddle     Paddle
	balls      []*Ball
	drops      []*Drop
	nextBallID int
	nextDropID int

	state     State
	paused    bool
	reason    EndReason
	score     int
	lives     int
	waveTimer time.Duration
	pressure  bool
	elapsed   time.Duration

	letters      []bool
	powerMode    bool
	pendingBalls int // extra balls bought in the shop

	coinsEarned     int
	gemsEarned      int
	shardsEarned    int
	bricksDestroyed int
	summarized      bool

	// Per-step output.
	changes       []Change
	explosions    []Explosion
	saveRequested bool
}

// NewRun creates a run over the given save record and starts it.
// The record is mutated in place; persist it when a step requests a save.
func NewRun(cfg config.RogueConfig, save *progress.SaveState, seed int64) *Run {
	if save == nil {
		save = progress.DefaultSave()
	}
	rng := NewRNG(seed)
	sched := NewScheduler()
	r := &Run{
		cfg:        cfg,
		save:       save,
		ledger:     progress.NewLedger(save),
		registry:   progress.NewRegistry(cfg, save),
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		rng:        rng,
		sched:      sched,
		waves:      NewWaveGenerator(cfg, rng),
		grid:       NewGrid(cfg.Bricks, sched),
		combo:      NewCombo(cfg.Gameplay.ComboPenalty),
		logger:     log.New(io.Discard),
	}
	r.grid.OnMerge = r.onMerge
	r.grid.OnSettle = r.checkWaveComplete
	r.Start()
	return r
}

// SetLogger sets the logger used for run milestones.
func (r *Run) SetLogger(l *log.Logger) {
	if l != nil {
		r.logger = l
	}
}

// Start resets run-scoped state and begins wave 1.
func (r *Run) Start() {
	r.sched.Reset()
	r.registry.ResetTemp()
	r.ledger.StartRun(r.cfg.Gameplay.StartingCoins + r.registry.StartingCoinsBonus())
	r.combo.Reset()
	r.waves.Reset()

	r.state = StatePlaying
	r.paused = false
	r.reason = ReasonNone
	r.score = 0
	r.lives = r.cfg.Gameplay.Lives + r.registry.ExtraLives()
	r.elapsed = 0
	r.powerMode = false
	r.pendingBalls = 0
	r.coinsEarned, r.gemsEarned, r.shardsEarned = 0, 0, 0
	r.bricksDestroyed = 0
	r.summarized = false
	r.balls = nil
	r.drops = nil

	r.paddle = Paddle{
		X:         r.cfg.Field.Width / 2,
		Y:         r.cfg.Field.Height - r.cfg.Paddle.YOffset,
		Height:    r.cfg.Paddle.Height,
		BaseWidth: r.cfg.Paddle.Width * r.registry.PaddleSizeMultiplier(),
	}
	r.paddle.Width = r.paddle.BaseWidth

	if r.registry.HasPrestige(progress.PrestigeLuckyStart) {
		r.registry.ActivateTemp(progress.EffectShield, 0)
	}

	r.startNextWave()
	r.logger.Info("Run started", "lives", r.lives, "coins", r.ledger.Coins())
}

// Step advances the run by dt. Events are the collisions the arena saw
// during the same tick.
func (r *Run) Step(dt time.Duration, in Input, events []Event) StepResult {
	r.changes = nil
	r.explosions = nil
	r.saveRequested = false

	if in.Pause && (r.state == StatePlaying || r.state == StateWaveCleared) {
		r.paused = !r.paused
	}
	if r.paused || dt < 0 {
		return r.result()
	}

	switch r.state {
	case StatePlaying:
		r.elapsed += dt
		r.movePaddle(dt, in)
		if in.Launch {
			r.launch()
		}
		r.applyEvents(events)
		if r.state == StateGameOver {
			break
		}
		for _, k := range r.registry.AdvanceTemp(dt) {
			r.onEffectExpired(k)
		}
		r.sched.Advance(dt)
		if r.state == StatePlaying {
			r.advancePressure(dt)
		}
		r.grid.Refresh()
		r.updateBalls()
	case StateWaveCleared:
		r.elapsed += dt
		r.movePaddle(dt, in)
		r.sched.Advance(dt)
		r.updateBalls()
	}
	return r.result()
}

// Abandon ends the run early, as when the player quits mid-run.
func (r *Run) Abandon() StepResult {
	r.changes = nil
	r.explosions = nil
	r.saveRequested = false
	r.endRun(ReasonQuit)
	return r.result()
}

func (r *Run) result() StepResult {
	res := StepResult{
		State:         r.state,
		Paused:        r.paused,
		Score:         r.score,
		Lives:         r.lives,
		Wave:          r.waves.Wave(),
		Coins:         r.ledger.Coins(),
		Changes:       r.changes,
		Explosions:    r.explosions,
		SaveRequested: r.saveRequested,
	}
	if r.state == StateGameOver && !r.summarized {
		r.summarized = true
		s := r.Summary()
		res.Summary = &s
	}
	return res
}

// Summary returns the run totals so far.
func (r *Run) Summary() RunSummary {
	return RunSummary{
		Score:           r.score,
		Wave:            r.waves.Wave(),
		Coins:           r.coinsEarned,
		Gems:            r.gemsEarned,
		Shards:          r.shardsEarned,
		BricksDestroyed: r.bricksDestroyed,
		Reason:          r.reason,
		Duration:        r.elapsed,
	}
}

func (r *Run) emit(c Change) {
	r.changes = append(r.changes, c)
}

// applyEvents processes a tick's collisions grouped by kind, brick hits
// first, ball losses last.
func (r *Run) applyEvents(events []Event) {
	evs := append([]Event(nil), events...)
	SortEvents(evs)
	for _, e := range evs {
		if r.state == StateGameOver {
			return
		}
		switch e.Kind {
		case EventBallHitBrick:
			r.ballHitBrick(e.Ball, e.Brick)
		case EventBallHitPaddle:
			r.ballHitPaddle(e.Ball, e.Offset)
		case EventCoinReachedPaddle:
			r.collectCoin(e.Drop)
		case EventPowerUpReachedPaddle:
			r.collectPowerUp(e.Drop)
		case EventDropExitedBottom:
			r.missDrop(e.Drop)
		case EventBallExitedBottom:
			if r.state == StatePlaying {
				r.loseBall(e.Ball)
			}
		}
	}
}

// startNextWave advances the wave number and builds its bricks.
func (r *Run) startNextWave() {
	wave := r.waves.NextWave()
	r.waveTimer = 0
	r.pressure = false

	r.grid.Load(r.waves.GenerateLayout(wave))
	r.assignLetters()

	mult := r.waveMultiplier()
	for _, b := range r.balls {
		b.WaveMultiplier = mult
	}
	if len(r.balls) == 0 {
		r.spawnBall()
	}

	r.emit(Change{Kind: ChangeWaveStarted, Value: wave})
	r.logger.Debug("Wave started", "wave", wave, "bricks", r.waves.Remaining(), "boss", r.waves.IsBossWave())
}

// LoadLayout replaces the current wave's bricks with a fixed layout.
func (r *Run) LoadLayout(layout []Placement) {
	r.grid.Load(layout)
	r.waves.SetRemaining(CountDestructible(layout))
	r.assignLetters()
	r.waveTimer = 0
	r.pressure = false
}

// IsWaveComplete reports whether every destructible brick is gone and no
// fall batch is in flight.
func (r *Run) IsWaveComplete() bool {
	return r.waves.Remaining() <= 0 && !r.grid.Busy()
}

func (r *Run) checkWaveComplete() {
	if r.state != StatePlaying || !r.IsWaveComplete() {
		return
	}
	r.completeWave()
}

func (r *Run) completeWave() {
	wave := r.waves.Wave()
	mult := r.registry.GemMultiplier()
	if r.waves.IsBossWave() {
		mult *= r.registry.BossGemMultiplier()
	}
	gems := r.ledger.AddGems(r.waves.GemsForWave(), mult)
	shards := r.ledger.AddShards(r.waves.ShardsForWave())
	r.gemsEarned += gems
	r.shardsEarned += shards
	r.save.RecordWave(wave)

	r.state = StateWaveCleared
	r.saveRequested = true
	r.emit(Change{Kind: ChangeWaveCleared, Value: wave})
	r.logger.Info("Wave cleared", "wave", wave, "gems", gems, "shards", shards, "score", r.score)

	r.sched.After(r.cfg.Gameplay.WaveTransition, func() {
		if r.state == StateWaveCleared {
			r.state = StateShop
		}
	})
}

// ContinueToNextWave leaves the shop with a fresh ball and starts the
// next wave. It reports false outside the shop.
func (r *Run) ContinueToNextWave() bool {
	if r.state != StateShop {
		return false
	}
	for _, b := range r.balls {
		r.emit(Change{Kind: ChangeBallRemoved, ID: b.ID, X: b.X, Y: b.Y})
	}
	r.balls = nil
	r.clearDrops()
	r.state = StatePlaying
	r.startNextWave()
	return true
}

func (r *Run) endRun(reason EndReason) {
	if r.state == StateGameOver {
		return
	}
	r.state = StateGameOver
	r.paused = false
	r.reason = reason
	r.save.TotalRuns++
	r.saveRequested = true
	r.logger.Info("Run over", "reason", string(reason), "wave", r.waves.Wave(), "score", r.score)
}

// advancePressure runs the wave timer and, once it passes the threshold,
// lowers the bricks. Bricks reaching the paddle end the run.
func (r *Run) advancePressure(dt time.Duration) {
	r.waveTimer += dt
	limit := r.cfg.Gameplay.TimePressure
	if !r.pressure && limit > 0 && r.waveTimer >= limit {
		r.pressure = true
		r.emit(Change{Kind: ChangeTimePressure, Value: r.waves.Wave()})
		r.logger.Debug("Time pressure", "wave", r.waves.Wave())
	}
	if !r.pressure {
		return
	}
	r.grid.Descend(r.cfg.Gameplay.DescentSpeed * dt.Seconds())
	if len(r.grid.Bricks()) > 0 && r.grid.LowestEdge() >= r.paddle.Top() {
		r.endRun(ReasonOverrun)
	}
}

func (r *Run) movePaddle(dt time.Duration, in Input) {
	target := r.paddle.X
	switch {
	case in.HasPointer:
		target = in.PointerX
	case in.Move != 0:
		target += float64(core.Clamp(in.Move, -1, 1)) * r.cfg.Paddle.Speed * dt.Seconds()
	}
	half := r.paddle.Width / 2
	target = core.ClampF(target, half, r.cfg.Field.Width-half)
	if in.HasPointer {
		r.paddle.X += (target - r.paddle.X) * paddleSmoothing
	} else {
		r.paddle.X = target
	}
}

// Getters for the front end.

// State returns the run state.
func (r *Run) State() State { return r.state }

// Paused reports whether the run is paused.
func (r *Run) Paused() bool { return r.paused }

// Score returns the run score.
func (r *Run) Score() int { return r.score }

// Lives returns the remaining lives.
func (r *Run) Lives() int { return r.lives }

// Wave returns the current wave number.
func (r *Run) Wave() int { return r.waves.Wave() }

// IsBossWave reports whether the current wave is a boss wave.
func (r *Run) IsBossWave() bool { return r.waves.IsBossWave() }

// BricksRemaining returns the destructible bricks left in the wave.
func (r *Run) BricksRemaining() int { return r.waves.Remaining() }

// Coins returns the run's coin balance.
func (r *Run) Coins() int { return r.ledger.Coins() }

// Gems returns the permanent gem balance.
func (r *Run) Gems() int { return r.ledger.Gems() }

// Shards returns the permanent shard balance.
func (r *Run) Shards() int { return r.ledger.Shards() }

// Combo returns the current combo count.
func (r *Run) Combo() int { return r.combo.Count }

// ComboMultiplier returns the current combo reward multiplier.
func (r *Run) ComboMultiplier() float64 { return r.combo.Multiplier() }

// Paddle returns a copy of the paddle.
func (r *Run) Paddle() Paddle { return r.paddle }

// Balls returns the balls in play. The arena moves them in place.
func (r *Run) Balls() []*Ball { return r.balls }

// Bricks returns the active bricks.
func (r *Run) Bricks() []*Brick { return r.grid.Bricks() }

// Drops returns the falling coins and power-ups. The arena moves them.
func (r *Run) Drops() []*Drop { return r.drops }

// Pressure reports whether time pressure is active.
func (r *Run) Pressure() bool { return r.pressure }

// PressureIn returns the time left before time pressure starts.
func (r *Run) PressureIn() time.Duration {
	return max(r.cfg.Gameplay.TimePressure-r.waveTimer, 0)
}

// MagnetActive reports whether coins are pulled towards the paddle.
func (r *Run) MagnetActive() bool { return r.registry.HasTemp(progress.EffectMagnet) }

// Effects lists active temporary effects.
func (r *Run) Effects() []progress.EffectKind { return r.registry.ActiveTemps() }

// EffectRemaining returns the time left on a timed effect.
func (r *Run) EffectRemaining(k progress.EffectKind) time.Duration {
	return r.registry.TempRemaining(k)
}

// Registry returns the upgrade registry backing the run.
func (r *Run) Registry() *progress.Registry { return r.registry }

// Ledger returns the currency ledger backing the run.
func (r *Run) Ledger() *progress.Ledger { return r.ledger }

// Save returns the save record the run mutates.
func (r *Run) Save() *progress.SaveState { return r.save }

// Config returns the run's tuning.
func (r *Run) Config() config.RogueConfig { return r.cfg }
