package rogue

import (
	"math"

	"github.com/vovakirdan/brickrogue/internal/config"
)

// Placement is one generated brick position.
type Placement struct {
	Col, Row int
	Kind     BrickKind
}

// WaveGenerator numbers waves and builds their brick layouts.
type WaveGenerator struct {
	bricks    config.BricksConfig
	spawn     config.SpawnConfig
	gameplay  config.GameplayConfig
	rng       *RNG
	wave      int
	remaining int
}

// NewWaveGenerator creates a generator at wave 0.
func NewWaveGenerator(cfg config.RogueConfig, rng *RNG) *WaveGenerator {
	return &WaveGenerator{
		bricks:   cfg.Bricks,
		spawn:    cfg.Spawn,
		gameplay: cfg.Gameplay,
		rng:      rng,
	}
}

// Reset returns to wave 0.
func (w *WaveGenerator) Reset() {
	w.wave = 0
	w.remaining = 0
}

// NextWave advances the wave number and returns it.
func (w *WaveGenerator) NextWave() int {
	w.wave++
	return w.wave
}

// Wave returns the current wave number.
func (w *WaveGenerator) Wave() int {
	return w.wave
}

// IsBossWave reports whether the current wave is a boss wave.
func (w *WaveGenerator) IsBossWave() bool {
	return IsBossWave(w.wave, w.gameplay.BossInterval)
}

// IsBossWave reports whether a wave number is a boss wave.
func IsBossWave(wave, interval int) bool {
	return wave > 0 && interval > 0 && wave%interval == 0
}

// Rows returns the number of brick rows for a wave.
func (w *WaveGenerator) Rows(wave int) int {
	per := max(w.bricks.WavesPerRow, 1)
	return min(w.bricks.BaseRows+wave/per, w.bricks.MaxRows)
}

// GenerateLayout builds the layout for a wave and resets the remaining
// counter to its destructible bricks.
func (w *WaveGenerator) GenerateLayout(wave int) []Placement {
	rows := w.Rows(wave)
	layout := make([]Placement, 0, rows*w.bricks.Cols)
	for row := 0; row < rows; row++ {
		for col := 0; col < w.bricks.Cols; col++ {
			kind := SelectKind(w.spawn, wave, row, rows, w.rng.Float64())
			layout = append(layout, Placement{Col: col, Row: row, Kind: kind})
		}
	}

	// Gaps are cut from the finished grid.
	gaps := int(math.Floor(float64(len(layout)) * w.bricks.GapFraction))
	for i := 0; i < gaps && len(layout) > 0; i++ {
		idx := w.rng.Intn(len(layout))
		layout = append(layout[:idx], layout[idx+1:]...)
	}

	w.remaining = CountDestructible(layout)
	return layout
}

// CountDestructible counts placements that must be cleared.
func CountDestructible(layout []Placement) int {
	n := 0
	for _, p := range layout {
		if p.Kind != BrickIndestructible {
			n++
		}
	}
	return n
}

// SetRemaining overrides the remaining counter for hand-built layouts.
func (w *WaveGenerator) SetRemaining(n int) {
	w.remaining = n
}

// BrickDestroyed decrements the remaining counter and returns it.
func (w *WaveGenerator) BrickDestroyed() int {
	w.remaining--
	return w.remaining
}

// Remaining returns the destructible bricks left in the wave.
func (w *WaveGenerator) Remaining() int {
	return w.remaining
}

// GemsForWave returns the gem reward for clearing the current wave.
func (w *WaveGenerator) GemsForWave() int {
	if w.IsBossWave() {
		return w.gameplay.GemsPerBoss
	}
	return w.gameplay.GemsPerWave
}

// ShardsForWave returns the shard reward for clearing the current wave.
func (w *WaveGenerator) ShardsForWave() int {
	if w.IsBossWave() {
		return w.gameplay.ShardsPerBoss
	}
	return 0
}

type kindBand struct {
	kind BrickKind
	band config.SpawnBand
}

func spawnBands(s config.SpawnConfig) []kindBand {
	return []kindBand{
		{BrickIndestructible, s.Indestructible},
		{BrickTough3, s.Tough3},
		{BrickTough, s.Tough},
		{BrickExplosive, s.Explosive},
		{BrickBombPurple, s.BombPurple},
		{BrickBombRed, s.BombRed},
		{BrickBombGold, s.BombGold},
		{BrickGold, s.Gold},
		{BrickMystery, s.Mystery},
	}
}

// SelectKind resolves one roll in [0,1) against the cumulative spawn
// bands. Outside the top half of the rows a "collapse" band has no width
// and a "fallthrough" band keeps its width without resolving, so rolls
// landing in it go to the next band that does resolve.
func SelectKind(spawn config.SpawnConfig, wave, row, totalRows int, roll float64) BrickKind {
	topHalf := float64(row) < float64(totalRows)/2
	cumulative := 0.0
	for _, kb := range spawnBands(spawn) {
		gate := kb.band.RowGate
		if gate == config.RowGateCollapse && !topHalf {
			continue
		}
		cumulative += kb.band.Chance(wave)
		if roll < cumulative && (topHalf || gate != config.RowGateFallthrough) {
			return kb.kind
		}
	}
	return BrickNormal
}
