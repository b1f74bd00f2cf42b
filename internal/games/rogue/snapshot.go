package rogue

import "math"

// Snapshot is a flat view of the run for determinism checks.
// Uses primitive types only.
type Snapshot struct {
	Tick            uint64 // scheduler clock in nanoseconds
	State           int
	Score           int
	Lives           int
	Wave            int
	Coins           int
	Combo           int
	BricksRemaining int
	PaddleX         int
	PaddleWidth     int
	Offset          int

	// Each ball is 6 ints: ID, X, Y, VX, VY, Launched.
	BallData []int
	// Each brick is 6 ints: ID, Kind, HP, Col, Row, Level.
	BrickData []int
	// Each drop is 4 ints: ID, Kind, Y, Value.
	DropData []int

	RNGState uint64
}

// Snapshot returns the current run state. Positions are rounded to
// whole pixels.
func (r *Run) Snapshot() Snapshot {
	ballData := make([]int, 0, len(r.balls)*6)
	for _, b := range r.balls {
		ballData = append(ballData, b.ID, px(b.X), px(b.Y), px(b.VX), px(b.VY), boolInt(b.Launched))
	}

	bricks := r.grid.Bricks()
	brickData := make([]int, 0, len(bricks)*6)
	for _, b := range bricks {
		brickData = append(brickData, b.ID, int(b.Kind), b.HP, b.Col, b.Row, b.Level)
	}

	dropData := make([]int, 0, len(r.drops)*4)
	for _, d := range r.drops {
		dropData = append(dropData, d.ID, int(d.Kind), px(d.Y), d.Value)
	}

	return Snapshot{
		Tick:            uint64(r.sched.Now()), //#nosec G115 -- clock never runs backwards
		State:           int(r.state),
		Score:           r.score,
		Lives:           r.lives,
		Wave:            r.waves.Wave(),
		Coins:           r.ledger.Coins(),
		Combo:           r.combo.Count,
		BricksRemaining: r.waves.Remaining(),
		PaddleX:         px(r.paddle.X),
		PaddleWidth:     px(r.paddle.Width),
		Offset:          px(r.grid.Offset()),
		BallData:        ballData,
		BrickData:       brickData,
		DropData:        dropData,
		RNGState:        r.rng.State(),
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.State)           //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)           //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives)           //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Wave)            //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Coins)           //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Combo)           //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BricksRemaining) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PaddleX)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PaddleWidth)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Offset)          //#nosec G115 -- hash computation

	for _, v := range snap.BallData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.BrickData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.DropData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	h = h*31 + snap.RNGState
	return h
}

func px(v float64) int {
	return int(math.Round(v))
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
