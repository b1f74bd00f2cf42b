package arena

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/brickrogue/internal/config"
	"github.com/vovakirdan/brickrogue/internal/games/rogue"
	"github.com/vovakirdan/brickrogue/internal/progress"
)

const tick = time.Second / 60

func newTestArena(t *testing.T) (*rogue.Run, *Arena, *rogue.Ball) {
	t.Helper()
	cfg := config.DefaultRogueConfig()
	cfg.Gameplay.Letters = nil
	r := rogue.NewRun(cfg, progress.DefaultSave(), 1)
	r.LoadLayout([]rogue.Placement{
		{Col: 0, Row: 0, Kind: rogue.BrickNormal},
		{Col: 7, Row: 0, Kind: rogue.BrickNormal},
	})
	r.Step(tick, rogue.Input{Launch: true}, nil)
	return r, New(cfg), r.Balls()[0]
}

func place(b *rogue.Ball, x, y, vx, vy float64) {
	b.X, b.Y, b.VX, b.VY = x, y, vx, vy
}

func kinds(events []rogue.Event) []rogue.EventKind {
	out := make([]rogue.EventKind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

func TestWallBounce(t *testing.T) {
	tests := []struct {
		name           string
		x, y, vx, vy   float64
		wantX, wantY   float64
		wantVX, wantVY float64
	}{
		{"left", 12, 400, -300, 0, 10, 400, 300, 0},
		{"right", 468, 400, 300, 0, 470, 400, -300, 0},
		{"top", 240, 12, 0, -300, 240, 10, 0, 300},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, a, b := newTestArena(t)
			place(b, tc.x, tc.y, tc.vx, tc.vy)

			if events := a.Advance(r, tick); len(events) != 0 {
				t.Fatalf("unexpected events %v", kinds(events))
			}
			if b.X != tc.wantX || b.Y != tc.wantY {
				t.Errorf("position = (%v, %v), want (%v, %v)", b.X, b.Y, tc.wantX, tc.wantY)
			}
			if b.VX != tc.wantVX || b.VY != tc.wantVY {
				t.Errorf("velocity = (%v, %v), want (%v, %v)", b.VX, b.VY, tc.wantVX, tc.wantVY)
			}
		})
	}
}

func TestBallExitsBottom(t *testing.T) {
	r, a, b := newTestArena(t)
	place(b, 20, 815, 0, 300)

	events := a.Advance(r, tick)
	if len(events) != 1 || events[0].Kind != rogue.EventBallExitedBottom || events[0].Ball != b.ID {
		t.Fatalf("events = %v, want one BallExitedBottom", kinds(events))
	}

	res := r.Step(tick, rogue.Input{}, events)
	if res.Lives != 2 {
		t.Errorf("Lives = %d, want 2", res.Lives)
	}
}

func TestPaddleHitOffset(t *testing.T) {
	r, a, b := newTestArena(t)
	paddle := r.Paddle()
	place(b, paddle.X+paddle.Width/4, paddle.Top()-b.Radius-1, 0, 300)

	events := a.Advance(r, tick)
	if len(events) != 1 || events[0].Kind != rogue.EventBallHitPaddle {
		t.Fatalf("events = %v, want one BallHitPaddle", kinds(events))
	}
	if math.Abs(events[0].Offset-0.5) > 1e-9 {
		t.Errorf("offset = %v, want 0.5", events[0].Offset)
	}
	if b.VY >= 0 {
		t.Error("ball should move up after the paddle")
	}

	r.Step(tick, rogue.Input{}, events)
	if b.RallyHits != 1 || b.VX <= 0 {
		t.Errorf("rally=%d vx=%v, want a rightward return", b.RallyHits, b.VX)
	}
}

func TestRisingBallIgnoresPaddle(t *testing.T) {
	r, a, b := newTestArena(t)
	paddle := r.Paddle()
	place(b, paddle.X, paddle.Y, 0, -300)

	for _, e := range a.Advance(r, tick) {
		if e.Kind == rogue.EventBallHitPaddle {
			t.Fatal("rising ball hit the paddle")
		}
	}
}

func TestBrickBounce(t *testing.T) {
	r, a, b := newTestArena(t)
	brick := r.Bricks()[0]
	place(b, brick.X, brick.Y+24, 0, -300)

	events := a.Advance(r, tick)
	if len(events) != 1 || events[0].Kind != rogue.EventBallHitBrick || events[0].Brick != brick.ID {
		t.Fatalf("events = %v, want one BallHitBrick", kinds(events))
	}
	if b.VY <= 0 {
		t.Errorf("VY = %v, ball should bounce down off the brick", b.VY)
	}
	if b.Y-b.Radius < brick.Y+12 {
		t.Errorf("ball still inside the brick at y=%v", b.Y)
	}
}

func TestFireballPassesThrough(t *testing.T) {
	r, a, b := newTestArena(t)
	brick := r.Bricks()[0]
	place(b, brick.X, brick.Y+24, 0, -300)
	b.Fireball = true

	events := a.Advance(r, tick)
	if len(events) != 1 || events[0].Kind != rogue.EventBallHitBrick {
		t.Fatalf("events = %v, want one BallHitBrick", kinds(events))
	}
	if b.VY >= 0 {
		t.Error("fireball should keep its direction")
	}

	// Still overlapping the same brick: no second hit.
	if events := a.Advance(r, tick); len(events) != 0 {
		t.Errorf("events = %v, want none while inside the brick", kinds(events))
	}
}

func TestDropCaughtAndMissed(t *testing.T) {
	r, a, b := newTestArena(t)
	r.Step(tick, rogue.Input{}, []rogue.Event{{Kind: rogue.EventBallHitBrick, Ball: b.ID, Brick: r.Bricks()[0].ID}})
	if len(r.Drops()) != 1 {
		t.Fatalf("drops = %d, want 1", len(r.Drops()))
	}
	place(b, 240, 400, 0, -300)

	coin := r.Drops()[0]
	paddle := r.Paddle()
	coin.X, coin.Y = paddle.X, paddle.Top()-DropSize/2-1

	events := a.Advance(r, tick)
	if len(events) != 1 || events[0].Kind != rogue.EventCoinReachedPaddle || events[0].Drop != coin.ID {
		t.Fatalf("events = %v, want one CoinReachedPaddle", kinds(events))
	}
	r.Step(tick, rogue.Input{}, events)
	if r.Coins() != 1 || len(r.Drops()) != 0 {
		t.Errorf("coins=%d drops=%d, want 1/0", r.Coins(), len(r.Drops()))
	}

	r.Step(tick, rogue.Input{}, []rogue.Event{{Kind: rogue.EventBallHitBrick, Ball: b.ID, Brick: r.Bricks()[0].ID}})
	if len(r.Drops()) != 1 {
		t.Fatalf("drops = %d, want 1", len(r.Drops()))
	}
	missed := r.Drops()[0]
	missed.X, missed.Y = 20, 810
	events = a.Advance(r, tick)
	if len(events) != 1 || events[0].Kind != rogue.EventDropExitedBottom {
		t.Fatalf("events = %v, want one DropExitedBottom", kinds(events))
	}
}

func TestMagnetPullsCoins(t *testing.T) {
	r, a, b := newTestArena(t)
	r.Step(tick, rogue.Input{}, []rogue.Event{{Kind: rogue.EventBallHitBrick, Ball: b.ID, Brick: r.Bricks()[0].ID}})
	place(b, 240, 400, 0, -300)
	coin := r.Drops()[0]
	coin.X, coin.Y = 50, 300

	a.Advance(r, tick)
	if math.Abs(coin.X-50) > 1e-9 {
		t.Fatalf("coin drifted to %v without a magnet", coin.X)
	}

	r.Registry().ActivateTemp(progress.EffectMagnet, time.Second)
	a.Advance(r, tick)
	if math.Abs(coin.X-55) > 1e-3 {
		t.Errorf("coin x = %v, want about 55", coin.X)
	}
}

func TestPausedArenaDoesNotMove(t *testing.T) {
	r, a, b := newTestArena(t)
	place(b, 240, 400, 0, -300)
	r.Step(tick, rogue.Input{Pause: true}, nil)

	if events := a.Advance(r, tick); events != nil {
		t.Errorf("events while paused: %v", kinds(events))
	}
	if b.Y != 400 {
		t.Errorf("ball moved while paused: y=%v", b.Y)
	}
}

func TestAutopilotLaunches(t *testing.T) {
	cfg := config.DefaultRogueConfig()
	r := rogue.NewRun(cfg, progress.DefaultSave(), 3)
	if in := Autopilot(r); !in.Launch {
		t.Error("autopilot should launch a resting ball")
	}

	r.Step(tick, rogue.Input{Launch: true}, nil)
	b := r.Balls()[0]
	place(b, 100, 500, 0, 300)
	in := Autopilot(r)
	if in.Launch || !in.HasPointer || in.PointerX != 100 {
		t.Errorf("input = %+v, want to follow the ball at x=100", in)
	}
}

func TestFullRunDeterminism(t *testing.T) {
	play := func() rogue.Snapshot {
		cfg := config.DefaultRogueConfig()
		r := rogue.NewRun(cfg, progress.DefaultSave(), 7)
		a := New(cfg)
		for range 1200 {
			switch r.State() {
			case rogue.StateShop:
				r.ContinueToNextWave()
			case rogue.StateGameOver:
				return r.Snapshot()
			}
			a.Tick(r, tick, Autopilot(r))
		}
		return r.Snapshot()
	}

	s1, s2 := play(), play()
	if s1.Hash() != s2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", s1.Hash(), s2.Hash())
	}
	if s1.Score == 0 {
		t.Error("autopilot scored nothing in 20 seconds")
	}
}
