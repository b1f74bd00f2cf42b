// Package arena moves a run's balls and drops through the playfield and
// reports what they touched as rogue events. The run never moves anything
// itself; the arena is the physics half of every tick.
package arena

import (
	"math"
	"time"

	"github.com/vovakirdan/brickrogue/internal/config"
	"github.com/vovakirdan/brickrogue/internal/core"
	"github.com/vovakirdan/brickrogue/internal/games/rogue"
)

// DropSize is the side of a drop's square hit box in pixels.
const DropSize = 16

// Arena is the playfield physics for one run.
type Arena struct {
	width, height float64
	brickW        float64
	brickH        float64
	magnetPull    float64

	// Fireballs pass through bricks; a hit counts once per overlap.
	inside map[int]map[int]bool // ball id -> brick ids overlapped last substep
}

// New creates an arena for the given tuning.
func New(cfg config.RogueConfig) *Arena {
	return &Arena{
		width:      cfg.Field.Width,
		height:     cfg.Field.Height,
		brickW:     cfg.Bricks.Width,
		brickH:     cfg.Bricks.Height,
		magnetPull: cfg.PowerUps.MagnetPull,
		inside:     make(map[int]map[int]bool),
	}
}

// Tick advances the physics by dt and feeds the resulting events to the
// run in the same step.
func (a *Arena) Tick(r *rogue.Run, dt time.Duration, in rogue.Input) rogue.StepResult {
	return r.Step(dt, in, a.Advance(r, dt))
}

// Advance moves launched balls and falling drops by dt and returns the
// collisions in the order they happened. Nothing moves while the run is
// paused, in the shop, or over.
func (a *Arena) Advance(r *rogue.Run, dt time.Duration) []rogue.Event {
	if dt <= 0 || r.Paused() {
		return nil
	}
	if s := r.State(); s != rogue.StatePlaying && s != rogue.StateWaveCleared {
		return nil
	}

	a.prune(r.Balls())

	var events []rogue.Event
	paddle := r.Paddle()
	for _, b := range r.Balls() {
		if !b.Launched {
			continue
		}
		events = a.moveBall(b, paddle, r.Bricks(), dt, events)
	}
	for _, d := range r.Drops() {
		events = a.moveDrop(d, paddle, r.MagnetActive(), dt, events)
	}
	return events
}

// prune forgets overlap state of balls that left play.
func (a *Arena) prune(balls []*rogue.Ball) {
	alive := make(map[int]bool, len(balls))
	for _, b := range balls {
		alive[b.ID] = true
	}
	for id := range a.inside {
		if !alive[id] {
			delete(a.inside, id)
		}
	}
}

// moveBall integrates one ball in substeps no longer than its radius so
// fast balls cannot tunnel through a brick.
func (a *Arena) moveBall(b *rogue.Ball, paddle rogue.Paddle, bricks []*rogue.Brick, dt time.Duration, events []rogue.Event) []rogue.Event {
	secs := dt.Seconds()
	dist := b.Speed() * secs
	steps := 1
	if b.Radius > 0 && dist > b.Radius {
		steps = int(math.Ceil(dist / b.Radius))
	}
	sub := secs / float64(steps)

	for range steps {
		b.X += b.VX * sub
		b.Y += b.VY * sub

		if _, fell := CheckWallCollision(b, a.width, a.height); fell {
			delete(a.inside, b.ID)
			return append(events, rogue.Event{Kind: rogue.EventBallExitedBottom, Ball: b.ID})
		}
		if offset, ok := CheckPaddleCollision(b, paddle); ok {
			events = append(events, rogue.Event{Kind: rogue.EventBallHitPaddle, Ball: b.ID, Offset: offset})
		}
		events = a.collideBricks(b, bricks, events)
	}
	return events
}

func (a *Arena) collideBricks(b *rogue.Ball, bricks []*rogue.Brick, events []rogue.Event) []rogue.Event {
	prev := a.inside[b.ID]
	var now map[int]bool

	for _, br := range bricks {
		box := a.brickBox(br)
		side := CheckBrickCollision(b, box)
		if side == CollisionNone {
			continue
		}
		if b.Fireball && !br.Indestructible() {
			if now == nil {
				now = make(map[int]bool)
			}
			now[br.ID] = true
			if !prev[br.ID] {
				events = append(events, rogue.Event{Kind: rogue.EventBallHitBrick, Ball: b.ID, Brick: br.ID})
			}
			continue
		}
		// One bounce per substep, like a real ball.
		ApplyCollisionBounce(b, box, side)
		events = append(events, rogue.Event{Kind: rogue.EventBallHitBrick, Ball: b.ID, Brick: br.ID})
		break
	}

	if now == nil {
		delete(a.inside, b.ID)
	} else {
		a.inside[b.ID] = now
	}
	return events
}

func (a *Arena) brickBox(b *rogue.Brick) core.Box {
	return core.Box{CX: b.X, CY: b.Y, W: a.brickW, H: a.brickH}
}

// moveDrop lets a drop fall, pulling coins towards the paddle under the
// magnet.
func (a *Arena) moveDrop(d *rogue.Drop, paddle rogue.Paddle, magnet bool, dt time.Duration, events []rogue.Event) []rogue.Event {
	secs := dt.Seconds()
	if magnet && d.Kind == rogue.DropCoin {
		step := a.magnetPull * secs
		d.X += core.ClampF(paddle.X-d.X, -step, step)
	}
	d.X += d.VX * secs
	d.Y += d.VY * secs

	box := core.Box{CX: d.X, CY: d.Y, W: DropSize, H: DropSize}
	if box.Intersects(paddle.Box()) {
		kind := rogue.EventCoinReachedPaddle
		if d.Kind == rogue.DropPowerUp {
			kind = rogue.EventPowerUpReachedPaddle
		}
		return append(events, rogue.Event{Kind: kind, Drop: d.ID})
	}
	if box.Top() > a.height {
		return append(events, rogue.Event{Kind: rogue.EventDropExitedBottom, Drop: d.ID})
	}
	return events
}
