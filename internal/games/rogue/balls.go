package rogue

import (
	"math"

	"github.com/vovakirdan/brickrogue/internal/core"
	"github.com/vovakirdan/brickrogue/internal/progress"
)

// launchAngle bounds the random launch direction, in degrees from vertical.
const launchAngle = 60

func (r *Run) waveMultiplier() float64 {
	return r.difficulty.WaveMultiplier(r.waves.Wave())
}

func (r *Run) newBall() *Ball {
	r.nextBallID++
	return &Ball{
		ID:             r.nextBallID,
		Radius:         r.cfg.Ball.Radius,
		Fireball:       r.registry.HasTemp(progress.EffectFireball),
		BaseSpeed:      r.cfg.Ball.BaseSpeed * (1 - r.registry.BallSpeedReduction()),
		MaxSpeed:       r.cfg.Ball.MaxSpeed,
		WaveMultiplier: r.waveMultiplier(),
		rallyAccel:     r.cfg.Ball.RallyAcceleration,
	}
}

// spawnBall puts a fresh unlaunched ball on the paddle.
func (r *Run) spawnBall() *Ball {
	b := r.newBall()
	r.restOnPaddle(b)
	r.balls = append(r.balls, b)
	r.emit(Change{Kind: ChangeBallSpawned, ID: b.ID, X: b.X, Y: b.Y})
	return b
}

func (r *Run) restOnPaddle(b *Ball) {
	b.X = r.paddle.X
	b.Y = r.paddle.Top() - b.Radius - restGap
	b.VX, b.VY = 0, 0
}

// launch sends every resting ball upwards, then releases extra balls
// bought in the shop.
func (r *Run) launch() {
	launched := false
	for _, b := range r.balls {
		if b.Launched {
			continue
		}
		b.Launched = true
		b.Aim(float64(r.rng.Between(-launchAngle, launchAngle)), b.EffectiveSpeed())
		launched = true
	}
	if !launched {
		return
	}
	for ; r.pendingBalls > 0; r.pendingBalls-- {
		r.spawnExtraBall()
	}
}

// spawnExtraBall splits a launched ball. It reports false when no ball
// is in flight.
func (r *Run) spawnExtraBall() bool {
	var src *Ball
	for _, b := range r.balls {
		if b.Launched {
			src = b
			break
		}
	}
	if src == nil {
		return false
	}
	b := r.newBall()
	b.X, b.Y = src.X, src.Y
	b.Launched = true
	spread := int(r.cfg.PowerUps.ExtraBallAngle)
	b.Aim(float64(r.rng.Between(-spread, spread)), b.EffectiveSpeed())
	r.balls = append(r.balls, b)
	r.emit(Change{Kind: ChangeBallSpawned, ID: b.ID, X: b.X, Y: b.Y})
	return true
}

func (r *Run) ball(id int) *Ball {
	for _, b := range r.balls {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// ballHitPaddle bends the ball by where it struck the paddle and counts
// the return towards its rally.
func (r *Run) ballHitPaddle(id int, offset float64) {
	b := r.ball(id)
	if b == nil || !b.Launched {
		return
	}
	r.combo.OnPaddleTouch()
	b.RallyHits++
	b.Aim(core.ClampF(offset, -1, 1)*r.cfg.Ball.MaxBounceAngle, b.EffectiveSpeed())
}

// loseBall removes a ball that left the field. Losing the last one costs
// the shield if there is one, otherwise a life.
func (r *Run) loseBall(id int) {
	idx := -1
	for i, b := range r.balls {
		if b.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	b := r.balls[idx]
	r.balls = append(r.balls[:idx], r.balls[idx+1:]...)
	r.emit(Change{Kind: ChangeBallRemoved, ID: b.ID, X: b.X, Y: b.Y})
	if len(r.balls) > 0 {
		return
	}

	r.combo.Reset()
	if r.registry.ConsumeTemp(progress.EffectShield) {
		r.emit(Change{Kind: ChangeShieldUsed})
		r.spawnBall()
		return
	}

	r.lives--
	r.emit(Change{Kind: ChangeLifeLost, Value: r.lives})
	if r.lives <= 0 {
		r.endRun(ReasonLives)
		return
	}
	r.spawnBall()
}

// updateBalls keeps resting balls on the paddle and launched balls at
// their effective speed.
func (r *Run) updateBalls() {
	fireball := r.registry.HasTemp(progress.EffectFireball)
	for _, b := range r.balls {
		b.Fireball = fireball
		if !b.Launched {
			r.restOnPaddle(b)
			continue
		}
		r.clampSpeed(b)
	}
}

func (r *Run) clampSpeed(b *Ball) {
	target := b.EffectiveSpeed()
	if r.registry.HasTemp(progress.EffectSlow) {
		target *= r.cfg.PowerUps.SlowFactor
	}
	target = max(target, r.cfg.Ball.MinSpeed)

	if b.Speed() == 0 {
		b.Aim(0, target)
		return
	}
	if minH := r.cfg.Ball.MinHorizontal; math.Abs(b.VX) < minH && b.VY != 0 {
		if b.VX < 0 {
			b.VX = -minH
		} else {
			b.VX = minH
		}
	}
	b.SetSpeed(target)
}
