package rogue

import (
	"math"

	"github.com/vovakirdan/brickrogue/internal/core"
)

// Ball is one ball in play. Position and velocity are in pixels and
// pixels per second; the arena moves it, the run keeps its speed.
type Ball struct {
	ID       int
	X, Y     float64
	VX, VY   float64
	Radius   float64
	Launched bool
	Fireball bool

	BaseSpeed      float64 // after the ball-control upgrade
	MaxSpeed       float64
	WaveMultiplier float64
	RallyHits      int

	rallyAccel float64
}

// EffectiveSpeed is the speed the ball should travel at, before slow motion.
func (b *Ball) EffectiveSpeed() float64 {
	s := b.BaseSpeed * b.WaveMultiplier * (1 + float64(b.RallyHits)*b.rallyAccel)
	return min(s, b.MaxSpeed)
}

// Speed returns the current velocity magnitude.
func (b *Ball) Speed() float64 {
	return math.Hypot(b.VX, b.VY)
}

// SetSpeed rescales the velocity, keeping its direction.
func (b *Ball) SetSpeed(speed float64) {
	cur := b.Speed()
	if cur == 0 {
		return
	}
	b.VX *= speed / cur
	b.VY *= speed / cur
}

// Aim sets an upward velocity at angle degrees from vertical.
func (b *Ball) Aim(angle, speed float64) {
	rad := angle * math.Pi / 180
	b.VX = math.Sin(rad) * speed
	b.VY = -math.Abs(math.Cos(rad) * speed)
}

// Box returns the ball's bounding box.
func (b *Ball) Box() core.Box {
	return core.Box{CX: b.X, CY: b.Y, W: b.Radius * 2, H: b.Radius * 2}
}

// Paddle is the player's paddle. X and Y are its centre.
type Paddle struct {
	X, Y      float64
	Width     float64
	Height    float64
	BaseWidth float64 // width after the paddle-size upgrade
}

// Top returns the y coordinate of the paddle's upper edge.
func (p *Paddle) Top() float64 {
	return p.Y - p.Height/2
}

// Box returns the paddle's bounding box.
func (p *Paddle) Box() core.Box {
	return core.Box{CX: p.X, CY: p.Y, W: p.Width, H: p.Height}
}

// HitOffset maps an x coordinate to [-1, 1] across the paddle.
func (p *Paddle) HitOffset(x float64) float64 {
	if p.Width <= 0 {
		return 0
	}
	return core.ClampF((x-p.X)/(p.Width/2), -1, 1)
}
