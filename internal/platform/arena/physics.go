package arena

import (
	"math"

	"github.com/vovakirdan/brickrogue/internal/core"
	"github.com/vovakirdan/brickrogue/internal/games/rogue"
)

// CollisionSide indicates which side of an object was hit.
type CollisionSide int

const (
	CollisionNone CollisionSide = iota
	CollisionTop
	CollisionBottom
	CollisionLeft
	CollisionRight
)

// CheckWallCollision keeps the ball inside the side and top walls.
// Returns the wall that was hit and whether the ball fell below the field.
func CheckWallCollision(ball *rogue.Ball, width, height float64) (side CollisionSide, fellOff bool) {
	r := ball.Radius

	// Left wall
	if ball.X-r < 0 {
		ball.X = r
		ball.VX = math.Abs(ball.VX)
		return CollisionLeft, false
	}

	// Right wall
	if ball.X+r > width {
		ball.X = width - r
		ball.VX = -math.Abs(ball.VX)
		return CollisionRight, false
	}

	// Top wall
	if ball.Y-r < 0 {
		ball.Y = r
		ball.VY = math.Abs(ball.VY)
		return CollisionTop, false
	}

	// Bottom - ball left the field entirely
	if ball.Y-r > height {
		return CollisionBottom, true
	}

	return CollisionNone, false
}

// CheckPaddleCollision reports whether a descending ball touches the
// paddle, and where along it in [-1, 1]. On contact the ball is lifted
// onto the paddle and sent upwards; the run sets the final angle.
func CheckPaddleCollision(ball *rogue.Ball, paddle rogue.Paddle) (offset float64, hit bool) {
	// Ball must be moving downward
	if ball.VY <= 0 {
		return 0, false
	}
	if !ball.Box().Intersects(paddle.Box()) {
		return 0, false
	}

	offset = paddle.HitOffset(ball.X)
	ball.Y = paddle.Top() - ball.Radius
	ball.VY = -math.Abs(ball.VY)
	return offset, true
}

// CheckBrickCollision determines the side of box the ball entered from.
// Returns CollisionNone when they do not overlap.
func CheckBrickCollision(ball *rogue.Ball, box core.Box) CollisionSide {
	bb := ball.Box()
	if !bb.Intersects(box) {
		return CollisionNone
	}

	dx := ball.X - box.CX
	dy := ball.Y - box.CY
	overlapX := (bb.W+box.W)/2 - math.Abs(dx)
	overlapY := (bb.H+box.H)/2 - math.Abs(dy)

	// Prefer the axis with the shallower penetration
	if overlapY <= overlapX {
		if dy < 0 {
			return CollisionTop
		}
		return CollisionBottom
	}
	if dx < 0 {
		return CollisionLeft
	}
	return CollisionRight
}

// ApplyCollisionBounce reflects the ball off the given side of box and
// pushes it clear so the next tick does not collide again.
func ApplyCollisionBounce(ball *rogue.Ball, box core.Box, side CollisionSide) {
	switch side {
	case CollisionTop:
		ball.VY = -math.Abs(ball.VY)
		ball.Y = box.Top() - ball.Radius
	case CollisionBottom:
		ball.VY = math.Abs(ball.VY)
		ball.Y = box.Bottom() + ball.Radius
	case CollisionLeft:
		ball.VX = -math.Abs(ball.VX)
		ball.X = box.Left() - ball.Radius
	case CollisionRight:
		ball.VX = math.Abs(ball.VX)
		ball.X = box.Right() + ball.Radius
	}
}
