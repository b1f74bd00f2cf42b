package arena

import "github.com/vovakirdan/brickrogue/internal/games/rogue"

// Autopilot returns the input of a simple bot: launch whenever a ball is
// resting and keep the paddle under the lowest descending ball.
func Autopilot(r *rogue.Run) rogue.Input {
	in := rogue.Input{}
	paddle := r.Paddle()

	var target *rogue.Ball
	for _, b := range r.Balls() {
		if !b.Launched {
			in.Launch = true
			continue
		}
		if b.VY <= 0 {
			continue
		}
		if target == nil || b.Y > target.Y {
			target = b
		}
	}

	if target != nil {
		in.PointerX = target.X
		in.HasPointer = true
	} else {
		in.PointerX = paddle.X
	}
	return in
}
