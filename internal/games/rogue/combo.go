package rogue

// Combo multiplier tiers.
const (
	comboTierHigh = 25
	comboTierMid  = 10
)

// ComboMultiplier returns the reward multiplier for a combo count.
func ComboMultiplier(count int) float64 {
	switch {
	case count >= comboTierHigh:
		return 2.0
	case count >= comboTierMid:
		return 1.5
	default:
		return 1.0
	}
}

// Combo tracks the brick-hit streak between paddle touches.
// The streak only builds after the first paddle touch of a ball life.
type Combo struct {
	Count          int
	CanBuild       bool
	HitsSinceTouch int
	penalty        int
}

// NewCombo creates a tracker with the given fumble penalty.
func NewCombo(penalty int) *Combo {
	return &Combo{penalty: penalty}
}

// Multiplier returns the current tier multiplier.
func (c *Combo) Multiplier() float64 {
	return ComboMultiplier(c.Count)
}

// OnBrickHit records a ball touching a brick.
func (c *Combo) OnBrickHit() {
	if !c.CanBuild {
		return
	}
	c.Count++
	c.HitsSinceTouch++
}

// OnPaddleTouch records a ball touching the paddle. Returning to the
// paddle without hitting anything costs the penalty.
func (c *Combo) OnPaddleTouch() {
	if c.HitsSinceTouch == 0 && c.Count > 0 {
		c.Count = max(0, c.Count-c.penalty)
	}
	c.CanBuild = true
	c.HitsSinceTouch = 0
}

// Reset drops the streak after the last ball is lost.
func (c *Combo) Reset() {
	c.Count = 0
	c.CanBuild = false
	c.HitsSinceTouch = 0
}
