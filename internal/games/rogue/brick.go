package rogue

import (
	"math"
	"time"

	"github.com/vovakirdan/brickrogue/internal/config"
)

// BrickKind is the type of a brick.
type BrickKind int

const (
	BrickNormal BrickKind = iota
	BrickTough
	BrickTough3
	BrickExplosive
	BrickBombPurple
	BrickBombRed
	BrickBombGold
	BrickGold
	BrickMystery
	BrickIndestructible
)

// InfiniteHP marks a brick that direct hits cannot damage.
const InfiniteHP = math.MaxInt32

// NoLetter marks a brick without a collectible letter.
const NoLetter = -1

// String returns the display name of the kind.
func (k BrickKind) String() string {
	switch k {
	case BrickNormal:
		return "Normal"
	case BrickTough:
		return "Tough"
	case BrickTough3:
		return "Tough3"
	case BrickExplosive:
		return "Explosive"
	case BrickBombPurple:
		return "PurpleBomb"
	case BrickBombRed:
		return "RedBomb"
	case BrickBombGold:
		return "GoldBomb"
	case BrickGold:
		return "Gold"
	case BrickMystery:
		return "Mystery"
	case BrickIndestructible:
		return "Indestructible"
	default:
		return "Unknown"
	}
}

// IsColorBomb reports whether the kind is one of the colored bombs.
func (k BrickKind) IsColorBomb() bool {
	return k == BrickBombPurple || k == BrickBombRed || k == BrickBombGold
}

// IsExplosive reports whether destroying the brick sets off an explosion.
func (k BrickKind) IsExplosive() bool {
	return k == BrickExplosive || k.IsColorBomb()
}

// DropsPowerUp reports whether destroying the brick releases a power-up.
func (k BrickKind) DropsPowerUp() bool {
	return k == BrickMystery
}

// KindStats returns the configured base stats for a kind.
func KindStats(kinds config.BrickKinds, k BrickKind) config.BrickStats {
	switch k {
	case BrickTough:
		return kinds.Tough
	case BrickTough3:
		return kinds.Tough3
	case BrickExplosive:
		return kinds.Explosive
	case BrickBombPurple:
		return kinds.BombPurple
	case BrickBombRed:
		return kinds.BombRed
	case BrickBombGold:
		return kinds.BombGold
	case BrickGold:
		return kinds.Gold
	case BrickMystery:
		return kinds.Mystery
	case BrickIndestructible:
		return kinds.Indestructible
	default:
		return kinds.Normal
	}
}

// Brick is one brick of the grid. X and Y are the pixel centre.
type Brick struct {
	ID     int
	Kind   BrickKind
	HP     int
	MaxHP  int
	Points int
	Coins  int
	Col    int
	Row    int
	X, Y   float64
	Level  int // merge level
	Letter int // letter slot, or NoLetter

	base config.BrickStats

	// Falling is set while a fall transition is in flight.
	Falling   bool
	FallTo    int
	fallStart time.Duration
}

// NewBrick creates a brick with its kind's base stats.
func NewBrick(id int, kind BrickKind, stats config.BrickStats, col, row int) *Brick {
	b := &Brick{
		ID:     id,
		Kind:   kind,
		Col:    col,
		Row:    row,
		Letter: NoLetter,
		base:   stats,
	}
	b.applyStats()
	return b
}

// Indestructible reports whether direct hits leave the brick untouched.
func (b *Brick) Indestructible() bool {
	return b.Kind == BrickIndestructible || b.base.HP < 0
}

// Destroyed reports whether the brick has no hit points left.
func (b *Brick) Destroyed() bool {
	return !b.Indestructible() && b.HP <= 0
}

// Hit applies damage and reports whether this hit destroyed the brick.
// It returns true exactly once over the brick's life.
func (b *Brick) Hit(damage int) bool {
	if b.Indestructible() || b.HP <= 0 || damage <= 0 {
		return false
	}
	b.HP -= damage
	if b.HP <= 0 {
		b.HP = 0
		return true
	}
	return false
}

// SetMergeLevel sets the merge level and recomputes stats from the base
// values, so repeated merges never compound. A merged brick is repaired.
func (b *Brick) SetMergeLevel(level int, bonus float64) {
	b.Level = max(level, 0)
	b.applyStatsWith(bonus)
}

func (b *Brick) applyStats() {
	b.applyStatsWith(0)
}

func (b *Brick) applyStatsWith(bonus float64) {
	if b.Indestructible() {
		b.HP, b.MaxHP = InfiniteHP, InfiniteHP
		b.Points, b.Coins = b.base.Points, b.base.CoinDrop
		return
	}
	scale := 1.0
	if b.Level > 0 {
		scale = 1 + float64(b.Level)*bonus
	}
	b.MaxHP = scaleUp(b.base.HP, scale)
	b.HP = b.MaxHP
	b.Points = scaleUp(b.base.Points, scale)
	b.Coins = scaleUp(b.base.CoinDrop, scale)
}

// scaleUp returns ceil(v*scale). The epsilon keeps exact products such
// as 1*1.5*2 from rounding up through float error.
func scaleUp(v int, scale float64) int {
	return int(math.Ceil(float64(v)*scale - 1e-9))
}
