package rogue

import "sort"

// EventKind is a collision consequence reported by the arena.
// Kinds are declared in processing order.
type EventKind int

const (
	EventBallHitBrick EventKind = iota
	EventBallHitPaddle
	EventCoinReachedPaddle
	EventPowerUpReachedPaddle
	EventDropExitedBottom
	EventBallExitedBottom
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventBallHitBrick:
		return "BallHitBrick"
	case EventBallHitPaddle:
		return "BallHitPaddle"
	case EventCoinReachedPaddle:
		return "CoinReachedPaddle"
	case EventPowerUpReachedPaddle:
		return "PowerUpReachedPaddle"
	case EventDropExitedBottom:
		return "DropExitedBottom"
	case EventBallExitedBottom:
		return "BallExitedBottom"
	default:
		return "Unknown"
	}
}

// Event references entities by id. Offset is the paddle hit position in
// [-1, 1] for BallHitPaddle.
type Event struct {
	Kind   EventKind
	Ball   int
	Brick  int
	Drop   int
	Offset float64
}

// SortEvents orders events by kind, keeping arrival order within a kind.
func SortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Kind < events[j].Kind
	})
}

// ChangeKind is an entity or run change reported to the front end.
type ChangeKind int

const (
	ChangeBrickDestroyed ChangeKind = iota
	ChangeBrickMerged
	ChangeBallSpawned
	ChangeBallRemoved
	ChangeDropSpawned
	ChangeDropRemoved
	ChangeEffectStarted
	ChangeEffectEnded
	ChangeLetterCollected
	ChangePowerModeStarted
	ChangePowerModeEnded
	ChangeShieldUsed
	ChangeLifeLost
	ChangeTimePressure
	ChangeWaveStarted
	ChangeWaveCleared
)

// String returns the change name.
func (k ChangeKind) String() string {
	switch k {
	case ChangeBrickDestroyed:
		return "BrickDestroyed"
	case ChangeBrickMerged:
		return "BrickMerged"
	case ChangeBallSpawned:
		return "BallSpawned"
	case ChangeBallRemoved:
		return "BallRemoved"
	case ChangeDropSpawned:
		return "DropSpawned"
	case ChangeDropRemoved:
		return "DropRemoved"
	case ChangeEffectStarted:
		return "EffectStarted"
	case ChangeEffectEnded:
		return "EffectEnded"
	case ChangeLetterCollected:
		return "LetterCollected"
	case ChangePowerModeStarted:
		return "PowerModeStarted"
	case ChangePowerModeEnded:
		return "PowerModeEnded"
	case ChangeShieldUsed:
		return "ShieldUsed"
	case ChangeLifeLost:
		return "LifeLost"
	case ChangeTimePressure:
		return "TimePressure"
	case ChangeWaveStarted:
		return "WaveStarted"
	case ChangeWaveCleared:
		return "WaveCleared"
	default:
		return "Unknown"
	}
}

// Change describes one thing that happened during a step.
type Change struct {
	Kind  ChangeKind
	ID    int
	X, Y  float64
	Value int
}

// Explosion is a resolved blast, for effects and tests.
type Explosion struct {
	X, Y       float64
	Radius     float64
	Kind       BrickKind
	Destroyed  int
	BonusCoins int
}
