package progress

import "math"

// Ledger tracks run-scoped coins and the permanent gems and shards kept
// in the save record. Adds floor after the multiplier on every call;
// spends never drive a balance negative.
type Ledger struct {
	save  *SaveState
	coins int
}

// NewLedger creates a ledger over the given save record.
func NewLedger(save *SaveState) *Ledger {
	return &Ledger{save: save}
}

// StartRun resets coins to the run's starting balance.
func (l *Ledger) StartRun(startingCoins int) {
	l.coins = max(startingCoins, 0)
}

// Coins returns the run balance.
func (l *Ledger) Coins() int { return l.coins }

// Gems returns the permanent gem balance.
func (l *Ledger) Gems() int { return l.save.Gems }

// Shards returns the permanent shard balance.
func (l *Ledger) Shards() int { return l.save.Shards }

// AddCoins credits floor(amount*mult) coins and returns the credited amount.
// Lifetime coin totals follow the credited value.
func (l *Ledger) AddCoins(amount int, mult float64) int {
	n := award(amount, mult)
	l.coins += n
	l.save.TotalCoinsEarned += n
	return n
}

// SpendCoins debits n coins. It fails without change when short.
func (l *Ledger) SpendCoins(n int) bool {
	if n < 0 || n > l.coins {
		return false
	}
	l.coins -= n
	return true
}

// AddGems credits floor(amount*mult) gems and returns the credited amount.
func (l *Ledger) AddGems(amount int, mult float64) int {
	n := award(amount, mult)
	l.save.Gems += n
	l.save.TotalGemsEarned += n
	return n
}

// SpendGems debits n gems. It fails without change when short.
func (l *Ledger) SpendGems(n int) bool {
	if n < 0 || n > l.save.Gems {
		return false
	}
	l.save.Gems -= n
	return true
}

// AddShards credits n shards.
func (l *Ledger) AddShards(n int) int {
	if n <= 0 {
		return 0
	}
	l.save.Shards += n
	return n
}

// SpendShards debits n shards. It fails without change when short.
func (l *Ledger) SpendShards(n int) bool {
	if n < 0 || n > l.save.Shards {
		return false
	}
	l.save.Shards -= n
	return true
}

func award(amount int, mult float64) int {
	v := math.Floor(float64(amount) * mult)
	if v <= 0 {
		return 0
	}
	return int(v)
}
