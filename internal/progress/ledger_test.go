package progress

import "testing"

func TestLedgerAddFloorsPerCall(t *testing.T) {
	tests := []struct {
		name  string
		mult  float64
		parts []int
		sum   int
		same  bool
	}{
		{name: "unit multiplier is associative", mult: 1.0, parts: []int{3, 4}, sum: 7, same: true},
		{name: "non-unit multiplier floors each call", mult: 1.5, parts: []int{1, 1}, sum: 2, same: false},
		{name: "fractional loss compounds", mult: 1.1, parts: []int{5, 5}, sum: 10, same: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			split := NewLedger(DefaultSave())
			for _, p := range tc.parts {
				split.AddCoins(p, tc.mult)
			}
			whole := NewLedger(DefaultSave())
			whole.AddCoins(tc.sum, tc.mult)

			if (split.Coins() == whole.Coins()) != tc.same {
				t.Errorf("split=%d whole=%d, expected equal=%v", split.Coins(), whole.Coins(), tc.same)
			}
		})
	}
}

func TestLedgerAddCoinsTracksLifetimeTotal(t *testing.T) {
	save := DefaultSave()
	l := NewLedger(save)

	if got := l.AddCoins(5, 1.25); got != 6 {
		t.Errorf("AddCoins(5, 1.25) = %d, expected 6", got)
	}
	if save.TotalCoinsEarned != 6 {
		t.Errorf("TotalCoinsEarned = %d, expected 6", save.TotalCoinsEarned)
	}
	if got := l.AddCoins(0, 3); got != 0 || l.Coins() != 6 {
		t.Errorf("zero award changed balance: got %d, coins %d", got, l.Coins())
	}
}

func TestLedgerSpendNeverGoesNegative(t *testing.T) {
	save := DefaultSave()
	save.Gems = 10
	save.Shards = 2
	l := NewLedger(save)
	l.StartRun(25)

	for _, amount := range []int{26, 100, 1 << 20} {
		if l.SpendCoins(amount) {
			t.Errorf("SpendCoins(%d) succeeded with 25 coins", amount)
		}
	}
	if l.Coins() != 25 {
		t.Errorf("failed spends changed coins to %d", l.Coins())
	}
	if l.SpendGems(11) || l.Gems() != 10 {
		t.Errorf("SpendGems overspent: gems=%d", l.Gems())
	}
	if l.SpendShards(3) || l.Shards() != 2 {
		t.Errorf("SpendShards overspent: shards=%d", l.Shards())
	}
	if l.SpendCoins(-1) {
		t.Error("negative spend should fail")
	}

	if !l.SpendCoins(25) || l.Coins() != 0 {
		t.Errorf("exact spend failed, coins=%d", l.Coins())
	}
}

func TestLedgerStartRunResetsCoinsOnly(t *testing.T) {
	save := DefaultSave()
	l := NewLedger(save)
	l.AddCoins(40, 1)
	l.AddGems(3, 2)

	l.StartRun(15)
	if l.Coins() != 15 {
		t.Errorf("coins after StartRun = %d, expected 15", l.Coins())
	}
	if l.Gems() != 6 || save.TotalGemsEarned != 6 {
		t.Errorf("gems should persist across runs, gems=%d total=%d", l.Gems(), save.TotalGemsEarned)
	}
}
