package rogue

// DropKind separates coin drops from power-up pickups.
type DropKind int

const (
	DropCoin DropKind = iota
	DropPowerUp
)

// Drop is a collectible falling towards the paddle.
type Drop struct {
	ID      int
	Kind    DropKind
	X, Y    float64
	VX, VY  float64 // pixels per second
	Value   int     // coins, for coin drops
	PowerUp PowerUpKind
}

// Glyph returns the display character.
func (d *Drop) Glyph() rune {
	if d.Kind == DropPowerUp {
		return d.PowerUp.Glyph()
	}
	return '$'
}

func (r *Run) spawnCoin(x, y float64, value int) {
	if value <= 0 {
		return
	}
	r.nextDropID++
	d := &Drop{
		ID:    r.nextDropID,
		Kind:  DropCoin,
		X:     x,
		Y:     y,
		VY:    r.cfg.Gameplay.CoinFallSpeed,
		Value: value,
	}
	r.drops = append(r.drops, d)
	r.emit(Change{Kind: ChangeDropSpawned, ID: d.ID, X: x, Y: y, Value: value})
}

func (r *Run) spawnPowerUp(x, y float64) {
	r.nextDropID++
	d := &Drop{
		ID:      r.nextDropID,
		Kind:    DropPowerUp,
		X:       x,
		Y:       y,
		VY:      r.cfg.Gameplay.PowerUpFallSpeed,
		PowerUp: PowerUpKind(r.rng.Intn(int(powerCount))),
	}
	r.drops = append(r.drops, d)
	r.emit(Change{Kind: ChangeDropSpawned, ID: d.ID, X: x, Y: y, Value: int(d.PowerUp)})
}

// takeDrop removes a drop of the given kind, returning nil when it is
// already gone.
func (r *Run) takeDrop(id int, kind DropKind) *Drop {
	i := r.dropIndex(id)
	if i < 0 || r.drops[i].Kind != kind {
		return nil
	}
	return r.removeDropAt(i)
}

// missDrop removes a drop that fell past the paddle.
func (r *Run) missDrop(id int) {
	if i := r.dropIndex(id); i >= 0 {
		r.removeDropAt(i)
	}
}

func (r *Run) dropIndex(id int) int {
	for i, d := range r.drops {
		if d.ID == id {
			return i
		}
	}
	return -1
}

func (r *Run) removeDropAt(i int) *Drop {
	d := r.drops[i]
	r.drops = append(r.drops[:i], r.drops[i+1:]...)
	r.emit(Change{Kind: ChangeDropRemoved, ID: d.ID, X: d.X, Y: d.Y})
	return d
}

func (r *Run) clearDrops() {
	for len(r.drops) > 0 {
		r.removeDropAt(len(r.drops) - 1)
	}
}

func (r *Run) collectCoin(id int) {
	d := r.takeDrop(id, DropCoin)
	if d == nil {
		return
	}
	// The coin multiplier was applied when the drop spawned.
	r.coinsEarned += r.ledger.AddCoins(d.Value, 1)
}

func (r *Run) collectPowerUp(id int) {
	d := r.takeDrop(id, DropPowerUp)
	if d == nil {
		return
	}
	r.activatePowerUp(d.PowerUp)
}
