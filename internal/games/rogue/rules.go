package rogue

import (
	"math"

	"github.com/vovakirdan/brickrogue/internal/progress"
)

// ballHitBrick applies one ball-brick contact.
func (r *Run) ballHitBrick(ballID, brickID int) {
	b := r.ball(ballID)
	brick := r.grid.Get(brickID)
	if b == nil || brick == nil || brick.Destroyed() {
		return
	}

	r.combo.OnBrickHit()

	damage := 1
	if b.Fireball {
		damage = r.cfg.PowerUps.FireballDamage
	}
	crit := r.rng.Chance(r.registry.CritChance())
	if crit {
		damage *= 2
	}
	if brick.Hit(damage) {
		r.destroyBrick(brick, crit, false)
	}
}

// destroyBrick pays out a destroyed brick and removes it. Bricks destroyed
// by an explosion never explode themselves.
func (r *Run) destroyBrick(b *Brick, crit, fromExplosion bool) {
	if b.Letter != NoLetter {
		r.collectLetter(b.Letter)
	}

	combo := r.combo.Multiplier()
	critMult := 1.0
	if crit {
		critMult = 2
	}
	mergeMult := 1 + float64(b.Level)*r.cfg.Bricks.MergeScore
	r.score += int(math.Floor(float64(b.Points) * critMult * combo * mergeMult))

	coins := int(math.Floor(float64(b.Coins+b.Level) * r.registry.CoinMultiplier() * combo))
	r.spawnCoin(b.X, b.Y, coins)

	r.waves.BrickDestroyed()
	r.save.TotalBricksDestroyed++
	r.bricksDestroyed++
	r.grid.Remove(b)
	r.emit(Change{Kind: ChangeBrickDestroyed, ID: b.ID, X: b.X, Y: b.Y, Value: int(b.Kind)})
	// Queued before any blast kills so their gap rows account for this fall.
	r.grid.RequestFall(b.Col, GapRow(b))

	if b.Kind.IsExplosive() && !fromExplosion {
		r.triggerExplosion(b)
	}
	if b.Kind.DropsPowerUp() {
		r.spawnPowerUp(b.X, b.Y)
	}

	r.checkWaveComplete()
}

// triggerExplosion deals one point of damage to every brick within the
// blast radius of origin, then finalizes the ones it destroyed.
func (r *Run) triggerExplosion(origin *Brick) {
	radius := r.cfg.Bombs.DefaultRadius
	bonus := 0
	switch origin.Kind {
	case BrickBombPurple:
		radius = r.cfg.Bombs.PurpleRadius
	case BrickBombRed:
		radius = r.cfg.Bombs.RedRadius
	case BrickBombGold:
		bonus = r.cfg.Bombs.GoldBonusCoins
	}

	var destroyed []*Brick
	for _, b := range r.grid.Bricks() {
		if b == origin || b.Destroyed() {
			continue
		}
		if math.Hypot(b.X-origin.X, b.Y-origin.Y) < radius && b.Hit(1) {
			destroyed = append(destroyed, b)
		}
	}
	for _, b := range destroyed {
		r.destroyBrick(b, false, true)
	}
	r.spawnCoin(origin.X, origin.Y, bonus)

	r.explosions = append(r.explosions, Explosion{
		X:          origin.X,
		Y:          origin.Y,
		Radius:     radius,
		Kind:       origin.Kind,
		Destroyed:  len(destroyed),
		BonusCoins: bonus,
	})
}

// onMerge runs after the grid merged upper into lower. The consumed brick
// leaves the wave without rewards.
func (r *Run) onMerge(upper, lower *Brick) {
	r.waves.BrickDestroyed()
	if upper.Letter != NoLetter {
		if lower.Letter == NoLetter {
			lower.Letter = upper.Letter
		} else {
			r.collectLetter(upper.Letter)
		}
	}
	r.emit(Change{Kind: ChangeBrickMerged, ID: lower.ID, X: lower.X, Y: lower.Y, Value: lower.Level})
}

// assignLetters hands each letter slot to a random destructible brick.
func (r *Run) assignLetters() {
	r.letters = make([]bool, len(r.cfg.Gameplay.Letters))

	var eligible []*Brick
	for _, b := range r.grid.Bricks() {
		b.Letter = NoLetter
		if !b.Indestructible() {
			eligible = append(eligible, b)
		}
	}
	for slot := range min(len(eligible), len(r.letters)) {
		i := r.rng.Intn(len(eligible))
		eligible[i].Letter = slot
		eligible = append(eligible[:i], eligible[i+1:]...)
	}
}

// Letters returns the letter slots and which of them are collected.
func (r *Run) Letters() ([]string, []bool) {
	return r.cfg.Gameplay.Letters, r.letters
}

// collectLetter latches a letter slot. Completing the set starts power mode.
func (r *Run) collectLetter(slot int) {
	if slot < 0 || slot >= len(r.letters) || r.letters[slot] {
		return
	}
	r.letters[slot] = true
	r.emit(Change{Kind: ChangeLetterCollected, Value: slot})
	for _, got := range r.letters {
		if !got {
			return
		}
	}
	r.startPowerMode()
}

// PowerMode reports whether power mode is running.
func (r *Run) PowerMode() bool { return r.powerMode }

// startPowerMode turns on wide paddle, fireball and shield together.
// Wide paddle and fireball are held until power mode ends; the shield
// stays until used.
func (r *Run) startPowerMode() {
	if r.powerMode {
		return
	}
	r.powerMode = true
	r.registry.ActivateTemp(progress.EffectWide, 0)
	r.registry.ActivateTemp(progress.EffectFireball, 0)
	r.registry.ActivateTemp(progress.EffectShield, 0)
	r.paddle.Width = r.paddle.BaseWidth * r.cfg.PowerUps.PowerModeWide
	r.updateBalls()

	r.emit(Change{Kind: ChangePowerModeStarted})
	r.logger.Info("Power mode", "wave", r.waves.Wave())
	r.sched.After(r.cfg.Gameplay.PowerModeDuration, r.endPowerMode)
}

func (r *Run) endPowerMode() {
	if !r.powerMode {
		return
	}
	r.powerMode = false
	r.registry.DeactivateTemp(progress.EffectWide)
	r.registry.DeactivateTemp(progress.EffectFireball)
	r.paddle.Width = r.paddle.BaseWidth
	r.updateBalls()
	r.emit(Change{Kind: ChangePowerModeEnded})
}

// activatePowerUp applies a collected or purchased power-up. Timed
// effects restart their timer when already active, except wide paddle
// and fireball while power mode holds them.
func (r *Run) activatePowerUp(k PowerUpKind) {
	switch k {
	case PowerExtraBall:
		r.spawnExtraBall()
	case PowerShield:
		r.registry.ActivateTemp(progress.EffectShield, 0)
	default:
		eff, ok := k.Effect()
		if !ok {
			return
		}
		if r.powerMode && (eff == progress.EffectWide || eff == progress.EffectFireball) {
			break
		}
		r.registry.ActivateTemp(eff, k.duration(r.cfg.PowerUps))
		if eff == progress.EffectWide {
			r.paddle.Width = r.paddle.BaseWidth * r.cfg.PowerUps.WideMultiplier
		}
		r.updateBalls()
	}
	r.emit(Change{Kind: ChangeEffectStarted, Value: int(k)})
}

// onEffectExpired reverts a timed effect.
func (r *Run) onEffectExpired(k progress.EffectKind) {
	if k == progress.EffectWide {
		r.paddle.Width = r.paddle.BaseWidth
	}
	r.emit(Change{Kind: ChangeEffectEnded, Value: int(k)})
}

// ShopPrice returns the discounted coin price of a shop item.
func (r *Run) ShopPrice(k PowerUpKind) int {
	return r.registry.ShopPrice(k.BasePrice(r.cfg.Shop))
}

// BuyShopItem spends coins on a shop item. It fails without changes
// outside the shop or when the coins do not cover the price. An extra
// ball joins the next launch.
func (r *Run) BuyShopItem(k PowerUpKind) bool {
	if r.state != StateShop || k < 0 || k >= powerCount {
		return false
	}
	if !r.ledger.SpendCoins(r.ShopPrice(k)) {
		return false
	}
	if k == PowerExtraBall {
		r.pendingBalls++
	} else {
		r.activatePowerUp(k)
	}
	r.logger.Debug("Shop purchase", "item", k.String(), "coins", r.ledger.Coins())
	return true
}

// PendingBalls returns the extra balls waiting for the next launch.
func (r *Run) PendingBalls() int { return r.pendingBalls }
