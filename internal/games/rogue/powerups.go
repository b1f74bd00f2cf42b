package rogue

import (
	"time"

	"github.com/vovakirdan/brickrogue/internal/config"
	"github.com/vovakirdan/brickrogue/internal/progress"
)

// PowerUpKind is a collectible or purchasable power-up.
type PowerUpKind int

const (
	PowerExtraBall PowerUpKind = iota
	PowerWide
	PowerFireball
	PowerSlow
	PowerShield
	PowerMagnet
	powerCount
)

// AllPowerUps lists every power-up in shop order.
func AllPowerUps() []PowerUpKind {
	out := make([]PowerUpKind, 0, powerCount)
	for k := PowerExtraBall; k < powerCount; k++ {
		out = append(out, k)
	}
	return out
}

// String returns the display name.
func (k PowerUpKind) String() string {
	switch k {
	case PowerExtraBall:
		return "Extra Ball"
	case PowerWide:
		return "Wide Paddle"
	case PowerFireball:
		return "Fireball"
	case PowerSlow:
		return "Slow Motion"
	case PowerShield:
		return "Shield"
	case PowerMagnet:
		return "Coin Magnet"
	default:
		return "?"
	}
}

// Glyph returns the display character of a falling pickup.
func (k PowerUpKind) Glyph() rune {
	switch k {
	case PowerExtraBall:
		return 'B'
	case PowerWide:
		return 'W'
	case PowerFireball:
		return 'F'
	case PowerSlow:
		return 'S'
	case PowerShield:
		return 'H'
	case PowerMagnet:
		return 'M'
	default:
		return '?'
	}
}

// Effect returns the registry effect backing a power-up. Extra ball has none.
func (k PowerUpKind) Effect() (progress.EffectKind, bool) {
	switch k {
	case PowerWide:
		return progress.EffectWide, true
	case PowerFireball:
		return progress.EffectFireball, true
	case PowerSlow:
		return progress.EffectSlow, true
	case PowerShield:
		return progress.EffectShield, true
	case PowerMagnet:
		return progress.EffectMagnet, true
	default:
		return 0, false
	}
}

// duration returns how long a timed power-up lasts. Zero means the effect
// stays until consumed.
func (k PowerUpKind) duration(cfg config.PowerUpConfig) time.Duration {
	switch k {
	case PowerWide:
		return cfg.Wide
	case PowerFireball:
		return cfg.Fireball
	case PowerSlow:
		return cfg.Slow
	case PowerMagnet:
		return cfg.Magnet
	default:
		return 0
	}
}

// BasePrice returns the undiscounted shop price.
func (k PowerUpKind) BasePrice(shop config.ShopConfig) int {
	switch k {
	case PowerExtraBall:
		return shop.ExtraBall
	case PowerWide:
		return shop.Wide
	case PowerFireball:
		return shop.Fireball
	case PowerSlow:
		return shop.Slow
	case PowerShield:
		return shop.Shield
	case PowerMagnet:
		return shop.Magnet
	default:
		return 0
	}
}
