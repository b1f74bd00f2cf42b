package progress

import (
	"sort"
	"time"
)

// EffectKind identifies a run-scoped temporary effect.
type EffectKind int

const (
	EffectWide EffectKind = iota
	EffectFireball
	EffectSlow
	EffectMagnet
	EffectShield
)

// AllEffects lists every temporary effect.
func AllEffects() []EffectKind {
	return []EffectKind{EffectWide, EffectFireball, EffectSlow, EffectMagnet, EffectShield}
}

// String returns the display name.
func (e EffectKind) String() string {
	switch e {
	case EffectWide:
		return "Wide"
	case EffectFireball:
		return "Fireball"
	case EffectSlow:
		return "Slow"
	case EffectMagnet:
		return "Magnet"
	case EffectShield:
		return "Shield"
	default:
		return "Unknown"
	}
}

type tempEffect struct {
	expires time.Duration // run clock deadline; zero means no expiry
}

// ActivateTemp turns an effect on. A positive duration schedules expiry
// on the registry's run clock; reactivating replaces the deadline.
// A duration of zero or less keeps the effect until it is consumed or
// deactivated.
func (r *Registry) ActivateTemp(k EffectKind, d time.Duration) {
	var e tempEffect
	if d > 0 {
		e.expires = r.clock + d
	}
	r.temps[k] = e
}

// DeactivateTemp turns an effect off and drops its deadline.
func (r *Registry) DeactivateTemp(k EffectKind) {
	delete(r.temps, k)
}

// HasTemp reports whether an effect is active.
func (r *Registry) HasTemp(k EffectKind) bool {
	_, ok := r.temps[k]
	return ok
}

// ConsumeTemp deactivates a one-shot effect, reporting whether it was active.
func (r *Registry) ConsumeTemp(k EffectKind) bool {
	if !r.HasTemp(k) {
		return false
	}
	delete(r.temps, k)
	return true
}

// TempRemaining returns the time left before an effect expires. It is
// zero for inactive effects and for effects without expiry.
func (r *Registry) TempRemaining(k EffectKind) time.Duration {
	e, ok := r.temps[k]
	if !ok || e.expires == 0 {
		return 0
	}
	return e.expires - r.clock
}

// ActiveTemps lists active effects in a stable order.
func (r *Registry) ActiveTemps() []EffectKind {
	var out []EffectKind
	for _, k := range AllEffects() {
		if r.HasTemp(k) {
			out = append(out, k)
		}
	}
	return out
}

// AdvanceTemp moves the run clock forward and returns the effects that
// expired, earliest deadline first.
func (r *Registry) AdvanceTemp(dt time.Duration) []EffectKind {
	if dt > 0 {
		r.clock += dt
	}

	var expired []EffectKind
	for _, k := range AllEffects() {
		e, ok := r.temps[k]
		if ok && e.expires > 0 && e.expires <= r.clock {
			expired = append(expired, k)
		}
	}
	sort.SliceStable(expired, func(i, j int) bool {
		return r.temps[expired[i]].expires < r.temps[expired[j]].expires
	})
	for _, k := range expired {
		delete(r.temps, k)
	}
	return expired
}

// ResetTemp clears every temporary effect and the run clock.
func (r *Registry) ResetTemp() {
	r.clock = 0
	clear(r.temps)
}
