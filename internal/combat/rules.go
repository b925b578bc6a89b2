// Package combat provides the real-time duel rules: geometry, fighter AI and hit resolution.
package combat

import (
	"errors"
	"fmt"
	"math"

	"github.com/samdwyer/battlearena/internal/world"
)

const (
	DefaultApproachMargin = 10.0 // Buffer beyond attack range where a fighter stops advancing
	DefaultMoveScale      = 3.0  // Distance per tick at move speed 1.0
	DefaultBaseCooldown   = 20   // Ticks between swings before attack speed is applied
	DefaultMinCooldown    = 3
	DefaultCooldownScale  = 5.0 // Ticks removed per unit of attack speed
	DefaultMinDamage      = 10
	DefaultMaxDamage      = 29
	DefaultJitterStep     = 1.5 // Largest change of the cosmetic bob per tick
	DefaultJitterMax      = 6.0 // Largest cosmetic bob in either direction
)

// Rules holds the tunable coefficients of the duel. All distances are in
// arena units and all durations in ticks.
type Rules struct {
	Arena          world.Arena `yaml:"arena"`
	ApproachMargin float64     `yaml:"approachMargin"`
	MoveScale      float64     `yaml:"moveScale"`
	BaseCooldown   int         `yaml:"baseCooldown"`
	MinCooldown    int         `yaml:"minCooldown"`
	CooldownScale  float64     `yaml:"cooldownScale"`
	MinDamage      int         `yaml:"minDamage"`
	MaxDamage      int         `yaml:"maxDamage"`
	JitterStep     float64     `yaml:"jitterStep"`
	JitterMax      float64     `yaml:"jitterMax"`
}

// DefaultRules returns the standard duel rules.
func DefaultRules() Rules {
	return Rules{
		Arena:          world.DefaultArena(),
		ApproachMargin: DefaultApproachMargin,
		MoveScale:      DefaultMoveScale,
		BaseCooldown:   DefaultBaseCooldown,
		MinCooldown:    DefaultMinCooldown,
		CooldownScale:  DefaultCooldownScale,
		MinDamage:      DefaultMinDamage,
		MaxDamage:      DefaultMaxDamage,
		JitterStep:     DefaultJitterStep,
		JitterMax:      DefaultJitterMax,
	}
}

// Validate reports the first rule that would break the battle invariants.
func (r Rules) Validate() error {
	a := r.Arena
	switch {
	case a.Width <= 0 || a.Height <= 0:
		return fmt.Errorf("arena must have positive size, got %vx%v", a.Width, a.Height)
	case a.FighterRadius < 0 || 2*a.FighterRadius > a.Width:
		return fmt.Errorf("fighter radius %v does not fit arena width %v", a.FighterRadius, a.Width)
	case a.Margin < 0 || 2*a.Margin > a.Height:
		return fmt.Errorf("margin %v does not fit arena height %v", a.Margin, a.Height)
	case r.ApproachMargin < 0:
		return errors.New("approach margin must not be negative")
	case r.MoveScale <= 0:
		return errors.New("move scale must be positive")
	case r.MinCooldown < 1:
		return fmt.Errorf("min cooldown must be at least 1 tick, got %d", r.MinCooldown)
	case r.BaseCooldown < r.MinCooldown:
		return fmt.Errorf("base cooldown %d is below min cooldown %d", r.BaseCooldown, r.MinCooldown)
	case r.CooldownScale < 0:
		return errors.New("cooldown scale must not be negative")
	case r.MinDamage < 1:
		return fmt.Errorf("min damage must be at least 1, got %d", r.MinDamage)
	case r.MaxDamage < r.MinDamage:
		return fmt.Errorf("max damage %d is below min damage %d", r.MaxDamage, r.MinDamage)
	case r.JitterStep < 0 || r.JitterMax < 0:
		return errors.New("jitter must not be negative")
	}
	return nil
}

// Cooldown returns the ticks between swings for an attack speed multiplier:
// max(MinCooldown, BaseCooldown - attackSpeed*CooldownScale).
func (r Rules) Cooldown(attackSpeed float64) int {
	raw := math.Round(float64(r.BaseCooldown) - attackSpeed*r.CooldownScale)
	if math.IsNaN(raw) || raw < float64(r.MinCooldown) {
		return r.MinCooldown
	}
	if raw > float64(r.BaseCooldown) {
		return r.BaseCooldown
	}
	return int(raw)
}

// ClampDamage forces a damage draw into [MinDamage, MaxDamage].
func (r Rules) ClampDamage(damage int) int {
	if damage < r.MinDamage {
		return r.MinDamage
	}
	if damage > r.MaxDamage {
		return r.MaxDamage
	}
	return damage
}
