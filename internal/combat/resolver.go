package combat

import (
	"fmt"

	"github.com/samdwyer/battlearena/internal/entity"
)

// HitResult describes one landed swing.
type HitResult struct {
	Attacker string
	Target   string
	Damage   int  // Damage rolled for the swing
	Taken    int  // Health actually removed after clamping at zero
	Killed   bool // The target died from this hit
	Message  string
}

// Resolver applies landed swings to their targets.
type Resolver struct {
	rules Rules
}

// NewResolver creates a resolver using the damage bounds of rules.
func NewResolver(rules Rules) *Resolver {
	return &Resolver{rules: rules}
}

// CanHit reports whether attacker's swing lands on target this tick.
// A swing lands at most once, and dead fighters neither strike nor get struck.
func (r *Resolver) CanHit(attacker, target *entity.Fighter) bool {
	if !attacker.Alive || !target.Alive || attacker.Connected {
		return false
	}
	return IsHit(attacker, target)
}

// Resolve applies damage from attacker to target. The roll is clamped to
// the rule's damage bounds before it is applied.
func (r *Resolver) Resolve(attacker, target *entity.Fighter, damage int) HitResult {
	damage = r.rules.ClampDamage(damage)
	taken := target.TakeDamage(damage)
	attacker.Connected = true

	return HitResult{
		Attacker: attacker.Name,
		Target:   target.Name,
		Damage:   damage,
		Taken:    taken,
		Killed:   !target.Alive,
		Message:  fmt.Sprintf("%s deals %d damage to %s!", attacker.Name, damage, target.Name),
	}
}
