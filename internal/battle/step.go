package battle

import (
	"github.com/samdwyer/battlearena/internal/combat"
	"github.com/samdwyer/battlearena/internal/entity"
)

// NoWinner marks a battle without a decided winner.
const NoWinner = -1

// State is the part of a battle that changes every tick.
type State struct {
	Fighters [2]entity.Fighter
	Tick     int
}

// Draws are the random values consumed by one tick. Damage[i] is the roll
// used if fighter i lands a hit; Jitter[i] in [-1, 1] drives its cosmetic bob.
type Draws struct {
	Damage [2]int
	Jitter [2]float64
}

// StepResult is the outcome of one tick.
type StepResult struct {
	State   State
	Actions [2]combat.Action
	Hits    []combat.HitResult
	Winner  int // Slot of the surviving fighter, or NoWinner
}

// Step advances a battle by one tick. It is a pure function of its inputs:
// both fighters decide from prev, then hits are resolved in slot order.
//
// Slot 0 strikes first. A fighter killed earlier in the same tick does not
// strike back, so both fighters can never fall on one tick; should both be
// dead anyway, slot 0 is recorded as the winner.
func Step(prev State, rules combat.Rules, draws Draws) StepResult {
	next := prev
	next.Tick++

	var result StepResult
	for i := range next.Fighters {
		result.Actions[i] = combat.Think(&next.Fighters[i], prev.Fighters[1-i], rules, draws.Jitter[i])
	}

	resolver := combat.NewResolver(rules)
	for i := range next.Fighters {
		attacker := &next.Fighters[i]
		target := &next.Fighters[1-i]
		if !resolver.CanHit(attacker, target) {
			continue
		}
		result.Hits = append(result.Hits, resolver.Resolve(attacker, target, draws.Damage[i]))
	}

	result.State = next
	result.Winner = winner(next)
	return result
}

// winner returns the slot of the survivor once somebody has fallen.
func winner(s State) int {
	a, b := s.Fighters[0].Alive, s.Fighters[1].Alive
	switch {
	case a && b:
		return NoWinner
	case b:
		return 1
	default:
		return 0
	}
}
