package combat

import (
	"math"

	"github.com/samdwyer/battlearena/internal/entity"
)

// Action is what a fighter decided to do on a tick.
type Action int

const (
	// ActionWait - in reach but still cooling down
	ActionWait Action = iota
	// ActionAdvance - too far away, walking toward the opponent
	ActionAdvance
	// ActionClose - inside the engage window, stepping into hit range
	ActionClose
	// ActionSwing - started a new attack
	ActionSwing
)

// String returns a human-readable action name.
func (a Action) String() string {
	switch a {
	case ActionWait:
		return "wait"
	case ActionAdvance:
		return "advance"
	case ActionClose:
		return "close"
	case ActionSwing:
		return "swing"
	default:
		return "unknown"
	}
}

// Think runs one tick of AI for self against opponent and mutates self in place.
//
// opponent is taken by value: both fighters decide from the same prior
// snapshot, so the order Think is called in does not matter. jitter is a
// random draw in [-1, 1] that only moves the cosmetic bob. Think never
// applies damage.
func Think(self *entity.Fighter, opponent entity.Fighter, rules Rules, jitter float64) Action {
	if self.Cooldown > 0 {
		self.Cooldown--
		if self.Cooldown == 0 {
			self.Attacking = false
		}
	}

	action := ActionWait
	reach := self.AttackRange()
	d := Distance(self.Pos, opponent.Pos)

	if d > reach+rules.ApproachMargin {
		self.Facing = facingToward(self, opponent)
		self.Pos.X = approach(self.Pos.X, opponent.Pos.X, reach, self.MoveSpeed*rules.MoveScale)
		action = ActionAdvance
	} else {
		// Stopping anywhere in the margin would leave the opponent out of
		// reach for good, so keep stepping in while winding up.
		if d > reach {
			self.Facing = facingToward(self, opponent)
			self.Pos.X = approach(self.Pos.X, opponent.Pos.X, reach, self.MoveSpeed*rules.MoveScale)
			action = ActionClose
		}
		if self.Cooldown == 0 {
			self.Attacking = true
			self.Connected = false
			self.Cooldown = rules.Cooldown(self.AttackSpeed)
			action = ActionSwing
		}
	}

	self.Pos.X = rules.Arena.ClampX(self.Pos.X)
	self.Bob = sway(self, rules, jitter)
	return action
}

// approach moves x toward ox by at most step, stopping reach short of ox.
// It never moves backward or past the midpoint of the gap: both fighters
// move on the same tick, and each claiming only half the gap keeps them
// from passing through each other.
func approach(x, ox, reach, step float64) float64 {
	if step <= 0 || math.IsNaN(step) {
		return x
	}
	step = math.Min(step, math.Abs(ox-x)/2)
	if ox >= x {
		goal := ox - reach
		if goal <= x {
			return x
		}
		return math.Min(x+step, goal)
	}
	goal := ox + reach
	if goal >= x {
		return x
	}
	return math.Max(x-step, goal)
}

func facingToward(self *entity.Fighter, opponent entity.Fighter) int {
	switch {
	case opponent.Pos.X > self.Pos.X:
		return entity.FacingRight
	case opponent.Pos.X < self.Pos.X:
		return entity.FacingLeft
	default:
		return self.Facing
	}
}

// sway advances the cosmetic bob by a random walk bounded by JitterMax,
// keeping the drawn position inside the arena's vertical margins.
func sway(self *entity.Fighter, rules Rules, jitter float64) float64 {
	if math.IsNaN(jitter) {
		jitter = 0
	}
	jitter = math.Max(-1, math.Min(1, jitter))
	bob := self.Bob + jitter*rules.JitterStep
	bob = math.Max(-rules.JitterMax, math.Min(rules.JitterMax, bob))
	return rules.Arena.ClampY(self.Pos.Y+bob) - self.Pos.Y
}
