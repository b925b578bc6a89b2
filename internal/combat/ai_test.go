package combat

import (
	"math"
	"math/rand"
	"testing"
)

func TestActionString(t *testing.T) {
	tests := []struct {
		action   Action
		expected string
	}{
		{ActionWait, "wait"},
		{ActionAdvance, "advance"},
		{ActionClose, "close"},
		{ActionSwing, "swing"},
		{Action(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.action.String(); got != tt.expected {
			t.Errorf("Action(%d).String() = %q, want %q", tt.action, got, tt.expected)
		}
	}
}

func TestRulesCooldown(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		attackSpeed float64
		want        int
	}{
		{0.5, 18},
		{1.0, 15},
		{2.0, 10},
		{3.0, 5},
		{10, rules.MinCooldown},
		{1e9, rules.MinCooldown},
		{math.NaN(), rules.MinCooldown},
	}

	for _, tt := range tests {
		if got := rules.Cooldown(tt.attackSpeed); got != tt.want {
			t.Errorf("Cooldown(%v) = %d, want %d", tt.attackSpeed, got, tt.want)
		}
	}
}

func TestRulesValidate(t *testing.T) {
	if err := DefaultRules().Validate(); err != nil {
		t.Fatalf("DefaultRules().Validate() error: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(r *Rules)
	}{
		{"zero width", func(r *Rules) { r.Arena.Width = 0 }},
		{"radius too big", func(r *Rules) { r.Arena.FighterRadius = r.Arena.Width }},
		{"margin too big", func(r *Rules) { r.Arena.Margin = r.Arena.Height }},
		{"zero move scale", func(r *Rules) { r.MoveScale = 0 }},
		{"zero min cooldown", func(r *Rules) { r.MinCooldown = 0 }},
		{"base below min", func(r *Rules) { r.BaseCooldown = 1 }},
		{"zero min damage", func(r *Rules) { r.MinDamage = 0 }},
		{"max below min", func(r *Rules) { r.MaxDamage = r.MinDamage - 1 }},
		{"negative jitter", func(r *Rules) { r.JitterMax = -1 }},
	}

	for _, tt := range tests {
		rules := DefaultRules()
		tt.mutate(&rules)
		if err := rules.Validate(); err == nil {
			t.Errorf("%s: Validate() should fail", tt.name)
		}
	}
}

func TestThinkAdvances(t *testing.T) {
	rules := DefaultRules()
	a := newTestFighter("A", 40, 80)
	b := newTestFighter("B", 40, 420)
	a.Facing = -1

	action := Think(a, *b, rules, 0)

	if action != ActionAdvance {
		t.Errorf("Think() = %v, want advance", action)
	}
	if a.Pos.X != 83 {
		t.Errorf("Pos.X = %v, want 83", a.Pos.X)
	}
	if a.Facing != 1 {
		t.Errorf("Facing = %d, want right", a.Facing)
	}
	if a.Attacking || a.Cooldown != 0 {
		t.Error("advancing fighter should not swing")
	}

	// Walking left works the same way.
	Think(b, *a, rules, 0)
	if b.Pos.X != 417 || b.Facing != -1 {
		t.Errorf("right fighter pos/facing = %v/%d, want 417/left", b.Pos.X, b.Facing)
	}
}

func TestThinkMoveSpeedScales(t *testing.T) {
	rules := DefaultRules()
	a := newTestFighter("A", 40, 80)
	b := newTestFighter("B", 40, 420)
	a.MoveSpeed = 2.5

	Think(a, *b, rules, 0)

	if want := 80 + 2.5*rules.MoveScale; a.Pos.X != want {
		t.Errorf("Pos.X = %v, want %v", a.Pos.X, want)
	}
}

func TestThinkNeverOvershoots(t *testing.T) {
	rules := DefaultRules()
	rules.MoveScale = 5
	a := newTestFighter("A", 40, 100)
	b := newTestFighter("B", 40, 152)
	a.MoveSpeed = 3

	Think(a, *b, rules, 0)

	if a.Pos.X != 112 {
		t.Errorf("Pos.X = %v, want 112 (opponent.X - reach)", a.Pos.X)
	}
}

func TestThinkSwingsInReach(t *testing.T) {
	rules := DefaultRules()
	a := newTestFighter("A", 40, 100)
	b := newTestFighter("B", 40, 135)

	action := Think(a, *b, rules, 0)

	if action != ActionSwing {
		t.Fatalf("Think() = %v, want swing", action)
	}
	if !a.Attacking || a.Connected {
		t.Errorf("after swing attacking=%v connected=%v", a.Attacking, a.Connected)
	}
	if a.Cooldown != rules.Cooldown(1.0) {
		t.Errorf("Cooldown = %d, want %d", a.Cooldown, rules.Cooldown(1.0))
	}
	if a.Pos.X != 100 {
		t.Errorf("fighter in reach should not move, Pos.X = %v", a.Pos.X)
	}
}

func TestThinkClosesInsideEngageWindow(t *testing.T) {
	rules := DefaultRules()
	a := newTestFighter("A", 40, 100)
	b := newTestFighter("B", 40, 148)

	action := Think(a, *b, rules, 0)

	if action != ActionSwing {
		t.Errorf("Think() = %v, want swing", action)
	}
	if a.Pos.X != 103 {
		t.Errorf("Pos.X = %v, want 103", a.Pos.X)
	}

	a.Connected = true
	action = Think(a, *b, rules, 0)
	if action != ActionClose {
		t.Errorf("second Think() = %v, want close while cooling down", action)
	}
	if a.Pos.X != 106 {
		t.Errorf("Pos.X = %v, want 106", a.Pos.X)
	}
}

func TestThinkCooldownCycle(t *testing.T) {
	rules := DefaultRules()
	a := newTestFighter("A", 40, 100)
	b := newTestFighter("B", 40, 130)

	Think(a, *b, rules, 0)
	cooldown := a.Cooldown
	a.Connected = true

	for i := 1; i < cooldown; i++ {
		if action := Think(a, *b, rules, 0); action != ActionWait {
			t.Fatalf("tick %d: Think() = %v, want wait", i, action)
		}
		if a.Cooldown != cooldown-i {
			t.Fatalf("tick %d: Cooldown = %d, want %d", i, a.Cooldown, cooldown-i)
		}
		if !a.Attacking {
			t.Fatalf("tick %d: swing should stay active during cooldown", i)
		}
	}

	if action := Think(a, *b, rules, 0); action != ActionSwing {
		t.Errorf("Think() after cooldown = %v, want swing", action)
	}
	if a.Connected {
		t.Error("a new swing should reset Connected")
	}
}

func TestThinkCooldownEndsSwingOutOfReach(t *testing.T) {
	rules := DefaultRules()
	a := newTestFighter("A", 40, 100)
	b := newTestFighter("B", 40, 400)
	a.Attacking = true
	a.Cooldown = 1

	Think(a, *b, rules, 0)

	if a.Attacking || a.Cooldown != 0 {
		t.Errorf("attacking=%v cooldown=%d, want false/0", a.Attacking, a.Cooldown)
	}
}

func TestThinkClampsToArena(t *testing.T) {
	rules := DefaultRules()
	a := newTestFighter("A", 40, 495)
	b := newTestFighter("B", 40, 600)

	Think(a, *b, rules, 0)

	if a.Pos.X != rules.Arena.MaxX() {
		t.Errorf("Pos.X = %v, want %v", a.Pos.X, rules.Arena.MaxX())
	}
}

func TestThinkBobIsCosmetic(t *testing.T) {
	rules := DefaultRules()
	rng := rand.New(rand.NewSource(7))
	a := newTestFighter("A", 40, 100)
	b := newTestFighter("B", 40, 400)
	laneY := a.Pos.Y

	for i := 0; i < 500; i++ {
		Think(a, *b, rules, rng.Float64()*2-1)
		if a.Pos.Y != laneY {
			t.Fatalf("tick %d: combat Y moved to %v", i, a.Pos.Y)
		}
		if math.Abs(a.Bob) > rules.JitterMax {
			t.Fatalf("tick %d: |Bob| = %v exceeds %v", i, a.Bob, rules.JitterMax)
		}
		y := a.DisplayPos(rules.Arena).Y
		if y < rules.Arena.MinY() || y > rules.Arena.MaxY() {
			t.Fatalf("tick %d: display y %v outside margins", i, y)
		}
	}
}

func TestThinkNeverCrosses(t *testing.T) {
	rules := DefaultRules()
	a := newTestFighter("A", 1, 80)
	b := newTestFighter("B", 1, 420)
	a.MoveSpeed = 1e6
	b.MoveSpeed = 1e6

	for i := 0; i < 10; i++ {
		prevA, prevB := *a, *b
		Think(a, prevB, rules, 0)
		Think(b, prevA, rules, 0)
		if a.Pos.X > b.Pos.X {
			t.Fatalf("tick %d: fighters crossed (%v > %v)", i, a.Pos.X, b.Pos.X)
		}
	}
	if d := Distance(a.Pos, b.Pos); d > 1 {
		t.Errorf("distance = %v, want fighters within reach", d)
	}
}
