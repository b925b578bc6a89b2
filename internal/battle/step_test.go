package battle

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/samdwyer/battlearena/internal/combat"
	"github.com/samdwyer/battlearena/internal/entity"
	"github.com/samdwyer/battlearena/internal/gamedata"
)

func newState(rules combat.Rules, a, b *gamedata.CharacterDef) State {
	left, right := rules.Arena.StartPositions()
	return State{Fighters: [2]entity.Fighter{
		*entity.NewFighter(a, entity.DefaultStats(a), left, entity.FacingRight),
		*entity.NewFighter(b, entity.DefaultStats(b), right, entity.FacingLeft),
	}}
}

func fixedDraws(damage int) Draws {
	return Draws{Damage: [2]int{damage, damage}}
}

// Two reach-40 fighters starting at x=80 and x=420 close in and start
// swinging on the same tick, within 80 units of each other.
func TestStepApproachThenSwing(t *testing.T) {
	rules := DefaultConfig().Rules
	state := newState(rules, testDef("A", 100, 40), testDef("B", 100, 40))

	if state.Fighters[0].Pos.X != 80 || state.Fighters[1].Pos.X != 420 {
		t.Fatalf("start x = %v/%v, want 80/420", state.Fighters[0].Pos.X, state.Fighters[1].Pos.X)
	}

	for tick := 1; tick <= 200; tick++ {
		result := Step(state, rules, fixedDraws(15))
		state = result.State
		a, b := state.Fighters[0], state.Fighters[1]

		if a.Attacking != b.Attacking {
			t.Fatalf("tick %d: attacking %v/%v, want both on the same tick", tick, a.Attacking, b.Attacking)
		}
		if a.Attacking {
			if d := combat.Distance(a.Pos, b.Pos); d > 80 {
				t.Errorf("distance when swinging = %v, want <= 80", d)
			}
			if result.Actions[0] != combat.ActionSwing || result.Actions[1] != combat.ActionSwing {
				t.Errorf("actions = %v, want both swing", result.Actions)
			}
			return
		}
		if result.Actions[0] != combat.ActionAdvance {
			t.Fatalf("tick %d: action %v before reaching range, want advance", tick, result.Actions[0])
		}
	}
	t.Fatal("fighters never started swinging")
}

// With every roll fixed at 15 and 110 HP each side, seven hits leave 5 HP
// and the eighth kills.
func TestStepFixedDamageKillsOnEighthHit(t *testing.T) {
	e, _ := newTestEngine(t, 15)
	startActive(t, e, testDef("A", 110, 40), testDef("B", 110, 40))

	hitsOnB := 0
	for tick := 0; tick < 1000 && e.Phase() == PhaseActive; tick++ {
		before := e.Snapshot().Fighters[1].HP
		e.Tick(testContext(t))
		snap := e.Snapshot()
		b := snap.Fighters[1]
		if b.HP == before {
			continue
		}
		hitsOnB++

		switch {
		case hitsOnB < 8:
			if want := 110 - hitsOnB*15; b.HP != want || !b.Alive {
				t.Fatalf("after hit %d: HP = %d alive = %v, want %d alive", hitsOnB, b.HP, b.Alive, want)
			}
			if snap.Phase != PhaseActive {
				t.Fatalf("after hit %d: phase = %v, want active", hitsOnB, snap.Phase)
			}
		case hitsOnB == 8:
			if b.HP != 0 || b.Alive {
				t.Fatalf("after hit 8: HP = %d alive = %v, want 0 dead", b.HP, b.Alive)
			}
			if snap.Phase != PhaseFinished {
				t.Fatalf("after hit 8: phase = %v, want finished", snap.Phase)
			}
			w, ok := snap.WinnerFighter()
			if !ok || snap.Winner != 0 || w.Name != "A" {
				t.Fatalf("winner = %d (%q), want slot 0", snap.Winner, w.Name)
			}
			if w.HP != 5 {
				t.Errorf("winner HP = %d, want 5 (it struck first on the last exchange)", w.HP)
			}
		}
	}

	if hitsOnB != 8 {
		t.Fatalf("hits on B = %d, want 8", hitsOnB)
	}
	if e.TimerActive() {
		t.Error("tick timer should be cancelled after the battle ends")
	}
}

func TestStepFirstSlotWinsSimultaneousLethal(t *testing.T) {
	rules := DefaultConfig().Rules
	state := newState(rules, testDef("A", 100, 40), testDef("B", 100, 40))
	for i := range state.Fighters {
		state.Fighters[i].Pos.X = 200 + float64(i)*30
		state.Fighters[i].TakeDamage(90)
	}

	result := Step(state, rules, fixedDraws(20))

	if len(result.Hits) != 1 {
		t.Fatalf("hits = %d, want 1 (the fallen fighter does not strike back)", len(result.Hits))
	}
	if result.Winner != 0 {
		t.Errorf("Winner = %d, want 0", result.Winner)
	}
	if !result.State.Fighters[0].Alive || result.State.Fighters[1].Alive {
		t.Error("slot 0 should survive and slot 1 should fall")
	}
}

func TestWinnerWhenBothDead(t *testing.T) {
	var s State
	if got := winner(s); got != 0 {
		t.Errorf("winner(both dead) = %d, want 0", got)
	}
	s.Fighters[1].Alive = true
	if got := winner(s); got != 1 {
		t.Errorf("winner(only slot 1 alive) = %d, want 1", got)
	}
	s.Fighters[0].Alive = true
	if got := winner(s); got != NoWinner {
		t.Errorf("winner(both alive) = %d, want NoWinner", got)
	}
}

func TestStepIsPure(t *testing.T) {
	rules := DefaultConfig().Rules
	state := newState(rules, testDef("A", 100, 40), testDef("B", 100, 120))
	before := state

	r1 := Step(state, rules, Draws{Damage: [2]int{12, 27}, Jitter: [2]float64{0.3, -0.8}})
	r2 := Step(state, rules, Draws{Damage: [2]int{12, 27}, Jitter: [2]float64{0.3, -0.8}})

	if !reflect.DeepEqual(state, before) {
		t.Error("Step() mutated its input state")
	}
	if !reflect.DeepEqual(r1, r2) {
		t.Error("Step() is not deterministic for identical inputs")
	}
	if r1.State.Tick != 1 {
		t.Errorf("Tick = %d, want 1", r1.State.Tick)
	}
}

func TestStepDecidesFromPriorSnapshot(t *testing.T) {
	rules := DefaultConfig().Rules
	state := newState(rules, testDef("A", 100, 40), testDef("B", 100, 40))

	result := Step(state, rules, fixedDraws(15))
	swapped := state
	swapped.Fighters[0], swapped.Fighters[1] = state.Fighters[1], state.Fighters[0]
	mirrored := Step(swapped, rules, fixedDraws(15))

	if result.State.Fighters[0].Pos != mirrored.State.Fighters[1].Pos ||
		result.State.Fighters[1].Pos != mirrored.State.Fighters[0].Pos {
		t.Error("movement depends on slot order")
	}
}

// Every pairing from the catalog, with random tuning and random rolls,
// keeps the invariants on every tick and finishes in bounded time.
func TestStepInvariantsAndTermination(t *testing.T) {
	rules := DefaultConfig().Rules
	roster := gamedata.MustLoadCharacters()
	rng := rand.New(rand.NewSource(42))
	const maxTicks = 5000

	for i := range roster {
		for j := range roster {
			a, b := &roster[i], &roster[j]
			left, right := rules.Arena.StartPositions()
			state := State{Fighters: [2]entity.Fighter{
				*entity.NewFighter(a, randomStats(rng), left, entity.FacingRight),
				*entity.NewFighter(b, randomStats(rng), right, entity.FacingLeft),
			}}

			finished := false
			for tick := 1; tick <= maxTicks; tick++ {
				draws := Draws{
					Damage: [2]int{rules.MinDamage + rng.Intn(rules.MaxDamage-rules.MinDamage+1), rules.MinDamage + rng.Intn(rules.MaxDamage-rules.MinDamage+1)},
					Jitter: [2]float64{rng.Float64()*2 - 1, rng.Float64()*2 - 1},
				}
				result := Step(state, rules, draws)
				checkInvariants(t, tick, rules, result.State.Fighters)
				for k := range state.Fighters {
					if result.State.Fighters[k].HP > state.Fighters[k].HP {
						t.Fatalf("%s vs %s tick %d: HP increased", a.ID, b.ID, tick)
					}
				}
				state = result.State
				if result.Winner != NoWinner {
					if !state.Fighters[result.Winner].Alive {
						t.Fatalf("%s vs %s: winner %d is dead", a.ID, b.ID, result.Winner)
					}
					finished = true
					break
				}
			}
			if !finished {
				t.Fatalf("%s vs %s did not finish within %d ticks", a.ID, b.ID, maxTicks)
			}
		}
	}
}

func randomStats(rng *rand.Rand) entity.Stats {
	return entity.Stats{
		MaxHP:       HealthMin + HealthStep*rng.Intn((HealthMax-HealthMin)/HealthStep+1),
		AttackSpeed: float64(5+rng.Intn(26)) / 10,
		MoveSpeed:   float64(5+rng.Intn(26)) / 10,
	}
}

func TestStepExtremeMultipliersKeepInvariants(t *testing.T) {
	rules := DefaultConfig().Rules
	state := newState(rules, testDef("A", 100, 40), testDef("B", 100, 40))
	state.Fighters[0].MoveSpeed = 1e6
	state.Fighters[0].AttackSpeed = 1e6
	state.Fighters[1].MoveSpeed = 1e6

	for tick := 1; tick <= 500; tick++ {
		result := Step(state, rules, Draws{Damage: [2]int{1e6, -1e6}, Jitter: [2]float64{5, -5}})
		checkInvariants(t, tick, rules, result.State.Fighters)
		state = result.State
		if result.Winner != NoWinner {
			return
		}
	}
	t.Fatal("battle with extreme multipliers did not finish")
}
