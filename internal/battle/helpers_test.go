package battle

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/samdwyer/battlearena/internal/combat"
	"github.com/samdwyer/battlearena/internal/entity"
	"github.com/samdwyer/battlearena/internal/gamedata"
	"github.com/samdwyer/battlearena/internal/telemetry"
)

// fixedSource rolls the same damage every time and no jitter.
type fixedSource struct {
	damage int
	rules  combat.Rules
}

func (s fixedSource) Intn(n int) int {
	v := s.damage - s.rules.MinDamage
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

func (s fixedSource) Float64() float64 { return 0.5 }

// manualTicker only fires when a test sends on it.
type manualTicker struct {
	ch      chan time.Time
	period  time.Duration
	stopped atomic.Bool
}

func (m *manualTicker) C() <-chan time.Time { return m.ch }
func (m *manualTicker) Stop()               { m.stopped.Store(true) }

func (m *manualTicker) fire() { m.ch <- time.Now() }

type manualClock struct {
	mu      sync.Mutex
	tickers []*manualTicker
}

func (c *manualClock) NewTicker(d time.Duration) Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTicker{ch: make(chan time.Time, 1), period: d}
	c.tickers = append(c.tickers, t)
	return t
}

func (c *manualClock) ticker(i int) *manualTicker {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i >= len(c.tickers) {
		return nil
	}
	return c.tickers[i]
}

func (c *manualClock) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tickers)
}

func testDef(id string, hp int, reach float64) *gamedata.CharacterDef {
	return &gamedata.CharacterDef{ID: id, Name: id, Symbol: "x", Color: "#FFFFFF", HP: hp, AttackRange: reach}
}

// newTestEngine creates an engine with manual timers and fixed damage rolls.
func newTestEngine(t *testing.T, damage int) (*Engine, *manualClock) {
	t.Helper()
	cfg := DefaultConfig()
	clock := &manualClock{}
	e, err := New(cfg,
		WithRand(fixedSource{damage: damage, rules: cfg.Rules}),
		WithTicker(clock.NewTicker),
		WithTracer(telemetry.NoopTracer()),
	)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(e.Close)
	return e, clock
}

// startActive selects a and b and runs the countdown to completion by hand.
func startActive(t *testing.T, e *Engine, a, b *gamedata.CharacterDef) {
	t.Helper()
	if !e.Select(a, b) {
		t.Fatal("Select() = false")
	}
	if !e.Start(testContext(t)) {
		t.Fatal("Start() = false")
	}
	for i := 0; i < 10 && e.Phase() == PhaseCountdown; i++ {
		e.AdvanceCountdown(testContext(t))
	}
	if e.Phase() != PhaseActive {
		t.Fatalf("Phase() = %v, want active", e.Phase())
	}
}

func waitFor(t *testing.T, ch <-chan Snapshot, what string, pred func(Snapshot) bool) Snapshot {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case s, ok := <-ch:
			if !ok {
				t.Fatalf("subscription closed while waiting for %s", what)
			}
			if pred(s) {
				return s
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %s", what)
		}
	}
}

// checkInvariants fails the test if a fighter breaks a state invariant.
func checkInvariants(t *testing.T, tick int, rules combat.Rules, fighters [2]entity.Fighter) {
	t.Helper()
	for i, f := range fighters {
		if f.HP < 0 || f.HP > f.MaxHP {
			t.Fatalf("tick %d: fighter %d HP %d outside [0, %d]", tick, i, f.HP, f.MaxHP)
		}
		if f.Alive != (f.HP > 0) {
			t.Fatalf("tick %d: fighter %d alive=%v with HP %d", tick, i, f.Alive, f.HP)
		}
		if f.Pos.X < rules.Arena.MinX() || f.Pos.X > rules.Arena.MaxX() {
			t.Fatalf("tick %d: fighter %d x=%v outside arena", tick, i, f.Pos.X)
		}
		if f.Cooldown < 0 {
			t.Fatalf("tick %d: fighter %d cooldown %d", tick, i, f.Cooldown)
		}
	}
}

var testContexts sync.Map // testing.TB -> context.Context

// testContext stands in for t.Context (Go 1.24+) on older toolchains: it
// returns one context per test that is cancelled when the test finishes.
func testContext(t testing.TB) context.Context {
	if ctx, ok := testContexts.Load(t); ok {
		return ctx.(context.Context)
	}
	ctx, cancel := context.WithCancel(context.Background())
	testContexts.Store(t, ctx)
	t.Cleanup(func() {
		cancel()
		testContexts.Delete(t)
	})
	return ctx
}
