package battle

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/battlearena/internal/entity"
	"github.com/samdwyer/battlearena/internal/gamedata"
	"github.com/samdwyer/battlearena/internal/telemetry"
)

// Source is the random source for damage rolls and cosmetic jitter.
// *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source.
func WithRand(src Source) Option {
	return func(e *Engine) { e.rng = src }
}

// WithTicker sets the factory used for the countdown and tick timers.
func WithTicker(f TickerFunc) Option {
	return func(e *Engine) { e.newTicker = f }
}

// WithTracer sets the tracer used for battle spans.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) { e.tracer = t }
}

// Engine owns one duel: the two fighters, the phase machine, the battle log
// and the timers that drive countdown and ticks. All methods are safe to call
// from multiple goroutines; they are serialized on one mutex together with
// the timer handlers.
type Engine struct {
	mu sync.Mutex

	cfg       Config
	rng       Source
	tracer    trace.Tracer
	newTicker TickerFunc

	phase     *phaseMachine
	battleID  string
	countdown int
	picks     [2]*gamedata.CharacterDef
	state     State
	log       *Log
	winner    int
	tuning    map[string]entity.Stats // Tuned stats by character ID

	ctx    context.Context
	timer  *timer
	gen    uint64
	wg     sync.WaitGroup
	closed bool

	subs    map[int]chan Snapshot
	nextSub int
}

// New creates an idle engine. It fails only if cfg is invalid.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:       cfg,
		phase:     newPhaseMachine(),
		log:       NewLog(cfg.LogCapacity),
		winner:    NoWinner,
		tuning:    make(map[string]entity.Stats),
		ctx:       context.Background(),
		subs:      make(map[int]chan Snapshot),
		newTicker: SystemTicker,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.tracer == nil {
		e.tracer = telemetry.Tracer("battle")
	}
	return e, nil
}

// Config returns the engine's fixed configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase.Current()
}

// Select puts a in slot 0 and b in slot 1. It is only legal while idle,
// and a and b must be different characters.
func (e *Engine) Select(a, b *gamedata.CharacterDef) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if a == nil || b == nil || a.ID == b.ID || !e.selectableLocked() {
		return false
	}
	e.picks = [2]*gamedata.CharacterDef{a, b}
	e.placeLocked()
	e.publishLocked()
	return true
}

// SelectSlot puts def in one slot; nil clears the slot. Only legal while
// idle, and def must not already hold the other slot.
func (e *Engine) SelectSlot(slot int, def *gamedata.CharacterDef) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if slot < 0 || slot >= len(e.picks) || !e.selectableLocked() {
		return false
	}
	if other := e.picks[1-slot]; def != nil && other != nil && other.ID == def.ID {
		return false
	}
	e.picks[slot] = def
	e.placeLocked()
	e.publishLocked()
	return true
}

// Pick selects fighters one click at a time: the first pick fills slot 0,
// a different second pick fills slot 1, and any further pick starts over
// with the new character in slot 0. It returns the slot filled, or -1.
func (e *Engine) Pick(def *gamedata.CharacterDef) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	if def == nil || !e.selectableLocked() {
		return -1
	}

	slot := 0
	switch {
	case e.picks[0] == nil:
		e.picks[0] = def
	case e.picks[1] == nil && def.ID != e.picks[0].ID:
		e.picks[1] = def
		slot = 1
	default:
		e.picks = [2]*gamedata.CharacterDef{def, nil}
	}
	e.placeLocked()
	e.publishLocked()
	return slot
}

func (e *Engine) selectableLocked() bool {
	return !e.closed && e.phase.Current() == PhaseIdle
}

// Start begins the countdown. It is a no-op returning false unless the
// engine is idle with both slots filled.
func (e *Engine) Start(ctx context.Context) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || e.picks[0] == nil || e.picks[1] == nil {
		return false
	}
	if !e.phase.Fire(ctx, eventStart) {
		return false
	}

	e.ctx = context.WithoutCancel(ctx)
	e.battleID = uuid.NewString()
	e.log.Clear()
	e.winner = NoWinner
	e.placeLocked()
	e.countdown = e.cfg.CountdownSeconds

	_, span := e.tracer.Start(ctx, "battle.start")
	span.SetAttributes(
		attribute.String("battle.id", e.battleID),
		attribute.String("fighter.0", e.picks[0].ID),
		attribute.String("fighter.1", e.picks[1].ID),
		attribute.Int("fighter.0.max_hp", e.state.Fighters[0].MaxHP),
		attribute.Int("fighter.1.max_hp", e.state.Fighters[1].MaxHP),
		attribute.Int("countdown", e.countdown),
	)
	span.End()

	if e.countdown <= 0 {
		e.goLocked(e.ctx)
	} else {
		e.armLocked(e.cfg.CountdownPeriod, e.countdownLocked)
	}
	e.publishLocked()
	return true
}

// AdvanceCountdown performs one countdown step; it is what the one-second
// timer calls. Returns false outside the countdown phase.
func (e *Engine) AdvanceCountdown(ctx context.Context) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.countdownLocked(ctx)
}

func (e *Engine) countdownLocked(ctx context.Context) bool {
	if e.phase.Current() != PhaseCountdown {
		return false
	}
	e.countdown--
	if e.countdown <= 0 {
		e.countdown = 0
		e.goLocked(ctx)
	}
	e.publishLocked()
	return true
}

// goLocked switches from countdown to active and starts ticking.
func (e *Engine) goLocked(ctx context.Context) {
	if !e.phase.Fire(ctx, eventGo) {
		return
	}
	e.armLocked(e.cfg.TickPeriod, e.tickLocked)
}

// Tick performs one battle tick; it is what the tick timer calls.
// Returns false outside the active phase.
func (e *Engine) Tick(ctx context.Context) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tickLocked(ctx)
}

func (e *Engine) tickLocked(ctx context.Context) bool {
	if e.phase.Current() != PhaseActive {
		return false
	}
	e.applyLocked(ctx, Step(e.state, e.cfg.Rules, e.drawLocked()))
	return true
}

// TickWith performs one battle tick with caller-supplied random draws.
func (e *Engine) TickWith(ctx context.Context, draws Draws) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase.Current() != PhaseActive {
		return false
	}
	e.applyLocked(ctx, Step(e.state, e.cfg.Rules, draws))
	return true
}

func (e *Engine) applyLocked(ctx context.Context, result StepResult) {
	e.state = result.State

	for _, hit := range result.Hits {
		e.log.Append(hit.Message)

		_, span := e.tracer.Start(ctx, "battle.hit")
		span.SetAttributes(
			attribute.String("battle.id", e.battleID),
			attribute.String("attacker", hit.Attacker),
			attribute.String("target", hit.Target),
			attribute.Int("damage", hit.Damage),
			attribute.Int("tick", e.state.Tick),
		)
		if hit.Killed {
			span.SetAttributes(attribute.Bool("killed", true))
		}
		span.End()
	}

	if result.Winner != NoWinner {
		e.finishLocked(ctx, result.Winner)
	}
	e.publishLocked()
}

func (e *Engine) finishLocked(ctx context.Context, winner int) {
	if !e.phase.Fire(ctx, eventFinish) {
		return
	}
	e.winner = winner
	e.cancelTimerLocked()

	w := e.state.Fighters[winner]
	_, span := e.tracer.Start(ctx, "battle.end")
	span.SetAttributes(
		attribute.String("battle.id", e.battleID),
		attribute.String("winner", w.Def.ID),
		attribute.Int("winner.hp_remaining", w.HP),
		attribute.Int("ticks", e.state.Tick),
	)
	span.End()
}

// drawLocked rolls the random values for one tick.
func (e *Engine) drawLocked() Draws {
	rules := e.cfg.Rules
	spread := rules.MaxDamage - rules.MinDamage + 1

	var d Draws
	for i := range d.Damage {
		d.Damage[i] = rules.MinDamage + e.rng.Intn(spread)
		d.Jitter[i] = e.rng.Float64()*2 - 1
	}
	return d
}

// Reset stops any running timer, clears the log and winner, restores both
// fighters to full health at their start positions and returns to idle.
// Selections and tuned stats are kept.
func (e *Engine) Reset(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cancelTimerLocked()
	from := e.phase.Current()
	e.phase.Fire(ctx, eventReset)

	_, span := e.tracer.Start(ctx, "battle.reset")
	span.SetAttributes(
		attribute.String("battle.id", e.battleID),
		attribute.String("from_phase", from.String()),
		attribute.Int("ticks", e.state.Tick),
	)
	span.End()

	e.battleID = ""
	e.countdown = 0
	e.winner = NoWinner
	e.log.Clear()
	e.placeLocked()
	e.publishLocked()
}

// Close cancels any timer and waits for timer goroutines to exit.
// Subscriptions are closed. The engine accepts no further battles.
func (e *Engine) Close() {
	e.mu.Lock()
	e.cancelTimerLocked()
	e.closed = true
	for id, ch := range e.subs {
		close(ch)
		delete(e.subs, id)
	}
	e.mu.Unlock()

	e.wg.Wait()
}

// placeLocked rebuilds both fighters from their definitions and tuned stats
// at the arena start positions, facing each other.
func (e *Engine) placeLocked() {
	left, right := e.cfg.Rules.Arena.StartPositions()

	e.state = State{}
	if def := e.picks[0]; def != nil {
		e.state.Fighters[0] = *entity.NewFighter(def, e.statsLocked(def), left, entity.FacingRight)
	}
	if def := e.picks[1]; def != nil {
		e.state.Fighters[1] = *entity.NewFighter(def, e.statsLocked(def), right, entity.FacingLeft)
	}
}

// Snapshot returns the current state of the battle.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() Snapshot {
	return Snapshot{
		BattleID:  e.battleID,
		Phase:     e.phase.Current(),
		Countdown: e.countdown,
		Tick:      e.state.Tick,
		Arena:     e.cfg.Rules.Arena,
		Fighters:  e.state.Fighters,
		Selected:  [2]bool{e.picks[0] != nil, e.picks[1] != nil},
		Log:       e.log.Entries(),
		Winner:    e.winner,
	}
}

// Subscribe returns a channel that receives a snapshot after every state
// change. Slow readers only see the latest snapshot. The returned function
// cancels the subscription and closes the channel.
func (e *Engine) Subscribe() (<-chan Snapshot, func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ch := make(chan Snapshot, 1)
	if e.closed {
		close(ch)
		return ch, func() {}
	}
	id := e.nextSub
	e.nextSub++
	e.subs[id] = ch
	ch <- e.snapshotLocked()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			e.mu.Lock()
			defer e.mu.Unlock()
			if sub, ok := e.subs[id]; ok {
				close(sub)
				delete(e.subs, id)
			}
		})
	}
}

// publishLocked delivers the current snapshot without blocking, replacing
// any snapshot a subscriber has not read yet.
func (e *Engine) publishLocked() {
	if len(e.subs) == 0 {
		return
	}
	snap := e.snapshotLocked()
	for _, ch := range e.subs {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}
