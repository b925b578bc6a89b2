// Package game provides the terminal front end: it draws battle snapshots
// and feeds player input to the battle engine.
package game

import (
	"context"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/battlearena/internal/battle"
	"github.com/samdwyer/battlearena/internal/config"
	"github.com/samdwyer/battlearena/internal/gamedata"
	"github.com/samdwyer/battlearena/internal/telemetry"
	"github.com/samdwyer/battlearena/internal/ui"
)

// Game holds the screen, the engine and the input state.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	engine   *battle.Engine
	roster   *gamedata.CharacterRegistry
	input    *Input
	seed     int64
}

// New creates a game from cfg. A seed of 0 means a random seed.
func New(cfg config.Config) (*Game, error) {
	roster, err := gamedata.LoadCharacterRegistry()
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	engine, err := battle.New(cfg.Battle, battle.WithRand(rand.New(rand.NewSource(seed))))
	if err != nil {
		return nil, err
	}

	screen, err := ui.NewScreen()
	if err != nil {
		engine.Close()
		return nil, err
	}

	return &Game{
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		engine:   engine,
		roster:   roster,
		input:    NewInput(engine, roster),
		seed:     seed,
	}, nil
}

// Run executes the main loop until the player quits. Engine updates arrive
// as interrupt events, so the loop only ever blocks on PollEvent.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	_, span := tracer.Start(ctx, "game.init")
	span.SetAttributes(
		attribute.Int("roster.size", g.roster.Count()),
		attribute.Int64("seed", g.seed),
		attribute.Int64("tick_ms", g.engine.Config().TickPeriod.Milliseconds()),
	)
	span.End()

	snaps, cancel := g.engine.Subscribe()
	forwarded := make(chan struct{})
	go func() {
		defer close(forwarded)
		for snap := range snaps {
			_ = g.screen.PostEvent(tcell.NewEventInterrupt(snap))
		}
	}()

	snap := g.engine.Snapshot()
	for running := true; running; {
		g.renderer.Render(g.input.View(snap))

		switch ev := g.screen.PollEvent().(type) {
		case *tcell.EventInterrupt:
			if s, ok := ev.Data().(battle.Snapshot); ok {
				snap = s
			}
		case *tcell.EventKey:
			running = g.input.HandleKey(ctx, ev)
			snap = g.engine.Snapshot()
		case *tcell.EventMouse:
			g.input.HandleMouse(ev)
			snap = g.engine.Snapshot()
		case *tcell.EventResize:
			g.screen.Sync()
		case nil:
			running = false
		}
	}

	cancel()
	<-forwarded
	g.Close()
	return nil
}

// Close stops the engine and restores the terminal.
func (g *Game) Close() {
	if g.engine != nil {
		g.engine.Close()
	}
	if g.screen != nil {
		g.screen.Close()
		g.screen = nil
	}
}
