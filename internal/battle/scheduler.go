package battle

import (
	"context"
	"time"
)

// Ticker delivers periodic ticks. *time.Ticker is adapted by SystemTicker.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc creates a ticker firing every d.
type TickerFunc func(d time.Duration) Ticker

type systemTicker struct {
	t *time.Ticker
}

func (s systemTicker) C() <-chan time.Time { return s.t.C }
func (s systemTicker) Stop()               { s.t.Stop() }

// SystemTicker is the TickerFunc backed by time.NewTicker.
func SystemTicker(d time.Duration) Ticker {
	return systemTicker{t: time.NewTicker(d)}
}

// timer is a running periodic handler owned by the engine.
type timer struct {
	stop chan struct{}
}

// armLocked replaces any running timer with one that calls fire every
// period. fire runs with e.mu held, so ticks never overlap each other or any
// other engine call. Every arm or cancel bumps e.gen; a tick that was already
// in flight when its timer was cancelled sees a stale generation and does
// nothing.
func (e *Engine) armLocked(period time.Duration, fire func(ctx context.Context) bool) {
	e.cancelTimerLocked()
	if e.closed {
		return
	}

	gen := e.gen
	t := &timer{stop: make(chan struct{})}
	e.timer = t
	ticker := e.newTicker(period)
	ctx := e.ctx

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		defer ticker.Stop()
		for {
			select {
			case <-t.stop:
				return
			case <-ticker.C():
				e.mu.Lock()
				if e.gen == gen {
					fire(ctx)
				}
				e.mu.Unlock()
			}
		}
	}()
}

// cancelTimerLocked stops scheduling further ticks. A tick already running
// is never interrupted.
func (e *Engine) cancelTimerLocked() {
	e.gen++
	if e.timer == nil {
		return
	}
	close(e.timer.stop)
	e.timer = nil
}

// TimerActive reports whether a countdown or tick timer is armed.
func (e *Engine) TimerActive() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.timer != nil
}
