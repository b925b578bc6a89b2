// Package battle runs a duel between two fighters: countdown, fixed-period
// ticks, hit resolution, the battle log and win detection.
package battle

import (
	"context"

	"github.com/looplab/fsm"
)

// Phase represents the current stage of a battle.
type Phase int

const (
	// PhaseIdle - fighters may be picked and tuned
	PhaseIdle Phase = iota
	// PhaseCountdown - counting down to the first tick
	PhaseCountdown
	// PhaseActive - ticking
	PhaseActive
	// PhaseFinished - one fighter has fallen
	PhaseFinished
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCountdown:
		return "countdown"
	case PhaseActive:
		return "active"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

func parsePhase(s string) Phase {
	for _, p := range []Phase{PhaseIdle, PhaseCountdown, PhaseActive, PhaseFinished} {
		if p.String() == s {
			return p
		}
	}
	return Phase(-1)
}

// Phase machine events.
const (
	eventStart  = "start"
	eventGo     = "go"
	eventFinish = "finish"
	eventReset  = "reset"
)

// phaseMachine guards the Idle -> Countdown -> Active -> Finished cycle.
// reset is legal from every phase except Idle, where it has nothing to do.
type phaseMachine struct {
	fsm *fsm.FSM
}

func newPhaseMachine() *phaseMachine {
	idle := PhaseIdle.String()
	countdown := PhaseCountdown.String()
	active := PhaseActive.String()
	finished := PhaseFinished.String()

	return &phaseMachine{
		fsm: fsm.NewFSM(
			idle,
			fsm.Events{
				{Name: eventStart, Src: []string{idle}, Dst: countdown},
				{Name: eventGo, Src: []string{countdown}, Dst: active},
				{Name: eventFinish, Src: []string{active}, Dst: finished},
				{Name: eventReset, Src: []string{countdown, active, finished}, Dst: idle},
			},
			fsm.Callbacks{},
		),
	}
}

// Current returns the phase the machine is in.
func (m *phaseMachine) Current() Phase {
	return parsePhase(m.fsm.Current())
}

// Fire applies event and reports whether the transition happened.
func (m *phaseMachine) Fire(ctx context.Context, event string) bool {
	if !m.fsm.Can(event) {
		return false
	}
	return m.fsm.Event(ctx, event) == nil
}
