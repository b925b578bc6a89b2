package battle

import (
	"errors"
	"fmt"
	"math"

	"github.com/samdwyer/battlearena/internal/entity"
	"github.com/samdwyer/battlearena/internal/gamedata"
)

// Tuning ranges exposed to players.
const (
	HealthMin  = 50
	HealthMax  = 200
	HealthStep = 10

	SpeedMin  = 0.5
	SpeedMax  = 3.0
	SpeedStep = 0.1
)

var (
	// ErrNotIdle is returned when stats are changed outside the idle phase.
	// A finished battle must be reset before tuning again.
	ErrNotIdle = errors.New("battle: stats can only be changed while idle")
	// ErrOutOfRange is returned for values outside the tuning ranges.
	ErrOutOfRange = errors.New("battle: value out of range")
	// ErrBadSlot is returned for slots other than 0 and 1.
	ErrBadSlot = errors.New("battle: no such fighter slot")
	// ErrNotSelected is returned when tuning an empty slot.
	ErrNotSelected = errors.New("battle: no fighter selected in slot")
)

// ValidateHealth checks a max health value: 50 to 200 in steps of 10.
func ValidateHealth(v int) error {
	if v < HealthMin || v > HealthMax || v%HealthStep != 0 {
		return fmt.Errorf("%w: health %d (want %d-%d in steps of %d)", ErrOutOfRange, v, HealthMin, HealthMax, HealthStep)
	}
	return nil
}

// ValidateSpeed checks a speed multiplier: 0.5 to 3.0 in steps of 0.1.
// It returns the value snapped to the step grid.
func ValidateSpeed(v float64) (float64, error) {
	steps := v / SpeedStep
	snapped := math.Round(steps)
	if math.IsNaN(v) || math.Abs(steps-snapped) > 1e-6 {
		return 0, fmt.Errorf("%w: speed %v is not a multiple of %v", ErrOutOfRange, v, SpeedStep)
	}
	v = snapped / 10
	if v < SpeedMin || v > SpeedMax {
		return 0, fmt.Errorf("%w: speed %v (want %v-%v)", ErrOutOfRange, v, SpeedMin, SpeedMax)
	}
	return v, nil
}

// SetHealth sets the max health of the fighter in slot. The fighter's
// current health follows it.
func (e *Engine) SetHealth(slot, value int) error {
	if err := ValidateHealth(value); err != nil {
		return err
	}
	return e.tune(slot, func(s *entity.Stats) { s.MaxHP = value })
}

// SetAttackSpeed sets the attack speed multiplier of the fighter in slot.
func (e *Engine) SetAttackSpeed(slot int, value float64) error {
	v, err := ValidateSpeed(value)
	if err != nil {
		return err
	}
	return e.tune(slot, func(s *entity.Stats) { s.AttackSpeed = v })
}

// SetMoveSpeed sets the move speed multiplier of the fighter in slot.
func (e *Engine) SetMoveSpeed(slot int, value float64) error {
	v, err := ValidateSpeed(value)
	if err != nil {
		return err
	}
	return e.tune(slot, func(s *entity.Stats) { s.MoveSpeed = v })
}

// Stats returns the tuned stats of the fighter in slot.
func (e *Engine) Stats(slot int) (entity.Stats, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if slot < 0 || slot >= len(e.picks) {
		return entity.Stats{}, ErrBadSlot
	}
	def := e.picks[slot]
	if def == nil {
		return entity.Stats{}, ErrNotSelected
	}
	return e.statsLocked(def), nil
}

// tune applies mutate to the stats of the character in slot. Stats are kept
// per character, so they survive resets and re-selection.
func (e *Engine) tune(slot int, mutate func(*entity.Stats)) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if slot < 0 || slot >= len(e.picks) {
		return ErrBadSlot
	}
	if e.closed || e.phase.Current() != PhaseIdle {
		return ErrNotIdle
	}
	def := e.picks[slot]
	if def == nil {
		return ErrNotSelected
	}

	stats := e.statsLocked(def)
	mutate(&stats)
	e.tuning[def.ID] = stats

	e.placeLocked()
	e.publishLocked()
	return nil
}

func (e *Engine) statsLocked(def *gamedata.CharacterDef) entity.Stats {
	if stats, ok := e.tuning[def.ID]; ok {
		return stats
	}
	return entity.DefaultStats(def)
}
