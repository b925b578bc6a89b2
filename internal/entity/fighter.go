// Package entity provides the live per-battle state of a fighter.
package entity

import (
	"github.com/samdwyer/battlearena/internal/gamedata"
	"github.com/samdwyer/battlearena/internal/world"
)

// Facing directions along the x axis.
const (
	FacingLeft  = -1
	FacingRight = 1
)

// Fighter is one combatant's mutable state for the duration of a battle.
// It holds no slices or maps, so a plain copy is an independent snapshot;
// Def is shared and must be treated as read-only.
type Fighter struct {
	Def  *gamedata.CharacterDef
	Name string

	HP, MaxHP   int
	AttackSpeed float64
	MoveSpeed   float64
	Alive       bool

	Pos    world.Point // Combat position; hit detection uses this
	Bob    float64     // Cosmetic vertical offset, never used for combat
	Facing int         // FacingLeft or FacingRight

	Attacking bool
	Connected bool // The current swing has already landed
	Cooldown  int  // Ticks until the next swing may start
}

// NewFighter creates a fighter for def with the given stats, standing at pos.
func NewFighter(def *gamedata.CharacterDef, stats Stats, pos world.Point, facing int) *Fighter {
	f := &Fighter{
		Def:         def,
		Name:        def.Name,
		AttackSpeed: stats.AttackSpeed,
		MoveSpeed:   stats.MoveSpeed,
		MaxHP:       stats.MaxHP,
	}
	if f.MaxHP <= 0 {
		f.MaxHP = def.HP
	}
	f.Restore(pos, facing)
	return f
}

// Restore returns the fighter to full health at pos with no swing in progress.
func (f *Fighter) Restore(pos world.Point, facing int) {
	f.HP = f.MaxHP
	f.Alive = f.HP > 0
	f.Pos = pos
	f.Bob = 0
	f.Facing = facing
	f.Attacking = false
	f.Connected = false
	f.Cooldown = 0
}

// IsAlive returns true if the fighter has health remaining.
func (f *Fighter) IsAlive() bool { return f.Alive }

// AttackRange returns the reach of the fighter's weapon.
func (f *Fighter) AttackRange() float64 { return f.Def.AttackRange }

// TakeDamage reduces health, clamped at zero, and returns the damage taken.
// Alive is updated together with HP.
func (f *Fighter) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if actual > f.HP {
		actual = f.HP
	}
	f.HP -= actual
	f.Alive = f.HP > 0
	return actual
}

// HealthFraction returns HP/MaxHP in [0, 1] for health bars.
func (f *Fighter) HealthFraction() float64 {
	if f.MaxHP <= 0 {
		return 0
	}
	return float64(f.HP) / float64(f.MaxHP)
}

// DisplayPos is where a renderer should draw the fighter.
func (f *Fighter) DisplayPos(arena world.Arena) world.Point {
	return world.Point{X: f.Pos.X, Y: arena.ClampY(f.Pos.Y + f.Bob)}
}
