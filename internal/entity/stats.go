package entity

import "github.com/samdwyer/battlearena/internal/gamedata"

// Stats are the per-fighter values a player may tune before a battle.
type Stats struct {
	MaxHP       int
	AttackSpeed float64 // Multiplier; higher means shorter cooldown
	MoveSpeed   float64 // Multiplier on per-tick movement
}

// DefaultStats returns the untuned stats for a character.
func DefaultStats(def *gamedata.CharacterDef) Stats {
	return Stats{
		MaxHP:       def.HP,
		AttackSpeed: 1.0,
		MoveSpeed:   1.0,
	}
}
