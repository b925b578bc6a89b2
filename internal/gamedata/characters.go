package gamedata

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// CharacterDef is an immutable fighter archetype loaded from JSON.
// Definitions are created once at startup and shared by pointer.
type CharacterDef struct {
	ID          string  `json:"id"`          // Unique identifier (e.g., "archer")
	Name        string  `json:"name"`        // Display name (e.g., "Archer")
	Glyph       string  `json:"glyph"`       // Weapon glyph shown next to the name
	Symbol      string  `json:"symbol"`      // Single character drawn in the arena
	Color       string  `json:"color"`       // Hex color code (e.g., "#3CB371")
	HP          int     `json:"hp"`          // Base health
	AttackRange float64 `json:"attackRange"` // Reach in arena distance units
}

// Validate checks that the definition can seed a fighter.
func (c *CharacterDef) Validate() error {
	if c.ID == "" {
		return errors.New("character has empty id")
	}
	if c.HP <= 0 {
		return fmt.Errorf("character %s: hp must be positive, got %d", c.ID, c.HP)
	}
	if c.AttackRange <= 0 {
		return fmt.Errorf("character %s: attackRange must be positive, got %v", c.ID, c.AttackRange)
	}
	return nil
}

// SymbolRune returns the arena symbol as a rune for rendering.
func (c *CharacterDef) SymbolRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Symbol)
	if r == utf8.RuneError {
		return '?'
	}
	return r
}

// TCellColor returns the color as a tcell.Color, white when unparseable.
func (c *CharacterDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(c.Color)
	if err != nil {
		return tcell.ColorWhite
	}
	return color
}

// CharactersFile represents the structure of characters.json.
type CharactersFile struct {
	Characters []CharacterDef `json:"characters"`
}

// LoadCharacters loads and validates the embedded character catalog.
func LoadCharacters() ([]CharacterDef, error) {
	file, err := Load[CharactersFile]("characters.json")
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(file.Characters))
	for i := range file.Characters {
		def := &file.Characters[i]
		if err := def.Validate(); err != nil {
			return nil, err
		}
		if seen[def.ID] {
			return nil, fmt.Errorf("duplicate character id %q", def.ID)
		}
		seen[def.ID] = true
	}
	return file.Characters, nil
}

// MustLoadCharacters loads character definitions, panicking on error.
func MustLoadCharacters() []CharacterDef {
	characters, err := LoadCharacters()
	if err != nil {
		panic(err)
	}
	return characters
}
