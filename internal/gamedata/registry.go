package gamedata

import "errors"

// CharacterRegistry holds the loaded roster in catalog order.
type CharacterRegistry struct {
	characters []CharacterDef
	byID       map[string]*CharacterDef
}

// NewCharacterRegistry creates a registry from loaded character definitions.
func NewCharacterRegistry(characters []CharacterDef) *CharacterRegistry {
	registry := &CharacterRegistry{
		characters: characters,
		byID:       make(map[string]*CharacterDef, len(characters)),
	}
	for i := range characters {
		registry.byID[characters[i].ID] = &characters[i]
	}
	return registry
}

// LoadCharacterRegistry loads and creates a registry from the embedded characters.json.
func LoadCharacterRegistry() (*CharacterRegistry, error) {
	characters, err := LoadCharacters()
	if err != nil {
		return nil, err
	}
	if len(characters) == 0 {
		return nil, errors.New("no characters loaded from characters.json")
	}
	return NewCharacterRegistry(characters), nil
}

// MustLoadCharacterRegistry loads a registry, panicking on error.
func MustLoadCharacterRegistry() *CharacterRegistry {
	registry, err := LoadCharacterRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the character with the given ID, or nil if not found.
func (r *CharacterRegistry) GetByID(id string) *CharacterDef {
	return r.byID[id]
}

// GetByIndex returns the character at the given roster position, or nil.
func (r *CharacterRegistry) GetByIndex(index int) *CharacterDef {
	if index < 0 || index >= len(r.characters) {
		return nil
	}
	return &r.characters[index]
}

// IndexOf returns the roster position of the character, or -1.
func (r *CharacterRegistry) IndexOf(id string) int {
	for i := range r.characters {
		if r.characters[i].ID == id {
			return i
		}
	}
	return -1
}

// All returns all character definitions.
func (r *CharacterRegistry) All() []CharacterDef {
	return r.characters
}

// Count returns the number of characters in the registry.
func (r *CharacterRegistry) Count() int {
	return len(r.characters)
}
