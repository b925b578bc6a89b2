package battle

import (
	"fmt"
	"time"

	"github.com/samdwyer/battlearena/internal/combat"
)

const (
	DefaultTickPeriod       = 100 * time.Millisecond
	DefaultCountdownPeriod  = time.Second
	DefaultCountdownSeconds = 5
	DefaultLogCapacity      = 5
)

// Config holds the fixed parameters of a battle. They are process-wide and
// cannot be changed through the engine API once it is built.
type Config struct {
	Rules            combat.Rules  `yaml:"rules"`
	TickPeriod       time.Duration `yaml:"tickPeriod"`
	CountdownPeriod  time.Duration `yaml:"countdownPeriod"`
	CountdownSeconds int           `yaml:"countdownSeconds"`
	LogCapacity      int           `yaml:"logCapacity"`
}

// DefaultConfig returns the standard battle configuration: a 5 second
// countdown followed by 100 ms ticks.
func DefaultConfig() Config {
	return Config{
		Rules:            combat.DefaultRules(),
		TickPeriod:       DefaultTickPeriod,
		CountdownPeriod:  DefaultCountdownPeriod,
		CountdownSeconds: DefaultCountdownSeconds,
		LogCapacity:      DefaultLogCapacity,
	}
}

// Validate checks the timing parameters and the combat rules.
func (c Config) Validate() error {
	if c.TickPeriod <= 0 {
		return fmt.Errorf("tick period must be positive, got %v", c.TickPeriod)
	}
	if c.CountdownPeriod <= 0 {
		return fmt.Errorf("countdown period must be positive, got %v", c.CountdownPeriod)
	}
	if c.CountdownSeconds < 0 {
		return fmt.Errorf("countdown must not be negative, got %d", c.CountdownSeconds)
	}
	if c.LogCapacity < 1 {
		return fmt.Errorf("log capacity must be at least 1, got %d", c.LogCapacity)
	}
	if err := c.Rules.Validate(); err != nil {
		return fmt.Errorf("invalid rules: %w", err)
	}
	return nil
}
