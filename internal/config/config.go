// Package config loads process settings from the environment and an
// optional YAML tuning file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/samdwyer/battlearena/internal/battle"
)

// Environment variables read by Load.
const (
	EnvSeed   = "BATTLEARENA_SEED"
	EnvTickMS = "BATTLEARENA_TICK_MS"
	EnvTuning = "BATTLEARENA_TUNING"
)

// Config holds process configuration.
type Config struct {
	// Seed for the damage and jitter rolls. A seed of 0 means a random seed.
	Seed int64

	// Battle holds the engine configuration after defaults, the tuning file
	// and environment overrides have been applied, in that order.
	Battle battle.Config

	// TuningPath is the YAML file that was applied, if any.
	TuningPath string
}

// Load builds the configuration from the process environment.
func Load() (Config, error) {
	return LoadFrom(os.Getenv)
}

// LoadFrom builds the configuration using getenv to read variables.
func LoadFrom(getenv func(string) string) (Config, error) {
	cfg := Config{Battle: battle.DefaultConfig()}

	if path := getenv(EnvTuning); path != "" {
		if err := loadYAML(path, &cfg.Battle); err != nil {
			return Config{}, fmt.Errorf("tuning file %s: %w", path, err)
		}
		cfg.TuningPath = path
	}

	if s := getenv(EnvSeed); s != "" {
		seed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvSeed, err)
		}
		cfg.Seed = seed
	}

	if s := getenv(EnvTickMS); s != "" {
		ms, err := strconv.Atoi(s)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvTickMS, err)
		}
		cfg.Battle.TickPeriod = time.Duration(ms) * time.Millisecond
	}

	if err := cfg.Battle.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadYAML decodes the file at path over out. Fields missing from the file
// keep their current values; unknown fields are an error.
func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
