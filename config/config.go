// Package config loads runtime settings for the match3 tools from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/plus3/match3/board"
)

// MinEventCapacity is the smallest bounded event queue that can hold a swap and
// a three-gem pop.
const MinEventCapacity = 5

// Config holds board and processor settings.
type Config struct {
	Width           int    `env:"MATCH3_WIDTH"            envDefault:"10"`
	Height          int    `env:"MATCH3_HEIGHT"           envDefault:"10"`
	GemTypes        int    `env:"MATCH3_GEM_TYPES"        envDefault:"5"`
	Seed            uint64 `env:"MATCH3_SEED"             envDefault:"0"`
	CommandCapacity int    `env:"MATCH3_COMMAND_CAPACITY" envDefault:"0"`
	EventCapacity   int    `env:"MATCH3_EVENT_CAPACITY"   envDefault:"0"`
	LogLevel        string `env:"MATCH3_LOG_LEVEL"        envDefault:"info"`
}

// Load parses the environment and validates the board settings.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Board().Validate(); err != nil {
		return Config{}, err
	}
	if err := cfg.validateQueues(); err != nil {
		return Config{}, err
	}
	if _, err := cfg.Level(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validateQueues() error {
	if c.CommandCapacity < 0 {
		return fmt.Errorf("command capacity %d: must not be negative", c.CommandCapacity)
	}
	if c.EventCapacity < 0 || (c.EventCapacity > 0 && c.EventCapacity < MinEventCapacity) {
		return fmt.Errorf("event capacity %d: must be 0 (unbounded) or at least %d", c.EventCapacity, MinEventCapacity)
	}
	return nil
}

// Board returns the board generation settings.
func (c Config) Board() board.Config {
	return board.Config{
		Width:    c.Width,
		Height:   c.Height,
		GemTypes: c.GemTypes,
	}
}

// Level maps LogLevel to a slog level.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
