package board

import "fmt"

const (
	// MinGemTypes is the smallest palette a generated board accepts.
	MinGemTypes = 3
	// MaxDimension bounds width and height so positions fit move keys.
	MaxDimension = 1 << 15
)

// Config describes a board to generate.
type Config struct {
	Width    int
	Height   int
	GemTypes int
}

// DefaultConfig returns a 10x10 board with 5 gem types.
func DefaultConfig() Config {
	return Config{
		Width:    10,
		Height:   10,
		GemTypes: 5,
	}
}

// Validate checks the config and returns an error wrapping ErrInvalidConfig.
func (c Config) Validate() error {
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("%w: dimensions %dx%d must be at least 1x1", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.Width > MaxDimension || c.Height > MaxDimension {
		return fmt.Errorf("%w: dimensions %dx%d exceed %d", ErrInvalidConfig, c.Width, c.Height, MaxDimension)
	}
	if c.GemTypes < MinGemTypes {
		return fmt.Errorf("%w: cannot generate board with fewer than %d gem types (got %d)",
			ErrInvalidConfig, MinGemTypes, c.GemTypes)
	}
	return nil
}

// Palette returns the gem types 0..GemTypes-1.
func (c Config) Palette() []GemType {
	palette := make([]GemType, c.GemTypes)
	for i := range palette {
		palette[i] = GemType(i)
	}
	return palette
}
