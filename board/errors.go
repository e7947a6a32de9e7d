package board

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is returned when a board cannot be generated from a Config.
	ErrInvalidConfig = errors.New("invalid board config")
	// ErrOutOfRange is returned when a position lies outside the board.
	ErrOutOfRange = errors.New("position out of range")
	// ErrNoGem is matched by NoGemError. It signals a caller contract violation.
	ErrNoGem = errors.New("no gem at position")
	// ErrNoMatches is returned when a swap would not produce any match.
	ErrNoMatches = errors.New("swap resulted in no matches")
	// ErrUnsettled is returned when a generated board cannot be cleared of matches.
	ErrUnsettled = errors.New("board did not settle")
)

// NoGemError reports the empty position a swap was attempted on.
type NoGemError struct {
	Pos Position
}

func (e *NoGemError) Error() string {
	return fmt.Sprintf("no gem at position %s", e.Pos)
}

// Is makes errors.Is(err, ErrNoGem) succeed.
func (e *NoGemError) Is(target error) bool {
	return target == ErrNoGem
}
