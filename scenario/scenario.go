// Package scenario replays scripted command sequences against a processor.
//
// A scenario fixes the starting rows and the random values used for refills and
// shuffles, so the resulting event trace is fully reproducible and can be kept
// as a golden file.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/plus3/match3/board"
	"github.com/plus3/match3/processor"
	"gopkg.in/yaml.v3"
)

// Scenario is a board plus the commands to run against it.
type Scenario struct {
	// Name identifies the scenario and names its golden file.
	Name string `yaml:"name"`

	Description string `yaml:"description,omitempty"`

	// Random lists the values replayed by the board's random source.
	Random []int `yaml:"random,omitempty"`

	// Rows is the starting board, rows[y][x].
	Rows [][]board.GemType `yaml:"rows"`

	Steps []Step `yaml:"steps"`
}

// Step is a single command. Exactly one field must be set.
type Step struct {
	Swap []Coord `yaml:"swap,omitempty"`
	Pop  []Coord `yaml:"pop,omitempty"`
	// PopMatches pops whatever matches the board holds when the step runs.
	PopMatches bool `yaml:"pop_matches,omitempty"`
	Shuffle    bool `yaml:"shuffle,omitempty"`
}

// Coord is an [x, y] pair.
type Coord []int

var errInvalid = errors.New("invalid scenario")

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a scenario, rejecting unknown fields.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: name is required", errInvalid)
	}
	if len(s.Rows) == 0 {
		return fmt.Errorf("%w: rows are required", errInvalid)
	}
	for i, step := range s.Steps {
		if err := step.validate(); err != nil {
			return fmt.Errorf("%w: steps[%d]: %v", errInvalid, i, err)
		}
	}
	return nil
}

func (st Step) validate() error {
	kinds := 0
	if st.Swap != nil {
		kinds++
		if len(st.Swap) != 2 {
			return fmt.Errorf("swap needs 2 positions, got %d", len(st.Swap))
		}
	}
	if st.Pop != nil {
		kinds++
	}
	if st.PopMatches {
		kinds++
	}
	if st.Shuffle {
		kinds++
	}
	if kinds != 1 {
		return errors.New("exactly one of swap, pop, pop_matches, shuffle must be set")
	}

	for _, c := range slices.Concat(st.Swap, st.Pop) {
		if len(c) != 2 {
			return fmt.Errorf("position %v is not an [x, y] pair", []int(c))
		}
	}
	return nil
}

func (c Coord) position() board.Position {
	return board.Pos(c[0], c[1])
}

func positions(coords []Coord) []board.Position {
	out := make([]board.Position, len(coords))
	for i, c := range coords {
		out[i] = c.position()
	}
	return out
}

// command resolves the step against the current board.
func (st Step) command(b *board.Board) processor.Command {
	switch {
	case st.Swap != nil:
		return processor.Swap{A: st.Swap[0].position(), B: st.Swap[1].position()}
	case st.Pop != nil:
		return processor.Pop{Positions: positions(st.Pop)}
	case st.PopMatches:
		return processor.Pop{Positions: b.Matches().Positions()}
	default:
		return processor.Shuffle{}
	}
}
