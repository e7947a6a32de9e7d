package board

import (
	"slices"

	"github.com/kamstrup/intmap"
)

// MinMatchLength is the shortest run that counts as a match.
const MinMatchLength = 3

// Direction is the orientation of a straight match.
type Direction uint8

const (
	Horizontal Direction = iota
	Vertical
)

func (d Direction) String() string {
	if d == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Grid is the read-only view FindMatches scans.
type Grid interface {
	Width() int
	Height() int
	Get(pos Position) (GemType, bool)
}

// Match is a straight run of at least MinMatchLength gems of one type,
// listed in scan order.
type Match struct {
	Direction Direction
	Type      GemType
	Positions []Position
}

// Matches is the result of one detection pass. A position may belong to more
// than one match where a horizontal and a vertical run cross.
type Matches struct {
	matches []Match
}

// Len returns the number of matches.
func (m Matches) Len() int {
	return len(m.matches)
}

// IsEmpty reports whether no match was found.
func (m Matches) IsEmpty() bool {
	return len(m.matches) == 0
}

// All returns the matches in scan order: every horizontal match, then every vertical one.
func (m Matches) All() []Match {
	return m.matches
}

// Positions flattens the matches into a deduplicated, row-major sorted slice.
func (m Matches) Positions() []Position {
	seen := intmap.NewSet[cellKey](len(m.matches) * MinMatchLength)
	for _, mat := range m.matches {
		for _, pos := range mat.Positions {
			seen.Add(keyOf(pos))
		}
	}

	positions := make([]Position, 0, seen.Len())
	for k := range seen.All() {
		positions = append(positions, k.position())
	}
	slices.SortFunc(positions, ComparePositions)
	return positions
}

// Contains reports whether pos is part of any match.
func (m Matches) Contains(pos Position) bool {
	for _, mat := range m.matches {
		if slices.Contains(mat.Positions, pos) {
			return true
		}
	}
	return false
}

// FindMatches scans g row by row and then column by column, reporting every run
// of MinMatchLength or more equal gems. Empty cells break runs.
func FindMatches(g Grid) Matches {
	var m Matches
	m.scan(g, Horizontal)
	m.scan(g, Vertical)
	return m
}

func (m *Matches) scan(g Grid, dir Direction) {
	lines, length := g.Height(), g.Width()
	if dir == Vertical {
		lines, length = g.Width(), g.Height()
	}

	var run []Position
	var runType GemType

	flush := func() {
		if len(run) >= MinMatchLength {
			m.matches = append(m.matches, Match{
				Direction: dir,
				Type:      runType,
				Positions: slices.Clone(run),
			})
		}
		run = run[:0]
	}

	for line := range lines {
		for i := range length {
			pos := Pos(i, line)
			if dir == Vertical {
				pos = Pos(line, i)
			}

			typ, ok := g.Get(pos)
			if !ok {
				flush()
				continue
			}
			if len(run) > 0 && typ != runType {
				flush()
			}
			runType = typ
			run = append(run, pos)
		}
		flush()
	}
}
