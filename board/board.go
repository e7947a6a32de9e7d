// Package board implements the grid state of a match-3 puzzle: match detection,
// swap validation, gravity, refill, shuffling and move hints.
//
// A Board is a plain value owned by its caller. It is not safe for concurrent use;
// exactly one writer (normally a processor.Processor) should mutate it at a time.
package board

import (
	"errors"
	"fmt"
	"iter"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/kamstrup/intmap"
)

// GemType identifies the logical category of a gem.
type GemType uint32

// Board is a width x height grid of gems drawn from a palette.
// Cells may be empty only while a pop is being processed.
type Board struct {
	width   int
	height  int
	palette []GemType
	gems    *intmap.Map[cellKey, GemType]
	rng     Rand
}

// New generates a random board from cfg and settles it so that it contains no matches.
// It returns an error wrapping ErrUnsettled if rng keeps producing matches.
func New(cfg Config, rng Rand) (*Board, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, errors.New("board: nil random source")
	}

	b := &Board{
		width:   cfg.Width,
		height:  cfg.Height,
		palette: cfg.Palette(),
		gems:    intmap.New[cellKey, GemType](cfg.Width * cfg.Height),
		rng:     rng,
	}

	for y := range b.height {
		for x := range b.width {
			b.gems.Put(keyOf(Pos(x, y)), b.randomType())
		}
	}

	if !b.settle(maxSettlePasses) {
		return nil, fmt.Errorf("%w: still matching after %d passes", ErrUnsettled, maxSettlePasses)
	}
	return b, nil
}

// FromRows builds a board from literal rows, rows[y][x]. The palette is the set of
// distinct types present. A nil rng selects a fixed-seed generator.
func FromRows(rows [][]GemType, rng Rand) (*Board, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty rows", ErrInvalidConfig)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 2))
	}

	width := len(rows[0])
	b := &Board{
		width:  width,
		height: len(rows),
		gems:   intmap.New[cellKey, GemType](width * len(rows)),
		rng:    rng,
	}

	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidConfig, y, len(row), width)
		}
		for x, typ := range row {
			b.gems.Put(keyOf(Pos(x, y)), typ)
			if !slices.Contains(b.palette, typ) {
				b.palette = append(b.palette, typ)
			}
		}
	}
	slices.Sort(b.palette)

	return b, nil
}

// Width returns the number of columns.
func (b *Board) Width() int {
	return b.width
}

// Height returns the number of rows.
func (b *Board) Height() int {
	return b.height
}

// Palette returns a copy of the gem types the board draws from.
func (b *Board) Palette() []GemType {
	return slices.Clone(b.palette)
}

// InBounds reports whether pos lies on the board.
func (b *Board) InBounds(pos Position) bool {
	return pos.X >= 0 && pos.X < b.width && pos.Y >= 0 && pos.Y < b.height
}

// CheckBounds returns an error wrapping ErrOutOfRange if pos is off the board.
func (b *Board) CheckBounds(pos Position) error {
	if !b.InBounds(pos) {
		return fmt.Errorf("%w: %s on %dx%d board", ErrOutOfRange, pos, b.width, b.height)
	}
	return nil
}

// Get returns the gem at pos. The second result is false for empty or
// out-of-range cells.
func (b *Board) Get(pos Position) (GemType, bool) {
	if !b.InBounds(pos) {
		return 0, false
	}
	return b.gems.Get(keyOf(pos))
}

// All iterates the occupied cells in row-major order. The sequence reads the
// current state each time it is ranged over.
func (b *Board) All() iter.Seq2[Position, GemType] {
	return func(yield func(Position, GemType) bool) {
		for y := range b.height {
			for x := range b.width {
				pos := Pos(x, y)
				typ, ok := b.gems.Get(keyOf(pos))
				if !ok {
					continue
				}
				if !yield(pos, typ) {
					return
				}
			}
		}
	}
}

// Len returns the number of occupied cells.
func (b *Board) Len() int {
	return b.gems.Len()
}

// Full reports whether every cell holds a gem.
func (b *Board) Full() bool {
	return b.gems.Len() == b.width*b.height
}

// Remove empties the cell at pos and reports whether a gem was there.
func (b *Board) Remove(pos Position) bool {
	if !b.InBounds(pos) {
		return false
	}
	return b.gems.Del(keyOf(pos))
}

// Matches runs FindMatches over the board.
func (b *Board) Matches() Matches {
	return FindMatches(b)
}

// Clone returns a deep copy sharing the random source.
func (b *Board) Clone() *Board {
	c := &Board{
		width:   b.width,
		height:  b.height,
		palette: slices.Clone(b.palette),
		gems:    intmap.New[cellKey, GemType](b.width * b.height),
		rng:     b.rng,
	}
	for k, v := range b.gems.All() {
		c.gems.Put(k, v)
	}
	return c
}

// Equal reports whether both boards have the same dimensions and cell contents.
func (b *Board) Equal(o *Board) bool {
	if b.width != o.width || b.height != o.height || b.gems.Len() != o.gems.Len() {
		return false
	}
	for k, v := range b.gems.All() {
		ov, ok := o.gems.Get(k)
		if !ok || ov != v {
			return false
		}
	}
	return true
}

// String renders one bracketed row per line; empty cells print as "-".
func (b *Board) String() string {
	var sb strings.Builder
	for y := range b.height {
		sb.WriteByte('[')
		for x := range b.width {
			if x > 0 {
				sb.WriteString(", ")
			}
			if typ, ok := b.gems.Get(keyOf(Pos(x, y))); ok {
				fmt.Fprintf(&sb, "%d", typ)
			} else {
				sb.WriteByte('-')
			}
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}

func (b *Board) randomType() GemType {
	return b.palette[b.rng.IntN(len(b.palette))]
}

// exchange swaps the contents of two occupied cells without any validation.
func (b *Board) exchange(p1, p2 Position, t1, t2 GemType) {
	b.gems.Put(keyOf(p1), t2)
	b.gems.Put(keyOf(p2), t1)
}
