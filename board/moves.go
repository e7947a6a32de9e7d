package board

import (
	"fmt"
	"slices"

	"github.com/kamstrup/intmap"
)

// Swap exchanges the gems at p1 and p2. The swap is kept only if the resulting
// board contains at least one match; otherwise the board is restored and
// ErrNoMatches is returned. Empty cells yield a *NoGemError.
func (b *Board) Swap(p1, p2 Position) error {
	if err := b.CheckBounds(p1); err != nil {
		return err
	}
	if err := b.CheckBounds(p2); err != nil {
		return err
	}

	t1, ok := b.gems.Get(keyOf(p1))
	if !ok {
		return &NoGemError{Pos: p1}
	}
	t2, ok := b.gems.Get(keyOf(p2))
	if !ok {
		return &NoGemError{Pos: p2}
	}

	b.exchange(p1, p2, t1, t2)
	if FindMatches(b).IsEmpty() {
		b.exchange(p1, p2, t2, t1)
		return ErrNoMatches
	}
	return nil
}

// Move is an unordered pair of adjacent positions. Build moves with NewMove so
// that equal pairs compare equal regardless of argument order.
type Move struct {
	A, B Position
}

// NewMove returns the canonical move between a and b: A is the row-major smaller position.
func NewMove(a, b Position) Move {
	if b.Less(a) {
		a, b = b, a
	}
	return Move{A: a, B: b}
}

// Key packs the canonical pair into an integer. Coordinates must be below MaxDimension.
func (m Move) Key() uint64 {
	c := NewMove(m.A, m.B)
	return uint64(uint16(c.A.X))<<48 | uint64(uint16(c.A.Y))<<32 | uint64(uint16(c.B.X))<<16 | uint64(uint16(c.B.Y))
}

// Equal compares moves ignoring order.
func (m Move) Equal(o Move) bool {
	return m.Key() == o.Key()
}

func (m Move) String() string {
	c := NewMove(m.A, m.B)
	return fmt.Sprintf("%s<->%s", c.A, c.B)
}

// CompareMoves orders canonical moves row-major by A, then by B.
func CompareMoves(x, y Move) int {
	x, y = NewMove(x.A, x.B), NewMove(y.A, y.B)
	if c := ComparePositions(x.A, y.A); c != 0 {
		return c
	}
	return ComparePositions(x.B, y.B)
}

// MatchingMoves lists every adjacent swap that would produce a match. The board
// is left untouched; candidates are tried on a scratch copy. An empty result means
// the board is deadlocked and should be shuffled.
func (b *Board) MatchingMoves() []Move {
	scratch := b.Clone()
	tried := intmap.NewSet[uint64](2 * b.width * b.height)
	var moves []Move

	for pos, typ := range b.All() {
		for _, d := range cardinals {
			other := pos.Add(d)
			otherType, ok := scratch.Get(other)
			if !ok {
				continue
			}

			move := NewMove(pos, other)
			if tried.Has(move.Key()) {
				continue
			}
			tried.Add(move.Key())

			scratch.exchange(pos, other, typ, otherType)
			matched := !FindMatches(scratch).IsEmpty()
			scratch.exchange(pos, other, otherType, typ)

			if matched {
				moves = append(moves, move)
			}
		}
	}

	slices.SortFunc(moves, CompareMoves)
	return moves
}
