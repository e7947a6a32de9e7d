package board

import "fmt"

// Position is a cell coordinate. Row 0 is the top of the board and gravity pulls
// gems toward larger Y values.
type Position struct {
	X, Y int
}

// Pos is shorthand for Position{X: x, Y: y}.
func Pos(x, y int) Position {
	return Position{X: x, Y: y}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Add returns the position offset by d.
func (p Position) Add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

// Less orders positions row-major: by Y, then by X.
func (p Position) Less(o Position) bool {
	if p.Y != o.Y {
		return p.Y < o.Y
	}
	return p.X < o.X
}

// Adjacent reports whether o is a cardinal neighbour of p.
func (p Position) Adjacent(o Position) bool {
	dx, dy := p.X-o.X, p.Y-o.Y
	return (dx == 0 && (dy == 1 || dy == -1)) || (dy == 0 && (dx == 1 || dx == -1))
}

// ComparePositions is a row-major comparison function for slices.SortFunc.
func ComparePositions(a, b Position) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	default:
		return 0
	}
}

var cardinals = [4]Position{{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}}

// cellKey packs a position into a single integer usable as an intmap key.
// X occupies the upper 32 bits and Y the lower 32 bits.
type cellKey uint64

func keyOf(p Position) cellKey {
	return cellKey(uint64(uint32(p.X))<<32 | uint64(uint32(p.Y)))
}

func (k cellKey) position() Position {
	return Position{X: int(uint32(k >> 32)), Y: int(uint32(k & 0xFFFFFFFF))}
}
