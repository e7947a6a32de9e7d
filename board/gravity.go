package board

import (
	"cmp"
	"fmt"
)

// Drop records a gem falling from one cell to a lower cell of the same column.
type Drop struct {
	From Position
	To   Position
}

func (d Drop) String() string {
	return fmt.Sprintf("%s->%s", d.From, d.To)
}

// CompareDrops orders drops by From.Y descending, so gems that start lower on the
// board come first. Ties break on From.X ascending, then To.Y descending.
func CompareDrops(a, b Drop) int {
	if c := cmp.Compare(b.From.Y, a.From.Y); c != 0 {
		return c
	}
	if c := cmp.Compare(a.From.X, b.From.X); c != 0 {
		return c
	}
	return cmp.Compare(b.To.Y, a.To.Y)
}

// Spawn records a new gem placed in a previously empty cell.
type Spawn struct {
	Pos  Position
	Type GemType
}

func (s Spawn) String() string {
	return fmt.Sprintf("%s=%d", s.Pos, s.Type)
}

// Drop collapses every column: scanning bottom-up, each empty cell receives the
// nearest gem above it. Every relocated gem is reported once, column by column.
// A board without empty cells returns nil.
func (b *Board) Drop() []Drop {
	if b.Full() {
		return nil
	}

	var drops []Drop
	for x := range b.width {
		write := b.height - 1
		for read := b.height - 1; read >= 0; read-- {
			from := Pos(x, read)
			typ, ok := b.gems.Get(keyOf(from))
			if !ok {
				continue
			}
			if read != write {
				to := Pos(x, write)
				b.gems.Del(keyOf(from))
				b.gems.Put(keyOf(to), typ)
				drops = append(drops, Drop{From: from, To: to})
			}
			write--
		}
	}
	return drops
}

// Fill places a random palette gem in every empty cell, in row-major order.
func (b *Board) Fill() []Spawn {
	if b.Full() {
		return nil
	}

	var spawns []Spawn
	for y := range b.height {
		for x := range b.width {
			pos := Pos(x, y)
			if b.gems.Has(keyOf(pos)) {
				continue
			}
			typ := b.randomType()
			b.gems.Put(keyOf(pos), typ)
			spawns = append(spawns, Spawn{Pos: pos, Type: typ})
		}
	}
	return spawns
}

// maxSettlePasses bounds the remove/drop/fill passes New spends settling a board.
const maxSettlePasses = 10_000

// ClearMatches removes every match, collapses and refills until the board is
// match free. A random source that keeps producing matches, such as an empty
// Sequence drawing one type forever, makes it loop without end; New bounds the
// passes instead.
func (b *Board) ClearMatches() {
	b.settle(0)
}

// settle runs ClearMatches passes and reports whether the board ended match
// free. A limit of 0 means no limit.
func (b *Board) settle(limit int) bool {
	for pass := 0; limit == 0 || pass < limit; pass++ {
		matches := FindMatches(b)
		if matches.IsEmpty() {
			return true
		}
		for _, pos := range matches.Positions() {
			b.Remove(pos)
		}
		b.Drop()
		b.Fill()
	}
	return FindMatches(b).IsEmpty()
}
