package board

import "fmt"

// ShuffleMove records a gem relocated by a shuffle.
type ShuffleMove struct {
	From Position
	To   Position
}

func (m ShuffleMove) String() string {
	return fmt.Sprintf("%s->%s", m.From, m.To)
}

// Shuffle randomly redistributes the existing gems over the occupied cells.
// Only gems whose position changed are reported, ordered by From row-major.
// A gem may land on its own cell, and the result may still contain matches or
// no legal move; callers re-query after shuffling.
func (b *Board) Shuffle() []ShuffleMove {
	var positions []Position
	var types []GemType
	for pos, typ := range b.All() {
		positions = append(positions, pos)
		types = append(types, typ)
	}

	// dest[i] is where the gem from positions[i] ends up.
	dest := make([]int, len(positions))
	for i := range dest {
		dest[i] = i
	}
	b.rng.Shuffle(len(dest), func(i, j int) {
		dest[i], dest[j] = dest[j], dest[i]
	})

	var moves []ShuffleMove
	for i, j := range dest {
		b.gems.Put(keyOf(positions[j]), types[i])
		if i != j {
			moves = append(moves, ShuffleMove{From: positions[i], To: positions[j]})
		}
	}
	return moves
}
