package board_test

import (
	"math/rand/v2"
	"testing"

	"github.com/plus3/match3/board"
)

func benchBoard(b *testing.B, size int) *board.Board {
	b.Helper()
	brd, err := board.New(board.Config{Width: size, Height: size, GemTypes: 6}, rand.New(rand.NewPCG(1, 2)))
	if err != nil {
		b.Fatal(err)
	}
	return brd
}

func BenchmarkFindMatches(b *testing.B) {
	brd := benchBoard(b, 10)
	b.ResetTimer()
	for b.Loop() {
		board.FindMatches(brd)
	}
}

func BenchmarkMatchingMoves(b *testing.B) {
	brd := benchBoard(b, 10)
	b.ResetTimer()
	for b.Loop() {
		brd.MatchingMoves()
	}
}

func BenchmarkPopDropFill(b *testing.B) {
	brd := benchBoard(b, 10)
	b.ResetTimer()
	for b.Loop() {
		for x := range brd.Width() {
			brd.Remove(board.Pos(x, 5))
		}
		brd.Drop()
		brd.Fill()
	}
}
