package processor

import (
	"fmt"
	"strings"

	"github.com/plus3/match3/board"
)

// Event is an observable outcome of a drained command.
type Event interface {
	fmt.Stringer
	event()
}

// Swapped reports a committed swap.
type Swapped struct {
	A, B board.Position
}

// FailedSwap reports a rejected swap. The board is unchanged.
type FailedSwap struct {
	A, B board.Position
	Err  error
}

// Popped reports a gem removed by a Pop command.
type Popped struct {
	Pos board.Position
}

// Dropped lists the gems that fell after a pop, sorted with board.CompareDrops.
type Dropped struct {
	Drops []board.Drop
}

// Spawned lists the gems created to refill the board.
type Spawned struct {
	Spawns []board.Spawn
}

// Matched carries every match on the board after a successful swap,
// including matches unrelated to the swapped cells.
type Matched struct {
	Matches board.Matches
}

// Shuffled lists the gems moved by a shuffle.
type Shuffled struct {
	Moves []board.ShuffleMove
}

func (Swapped) event()    {}
func (FailedSwap) event() {}
func (Popped) event()     {}
func (Dropped) event()    {}
func (Spawned) event()    {}
func (Matched) event()    {}
func (Shuffled) event()   {}

func (e Swapped) String() string {
	return fmt.Sprintf("swapped %s %s", e.A, e.B)
}

func (e FailedSwap) String() string {
	if e.Err == nil {
		return fmt.Sprintf("failed-swap %s %s", e.A, e.B)
	}
	return fmt.Sprintf("failed-swap %s %s: %v", e.A, e.B, e.Err)
}

func (e Popped) String() string {
	return fmt.Sprintf("popped %s", e.Pos)
}

func (e Dropped) String() string {
	return fmt.Sprintf("dropped %v", e.Drops)
}

func (e Spawned) String() string {
	return fmt.Sprintf("spawned %v", e.Spawns)
}

func (e Matched) String() string {
	if e.Matches.IsEmpty() {
		return "matched none"
	}
	parts := make([]string, 0, e.Matches.Len())
	for _, m := range e.Matches.All() {
		parts = append(parts, fmt.Sprintf("%s %d %v", m.Direction, m.Type, m.Positions))
	}
	return "matched " + strings.Join(parts, "; ")
}

func (e Shuffled) String() string {
	return fmt.Sprintf("shuffled %v", e.Moves)
}
