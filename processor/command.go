package processor

import (
	"fmt"

	"github.com/plus3/match3/board"
)

// Command is an intent submitted to the processor.
type Command interface {
	fmt.Stringer
	// eventBudget is the largest number of events the command can emit.
	eventBudget() int
	positions() []board.Position
}

// Swap asks the processor to exchange two gems.
type Swap struct {
	A, B board.Position
}

// Pop removes gems, collapses the columns and refills the board.
type Pop struct {
	Positions []board.Position
}

// Shuffle redistributes every gem on the board.
type Shuffle struct{}

func (c Swap) String() string {
	return fmt.Sprintf("swap %s %s", c.A, c.B)
}

func (c Swap) eventBudget() int {
	return 2
}

func (c Swap) positions() []board.Position {
	return []board.Position{c.A, c.B}
}

func (c Pop) String() string {
	return fmt.Sprintf("pop %v", c.Positions)
}

func (c Pop) eventBudget() int {
	return len(c.Positions) + 2
}

func (c Pop) positions() []board.Position {
	return c.Positions
}

func (Shuffle) String() string {
	return "shuffle"
}

func (Shuffle) eventBudget() int {
	return 1
}

func (Shuffle) positions() []board.Position {
	return nil
}
