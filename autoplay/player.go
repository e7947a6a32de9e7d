// Package autoplay drives a processor without user input. The stress command
// uses it to keep a board busy.
package autoplay

import (
	"io"
	"log/slog"

	"github.com/plus3/match3/board"
	"github.com/plus3/match3/processor"
	"github.com/plus3/match3/scheduler"
)

// Stats counts what the player has done.
type Stats struct {
	Ticks    uint64
	Waits    uint64
	Swaps    uint64
	Pops     uint64
	Shuffles uint64
	Rejected uint64
	Events   uint64
}

// Option configures a Player.
type Option func(*Player)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(pl *Player) {
		if logger != nil {
			pl.logger = logger
		}
	}
}

// WithEventHandler installs a callback for every event the player consumes.
func WithEventHandler(fn func(processor.Event)) Option {
	return func(pl *Player) {
		pl.onEvent = fn
	}
}

// Player is a scheduler system that submits one command per tick. It pops
// pending matches first, which carries cascades forward, then swaps a random
// hint, and shuffles when the board is deadlocked.
type Player struct {
	proc    *processor.Processor
	rng     board.Rand
	logger  *slog.Logger
	onEvent func(processor.Event)
	stats   Stats
}

var _ scheduler.System = (*Player)(nil)

// New creates a player for proc. rng picks among the available hints.
func New(proc *processor.Processor, rng board.Rand, opts ...Option) *Player {
	pl := &Player{
		proc:   proc,
		rng:    rng,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(pl)
	}
	return pl
}

// Stats returns a snapshot of the player counters.
func (pl *Player) Stats() Stats {
	return pl.stats
}

// Execute consumes the processor's events and, once the processor is idle,
// pushes the next command.
func (pl *Player) Execute(*scheduler.Frame) {
	pl.stats.Ticks++

	for _, ev := range pl.proc.Events() {
		pl.stats.Events++
		if pl.onEvent != nil {
			pl.onEvent(ev)
		}
	}

	if pl.proc.Pending() > 0 {
		pl.stats.Waits++
		return
	}

	cmd := pl.Next()
	if err := pl.proc.Push(cmd); err != nil {
		pl.stats.Rejected++
		pl.logger.Warn("autoplay command rejected", "command", cmd.String(), "error", err)
		return
	}

	switch cmd.(type) {
	case processor.Pop:
		pl.stats.Pops++
	case processor.Swap:
		pl.stats.Swaps++
	case processor.Shuffle:
		pl.stats.Shuffles++
	}
	pl.logger.Debug("autoplay", "command", cmd.String())
}

// Next chooses the command the player would push for the current board. Pops
// are cut to what a bounded event queue can hold.
func (pl *Player) Next() processor.Command {
	b := pl.proc.Board()

	if matches := b.Matches(); !matches.IsEmpty() {
		positions := matches.Positions()
		if limit := pl.proc.MaxPopPositions(); limit > 0 && len(positions) > limit {
			// The rest is popped on later ticks, once the board has settled again.
			positions = positions[:limit]
		}
		return processor.Pop{Positions: positions}
	}

	moves := b.MatchingMoves()
	if len(moves) == 0 {
		return processor.Shuffle{}
	}

	move := moves[pl.rng.IntN(len(moves))]
	return processor.Swap{A: move.A, B: move.B}
}
