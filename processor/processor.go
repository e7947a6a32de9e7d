// Package processor turns commands into board mutations and an ordered stream
// of events.
//
// A Processor exclusively owns its board while it drains commands. Callers push
// commands, call Step once per tick (directly or through a scheduler), and pop
// the resulting events. Nothing blocks: Push and PopEvent fail immediately when
// the queue is full or empty.
//
// A Pop command performs exactly one remove/drop/fill cycle. The processor never
// looks for the matches a refill may create; callers inspect Board().Matches()
// and push another Pop to continue a cascade.
package processor

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/plus3/match3/board"
	"github.com/plus3/match3/queue"
	"github.com/plus3/match3/scheduler"
)

var (
	// ErrNilCommand is returned when pushing a nil command.
	ErrNilCommand = errors.New("nil command")
	// ErrCommandTooLarge is returned when a command could emit more events than
	// a bounded event queue can ever hold.
	ErrCommandTooLarge = errors.New("command exceeds event queue capacity")
)

// State is the processor's position in its drain cycle.
type State uint8

const (
	Idle State = iota
	Draining
)

func (s State) String() string {
	if s == Draining {
		return "draining"
	}
	return "idle"
}

// Stats counts drained commands by outcome.
type Stats struct {
	Steps       uint64
	Commands    uint64
	Swaps       uint64
	FailedSwaps uint64
	Pops        uint64
	Popped      uint64
	Shuffles    uint64
	Deferred    uint64
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithCommandCapacity bounds the command queue. Zero means unbounded.
func WithCommandCapacity(n int) Option {
	return func(p *Processor) {
		p.commands = queue.New[Command](n)
	}
}

// WithEventCapacity bounds the event queue. Zero means unbounded. When bounded,
// a command is only drained once the queue has room for all of its events.
func WithEventCapacity(n int) Option {
	return func(p *Processor) {
		p.events = queue.New[Event](n)
	}
}

// Processor drains commands against a board and records the resulting events.
type Processor struct {
	board    *board.Board
	commands *queue.Queue[Command]
	events   *queue.Queue[Event]
	state    State
	logger   *slog.Logger
	stats    Stats
}

var _ scheduler.System = (*Processor)(nil)

// New creates a processor driving b.
func New(b *board.Board, opts ...Option) *Processor {
	p := &Processor{
		board:    b,
		commands: queue.New[Command](0),
		events:   queue.New[Event](0),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Board returns the board for read access. Callers must not mutate it while
// commands are pending.
func (p *Processor) Board() *board.Board {
	return p.board
}

// State reports whether a drain is in progress.
func (p *Processor) State() State {
	return p.state
}

// Stats returns a snapshot of the processor counters.
func (p *Processor) Stats() Stats {
	return p.stats
}

// Pending returns the number of queued commands.
func (p *Processor) Pending() int {
	return p.commands.Len()
}

// Push queues a command. Positions outside the board are rejected here with an
// error wrapping board.ErrOutOfRange, so they never reach the board algorithms.
func (p *Processor) Push(cmd Command) error {
	if cmd == nil {
		return ErrNilCommand
	}

	for _, pos := range cmd.positions() {
		if err := p.board.CheckBounds(pos); err != nil {
			p.logger.Warn("rejected command", "command", cmd.String(), "error", err)
			return fmt.Errorf("push %s: %w", cmd, err)
		}
	}

	if capacity := p.events.Cap(); capacity > 0 && cmd.eventBudget() > capacity {
		return fmt.Errorf("push %s: %w (needs %d, capacity %d)", cmd, ErrCommandTooLarge, cmd.eventBudget(), capacity)
	}

	if err := p.commands.Push(cmd); err != nil {
		return fmt.Errorf("push %s: %w", cmd, err)
	}
	return nil
}

// EventCapacity returns the bound on the event queue, or 0 when it is unbounded.
func (p *Processor) EventCapacity() int {
	return p.events.Cap()
}

// MaxPopPositions returns how many positions a single Pop may carry, or 0 when
// there is no limit.
func (p *Processor) MaxPopPositions() int {
	capacity := p.events.Cap()
	if capacity == 0 {
		return 0
	}
	return max(capacity-Pop{}.eventBudget(), 0)
}

// PopEvent returns the oldest undelivered event, or queue.ErrEmpty.
func (p *Processor) PopEvent() (Event, error) {
	return p.events.Pop()
}

// Events pops every undelivered event in order.
func (p *Processor) Events() []Event {
	return p.events.Drain()
}

// Execute runs one Step per scheduler tick.
func (p *Processor) Execute(*scheduler.Frame) {
	p.Step()
}

// Step drains queued commands in FIFO order and returns how many were applied.
// Draining stops early when a bounded event queue lacks room for the next
// command's events; the command stays queued for the next step.
func (p *Processor) Step() int {
	if p.state == Draining {
		return 0
	}

	p.state = Draining
	defer func() { p.state = Idle }()
	p.stats.Steps++

	applied := 0
	for {
		cmd, err := p.commands.Peek()
		if err != nil {
			break
		}

		if free := p.events.Free(); free >= 0 && free < cmd.eventBudget() {
			p.stats.Deferred++
			p.logger.Debug("event queue full, deferring command",
				"command", cmd.String(),
				"free", free,
				"needs", cmd.eventBudget(),
			)
			break
		}

		if _, err := p.commands.Pop(); err != nil {
			break
		}
		p.apply(cmd)
		applied++
	}
	return applied
}

func (p *Processor) apply(cmd Command) {
	p.stats.Commands++
	p.logger.Debug("processing command", "command", cmd.String())

	switch c := cmd.(type) {
	case Swap:
		p.swap(c)
	case Pop:
		p.pop(c)
	case Shuffle:
		p.shuffle()
	default:
		p.logger.Error("unknown command", "command", cmd.String(), "type", fmt.Sprintf("%T", cmd))
	}
}

func (p *Processor) swap(c Swap) {
	err := p.board.Swap(c.A, c.B)
	if err != nil {
		p.stats.FailedSwaps++
		if errors.Is(err, board.ErrNoGem) {
			p.logger.Error("swap on empty cell", "a", c.A.String(), "b", c.B.String(), "error", err)
		} else {
			p.logger.Debug("swap rejected", "a", c.A.String(), "b", c.B.String(), "error", err)
		}
		p.emit(FailedSwap{A: c.A, B: c.B, Err: err})
		return
	}

	p.stats.Swaps++
	p.emit(Swapped{A: c.A, B: c.B})
	p.emit(Matched{Matches: p.board.Matches()})
}

func (p *Processor) pop(c Pop) {
	p.stats.Pops++
	for _, pos := range c.Positions {
		if !p.board.Remove(pos) {
			p.logger.Debug("pop on empty cell", "pos", pos.String())
			continue
		}
		p.stats.Popped++
		p.emit(Popped{Pos: pos})
	}

	drops := p.board.Drop()
	slices.SortFunc(drops, board.CompareDrops)
	p.emit(Dropped{Drops: drops})
	p.emit(Spawned{Spawns: p.board.Fill()})
}

func (p *Processor) shuffle() {
	p.stats.Shuffles++
	p.emit(Shuffled{Moves: p.board.Shuffle()})
}

func (p *Processor) emit(ev Event) {
	if err := p.events.Push(ev); err != nil {
		p.logger.Error("dropped event", "event", ev.String(), "error", err)
	}
}
