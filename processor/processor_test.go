package processor_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/plus3/match3/board"
	"github.com/plus3/match3/processor"
	"github.com/plus3/match3/queue"
	"github.com/plus3/match3/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numberedRows() [][]board.GemType {
	return [][]board.GemType{
		{0, 1, 2, 3, 4},
		{5, 6, 7, 8, 9},
		{10, 11, 12, 13, 14},
		{15, 16, 17, 18, 19},
		{20, 21, 22, 23, 24},
		{25, 26, 27, 28, 29},
		{30, 31, 32, 33, 34},
	}
}

func swapRows() [][]board.GemType {
	rows := numberedRows()
	rows[3][2] = 11
	rows[4][2] = 11
	return rows
}

func newProcessor(t *testing.T, rows [][]board.GemType, opts ...processor.Option) *processor.Processor {
	t.Helper()
	b, err := board.FromRows(rows, board.NewSequence(0))
	require.NoError(t, err)
	return processor.New(b, opts...)
}

func gemAt(t *testing.T, p *processor.Processor, x, y int) board.GemType {
	t.Helper()
	typ, ok := p.Board().Get(board.Pos(x, y))
	require.True(t, ok, "expected a gem at (%d,%d)", x, y)
	return typ
}

func TestSwapCommand(t *testing.T) {
	t.Run("successful swap emits swapped then matched", func(t *testing.T) {
		p := newProcessor(t, swapRows())
		before := p.Board().Clone()

		require.NoError(t, p.Push(processor.Swap{A: board.Pos(1, 2), B: board.Pos(2, 2)}))
		assert.Equal(t, 1, p.Step())

		assert.False(t, before.Equal(p.Board()))
		assert.Equal(t, board.GemType(12), gemAt(t, p, 1, 2))
		assert.Equal(t, board.GemType(11), gemAt(t, p, 2, 2))

		events := p.Events()
		require.Len(t, events, 2)
		assert.Equal(t, processor.Swapped{A: board.Pos(1, 2), B: board.Pos(2, 2)}, events[0])

		matched, ok := events[1].(processor.Matched)
		require.True(t, ok)
		require.Equal(t, 1, matched.Matches.Len())
		m := matched.Matches.All()[0]
		assert.Equal(t, board.Vertical, m.Direction)
		assert.Equal(t, []board.Position{board.Pos(2, 2), board.Pos(2, 3), board.Pos(2, 4)}, m.Positions)
	})

	t.Run("rejected swap leaves the board unchanged", func(t *testing.T) {
		p := newProcessor(t, numberedRows())
		before := p.Board().Clone()

		require.NoError(t, p.Push(processor.Swap{A: board.Pos(1, 2), B: board.Pos(2, 2)}))
		p.Step()

		assert.True(t, before.Equal(p.Board()))
		assert.Equal(t, board.GemType(11), gemAt(t, p, 1, 2))
		assert.Equal(t, board.GemType(12), gemAt(t, p, 2, 2))

		ev, err := p.PopEvent()
		require.NoError(t, err)
		failed, ok := ev.(processor.FailedSwap)
		require.True(t, ok)
		assert.ErrorIs(t, failed.Err, board.ErrNoMatches)

		_, err = p.PopEvent()
		assert.ErrorIs(t, err, queue.ErrEmpty)
		assert.Equal(t, uint64(1), p.Stats().FailedSwaps)
	})

	t.Run("swap on an empty cell is logged and reported", func(t *testing.T) {
		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, nil))
		p := newProcessor(t, swapRows(), processor.WithLogger(logger))
		p.Board().Remove(board.Pos(2, 2))

		require.NoError(t, p.Push(processor.Swap{A: board.Pos(1, 2), B: board.Pos(2, 2)}))
		p.Step()

		events := p.Events()
		require.Len(t, events, 1)
		failed, ok := events[0].(processor.FailedSwap)
		require.True(t, ok)
		assert.ErrorIs(t, failed.Err, board.ErrNoGem)
		assert.Contains(t, logs.String(), "level=ERROR")
		assert.Contains(t, logs.String(), "swap on empty cell")
	})
}

func TestPopCommand(t *testing.T) {
	t.Run("single gem", func(t *testing.T) {
		p := newProcessor(t, numberedRows())

		require.NoError(t, p.Push(processor.Pop{Positions: []board.Position{board.Pos(1, 4)}}))
		p.Step()

		assert.Equal(t, board.GemType(16), gemAt(t, p, 1, 4))
		assert.Equal(t, board.GemType(11), gemAt(t, p, 1, 3))
		assert.Equal(t, board.GemType(6), gemAt(t, p, 1, 2))
		assert.Equal(t, board.GemType(1), gemAt(t, p, 1, 1))
		assert.Equal(t, board.GemType(0), gemAt(t, p, 1, 0))
		assert.True(t, p.Board().Full())

		assert.Equal(t, []processor.Event{
			processor.Popped{Pos: board.Pos(1, 4)},
			processor.Dropped{Drops: []board.Drop{
				{From: board.Pos(1, 3), To: board.Pos(1, 4)},
				{From: board.Pos(1, 2), To: board.Pos(1, 3)},
				{From: board.Pos(1, 1), To: board.Pos(1, 2)},
				{From: board.Pos(1, 0), To: board.Pos(1, 1)},
			}},
			processor.Spawned{Spawns: []board.Spawn{{Pos: board.Pos(1, 0), Type: 0}}},
		}, p.Events())
	})

	t.Run("vertical run", func(t *testing.T) {
		p := newProcessor(t, numberedRows())

		require.NoError(t, p.Push(processor.Pop{Positions: []board.Position{board.Pos(3, 6), board.Pos(3, 5), board.Pos(3, 4)}}))
		p.Step()

		assert.Equal(t, board.GemType(18), gemAt(t, p, 3, 6))
		assert.Equal(t, board.GemType(13), gemAt(t, p, 3, 5))
		assert.Equal(t, board.GemType(8), gemAt(t, p, 3, 4))
		assert.Equal(t, board.GemType(3), gemAt(t, p, 3, 3))
		for y := range 3 {
			gemAt(t, p, 3, y)
		}

		events := p.Events()
		require.Len(t, events, 5)
		assert.Equal(t, processor.Popped{Pos: board.Pos(3, 6)}, events[0])
		assert.Equal(t, processor.Popped{Pos: board.Pos(3, 5)}, events[1])
		assert.Equal(t, processor.Popped{Pos: board.Pos(3, 4)}, events[2])
		assert.Equal(t, processor.Dropped{Drops: []board.Drop{
			{From: board.Pos(3, 3), To: board.Pos(3, 6)},
			{From: board.Pos(3, 2), To: board.Pos(3, 5)},
			{From: board.Pos(3, 1), To: board.Pos(3, 4)},
			{From: board.Pos(3, 0), To: board.Pos(3, 3)},
		}}, events[3])

		spawned, ok := events[4].(processor.Spawned)
		require.True(t, ok)
		assert.Len(t, spawned.Spawns, 3)
	})

	t.Run("horizontal run", func(t *testing.T) {
		p := newProcessor(t, numberedRows())

		require.NoError(t, p.Push(processor.Pop{Positions: []board.Position{board.Pos(0, 5), board.Pos(1, 5), board.Pos(2, 5)}}))
		p.Step()

		assert.Equal(t, board.GemType(20), gemAt(t, p, 0, 5))
		assert.Equal(t, board.GemType(21), gemAt(t, p, 1, 5))
		assert.Equal(t, board.GemType(22), gemAt(t, p, 2, 5))
		assert.True(t, p.Board().Full())

		events := p.Events()
		require.Len(t, events, 5)
		dropped, ok := events[3].(processor.Dropped)
		require.True(t, ok)
		assert.Len(t, dropped.Drops, 15)
		for i := 1; i < len(dropped.Drops); i++ {
			assert.LessOrEqual(t, board.CompareDrops(dropped.Drops[i-1], dropped.Drops[i]), 0)
		}
	})

	t.Run("does not cascade", func(t *testing.T) {
		// Popping (0,3) drops a 7 onto the two 7s below it.
		p := newProcessor(t, [][]board.GemType{
			{7, 1, 2},
			{3, 4, 5},
			{6, 0, 8},
			{9, 10, 11},
			{7, 12, 13},
			{7, 14, 15},
		})
		p.Board().Remove(board.Pos(0, 1))
		p.Board().Remove(board.Pos(0, 2))

		require.NoError(t, p.Push(processor.Pop{Positions: []board.Position{board.Pos(0, 3)}}))
		p.Step()

		assert.False(t, p.Board().Matches().IsEmpty(), "the refill created a match")
		for _, ev := range p.Events() {
			_, isMatched := ev.(processor.Matched)
			assert.False(t, isMatched, "pop must not emit matched events")
		}
	})

	t.Run("duplicate positions pop once", func(t *testing.T) {
		p := newProcessor(t, numberedRows())
		require.NoError(t, p.Push(processor.Pop{Positions: []board.Position{board.Pos(2, 2), board.Pos(2, 2)}}))
		p.Step()

		events := p.Events()
		require.Len(t, events, 3)
		assert.Equal(t, processor.Popped{Pos: board.Pos(2, 2)}, events[0])
		assert.Equal(t, uint64(1), p.Stats().Popped)
	})
}

func TestShuffleCommand(t *testing.T) {
	b, err := board.FromRows([][]board.GemType{{1, 2, 3}}, board.NewSequence(0, 0))
	require.NoError(t, err)
	p := processor.New(b)

	require.NoError(t, p.Push(processor.Shuffle{}))
	p.Step()

	assert.Equal(t, []processor.Event{
		processor.Shuffled{Moves: []board.ShuffleMove{
			{From: board.Pos(0, 0), To: board.Pos(1, 0)},
			{From: board.Pos(1, 0), To: board.Pos(2, 0)},
			{From: board.Pos(2, 0), To: board.Pos(0, 0)},
		}},
	}, p.Events())
}

func TestCommandOrdering(t *testing.T) {
	p := newProcessor(t, swapRows())

	require.NoError(t, p.Push(processor.Swap{A: board.Pos(0, 0), B: board.Pos(1, 0)}))
	require.NoError(t, p.Push(processor.Swap{A: board.Pos(1, 2), B: board.Pos(2, 2)}))
	require.NoError(t, p.Push(processor.Pop{Positions: []board.Position{board.Pos(2, 2), board.Pos(2, 3), board.Pos(2, 4)}}))
	assert.Equal(t, 3, p.Pending())

	assert.Equal(t, 3, p.Step())
	assert.Equal(t, 0, p.Pending())
	assert.Equal(t, processor.Idle, p.State())

	var kinds []string
	for _, ev := range p.Events() {
		switch ev.(type) {
		case processor.FailedSwap:
			kinds = append(kinds, "failed")
		case processor.Swapped:
			kinds = append(kinds, "swapped")
		case processor.Matched:
			kinds = append(kinds, "matched")
		case processor.Popped:
			kinds = append(kinds, "popped")
		case processor.Dropped:
			kinds = append(kinds, "dropped")
		case processor.Spawned:
			kinds = append(kinds, "spawned")
		}
	}

	assert.Equal(t, []string{
		"failed",
		"swapped", "matched",
		"popped", "popped", "popped", "dropped", "spawned",
	}, kinds)
	assert.True(t, p.Board().Full())
}

func TestPushValidation(t *testing.T) {
	t.Run("out of range positions", func(t *testing.T) {
		p := newProcessor(t, numberedRows())

		err := p.Push(processor.Swap{A: board.Pos(4, 6), B: board.Pos(5, 6)})
		assert.ErrorIs(t, err, board.ErrOutOfRange)

		err = p.Push(processor.Pop{Positions: []board.Position{board.Pos(0, 0), board.Pos(0, 7)}})
		assert.ErrorIs(t, err, board.ErrOutOfRange)
		assert.Equal(t, 0, p.Pending())
	})

	t.Run("nil command", func(t *testing.T) {
		p := newProcessor(t, numberedRows())
		assert.ErrorIs(t, p.Push(nil), processor.ErrNilCommand)
	})

	t.Run("bounded command queue", func(t *testing.T) {
		p := newProcessor(t, numberedRows(), processor.WithCommandCapacity(1))
		require.NoError(t, p.Push(processor.Shuffle{}))
		assert.ErrorIs(t, p.Push(processor.Shuffle{}), queue.ErrFull)
	})

	t.Run("pop size follows the event capacity", func(t *testing.T) {
		assert.Zero(t, newProcessor(t, numberedRows()).MaxPopPositions())

		p := newProcessor(t, numberedRows(), processor.WithEventCapacity(5))
		assert.Equal(t, 5, p.EventCapacity())
		assert.Equal(t, 3, p.MaxPopPositions())
		assert.NoError(t, p.Push(processor.Pop{Positions: []board.Position{board.Pos(0, 0), board.Pos(1, 0), board.Pos(2, 0)}}))
	})

	t.Run("command larger than the event queue", func(t *testing.T) {
		p := newProcessor(t, numberedRows(), processor.WithEventCapacity(4))
		err := p.Push(processor.Pop{Positions: []board.Position{board.Pos(0, 0), board.Pos(1, 0), board.Pos(2, 0)}})
		assert.ErrorIs(t, err, processor.ErrCommandTooLarge)
	})
}

func TestEventBackpressure(t *testing.T) {
	p := newProcessor(t, numberedRows(), processor.WithEventCapacity(3))

	require.NoError(t, p.Push(processor.Pop{Positions: []board.Position{board.Pos(0, 0)}}))
	require.NoError(t, p.Push(processor.Shuffle{}))

	// The pop fills the event queue, so the shuffle waits.
	assert.Equal(t, 1, p.Step())
	assert.Equal(t, 1, p.Pending())
	assert.Equal(t, uint64(1), p.Stats().Deferred)

	assert.Len(t, p.Events(), 3)
	assert.Equal(t, 1, p.Step())
	assert.Equal(t, 0, p.Pending())

	ev, err := p.PopEvent()
	require.NoError(t, err)
	assert.IsType(t, processor.Shuffled{}, ev)
}

func TestProcessorAsSystem(t *testing.T) {
	p := newProcessor(t, swapRows())
	sched := scheduler.New()
	sched.Register(p)

	require.NoError(t, p.Push(processor.Swap{A: board.Pos(1, 2), B: board.Pos(2, 2)}))
	sched.Once(1.0 / 60)

	assert.Len(t, p.Events(), 2)
	assert.Equal(t, "Processor", sched.GetStats().Systems[0].Name)
	assert.Equal(t, uint64(1), p.Stats().Steps)
}
