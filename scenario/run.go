package scenario

import (
	"bytes"
	"fmt"

	"github.com/plus3/match3/board"
	"github.com/plus3/match3/processor"
)

// StepTrace is what one step produced.
type StepTrace struct {
	Command string
	// Rejected holds the Push error, if any. Rejected steps emit no events.
	Rejected error
	Events   []string
}

// Result is the outcome of running a scenario.
type Result struct {
	Name    string
	Initial string
	Steps   []StepTrace
	Board   *board.Board
	Stats   processor.Stats
}

// Run executes every step through a fresh processor, one Step per command.
func Run(s *Scenario, opts ...processor.Option) (*Result, error) {
	b, err := board.FromRows(s.Rows, board.NewSequence(s.Random...))
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}

	result := &Result{
		Name:    s.Name,
		Initial: b.String(),
	}

	proc := processor.New(b, opts...)
	for _, st := range s.Steps {
		cmd := st.command(proc.Board())
		trace := StepTrace{Command: cmd.String()}

		if err := proc.Push(cmd); err != nil {
			trace.Rejected = err
			result.Steps = append(result.Steps, trace)
			continue
		}

		proc.Step()
		for _, ev := range proc.Events() {
			trace.Events = append(trace.Events, ev.String())
		}
		result.Steps = append(result.Steps, trace)
	}

	result.Board = proc.Board()
	result.Stats = proc.Stats()
	return result, nil
}

// Render formats the result as a plain-text trace.
func (r *Result) Render() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "scenario: %s\n", r.Name)
	fmt.Fprintf(&buf, "initial:\n%s", r.Initial)

	for i, st := range r.Steps {
		fmt.Fprintf(&buf, "step %d: %s\n", i+1, st.Command)
		if st.Rejected != nil {
			fmt.Fprintf(&buf, "  rejected: %v\n", st.Rejected)
			continue
		}
		for _, ev := range st.Events {
			fmt.Fprintf(&buf, "  %s\n", ev)
		}
	}

	fmt.Fprintf(&buf, "final:\n%s", r.Board)
	s := r.Stats
	fmt.Fprintf(&buf, "stats: commands=%d swaps=%d failed-swaps=%d pops=%d popped=%d shuffles=%d\n",
		s.Commands, s.Swaps, s.FailedSwaps, s.Pops, s.Popped, s.Shuffles)
	return buf.Bytes()
}
