package scheduler

// Frame carries per-tick data to every system.
type Frame struct {
	DeltaTime float64
	Tick      uint64
	defers    []func()
}

func newFrame(dt float64, tick uint64) *Frame {
	return &Frame{
		DeltaTime: dt,
		Tick:      tick,
	}
}

// Defer queues fn to run after every system has executed for this tick.
func (f *Frame) Defer(fn func()) {
	f.defers = append(f.defers, fn)
}

func (f *Frame) flush() {
	for _, fn := range f.defers {
		fn()
	}
	f.defers = f.defers[:0]
}
