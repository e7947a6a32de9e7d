// Package scheduler drives systems once per tick. A system is any type with an
// Execute method; the processor and the autoplayer are both systems.
package scheduler

// System is a unit of per-tick behaviour. Systems may keep state between ticks.
type System interface {
	Execute(frame *Frame)
}

// SystemFunc adapts a function to the System interface.
type SystemFunc func(frame *Frame)

func (f SystemFunc) Execute(frame *Frame) {
	f(frame)
}
