package cpu

import (
	"time"

	"github.com/davecgh/go-spew/spew"
)

// Snapshot is an immutable copy of CPU-observable state, returned from
// Step, Run, and GetRegisterSnapshot so callers can inspect a CPU without
// holding a reference into it.
type Snapshot struct {
	ProgramCounter uint16
	Accumulator    byte
	XRegister      byte
	YRegister      byte
	StackPointer   uint16 // full 0x01SP effective address
	Status         byte

	AccumulatedCycles       uint64
	AccumulatedInstructions uint64
	ElapsedTime             time.Duration
	ApproxClockHz           float64
}

// Snapshot captures the CPU's current observable state.
func (c *Cpu) Snapshot() Snapshot {
	return Snapshot{
		ProgramCounter:          c.PC,
		Accumulator:             c.A,
		XRegister:               c.X,
		YRegister:               c.Y,
		StackPointer:            c.Stack.GetSP(),
		Status:                  c.Status.Get(),
		AccumulatedCycles:       c.AccumulatedCycles,
		AccumulatedInstructions: c.AccumulatedInstructions,
		ElapsedTime:             c.ElapsedTime,
		ApproxClockHz:           c.ApproxClockHz,
	}
}

// Dump pretty-prints the snapshot's fields deeply, for interactive
// inspection and verbose test failures.
func (s Snapshot) Dump() string {
	return spew.Sdump(s)
}
