// Package cpu implements the core of a MOS Technology 6502 microprocessor:
// registers, status flags, the stack, addressing-mode resolution, the
// instruction set, a trap door for breakpoints, and the reset/step/run
// execution loop.
package cpu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"sixfive/mem"
)

// System vectors: fixed jump targets, not pointers to be dereferenced. Reset
// loads PC directly from ResetVector; BRK/IRQ and the BRK handler load PC
// directly from IRQVector. This module does not model a separate interrupt
// controller that would read a vector word out of memory.
const (
	NMIVector   uint16 = 0xFFFA
	ResetVector uint16 = 0xFFFC
	IRQVector   uint16 = 0xFFFE
)

// Cpu holds the full observable state of a 6502: registers, flags, the
// stack, the memory bus, the trap door, and run accounting.
type Cpu struct {
	Bus    *mem.Bus
	Status StatusRegister
	Stack  *StackPointer
	Traps  *TrapDoor

	A, X, Y byte
	PC      uint16

	AccumulatedCycles       uint64
	AccumulatedInstructions uint64
	ElapsedTime             time.Duration
	ApproxClockHz           float64

	initialized bool
	logger      *log.Logger
}

// Option configures a Cpu at construction time.
type Option func(*Cpu)

// WithLogger directs diagnostic logging (illegal opcodes, trap fires,
// decimal-mode refusals) to logger instead of the default no-op sink.
func WithLogger(logger *log.Logger) Option {
	return func(c *Cpu) {
		c.logger = logger
	}
}

// New returns a freshly constructed, not-yet-reset Cpu backed by a new 64
// KiB bus.
func New(opts ...Option) *Cpu {
	bus := mem.New()
	c := &Cpu{
		Bus:    bus,
		Stack:  NewStackPointer(bus),
		Traps:  NewTrapDoor(),
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetLogger redirects diagnostic logging to logger.
func (c *Cpu) SetLogger(logger *log.Logger) {
	c.logger = logger
}

func (c *Cpu) logf(format string, args ...any) {
	c.logger.Printf(format, args...)
}

// Reset clears registers, sets SP to 0xFF, sets PC to ResetVector, zeroes
// the status byte then applies UpdateFrom(0) (so Z is set), and zeroes run
// accounting.
func (c *Cpu) Reset() {
	c.A, c.X, c.Y = 0, 0, 0
	c.Stack.Reset()
	c.Status.Set(0)
	c.Status.UpdateFrom(0)
	c.PC = ResetVector
	c.AccumulatedCycles = 0
	c.AccumulatedInstructions = 0
	c.ElapsedTime = 0
	c.ApproxClockHz = 0
	c.initialized = true
}

// LoadProgram copies bytes into memory starting at start. If readonly, the
// loaded range is registered as read-only afterward.
func (c *Cpu) LoadProgram(start uint16, data []byte, readonly bool) {
	c.Bus.LoadProgram(start, data, readonly)
}

// GetByteAt reads a byte directly, bypassing nothing: this is the same path
// instructions use.
func (c *Cpu) GetByteAt(addr uint16) byte {
	return c.Bus.Read(addr)
}

// SetByteAt writes a byte through the same bus instructions use, so it
// honors read-only ranges exactly as STA/STX/STY would, only here the
// failure is reported to the caller instead of swallowed.
func (c *Cpu) SetByteAt(addr uint16, v byte) error {
	if err := c.Bus.Write(addr, v); err != nil {
		return ErrReadOnlyMemory
	}
	return nil
}

// Step executes exactly one instruction: fetch, decode (synthesizing ILL on
// an undecodable byte), consult the trap door, then execute unless the trap
// door says to stop first, in which case PC is left at the instruction's
// address. An illegal instruction the trap door would let continue halts
// after it executes. It returns true when the run loop should halt after
// this call.
func (c *Cpu) Step() (bool, error) {
	if !c.initialized {
		return false, ErrNotInitialized
	}

	addr := c.PC
	opcodeByte := c.fetchByte()
	decoded := DecodeOrIllegal(opcodeByte)
	if decoded.Illegal {
		c.logf("illegal opcode 0x%02X at 0x%04X", opcodeByte, addr)
	}

	outcome := c.Traps.PreExecute(decoded, addr)
	if decoded.Illegal && outcome == Continue {
		outcome = StopAfter
	}
	switch outcome {
	case Stop:
		c.PC = addr
		return true, nil
	case Handled:
		return false, nil
	default:
		if outcome == StopAfter && !decoded.Illegal {
			c.logf("trap fired: opcode 0x%02X at 0x%04X", opcodeByte, addr)
		}
		if err := decoded.Execute(c, decoded.Mode); err != nil {
			if errors.Is(err, mem.ErrReadOnly) {
				err = fmt.Errorf("%w: %w", ErrReadOnlyMemory, err)
			}
			return false, err
		}
		c.AccumulatedInstructions++
		c.AccumulatedCycles += uint64(decoded.Cycles)
		return outcome == StopAfter, nil
	}
}

// Run executes instructions until a trap halts the loop or a handler
// errors. If start is non-nil, PC is set to *start first; otherwise PC is
// set to ResetVector.
func (c *Cpu) Run(start *uint16) (Snapshot, error) {
	return c.run(context.Background(), start)
}

// RunContext behaves like Run but polls ctx.Done() between steps, returning
// ctx.Err() if the context is cancelled. This is a convenience for a host
// loop; it introduces no suspension point inside Step itself.
func (c *Cpu) RunContext(ctx context.Context, start *uint16) (Snapshot, error) {
	return c.run(ctx, start)
}

func (c *Cpu) run(ctx context.Context, start *uint16) (Snapshot, error) {
	if !c.initialized {
		return Snapshot{}, ErrNotInitialized
	}
	if start != nil {
		c.PC = *start
	} else {
		c.PC = ResetVector
	}

	begin := time.Now()
	for {
		select {
		case <-ctx.Done():
			return c.Snapshot(), ctx.Err()
		default:
		}

		stop, err := c.Step()
		if err != nil {
			return c.Snapshot(), err
		}
		if stop {
			break
		}
	}

	c.ElapsedTime = time.Since(begin)
	if seconds := c.ElapsedTime.Seconds(); seconds > 0 {
		c.ApproxClockHz = float64(c.AccumulatedCycles) / seconds
	}
	return c.Snapshot(), nil
}
