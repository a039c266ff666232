// Package sixfive is the public facade over the cpu package: the single
// boundary object a CLI runner or interactive debugger is meant to consume.
// It owns no instruction-set knowledge itself — that lives in cpu — and
// exists only to expose construction, execution, and inspection as a small,
// stable surface.
package sixfive

import (
	"context"
	"errors"
	"log"

	"sixfive/cpu"
)

// Kind enumerates the CPU models the facade can construct. MOS6502 is the
// only one implemented; the type exists so a future model can be added
// without breaking callers.
type Kind int

const (
	MOS6502 Kind = iota
)

// ErrUnsupportedKind is returned by Create for a Kind with no implementation.
var ErrUnsupportedKind = errors.New("sixfive: unsupported CPU kind")

// Emulator wraps a cpu.Cpu behind the operations external collaborators are
// expected to use.
type Emulator struct {
	cpu *cpu.Cpu
}

// Create constructs an Emulator of the given kind, pre-reset. MOS6502 is
// currently the only supported kind.
func Create(kind Kind) (*Emulator, error) {
	switch kind {
	case MOS6502:
		c := cpu.New()
		c.Reset()
		return &Emulator{cpu: c}, nil
	default:
		return nil, ErrUnsupportedKind
	}
}

// SetLogger redirects the underlying CPU's diagnostic logging.
func (e *Emulator) SetLogger(logger *log.Logger) {
	e.cpu.SetLogger(logger)
}

// Reset returns the CPU to its post-reset state.
func (e *Emulator) Reset() {
	e.cpu.Reset()
}

// LoadProgram copies bytes into memory starting at start. If readonly, the
// loaded range rejects subsequent writes other than through LoadProgram
// itself.
func (e *Emulator) LoadProgram(start uint16, bytes []byte, readonly bool) {
	e.cpu.LoadProgram(start, bytes, readonly)
}

// SetPC sets the program counter directly, without a Reset.
func (e *Emulator) SetPC(pc uint16) {
	e.cpu.PC = pc
}

// GetPC returns the current program counter.
func (e *Emulator) GetPC() uint16 {
	return e.cpu.PC
}

// Run executes until a trap halts the loop or a handler errors. A nil start
// runs from the RESET vector; otherwise PC is set to *start first.
func (e *Emulator) Run(start *uint16) (cpu.Snapshot, error) {
	return e.cpu.Run(start)
}

// RunContext behaves like Run but also returns early if ctx is cancelled.
func (e *Emulator) RunContext(ctx context.Context, start *uint16) (cpu.Snapshot, error) {
	return e.cpu.RunContext(ctx, start)
}

// Step executes exactly one instruction and returns a snapshot taken
// immediately afterward.
func (e *Emulator) Step() (cpu.Snapshot, error) {
	_, err := e.cpu.Step()
	return e.cpu.Snapshot(), err
}

// GetRegisterSnapshot returns the CPU's current observable state.
func (e *Emulator) GetRegisterSnapshot() cpu.Snapshot {
	return e.cpu.Snapshot()
}

// Disassemble renders up to lines instructions starting at start, returning
// the printed lines and the address immediately after the last one decoded.
func (e *Emulator) Disassemble(start uint16, lines int) ([]string, uint16) {
	return cpu.DisassembleLines(e.cpu, start, lines)
}

// GetByteAt reads one byte of memory.
func (e *Emulator) GetByteAt(addr uint16) byte {
	return e.cpu.GetByteAt(addr)
}

// SetByteAt writes one byte of memory, honoring read-only ranges.
func (e *Emulator) SetByteAt(addr uint16, v byte) error {
	return e.cpu.SetByteAt(addr, v)
}

// AddAddressTrap registers a breakpoint on a PC value.
func (e *Emulator) AddAddressTrap(addr uint16, outcome cpu.TrapOutcome) {
	e.cpu.Traps.AddAddressTrap(addr, outcome)
}

// AddOpcodeTrap registers a breakpoint on a raw opcode byte.
func (e *Emulator) AddOpcodeTrap(opcode byte, mnemonic string, outcome cpu.TrapOutcome) {
	e.cpu.Traps.AddOpcodeTrap(opcode, mnemonic, outcome)
}
