package cpu

import (
	"errors"
	"fmt"
)

var (
	// ErrNotInitialized is returned when Step or Run is invoked before Reset
	// has ever completed.
	ErrNotInitialized = errors.New("cpu: not initialized; call Reset first")

	// ErrInvalidAddress is returned when the program counter advances past
	// the end of memory. Unreachable with the standard 64 KiB bus.
	ErrInvalidAddress = errors.New("cpu: address out of range")

	// ErrInvalidAddressingMode is returned when a handler is invoked with an
	// addressing mode it does not support.
	ErrInvalidAddressingMode = errors.New("cpu: addressing mode not valid for this instruction")

	// ErrInvalidOpcode is returned by Decode for bytes with no table entry.
	// DecodeOrIllegal never returns it; it synthesizes an ILL instruction
	// instead.
	ErrInvalidOpcode = errors.New("cpu: invalid opcode")

	// ErrStackOverflow covers both push-on-full and pop-on-empty.
	ErrStackOverflow = errors.New("cpu: stack overflow")

	// ErrReadOnlyMemory wraps mem.ErrReadOnly at the CPU boundary so callers
	// of the facade only need to know one sentinel.
	ErrReadOnlyMemory = errors.New("cpu: address is read-only")

	// ErrDecimalModeUnsupported is returned by ADC/SBC when the Decimal flag
	// is set. BCD arithmetic is out of scope; this fails loudly instead of
	// silently producing a wrong binary result.
	ErrDecimalModeUnsupported = errors.New("cpu: decimal mode (D flag) is not supported")
)

func invalidOpcodeError(b byte) error {
	return fmt.Errorf("%w: 0x%02X", ErrInvalidOpcode, b)
}
