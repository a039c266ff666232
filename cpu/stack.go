package cpu

import "sixfive/mem"

// stackPage is the fixed high byte of every stack address: the stack always
// lives in page 0x01.
const stackPage = 0x0100

// StackPointer is the 8-bit SP anchored to page 0x0100. It grows downward:
// push decrements SP after writing, pop increments SP before reading.
type StackPointer struct {
	bus *mem.Bus
	sp  byte
}

// NewStackPointer returns a stack pointer backed by bus, reset to 0xFF.
func NewStackPointer(bus *mem.Bus) *StackPointer {
	s := &StackPointer{bus: bus}
	s.Reset()
	return s
}

// Reset sets SP to 0xFF, the empty-stack state after a CPU reset.
func (s *StackPointer) Reset() {
	s.sp = 0xFF
}

// GetSP returns the full effective address of the current stack top,
// including the 0x0100 page base.
func (s *StackPointer) GetSP() uint16 {
	return stackPage | uint16(s.sp)
}

// SetSP sets the low 8 bits of SP, truncating away any page information in
// the given value.
func (s *StackPointer) SetSP(v uint16) {
	s.sp = byte(v)
}

// PushByte writes v at the current stack address and decrements SP,
// wrapping within page 0x01.
func (s *StackPointer) PushByte(v byte) error {
	if s.sp == 0x00 {
		return ErrStackOverflow
	}
	if err := s.bus.Write(s.GetSP(), v); err != nil {
		return err
	}
	s.sp--
	return nil
}

// PopByte increments SP and reads the byte now at the top of stack.
func (s *StackPointer) PopByte() (byte, error) {
	if s.sp == 0xFF {
		return 0, ErrStackOverflow
	}
	s.sp++
	return s.bus.Read(s.GetSP()), nil
}

// PushWord pushes value as a little-endian word: the high byte lands at the
// higher address, the low byte at the lower address, matching how PopWord
// reads it back. SP decreases by 2. Checked atomically up front so a failing
// push never partially mutates the stack.
func (s *StackPointer) PushWord(value uint16) error {
	if s.sp <= 0x01 {
		return ErrStackOverflow
	}
	hi := byte(value >> 8)
	lo := byte(value)
	top := s.GetSP()
	if err := s.bus.Write(top, hi); err != nil {
		return err
	}
	if err := s.bus.Write(top-1, lo); err != nil {
		return err
	}
	s.sp -= 2
	return nil
}

// PopWord reads a little-endian word written by PushWord and advances SP by
// 2. Checked atomically up front so a failing pop never partially mutates
// SP.
func (s *StackPointer) PopWord() (uint16, error) {
	if s.sp >= 0xFE {
		return 0, ErrStackOverflow
	}
	s.sp++
	lo := s.bus.Read(s.GetSP())
	s.sp++
	hi := s.bus.Read(s.GetSP())
	return uint16(hi)<<8 | uint16(lo), nil
}
