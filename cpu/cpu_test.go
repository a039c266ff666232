package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReadyCpu() *Cpu {
	c := New()
	c.Reset()
	return c
}

func TestUpdateFromInvariant(t *testing.T) {
	for _, b := range []byte{0x00, 0x01, 0x7F, 0x80, 0xFF} {
		var s StatusRegister
		s.SetCarry(true)
		s.SetOverflow(true)
		s.UpdateFrom(b)
		assert.Equal(t, b >= 0x80, s.Negative())
		assert.Equal(t, b == 0, s.Zero())
		assert.True(t, s.Carry(), "carry must be untouched by UpdateFrom")
		assert.True(t, s.Overflow(), "overflow must be untouched by UpdateFrom")
	}
}

func TestResetState(t *testing.T) {
	c := New()
	c.Reset()
	assert.Zero(t, c.A)
	assert.Zero(t, c.X)
	assert.Zero(t, c.Y)
	assert.Equal(t, uint16(0x01FF), c.Stack.GetSP())
	assert.True(t, c.Status.Zero())
	assert.Equal(t, ResetVector, c.PC)
	assert.Zero(t, c.AccumulatedCycles)
	assert.Zero(t, c.AccumulatedInstructions)
}

func TestScenario1SimpleLoadStore(t *testing.T) {
	c := newReadyCpu()
	c.LoadProgram(0x0600, []byte{0xA9, 0x42, 0x85, 0x0F, 0x00}, false)
	start := uint16(0x0600)
	snap, err := c.Run(&start)
	require.NoError(t, err)

	assert.Equal(t, byte(0x42), c.A)
	assert.Equal(t, byte(0x42), c.GetByteAt(0x000F))
	assert.Equal(t, IRQVector, snap.ProgramCounter)
	assert.Equal(t, uint64(3), snap.AccumulatedInstructions)
	assert.Equal(t, uint64(12), snap.AccumulatedCycles)
}

func TestScenario2EmptyRun(t *testing.T) {
	c := newReadyCpu()
	snap, err := c.Run(nil)
	require.NoError(t, err)

	assert.Equal(t, IRQVector, snap.ProgramCounter)
	assert.Equal(t, uint64(1), snap.AccumulatedInstructions)
	assert.Equal(t, uint64(7), snap.AccumulatedCycles)
}

// TestScenario3EuclidGCD runs a subtract-and-swap GCD of VAR_A=126 (0x0040)
// and VAR_B=49 (0x0041), the end-to-end scenario this core's arithmetic and
// branch handling is judged against.
func TestScenario3EuclidGCD(t *testing.T) {
	c := newReadyCpu()
	c.LoadProgram(0x0040, []byte{126}, false)
	c.LoadProgram(0x0041, []byte{49}, false)

	// loop:        0200  LDA varA     A5 40
	//              0202  CMP varB     C5 41
	//              0204  BEQ done     F0 0D   -> 0213
	//              0206  BCS aBigger  B0 03   -> 020B
	//              0208  JMP bBigger  4C 14 02
	// aBigger:     020B  SEC             38
	//              020C  SBC varB     E5 41
	//              020E  STA varA     85 40
	//              0210  JMP loop     4C 00 02
	// done:        0213  BRK             00
	// bBigger:     0214  LDA varB     A5 41
	//              0216  SEC             38
	//              0217  SBC varA     E5 40
	//              0219  STA varB     85 41
	//              021B  JMP loop     4C 00 02
	c.LoadProgram(0x0200, []byte{
		0xA5, 0x40,
		0xC5, 0x41,
		0xF0, 0x0D,
		0xB0, 0x03,
		0x4C, 0x14, 0x02,
		0x38,
		0xE5, 0x41,
		0x85, 0x40,
		0x4C, 0x00, 0x02,
		0x00,
	}, false)
	c.LoadProgram(0x0214, []byte{
		0xA5, 0x41,
		0x38,
		0xE5, 0x40,
		0x85, 0x41,
		0x4C, 0x00, 0x02,
	}, false)

	start := uint16(0x0200)
	snap, err := c.Run(&start)
	require.NoError(t, err)

	assert.Equal(t, byte(7), c.GetByteAt(0x0040))
	assert.Equal(t, byte(7), c.GetByteAt(0x0041))
	assert.Equal(t, IRQVector, snap.ProgramCounter)
}

func TestScenario4ReadOnlyRejection(t *testing.T) {
	c := newReadyCpu()
	c.LoadProgram(0x1000, make([]byte, 16), true)

	err := c.SetByteAt(0x1005, 0xAA)
	assert.ErrorIs(t, err, ErrReadOnlyMemory)
	assert.Equal(t, byte(0x00), c.GetByteAt(0x1005))

	// STA into a read-only byte succeeds at the instruction level but
	// leaves memory unchanged.
	c.LoadProgram(0x0600, []byte{0xA9, 0x99, 0x8D, 0x05, 0x10}, false)
	c.PC = 0x0600
	_, err = c.Step()
	require.NoError(t, err)
	_, err = c.Step()
	require.NoError(t, err)
	assert.Equal(t, byte(0x00), c.GetByteAt(0x1005))
}

func TestScenario5IndirectJmpPageWrapBug(t *testing.T) {
	c := newReadyCpu()
	c.Bus.Write(0x02FF, 0x34)
	c.Bus.Write(0x0200, 0x12)
	c.LoadProgram(0x0300, []byte{0x6C, 0xFF, 0x02}, false)

	c.PC = 0x0300
	stop, err := c.Step()
	require.NoError(t, err)
	assert.False(t, stop)
	assert.Equal(t, uint16(0x1234), c.PC)
}

func TestScenario6DisassemblyRoundTrip(t *testing.T) {
	c := newReadyCpu()
	c.LoadProgram(0x0600, []byte{
		0xA9, 0x42,
		0x85, 0x0F,
		0x30, 0x04,
		0xF0, 0xFA,
		0x4C, 0x00, 0x06,
		0xEA,
		0x00,
	}, false)

	lines, _ := DisassembleLines(c, 0x0600, 7)
	require.Len(t, lines, 7)
	assert.Equal(t, "0600 LDA #$42", lines[0])
	assert.Equal(t, "0602 STA $0F", lines[1])
	assert.Equal(t, "0604 BMI $04 (060A)", lines[2])
	assert.Equal(t, "0606 BEQ $FA (0602)", lines[3])
	assert.Equal(t, "0608 JMP $0600", lines[4])
	assert.Equal(t, "060B NOP", lines[5])
	assert.Equal(t, "060C BRK", lines[6])
}

func TestIllegalOpcodeSynthesis(t *testing.T) {
	d := DecodeOrIllegal(0xFF)
	assert.True(t, d.Illegal)
	assert.Equal(t, "ILL(FF)", d.Mnemonic)
	assert.Equal(t, byte(0), d.Cycles)
}

func TestTrapDoorAddressPrecedence(t *testing.T) {
	c := newReadyCpu()
	c.LoadProgram(0x0600, []byte{0xEA, 0xEA, 0x00}, false)
	c.Traps.AddAddressTrap(0x0601, Stop)

	start := uint16(0x0600)
	snap, err := c.Run(&start)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0601), snap.ProgramCounter)
	assert.Equal(t, uint64(1), snap.AccumulatedInstructions)
}

func TestStackPushPopWordRoundTrip(t *testing.T) {
	c := newReadyCpu()
	require.NoError(t, c.Stack.PushWord(0xBEEF))
	v, err := c.Stack.PopWord()
	require.NoError(t, err)
	assert.Equal(t, uint16(0xBEEF), v)
}

func TestDecimalModeRefused(t *testing.T) {
	c := newReadyCpu()
	c.Status.SetDecimal(true)
	c.LoadProgram(0x0600, []byte{0x69, 0x01}, false)
	c.PC = 0x0600
	_, err := c.Step()
	assert.ErrorIs(t, err, ErrDecimalModeUnsupported)
}

func TestADCOverflowFlag(t *testing.T) {
	c := newReadyCpu()
	c.A = 0x7F
	c.LoadProgram(0x0600, []byte{0x69, 0x01}, false)
	c.PC = 0x0600
	_, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, byte(0x80), c.A)
	assert.True(t, c.Status.Overflow())
	assert.True(t, c.Status.Negative())
}
