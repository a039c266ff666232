package sixfive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sixfive/cpu"
)

func TestCreateAndRunThroughFacade(t *testing.T) {
	e, err := Create(MOS6502)
	require.NoError(t, err)

	e.LoadProgram(0x0600, []byte{0xA9, 0x42, 0x85, 0x0F, 0x00}, false)
	start := uint16(0x0600)
	snap, err := e.Run(&start)
	require.NoError(t, err)

	assert.Equal(t, byte(0x42), e.GetByteAt(0x000F))
	assert.Equal(t, cpu.IRQVector, snap.ProgramCounter)
}

func TestCreateUnsupportedKind(t *testing.T) {
	_, err := Create(Kind(99))
	assert.ErrorIs(t, err, ErrUnsupportedKind)
}

func TestFacadeReadOnlyRejection(t *testing.T) {
	e, err := Create(MOS6502)
	require.NoError(t, err)

	e.LoadProgram(0x1000, make([]byte, 4), true)
	err = e.SetByteAt(0x1001, 0xAA)
	assert.ErrorIs(t, err, cpu.ErrReadOnlyMemory)
}

func TestFacadeDisassemble(t *testing.T) {
	e, err := Create(MOS6502)
	require.NoError(t, err)
	e.LoadProgram(0x0600, []byte{0xA9, 0x42, 0x00}, false)

	lines, next := e.Disassemble(0x0600, 2)
	assert.Equal(t, "0600 LDA #$42", lines[0])
	assert.Equal(t, "0602 BRK", lines[1])
	assert.Equal(t, uint16(0x0603), next)
}
