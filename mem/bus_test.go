package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadWriteRoundTrip(t *testing.T) {
	b := New()
	assert.NoError(t, b.Write(0x1234, 0xAB))
	assert.Equal(t, byte(0xAB), b.Read(0x1234))
}

func TestWordIsLittleEndian(t *testing.T) {
	b := New()
	assert.NoError(t, b.WriteWord(0x2000, 0xBEEF))
	assert.Equal(t, byte(0xEF), b.Read(0x2000))
	assert.Equal(t, byte(0xBE), b.Read(0x2001))
	assert.Equal(t, uint16(0xBEEF), b.ReadWord(0x2000))
}

func TestZeroPageWordWrapsWithinPageZero(t *testing.T) {
	b := New()
	assert.NoError(t, b.Write(0x00FF, 0x34))
	assert.NoError(t, b.Write(0x0000, 0x12))
	assert.Equal(t, uint16(0x1234), b.ReadZeroPageWord(0xFF))
}

func TestReadOnlyRangeRejectsWrites(t *testing.T) {
	b := New()
	b.AddReadOnly(0x0100, 0x0200)

	assert.ErrorIs(t, b.Write(0x0100, 0x01), ErrReadOnly)
	assert.ErrorIs(t, b.Write(0x0180, 0x01), ErrReadOnly)
	assert.ErrorIs(t, b.Write(0x01FF, 0x01), ErrReadOnly)
	assert.NoError(t, b.Write(0x0200, 0x01))
}

func TestLoadProgramBypassesReadOnly(t *testing.T) {
	b := New()
	b.AddReadOnly(0x0100, 0x0200)
	b.LoadProgram(0x0180, []byte{0xDE, 0xAD, 0xBE, 0xEF}, false)

	assert.Equal(t, byte(0xDE), b.Read(0x0180))
	assert.Equal(t, byte(0xEF), b.Read(0x0183))
}

func TestLoadProgramCanMarkReadOnly(t *testing.T) {
	b := New()
	b.LoadProgram(0x1000, make([]byte, 16), true)

	assert.ErrorIs(t, b.Write(0x1005, 0xAA), ErrReadOnly)
	assert.Equal(t, byte(0x00), b.Read(0x1005))
}

func TestClearReadOnlyRangesReenablesWrites(t *testing.T) {
	b := New()
	b.AddReadOnly(0x0100, 0x0200)
	assert.ErrorIs(t, b.Write(0x0100, 0x01), ErrReadOnly)

	b.ClearReadOnlyRanges()
	assert.NoError(t, b.Write(0x0100, 0x01))
	assert.Equal(t, byte(0x01), b.Read(0x0100))
}
