package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrapDoorBuiltinBRKTrap(t *testing.T) {
	td := NewTrapDoor()
	decoded := DecodeOrIllegal(0x00)
	assert.Equal(t, StopAfter, td.PreExecute(decoded, 0x0600))
}

func TestTrapDoorOpcodeTrapIgnoresConfiguredOutcome(t *testing.T) {
	td := NewTrapDoor()
	td.AddOpcodeTrap(0xEA, "NOP", Continue)
	decoded := DecodeOrIllegal(0xEA)
	assert.Equal(t, StopAfter, td.PreExecute(decoded, 0x0600))
}

func TestTrapDoorAddressTakesPrecedenceOverOpcode(t *testing.T) {
	td := NewTrapDoor()
	td.AddAddressTrap(0x0600, Continue)
	decoded := DecodeOrIllegal(0x00) // opcode trap would say StopAfter
	assert.Equal(t, Continue, td.PreExecute(decoded, 0x0600))
}

func TestTrapDoorNoMatchContinues(t *testing.T) {
	td := NewTrapDoor()
	decoded := DecodeOrIllegal(0xEA)
	assert.Equal(t, Continue, td.PreExecute(decoded, 0x0600))
}

func TestCpuTrapString(t *testing.T) {
	addrTrap := CpuTrap{kind: trapByAddress, address: 0x1234}
	assert.Equal(t, "Address trap: 0x1234", addrTrap.String())

	opTrap := CpuTrap{kind: trapByInstruction, opcode: 0x00, mnemonic: "BRK"}
	assert.Equal(t, "Opcode trap: 0x00 (BRK)", opTrap.String())
}
