package cpu

import "fmt"

// Disassemble decodes the instruction at address and returns its printable
// line and the address of the next instruction. Illegal bytes render as
// ILL(XX) and consume exactly one byte.
func Disassemble(c *Cpu, address uint16) (string, uint16) {
	opcodeByte := c.Bus.Read(address)
	decoded := DecodeOrIllegal(opcodeByte)

	operandBytes := make([]byte, decoded.ExtraBytes)
	for i := range operandBytes {
		operandBytes[i] = c.Bus.Read(address + 1 + uint16(i))
	}

	operand := formatOperand(decoded.Mode, address, operandBytes)
	line := fmt.Sprintf("%04X %s", address, decoded.Mnemonic)
	if operand != "" {
		line += " " + operand
	}

	next := address + 1 + uint16(decoded.ExtraBytes)
	return line, next
}

func wordOf(b []byte) uint16 {
	if len(b) < 2 {
		return uint16(b[0])
	}
	return uint16(b[1])<<8 | uint16(b[0])
}

func formatOperand(mode AddressingMode, address uint16, b []byte) string {
	switch mode {
	case Implied:
		return ""
	case Accumulator:
		return "A"
	case Immediate:
		return fmt.Sprintf("#$%02X", b[0])
	case ZeroPage:
		return fmt.Sprintf("$%02X", b[0])
	case ZeroPageX:
		return fmt.Sprintf("$%02X,X", b[0])
	case ZeroPageY:
		return fmt.Sprintf("$%02X,Y", b[0])
	case Relative:
		target := addrFromOffset(b[0], address+2)
		return fmt.Sprintf("$%02X (%04X)", b[0], target)
	case Absolute:
		return fmt.Sprintf("$%04X", wordOf(b))
	case AbsoluteX:
		return fmt.Sprintf("$%04X,X", wordOf(b))
	case AbsoluteY:
		return fmt.Sprintf("$%04X,Y", wordOf(b))
	case Indirect:
		return fmt.Sprintf("($%04X)", wordOf(b))
	case IndexedXIndirect:
		return fmt.Sprintf("($%02X,X)", b[0])
	case IndirectIndexedY:
		return fmt.Sprintf("($%02X),Y", b[0])
	default:
		return ""
	}
}

// DisassembleLines calls Disassemble repeatedly starting at start, stopping
// once lines have been produced or the next address wraps to 0x0000.
func DisassembleLines(c *Cpu, start uint16, lines int) ([]string, uint16) {
	out := make([]string, 0, lines)
	addr := start
	for i := 0; i < lines; i++ {
		line, next := Disassemble(c, addr)
		out = append(out, line)
		if next == 0 {
			addr = next
			break
		}
		addr = next
	}
	return out, addr
}
