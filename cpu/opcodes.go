package cpu

// Handler executes one instruction's behavior given the addressing mode it
// was decoded with.
type Handler func(c *Cpu, mode AddressingMode) error

// Opcode describes one entry of the canonical opcode table: a mnemonic, its
// addressing mode, how many operand bytes follow it, its base cycle count,
// and the handler that carries out its effect.
type Opcode struct {
	Mnemonic   string
	Mode       AddressingMode
	ExtraBytes byte
	Cycles     byte
	Execute    Handler
}

// operandBytes reports how many bytes follow the opcode byte for mode.
func operandBytes(mode AddressingMode) byte {
	switch mode {
	case Implied, Accumulator:
		return 0
	case Absolute, AbsoluteX, AbsoluteY, Indirect:
		return 2
	default:
		return 1
	}
}

func op(mnemonic string, mode AddressingMode, cycles byte, exec Handler) Opcode {
	return Opcode{Mnemonic: mnemonic, Mode: mode, ExtraBytes: operandBytes(mode), Cycles: cycles, Execute: exec}
}

// Opcodes is the canonical MOS 6502 documented opcode table: opcode byte to
// (mnemonic, addressing mode, operand bytes, base cycles, handler). Bytes
// with no entry are illegal opcodes; DecodeOrIllegal synthesizes a record
// for them rather than looking them up here.
var Opcodes = map[byte]Opcode{
	0x69: op("ADC", Immediate, 2, (*Cpu).ADC),
	0x65: op("ADC", ZeroPage, 3, (*Cpu).ADC),
	0x75: op("ADC", ZeroPageX, 4, (*Cpu).ADC),
	0x6D: op("ADC", Absolute, 4, (*Cpu).ADC),
	0x7D: op("ADC", AbsoluteX, 4, (*Cpu).ADC),
	0x79: op("ADC", AbsoluteY, 4, (*Cpu).ADC),
	0x61: op("ADC", IndexedXIndirect, 6, (*Cpu).ADC),
	0x71: op("ADC", IndirectIndexedY, 5, (*Cpu).ADC),

	0x29: op("AND", Immediate, 2, (*Cpu).AND),
	0x25: op("AND", ZeroPage, 3, (*Cpu).AND),
	0x35: op("AND", ZeroPageX, 4, (*Cpu).AND),
	0x2D: op("AND", Absolute, 4, (*Cpu).AND),
	0x3D: op("AND", AbsoluteX, 4, (*Cpu).AND),
	0x39: op("AND", AbsoluteY, 4, (*Cpu).AND),
	0x21: op("AND", IndexedXIndirect, 6, (*Cpu).AND),
	0x31: op("AND", IndirectIndexedY, 5, (*Cpu).AND),

	0x0A: op("ASL", Accumulator, 2, (*Cpu).ASL),
	0x06: op("ASL", ZeroPage, 5, (*Cpu).ASL),
	0x16: op("ASL", ZeroPageX, 6, (*Cpu).ASL),
	0x0E: op("ASL", Absolute, 6, (*Cpu).ASL),
	0x1E: op("ASL", AbsoluteX, 7, (*Cpu).ASL),

	0x90: op("BCC", Relative, 2, (*Cpu).BCC),
	0xB0: op("BCS", Relative, 2, (*Cpu).BCS),
	0xF0: op("BEQ", Relative, 2, (*Cpu).BEQ),

	0x24: op("BIT", ZeroPage, 3, (*Cpu).BIT),
	0x2C: op("BIT", Absolute, 4, (*Cpu).BIT),

	0x30: op("BMI", Relative, 2, (*Cpu).BMI),
	0xD0: op("BNE", Relative, 2, (*Cpu).BNE),
	0x10: op("BPL", Relative, 2, (*Cpu).BPL),

	0x00: op("BRK", Implied, 7, (*Cpu).BRK),

	0x50: op("BVC", Relative, 2, (*Cpu).BVC),
	0x70: op("BVS", Relative, 2, (*Cpu).BVS),

	0x18: op("CLC", Implied, 2, (*Cpu).CLC),
	0xD8: op("CLD", Implied, 2, (*Cpu).CLD),
	0x58: op("CLI", Implied, 2, (*Cpu).CLI),
	0xB8: op("CLV", Implied, 2, (*Cpu).CLV),

	0xC9: op("CMP", Immediate, 2, (*Cpu).CMP),
	0xC5: op("CMP", ZeroPage, 3, (*Cpu).CMP),
	0xD5: op("CMP", ZeroPageX, 4, (*Cpu).CMP),
	0xCD: op("CMP", Absolute, 4, (*Cpu).CMP),
	0xDD: op("CMP", AbsoluteX, 4, (*Cpu).CMP),
	0xD9: op("CMP", AbsoluteY, 4, (*Cpu).CMP),
	0xC1: op("CMP", IndexedXIndirect, 6, (*Cpu).CMP),
	0xD1: op("CMP", IndirectIndexedY, 5, (*Cpu).CMP),

	0xE0: op("CPX", Immediate, 2, (*Cpu).CPX),
	0xE4: op("CPX", ZeroPage, 3, (*Cpu).CPX),
	0xEC: op("CPX", Absolute, 4, (*Cpu).CPX),

	0xC0: op("CPY", Immediate, 2, (*Cpu).CPY),
	0xC4: op("CPY", ZeroPage, 3, (*Cpu).CPY),
	0xCC: op("CPY", Absolute, 4, (*Cpu).CPY),

	0xC6: op("DEC", ZeroPage, 5, (*Cpu).DEC),
	0xD6: op("DEC", ZeroPageX, 6, (*Cpu).DEC),
	0xCE: op("DEC", Absolute, 6, (*Cpu).DEC),
	0xDE: op("DEC", AbsoluteX, 7, (*Cpu).DEC),

	0xCA: op("DEX", Implied, 2, (*Cpu).DEX),
	0x88: op("DEY", Implied, 2, (*Cpu).DEY),

	0x49: op("EOR", Immediate, 2, (*Cpu).EOR),
	0x45: op("EOR", ZeroPage, 3, (*Cpu).EOR),
	0x55: op("EOR", ZeroPageX, 4, (*Cpu).EOR),
	0x4D: op("EOR", Absolute, 4, (*Cpu).EOR),
	0x5D: op("EOR", AbsoluteX, 4, (*Cpu).EOR),
	0x59: op("EOR", AbsoluteY, 4, (*Cpu).EOR),
	0x41: op("EOR", IndexedXIndirect, 6, (*Cpu).EOR),
	0x51: op("EOR", IndirectIndexedY, 5, (*Cpu).EOR),

	0xE6: op("INC", ZeroPage, 5, (*Cpu).INC),
	0xF6: op("INC", ZeroPageX, 6, (*Cpu).INC),
	0xEE: op("INC", Absolute, 6, (*Cpu).INC),
	0xFE: op("INC", AbsoluteX, 7, (*Cpu).INC),

	0xE8: op("INX", Implied, 2, (*Cpu).INX),
	0xC8: op("INY", Implied, 2, (*Cpu).INY),

	0x4C: op("JMP", Absolute, 3, (*Cpu).JMP),
	0x6C: op("JMP", Indirect, 5, (*Cpu).JMP),

	0x20: op("JSR", Absolute, 6, (*Cpu).JSR),

	0xA9: op("LDA", Immediate, 2, (*Cpu).LDA),
	0xA5: op("LDA", ZeroPage, 3, (*Cpu).LDA),
	0xB5: op("LDA", ZeroPageX, 4, (*Cpu).LDA),
	0xAD: op("LDA", Absolute, 4, (*Cpu).LDA),
	0xBD: op("LDA", AbsoluteX, 4, (*Cpu).LDA),
	0xB9: op("LDA", AbsoluteY, 4, (*Cpu).LDA),
	0xA1: op("LDA", IndexedXIndirect, 6, (*Cpu).LDA),
	0xB1: op("LDA", IndirectIndexedY, 5, (*Cpu).LDA),

	0xA2: op("LDX", Immediate, 2, (*Cpu).LDX),
	0xA6: op("LDX", ZeroPage, 3, (*Cpu).LDX),
	0xB6: op("LDX", ZeroPageY, 4, (*Cpu).LDX),
	0xAE: op("LDX", Absolute, 4, (*Cpu).LDX),
	0xBE: op("LDX", AbsoluteY, 4, (*Cpu).LDX),

	0xA0: op("LDY", Immediate, 2, (*Cpu).LDY),
	0xA4: op("LDY", ZeroPage, 3, (*Cpu).LDY),
	0xB4: op("LDY", ZeroPageX, 4, (*Cpu).LDY),
	0xAC: op("LDY", Absolute, 4, (*Cpu).LDY),
	0xBC: op("LDY", AbsoluteX, 4, (*Cpu).LDY),

	0x4A: op("LSR", Accumulator, 2, (*Cpu).LSR),
	0x46: op("LSR", ZeroPage, 5, (*Cpu).LSR),
	0x56: op("LSR", ZeroPageX, 6, (*Cpu).LSR),
	0x4E: op("LSR", Absolute, 6, (*Cpu).LSR),
	0x5E: op("LSR", AbsoluteX, 7, (*Cpu).LSR),

	0xEA: op("NOP", Implied, 2, (*Cpu).NOP),

	0x09: op("ORA", Immediate, 2, (*Cpu).ORA),
	0x05: op("ORA", ZeroPage, 3, (*Cpu).ORA),
	0x15: op("ORA", ZeroPageX, 4, (*Cpu).ORA),
	0x0D: op("ORA", Absolute, 4, (*Cpu).ORA),
	0x1D: op("ORA", AbsoluteX, 4, (*Cpu).ORA),
	0x19: op("ORA", AbsoluteY, 4, (*Cpu).ORA),
	0x01: op("ORA", IndexedXIndirect, 6, (*Cpu).ORA),
	0x11: op("ORA", IndirectIndexedY, 5, (*Cpu).ORA),

	0x48: op("PHA", Implied, 3, (*Cpu).PHA),
	0x08: op("PHP", Implied, 3, (*Cpu).PHP),
	0x68: op("PLA", Implied, 4, (*Cpu).PLA),
	0x28: op("PLP", Implied, 4, (*Cpu).PLP),

	0x2A: op("ROL", Accumulator, 2, (*Cpu).ROL),
	0x26: op("ROL", ZeroPage, 5, (*Cpu).ROL),
	0x36: op("ROL", ZeroPageX, 6, (*Cpu).ROL),
	0x2E: op("ROL", Absolute, 6, (*Cpu).ROL),
	0x3E: op("ROL", AbsoluteX, 7, (*Cpu).ROL),

	0x6A: op("ROR", Accumulator, 2, (*Cpu).ROR),
	0x66: op("ROR", ZeroPage, 5, (*Cpu).ROR),
	0x76: op("ROR", ZeroPageX, 6, (*Cpu).ROR),
	0x6E: op("ROR", Absolute, 6, (*Cpu).ROR),
	0x7E: op("ROR", AbsoluteX, 7, (*Cpu).ROR),

	0x40: op("RTI", Implied, 6, (*Cpu).RTI),
	0x60: op("RTS", Implied, 6, (*Cpu).RTS),

	0xE9: op("SBC", Immediate, 2, (*Cpu).SBC),
	0xE5: op("SBC", ZeroPage, 3, (*Cpu).SBC),
	0xF5: op("SBC", ZeroPageX, 4, (*Cpu).SBC),
	0xED: op("SBC", Absolute, 4, (*Cpu).SBC),
	0xFD: op("SBC", AbsoluteX, 4, (*Cpu).SBC),
	0xF9: op("SBC", AbsoluteY, 4, (*Cpu).SBC),
	0xE1: op("SBC", IndexedXIndirect, 6, (*Cpu).SBC),
	0xF1: op("SBC", IndirectIndexedY, 5, (*Cpu).SBC),

	0x38: op("SEC", Implied, 2, (*Cpu).SEC),
	0xF8: op("SED", Implied, 2, (*Cpu).SED),
	0x78: op("SEI", Implied, 2, (*Cpu).SEI),

	0x85: op("STA", ZeroPage, 3, (*Cpu).STA),
	0x95: op("STA", ZeroPageX, 4, (*Cpu).STA),
	0x8D: op("STA", Absolute, 4, (*Cpu).STA),
	0x9D: op("STA", AbsoluteX, 5, (*Cpu).STA),
	0x99: op("STA", AbsoluteY, 5, (*Cpu).STA),
	0x81: op("STA", IndexedXIndirect, 6, (*Cpu).STA),
	0x91: op("STA", IndirectIndexedY, 6, (*Cpu).STA),

	0x86: op("STX", ZeroPage, 3, (*Cpu).STX),
	0x96: op("STX", ZeroPageY, 4, (*Cpu).STX),
	0x8E: op("STX", Absolute, 4, (*Cpu).STX),

	0x84: op("STY", ZeroPage, 3, (*Cpu).STY),
	0x94: op("STY", ZeroPageX, 4, (*Cpu).STY),
	0x8C: op("STY", Absolute, 4, (*Cpu).STY),

	0xAA: op("TAX", Implied, 2, (*Cpu).TAX),
	0xA8: op("TAY", Implied, 2, (*Cpu).TAY),
	0xBA: op("TSX", Implied, 2, (*Cpu).TSX),
	0x8A: op("TXA", Implied, 2, (*Cpu).TXA),
	0x9A: op("TXS", Implied, 2, (*Cpu).TXS),
	0x98: op("TYA", Implied, 2, (*Cpu).TYA),
}

// Decoded is the result of decoding one opcode byte at a known address,
// ready for the trap door and the CPU core to act on.
type Decoded struct {
	OpcodeByte byte
	Mnemonic   string
	Mode       AddressingMode
	ExtraBytes byte
	Cycles     byte
	Execute    Handler
	Illegal    bool
}

// Decode looks opcode up in the table, returning ErrInvalidOpcode if it has
// no entry.
func Decode(opcode byte) (Decoded, error) {
	o, ok := Opcodes[opcode]
	if !ok {
		return Decoded{}, invalidOpcodeError(opcode)
	}
	return Decoded{
		OpcodeByte: opcode,
		Mnemonic:   o.Mnemonic,
		Mode:       o.Mode,
		ExtraBytes: o.ExtraBytes,
		Cycles:     o.Cycles,
		Execute:    o.Execute,
	}, nil
}

// DecodeOrIllegal decodes opcode, synthesizing an ILL(XX) record for any
// byte absent from the table. Illegal instructions use the BRK handler so
// execution halts deterministically, per the documented "treat as trap and
// stop" illegal-opcode policy.
func DecodeOrIllegal(opcode byte) Decoded {
	d, err := Decode(opcode)
	if err == nil {
		return d
	}
	return Decoded{
		OpcodeByte: opcode,
		Mnemonic:   illegalMnemonic(opcode),
		Mode:       Implied,
		ExtraBytes: 0,
		Cycles:     0,
		Execute:    (*Cpu).BRK,
		Illegal:    true,
	}
}

func illegalMnemonic(b byte) string {
	const hex = "0123456789ABCDEF"
	return "ILL(" + string([]byte{hex[b>>4], hex[b&0x0F]}) + ")"
}
