package cpu

// Handlers are grouped by mnemonic family. Each receives the addressing mode
// it was decoded with and is responsible for fetching its own operand via
// EffectiveAddress/EffectiveOperand.

// addWithCarry implements A + operand + carryIn for both ADC (operand = M)
// and SBC (operand = ^M, the standard two's-complement identity that turns
// subtraction into addition).
func (c *Cpu) addWithCarry(operand byte) {
	carryIn := uint16(0)
	if c.Status.Carry() {
		carryIn = 1
	}
	sum := uint16(c.A) + uint16(operand) + carryIn
	result := byte(sum)

	c.Status.SetCarry(sum > 0xFF)
	c.Status.SetOverflow((c.A^result)&(operand^result)&0x80 != 0)
	c.Status.UpdateFrom(result)
	c.A = result
}

// ADC: A <- A + M + C.
func (c *Cpu) ADC(mode AddressingMode) error {
	if c.Status.Decimal() {
		c.logf("ADC refused: decimal mode is not supported")
		return ErrDecimalModeUnsupported
	}
	m, err := c.EffectiveOperand(mode)
	if err != nil {
		return err
	}
	c.addWithCarry(m)
	return nil
}

// SBC: A <- A - M - (1-C), computed as addWithCarry(^M).
func (c *Cpu) SBC(mode AddressingMode) error {
	if c.Status.Decimal() {
		c.logf("SBC refused: decimal mode is not supported")
		return ErrDecimalModeUnsupported
	}
	m, err := c.EffectiveOperand(mode)
	if err != nil {
		return err
	}
	c.addWithCarry(^m)
	return nil
}

// AND: A <- A & M.
func (c *Cpu) AND(mode AddressingMode) error {
	m, err := c.EffectiveOperand(mode)
	if err != nil {
		return err
	}
	c.A &= m
	c.Status.UpdateFrom(c.A)
	return nil
}

// EOR: A <- A ^ M.
func (c *Cpu) EOR(mode AddressingMode) error {
	m, err := c.EffectiveOperand(mode)
	if err != nil {
		return err
	}
	c.A ^= m
	c.Status.UpdateFrom(c.A)
	return nil
}

// ORA: A <- A | M.
func (c *Cpu) ORA(mode AddressingMode) error {
	m, err := c.EffectiveOperand(mode)
	if err != nil {
		return err
	}
	c.A |= m
	c.Status.UpdateFrom(c.A)
	return nil
}

// readModifyWrite loads the operand (A for Accumulator mode, memory
// otherwise), applies f, writes the result back to the same place, and
// updates N/Z from the result. f also reports the new carry bit.
func (c *Cpu) readModifyWrite(mode AddressingMode, f func(byte) (byte, bool)) error {
	if mode == Accumulator {
		result, carry := f(c.A)
		c.A = result
		c.Status.SetCarry(carry)
		c.Status.UpdateFrom(result)
		return nil
	}
	addr, err := c.EffectiveAddress(mode)
	if err != nil {
		return err
	}
	v := c.Bus.Read(addr)
	result, carry := f(v)
	if err := c.Bus.Write(addr, result); err != nil {
		return err
	}
	c.Status.SetCarry(carry)
	c.Status.UpdateFrom(result)
	return nil
}

// ASL: C <- bit7; value <<= 1.
func (c *Cpu) ASL(mode AddressingMode) error {
	return c.readModifyWrite(mode, func(v byte) (byte, bool) {
		return v << 1, v&0x80 != 0
	})
}

// LSR: C <- bit0; value >>= 1; N always clears since bit7 becomes 0.
func (c *Cpu) LSR(mode AddressingMode) error {
	return c.readModifyWrite(mode, func(v byte) (byte, bool) {
		return v >> 1, v&0x01 != 0
	})
}

// ROL: new bit0 <- old C; C <- bit7; rotate left.
func (c *Cpu) ROL(mode AddressingMode) error {
	oldCarry := c.Status.Carry()
	return c.readModifyWrite(mode, func(v byte) (byte, bool) {
		result := v << 1
		if oldCarry {
			result |= 0x01
		}
		return result, v&0x80 != 0
	})
}

// ROR: new bit7 <- old C; C <- bit0; rotate right.
func (c *Cpu) ROR(mode AddressingMode) error {
	oldCarry := c.Status.Carry()
	return c.readModifyWrite(mode, func(v byte) (byte, bool) {
		result := v >> 1
		if oldCarry {
			result |= 0x80
		}
		return result, v&0x01 != 0
	})
}

// INC: memory <- memory + 1 (wrapping).
func (c *Cpu) INC(mode AddressingMode) error {
	addr, err := c.EffectiveAddress(mode)
	if err != nil {
		return err
	}
	result := c.Bus.Read(addr) + 1
	if err := c.Bus.Write(addr, result); err != nil {
		return err
	}
	c.Status.UpdateFrom(result)
	return nil
}

// DEC: memory <- memory - 1 (wrapping).
func (c *Cpu) DEC(mode AddressingMode) error {
	addr, err := c.EffectiveAddress(mode)
	if err != nil {
		return err
	}
	result := c.Bus.Read(addr) - 1
	if err := c.Bus.Write(addr, result); err != nil {
		return err
	}
	c.Status.UpdateFrom(result)
	return nil
}

func requireImplied(mode AddressingMode) error {
	if mode != Implied {
		return ErrInvalidAddressingMode
	}
	return nil
}

// INX: X <- X + 1.
func (c *Cpu) INX(mode AddressingMode) error {
	if err := requireImplied(mode); err != nil {
		return err
	}
	c.X++
	c.Status.UpdateFrom(c.X)
	return nil
}

// INY: Y <- Y + 1.
func (c *Cpu) INY(mode AddressingMode) error {
	if err := requireImplied(mode); err != nil {
		return err
	}
	c.Y++
	c.Status.UpdateFrom(c.Y)
	return nil
}

// DEX: X <- X - 1.
func (c *Cpu) DEX(mode AddressingMode) error {
	if err := requireImplied(mode); err != nil {
		return err
	}
	c.X--
	c.Status.UpdateFrom(c.X)
	return nil
}

// DEY: Y <- Y - 1.
func (c *Cpu) DEY(mode AddressingMode) error {
	if err := requireImplied(mode); err != nil {
		return err
	}
	c.Y--
	c.Status.UpdateFrom(c.Y)
	return nil
}

// LDA: A <- M.
func (c *Cpu) LDA(mode AddressingMode) error {
	m, err := c.EffectiveOperand(mode)
	if err != nil {
		return err
	}
	c.A = m
	c.Status.UpdateFrom(c.A)
	return nil
}

// LDX: X <- M.
func (c *Cpu) LDX(mode AddressingMode) error {
	m, err := c.EffectiveOperand(mode)
	if err != nil {
		return err
	}
	c.X = m
	c.Status.UpdateFrom(c.X)
	return nil
}

// LDY: Y <- M.
func (c *Cpu) LDY(mode AddressingMode) error {
	m, err := c.EffectiveOperand(mode)
	if err != nil {
		return err
	}
	c.Y = m
	c.Status.UpdateFrom(c.Y)
	return nil
}

// store writes v to mode's effective address. A write into a read-only
// range is swallowed: the instruction still "succeeds" (matching scenario 4
// in the testable-properties catalog), it just leaves memory unchanged.
func (c *Cpu) store(mode AddressingMode, v byte) error {
	addr, err := c.EffectiveAddress(mode)
	if err != nil {
		return err
	}
	if err := c.Bus.Write(addr, v); err != nil {
		c.logf("store to 0x%04X refused: %v", addr, err)
	}
	return nil
}

// STA: M <- A. Flags untouched, per 6502 canon.
func (c *Cpu) STA(mode AddressingMode) error {
	return c.store(mode, c.A)
}

// STX: M <- X. Flags untouched, per 6502 canon.
func (c *Cpu) STX(mode AddressingMode) error {
	return c.store(mode, c.X)
}

// STY: M <- Y. Flags untouched, per 6502 canon.
func (c *Cpu) STY(mode AddressingMode) error {
	return c.store(mode, c.Y)
}

// TAX: X <- A.
func (c *Cpu) TAX(mode AddressingMode) error {
	if err := requireImplied(mode); err != nil {
		return err
	}
	c.X = c.A
	c.Status.UpdateFrom(c.X)
	return nil
}

// TAY: Y <- A.
func (c *Cpu) TAY(mode AddressingMode) error {
	if err := requireImplied(mode); err != nil {
		return err
	}
	c.Y = c.A
	c.Status.UpdateFrom(c.Y)
	return nil
}

// TXA: A <- X.
func (c *Cpu) TXA(mode AddressingMode) error {
	if err := requireImplied(mode); err != nil {
		return err
	}
	c.A = c.X
	c.Status.UpdateFrom(c.A)
	return nil
}

// TYA: A <- Y.
func (c *Cpu) TYA(mode AddressingMode) error {
	if err := requireImplied(mode); err != nil {
		return err
	}
	c.A = c.Y
	c.Status.UpdateFrom(c.A)
	return nil
}

// TSX: X <- SP (low byte).
func (c *Cpu) TSX(mode AddressingMode) error {
	if err := requireImplied(mode); err != nil {
		return err
	}
	c.X = byte(c.Stack.GetSP())
	c.Status.UpdateFrom(c.X)
	return nil
}

// TXS: SP <- X. 6502 canon: no flag change.
func (c *Cpu) TXS(mode AddressingMode) error {
	if err := requireImplied(mode); err != nil {
		return err
	}
	c.Stack.SetSP(uint16(c.X))
	return nil
}

// subtractWithCarry computes minuend - subtrahend with carry pre-set,
// shared by CMP/CPX/CPY. Carry comes out set iff there was no borrow, i.e.
// minuend >= subtrahend (unsigned).
func subtractWithCarry(minuend, subtrahend byte) (result byte, carryOut bool) {
	diff := int16(minuend) - int16(subtrahend)
	return byte(diff), diff >= 0
}

// compare is the shared CMP/CPX/CPY effect: register is unchanged, N Z C
// are set from register - M.
func (c *Cpu) compare(mode AddressingMode, register byte) error {
	m, err := c.EffectiveOperand(mode)
	if err != nil {
		return err
	}
	result, carry := subtractWithCarry(register, m)
	c.Status.SetCarry(carry)
	c.Status.UpdateFrom(result)
	return nil
}

// CMP: compare A with M.
func (c *Cpu) CMP(mode AddressingMode) error { return c.compare(mode, c.A) }

// CPX: compare X with M.
func (c *Cpu) CPX(mode AddressingMode) error { return c.compare(mode, c.X) }

// CPY: compare Y with M.
func (c *Cpu) CPY(mode AddressingMode) error { return c.compare(mode, c.Y) }

// BIT: N <- M bit7; V <- M bit6; Z <- (A & M == 0). A unchanged.
func (c *Cpu) BIT(mode AddressingMode) error {
	m, err := c.EffectiveOperand(mode)
	if err != nil {
		return err
	}
	c.Status.SetNegative(m&0x80 != 0)
	c.Status.SetOverflow(m&0x40 != 0)
	c.Status.SetZero(c.A&m == 0)
	return nil
}

// branch computes the Relative-mode target, advancing PC past the offset
// byte regardless of whether the branch is taken, and sets PC to it only
// when cond holds.
func (c *Cpu) branch(mode AddressingMode, cond bool) error {
	target, err := c.EffectiveAddress(mode)
	if err != nil {
		return err
	}
	if cond {
		c.PC = target
	}
	return nil
}

func (c *Cpu) BCC(mode AddressingMode) error { return c.branch(mode, !c.Status.Carry()) }
func (c *Cpu) BCS(mode AddressingMode) error { return c.branch(mode, c.Status.Carry()) }
func (c *Cpu) BEQ(mode AddressingMode) error { return c.branch(mode, c.Status.Zero()) }
func (c *Cpu) BNE(mode AddressingMode) error { return c.branch(mode, !c.Status.Zero()) }
func (c *Cpu) BMI(mode AddressingMode) error { return c.branch(mode, c.Status.Negative()) }
func (c *Cpu) BPL(mode AddressingMode) error { return c.branch(mode, !c.Status.Negative()) }
func (c *Cpu) BVC(mode AddressingMode) error { return c.branch(mode, !c.Status.Overflow()) }
func (c *Cpu) BVS(mode AddressingMode) error { return c.branch(mode, c.Status.Overflow()) }

// JMP: PC <- effective address (Absolute or Indirect, including the
// documented page-wrap bug in EffectiveAddress).
func (c *Cpu) JMP(mode AddressingMode) error {
	addr, err := c.EffectiveAddress(mode)
	if err != nil {
		return err
	}
	c.PC = addr
	return nil
}

// JSR pushes PC-1 (the address of the JSR instruction's last byte) then
// jumps to the effective address.
func (c *Cpu) JSR(mode AddressingMode) error {
	addr, err := c.EffectiveAddress(mode)
	if err != nil {
		return err
	}
	if err := c.Stack.PushWord(c.PC - 1); err != nil {
		return err
	}
	c.PC = addr
	return nil
}

// RTS pops a word into PC and increments it by one, undoing JSR's PC-1.
func (c *Cpu) RTS(mode AddressingMode) error {
	if err := requireImplied(mode); err != nil {
		return err
	}
	addr, err := c.Stack.PopWord()
	if err != nil {
		return err
	}
	c.PC = addr + 1
	return nil
}

func (c *Cpu) CLC(mode AddressingMode) error {
	if err := requireImplied(mode); err != nil {
		return err
	}
	c.Status.SetCarry(false)
	return nil
}

func (c *Cpu) CLD(mode AddressingMode) error {
	if err := requireImplied(mode); err != nil {
		return err
	}
	c.Status.SetDecimal(false)
	return nil
}

func (c *Cpu) CLI(mode AddressingMode) error {
	if err := requireImplied(mode); err != nil {
		return err
	}
	c.Status.SetInterruptDisable(false)
	return nil
}

func (c *Cpu) CLV(mode AddressingMode) error {
	if err := requireImplied(mode); err != nil {
		return err
	}
	c.Status.SetOverflow(false)
	return nil
}

func (c *Cpu) SEC(mode AddressingMode) error {
	if err := requireImplied(mode); err != nil {
		return err
	}
	c.Status.SetCarry(true)
	return nil
}

func (c *Cpu) SED(mode AddressingMode) error {
	if err := requireImplied(mode); err != nil {
		return err
	}
	c.Status.SetDecimal(true)
	return nil
}

func (c *Cpu) SEI(mode AddressingMode) error {
	if err := requireImplied(mode); err != nil {
		return err
	}
	c.Status.SetInterruptDisable(true)
	return nil
}

// PHA pushes A.
func (c *Cpu) PHA(mode AddressingMode) error {
	if err := requireImplied(mode); err != nil {
		return err
	}
	return c.Stack.PushByte(c.A)
}

// PHP pushes the status byte with the B bit and unused bit forced to 1 (the
// pushed copy only; the live register is untouched).
func (c *Cpu) PHP(mode AddressingMode) error {
	if err := requireImplied(mode); err != nil {
		return err
	}
	return c.Stack.PushByte(c.Status.Get() | 0x30)
}

// PLA pulls A and updates N/Z from it.
func (c *Cpu) PLA(mode AddressingMode) error {
	if err := requireImplied(mode); err != nil {
		return err
	}
	v, err := c.Stack.PopByte()
	if err != nil {
		return err
	}
	c.A = v
	c.Status.UpdateFrom(c.A)
	return nil
}

// PLP pulls the status byte, masking away B and the unused bit.
func (c *Cpu) PLP(mode AddressingMode) error {
	if err := requireImplied(mode); err != nil {
		return err
	}
	v, err := c.Stack.PopByte()
	if err != nil {
		return err
	}
	c.Status.Set(v & statusUnusedMask)
	return nil
}

// BRK pushes PC+1 (skipping the signature byte) and the status with B set
// on the pushed copy only, then jumps to the IRQ vector. This is also the
// handler used for synthesized illegal opcodes, so execution halts
// deterministically on any undecodable byte.
func (c *Cpu) BRK(mode AddressingMode) error {
	if err := c.Stack.PushWord(c.PC + 1); err != nil {
		return err
	}
	if err := c.Stack.PushByte(c.Status.Get() | 0x10); err != nil {
		return err
	}
	c.PC = IRQVector
	return nil
}

// RTI pops the status (masked) then PC, with no +1 adjustment.
func (c *Cpu) RTI(mode AddressingMode) error {
	if err := requireImplied(mode); err != nil {
		return err
	}
	status, err := c.Stack.PopByte()
	if err != nil {
		return err
	}
	c.Status.Set(status & statusUnusedMask)
	addr, err := c.Stack.PopWord()
	if err != nil {
		return err
	}
	c.PC = addr
	return nil
}

// NOP does nothing.
func (c *Cpu) NOP(mode AddressingMode) error {
	return requireImplied(mode)
}
