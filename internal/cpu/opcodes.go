package cpu

// Op identifies the operation an opcode performs.
type Op uint8

const (
	OpILL Op = iota // any undocumented opcode, executed as a 2 cycle no-op
	OpADC
	OpAND
	OpASL
	OpBCC
	OpBCS
	OpBEQ
	OpBIT
	OpBMI
	OpBNE
	OpBPL
	OpBRK
	OpBVC
	OpBVS
	OpCLC
	OpCLD
	OpCLI
	OpCLV
	OpCMP
	OpCPX
	OpCPY
	OpDEC
	OpDEX
	OpDEY
	OpEOR
	OpINC
	OpINX
	OpINY
	OpJMP
	OpJSR
	OpLDA
	OpLDX
	OpLDY
	OpLSR
	OpNOP
	OpORA
	OpPHA
	OpPHP
	OpPLA
	OpPLP
	OpROL
	OpROR
	OpRTI
	OpRTS
	OpSBC
	OpSEC
	OpSED
	OpSEI
	OpSTA
	OpSTX
	OpSTY
	OpTAX
	OpTAY
	OpTSX
	OpTXA
	OpTXS
	OpTYA
	opCount
)

var opNames = [opCount]string{
	OpILL: "???",
	OpADC: "ADC", OpAND: "AND", OpASL: "ASL", OpBCC: "BCC", OpBCS: "BCS",
	OpBEQ: "BEQ", OpBIT: "BIT", OpBMI: "BMI", OpBNE: "BNE", OpBPL: "BPL",
	OpBRK: "BRK", OpBVC: "BVC", OpBVS: "BVS", OpCLC: "CLC", OpCLD: "CLD",
	OpCLI: "CLI", OpCLV: "CLV", OpCMP: "CMP", OpCPX: "CPX", OpCPY: "CPY",
	OpDEC: "DEC", OpDEX: "DEX", OpDEY: "DEY", OpEOR: "EOR", OpINC: "INC",
	OpINX: "INX", OpINY: "INY", OpJMP: "JMP", OpJSR: "JSR", OpLDA: "LDA",
	OpLDX: "LDX", OpLDY: "LDY", OpLSR: "LSR", OpNOP: "NOP", OpORA: "ORA",
	OpPHA: "PHA", OpPHP: "PHP", OpPLA: "PLA", OpPLP: "PLP", OpROL: "ROL",
	OpROR: "ROR", OpRTI: "RTI", OpRTS: "RTS", OpSBC: "SBC", OpSEC: "SEC",
	OpSED: "SED", OpSEI: "SEI", OpSTA: "STA", OpSTX: "STX", OpSTY: "STY",
	OpTAX: "TAX", OpTAY: "TAY", OpTSX: "TSX", OpTXA: "TXA", OpTXS: "TXS",
	OpTYA: "TYA",
}

func (op Op) String() string {
	if op >= opCount {
		return opNames[OpILL]
	}
	return opNames[op]
}

// execute runs op against the effective address prepared by the
// addressing mode. It returns 1 if the instruction pays the page
// crossing penalty reported by its addressing mode.
func (c *CPU) execute(op Op) uint8 {
	switch op {
	case OpADC:
		return c.adc()
	case OpAND:
		return c.and()
	case OpASL:
		return c.asl()
	case OpBCC:
		return c.bcc()
	case OpBCS:
		return c.bcs()
	case OpBEQ:
		return c.beq()
	case OpBIT:
		return c.bit()
	case OpBMI:
		return c.bmi()
	case OpBNE:
		return c.bne()
	case OpBPL:
		return c.bpl()
	case OpBRK:
		return c.brk()
	case OpBVC:
		return c.bvc()
	case OpBVS:
		return c.bvs()
	case OpCLC:
		return c.clc()
	case OpCLD:
		return c.cld()
	case OpCLI:
		return c.cli()
	case OpCLV:
		return c.clv()
	case OpCMP:
		return c.cmp()
	case OpCPX:
		return c.cpx()
	case OpCPY:
		return c.cpy()
	case OpDEC:
		return c.dec()
	case OpDEX:
		return c.dex()
	case OpDEY:
		return c.dey()
	case OpEOR:
		return c.eor()
	case OpINC:
		return c.inc()
	case OpINX:
		return c.inx()
	case OpINY:
		return c.iny()
	case OpJMP:
		return c.jmp()
	case OpJSR:
		return c.jsr()
	case OpLDA:
		return c.lda()
	case OpLDX:
		return c.ldx()
	case OpLDY:
		return c.ldy()
	case OpLSR:
		return c.lsr()
	case OpNOP:
		return c.nop()
	case OpORA:
		return c.ora()
	case OpPHA:
		return c.pha()
	case OpPHP:
		return c.php()
	case OpPLA:
		return c.pla()
	case OpPLP:
		return c.plp()
	case OpROL:
		return c.rol()
	case OpROR:
		return c.ror()
	case OpRTI:
		return c.rti()
	case OpRTS:
		return c.rts()
	case OpSBC:
		return c.sbc()
	case OpSEC:
		return c.sec()
	case OpSED:
		return c.sed()
	case OpSEI:
		return c.sei()
	case OpSTA:
		return c.sta()
	case OpSTX:
		return c.stx()
	case OpSTY:
		return c.sty()
	case OpTAX:
		return c.tax()
	case OpTAY:
		return c.tay()
	case OpTSX:
		return c.tsx()
	case OpTXA:
		return c.txa()
	case OpTXS:
		return c.txs()
	case OpTYA:
		return c.tya()
	}
	return c.ill()
}

// fetch returns the operand. In implied mode the operand is the accumulator.
func (c *CPU) fetch() uint8 {
	if c.mode == ModeIMP {
		return c.a
	}
	return c.read8(c.addrAbs)
}

// store writes the result of a read-modify-write instruction back
// to where fetch took the operand from.
func (c *CPU) store(data uint8) {
	if c.mode == ModeIMP {
		c.a = data
		return
	}
	c.write8(c.addrAbs, data)
}

// addWithCarry is shared by ADC and SBC. SBC passes the inverted operand.
// Decimal mode is ignored.
func (c *CPU) addWithCarry(m uint8) {
	r16 := uint16(c.a) + uint16(m)
	if c.getFlag(FlagC) {
		r16++
	}
	r8 := uint8(r16)
	c.setFlag(FlagC, r16 > 0xff)
	c.setFlag(FlagV, ^(c.a^m)&(c.a^r8)&0x80 != 0)
	c.setFlagsZN(r8)
	c.a = r8
}

func (c *CPU) compare(reg uint8) {
	m := c.fetch()
	c.setFlag(FlagC, reg >= m)
	c.setFlagsZN(reg - m)
}

// jmpIf takes a branch: one extra cycle, two if the target is on
// another page.
func (c *CPU) jmpIf(condition bool) uint8 {
	if !condition {
		return 0
	}
	c.cycles++
	c.addrAbs = c.pc + c.addrRel
	if isDiffPage(c.pc, c.addrAbs) {
		c.cycles++
	}
	c.pc = c.addrAbs
	return 0
}

// Add with Carry
// A = A + M + C
//
// Flags affected: C, Z, N, V
func (c *CPU) adc() uint8 {
	c.addWithCarry(c.fetch())
	return 1
}

// Logical AND
// A = A & M
//
// Flags affected: Z, N
func (c *CPU) and() uint8 {
	c.a &= c.fetch()
	c.setFlagsZN(c.a)
	return 1
}

// Arithmetic Shift Left
// C <- (A or M)7, (A or M) << 1
//
// Flags affected: C, Z, N
func (c *CPU) asl() uint8 {
	m := c.fetch()
	r := m << 1
	c.setFlag(FlagC, m&0x80 > 0)
	c.setFlagsZN(r)
	c.store(r)
	return 0
}

func (c *CPU) bcc() uint8 {
	return c.jmpIf(!c.getFlag(FlagC))
}

func (c *CPU) bcs() uint8 {
	return c.jmpIf(c.getFlag(FlagC))
}

func (c *CPU) beq() uint8 {
	return c.jmpIf(c.getFlag(FlagZ))
}

// Bit Test
// A & M, N <- M7, V <- M6
//
// Flags affected: Z, N, V
func (c *CPU) bit() uint8 {
	m := c.fetch()
	c.setFlag(FlagZ, c.a&m == 0)
	c.setFlag(FlagN, m&uint8(FlagN) > 0)
	c.setFlag(FlagV, m&uint8(FlagV) > 0)
	return 0
}

func (c *CPU) bmi() uint8 {
	return c.jmpIf(c.getFlag(FlagN))
}

func (c *CPU) bne() uint8 {
	return c.jmpIf(!c.getFlag(FlagZ))
}

func (c *CPU) bpl() uint8 {
	return c.jmpIf(!c.getFlag(FlagN))
}

// Force Interrupt
//
// BRK is treated as a 2 byte instruction: the byte after the opcode
// is skipped and the return address points past it.
func (c *CPU) brk() uint8 {
	c.pc++
	c.setFlag(FlagI, true)
	c.stackPush16(c.pc)
	c.stackPush8(c.status | uint8(FlagB|FlagU))
	c.setFlag(FlagB, false)
	c.pc = c.read16(vectorIRQ)
	return 0
}

func (c *CPU) bvc() uint8 {
	return c.jmpIf(!c.getFlag(FlagV))
}

func (c *CPU) bvs() uint8 {
	return c.jmpIf(c.getFlag(FlagV))
}

func (c *CPU) clc() uint8 {
	c.setFlag(FlagC, false)
	return 0
}

func (c *CPU) cld() uint8 {
	c.setFlag(FlagD, false)
	return 0
}

func (c *CPU) cli() uint8 {
	c.setFlag(FlagI, false)
	return 0
}

func (c *CPU) clv() uint8 {
	c.setFlag(FlagV, false)
	return 0
}

// Compare
// A - M
//
// Flags affected: C, Z, N
func (c *CPU) cmp() uint8 {
	c.compare(c.a)
	return 1
}

func (c *CPU) cpx() uint8 {
	c.compare(c.x)
	return 0
}

func (c *CPU) cpy() uint8 {
	c.compare(c.y)
	return 0
}

// Decrement Memory
// M - 1
//
// Flags affected: Z, N
func (c *CPU) dec() uint8 {
	r := c.read8(c.addrAbs) - 1
	c.write8(c.addrAbs, r)
	c.setFlagsZN(r)
	return 0
}

func (c *CPU) dex() uint8 {
	c.x--
	c.setFlagsZN(c.x)
	return 0
}

func (c *CPU) dey() uint8 {
	c.y--
	c.setFlagsZN(c.y)
	return 0
}

// Exclusive OR
// A ^ M
//
// Flags affected: Z, N
func (c *CPU) eor() uint8 {
	c.a ^= c.fetch()
	c.setFlagsZN(c.a)
	return 1
}

// Increment Memory
// M + 1
//
// Flags affected: Z, N
func (c *CPU) inc() uint8 {
	r := c.read8(c.addrAbs) + 1
	c.write8(c.addrAbs, r)
	c.setFlagsZN(r)
	return 0
}

func (c *CPU) inx() uint8 {
	c.x++
	c.setFlagsZN(c.x)
	return 0
}

func (c *CPU) iny() uint8 {
	c.y++
	c.setFlagsZN(c.y)
	return 0
}

func (c *CPU) jmp() uint8 {
	c.pc = c.addrAbs
	return 0
}

// Jump to Subroutine
//
// The pushed return address is the last byte of the JSR instruction.
func (c *CPU) jsr() uint8 {
	c.pc--
	c.stackPush16(c.pc)
	c.pc = c.addrAbs
	return 0
}

func (c *CPU) lda() uint8 {
	c.a = c.fetch()
	c.setFlagsZN(c.a)
	return 1
}

func (c *CPU) ldx() uint8 {
	c.x = c.fetch()
	c.setFlagsZN(c.x)
	return 1
}

func (c *CPU) ldy() uint8 {
	c.y = c.fetch()
	c.setFlagsZN(c.y)
	return 1
}

// Logical Shift Right
// C <- (A or M)0, (A or M) >> 1
//
// Flags affected: C, Z, N
func (c *CPU) lsr() uint8 {
	m := c.fetch()
	r := m >> 1
	c.setFlag(FlagC, m&0x1 > 0)
	c.setFlagsZN(r)
	c.store(r)
	return 0
}

func (c *CPU) nop() uint8 {
	return 0
}

func (c *CPU) ill() uint8 {
	c.log.Printf("illegal opcode $%02X at $%04X, executing as NOP\n", c.opcode, c.pc-1)
	return 0
}

// Logical Inclusive OR
// A | M
//
// Flags affected: Z, N
func (c *CPU) ora() uint8 {
	c.a |= c.fetch()
	c.setFlagsZN(c.a)
	return 1
}

func (c *CPU) pha() uint8 {
	c.stackPush8(c.a)
	return 0
}

// Push Processor Status
//
// The pushed copy has B and U set, the register itself is unchanged.
func (c *CPU) php() uint8 {
	c.stackPush8(c.status | uint8(FlagB|FlagU))
	return 0
}

func (c *CPU) pla() uint8 {
	c.a = c.stackPop8()
	c.setFlagsZN(c.a)
	return 0
}

// Pull Processor Status
//
// B is cleared and U is forced to 1 whatever was pushed.
func (c *CPU) plp() uint8 {
	c.status = (c.stackPop8() | uint8(FlagU)) & ^uint8(FlagB)
	return 0
}

// Rotate Left
// C <- (A or M)7, (A or M) << 1, bit 0 <- C
//
// Flags affected: C, Z, N
func (c *CPU) rol() uint8 {
	m := c.fetch()
	r := m << 1
	if c.getFlag(FlagC) {
		r |= 0x1
	}
	c.setFlag(FlagC, m&0x80 > 0)
	c.setFlagsZN(r)
	c.store(r)
	return 0
}

// Rotate Right
// C <- (A or M)0, (A or M) >> 1, bit 7 <- C
//
// Flags affected: C, Z, N
func (c *CPU) ror() uint8 {
	m := c.fetch()
	r := m >> 1
	if c.getFlag(FlagC) {
		r |= 0x80
	}
	c.setFlag(FlagC, m&0x1 > 0)
	c.setFlagsZN(r)
	c.store(r)
	return 0
}

// Return from Interrupt
// status <- stack, PC <- stack
//
// B and I are cleared and U is forced to 1 whatever was pushed.
func (c *CPU) rti() uint8 {
	c.status = (c.stackPop8() | uint8(FlagU)) & ^uint8(FlagB|FlagI)
	c.pc = c.stackPop16()
	return 0
}

func (c *CPU) rts() uint8 {
	c.pc = c.stackPop16()
	c.pc++
	return 0
}

// Subtract with Carry
// A = A - M - (1 - C)
//
// Flags affected: C, Z, N, V
func (c *CPU) sbc() uint8 {
	c.addWithCarry(^c.fetch())
	return 1
}

func (c *CPU) sec() uint8 {
	c.setFlag(FlagC, true)
	return 0
}

func (c *CPU) sed() uint8 {
	c.setFlag(FlagD, true)
	return 0
}

func (c *CPU) sei() uint8 {
	c.setFlag(FlagI, true)
	return 0
}

func (c *CPU) sta() uint8 {
	c.write8(c.addrAbs, c.a)
	return 0
}

func (c *CPU) stx() uint8 {
	c.write8(c.addrAbs, c.x)
	return 0
}

func (c *CPU) sty() uint8 {
	c.write8(c.addrAbs, c.y)
	return 0
}

func (c *CPU) tax() uint8 {
	c.x = c.a
	c.setFlagsZN(c.x)
	return 0
}

func (c *CPU) tay() uint8 {
	c.y = c.a
	c.setFlagsZN(c.y)
	return 0
}

func (c *CPU) tsx() uint8 {
	c.x = c.sp
	c.setFlagsZN(c.x)
	return 0
}

func (c *CPU) txa() uint8 {
	c.a = c.x
	c.setFlagsZN(c.a)
	return 0
}

// TXS is the only transfer that leaves the flags alone.
func (c *CPU) txs() uint8 {
	c.sp = c.x
	return 0
}

func (c *CPU) tya() uint8 {
	c.a = c.y
	c.setFlagsZN(c.a)
	return 0
}
