package cpu

type AddrMode uint8

const (
	// Implied: IMP
	//
	// No operand. Instructions that work on the accumulator (ASL A, ROR A, ...)
	// use this mode too and read/write A directly.
	ModeIMP AddrMode = iota + 1

	// Immediate: IMM
	//
	// The operand is the byte following the opcode.
	// Format: #$nn
	ModeIMM

	// Zero Page: ZP0
	//
	// The operand points to an address within the first 256 bytes of memory.
	// Format: $nn
	ModeZP0

	// Zero Page Indexed with X: ZPX
	//
	// Zero page address plus X. The sum wraps inside the zero page.
	// Format: $nn,X
	ModeZPX

	// Zero Page Indexed with Y: ZPY
	//
	// Zero page address plus Y. The sum wraps inside the zero page.
	// Format: $nn,Y
	ModeZPY

	// Relative: REL
	//
	// Signed 8-bit offset from the address of the next instruction.
	// Used by branches only.
	// Format: $nn
	ModeREL

	// Absolute: ABS
	//
	// Full 16-bit little-endian address.
	// Format: $nnnn
	ModeABS

	// Absolute Indexed with X: ABX
	//
	// Format: $nnnn,X
	ModeABX

	// Absolute Indexed with Y: ABY
	//
	// Format: $nnnn,Y
	ModeABY

	// Indirect: IND
	//
	// The operand is the address of a pointer to the target.
	// Only JMP uses this mode.
	// Format: ($nnnn)
	ModeIND

	// Indexed Indirect (X): IZX
	//
	// Zero page pointer at $nn+X (wrapping), dereferenced to a 16-bit address.
	// Format: ($nn,X)
	ModeIZX

	// Indirect Indexed (Y): IZY
	//
	// Zero page pointer at $nn dereferenced first, then Y is added.
	// Format: ($nn),Y
	ModeIZY
)

func (mode AddrMode) String() string {
	switch mode {
	case ModeIMP:
		return "IMP"
	case ModeIMM:
		return "IMM"
	case ModeZP0:
		return "ZP0"
	case ModeZPX:
		return "ZPX"
	case ModeZPY:
		return "ZPY"
	case ModeREL:
		return "REL"
	case ModeABS:
		return "ABS"
	case ModeABX:
		return "ABX"
	case ModeABY:
		return "ABY"
	case ModeIND:
		return "IND"
	case ModeIZX:
		return "IZX"
	case ModeIZY:
		return "IZY"
	}
	return "???"
}

// OperandBytes returns how many bytes follow the opcode.
func (mode AddrMode) OperandBytes() int {
	switch mode {
	case ModeIMM, ModeZP0, ModeZPX, ModeZPY, ModeREL, ModeIZX, ModeIZY:
		return 1
	case ModeABS, ModeABX, ModeABY, ModeIND:
		return 2
	}
	return 0
}

func isDiffPage(a, b uint16) bool {
	return a&0xff00 != b&0xff00
}

// address computes the effective address for mode and advances pc past
// the operand. It returns 1 if the mode crossed a page boundary and the
// instruction may need an additional cycle.
func (c *CPU) address(mode AddrMode) uint8 {
	switch mode {
	case ModeIMP:
		return 0

	case ModeIMM:
		c.addrAbs = c.pc
		c.pc++
		return 0

	case ModeZP0:
		c.addrAbs = uint16(c.read8(c.pc))
		c.pc++
		return 0

	case ModeZPX:
		c.addrAbs = uint16(c.read8(c.pc) + c.x)
		c.pc++
		return 0

	case ModeZPY:
		c.addrAbs = uint16(c.read8(c.pc) + c.y)
		c.pc++
		return 0

	case ModeREL:
		c.addrRel = uint16(c.read8(c.pc))
		c.pc++
		if c.addrRel&0x80 > 0 {
			c.addrRel |= 0xff00 // add leading 1 s to save the sign
		}
		return 0

	case ModeABS:
		c.addrAbs = c.read16(c.pc)
		c.pc += 2
		return 0

	case ModeABX:
		baseAddr := c.read16(c.pc)
		c.pc += 2
		c.addrAbs = baseAddr + uint16(c.x)
		if isDiffPage(baseAddr, c.addrAbs) {
			return 1
		}
		return 0

	case ModeABY:
		baseAddr := c.read16(c.pc)
		c.pc += 2
		c.addrAbs = baseAddr + uint16(c.y)
		if isDiffPage(baseAddr, c.addrAbs) {
			return 1
		}
		return 0

	case ModeIND:
		ptr := c.read16(c.pc)
		c.pc += 2

		// simulate 6502 page boundary hardware bug:
		// the high byte is read from the same page when the low byte is $FF
		hi := ptr&0xff00 | uint16(uint8(ptr)+1)
		c.addrAbs = uint16(c.read8(ptr)) | uint16(c.read8(hi))<<8
		return 0

	case ModeIZX:
		zp := c.read8(c.pc) + c.x
		c.pc++
		lo := uint16(c.read8(uint16(zp)))
		hi := uint16(c.read8(uint16(zp + 1)))
		c.addrAbs = lo | hi<<8
		return 0

	case ModeIZY:
		zp := c.read8(c.pc)
		c.pc++
		lo := uint16(c.read8(uint16(zp)))
		hi := uint16(c.read8(uint16(zp + 1)))
		baseAddr := lo | hi<<8
		c.addrAbs = baseAddr + uint16(c.y)
		if isDiffPage(baseAddr, c.addrAbs) {
			return 1
		}
		return 0
	}

	// the instruction table only holds valid modes
	return 0
}
