package cpu

// Instruction is one entry of the opcode table.
type Instruction struct {
	Name   string
	Mode   AddrMode
	Op     Op
	Cycles uint8 // base cycle count, before page crossing and branch penalties
}

// Size returns the instruction length in bytes, opcode included.
func (i Instruction) Size() int {
	return 1 + i.Mode.OperandBytes()
}

func (i Instruction) Legal() bool {
	return i.Op != OpILL
}

// instructions is built once and never written afterwards,
// so every CPU and disassembler can share it.
var instructions = newInstructionTable()

// Lookup returns the table entry for opcode.
func Lookup(opcode uint8) Instruction {
	return instructions[opcode]
}

func instr(op Op, mode AddrMode, cycles uint8) Instruction {
	return Instruction{Name: op.String(), Mode: mode, Op: op, Cycles: cycles}
}

func newInstructionTable() [0x100]Instruction {
	var t [0x100]Instruction
	for i := range t {
		t[i] = instr(OpILL, ModeIMP, 2)
	}

	t[0x69] = instr(OpADC, ModeIMM, 2)
	t[0x65] = instr(OpADC, ModeZP0, 3)
	t[0x75] = instr(OpADC, ModeZPX, 4)
	t[0x6d] = instr(OpADC, ModeABS, 4)
	t[0x7d] = instr(OpADC, ModeABX, 4)
	t[0x79] = instr(OpADC, ModeABY, 4)
	t[0x61] = instr(OpADC, ModeIZX, 6)
	t[0x71] = instr(OpADC, ModeIZY, 5)

	t[0x29] = instr(OpAND, ModeIMM, 2)
	t[0x25] = instr(OpAND, ModeZP0, 3)
	t[0x35] = instr(OpAND, ModeZPX, 4)
	t[0x2d] = instr(OpAND, ModeABS, 4)
	t[0x3d] = instr(OpAND, ModeABX, 4)
	t[0x39] = instr(OpAND, ModeABY, 4)
	t[0x21] = instr(OpAND, ModeIZX, 6)
	t[0x31] = instr(OpAND, ModeIZY, 5)

	t[0x0a] = instr(OpASL, ModeIMP, 2)
	t[0x06] = instr(OpASL, ModeZP0, 5)
	t[0x16] = instr(OpASL, ModeZPX, 6)
	t[0x0e] = instr(OpASL, ModeABS, 6)
	t[0x1e] = instr(OpASL, ModeABX, 7)

	t[0x90] = instr(OpBCC, ModeREL, 2)
	t[0xb0] = instr(OpBCS, ModeREL, 2)
	t[0xf0] = instr(OpBEQ, ModeREL, 2)
	t[0x30] = instr(OpBMI, ModeREL, 2)
	t[0xd0] = instr(OpBNE, ModeREL, 2)
	t[0x10] = instr(OpBPL, ModeREL, 2)
	t[0x50] = instr(OpBVC, ModeREL, 2)
	t[0x70] = instr(OpBVS, ModeREL, 2)

	t[0x24] = instr(OpBIT, ModeZP0, 3)
	t[0x2c] = instr(OpBIT, ModeABS, 4)

	t[0x00] = instr(OpBRK, ModeIMP, 7)

	t[0x18] = instr(OpCLC, ModeIMP, 2)
	t[0xd8] = instr(OpCLD, ModeIMP, 2)
	t[0x58] = instr(OpCLI, ModeIMP, 2)
	t[0xb8] = instr(OpCLV, ModeIMP, 2)

	t[0xc9] = instr(OpCMP, ModeIMM, 2)
	t[0xc5] = instr(OpCMP, ModeZP0, 3)
	t[0xd5] = instr(OpCMP, ModeZPX, 4)
	t[0xcd] = instr(OpCMP, ModeABS, 4)
	t[0xdd] = instr(OpCMP, ModeABX, 4)
	t[0xd9] = instr(OpCMP, ModeABY, 4)
	t[0xc1] = instr(OpCMP, ModeIZX, 6)
	t[0xd1] = instr(OpCMP, ModeIZY, 5)

	t[0xe0] = instr(OpCPX, ModeIMM, 2)
	t[0xe4] = instr(OpCPX, ModeZP0, 3)
	t[0xec] = instr(OpCPX, ModeABS, 4)

	t[0xc0] = instr(OpCPY, ModeIMM, 2)
	t[0xc4] = instr(OpCPY, ModeZP0, 3)
	t[0xcc] = instr(OpCPY, ModeABS, 4)

	t[0xc6] = instr(OpDEC, ModeZP0, 5)
	t[0xd6] = instr(OpDEC, ModeZPX, 6)
	t[0xce] = instr(OpDEC, ModeABS, 6)
	t[0xde] = instr(OpDEC, ModeABX, 7)

	t[0xca] = instr(OpDEX, ModeIMP, 2)
	t[0x88] = instr(OpDEY, ModeIMP, 2)

	t[0x49] = instr(OpEOR, ModeIMM, 2)
	t[0x45] = instr(OpEOR, ModeZP0, 3)
	t[0x55] = instr(OpEOR, ModeZPX, 4)
	t[0x4d] = instr(OpEOR, ModeABS, 4)
	t[0x5d] = instr(OpEOR, ModeABX, 4)
	t[0x59] = instr(OpEOR, ModeABY, 4)
	t[0x41] = instr(OpEOR, ModeIZX, 6)
	t[0x51] = instr(OpEOR, ModeIZY, 5)

	t[0xe6] = instr(OpINC, ModeZP0, 5)
	t[0xf6] = instr(OpINC, ModeZPX, 6)
	t[0xee] = instr(OpINC, ModeABS, 6)
	t[0xfe] = instr(OpINC, ModeABX, 7)

	t[0xe8] = instr(OpINX, ModeIMP, 2)
	t[0xc8] = instr(OpINY, ModeIMP, 2)

	t[0x4c] = instr(OpJMP, ModeABS, 3)
	t[0x6c] = instr(OpJMP, ModeIND, 5)
	t[0x20] = instr(OpJSR, ModeABS, 6)

	t[0xa9] = instr(OpLDA, ModeIMM, 2)
	t[0xa5] = instr(OpLDA, ModeZP0, 3)
	t[0xb5] = instr(OpLDA, ModeZPX, 4)
	t[0xad] = instr(OpLDA, ModeABS, 4)
	t[0xbd] = instr(OpLDA, ModeABX, 4)
	t[0xb9] = instr(OpLDA, ModeABY, 4)
	t[0xa1] = instr(OpLDA, ModeIZX, 6)
	t[0xb1] = instr(OpLDA, ModeIZY, 5)

	t[0xa2] = instr(OpLDX, ModeIMM, 2)
	t[0xa6] = instr(OpLDX, ModeZP0, 3)
	t[0xb6] = instr(OpLDX, ModeZPY, 4)
	t[0xae] = instr(OpLDX, ModeABS, 4)
	t[0xbe] = instr(OpLDX, ModeABY, 4)

	t[0xa0] = instr(OpLDY, ModeIMM, 2)
	t[0xa4] = instr(OpLDY, ModeZP0, 3)
	t[0xb4] = instr(OpLDY, ModeZPX, 4)
	t[0xac] = instr(OpLDY, ModeABS, 4)
	t[0xbc] = instr(OpLDY, ModeABX, 4)

	t[0x4a] = instr(OpLSR, ModeIMP, 2)
	t[0x46] = instr(OpLSR, ModeZP0, 5)
	t[0x56] = instr(OpLSR, ModeZPX, 6)
	t[0x4e] = instr(OpLSR, ModeABS, 6)
	t[0x5e] = instr(OpLSR, ModeABX, 7)

	t[0xea] = instr(OpNOP, ModeIMP, 2)

	t[0x09] = instr(OpORA, ModeIMM, 2)
	t[0x05] = instr(OpORA, ModeZP0, 3)
	t[0x15] = instr(OpORA, ModeZPX, 4)
	t[0x0d] = instr(OpORA, ModeABS, 4)
	t[0x1d] = instr(OpORA, ModeABX, 4)
	t[0x19] = instr(OpORA, ModeABY, 4)
	t[0x01] = instr(OpORA, ModeIZX, 6)
	t[0x11] = instr(OpORA, ModeIZY, 5)

	t[0x48] = instr(OpPHA, ModeIMP, 3)
	t[0x08] = instr(OpPHP, ModeIMP, 3)
	t[0x68] = instr(OpPLA, ModeIMP, 4)
	t[0x28] = instr(OpPLP, ModeIMP, 4)

	t[0x2a] = instr(OpROL, ModeIMP, 2)
	t[0x26] = instr(OpROL, ModeZP0, 5)
	t[0x36] = instr(OpROL, ModeZPX, 6)
	t[0x2e] = instr(OpROL, ModeABS, 6)
	t[0x3e] = instr(OpROL, ModeABX, 7)

	t[0x6a] = instr(OpROR, ModeIMP, 2)
	t[0x66] = instr(OpROR, ModeZP0, 5)
	t[0x76] = instr(OpROR, ModeZPX, 6)
	t[0x6e] = instr(OpROR, ModeABS, 6)
	t[0x7e] = instr(OpROR, ModeABX, 7)

	t[0x40] = instr(OpRTI, ModeIMP, 6)
	t[0x60] = instr(OpRTS, ModeIMP, 6)

	t[0xe9] = instr(OpSBC, ModeIMM, 2)
	t[0xe5] = instr(OpSBC, ModeZP0, 3)
	t[0xf5] = instr(OpSBC, ModeZPX, 4)
	t[0xed] = instr(OpSBC, ModeABS, 4)
	t[0xfd] = instr(OpSBC, ModeABX, 4)
	t[0xf9] = instr(OpSBC, ModeABY, 4)
	t[0xe1] = instr(OpSBC, ModeIZX, 6)
	t[0xf1] = instr(OpSBC, ModeIZY, 5)

	t[0x38] = instr(OpSEC, ModeIMP, 2)
	t[0xf8] = instr(OpSED, ModeIMP, 2)
	t[0x78] = instr(OpSEI, ModeIMP, 2)

	t[0x85] = instr(OpSTA, ModeZP0, 3)
	t[0x95] = instr(OpSTA, ModeZPX, 4)
	t[0x8d] = instr(OpSTA, ModeABS, 4)
	t[0x9d] = instr(OpSTA, ModeABX, 5)
	t[0x99] = instr(OpSTA, ModeABY, 5)
	t[0x81] = instr(OpSTA, ModeIZX, 6)
	t[0x91] = instr(OpSTA, ModeIZY, 6)

	t[0x86] = instr(OpSTX, ModeZP0, 3)
	t[0x96] = instr(OpSTX, ModeZPY, 4)
	t[0x8e] = instr(OpSTX, ModeABS, 4)

	t[0x84] = instr(OpSTY, ModeZP0, 3)
	t[0x94] = instr(OpSTY, ModeZPX, 4)
	t[0x8c] = instr(OpSTY, ModeABS, 4)

	t[0xaa] = instr(OpTAX, ModeIMP, 2)
	t[0xa8] = instr(OpTAY, ModeIMP, 2)
	t[0xba] = instr(OpTSX, ModeIMP, 2)
	t[0x8a] = instr(OpTXA, ModeIMP, 2)
	t[0x9a] = instr(OpTXS, ModeIMP, 2)
	t[0x98] = instr(OpTYA, ModeIMP, 2)

	return t
}
