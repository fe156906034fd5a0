package cpu

import (
	"io"
	"log"
	"strings"
)

type Reader interface {
	Read8(addr uint16) uint8
}

type Writer interface {
	Write8(addr uint16, data uint8)
}

// ReadWriter is the memory contract the CPU runs against.
// Every 16-bit address must be readable and writable.
type ReadWriter interface {
	Reader
	Writer
}

const (
	// The stack is located in the fixed memory page $0100 to $01FF.
	stackStartAddr = uint16(0x0100)
	stackResetSP   = uint8(0xfd)

	vectorNMI   = uint16(0xfffa)
	vectorReset = uint16(0xfffc)
	vectorIRQ   = uint16(0xfffe)

	resetCycles     = 8
	interruptCycles = 7
)

// Flag is a single bit of the status register.
type Flag uint8

const (
	FlagC Flag = 1 << iota // Carry
	FlagZ                  // Zero
	FlagI                  // Interrupt Disable
	FlagD                  // Decimal Mode
	FlagB                  // Break Command
	FlagU                  // Unused
	FlagV                  // Overflow
	FlagN                  // Negative
)

func (f Flag) String() string {
	switch f {
	case FlagC:
		return "C"
	case FlagZ:
		return "Z"
	case FlagI:
		return "I"
	case FlagD:
		return "D"
	case FlagB:
		return "B"
	case FlagU:
		return "U"
	case FlagV:
		return "V"
	case FlagN:
		return "N"
	}
	return "?"
}

// State is a snapshot of the processor registers.
type State struct {
	A           uint8
	X           uint8
	Y           uint8
	SP          uint8
	PC          uint16
	Status      uint8
	AddrAbs     uint16
	AddrRel     uint16
	Opcode      uint8
	Cycles      uint8  // cycles left for the instruction in flight
	TotalCycles uint64 // ticks since the CPU was created
}

func (s State) Flag(f Flag) bool {
	return s.Status&uint8(f) > 0
}

// StatusString renders the status register from bit 7 to bit 0,
// upper case letters for set flags and lower case for clear ones.
func (s State) StatusString() string {
	var sb strings.Builder
	for _, f := range []Flag{FlagN, FlagV, FlagU, FlagB, FlagD, FlagI, FlagZ, FlagC} {
		if s.Flag(f) {
			sb.WriteString(f.String())
		} else {
			sb.WriteString(strings.ToLower(f.String()))
		}
	}
	return sb.String()
}

type CPU struct {
	a           uint8      // used to perform arithmetic and logical operations
	x           uint8      // used primarily for indexing and temporary storage
	y           uint8      // used mainly for indexing and temporary storage
	sp          uint8      // stack pointer, offset into $0100-$01FF
	pc          uint16     // program counter
	status      uint8      // contains flags from FlagX
	addrAbs     uint16     // effective address computed by the addressing mode
	addrRel     uint16     // sign extended branch offset
	opcode      uint8      // last fetched opcode
	mode        AddrMode   // addressing mode of the instruction in flight
	cycles      uint8      // number of cycles left for the current operation
	totalCycles uint64     // number of ticks since creation
	mem         ReadWriter // memory to read and write data
	log         *log.Logger
}

type Option func(*CPU)

// WithLogger makes the CPU report illegal opcodes to l.
func WithLogger(l *log.Logger) Option {
	return func(c *CPU) {
		if l != nil {
			c.log = l
		}
	}
}

// NewCPU returns a CPU wired to mem. All registers read as zero
// until Reset is called.
func NewCPU(mem ReadWriter, opts ...Option) *CPU {
	c := &CPU{
		mem: mem,
		log: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *CPU) read8(addr uint16) uint8 {
	return c.mem.Read8(addr)
}

func (c *CPU) read16(addr uint16) uint16 {
	return uint16(c.read8(addr)) | uint16(c.read8(addr+1))<<8
}

func (c *CPU) write8(addr uint16, data uint8) {
	c.mem.Write8(addr, data)
}

func (c *CPU) getFlag(flag Flag) bool {
	return c.status&uint8(flag) > 0
}

func (c *CPU) setFlag(flag Flag, v bool) {
	if v {
		c.status |= uint8(flag)
		return
	}
	c.status &= ^uint8(flag)
}

func (c *CPU) setFlagsZN(value uint8) {
	c.setFlag(FlagZ, value == 0)
	c.setFlag(FlagN, value&uint8(FlagN) > 0)
}

// Flag reports whether the flag is set in the status register.
func (c *CPU) Flag(f Flag) bool {
	return c.getFlag(f)
}

func (c *CPU) SetFlag(f Flag, v bool) {
	c.setFlag(f, v)
}

func (c *CPU) stackPop8() uint8 {
	c.sp++
	return c.read8(stackStartAddr | uint16(c.sp))
}

func (c *CPU) stackPop16() uint16 {
	lo := uint16(c.stackPop8())
	hi := uint16(c.stackPop8())
	return lo | hi<<8
}

func (c *CPU) stackPush8(data uint8) {
	c.write8(stackStartAddr|uint16(c.sp), data)
	c.sp--
}

func (c *CPU) stackPush16(data uint16) {
	lo := uint8(data & 0xff)
	hi := uint8(data >> 8)
	c.stackPush8(hi)
	c.stackPush8(lo)
}

// Reset the CPU to its initial state.
// The reset itself takes 8 cycles before the first opcode is fetched.
func (c *CPU) Reset() {
	c.a = 0
	c.x = 0
	c.y = 0
	c.pc = c.read16(vectorReset)
	c.sp = stackResetSP
	c.status = uint8(FlagU)
	c.addrAbs = 0
	c.addrRel = 0
	c.cycles = resetCycles
}

// IRQ requests a maskable interrupt. It is ignored while I is set.
func (c *CPU) IRQ() {
	if c.getFlag(FlagI) {
		return
	}
	c.interrupt(vectorIRQ)
}

// NMI requests a non-maskable interrupt.
func (c *CPU) NMI() {
	c.interrupt(vectorNMI)
}

func (c *CPU) interrupt(vector uint16) {
	c.stackPush16(c.pc)
	c.setFlag(FlagB, false)
	c.setFlag(FlagU, true)
	c.stackPush8(c.status)
	c.setFlag(FlagI, true)
	c.pc = c.read16(vector)
	c.cycles = interruptCycles
}

// Tick executes one CPU cycle. A new opcode is fetched and executed
// in full on the first cycle of an instruction, the remaining cycles
// only count down.
func (c *CPU) Tick() {
	if c.cycles == 0 {
		c.opcode = c.read8(c.pc)
		c.pc++
		instr := instructions[c.opcode]
		c.mode = instr.Mode
		c.cycles = instr.Cycles

		// addressing mode must run first: it fills addrAbs/addrRel
		addrExtra := c.address(instr.Mode)
		opExtra := c.execute(instr.Op)
		c.cycles += addrExtra & opExtra
	}
	c.cycles--
	c.totalCycles++
}

// Step finishes the instruction in flight and then ticks once more,
// which executes the next instruction.
func (c *CPU) Step() {
	for c.cycles > 0 {
		c.Tick()
	}
	c.Tick()
}

func (c *CPU) StepN(n int) {
	for i := 0; i < n; i++ {
		c.Step()
	}
}

// SetPC moves execution to pc, for front ends that start programs
// without a reset vector.
func (c *CPU) SetPC(pc uint16) {
	c.pc = pc
}

func (c *CPU) State() State {
	return State{
		A:           c.a,
		X:           c.x,
		Y:           c.y,
		SP:          c.sp,
		PC:          c.pc,
		Status:      c.status,
		AddrAbs:     c.addrAbs,
		AddrRel:     c.addrRel,
		Opcode:      c.opcode,
		Cycles:      c.cycles,
		TotalCycles: c.totalCycles,
	}
}

// Instruction returns the table entry for opcode.
func (c *CPU) Instruction(opcode uint8) Instruction {
	return instructions[opcode]
}
