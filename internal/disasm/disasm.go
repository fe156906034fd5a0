// Package disasm renders memory as 6502 assembly using the same
// instruction table the CPU decodes with.
package disasm

import (
	"fmt"
	"sort"

	"github.com/nevisdale/mos6502/internal/cpu"
)

// NotFound is shown for addresses that do not start an instruction.
const NotFound = "NOT_FOUND"

type Line struct {
	Addr uint16
	Text string
}

// Listing is the result of one disassembly run. It is not updated
// when memory changes afterwards.
type Listing struct {
	lines []Line
	index map[uint16]int
}

// Disassemble decodes [start, end). An instruction that starts before
// end is decoded in full even if its operand reaches past it.
func Disassemble(mem cpu.Reader, start, end uint16) *Listing {
	l := &Listing{index: make(map[uint16]int)}

	for addr := uint32(start); addr < uint32(end); {
		pc := uint16(addr)
		instr := cpu.Lookup(mem.Read8(pc))
		text := Format(mem, pc, instr)

		l.index[pc] = len(l.lines)
		l.lines = append(l.lines, Line{Addr: pc, Text: text})
		addr += uint32(instr.Size())
	}

	return l
}

// Format renders the instruction at addr as "AAAA: MNE OPERAND {MODE}".
// Branches get their resolved target appended after the mode tag.
func Format(mem cpu.Reader, addr uint16, instr cpu.Instruction) string {
	operand := formatOperand(mem, addr+1, instr.Mode)
	if operand == "" {
		return fmt.Sprintf("%04X: %s {%s}", addr, instr.Name, instr.Mode)
	}
	text := fmt.Sprintf("%04X: %s %s {%s}", addr, instr.Name, operand, instr.Mode)
	if instr.Mode == cpu.ModeREL {
		text += fmt.Sprintf(" [$%04X]", branchTarget(mem, addr+1))
	}
	return text
}

// branchTarget resolves the offset at pc against the next instruction.
func branchTarget(mem cpu.Reader, pc uint16) uint16 {
	offset := uint16(mem.Read8(pc))
	if offset&0x80 > 0 {
		offset |= 0xff00
	}
	return pc + 1 + offset
}

func formatOperand(mem cpu.Reader, pc uint16, mode cpu.AddrMode) string {
	read16 := func(addr uint16) uint16 {
		return uint16(mem.Read8(addr)) | uint16(mem.Read8(addr+1))<<8
	}

	switch mode {
	case cpu.ModeIMM:
		return fmt.Sprintf("#$%02X", mem.Read8(pc))
	case cpu.ModeZP0:
		return fmt.Sprintf("$%02X", mem.Read8(pc))
	case cpu.ModeZPX:
		return fmt.Sprintf("$%02X,X", mem.Read8(pc))
	case cpu.ModeZPY:
		return fmt.Sprintf("$%02X,Y", mem.Read8(pc))
	case cpu.ModeABS:
		return fmt.Sprintf("$%04X", read16(pc))
	case cpu.ModeABX:
		return fmt.Sprintf("$%04X,X", read16(pc))
	case cpu.ModeABY:
		return fmt.Sprintf("$%04X,Y", read16(pc))
	case cpu.ModeIND:
		return fmt.Sprintf("($%04X)", read16(pc))
	case cpu.ModeIZX:
		return fmt.Sprintf("($%02X,X)", mem.Read8(pc))
	case cpu.ModeIZY:
		return fmt.Sprintf("($%02X),Y", mem.Read8(pc))
	case cpu.ModeREL:
		return fmt.Sprintf("$%02X", mem.Read8(pc))
	}
	return ""
}

// Lines returns the listing in address order.
func (l *Listing) Lines() []Line {
	out := make([]Line, len(l.lines))
	copy(out, l.lines)
	return out
}

func (l *Listing) Len() int {
	return len(l.lines)
}

// LineAt returns the text of the instruction starting at addr.
// It reports false for addresses inside an operand or outside the listing.
func (l *Listing) LineAt(addr uint16) (string, bool) {
	i, ok := l.index[addr]
	if !ok {
		return NotFound, false
	}
	return l.lines[i].Text, true
}

// Around returns up to before lines preceding and after lines following
// the instruction at or just below addr.
func (l *Listing) Around(addr uint16, before, after int) []Line {
	if len(l.lines) == 0 {
		return nil
	}

	i, ok := l.index[addr]
	if !ok {
		i = sort.Search(len(l.lines), func(i int) bool {
			return l.lines[i].Addr > addr
		}) - 1
		i = max(i, 0)
	}

	from := max(i-before, 0)
	to := min(i+after+1, len(l.lines))
	out := make([]Line, to-from)
	copy(out, l.lines[from:to])
	return out
}
