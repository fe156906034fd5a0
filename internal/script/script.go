// Package script drives a machine from Lua.
//
// Globals available to scripts:
//
//	reset()              reset the CPU through the reset vector
//	tick()               one clock cycle
//	step([n])            n instructions, 1 by default
//	irq(), nmi()         interrupt requests
//	state()              table with a x y sp pc status cycles total
//	flag(name)           "C", "Z", "I", "D", "B", "U", "V" or "N"
//	peek(addr)           read a byte
//	poke(addr, v)        write a byte
//	load_hex(org, s)     load a hex program and reset
//	disasm(start, end)   array of disassembly lines
//	line_at(addr)        disassembly line or nil
//	print(...)           writes to the bridge output
package script

import (
	"fmt"
	"io"
	"strings"

	"github.com/nevisdale/mos6502/internal/cpu"
	"github.com/nevisdale/mos6502/internal/machine"
	lua "github.com/yuin/gopher-lua"
)

var flagsByName = map[string]cpu.Flag{
	"C": cpu.FlagC,
	"Z": cpu.FlagZ,
	"I": cpu.FlagI,
	"D": cpu.FlagD,
	"B": cpu.FlagB,
	"U": cpu.FlagU,
	"V": cpu.FlagV,
	"N": cpu.FlagN,
}

type Bridge struct {
	m   *machine.Machine
	L   *lua.LState
	out io.Writer
}

func New(m *machine.Machine, out io.Writer) *Bridge {
	b := &Bridge{
		m:   m,
		L:   lua.NewState(),
		out: out,
	}
	b.register()
	return b
}

func (b *Bridge) register() {
	funcs := map[string]lua.LGFunction{
		"reset":    b.reset,
		"tick":     b.tick,
		"step":     b.step,
		"irq":      b.irq,
		"nmi":      b.nmi,
		"state":    b.state,
		"flag":     b.flag,
		"peek":     b.peek,
		"poke":     b.poke,
		"load_hex": b.loadHex,
		"disasm":   b.disasm,
		"line_at":  b.lineAt,
		"print":    b.print,
	}
	for name, fn := range funcs {
		b.L.SetGlobal(name, b.L.NewFunction(fn))
	}
}

func (b *Bridge) RunString(src string) error {
	if err := b.L.DoString(src); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	return nil
}

func (b *Bridge) RunFile(path string) error {
	if err := b.L.DoFile(path); err != nil {
		return fmt.Errorf("script %s: %w", path, err)
	}
	return nil
}

func (b *Bridge) Close() {
	b.L.Close()
}

func checkAddr(L *lua.LState, n int) uint16 {
	v := L.CheckInt(n)
	if v < 0 || v > 0xffff {
		L.ArgError(n, "address out of range")
	}
	return uint16(v)
}

func (b *Bridge) reset(L *lua.LState) int {
	b.m.Reset()
	return 0
}

func (b *Bridge) tick(L *lua.LState) int {
	b.m.Tic()
	return 0
}

func (b *Bridge) step(L *lua.LState) int {
	n := L.OptInt(1, 1)
	b.m.CPU().StepN(n)
	return 0
}

func (b *Bridge) irq(L *lua.LState) int {
	b.m.IRQ()
	return 0
}

func (b *Bridge) nmi(L *lua.LState) int {
	b.m.NMI()
	return 0
}

func (b *Bridge) state(L *lua.LState) int {
	s := b.m.CPU().State()
	t := L.NewTable()
	t.RawSetString("a", lua.LNumber(s.A))
	t.RawSetString("x", lua.LNumber(s.X))
	t.RawSetString("y", lua.LNumber(s.Y))
	t.RawSetString("sp", lua.LNumber(s.SP))
	t.RawSetString("pc", lua.LNumber(s.PC))
	t.RawSetString("status", lua.LNumber(s.Status))
	t.RawSetString("cycles", lua.LNumber(s.Cycles))
	t.RawSetString("total", lua.LNumber(s.TotalCycles))
	L.Push(t)
	return 1
}

func (b *Bridge) flag(L *lua.LState) int {
	name := strings.ToUpper(L.CheckString(1))
	f, ok := flagsByName[name]
	if !ok {
		L.ArgError(1, "unknown flag "+name)
		return 0
	}
	L.Push(lua.LBool(b.m.CPU().Flag(f)))
	return 1
}

func (b *Bridge) peek(L *lua.LState) int {
	L.Push(lua.LNumber(b.m.Read8(checkAddr(L, 1))))
	return 1
}

func (b *Bridge) poke(L *lua.LState) int {
	addr := checkAddr(L, 1)
	v := L.CheckInt(2)
	if v < 0 || v > 0xff {
		L.ArgError(2, "byte out of range")
	}
	b.m.Write8(addr, uint8(v))
	return 0
}

func (b *Bridge) loadHex(L *lua.LState) int {
	org := checkAddr(L, 1)
	if err := b.m.LoadHex(org, L.CheckString(2)); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

func (b *Bridge) disasm(L *lua.LState) int {
	start := checkAddr(L, 1)
	end := checkAddr(L, 2)
	t := L.NewTable()
	for _, line := range b.m.Disassemble(start, end).Lines() {
		t.Append(lua.LString(line.Text))
	}
	L.Push(t)
	return 1
}

func (b *Bridge) lineAt(L *lua.LState) int {
	line, ok := b.m.Listing().LineAt(checkAddr(L, 1))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(line))
	return 1
}

func (b *Bridge) print(L *lua.LState) int {
	top := L.GetTop()
	parts := make([]string, 0, top)
	for i := 1; i <= top; i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	fmt.Fprintln(b.out, strings.Join(parts, "\t"))
	return 0
}
