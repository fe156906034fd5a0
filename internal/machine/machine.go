// Package machine wires memory, the CPU and a disassembly listing
// together for the front ends, and keeps the run/pause state.
package machine

import (
	"fmt"

	"github.com/nevisdale/mos6502/internal/bus"
	"github.com/nevisdale/mos6502/internal/cpu"
	"github.com/nevisdale/mos6502/internal/disasm"
	"github.com/nevisdale/mos6502/internal/rom"
)

// Machine is not safe for concurrent use.
type Machine struct {
	cpu     *cpu.CPU
	ram     *bus.RAM
	listing *disasm.Listing

	paused        bool
	stepRequested bool
}

// DebugInfo is what a debugger shows about the current instruction.
type DebugInfo struct {
	cpu.State
	Line string // disassembly at PC, disasm.NotFound if PC is not listed
}

func New(opts ...cpu.Option) *Machine {
	m := &Machine{}
	m.ram = bus.New()
	m.cpu = cpu.NewCPU(m.ram, opts...)
	m.listing = disasm.Disassemble(m.ram, 0, 0)
	return m
}

// LoadHex loads an ad-hoc program at org, points the reset vector at it
// and resets the CPU.
func (m *Machine) LoadHex(org uint16, s string) error {
	if err := rom.LoadHex(m.ram, org, s); err != nil {
		return err
	}
	m.Reset()
	return nil
}

// LoadProgram is LoadHex for bytes that are already parsed.
func (m *Machine) LoadProgram(org uint16, data []byte) error {
	if err := rom.LoadProgram(m.ram, org, data); err != nil {
		return err
	}
	m.Reset()
	return nil
}

// LoadImage loads a binary image with its own vectors and resets the CPU.
func (m *Machine) LoadImage(img *rom.Image) error {
	if err := rom.LoadImage(m.ram, img); err != nil {
		return err
	}
	m.Reset()
	return nil
}

// Reset resets the CPU and runs through the reset latency, so the next
// Step executes the instruction at the reset vector.
func (m *Machine) Reset() {
	m.cpu.Reset()
	for m.cpu.State().Cycles > 0 {
		m.cpu.Tick()
	}
}

// Start moves execution to pc without going through the reset vector.
func (m *Machine) Start(pc uint16) {
	m.cpu.SetPC(pc)
}

func (m *Machine) Tic() {
	m.cpu.Tick()
}

// Step executes one instruction.
func (m *Machine) Step() {
	m.cpu.Step()
}

func (m *Machine) IRQ() {
	m.cpu.IRQ()
}

func (m *Machine) NMI() {
	m.cpu.NMI()
}

// Disassemble replaces the current listing with [start, end).
// The listing does not follow later memory writes.
func (m *Machine) Disassemble(start, end uint16) *disasm.Listing {
	m.listing = disasm.Disassemble(m.ram, start, end)
	return m.listing
}

func (m *Machine) Listing() *disasm.Listing {
	return m.listing
}

func (m *Machine) TogglePause() {
	m.paused = !m.paused
	m.stepRequested = false
}

// OneStepAndStop pauses the machine and lets the next Update execute
// exactly one instruction.
func (m *Machine) OneStepAndStop() {
	m.paused = true
	m.stepRequested = true
}

func (m *Machine) Paused() bool {
	return m.paused
}

// Update advances the machine by one instruction unless it is paused.
// It reports whether an instruction was executed.
func (m *Machine) Update() bool {
	if m.paused && !m.stepRequested {
		return false
	}
	m.stepRequested = false
	m.cpu.Step()
	return true
}

func (m *Machine) DebugInfo() DebugInfo {
	s := m.cpu.State()
	line, _ := m.listing.LineAt(s.PC)
	return DebugInfo{State: s, Line: line}
}

func (m *Machine) Read8(addr uint16) uint8 {
	return m.ram.Read8(addr)
}

func (m *Machine) Write8(addr uint16, data uint8) {
	m.ram.Write8(addr, data)
}

func (m *Machine) CPU() *cpu.CPU {
	return m.cpu
}

func (m *Machine) RAM() *bus.RAM {
	return m.ram
}

func (i DebugInfo) String() string {
	return fmt.Sprintf("PC=%04X A=%02X X=%02X Y=%02X SP=%02X P=%s CYC=%d %s",
		i.PC, i.A, i.X, i.Y, i.SP, i.StatusString(), i.TotalCycles, i.Line)
}
