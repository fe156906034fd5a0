package cpu

import (
	"testing"

	"github.com/nevisdale/mos6502/internal/bus"
	"github.com/stretchr/testify/assert"
)

func TestCPU_Address(t *testing.T) {
	type testArgs struct {
		mode     AddrMode
		operand  []uint8          // bytes at $0600
		mem      map[uint16]uint8 // extra memory contents
		x, y     uint8
		wantAbs  uint16
		wantRel  uint16
		wantPC   uint16
		wantExtr uint8
	}

	testDo := func(t *testing.T, in testArgs) {
		mem := bus.New()
		mem.Load(0x0600, in.operand)
		for addr, data := range in.mem {
			mem.Write8(addr, data)
		}
		c := NewCPU(mem)
		c.pc = 0x0600
		c.x = in.x
		c.y = in.y

		extra := c.address(in.mode)

		assert.Equal(t, in.wantAbs, c.addrAbs, "addrAbs")
		assert.Equal(t, in.wantRel, c.addrRel, "addrRel")
		assert.Equal(t, in.wantPC, c.pc, "PC")
		assert.Equal(t, in.wantExtr, extra, "extra cycle")
	}

	t.Run("IMP", func(t *testing.T) {
		testDo(t, testArgs{mode: ModeIMP, wantPC: 0x0600})
	})

	t.Run("IMM", func(t *testing.T) {
		testDo(t, testArgs{mode: ModeIMM, operand: []uint8{0x42}, wantAbs: 0x0600, wantPC: 0x0601})
	})

	t.Run("ZP0", func(t *testing.T) {
		testDo(t, testArgs{mode: ModeZP0, operand: []uint8{0x42}, wantAbs: 0x0042, wantPC: 0x0601})
	})

	t.Run("ZPX wraps in zero page", func(t *testing.T) {
		testDo(t, testArgs{mode: ModeZPX, operand: []uint8{0xf0}, x: 0x20, wantAbs: 0x0010, wantPC: 0x0601})
	})

	t.Run("ZPY", func(t *testing.T) {
		testDo(t, testArgs{mode: ModeZPY, operand: []uint8{0x80}, y: 0x05, wantAbs: 0x0085, wantPC: 0x0601})
	})

	t.Run("ZPY wraps in zero page", func(t *testing.T) {
		testDo(t, testArgs{mode: ModeZPY, operand: []uint8{0xff}, y: 0x02, wantAbs: 0x0001, wantPC: 0x0601})
	})

	t.Run("REL forward", func(t *testing.T) {
		testDo(t, testArgs{mode: ModeREL, operand: []uint8{0x05}, wantRel: 0x0005, wantPC: 0x0601})
	})

	t.Run("REL backward is sign extended", func(t *testing.T) {
		testDo(t, testArgs{mode: ModeREL, operand: []uint8{0xfb}, wantRel: 0xfffb, wantPC: 0x0601})
	})

	t.Run("ABS", func(t *testing.T) {
		testDo(t, testArgs{mode: ModeABS, operand: []uint8{0x34, 0x12}, wantAbs: 0x1234, wantPC: 0x0602})
	})

	t.Run("ABX same page", func(t *testing.T) {
		testDo(t, testArgs{mode: ModeABX, operand: []uint8{0x00, 0x12}, x: 1, wantAbs: 0x1201, wantPC: 0x0602})
	})

	t.Run("ABX page crossed", func(t *testing.T) {
		testDo(t, testArgs{mode: ModeABX, operand: []uint8{0xff, 0x12}, x: 1, wantAbs: 0x1300, wantPC: 0x0602, wantExtr: 1})
	})

	t.Run("ABY page crossed", func(t *testing.T) {
		testDo(t, testArgs{mode: ModeABY, operand: []uint8{0x80, 0x12}, y: 0x80, wantAbs: 0x1300, wantPC: 0x0602, wantExtr: 1})
	})

	t.Run("ABY wraps the address space", func(t *testing.T) {
		testDo(t, testArgs{mode: ModeABY, operand: []uint8{0xff, 0xff}, y: 2, wantAbs: 0x0001, wantPC: 0x0602, wantExtr: 1})
	})

	t.Run("IND", func(t *testing.T) {
		testDo(t, testArgs{
			mode:    ModeIND,
			operand: []uint8{0x00, 0x30},
			mem:     map[uint16]uint8{0x3000: 0x80, 0x3001: 0x50},
			wantAbs: 0x5080,
			wantPC:  0x0602,
		})
	})

	t.Run("IND page wrap bug", func(t *testing.T) {
		testDo(t, testArgs{
			mode:    ModeIND,
			operand: []uint8{0xff, 0x30},
			mem:     map[uint16]uint8{0x30ff: 0x80, 0x3000: 0x50, 0x3100: 0x40},
			wantAbs: 0x5080,
			wantPC:  0x0602,
		})
	})

	t.Run("IZX", func(t *testing.T) {
		testDo(t, testArgs{
			mode:    ModeIZX,
			operand: []uint8{0x20},
			x:       0x04,
			mem:     map[uint16]uint8{0x24: 0x74, 0x25: 0x20},
			wantAbs: 0x2074,
			wantPC:  0x0601,
		})
	})

	t.Run("IZX pointer wraps in zero page", func(t *testing.T) {
		testDo(t, testArgs{
			mode:    ModeIZX,
			operand: []uint8{0xfe},
			x:       0x01,
			mem:     map[uint16]uint8{0xff: 0x34, 0x00: 0x12, 0x100: 0x99},
			wantAbs: 0x1234,
			wantPC:  0x0601,
		})
	})

	t.Run("IZY same page", func(t *testing.T) {
		testDo(t, testArgs{
			mode:    ModeIZY,
			operand: []uint8{0x20},
			y:       0x10,
			mem:     map[uint16]uint8{0x20: 0x00, 0x21: 0x12},
			wantAbs: 0x1210,
			wantPC:  0x0601,
		})
	})

	t.Run("IZY page crossed", func(t *testing.T) {
		testDo(t, testArgs{
			mode:     ModeIZY,
			operand:  []uint8{0x20},
			y:        0x01,
			mem:      map[uint16]uint8{0x20: 0xff, 0x21: 0x12},
			wantAbs:  0x1300,
			wantPC:   0x0601,
			wantExtr: 1,
		})
	})

	t.Run("IZY pointer wraps in zero page", func(t *testing.T) {
		testDo(t, testArgs{
			mode:    ModeIZY,
			operand: []uint8{0xff},
			mem:     map[uint16]uint8{0xff: 0x00, 0x00: 0x40, 0x100: 0x99},
			wantAbs: 0x4000,
			wantPC:  0x0601,
		})
	})
}

func TestAddrMode_OperandBytes(t *testing.T) {
	for mode, want := range map[AddrMode]int{
		ModeIMP: 0,
		ModeIMM: 1, ModeZP0: 1, ModeZPX: 1, ModeZPY: 1, ModeREL: 1, ModeIZX: 1, ModeIZY: 1,
		ModeABS: 2, ModeABX: 2, ModeABY: 2, ModeIND: 2,
	} {
		assert.Equal(t, want, mode.OperandBytes(), mode.String())
	}
}

func TestAddrMode_String(t *testing.T) {
	assert.Equal(t, "ZP0", ModeZP0.String())
	assert.Equal(t, "IZY", ModeIZY.String())
	assert.Equal(t, "???", AddrMode(0).String())
}
