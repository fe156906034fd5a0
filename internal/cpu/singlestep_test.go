package cpu

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test_CPU_SingleStepTest runs the per-opcode JSON suites from
// https://github.com/SingleStepTests/65x02 (nes6502 or 6502 set).
func Test_CPU_SingleStepTest(t *testing.T) {
	t.Parallel()

	type cpuState struct {
		PC uint16 `json:"pc"`
		S  uint8  `json:"s"`
		A  uint8  `json:"a"`
		X  uint8  `json:"x"`
		Y  uint8  `json:"y"`
		P  uint8  `json:"p"`

		// slice of elements where
		// element[0] is address
		// element[1] is value
		RAM [][]uint16 `json:"ram"`
	}

	type testInstance struct {
		Name    string   `json:"name"`
		Initial cpuState `json:"initial"`
		Final   cpuState `json:"final"`

		// slice of elements where
		// element[0] is address
		// element[1] is value
		// element[2] is operation (read/write)
		Cycles [][]any `json:"cycles"`
	}

	dir := os.Getenv("SINGLE_STEP_TEST_DIR")
	if dir == "" {
		t.Skip("skipping test because SINGLE_STEP_TEST_DIR is not set")
		return
	}

	files, err := os.ReadDir(dir)
	require.NoError(t, err)

	mem := newTraceMem(t)
	doTest := func(t *testing.T, test testInstance) {
		mem.t = t
		mem.reset()
		for _, addrVal := range test.Initial.RAM {
			mem.set(addrVal[0], uint8(addrVal[1]))
		}
		for _, cyc := range test.Cycles {
			op := cyc[2].(string)
			addr := uint16(cyc[0].(float64))
			data := uint8(cyc[1].(float64))
			mem.allow(op, addr, data)
		}

		c := NewCPU(mem)
		c.pc = test.Initial.PC
		c.sp = test.Initial.S
		c.a = test.Initial.A
		c.x = test.Initial.X
		c.y = test.Initial.Y
		c.status = test.Initial.P

		// the whole instruction runs on its first cycle
		c.Tick()

		s := c.State()
		require.Equal(t, test.Final.PC, s.PC, "%s: PC", test.Name)
		require.Equal(t, test.Final.S, s.SP, "%s: SP", test.Name)
		require.Equal(t, test.Final.A, s.A, "%s: A", test.Name)
		require.Equal(t, test.Final.X, s.X, "%s: X", test.Name)
		require.Equal(t, test.Final.Y, s.Y, "%s: Y", test.Name)
		require.Equal(t, test.Final.P, s.Status, "%s: P", test.Name)
		require.Equal(t, len(test.Cycles), int(s.Cycles)+1, "%s: cycles", test.Name)

		for _, addrVal := range test.Final.RAM {
			mem.mustBe(addrVal[0], uint8(addrVal[1]))
		}
	}

	var tests []testInstance
	for _, file := range files {
		opcodeStr := filepath.Base(file.Name())[:2]
		opcode, err := strconv.ParseUint(opcodeStr, 16, 8)
		if err != nil {
			t.Fatalf("failed to parse opcode from file name %s: %v", file.Name(), err)
		}

		in := Lookup(uint8(opcode))
		t.Run(file.Name(), func(t *testing.T) {
			if !in.Legal() {
				t.Skipf("skipping test for opcode %02X because it is undocumented", opcode)
				return
			}
			// BRK sets I before pushing the status
			if in.Op == OpBRK {
				t.Skip("skipping BRK, the pushed status carries I")
				return
			}
			// RTI always clears I instead of taking it from the stack
			if in.Op == OpRTI {
				t.Skip("skipping RTI, I is cleared rather than pulled")
				return
			}

			fileData, err := os.ReadFile(filepath.Join(dir, file.Name()))
			require.NoError(t, err)

			tests = tests[:0]
			require.NoError(t, json.Unmarshal(fileData, &tests))

			for _, test := range tests {
				// decimal arithmetic is not emulated
				if (in.Op == OpADC || in.Op == OpSBC) && test.Initial.P&uint8(FlagD) != 0 {
					continue
				}
				doTest(t, test)
			}
		})
	}
}

// traceMem is a flat memory that only accepts the writes a test case
// lists in its bus trace.
type traceMem struct {
	t       *testing.T
	data    []uint8
	allowed map[uint32]struct{}
}

func newTraceMem(t *testing.T) *traceMem {
	return &traceMem{
		t:       t,
		data:    make([]uint8, 0x10000),
		allowed: make(map[uint32]struct{}),
	}
}

func (m *traceMem) key(addr uint16, data uint8) uint32 {
	return uint32(addr) | uint32(data)<<16
}

func (m *traceMem) allow(op string, addr uint16, data uint8) {
	if op != "write" {
		return
	}
	m.allowed[m.key(addr, data)] = struct{}{}
}

func (m *traceMem) mustBe(addr uint16, data uint8) {
	assert.Equal(m.t, data, m.data[addr], "memory at %04X", addr)
}

func (m *traceMem) set(addr uint16, data uint8) {
	m.data[addr] = data
}

func (m *traceMem) reset() {
	clear(m.data)
	clear(m.allowed)
}

func (m *traceMem) Read8(addr uint16) uint8 {
	// reads do not change memory, so they are not checked
	return m.data[addr]
}

func (m *traceMem) Write8(addr uint16, data uint8) {
	if _, ok := m.allowed[m.key(addr, data)]; !ok {
		m.t.Fatalf("not allowed write to address %04X with value %02X", addr, data)
	}
	m.data[addr] = data
}
