package script

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/nevisdale/mos6502/internal/machine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBridge(t *testing.T) (*Bridge, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	b := New(machine.New(), &out)
	t.Cleanup(b.Close)
	return b, &out
}

func TestBridge_LoadAndStep(t *testing.T) {
	b, out := newBridge(t)

	err := b.RunString(`
		load_hex(0x0600, "A9 10 8D 00 02")
		step(2)
		local s = state()
		print(s.a, s.pc, peek(0x0200))
	`)

	require.NoError(t, err)
	assert.Equal(t, "16\t1541\t16\n", out.String())
}

func TestBridge_CountLoop(t *testing.T) {
	b, out := newBridge(t)

	err := b.RunString(`
		load_hex(0x0600, "E8 E0 0A D0 FB")
		while state().pc ~= 0x0605 do
			step()
		end
		print(state().x, flag("Z"), flag("n"))
	`)

	require.NoError(t, err)
	assert.Equal(t, "10\ttrue\tfalse\n", out.String())
}

func TestBridge_Disasm(t *testing.T) {
	b, out := newBridge(t)

	err := b.RunString(`
		load_hex(0x0600, "A9 10 8D 00 02")
		local lines = disasm(0x0600, 0x0605)
		print(#lines)
		print(lines[1])
		print(line_at(0x0602))
		print(line_at(0x0601))
	`)

	require.NoError(t, err)
	assert.Equal(t, "2\n0600: LDA #$10 {IMM}\n0602: STA $0200 {ABS}\nnil\n", out.String())
}

func TestBridge_PokeTickInterrupts(t *testing.T) {
	b, out := newBridge(t)

	err := b.RunString(`
		load_hex(0x0600, "EA")
		poke(0xfffe, 0x00)
		poke(0xffff, 0x07)
		poke(0xfffa, 0x00)
		poke(0xfffb, 0x08)
		irq()
		print(state().pc, state().cycles, flag("I"))
		tick()
		print(state().cycles)
		nmi()
		print(state().pc)
		reset()
		print(state().pc, state().sp)
	`)

	require.NoError(t, err)
	assert.Equal(t, "1792\t7\ttrue\n6\n2048\n1536\t253\n", out.String())
}

func TestBridge_Errors(t *testing.T) {
	tests := map[string]string{
		"bad flag":        `flag("Q")`,
		"bad address":     `peek(0x10000)`,
		"bad byte":        `poke(0, 256)`,
		"bad hex":         `load_hex(0, "ZZ")`,
		"lua syntax":      `this is not lua`,
		"runtime failure": `error("boom")`,
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			b, _ := newBridge(t)
			assert.Error(t, b.RunString(src))
		})
	}
}

func TestBridge_RunFile(t *testing.T) {
	b, out := newBridge(t)
	path := filepath.Join(t.TempDir(), "prog.lua")
	require.NoError(t, os.WriteFile(path, []byte(`print("hello")`), 0o644))

	require.NoError(t, b.RunFile(path))
	assert.Equal(t, "hello\n", out.String())

	err := b.RunFile(filepath.Join(t.TempDir(), "missing.lua"))
	assert.ErrorContains(t, err, "missing.lua")
}
