package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRAM_ReadWrite(t *testing.T) {
	r := New()

	for _, addr := range []uint16{0x0000, 0x00ff, 0x0100, 0x8000, 0xffff} {
		assert.Equal(t, uint8(0), r.Read8(addr), "fresh memory at %04X", addr)
		r.Write8(addr, uint8(addr>>8)^0x5a)
		assert.Equal(t, uint8(addr>>8)^0x5a, r.Read8(addr))
	}
}

func TestRAM_Load(t *testing.T) {
	r := New()

	n := r.Load(0xfffe, []uint8{1, 2, 3})

	assert.Equal(t, 3, n)
	assert.Equal(t, uint8(1), r.Read8(0xfffe))
	assert.Equal(t, uint8(2), r.Read8(0xffff))
	assert.Equal(t, uint8(3), r.Read8(0x0000))

	assert.Equal(t, 0x10000, r.Load(0, make([]uint8, 0x10010)), "at most the whole address space")
}

func TestRAM_Page(t *testing.T) {
	r := New()
	r.Write8(0x01fd, 0xaa)

	page := r.Page(0x01)
	assert.Len(t, page, 0x100)
	assert.Equal(t, uint8(0xaa), page[0xfd])

	page[0xfd] = 0
	assert.Equal(t, uint8(0xaa), r.Read8(0x01fd), "page is a copy")

	assert.Len(t, r.Page(0xff), 0x100)
}

func TestRAM_Clear(t *testing.T) {
	r := New()
	r.Write8(0x1234, 0xff)

	r.Clear()

	assert.Equal(t, uint8(0), r.Read8(0x1234))
}
