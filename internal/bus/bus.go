package bus

const (
	// Memory Map:
	//
	// $0000-$00FF: Zero page
	//   Addressable with single-byte operands (ZP0, ZPX, ZPY, IZX, IZY).
	//
	// $0100-$01FF: Stack
	//   The stack pointer is an offset into this page. It grows down from $FD
	//   after reset and wraps silently inside the page.
	//
	// $0200-$FFF9: General purpose RAM
	//   Programs and data. There is no bank switching and no memory mapped I/O.
	//
	// $FFFA-$FFFB: NMI vector
	// $FFFC-$FFFD: Reset vector
	// $FFFE-$FFFF: IRQ/BRK vector
	ramSizeBytes  = 0x10000
	pageSizeBytes = 0x100
)

// RAM is a flat 64 KiB store. Every address is readable and writable.
type RAM struct {
	ram [ramSizeBytes]uint8
}

func New() *RAM {
	return &RAM{}
}

func (r *RAM) Read8(addr uint16) uint8 {
	return r.ram[addr]
}

func (r *RAM) Write8(addr uint16, data uint8) {
	r.ram[addr] = data
}

// Load copies data starting at org. Addresses wrap past $FFFF.
// It returns the number of bytes written.
func (r *RAM) Load(org uint16, data []uint8) int {
	n := min(len(data), ramSizeBytes)
	for i := 0; i < n; i++ {
		r.ram[org+uint16(i)] = data[i]
	}
	return n
}

// Page returns a copy of the 256 bytes of the given page.
func (r *RAM) Page(page uint8) []uint8 {
	start := int(page) * pageSizeBytes
	out := make([]uint8, pageSizeBytes)
	copy(out, r.ram[start:start+pageSizeBytes])
	return out
}

func (r *RAM) Clear() {
	clear(r.ram[:])
}
