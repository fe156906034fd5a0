package rom

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	inesMagic        = 0x1a53454e
	inesTrainerBytes = 512
	prgBankSizeBytes = 0x4000
	prgWindowOrg     = 0x8000
)

var (
	ErrBadHeader         = errors.New("invalid iNES header")
	ErrUnsupportedMapper = errors.New("unsupported mapper")
)

type inesHeader struct {
	Magic      uint32
	PrgRomSize uint8
	ChrRomSize uint8
	Flags6     uint8
	Flags7     uint8
	Flags8     uint8
	Flags9     uint8
	Flags10    uint8
	_          [5]uint8 // unused
}

// ReadINES reads the program ROM of an iNES file with mapper 0 and
// returns it as an image of $8000-$FFFF. A single 16 KiB bank is
// mirrored into $C000-$FFFF the way the cartridge wires it, so the
// vectors of the bank end up at $FFFA-$FFFF.
func ReadINES(path string) (*Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't open the file: %w", err)
	}
	defer file.Close()

	return decodeINES(file)
}

func decodeINES(r io.Reader) (*Image, error) {
	var header inesHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("couldn't read the header: %w", err)
	}
	if header.Magic != inesMagic {
		return nil, ErrBadHeader
	}

	// flags6: lower 4 bits of mapper ID, flags7: upper 4 bits
	mapperID := (header.Flags7 & 0xf0) | (header.Flags6 >> 4)
	if mapperID != 0 {
		return nil, fmt.Errorf("mapper %d: %w", mapperID, ErrUnsupportedMapper)
	}
	if header.PrgRomSize == 0 || header.PrgRomSize > 2 {
		return nil, fmt.Errorf("%d PRG banks: %w", header.PrgRomSize, ErrBadHeader)
	}

	// the second bit of flags6 is the trainer flag
	if header.Flags6&0x4 != 0 {
		if _, err := io.CopyN(io.Discard, r, inesTrainerBytes); err != nil {
			return nil, fmt.Errorf("couldn't skip the trainer: %w", err)
		}
	}

	prg := make([]byte, int(header.PrgRomSize)*prgBankSizeBytes)
	if _, err := io.ReadFull(r, prg); err != nil {
		return nil, fmt.Errorf("couldn't read PRG ROM: %w", err)
	}

	data := make([]byte, memSizeBytes-prgWindowOrg)
	for i := 0; i < len(data); i += len(prg) {
		copy(data[i:], prg)
	}
	return &Image{Data: data, Org: prgWindowOrg}, nil
}
