package rom

import (
	"fmt"
	"os"

	"github.com/nevisdale/mos6502/internal/cpu"
)

const (
	nmiVectorAddr = uint16(0xfffa)
	irqVectorAddr = uint16(0xfffe)
)

// Image is a binary memory image that ends at $FFFF and so carries its
// own NMI, reset and IRQ vectors.
type Image struct {
	Data []byte
	Org  uint16
}

// NewImage places data so that its last byte lands at $FFFF.
// A full 64 KiB image starts at $0000.
func NewImage(data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	if len(data) > memSizeBytes {
		return nil, fmt.Errorf("%d bytes: %w", len(data), ErrTooLarge)
	}
	return &Image{
		Data: data,
		Org:  uint16(memSizeBytes - len(data)),
	}, nil
}

// ReadImage reads a raw binary image from path.
func ReadImage(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't read the image: %w", err)
	}
	img, err := NewImage(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// End is the address of the last byte of the image.
func (img *Image) End() uint16 {
	return img.Org + uint16(len(img.Data)-1)
}

// vector reads a little-endian word. Bytes outside the image read as 0.
func (img *Image) vector(addr uint16) uint16 {
	byteAt := func(addr uint16) uint16 {
		if addr < img.Org {
			return 0
		}
		i := int(addr - img.Org)
		if i >= len(img.Data) {
			return 0
		}
		return uint16(img.Data[i])
	}
	return byteAt(addr) | byteAt(addr+1)<<8
}

func (img *Image) ResetVector() uint16 {
	return img.vector(resetVectorAddr)
}

func (img *Image) IRQVector() uint16 {
	return img.vector(irqVectorAddr)
}

func (img *Image) NMIVector() uint16 {
	return img.vector(nmiVectorAddr)
}

// LoadImage copies the image into mem. Its vectors are kept as they are.
func LoadImage(mem cpu.Writer, img *Image) error {
	if err := LoadBytes(mem, img.Org, img.Data); err != nil {
		return fmt.Errorf("couldn't load the image: %w", err)
	}
	return nil
}
