// Package rom puts programs into memory: raw byte buffers, hex token
// strings for ad-hoc test programs, and binary images from disk.
package rom

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nevisdale/mos6502/internal/cpu"
)

const (
	memSizeBytes = 0x10000

	resetVectorAddr = uint16(0xfffc)
)

var (
	ErrEmpty    = errors.New("empty program")
	ErrTooLarge = errors.New("program does not fit in 64 KiB")
)

// LoadBytes writes data to mem starting at org. Addresses wrap past $FFFF.
func LoadBytes(mem cpu.Writer, org uint16, data []byte) error {
	if len(data) == 0 {
		return ErrEmpty
	}
	if len(data) > memSizeBytes {
		return fmt.Errorf("%d bytes: %w", len(data), ErrTooLarge)
	}
	for i, b := range data {
		mem.Write8(org+uint16(i), b)
	}
	return nil
}

// ParseHex parses whitespace separated hex bytes such as "A9 10 8D 00 02".
// A token may carry a "$" or "0x" prefix.
func ParseHex(s string) ([]byte, error) {
	tokens := strings.Fields(s)
	if len(tokens) == 0 {
		return nil, ErrEmpty
	}

	data := make([]byte, 0, len(tokens))
	for i, tok := range tokens {
		digits := strings.TrimPrefix(tok, "$")
		digits = strings.TrimPrefix(strings.TrimPrefix(digits, "0x"), "0X")
		if len(digits) == 0 || len(digits) > 2 {
			return nil, fmt.Errorf("token %d %q: expected 1 or 2 hex digits", i, tok)
		}
		b, err := strconv.ParseUint(digits, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("token %d %q: %w", i, tok, err)
		}
		data = append(data, byte(b))
	}
	return data, nil
}

// LoadProgram writes data at org and points the reset vector at it.
// Use it only for programs that carry no vectors of their own.
func LoadProgram(mem cpu.Writer, org uint16, data []byte) error {
	if err := LoadBytes(mem, org, data); err != nil {
		return fmt.Errorf("couldn't load the program: %w", err)
	}
	mem.Write8(resetVectorAddr, uint8(org))
	mem.Write8(resetVectorAddr+1, uint8(org>>8))
	return nil
}

// LoadHex parses a hex program and loads it with LoadProgram.
func LoadHex(mem cpu.Writer, org uint16, s string) error {
	data, err := ParseHex(s)
	if err != nil {
		return fmt.Errorf("couldn't parse the program: %w", err)
	}
	return LoadProgram(mem, org, data)
}
