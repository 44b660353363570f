// Package bitset reads and writes dense, row-major, LSB-first bit arrays.
//
// A [View] is a read-only borrow of an engine's packed cell buffer. It is
// valid for one frame only: take a new one after every Tick or ToggleCell.
package bitset

import (
	"math/bits"

	"github.com/san-kum/cellview/internal/engine"
)

// View is a read-only snapshot of a bit-packed region of memory.
type View struct {
	buf      []byte
	offset   uint32
	bitCount int
}

// ByteLen returns the number of bytes needed to hold n bits.
func ByteLen(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + 7) / 8
}

// Borrow returns a view of bitCount bits starting at byteOffset in mem. The
// view never extends past ByteLen(bitCount) bytes from the offset.
func Borrow(mem []byte, byteOffset uint32, bitCount int) View {
	end := int(byteOffset) + ByteLen(bitCount)
	return View{buf: mem[byteOffset:end:end], offset: byteOffset, bitCount: bitCount}
}

// FromEngine borrows the engine's current cell buffer.
func FromEngine(e engine.Engine) View {
	n := int(e.Width()) * int(e.Height())
	return Borrow(e.Memory(), e.CellsPointer(), n)
}

// IsSet reports whether bit n is set. n must be in [0, Len()).
func (v View) IsSet(n int) bool {
	mask := byte(1) << (n % 8)
	return v.buf[n/8]&mask == mask
}

// Len returns the number of bits in the view.
func (v View) Len() int { return v.bitCount }

// Offset returns the byte offset the view was borrowed at.
func (v View) Offset() uint32 { return v.offset }

// Bytes exposes the borrowed region. Callers must not modify it.
func (v View) Bytes() []byte { return v.buf }

// Count returns the number of set bits.
func (v View) Count() int {
	if v.bitCount == 0 {
		return 0
	}
	full := v.bitCount / 8
	total := 0
	for _, b := range v.buf[:full] {
		total += bits.OnesCount8(b)
	}
	if rem := v.bitCount % 8; rem != 0 {
		total += bits.OnesCount8(v.buf[full] & (1<<rem - 1))
	}
	return total
}

// Set writes bit n of buf.
func Set(buf []byte, n int, on bool) {
	mask := byte(1) << (n % 8)
	if on {
		buf[n/8] |= mask
		return
	}
	buf[n/8] &^= mask
}

// Toggle flips bit n of buf.
func Toggle(buf []byte, n int) {
	buf[n/8] ^= byte(1) << (n % 8)
}

// Get reads bit n of buf.
func Get(buf []byte, n int) bool {
	return buf[n/8]&(byte(1)<<(n%8)) != 0
}
