// package buffer provides the audio buffer primitives shared by the output
// backends and the display.
package buffer

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Block is a reusable float32 sample buffer. It grows to the largest size
// asked of it and is then reused, so callbacks with a stable size stop
// allocating after the first call.
type Block struct {
	buf []float32
}

// NewBlock returns a block with room for size samples.
func NewBlock(size int) *Block {
	return &Block{buf: make([]float32, size)}
}

// Samples returns a slice of n samples. Its contents are whatever was last
// written to it.
func (b *Block) Samples(n int) []float32 {
	if cap(b.buf) < n {
		b.buf = make([]float32, n)
	}
	return b.buf[:n]
}

func (b *Block) String() string { return fmt.Sprintf("Block(%d)", cap(b.buf)) }

// PutFloat32LE encodes src into dst as little endian IEEE floats, four bytes
// per sample, and returns the number of samples encoded. It stops when
// either side runs out.
func PutFloat32LE(dst []byte, src []float32) int {
	n := min(len(dst)/4, len(src))
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint32(dst[4*i:], math.Float32bits(src[i]))
	}
	return n
}

// Float32LE decodes little endian floats from src into dst and returns the
// number decoded.
func Float32LE(dst []float32, src []byte) int {
	n := min(len(src)/4, len(dst))
	for i := 0; i < n; i++ {
		dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(src[4*i:]))
	}
	return n
}

// History is a fixed size ring of the most recent values pushed to it.
type History struct {
	Buf    []float64
	Writep int
	full   bool
}

// NewHistory returns a ring holding the last size values.
func NewHistory(size int) *History {
	if size <= 0 {
		panic(fmt.Errorf("history size %d", size))
	}
	return &History{Buf: make([]float64, size)}
}

// Push records x, overwriting the oldest value once the ring is full.
func (h *History) Push(x float64) {
	h.Buf[h.Writep] = x
	h.Writep++
	if h.Writep == len(h.Buf) {
		h.Writep = 0
		h.full = true
	}
}

// Len is the number of values held.
func (h *History) Len() int {
	if h.full {
		return len(h.Buf)
	}
	return h.Writep
}

// Values appends the held values to dst, oldest first.
func (h *History) Values(dst []float64) []float64 {
	if h.full {
		dst = append(dst, h.Buf[h.Writep:]...)
	}
	return append(dst, h.Buf[:h.Writep]...)
}
