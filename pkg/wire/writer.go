package wire

import (
	"bytes"
	"encoding/binary"
)

// Writer accumulates consensus-serialized bytes, mirroring Cursor's
// decode-side primitives on the encode side.
type Writer struct {
	buf bytes.Buffer
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer { return &Writer{} }

// Bytes returns the accumulated byte slice.
func (w *Writer) Bytes() []byte { return w.buf.Bytes() }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return w.buf.Len() }

// Raw appends b unmodified.
func (w *Writer) Raw(b []byte) { w.buf.Write(b) }

// Byte appends a single byte.
func (w *Writer) Byte(b byte) { w.buf.WriteByte(b) }

// Uint32LE appends a little-endian uint32.
func (w *Writer) Uint32LE(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

// Int32LE appends a little-endian int32.
func (w *Writer) Int32LE(v int32) { w.Uint32LE(uint32(v)) }

// Uint64LE appends a little-endian uint64.
func (w *Writer) Uint64LE(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

// Hash256 appends a 32-byte hash.
func (w *Writer) Hash256(h [32]byte) { w.buf.Write(h[:]) }

// CompactSize appends a Bitcoin-style variable-length integer.
func (w *Writer) CompactSize(v uint64) {
	switch {
	case v < 0xfd:
		w.buf.WriteByte(byte(v))
	case v <= 0xffff:
		w.buf.WriteByte(0xfd)
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], uint16(v))
		w.buf.Write(b[:])
	case v <= 0xffffffff:
		w.buf.WriteByte(0xfe)
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(v))
		w.buf.Write(b[:])
	default:
		w.buf.WriteByte(0xff)
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], v)
		w.buf.Write(b[:])
	}
}

// CompactSizeBytes appends b prefixed with its CompactSize length, matching
// the wire format's "string" encoding (scripts, proofs, ciphertexts, ...).
func (w *Writer) CompactSizeBytes(b []byte) {
	w.CompactSize(uint64(len(b)))
	w.buf.Write(b)
}
