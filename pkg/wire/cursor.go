package wire

import (
	"encoding/binary"
	"fmt"
)

// Cursor reads consensus-serialized fields from a fixed byte slice,
// tracking position so that callers can bookmark a span and later capture
// the exact bytes read since that bookmark (needed to hash a block header
// or transaction without re-encoding it).
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor wraps buf for sequential reads starting at position 0.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Pos returns the current read position.
func (c *Cursor) Pos() int { return c.pos }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.buf) - c.pos }

// Bookmark returns the current position, to be paired with a later Since call.
func (c *Cursor) Bookmark() int { return c.pos }

// Since returns the bytes read between mark and the current position.
func (c *Cursor) Since(mark int) []byte {
	return c.buf[mark:c.pos]
}

// Peek returns the unread tail of the buffer without advancing the cursor,
// for handing a sub-decoder (e.g. transaction.DecodeOne) a slice it can report
// a consumed-byte count against.
func (c *Cursor) Peek() []byte {
	return c.buf[c.pos:]
}

// Advance moves the cursor forward n bytes, for resuming after a
// sub-decoder reported how much of a Peek'd slice it consumed.
func (c *Cursor) Advance(n int) error {
	if err := c.require(n); err != nil {
		return err
	}
	c.pos += n
	return nil
}

func (c *Cursor) require(n int) error {
	if c.Remaining() < n {
		return &StrictLengthError{Code: "short-read", Message: "not enough bytes remaining", Expected: n, Got: c.Remaining()}
	}
	return nil
}

// Bytes reads exactly n raw bytes and returns a slice view into the
// underlying buffer. Callers must copy before retaining past further reads
// that might grow the buffer on the writer side, but since Cursor only ever
// reads an immutable input slice this is safe to hold onto directly.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	if err := c.require(n); err != nil {
		return nil, err
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// Byte reads a single byte.
func (c *Cursor) Byte() (byte, error) {
	if err := c.require(1); err != nil {
		return 0, err
	}
	b := c.buf[c.pos]
	c.pos++
	return b, nil
}

// Uint32LE reads a little-endian uint32.
func (c *Cursor) Uint32LE() (uint32, error) {
	if err := c.require(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(c.buf[c.pos : c.pos+4])
	c.pos += 4
	return v, nil
}

// Int32LE reads a little-endian int32.
func (c *Cursor) Int32LE() (int32, error) {
	v, err := c.Uint32LE()
	return int32(v), err
}

// Uint64LE reads a little-endian uint64.
func (c *Cursor) Uint64LE() (uint64, error) {
	if err := c.require(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(c.buf[c.pos : c.pos+8])
	c.pos += 8
	return v, nil
}

// Hash256 reads a 32-byte hash.
func (c *Cursor) Hash256() ([32]byte, error) {
	var h [32]byte
	b, err := c.Bytes(32)
	if err != nil {
		return h, err
	}
	copy(h[:], b)
	return h, nil
}

// CompactSize reads a Bitcoin-style variable-length integer: a single byte
// below 0xfd is the value itself; 0xfd/0xfe/0xff prefix a 2/4/8-byte
// little-endian value respectively.
func (c *Cursor) CompactSize() (uint64, error) {
	prefix, err := c.Byte()
	if err != nil {
		return 0, err
	}
	switch {
	case prefix < 0xfd:
		return uint64(prefix), nil
	case prefix == 0xfd:
		if err := c.require(2); err != nil {
			return 0, err
		}
		v := binary.LittleEndian.Uint16(c.buf[c.pos : c.pos+2])
		c.pos += 2
		return uint64(v), nil
	case prefix == 0xfe:
		if err := c.require(4); err != nil {
			return 0, err
		}
		v := binary.LittleEndian.Uint32(c.buf[c.pos : c.pos+4])
		c.pos += 4
		return uint64(v), nil
	default: // 0xff
		if err := c.require(8); err != nil {
			return 0, err
		}
		v := binary.LittleEndian.Uint64(c.buf[c.pos : c.pos+8])
		c.pos += 8
		return v, nil
	}
}

// CompactSizeInt reads a CompactSize and returns it as an int, erroring if
// the value would overflow a reasonable vector length (guards against a
// corrupt or adversarial length field driving an enormous allocation).
func (c *Cursor) CompactSizeInt() (int, error) {
	n, err := c.CompactSize()
	if err != nil {
		return 0, err
	}
	if n > uint64(c.Remaining())+uint64(1<<20) {
		return 0, fmt.Errorf("compact-size length %d implausible with %d bytes remaining", n, c.Remaining())
	}
	return int(n), nil
}
