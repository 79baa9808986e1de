// Package cursor provides bounds-checked, copy-free consumption of
// big-endian values from the front of a byte buffer.
package cursor

import (
	"encoding/binary"
	"errors"
)

// ErrUnexpectedEOF is returned when fewer bytes remain than a read requires.
var ErrUnexpectedEOF = errors.New("unexpected end of input")

// Cursor is a shrinking view over an input buffer. Every read advances
// the view; byte results alias the original buffer and are never copied.
type Cursor struct {
	buf []byte
	pos int
}

// New creates a Cursor over data. The Cursor does not own data and all
// spans it returns remain valid only as long as data does.
func New(data []byte) *Cursor {
	return &Cursor{buf: data}
}

// Position returns the absolute offset of the next unread byte.
func (c *Cursor) Position() int {
	return c.pos
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.buf)
}

// Take removes and returns the first n bytes of the view. The result
// aliases the original buffer.
func (c *Cursor) Take(n int) ([]byte, error) {
	if n < 0 || n > len(c.buf) {
		return nil, ErrUnexpectedEOF
	}
	span := c.buf[:n:n]
	c.buf = c.buf[n:]
	c.pos += n
	return span, nil
}

// ReadU8 reads a single byte.
func (c *Cursor) ReadU8() (byte, error) {
	if len(c.buf) == 0 {
		return 0, ErrUnexpectedEOF
	}
	b := c.buf[0]
	c.buf = c.buf[1:]
	c.pos++
	return b, nil
}

// ReadU16 reads a big-endian uint16.
func (c *Cursor) ReadU16() (uint16, error) {
	span, err := c.Take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(span), nil
}

// ReadU32 reads a big-endian uint32.
func (c *Cursor) ReadU32() (uint32, error) {
	span, err := c.Take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(span), nil
}
