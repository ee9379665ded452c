// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package buffer implements a forward-only byte cursor used to decode the
// wallet header, the policy body, and key-info text without ever growing
// or copying the underlying slice.
package buffer

import (
	"bytes"
	"errors"

	"github.com/decred/dcrd/wire"
)

// ErrExhausted is returned whenever a read would run past the end of the
// underlying slice.
var ErrExhausted = errors.New("buffer: input exhausted")

// Cursor is a forward-only read-only view over a byte slice. It never
// copies the slice it was constructed with; all
// "reads" are returned as sub-slices of the original backing array.
type Cursor struct {
	data []byte
	pos  int
}

// New returns a Cursor positioned at the start of data.
func New(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Pos returns the current offset into the original slice.
func (c *Cursor) Pos() int {
	return c.pos
}

// Len returns the number of unread bytes remaining.
func (c *Cursor) Len() int {
	return len(c.data) - c.pos
}

// CanRead reports whether n more bytes can be read without exhausting the
// buffer.
func (c *Cursor) CanRead(n int) bool {
	return n >= 0 && c.Len() >= n
}

// Peek returns the next byte without consuming it.
func (c *Cursor) Peek() (byte, bool) {
	return c.PeekAt(0)
}

// PeekAt returns the byte at offset bytes ahead of the current position,
// without consuming anything.
func (c *Cursor) PeekAt(offset int) (byte, bool) {
	if offset < 0 || !c.CanRead(offset + 1) {
		return 0, false
	}
	return c.data[c.pos+offset], true
}

// ReadU8 consumes and returns the next byte.
func (c *Cursor) ReadU8() (byte, bool) {
	b, ok := c.Peek()
	if !ok {
		return 0, false
	}
	c.pos++
	return b, true
}

// ReadBytes consumes and returns the next n bytes as a sub-slice of the
// original backing array. The caller must not retain it past the next
// mutation of the source buffer.
func (c *Cursor) ReadBytes(n int) ([]byte, bool) {
	if !c.CanRead(n) {
		return nil, false
	}
	out := c.data[c.pos : c.pos+n]
	c.pos += n
	return out, true
}

// SeekRelative advances (or, if n is negative, rewinds) the cursor by n
// bytes. It never moves before the start or past the end of the buffer.
func (c *Cursor) SeekRelative(n int) {
	newPos := c.pos + n
	if newPos < 0 {
		newPos = 0
	}
	if newPos > len(c.data) {
		newPos = len(c.data)
	}
	c.pos = newPos
}

// ReadVarint reads a Bitcoin-style CompactSize integer: a single byte, or
// one of the 0xFD/0xFE/0xFF prefixes followed by 2, 4, or 8 little-endian
// bytes. Decoding itself is delegated to wire.ReadVarInt, the same
// CompactSize codec the wire protocol messages in this tree use for their
// own length-prefixed fields.
func (c *Cursor) ReadVarint() (uint64, bool) {
	r := bytes.NewReader(c.data[c.pos:])
	v, err := wire.ReadVarInt(r, 0)
	if err != nil {
		return 0, false
	}
	consumed := len(c.data[c.pos:]) - r.Len()
	c.pos += consumed
	return v, true
}
