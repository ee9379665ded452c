// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package buffer

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
)

func TestReadU8(t *testing.T) {
	c := New([]byte{0x01, 0x02})
	b, ok := c.ReadU8()
	if !ok || b != 0x01 {
		t.Fatalf("ReadU8() = %v, %v; want 0x01, true", b, ok)
	}
	if c.Pos() != 1 {
		t.Fatalf("Pos() = %d; want 1", c.Pos())
	}
	b, ok = c.ReadU8()
	if !ok || b != 0x02 {
		t.Fatalf("ReadU8() = %v, %v; want 0x02, true", b, ok)
	}
	if _, ok := c.ReadU8(); ok {
		t.Fatalf("ReadU8() on exhausted buffer returned ok=true")
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	c := New([]byte{0xaa, 0xbb})
	for i := 0; i < 3; i++ {
		b, ok := c.Peek()
		if !ok || b != 0xaa {
			t.Fatalf("Peek() iteration %d = %v, %v; want 0xaa, true", i, b, ok)
		}
	}
	if c.Pos() != 0 {
		t.Fatalf("Pos() = %d after repeated Peek; want 0", c.Pos())
	}
}

func TestPeekAt(t *testing.T) {
	c := New([]byte{1, 2, 3})
	b, ok := c.PeekAt(2)
	if !ok || b != 3 {
		t.Fatalf("PeekAt(2) = %v, %v; want 3, true", b, ok)
	}
	if _, ok := c.PeekAt(3); ok {
		t.Fatalf("PeekAt(3) past end returned ok=true")
	}
	if _, ok := c.PeekAt(-1); ok {
		t.Fatalf("PeekAt(-1) returned ok=true")
	}
}

func TestReadBytes(t *testing.T) {
	c := New([]byte{1, 2, 3, 4})
	got, ok := c.ReadBytes(3)
	if !ok {
		t.Fatalf("ReadBytes(3) failed")
	}
	want := []byte{1, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ReadBytes(3) mismatch - got %v, want %v", spew.Sdump(got), spew.Sdump(want))
		}
	}
	if _, ok := c.ReadBytes(2); ok {
		t.Fatalf("ReadBytes(2) with only 1 byte left returned ok=true")
	}
}

func TestReadVarint(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want uint64
	}{
		{"single byte", []byte{0x0c}, 12},
		{"fd prefix", []byte{0xfd, 0x00, 0x01}, 256},
		{"fe prefix", []byte{0xfe, 0x00, 0x00, 0x01, 0x00}, 65536},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := New(tc.data)
			got, ok := c.ReadVarint()
			if !ok {
				t.Fatalf("ReadVarint() failed")
			}
			if got != tc.want {
				t.Fatalf("ReadVarint() = %d; want %d", got, tc.want)
			}
			if c.Len() != 0 {
				t.Fatalf("Len() = %d after ReadVarint; want 0", c.Len())
			}
		})
	}
}

func TestSeekRelativeClamps(t *testing.T) {
	c := New([]byte{1, 2, 3})
	c.SeekRelative(-5)
	if c.Pos() != 0 {
		t.Fatalf("Pos() = %d after negative overshoot; want 0", c.Pos())
	}
	c.SeekRelative(10)
	if c.Pos() != 3 {
		t.Fatalf("Pos() = %d after positive overshoot; want 3", c.Pos())
	}
}
