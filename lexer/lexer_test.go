// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lexer

import (
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/EXCCoin/walletpolicy/buffer"
)

func TestParseTokenKeywords(t *testing.T) {
	tests := []struct {
		input string
		want  TokenKind
	}{
		{"sh", TokenSH},
		{"wsh", TokenWSH},
		{"sortedmulti", TokenSortedMulti},
		{"pk_k", TokenPK_K},
		{"pk_h", TokenPK_H},
		{"0", Token0},
		{"1", Token1},
		{"bogus", TokenInvalid},
	}
	for _, tc := range tests {
		c := buffer.New([]byte(tc.input))
		got := ParseToken(c)
		if got != tc.want {
			t.Errorf("ParseToken(%q) = %v; want %v", tc.input, got, tc.want)
		}
	}
}

func TestParseUnsignedDecimal(t *testing.T) {
	tests := []struct {
		input   string
		want    uint64
		wantOK  bool
		leftLen int
	}{
		{"0", 0, true, 0},
		{"12345", 12345, true, 0},
		{"007", 0, false, 0},
		{"12,3", 12, true, 2},
		{"", 0, false, 0},
		{"18446744073709551616", 0, false, 0}, // overflows uint64
	}
	for _, tc := range tests {
		c := buffer.New([]byte(tc.input))
		got, ok := ParseUnsignedDecimal(c)
		if ok != tc.wantOK {
			t.Errorf("ParseUnsignedDecimal(%q) ok = %v; want %v", tc.input, ok, tc.wantOK)
			continue
		}
		if ok && got != tc.want {
			t.Errorf("ParseUnsignedDecimal(%q) = %d; want %d", tc.input, got, tc.want)
		}
	}
}

func TestIsValidWrapperLetter(t *testing.T) {
	valid := "acdjlnstuv"
	for _, c := range valid {
		if !IsValidWrapperLetter(byte(c)) {
			t.Errorf("IsValidWrapperLetter(%q) = false; want true", c)
		}
	}
	for _, c := range "bef" {
		if IsValidWrapperLetter(byte(c)) {
			t.Errorf("IsValidWrapperLetter(%q) = true; want false", c)
		}
	}
}

func TestReadHexHash(t *testing.T) {
	c := buffer.New([]byte("deadbeef"))
	got, ok := ReadHexHash(c, 4)
	if !ok {
		t.Fatalf("ReadHexHash() failed")
	}
	want := []byte{0xde, 0xad, 0xbe, 0xef}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ReadHexHash() mismatch - got %v, want %v", spew.Sdump(got), spew.Sdump(want))
		}
	}

	c = buffer.New([]byte("DEADBEEF"))
	if _, ok := ReadHexHash(c, 4); ok {
		t.Fatalf("ReadHexHash() accepted uppercase hex")
	}
}

func TestDerivationStep(t *testing.T) {
	c := buffer.New([]byte("44'"))
	step, ok := DerivationStep(c)
	if !ok {
		t.Fatalf("DerivationStep() failed")
	}
	if step != 44|0x80000000 {
		t.Fatalf("DerivationStep() = %#x; want hardened 44", step)
	}

	c = buffer.New([]byte("0"))
	step, ok = DerivationStep(c)
	if !ok || step != 0 {
		t.Fatalf("DerivationStep() = %v, %v; want 0, true", step, ok)
	}

	c = buffer.New([]byte("2147483648"))
	if _, ok := DerivationStep(c); ok {
		t.Fatalf("DerivationStep() accepted an index at the hardened threshold")
	}
}
