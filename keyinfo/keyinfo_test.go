// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keyinfo

import (
	"strings"
	"testing"

	"github.com/EXCCoin/walletpolicy/buffer"
)

const sampleXpub = "xpub6CUGRUonZSQ4TWtTMmzXdrXDtypWKiKrhko4egpiMZbpiaQL2jkwSB1icqYh2cfDfVxdx4df189oLKnC5fSwqPfgyP3hooxujYzAu3fDVmz"

func TestParseBareExtendedKey(t *testing.T) {
	c := buffer.New([]byte(sampleXpub))
	info, err := Parse(c)
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}
	if info.HasOrigin {
		t.Errorf("HasOrigin = true; want false")
	}
	if info.HasWildcard {
		t.Errorf("HasWildcard = true; want false")
	}
	if info.ExtPubKey != sampleXpub {
		t.Errorf("ExtPubKey = %q; want %q", info.ExtPubKey, sampleXpub)
	}
}

func TestParseOriginAndWildcard(t *testing.T) {
	input := "[deadbeef/44'/0'/0']" + sampleXpub + "/**"
	c := buffer.New([]byte(input))
	info, err := Parse(c)
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}
	if !info.HasOrigin {
		t.Fatalf("HasOrigin = false; want true")
	}
	want := [4]byte{0xde, 0xad, 0xbe, 0xef}
	if info.Fingerprint != want {
		t.Errorf("Fingerprint = %x; want %x", info.Fingerprint, want)
	}
	if len(info.Derivation) != 3 {
		t.Fatalf("len(Derivation) = %d; want 3", len(info.Derivation))
	}
	if info.Derivation[0] != 44|0x80000000 {
		t.Errorf("Derivation[0] = %#x; want hardened 44", info.Derivation[0])
	}
	if !info.HasWildcard {
		t.Errorf("HasWildcard = false; want true")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d after Parse; want 0", c.Len())
	}
}

func TestParseTooManyDerivationSteps(t *testing.T) {
	steps := strings.Repeat("/0", MaxDerivationSteps+1)
	input := "[deadbeef" + steps + "]" + sampleXpub
	_, err := Parse(buffer.New([]byte(input)))
	perr, ok := err.(*Error)
	if !ok || perr.Kind != ErrOutOfRange {
		t.Fatalf("Parse() error = %v; want ErrOutOfRange", err)
	}
}

func TestParseShortExtendedKeyRejected(t *testing.T) {
	_, err := Parse(buffer.New([]byte(sampleXpub[:50])))
	perr, ok := err.(*Error)
	if !ok || perr.Kind != ErrOutOfRange {
		t.Fatalf("Parse() error = %v; want ErrOutOfRange", err)
	}
}

func TestParseMalformedWildcardRejected(t *testing.T) {
	_, err := Parse(buffer.New([]byte(sampleXpub + "/*")))
	perr, ok := err.(*Error)
	if !ok || perr.Kind != ErrTrailingInput {
		t.Fatalf("Parse() error = %v; want ErrTrailingInput", err)
	}
}
