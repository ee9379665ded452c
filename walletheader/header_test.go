// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package walletheader

import (
	"testing"

	"github.com/EXCCoin/walletpolicy/buffer"
)

func buildHeader(t *testing.T, typ byte, name, policyBody string, nKeys byte, root [32]byte) []byte {
	t.Helper()
	out := []byte{typ, byte(len(name))}
	out = append(out, name...)
	out = append(out, byte(len(policyBody)))
	out = append(out, policyBody...)
	out = append(out, nKeys)
	out = append(out, root[:]...)
	return out
}

func TestDecodeValidHeader(t *testing.T) {
	raw := buildHeader(t, PolicyMapDiscriminant, "wal", "pkh(@0)", 1, [32]byte{})
	h, err := Decode(buffer.New(raw))
	if err != nil {
		t.Fatalf("Decode() returned error: %v", err)
	}
	if string(h.Name) != "wal" {
		t.Errorf("Name = %q; want %q", h.Name, "wal")
	}
	if string(h.PolicyBody) != "pkh(@0)" {
		t.Errorf("PolicyBody = %q; want %q", h.PolicyBody, "pkh(@0)")
	}
	if h.NKeys != 1 {
		t.Errorf("NKeys = %d; want 1", h.NKeys)
	}
}

func TestDecodeWrongDiscriminant(t *testing.T) {
	raw := buildHeader(t, 0x01, "wal", "pkh(@0)", 1, [32]byte{})
	_, err := Decode(buffer.New(raw))
	perr, ok := err.(*Error)
	if !ok || perr.Kind != ErrHeaderMismatch {
		t.Fatalf("Decode() error = %v; want ErrHeaderMismatch", err)
	}
}

func TestDecodeEmptyName(t *testing.T) {
	raw := buildHeader(t, PolicyMapDiscriminant, "", "pkh(@0)", 1, [32]byte{})
	_, err := Decode(buffer.New(raw))
	perr, ok := err.(*Error)
	if !ok || perr.Kind != ErrOutOfRange {
		t.Fatalf("Decode() error = %v; want ErrOutOfRange", err)
	}
}

func TestDecodeTrailingBytes(t *testing.T) {
	raw := buildHeader(t, PolicyMapDiscriminant, "wal", "pkh(@0)", 1, [32]byte{})
	raw = append(raw, 0xff)
	_, err := Decode(buffer.New(raw))
	perr, ok := err.(*Error)
	if !ok || perr.Kind != ErrTrailingInput {
		t.Fatalf("Decode() error = %v; want ErrTrailingInput", err)
	}
}

func TestDecodeTruncated(t *testing.T) {
	raw := buildHeader(t, PolicyMapDiscriminant, "wal", "pkh(@0)", 1, [32]byte{})
	raw = raw[:len(raw)-5]
	_, err := Decode(buffer.New(raw))
	perr, ok := err.(*Error)
	if !ok || perr.Kind != ErrInputExhausted {
		t.Fatalf("Decode() error = %v; want ErrInputExhausted", err)
	}
}
