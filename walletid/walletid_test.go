// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package walletid

import (
	"encoding/hex"
	"testing"

	"github.com/decred/dcrd/wire"
	"github.com/minio/sha256-simd"

	"github.com/EXCCoin/walletpolicy/walletheader"
)

// referenceCompute recomputes the digest by hand, independently of
// Compute's streaming writes, as a cross-check on field order.
func referenceCompute(t *testing.T, h *walletheader.Header) [32]byte {
	t.Helper()
	digest := sha256.New()
	digest.Write([]byte{h.Type})
	digest.Write([]byte{byte(len(h.Name))})
	digest.Write(h.Name)
	if err := wire.WriteVarInt(digest, 0, uint64(len(h.PolicyBody))); err != nil {
		t.Fatalf("WriteVarInt(policy body len): %v", err)
	}
	digest.Write(h.PolicyBody)
	if err := wire.WriteVarInt(digest, 0, h.NKeys); err != nil {
		t.Fatalf("WriteVarInt(n keys): %v", err)
	}
	digest.Write(h.KeysMerkleRoot[:])
	var out [32]byte
	copy(out[:], digest.Sum(nil))
	return out
}

func TestComputeMatchesFieldOrder(t *testing.T) {
	h := &walletheader.Header{
		Type:       walletheader.PolicyMapDiscriminant,
		Name:       []byte("wal"),
		PolicyBody: []byte("pkh(@0)"),
		NKeys:      1,
	}
	got, err := Compute(h)
	if err != nil {
		t.Fatalf("Compute() returned error: %v", err)
	}
	want := referenceCompute(t, h)
	if got != want {
		t.Fatalf("Compute() = %s; want %s", hex.EncodeToString(got[:]), hex.EncodeToString(want[:]))
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	h := &walletheader.Header{
		Type:       walletheader.PolicyMapDiscriminant,
		Name:       []byte("abc"),
		PolicyBody: []byte("wsh(multi(1,@0))"),
		NKeys:      1,
	}
	first, err := Compute(h)
	if err != nil {
		t.Fatalf("Compute() returned error: %v", err)
	}
	second, err := Compute(h)
	if err != nil {
		t.Fatalf("Compute() returned error: %v", err)
	}
	if first != second {
		t.Fatalf("Compute() is not deterministic: %x != %x", first, second)
	}
}
