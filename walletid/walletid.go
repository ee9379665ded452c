// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package walletid computes the canonical wallet policy identifier: a
// single SHA-256 digest over the fixed-order fields of a wallet header,
// the same framing used to decode it.
package walletid

import (
	"github.com/decred/dcrd/wire"
	"github.com/minio/sha256-simd"

	"github.com/EXCCoin/walletpolicy/walletheader"
)

// Size is the length in bytes of a wallet policy ID.
const Size = 32

// Compute returns the wallet policy ID of h: a SHA-256 digest streamed
// over the type byte, the length-prefixed name, the varint-prefixed
// policy body, the varint key count, and the keys Merkle root, in that
// order. This mirrors the wire layout Decode reads the header back from.
func Compute(h *walletheader.Header) ([Size]byte, error) {
	digest := sha256.New()

	if _, err := digest.Write([]byte{h.Type}); err != nil {
		return [Size]byte{}, err
	}
	if _, err := digest.Write([]byte{byte(len(h.Name))}); err != nil {
		return [Size]byte{}, err
	}
	if _, err := digest.Write(h.Name); err != nil {
		return [Size]byte{}, err
	}

	if err := wire.WriteVarInt(digest, 0, uint64(len(h.PolicyBody))); err != nil {
		return [Size]byte{}, err
	}
	if _, err := digest.Write(h.PolicyBody); err != nil {
		return [Size]byte{}, err
	}

	if err := wire.WriteVarInt(digest, 0, h.NKeys); err != nil {
		return [Size]byte{}, err
	}

	if _, err := digest.Write(h.KeysMerkleRoot[:]); err != nil {
		return [Size]byte{}, err
	}

	var out [Size]byte
	copy(out[:], digest.Sum(nil))
	return out, nil
}
