// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package keyinfo parses a single key-info entry: an optional key
// origin block, an extended public key, and an optional trailing
// wildcard marker. The key-info Merkle tree the wallet header commits
// to is built from these entries one at a time, outside this package.
package keyinfo

import (
	"fmt"

	"github.com/EXCCoin/walletpolicy/buffer"
	"github.com/EXCCoin/walletpolicy/lexer"
)

// MaxDerivationSteps bounds the number of BIP32 path elements inside a
// key origin block.
const MaxDerivationSteps = 8

// Extended public keys in this grammar are always 111 or 112 printable
// characters; a full base58check decode is a non-goal here (spec.md §9
// Open Question 3).
const (
	minExtPubKeyLength = 111
	maxExtPubKeyLength = 112
)

// ErrKind classifies why key-info parsing failed.
type ErrKind int

// Error kinds, a subset of the taxonomy in spec.md §7 relevant to this
// grammar.
const (
	ErrInputExhausted ErrKind = iota
	ErrInvalidByte
	ErrInvalidHex
	ErrOutOfRange
	ErrTrailingInput
)

// Error reports a key-info parse failure.
type Error struct {
	Kind ErrKind
	Msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("keyinfo: %s", e.Msg) }

func fail(kind ErrKind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

// KeyInfo is one parsed entry: an optional origin, its extended public
// key text, and whether a trailing "/**" wildcard was present.
type KeyInfo struct {
	HasOrigin   bool
	Fingerprint [4]byte
	Derivation  []uint32
	ExtPubKey   string
	HasWildcard bool
}

// Parse reads one key-info entry from c, per the grammar in spec.md
// §4.5:
//
//	keyinfo := origin? xpub wildcard?
//	origin  := '[' HEX8 ('/' step)* ']'
//	step    := decimal ("'")?
//	xpub    := alphanumeric{111,112}
//	wildcard:= '/**'
func Parse(c *buffer.Cursor) (*KeyInfo, error) {
	var info KeyInfo

	if lexer.ConsumeByte(c, '[') {
		info.HasOrigin = true

		fp, ok := lexer.ReadHexHash(c, 4)
		if !ok {
			return nil, fail(ErrInvalidHex, "invalid fingerprint")
		}
		copy(info.Fingerprint[:], fp)

		for lexer.ConsumeByte(c, '/') {
			if len(info.Derivation) >= MaxDerivationSteps {
				return nil, fail(ErrOutOfRange, "too many derivation steps")
			}
			step, ok := lexer.DerivationStep(c)
			if !ok {
				return nil, fail(ErrInvalidByte, "invalid derivation step")
			}
			info.Derivation = append(info.Derivation, step)
		}

		if !lexer.ConsumeByte(c, ']') {
			return nil, fail(ErrInvalidByte, "expected ']'")
		}
	}

	xpub := make([]byte, 0, maxExtPubKeyLength)
	for len(xpub) < maxExtPubKeyLength {
		b, ok := c.Peek()
		if !ok || !lexer.IsAlphanumeric(b) {
			break
		}
		xpub = append(xpub, b)
		c.SeekRelative(1)
	}
	if len(xpub) < minExtPubKeyLength || len(xpub) > maxExtPubKeyLength {
		return nil, fail(ErrOutOfRange, "invalid extended public key length")
	}
	info.ExtPubKey = string(xpub)

	if !c.CanRead(1) {
		return &info, nil
	}

	info.HasWildcard = true
	tail, ok := c.ReadBytes(3)
	if !ok || c.CanRead(1) || tail[0] != '/' || tail[1] != '*' || tail[2] != '*' {
		return nil, fail(ErrTrailingInput, "expected trailing '/**' wildcard")
	}

	log.Tracef("parsed key info: origin=%v wildcard=%v", info.HasOrigin, info.HasWildcard)
	return &info, nil
}
