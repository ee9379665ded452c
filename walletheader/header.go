// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package walletheader decodes the binary wallet header envelope: a
// fixed discriminant byte, a length-prefixed name, a varint-prefixed
// policy body, a key count, and a 32-byte key-info Merkle root. It does
// not parse the policy body itself; that is the policy package's job.
package walletheader

import (
	"fmt"

	"github.com/EXCCoin/walletpolicy/buffer"
)

// PolicyMapDiscriminant is the required value of the header's leading
// type byte.
const PolicyMapDiscriminant = 2

// Field size limits from spec.md §3.
const (
	MaxNameLength       = 64
	MaxPolicyBodyLength = 74
	MaxKeys             = 252
	MerkleRootSize      = 32
)

// ErrKind classifies why header decoding failed, mirroring spec.md §7.
type ErrKind int

// Error kinds returned by Decode. Error.Stage names the field of the
// wire layout that failed.
const (
	ErrInputExhausted ErrKind = iota
	ErrHeaderMismatch
	ErrOutOfRange
	ErrTrailingInput
)

// Error reports a header-decode failure, identifying the stage that
// rejected the input.
type Error struct {
	Kind  ErrKind
	Stage string
}

func (e *Error) Error() string {
	return fmt.Sprintf("walletheader: %s", e.Stage)
}

func fail(kind ErrKind, stage string) error {
	return &Error{Kind: kind, Stage: stage}
}

// Header holds the decoded fields of a wallet header. PolicyBody is the
// raw, not-yet-parsed policy text.
type Header struct {
	Type           byte
	Name           []byte
	PolicyBody     []byte
	NKeys          uint64
	KeysMerkleRoot [MerkleRootSize]byte
}

// Decode reads a Header from c in the fixed field order of spec.md §6.
// No trailing bytes are permitted after the Merkle root.
func Decode(c *buffer.Cursor) (*Header, error) {
	var h Header

	typ, ok := c.ReadU8()
	if !ok {
		return nil, fail(ErrInputExhausted, "reading type byte")
	}
	h.Type = typ
	if h.Type != PolicyMapDiscriminant {
		return nil, fail(ErrHeaderMismatch, "unexpected wallet type discriminant")
	}

	nameLen, ok := c.ReadU8()
	if !ok {
		return nil, fail(ErrInputExhausted, "reading name length")
	}
	if nameLen < 1 || int(nameLen) > MaxNameLength {
		return nil, fail(ErrOutOfRange, "name length out of range")
	}
	name, ok := c.ReadBytes(int(nameLen))
	if !ok {
		return nil, fail(ErrInputExhausted, "reading name")
	}
	h.Name = append([]byte(nil), name...)

	policyLen, ok := c.ReadVarint()
	if !ok {
		return nil, fail(ErrInputExhausted, "reading policy body length")
	}
	if policyLen > MaxPolicyBodyLength {
		return nil, fail(ErrOutOfRange, "policy body length out of range")
	}
	policyBody, ok := c.ReadBytes(int(policyLen))
	if !ok {
		return nil, fail(ErrInputExhausted, "reading policy body")
	}
	h.PolicyBody = append([]byte(nil), policyBody...)

	nKeys, ok := c.ReadVarint()
	if !ok {
		return nil, fail(ErrInputExhausted, "reading key count")
	}
	if nKeys > MaxKeys {
		return nil, fail(ErrOutOfRange, "key count out of range")
	}
	h.NKeys = nKeys

	root, ok := c.ReadBytes(MerkleRootSize)
	if !ok {
		return nil, fail(ErrInputExhausted, "reading keys Merkle root")
	}
	copy(h.KeysMerkleRoot[:], root)

	if c.CanRead(1) {
		return nil, fail(ErrTrailingInput, "trailing bytes after header")
	}

	log.Tracef("decoded header: name=%q policy_body_len=%d n_keys=%d", h.Name, len(h.PolicyBody), h.NKeys)
	return &h, nil
}
