// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package policy implements the recursive-descent parser and Miniscript
// type calculator for the wallet policy body grammar (spec.md §4.6,
// §4.7). Nodes live in a caller-supplied arena.Arena[Node] and reference
// each other through arena.Ref rather than pointers, per Design Notes §9.
package policy

import "github.com/EXCCoin/walletpolicy/arena"

// Ref is the arena reference type used throughout the policy tree.
type Ref = arena.Ref

// Kind identifies the production a Node was built from.
type Kind uint8

// Node kinds, one per production in spec.md §3's node-kind table.
const (
	KindInvalid Kind = iota
	KindTrue
	KindFalse
	KindPK
	KindPKH
	KindPK_K
	KindPK_H
	KindWPKH
	KindTR
	KindSH
	KindWSH

	// Single-child wrappers.
	KindA
	KindS
	KindC
	KindT
	KindD
	KindV
	KindJ
	KindN
	KindL
	KindU

	KindAndOr
	KindAndV
	KindAndB
	KindAndN
	KindOrB
	KindOrC
	KindOrD
	KindOrI
	KindThresh
	KindMulti
	KindSortedMulti
	KindSHA256
	KindHash256
	KindRipemd160
	KindHash160
	KindOlder
	KindAfter
)

// IsWrapper reports whether k is one of the ten single-letter wrappers.
func (k Kind) IsWrapper() bool {
	switch k {
	case KindA, KindS, KindC, KindT, KindD, KindV, KindJ, KindN, KindL, KindU:
		return true
	}
	return false
}

// MiniscriptType is one of the four Miniscript type letters (spec.md
// GLOSSARY).
type MiniscriptType uint8

// Miniscript types, matching the 2-bit encoding in spec.md §3.
const (
	TypeB MiniscriptType = 0
	TypeV MiniscriptType = 1
	TypeK MiniscriptType = 2
	TypeW MiniscriptType = 3
)

func (t MiniscriptType) String() string {
	switch t {
	case TypeB:
		return "B"
	case TypeV:
		return "V"
	case TypeK:
		return "K"
	case TypeW:
		return "W"
	default:
		return "?"
	}
}

// Flags carries a node's Miniscript type and its five modifier bits
// (spec.md GLOSSARY). IsMiniscript is false for sh/wsh/wpkh/tr/
// sortedmulti, which sit outside the Miniscript type system entirely.
type Flags struct {
	IsMiniscript bool
	Type         MiniscriptType
	Z, O, N, D, U bool
}

// Node is one entry in a policy arena.Arena. Only the fields relevant to
// Kind are populated; this mirrors the original C implementation's
// tagged-union-with-discriminant layout (Design Notes §9), translated to
// a flat struct so every node stays inside one arena without a Go
// interface's extra indirection. THRESH child lists and MULTI/SORTEDMULTI
// key-index lists are ordinary Go slices allocated outside the arena.
type Node struct {
	Kind  Kind
	Flags Flags

	// PK, PKH, PK_K, PK_H, WPKH, TR.
	KeyIndex uint32

	// SH, WSH, and the ten single-letter wrappers. A zero Ref is a valid
	// reference to the arena's first slot, so HasChild disambiguates
	// "no child" from "child is slot 0".
	Child    Ref
	HasChild bool

	// ANDOR uses all three slots; AND_V/AND_B/AND_N/OR_B/OR_C/OR_D/OR_I
	// use only the first two. NumChildren records how many are live.
	Children    [3]Ref
	NumChildren int

	// THRESH.
	ThreshK        uint32
	ThreshChildren []Ref

	// MULTI, SORTEDMULTI.
	MultiK     uint32
	KeyIndexes []uint32

	// SHA256, HASH256 (32 bytes) or RIPEMD160, HASH160 (20 bytes).
	Hash [32]byte

	// OLDER, AFTER.
	Num uint32
}
