// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package policy

import "github.com/EXCCoin/walletpolicy/arena"

// ScriptShape classifies a parsed policy tree as one of the standard
// wallet shapes, or Unknown if it does not match any of them. This is a
// read-only classification over an already-validated tree: it adds no
// parsing or type-calculus behavior of its own.
type ScriptShape int

// Recognized shapes, per the singlesig/multisig list documented in the
// upstream policy grammar's header comment.
const (
	ShapeUnknown ScriptShape = iota
	ShapeP2PKH
	ShapeP2WPKH
	ShapeP2SH_P2WPKH
	ShapeP2TR
	ShapeP2SH_Multi
	ShapeP2WSH_Multi
	ShapeP2SH_P2WSH_Multi
)

func (s ScriptShape) String() string {
	switch s {
	case ShapeP2PKH:
		return "pkh"
	case ShapeP2WPKH:
		return "wpkh"
	case ShapeP2SH_P2WPKH:
		return "sh(wpkh)"
	case ShapeP2TR:
		return "tr"
	case ShapeP2SH_Multi:
		return "sh(multi)"
	case ShapeP2WSH_Multi:
		return "wsh(multi)"
	case ShapeP2SH_P2WSH_Multi:
		return "sh(wsh(multi))"
	default:
		return "unknown"
	}
}

func isMultiKind(k Kind) bool { return k == KindMulti || k == KindSortedMulti }

// Shape walks the spine of root (the outermost sh/wsh nesting only, never
// descending into miniscript fragments) and reports which of the
// standard wallet shapes it matches.
func Shape(a *arena.Arena[Node], root Ref) ScriptShape {
	node := a.Get(root)
	switch node.Kind {
	case KindPKH:
		return ShapeP2PKH
	case KindWPKH:
		return ShapeP2WPKH
	case KindTR:
		return ShapeP2TR
	case KindSH:
		child := a.Get(node.Child)
		switch {
		case child.Kind == KindWPKH:
			return ShapeP2SH_P2WPKH
		case isMultiKind(child.Kind):
			return ShapeP2SH_Multi
		case child.Kind == KindWSH:
			grandchild := a.Get(child.Child)
			if isMultiKind(grandchild.Kind) {
				return ShapeP2SH_P2WSH_Multi
			}
		}
	case KindWSH:
		child := a.Get(node.Child)
		if isMultiKind(child.Kind) {
			return ShapeP2WSH_Multi
		}
	}
	return ShapeUnknown
}
