// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package lexer implements the character classes, token reader, and
// keyword table shared by the key-info and policy-body parsers. None of it is specific to any one grammar production; it is
// the common charset and numeric-literal layer those parsers sit on.
package lexer

import (
	"github.com/decred/dcrd/hdkeychain/v3"

	"github.com/EXCCoin/walletpolicy/buffer"
)

// MaxTokenLength is the length of the longest known keyword,
// "sortedmulti".
const MaxTokenLength = len("sortedmulti")

// TokenKind identifies a policy-body keyword.
type TokenKind int

// Token kinds, one per grammar production in spec.md §4.6.
const (
	TokenInvalid TokenKind = iota
	TokenSH
	TokenWSH
	TokenPKH
	TokenWPKH
	TokenMulti
	TokenSortedMulti
	TokenTR
	Token0
	Token1
	TokenPK
	TokenPK_K
	TokenPK_H
	TokenOlder
	TokenAfter
	TokenSHA256
	TokenHash256
	TokenRipemd160
	TokenHash160
	TokenAndOr
	TokenAndV
	TokenAndB
	TokenAndN
	TokenOrB
	TokenOrC
	TokenOrD
	TokenOrI
	TokenThresh
)

var knownTokens = [...]struct {
	name string
	kind TokenKind
}{
	{"sh", TokenSH},
	{"wsh", TokenWSH},
	{"pkh", TokenPKH},
	{"wpkh", TokenWPKH},
	{"multi", TokenMulti},
	{"sortedmulti", TokenSortedMulti},
	{"tr", TokenTR},

	// miniscript tokens (except wrappers, which are parsed separately)
	{"0", Token0},
	{"1", Token1},
	{"pk", TokenPK},
	{"pk_k", TokenPK_K},
	{"pk_h", TokenPK_H},
	{"older", TokenOlder},
	{"after", TokenAfter},
	{"sha256", TokenSHA256},
	{"hash256", TokenHash256},
	{"ripemd160", TokenRipemd160},
	{"hash160", TokenHash160},
	{"andor", TokenAndOr},
	{"and_v", TokenAndV},
	{"and_b", TokenAndB},
	{"and_n", TokenAndN},
	{"or_b", TokenOrB},
	{"or_c", TokenOrC},
	{"or_d", TokenOrD},
	{"or_i", TokenOrI},
	{"thresh", TokenThresh},
}

// IsDigit reports whether c is an ASCII decimal digit.
func IsDigit(c byte) bool { return c >= '0' && c <= '9' }

// IsAlpha reports whether c is an ASCII letter.
func IsAlpha(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

// IsAlphanumeric reports whether c is an ASCII letter or digit.
func IsAlphanumeric(c byte) bool { return IsAlpha(c) || IsDigit(c) }

// IsLowercaseHex reports whether c is a lowercase hex digit. Uppercase
// hex is rejected everywhere in this grammar; normalization is a
// non-goal (spec.md §1).
func IsLowercaseHex(c byte) bool { return IsDigit(c) || (c >= 'a' && c <= 'f') }

func hexVal(c byte) byte {
	if IsDigit(c) {
		return c - '0'
	}
	return c - 'a' + 10
}

// validWrapperLetter mirrors is_valid_miniscript_wrapper in the original
// source: only these ten letters may appear in a wrapper run.
var validWrapperLetter = [26]bool{
	'a' - 'a': true,
	'c' - 'a': true,
	'd' - 'a': true,
	'j' - 'a': true,
	'l' - 'a': true,
	'n' - 'a': true,
	's' - 'a': true,
	't' - 'a': true,
	'u' - 'a': true,
	'v' - 'a': true,
}

// IsValidWrapperLetter reports whether c is one of the ten single-letter
// miniscript wrappers (a, c, d, j, l, n, s, t, u, v).
func IsValidWrapperLetter(c byte) bool {
	if c < 'a' || c > 'z' {
		return false
	}
	return validWrapperLetter[c-'a']
}

// ReadToken consumes a maximal run of [A-Za-z0-9_] characters, up to
// MaxTokenLength bytes, and returns it. A token longer than
// MaxTokenLength still has its excess characters left in the cursor, so
// its truncated prefix either fails the keyword lookup below or leaves
// the caller facing those excess characters instead of the '(' it
// expects.
func ReadToken(c *buffer.Cursor) string {
	buf := make([]byte, 0, MaxTokenLength)
	for len(buf) < MaxTokenLength {
		b, ok := c.Peek()
		if !ok || !(IsAlphanumeric(b) || b == '_') {
			break
		}
		buf = append(buf, b)
		c.SeekRelative(1)
	}
	return string(buf)
}

// LookupKeyword returns the TokenKind for word, or TokenInvalid if word
// is not one of the known keywords.
func LookupKeyword(word string) TokenKind {
	for _, t := range knownTokens {
		if t.name == word {
			return t.kind
		}
	}
	return TokenInvalid
}

// ParseToken reads the next token from c and resolves it against the
// keyword table.
func ParseToken(c *buffer.Cursor) TokenKind {
	return LookupKeyword(ReadToken(c))
}

// ParseUnsignedDecimal reads an unsigned decimal literal with no leading
// zeros (a bare "0" is valid; "01" is not) and no overflow of uint64.
// It requires at least one digit.
func ParseUnsignedDecimal(c *buffer.Cursor) (uint64, bool) {
	var result uint64
	digits := 0
	for {
		b, ok := c.Peek()
		if !ok || !IsDigit(b) {
			break
		}
		digits++
		digit := uint64(b - '0')

		if digits == 2 && result == 0 {
			return 0, false // leading zero followed by another digit
		}
		if result > (^uint64(0)-digit)/10 {
			return 0, false // overflow
		}
		result = 10*result + digit
		c.SeekRelative(1)
	}
	if digits == 0 {
		return 0, false
	}
	return result, true
}

// ReadHexHash reads exactly 2*n lowercase hex characters and decodes them
// into n bytes.
func ReadHexHash(c *buffer.Cursor, n int) ([]byte, bool) {
	if !c.CanRead(2 * n) {
		return nil, false
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		c1, _ := c.ReadU8()
		c2, _ := c.ReadU8()
		if !IsLowercaseHex(c1) || !IsLowercaseHex(c2) {
			return nil, false
		}
		out[i] = hexVal(c1)<<4 | hexVal(c2)
	}
	return out, true
}

// ConsumeByte consumes the next byte if and only if it equals expected.
func ConsumeByte(c *buffer.Cursor, expected byte) bool {
	b, ok := c.Peek()
	if !ok || b != expected {
		return false
	}
	c.SeekRelative(1)
	return true
}

// DerivationStep reads a single BIP32 path element: an unsigned decimal
// below the hardened-index threshold, optionally followed by "'" to mark
// it hardened. The "h" hardened suffix used by some descriptor dialects
// is deliberately not accepted (spec.md §4.3).
func DerivationStep(c *buffer.Cursor) (uint32, bool) {
	step, ok := ParseUnsignedDecimal(c)
	if !ok || step >= uint64(hdkeychain.HardenedKeyStart) {
		return 0, false
	}
	out := uint32(step)
	if ConsumeByte(c, '\'') {
		out |= uint32(hdkeychain.HardenedKeyStart)
	}
	return out, true
}
