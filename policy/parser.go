// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package policy

import (
	"github.com/EXCCoin/walletpolicy/arena"
	"github.com/EXCCoin/walletpolicy/buffer"
	"github.com/EXCCoin/walletpolicy/lexer"
)

// MaxCosigners bounds the number of keys in a multi/sortedmulti (spec.md
// §4.4).
const MaxCosigners = 16

// context tracks which sh/wsh constructs enclose the script currently
// being parsed through an unbroken chain of sh/wsh parents: sh(...) adds
// withinSH and wsh(...) adds withinWSH to the context it received, and
// every other production resets it for its children. It threads through
// ParseScript as a plain value, never as shared mutable state, matching
// the context_flags parameter of the original C parser.
type context uint8

const (
	withinSH context = 1 << iota
	withinWSH
)

// Parser turns a policy body's token stream into a tree of Node values
// inside an arena.Arena. A Parser is single-use: construct one per
// policy body being parsed.
type Parser struct {
	arena *arena.Arena[Node]
}

// NewParser returns a Parser that allocates nodes from a.
func NewParser(a *arena.Arena[Node]) *Parser {
	return &Parser{arena: a}
}

func (p *Parser) alloc(pos int) (Ref, *Node, error) {
	ref, err := p.arena.Alloc()
	if err != nil {
		return 0, nil, fail(pos, ErrOutOfMemory, "policy tree exceeds arena capacity")
	}
	return ref, p.arena.Get(ref), nil
}

func (p *Parser) flagsOf(ref Ref) Flags { return p.arena.Get(ref).Flags }

// ParsePolicy parses an entire policy body: the root SCRIPT production,
// followed by a check that no trailing bytes remain.
func (p *Parser) ParsePolicy(c *buffer.Cursor) (Ref, error) {
	root, err := p.ParseScript(c, 0, 0)
	if err != nil {
		return 0, err
	}
	if c.CanRead(1) {
		return 0, fail(c.Pos(), ErrTrailingInput, "input buffer too long")
	}
	return root, nil
}

// ParseScript parses one SCRIPT production: an optional wrapper prefix
// followed by a single token body, per spec.md §4.6. depth counts
// recursive descent levels from the policy root; ctx records the sh(...)
// and wsh(...) ancestors reached through an unbroken sh/wsh chain.
func (p *Parser) ParseScript(c *buffer.Cursor, depth int, ctx context) (Ref, error) {
	nWrappers := 0
	for {
		ch, ok := c.PeekAt(nWrappers)
		if !ok || !lexer.IsValidWrapperLetter(ch) {
			break
		}
		nWrappers++
	}
	sep, hasSep := c.PeekAt(nWrappers)
	isWrapped := hasSep && sep == ':'
	if !isWrapped {
		nWrappers = 0
	}

	startPos := c.Pos()
	var wrappers []Ref
	if isWrapped {
		log.Tracef("wrapper run of length %d at byte %d", nWrappers, startPos)
		wrappers = make([]Ref, nWrappers)
		for i := 0; i < nWrappers; i++ {
			letter, _ := c.ReadU8()
			kind, ok := wrapperKind(letter)
			if !ok {
				return 0, fail(startPos, ErrInvalidByte, "unexpected wrapper letter")
			}
			ref, node, err := p.alloc(startPos)
			if err != nil {
				return 0, err
			}
			node.Kind = kind
			wrappers[i] = ref
		}
		c.SeekRelative(1) // skip ':'
	}

	body, err := p.parseBody(c, depth, ctx)
	if err != nil {
		return 0, err
	}

	if depth == 0 && c.CanRead(1) {
		return 0, fail(c.Pos(), ErrTrailingInput, "input buffer too long")
	}

	if len(wrappers) == 0 {
		return body, nil
	}

	for i := nWrappers - 1; i >= 0; i-- {
		var childRef Ref
		if i == nWrappers-1 {
			childRef = body
		} else {
			childRef = wrappers[i+1]
		}
		p.arena.Get(wrappers[i]).Child = childRef
		p.arena.Get(wrappers[i]).HasChild = true

		x := p.flagsOf(childRef)
		if !x.IsMiniscript {
			return 0, fail(startPos, ErrTypeError, "wrappers can only be applied to miniscript")
		}
		flags, err := wrapperFlags(p.arena.Get(wrappers[i]).Kind, x)
		if err != nil {
			return 0, &Error{Kind: ErrTypeError, Pos: startPos, Msg: err.Error()}
		}
		p.arena.Get(wrappers[i]).Flags = flags
	}

	return wrappers[0], nil
}

func wrapperKind(letter byte) (Kind, bool) {
	switch letter {
	case 'a':
		return KindA, true
	case 's':
		return KindS, true
	case 'c':
		return KindC, true
	case 't':
		return KindT, true
	case 'd':
		return KindD, true
	case 'v':
		return KindV, true
	case 'j':
		return KindJ, true
	case 'n':
		return KindN, true
	case 'l':
		return KindL, true
	case 'u':
		return KindU, true
	default:
		return KindInvalid, false
	}
}

// parseBody parses the token and its argument list, not including any
// wrapper prefix (already consumed by the caller).
func (p *Parser) parseBody(c *buffer.Cursor, depth int, ctx context) (Ref, error) {
	pos := c.Pos()
	token := lexer.ParseToken(c)
	log.Tracef("dispatching token %d at byte %d (depth %d)", token, pos, depth)

	hasParens := token != lexer.Token0 && token != lexer.Token1
	if hasParens {
		if !lexer.ConsumeByte(c, '(') {
			return 0, fail(c.Pos(), ErrInvalidByte, "expected '('")
		}
	}

	var (
		ref Ref
		err error
	)
	switch token {
	case lexer.Token0, lexer.Token1:
		ref, err = p.parseConstant(pos, token)
	case lexer.TokenSH, lexer.TokenWSH:
		ref, err = p.parseShWsh(c, pos, depth, ctx, token)
	case lexer.TokenSHA256, lexer.TokenHash256:
		ref, err = p.parseHash(c, pos, token, 32)
	case lexer.TokenRipemd160, lexer.TokenHash160:
		ref, err = p.parseHash(c, pos, token, 20)
	case lexer.TokenAndOr:
		ref, err = p.parseAndOr(c, pos, depth)
	case lexer.TokenAndV:
		ref, err = p.parseAndV(c, pos, depth)
	case lexer.TokenAndB:
		ref, err = p.parseAndB(c, pos, depth)
	case lexer.TokenAndN:
		ref, err = p.parseAndN(c, pos, depth)
	case lexer.TokenOrB:
		ref, err = p.parseOrB(c, pos, depth)
	case lexer.TokenOrC:
		ref, err = p.parseOrC(c, pos, depth)
	case lexer.TokenOrD:
		ref, err = p.parseOrD(c, pos, depth)
	case lexer.TokenOrI:
		ref, err = p.parseOrI(c, pos, depth)
	case lexer.TokenThresh:
		ref, err = p.parseThresh(c, pos, depth)
	case lexer.TokenPK, lexer.TokenPKH, lexer.TokenPK_K, lexer.TokenPK_H, lexer.TokenWPKH:
		ref, err = p.parseKey(c, pos, depth, ctx, token)
	case lexer.TokenTR:
		ref, err = p.parseTR(c, pos, depth)
	case lexer.TokenOlder, lexer.TokenAfter:
		ref, err = p.parseTimelock(c, pos, token)
	case lexer.TokenMulti, lexer.TokenSortedMulti:
		ref, err = p.parseMulti(c, pos, ctx, token)
	default:
		return 0, fail(pos, ErrInvalidKeyword, "unknown token")
	}
	if err != nil {
		return 0, err
	}

	if hasParens {
		if !lexer.ConsumeByte(c, ')') {
			return 0, fail(c.Pos(), ErrInvalidByte, "expected ')'")
		}
	}

	return ref, nil
}

// parseChildScripts parses n comma-separated SCRIPT children, each at
// depth+1 and with no inherited context (only sh/wsh propagate context to
// their single direct child).
func (p *Parser) parseChildScripts(c *buffer.Cursor, depth int, n int) ([]Ref, error) {
	children := make([]Ref, n)
	for i := 0; i < n; i++ {
		ref, err := p.ParseScript(c, depth+1, 0)
		if err != nil {
			return nil, err
		}
		children[i] = ref
		if i < n-1 && !lexer.ConsumeByte(c, ',') {
			return nil, fail(c.Pos(), ErrInvalidByte, "expected ','")
		}
	}
	return children, nil
}

func (p *Parser) parseKeyIndex(c *buffer.Cursor) (uint32, error) {
	if !lexer.ConsumeByte(c, '@') {
		return 0, fail(c.Pos(), ErrInvalidByte, "expected '@'")
	}
	v, ok := lexer.ParseUnsignedDecimal(c)
	if !ok {
		return 0, fail(c.Pos(), ErrInvalidByte, "invalid key index")
	}
	if v > 0xffffffff {
		return 0, fail(c.Pos(), ErrOutOfRange, "key index out of range")
	}
	return uint32(v), nil
}

func (p *Parser) parseConstant(pos int, token lexer.TokenKind) (Ref, error) {
	ref, node, err := p.alloc(pos)
	if err != nil {
		return 0, err
	}
	if token == lexer.Token0 {
		node.Kind = KindFalse
		node.Flags = Flags{IsMiniscript: true, Type: TypeB, Z: true, D: true, U: true}
	} else {
		node.Kind = KindTrue
		node.Flags = Flags{IsMiniscript: true, Type: TypeB, Z: true, U: true}
	}
	return ref, nil
}

func (p *Parser) parseShWsh(c *buffer.Cursor, pos, depth int, ctx context, token lexer.TokenKind) (Ref, error) {
	if token == lexer.TokenSH {
		if depth != 0 {
			return 0, fail(pos, ErrContextError, "sh can only be a top-level function")
		}
	} else {
		if depth != 0 && ctx != withinSH {
			return 0, fail(pos, ErrContextError, "wsh can only be top-level or directly inside sh")
		}
	}

	ref, node, err := p.alloc(pos)
	if err != nil {
		return 0, err
	}
	if token == lexer.TokenSH {
		node.Kind = KindSH
	} else {
		node.Kind = KindWSH
	}
	node.Flags = Flags{IsMiniscript: false}

	innerCtx := ctx | withinSH
	if token == lexer.TokenWSH {
		innerCtx = ctx | withinWSH
	}
	child, err := p.ParseScript(c, depth+1, innerCtx)
	if err != nil {
		return 0, err
	}
	node = p.arena.Get(ref)
	node.Child = child
	node.HasChild = true
	return ref, nil
}

func (p *Parser) parseHash(c *buffer.Cursor, pos int, token lexer.TokenKind, n int) (Ref, error) {
	h, ok := lexer.ReadHexHash(c, n)
	if !ok {
		return 0, fail(c.Pos(), ErrInvalidHex, "failed to parse hash image")
	}
	ref, node, err := p.alloc(pos)
	if err != nil {
		return 0, err
	}
	copy(node.Hash[:], h)
	if token == lexer.TokenSHA256 {
		node.Kind = KindSHA256
	} else if token == lexer.TokenHash256 {
		node.Kind = KindHash256
	} else if token == lexer.TokenRipemd160 {
		node.Kind = KindRipemd160
	} else {
		node.Kind = KindHash160
	}
	node.Flags = Flags{IsMiniscript: true, Type: TypeB, Z: true, O: true, D: true, U: true}
	return ref, nil
}

func (p *Parser) parseAndOr(c *buffer.Cursor, pos, depth int) (Ref, error) {
	children, err := p.parseChildScripts(c, depth, 3)
	if err != nil {
		return 0, err
	}
	for _, ch := range children {
		if !p.flagsOf(ch).IsMiniscript {
			return 0, fail(pos, ErrTypeError, "children of andor must be miniscript")
		}
	}
	x, y, z := p.flagsOf(children[0]), p.flagsOf(children[1]), p.flagsOf(children[2])
	flags, err := andorFlags(x, y, z)
	if err != nil {
		return 0, fail(pos, ErrTypeError, err.Error())
	}
	ref, node, allocErr := p.alloc(pos)
	if allocErr != nil {
		return 0, allocErr
	}
	node.Kind = KindAndOr
	node.Children = [3]Ref{children[0], children[1], children[2]}
	node.NumChildren = 3
	node.Flags = flags
	return ref, nil
}

func (p *Parser) twoChild(c *buffer.Cursor, pos, depth int, kind Kind, compose func(x, y Flags) (Flags, error)) (Ref, error) {
	children, err := p.parseChildScripts(c, depth, 2)
	if err != nil {
		return 0, err
	}
	if !p.flagsOf(children[0]).IsMiniscript || !p.flagsOf(children[1]).IsMiniscript {
		return 0, fail(pos, ErrTypeError, "children must be miniscript")
	}
	flags, err := compose(p.flagsOf(children[0]), p.flagsOf(children[1]))
	if err != nil {
		return 0, fail(pos, ErrTypeError, err.Error())
	}
	ref, node, allocErr := p.alloc(pos)
	if allocErr != nil {
		return 0, allocErr
	}
	node.Kind = kind
	node.Children[0], node.Children[1] = children[0], children[1]
	node.NumChildren = 2
	node.Flags = flags
	return ref, nil
}

func (p *Parser) parseAndV(c *buffer.Cursor, pos, depth int) (Ref, error) {
	return p.twoChild(c, pos, depth, KindAndV, andVFlags)
}

func (p *Parser) parseAndB(c *buffer.Cursor, pos, depth int) (Ref, error) {
	return p.twoChild(c, pos, depth, KindAndB, andBFlags)
}

func (p *Parser) parseAndN(c *buffer.Cursor, pos, depth int) (Ref, error) {
	return p.twoChild(c, pos, depth, KindAndN, andNFlags)
}

func (p *Parser) parseOrB(c *buffer.Cursor, pos, depth int) (Ref, error) {
	return p.twoChild(c, pos, depth, KindOrB, orBFlags)
}

func (p *Parser) parseOrC(c *buffer.Cursor, pos, depth int) (Ref, error) {
	return p.twoChild(c, pos, depth, KindOrC, orCFlags)
}

func (p *Parser) parseOrD(c *buffer.Cursor, pos, depth int) (Ref, error) {
	return p.twoChild(c, pos, depth, KindOrD, orDFlags)
}

func (p *Parser) parseOrI(c *buffer.Cursor, pos, depth int) (Ref, error) {
	return p.twoChild(c, pos, depth, KindOrI, orIFlags)
}

func (p *Parser) parseThresh(c *buffer.Cursor, pos, depth int) (Ref, error) {
	k, ok := lexer.ParseUnsignedDecimal(c)
	if !ok {
		return 0, fail(c.Pos(), ErrInvalidByte, "error parsing threshold")
	}
	if !lexer.ConsumeByte(c, ',') {
		return 0, fail(c.Pos(), ErrInvalidByte, "expected a comma")
	}
	if k < 1 {
		return 0, fail(pos, ErrOutOfRange, "threshold must be at least 1")
	}

	var children []Ref
	var countZ, countO int
	for {
		childPos := c.Pos()
		child, err := p.ParseScript(c, depth+1, 0)
		if err != nil {
			return 0, err
		}
		cf := p.flagsOf(child)
		if !cf.IsMiniscript {
			return 0, fail(childPos, ErrTypeError, "children of thresh must be miniscript")
		}
		if len(children) == 0 {
			if cf.Type != TypeB {
				return 0, fail(childPos, ErrTypeError, "the first child of thresh must be of type B")
			}
		} else if cf.Type != TypeW {
			return 0, fail(childPos, ErrTypeError, "each child of thresh except the first must be of type W")
		}
		if !cf.D || !cf.U {
			return 0, fail(childPos, ErrTypeError, "each child of thresh must have properties d and u")
		}
		if cf.Z {
			countZ++
		}
		if cf.O {
			countO++
		}
		children = append(children, child)

		if lexer.ConsumeByte(c, ',') {
			continue
		}
		break
	}

	n := len(children)
	if k > uint64(n) {
		return 0, fail(pos, ErrOutOfRange, "threshold exceeds number of children")
	}

	ref, node, err := p.alloc(pos)
	if err != nil {
		return 0, err
	}
	node.Kind = KindThresh
	node.ThreshK = uint32(k)
	node.ThreshChildren = children
	node.Flags = Flags{
		IsMiniscript: true,
		Type:         TypeB,
		Z:            countZ == n,
		O:            countZ == n-1 && countO == 1,
	}
	return ref, nil
}

func (p *Parser) parseKey(c *buffer.Cursor, pos, depth int, ctx context, token lexer.TokenKind) (Ref, error) {
	if token == lexer.TokenWPKH {
		if depth > 0 && ctx != withinSH {
			return 0, fail(pos, ErrContextError, "wpkh can only be top-level or directly inside sh")
		}
	}
	keyIndex, err := p.parseKeyIndex(c)
	if err != nil {
		return 0, err
	}
	ref, node, allocErr := p.alloc(pos)
	if allocErr != nil {
		return 0, allocErr
	}
	node.KeyIndex = keyIndex
	switch token {
	case lexer.TokenWPKH:
		node.Kind = KindWPKH
		node.Flags = Flags{IsMiniscript: false}
	case lexer.TokenPK:
		node.Kind = KindPK
		node.Flags = Flags{IsMiniscript: true, Type: TypeB, O: true, N: true, D: true, U: true}
	case lexer.TokenPKH:
		node.Kind = KindPKH
		node.Flags = Flags{IsMiniscript: true, Type: TypeB, N: true, D: true, U: true}
	case lexer.TokenPK_K:
		node.Kind = KindPK_K
		node.Flags = Flags{IsMiniscript: true, Type: TypeK, O: true, N: true, D: true, U: true}
	case lexer.TokenPK_H:
		node.Kind = KindPK_H
		node.Flags = Flags{IsMiniscript: true, Type: TypeK, N: true, D: true, U: true}
	}
	return ref, nil
}

func (p *Parser) parseTR(c *buffer.Cursor, pos, depth int) (Ref, error) {
	if depth > 0 {
		return 0, fail(pos, ErrContextError, "tr can only be top-level")
	}
	keyIndex, err := p.parseKeyIndex(c)
	if err != nil {
		return 0, err
	}
	ref, node, allocErr := p.alloc(pos)
	if allocErr != nil {
		return 0, allocErr
	}
	node.Kind = KindTR
	node.KeyIndex = keyIndex
	node.Flags = Flags{IsMiniscript: false}
	return ref, nil
}

func (p *Parser) parseTimelock(c *buffer.Cursor, pos int, token lexer.TokenKind) (Ref, error) {
	n, ok := lexer.ParseUnsignedDecimal(c)
	if !ok {
		return 0, fail(c.Pos(), ErrInvalidByte, "error parsing number")
	}
	if n < 1 || n >= (1<<31) {
		return 0, fail(pos, ErrOutOfRange, "n must satisfy 1 <= n < 2^31 in older/after")
	}
	ref, node, err := p.alloc(pos)
	if err != nil {
		return 0, err
	}
	if token == lexer.TokenOlder {
		node.Kind = KindOlder
	} else {
		node.Kind = KindAfter
	}
	node.Num = uint32(n)
	node.Flags = Flags{IsMiniscript: true, Type: TypeB, Z: true}
	return ref, nil
}

func (p *Parser) parseMulti(c *buffer.Cursor, pos int, ctx context, token lexer.TokenKind) (Ref, error) {
	if token == lexer.TokenSortedMulti {
		if ctx&withinSH != 0 && ctx&withinWSH != 0 {
			return 0, fail(pos, ErrContextError, "sortedmulti cannot be nested in both sh and wsh")
		}
	}

	k, ok := lexer.ParseUnsignedDecimal(c)
	if !ok {
		return 0, fail(c.Pos(), ErrInvalidByte, "error parsing threshold")
	}

	var indexes []uint32
	for {
		next, hasNext := c.Peek()
		if hasNext && next == ')' {
			break
		}
		if !lexer.ConsumeByte(c, ',') {
			return 0, fail(c.Pos(), ErrInvalidByte, "expected ','")
		}
		idx, err := p.parseKeyIndex(c)
		if err != nil {
			return 0, err
		}
		indexes = append(indexes, idx)
	}

	n := len(indexes)
	if !(k >= 1 && k <= uint64(n) && n <= MaxCosigners) {
		return 0, fail(pos, ErrOutOfRange, "invalid k and/or n")
	}

	ref, node, err := p.alloc(pos)
	if err != nil {
		return 0, err
	}
	node.MultiK = uint32(k)
	node.KeyIndexes = indexes
	if token == lexer.TokenSortedMulti {
		node.Kind = KindSortedMulti
		node.Flags = Flags{IsMiniscript: false}
	} else {
		node.Kind = KindMulti
		node.Flags = Flags{IsMiniscript: true, Type: TypeB, N: true, D: true, U: true}
	}
	return ref, nil
}
