// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package policy

import "errors"

// The functions in this file derive a composite node's Flags from its
// children's Flags, one function per fixed-arity Miniscript composition
// rule and wrapper in spec.md §4.7. Each mirrors the inline flag
// computation the original parser performs at the point it finishes
// reading a node's children. thresh, whose child count varies, is the
// exception: parseThresh counts its children's z and o bits and computes
// its flags inline.

// andorFlags implements andor(X, Y, Z): X is Bdu; Y and Z share a type
// that is not W.
func andorFlags(x, y, z Flags) (Flags, error) {
	if x.Type != TypeB || !x.D || !x.U {
		return Flags{}, errors.New("andor: X must be Bdu")
	}
	if y.Type != z.Type {
		return Flags{}, errors.New("andor: Y and Z must have the same type")
	}
	if y.Type == TypeW {
		return Flags{}, errors.New("andor: Y and Z must not be W")
	}
	return Flags{
		IsMiniscript: true,
		Type:         y.Type,
		Z:            x.Z && y.Z && z.Z,
		O:            (x.Z && y.O && z.O) || (x.O && y.Z && z.Z),
		D:            z.D,
		U:            y.U && z.U,
	}, nil
}

// andVFlags implements and_v(X,Y): X is V; Y is B, K, or V.
func andVFlags(x, y Flags) (Flags, error) {
	if x.Type != TypeV {
		return Flags{}, errors.New("and_v: X must be V")
	}
	if y.Type == TypeW {
		return Flags{}, errors.New("and_v: Y must not be W")
	}
	return Flags{
		IsMiniscript: true,
		Type:         y.Type,
		Z:            x.Z && y.Z,
		O:            (x.Z && y.O) || (x.O && y.Z),
		N:            x.N || (x.Z && y.N),
		U:            y.U,
	}, nil
}

// andBFlags implements and_b(X,Y): X is B; Y is W.
func andBFlags(x, y Flags) (Flags, error) {
	if x.Type != TypeB || y.Type != TypeW {
		return Flags{}, errors.New("and_b: X must be B and Y must be W")
	}
	return Flags{
		IsMiniscript: true,
		Type:         TypeB,
		Z:            x.Z && y.Z,
		O:            (x.Z && y.O) || (x.O && y.Z),
		N:            x.N || (x.Z && y.N),
		D:            x.D && y.D,
		U:            y.U,
	}, nil
}

// andNFlags implements and_n(X, Y), equivalent to andor(X, Y, 0): X is
// Bdu; Y is B.
func andNFlags(x, y Flags) (Flags, error) {
	if x.Type != TypeB || !x.D || !x.U {
		return Flags{}, errors.New("and_n: X must be Bdu")
	}
	if y.Type != TypeB {
		return Flags{}, errors.New("and_n: Y must be B")
	}
	return Flags{
		IsMiniscript: true,
		Type:         TypeB,
		Z:            x.Z && y.Z,
		O:            x.O && y.Z,
		D:            true,
		U:            y.U,
	}, nil
}

// orBFlags implements or_b(X, Z): X is Bd; Z is Wd.
func orBFlags(x, z Flags) (Flags, error) {
	if x.Type != TypeB || !x.D {
		return Flags{}, errors.New("or_b: X must be Bd")
	}
	if z.Type != TypeW || !z.D {
		return Flags{}, errors.New("or_b: Z must be Wd")
	}
	return Flags{
		IsMiniscript: true,
		Type:         TypeB,
		Z:            x.Z && z.Z,
		O:            (x.Z && z.O) || (x.O && z.Z),
		D:            true,
		U:            true,
	}, nil
}

// orCFlags implements or_c(X, Z): X is Bdu; Z is V.
func orCFlags(x, z Flags) (Flags, error) {
	if x.Type != TypeB || !x.D || !x.U {
		return Flags{}, errors.New("or_c: X must be Bdu")
	}
	if z.Type != TypeV {
		return Flags{}, errors.New("or_c: Z must be V")
	}
	return Flags{
		IsMiniscript: true,
		Type:         TypeV,
		Z:            x.Z && z.Z,
		O:            x.O && z.O,
	}, nil
}

// orDFlags implements or_d(X, Z): X is Bdu; Z is B.
func orDFlags(x, z Flags) (Flags, error) {
	if x.Type != TypeB || !x.D || !x.U {
		return Flags{}, errors.New("or_d: X must be Bdu")
	}
	if z.Type != TypeB {
		return Flags{}, errors.New("or_d: Z must be B")
	}
	return Flags{
		IsMiniscript: true,
		Type:         TypeB,
		Z:            x.Z && z.Z,
		O:            x.O && z.O,
		D:            z.D,
		U:            z.U,
	}, nil
}

// orIFlags implements or_i(X, Z): both are B, K, or V and share a type.
func orIFlags(x, z Flags) (Flags, error) {
	if x.Type == TypeW {
		return Flags{}, errors.New("or_i: children must be B, K or V")
	}
	if x.Type != z.Type {
		return Flags{}, errors.New("or_i: children must have the same type")
	}
	return Flags{
		IsMiniscript: true,
		Type:         x.Type,
		O:            x.Z && z.Z,
		D:            x.D || z.D,
		U:            x.U && z.U,
	}, nil
}

// wrapperFlags implements the ten single-letter wrapper rules applied to
// a child with flags x.
func wrapperFlags(kind Kind, x Flags) (Flags, error) {
	switch kind {
	case KindA:
		if x.Type != TypeB {
			return Flags{}, errors.New("'a' wrapper requires a B type child")
		}
		return Flags{IsMiniscript: true, Type: TypeW, D: x.D, U: x.U}, nil
	case KindS:
		if x.Type != TypeB || !x.O {
			return Flags{}, errors.New("'s' wrapper requires a Bo type child")
		}
		return Flags{IsMiniscript: true, Type: TypeW, D: x.D, U: x.U}, nil
	case KindC:
		if x.Type != TypeK {
			return Flags{}, errors.New("'c' wrapper requires a K type child")
		}
		return Flags{IsMiniscript: true, Type: TypeB, O: x.O, N: x.N, D: x.D, U: true}, nil
	case KindT:
		// t:X == and_v(X,1)
		if x.Type != TypeV {
			return Flags{}, errors.New("'t' wrapper requires a V type child")
		}
		return Flags{IsMiniscript: true, Type: TypeB, Z: x.Z, O: x.O, N: x.N, U: true}, nil
	case KindD:
		if x.Type != TypeV || !x.Z {
			return Flags{}, errors.New("'d' wrapper requires a Vz type child")
		}
		return Flags{IsMiniscript: true, Type: TypeB, O: true, N: true, D: true}, nil
	case KindV:
		if x.Type != TypeB {
			return Flags{}, errors.New("'v' wrapper requires a B type child")
		}
		return Flags{IsMiniscript: true, Type: TypeV, Z: x.Z, O: x.O, N: x.N}, nil
	case KindJ:
		if x.Type != TypeB || !x.N {
			return Flags{}, errors.New("'j' wrapper requires a Bn type child")
		}
		return Flags{IsMiniscript: true, Type: TypeB, O: x.O, N: true, D: true, U: x.U}, nil
	case KindN:
		if x.Type != TypeB {
			return Flags{}, errors.New("'n' wrapper requires a B type child")
		}
		return Flags{IsMiniscript: true, Type: TypeB, Z: x.Z, O: x.O, N: x.N, D: x.D, U: true}, nil
	case KindL:
		// l:X == or_i(0,X)
		if x.Type != TypeB {
			return Flags{}, errors.New("'l' wrapper requires a B type child")
		}
		return Flags{IsMiniscript: true, Type: TypeB, O: x.Z, D: true, U: x.U}, nil
	case KindU:
		// u:X == or_i(X,0)
		if x.Type != TypeB {
			return Flags{}, errors.New("'u' wrapper requires a B type child")
		}
		return Flags{IsMiniscript: true, Type: TypeB, O: x.Z, D: true, U: x.U}, nil
	default:
		return Flags{}, errors.New("unreachable wrapper kind")
	}
}
