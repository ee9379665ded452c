// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package arena implements a fixed-capacity, append-only bump allocator.
// A parse owns exactly one arena; every node produced by the policy
// parser lives in it and is referenced by other nodes through a typed
// index (a Ref) rather than a pointer, so the whole tree can be copied,
// reset, or discarded as a single unit.
package arena

import "errors"

// ErrOutOfMemory is returned when an allocation would exceed the arena's
// fixed capacity. It is always recoverable: the caller discards the
// arena and, if it wants to retry, constructs a larger one.
var ErrOutOfMemory = errors.New("arena: out of memory")

// Ref is a stable reference to a value inside an Arena. The zero Ref
// refers to the first slot ever allocated; callers that need an
// "absent" sentinel should keep a separate boolean alongside it, mirroring
// how the policy package tracks optional children.
type Ref uint32

// Arena is a bump allocator over a fixed-capacity slice of T. It never
// grows, never frees, and never compacts; allocation order is the only
// order, which guarantees parents are always allocated before the
// children parsed after them.
type Arena[T any] struct {
	slots []T
}

// New creates an Arena pre-sized to hold up to capacity values of T.
// Exceeding capacity returns ErrOutOfMemory instead of growing.
func New[T any](capacity int) *Arena[T] {
	return &Arena[T]{slots: make([]T, 0, capacity)}
}

// Alloc reserves the next slot, zero-valued, and returns its Ref.
func (a *Arena[T]) Alloc() (Ref, error) {
	if len(a.slots) == cap(a.slots) {
		return 0, ErrOutOfMemory
	}
	a.slots = append(a.slots, *new(T))
	return Ref(len(a.slots) - 1), nil
}

// Get returns a pointer to the value at ref, valid for the lifetime of
// the Arena. The pointer is invalidated only if the Arena itself is
// discarded; Arena never reallocates its backing slice since it never
// grows past its initial capacity.
func (a *Arena[T]) Get(ref Ref) *T {
	return &a.slots[ref]
}

// Len returns the number of values allocated so far.
func (a *Arena[T]) Len() int {
	return len(a.slots)
}
