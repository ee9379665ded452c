// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package arena

import "testing"

func TestAllocAssignsSequentialRefs(t *testing.T) {
	a := New[int](4)
	for i := 0; i < 4; i++ {
		ref, err := a.Alloc()
		if err != nil {
			t.Fatalf("Alloc() #%d returned error: %v", i, err)
		}
		if int(ref) != i {
			t.Fatalf("Alloc() #%d = %d; want %d", i, ref, i)
		}
	}
}

func TestAllocOutOfMemory(t *testing.T) {
	a := New[int](1)
	if _, err := a.Alloc(); err != nil {
		t.Fatalf("first Alloc() returned error: %v", err)
	}
	if _, err := a.Alloc(); err != ErrOutOfMemory {
		t.Fatalf("second Alloc() = %v; want ErrOutOfMemory", err)
	}
}

func TestGetReturnsStablePointer(t *testing.T) {
	type node struct{ value int }
	a := New[node](2)
	ref, err := a.Alloc()
	if err != nil {
		t.Fatalf("Alloc() returned error: %v", err)
	}
	a.Get(ref).value = 42
	if got := a.Get(ref).value; got != 42 {
		t.Fatalf("Get(ref).value = %d; want 42", got)
	}
	if a.Len() != 1 {
		t.Fatalf("Len() = %d; want 1", a.Len())
	}
}
