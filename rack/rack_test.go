// Copyright 2024 The bytesparse Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rack

import (
	"testing"

	"github.com/sparsebyte/bytesparse/block"
)

func mustBlock(t *testing.T, addr uint64, data string) *block.Block {
	t.Helper()
	b, err := block.New(addr, []byte(data))
	if err != nil {
		t.Fatalf("block.New: %v", err)
	}
	return b
}

func buildRack(t *testing.T, specs ...[2]interface{}) *Rack {
	t.Helper()
	var r Rack
	for i, s := range specs {
		addr := s[0].(uint64)
		data := s[1].(string)
		r.Insert(i, mustBlock(t, addr, data))
	}
	return &r
}

func TestIndexSearchConsistency(t *testing.T) {
	r := buildRack(t,
		[2]interface{}{uint64(1), "ABC"},
		[2]interface{}{uint64(6), "xyz"},
	)
	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}

	for _, addr := range []uint64{1, 2, 3, 6, 7, 8} {
		i, ok := r.IndexAt(addr)
		if !ok {
			t.Fatalf("IndexAt(%d) not found", addr)
		}
		if got := r.IndexStart(addr); got != i {
			t.Errorf("IndexStart(%d) = %d, want %d (IndexAt)", addr, got, i)
		}
		if got := r.IndexEndex(addr + 1); got-1 != i {
			t.Errorf("IndexEndex(%d)-1 = %d, want %d (IndexAt)", addr+1, got-1, i)
		}
	}

	if _, ok := r.IndexAt(0); ok {
		t.Errorf("IndexAt(0) unexpectedly found")
	}
	if _, ok := r.IndexAt(4); ok {
		t.Errorf("IndexAt(4) (gap) unexpectedly found")
	}
	if _, ok := r.IndexAt(9); ok {
		t.Errorf("IndexAt(9) (past end) unexpectedly found")
	}

	if got := r.IndexStart(0); got != 0 {
		t.Errorf("IndexStart(0) = %d, want 0", got)
	}
	if got := r.IndexStart(100); got != 2 {
		t.Errorf("IndexStart(100) = %d, want 2", got)
	}
	if got := r.IndexEndex(100); got != 2 {
		t.Errorf("IndexEndex(100) = %d, want 2", got)
	}
}

func TestInsertDeletePreservesOrder(t *testing.T) {
	var r Rack
	r.Insert(0, mustBlock(t, 10, "A"))
	r.Insert(1, mustBlock(t, 20, "B"))
	r.Insert(0, mustBlock(t, 0, "Z")) // prepend
	if r.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", r.Len())
	}
	want := []uint64{0, 10, 20}
	for i, w := range want {
		if got := r.At(i).Address(); got != w {
			t.Errorf("At(%d).Address() = %d, want %d", i, got, w)
		}
	}

	r.Delete(1, 1) // drop the middle block
	if r.Len() != 2 {
		t.Fatalf("Len() after delete = %d, want 2", r.Len())
	}
	if r.At(0).Address() != 0 || r.At(1).Address() != 20 {
		t.Fatalf("unexpected order after delete: %d, %d", r.At(0).Address(), r.At(1).Address())
	}
}

func TestCloneIsShallow(t *testing.T) {
	r := buildRack(t, [2]interface{}{uint64(1), "ABC"})
	c := r.Clone()
	if c.Len() != 1 {
		t.Fatalf("Clone Len() = %d, want 1", c.Len())
	}
	if !r.At(0).Shared() {
		t.Fatalf("original block not reported Shared() after Clone")
	}
	if r.At(0) != c.At(0) {
		t.Fatalf("Clone produced a different Block pointer, want shared handle")
	}
}

func TestConsolidateBreaksSharing(t *testing.T) {
	r := buildRack(t, [2]interface{}{uint64(1), "ABC"})
	c := r.Clone()
	if err := c.Consolidate(); err != nil {
		t.Fatalf("Consolidate: %v", err)
	}
	if c.At(0) == r.At(0) {
		t.Fatalf("Consolidate did not clone the shared block")
	}
	if r.At(0).Shared() {
		t.Fatalf("original block still reported Shared() after consolidate")
	}
}

func TestShiftOverflow(t *testing.T) {
	r := buildRack(t, [2]interface{}{uint64(5), "AB"})
	if err := r.Shift(-10); err == nil {
		t.Fatalf("Shift(-10) from address 5 should overflow")
	}
	if err := r.Shift(3); err != nil {
		t.Fatalf("Shift(3): %v", err)
	}
	if r.At(0).Address() != 8 {
		t.Fatalf("after Shift(3), address = %d, want 8", r.At(0).Address())
	}
}
