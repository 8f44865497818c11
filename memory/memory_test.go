// Copyright 2024 The bytesparse Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memory

import (
	"math"
	"testing"

	"github.com/sparsebyte/bytesparse/block"
)

func buildMemory(t *testing.T, specs ...[2]interface{}) *Memory {
	t.Helper()
	var blocks []BlockSpec
	for _, s := range specs {
		blocks = append(blocks, BlockSpec{Address: s[0].(uint64), Data: []byte(s[1].(string))})
	}
	m, err := FromBlocks(blocks, 0, nil, nil, true, true)
	if err != nil {
		t.Fatalf("FromBlocks: %v", err)
	}
	return m
}

func assertBlocks(t *testing.T, m *Memory, want ...[2]interface{}) {
	t.Helper()
	gotParts := m.ContentParts()
	if gotParts != len(want) {
		t.Fatalf("ContentParts() = %d, want %d (blocks %v)", gotParts, len(want), dumpBlocks(m))
	}
	i := 0
	for _, ivl := range m.Intervals(m.ContentStart(), m.ContentEndex()) {
		if i >= len(want) {
			t.Fatalf("more blocks than expected: %v", dumpBlocks(m))
		}
		wantAddr := want[i][0].(uint64)
		wantData := want[i][1].(string)
		if ivl.Start != wantAddr {
			t.Errorf("block %d address = %#x, want %#x", i, ivl.Start, wantAddr)
		}
		sub, err := m.Extract(ivl.Start, ivl.Endex, nil, 1, false)
		if err != nil {
			t.Fatalf("Extract: %v", err)
		}
		got, err := sub.ToBytes()
		sub.Close()
		if err != nil {
			t.Fatalf("ToBytes: %v", err)
		}
		if string(got) != wantData {
			t.Errorf("block %d data = %q, want %q", i, got, wantData)
		}
		i++
	}
}

func dumpBlocks(m *Memory) []string {
	var out []string
	for _, ivl := range m.Intervals(m.ContentStart(), m.ContentEndex()) {
		sub, err := m.Extract(ivl.Start, ivl.Endex, nil, 1, false)
		if err != nil {
			continue
		}
		b, _ := sub.ToBytes()
		sub.Close()
		out = append(out, string(b))
	}
	return out
}

// TestInsertThenMerge exercises spec.md §8 scenario 1.
func TestInsertThenMerge(t *testing.T) {
	m := buildMemory(t, [2]interface{}{uint64(1), "ABC"}, [2]interface{}{uint64(6), "xyz"})

	if err := m.Insert(8, []byte("1")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	assertBlocks(t, m, [2]interface{}{uint64(1), "ABC"}, [2]interface{}{uint64(6), "xy1z"})

	addr := uint64(3)
	v, ok, err := m.Pop(&addr, nil)
	if err != nil {
		t.Fatalf("Pop: %v", err)
	}
	if !ok || v != 'C' {
		t.Fatalf("Pop(3) = %q, %v, want 'C', true", v, ok)
	}
	assertBlocks(t, m, [2]interface{}{uint64(1), "AB"}, [2]interface{}{uint64(5), "xy1z"})
}

// TestFloodPreservesContent exercises spec.md §8 scenario 2.
func TestFloodPreservesContent(t *testing.T) {
	m := buildMemory(t, [2]interface{}{uint64(1), "ABC"}, [2]interface{}{uint64(6), "xyz"})
	if err := m.Flood(3, 7, []byte("123"), nil); err != nil {
		t.Fatalf("Flood: %v", err)
	}
	assertBlocks(t, m, [2]interface{}{uint64(1), "ABC23xyz"})
}

// TestFillOverwrites exercises spec.md §8 scenario 3.
func TestFillOverwrites(t *testing.T) {
	m := buildMemory(t, [2]interface{}{uint64(1), "ABC"}, [2]interface{}{uint64(6), "xyz"})
	if err := m.Fill(3, 7, []byte("123"), nil); err != nil {
		t.Fatalf("Fill: %v", err)
	}
	assertBlocks(t, m, [2]interface{}{uint64(1), "AB1231yz"})
}

// TestClearShrink exercises spec.md §8 scenario 5 (a non-shifting
// slice-clear).
func TestClearShrink(t *testing.T) {
	m := buildMemory(t, [2]interface{}{uint64(5), "ABC"}, [2]interface{}{uint64(9), "xyz"})
	if err := m.Clear(7, 10, nil); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	assertBlocks(t, m, [2]interface{}{uint64(5), "AB"}, [2]interface{}{uint64(10), "yz"})
}

// TestExtractWithStep exercises spec.md §8 scenario 6.
func TestExtractWithStep(t *testing.T) {
	m := buildMemory(t,
		[2]interface{}{uint64(1), "ABCD"},
		[2]interface{}{uint64(6), "$"},
		[2]interface{}{uint64(8), "xyz"},
	)
	out, err := m.Extract(m.Start(), m.Endex(), []byte("."), 3, false)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	defer out.Close()
	assertBlocks(t, out, [2]interface{}{uint64(1), "AD.z"})
}

func TestPeekPoke(t *testing.T) {
	m := buildMemory(t, [2]interface{}{uint64(1), "ABC"})
	if v, ok := m.Peek(2); !ok || v != 'B' {
		t.Fatalf("Peek(2) = %q, %v, want 'B', true", v, ok)
	}
	if _, ok := m.Peek(100); ok {
		t.Fatalf("Peek(100) unexpectedly found")
	}
	if err := m.Poke(1, 'Z'); err != nil {
		t.Fatalf("Poke: %v", err)
	}
	if v, _ := m.Peek(1); v != 'Z' {
		t.Fatalf("Peek(1) after Poke = %q, want 'Z'", v)
	}
	// Poke just past endex appends via the abutting fast path.
	if err := m.Poke(4, 'D'); err != nil {
		t.Fatalf("Poke(4): %v", err)
	}
	assertBlocks(t, m, [2]interface{}{uint64(1), "ZBCD"})
}

func TestPokeNoneOpensGap(t *testing.T) {
	m := buildMemory(t, [2]interface{}{uint64(1), "ABC"})
	if err := m.PokeNone(2); err != nil {
		t.Fatalf("PokeNone: %v", err)
	}
	assertBlocks(t, m, [2]interface{}{uint64(1), "A"}, [2]interface{}{uint64(3), "C"})
}

func TestFindRFindCount(t *testing.T) {
	m := buildMemory(t, [2]interface{}{uint64(1), "ABCABC"})
	addr, ok := m.Find([]byte("BC"), m.Start(), m.Endex())
	if !ok || addr != 2 {
		t.Fatalf("Find(BC) = %d, %v, want 2, true", addr, ok)
	}
	addr, ok = m.RFind([]byte("BC"), m.Start(), m.Endex())
	if !ok || addr != 5 {
		t.Fatalf("RFind(BC) = %d, %v, want 5, true", addr, ok)
	}
	if n := m.Count([]byte("BC"), m.Start(), m.Endex()); n != 2 {
		t.Fatalf("Count(BC) = %d, want 2", n)
	}
	if !m.Contains([]byte("CAB")) {
		t.Fatalf("Contains(CAB) = false, want true")
	}
	if _, err := m.Index([]byte("zzz"), m.Start(), m.Endex()); err != block.ErrNotFound {
		t.Fatalf("Index(zzz) err = %v, want ErrNotFound", err)
	}
}

func TestShiftNegativeDiscardsUnderflowAndTrim(t *testing.T) {
	m := buildMemory(t, [2]interface{}{uint64(5), "ABC"}, [2]interface{}{uint64(9), "xyz"})
	trimStart := uint64(2)
	m.SetTrimStart(&trimStart)

	var backups Backups
	if err := m.Shift(-7, &backups); err != nil {
		t.Fatalf("Shift(-7): %v", err)
	}
	// Discard threshold is max(|offset|, trim_start+|offset|) = 9: "ABC"
	// (addresses 5-7) falls below it and is dropped entirely; "xyz"
	// (address 9) sits exactly at the threshold and survives whole,
	// landing at 9-7=2 after the translation.
	assertBlocks(t, m, [2]interface{}{uint64(2), "xyz"})

	if len(backups.Memories) == 0 {
		t.Fatalf("Shift produced no backups, want at least one")
	}
}

func TestShiftPositiveNoTrimIsPureTranslation(t *testing.T) {
	m := buildMemory(t, [2]interface{}{uint64(5), "ABC"})
	if err := m.Shift(3, nil); err != nil {
		t.Fatalf("Shift(3): %v", err)
	}
	// With no trim_endex set and no overflow risk, a positive shift must
	// not discard anything: it is a pure address translation.
	assertBlocks(t, m, [2]interface{}{uint64(8), "ABC"})
}

func TestCropDiscardsOutsideBounds(t *testing.T) {
	m := buildMemory(t, [2]interface{}{uint64(1), "ABC"}, [2]interface{}{uint64(10), "xyz"})
	var backups Backups
	if err := m.Crop(2, 11, &backups); err != nil {
		t.Fatalf("Crop: %v", err)
	}
	assertBlocks(t, m, [2]interface{}{uint64(2), "BC"}, [2]interface{}{uint64(10), "x"})
	if len(backups.Memories) != 2 {
		t.Fatalf("Crop backups count = %d, want 2", len(backups.Memories))
	}
}

func TestCropIdempotent(t *testing.T) {
	m := buildMemory(t, [2]interface{}{uint64(1), "ABC"}, [2]interface{}{uint64(10), "xyz"})
	if err := m.Crop(2, 11, nil); err != nil {
		t.Fatalf("Crop: %v", err)
	}
	first := dumpBlocks(m)
	if err := m.Crop(2, 11, nil); err != nil {
		t.Fatalf("Crop (again): %v", err)
	}
	second := dumpBlocks(m)
	if len(first) != len(second) {
		t.Fatalf("Crop not idempotent: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("Crop not idempotent: %v vs %v", first, second)
		}
	}
}

func TestToBytesNonContiguous(t *testing.T) {
	m := buildMemory(t, [2]interface{}{uint64(1), "ABC"}, [2]interface{}{uint64(10), "xyz"})
	if _, err := m.ToBytes(); err != block.ErrNonContiguous {
		t.Fatalf("ToBytes err = %v, want ErrNonContiguous", err)
	}

	single := buildMemory(t, [2]interface{}{uint64(1), "ABC"})
	b, err := single.ToBytes()
	if err != nil {
		t.Fatalf("ToBytes: %v", err)
	}
	if string(b) != "ABC" {
		t.Fatalf("ToBytes() = %q, want %q", b, "ABC")
	}
}

func TestAlgebraConcatAndRepeat(t *testing.T) {
	a := buildMemory(t, [2]interface{}{uint64(0), "AB"})
	b := buildMemory(t, [2]interface{}{uint64(0), "CD"})
	if err := a.Add(b); err != nil {
		t.Fatalf("Add: %v", err)
	}
	assertBlocks(t, a, [2]interface{}{uint64(0), "ABCD"})

	c := buildMemory(t, [2]interface{}{uint64(0), "AB"})
	if err := c.Mul(3); err != nil {
		t.Fatalf("Mul: %v", err)
	}
	assertBlocks(t, c, [2]interface{}{uint64(0), "ABABAB"})

	empty := New(nil, nil)
	if err := empty.Mul(0); err != nil {
		t.Fatalf("Mul(0) on empty: %v", err)
	}
	if empty.ContentSize() != 0 {
		t.Fatalf("Mul(0) should stay empty, size = %d", empty.ContentSize())
	}
}

func TestEmptyMemoryOperationsAreNoOps(t *testing.T) {
	m := New(nil, nil)
	if err := m.Delete(0, 100, nil); err != nil {
		t.Fatalf("Delete on empty: %v", err)
	}
	if err := m.Clear(0, 100, nil); err != nil {
		t.Fatalf("Clear on empty: %v", err)
	}
	if err := m.Crop(0, 100, nil); err != nil {
		t.Fatalf("Crop on empty: %v", err)
	}
	if err := m.Shift(-5, nil); err != nil {
		t.Fatalf("Shift on empty: %v", err)
	}
	out, err := m.Extract(0, 10, nil, 1, true)
	if err != nil {
		t.Fatalf("Extract on empty: %v", err)
	}
	defer out.Close()
	if out.ContentSize() != 0 {
		t.Fatalf("Extract on empty produced content, size = %d", out.ContentSize())
	}
}

func TestGapsAndIntervals(t *testing.T) {
	m := buildMemory(t, [2]interface{}{uint64(1), "ABC"}, [2]interface{}{uint64(6), "xyz"})
	gaps := m.Gaps(m.Start(), m.Endex(), true)
	if len(gaps) != 1 || gaps[0].Start != 4 || gaps[0].Endex != 6 {
		t.Fatalf("Gaps() = %v, want one gap [4:6)", gaps)
	}
	if size := m.ContentSize(); size != 6 {
		t.Fatalf("ContentSize() = %d, want 6", size)
	}
}

func TestGapsUnboundedExtendsToAddressSpaceEdges(t *testing.T) {
	m := buildMemory(t, [2]interface{}{uint64(1), "ABC"}, [2]interface{}{uint64(6), "xyz"})

	gaps := m.Gaps(2, 7, false)
	if len(gaps) != 1 || gaps[0].Start != 4 || gaps[0].Endex != 6 {
		t.Fatalf("Gaps(2,7,false) = %v, want one interior gap [4:6)", gaps)
	}

	lone := buildMemory(t, [2]interface{}{uint64(10), "AB"})
	gaps = lone.Gaps(2, 20, false)
	if len(gaps) != 2 || gaps[0].Start != 0 || gaps[0].Endex != 10 {
		t.Fatalf("Gaps(2,20,false) = %v, want unbounded leading gap [0:10)", gaps)
	}
	bounded := lone.Gaps(2, 20, true)
	if len(bounded) != 2 || bounded[0].Start != 2 || bounded[0].Endex != 10 {
		t.Fatalf("Gaps(2,20,true) = %v, want clipped leading gap [2:10)", bounded)
	}

	gaps = m.Gaps(6, 20, false)
	if len(gaps) != 1 || gaps[0].Start != 9 || gaps[0].Endex != math.MaxUint64 {
		t.Fatalf("Gaps(6,20,false) = %v, want trailing gap [9:MaxUint64)", gaps)
	}
	bounded = m.Gaps(6, 20, true)
	if len(bounded) != 1 || bounded[0].Start != 9 || bounded[0].Endex != 20 {
		t.Fatalf("Gaps(6,20,true) = %v, want clipped trailing gap [9:20)", bounded)
	}

	empty := New(nil, nil)
	gaps = empty.Gaps(5, 10, false)
	if len(gaps) != 1 || gaps[0].Start != 0 || gaps[0].Endex != math.MaxUint64 {
		t.Fatalf("Gaps on empty Memory (bound=false) = %v, want [0:MaxUint64)", gaps)
	}
}

func TestValidateCatchesOverlap(t *testing.T) {
	b1, err := block.New(1, []byte("AB"))
	if err != nil {
		t.Fatalf("block.New: %v", err)
	}
	b2, err := block.New(2, []byte("CD")) // overlaps b1
	if err != nil {
		t.Fatalf("block.New: %v", err)
	}
	var m Memory
	m.rack.InsertAll(0, []*block.Block{b1, b2})
	if err := m.Validate(); err == nil {
		t.Fatalf("Validate() on overlapping blocks should fail")
	}
}
