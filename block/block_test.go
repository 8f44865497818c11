// Copyright 2024 The bytesparse Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package block

import (
	"bytes"
	"testing"
)

func mustNew(t *testing.T, addr uint64, data string) *Block {
	t.Helper()
	b, err := New(addr, []byte(data))
	if err != nil {
		t.Fatalf("New(%d, %q): %v", addr, data, err)
	}
	return b
}

func TestNewAndBytes(t *testing.T) {
	b := mustNew(t, 5, "hello")
	if got := string(b.Bytes()); got != "hello" {
		t.Fatalf("Bytes() = %q, want %q", got, "hello")
	}
	if b.Address() != 5 {
		t.Fatalf("Address() = %d, want 5", b.Address())
	}
	if b.Endex() != 10 {
		t.Fatalf("Endex() = %d, want 10", b.Endex())
	}
	if b.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", b.Len())
	}
}

func TestAcquireReleaseShared(t *testing.T) {
	b := mustNew(t, 0, "abc")
	if b.Shared() {
		t.Fatalf("fresh block reported Shared()")
	}
	b.Acquire()
	if !b.Shared() {
		t.Fatalf("block with refcount 2 not reported Shared()")
	}
	if err := b.SetAt(0, 'x'); err == nil {
		t.Fatalf("SetAt on shared block should fail")
	}
	b.Release()
	if b.Shared() {
		t.Fatalf("block still shared after matching Release")
	}
	if err := b.SetAt(0, 'x'); err != nil {
		t.Fatalf("SetAt on unshared block: %v", err)
	}
	if got := string(b.Bytes()); got != "xbc" {
		t.Fatalf("Bytes() = %q, want %q", got, "xbc")
	}
}

func TestClone(t *testing.T) {
	b := mustNew(t, 10, "ABC")
	c, err := b.Clone()
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	if c == b {
		t.Fatalf("Clone returned same pointer")
	}
	if c.Address() != b.Address() || !bytes.Equal(c.Bytes(), b.Bytes()) {
		t.Fatalf("clone diverges from original")
	}
	c.SetAt(0, 'Z')
	if string(b.Bytes()) != "ABC" {
		t.Fatalf("mutating clone affected original: %q", b.Bytes())
	}
}

func TestAppendPrepend(t *testing.T) {
	b := mustNew(t, 10, "BC")
	if err := b.Append([]byte("D")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if string(b.Bytes()) != "BCD" {
		t.Fatalf("after append: %q", b.Bytes())
	}
	if err := b.Prepend([]byte("A")); err != nil {
		t.Fatalf("Prepend: %v", err)
	}
	if string(b.Bytes()) != "ABCD" {
		t.Fatalf("after prepend: %q", b.Bytes())
	}
	if b.Address() != 9 {
		t.Fatalf("Address() after prepend = %d, want 9", b.Address())
	}
}

func TestReserveAndDelete(t *testing.T) {
	b := mustNew(t, 1, "ABxyz")
	if err := b.Reserve(2, 1); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	copy(b.Bytes()[2:3], []byte{'!'})
	if string(b.Bytes()) != "AB!xyz" {
		t.Fatalf("after reserve+fill: %q", b.Bytes())
	}
	if err := b.Delete(2, 1); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if string(b.Bytes()) != "ABxyz" {
		t.Fatalf("after delete: %q", b.Bytes())
	}

	// Deleting from offset 0 advances the anchor address.
	if err := b.Delete(0, 2); err != nil {
		t.Fatalf("Delete head: %v", err)
	}
	if string(b.Bytes()) != "xyz" || b.Address() != 3 {
		t.Fatalf("after head delete: bytes=%q addr=%d", b.Bytes(), b.Address())
	}
}

func TestRotate(t *testing.T) {
	tests := []struct {
		in     string
		offset int
		want   string
	}{
		{"ABCDE", 1, "BCDEA"},
		{"ABCDE", 2, "CDEAB"},
		{"ABCDE", -1, "EABCD"},
		{"ABCDE", 5, "ABCDE"},
		{"", 3, ""},
	}
	for _, tt := range tests {
		b := mustNew(t, 0, tt.in)
		if err := b.Rotate(tt.offset); err != nil {
			t.Fatalf("Rotate(%d): %v", tt.offset, err)
		}
		if got := string(b.Bytes()); got != tt.want {
			t.Errorf("Rotate(%q, %d) = %q, want %q", tt.in, tt.offset, got, tt.want)
		}
	}
}

func TestRepeat(t *testing.T) {
	b := mustNew(t, 0, "AB")
	if err := b.Repeat(3); err != nil {
		t.Fatalf("Repeat: %v", err)
	}
	if string(b.Bytes()) != "ABABAB" {
		t.Fatalf("Repeat(3) = %q", b.Bytes())
	}
}

func TestRepeatToSize(t *testing.T) {
	b := mustNew(t, 0, "ABC")
	if err := b.RepeatToSize(7); err != nil {
		t.Fatalf("RepeatToSize: %v", err)
	}
	if string(b.Bytes()) != "ABCABCA" {
		t.Fatalf("RepeatToSize(7) = %q", b.Bytes())
	}

	empty := mustNew(t, 0, "")
	if err := empty.RepeatToSize(4); err != ErrEmptyBlock {
		t.Fatalf("RepeatToSize on empty block: got %v, want ErrEmptyBlock", err)
	}
}

func TestFindReverseFindCount(t *testing.T) {
	b := mustNew(t, 0, "abcabcabc")
	if i, ok := b.Find([]byte("bc"), 0, 9); !ok || i != 1 {
		t.Fatalf("Find(bc) = %d, %v, want 1, true", i, ok)
	}
	if i, ok := b.ReverseFind([]byte("bc"), 0, 9); !ok || i != 7 {
		t.Fatalf("ReverseFind(bc) = %d, %v, want 7, true", i, ok)
	}
	if n := b.Count([]byte("bc"), 0, 9); n != 3 {
		t.Fatalf("Count(bc) = %d, want 3", n)
	}
	if i, ok := b.Find([]byte("bc"), 0, 9); i == -1 && ok {
		t.Fatalf("inconsistent not-found result")
	}
	if _, ok := b.Find([]byte("zz"), 0, 9); ok {
		t.Fatalf("Find(zz) unexpectedly found")
	}
	if n := b.Count([]byte("a"), 0, 9); n != 3 {
		t.Fatalf("Count(a) = %d, want 3", n)
	}
}
