// Copyright 2024 The bytesparse Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package block implements the contiguous byte buffer that anchors a run
// of live bytes to an absolute address. A Block is the unit of reference
// counting and copy-on-write shared by a Rack's slots, a Rover's cursor,
// and any outstanding read-only View.
package block

import (
	"github.com/edsrzf/mmap-go"
)

// Block is a contiguous, heap- (or mmap-) allocated byte buffer anchored
// at an absolute address, with head/tail slack around its live payload
// and a reference count used to decide when in-place mutation is safe.
//
// The zero value is not usable; construct with New or NewZeroed.
type Block struct {
	address uint64
	refs    int32

	buf  []byte // full backing storage, len(buf) == cap logically tracked by us
	mm   mmap.MMap
	head int // first live byte is buf[head]
	tail int // one past the last live byte, buf[head:tail] is the live payload
}

// New creates a Block anchored at address holding a copy of data. The
// returned Block has ref count 1.
func New(address uint64, data []byte) (*Block, error) {
	b, err := NewZeroed(address, len(data))
	if err != nil {
		return nil, err
	}
	copy(b.buf[b.head:b.tail], data)
	return b, nil
}

// NewZeroed creates an empty-content Block anchored at address with size
// zeroed live bytes.
func NewZeroed(address uint64, size int) (*Block, error) {
	if size < 0 {
		return nil, OverflowError{Op: "new block"}
	}
	capacity := Upsize(0, size)
	if capacity < size {
		capacity = size
	}
	margin := (capacity - size) / 2
	if margin < 0 {
		margin = 0
	}
	buf, mm, err := allocBuffer(capacity)
	if err != nil {
		return nil, err
	}
	b := &Block{
		address: address,
		refs:    1,
		buf:     buf,
		mm:      mm,
		head:    margin,
		tail:    margin + size,
	}
	return b, nil
}

// NewNoCopy wraps data directly as a Block's backing storage instead of
// copying it, for callers that can guarantee the slice won't be mutated
// or retained elsewhere. The Block has no head/tail slack: the first
// mutation that grows it forces a reallocation.
func NewNoCopy(address uint64, data []byte) *Block {
	return &Block{
		address: address,
		refs:    1,
		buf:     data,
		head:    0,
		tail:    len(data),
	}
}

// Acquire increments the Block's reference count, signalling that a new
// holder (a Rack slot, a View, a Rover) shares ownership. Every Acquire
// must be matched by exactly one Release.
func (b *Block) Acquire() {
	b.refs++
}

// Release decrements the Block's reference count. When the count reaches
// zero the Block releases any mmap-backed storage it owns; a heap-backed
// Block simply becomes eligible for garbage collection.
func (b *Block) Release() {
	b.refs--
	if b.refs <= 0 && b.mm != nil {
		releaseBuffer(b.mm)
		b.mm = nil
		b.buf = nil
	}
}

// Shared reports whether more than one holder references this Block,
// i.e. whether an in-place mutation would require a prior Clone.
func (b *Block) Shared() bool {
	return b.refs > 1
}

// RefCount returns the current reference count, mostly useful for tests
// and invariant checks (spec.md §3 invariant 4).
func (b *Block) RefCount() int32 {
	return b.refs
}

// Clone returns a deep, independent copy of b with ref count 1. Used by
// Rack.Consolidate to restore unique ownership before an in-place
// mutation of a shared Block.
func (b *Block) Clone() (*Block, error) {
	return New(b.address, b.Bytes())
}

// Address returns the absolute address of the first live byte.
func (b *Block) Address() uint64 {
	return b.address
}

// SetAddress reassigns the Block's anchor address without touching its
// payload. Callers must preserve the Rack's address-ascending ordering.
//
// Address is part of the Block's shared tuple just like its bytes: a
// shared Block (RefCount() > 1) cannot have its address changed without
// first being cloned, or a sibling holder would observe the move.
func (b *Block) SetAddress(address uint64) error {
	if b.Shared() {
		return LockedError{Addr: b.address}
	}
	b.address = address
	return nil
}

// Len returns the number of live bytes.
func (b *Block) Len() int {
	return b.tail - b.head
}

// Endex returns the address one past the last live byte.
func (b *Block) Endex() uint64 {
	return b.address + uint64(b.Len())
}

// Bytes returns the live payload. The returned slice aliases the Block's
// internal buffer and must not be retained past a subsequent mutation or
// Release; callers needing a stable copy should clone it.
func (b *Block) Bytes() []byte {
	return b.buf[b.head:b.tail]
}

// At returns the live byte at offset, which must be in [0, Len()).
func (b *Block) At(offset int) (byte, error) {
	if offset < 0 || offset >= b.Len() {
		return 0, IndexOutOfRangeError{Offset: offset, Size: b.Len()}
	}
	return b.buf[b.head+offset], nil
}

// SetAt overwrites the live byte at offset in place. The caller must have
// ensured the Block is not Shared (see LockedError).
func (b *Block) SetAt(offset int, v byte) error {
	if b.Shared() {
		return LockedError{Addr: b.address}
	}
	if offset < 0 || offset >= b.Len() {
		return IndexOutOfRangeError{Offset: offset, Size: b.Len()}
	}
	b.buf[b.head+offset] = v
	return nil
}

// capacity returns the full backing storage length, including head/tail
// slack.
func (b *Block) capacity() int {
	return len(b.buf)
}
