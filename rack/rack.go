// Copyright 2024 The bytesparse Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rack implements the ordered, gap-free-in-index-space container
// of Block handles that backs a Memory: an address-ascending,
// non-overlapping sequence of *block.Block, with its own head/tail slack
// so that prepend and pop-left are amortized the same way Block amortizes
// byte-level prepend/append.
package rack

import (
	"github.com/sparsebyte/bytesparse/block"
)

// Rack is an ordered, non-overlapping sequence of Block handles. The
// zero value is an empty, usable Rack.
type Rack struct {
	arr        []*block.Block // full backing array, live slots are arr[head:tail]
	head, tail int
}

// Len returns the number of blocks currently held.
func (r *Rack) Len() int {
	return r.tail - r.head
}

// At returns the i-th block (0-indexed, 0 <= i < Len()).
func (r *Rack) At(i int) *block.Block {
	return r.arr[r.head+i]
}

// First returns the first block, or nil if the Rack is empty.
func (r *Rack) First() *block.Block {
	if r.Len() == 0 {
		return nil
	}
	return r.arr[r.head]
}

// Last returns the last block, or nil if the Rack is empty.
func (r *Rack) Last() *block.Block {
	if r.Len() == 0 {
		return nil
	}
	return r.arr[r.tail-1]
}

// Start returns the address of the first block, or 0 if empty.
func (r *Rack) Start() uint64 {
	if f := r.First(); f != nil {
		return f.Address()
	}
	return 0
}

// Endex returns the endex of the last block, or 0 if empty.
func (r *Rack) Endex() uint64 {
	if l := r.Last(); l != nil {
		return l.Endex()
	}
	return 0
}

// Clone returns a shallow copy of the Rack: a new slot array referencing
// the same (ref-count-bumped) Block handles. Mutating a Block found
// through the clone without first consolidating affects both Racks.
func (r *Rack) Clone() *Rack {
	return r.Slice(0, r.Len())
}

// Slice returns a shallow copy of the sub-range [i, j) of slots, as a new
// standalone Rack.
func (r *Rack) Slice(i, j int) *Rack {
	n := j - i
	if n < 0 {
		n = 0
	}
	newArr := make([]*block.Block, n)
	for k := 0; k < n; k++ {
		b := r.At(i + k)
		b.Acquire()
		newArr[k] = b
	}
	return &Rack{arr: newArr, head: 0, tail: n}
}

// ReleaseAll releases every held Block handle and empties the Rack. Call
// this when a Rack (or the Memory owning it) is being discarded.
func (r *Rack) ReleaseAll() {
	for i := r.head; i < r.tail; i++ {
		r.arr[i].Release()
		r.arr[i] = nil
	}
	r.head, r.tail = 0, 0
}

// Blocks returns the live slots as a plain slice, for callers (Memory,
// Rover) that need to range over them directly. The slice aliases the
// Rack's internal storage and must not be retained past a mutation.
func (r *Rack) Blocks() []*block.Block {
	return r.arr[r.head:r.tail]
}
