// Copyright 2024 The bytesparse Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rack

import (
	"github.com/sparsebyte/bytesparse/block"
)

// spliceGap opens n empty slots at logical index i, shifting whichever
// side (head or tail) holds less data, reallocating only when neither
// side has enough slack. Mirrors block.Block.Reserve's direction policy
// at the slot-handle level (spec.md §4.2).
func (r *Rack) spliceGap(i, n int) {
	if n == 0 {
		return
	}
	length := r.Len()
	leftCost := i
	rightCost := length - i

	tryHead := func() bool {
		if r.head < n {
			return false
		}
		newHead := r.head - n
		copy(r.arr[newHead:newHead+i], r.arr[r.head:r.head+i])
		for k := newHead + i; k < newHead+i+n; k++ {
			r.arr[k] = nil
		}
		r.head = newHead
		return true
	}
	tryTail := func() bool {
		if len(r.arr)-r.tail < n {
			return false
		}
		copy(r.arr[r.head+i+n:r.tail+n], r.arr[r.head+i:r.tail])
		for k := r.head + i; k < r.head+i+n; k++ {
			r.arr[k] = nil
		}
		r.tail += n
		return true
	}

	if leftCost <= rightCost {
		if tryHead() || tryTail() {
			return
		}
	} else {
		if tryTail() || tryHead() {
			return
		}
	}

	// Neither direction has slack: reallocate.
	newLen := length + n
	capacity := block.Upsize(len(r.arr), newLen)
	if capacity < newLen {
		capacity = newLen
	}
	margin := (capacity - newLen) / 2
	newArr := make([]*block.Block, capacity)
	copy(newArr[margin:margin+i], r.arr[r.head:r.head+i])
	copy(newArr[margin+i+n:margin+newLen], r.arr[r.head+i:r.tail])
	r.arr = newArr
	r.head = margin
	r.tail = margin + newLen
}

// Insert places b at logical slot index i, taking ownership of the
// caller's reference to b (the caller must Acquire first if it intends
// to keep another handle to the same Block).
func (r *Rack) Insert(i int, b *block.Block) {
	r.spliceGap(i, 1)
	r.arr[r.head+i] = b
}

// InsertAll places items starting at logical slot index i, in order,
// taking ownership of each reference the same way Insert does.
func (r *Rack) InsertAll(i int, items []*block.Block) {
	n := len(items)
	if n == 0 {
		return
	}
	r.spliceGap(i, n)
	copy(r.arr[r.head+i:r.head+i+n], items)
}

// Delete removes the n slots starting at logical index i, releasing each
// dropped Block handle. When i == 0 the head pointer simply advances
// (no memmove); otherwise the tail portion shifts left over the gap.
func (r *Rack) Delete(i, n int) {
	if n == 0 {
		return
	}
	for k := 0; k < n; k++ {
		r.arr[r.head+i+k].Release()
	}
	if i == 0 {
		for k := r.head; k < r.head+n; k++ {
			r.arr[k] = nil
		}
		r.head += n
		return
	}
	copy(r.arr[r.head+i:r.tail-n], r.arr[r.head+i+n:r.tail])
	for k := r.tail - n; k < r.tail; k++ {
		r.arr[k] = nil
	}
	r.tail -= n
}
