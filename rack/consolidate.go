// Copyright 2024 The bytesparse Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rack

import (
	"github.com/sparsebyte/bytesparse/block"
)

// ConsolidateAt ensures the Block at slot i is uniquely held (ref count
// 1), deep-cloning and replacing it first if it is shared. It returns
// the (possibly new) Block, now safe for in-place mutation.
func (r *Rack) ConsolidateAt(i int) (*block.Block, error) {
	b := r.At(i)
	if !b.Shared() {
		return b, nil
	}
	clone, err := b.Clone()
	if err != nil {
		return nil, err
	}
	b.Release()
	r.arr[r.head+i] = clone
	logger.Printf("consolidated shared block at slot %d (addr 0x%x)", i, clone.Address())
	return clone, nil
}

// Consolidate deep-clones every shared Block in the Rack, restoring
// unique ownership across the board. Used before a broad mutation of a
// Rack obtained via a shallow Clone/Slice.
func (r *Rack) Consolidate() error {
	for i := 0; i < r.Len(); i++ {
		if _, err := r.ConsolidateAt(i); err != nil {
			return err
		}
	}
	return nil
}
