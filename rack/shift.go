// Copyright 2024 The bytesparse Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rack

import (
	"math"

	"github.com/sparsebyte/bytesparse/block"
)

// Shift translates every Block's address by the signed offset, after
// checking that the extreme Block does not over/underflow.
func (r *Rack) Shift(offset int64) error {
	n := r.Len()
	if n == 0 || offset == 0 {
		return nil
	}
	if offset > 0 {
		last := r.At(n - 1)
		if last.Endex() > math.MaxUint64-uint64(offset) {
			return block.OverflowError{Op: "rack shift"}
		}
		for i := 0; i < n; i++ {
			b, err := r.ConsolidateAt(i)
			if err != nil {
				return err
			}
			if err := b.SetAddress(b.Address() + uint64(offset)); err != nil {
				return err
			}
		}
		return nil
	}
	neg := uint64(-offset)
	first := r.At(0)
	if first.Address() < neg {
		return block.OverflowError{Op: "rack shift"}
	}
	for i := 0; i < n; i++ {
		b, err := r.ConsolidateAt(i)
		if err != nil {
			return err
		}
		if err := b.SetAddress(b.Address() - neg); err != nil {
			return err
		}
	}
	return nil
}
