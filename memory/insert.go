// Copyright 2024 The bytesparse Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memory

import "github.com/sparsebyte/bytesparse/block"

// insertBytes places data at address (spec.md §4.3.3): appended to a
// Block that ends exactly there, prepended to one that starts exactly
// where data would end, split-reserved into a Block that already covers
// address, or else inserted as a new standalone Block. If shiftAfter,
// every Block beyond the insertion point then has its address advanced
// by len(data); otherwise later Blocks are left untouched (the caller is
// responsible for having made room, e.g. via a preceding erase).
func (m *Memory) insertBytes(address uint64, data []byte, shiftAfter bool) error {
	n := uint64(len(data))
	if n == 0 {
		return nil
	}
	r := &m.rack

	if i, ok := r.IndexAt(address); ok {
		cb, err := r.ConsolidateAt(i)
		if err != nil {
			return err
		}
		offset := int(address - cb.Address())
		if err := cb.Reserve(offset, len(data)); err != nil {
			return err
		}
		copy(cb.Bytes()[offset:offset+len(data)], data)
		if shiftAfter {
			return m.shiftBlocksFrom(i+1, n, true)
		}
		return nil
	}

	i := r.IndexStart(address)
	if i > 0 {
		prev := r.At(i - 1)
		if prev.Endex() == address {
			cb, err := r.ConsolidateAt(i - 1)
			if err != nil {
				return err
			}
			if err := cb.Append(data); err != nil {
				return err
			}
			if shiftAfter {
				return m.shiftBlocksFrom(i, n, true)
			}
			if i < r.Len() && r.At(i).Address() == cb.Endex() {
				m.tryMerge(cb.Endex())
			}
			return nil
		}
	}

	if i < r.Len() {
		next := r.At(i)
		matches := address + n
		if shiftAfter {
			matches = address
		}
		if next.Address() == matches {
			cb, err := r.ConsolidateAt(i)
			if err != nil {
				return err
			}
			if err := cb.Prepend(data); err != nil {
				return err
			}
			if shiftAfter {
				return m.shiftBlocksFrom(i+1, n, true)
			}
			return nil
		}
	}

	nb, err := block.New(address, data)
	if err != nil {
		return err
	}
	r.Insert(i, nb)
	if shiftAfter {
		return m.shiftBlocksFrom(i+1, n, true)
	}
	return nil
}

// Insert grows the Memory by n = len(data) bytes: everything from
// address onward shifts forward to make room.
func (m *Memory) Insert(address uint64, data []byte) error {
	if err := m.insertBytes(address, data, true); err != nil {
		return err
	}
	m.applyTrim(nil)
	return nil
}
