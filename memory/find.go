// Copyright 2024 The bytesparse Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memory

import "github.com/sparsebyte/bytesparse/block"

// Find scans [start, endex) for the first occurrence of pattern,
// delegating to Block.Find per Block (a match never spans a gap, since a
// gap is missing data, not zero bytes). Returns its address and true, or
// (0, false) if absent.
func (m *Memory) Find(pattern []byte, start, endex uint64) (uint64, bool) {
	r := &m.rack
	n := r.Len()
	i := r.IndexStart(start)
	for ; i < n; i++ {
		b := r.At(i)
		if b.Address() >= endex {
			break
		}
		lo, hi := 0, b.Len()
		if start > b.Address() {
			lo = int(start - b.Address())
		}
		if b.Endex() > endex {
			hi = int(endex - b.Address())
		}
		if off, ok := b.Find(pattern, lo, hi); ok {
			return b.Address() + uint64(off), true
		}
	}
	return 0, false
}

// RFind scans [start, endex) backward for the last occurrence of pattern.
func (m *Memory) RFind(pattern []byte, start, endex uint64) (uint64, bool) {
	r := &m.rack
	i := r.IndexEndex(endex) - 1
	for ; i >= 0; i-- {
		b := r.At(i)
		if b.Endex() <= start {
			break
		}
		lo, hi := 0, b.Len()
		if start > b.Address() {
			lo = int(start - b.Address())
		}
		if b.Endex() > endex {
			hi = int(endex - b.Address())
		}
		if off, ok := b.ReverseFind(pattern, lo, hi); ok {
			return b.Address() + uint64(off), true
		}
	}
	return 0, false
}

// Index is Find, reporting absence as block.ErrNotFound instead of false.
func (m *Memory) Index(pattern []byte, start, endex uint64) (uint64, error) {
	if addr, ok := m.Find(pattern, start, endex); ok {
		return addr, nil
	}
	return 0, block.ErrNotFound
}

// RIndex is RFind, reporting absence as block.ErrNotFound.
func (m *Memory) RIndex(pattern []byte, start, endex uint64) (uint64, error) {
	if addr, ok := m.RFind(pattern, start, endex); ok {
		return addr, nil
	}
	return 0, block.ErrNotFound
}

// Count returns the number of non-overlapping occurrences of pattern in
// [start, endex), summed per Block.
func (m *Memory) Count(pattern []byte, start, endex uint64) int {
	r := &m.rack
	n := r.Len()
	i := r.IndexStart(start)
	total := 0
	for ; i < n; i++ {
		b := r.At(i)
		if b.Address() >= endex {
			break
		}
		lo, hi := 0, b.Len()
		if start > b.Address() {
			lo = int(start - b.Address())
		}
		if b.Endex() > endex {
			hi = int(endex - b.Address())
		}
		total += b.Count(pattern, lo, hi)
	}
	return total
}

// Contains reports whether pattern occurs anywhere in the Memory's span.
func (m *Memory) Contains(pattern []byte) bool {
	_, ok := m.Find(pattern, m.Start(), m.Endex())
	return ok
}
