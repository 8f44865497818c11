// Copyright 2024 The bytesparse Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memory

import "github.com/sparsebyte/bytesparse/block"

// expandPattern tiles pattern over [start, endex), phase-aligned to
// absolute address so that repeated calls over adjoining sub-ranges line
// up (spec.md §4.3.5).
func expandPattern(start, endex uint64, pattern []byte) []byte {
	size := endex - start
	buf := make([]byte, size)
	p := uint64(len(pattern))
	for i := range buf {
		buf[i] = pattern[(start+uint64(i))%p]
	}
	return buf
}

// Fill unconditionally overwrites [start, endex) with pattern, tiled and
// phase-aligned to absolute address.
func (m *Memory) Fill(start, endex uint64, pattern []byte, backups *Backups) error {
	if len(pattern) == 0 {
		return block.ErrInvalidPattern
	}
	if endex < start {
		return block.ErrInvalidRange
	}
	if endex == start {
		return nil
	}
	return m.Write(start, expandPattern(start, endex, pattern), backups)
}

// Flood fills only the gaps within [start, endex) with pattern, leaving
// existing bytes untouched. The range first expands to fully absorb any
// Block that overlaps either end, since a partially-overlapped Block
// cannot be left split around a flood.
func (m *Memory) Flood(start, endex uint64, pattern []byte, backups *Backups) error {
	if len(pattern) == 0 {
		return block.ErrInvalidPattern
	}
	if endex < start {
		return block.ErrInvalidRange
	}
	if endex == start {
		return nil
	}

	r := &m.rack
	if i, ok := r.IndexAt(start); ok {
		if b := r.At(i); b.Address() < start {
			start = b.Address()
		}
	}
	if endex > 0 {
		if i, ok := r.IndexAt(endex - 1); ok {
			if b := r.At(i); b.Endex() > endex {
				endex = b.Endex()
			}
		}
	}

	buf := expandPattern(start, endex, pattern)
	i := r.IndexStart(start)
	for ; i < r.Len(); i++ {
		b := r.At(i)
		if b.Address() >= endex {
			break
		}
		bs, be := b.Address(), b.Endex()
		if bs < start {
			bs = start
		}
		if be > endex {
			be = endex
		}
		localDst := int(bs - start)
		localSrc := int(bs - b.Address())
		copy(buf[localDst:localDst+int(be-bs)], b.Bytes()[localSrc:localSrc+int(be-bs)])
	}

	if err := m.eraseRange(start, endex, false, false, backups); err != nil {
		return err
	}
	return m.insertBytes(start, buf, false)
}
