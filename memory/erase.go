// Copyright 2024 The bytesparse Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memory

import (
	"github.com/sparsebyte/bytesparse/block"
)

// eraseRange is the single unified mutation primitive (spec.md §4.3.2).
// It removes [start, endex) from the Rack. If shiftAfter, every Block
// beyond the erased range has its address decremented by the erased
// size, closing the gap; if mergeDeletion, a Block immediately preceding
// the range and one immediately following are fused when the gap between
// them closes to zero once the range is gone.
//
// Block address is part of its shared tuple (spec.md §3 invariant 4), so
// any Block whose address this function moves is first run through
// Rack.ConsolidateAt to guarantee unique ownership.
func (m *Memory) eraseRange(start, endex uint64, shiftAfter, mergeDeletion bool, backups *Backups) error {
	if endex < start {
		return block.ErrInvalidRange
	}
	size := endex - start
	if size == 0 {
		return nil
	}

	if backups != nil {
		backups.record(m.snapshot(start, endex))
	}

	r := &m.rack
	i := r.IndexStart(start)

	if i < r.Len() {
		b := r.At(i)
		if b.Address() < start {
			origEndex := b.Endex()
			cb, err := r.ConsolidateAt(i)
			if err != nil {
				return err
			}
			if shiftAfter {
				cutEnd := endex
				if cutEnd > origEndex {
					cutEnd = origEndex
				}
				localStart := int(start - cb.Address())
				localSize := int(cutEnd - start)
				if err := cb.Delete(localStart, localSize); err != nil {
					return err
				}
				if cb.Len() == 0 {
					r.Delete(i, 1)
				} else {
					i++
				}
			} else {
				keep := int(start - cb.Address())
				if origEndex > endex {
					// The same Block also straddles endex: split it in
					// two, since non-shift mode must leave a gap rather
					// than close it.
					rightBytes := append([]byte(nil), cb.Bytes()[int(endex-cb.Address()):]...)
					if err := cb.Delete(keep, cb.Len()-keep); err != nil {
						return err
					}
					rb, err := block.New(endex, rightBytes)
					if err != nil {
						return err
					}
					r.Insert(i+1, rb)
				} else {
					if err := cb.Delete(keep, cb.Len()-keep); err != nil {
						return err
					}
				}
				i++
			}
		}
	}

	for i < r.Len() {
		b := r.At(i)
		if b.Address() >= endex {
			break
		}
		if b.Endex() <= endex {
			r.Delete(i, 1)
			continue
		}
		cb, err := r.ConsolidateAt(i)
		if err != nil {
			return err
		}
		if err := cb.Delete(0, int(endex-cb.Address())); err != nil {
			return err
		}
		break
	}

	if shiftAfter {
		if err := m.shiftBlocksFrom(i, size, false); err != nil {
			return err
		}
	}

	if mergeDeletion {
		m.tryMerge(start)
	}

	m.applyTrim(nil)
	return nil
}

// shiftBlocksFrom translates every Block at slot index >= i by delta:
// forward (grow = true) adds delta to each address, backward (grow =
// false) subtracts it. Each Block is consolidated first since address is
// part of its shared tuple.
func (m *Memory) shiftBlocksFrom(i int, delta uint64, grow bool) error {
	r := &m.rack
	for k := i; k < r.Len(); k++ {
		cb, err := r.ConsolidateAt(k)
		if err != nil {
			return err
		}
		addr := cb.Address()
		if grow {
			addr += delta
		} else {
			addr -= delta
		}
		if err := cb.SetAddress(addr); err != nil {
			return err
		}
	}
	return nil
}

// tryMerge fuses the Block ending at or before address with the one
// starting at or after it, if they now touch exactly.
func (m *Memory) tryMerge(address uint64) {
	r := &m.rack
	i := r.IndexStart(address)
	if i == 0 || i >= r.Len() {
		return
	}
	prev := r.At(i - 1)
	next := r.At(i)
	if prev.Endex() != next.Address() {
		return
	}
	cb, err := r.ConsolidateAt(i - 1)
	if err != nil {
		return
	}
	if err := cb.Append(next.Bytes()); err != nil {
		return
	}
	r.Delete(i, 1)
}

// snapshot returns a new Memory holding a shallow copy of the stored
// data intersecting [start, endex), trimmed to exactly that span. Used
// both for backups and for Extract's fast path.
func (m *Memory) snapshot(start, endex uint64) *Memory {
	out := &Memory{}
	n := m.rack.Len()
	i := m.rack.IndexStart(start)
	for ; i < n; i++ {
		b := m.rack.At(i)
		if b.Address() >= endex {
			break
		}
		b.Acquire()
		out.rack.Insert(out.rack.Len(), b)
	}
	if out.rack.Len() > 0 && out.rack.Start() < start {
		out.eraseRange(out.rack.Start(), start, false, false, nil)
	}
	if out.rack.Len() > 0 && out.rack.Endex() > endex {
		out.eraseRange(endex, out.rack.Endex(), false, false, nil)
	}
	s, e := start, endex
	out.trimStart, out.trimStartSet = s, true
	out.trimEndex, out.trimEndexSet = e, true
	return out
}

// Delete removes [start, endex), shifting everything after it left to
// close the gap.
func (m *Memory) Delete(start, endex uint64, backups *Backups) error {
	if endex < start {
		return block.ErrInvalidRange
	}
	start, endex = m.clampToTrim(start, endex)
	return m.eraseRange(start, endex, true, true, backups)
}

// Clear empties [start, endex) without shifting subsequent data.
func (m *Memory) Clear(start, endex uint64, backups *Backups) error {
	if endex < start {
		return block.ErrInvalidRange
	}
	start, endex = m.clampToTrim(start, endex)
	return m.eraseRange(start, endex, false, false, backups)
}

// Crop discards everything outside [start, endex), via two non-shifting,
// non-merging erasures.
func (m *Memory) Crop(start, endex uint64, backups *Backups) error {
	if endex < start {
		return block.ErrInvalidRange
	}
	if m.rack.Len() == 0 {
		return nil
	}
	contentStart, contentEndex := m.rack.Start(), m.rack.Endex()
	if start > contentStart {
		if err := m.eraseRange(contentStart, start, false, false, backups); err != nil {
			return err
		}
	}
	if m.rack.Len() == 0 {
		return nil
	}
	contentEndex = m.rack.Endex()
	if endex < contentEndex {
		if err := m.eraseRange(endex, contentEndex, false, false, backups); err != nil {
			return err
		}
	}
	return nil
}
