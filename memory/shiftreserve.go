// Copyright 2024 The bytesparse Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memory

import (
	"math"

	"github.com/sparsebyte/bytesparse/block"
)

// Shift signed-translates every Block's address (spec.md §4.3.6). A
// negative offset first discards whatever region would otherwise
// underflow past address 0 once shifted, widened to also satisfy
// trim_start if set; a positive offset discards the symmetric trailing
// region against trim_endex. applyTrim runs once more afterward as a
// safety net, matching the "crop after write" idiom spec.md §9 allows.
func (m *Memory) Shift(offset int64, backups *Backups) error {
	if offset == 0 || m.rack.Len() == 0 {
		return nil
	}
	if offset < 0 {
		neg := uint64(-offset)
		start := m.rack.Start()
		cut := neg
		if m.trimStartSet && m.trimStart+neg > cut {
			cut = m.trimStart + neg
		}
		if cut < start {
			cut = start
		}
		if cut > m.rack.Endex() {
			cut = m.rack.Endex()
		}
		if err := m.eraseRange(start, cut, false, false, backups); err != nil {
			return err
		}
		if err := m.shiftBlocksFrom(0, neg, false); err != nil {
			return err
		}
	} else {
		pos := uint64(offset)
		endex := m.rack.Endex()
		start := m.rack.Start()
		cut := endex
		if math.MaxUint64-pos < cut {
			cut = math.MaxUint64 - pos
		}
		if m.trimEndexSet && m.trimEndex >= pos && m.trimEndex-pos < cut {
			cut = m.trimEndex - pos
		} else if m.trimEndexSet && m.trimEndex < pos {
			cut = start
		}
		if cut < start {
			cut = start
		}
		if cut > endex {
			cut = endex
		}
		if err := m.eraseRange(cut, endex, false, false, backups); err != nil {
			return err
		}
		if err := m.shiftBlocksFrom(0, pos, true); err != nil {
			return err
		}
	}
	m.applyTrim(backups)
	return nil
}

// Reserve opens size bytes of empty space at address, splitting the
// containing Block if address falls strictly inside one, and shifting
// every Block from address onward forward by size. The trim-endex bound
// (if set) then crops whatever the move pushed past it.
func (m *Memory) Reserve(address, size uint64, backups *Backups) error {
	if size == 0 {
		return nil
	}
	r := &m.rack

	if i, ok := r.IndexAt(address); ok {
		b := r.At(i)
		if b.Address() < address {
			cb, err := r.ConsolidateAt(i)
			if err != nil {
				return err
			}
			localSplit := int(address - cb.Address())
			rightBytes := append([]byte(nil), cb.Bytes()[localSplit:]...)
			if err := cb.Delete(localSplit, cb.Len()-localSplit); err != nil {
				return err
			}
			rb, err := block.New(address+size, rightBytes)
			if err != nil {
				return err
			}
			r.Insert(i+1, rb)
			if err := m.shiftBlocksFrom(i+2, size, true); err != nil {
				return err
			}
			m.applyTrim(backups)
			return nil
		}
	}

	i := r.IndexStart(address)
	if err := m.shiftBlocksFrom(i, size, true); err != nil {
		return err
	}
	m.applyTrim(backups)
	return nil
}
