// Copyright 2024 The bytesparse Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memory

// Peek returns the byte stored at address and true, or (0, false) if
// address falls in a gap or outside the Memory's span.
func (m *Memory) Peek(address uint64) (byte, bool) {
	i, ok := m.rack.IndexAt(address)
	if !ok {
		return 0, false
	}
	b := m.rack.At(i)
	v, err := b.At(int(address - b.Address()))
	if err != nil {
		return 0, false
	}
	return v, true
}

// Poke writes v at address, taking the fastest applicable path (spec.md
// §4.3.1): in place if address already falls inside a Block, appended or
// prepended to an abutting neighbor (merging the far side if that
// closes a gap), or via the generic erase-then-insert fallback.
func (m *Memory) Poke(address uint64, v byte) error {
	trimStart, trimStartSet := m.TrimStart()
	trimEndex, trimEndexSet := m.TrimEndex()
	if trimStartSet && address < trimStart {
		return nil
	}
	if trimEndexSet && address >= trimEndex {
		return nil
	}

	r := &m.rack
	if i, ok := r.IndexAt(address); ok {
		cb, err := r.ConsolidateAt(i)
		if err != nil {
			return err
		}
		return cb.SetAt(int(address-cb.Address()), v)
	}

	i := r.IndexStart(address)
	if i > 0 {
		prev := r.At(i - 1)
		if prev.Endex() == address {
			cb, err := r.ConsolidateAt(i - 1)
			if err != nil {
				return err
			}
			if err := cb.Append([]byte{v}); err != nil {
				return err
			}
			if i < r.Len() && r.At(i).Address() == cb.Endex() {
				m.tryMerge(cb.Endex())
			}
			return nil
		}
	}
	if i < r.Len() {
		next := r.At(i)
		if next.Address() == address+1 {
			cb, err := r.ConsolidateAt(i)
			if err != nil {
				return err
			}
			if err := cb.Prepend([]byte{v}); err != nil {
				return err
			}
			return nil
		}
	}

	if err := m.eraseRange(address, address+1, false, false, nil); err != nil {
		return err
	}
	return m.insertBytes(address, []byte{v}, false)
}

// PokeNone erases [address, address+1) without shifting what follows,
// leaving a gap.
func (m *Memory) PokeNone(address uint64) error {
	return m.eraseRange(address, address+1, false, false, nil)
}
