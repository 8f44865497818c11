// Copyright 2024 The bytesparse Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memory

// Append writes v immediately past the Memory's current stored content.
func (m *Memory) Append(v byte) error {
	return m.Poke(m.rack.Endex(), v)
}

// Extend writes items starting offset bytes past the Memory's current
// stored content.
func (m *Memory) Extend(items []byte, offset uint64, backups *Backups) error {
	if len(items) == 0 {
		return nil
	}
	return m.Write(m.rack.Endex()+offset, items, backups)
}

// Pop removes and returns the byte at address, or at the last stored
// address if address is nil. ok is false if there was nothing there to
// remove.
func (m *Memory) Pop(address *uint64, backups *Backups) (v byte, ok bool, err error) {
	var addr uint64
	if address == nil {
		if m.rack.Len() == 0 {
			return 0, false, nil
		}
		addr = m.rack.Endex() - 1
	} else {
		addr = *address
	}
	v, ok = m.Peek(addr)
	if !ok {
		return 0, false, nil
	}
	if err := m.Delete(addr, addr+1, backups); err != nil {
		return 0, false, err
	}
	return v, true, nil
}
