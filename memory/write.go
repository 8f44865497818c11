// Copyright 2024 The bytesparse Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memory

// Write overwrites [address, address+len(data)) with data (spec.md
// §4.3.4): erase the range without shifting, then insert the bytes. A
// single byte defers to Poke; a pure append past the last stored Block
// extends it directly instead of round-tripping through erase+insert.
// The effective range is clamped to the trim span before any work
// begins, silently dropping bytes that would fall outside it.
func (m *Memory) Write(address uint64, data []byte, backups *Backups) error {
	if len(data) == 0 {
		return nil
	}
	if len(data) == 1 {
		return m.Poke(address, data[0])
	}

	start := address
	endex := address + uint64(len(data))
	clampedStart, clampedEndex := m.clampToTrim(start, endex)
	if clampedEndex <= clampedStart {
		return nil
	}
	data = data[clampedStart-start : uint64(len(data))-(endex-clampedEndex)]
	address = clampedStart

	r := &m.rack
	if r.Len() > 0 {
		if last := r.Last(); last.Endex() == address {
			cb, err := r.ConsolidateAt(r.Len() - 1)
			if err != nil {
				return err
			}
			return cb.Append(data)
		}
	}

	if err := m.eraseRange(address, address+uint64(len(data)), false, false, backups); err != nil {
		return err
	}
	if err := m.insertBytes(address, data, false); err != nil {
		return err
	}
	m.applyTrim(nil)
	return nil
}

// WriteMemory overlays other's content at address + (other's own block
// addresses). If clear, the entire destination span matching other's
// content span is erased first, so other's gaps become gaps in m too;
// otherwise only the addresses other actually stores data at are
// overwritten, leaving m's existing content in other's gaps untouched.
func (m *Memory) WriteMemory(address uint64, other *Memory, clear bool, backups *Backups) error {
	if other == nil || other.rack.Len() == 0 {
		return nil
	}
	if clear {
		start := other.rack.Start() + address
		endex := other.rack.Endex() + address
		if err := m.eraseRange(start, endex, false, false, backups); err != nil {
			return err
		}
	}
	n := other.rack.Len()
	for i := 0; i < n; i++ {
		b := other.rack.At(i)
		data := append([]byte(nil), b.Bytes()...)
		if err := m.Write(b.Address()+address, data, backups); err != nil {
			return err
		}
	}
	m.applyTrim(nil)
	return nil
}
