// Copyright 2024 The bytesparse Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memory

// Add concatenates other's content onto m starting at m's current
// content Endex (spec.md §6, "a + b"). Go has no operator overloading,
// so this is the `+=` form; callers wanting `a + b` should Clone a first.
func (m *Memory) Add(other *Memory) error {
	if other == nil || other.rack.Len() == 0 {
		return nil
	}
	dest := m.rack.Endex()
	offset := dest - other.rack.Start()
	return m.WriteMemory(offset, other, false, nil)
}

// Mul tiles m's current [ContentStart, ContentEndex) span n times in
// place (spec.md §6, "a *= n"). n <= 0 empties the Memory; n == 1 is a
// no-op.
func (m *Memory) Mul(n int) error {
	if n <= 0 {
		return m.Clear(m.rack.Start(), m.rack.Endex(), nil)
	}
	if n == 1 || m.rack.Len() == 0 {
		return nil
	}
	span := m.rack.Endex() - m.rack.Start()
	if span == 0 {
		return nil
	}
	base := m.Clone()
	defer base.Close()
	for k := 1; k < n; k++ {
		if err := m.WriteMemory(uint64(k)*span, base, false, nil); err != nil {
			return err
		}
	}
	return nil
}
