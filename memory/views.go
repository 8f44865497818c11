// Copyright 2024 The bytesparse Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memory

import "github.com/sparsebyte/bytesparse/block"

// ToBytes returns a fresh copy of the Memory's content, which must be
// Contiguous across its full span or this fails with
// block.ErrNonContiguous.
func (m *Memory) ToBytes() ([]byte, error) {
	if !m.Contiguous() {
		return nil, block.ErrNonContiguous
	}
	if m.rack.Len() == 0 {
		return []byte{}, nil
	}
	return append([]byte(nil), m.rack.At(0).Bytes()...), nil
}

// ToMutableBytes returns a direct, mutable view of the Memory's single
// contiguous Block (failing the same way as ToBytes otherwise), plus a
// release function the caller must call when done. While the view is
// outstanding the Block is frozen: any attempted in-place mutation
// elsewhere sees it as shared and clones instead (spec.md §3,
// "a public view of a Block ... while any view exists, that Block is
// frozen").
func (m *Memory) ToMutableBytes() ([]byte, func(), error) {
	if !m.Contiguous() {
		return nil, nil, block.ErrNonContiguous
	}
	if m.rack.Len() == 0 {
		return []byte{}, func() {}, nil
	}
	b := m.rack.At(0)
	b.Acquire()
	return b.Bytes(), b.Release, nil
}
