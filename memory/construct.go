// Copyright 2024 The bytesparse Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memory

import "github.com/sparsebyte/bytesparse/block"

// BlockSpec is one (address, data) pair as accepted by FromBlocks.
type BlockSpec struct {
	Address uint64
	Data    []byte
}

func newBlock(address uint64, data []byte, copyData bool) *block.Block {
	if copyData {
		b, err := block.New(address, data)
		if err != nil {
			// Only allocation failure or a negative size can reach here,
			// neither possible with a non-negative len(data); New never
			// actually fails for this call shape.
			panic(err)
		}
		return b
	}
	return block.NewNoCopy(address, data)
}

// FromBytes builds a single-Block Memory anchored at offset holding
// data. If copyData is false, data is wrapped directly instead of
// copied: the caller must not mutate or retain it elsewhere. If validate
// is true, the result is checked with Validate before returning.
func FromBytes(data []byte, offset uint64, trimStart, trimEndex *uint64, copyData, validate bool) (*Memory, error) {
	m := &Memory{}
	if len(data) > 0 {
		m.rack.Insert(0, newBlock(offset, data, copyData))
	}
	m.SetTrimStart(trimStart)
	m.SetTrimEndex(trimEndex)
	if validate {
		if err := m.Validate(); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// FromBlocks builds a Memory from pre-sorted, non-overlapping,
// non-empty (address, data) pairs, each translated by offset.
func FromBlocks(blocks []BlockSpec, offset uint64, trimStart, trimEndex *uint64, copyData, validate bool) (*Memory, error) {
	m := &Memory{}
	n := 0
	for _, spec := range blocks {
		if len(spec.Data) == 0 {
			continue
		}
		m.rack.Insert(n, newBlock(spec.Address+offset, spec.Data, copyData))
		n++
	}
	m.SetTrimStart(trimStart)
	m.SetTrimEndex(trimEndex)
	if validate {
		if err := m.Validate(); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// FromMemory builds a Memory from other's content translated by offset.
// A true shallow copy (sharing Blocks, bumping ref counts) is only
// possible when offset == 0, since a Block's address is part of its
// shared tuple (spec.md §3 invariant 4): any non-zero offset forces a
// deep copy regardless of deepCopy, since the source and destination
// Blocks would otherwise need to disagree on address while sharing the
// same backing storage.
func FromMemory(other *Memory, offset uint64, trimStart, trimEndex *uint64, deepCopy, validate bool) (*Memory, error) {
	m := &Memory{}
	n := other.rack.Len()
	mustDeepCopy := deepCopy || offset != 0
	for i := 0; i < n; i++ {
		b := other.rack.At(i)
		addr := b.Address() + offset
		if mustDeepCopy {
			m.rack.Insert(i, newBlock(addr, b.Bytes(), true))
			continue
		}
		b.Acquire()
		m.rack.Insert(i, b)
	}
	m.SetTrimStart(trimStart)
	m.SetTrimEndex(trimEndex)
	if validate {
		if err := m.Validate(); err != nil {
			return nil, err
		}
	}
	return m, nil
}
