// Copyright 2024 The bytesparse Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memory

import (
	"github.com/sparsebyte/bytesparse/block"
	"github.com/sparsebyte/bytesparse/rover"
)

// Keys returns every address in [start, endex) that holds stored data.
func (m *Memory) Keys(start, endex uint64) []uint64 {
	var out []uint64
	for _, iv := range m.Intervals(start, endex) {
		for a := iv.Start; a < iv.Endex; a++ {
			out = append(out, a)
		}
	}
	return out
}

func (m *Memory) walk(start, endex uint64, dir rover.Direction, pattern []byte) ([]rover.Sample, error) {
	rv, err := rover.New(&m.rack, start, endex, dir, pattern, false)
	if err != nil {
		return nil, err
	}
	defer rv.Dispose()
	var out []rover.Sample
	for {
		s, err := rv.Next()
		if err != nil {
			if err == block.ErrIterationExhausted {
				break
			}
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Values returns one Sample per address in [start, endex), in ascending
// order: stored bytes, or the pattern (if given) or emptiness otherwise.
func (m *Memory) Values(start, endex uint64, pattern []byte) ([]rover.Sample, error) {
	return m.walk(start, endex, rover.Forward, pattern)
}

// RValues is Values in descending address order.
func (m *Memory) RValues(start, endex uint64, pattern []byte) ([]rover.Sample, error) {
	return m.walk(start, endex, rover.Backward, pattern)
}

// Items is Values with true gaps (Empty, no pattern supplied) omitted.
func (m *Memory) Items(start, endex uint64, pattern []byte) ([]rover.Sample, error) {
	all, err := m.Values(start, endex, pattern)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, s := range all {
		if !s.Empty {
			out = append(out, s)
		}
	}
	return out, nil
}
