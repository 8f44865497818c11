// Copyright 2024 The bytesparse Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memory

import (
	"github.com/sparsebyte/bytesparse/block"
	"github.com/sparsebyte/bytesparse/rover"
)

// Extract returns a new Memory holding [start, endex) (spec.md §4.3.7).
// step == 1 takes a fast shallow-clone-and-crop path, optionally flooded
// with pattern; step > 1 walks a Rover, keeping only every step-th
// address (skipping true gaps) and discarding the rest. If bound, the
// result's trim span is set to exactly [start, endex).
func (m *Memory) Extract(start, endex uint64, pattern []byte, step int, bound bool) (*Memory, error) {
	if step <= 0 {
		step = 1
	}
	if endex < start {
		endex = start
	}

	var out *Memory
	if step == 1 {
		out = m.snapshot(start, endex)
		out.trimStartSet = false
		out.trimEndexSet = false
		if len(pattern) > 0 {
			if err := out.Flood(start, endex, pattern, nil); err != nil {
				return nil, err
			}
		}
	} else {
		out = &Memory{}
		rv, err := rover.New(&m.rack, start, endex, rover.Forward, pattern, false)
		if err != nil {
			return nil, err
		}
		defer rv.Dispose()

		// Kept samples (every step-th address) are packed contiguously:
		// a maximal run of consecutive kept, non-gap samples becomes one
		// Block anchored at the run's first absolute address (spec.md
		// §9 "extract with step > 1 yields blocks corresponding to
		// contiguous runs of non-empty samples"); a true gap (no
		// pattern to fill it) ends the current run.
		var runStart uint64
		var runBuf []byte
		flush := func() error {
			if len(runBuf) == 0 {
				return nil
			}
			nb, err := block.New(runStart, runBuf)
			if err != nil {
				return err
			}
			out.rack.Insert(out.rack.Len(), nb)
			runBuf = nil
			return nil
		}

		exhausted := false
		for !exhausted {
			s, err := rv.Next()
			if err != nil {
				if err == block.ErrIterationExhausted {
					break
				}
				return nil, err
			}
			if s.Empty {
				if err := flush(); err != nil {
					return nil, err
				}
			} else {
				if len(runBuf) == 0 {
					runStart = s.Address
				}
				runBuf = append(runBuf, s.Value)
			}
			for k := 0; k < step-1; k++ {
				if _, err := rv.Next(); err != nil {
					if err == block.ErrIterationExhausted {
						exhausted = true
						break
					}
					return nil, err
				}
			}
		}
		if err := flush(); err != nil {
			return nil, err
		}
	}

	if bound {
		s, e := start, endex
		out.SetTrimStart(&s)
		out.SetTrimEndex(&e)
	}
	return out, nil
}
