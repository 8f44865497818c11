// Copyright 2024 The bytesparse Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rover implements the resumable, single-direction cursor that
// walks a Memory's address range yielding either a stored byte or an
// emptiness marker, optionally overlaid with a repeating pattern.
//
// A Rover captures the slot range of the Rack it was built over at
// construction time and does not tolerate concurrent mutation of that
// Rack during a walk (spec.md §5); doing so is undefined.
package rover

import (
	"math"

	"github.com/sparsebyte/bytesparse/block"
	"github.com/sparsebyte/bytesparse/rack"
)

// Direction selects which way a Rover scans addresses.
type Direction int

const (
	// Forward scans from low to high addresses.
	Forward Direction = iota
	// Backward scans from high to low addresses.
	Backward
)

// Sample is one pull from a Rover: either a stored byte (Empty == false)
// or an emptiness marker (Empty == true, Value meaningless), at Address.
type Sample struct {
	Address uint64
	Value   byte
	Empty   bool
}

// Rover is a cursor over [start, endex) of a Rack, in Direction dir,
// optionally overlaid by a non-empty repeating pattern, optionally
// infinite (continuing to yield past the range once exhausted instead of
// failing with block.ErrIterationExhausted).
type Rover struct {
	blocks []*block.Block
	start  uint64
	endex  uint64
	dir    Direction

	pattern      []byte
	patternPhase int
	infinite     bool

	address uint64
	active  bool

	slot int
	cur  *block.Block
	off  int

	disposed bool
}

// New builds a Rover over r's current block list (the slot slice is
// captured as returned by r.Blocks(), aliasing r's storage: mutating r
// during a walk is unsupported, see package doc).
// pattern may be nil (no overlay, gaps yield emptiness) but if non-nil
// must not be empty; an empty pattern is rejected with
// block.ErrInvalidPattern regardless of infinite.
func New(r *rack.Rack, start, endex uint64, dir Direction, pattern []byte, infinite bool) (*Rover, error) {
	if pattern != nil && len(pattern) == 0 {
		return nil, block.ErrInvalidPattern
	}
	if endex < start {
		endex = start
	}
	rv := &Rover{
		blocks:   r.Blocks(),
		start:    start,
		endex:    endex,
		dir:      dir,
		pattern:  pattern,
		infinite: infinite,
	}
	if dir == Forward {
		rv.address = start
	} else if endex > 0 {
		rv.address = endex - 1
	} else {
		rv.address = 0
	}
	rv.active = infinite || start < endex
	if pattern != nil {
		if dir == Forward {
			rv.patternPhase = 0
		} else {
			rv.patternPhase = len(pattern) - 1
		}
	}
	rv.slot = initialSlot(rv.blocks, rv.address)
	return rv, nil
}

func initialSlot(blocks []*block.Block, address uint64) int {
	lo, hi := 0, len(blocks)
	for lo < hi {
		mid := (lo + hi) / 2
		if blocks[mid].Endex() <= address {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// Next pulls the next Sample. In bounded mode, once the range [start,
// endex) is exhausted it returns block.ErrIterationExhausted. In
// infinite mode it keeps yielding the pattern byte (or emptiness, if no
// pattern) past the range forever, until the address would over/underflow
// uint64's range, at which point it too reports
// block.ErrIterationExhausted.
func (rv *Rover) Next() (Sample, error) {
	if !rv.active {
		return Sample{}, block.ErrIterationExhausted
	}
	addr := rv.address
	inRange := addr >= rv.start && addr < rv.endex
	if !inRange && !rv.infinite {
		rv.active = false
		rv.releaseCur()
		return Sample{}, block.ErrIterationExhausted
	}

	sample := Sample{Address: addr}
	if inRange {
		rv.syncBlock(addr)
	} else {
		rv.releaseCur()
	}
	if rv.cur != nil {
		v, _ := rv.cur.At(rv.off)
		sample.Value = v
		rv.stepWithinBlock()
	} else if rv.pattern != nil {
		sample.Value = rv.pattern[rv.patternPhase]
		rv.advancePatternPhase()
	} else {
		sample.Empty = true
	}

	rv.advanceAddress(addr)
	return sample, nil
}

func (rv *Rover) advanceAddress(addr uint64) {
	if rv.dir == Forward {
		if addr == math.MaxUint64 {
			rv.active = false
			return
		}
		rv.address = addr + 1
		return
	}
	if addr == 0 {
		rv.active = false
		return
	}
	rv.address = addr - 1
}

func (rv *Rover) syncBlock(addr uint64) {
	if rv.cur != nil {
		return
	}
	n := len(rv.blocks)
	if rv.slot < 0 {
		rv.slot = 0
	}
	for rv.slot < n && rv.blocks[rv.slot].Endex() <= addr {
		rv.slot++
	}
	for rv.slot > 0 && rv.blocks[rv.slot-1].Endex() > addr {
		rv.slot--
	}
	if rv.slot < n {
		b := rv.blocks[rv.slot]
		if addr >= b.Address() && addr < b.Endex() {
			b.Acquire()
			rv.cur = b
			rv.off = int(addr - b.Address())
		}
	}
}

func (rv *Rover) stepWithinBlock() {
	if rv.dir == Forward {
		rv.off++
		if rv.off >= rv.cur.Len() {
			rv.releaseCur()
			rv.slot++
		}
		return
	}
	rv.off--
	if rv.off < 0 {
		rv.releaseCur()
		rv.slot--
	}
}

func (rv *Rover) advancePatternPhase() {
	if rv.dir == Forward {
		rv.patternPhase++
		if rv.patternPhase >= len(rv.pattern) {
			rv.patternPhase = 0
		}
		return
	}
	rv.patternPhase--
	if rv.patternPhase < 0 {
		rv.patternPhase = len(rv.pattern) - 1
	}
}

func (rv *Rover) releaseCur() {
	if rv.cur != nil {
		rv.cur.Release()
		rv.cur = nil
	}
}

// Dispose releases the Rover's held Block reference, if any. It is safe
// to call more than once. Callers must always Dispose a Rover once done
// with it (spec.md §4.4 "Cancellation / disposal").
func (rv *Rover) Dispose() {
	if rv.disposed {
		return
	}
	rv.releaseCur()
	rv.active = false
	rv.disposed = true
	logger.Printf("rover disposed at address 0x%x", rv.address)
}
