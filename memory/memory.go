// Copyright 2024 The bytesparse Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package memory implements the sparse, byte-addressable container that
// the rest of this module builds toward: a Rack of Blocks plus an
// optional trim span, exposing peek/poke, erase-based mutation, search,
// iteration, algebraic composition and view/backup support over a
// 64-bit address space.
package memory

import (
	"math"

	"github.com/sparsebyte/bytesparse/block"
	"github.com/sparsebyte/bytesparse/rack"
)

// STRMaxContentSize bounds how much block content String includes before
// it falls back to a summary. See spec.md §6, "Sentinel constants".
const STRMaxContentSize = 1000

// Memory is a sparse byte-addressable container: an ordered, gap-aware
// Rack of Blocks plus an optional trim span that silently discards or
// crops any write outside its bounds.
//
// The zero value is a valid, empty, untrimmed Memory.
type Memory struct {
	rack rack.Rack

	trimStart    uint64
	trimStartSet bool
	trimEndex    uint64
	trimEndexSet bool
}

// Backups collects the Memory snapshots of data discarded by backup-aware
// mutators. A nil *Backups (or nil slice) means "don't collect".
type Backups struct {
	Memories []*Memory
}

func (b *Backups) record(m *Memory) {
	if b == nil || m == nil {
		return
	}
	b.Memories = append(b.Memories, m)
}

// New returns an empty Memory with the given optional trim bounds.
func New(trimStart, trimEndex *uint64) *Memory {
	m := &Memory{}
	m.SetTrimStart(trimStart)
	m.SetTrimEndex(trimEndex)
	return m
}

// TrimStart returns the trim-start bound and whether it is set.
func (m *Memory) TrimStart() (uint64, bool) {
	return m.trimStart, m.trimStartSet
}

// TrimEndex returns the trim-endex bound and whether it is set.
func (m *Memory) TrimEndex() (uint64, bool) {
	return m.trimEndex, m.trimEndexSet
}

// SetTrimStart sets (or, given nil, clears) the trim-start bound. Setting
// a bound that now excludes stored content crops the Memory to match
// (invariant 3, spec.md §3).
func (m *Memory) SetTrimStart(addr *uint64) {
	if addr == nil {
		m.trimStartSet = false
		return
	}
	m.trimStart = *addr
	m.trimStartSet = true
	m.applyTrim(nil)
}

// SetTrimEndex sets (or, given nil, clears) the trim-endex bound.
func (m *Memory) SetTrimEndex(addr *uint64) {
	if addr == nil {
		m.trimEndexSet = false
		return
	}
	m.trimEndex = *addr
	m.trimEndexSet = true
	m.applyTrim(nil)
}

// applyTrim crops any content that now falls outside the trim span,
// collecting discarded data into backups if non-nil.
func (m *Memory) applyTrim(backups *Backups) {
	if m.trimStartSet && m.rack.Len() > 0 && m.rack.Start() < m.trimStart {
		m.eraseRange(m.rack.Start(), m.trimStart, false, false, backups)
	}
	if m.trimEndexSet && m.rack.Len() > 0 && m.rack.Endex() > m.trimEndex {
		m.eraseRange(m.trimEndex, m.rack.Endex(), false, false, backups)
	}
}

// clampToTrim intersects [start, endex) with the active trim span.
func (m *Memory) clampToTrim(start, endex uint64) (uint64, uint64) {
	if m.trimStartSet && start < m.trimStart {
		start = m.trimStart
	}
	if m.trimEndexSet && endex > m.trimEndex {
		endex = m.trimEndex
	}
	if endex < start {
		endex = start
	}
	return start, endex
}

// Start returns the lower addressable bound: the trim-start if set,
// otherwise the first stored byte's address, otherwise 0.
func (m *Memory) Start() uint64 {
	if m.trimStartSet {
		return m.trimStart
	}
	return m.rack.Start()
}

// Endex returns the upper addressable bound (exclusive): the trim-endex
// if set, otherwise one past the last stored byte's address, otherwise 0.
func (m *Memory) Endex() uint64 {
	if m.trimEndexSet {
		return m.trimEndex
	}
	return m.rack.Endex()
}

// Endin returns the inclusive upper bound, Endex()-1, or Start() if the
// Memory's span is empty.
func (m *Memory) Endin() uint64 {
	endex := m.Endex()
	start := m.Start()
	if endex <= start {
		return start
	}
	return endex - 1
}

// Span returns (Start(), Endex()).
func (m *Memory) Span() (uint64, uint64) {
	return m.Start(), m.Endex()
}

// ContentStart returns the address of the first stored byte, ignoring
// trim bounds, or 0 if the Memory holds no data.
func (m *Memory) ContentStart() uint64 {
	return m.rack.Start()
}

// ContentEndex returns one past the address of the last stored byte,
// ignoring trim bounds, or 0 if the Memory holds no data.
func (m *Memory) ContentEndex() uint64 {
	return m.rack.Endex()
}

// ContentEndin returns ContentEndex()-1, or ContentStart() if empty.
func (m *Memory) ContentEndin() uint64 {
	endex := m.ContentEndex()
	start := m.ContentStart()
	if endex <= start {
		return start
	}
	return endex - 1
}

// ContentSpan returns (ContentStart(), ContentEndex()).
func (m *Memory) ContentSpan() (uint64, uint64) {
	return m.ContentStart(), m.ContentEndex()
}

// ContentSize returns the total number of live bytes actually stored
// (sum of block lengths, not the span, which may include gaps).
func (m *Memory) ContentSize() uint64 {
	var total uint64
	n := m.rack.Len()
	for i := 0; i < n; i++ {
		total += uint64(m.rack.At(i).Len())
	}
	return total
}

// ContentParts returns the number of stored Blocks.
func (m *Memory) ContentParts() int {
	return m.rack.Len()
}

// Contiguous reports whether the addressable span [Start(), Endex()) is
// covered by exactly one Block with no gaps, or holds no Block and has
// an empty span.
func (m *Memory) Contiguous() bool {
	if m.rack.Len() != 1 {
		return m.rack.Len() == 0 && m.Start() == m.Endex()
	}
	b := m.rack.At(0)
	return b.Address() == m.Start() && b.Endex() == m.Endex()
}

// EqualSpan returns the maximal range around address sharing the same
// "kind" (stored vs. gap) as address itself, and whether address itself
// falls inside stored data.
func (m *Memory) EqualSpan(address uint64) (start, endex uint64, stored bool) {
	n := m.rack.Len()
	i := m.rack.IndexStart(address)
	if i < n {
		b := m.rack.At(i)
		if b.Address() <= address && address < b.Endex() {
			return b.Address(), b.Endex(), true
		}
	}
	// address is in a gap: bounded by the previous block's endex and the
	// next block's start (or the Memory's own span at the extremes).
	start = m.Start()
	if i > 0 {
		start = m.rack.At(i - 1).Endex()
	}
	endex = m.Endex()
	if i < n {
		endex = m.rack.At(i).Address()
	}
	return start, endex, false
}

// BlockSpan returns the bounds of the Block that contains address, and
// whether one was found. Unlike EqualSpan it never describes a gap.
func (m *Memory) BlockSpan(address uint64) (start, endex uint64, ok bool) {
	i, found := m.rack.IndexAt(address)
	if !found {
		return 0, 0, false
	}
	b := m.rack.At(i)
	return b.Address(), b.Endex(), true
}

// Interval is a half-open [Start, Endex) range of stored data.
type Interval struct {
	Start, Endex uint64
}

// Intervals returns the stored (non-gap) ranges intersecting [start, endex).
func (m *Memory) Intervals(start, endex uint64) []Interval {
	var out []Interval
	n := m.rack.Len()
	i := m.rack.IndexStart(start)
	for ; i < n; i++ {
		b := m.rack.At(i)
		if b.Address() >= endex {
			break
		}
		s, e := b.Address(), b.Endex()
		if s < start {
			s = start
		}
		if e > endex {
			e = endex
		}
		if e > s {
			out = append(out, Interval{s, e})
		}
	}
	return out
}

// Gaps returns the empty ranges intersecting [start, endex). If bound is
// true, the first and last gap are clipped to [start, endex); otherwise
// a gap that opens before the first Block in range extends down to
// address 0, and one that runs past the last Block in range extends up
// to ADDR_MAX, rather than clipping to start/endex. Gaps strictly
// between two Blocks are unaffected by bound either way.
func (m *Memory) Gaps(start, endex uint64, bound bool) []Interval {
	var out []Interval
	cursor := start
	n := m.rack.Len()
	i := m.rack.IndexStart(start)
	sawBlock := false
	for ; i < n; i++ {
		b := m.rack.At(i)
		if b.Address() >= endex {
			break
		}
		if b.Address() > cursor {
			gs, ge := cursor, b.Address()
			if !bound && !sawBlock {
				gs = 0
			}
			if ge > gs {
				out = append(out, Interval{gs, ge})
			}
		}
		sawBlock = true
		if b.Endex() > cursor {
			cursor = b.Endex()
		}
	}
	if cursor < endex {
		gs, ge := cursor, endex
		if !bound {
			ge = math.MaxUint64
			if !sawBlock {
				gs = 0
			}
		}
		out = append(out, Interval{gs, ge})
	}
	return out
}

// Validate checks the Block-layout invariants of spec.md §3 (every Block
// non-empty, Blocks ascending and non-overlapping, all content inside the
// trim span, trim bounds in order) and returns the first violation found,
// or nil. Reference counts are not checked.
func (m *Memory) Validate() error {
	n := m.rack.Len()
	var prevEndex uint64
	for i := 0; i < n; i++ {
		b := m.rack.At(i)
		if b.Len() == 0 {
			return block.IndexOutOfRangeError{Offset: i, Size: 0}
		}
		if i > 0 && b.Address() < prevEndex {
			return block.ErrNonContiguous
		}
		if m.trimStartSet && b.Address() < m.trimStart {
			return block.ErrInvalidRange
		}
		if m.trimEndexSet && b.Endex() > m.trimEndex {
			return block.ErrInvalidRange
		}
		prevEndex = b.Endex()
	}
	if m.trimStartSet && m.trimEndexSet && m.trimEndex < m.trimStart {
		return block.ErrInvalidRange
	}
	return nil
}

// Clone returns a shallow copy of m: a new Rack slot array sharing the
// same (ref-count-bumped) Blocks.
func (m *Memory) Clone() *Memory {
	c := &Memory{
		rack:         *m.rack.Clone(),
		trimStart:    m.trimStart,
		trimStartSet: m.trimStartSet,
		trimEndex:    m.trimEndex,
		trimEndexSet: m.trimEndexSet,
	}
	return c
}

// Close releases every Block handle held by m. Call this when m is no
// longer needed.
func (m *Memory) Close() {
	m.rack.ReleaseAll()
}
