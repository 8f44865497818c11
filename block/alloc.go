// Copyright 2024 The bytesparse Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package block

import (
	"github.com/edsrzf/mmap-go"
)

// Margin governs the head/tail slack reserved on either side of a Block's
// live payload, and the alignment granularity used by Upsize/Downsize.
// Any value >= 2 preserves correctness; this is a tuning knob, not a
// correctness property (spec.md §9 "Allocation margins").
const Margin = 8

// MmapThreshold is the capacity above which a Block's backing buffer is
// requested from the OS via an anonymous mmap instead of the Go heap.
// Firmware/ROM-image editors (spec.md §1) occasionally need a handful of
// very large populated islands; mmap keeps those off the GC-scanned heap.
const MmapThreshold = 4 << 20 // 4 MiB

func alignUp(n, align int) int {
	if align <= 0 {
		return n
	}
	if n <= 0 {
		return 0
	}
	return (n + align - 1) / align * align
}

// Upsize computes the new capacity for a Block whose live payload is
// growing from current bytes of backing storage to hold at least
// requested bytes. Small growth steps (within one eighth of current
// capacity) get an extra eighth of slack on top of the request so that
// repeated small appends/prepends amortize; larger jumps are sized to
// exactly what was asked for, then aligned.
func Upsize(current, requested int) int {
	size := requested
	if requested <= current+current/8 {
		size = requested + requested/8
	}
	return alignUp(size, 2*Margin)
}

// Downsize computes the new capacity for a Block shrinking to requested
// bytes. Capacity is only actually reduced when requested falls under
// half of current, to avoid thrashing on alternating grow/shrink
// sequences; otherwise the current capacity is kept as-is.
func Downsize(current, requested int) int {
	if requested < current/2 {
		return alignUp(requested, 2*Margin)
	}
	return current
}

// allocBuffer returns a capacity-sized byte slice, routed through an
// anonymous mmap for capacities at or above MmapThreshold. The returned
// region, when backed by mmap, must be released via releaseBuffer.
func allocBuffer(capacity int) ([]byte, mmap.MMap, error) {
	if capacity < MmapThreshold {
		return make([]byte, capacity), nil, nil
	}
	m, err := mmap.MapRegion(nil, capacity, mmap.RDWR, mmap.ANON, 0)
	if err != nil {
		return nil, nil, ErrOutOfMemory
	}
	return []byte(m), m, nil
}

func releaseBuffer(m mmap.MMap) {
	if m == nil {
		return
	}
	if err := m.Unmap(); err != nil {
		logger.Printf("unmap failed: %v", err)
	}
}
