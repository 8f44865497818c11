// Copyright 2024 The bytesparse Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package block

import "bytes"

func clampRange(start, end, n int) (int, int) {
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if end < start {
		end = start
	}
	return start, end
}

// Find scans forward over [start, end) of the live payload (offsets
// clamped to the payload bounds) for the first occurrence of pattern,
// returning its offset and true, or false if absent. A length-1 pattern
// takes a dedicated byte scan; longer patterns use a first-byte
// prefilter before comparing the full run.
func (b *Block) Find(pattern []byte, start, end int) (int, bool) {
	buf := b.Bytes()
	start, end = clampRange(start, end, len(buf))
	m := len(pattern)
	if m == 0 {
		return -1, false
	}
	if m == 1 {
		if i := bytes.IndexByte(buf[start:end], pattern[0]); i >= 0 {
			return start + i, true
		}
		return -1, false
	}
	first := pattern[0]
	for i := start; i+m <= end; i++ {
		if buf[i] != first {
			continue
		}
		if bytes.Equal(buf[i:i+m], pattern) {
			return i, true
		}
	}
	return -1, false
}

// ReverseFind scans backward over [start, end) for the last occurrence
// of pattern.
func (b *Block) ReverseFind(pattern []byte, start, end int) (int, bool) {
	buf := b.Bytes()
	start, end = clampRange(start, end, len(buf))
	m := len(pattern)
	if m == 0 {
		return -1, false
	}
	if m == 1 {
		for i := end - 1; i >= start; i-- {
			if buf[i] == pattern[0] {
				return i, true
			}
		}
		return -1, false
	}
	first := pattern[0]
	for i := end - m; i >= start; i-- {
		if buf[i] != first {
			continue
		}
		if bytes.Equal(buf[i:i+m], pattern) {
			return i, true
		}
	}
	return -1, false
}

// Count returns the number of non-overlapping occurrences of pattern in
// [start, end).
func (b *Block) Count(pattern []byte, start, end int) int {
	if len(pattern) == 0 {
		return 0
	}
	count := 0
	pos := start
	for {
		i, ok := b.Find(pattern, pos, end)
		if !ok {
			return count
		}
		count++
		pos = i + len(pattern)
	}
}
