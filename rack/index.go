// Copyright 2024 The bytesparse Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rack

// IndexAt returns the slot index whose Block contains address, and true.
// If no Block contains it (the Rack is empty, address precedes the first
// block, or address falls at or past the last block's endex, or address
// lands in a gap between two blocks), it returns (0, false).
//
// IndexAt, IndexStart and IndexEndex are kept consistent: whenever
// IndexAt(a) succeeds, it equals both IndexStart(a) and
// IndexEndex(a+1)-1.
func (r *Rack) IndexAt(address uint64) (int, bool) {
	n := r.Len()
	if n == 0 {
		return 0, false
	}
	if address < r.At(0).Address() || address >= r.At(n-1).Endex() {
		return 0, false
	}
	lo, hi := 0, n
	for lo < hi {
		mid := (lo + hi) / 2
		b := r.At(mid)
		switch {
		case address < b.Address():
			hi = mid
		case address >= b.Endex():
			lo = mid + 1
		default:
			return mid, true
		}
	}
	return 0, false
}

// IndexStart returns the index of the first Block whose Endex() is
// greater than address; equivalently, the slot index at which a new
// block anchored at address would be inserted to keep the Rack sorted.
func (r *Rack) IndexStart(address uint64) int {
	n := r.Len()
	if n == 0 {
		return 0
	}
	if address <= r.At(0).Address() {
		return 0
	}
	if address >= r.At(n-1).Endex() {
		return n
	}
	lo, hi := 0, n
	for lo < hi {
		mid := (lo + hi) / 2
		if r.At(mid).Endex() > address {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}

// IndexEndex returns the index just past the last Block whose Address()
// is less than address.
func (r *Rack) IndexEndex(address uint64) int {
	n := r.Len()
	if n == 0 {
		return 0
	}
	lo, hi := 0, n
	for lo < hi {
		mid := (lo + hi) / 2
		if r.At(mid).Address() < address {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}
