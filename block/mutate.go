// Copyright 2024 The bytesparse Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package block

// Reserve inserts size uninitialized (zeroed) bytes at offset within the
// live payload, shifting whichever side (head or tail) holds less data so
// the memmove cost is minimized. It may reallocate; address and ref
// count are always preserved.
func (b *Block) Reserve(offset, size int) error {
	if b.Shared() {
		return LockedError{Addr: b.address}
	}
	if size == 0 {
		return nil
	}
	if size < 0 {
		return OverflowError{Op: "reserve"}
	}
	n := b.Len()
	if offset < 0 || offset > n {
		return IndexOutOfRangeError{Offset: offset, Size: n}
	}

	leftCost := offset
	rightCost := n - offset

	if leftCost <= rightCost {
		if b.head >= size {
			newHead := b.head - size
			copy(b.buf[newHead:newHead+offset], b.buf[b.head:b.head+offset])
			zero(b.buf[newHead+offset : newHead+offset+size])
			b.head = newHead
			return nil
		}
	} else {
		if b.capacity()-b.tail >= size {
			copy(b.buf[b.head+offset+size:b.tail+size], b.buf[b.head+offset:b.tail])
			zero(b.buf[b.head+offset : b.head+offset+size])
			b.tail += size
			return nil
		}
	}

	// Neither direction has enough slack: reallocate.
	newLen := n + size
	capacity := Upsize(b.capacity(), newLen)
	if capacity < newLen {
		capacity = newLen
	}
	margin := (capacity - newLen) / 2
	newBuf, newMM, err := allocBuffer(capacity)
	if err != nil {
		return err
	}
	copy(newBuf[margin:margin+offset], b.buf[b.head:b.head+offset])
	copy(newBuf[margin+offset+size:margin+newLen], b.buf[b.head+offset:b.tail])
	oldMM := b.mm
	b.buf = newBuf
	b.mm = newMM
	b.head = margin
	b.tail = margin + newLen
	releaseBuffer(oldMM)
	return nil
}

// Delete removes size bytes starting at offset from the live payload. If
// offset is 0, the head pointer simply advances (no memmove), which also
// advances the Block's anchor address since the first live byte changes;
// otherwise the tail portion is shifted left over the deleted gap and the
// address is unaffected.
func (b *Block) Delete(offset, size int) error {
	if b.Shared() {
		return LockedError{Addr: b.address}
	}
	if size == 0 {
		return nil
	}
	if size < 0 {
		return OverflowError{Op: "delete"}
	}
	n := b.Len()
	if offset < 0 || size > n-offset || offset > n {
		return IndexOutOfRangeError{Offset: offset, Size: n}
	}

	if offset == 0 {
		b.head += size
		b.address += uint64(size)
		return nil
	}
	copy(b.buf[b.head+offset:b.tail-size], b.buf[b.head+offset+size:b.tail])
	b.tail -= size
	return nil
}

// Append extends the live payload with data at the tail end.
func (b *Block) Append(data []byte) error {
	n := len(data)
	if n == 0 {
		return nil
	}
	if err := b.Reserve(b.Len(), n); err != nil {
		return err
	}
	copy(b.buf[b.tail-n:b.tail], data)
	return nil
}

// Prepend extends the live payload with data at the head end, moving the
// Block's anchor address backward by len(data).
func (b *Block) Prepend(data []byte) error {
	n := len(data)
	if n == 0 {
		return nil
	}
	if err := b.Reserve(0, n); err != nil {
		return err
	}
	copy(b.buf[b.head:b.head+n], data)
	b.address -= uint64(n)
	return nil
}

// Rotate cyclically rotates the live payload left by offset positions
// (negative or out-of-range offsets are normalized modulo the payload
// length). offset == 1 takes a single-walk fast path; any other offset
// uses the three-reversal trick.
func (b *Block) Rotate(offset int) error {
	if b.Shared() {
		return LockedError{Addr: b.address}
	}
	n := b.Len()
	if n == 0 {
		return nil
	}
	offset = ((offset % n) + n) % n
	if offset == 0 {
		return nil
	}
	buf := b.Bytes()
	if offset == 1 {
		first := buf[0]
		copy(buf, buf[1:])
		buf[n-1] = first
		return nil
	}
	reverse(buf[:offset])
	reverse(buf[offset:])
	reverse(buf)
	return nil
}

func reverse(buf []byte) {
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
}

func zero(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}

// resizeTo reallocates the Block's backing storage to hold exactly
// newLen live bytes and calls fill to populate them. fill is invoked
// before the Block's own buf/head/tail fields are reassigned, so it may
// freely read b.Bytes() (the old payload) while writing into dst (the
// new one).
func (b *Block) resizeTo(newLen int, fill func(dst []byte)) error {
	capacity := Upsize(b.capacity(), newLen)
	if capacity < newLen {
		capacity = newLen
	}
	margin := (capacity - newLen) / 2
	newBuf, newMM, err := allocBuffer(capacity)
	if err != nil {
		return err
	}
	fill(newBuf[margin : margin+newLen])
	oldMM := b.mm
	b.buf = newBuf
	b.mm = newMM
	b.head = margin
	b.tail = margin + newLen
	releaseBuffer(oldMM)
	return nil
}

// Repeat enlarges the Block in place by concatenating times whole copies
// of its current content. Repeating an empty Block any number of times
// stays empty.
func (b *Block) Repeat(times int) error {
	if b.Shared() {
		return LockedError{Addr: b.address}
	}
	if times < 0 {
		return OverflowError{Op: "repeat"}
	}
	n := b.Len()
	newLen := n * times
	if n != 0 && newLen/n != times {
		return OverflowError{Op: "repeat"}
	}
	return b.resizeTo(newLen, func(dst []byte) {
		src := b.Bytes()
		for i := 0; i < times; i++ {
			copy(dst[i*n:(i+1)*n], src)
		}
	})
}

// RepeatToSize enlarges the Block in place by tiling whole and partial
// copies of its current content until it reaches exactly target bytes.
// It fails with ErrEmptyBlock when called on a Block with no content.
func (b *Block) RepeatToSize(target int) error {
	if b.Shared() {
		return LockedError{Addr: b.address}
	}
	if target < 0 {
		return OverflowError{Op: "repeat-to-size"}
	}
	n := b.Len()
	if n == 0 {
		return ErrEmptyBlock
	}
	return b.resizeTo(target, func(dst []byte) {
		src := b.Bytes()
		for i := 0; i < len(dst); i += n {
			end := i + n
			if end > len(dst) {
				end = len(dst)
			}
			copy(dst[i:end], src[:end-i])
		}
	})
}
