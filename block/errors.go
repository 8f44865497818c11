// Copyright 2024 The bytesparse Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package block

import (
	"errors"
	"fmt"
)

// ErrOutOfMemory is returned when an allocation could not be satisfied.
var ErrOutOfMemory = errors.New("block: out of memory")

// ErrInvalidPattern is returned when an operation that requires a
// non-empty repeating pattern (fill, flood, an infinite rover) is given
// an empty one.
var ErrInvalidPattern = errors.New("block: pattern must not be empty")

// ErrNonContiguous is returned when a contiguous byte view is requested
// over data that has gaps, or whose trim span does not match the
// payload bounds exactly.
var ErrNonContiguous = errors.New("block: data is not contiguous")

// ErrNotFound is returned by index-style lookups (as opposed to find-style
// lookups, which return a not-found sentinel instead of an error).
var ErrNotFound = errors.New("block: item not found")

// ErrIterationExhausted is returned by a bounded Rover pulled past the
// end of its range.
var ErrIterationExhausted = errors.New("block: iteration exhausted")

// ErrInvalidRange is returned by mutating entry points when endex < start
// after address arithmetic. Query-side helpers instead clamp
// endex := max(endex, start); see SPEC_FULL.md "Open Questions".
var ErrInvalidRange = errors.New("block: invalid range (endex before start)")

// ErrEmptyBlock is returned by RepeatToSize when called on a Block with
// no live payload, since there is no content to tile.
var ErrEmptyBlock = errors.New("block: cannot repeat-to-size an empty block")

// OverflowError is returned by any checked address/size arithmetic that
// would wrap a uint64, or by an allocation request that exceeds what a
// Block can represent.
type OverflowError struct {
	Op string // short description of the operation that overflowed
}

func (e OverflowError) Error() string {
	return fmt.Sprintf("block: overflow during %s", e.Op)
}

// IndexOutOfRangeError is returned by positional getters that do not
// clamp their offset to the live payload.
type IndexOutOfRangeError struct {
	Offset int
	Size   int
}

func (e IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("block: offset %d out of range (size %d)", e.Offset, e.Size)
}

// LockedError is returned when an in-place mutator is called on a Block
// whose ref count is greater than one (shared via Rack copy or an
// outstanding View). The caller must clone the block first; seeing this
// error is a programming error, not a recoverable condition.
type LockedError struct {
	Addr uint64
}

func (e LockedError) Error() string {
	return fmt.Sprintf("block: block at 0x%x is locked (shared or viewed)", e.Addr)
}
