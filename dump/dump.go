// Copyright 2024 The bytesparse Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dump renders a Memory's content for humans: a compact summary
// suitable for logging, and a classic address/hex/ASCII dump suitable
// for inspecting firmware, ROM or EEPROM images byte by byte.
package dump

import (
	"fmt"
	"strings"

	"github.com/sparsebyte/bytesparse/memory"
)

// String summarizes m: its span, size and part count, followed by one
// line per stored interval, each shown as a short hex run. Once
// ContentSize exceeds memory.STRMaxContentSize the interval listing is
// dropped in favor of a one-line summary, so logging a large image
// doesn't flood the output.
func String(m *memory.Memory) string {
	start, endex := m.Span()
	size := m.ContentSize()
	parts := m.ContentParts()

	if size > memory.STRMaxContentSize {
		return fmt.Sprintf("Memory[%#x:%#x) size=%d parts=%d (content omitted, exceeds %d bytes)",
			start, endex, size, parts, memory.STRMaxContentSize)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Memory[%#x:%#x) size=%d parts=%d\n", start, endex, size, parts)
	for _, iv := range m.Intervals(start, endex) {
		sub, err := m.Extract(iv.Start, iv.Endex, nil, 1, false)
		if err != nil {
			continue
		}
		if b, err := sub.ToBytes(); err == nil {
			fmt.Fprintf(&sb, "  [%#x:%#x) % x\n", iv.Start, iv.Endex, b)
		}
		sub.Close()
	}
	return sb.String()
}

// Hex renders [start, endex) as a classic address/hex/ASCII dump,
// bytesPerLine bytes to a row. Addresses with no stored byte render as
// "--" in the hex column and '.' in the ASCII column, distinguishing a
// true gap from a stored zero byte.
func Hex(m *memory.Memory, start, endex uint64, bytesPerLine int) (string, error) {
	if bytesPerLine <= 0 {
		bytesPerLine = 16
	}
	samples, err := m.Values(start, endex, nil)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for i := 0; i < len(samples); i += bytesPerLine {
		end := i + bytesPerLine
		if end > len(samples) {
			end = len(samples)
		}
		row := samples[i:end]
		fmt.Fprintf(&sb, "%08x  ", row[0].Address)
		for _, s := range row {
			if s.Empty {
				sb.WriteString("-- ")
			} else {
				fmt.Fprintf(&sb, "%02x ", s.Value)
			}
		}
		for pad := len(row); pad < bytesPerLine; pad++ {
			sb.WriteString("   ")
		}
		sb.WriteString(" |")
		for _, s := range row {
			switch {
			case s.Empty:
				sb.WriteByte('.')
			case s.Value >= 0x20 && s.Value < 0x7f:
				sb.WriteByte(s.Value)
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteString("|\n")
	}
	return sb.String(), nil
}
