// Copyright 2024 The bytesparse Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scenario

import (
	"fmt"
	"strconv"

	"github.com/sparsebyte/bytesparse/memory"
)

// op is one operation a scenario script can drive. Each builds the
// memory.Memory call out of a Step's Args and records backups (and, for
// "extract", the resulting Memory) for a later wantb/wantx assertion.
var ops = map[string]func(m *memory.Memory, args []string, backups *memory.Backups) (*memory.Memory, error){
	"insert": func(m *memory.Memory, args []string, backups *memory.Backups) (*memory.Memory, error) {
		addr, data, err := parseAddrData(args)
		if err != nil {
			return nil, err
		}
		return nil, m.Insert(addr, data)
	},
	"write": func(m *memory.Memory, args []string, backups *memory.Backups) (*memory.Memory, error) {
		addr, data, err := parseAddrData(args)
		if err != nil {
			return nil, err
		}
		return nil, m.Write(addr, data, backups)
	},
	"delete": func(m *memory.Memory, args []string, backups *memory.Backups) (*memory.Memory, error) {
		start, endex, err := parseRange(args)
		if err != nil {
			return nil, err
		}
		return nil, m.Delete(start, endex, backups)
	},
	"clear": func(m *memory.Memory, args []string, backups *memory.Backups) (*memory.Memory, error) {
		start, endex, err := parseRange(args)
		if err != nil {
			return nil, err
		}
		return nil, m.Clear(start, endex, backups)
	},
	"crop": func(m *memory.Memory, args []string, backups *memory.Backups) (*memory.Memory, error) {
		start, endex, err := parseRange(args)
		if err != nil {
			return nil, err
		}
		return nil, m.Crop(start, endex, backups)
	},
	"fill": func(m *memory.Memory, args []string, backups *memory.Backups) (*memory.Memory, error) {
		start, endex, pattern, err := parseRangePattern(args)
		if err != nil {
			return nil, err
		}
		return nil, m.Fill(start, endex, pattern, backups)
	},
	"flood": func(m *memory.Memory, args []string, backups *memory.Backups) (*memory.Memory, error) {
		start, endex, pattern, err := parseRangePattern(args)
		if err != nil {
			return nil, err
		}
		return nil, m.Flood(start, endex, pattern, backups)
	},
	"shift": func(m *memory.Memory, args []string, backups *memory.Backups) (*memory.Memory, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("shift wants exactly one offset, got %d args", len(args))
		}
		offset, err := strconv.ParseInt(args[0], 0, 64)
		if err != nil {
			return nil, fmt.Errorf("shift: bad offset %q: %w", args[0], err)
		}
		return nil, m.Shift(offset, backups)
	},
	"reserve": func(m *memory.Memory, args []string, backups *memory.Backups) (*memory.Memory, error) {
		addr, size, err := parseTwoUints(args)
		if err != nil {
			return nil, err
		}
		return nil, m.Reserve(addr, size, backups)
	},
	"pop": func(m *memory.Memory, args []string, backups *memory.Backups) (*memory.Memory, error) {
		var addr *uint64
		if len(args) == 1 {
			v, err := strconv.ParseUint(args[0], 0, 64)
			if err != nil {
				return nil, fmt.Errorf("pop: bad address %q: %w", args[0], err)
			}
			addr = &v
		} else if len(args) != 0 {
			return nil, fmt.Errorf("pop wants zero or one address args, got %d", len(args))
		}
		_, _, err := m.Pop(addr, backups)
		return nil, err
	},
	"extract": func(m *memory.Memory, args []string, backups *memory.Backups) (*memory.Memory, error) {
		if len(args) < 2 {
			return nil, fmt.Errorf("extract wants at least start and endex, got %d args", len(args))
		}
		start, endex, err := parseRange(args[:2])
		if err != nil {
			return nil, err
		}
		var pattern []byte
		stepN := 1
		bound := false
		rest := args[2:]
		if len(rest) > 0 && rest[0] != "-" {
			pattern = []byte(rest[0])
		}
		if len(rest) > 1 {
			n, err := strconv.Atoi(rest[1])
			if err != nil {
				return nil, fmt.Errorf("extract: bad step %q: %w", rest[1], err)
			}
			stepN = n
		}
		if len(rest) > 2 {
			bound = rest[2] == "bound"
		}
		return m.Extract(start, endex, pattern, stepN, bound)
	},
}

func parseUint(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("bad address %q: %w", s, err)
	}
	return v, nil
}

func parseRange(args []string) (start, endex uint64, err error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("op wants exactly start and endex, got %d args", len(args))
	}
	if start, err = parseUint(args[0]); err != nil {
		return 0, 0, err
	}
	if endex, err = parseUint(args[1]); err != nil {
		return 0, 0, err
	}
	return start, endex, nil
}

func parseTwoUints(args []string) (a, b uint64, err error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("op wants exactly two addresses, got %d args", len(args))
	}
	if a, err = parseUint(args[0]); err != nil {
		return 0, 0, err
	}
	if b, err = parseUint(args[1]); err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func parseAddrData(args []string) (addr uint64, data []byte, err error) {
	if len(args) != 2 {
		return 0, nil, fmt.Errorf("op wants exactly address and data, got %d args", len(args))
	}
	if addr, err = parseUint(args[0]); err != nil {
		return 0, nil, err
	}
	return addr, []byte(args[1]), nil
}

func parseRangePattern(args []string) (start, endex uint64, pattern []byte, err error) {
	if len(args) != 3 {
		return 0, 0, nil, fmt.Errorf("op wants exactly start, endex and pattern, got %d args", len(args))
	}
	if start, err = parseUint(args[0]); err != nil {
		return 0, 0, nil, err
	}
	if endex, err = parseUint(args[1]); err != nil {
		return 0, 0, nil, err
	}
	return start, endex, []byte(args[2]), nil
}

// blockBytes reads back the live data m stores over [start, endex) via
// Extract's step==1 fast path, so the runner never needs direct access
// to unexported Rack internals.
func blockBytes(m *memory.Memory, start, endex uint64) ([]byte, error) {
	sub, err := m.Extract(start, endex, nil, 1, true)
	if err != nil {
		return nil, err
	}
	defer sub.Close()
	return sub.ToBytes()
}

// compareBlocks checks m's stored (non-gap) content against want, in
// address order.
func compareBlocks(m *memory.Memory, want []BlockLit) error {
	start, endex := m.Span()
	ivs := m.Intervals(start, endex)
	if len(ivs) != len(want) {
		return fmt.Errorf("block count: got %d %v, want %d %v", len(ivs), ivs, len(want), want)
	}
	for i, iv := range ivs {
		wb := want[i]
		if iv.Start != wb.Address {
			return fmt.Errorf("block %d: address got %d, want %d", i, iv.Start, wb.Address)
		}
		data, err := blockBytes(m, iv.Start, iv.Endex)
		if err != nil {
			return fmt.Errorf("block %d at %d: %w", i, iv.Start, err)
		}
		if string(data) != wb.Data {
			return fmt.Errorf("block %d at %d: got %q, want %q", i, iv.Start, data, wb.Data)
		}
	}
	return nil
}

// compareBackupBlocks flattens every recorded backup Memory's stored
// content, in recording order, and checks it against want.
func compareBackupBlocks(backups []*memory.Memory, want []BlockLit) error {
	var got []BlockLit
	for _, b := range backups {
		start, endex := b.ContentSpan()
		for _, iv := range b.Intervals(start, endex) {
			data, err := blockBytes(b, iv.Start, iv.Endex)
			if err != nil {
				return err
			}
			got = append(got, BlockLit{Address: iv.Start, Data: string(data)})
		}
	}
	if len(got) != len(want) {
		return fmt.Errorf("backup block count: got %d %v, want %d %v", len(got), got, len(want), want)
	}
	for i, g := range got {
		if g != want[i] {
			return fmt.Errorf("backup block %d: got %+v, want %+v", i, g, want[i])
		}
	}
	return nil
}

// Run builds a Memory from sc's initial blocks and trim bounds, drives
// every op in order, and checks every want/wantx/wantb assertion as it
// is reached. It returns the first mismatch found, or nil if the whole
// script held.
func (sc *Scenario) Run() error {
	specs := make([]memory.BlockSpec, len(sc.InitBlocks))
	for i, bl := range sc.InitBlocks {
		specs[i] = memory.BlockSpec{Address: bl.Address, Data: []byte(bl.Data)}
	}
	m, err := memory.FromBlocks(specs, 0, sc.TrimStart, sc.TrimEndex, true, true)
	if err != nil {
		return fmt.Errorf("scenario: init: %w", err)
	}
	defer m.Close()

	var lastBackups []*memory.Memory
	var lastExtract *memory.Memory
	defer func() {
		if lastExtract != nil {
			lastExtract.Close()
		}
	}()

	for n, step := range sc.Steps {
		switch step.Kind {
		case "op":
			fn, ok := ops[step.Op]
			if !ok {
				return fmt.Errorf("scenario: step %d: unknown op %q", n, step.Op)
			}
			var backups memory.Backups
			out, err := fn(m, step.Args, &backups)
			if err != nil {
				return fmt.Errorf("scenario: step %d (%s): %w", n, step.Op, err)
			}
			lastBackups = backups.Memories
			if lastExtract != nil {
				lastExtract.Close()
			}
			lastExtract = out
		case "want":
			if err := compareBlocks(m, step.Want); err != nil {
				return fmt.Errorf("scenario: step %d (want): %w", n, err)
			}
		case "wantx":
			if lastExtract == nil {
				return fmt.Errorf("scenario: step %d (wantx): no preceding extract", n)
			}
			if err := compareBlocks(lastExtract, step.Want); err != nil {
				return fmt.Errorf("scenario: step %d (wantx): %w", n, err)
			}
		case "wantb":
			if err := compareBackupBlocks(lastBackups, step.Want); err != nil {
				return fmt.Errorf("scenario: step %d (wantb): %w", n, err)
			}
		default:
			return fmt.Errorf("scenario: step %d: unknown step kind %q", n, step.Kind)
		}
	}
	return nil
}
