// Copyright 2024 The bytesparse Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scenario

import (
	"fmt"
	"strconv"
	"strings"
)

// BlockLit is one literal (address, data) pair as written in a script,
// e.g. "6:xyz".
type BlockLit struct {
	Address uint64
	Data    string
}

func parseBlockLit(word string) (BlockLit, error) {
	idx := strings.IndexByte(word, ':')
	if idx < 0 {
		return BlockLit{}, fmt.Errorf("scenario: %q is not an address:data literal", word)
	}
	addr, err := strconv.ParseUint(word[:idx], 0, 64)
	if err != nil {
		return BlockLit{}, fmt.Errorf("scenario: bad address in %q: %w", word, err)
	}
	return BlockLit{Address: addr, Data: word[idx+1:]}, nil
}

// Step is one directive line beyond the initial setup.
type Step struct {
	Kind string // "op", "want", "wantx", "wantb"
	Op   string // set when Kind == "op"
	Args []string
	Want []BlockLit
}

// Scenario is a fully parsed script: initial state plus an ordered list
// of operations and assertions.
type Scenario struct {
	InitBlocks []BlockLit
	TrimStart  *uint64
	TrimEndex  *uint64
	Steps      []Step
}

// Parse reads a scenario script: one directive per line (blocks:,
// trim_start:, trim_endex:, op:, want:, wantx:, wantb:) followed by its
// space-separated words; '#' starts a comment.
func Parse(script string) (*Scenario, error) {
	sc := NewScanner(script)
	out := &Scenario{}

	for {
		tok := sc.Next()
		if tok.Kind == EOF {
			return out, nil
		}
		if tok.Kind == NEWLINE {
			continue
		}
		if tok.Kind != DIRECTIVE {
			return nil, fmt.Errorf("scenario:%d:%d: expected directive, got %s", tok.Line, tok.Column, tok)
		}

		var words []string
		for {
			w := sc.Next()
			if w.Kind == NEWLINE || w.Kind == EOF {
				break
			}
			words = append(words, w.Text)
		}

		switch tok.Text {
		case "blocks":
			for _, w := range words {
				bl, err := parseBlockLit(w)
				if err != nil {
					return nil, err
				}
				out.InitBlocks = append(out.InitBlocks, bl)
			}
		case "trim_start":
			if len(words) != 1 {
				return nil, fmt.Errorf("scenario:%d: trim_start wants exactly one address", tok.Line)
			}
			v, err := strconv.ParseUint(words[0], 0, 64)
			if err != nil {
				return nil, err
			}
			out.TrimStart = &v
		case "trim_endex":
			if len(words) != 1 {
				return nil, fmt.Errorf("scenario:%d: trim_endex wants exactly one address", tok.Line)
			}
			v, err := strconv.ParseUint(words[0], 0, 64)
			if err != nil {
				return nil, err
			}
			out.TrimEndex = &v
		case "op":
			if len(words) == 0 {
				return nil, fmt.Errorf("scenario:%d: op with no name", tok.Line)
			}
			out.Steps = append(out.Steps, Step{Kind: "op", Op: words[0], Args: words[1:]})
		case "want", "wantx", "wantb":
			var blocks []BlockLit
			for _, w := range words {
				bl, err := parseBlockLit(w)
				if err != nil {
					return nil, err
				}
				blocks = append(blocks, bl)
			}
			out.Steps = append(out.Steps, Step{Kind: tok.Text, Want: blocks})
		default:
			return nil, fmt.Errorf("scenario:%d: unknown directive %q", tok.Line, tok.Text)
		}
	}
}
