// Copyright 2024 The bytesparse Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scenario

import (
	"strings"
	"unicode"
)

const eofRune = -1

// Scanner turns a scenario script into a Token stream, one rune at a
// time, tracking line/column for error messages the way a hand-rolled
// text-format reader does.
type Scanner struct {
	src    []rune
	offset int
	ch     rune

	Line   int
	Column int
	Errors []error
}

// NewScanner returns a Scanner positioned at the start of src.
func NewScanner(src string) *Scanner {
	s := &Scanner{
		src:    []rune(src),
		Line:   1,
		Column: 0,
	}
	s.advance()
	return s
}

func (s *Scanner) advance() {
	if s.offset >= len(s.src) {
		s.ch = eofRune
		return
	}
	s.ch = s.src[s.offset]
	s.offset++
	if s.ch == '\n' {
		s.Line++
		s.Column = 0
	} else {
		s.Column++
	}
}

func (s *Scanner) skipBlanks() {
	for s.ch == ' ' || s.ch == '\t' || s.ch == '\r' {
		s.advance()
	}
}

// Next returns the next Token, ending in a single EOF token once the
// script is exhausted.
func (s *Scanner) Next() Token {
	s.skipBlanks()
	line, col := s.Line, s.Column

	if s.ch == eofRune {
		return Token{Kind: EOF, Line: line, Column: col}
	}
	if s.ch == '\n' {
		s.advance()
		return Token{Kind: NEWLINE, Text: "\n", Line: line, Column: col}
	}
	if s.ch == '#' {
		for s.ch != '\n' && s.ch != eofRune {
			s.advance()
		}
		return s.Next()
	}

	var sb strings.Builder
	for s.ch != eofRune && !unicode.IsSpace(s.ch) {
		sb.WriteRune(s.ch)
		s.advance()
	}
	text := sb.String()
	if strings.HasSuffix(text, ":") && len(text) > 1 {
		return Token{Kind: DIRECTIVE, Text: strings.TrimSuffix(text, ":"), Line: line, Column: col}
	}
	return Token{Kind: WORD, Text: text, Line: line, Column: col}
}
