// Copyright 2024 The bytesparse Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scenario

import "testing"

func run(t *testing.T, script string) {
	t.Helper()
	sc, err := Parse(script)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := sc.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestInsertThenMerge(t *testing.T) {
	run(t, `
blocks: 1:ABC 6:xyz
op: insert 8 1
want: 1:ABC 6:xy1z
op: pop 3
want: 1:AB 5:xy1z
`)
}

func TestFloodPreservesContent(t *testing.T) {
	run(t, `
blocks: 1:ABC 6:xyz
op: flood 3 7 123
want: 1:ABC23xyz
`)
}

func TestFillOverwrites(t *testing.T) {
	run(t, `
blocks: 1:ABC 6:xyz
op: fill 3 7 123
want: 1:AB1231yz
`)
}

func TestSliceSetShrink(t *testing.T) {
	run(t, `
blocks: 5:ABC 9:xyz
op: clear 7 10
want: 5:AB 10:yz
`)
}

func TestExtractWithStep(t *testing.T) {
	run(t, `
blocks: 1:ABCD 6:$ 8:xyz
op: extract 1 11 . 3
wantx: 1:AD.z
`)
}

func TestDeleteShiftsAndRecordsBackup(t *testing.T) {
	run(t, `
blocks: 1:ABC 6:xyz
op: delete 2 3
want: 1:AC 5:xyz
wantb: 2:B
`)
}

func TestBadScriptReportsError(t *testing.T) {
	sc, err := Parse("blocks: 1:ABC\nop: frobnicate 1 2\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := sc.Run(); err == nil {
		t.Fatalf("Run: expected an error for an unknown op")
	}
}
