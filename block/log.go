// Copyright 2024 The bytesparse Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package block

import (
	"io"
	"log"
	"os"
)

// PrintDebugInfo sends the package's debug log to stderr instead of
// discarding it. It is off by default and is read once, when the package
// is initialized, so changing it at run time has no effect. The block
// package logs only failures to unmap an mmap-backed buffer.
var PrintDebugInfo = false

var logger *log.Logger

func init() {
	w := io.Discard
	if PrintDebugInfo {
		w = os.Stderr
	}
	logger = log.New(w, "block: ", log.Lshortfile)
}
