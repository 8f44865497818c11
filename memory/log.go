// Copyright 2024 The bytesparse Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memory

import (
	"io"
	"log"
	"os"
)

// PrintDebugInfo sends the package's debug log to stderr instead of
// discarding it. It is read once, when the package is initialized. The
// memory package does not currently write anything to this log.
var PrintDebugInfo = false

var logger *log.Logger

func init() {
	w := io.Discard
	if PrintDebugInfo {
		w = os.Stderr
	}
	logger = log.New(w, "memory: ", log.Lshortfile)
}
