// Copyright 2024 The bytesparse Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rover

import (
	"io"
	"log"
	"os"
)

// PrintDebugInfo sends the package's debug log (one line per disposed
// Rover) to stderr. It is read once, when the package is initialized.
var PrintDebugInfo = false

var logger *log.Logger

func init() {
	w := io.Discard
	if PrintDebugInfo {
		w = os.Stderr
	}
	logger = log.New(w, "rover: ", log.Lshortfile)
}
