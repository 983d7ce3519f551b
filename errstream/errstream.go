// SPDX-License-Identifier: Unlicense OR MIT

// Package errstream is the process-wide diagnostic stream of the library.
//
// Internal components report non-fatal conditions (context negotiation
// shortfalls, activation failures, decoder oddities) as human readable
// lines. The stream defaults to stderr and can be redirected with
// SetOutput; writing never alters control flow anywhere in the library.
package errstream

import (
	"io"
	"log"
	"os"
	"sync"
)

var (
	mu  sync.Mutex
	out io.Writer = os.Stderr
	lg            = log.New(out, "[[VRSFML ERROR]]: ", 0)
)

// Printf writes one diagnostic line to the stream. A trailing newline is
// appended if missing.
func Printf(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	lg.Printf(format, args...)
}

// SetOutput redirects the stream. Passing io.Discard silences it.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
	lg.SetOutput(w)
}

// Output returns the current sink of the stream.
func Output() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return out
}
