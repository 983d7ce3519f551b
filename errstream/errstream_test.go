// SPDX-License-Identifier: Unlicense OR MIT

package errstream

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestRedirect(t *testing.T) {
	var buf bytes.Buffer
	prev := Output()
	SetOutput(&buf)
	defer SetOutput(prev)

	Printf("lost %d frames", 3)
	Printf("no trailing newline")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, expected 2: %q", len(lines), buf.String())
	}
	if exp := "[[VRSFML ERROR]]: lost 3 frames"; lines[0] != exp {
		t.Errorf("got %q, expected %q", lines[0], exp)
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Errorf("missing trailing newline in %q", buf.String())
	}
}

func TestDefaultSinkIsStderr(t *testing.T) {
	if Output() == nil {
		t.Fatal("nil default sink")
	}
	if w, ok := Output().(*os.File); ok && w != os.Stderr {
		t.Errorf("default sink is %v, expected stderr", w)
	}
}
