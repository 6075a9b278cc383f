// ABOUTME: RestoreOnPanic releases terminal sessions, reports the panic, and exits.
// ABOUTME: Intended for use as a deferred call at the top of main.

package terminal

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
)

// RestoreOnPanic should be deferred at the top of main. On panic it
// releases the given sessions (already-released ones are no-ops), prints
// the panic value and stack trace to stderr, then exits with code 1.
func RestoreOnPanic(rs ...Releaser) {
	r := recover()
	if r == nil {
		return
	}
	releaseAfterPanic(os.Stderr, r, debug.Stack(), rs...)
	os.Exit(1)
}

// releaseAfterPanic is the testable part of RestoreOnPanic.
func releaseAfterPanic(w io.Writer, r any, stack []byte, rs ...Releaser) {
	for _, rel := range rs {
		if rel == nil {
			continue
		}
		_ = rel.Release()
	}
	fmt.Fprintf(w, "\npanic: %v\n\n%s\n", r, stack)
}
