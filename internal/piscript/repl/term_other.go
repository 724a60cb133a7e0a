//go:build !linux

package repl

import "os"

// termState is a no-op stand-in on platforms where ISIG toggling via
// golang.org/x/sys/unix isn't wired up; the REPL falls back to the
// kernel's normal Ctrl-C handling on those platforms.
type termState struct{}

func enterRawSignalMode(f *os.File) *termState { return &termState{} }

func (t *termState) restore() {}
