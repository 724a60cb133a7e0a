//go:build linux

package repl

import (
	"os"

	"golang.org/x/sys/unix"
)

// termState holds the terminal's original termios so it can be restored
// when the REPL exits, per the raw-mode-toggling half of §5's "synchronous
// line-read suspension point": the REPL's blocking Scan() call is the one
// point PiScript has no cooperative poll over, so Ctrl-C is taken out of
// the kernel's signal-generating path and handed to the VM's own Stop()
// instead of killing the session.
type termState struct {
	fd   int
	orig unix.Termios
	ok   bool
}

// enterRawSignalMode clears ISIG on f's termios so INTR/QUIT bytes arrive
// as ordinary input instead of raising SIGINT/SIGQUIT, leaving ICANON and
// ECHO untouched so line editing and echo keep working exactly as before.
// Returns a state with ok=false when f isn't a real terminal (piped stdin,
// tests), in which case restore is a no-op.
func enterRawSignalMode(f *os.File) *termState {
	fd := int(f.Fd())
	orig, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return &termState{ok: false}
	}
	raw := *orig
	raw.Lflag &^= unix.ISIG
	if err := unix.IoctlSetTermios(fd, unix.TCSETS, &raw); err != nil {
		return &termState{ok: false}
	}
	return &termState{fd: fd, orig: *orig, ok: true}
}

func (t *termState) restore() {
	if t == nil || !t.ok {
		return
	}
	unix.IoctlSetTermios(t.fd, unix.TCSETS, &t.orig)
}
