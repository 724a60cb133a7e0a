// Package repl implements the minimal cooperating shell loop the `run`
// subcommand falls into when invoked with no file argument. Full shell UI
// (history, multi-line editing, tab completion) is out of scope; this is
// the smallest loop that reads a line, compiles it, and runs it against a
// persistent VM, grounded on chippy's cmd/run.go + VM.Run clock/select
// pattern, generalized from a ticking 60Hz hardware clock to a synchronous
// read-eval-print cycle since PiScript's VM has no external clock to poll.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rolandbrake/piscript/internal/piscript/compiler"
	"github.com/rolandbrake/piscript/internal/piscript/host"
	"github.com/rolandbrake/piscript/internal/piscript/langerr"
	"github.com/rolandbrake/piscript/internal/piscript/vm"
)

const prompt = "pi> "

// interruptByte is the INTR character (Ctrl-C) a terminal no longer turns
// into SIGINT once enterRawSignalMode has cleared ISIG; the REPL reads it
// back out of the line itself and stops the VM the same cooperative way
// any other safe-point check does.
const interruptByte = 0x03

// REPL owns the persistent VM every line is evaluated against, so
// variables and function definitions survive across lines the way a
// shell session expects.
type REPL struct {
	vm          *vm.VM
	in          *bufio.Scanner
	out         io.Writer
	stdinReader io.Reader
}

// New constructs a REPL reading lines from in and writing prompts/output
// to out, with a freshly registered host surface.
func New(in io.Reader, out io.Writer) *REPL {
	m := vm.New()
	m.Stdout = out
	host.Register(m)
	return &REPL{vm: m, in: bufio.NewScanner(in), out: out, stdinReader: in}
}

// Run drives the read-compile-execute loop until input ends (EOF or a read
// error); no compile or runtime error ends the loop. Compile errors
// print and resume at the next prompt (§4.10's REPL error handler);
// runtime errors do the same, since a crashed statement shouldn't kill the
// whole session.
//
// The blocking Scan() call below is the one point in the whole program
// PiScript's cooperative scheduler has no poll over, so when stdin is a
// real terminal its ISIG bit is cleared for the duration of the loop:
// Ctrl-C arrives as an ordinary byte instead of killing the process, and
// gets routed to the VM's own Stop() instead.
func (r *REPL) Run() {
	if f, ok := r.stdinFile(); ok {
		ts := enterRawSignalMode(f)
		defer ts.restore()
	}

	fmt.Fprintln(r.out, "piscript repl — Ctrl-D to exit, Ctrl-C to stop a running script")
	for {
		fmt.Fprint(r.out, prompt)
		if !r.in.Scan() {
			fmt.Fprintln(r.out)
			return
		}
		line := r.in.Text()
		if strings.ContainsRune(line, interruptByte) {
			r.vm.Stop()
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		r.evalLine(line)
	}
}

// stdinFile reports whether the REPL is reading from a real *os.File, the
// only case raw-mode ISIG toggling applies to; piped input or an
// in-memory reader (as in tests) just skips it.
func (r *REPL) stdinFile() (*os.File, bool) {
	f, ok := r.stdinReader.(*os.File)
	return f, ok
}

func (r *REPL) evalLine(line string) {
	src := wrapForDisplay(line)
	proto, err := compiler.Compile(src)
	if err != nil {
		r.reportError(err)
		return
	}
	if err := r.vm.Run(proto); err != nil {
		r.reportError(err)
	}
}

// wrapForDisplay heuristically treats a line that looks like a bare
// expression (doesn't start with a statement keyword and doesn't already
// end a block/statement) as something whose value the user wants echoed,
// wrapping it in a print() call. Anything else compiles unchanged.
func wrapForDisplay(line string) string {
	trimmed := strings.TrimSpace(line)
	if looksLikeStatement(trimmed) {
		return line
	}
	return fmt.Sprintf("print(%s)", trimmed)
}

var statementPrefixes = []string{
	"let ", "fun ", "if ", "if(", "while ", "while(", "for ", "for(",
	"return", "break", "continue", "print(",
}

func looksLikeStatement(line string) bool {
	if strings.HasSuffix(line, ";") || strings.HasSuffix(line, "}") {
		return true
	}
	for _, p := range statementPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

func (r *REPL) reportError(err error) {
	if le, ok := err.(*langerr.Error); ok {
		fmt.Fprintln(r.out, le.Error())
		return
	}
	fmt.Fprintln(r.out, err.Error())
}
