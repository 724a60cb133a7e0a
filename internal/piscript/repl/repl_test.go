package repl

import (
	"bytes"
	"strings"
	"testing"
)

func TestEvalLinePrintsExpressionValue(t *testing.T) {
	var out bytes.Buffer
	r := New(strings.NewReader(""), &out)

	r.evalLine("1 + 2")

	if got := out.String(); !strings.Contains(got, "3") {
		t.Errorf("output = %q, want it to contain 3", got)
	}
}

func TestEvalLineRunsLetStatement(t *testing.T) {
	var out bytes.Buffer
	r := New(strings.NewReader(""), &out)

	r.evalLine("let x = 41")
	r.evalLine("x + 1")

	if got := out.String(); !strings.Contains(got, "42") {
		t.Errorf("output = %q, want it to contain 42", got)
	}
}

func TestEvalLineReportsCompileError(t *testing.T) {
	var out bytes.Buffer
	r := New(strings.NewReader(""), &out)

	r.evalLine("let let let")

	if got := out.String(); !strings.Contains(got, "error") {
		t.Errorf("output = %q, want an error message", got)
	}
}

func TestRunSkipsEvalOnInterruptByte(t *testing.T) {
	var out bytes.Buffer
	in := string(rune(interruptByte)) + "\n"
	r := New(strings.NewReader(in), &out)

	r.Run()

	if got := out.String(); strings.Contains(got, "error") {
		t.Errorf("output = %q, interrupt-byte line should be routed to Stop(), not compiled", got)
	}
}

func TestLooksLikeStatement(t *testing.T) {
	cases := map[string]bool{
		"let x = 1":  true,
		"1 + 2":      false,
		"foo();":     true,
		"if x { 1 }": true,
	}
	for line, want := range cases {
		if got := looksLikeStatement(line); got != want {
			t.Errorf("looksLikeStatement(%q) = %v, want %v", line, got, want)
		}
	}
}
