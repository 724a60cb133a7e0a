package vm_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rolandbrake/piscript/internal/piscript/compiler"
	"github.com/rolandbrake/piscript/internal/piscript/vm"
)

func run(t *testing.T, src string) string {
	t.Helper()
	proto, err := compiler.Compile(src)
	if err != nil {
		t.Fatalf("Compile(%q) returned error: %v", src, err)
	}
	m := vm.New()
	var out bytes.Buffer
	m.Stdout = &out
	if err := m.Run(proto); err != nil {
		t.Fatalf("Run(%q) returned error: %v", src, err)
	}
	return out.String()
}

func TestArithmeticAndPrint(t *testing.T) {
	cases := map[string]string{
		"print(1 + 2 * 3);":      "7\n",
		"print(2 ** 10);":        "1024\n",
		"print(10 % 3);":         "1\n",
		"print(!false);":         "true\n",
		"print(1 < 2 && 2 < 3);": "true\n",
	}
	for src, want := range cases {
		if got := run(t, src); got != want {
			t.Errorf("run(%q) = %q, want %q", src, got, want)
		}
	}
}

func TestLetAndReassignment(t *testing.T) {
	got := run(t, `let x = 1; x = x + 41; print(x);`)
	if got != "42\n" {
		t.Errorf("got %q, want %q", got, "42\n")
	}
}

func TestClosureCapturesUpvalueAcrossCalls(t *testing.T) {
	got := run(t, `
		fun mk(n) { fun inc() { n += 1; return n; } return inc; }
		let c = mk(10);
		print(c());
		print(c());
		print(c());
	`)
	want := "11\n12\n13\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRecursiveFunction(t *testing.T) {
	got := run(t, `
		fun fib(n) { if (n < 2) return n; return fib(n-1) + fib(n-2); }
		print(fib(10));
	`)
	if strings.TrimSpace(got) != "55" {
		t.Errorf("fib(10) printed %q, want 55", got)
	}
}

func TestWhileLoopWithBreakAndContinue(t *testing.T) {
	got := run(t, `
		let i = 0;
		let sum = 0;
		while (i < 10) {
			i += 1;
			if (i % 2 == 0) continue;
			if (i > 7) break;
			sum += i;
		}
		print(sum);
	`)
	// odd i in 1..7: 1+3+5+7 = 16
	if strings.TrimSpace(got) != "16" {
		t.Errorf("got %q, want 16", got)
	}
}

func TestListIndexingAndLength(t *testing.T) {
	got := run(t, `
		let xs = [10, 20, 30];
		print(xs[1]);
		print(#xs);
		print(xs[-1]);
	`)
	want := "20\n3\n30\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestForInOverRange(t *testing.T) {
	got := run(t, `
		let total = 0;
		for (i in 0..5) { total += i; }
		print(total);
	`)
	if strings.TrimSpace(got) != "10" {
		t.Errorf("got %q, want 10 (0+1+2+3+4)", got)
	}
}

func TestRuntimeErrorOnUndefinedGlobal(t *testing.T) {
	proto, err := compiler.Compile("print(undefinedThing);")
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	m := vm.New()
	var out bytes.Buffer
	m.Stdout = &out
	if err := m.Run(proto); err == nil {
		t.Fatalf("expected a runtime error referencing an undefined global")
	}
}

func TestStopCancelsExecutionAtSafePoint(t *testing.T) {
	proto, err := compiler.Compile(`
		let i = 0;
		while (true) { i += 1; }
	`)
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	m := vm.New()

	done := make(chan error, 1)
	go func() { done <- m.Run(proto) }()

	for !m.Running() {
		// spin until the dispatch loop has actually started
	}
	m.Stop()

	if err := <-done; err == nil {
		t.Errorf("expected Run to report cancellation after Stop, got nil error")
	}
}
