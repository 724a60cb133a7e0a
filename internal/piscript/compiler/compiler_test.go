package compiler

import (
	"strings"
	"testing"
)

func TestCompileEndsWithHalt(t *testing.T) {
	proto, err := Compile("1 + 1;")
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	code := proto.Bytecode()
	if len(code) == 0 {
		t.Fatalf("expected non-empty bytecode")
	}
	if Op(code[len(code)-1]) != OpHalt {
		t.Errorf("last opcode = %v, want HALT", Op(code[len(code)-1]))
	}
}

func TestCompileReservesConstantPoolHeader(t *testing.T) {
	proto, err := Compile("1;")
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	pool := proto.ConstPool()
	if len(pool) < 4 {
		t.Fatalf("constant pool has %d entries, want at least the 4 reserved slots", len(pool))
	}
	if !pool[constTrue].IsBool() || !pool[constTrue].AsBoolRaw() {
		t.Errorf("constant pool slot %d is not `true`", constTrue)
	}
	if !pool[constFalse].IsBool() || pool[constFalse].AsBoolRaw() {
		t.Errorf("constant pool slot %d is not `false`", constFalse)
	}
}

func TestPrintCallEmitsPrintOpcode(t *testing.T) {
	proto, err := Compile(`print(1 + 2);`)
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	found := false
	for _, b := range proto.Bytecode() {
		if Op(b) == OpPrint {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("expected a PRINT opcode in the compiled output for print(...)")
	}
}

func TestPrintCallRejectsWrongArity(t *testing.T) {
	cases := []string{"print();", "print(1, 2);"}
	for _, src := range cases {
		if _, err := Compile(src); err == nil {
			t.Errorf("Compile(%q) returned no error, want an arity error", src)
		}
	}
}

func TestLocalNamedPrintShadowsBuiltin(t *testing.T) {
	proto, err := Compile(`fun f() { let print = 5; print(1); }`)
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	// f's body lives in its own Proto, a constant-pool entry of the
	// top-level code that LOAD_CONST pushes for PUSH_CLOSURE to wrap.
	for _, v := range proto.ConstPool() {
		code, ok := v.Obj.(interface{ Bytecode() []byte })
		if !ok {
			continue
		}
		for _, b := range code.Bytecode() {
			if Op(b) == OpPrint {
				t.Fatalf("a local named print should shadow the builtin, never emitting PRINT")
			}
		}
	}
}

func TestCompileErrorReportsPosition(t *testing.T) {
	_, err := Compile("let let let;")
	if err == nil {
		t.Fatalf("expected a compile error")
	}
	if !strings.Contains(err.Error(), ":") {
		t.Errorf("error %q doesn't look position-carrying", err.Error())
	}
}

func TestReturnAfterReturnIsCompileError(t *testing.T) {
	_, err := Compile(`fun f() { return 1; return 2; }`)
	if err == nil {
		t.Errorf("expected a compile error for unreachable code after return")
	}
}
