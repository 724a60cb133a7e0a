package host

import (
	"testing"

	"github.com/rolandbrake/piscript/internal/piscript/value"
	"github.com/rolandbrake/piscript/internal/piscript/vm"
)

func TestRegisterInstallsMathAndStringBuiltins(t *testing.T) {
	m := vm.New()
	Register(m)

	cases := []struct {
		name string
		args []value.Value
		want float64
		isStr bool
		wantStr string
	}{
		{name: "abs", args: []value.Value{value.Num(-4)}, want: 4},
		{name: "max", args: []value.Value{value.Num(2), value.Num(9)}, want: 9},
		{name: "pow", args: []value.Value{value.Num(2), value.Num(10)}, want: 1024},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fnVal, ok := m.Globals()[tc.name]
			if !ok {
				t.Fatalf("global %q not registered", tc.name)
			}
			fn := fnVal.Obj.(*value.FunctionObj)
			got, err := fn.NativeFn(m, tc.args)
			if err != nil {
				t.Fatalf("%s: %v", tc.name, err)
			}
			if got.Num != tc.want {
				t.Errorf("%s = %v, want %v", tc.name, got.Num, tc.want)
			}
		})
	}
}

func TestRegisterInstallsConstants(t *testing.T) {
	m := vm.New()
	Register(m)

	for _, name := range []string{"PI", "E", "SCREEN_WIDTH", "SCREEN_HEIGHT", "WAVE_SINE"} {
		if _, ok := m.Globals()[name]; !ok {
			t.Errorf("constant %q not registered", name)
		}
	}
}

func TestCollectionsPushPop(t *testing.T) {
	m := vm.New()
	Register(m)

	list := m.NewList(nil)
	pushFn := m.Globals()["push"].Obj.(*value.FunctionObj)
	if _, err := pushFn.NativeFn(m, []value.Value{value.FromObj(list), value.Num(1)}); err != nil {
		t.Fatalf("push: %v", err)
	}
	if len(list.Items) != 1 {
		t.Fatalf("list len = %d, want 1", len(list.Items))
	}

	popFn := m.Globals()["pop"].Obj.(*value.FunctionObj)
	got, err := popFn.NativeFn(m, []value.Value{value.FromObj(list)})
	if err != nil {
		t.Fatalf("pop: %v", err)
	}
	if got.Num != 1 {
		t.Errorf("pop = %v, want 1", got.Num)
	}
}
