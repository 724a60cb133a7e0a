package value

import "testing"

func TestTypeNameCoversEveryVariant(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Num(1), "number"},
		{Bool(true), "bool"},
		{Nil, "nil"},
		{FromObj(NewString("hi")), "string"},
		{FromObj(NewList(nil)), "list"},
	}
	for _, c := range cases {
		if got := c.v.TypeName(); got != c.want {
			t.Errorf("TypeName() = %q, want %q", got, c.want)
		}
	}
}

func TestAsBoolTruthiness(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{Num(0), false},
		{Num(1), true},
		{Num(-1), true},
		{Bool(false), false},
		{Bool(true), true},
		{Nil, false},
		{FromObj(NewString("")), false},
		{FromObj(NewString("x")), true},
		{FromObj(NewList(nil)), false},
		{FromObj(NewList([]Value{Num(1)})), true},
	}
	for _, c := range cases {
		if got := c.v.AsBool(); got != c.want {
			t.Errorf("AsBool(%v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestAsNumberCoercions(t *testing.T) {
	if f, ok := Bool(true).AsNumber(); !ok || f != 1 {
		t.Errorf("true.AsNumber() = %v, %v, want 1, true", f, ok)
	}
	if f, ok := Nil.AsNumber(); !ok || f != 0 {
		t.Errorf("nil.AsNumber() = %v, %v, want 0, true", f, ok)
	}
	if f, ok := FromObj(NewString("3.5")).AsNumber(); !ok || f != 3.5 {
		t.Errorf(`"3.5".AsNumber() = %v, %v, want 3.5, true`, f, ok)
	}
	if _, ok := FromObj(NewString("not a number")).AsNumber(); ok {
		t.Errorf("non-numeric string should fail AsNumber")
	}
	if _, ok := FromObj(NewList(nil)).AsNumber(); ok {
		t.Errorf("a list should fail AsNumber")
	}
}

func TestAsStringRendersNestedCollections(t *testing.T) {
	list := NewList([]Value{Num(1), FromObj(NewString("a"))})
	if got, want := FromObj(list).AsString(), `[1, a]`; got != want {
		t.Errorf("AsString() = %q, want %q", got, want)
	}
	m := NewMap()
	m.Set("x", Num(1))
	if got, want := FromObj(m).AsString(), `{x: 1}`; got != want {
		t.Errorf("AsString() = %q, want %q", got, want)
	}
}

func TestAsStringFormatsNumbers(t *testing.T) {
	cases := []struct {
		f    float64
		want string
	}{
		{3, "3"},
		{3.5, "3.5"},
		{-2, "-2"},
	}
	for _, c := range cases {
		if got := Num(c.f).AsString(); got != c.want {
			t.Errorf("Num(%v).AsString() = %q, want %q", c.f, got, c.want)
		}
	}
}

func TestEqualNumericToleranceAndBoolNumCrossover(t *testing.T) {
	if !Equal(Num(1), Num(1+1e-12)) {
		t.Errorf("numbers within epsilon should be Equal")
	}
	if Equal(Num(1), Num(1.1)) {
		t.Errorf("numbers outside epsilon should not be Equal")
	}
	if !Equal(Num(1), Bool(true)) {
		t.Errorf("Num(1) and Bool(true) should compare equal via shared Num field")
	}
	if Equal(Num(0), Nil) {
		t.Errorf("Num(0) and Nil must not compare equal despite both being falsy")
	}
}

func TestEqualDeepComparesStringsAndLists(t *testing.T) {
	a := FromObj(NewString("hi"))
	b := FromObj(NewString("hi"))
	if !Equal(a, b) {
		t.Errorf("two distinct StringObjs with the same contents should be Equal")
	}
	la := FromObj(NewList([]Value{Num(1), Num(2)}))
	lb := FromObj(NewList([]Value{Num(1), Num(2)}))
	if !Equal(la, lb) {
		t.Errorf("two distinct lists with equal elements should be Equal")
	}
	lc := FromObj(NewList([]Value{Num(1), Num(3)}))
	if Equal(la, lc) {
		t.Errorf("lists differing in an element should not be Equal")
	}
}

func TestCompareOrdersNumbersBoolsStringsAndLists(t *testing.T) {
	if Compare(Num(1), Num(2)) != Less {
		t.Errorf("1 should compare Less than 2")
	}
	if Compare(Bool(false), Bool(true)) != Less {
		t.Errorf("false should compare Less than true")
	}
	if Compare(FromObj(NewString("a")), FromObj(NewString("b"))) != Less {
		t.Errorf(`"a" should compare Less than "b"`)
	}
	shorter := FromObj(NewList([]Value{Num(1)}))
	longer := FromObj(NewList([]Value{Num(1), Num(2)}))
	if Compare(shorter, longer) != Less {
		t.Errorf("a shorter list with equal shared prefix should compare Less")
	}
}

func TestCompareIncomparableAcrossMixedTypes(t *testing.T) {
	if Compare(Num(1), FromObj(NewString("1"))) != Incomparable {
		t.Errorf("a number and a string should be Incomparable")
	}
}
