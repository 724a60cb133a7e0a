package iterator

import (
	"testing"

	"github.com/rolandbrake/piscript/internal/piscript/value"
)

func collect(t *testing.T, it Iterator) []value.Value {
	t.Helper()
	var out []value.Value
	for it.HasNext() {
		v, ok := it.Next()
		if !ok {
			t.Fatalf("HasNext reported true but Next returned ok=false")
		}
		out = append(out, v)
	}
	return out
}

func TestListIteratorYieldsInOrder(t *testing.T) {
	list := value.NewList([]value.Value{value.Num(1), value.Num(2), value.Num(3)})
	it, ok := New(value.FromObj(list), value.NewString)
	if !ok {
		t.Fatalf("expected a list to be iterable")
	}
	got := collect(t, it)
	if len(got) != 3 || got[0].Num != 1 || got[2].Num != 3 {
		t.Errorf("got %v, want [1 2 3]", got)
	}
}

func TestStringIteratorYieldsRunes(t *testing.T) {
	s := value.NewString("ab£")
	it, ok := New(value.FromObj(s), value.NewString)
	if !ok {
		t.Fatalf("expected a string to be iterable")
	}
	got := collect(t, it)
	if len(got) != 3 {
		t.Fatalf("got %d runes, want 3 (£ is multi-byte)", len(got))
	}
	str, ok := got[2].Obj.(*value.StringObj)
	if !ok || str.String() != "£" {
		t.Errorf("third rune = %v, want £", got[2])
	}
}

func TestRangeIteratorHonorsStep(t *testing.T) {
	r, ok := value.NewRange(0, 10, 2)
	if !ok {
		t.Fatalf("NewRange rejected a non-zero step")
	}
	it, ok := New(value.FromObj(r), value.NewString)
	if !ok {
		t.Fatalf("expected a range to be iterable")
	}
	got := collect(t, it)
	want := []float64{0, 2, 4, 6, 8}
	if len(got) != len(want) {
		t.Fatalf("got %d values, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Num != w {
			t.Errorf("got[%d] = %v, want %v", i, got[i].Num, w)
		}
	}
}

func TestMapIteratorYieldsValuesInInsertionOrder(t *testing.T) {
	m := value.NewMap()
	m.Set("a", value.Num(1))
	m.Set("b", value.Num(2))
	it, ok := New(value.FromObj(m), value.NewString)
	if !ok {
		t.Fatalf("expected a map to be iterable")
	}
	got := collect(t, it)
	if len(got) != 2 || got[0].Num != 1 || got[1].Num != 2 {
		t.Errorf("got %v, want [1 2] in insertion order", got)
	}
}

func TestNewRejectsNonIterable(t *testing.T) {
	if _, ok := New(value.Num(42), value.NewString); ok {
		t.Errorf("a bare number should not be iterable")
	}
}
