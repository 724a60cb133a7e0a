package langerr

import "testing"

func TestErrorFormatsWithPosition(t *testing.T) {
	err := New(Parse, 3, 7, "unexpected token %q", ";")
	want := `parse error at 3:7: unexpected token ";"`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrorOmitsPositionWhenZero(t *testing.T) {
	err := New(IO, 0, 0, "file not found")
	want := "io error: file not found"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestRuntimeConstructsRuntimeTypeCategory(t *testing.T) {
	err := Runtime(1, 1, "cannot add %s and %s", "num", "string")
	if err.Category != RuntimeType {
		t.Errorf("Category = %v, want RuntimeType", err.Category)
	}
}

func TestDomainConstructsRuntimeDomainCategory(t *testing.T) {
	err := Domain(1, 1, "index %d out of range", -1)
	if err.Category != RuntimeDomain {
		t.Errorf("Category = %v, want RuntimeDomain", err.Category)
	}
}

func TestCategoryStringCoversAllCategories(t *testing.T) {
	cases := map[Category]string{
		Lex:           "lex",
		Parse:         "parse",
		RuntimeType:   "runtime/type",
		RuntimeDomain: "runtime/domain",
		IO:            "io",
		Resource:      "resource",
	}
	for cat, want := range cases {
		if got := cat.String(); got != want {
			t.Errorf("Category(%d).String() = %q, want %q", cat, got, want)
		}
	}
}

func TestUnknownCategoryStringFallsBackToGenericError(t *testing.T) {
	var cat Category = 99
	if got := cat.String(); got != "error" {
		t.Errorf("unknown Category.String() = %q, want %q", got, "error")
	}
}
