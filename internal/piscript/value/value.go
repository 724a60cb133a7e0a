// Package value implements PiScript's dynamic value system: a tagged sum
// type over numbers, booleans, nil, and heap object references, plus the
// heap object kinds themselves.
package value

import (
	"fmt"
	"math"
	"strconv"
)

// Kind tags which variant a Value currently holds.
type Kind uint8

const (
	KindNum Kind = iota
	KindBool
	KindNil
	KindObj
)

// numEpsilon is the absolute tolerance used when comparing two numbers for
// equality, per the data model's float-comparison rule.
const numEpsilon = 1e-9

// Value is the VM's tagged union. Exactly one of the fields below is
// meaningful, selected by Kind: Num for KindNum, Num (0/1) for KindBool,
// nothing for KindNil, Obj for KindObj.
type Value struct {
	Kind Kind
	Num  float64
	Obj  Obj
}

// Num constructs a numeric Value.
func Num(f float64) Value { return Value{Kind: KindNum, Num: f} }

// Bool constructs a boolean Value.
func Bool(b bool) Value {
	if b {
		return Value{Kind: KindBool, Num: 1}
	}
	return Value{Kind: KindBool, Num: 0}
}

// Nil is the singleton nil Value.
var Nil = Value{Kind: KindNil}

// FromObj wraps a heap object in a Value.
func FromObj(o Obj) Value { return Value{Kind: KindObj, Obj: o} }

// IsNum, IsBool, IsNil, IsObj are the variant predicates.
func (v Value) IsNum() bool  { return v.Kind == KindNum }
func (v Value) IsBool() bool { return v.Kind == KindBool }
func (v Value) IsNil() bool  { return v.Kind == KindNil }
func (v Value) IsObj() bool  { return v.Kind == KindObj }

// IsObjKind reports whether v is a heap object of the given kind.
func (v Value) IsObjKind(k ObjKind) bool {
	return v.Kind == KindObj && v.Obj != nil && v.Obj.ObjKind() == k
}

// AsBoolRaw returns the raw boolean payload of a KindBool Value.
func (v Value) AsBoolRaw() bool { return v.Num != 0 }

// TypeName returns the PiScript type name used in error messages and by the
// `typeof` operator.
func (v Value) TypeName() string {
	switch v.Kind {
	case KindNum:
		return "number"
	case KindBool:
		return "bool"
	case KindNil:
		return "nil"
	case KindObj:
		if v.Obj == nil {
			return "nil"
		}
		return v.Obj.ObjKind().String()
	default:
		return "unknown"
	}
}

// AsBool implements truthiness: numbers are truthy unless exactly zero;
// non-empty strings/lists/maps and every other object are truthy; nil and
// false are not.
func (v Value) AsBool() bool {
	switch v.Kind {
	case KindNum:
		return v.Num != 0
	case KindBool:
		return v.Num != 0
	case KindNil:
		return false
	case KindObj:
		switch o := v.Obj.(type) {
		case *StringObj:
			return o.Len() > 0
		case *ListObj:
			return len(o.Items) > 0
		case *MapObj:
			return o.Len() > 0
		default:
			return true
		}
	}
	return false
}

// AsNumber implements the as_number projection: booleans become 0/1, nil
// becomes 0, strings are parsed (failure is reported via ok=false), and
// every other object fails.
func (v Value) AsNumber() (float64, bool) {
	switch v.Kind {
	case KindNum:
		return v.Num, true
	case KindBool:
		return v.Num, true
	case KindNil:
		return 0, true
	case KindObj:
		if s, ok := v.Obj.(*StringObj); ok {
			f, err := strconv.ParseFloat(s.String(), 64)
			if err != nil {
				return 0, false
			}
			return f, true
		}
	}
	return 0, false
}

// AsString implements the as_string projection, recursively rendering lists
// and maps the way the data model specifies.
func (v Value) AsString() string {
	switch v.Kind {
	case KindNum:
		return formatNumber(v.Num)
	case KindBool:
		if v.Num != 0 {
			return "true"
		}
		return "false"
	case KindNil:
		return "nil"
	case KindObj:
		return objToString(v.Obj)
	}
	return ""
}

func formatNumber(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	if math.IsInf(f, 1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func objToString(o Obj) string {
	switch x := o.(type) {
	case *StringObj:
		return x.String()
	case *ListObj:
		s := "["
		for i, it := range x.Items {
			if i > 0 {
				s += ", "
			}
			s += it.AsString()
		}
		return s + "]"
	case *MapObj:
		s := "{"
		for i, k := range x.KeyOrder {
			if i > 0 {
				s += ", "
			}
			s += k + ": " + x.Entries[k].AsString()
		}
		return s + "}"
	case *FunctionObj:
		return fmt.Sprintf("<%s: %p>", x.Name, x)
	case *RangeObj:
		return fmt.Sprintf("%s..%s:%s", formatNumber(x.Start), formatNumber(x.End), formatNumber(x.Step))
	default:
		return fmt.Sprintf("<%s: %p>", o.ObjKind(), o)
	}
}

// Equal implements deep equality: numeric tolerance for numbers, deep
// comparison for strings and lists, pointer identity for everything else.
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		// Map keys are canonicalized to strings, so numeric 1 and string
		// "1" collide there; direct value equality keeps types distinct
		// except for the num/bool pair, which compares through Num below.
		if (a.Kind == KindNum && b.Kind == KindBool) || (a.Kind == KindBool && b.Kind == KindNum) {
			return math.Abs(a.Num-b.Num) < numEpsilon
		}
		return false
	}
	switch a.Kind {
	case KindNum, KindBool:
		return math.Abs(a.Num-b.Num) < numEpsilon
	case KindNil:
		return true
	case KindObj:
		return equalObj(a.Obj, b.Obj)
	}
	return false
}

func equalObj(a, b Obj) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.ObjKind() != b.ObjKind() {
		return false
	}
	switch x := a.(type) {
	case *StringObj:
		y := b.(*StringObj)
		return x.String() == y.String()
	case *ListObj:
		y := b.(*ListObj)
		if len(x.Items) != len(y.Items) {
			return false
		}
		for i := range x.Items {
			if !Equal(x.Items[i], y.Items[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Ordering is the result of comparing two values: less, equal, greater, or
// Incomparable when the types mix without coercion.
type Ordering int

const (
	Less Ordering = iota - 1
	Equal_
	Greater
	Incomparable
)

// Compare implements the total ordering defined on numbers, booleans
// (false<true), strings (lexicographic), and element-wise on lists.
func Compare(a, b Value) Ordering {
	switch {
	case a.Kind == KindNum && b.Kind == KindNum:
		return cmpFloat(a.Num, b.Num)
	case a.Kind == KindBool && b.Kind == KindBool:
		return cmpFloat(a.Num, b.Num)
	case a.IsObjKind(ObjString) && b.IsObjKind(ObjString):
		sa, sb := a.Obj.(*StringObj).String(), b.Obj.(*StringObj).String()
		switch {
		case sa < sb:
			return Less
		case sa > sb:
			return Greater
		default:
			return Equal_
		}
	case a.IsObjKind(ObjList) && b.IsObjKind(ObjList):
		la, lb := a.Obj.(*ListObj).Items, b.Obj.(*ListObj).Items
		n := len(la)
		if len(lb) < n {
			n = len(lb)
		}
		for i := 0; i < n; i++ {
			if o := Compare(la[i], lb[i]); o != Equal_ {
				return o
			}
		}
		return cmpFloat(float64(len(la)), float64(len(lb)))
	default:
		return Incomparable
	}
}

func cmpFloat(a, b float64) Ordering {
	if math.Abs(a-b) < numEpsilon {
		return Equal_
	}
	if a < b {
		return Less
	}
	return Greater
}
