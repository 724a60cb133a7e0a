// Package iterator implements the uniform reset/has_next/next protocol the
// VM's PUSH_ITER/LOOP/POP_ITER instructions drive over lists, strings,
// maps, and ranges.
package iterator

import (
	"unicode/utf8"

	"github.com/rolandbrake/piscript/internal/piscript/value"
)

// Iterator is satisfied by every iterable kind the VM's iterator stack can
// hold.
type Iterator interface {
	Reset()
	HasNext() bool
	Next() (value.Value, bool)
}

// New wraps v in the Iterator matching its kind, or returns ok=false if v
// is not iterable. alloc mints each per-character string a string iterator
// yields; callers pass their collector-tracking constructor so every rune
// string an iteration produces is registered like any other allocation.
func New(v value.Value, alloc func(string) *value.StringObj) (Iterator, bool) {
	if !v.IsObj() {
		return nil, false
	}
	switch o := v.Obj.(type) {
	case *value.ListObj:
		return &listIter{list: o}, true
	case *value.StringObj:
		return &stringIter{s: o, alloc: alloc}, true
	case *value.MapObj:
		return &mapIter{m: o}, true
	case *value.RangeObj:
		return &rangeIter{r: o}, true
	default:
		return nil, false
	}
}

type listIter struct {
	list *value.ListObj
	pos  int
}

func (it *listIter) Reset()           { it.pos = 0 }
func (it *listIter) HasNext() bool    { return it.pos < len(it.list.Items) }
func (it *listIter) Next() (value.Value, bool) {
	if !it.HasNext() {
		return value.Nil, false
	}
	v := it.list.Items[it.pos]
	it.pos++
	return v, true
}

// stringIter yields one-character strings, advancing by whole runes so
// multi-byte UTF-8 sequences iterate as single logical characters.
type stringIter struct {
	s     *value.StringObj
	pos   int
	alloc func(string) *value.StringObj
}

func (it *stringIter) Reset()        { it.pos = 0 }
func (it *stringIter) HasNext() bool { return it.pos < it.s.Len() }
func (it *stringIter) Next() (value.Value, bool) {
	bytes := []byte(it.s.String())
	if it.pos >= len(bytes) {
		return value.Nil, false
	}
	r, size := utf8.DecodeRune(bytes[it.pos:])
	it.pos += size
	return value.FromObj(it.alloc(string(r))), true
}

// mapIter yields values only, in insertion order; keys are obtained
// through the separate `keys` host function.
type mapIter struct {
	m   *value.MapObj
	pos int
}

func (it *mapIter) Reset()        { it.pos = 0 }
func (it *mapIter) HasNext() bool { return it.pos < len(it.m.KeyOrder) }
func (it *mapIter) Next() (value.Value, bool) {
	if !it.HasNext() {
		return value.Nil, false
	}
	v := it.m.Entries[it.m.KeyOrder[it.pos]]
	it.pos++
	return v, true
}

type rangeIter struct {
	r *value.RangeObj
}

func (it *rangeIter) Reset()        { it.r.Reset() }
func (it *rangeIter) HasNext() bool { return it.r.HasNext() }
func (it *rangeIter) Next() (value.Value, bool) {
	f, ok := it.r.Next()
	if !ok {
		return value.Nil, false
	}
	return value.Num(f), true
}
