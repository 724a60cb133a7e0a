package value

// ListObj is the dynamic sequence backing PiScript's `list` values. Growth
// policy: double below 1024 capacity, grow by a quarter plus 256 above it.
type ListObj struct {
	Header
	Items     []Value
	IsNumeric bool // hint only, set by math builtins; revalidated on demand
	IsMatrix  bool
	Rows      int
	Cols      int
}

// NewList allocates a ListObj over the given items (copied by reference;
// callers that need an independent copy should use Clone).
func NewList(items []Value) *ListObj {
	return &ListObj{Items: items}
}

func (l *ListObj) ObjKind() ObjKind  { return ObjList }
func (l *ListObj) GCHeader() *Header { return &l.Header }

func growCapacity(cap int) int {
	if cap < 1024 {
		if cap == 0 {
			return 8
		}
		return cap * 2
	}
	return cap + cap/4 + 256
}

// Push appends a value, growing storage per the documented policy.
func (l *ListObj) Push(v Value) {
	if len(l.Items) == cap(l.Items) {
		nc := growCapacity(cap(l.Items))
		grown := make([]Value, len(l.Items), nc)
		copy(grown, l.Items)
		l.Items = grown
	}
	l.Items = append(l.Items, v)
}

// Pop removes and returns the last element; ok is false on an empty list.
func (l *ListObj) Pop() (Value, bool) {
	n := len(l.Items)
	if n == 0 {
		return Nil, false
	}
	v := l.Items[n-1]
	l.Items = l.Items[:n-1]
	return v, true
}

// GetIndex resolves a possibly negative index into bounds by wrapping
// modulo the container length; len==0 always yields 0.
func GetIndex(i, length int) int {
	if length == 0 {
		return 0
	}
	return ((i%length)+length)%length
}

// InsertAt inserts v before position i (after index resolution), O(n).
func (l *ListObj) InsertAt(i int, v Value) {
	idx := GetIndex(i, len(l.Items)+1)
	l.Items = append(l.Items, Nil)
	copy(l.Items[idx+1:], l.Items[idx:])
	l.Items[idx] = v
}

// RemoveAt deletes and returns the element at position i, O(n).
func (l *ListObj) RemoveAt(i int) (Value, bool) {
	if len(l.Items) == 0 {
		return Nil, false
	}
	idx := GetIndex(i, len(l.Items))
	v := l.Items[idx]
	l.Items = append(l.Items[:idx], l.Items[idx+1:]...)
	return v, true
}

// Prepend inserts v at position 0.
func (l *ListObj) Prepend(v Value) { l.InsertAt(0, v) }

// Clone returns a shallow copy sharing no backing array with l.
func (l *ListObj) Clone() *ListObj {
	items := make([]Value, len(l.Items))
	copy(items, l.Items)
	return &ListObj{Items: items, IsNumeric: l.IsNumeric, IsMatrix: l.IsMatrix, Rows: l.Rows, Cols: l.Cols}
}

// RevalidateNumeric recomputes IsNumeric on demand: it is a hint refreshed
// whenever a caller needs it, not a contract maintained across arbitrary
// mutation of Items.
func (l *ListObj) RevalidateNumeric() bool {
	for _, v := range l.Items {
		if !v.IsNum() {
			l.IsNumeric = false
			return false
		}
	}
	l.IsNumeric = true
	return true
}
