package value

// MapObj is PiScript's ordered hash map: keys are the canonical stringified
// form of a Value, so numeric 1 and string "1" collide as keys — kept
// deliberately, since scripts rely on number-like keys and string-like
// keys being interchangeable. Insertion order is preserved for iteration
// and for `keys`/`values`. An optional Proto link supports the
// prototype-chain delegation scheme clone() builds.
type MapObj struct {
	Header
	Entries  map[string]Value
	KeyOrder []string
	Proto    *MapObj
}

// NewMap allocates an empty MapObj.
func NewMap() *MapObj {
	return &MapObj{Entries: make(map[string]Value)}
}

func (m *MapObj) ObjKind() ObjKind  { return ObjMap }
func (m *MapObj) GCHeader() *Header { return &m.Header }

// Len reports the number of entries (not counting the prototype chain).
func (m *MapObj) Len() int { return len(m.KeyOrder) }

// Put inserts or overwrites key->v, always succeeding; returns true if the
// key already existed (an update) vs being freshly created.
func (m *MapObj) Put(key string, v Value) (updated bool) {
	if _, ok := m.Entries[key]; ok {
		m.Entries[key] = v
		return true
	}
	m.Entries[key] = v
	m.KeyOrder = append(m.KeyOrder, key)
	return false
}

// Set is an alias for Put kept for call sites that read more naturally as
// "setting" a key than "putting" one; behavior is identical.
func (m *MapObj) Set(key string, v Value) (updated bool) { return m.Put(key, v) }

// Get looks up key on this map only (no prototype walk); see GetChain for
// member-access semantics that fall through to Proto.
func (m *MapObj) Get(key string) (Value, bool) {
	v, ok := m.Entries[key]
	return v, ok
}

// GetChain looks up key on m, falling through to Proto on miss, implementing
// the prototype-chain delegation member access uses.
func (m *MapObj) GetChain(key string) (Value, bool) {
	for cur := m; cur != nil; cur = cur.Proto {
		if v, ok := cur.Entries[key]; ok {
			return v, true
		}
	}
	return Nil, false
}

// Delete removes key, preserving the order of remaining keys.
func (m *MapObj) Delete(key string) bool {
	if _, ok := m.Entries[key]; !ok {
		return false
	}
	delete(m.Entries, key)
	for i, k := range m.KeyOrder {
		if k == key {
			m.KeyOrder = append(m.KeyOrder[:i], m.KeyOrder[i+1:]...)
			break
		}
	}
	return true
}

// Keys returns the insertion-ordered key list as Values (strings).
func (m *MapObj) Keys() []Value {
	out := make([]Value, len(m.KeyOrder))
	for i, k := range m.KeyOrder {
		out[i] = FromObj(NewString(k))
	}
	return out
}

// Values returns the insertion-ordered value list.
func (m *MapObj) Values() []Value {
	out := make([]Value, len(m.KeyOrder))
	for i, k := range m.KeyOrder {
		out[i] = m.Entries[k]
	}
	return out
}

// Clone creates a new map whose Proto points at m, implementing the
// prototype-chain `clone()` builtin: the new map starts empty and
// delegates reads to m until it gets its own entries.
func (m *MapObj) Clone() *MapObj {
	n := NewMap()
	n.Proto = m
	return n
}
