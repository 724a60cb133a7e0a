package value

// StringObj is an immutable UTF-8 string. In-place mutation (push/pop/
// insert applied directly to a string's bytes) is deliberately not
// supported: mutating in place while caching a hash would desynchronize
// any map key built from that string, so every "mutation" allocates a new
// StringObj instead.
type StringObj struct {
	Header
	bytes []byte
	hash  uint32
	valid bool
}

// NewString allocates a StringObj over the given bytes.
func NewString(s string) *StringObj {
	return &StringObj{bytes: []byte(s)}
}

func (s *StringObj) ObjKind() ObjKind  { return ObjString }
func (s *StringObj) GCHeader() *Header { return &s.Header }

// String returns the Go string view of the bytes.
func (s *StringObj) String() string { return string(s.bytes) }

// Len returns the byte length. Iteration over a string is by rune (see the
// iterator package), as are the VM's string indexing and slicing, but Len
// and truthiness operate on raw bytes, matching the cartridge and
// wire-format encodings.
func (s *StringObj) Len() int { return len(s.bytes) }

// FNV1a computes (and caches) the FNV-1a hash of the string's bytes.
func (s *StringObj) FNV1a() uint32 {
	if s.valid {
		return s.hash
	}
	s.hash = fnv1a(s.bytes)
	s.valid = true
	return s.hash
}

func fnv1a(b []byte) uint32 {
	const offset32 = 2166136261
	const prime32 = 16777619
	h := uint32(offset32)
	for _, c := range b {
		h ^= uint32(c)
		h *= prime32
	}
	return h
}

// Concat returns a freshly allocated StringObj holding s+other.
func (s *StringObj) Concat(other *StringObj) *StringObj {
	return NewString(s.String() + other.String())
}
