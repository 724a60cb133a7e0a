package value

// Color is the tri-color mark used by the garbage collector.
type Color uint8

const (
	White Color = iota
	Gray
	Black
)

// ObjKind tags the concrete payload a heap Object carries.
type ObjKind uint8

const (
	ObjString ObjKind = iota
	ObjList
	ObjMap
	ObjRange
	ObjFunction
	ObjCode
	ObjFile
	ObjImage
	ObjSprite
	ObjModel3D
	ObjSound
	// ObjUpvalue is never produced by a script-visible expression, but
	// upvalues are heap allocations the GC must still walk and sweep, so
	// they carry the same Header/registry machinery as the other kinds.
	ObjUpvalue
)

func (k ObjKind) String() string {
	switch k {
	case ObjString:
		return "string"
	case ObjList:
		return "list"
	case ObjMap:
		return "map"
	case ObjRange:
		return "range"
	case ObjFunction:
		return "function"
	case ObjCode:
		return "code"
	case ObjFile:
		return "file"
	case ObjImage:
		return "image"
	case ObjSprite:
		return "sprite"
	case ObjModel3D:
		return "model3d"
	case ObjSound:
		return "sound"
	case ObjUpvalue:
		return "upvalue"
	default:
		return "unknown"
	}
}

// Header is embedded in every heap object. It carries the GC's tri-color
// mark and the intrusive "next allocated" link that threads every live
// allocation onto the collector's sweep list.
type Header struct {
	color Color
	next  Obj
}

// Color reports the object's current mark color.
func (h *Header) Color() Color { return h.color }

// SetColor updates the object's mark color.
func (h *Header) SetColor(c Color) { h.color = c }

// Next returns the next object on the allocator's registry list.
func (h *Header) Next() Obj { return h.next }

// SetNext links this object to the next one on the allocator's registry list.
func (h *Header) SetNext(o Obj) { h.next = o }

// Obj is satisfied by every heap-allocated object kind. The GC and the
// allocator registry operate only in terms of this interface; kind-specific
// behavior lives on the concrete types.
type Obj interface {
	ObjKind() ObjKind
	GCHeader() *Header
}
