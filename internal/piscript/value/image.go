package value

// ImageObj is a decoded raster image: one palette index byte per pixel plus
// a parallel alpha byte for blending through set_pixel_alpha-style draws.
type ImageObj struct {
	Header
	Width, Height int
	Indices       []byte
	Alpha         []byte
}

func (im *ImageObj) ObjKind() ObjKind  { return ObjImage }
func (im *ImageObj) GCHeader() *Header { return &im.Header }

// NewImage allocates a zeroed image of the given dimensions.
func NewImage(w, h int) *ImageObj {
	return &ImageObj{Width: w, Height: h, Indices: make([]byte, w*h), Alpha: make([]byte, w*h)}
}

// SpriteObj is a cartridge sprite: palette indices only, 0 is transparent.
type SpriteObj struct {
	Header
	Width, Height int
	Indices       []byte
}

func (s *SpriteObj) ObjKind() ObjKind  { return ObjSprite }
func (s *SpriteObj) GCHeader() *Header { return &s.Header }

// NewSprite allocates a sprite of the given dimensions.
func NewSprite(w, h int, indices []byte) *SpriteObj {
	return &SpriteObj{Width: w, Height: h, Indices: indices}
}

// Triangle is one face of a Model3D.
type Triangle struct {
	// Vertex positions (x, y, z) and texture coordinates (u, v) per vertex.
	X, Y, Z [3]float64
	U, V    [3]float64
}

// Model3DObj is a minimal triangle mesh with an optional texture image,
// the payload the 3D triangle rasterizer host function consumes.
type Model3DObj struct {
	Header
	Triangles []Triangle
	Texture   *ImageObj
}

func (m *Model3DObj) ObjKind() ObjKind  { return ObjModel3D }
func (m *Model3DObj) GCHeader() *Header { return &m.Header }
