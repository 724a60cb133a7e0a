package host

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sort"

	"github.com/rolandbrake/piscript/internal/piscript/screen"
	"github.com/rolandbrake/piscript/internal/piscript/value"
	"github.com/rolandbrake/piscript/internal/piscript/vm"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

func registerImage(m *vm.VM) {
	m.RegisterNative("load_image", 1, func(h any, args []value.Value) (value.Value, error) {
		img, err := loadImage(argString(args, 0))
		if err != nil {
			return value.Nil, nil
		}
		asVM(h).Track(img)
		return value.FromObj(img), nil
	})
	m.RegisterNative("image_get_pixel", 3, func(h any, args []value.Value) (value.Value, error) {
		im, ok := args[0].Obj.(*value.ImageObj)
		if !ok {
			return value.Nil, wrongType("image", "image_get_pixel")
		}
		x, y := argInt(args, 1), argInt(args, 2)
		if x < 0 || x >= im.Width || y < 0 || y >= im.Height {
			return value.Nil, nil
		}
		return value.Num(float64(im.Indices[y*im.Width+x])), nil
	})
	m.RegisterNative("image_set_pixel", 4, func(h any, args []value.Value) (value.Value, error) {
		im, ok := args[0].Obj.(*value.ImageObj)
		if !ok {
			return value.Nil, wrongType("image", "image_set_pixel")
		}
		x, y := argInt(args, 1), argInt(args, 2)
		if x < 0 || x >= im.Width || y < 0 || y >= im.Height {
			return value.Nil, nil
		}
		im.Indices[y*im.Width+x] = byte(argInt(args, 3))
		return value.Nil, nil
	})
	m.RegisterNative("image_resize", 3, func(h any, args []value.Value) (value.Value, error) {
		im, ok := args[0].Obj.(*value.ImageObj)
		if !ok {
			return value.Nil, wrongType("image", "image_resize")
		}
		out := resizeNearest(im, argInt(args, 1), argInt(args, 2))
		asVM(h).Track(out)
		return value.FromObj(out), nil
	})
	m.RegisterNative("render_model", 2, func(h any, args []value.Value) (value.Value, error) {
		s, ok := asScreen(h)
		if !ok {
			return value.Nil, noScreen()
		}
		model, ok := args[0].Obj.(*value.Model3DObj)
		if !ok {
			return value.Nil, wrongType("model", "render_model")
		}
		renderModel(s, model, argInt(args, 1))
		return value.Nil, nil
	})
}

// loadImage decodes a PNG/JPEG file and quantizes it to the 32-color
// palette, the "image loader/transformer" §4.8 names.
func loadImage(path string) (*value.ImageObj, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	src, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := value.NewImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			out.Indices[y*w+x] = byte(nearestPaletteIndex(uint8(r>>8), uint8(g>>8), uint8(b>>8)))
			out.Alpha[y*w+x] = uint8(a >> 8)
		}
	}
	return out, nil
}

func nearestPaletteIndex(r, g, b uint8) int {
	best, bestDist := 0, -1
	for i, c := range screen.Palette {
		dr, dg, db := int(r)-int(c.R), int(g)-int(c.G), int(b)-int(c.B)
		dist := dr*dr + dg*dg + db*db
		if bestDist == -1 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}

func resizeNearest(im *value.ImageObj, w, h int) *value.ImageObj {
	if w <= 0 || h <= 0 {
		w, h = im.Width, im.Height
	}
	out := value.NewImage(w, h)
	for y := 0; y < h; y++ {
		sy := y * im.Height / h
		for x := 0; x < w; x++ {
			sx := x * im.Width / w
			out.Indices[y*w+x] = im.Indices[sy*im.Width+sx]
			out.Alpha[y*w+x] = im.Alpha[sy*im.Width+sx]
		}
	}
	return out
}

// renderModel is a minimal 3D triangle rasterizer: each Triangle is
// projected orthographically (x, y used directly, z only for painter's
// sort) and filled via a scanline barycentric test, a small-but-functional
// stand-in for the full renderer §4.8 places out of scope in depth.
func renderModel(s *screen.Screen, model *value.Model3DObj, paletteIndex int) {
	tris := make([]value.Triangle, len(model.Triangles))
	copy(tris, model.Triangles)
	sort.Slice(tris, func(i, j int) bool {
		avgI := (tris[i].Z[0] + tris[i].Z[1] + tris[i].Z[2]) / 3
		avgJ := (tris[j].Z[0] + tris[j].Z[1] + tris[j].Z[2]) / 3
		return avgI > avgJ // painter's algorithm: far first
	})
	for _, t := range tris {
		fillTriangle(s, t, paletteIndex)
	}
}

func fillTriangle(s *screen.Screen, t value.Triangle, paletteIndex int) {
	minX, maxX := minOf3(t.X), maxOf3(t.X)
	minY, maxY := minOf3(t.Y), maxOf3(t.Y)
	for y := int(minY); y <= int(maxY); y++ {
		for x := int(minX); x <= int(maxX); x++ {
			if pointInTriangle(float64(x), float64(y), t) {
				s.SetPixel(x, y, paletteIndex)
			}
		}
	}
}

func sign3(px, py, ax, ay, bx, by float64) float64 {
	return (px-bx)*(ay-by) - (ax-bx)*(py-by)
}

func pointInTriangle(px, py float64, t value.Triangle) bool {
	d1 := sign3(px, py, t.X[0], t.Y[0], t.X[1], t.Y[1])
	d2 := sign3(px, py, t.X[1], t.Y[1], t.X[2], t.Y[2])
	d3 := sign3(px, py, t.X[2], t.Y[2], t.X[0], t.Y[0])
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

func minOf3(a [3]float64) float64 {
	m := a[0]
	if a[1] < m {
		m = a[1]
	}
	if a[2] < m {
		m = a[2]
	}
	return m
}

func maxOf3(a [3]float64) float64 {
	m := a[0]
	if a[1] > m {
		m = a[1]
	}
	if a[2] > m {
		m = a[2]
	}
	return m
}

// drawText renders s using the x/image basicfont 7x13 glyph set, advancing
// the screen's cursor fields the way §6's text output contract requires.
func drawText(s *screen.Screen, str string, x, y, paletteIndex int) {
	face := basicfont.Face7x13
	cursorX := x
	for _, r := range str {
		adv, ok := face.GlyphAdvance(r)
		if !ok {
			continue
		}
		glyphRasterize(s, face, r, cursorX, y, paletteIndex)
		cursorX += adv.Round()
	}
	s.CursorX = cursorX
	s.CursorY = y
}

func clampPaletteIndex(i int) int {
	if i < 0 || i >= len(screen.Palette) {
		return 0
	}
	return i
}

// glyphRasterize draws one basicfont glyph cell pixel-by-pixel onto the
// indexed screen, since basicfont has no palette concept of its own.
func glyphRasterize(s *screen.Screen, face *basicfont.Face, r rune, x, y, paletteIndex int) {
	dr, mask, maskp, _, ok := face.Glyph(fixed.P(0, face.Height), r)
	if !ok {
		return
	}
	for py := dr.Min.Y; py < dr.Max.Y; py++ {
		for px := dr.Min.X; px < dr.Max.X; px++ {
			_, _, _, a := mask.At(maskp.X+(px-dr.Min.X), maskp.Y+(py-dr.Min.Y)).RGBA()
			if a > 0x8000 {
				s.SetPixel(x+px-dr.Min.X, y+py-dr.Min.Y, paletteIndex)
			}
		}
	}
}
