// Package screen implements the pixel/pixelgl-backed Screen capability: a
// fixed 128×128 indexed-color framebuffer window, grounded on chippy's
// internal/pixel window wrapper but generalized from a fixed 64×32 1-bit
// display to a 32-color indexed one with alpha and shading blends.
package screen

import (
	"image/color"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
	"github.com/pkg/errors"
	"golang.org/x/image/colornames"
)

// Width and Height are the fixed framebuffer dimensions every cartridge
// draws into, no-ops outside this range per set_pixel's contract.
const (
	Width  = 128
	Height = 128
)

const windowScale = 6

// Palette is the 32 named colors a palette index selects among. Order is
// fixed and script-visible: cartridges reference entries by index.
var Palette = [32]color.RGBA{
	colornames.Black, colornames.White, colornames.Red, colornames.Green,
	colornames.Blue, colornames.Yellow, colornames.Cyan, colornames.Magenta,
	colornames.Gray, colornames.Darkgray, colornames.Lightgray, colornames.Orange,
	colornames.Purple, colornames.Brown, colornames.Pink, colornames.Navy,
	colornames.Teal, colornames.Olive, colornames.Maroon, colornames.Lime,
	colornames.Indigo, colornames.Violet, colornames.Gold, colornames.Silver,
	colornames.Coral, colornames.Salmon, colornames.Khaki, colornames.Orchid,
	colornames.Plum, colornames.Tan, colornames.Turquoise, colornames.Skyblue,
}

// Screen owns the framebuffer pixel buffer and the pixelgl window it
// presents to. CursorX, CursorY, and TextColor are the script-visible
// fields text-output host functions read and advance.
type Screen struct {
	win *pixelgl.Window

	indices [Width * Height]byte
	alpha   [Width * Height]float64

	CursorX, CursorY int
	TextColor        int

	blends  []blend
	brights []shade

	headless bool
}

// New opens a pixelgl window sized to the framebuffer scaled up for
// visibility, the way chippy's NewWindow opens a 1024x768 window over a
// 64x32 logical display. headless skips window creation entirely, for
// scripted/test runs driven by the CLI's --headless flag.
func New(headless bool) (*Screen, error) {
	s := &Screen{headless: headless, TextColor: 1}
	if headless {
		return s, nil
	}

	cfg := pixelgl.WindowConfig{
		Title:  "piscript",
		Bounds: pixel.R(0, 0, Width*windowScale, Height*windowScale),
		VSync:  true,
	}
	win, err := pixelgl.NewWindow(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "screen: create window")
	}
	s.win = win
	return s, nil
}

// Closed reports whether the user has requested the window close (or ESC
// was pressed), the cooperative cancellation signal §5 describes.
func (s *Screen) Closed() bool {
	if s.headless {
		return false
	}
	return s.win.Closed() || s.win.JustPressed(pixelgl.KeyEscape)
}

// PollInput processes the window's event queue; must be called once per
// frame even when nothing is drawn, mirroring chippy's UpdateInput path.
func (s *Screen) PollInput() {
	if !s.headless {
		s.win.UpdateInput()
	}
}

func index(x, y int) (int, bool) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return 0, false
	}
	return y*Width + x, true
}

// SetPixel writes palette_index at (x, y); a no-op outside 128x128.
func (s *Screen) SetPixel(x, y, paletteIndex int) {
	i, ok := index(x, y)
	if !ok {
		return
	}
	s.indices[i] = byte(paletteIndex)
	s.alpha[i] = 1
}

// SetPixelAlpha linearly blends paletteIndex's color into the existing
// pixel by alpha (clamped to [0,1]).
func (s *Screen) SetPixelAlpha(x, y, paletteIndex int, alpha float64) {
	i, ok := index(x, y)
	if !ok {
		return
	}
	if alpha <= 0 {
		return
	}
	if alpha >= 1 {
		s.indices[i] = byte(paletteIndex)
		s.alpha[i] = 1
		return
	}
	// A blended pixel can no longer be represented by a single palette
	// index, so it is tracked as a full blend against whatever was there;
	// present() resolves it at draw time via lerpColor.
	s.blends = append(s.blends, blend{x: x, y: y, index: byte(paletteIndex), alpha: alpha})
}

// SetPixelShaded scales the RGB of paletteIndex's color by brightness
// (clamped to [0,1]) and writes the result.
func (s *Screen) SetPixelShaded(x, y, paletteIndex int, brightness float64) {
	i, ok := index(x, y)
	if !ok {
		return
	}
	s.indices[i] = byte(paletteIndex)
	s.alpha[i] = 1
	s.brights = append(s.brights, shade{x: x, y: y, brightness: brightness})
}

// Clear fills the whole framebuffer with palette_index.
func (s *Screen) Clear(paletteIndex int) {
	for i := range s.indices {
		s.indices[i] = byte(paletteIndex)
		s.alpha[i] = 1
	}
	s.blends = s.blends[:0]
	s.brights = s.brights[:0]
}

// blend and shade record per-pixel overrides applied at Present time,
// since the base indices/alpha arrays only hold one flat color per pixel.
type blend struct {
	x, y  int
	index byte
	alpha float64
}

type shade struct {
	x, y       int
	brightness float64
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func lerpColor(from, to color.RGBA, t float64) color.RGBA {
	t = clamp01(t)
	return color.RGBA{
		R: uint8(float64(from.R) + (float64(to.R)-float64(from.R))*t),
		G: uint8(float64(from.G) + (float64(to.G)-float64(from.G))*t),
		B: uint8(float64(from.B) + (float64(to.B)-float64(from.B))*t),
		A: 255,
	}
}

func shadeColor(c color.RGBA, brightness float64) color.RGBA {
	b := clamp01(brightness)
	return color.RGBA{
		R: uint8(float64(c.R) * b),
		G: uint8(float64(c.G) * b),
		B: uint8(float64(c.B) * b),
		A: 255,
	}
}

func paletteColor(index int) color.RGBA {
	if index < 0 || index >= len(Palette) {
		return color.RGBA{A: 255}
	}
	return Palette[index]
}

// Present draws the framebuffer to the window and flips it, resolving any
// blended/shaded overrides queued since the last Present. A no-op in
// headless mode beyond clearing the per-frame override queues.
func (s *Screen) Present() {
	defer func() { s.blends = s.blends[:0]; s.brights = s.brights[:0] }()
	if s.headless {
		return
	}

	s.win.Clear(paletteColor(int(s.indices[0])))
	draw := imdraw.New(nil)
	scale := float64(windowScale)

	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			i := y*Width + x
			c := paletteColor(int(s.indices[i]))
			draw.Color = c
			draw.Push(pixel.V(float64(x)*scale, float64(Height-1-y)*scale))
			draw.Push(pixel.V(float64(x)*scale+scale, float64(Height-1-y)*scale+scale))
			draw.Rectangle(0)
		}
	}
	for _, b := range s.blends {
		base := paletteColor(int(s.indices[y2i(b.x, b.y)]))
		c := lerpColor(base, paletteColor(int(b.index)), b.alpha)
		draw.Color = c
		draw.Push(pixel.V(float64(b.x)*scale, float64(Height-1-b.y)*scale))
		draw.Push(pixel.V(float64(b.x)*scale+scale, float64(Height-1-b.y)*scale+scale))
		draw.Rectangle(0)
	}
	for _, sh := range s.brights {
		base := paletteColor(int(s.indices[y2i(sh.x, sh.y)]))
		c := shadeColor(base, sh.brightness)
		draw.Color = c
		draw.Push(pixel.V(float64(sh.x)*scale, float64(Height-1-sh.y)*scale))
		draw.Push(pixel.V(float64(sh.x)*scale+scale, float64(Height-1-sh.y)*scale+scale))
		draw.Rectangle(0)
	}

	draw.Draw(s.win)
	s.win.Update()
}

func y2i(x, y int) int { return y*Width + x }
