package screen

import (
	"image/color"
	"testing"
)

func TestHeadlessScreenSkipsWindowCreation(t *testing.T) {
	s, err := New(true)
	if err != nil {
		t.Fatalf("New(true) returned error: %v", err)
	}
	if s.Closed() {
		t.Errorf("a headless screen should never report Closed")
	}
	s.PollInput() // must not panic with no window
	s.Present()   // same
}

func TestSetPixelOutOfBoundsIsNoOp(t *testing.T) {
	s, _ := New(true)
	s.SetPixel(-1, 0, 5)
	s.SetPixel(Width, 0, 5)
	s.SetPixel(0, Height, 5)
	for _, v := range s.indices {
		if v != 0 {
			t.Fatalf("out-of-bounds SetPixel wrote into the framebuffer")
		}
	}
}

func TestSetPixelWritesIndex(t *testing.T) {
	s, _ := New(true)
	s.SetPixel(3, 4, 7)
	i, ok := index(3, 4)
	if !ok || s.indices[i] != 7 {
		t.Errorf("SetPixel(3,4,7) didn't write index 7 at (3,4)")
	}
}

func TestClearResetsWholeFramebufferAndQueues(t *testing.T) {
	s, _ := New(true)
	s.SetPixelAlpha(1, 1, 2, 0.5)
	s.SetPixelShaded(2, 2, 3, 0.5)
	s.Clear(9)
	for _, v := range s.indices {
		if v != 9 {
			t.Fatalf("Clear(9) left a pixel not set to 9")
		}
	}
	if len(s.blends) != 0 || len(s.brights) != 0 {
		t.Errorf("Clear should drop queued blend/shade overrides")
	}
}

func TestSetPixelAlphaFullyOpaqueWritesIndexDirectly(t *testing.T) {
	s, _ := New(true)
	s.SetPixelAlpha(0, 0, 4, 1.0)
	i, _ := index(0, 0)
	if s.indices[i] != 4 {
		t.Errorf("alpha=1 should write the palette index directly")
	}
	if len(s.blends) != 0 {
		t.Errorf("alpha=1 shouldn't queue a blend")
	}
}

func TestSetPixelAlphaZeroIsNoOp(t *testing.T) {
	s, _ := New(true)
	s.SetPixelAlpha(0, 0, 4, 0)
	if len(s.blends) != 0 {
		t.Errorf("alpha=0 should queue nothing")
	}
}

func TestLerpColorInterpolatesChannels(t *testing.T) {
	from := color.RGBA{R: 0, G: 0, B: 0, A: 255}
	to := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	mid := lerpColor(from, to, 0.5)
	if mid.R != 100 || mid.G != 50 || mid.B != 25 {
		t.Errorf("lerpColor at t=0.5 = %+v, want R100 G50 B25", mid)
	}
}

func TestLerpColorClampsT(t *testing.T) {
	from := color.RGBA{R: 10}
	to := color.RGBA{R: 200}
	if got := lerpColor(from, to, 2.0); got.R != 200 {
		t.Errorf("lerpColor with t>1 should clamp to `to`, got R=%d", got.R)
	}
	if got := lerpColor(from, to, -1.0); got.R != 10 {
		t.Errorf("lerpColor with t<0 should clamp to `from`, got R=%d", got.R)
	}
}

func TestShadeColorScalesBrightness(t *testing.T) {
	c := color.RGBA{R: 100, G: 200, B: 50, A: 255}
	half := shadeColor(c, 0.5)
	if half.R != 50 || half.G != 100 || half.B != 25 {
		t.Errorf("shadeColor at 0.5 = %+v, want R50 G100 B25", half)
	}
}

func TestPaletteColorOutOfRangeReturnsOpaqueBlack(t *testing.T) {
	c := paletteColor(999)
	if c.A != 255 || c.R != 0 || c.G != 0 || c.B != 0 {
		t.Errorf("out-of-range palette index = %+v, want opaque black", c)
	}
}
