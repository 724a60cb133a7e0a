package cartridge

import (
	"bytes"
	"testing"

	"github.com/rolandbrake/piscript/internal/piscript/value"
)

func TestWriteReadRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		c    *Cartridge
	}{
		{
			name: "empty",
			c:    &Cartridge{Version: 1, Code: []byte("print(1)")},
		},
		{
			name: "sprites and sfx",
			c: &Cartridge{
				Version: 2,
				Sprites: []*value.SpriteObj{
					value.NewSprite(2, 2, []byte{0, 1, 2, 3}),
					value.NewSprite(1, 3, []byte{4, 5, 6}),
				},
				SFX:  []value.SFX{{Speed: 4, Length: 16}},
				Code: []byte("let x = 1\nprint(x)"),
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(&buf, tc.c); err != nil {
				t.Fatalf("Write: %v", err)
			}

			got, err := Read(&buf)
			if err != nil {
				t.Fatalf("Read: %v", err)
			}

			if got.Version != tc.c.Version {
				t.Errorf("version = %d, want %d", got.Version, tc.c.Version)
			}
			if !bytes.Equal(got.Code, tc.c.Code) {
				t.Errorf("code = %q, want %q", got.Code, tc.c.Code)
			}
			if len(got.Sprites) != len(tc.c.Sprites) {
				t.Fatalf("sprite count = %d, want %d", len(got.Sprites), len(tc.c.Sprites))
			}
			for i, s := range got.Sprites {
				want := tc.c.Sprites[i]
				if s.Width != want.Width || s.Height != want.Height {
					t.Errorf("sprite %d dims = %dx%d, want %dx%d", i, s.Width, s.Height, want.Width, want.Height)
				}
				if !bytes.Equal(s.Indices, want.Indices) {
					t.Errorf("sprite %d indices = %v, want %v", i, s.Indices, want.Indices)
				}
			}
			if len(got.SFX) != len(tc.c.SFX) {
				t.Fatalf("sfx count = %d, want %d", len(got.SFX), len(tc.c.SFX))
			}
		})
	}
}

func TestReadBadMagic(t *testing.T) {
	buf := bytes.NewBufferString("XYZgarbage")
	if _, err := Read(buf); err == nil {
		t.Fatal("expected error for bad magic, got nil")
	}
}

func TestReadShortHeader(t *testing.T) {
	buf := bytes.NewBuffer(Magic[:])
	if _, err := Read(buf); err == nil {
		t.Fatal("expected error for truncated header, got nil")
	}
}

func TestIsCartridge(t *testing.T) {
	if !IsCartridge("game.px") {
		t.Error("game.px should be a cartridge")
	}
	if IsCartridge("game.pi") {
		t.Error("game.pi should not be a cartridge")
	}
}
