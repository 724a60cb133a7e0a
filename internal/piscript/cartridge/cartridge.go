// Package cartridge implements the ".px" binary cartridge codec: a fixed
// little-endian layout carrying a sprite sheet, an SFX bank, and a blob of
// script source, read and written exactly as chippy's loadROM reads a raw
// ROM image into memory, but with a real header and multiple sections
// instead of one flat byte dump.
package cartridge

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rolandbrake/piscript/internal/piscript/value"
)

// Magic is the 3-byte literal every cartridge file starts with.
var Magic = [3]byte{'P', 'X', '1'}

const noteCount = 32

// Flags bits reserved in the header; none are defined yet.
type Flags uint16

// Cartridge is a fully loaded cartridge: decoded sprite sheet, SFX bank,
// and the raw script source blob, ready to hand to the lex/parse/compile
// pipeline as if it were a `.pi` file.
type Cartridge struct {
	Version uint16
	Flags   Flags
	Sprites []*value.SpriteObj
	SFX     []value.SFX
	Code    []byte
}

// Load reads path as a cartridge, validating the magic and allocating each
// section exactly sized by the header. A short read, bad magic, or
// allocation failure aborts the read and returns a wrapped load error; no
// partial Cartridge is returned in that case.
func Load(path string) (*Cartridge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cartridge: open %q", path)
	}
	defer f.Close()

	c, err := Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "cartridge: load %q", path)
	}
	return c, nil
}

// Read decodes a cartridge from r, the section-by-section reverse of Write.
func Read(r io.Reader) (*Cartridge, error) {
	var magic [3]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, errors.Wrap(err, "read magic")
	}
	if magic != Magic {
		return nil, errors.Errorf("bad magic %q, want %q", magic, Magic)
	}

	var header struct {
		Version     uint16
		Flags       uint16
		SpriteCount uint16
		SFXCount    uint16
		CodeSize    uint32
	}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, errors.Wrap(err, "read header")
	}

	c := &Cartridge{
		Version: header.Version,
		Flags:   Flags(header.Flags),
		Sprites: make([]*value.SpriteObj, 0, header.SpriteCount),
		SFX:     make([]value.SFX, 0, header.SFXCount),
	}

	for i := uint16(0); i < header.SpriteCount; i++ {
		sprite, err := readSprite(r)
		if err != nil {
			return nil, errors.Wrapf(err, "read sprite %d", i)
		}
		c.Sprites = append(c.Sprites, sprite)
	}

	for i := uint16(0); i < header.SFXCount; i++ {
		sfx, err := readSFX(r)
		if err != nil {
			return nil, errors.Wrapf(err, "read sfx %d", i)
		}
		c.SFX = append(c.SFX, sfx)
	}

	code := make([]byte, header.CodeSize)
	if _, err := io.ReadFull(r, code); err != nil {
		return nil, errors.Wrap(err, "read code")
	}
	c.Code = code

	return c, nil
}

func readSprite(r io.Reader) (*value.SpriteObj, error) {
	var dims struct{ Width, Height uint16 }
	if err := binary.Read(r, binary.LittleEndian, &dims); err != nil {
		return nil, errors.Wrap(err, "read dimensions")
	}
	indices := make([]byte, int(dims.Width)*int(dims.Height))
	if _, err := io.ReadFull(r, indices); err != nil {
		return nil, errors.Wrap(err, "read indices")
	}
	return value.NewSprite(int(dims.Width), int(dims.Height), indices), nil
}

func readSFX(r io.Reader) (value.SFX, error) {
	var sfx value.SFX
	var head struct{ Speed, Length uint16 }
	if err := binary.Read(r, binary.LittleEndian, &head); err != nil {
		return sfx, errors.Wrap(err, "read speed/length")
	}
	sfx.Speed = head.Speed
	sfx.Length = head.Length
	for i := 0; i < noteCount; i++ {
		var raw struct {
			Frequency uint16
			Volume    byte
			Waveform  byte
		}
		if err := binary.Read(r, binary.LittleEndian, &raw); err != nil {
			return sfx, errors.Wrapf(err, "read note %d", i)
		}
		sfx.Notes[i] = value.Note{
			Frequency: raw.Frequency,
			Volume:    raw.Volume,
			Waveform:  value.Waveform(raw.Waveform),
		}
	}
	return sfx, nil
}

// Save writes c to path, the inverse of Load.
func Save(path string, c *Cartridge) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "cartridge: create %q", path)
	}
	defer f.Close()
	if err := Write(f, c); err != nil {
		return errors.Wrapf(err, "cartridge: save %q", path)
	}
	return nil
}

// Write encodes c to w. No padding or alignment between sections.
func Write(w io.Writer, c *Cartridge) error {
	var buf bytes.Buffer
	buf.Write(Magic[:])

	header := struct {
		Version     uint16
		Flags       uint16
		SpriteCount uint16
		SFXCount    uint16
		CodeSize    uint32
	}{
		Version:     c.Version,
		Flags:       uint16(c.Flags),
		SpriteCount: uint16(len(c.Sprites)),
		SFXCount:    uint16(len(c.SFX)),
		CodeSize:    uint32(len(c.Code)),
	}
	if err := binary.Write(&buf, binary.LittleEndian, header); err != nil {
		return errors.Wrap(err, "write header")
	}

	for i, sprite := range c.Sprites {
		dims := struct{ Width, Height uint16 }{uint16(sprite.Width), uint16(sprite.Height)}
		if err := binary.Write(&buf, binary.LittleEndian, dims); err != nil {
			return errors.Wrapf(err, "write sprite %d dimensions", i)
		}
		buf.Write(sprite.Indices)
	}

	for i, sfx := range c.SFX {
		head := struct{ Speed, Length uint16 }{sfx.Speed, sfx.Length}
		if err := binary.Write(&buf, binary.LittleEndian, head); err != nil {
			return errors.Wrapf(err, "write sfx %d speed/length", i)
		}
		for j, n := range sfx.Notes {
			raw := struct {
				Frequency uint16
				Volume    byte
				Waveform  byte
			}{n.Frequency, n.Volume, byte(n.Waveform)}
			if err := binary.Write(&buf, binary.LittleEndian, raw); err != nil {
				return errors.Wrapf(err, "write sfx %d note %d", i, j)
			}
		}
	}

	buf.Write(c.Code)

	_, err := w.Write(buf.Bytes())
	return errors.Wrap(err, "write cartridge")
}

// IsCartridge reports whether path's extension marks it as a binary
// cartridge (`.px`) rather than plain script source (`.pi`).
func IsCartridge(path string) bool {
	return len(path) >= 3 && path[len(path)-3:] == ".px"
}
