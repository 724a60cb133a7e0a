package host

import (
	"github.com/rolandbrake/piscript/internal/piscript/cartridge"
	"github.com/rolandbrake/piscript/internal/piscript/value"
	"github.com/rolandbrake/piscript/internal/piscript/vm"
)

// RegisterCartridgeAssets binds a loaded cartridge's sprite sheet and SFX
// bank into the VM's globals as SPRITES and SFX_BANK, the "taking
// ownership of its sprite sheet and SFX bank (exposed to scripts through
// host functions)" half of cartridge consumption; the other half (feeding
// Code to the compile pipeline) is the caller's job.
func RegisterCartridgeAssets(m *vm.VM, c *cartridge.Cartridge) {
	sprites := make([]value.Value, len(c.Sprites))
	for i, s := range c.Sprites {
		m.Track(s)
		sprites[i] = value.FromObj(s)
	}
	m.RegisterConst("SPRITES", value.FromObj(m.NewList(sprites)))

	bank := make([]value.Value, len(c.SFX))
	for i, sfx := range c.SFX {
		bank[i] = value.FromObj(m.NewList(sfxNotes(m, sfx)))
	}
	m.RegisterConst("SFX_BANK", value.FromObj(m.NewList(bank)))
}

func sfxNotes(m *vm.VM, sfx value.SFX) []value.Value {
	notes := make([]value.Value, len(sfx.Notes))
	for i, n := range sfx.Notes {
		notes[i] = value.FromObj(m.NewList([]value.Value{
			value.Num(float64(n.Frequency)),
			value.Num(float64(n.Volume)),
			value.Num(float64(n.Waveform)),
		}))
	}
	return notes
}
