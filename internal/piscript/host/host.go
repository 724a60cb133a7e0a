// Package host implements the host-call ABI: every native function and
// constant the script-visible language surface exposes at startup,
// grounded on chippy's direct, one-name-to-one-C-function builtin style
// (§4.8) but generalized from chippy's fixed opcode table to a named
// global registered in the VM's globals map.
package host

import (
	"fmt"
	"math"

	"github.com/rolandbrake/piscript/internal/piscript/mixer"
	"github.com/rolandbrake/piscript/internal/piscript/screen"
	"github.com/rolandbrake/piscript/internal/piscript/value"
	"github.com/rolandbrake/piscript/internal/piscript/vm"
)

func paletteConstName(i int) string { return fmt.Sprintf("COLOR_%d", i) }

// Register installs the full native surface and every host constant (PI,
// E, screen dimensions, waveform codes, the 32 named palette colors) into
// vm's globals, the ABI's registration mechanism per §4.8.
func Register(m *vm.VM) {
	registerMath(m)
	registerCollections(m)
	registerStrings(m)
	registerIO(m)
	registerDraw(m)
	registerImage(m)
	registerAudio(m)

	m.RegisterConst("PI", value.Num(math.Pi))
	m.RegisterConst("E", value.Num(math.E))
	m.RegisterConst("SCREEN_WIDTH", value.Num(screen.Width))
	m.RegisterConst("SCREEN_HEIGHT", value.Num(screen.Height))
	m.RegisterConst("WAVE_SINE", value.Num(float64(value.WaveSine)))
	m.RegisterConst("WAVE_SQUARE", value.Num(float64(value.WaveSquare)))
	m.RegisterConst("WAVE_TRIANGLE", value.Num(float64(value.WaveTriangle)))
	m.RegisterConst("WAVE_SAWTOOTH", value.Num(float64(value.WaveSawtooth)))
	m.RegisterConst("WAVE_NOISE", value.Num(float64(value.WaveNoise)))

	for i := range screen.Palette {
		m.RegisterConst(paletteConstName(i), value.Num(float64(i)))
	}
}

// asVM type-asserts the opaque native handle back to the concrete VM;
// host functions are only ever invoked by the VM that holds them, so this
// assertion is trusted rather than defensively checked, matching the
// Native signature's contract.
func asVM(h any) *vm.VM { return h.(*vm.VM) }

func asScreen(h any) (*screen.Screen, bool) {
	s, ok := asVM(h).Screen.(*screen.Screen)
	return s, ok
}

func asMixer(h any) (*mixer.Mixer, bool) {
	mx, ok := asVM(h).Mixer.(*mixer.Mixer)
	return mx, ok
}

func argNumber(args []value.Value, i int) float64 {
	if i >= len(args) {
		return 0
	}
	f, _ := args[i].AsNumber()
	return f
}

func argInt(args []value.Value, i int) int { return int(argNumber(args, i)) }

func argString(args []value.Value, i int) string {
	if i >= len(args) {
		return ""
	}
	return args[i].AsString()
}
