package host

import (
	"github.com/rolandbrake/piscript/internal/piscript/value"
	"github.com/rolandbrake/piscript/internal/piscript/vm"
)

// registerAudio installs the tone/music player surface: play, is_playing,
// and stop_all, the three Mixer-capability functions §6 names verbatim.
func registerAudio(m *vm.VM) {
	m.RegisterNative("play", 3, func(h any, args []value.Value) (value.Value, error) {
		mx, ok := asMixer(h)
		if !ok {
			return value.Nil, nil
		}
		mx.Play(argNumber(args, 0), argInt(args, 1), argInt(args, 2))
		return value.Nil, nil
	})
	m.RegisterNative("is_playing", 0, func(h any, args []value.Value) (value.Value, error) {
		mx, ok := asMixer(h)
		if !ok {
			return value.Bool(false), nil
		}
		return value.Bool(mx.IsPlaying()), nil
	})
	m.RegisterNative("stop_all", 0, func(h any, args []value.Value) (value.Value, error) {
		mx, ok := asMixer(h)
		if !ok {
			return value.Nil, nil
		}
		mx.StopAll()
		return value.Nil, nil
	})
}
