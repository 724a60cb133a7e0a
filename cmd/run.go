package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rolandbrake/piscript/internal/piscript/cartridge"
	"github.com/rolandbrake/piscript/internal/piscript/compiler"
	"github.com/rolandbrake/piscript/internal/piscript/host"
	"github.com/rolandbrake/piscript/internal/piscript/mixer"
	"github.com/rolandbrake/piscript/internal/piscript/repl"
	"github.com/rolandbrake/piscript/internal/piscript/screen"
	"github.com/rolandbrake/piscript/internal/piscript/vm"
	"github.com/spf13/cobra"
)

var (
	flagTimeout     time.Duration
	flagHeadless    bool
	flagGCThreshold int
)

// runCmd runs a PiScript cartridge or source file, or drops into the REPL
// when invoked with no path — chippy's "one command, one ROM" run loop
// generalized to the two-format (`.pi`/`.px`) input and the no-argument
// REPL fallback §6's CLI surface describes.
var runCmd = &cobra.Command{
	Use:   "run [path/to/cartridge.px|script.pi]",
	Short: "run a PiScript cartridge or source file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPiscript,
}

func init() {
	runCmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "cancel execution after this long (0 disables)")
	runCmd.Flags().BoolVar(&flagHeadless, "headless", false, "run without opening a screen window, for scripted/test runs")
	runCmd.Flags().IntVar(&flagGCThreshold, "gc-threshold", 0, "override the collector's starting allocation threshold (0 keeps the default)")
}

func runPiscript(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		repl.New(os.Stdin, os.Stdout).Run()
		return nil
	}

	path := args[0]
	source, cart, err := loadSource(path)
	if err != nil {
		return err
	}

	proto, err := compiler.Compile(source)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	m := vm.New()
	if flagGCThreshold > 0 {
		m.SetGCThreshold(flagGCThreshold)
	}
	host.Register(m)
	if cart != nil {
		host.RegisterCartridgeAssets(m, cart)
	}

	scr, err := screen.New(flagHeadless)
	if err != nil {
		return errors.Wrap(err, "run: open screen")
	}
	m.Screen = scr

	mx, err := mixer.New(func(msg string) { fmt.Fprintln(os.Stderr, msg) })
	if err != nil {
		return errors.Wrap(err, "run: init mixer")
	}
	defer mx.Close()
	m.Mixer = mx

	if flagTimeout > 0 {
		timer := time.AfterFunc(flagTimeout, m.Stop)
		defer timer.Stop()
	}

	if err := m.Run(proto); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return nil
}

// loadSource returns the script source to compile, plus the cartridge
// itself (nil for plain `.pi` text) so its sprite sheet and SFX bank can
// be bound into the host surface before execution.
func loadSource(path string) (string, *cartridge.Cartridge, error) {
	if cartridge.IsCartridge(path) {
		c, err := cartridge.Load(path)
		if err != nil {
			return "", nil, err
		}
		return string(c.Code), c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, errors.Wrapf(err, "run: read %q", path)
	}
	return string(data), nil, nil
}
