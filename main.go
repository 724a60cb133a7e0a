package main

import (
	"github.com/faiface/pixel/pixelgl"
	"github.com/rolandbrake/piscript/cmd"
)

func main() {
	// pixelgl needs the main thread for any window it creates, so the whole
	// CLI (not just cartridge execution) runs under pixelgl.Run, the same
	// pattern chippy's main.go uses around its one emulate-and-draw loop.
	pixelgl.Run(cmd.Execute)
}
