//go:build !js

// Command preview opens the grass background in a desktop window. The mouse
// wheel scrolls a simulated page and keys 1-4 switch tiers.
package main

import (
	"flag"
	"runtime"

	"github.com/aek676/portfolio"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	tier := flag.String("tier", "", "force a tier (high, medium, low, minimal)")
	width := flag.Int("width", 1280, "window width")
	height := flag.Int("height", 720, "window height")
	pages := flag.Float64("pages", 4, "simulated page height, in viewports")
	seed := flag.Uint64("seed", 0, "field seed; 0 picks a random one")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	app := portfolio.NewBackground(portfolio.Options{
		Signals: portfolio.DesktopSignals(),
		Tier:    *tier,
		Width:   *width,
		Height:  *height,
		Seed:    *seed,
		Debug:   *debug,
	}, portfolio.RendererWebGPU, portfolio.ClientModule{
		WindowWidth:  *width,
		WindowHeight: *height,
		Pages:        *pages,
	})

	app.Run()
}
