//go:build js && wasm

// Command background mounts the grass background into the page. Build with
// GOOS=js GOARCH=wasm and serve the result as background.wasm.
package main

import (
	"net/url"
	"strconv"
	"strings"
	"syscall/js"

	"github.com/aek676/portfolio"
)

func main() {
	width, height, ratio := portfolio.BrowserViewport()

	// ?tier=low and ?debug are development aids
	search := js.Global().Get("location").Get("search").String()
	query, _ := url.ParseQuery(strings.TrimPrefix(search, "?"))
	debug, _ := strconv.ParseBool(query.Get("debug"))
	if query.Has("debug") && query.Get("debug") == "" {
		debug = true
	}

	app := portfolio.NewBackground(portfolio.Options{
		Signals:    portfolio.BrowserSignals(),
		Tier:       query.Get("tier"),
		Width:      width,
		Height:     height,
		PixelRatio: ratio,
		Debug:      debug,
	}, portfolio.RendererWebGL, portfolio.WebGLModule{ContainerID: "grass-background"})

	<-app.RunInBrowser()
}
