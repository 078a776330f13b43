package portfolio

import (
	"github.com/aek676/portfolio/background/core"
)

// Options configures NewBackground.
type Options struct {
	Signals core.Signals
	// Tier forces a tier by name ("high", "medium", "low", "minimal").
	Tier   string
	Width  int
	Height int
	// PixelRatio is the device pixel ratio; the tier caps it.
	PixelRatio float32
	Seed       uint64
	Debug      bool
	Logger     Logger
}

// NewBackground assembles the grass background around one renderer. The
// returned app starts in StateMounting; drive it with Run or Step.
func NewBackground(opts Options, name RendererName, renderer Renderer) *App {
	app := NewAppBuilder().
		UseLifecycleStates().
		UseModule(
			LoggingModule{Prefix: "background", Debug: opts.Debug, Logger: opts.Logger},
			TimeModule{},
			CapabilityModule{Signals: opts.Signals, Override: opts.Tier},
			LifecycleModule{},
			GrassFieldModule{Seed: opts.Seed},
			WindModule{},
			ScrollCameraModule{Width: opts.Width, Height: opts.Height, PixelRatio: opts.PixelRatio},
		).
		Build()

	if renderer != nil {
		app.UseRenderer(name, renderer)
	}
	return app
}
