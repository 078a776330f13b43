package portfolio

// RendererName identifies a concrete renderer module.
// Keep names aligned with ensureSingleRenderer tags.
type RendererName string

const (
	RendererWebGPU RendererName = "webgpu"
	RendererWebGL  RendererName = "webgl"
)

// Renderer is an alias to Module for semantic clarity in APIs.
type Renderer interface {
	Module
}

// UseRenderer installs exactly one renderer module, enforcing exclusivity via
// ensureSingleRenderer.
// Usage:
//
//	app.UseRenderer(RendererWebGPU, ClientModule{...})
func (app *App) UseRenderer(name RendererName, mod Renderer) *App {
	ensureSingleRenderer(app, string(name))
	app.Logger().Infof("Renderer selected: %s", name)
	app.UseModules(mod)
	return app
}
