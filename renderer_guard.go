package portfolio

import (
	"fmt"
	"reflect"
)

// RendererTag marks that a renderer has been installed into the App.
// Only one renderer should be installed at a time. Err is set when the
// renderer could not obtain a rendering context.
type RendererTag struct {
	Name string
	Err  error
}

// Active reports whether the renderer is drawing.
func (t *RendererTag) Active() bool { return t != nil && t.Err == nil }

var typeOfRendererTag = reflect.TypeOf((*RendererTag)(nil)).Elem()

// ensureSingleRenderer enforces a single renderer invariant.
// If a different renderer is already installed, it panics with a clear message.
func ensureSingleRenderer(app *App, name string) *RendererTag {
	if app == nil {
		panic("ensureSingleRenderer: app is nil")
	}
	if res, ok := app.resources[typeOfRendererTag]; ok {
		tag := res.(*RendererTag)
		if tag.Name != name {
			app.Logger().Errorf("Multiple renderers installed: %s and %s", tag.Name, name)
			panic(fmt.Sprintf("Multiple renderers installed: %s and %s", tag.Name, name))
		}
		return tag
	}
	tag := &RendererTag{Name: name}
	app.addResources(tag)
	return tag
}

// degradeRenderer records a lost or missing rendering context. The page (or
// preview) carries on without a background: the failure is logged once and
// the app unmounts so every subscription is released.
func degradeRenderer(app *App, tag *RendererTag, err error) {
	if tag.Err != nil {
		return
	}
	tag.Err = err
	app.Logger().Errorf("Background disabled, %s renderer unavailable: %v", tag.Name, err)
	app.Unmount()
}
