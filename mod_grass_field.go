package portfolio

import (
	"github.com/aek676/portfolio/background/core"
)

// GrassField exposes the current instanced field to renderers. Field is
// replaced, never mutated, when the tier's (count, LOD) key changes; Dirty is
// true for the frame in which that happened. Visible is false when the
// field's bounding sphere lies outside the camera frustum.
type GrassField struct {
	Field   *core.Field
	Dirty   bool
	Visible bool

	cache *core.FieldCache
}

type GrassFieldModule struct {
	// Seed makes the field reproducible when non-zero.
	Seed uint64
}

func (mod GrassFieldModule) Install(app *App, cmd *Commands) {
	cache := core.NewFieldCache(nil)
	if mod.Seed != 0 {
		cache = core.NewSeededFieldCache(mod.Seed)
	}
	cmd.AddResources(&GrassField{cache: cache})

	app.UseSystem(
		System(func(c *Capability, cam *core.CameraState, gf *GrassField) {
			grassFieldSystem(app.Logger(), c, cam, gf)
		}).
			InStage(PreRender).
			InState(OnExecute(StateMounted)),
	)
	app.UseSystem(
		System(func(gf *GrassField) {
			gf.cache.Invalidate()
			gf.Field = nil
			gf.Visible = false
		}).
			InStage(Finale).
			InState(OnEnter(StateUnmounted)),
	)
}

func grassFieldSystem(log Logger, c *Capability, cam *core.CameraState, gf *GrassField) {
	field, regenerated := gf.cache.Get(c.Config)
	gf.Field = field
	gf.Dirty = regenerated
	gf.Visible = field.Count() > 0 && field.Bounds.InFrustum(core.ExtractFrustum(cam.ViewProjection()))
	if regenerated {
		log.Infof("Generated grass field: %d blades, lod=%t, generation %d",
			field.Count(), field.Key.LOD, field.Generation)
	}
}
