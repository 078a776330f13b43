package portfolio

import (
	"github.com/aek676/portfolio/background/core"
	"github.com/go-gl/mathgl/mgl32"
)

// FrameUniforms are the per-frame shader inputs shared by both renderers.
type FrameUniforms struct {
	Time           float32
	WindComplexity float32
	FogColor       mgl32.Vec3
}

type WindModule struct{}

func (mod WindModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&FrameUniforms{FogColor: core.FogColor})
	app.UseSystem(
		System(windSystem).
			InStage(Update).
			InState(OnExecute(StateMounted)),
	)
}

func windSystem(t *Time, c *Capability, u *FrameUniforms) {
	u.Time = t.ElapsedSeconds()
	u.WindComplexity = c.Config.WindComplexity
	u.FogColor = core.FogColor
}
