package portfolio

import (
	"github.com/aek676/portfolio/background/core"
)

// ScrollState is written by the renderer's scroll listener. Progress is
// recomputed on every event, not per frame.
type ScrollState struct {
	ScrollY        float64
	DocumentHeight float64
	ViewportHeight float64
	Progress       float32
}

func (s *ScrollState) Set(scrollY, documentHeight, viewportHeight float64) {
	s.ScrollY = scrollY
	s.DocumentHeight = documentHeight
	s.ViewportHeight = viewportHeight
	s.Progress = core.ScrollProgress(scrollY, documentHeight, viewportHeight)
}

// ScrollBy moves by delta, clamped to the scrollable range.
func (s *ScrollState) ScrollBy(delta float64) {
	y := s.ScrollY + delta
	if limit := s.DocumentHeight - s.ViewportHeight; y > limit {
		y = limit
	}
	if y < 0 {
		y = 0
	}
	s.Set(y, s.DocumentHeight, s.ViewportHeight)
}

// Viewport is the drawable size in CSS pixels (or window points on desktop)
// and the device pixel ratio.
type Viewport struct {
	Width, Height int
	PixelRatio    float32
}

func (v *Viewport) Aspect() float32 {
	if v.Width <= 0 || v.Height <= 0 {
		return 16.0 / 9.0
	}
	return float32(v.Width) / float32(v.Height)
}

// DrawingBufferSize is the backing-store size for a config's pixel ratio cap.
func (v *Viewport) DrawingBufferSize(cfg core.RenderConfig) (int, int) {
	r := cfg.EffectivePixelRatio(v.PixelRatio)
	return int(float32(v.Width) * r), int(float32(v.Height) * r)
}

type ScrollCameraModule struct {
	Width, Height int
	PixelRatio    float32
}

func (mod ScrollCameraModule) Install(app *App, cmd *Commands) {
	vp := &Viewport{Width: mod.Width, Height: mod.Height, PixelRatio: mod.PixelRatio}
	if vp.PixelRatio <= 0 {
		vp.PixelRatio = 1
	}
	cmd.AddResources(
		vp,
		&ScrollState{ViewportHeight: float64(mod.Height), DocumentHeight: float64(mod.Height)},
		core.NewCameraState(vp.Aspect(), core.ConfigFor(core.TierMedium).RenderDistance),
	)
	app.UseSystem(
		System(scrollCameraSystem).
			InStage(PostUpdate).
			InState(OnExecute(StateMounted)),
	)
}

func scrollCameraSystem(t *Time, s *ScrollState, vp *Viewport, c *Capability, cam *core.CameraState) {
	cam.Aspect = vp.Aspect()
	cam.Far = c.Config.RenderDistance
	core.UpdateCamera(cam, core.FrameState{
		Elapsed:        t.ElapsedSeconds(),
		ScrollProgress: s.Progress,
	})
}
