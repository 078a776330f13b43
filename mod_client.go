//go:build !js

package portfolio

import (
	"fmt"
	"runtime"

	"github.com/aek676/portfolio/background/core"
	"github.com/aek676/portfolio/background/gpu"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// ClientModule renders the background into a desktop window with WebGPU.
// The mouse wheel and arrow keys stand in for page scrolling over a
// simulated document, and the number keys 1-4 switch tiers.
type ClientModule struct {
	WindowWidth  int
	WindowHeight int
	WindowTitle  string
	// Pages is the simulated document height in viewports.
	Pages float64
	// ScrollStep is the distance one wheel notch scrolls, in points.
	ScrollStep float64
}

type clientState struct {
	window  *WindowState
	gpu     *GpuState
	pass    *gpu.GrassRenderPass
	targets *gpu.Targets
	tag     *RendererTag
	step    float64
	pages   float64
}

// DesktopSignals reports the host's processor count. Memory is not probed
// and takes the classifier default.
func DesktopSignals() core.Signals {
	return core.Signals{
		HardwareConcurrency: runtime.NumCPU(),
		UserAgent:           runtime.GOOS,
		Available:           true,
	}
}

func (mod ClientModule) Install(app *App, cmd *Commands) {
	tag := ensureSingleRenderer(app, string(RendererWebGPU))

	width, height := mod.WindowWidth, mod.WindowHeight
	if width <= 0 {
		width = 1280
	}
	if height <= 0 {
		height = 720
	}
	title := mod.WindowTitle
	if title == "" {
		title = "Portfolio Background"
	}
	state := &clientState{tag: tag, step: mod.ScrollStep, pages: mod.Pages}
	if state.step <= 0 {
		state.step = 80
	}
	if state.pages < 1 {
		state.pages = 4
	}
	cmd.AddResources(state, &Input{})

	ws, err := createWindowState(width, height, title)
	if err != nil {
		degradeRenderer(app, tag, err)
		return
	}
	gs, err := createGpuState(ws)
	if err != nil {
		ws.destroy()
		degradeRenderer(app, tag, err)
		return
	}
	state.window = ws
	state.gpu = gs
	app.Logger().Infof("WebGPU client ready (%dx%d, %s)", width, height, gs.surfaceConfig.Format)

	app.UseSystem(
		System(clientEventsSystem).
			InStage(PreUpdate).
			RunAlways(),
	)
	app.UseSystem(
		System(clientControlsSystem).
			InStage(Update).
			InState(OnExecute(StateMounted)),
	)
	app.UseSystem(
		System(func(cs *clientState, vp *Viewport, scroll *ScrollState, c *Capability, input *Input, subs *core.Subscriptions) {
			if err := clientMount(cs, vp, scroll, c, input, subs); err != nil {
				degradeRenderer(app, cs.tag, err)
			}
		}).
			InStage(Render).
			InState(OnEnter(StateMounted)),
	)
	app.UseSystem(
		System(func(cs *clientState, c *Capability, gf *GrassField, cam *core.CameraState, u *FrameUniforms) {
			if err := clientRender(cs, c, gf, cam, u); err != nil {
				app.Logger().Warnf("Frame skipped: %v", err)
			}
		}).
			InStage(Render).
			InState(OnExecute(StateMounted)),
	)
	app.UseSystem(
		System(clientRelease).
			InStage(Finale).
			InState(OnExit(StateUnmounted)),
	)
}

func clientEventsSystem(cs *clientState, input *Input, cmd *Commands) {
	if cs.window == nil {
		return
	}
	glfw.PollEvents()
	pollInput(cs.window.windowGlfw, input)
	if cs.window.windowGlfw.ShouldClose() {
		cmd.Unmount()
	}
}

func clientControlsSystem(cs *clientState, input *Input, scroll *ScrollState, c *Capability, cmd *Commands) {
	if applyPreviewControls(input, scroll, c, cs.step) {
		cmd.Unmount()
	}
}

func clientMount(cs *clientState, vp *Viewport, scroll *ScrollState, c *Capability, input *Input, subs *core.Subscriptions) error {
	if cs.gpu == nil {
		return nil
	}
	if err := cs.buildPass(c.Config); err != nil {
		return err
	}

	win := cs.window.windowGlfw
	ww, wh := win.GetSize()
	vp.Width, vp.Height = ww, wh
	vp.PixelRatio = cs.window.contentScale()
	scroll.Set(0, float64(wh)*cs.pages, float64(wh))

	win.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		input.addWheel(yoff)
	})
	subs.Add("scroll", func() { win.SetScrollCallback(nil) })

	win.SetSizeCallback(func(w *glfw.Window, width, height int) {
		vp.Width, vp.Height = width, height
		vp.PixelRatio = cs.window.contentScale()
		scroll.Set(scroll.ScrollY, float64(height)*cs.pages, float64(height))
	})
	subs.Add("resize", func() { win.SetSizeCallback(nil) })

	win.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		cs.resize(uint32(width), uint32(height))
	})
	subs.Add("framebuffer", func() { win.SetFramebufferSizeCallback(nil) })

	return nil
}

// buildPass (re)creates the pipeline and attachments for cfg's sample count.
func (cs *clientState) buildPass(cfg core.RenderConfig) error {
	samples := cfg.SampleCount()
	if cs.pass != nil && cs.pass.SampleCount == samples {
		return nil
	}
	cs.releasePass()

	device := cs.gpu.device
	format := cs.gpu.surfaceConfig.Format
	pass, err := gpu.NewGrassRenderPass(device, format, samples)
	if err != nil {
		return err
	}
	targets, err := gpu.NewTargets(device, format, cs.gpu.surfaceConfig.Width, cs.gpu.surfaceConfig.Height, samples)
	if err != nil {
		pass.Release()
		return err
	}
	cs.pass, cs.targets = pass, targets
	return nil
}

func (cs *clientState) resize(width, height uint32) {
	if cs.gpu == nil || width == 0 || height == 0 {
		return
	}
	cs.gpu.resize(width, height)
	if cs.targets != nil {
		if err := cs.targets.Resize(cs.gpu.device, width, height); err != nil {
			cs.releasePass()
		}
	}
}

func clientRender(cs *clientState, c *Capability, gf *GrassField, cam *core.CameraState, u *FrameUniforms) error {
	if cs.gpu == nil {
		return nil
	}
	if err := cs.buildPass(c.Config); err != nil {
		return err
	}

	queue := cs.gpu.queue
	if _, err := cs.pass.UpdateField(queue, gf.Field); err != nil {
		return err
	}
	if err := cs.pass.UpdateUniforms(queue, gpu.NewGrassUniforms(cam, u.Time, u.WindComplexity)); err != nil {
		return err
	}

	surfaceTexture, err := cs.gpu.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("acquire surface texture: %w", err)
	}
	defer surfaceTexture.Release()
	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return err
	}
	defer view.Release()

	encoder, err := cs.gpu.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	defer encoder.Release()

	fog := u.FogColor
	pass := encoder.BeginRenderPass(cs.targets.PassDescriptor(view, wgpu.Color{
		R: float64(fog[0]), G: float64(fog[1]), B: float64(fog[2]), A: 1,
	}))
	if gf.Visible {
		cs.pass.Draw(pass)
	}
	if err := pass.End(); err != nil {
		return err
	}
	pass.Release()

	cmdBuf, err := encoder.Finish(nil)
	if err != nil {
		return err
	}
	defer cmdBuf.Release()
	queue.Submit(cmdBuf)
	cs.gpu.surface.Present()
	return nil
}

func (cs *clientState) releasePass() {
	if cs.targets != nil {
		cs.targets.Release()
		cs.targets = nil
	}
	if cs.pass != nil {
		cs.pass.Release()
		cs.pass = nil
	}
}

func clientRelease(cs *clientState) {
	cs.releasePass()
	if cs.gpu != nil {
		cs.gpu.release()
		cs.gpu = nil
	}
	if cs.window != nil {
		cs.window.destroy()
		cs.window = nil
	}
}
