//go:build js && wasm

package portfolio

import (
	"errors"
	"fmt"
	"syscall/js"

	"github.com/aek676/portfolio/background/core"
	"github.com/aek676/portfolio/background/gpu"
	"github.com/aek676/portfolio/background/shaders"
)

var errNoWebGL2 = errors.New("webgl2 is not supported")

// WebGLModule renders the background into a full-viewport canvas behind the
// page. The canvas ignores pointer events, so the page stays interactive.
type WebGLModule struct {
	// ContainerID is the element the canvas is appended to; body when empty.
	ContainerID string
	CanvasID    string
}

type glConsts struct {
	arrayBuffer        int
	elementArrayBuffer int
	staticDraw         int
	dynamicDraw        int
	floatType          int
	unsignedShort      int
	triangles          int
	colorBufferBit     int
	depthBufferBit     int
	depthTest          int
	lequal             int
	compileStatus      int
	linkStatus         int
	vertexShader       int
	fragmentShader     int
}

type webglState struct {
	tag       *RendererTag
	container string
	canvasID  string

	canvas js.Value
	gl     js.Value
	consts glConsts

	program     js.Value
	vao         js.Value
	vertexVbo   js.Value
	indexBuf    js.Value
	instanceVbo js.Value
	indexCount  int

	instanceCap   int
	instanceCount int
	generation    uint64

	uViewProj       js.Value
	uView           js.Value
	uTime           js.Value
	uWindComplexity js.Value
	uFogColor       js.Value

	bufferWidth, bufferHeight int
}

// BrowserSignals reads the capability signals from navigator. A missing
// navigator reports Available false.
func BrowserSignals() core.Signals {
	nav := js.Global().Get("navigator")
	if !nav.Truthy() {
		return core.Signals{}
	}
	s := core.Signals{Available: true}
	if v := nav.Get("hardwareConcurrency"); v.Type() == js.TypeNumber {
		s.HardwareConcurrency = v.Int()
	}
	if v := nav.Get("deviceMemory"); v.Type() == js.TypeNumber {
		s.DeviceMemoryGB = v.Float()
	}
	if v := nav.Get("userAgent"); v.Type() == js.TypeString {
		s.UserAgent = v.String()
	}
	return s
}

// BrowserViewport reads the window's CSS size and device pixel ratio.
func BrowserViewport() (width, height int, pixelRatio float32) {
	win := js.Global()
	width = win.Get("innerWidth").Int()
	height = win.Get("innerHeight").Int()
	pixelRatio = 1
	if v := win.Get("devicePixelRatio"); v.Type() == js.TypeNumber {
		pixelRatio = float32(v.Float())
	}
	return width, height, pixelRatio
}

func (mod WebGLModule) Install(app *App, cmd *Commands) {
	tag := ensureSingleRenderer(app, string(RendererWebGL))
	state := &webglState{tag: tag, container: mod.ContainerID, canvasID: mod.CanvasID}
	if state.canvasID == "" {
		state.canvasID = "background-3d"
	}
	cmd.AddResources(state)

	if !js.Global().Get("WebGL2RenderingContext").Truthy() {
		degradeRenderer(app, tag, errNoWebGL2)
		return
	}

	app.UseSystem(
		System(func(ws *webglState, vp *Viewport, scroll *ScrollState, c *Capability, subs *core.Subscriptions) {
			if err := ws.mount(vp, scroll, c.Config, subs); err != nil {
				ws.release()
				degradeRenderer(app, ws.tag, err)
			}
		}).
			InStage(Render).
			InState(OnEnter(StateMounted)),
	)
	app.UseSystem(
		System(func(ws *webglState, vp *Viewport, c *Capability, gf *GrassField, cam *core.CameraState, u *FrameUniforms) {
			if ws.gl.Truthy() && ws.gl.Call("isContextLost").Bool() {
				degradeRenderer(app, ws.tag, errors.New("webgl context lost"))
				return
			}
			ws.render(vp, c.Config, gf, cam, u)
		}).
			InStage(Render).
			InState(OnExecute(StateMounted)),
	)
	app.UseSystem(
		System(func(ws *webglState) { ws.release() }).
			InStage(Finale).
			InState(OnExit(StateUnmounted)),
	)
}

func (ws *webglState) mount(vp *Viewport, scroll *ScrollState, cfg core.RenderConfig, subs *core.Subscriptions) error {
	doc := js.Global().Get("document")
	win := js.Global()

	canvas := doc.Call("createElement", "canvas")
	canvas.Set("id", ws.canvasID)
	canvas.Call("setAttribute", "aria-hidden", "true")
	style := canvas.Get("style")
	style.Set("position", "fixed")
	style.Set("inset", "0")
	style.Set("width", "100%")
	style.Set("height", "100%")
	style.Set("zIndex", "-1")
	style.Set("pointerEvents", "none")

	parent := doc.Get("body")
	if ws.container != "" {
		if el := doc.Call("getElementById", ws.container); el.Truthy() {
			parent = el
		}
	}
	parent.Call("appendChild", canvas)
	ws.canvas = canvas

	attrs := map[string]any{
		"antialias":       cfg.Antialiasing,
		"alpha":           false,
		"depth":           true,
		"powerPreference": "high-performance",
	}
	gl := canvas.Call("getContext", "webgl2", attrs)
	if !gl.Truthy() {
		return errNoWebGL2
	}
	ws.gl = gl
	ws.initConsts()

	if err := ws.initProgram(); err != nil {
		return err
	}
	ws.initBuffers()

	gl.Call("enable", ws.consts.depthTest)
	gl.Call("depthFunc", ws.consts.lequal)
	fog := core.FogColor
	gl.Call("clearColor", fog[0], fog[1], fog[2], 1)

	readScroll := func() {
		docEl := doc.Get("documentElement")
		scroll.Set(win.Get("scrollY").Float(), docEl.Get("scrollHeight").Float(), win.Get("innerHeight").Float())
	}
	readViewport := func() {
		vp.Width, vp.Height, vp.PixelRatio = BrowserViewport()
	}
	readViewport()
	readScroll()

	ws.listen(win, "scroll", "scroll", subs, func() { readScroll() })
	ws.listen(win, "resize", "resize", subs, func() {
		readViewport()
		readScroll()
	})
	return nil
}

// listen adds a passive window listener and registers its removal.
func (ws *webglState) listen(target js.Value, event, name string, subs *core.Subscriptions, fn func()) {
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		fn()
		return nil
	})
	opts := map[string]any{"passive": true}
	target.Call("addEventListener", event, cb, opts)
	subs.Add(name, func() {
		target.Call("removeEventListener", event, cb, opts)
		cb.Release()
	})
}

func (ws *webglState) initConsts() {
	gl := ws.gl
	ws.consts = glConsts{
		arrayBuffer:        gl.Get("ARRAY_BUFFER").Int(),
		elementArrayBuffer: gl.Get("ELEMENT_ARRAY_BUFFER").Int(),
		staticDraw:         gl.Get("STATIC_DRAW").Int(),
		dynamicDraw:        gl.Get("DYNAMIC_DRAW").Int(),
		floatType:          gl.Get("FLOAT").Int(),
		unsignedShort:      gl.Get("UNSIGNED_SHORT").Int(),
		triangles:          gl.Get("TRIANGLES").Int(),
		colorBufferBit:     gl.Get("COLOR_BUFFER_BIT").Int(),
		depthBufferBit:     gl.Get("DEPTH_BUFFER_BIT").Int(),
		depthTest:          gl.Get("DEPTH_TEST").Int(),
		lequal:             gl.Get("LEQUAL").Int(),
		compileStatus:      gl.Get("COMPILE_STATUS").Int(),
		linkStatus:         gl.Get("LINK_STATUS").Int(),
		vertexShader:       gl.Get("VERTEX_SHADER").Int(),
		fragmentShader:     gl.Get("FRAGMENT_SHADER").Int(),
	}
}

func (ws *webglState) compileShader(shaderType int, source string) (js.Value, error) {
	shader := ws.gl.Call("createShader", shaderType)
	ws.gl.Call("shaderSource", shader, source)
	ws.gl.Call("compileShader", shader)
	if !ws.gl.Call("getShaderParameter", shader, ws.consts.compileStatus).Bool() {
		log := ws.gl.Call("getShaderInfoLog", shader).String()
		ws.gl.Call("deleteShader", shader)
		return js.Null(), fmt.Errorf("compile error: %s", log)
	}
	return shader, nil
}

func (ws *webglState) initProgram() error {
	gl := ws.gl
	vs, err := ws.compileShader(ws.consts.vertexShader, shaders.GrassVertexGLSL)
	if err != nil {
		return err
	}
	fs, err := ws.compileShader(ws.consts.fragmentShader, shaders.GrassFragmentGLSL)
	if err != nil {
		gl.Call("deleteShader", vs)
		return err
	}

	program := gl.Call("createProgram")
	gl.Call("attachShader", program, vs)
	gl.Call("attachShader", program, fs)
	gl.Call("linkProgram", program)
	gl.Call("deleteShader", vs)
	gl.Call("deleteShader", fs)
	if !gl.Call("getProgramParameter", program, ws.consts.linkStatus).Bool() {
		log := gl.Call("getProgramInfoLog", program).String()
		gl.Call("deleteProgram", program)
		return fmt.Errorf("link error: %s", log)
	}
	ws.program = program

	ws.uViewProj = gl.Call("getUniformLocation", program, "uViewProj")
	ws.uView = gl.Call("getUniformLocation", program, "uView")
	ws.uTime = gl.Call("getUniformLocation", program, "uTime")
	ws.uWindComplexity = gl.Call("getUniformLocation", program, "uWindComplexity")
	ws.uFogColor = gl.Call("getUniformLocation", program, "uFogColor")
	return nil
}

func (ws *webglState) initBuffers() {
	gl := ws.gl
	c := ws.consts
	vertices, indices := core.BladeMesh()

	ws.vao = gl.Call("createVertexArray")
	gl.Call("bindVertexArray", ws.vao)

	ws.vertexVbo = gl.Call("createBuffer")
	gl.Call("bindBuffer", c.arrayBuffer, ws.vertexVbo)
	gl.Call("bufferData", c.arrayBuffer, uint8Array(gpu.VertexBytes(vertices)), c.staticDraw)
	const vertexStride = 5 * 4
	gl.Call("enableVertexAttribArray", 0)
	gl.Call("vertexAttribPointer", 0, 3, c.floatType, false, vertexStride, 0)
	gl.Call("enableVertexAttribArray", 1)
	gl.Call("vertexAttribPointer", 1, 2, c.floatType, false, vertexStride, 3*4)

	ws.indexBuf = gl.Call("createBuffer")
	gl.Call("bindBuffer", c.elementArrayBuffer, ws.indexBuf)
	gl.Call("bufferData", c.elementArrayBuffer, uint8Array(gpu.IndexBytes(indices)), c.staticDraw)
	ws.indexCount = len(indices)

	// mat4 instance attribute spans locations 2-5, one column each
	ws.instanceVbo = gl.Call("createBuffer")
	gl.Call("bindBuffer", c.arrayBuffer, ws.instanceVbo)
	const instanceStride = core.FloatsPerInstance * 4
	for col := 0; col < 4; col++ {
		loc := 2 + col
		gl.Call("enableVertexAttribArray", loc)
		gl.Call("vertexAttribPointer", loc, 4, c.floatType, false, instanceStride, col*16)
		gl.Call("vertexAttribDivisor", loc, 1)
	}

	gl.Call("bindVertexArray", js.Null())
}

func (ws *webglState) uploadField(field *core.Field) {
	if field == nil || field.Count() == 0 {
		ws.instanceCount = 0
		return
	}
	if ws.instanceCount > 0 && field.Generation == ws.generation {
		return
	}
	gl := ws.gl
	c := ws.consts
	count := field.Count()
	data := uint8Array(gpu.Float32Bytes(field.Transforms))

	gl.Call("bindBuffer", c.arrayBuffer, ws.instanceVbo)
	if count > ws.instanceCap {
		gl.Call("bufferData", c.arrayBuffer, data, c.dynamicDraw)
		ws.instanceCap = count
	} else {
		gl.Call("bufferSubData", c.arrayBuffer, 0, data)
	}
	ws.instanceCount = count
	ws.generation = field.Generation
}

func (ws *webglState) resize(vp *Viewport, cfg core.RenderConfig) {
	w, h := vp.DrawingBufferSize(cfg)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if w == ws.bufferWidth && h == ws.bufferHeight {
		return
	}
	ws.canvas.Set("width", w)
	ws.canvas.Set("height", h)
	ws.bufferWidth, ws.bufferHeight = w, h
	ws.gl.Call("viewport", 0, 0, w, h)
}

func (ws *webglState) render(vp *Viewport, cfg core.RenderConfig, gf *GrassField, cam *core.CameraState, u *FrameUniforms) {
	if !ws.gl.Truthy() || !ws.program.Truthy() {
		return
	}
	gl := ws.gl
	ws.resize(vp, cfg)
	ws.uploadField(gf.Field)

	gl.Call("clear", ws.consts.colorBufferBit|ws.consts.depthBufferBit)
	if ws.instanceCount == 0 || !gf.Visible {
		return
	}

	view := cam.ViewMatrix()
	viewProj := cam.ViewProjection()

	gl.Call("useProgram", ws.program)
	gl.Call("uniformMatrix4fv", ws.uViewProj, false, float32Array(viewProj[:]))
	gl.Call("uniformMatrix4fv", ws.uView, false, float32Array(view[:]))
	gl.Call("uniform1f", ws.uTime, u.Time)
	gl.Call("uniform1f", ws.uWindComplexity, u.WindComplexity)
	gl.Call("uniform3f", ws.uFogColor, u.FogColor[0], u.FogColor[1], u.FogColor[2])

	gl.Call("bindVertexArray", ws.vao)
	gl.Call("drawElementsInstanced", ws.consts.triangles, ws.indexCount, ws.consts.unsignedShort, 0, ws.instanceCount)
	gl.Call("bindVertexArray", js.Null())
}

func (ws *webglState) release() {
	if ws.gl.Truthy() {
		gl := ws.gl
		for _, buf := range []js.Value{ws.vertexVbo, ws.indexBuf, ws.instanceVbo} {
			if buf.Truthy() {
				gl.Call("deleteBuffer", buf)
			}
		}
		if ws.vao.Truthy() {
			gl.Call("deleteVertexArray", ws.vao)
		}
		if ws.program.Truthy() {
			gl.Call("deleteProgram", ws.program)
		}
		if ext := gl.Call("getExtension", "WEBGL_lose_context"); ext.Truthy() {
			ext.Call("loseContext")
		}
	}
	if ws.canvas.Truthy() {
		ws.canvas.Call("remove")
	}
	*ws = webglState{tag: ws.tag, container: ws.container, canvasID: ws.canvasID}
}

// RunInBrowser drives the app from requestAnimationFrame and unmounts it on
// pagehide. The returned channel closes once the app has finished.
func (app *App) RunInBrowser() <-chan struct{} {
	done := make(chan struct{})
	win := js.Global()

	var frame js.Func
	var pending js.Value
	var pagehide js.Func
	finished := false

	finish := func() {
		if finished {
			return
		}
		finished = true
		frame.Release()
		win.Call("removeEventListener", "pagehide", pagehide)
		pagehide.Release()
		close(done)
	}

	frame = js.FuncOf(func(this js.Value, args []js.Value) any {
		if app.Step() {
			pending = win.Call("requestAnimationFrame", frame)
			return nil
		}
		finish()
		return nil
	})
	pagehide = js.FuncOf(func(this js.Value, args []js.Value) any {
		if pending.Truthy() {
			win.Call("cancelAnimationFrame", pending)
		}
		app.Unmount()
		// finish synchronously: no further frames will be delivered
		for app.Step() {
		}
		finish()
		return nil
	})
	win.Call("addEventListener", "pagehide", pagehide)

	pending = win.Call("requestAnimationFrame", frame)
	return done
}

func float32Array(data []float32) js.Value {
	arr := js.Global().Get("Float32Array").New(len(data))
	if len(data) == 0 {
		return arr
	}
	view := js.Global().Get("Uint8Array").New(arr.Get("buffer"), arr.Get("byteOffset"), arr.Get("byteLength"))
	js.CopyBytesToJS(view, gpu.Float32Bytes(data))
	return arr
}

func uint8Array(data []byte) js.Value {
	arr := js.Global().Get("Uint8Array").New(len(data))
	js.CopyBytesToJS(arr, data)
	return arr
}
