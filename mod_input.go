//go:build !js

package portfolio

import (
	"github.com/aek676/portfolio/background/core"
	"github.com/go-gl/glfw/v3.3/glfw"
)

type Key int

const (
	Key1 Key = iota
	Key2
	Key3
	Key4
	KeyEscape
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	keyCount
)

// Input is the preview window's keyboard and wheel state, sampled once per
// frame by the client's event system.
type Input struct {
	Pressed      [keyCount]bool
	JustPressed  [keyCount]bool
	JustReleased [keyCount]bool

	// WheelY is the vertical wheel offset received since the previous frame.
	WheelY float64
	wheel  float64
}

func (in *Input) setKey(key Key, down bool) {
	in.JustPressed[key] = down && !in.Pressed[key]
	in.JustReleased[key] = !down && in.Pressed[key]
	in.Pressed[key] = down
}

func (in *Input) addWheel(dy float64) {
	in.wheel += dy
}

// endFrame publishes the wheel offset gathered by callbacks.
func (in *Input) endFrame() {
	in.WheelY = in.wheel
	in.wheel = 0
}

var keyToGlfw = map[Key]glfw.Key{
	Key1:        glfw.Key1,
	Key2:        glfw.Key2,
	Key3:        glfw.Key3,
	Key4:        glfw.Key4,
	KeyEscape:   glfw.KeyEscape,
	KeyUp:       glfw.KeyUp,
	KeyDown:     glfw.KeyDown,
	KeyPageUp:   glfw.KeyPageUp,
	KeyPageDown: glfw.KeyPageDown,
	KeyHome:     glfw.KeyHome,
	KeyEnd:      glfw.KeyEnd,
}

func pollInput(win *glfw.Window, input *Input) {
	for key, glfwKey := range keyToGlfw {
		input.setKey(key, win.GetKey(glfwKey) == glfw.Press)
	}
	input.endFrame()
}

// applyPreviewControls maps input onto the simulated page: the wheel and
// arrows scroll by step, page keys by a viewport, Home/End jump to the ends,
// 1-4 pick a tier. It reports whether Escape asked to close.
func applyPreviewControls(input *Input, scroll *ScrollState, c *Capability, step float64) (quit bool) {
	for k := Key1; k <= Key4; k++ {
		if input.JustPressed[k] {
			c.SetTier(core.Tier(k - Key1))
		}
	}

	dy := -input.WheelY * step
	switch {
	case input.JustPressed[KeyDown]:
		dy += step
	case input.JustPressed[KeyUp]:
		dy -= step
	case input.JustPressed[KeyPageDown]:
		dy += scroll.ViewportHeight
	case input.JustPressed[KeyPageUp]:
		dy -= scroll.ViewportHeight
	case input.JustPressed[KeyHome]:
		dy = -scroll.DocumentHeight
	case input.JustPressed[KeyEnd]:
		dy = scroll.DocumentHeight
	}
	if dy != 0 {
		scroll.ScrollBy(dy)
	}
	return input.JustPressed[KeyEscape]
}
