package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// CameraTarget is the fixed point the camera looks at, above the origin.
var CameraTarget = mgl32.Vec3{0, 2.5, 0}

const (
	cameraBaseHeight = 1.8
	cameraRise       = 6
	cameraBaseDepth  = 12
	cameraPullIn     = 4
)

// FrameState is written by the scroll handler (ScrollProgress) and by the
// frame callback (Elapsed). Both run on the same thread.
type FrameState struct {
	Elapsed        float32
	ScrollProgress float32
}

// ScrollProgress converts a page scroll offset to a ratio in [0, 1].
// The scrollable distance is the document height minus the viewport height,
// with a floor of 1 so short pages do not divide by zero.
func ScrollProgress(scrollY, documentHeight, viewportHeight float64) float32 {
	scrollable := documentHeight - viewportHeight
	if scrollable < 1 {
		scrollable = 1
	}
	return clamp01(float32(scrollY / scrollable))
}

// CameraPosition maps scroll progress to the camera's eye position. It rises
// and moves toward the field as the page scrolls.
func CameraPosition(progress float32) mgl32.Vec3 {
	p := clamp01(progress)
	return mgl32.Vec3{
		0,
		cameraBaseHeight + p*cameraRise,
		cameraBaseDepth - p*cameraPullIn,
	}
}

// UpdateCamera applies the frame's scroll progress to cam.
func UpdateCamera(cam *CameraState, fs FrameState) {
	cam.Position = CameraPosition(fs.ScrollProgress)
	cam.Target = CameraTarget
}

func clamp01(v float32) float32 {
	if v != v { // NaN
		return 0
	}
	return mgl32.Clamp(v, 0, 1)
}
