package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	CameraFovDegrees = 60
	CameraNear       = 0.1
)

// CameraState is the background's perspective camera. It is rebuilt every
// frame from scroll progress and never driven by user input.
type CameraState struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
	Fov      float32 // radians
	Aspect   float32
	Near     float32
	Far      float32
}

// NewCameraState returns the camera at rest (scroll progress 0).
func NewCameraState(aspect, far float32) *CameraState {
	if aspect <= 0 {
		aspect = 16.0 / 9.0
	}
	return &CameraState{
		Position: CameraPosition(0),
		Target:   CameraTarget,
		Up:       mgl32.Vec3{0, 1, 0},
		Fov:      mgl32.DegToRad(CameraFovDegrees),
		Aspect:   aspect,
		Near:     CameraNear,
		Far:      far,
	}
}

func (c *CameraState) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

func (c *CameraState) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(c.Fov, c.Aspect, c.Near, c.Far)
}

func (c *CameraState) ViewProjection() mgl32.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix())
}

// ExtractFrustum extracts the 6 planes of the frustum from the view-projection matrix.
// Returns planes in order: Left, Right, Bottom, Top, Near, Far.
// Plane is Ax + By + Cz + D = 0, normalized.
func ExtractFrustum(vp mgl32.Mat4) [6]mgl32.Vec4 {
	row := func(r int) mgl32.Vec4 {
		return mgl32.Vec4{vp.At(r, 0), vp.At(r, 1), vp.At(r, 2), vp.At(r, 3)}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	planes := [6]mgl32.Vec4{
		r3.Add(r0),
		r3.Sub(r0),
		r3.Add(r1),
		r3.Sub(r1),
		r3.Add(r2), // OpenGL-style -1..1
		r3.Sub(r2),
	}

	for i := range planes {
		length := float32(math.Sqrt(float64(planes[i][0]*planes[i][0] + planes[i][1]*planes[i][1] + planes[i][2]*planes[i][2])))
		if length > 0 {
			planes[i] = planes[i].Mul(1.0 / length)
		}
	}
	return planes
}
