package core

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// FloatsPerInstance is the size of one column-major 4x4 transform.
const FloatsPerInstance = 16

const (
	nearMargin = 20
	minScale   = 0.5
	maxScale   = 2.0
)

// RandomSource is satisfied by *rand.Rand from math/rand and math/rand/v2.
type RandomSource interface {
	Float32() float32
}

type globalSource struct{}

func (globalSource) Float32() float32 { return rand.Float32() }

// GenerateField places count blades inside the field volume and returns their
// transforms packed back to back. Positions are drawn as
//
//	x in [-rangeX/2, rangeX/2], y = 0, z in [-rangeZ+20, 20]
//
// with a yaw in [0, pi) and a uniform scale in [0.5, 2]. A nil source uses the
// unseeded package generator, so two calls never produce the same layout.
func GenerateField(count int, rangeX, rangeZ float32, src RandomSource) []float32 {
	if count <= 0 {
		return []float32{}
	}
	if src == nil {
		src = globalSource{}
	}

	buf := make([]float32, count*FloatsPerInstance)
	for i := 0; i < count; i++ {
		x := (src.Float32() - 0.5) * rangeX
		z := src.Float32()*-rangeZ + nearMargin
		yaw := src.Float32() * math.Pi
		scale := minScale + src.Float32()*(maxScale-minScale)

		m := instanceMatrix(x, z, yaw, scale)
		copy(buf[i*FloatsPerInstance:], m[:])
	}
	return buf
}

func instanceMatrix(x, z, yaw, scale float32) mgl32.Mat4 {
	return mgl32.Translate3D(x, 0, z).
		Mul4(mgl32.HomogRotate3DY(yaw)).
		Mul4(mgl32.Scale3D(scale, scale, scale))
}

// InstanceCount returns how many transforms buf holds.
func InstanceCount(buf []float32) int {
	return len(buf) / FloatsPerInstance
}

// InstanceMatrix returns the i-th transform of buf.
func InstanceMatrix(buf []float32, i int) mgl32.Mat4 {
	var m mgl32.Mat4
	copy(m[:], buf[i*FloatsPerInstance:(i+1)*FloatsPerInstance])
	return m
}

func InstancePosition(buf []float32, i int) mgl32.Vec3 {
	o := i * FloatsPerInstance
	return mgl32.Vec3{buf[o+12], buf[o+13], buf[o+14]}
}

// InstanceScale recovers the uniform scale from the first basis column.
func InstanceScale(buf []float32, i int) float32 {
	o := i * FloatsPerInstance
	return mgl32.Vec3{buf[o], buf[o+1], buf[o+2]}.Len()
}

// InstanceYaw recovers the rotation about Y, in [0, pi) for generated data.
func InstanceYaw(buf []float32, i int) float32 {
	o := i * FloatsPerInstance
	yaw := float32(math.Atan2(float64(-buf[o+2]), float64(buf[o])))
	if yaw < 0 {
		yaw += 2 * math.Pi
	}
	return yaw
}

// Sphere is a bounding volume in world space.
type Sphere struct {
	Center mgl32.Vec3
	Radius float32
}

// FieldBounds returns the bounding sphere assigned to the field geometry.
// Per-instance bounds are not derived automatically by instanced backends,
// so the sphere must cover the whole field or blades get culled while visible.
func FieldBounds(rangeX, rangeZ float32) Sphere {
	return Sphere{
		Center: mgl32.Vec3{0, 0, -rangeZ/2 + 10},
		Radius: max(rangeX, rangeZ),
	}
}

// Contains reports whether p lies inside s.
func (s Sphere) Contains(p mgl32.Vec3) bool {
	return p.Sub(s.Center).Len() <= s.Radius
}

// InFrustum tests the sphere against planes as returned by ExtractFrustum.
func (s Sphere) InFrustum(planes [6]mgl32.Vec4) bool {
	for _, p := range planes {
		d := p[0]*s.Center[0] + p[1]*s.Center[1] + p[2]*s.Center[2] + p[3]
		if d < -s.Radius {
			return false
		}
	}
	return true
}
