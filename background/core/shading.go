package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// CPU-side mirror of the grass shaders. The GPU sources in background/shaders
// implement the same functions; these exist so the policy can be tested and
// so renderers can derive uniforms from one place.

const (
	// WindActivation is the complexity above which blades sway at all.
	WindActivation = 0.1
	// DetailActivation enables height shading and the far fog edge.
	DetailActivation = 0.5

	windSpeed     = 1.5
	windFrequency = 0.5
	windAmplitude = 0.1

	depthMixNear = 5
	depthMixFar  = 60
	fogStart     = 15
	fogFarLow    = 60
	fogFarHigh   = 90
)

var (
	ColorNear = mgl32.Vec3{0.914, 0.769, 0.416}
	ColorFar  = mgl32.Vec3{0.518, 0.663, 0.361}
	// FogColor is 0x84a95c.
	FogColor = HexColor(0x84a95c)
)

// HexColor converts 0xRRGGBB to linear components in [0, 1].
func HexColor(hex uint32) mgl32.Vec3 {
	return mgl32.Vec3{
		float32((hex>>16)&0xff) / 255,
		float32((hex>>8)&0xff) / 255,
		float32(hex&0xff) / 255,
	}
}

// WindSway is the horizontal displacement of a blade vertex at local height
// localY for an instance placed at worldX.
func WindSway(time, worldX, localY, windComplexity float32) float32 {
	if windComplexity <= WindActivation {
		return 0
	}
	wave := float32(math.Sin(float64(time*windSpeed + worldX*windFrequency)))
	return wave * windComplexity * windAmplitude * localY * localY
}

// FogFar is the depth at which the fog fully covers the field.
func FogFar(windComplexity float32) float32 {
	if windComplexity > DetailActivation {
		return fogFarHigh
	}
	return fogFarLow
}

// ShadeFragment returns the final color for a fragment at view depth depth
// and normalized blade height height.
func ShadeFragment(depth, height, windComplexity float32) mgl32.Vec3 {
	base := mixVec3(ColorNear, ColorFar, Smoothstep(depthMixNear, depthMixFar, depth))

	if windComplexity > DetailActivation {
		base = base.Mul(0.6 + 0.4*height)
		base = base.Mul(0.5 + 0.5*height)
	}

	return mixVec3(base, FogColor, FogFactor(depth, windComplexity))
}

// FogFactor is the fog weight in [0, 1] at view depth depth.
func FogFactor(depth, windComplexity float32) float32 {
	return Smoothstep(fogStart, FogFar(windComplexity), depth)
}

// Smoothstep matches the GLSL/WGSL builtin.
func Smoothstep(edge0, edge1, x float32) float32 {
	t := mgl32.Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

func mixVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Mul(1 - t).Add(b.Mul(t))
}
