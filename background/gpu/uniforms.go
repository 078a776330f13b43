package gpu

import (
	"unsafe"

	"github.com/aek676/portfolio/background/core"
	"github.com/go-gl/mathgl/mgl32"
)

// GrassUniforms matches the WGSL Uniforms struct (group 0, binding 0).
type GrassUniforms struct {
	ViewProj       mgl32.Mat4
	View           mgl32.Mat4
	FogColor       [4]float32
	Time           float32
	WindComplexity float32
	Pad0           float32
	Pad1           float32
}

const GrassUniformsSize = uint64(unsafe.Sizeof(GrassUniforms{}))

// clipCorrection remaps OpenGL clip depth [-1, 1] to WebGPU's [0, 1].
var clipCorrection = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// NewGrassUniforms builds the per-frame uniform block for the WebGPU pass.
func NewGrassUniforms(cam *core.CameraState, elapsed, windComplexity float32) GrassUniforms {
	view := cam.ViewMatrix()
	proj := clipCorrection.Mul4(cam.ProjectionMatrix())
	fog := core.FogColor
	return GrassUniforms{
		ViewProj:       proj.Mul4(view),
		View:           view,
		FogColor:       [4]float32{fog[0], fog[1], fog[2], 1},
		Time:           elapsed,
		WindComplexity: windComplexity,
	}
}

func (u *GrassUniforms) Bytes() []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(u)), GrassUniformsSize)
}

// Float32Bytes reinterprets float data (instance transforms, matrices) for
// upload without copying.
func Float32Bytes(data []float32) []byte {
	if len(data) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*4)
}

// VertexBytes reinterprets blade vertices for upload without copying.
func VertexBytes(vertices []core.BladeVertex) []byte {
	if len(vertices) == 0 {
		return nil
	}
	size := len(vertices) * int(unsafe.Sizeof(core.BladeVertex{}))
	return unsafe.Slice((*byte)(unsafe.Pointer(&vertices[0])), size)
}

// IndexBytes pads to a 4-byte multiple, as buffer writes require.
func IndexBytes(indices []uint16) []byte {
	if len(indices) == 0 {
		return nil
	}
	n := len(indices)
	if n%2 == 1 {
		indices = append(indices[:n:n], 0)
		n++
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&indices[0])), n*2)
}
