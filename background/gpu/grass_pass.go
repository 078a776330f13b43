//go:build !js

package gpu

import (
	"fmt"
	"unsafe"

	"github.com/aek676/portfolio/background/core"
	"github.com/aek676/portfolio/background/shaders"
	"github.com/cogentcore/webgpu/wgpu"
)

// GrassRenderPass draws every blade of the current field with one instanced
// indexed draw. The instance buffer is only rewritten when the field's
// generation changes.
type GrassRenderPass struct {
	Pipeline       *wgpu.RenderPipeline
	BindGroup      *wgpu.BindGroup
	UniformBuffer  *wgpu.Buffer
	VertexBuffer   *wgpu.Buffer
	IndexBuffer    *wgpu.Buffer
	IndexCount     uint32
	InstanceBuffer *wgpu.Buffer
	InstanceCap    uint32
	InstanceCount  uint32
	Generation     uint64
	SampleCount    uint32
	Device         *wgpu.Device
}

const DepthFormat = wgpu.TextureFormatDepth24Plus

func NewGrassRenderPass(device *wgpu.Device, format wgpu.TextureFormat, sampleCount uint32) (*GrassRenderPass, error) {
	if sampleCount == 0 {
		sampleCount = 1
	}

	shaderModule, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "GrassShader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.GrassWGSL},
	})
	if err != nil {
		return nil, fmt.Errorf("grass shader: %w", err)
	}
	defer shaderModule.Release()

	bgl, err := device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "GrassUniformsBGL",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: GrassUniformsSize,
				},
			},
		},
	})
	if err != nil {
		return nil, err
	}
	defer bgl.Release()

	pipelineLayout, err := device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		BindGroupLayouts: []*wgpu.BindGroupLayout{bgl},
	})
	if err != nil {
		return nil, err
	}
	defer pipelineLayout.Release()

	pipeline, err := device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "GrassPipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     shaderModule,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: uint64(unsafe.Sizeof(core.BladeVertex{})),
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
						{Format: wgpu.VertexFormatFloat32x2, Offset: 12, ShaderLocation: 1},
					},
				},
				{
					ArrayStride: core.FloatsPerInstance * 4,
					StepMode:    wgpu.VertexStepModeInstance,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 2},
						{Format: wgpu.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 3},
						{Format: wgpu.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 4},
						{Format: wgpu.VertexFormatFloat32x4, Offset: 48, ShaderLocation: 5},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shaderModule,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    format,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			// blades are single-sided planes seen from both sides
			CullMode: wgpu.CullModeNone,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            DepthFormat,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront:      wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
			StencilBack:       wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		},
		Multisample: wgpu.MultisampleState{
			Count: sampleCount,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("grass pipeline: %w", err)
	}

	p := &GrassRenderPass{
		Pipeline:    pipeline,
		Device:      device,
		SampleCount: sampleCount,
	}

	p.UniformBuffer, err = device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "GrassUniformBuffer",
		Size:  GrassUniformsSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		p.Release()
		return nil, err
	}

	p.BindGroup, err = device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "GrassUniformsBG",
		Layout: bgl,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: p.UniformBuffer, Size: GrassUniformsSize},
		},
	})
	if err != nil {
		p.Release()
		return nil, err
	}

	vertices, indices := core.BladeMesh()
	p.VertexBuffer, err = device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "GrassBladeVertexBuffer",
		Contents: VertexBytes(vertices),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		p.Release()
		return nil, err
	}
	p.IndexBuffer, err = device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "GrassBladeIndexBuffer",
		Contents: IndexBytes(indices),
		Usage:    wgpu.BufferUsageIndex,
	})
	if err != nil {
		p.Release()
		return nil, err
	}
	p.IndexCount = uint32(len(indices))

	return p, nil
}

// UpdateField uploads the field's transforms when its generation differs from
// the one last uploaded. Reports whether an upload happened.
func (p *GrassRenderPass) UpdateField(queue *wgpu.Queue, field *core.Field) (bool, error) {
	if field == nil || field.Count() == 0 {
		p.InstanceCount = 0
		return false, nil
	}
	if p.InstanceBuffer != nil && field.Generation == p.Generation {
		return false, nil
	}

	count := uint32(field.Count())
	if p.InstanceBuffer == nil || p.InstanceCap < count {
		if p.InstanceBuffer != nil {
			p.InstanceBuffer.Release()
		}
		buf, err := p.Device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "GrassInstanceBuffer",
			Size:  uint64(count) * core.FloatsPerInstance * 4,
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			p.InstanceBuffer = nil
			p.InstanceCap = 0
			return false, fmt.Errorf("grass instance buffer: %w", err)
		}
		p.InstanceBuffer = buf
		p.InstanceCap = count
	}

	if err := queue.WriteBuffer(p.InstanceBuffer, 0, Float32Bytes(field.Transforms)); err != nil {
		return false, err
	}
	p.InstanceCount = count
	p.Generation = field.Generation
	return true, nil
}

func (p *GrassRenderPass) UpdateUniforms(queue *wgpu.Queue, u GrassUniforms) error {
	return queue.WriteBuffer(p.UniformBuffer, 0, u.Bytes())
}

func (p *GrassRenderPass) Draw(pass *wgpu.RenderPassEncoder) {
	if p.InstanceBuffer == nil || p.InstanceCount == 0 {
		return
	}
	pass.SetPipeline(p.Pipeline)
	pass.SetBindGroup(0, p.BindGroup, nil)
	pass.SetVertexBuffer(0, p.VertexBuffer, 0, wgpu.WholeSize)
	pass.SetVertexBuffer(1, p.InstanceBuffer, 0, wgpu.WholeSize)
	pass.SetIndexBuffer(p.IndexBuffer, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
	pass.DrawIndexed(p.IndexCount, p.InstanceCount, 0, 0, 0)
}

func (p *GrassRenderPass) Release() {
	for _, b := range []*wgpu.Buffer{p.InstanceBuffer, p.VertexBuffer, p.IndexBuffer, p.UniformBuffer} {
		if b != nil {
			b.Release()
		}
	}
	if p.BindGroup != nil {
		p.BindGroup.Release()
	}
	if p.Pipeline != nil {
		p.Pipeline.Release()
	}
	*p = GrassRenderPass{Device: p.Device, SampleCount: p.SampleCount}
}
