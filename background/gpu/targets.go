//go:build !js

package gpu

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// Targets holds the size-dependent attachments: an optional multisampled
// color texture and the depth texture. Both are rebuilt on resize.
type Targets struct {
	Width, Height uint32
	SampleCount   uint32
	Format        wgpu.TextureFormat

	msaaTexture  *wgpu.Texture
	msaaView     *wgpu.TextureView
	depthTexture *wgpu.Texture
	depthView    *wgpu.TextureView
}

func NewTargets(device *wgpu.Device, format wgpu.TextureFormat, width, height, sampleCount uint32) (*Targets, error) {
	t := &Targets{Format: format, SampleCount: sampleCount}
	if err := t.Resize(device, width, height); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Targets) Resize(device *wgpu.Device, width, height uint32) error {
	if width == 0 {
		width = 1
	}
	if height == 0 {
		height = 1
	}
	t.release()
	t.Width, t.Height = width, height

	size := wgpu.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1}
	var err error
	if t.SampleCount > 1 {
		t.msaaTexture, err = device.CreateTexture(&wgpu.TextureDescriptor{
			Label:         "GrassMSAATexture",
			Size:          size,
			MipLevelCount: 1,
			SampleCount:   t.SampleCount,
			Dimension:     wgpu.TextureDimension2D,
			Format:        t.Format,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			return err
		}
		if t.msaaView, err = t.msaaTexture.CreateView(nil); err != nil {
			return err
		}
	}

	t.depthTexture, err = device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "GrassDepthTexture",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   t.SampleCount,
		Dimension:     wgpu.TextureDimension2D,
		Format:        DepthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return err
	}
	t.depthView, err = t.depthTexture.CreateView(nil)
	return err
}

// PassDescriptor targets the swapchain view, resolving from the MSAA texture
// when multisampling is on. Clears to the fog color so the horizon blends.
func (t *Targets) PassDescriptor(surfaceView *wgpu.TextureView, clear wgpu.Color) *wgpu.RenderPassDescriptor {
	color := wgpu.RenderPassColorAttachment{
		View:       surfaceView,
		LoadOp:     wgpu.LoadOpClear,
		StoreOp:    wgpu.StoreOpStore,
		ClearValue: clear,
	}
	if t.msaaView != nil {
		color.View = t.msaaView
		color.ResolveTarget = surfaceView
		color.StoreOp = wgpu.StoreOpDiscard
	}
	return &wgpu.RenderPassDescriptor{
		Label:            "GrassPass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{color},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            t.depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}
}

func (t *Targets) Release() { t.release() }

func (t *Targets) release() {
	if t.msaaView != nil {
		t.msaaView.Release()
		t.msaaView = nil
	}
	if t.msaaTexture != nil {
		t.msaaTexture.Release()
		t.msaaTexture = nil
	}
	if t.depthView != nil {
		t.depthView.Release()
		t.depthView = nil
	}
	if t.depthTexture != nil {
		t.depthTexture.Release()
		t.depthTexture = nil
	}
}
