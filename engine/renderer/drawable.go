package renderer

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Frame is the render target for one frame of one drawable. When MSAA is
// enabled View is the multisampled texture and ResolveTarget receives the
// resolved result; otherwise View is the presentable texture directly.
type Frame struct {
	View          *wgpu.TextureView
	ResolveTarget *wgpu.TextureView
}

// Drawable abstracts one render target the engine paces frames onto: a
// platform window surface or an offscreen texture. Each drawable is owned by
// a single surface renderer; no method is safe for concurrent use.
type Drawable interface {
	// Acquire obtains the render target for the current frame. On failure it
	// returns an error wrapping ErrDrawableUnavailable and the frame should
	// be skipped; the next tick retries.
	//
	// Returns:
	//   - Frame: the color attachment views for this frame
	//   - error: an error wrapping ErrDrawableUnavailable if no target is available
	Acquire() (Frame, error)

	// Present displays the acquired frame. A no-op for offscreen drawables
	// and when no frame is held.
	Present()

	// Discard releases the acquired frame without presenting it, for frames
	// whose encode failed partway. A no-op when no frame is held.
	Discard()

	// Resize reconfigures the drawable to a new pixel size. Any held frame
	// is dropped.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	//
	// Returns:
	//   - error: an error if reconfiguration failed
	Resize(width, height int) error

	// Size returns the current pixel size of the drawable.
	//
	// Returns:
	//   - int: width in pixels
	//   - int: height in pixels
	Size() (int, int)

	// Format returns the texture format frames are rendered in.
	Format() wgpu.TextureFormat

	// Release frees the GPU resources the drawable owns.
	Release()
}

// windowDrawable presents to a platform window surface.
type windowDrawable struct {
	ctx     *renderingContext
	surface *wgpu.Surface
	format  wgpu.TextureFormat

	width  int
	height int

	msaaTexture *wgpu.Texture
	msaaView    *wgpu.TextureView

	// Frame state held between Acquire and Present.
	frameTexture *wgpu.Texture
	frameView    *wgpu.TextureView
}

var _ Drawable = &windowDrawable{}

func (c *renderingContext) CreateWindowDrawable(descriptor *wgpu.SurfaceDescriptor, width, height int) (Drawable, error) {
	var surface *wgpu.Surface
	if c.bootSurface != nil && descriptor == c.bootDescriptor {
		// Hand over the surface created for adapter selection; a platform
		// window supports exactly one surface.
		surface = c.bootSurface
		c.bootSurface = nil
	} else {
		surface = c.instance.CreateSurface(descriptor)
	}

	d := &windowDrawable{
		ctx:     c,
		surface: surface,
		width:   width,
		height:  height,
	}
	if err := d.configure(); err != nil {
		d.Release()
		return nil, err
	}
	return d, nil
}

// configure applies the surface configuration for the current size and
// recreates the MSAA texture when multisampling is enabled.
func (d *windowDrawable) configure() error {
	capabilities := d.surface.GetCapabilities(d.ctx.adapter)
	d.format = capabilities.Formats[0]

	d.surface.Configure(d.ctx.adapter, d.ctx.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      d.format,
		Width:       uint32(d.width),
		Height:      uint32(d.height),
		PresentMode: d.ctx.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	d.releaseMSAA()
	if d.ctx.sampleCount > 1 {
		texture, view, err := createMSAATarget(d.ctx.device, d.width, d.height, d.format, uint32(d.ctx.sampleCount))
		if err != nil {
			return err
		}
		d.msaaTexture = texture
		d.msaaView = view
	}
	return nil
}

func (d *windowDrawable) Acquire() (Frame, error) {
	if d.frameTexture != nil {
		return Frame{}, fmt.Errorf("%w: previous frame not yet presented", ErrDrawableUnavailable)
	}

	surfaceTexture, err := d.surface.GetCurrentTexture()
	if err != nil {
		return Frame{}, fmt.Errorf("%w: %v", ErrDrawableUnavailable, err)
	}
	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return Frame{}, fmt.Errorf("%w: create view: %v", ErrDrawableUnavailable, err)
	}

	d.frameTexture = surfaceTexture
	d.frameView = view

	if d.msaaView != nil {
		return Frame{View: d.msaaView, ResolveTarget: view}, nil
	}
	return Frame{View: view}, nil
}

func (d *windowDrawable) Present() {
	if d.frameTexture == nil {
		return
	}
	d.surface.Present()
	d.dropFrame()
}

func (d *windowDrawable) Discard() {
	d.dropFrame()
}

func (d *windowDrawable) Resize(width, height int) error {
	d.dropFrame()
	d.width = width
	d.height = height
	return d.configure()
}

func (d *windowDrawable) Size() (int, int) {
	return d.width, d.height
}

func (d *windowDrawable) Format() wgpu.TextureFormat {
	return d.format
}

func (d *windowDrawable) Release() {
	d.dropFrame()
	d.releaseMSAA()
	if d.surface != nil {
		d.surface.Release()
		d.surface = nil
	}
}

func (d *windowDrawable) dropFrame() {
	if d.frameView != nil {
		d.frameView.Release()
		d.frameView = nil
	}
	if d.frameTexture != nil {
		d.frameTexture.Release()
		d.frameTexture = nil
	}
}

func (d *windowDrawable) releaseMSAA() {
	if d.msaaView != nil {
		d.msaaView.Release()
		d.msaaView = nil
	}
	if d.msaaTexture != nil {
		d.msaaTexture.Release()
		d.msaaTexture = nil
	}
}

// offscreenDrawable renders into a texture. Present is a no-op; the texture
// can be sampled or copied by the host.
type offscreenDrawable struct {
	ctx    *renderingContext
	format wgpu.TextureFormat

	width  int
	height int

	texture *wgpu.Texture
	view    *wgpu.TextureView

	msaaTexture *wgpu.Texture
	msaaView    *wgpu.TextureView
}

var _ Drawable = &offscreenDrawable{}

func (c *renderingContext) CreateOffscreenDrawable(width, height int) (Drawable, error) {
	d := &offscreenDrawable{
		ctx:    c,
		format: wgpu.TextureFormatRGBA8Unorm,
		width:  width,
		height: height,
	}
	if err := d.create(); err != nil {
		d.Release()
		return nil, err
	}
	return d, nil
}

func (d *offscreenDrawable) create() error {
	texture, err := d.ctx.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Offscreen Target",
		Size: wgpu.Extent3D{
			Width:              uint32(d.width),
			Height:             uint32(d.height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        d.format,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create offscreen texture: %w", err)
	}
	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return fmt.Errorf("create offscreen view: %w", err)
	}
	d.texture = texture
	d.view = view

	if d.ctx.sampleCount > 1 {
		msaaTexture, msaaView, err := createMSAATarget(d.ctx.device, d.width, d.height, d.format, uint32(d.ctx.sampleCount))
		if err != nil {
			return err
		}
		d.msaaTexture = msaaTexture
		d.msaaView = msaaView
	}
	return nil
}

func (d *offscreenDrawable) Acquire() (Frame, error) {
	if d.view == nil {
		return Frame{}, fmt.Errorf("%w: offscreen target released", ErrDrawableUnavailable)
	}
	if d.msaaView != nil {
		return Frame{View: d.msaaView, ResolveTarget: d.view}, nil
	}
	return Frame{View: d.view}, nil
}

func (d *offscreenDrawable) Present() {}

func (d *offscreenDrawable) Discard() {}

func (d *offscreenDrawable) Resize(width, height int) error {
	d.releaseTargets()
	d.width = width
	d.height = height
	return d.create()
}

func (d *offscreenDrawable) Size() (int, int) {
	return d.width, d.height
}

func (d *offscreenDrawable) Format() wgpu.TextureFormat {
	return d.format
}

// Texture returns the underlying color texture for sampling or readback.
func (d *offscreenDrawable) Texture() *wgpu.Texture {
	return d.texture
}

func (d *offscreenDrawable) Release() {
	d.releaseTargets()
}

func (d *offscreenDrawable) releaseTargets() {
	if d.msaaView != nil {
		d.msaaView.Release()
		d.msaaView = nil
	}
	if d.msaaTexture != nil {
		d.msaaTexture.Release()
		d.msaaTexture = nil
	}
	if d.view != nil {
		d.view.Release()
		d.view = nil
	}
	if d.texture != nil {
		d.texture.Release()
		d.texture = nil
	}
}

// createMSAATarget creates the multisampled texture a render pass draws into
// before resolving to the presentable target.
func createMSAATarget(device *wgpu.Device, width, height int, format wgpu.TextureFormat, sampleCount uint32) (*wgpu.Texture, *wgpu.TextureView, error) {
	texture, err := device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "MSAA Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   sampleCount,
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create msaa texture: %w", err)
	}
	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return nil, nil, fmt.Errorf("create msaa view: %w", err)
	}
	return texture, view, nil
}
