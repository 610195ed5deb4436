package renderer

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/euansprr-dev/CosmoNative-sub007/engine/renderer/pipeline"
	"github.com/euansprr-dev/CosmoNative-sub007/engine/renderer/shader"
)

// PresentMode controls how rendered frames are presented to a window surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting,
	// capping frame rate to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for
	// vertical blank. May cause tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample
// anti-aliasing. WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1). This is
	// the default: every program here shades smoothstep-masked quads, so
	// there are no geometric edges for MSAA to help with.
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4x multisample anti-aliasing.
	MSAA4x MSAASampleCount = 4
)

// renderingContext is the implementation of the Context interface.
type renderingContext struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	// bootSurface is the surface created for adapter selection when a
	// compatible surface descriptor was supplied. It is handed to the first
	// window drawable created from the same descriptor.
	bootSurface    *wgpu.Surface
	bootDescriptor *wgpu.SurfaceDescriptor

	uniformLayout *wgpu.BindGroupLayout
	programs      map[string]shader.Program
	pipelines     *pipelineCache

	presentMode          wgpu.PresentMode
	sampleCount          MSAASampleCount
	powerPreference      wgpu.PowerPreference
	forceFallbackAdapter bool
}

// Context owns the GPU device and every resource shared across surfaces: the
// shader program set, the compiled pipeline cache, and the uniform bind group
// layout. Hosts create one Context and pass it to each surface renderer they
// build, so nothing in this package reaches for global state.
type Context interface {
	// Device returns the WebGPU device.
	Device() *wgpu.Device

	// Queue returns the WebGPU queue.
	Queue() *wgpu.Queue

	// Adapter returns the WebGPU adapter the device was created from.
	Adapter() *wgpu.Adapter

	// SampleCount returns the configured MSAA sample count.
	SampleCount() MSAASampleCount

	// UniformBindGroupLayout returns the shared layout for the single
	// uniform block every program binds at group 0, binding 0.
	UniformBindGroupLayout() *wgpu.BindGroupLayout

	// Program looks up a shader program by key.
	//
	// Parameters:
	//   - key: the program key, e.g. shader.ProgramOrb
	//
	// Returns:
	//   - shader.Program: the program
	//   - bool: false if no program is registered under the key
	Program(key string) (shader.Program, bool)

	// Pipeline returns the compiled render pipeline for a program targeting
	// the given texture format, compiling and caching it on first use.
	//
	// Parameters:
	//   - programKey: the program key, e.g. shader.ProgramAurora
	//   - format: the texture format of the target drawable
	//
	// Returns:
	//   - pipeline.Pipeline: the compiled pipeline
	//   - error: a *PipelineCompilationError if compilation failed
	Pipeline(programKey string, format wgpu.TextureFormat) (pipeline.Pipeline, error)

	// CreateWindowDrawable creates a drawable presenting to a platform
	// window surface.
	//
	// Parameters:
	//   - descriptor: the platform surface descriptor for the window
	//   - width: initial surface width in pixels
	//   - height: initial surface height in pixels
	//
	// Returns:
	//   - Drawable: the window drawable
	//   - error: an error if the surface could not be created or configured
	CreateWindowDrawable(descriptor *wgpu.SurfaceDescriptor, width, height int) (Drawable, error)

	// CreateOffscreenDrawable creates a drawable rendering into a texture,
	// used for composition targets and for exercising the render path
	// without a window.
	//
	// Parameters:
	//   - width: texture width in pixels
	//   - height: texture height in pixels
	//
	// Returns:
	//   - Drawable: the offscreen drawable
	//   - error: an error if the texture could not be created
	CreateOffscreenDrawable(width, height int) (Drawable, error)

	// Release frees every GPU resource the context owns, including cached
	// pipelines and compiled shader modules. Drawables and surface renderers
	// must be released first.
	Release()
}

var _ Context = &renderingContext{}

// NewContext acquires a GPU adapter and device and loads the built-in shader
// program set. Unlike window creation, GPU acquisition has a meaningful
// fallback for hosts (render nothing, show static content), so failure is
// reported as an error wrapping ErrDeviceUnavailable instead of a panic.
//
// Parameters:
//   - options: optional builder options for configuring the context
//
// Returns:
//   - Context: the constructed context
//   - error: an error wrapping ErrDeviceUnavailable if no device is available
func NewContext(options ...ContextBuilderOption) (Context, error) {
	runtime.LockOSThread()

	c := &renderingContext{
		presentMode: wgpu.PresentModeFifo,
		sampleCount: MSAAOff,
	}
	for _, opt := range options {
		opt(c)
	}

	c.instance = wgpu.CreateInstance(nil)

	requestOpts := &wgpu.RequestAdapterOptions{
		PowerPreference:      c.powerPreference,
		ForceFallbackAdapter: c.forceFallbackAdapter,
	}
	if c.bootDescriptor != nil {
		c.bootSurface = c.instance.CreateSurface(c.bootDescriptor)
		requestOpts.CompatibleSurface = c.bootSurface
	}

	adapter, err := c.instance.RequestAdapter(requestOpts)
	if err != nil {
		c.Release()
		return nil, fmt.Errorf("%w: request adapter: %v", ErrDeviceUnavailable, err)
	}
	c.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Dashboard Device",
	})
	if err != nil {
		c.Release()
		return nil, fmt.Errorf("%w: request device: %v", ErrDeviceUnavailable, err)
	}
	c.device = device
	c.queue = device.GetQueue()

	layout, err := device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Uniform Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type: wgpu.BufferBindingTypeUniform,
				},
			},
		},
	})
	if err != nil {
		c.Release()
		return nil, fmt.Errorf("%w: create uniform layout: %v", ErrDeviceUnavailable, err)
	}
	c.uniformLayout = layout

	programs, err := shader.DefaultPrograms()
	if err != nil {
		c.Release()
		return nil, fmt.Errorf("load shader programs: %w", err)
	}
	c.programs = programs
	c.pipelines = newPipelineCache(c.compileProgram)

	return c, nil
}

func (c *renderingContext) Device() *wgpu.Device {
	return c.device
}

func (c *renderingContext) Queue() *wgpu.Queue {
	return c.queue
}

func (c *renderingContext) Adapter() *wgpu.Adapter {
	return c.adapter
}

func (c *renderingContext) SampleCount() MSAASampleCount {
	return c.sampleCount
}

func (c *renderingContext) UniformBindGroupLayout() *wgpu.BindGroupLayout {
	return c.uniformLayout
}

func (c *renderingContext) Program(key string) (shader.Program, bool) {
	p, ok := c.programs[key]
	return p, ok
}

func (c *renderingContext) Pipeline(programKey string, format wgpu.TextureFormat) (pipeline.Pipeline, error) {
	return c.pipelines.get(cacheKey{program: programKey, format: format, sampleCount: uint32(c.sampleCount)})
}

// compileProgram builds the wgpu render pipeline for one cache key. Called by
// the pipeline cache under its write lock on first use of a key.
func (c *renderingContext) compileProgram(key cacheKey) (pipeline.Pipeline, error) {
	program, ok := c.programs[key.program]
	if !ok {
		return nil, &PipelineCompilationError{
			ProgramKey: key.program,
			Err:        fmt.Errorf("unknown program key"),
		}
	}

	p := pipeline.NewPipeline(program, pipelineOptionsFor(key.program)...)

	vs, err := program.Vertex.EnsureModule(c.device)
	if err != nil {
		return nil, &PipelineCompilationError{ProgramKey: key.program, Err: err}
	}
	fs, err := program.Fragment.EnsureModule(c.device)
	if err != nil {
		return nil, &PipelineCompilationError{ProgramKey: key.program, Err: err}
	}

	layout, err := c.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            key.program,
		BindGroupLayouts: []*wgpu.BindGroupLayout{c.uniformLayout},
	})
	if err != nil {
		return nil, &PipelineCompilationError{ProgramKey: key.program, Err: err}
	}
	defer layout.Release()

	created, err := c.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  key.program + " Render Pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     vs,
			EntryPoint: program.Vertex.EntryPoint(),
			Buffers:    program.Vertex.VertexLayouts(),
		},
		Fragment: &wgpu.FragmentState{
			Module:     fs,
			EntryPoint: program.Fragment.EntryPoint(),
			Targets: []wgpu.ColorTargetState{
				{
					Format:    key.format,
					Blend:     p.BlendState(),
					WriteMask: p.WriteMask(),
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology: p.Topology(),
			CullMode: p.CullMode(),
		},
		Multisample: wgpu.MultisampleState{
			Count: key.sampleCount,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, &PipelineCompilationError{ProgramKey: key.program, Err: err}
	}

	p.SetRenderPipeline(created)
	return p, nil
}

// pipelineOptionsFor returns the pipeline configuration for a program key.
// Emissive overlays accumulate light additively; everything else composites
// with premultiplied source over.
func pipelineOptionsFor(programKey string) []pipeline.PipelineBuilderOption {
	switch programKey {
	case shader.ProgramParticles, shader.ProgramTextGlow:
		return []pipeline.PipelineBuilderOption{
			pipeline.WithBlendState(pipeline.AdditiveBlend()),
		}
	default:
		return nil
	}
}

func (c *renderingContext) Release() {
	if c.pipelines != nil {
		c.pipelines.release()
		c.pipelines = nil
	}
	for _, p := range c.programs {
		p.Release()
	}
	c.programs = nil
	if c.uniformLayout != nil {
		c.uniformLayout.Release()
		c.uniformLayout = nil
	}
	if c.bootSurface != nil {
		c.bootSurface.Release()
		c.bootSurface = nil
	}
	if c.queue != nil {
		c.queue.Release()
		c.queue = nil
	}
	if c.device != nil {
		c.device.Release()
		c.device = nil
	}
	if c.adapter != nil {
		c.adapter.Release()
		c.adapter = nil
	}
	if c.instance != nil {
		c.instance.Release()
		c.instance = nil
	}
}
