package pipeline

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/euansprr-dev/CosmoNative-sub007/engine/renderer/shader"
)

// pipeline is the implementation of the Pipeline interface. It holds the
// program, the creation-time configuration, and the compiled WebGPU render
// pipeline once a backend has built it.
type pipeline struct {
	program shader.Program

	renderPipeline *wgpu.RenderPipeline

	// Creation-time configuration, set through builder options. Every
	// pipeline in this engine draws alpha-blended 2D quads, so there is no
	// depth state to configure.

	topology   wgpu.PrimitiveTopology
	cullMode   wgpu.CullMode
	writeMask  wgpu.ColorWriteMask
	blendState *wgpu.BlendState
}

// Pipeline encapsulates one render pipeline: the shader program it runs plus
// the blend, topology, cull, and write-mask configuration used to build it.
type Pipeline interface {
	// Key returns the unique key for this pipeline, used for caching and
	// lookups. It is the key of the underlying program.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	Key() string

	// Program returns the shader program this pipeline runs.
	//
	// Returns:
	//   - shader.Program: the vertex and fragment stages of this pipeline
	Program() shader.Program

	// Topology returns the primitive topology configured for this pipeline.
	//
	// Returns:
	//   - wgpu.PrimitiveTopology: the primitive topology for this pipeline
	Topology() wgpu.PrimitiveTopology

	// CullMode returns the cull mode configured for this pipeline.
	//
	// Returns:
	//   - wgpu.CullMode: the cull mode for this pipeline
	CullMode() wgpu.CullMode

	// WriteMask returns the color write mask configured for this pipeline.
	//
	// Returns:
	//   - wgpu.ColorWriteMask: the color write mask for this pipeline
	WriteMask() wgpu.ColorWriteMask

	// BlendState returns the blend state configured for this pipeline.
	//
	// Returns:
	//   - *wgpu.BlendState: the blend state for this pipeline
	BlendState() *wgpu.BlendState

	// RenderPipeline returns the compiled WebGPU render pipeline, or nil if
	// no backend has built it yet.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the compiled pipeline object
	RenderPipeline() *wgpu.RenderPipeline

	// SetRenderPipeline stores the compiled WebGPU render pipeline.
	//
	// Parameters:
	//   - p: the WebGPU render pipeline to set
	SetRenderPipeline(p *wgpu.RenderPipeline)

	// Release frees the compiled pipeline object, if any. The shader program
	// is owned by the program set and is not released here.
	Release()
}

var _ Pipeline = &pipeline{}

// PremultipliedBlend returns the blend state for sources that write
// premultiplied alpha, which is what every fragment program in this engine
// emits.
//
// Returns:
//   - *wgpu.BlendState: source over blending for premultiplied color
func PremultipliedBlend() *wgpu.BlendState {
	return &wgpu.BlendState{
		Color: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorOne,
			DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			Operation: wgpu.BlendOperationAdd,
		},
		Alpha: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorOne,
			DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			Operation: wgpu.BlendOperationAdd,
		},
	}
}

// AdditiveBlend returns the blend state used by emissive overlays such as
// particles and text glow, which accumulate light instead of covering it.
//
// Returns:
//   - *wgpu.BlendState: additive blending
func AdditiveBlend() *wgpu.BlendState {
	return &wgpu.BlendState{
		Color: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorOne,
			DstFactor: wgpu.BlendFactorOne,
			Operation: wgpu.BlendOperationAdd,
		},
		Alpha: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorOne,
			DstFactor: wgpu.BlendFactorOne,
			Operation: wgpu.BlendOperationAdd,
		},
	}
}

// NewPipeline is the entry point to create a new Pipeline interface around a
// shader program. Defaults suit the fullscreen quad programs: triangle strip
// topology, no culling, premultiplied alpha blending.
//
// Parameters:
//   - program: the shader program this pipeline runs
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance with the specified configuration
func NewPipeline(program shader.Program, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		program:    program,
		topology:   wgpu.PrimitiveTopologyTriangleStrip,
		cullMode:   wgpu.CullModeNone,
		writeMask:  wgpu.ColorWriteMaskAll,
		blendState: PremultipliedBlend(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) Key() string {
	return p.program.Key
}

func (p *pipeline) Program() shader.Program {
	return p.program
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	return p.blendState
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}

func (p *pipeline) Release() {
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
}
