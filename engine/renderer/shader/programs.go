package shader

import (
	_ "embed"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/euansprr-dev/CosmoNative-sub007/engine/element"
)

//go:embed assets/fullscreen_quad.wgsl
var fullscreenQuadSource string

//go:embed assets/orb.wgsl
var orbSource string

//go:embed assets/aurora.wgsl
var auroraSource string

//go:embed assets/particle_vert.wgsl
var particleVertSource string

//go:embed assets/particle_frag.wgsl
var particleFragSource string

//go:embed assets/progress_ring.wgsl
var progressRingSource string

//go:embed assets/connection_line.wgsl
var connectionLineSource string

//go:embed assets/glass.wgsl
var glassSource string

//go:embed assets/text_glow.wgsl
var textGlowSource string

// Program keys for the built-in render programs.
const (
	ProgramAurora         = "aurora"
	ProgramOrb            = "orb"
	ProgramParticles      = "particles"
	ProgramProgressRing   = "progressRing"
	ProgramConnectionLine = "connectionLine"
	ProgramGlass          = "glass"
	ProgramTextGlow       = "textGlow"
)

// Program pairs the vertex and fragment shaders of one render program. The
// quad programs share a single fullscreen vertex shader; the particle program
// carries its own instanced vertex stage.
type Program struct {
	Key      string
	Vertex   Shader
	Fragment Shader
}

// Release frees the compiled modules of both stages. The shared fullscreen
// vertex shader tolerates repeated Release calls.
func (p Program) Release() {
	if p.Vertex != nil {
		p.Vertex.Release()
	}
	if p.Fragment != nil {
		p.Fragment.Release()
	}
}

// ParticleInstanceLayout returns the per-instance vertex buffer layout
// matching the ParticleInstance WGSL struct and the GPUParticleInstance Go
// type.
//
// Returns:
//   - wgpu.VertexBufferLayout: the instance-stepped layout
func ParticleInstanceLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: element.GPUParticleInstance{}.Stride(),
		StepMode:    wgpu.VertexStepModeInstance,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32, Offset: 8, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32, Offset: 12, ShaderLocation: 2},
			{Format: wgpu.VertexFormatFloat32, Offset: 16, ShaderLocation: 3},
			{Format: wgpu.VertexFormatFloat32, Offset: 20, ShaderLocation: 4},
		},
	}
}

// DefaultPrograms builds every built-in render program from its embedded
// source, keyed by program key. All quad programs share one fullscreen
// vertex shader instance.
//
// Returns:
//   - map[string]Program: the program set keyed by program key
//   - error: an error if any source fails pre-processing
func DefaultPrograms() (map[string]Program, error) {
	quad, err := NewShader("fullscreenQuad", ShaderTypeVertex, fullscreenQuadSource)
	if err != nil {
		return nil, err
	}
	particleVert, err := NewShader("particleVert", ShaderTypeVertex, particleVertSource,
		WithVertexLayouts(ParticleInstanceLayout()))
	if err != nil {
		return nil, err
	}

	quadPrograms := []struct {
		key    string
		source string
	}{
		{ProgramAurora, auroraSource},
		{ProgramOrb, orbSource},
		{ProgramProgressRing, progressRingSource},
		{ProgramConnectionLine, connectionLineSource},
		{ProgramGlass, glassSource},
		{ProgramTextGlow, textGlowSource},
	}

	programs := make(map[string]Program, len(quadPrograms)+1)
	for _, qp := range quadPrograms {
		frag, err := NewShader(qp.key+"Frag", ShaderTypeFragment, qp.source)
		if err != nil {
			return nil, err
		}
		programs[qp.key] = Program{Key: qp.key, Vertex: quad, Fragment: frag}
	}

	particleFrag, err := NewShader("particlesFrag", ShaderTypeFragment, particleFragSource)
	if err != nil {
		return nil, err
	}
	programs[ProgramParticles] = Program{Key: ProgramParticles, Vertex: particleVert, Fragment: particleFrag}

	return programs, nil
}
