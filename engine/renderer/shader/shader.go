package shader

import (
	"fmt"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderType identifies which pipeline stage a shader feeds.
type ShaderType int

const (
	// ShaderTypeVertex marks a vertex-stage shader.
	ShaderTypeVertex ShaderType = iota
	// ShaderTypeFragment marks a fragment-stage shader.
	ShaderTypeFragment
)

// shader is the implementation of the Shader interface.
type shader struct {
	key          string
	shaderType   ShaderType
	source       string
	entryPoint   string
	vertexLayout []wgpu.VertexBufferLayout
	module       *wgpu.ShaderModule
}

// Shader holds a pre-processed WGSL stage source plus the metadata a render
// pipeline needs to wire it: entry point name and, for vertex stages that
// consume instance data, the vertex buffer layouts.
type Shader interface {
	// Key returns the unique identifier for this shader.
	Key() string

	// Type returns the pipeline stage this shader feeds.
	Type() ShaderType

	// Source returns the processed WGSL source with all includes injected.
	Source() string

	// EntryPoint returns the name of the stage entry function.
	EntryPoint() string

	// VertexLayouts returns the vertex buffer layouts this shader consumes.
	// Empty for fragment shaders and for vertex shaders that synthesize
	// geometry from the vertex index.
	VertexLayouts() []wgpu.VertexBufferLayout

	// Module returns the compiled shader module, or nil if EnsureModule has
	// not been called yet.
	Module() *wgpu.ShaderModule

	// EnsureModule compiles the shader module on the given device if it has
	// not been compiled already.
	//
	// Parameters:
	//   - device: the WebGPU device to compile against
	//
	// Returns:
	//   - *wgpu.ShaderModule: the compiled module
	//   - error: an error if module creation failed
	EnsureModule(device *wgpu.Device) (*wgpu.ShaderModule, error)

	// Release frees the compiled module, if any.
	Release()
}

var _ Shader = &shader{}

// NewShader creates a Shader from raw WGSL source. The source is run through
// the @cosmo pre-processor and the stage entry point is located, so an
// invalid program is rejected here rather than at device compile time.
//
// Parameters:
//   - key: unique identifier for the shader
//   - shaderType: the pipeline stage the shader feeds
//   - source: raw WGSL source, possibly containing //@cosmo:include lines
//   - options: optional builder options for configuring the shader
//
// Returns:
//   - Shader: the constructed shader
//   - error: an error if pre-processing fails or no entry point is found
func NewShader(key string, shaderType ShaderType, source string, options ...ShaderBuilderOption) (Shader, error) {
	processed, err := NewPreProcessor().Process(source)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", key, err)
	}
	entry, err := findEntryPoint(processed, shaderType)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", key, err)
	}

	s := &shader{
		key:        key,
		shaderType: shaderType,
		source:     processed,
		entryPoint: entry,
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Type() ShaderType {
	return s.shaderType
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) EntryPoint() string {
	return s.entryPoint
}

func (s *shader) VertexLayouts() []wgpu.VertexBufferLayout {
	return s.vertexLayout
}

func (s *shader) Module() *wgpu.ShaderModule {
	return s.module
}

func (s *shader) EnsureModule(device *wgpu.Device) (*wgpu.ShaderModule, error) {
	if s.module != nil {
		return s.module, nil
	}
	module, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          s.key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: s.source},
	})
	if err != nil {
		return nil, fmt.Errorf("shader %s: create module: %w", s.key, err)
	}
	s.module = module
	return module, nil
}

func (s *shader) Release() {
	if s.module != nil {
		s.module.Release()
		s.module = nil
	}
}

// stageAttribute returns the WGSL attribute that marks an entry function for
// the given stage.
func stageAttribute(shaderType ShaderType) string {
	if shaderType == ShaderTypeVertex {
		return "@vertex"
	}
	return "@fragment"
}

// findEntryPoint scans processed WGSL source for the first function annotated
// with the stage attribute and returns its name.
func findEntryPoint(source string, shaderType ShaderType) (string, error) {
	attr := stageAttribute(shaderType)
	lines := strings.Split(source, "\n")
	seen := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == attr {
			seen = true
			continue
		}
		if !seen {
			continue
		}
		if !strings.HasPrefix(trimmed, "fn ") {
			continue
		}
		rest := strings.TrimPrefix(trimmed, "fn ")
		name, _, ok := strings.Cut(rest, "(")
		if !ok {
			return "", fmt.Errorf("malformed entry function declaration %q", trimmed)
		}
		return strings.TrimSpace(name), nil
	}
	return "", fmt.Errorf("no %s entry point found", attr)
}
