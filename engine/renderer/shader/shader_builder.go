package shader

import "github.com/cogentcore/webgpu/wgpu"

// ShaderBuilderOption is a functional option for configuring a shader during
// construction.
type ShaderBuilderOption func(*shader)

// WithVertexLayouts sets the vertex buffer layouts a vertex shader consumes.
//
// Parameters:
//   - layouts: the vertex buffer layouts, in binding order
//
// Returns:
//   - ShaderBuilderOption: the option to apply
func WithVertexLayouts(layouts ...wgpu.VertexBufferLayout) ShaderBuilderOption {
	return func(s *shader) {
		s.vertexLayout = layouts
	}
}

// WithEntryPoint overrides the entry point detected by the pre-processor.
// Useful when a source file declares more than one entry function for the
// same stage.
//
// Parameters:
//   - name: the entry function name to use
//
// Returns:
//   - ShaderBuilderOption: the option to apply
func WithEntryPoint(name string) ShaderBuilderOption {
	return func(s *shader) {
		s.entryPoint = name
	}
}
