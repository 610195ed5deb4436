package renderer

import (
	"time"

	"github.com/cogentcore/webgpu/wgpu"
)

// SurfaceRendererBuilderOption is a functional option used to configure a SurfaceRenderer during construction.
type SurfaceRendererBuilderOption func(*surfaceRenderer)

// WithFrameRate caps the surface at the given frame rate. The default is 60.
//
// Parameters:
//   - fps: target frames per second; zero or negative removes the cap so every tick renders
//
// Returns:
//   - SurfaceRendererBuilderOption: a function that sets the pacing interval for this renderer
func WithFrameRate(fps int) SurfaceRendererBuilderOption {
	return func(r *surfaceRenderer) {
		if fps <= 0 {
			r.frameInterval = 0
			return
		}
		r.frameInterval = time.Second / time.Duration(fps)
	}
}

// WithClearColor sets the color the surface is cleared to before any layer
// draws. The default is a near-black deep blue.
//
// Parameters:
//   - color: the clear color in linear space
//
// Returns:
//   - SurfaceRendererBuilderOption: a function that sets the clear color for this renderer
func WithClearColor(color wgpu.Color) SurfaceRendererBuilderOption {
	return func(r *surfaceRenderer) {
		r.clearColor = color
	}
}
