package renderer

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// ContextBuilderOption is a functional option used to configure a Context during construction.
type ContextBuilderOption func(*renderingContext)

// WithCompatibleSurface supplies the platform surface descriptor of the main
// window so adapter selection picks a device that can present to it. The
// surface created here is handed to the first window drawable built from the
// same descriptor.
//
// Parameters:
//   - descriptor: the platform surface descriptor of the main window
//
// Returns:
//   - ContextBuilderOption: a function that sets the compatible surface descriptor
func WithCompatibleSurface(descriptor *wgpu.SurfaceDescriptor) ContextBuilderOption {
	return func(c *renderingContext) {
		c.bootDescriptor = descriptor
	}
}

// WithPresentMode sets the present mode used when configuring window
// drawables. Defaults to PresentModeVSync.
//
// Parameters:
//   - mode: the present mode to use
//
// Returns:
//   - ContextBuilderOption: a function that sets the present mode
func WithPresentMode(mode PresentMode) ContextBuilderOption {
	return func(c *renderingContext) {
		switch mode {
		case PresentModeUncapped:
			c.presentMode = wgpu.PresentModeImmediate
		case PresentModeVSync:
			fallthrough
		default:
			c.presentMode = wgpu.PresentModeFifo
		}
	}
}

// WithSampleCount sets the MSAA sample count for every pipeline and drawable
// created from this context. Defaults to MSAAOff.
//
// Parameters:
//   - count: the MSAA sample count to use
//
// Returns:
//   - ContextBuilderOption: a function that sets the sample count
func WithSampleCount(count MSAASampleCount) ContextBuilderOption {
	return func(c *renderingContext) {
		c.sampleCount = count
	}
}

// WithPowerPreference hints adapter selection toward low-power or
// high-performance hardware. Defaults to letting the backend decide.
//
// Parameters:
//   - pref: the power preference to request
//
// Returns:
//   - ContextBuilderOption: a function that sets the power preference
func WithPowerPreference(pref wgpu.PowerPreference) ContextBuilderOption {
	return func(c *renderingContext) {
		c.powerPreference = pref
	}
}

// WithForceFallbackAdapter forces selection of the software fallback adapter,
// useful for debugging driver issues.
//
// Parameters:
//   - force: whether to force the fallback adapter
//
// Returns:
//   - ContextBuilderOption: a function that sets the fallback adapter flag
func WithForceFallbackAdapter(force bool) ContextBuilderOption {
	return func(c *renderingContext) {
		c.forceFallbackAdapter = force
	}
}
