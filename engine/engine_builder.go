package engine

import (
	"time"

	"github.com/euansprr-dev/CosmoNative-sub007/engine/choreographer"
	"github.com/euansprr-dev/CosmoNative-sub007/engine/particle"
	"github.com/euansprr-dev/CosmoNative-sub007/engine/renderer"
	"github.com/euansprr-dev/CosmoNative-sub007/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithTickRate sets the animation tick rate in ticks per second.
// The choreographer update and tick callback fire at this rate.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			fps = 60.0
		}
		e.engineTickRate = time.Second / time.Duration(fps)
	}
}

// WithWindow sets a custom configured window for the engine to use rather than allowing the engine
// to create and manage one internally.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithContext supplies the shared GPU context. Omit it (or pass nil) to run
// in static fallback mode with no surfaces rendering.
//
// Parameters:
//   - ctx: the GPU context, or nil for fallback mode
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithContext(ctx renderer.Context) EngineBuilderOption {
	return func(e *engine) {
		e.ctx = ctx
	}
}

// WithChoreographer supplies the choreographer the tick loop drives. Hosts
// construct it themselves to pick the secondary orb count and timings.
//
// Parameters:
//   - c: the choreographer instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithChoreographer(c choreographer.Choreographer) EngineBuilderOption {
	return func(e *engine) {
		if c != nil {
			e.choreo = c
		}
	}
}

// WithParticleSystem supplies the celebration particle system.
//
// Parameters:
//   - s: the particle system instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithParticleSystem(s particle.System) EngineBuilderOption {
	return func(e *engine) {
		if s != nil {
			e.particles = s
		}
	}
}

// WithSurface registers a surface renderer at the given z-index key during
// engine construction. Surfaces are ticked in ascending key order during
// the render loop.
//
// Parameters:
//   - key: the z-index determining tick order (lower ticks first)
//   - r: the SurfaceRenderer to register
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithSurface(key int, r renderer.SurfaceRenderer) EngineBuilderOption {
	return func(e *engine) {
		e.surfaces[key] = r
	}
}

// WithRenderFrameLimit sets an optional render loop rate cap in iterations
// per second. Pass 0 to uncap the render loop (default).
//
// Parameters:
//   - fps: maximum render loop iterations per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.renderFrameLimit = 0
			return
		}
		e.renderFrameLimit = time.Second / time.Duration(fps)
	}
}
