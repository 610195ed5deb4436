package engine

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/euansprr-dev/CosmoNative-sub007/engine/choreographer"
	"github.com/euansprr-dev/CosmoNative-sub007/engine/particle"
	"github.com/euansprr-dev/CosmoNative-sub007/engine/profiler"
	"github.com/euansprr-dev/CosmoNative-sub007/engine/renderer"
	"github.com/euansprr-dev/CosmoNative-sub007/engine/window"
)

// engine implements the Engine interface.
// Coordinates the animation tick, render, and window threads.
type engine struct {
	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window window.Window
	ctx    renderer.Context // nil when the GPU is unavailable (static fallback)

	choreo    choreographer.Choreographer
	particles particle.System

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)

	surfaceMu sync.Mutex
	surfaces  map[int]renderer.SurfaceRenderer

	renderFrameLimit time.Duration // minimum render loop iteration; 0 = uncapped
}

// Engine is the main entry point for the dashboard engine.
// It owns the choreographer's tick loop, the render loop fanning frames out
// to every registered surface, and window lifetime.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Context returns the shared GPU context, or nil when the engine is
	// running in static fallback mode without a device.
	//
	// Returns:
	//   - renderer.Context: the GPU context, possibly nil
	Context() renderer.Context

	// Fallback reports whether the engine is running without a GPU device.
	// In fallback mode no surfaces render; the host shows its static layout.
	//
	// Returns:
	//   - bool: true when no GPU context is available
	Fallback() bool

	// Choreographer returns the animation choreographer driven by the tick
	// loop. Hosts call its sequence and input methods directly.
	//
	// Returns:
	//   - choreographer.Choreographer: the choreographer instance
	Choreographer() choreographer.Choreographer

	// Particles returns the celebration particle system.
	//
	// Returns:
	//   - particle.System: the particle system instance
	Particles() particle.System

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the animation tick rate in ticks per second.
	// The choreographer updates and the tick callback fire at this rate.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each animation tick
	// after the choreographer update. Use it for host logic such as
	// hit-testing and metrics refresh.
	//
	// Parameters:
	//   - callback: function to call each tick, receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional render loop rate cap in
	// iterations per second. Surfaces pace themselves individually; the cap
	// only bounds how often they are offered a tick. Pass 0 to uncap.
	//
	// Parameters:
	//   - fps: maximum render loop iterations per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddSurface registers a surface renderer at the given z-index key.
	// Surfaces are ticked in ascending key order during the render loop.
	//
	// Parameters:
	//   - key: the z-index determining tick order (lower ticks first)
	//   - r: the SurfaceRenderer to register
	AddSurface(key int, r renderer.SurfaceRenderer)

	// RemoveSurface removes the surface at the given z-index key. The
	// surface is not released; the caller keeps ownership.
	//
	// Parameters:
	//   - key: the z-index of the surface to remove
	RemoveSurface(key int)

	// Surface retrieves the surface registered at the given z-index key.
	// Returns nil if no surface exists at that key.
	//
	// Parameters:
	//   - key: the z-index of the surface to retrieve
	//
	// Returns:
	//   - renderer.SurfaceRenderer: the surface at the key, or nil if not found
	Surface(key int) renderer.SurfaceRenderer

	// Surfaces returns a copy of all registered surfaces keyed by z-index.
	//
	// Returns:
	//   - map[int]renderer.SurfaceRenderer: a copy of the surfaces map
	Surfaces() map[int]renderer.SurfaceRenderer

	// Run starts the tick and render loops and blocks on the window message
	// loop until the window closes, then releases engine-owned resources.
	Run()

	// Quit signals all engine goroutines to stop and closes the window on
	// the next message loop iteration.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// A host normally supplies its window, GPU context, and choreographer; when
// no choreographer or particle system is given, empty defaults are created
// so the tick loop always has something to drive.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		surfaces:        make(map[int]renderer.SurfaceRenderer),
		profiler:        profiler.NewProfiler(),
		engineTickRate:  time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.choreo == nil {
		e.choreo = choreographer.NewChoreographer(0)
	}
	if e.particles == nil {
		e.particles = particle.NewSystem()
	}

	e.profiler.SetSurfaceSampler(func() []profiler.SurfaceSample {
		e.surfaceMu.Lock()
		defer e.surfaceMu.Unlock()

		keys := make([]int, 0, len(e.surfaces))
		for k := range e.surfaces {
			keys = append(keys, k)
		}
		sort.Ints(keys)

		samples := make([]profiler.SurfaceSample, 0, len(keys))
		for _, k := range keys {
			stats := e.surfaces[k].Stats()
			samples = append(samples, profiler.SurfaceSample{
				Name:    fmt.Sprintf("surface %d", k),
				Frames:  stats.Frames,
				Skipped: stats.Skipped,
				Dropped: stats.Dropped,
			})
		}
		return samples
	})

	if e.window != nil {
		e.window.SetResizeCallback(func(width, height int) {
			e.resizeSurfaces(width, height)
		})
		e.window.SetUpdateCallback(func() {
			// Runs on the message loop thread, where closing is allowed.
			select {
			case <-e.quitChannel:
				if err := e.window.Close(); err != nil {
					log.Printf("[ENGINE] closing window: %v", err)
				}
			default:
			}
		})
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Context() renderer.Context {
	return e.ctx
}

func (e *engine) Fallback() bool {
	return e.ctx == nil
}

func (e *engine) Choreographer() choreographer.Choreographer {
	return e.choreo
}

func (e *engine) Particles() particle.System {
	return e.particles
}

func (e *engine) Run() {
	e.running = true
	e.handle()
	e.window.ProcessMessages()
	e.shutdown()
}

// Quit signals all engine goroutines to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.running = false
		close(e.quitChannel)
	})
}

// shutdown runs after the message loop ends: stops the loops, waits for
// them, then tears down everything the engine owns. Surfaces drain their
// in-flight frames before the context goes away.
func (e *engine) shutdown() {
	e.signalQuit()
	e.wg.Wait()

	e.surfaceMu.Lock()
	surfaces := e.surfaces
	e.surfaces = make(map[int]renderer.SurfaceRenderer)
	e.surfaceMu.Unlock()
	for _, r := range surfaces {
		r.Release()
	}

	e.particles.Stop()

	if e.ctx != nil {
		e.ctx.Release()
	}
}

// handle launches the tick, render, and quit goroutines.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.wg.Add(3)
	go e.handleTick()
	go e.handleRender()
	go e.handleQuit()
}

// handleTick runs the fixed-rate animation tick loop in its own goroutine.
// Each tick updates the choreographer and fires the tick callback, and the
// loop listens for dynamic rate changes via tickRateChannel. Exits when the
// quit channel is closed.
func (e *engine) handleTick() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now

			e.choreo.Update(now)

			if e.tickCallback != nil {
				e.tickCallback(dt)
			}
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

// handleRender runs the render loop in its own goroutine, offering a tick
// to every registered surface in ascending z-index order. Surfaces enforce
// their own frame pacing, so the loop may iterate faster than any of them
// draws. Recovers from panics to avoid crashing the process and signals
// quit on recovery.
func (e *engine) handleRender() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("render goroutine recovered from panic: %v", r)
			e.signalQuit()
		}
	}()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
			now := time.Now()

			for _, r := range e.orderedSurfaces() {
				r.RenderTick(now)
			}

			if e.profilingEnabled && e.profiler != nil {
				e.profiler.Tick()
			}

			// Iteration rate limiting
			if e.renderFrameLimit > 0 {
				if remaining := e.renderFrameLimit - time.Since(now); remaining > 0 {
					time.Sleep(remaining)
				}
			}
		}
	}
}

// handleQuit blocks until the quit channel is closed, then decrements the WaitGroup.
func (e *engine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel
}

// orderedSurfaces snapshots the registered surfaces in ascending key order.
func (e *engine) orderedSurfaces() []renderer.SurfaceRenderer {
	e.surfaceMu.Lock()
	defer e.surfaceMu.Unlock()

	keys := make([]int, 0, len(e.surfaces))
	for k := range e.surfaces {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	ordered := make([]renderer.SurfaceRenderer, 0, len(keys))
	for _, k := range keys {
		ordered = append(ordered, e.surfaces[k])
	}
	return ordered
}

// resizeSurfaces forwards a window resize to every registered surface.
func (e *engine) resizeSurfaces(width, height int) {
	for _, r := range e.orderedSurfaces() {
		if err := r.Resize(width, height); err != nil {
			log.Printf("[ENGINE] resizing surface to %dx%d: %v", width, height, err)
		}
	}
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetTickRate sets the animation tick rate in ticks per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Second / time.Duration(fps)

	if e.running {
		// Send to channel for immediate update in running tick loop
		// Non-blocking send - if channel is full, replace the pending value
		select {
		case e.tickRateChannel <- newRate:
		default:
			// Channel has a pending update, drain and send new value
			select {
			case <-e.tickRateChannel:
			default:
			}
			e.tickRateChannel <- newRate
		}
	} else {
		// Engine not running, just update the field
		e.engineTickRate = newRate
	}
}

// SetTickCallback registers the function called each animation tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

// SetRenderFrameLimit sets an optional render loop rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Second / time.Duration(fps)
}

func (e *engine) AddSurface(key int, r renderer.SurfaceRenderer) {
	e.surfaceMu.Lock()
	defer e.surfaceMu.Unlock()
	e.surfaces[key] = r
}

func (e *engine) RemoveSurface(key int) {
	e.surfaceMu.Lock()
	defer e.surfaceMu.Unlock()
	delete(e.surfaces, key)
}

func (e *engine) Surface(key int) renderer.SurfaceRenderer {
	e.surfaceMu.Lock()
	defer e.surfaceMu.Unlock()
	return e.surfaces[key]
}

func (e *engine) Surfaces() map[int]renderer.SurfaceRenderer {
	e.surfaceMu.Lock()
	defer e.surfaceMu.Unlock()

	cp := make(map[int]renderer.SurfaceRenderer, len(e.surfaces))
	for k, v := range e.surfaces {
		cp[k] = v
	}
	return cp
}
