package renderer

import (
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/cogentcore/webgpu/wgpu"
)

// FrameStats counts frame outcomes for one surface.
type FrameStats struct {
	// Frames is the number of frames encoded, submitted and presented.
	Frames uint64

	// Skipped is the number of render ticks that produced no frame because
	// the pacing interval had not elapsed or the previous frame was still
	// encoding.
	Skipped uint64

	// Dropped is the number of frames abandoned after a failed acquire or
	// encode.
	Dropped uint64

	// LastFrame is the encode and submit duration of the most recent frame.
	LastFrame time.Duration
}

// SurfaceRenderer paces and encodes frames for a single drawable. RenderTick
// is cheap when no frame is due, so the engine calls it at a high rate for
// every surface; encoding runs on a dedicated worker per surface.
type SurfaceRenderer interface {
	// RenderTick encodes one frame if the pacing interval has elapsed and no
	// frame is still in flight, otherwise it returns immediately. Call from
	// a single goroutine.
	//
	// Parameters:
	//   - now: the current time, shared across surfaces for a coherent clock
	RenderTick(now time.Time)

	// Resize reconfigures the underlying drawable to a new pixel size. It
	// waits for in-flight encode work to drain first so the drawable is
	// never reconfigured mid-frame.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	//
	// Returns:
	//   - error: an error if the drawable could not be reconfigured
	Resize(width, height int) error

	// Stats returns a copy of the frame counters.
	//
	// Returns:
	//   - FrameStats: the counters at the time of the call
	Stats() FrameStats

	// Drawable returns the render target this renderer paces.
	Drawable() Drawable

	// Release drains pending encode work and frees the pooled GPU buffers
	// and the drawable. The renderer must not be used afterwards.
	Release()
}

type surfaceRenderer struct {
	ctx      Context
	drawable Drawable
	source   StateProvider
	layers   []Layer

	frameInterval time.Duration
	clearColor    wgpu.Color

	// encodePool runs encode tasks on a single worker so all GPU work for
	// this surface is serialized without blocking the tick goroutine. The
	// buffer pool is only ever touched from that worker.
	encodePool worker.DynamicWorkerPool
	buffers    *BufferPool

	// failedPrograms remembers layers whose pipeline failed to compile, so
	// the failure is logged once instead of every frame. Encode worker only.
	failedPrograms map[string]bool

	start     time.Time
	lastFrame time.Time
	frameSeq  int
	inFlight  atomic.Bool
	released  bool

	// tickMu serializes RenderTick against Resize and Release so no encode
	// task can be submitted between a drain and the drawable change.
	tickMu sync.Mutex

	statsMu sync.Mutex
	stats   FrameStats
}

var _ SurfaceRenderer = &surfaceRenderer{}

// NewSurfaceRenderer creates a frame-paced renderer that draws the given
// layers onto one drawable. Layers are drawn in slice order, back to front.
//
// Parameters:
//   - ctx: the rendering context supplying the device, queue and pipelines
//   - drawable: the render target; the renderer takes ownership and releases it
//   - source: the animation and metrics state the layers read each frame
//   - layers: the draw list, back to front
//   - options: optional overrides, see surface_renderer_builder.go
//
// Returns:
//   - SurfaceRenderer: the renderer, ready for RenderTick calls
func NewSurfaceRenderer(ctx Context, drawable Drawable, source StateProvider, layers []Layer, options ...SurfaceRendererBuilderOption) SurfaceRenderer {
	if ctx == nil || drawable == nil || source == nil {
		panic("renderer: surface renderer requires a context, a drawable and a state source")
	}

	r := &surfaceRenderer{
		ctx:            ctx,
		drawable:       drawable,
		source:         source,
		layers:         layers,
		frameInterval:  time.Second / 60,
		clearColor:     wgpu.Color{R: 0.008, G: 0.01, B: 0.016, A: 1},
		encodePool:     worker.NewDynamicWorkerPool(1, 8, time.Second),
		buffers:        NewBufferPool(ctx.Device(), "surface uniforms"),
		failedPrograms: make(map[string]bool),
		start:          time.Now(),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *surfaceRenderer) RenderTick(now time.Time) {
	r.tickMu.Lock()
	defer r.tickMu.Unlock()

	if r.released {
		return
	}
	if r.frameInterval > 0 && now.Sub(r.lastFrame) < r.frameInterval {
		r.countSkip()
		return
	}
	if !r.inFlight.CompareAndSwap(false, true) {
		// The encode worker is still on the previous frame; rendering this
		// tick would queue up latency instead of frames.
		r.countSkip()
		return
	}
	r.lastFrame = now

	elapsed := float32(now.Sub(r.start).Seconds())
	r.frameSeq++
	r.encodePool.SubmitTask(worker.Task{
		ID: r.frameSeq,
		Do: func() (any, error) {
			defer r.inFlight.Store(false)
			r.encodeFrame(elapsed)
			return nil, nil
		},
	})
}

// encodeFrame runs on the encode worker. Pooled buffers are returned as soon
// as the frame is submitted; queue ordering guarantees the next frame's
// WriteBuffer lands after this frame's reads.
func (r *surfaceRenderer) encodeFrame(elapsed float32) {
	started := time.Now()

	frame, err := r.drawable.Acquire()
	if err != nil {
		log.Printf("[SURFACE] skipping frame: %v", err)
		r.countDrop()
		return
	}

	width, height := r.drawable.Size()
	info := FrameInfo{
		Time:   elapsed,
		Width:  width,
		Height: height,
		States: r.source,
	}

	encoder, err := r.ctx.Device().CreateCommandEncoder(nil)
	if err != nil {
		log.Printf("[SURFACE] create command encoder: %v", err)
		r.drawable.Discard()
		r.countDrop()
		return
	}

	storeOp := wgpu.StoreOpStore
	if frame.ResolveTarget != nil {
		storeOp = wgpu.StoreOpDiscard // only the resolved texture is kept
	}
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "surface pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:          frame.View,
			ResolveTarget: frame.ResolveTarget,
			LoadOp:        wgpu.LoadOpClear,
			StoreOp:       storeOp,
			ClearValue:    r.clearColor,
		}},
	})

	checkedOut := make([]*PooledBuffer, 0, len(r.layers)+1)
	for _, l := range r.layers {
		if r.failedPrograms[l.ProgramKey()] {
			continue
		}
		uniforms := l.Uniforms(info)
		if uniforms == nil {
			continue
		}
		if err := r.encodeLayer(pass, l, uniforms, &checkedOut); err != nil {
			var pce *PipelineCompilationError
			if errors.As(err, &pce) {
				// The cache remembers the failure; stop asking and leave one
				// log line instead of one per frame.
				r.failedPrograms[l.ProgramKey()] = true
				log.Printf("[SURFACE] layer %s disabled: %v", l.ProgramKey(), err)
				continue
			}
			log.Printf("[SURFACE] layer %s: %v", l.ProgramKey(), err)
		}
	}

	pass.End()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		log.Printf("[SURFACE] %v: %v", ErrFrameSubmissionFailed, err)
		encoder.Release()
		r.drawable.Discard()
		r.returnAll(checkedOut)
		r.countDrop()
		return
	}

	r.ctx.Queue().Submit(commandBuffer)
	commandBuffer.Release()
	encoder.Release()

	r.drawable.Present()
	r.returnAll(checkedOut)

	r.statsMu.Lock()
	r.stats.Frames++
	r.stats.LastFrame = time.Since(started)
	r.statsMu.Unlock()
}

// encodeLayer records one layer's draw. Buffers it checks out are appended to
// checkedOut even on error so the caller returns them exactly once.
func (r *surfaceRenderer) encodeLayer(pass *wgpu.RenderPassEncoder, l Layer, uniforms []byte, checkedOut *[]*PooledBuffer) error {
	p, err := r.ctx.Pipeline(l.ProgramKey(), r.drawable.Format())
	if err != nil {
		return err
	}

	ub, err := r.buffers.Checkout(wgpu.BufferUsageUniform, uint64(len(uniforms)))
	if err != nil {
		return err
	}
	*checkedOut = append(*checkedOut, ub)
	r.ctx.Queue().WriteBuffer(ub.Buffer(), 0, uniforms)

	bindGroup, err := ub.BindGroup(r.ctx.Device(), r.ctx.UniformBindGroupLayout())
	if err != nil {
		return err
	}

	pass.SetPipeline(p.RenderPipeline())
	pass.SetBindGroup(0, bindGroup, nil)

	if il, ok := l.(InstancedLayer); ok {
		data, count := il.Instances()
		if count <= 0 {
			return nil
		}
		vb, err := r.buffers.Checkout(wgpu.BufferUsageVertex, uint64(len(data)))
		if err != nil {
			return err
		}
		*checkedOut = append(*checkedOut, vb)
		r.ctx.Queue().WriteBuffer(vb.Buffer(), 0, data)

		pass.SetVertexBuffer(0, vb.Buffer(), 0, wgpu.WholeSize)
		pass.Draw(4, uint32(count), 0, 0)
		return nil
	}

	pass.Draw(4, 1, 0, 0)
	return nil
}

func (r *surfaceRenderer) returnAll(checkedOut []*PooledBuffer) {
	for _, pb := range checkedOut {
		r.buffers.Return(pb)
	}
}

func (r *surfaceRenderer) countSkip() {
	r.statsMu.Lock()
	r.stats.Skipped++
	r.statsMu.Unlock()
}

func (r *surfaceRenderer) countDrop() {
	r.statsMu.Lock()
	r.stats.Dropped++
	r.statsMu.Unlock()
}

// drainEncode blocks until the encode worker has finished everything
// submitted before the call.
func (r *surfaceRenderer) drainEncode() {
	var wg sync.WaitGroup
	wg.Add(1)
	r.frameSeq++
	r.encodePool.SubmitTask(worker.Task{
		ID: r.frameSeq,
		Do: func() (any, error) {
			wg.Done()
			return nil, nil
		},
	})
	wg.Wait()
}

func (r *surfaceRenderer) Resize(width, height int) error {
	r.tickMu.Lock()
	defer r.tickMu.Unlock()

	if r.released {
		return nil
	}
	r.drainEncode()
	return r.drawable.Resize(width, height)
}

func (r *surfaceRenderer) Stats() FrameStats {
	r.statsMu.Lock()
	defer r.statsMu.Unlock()
	return r.stats
}

func (r *surfaceRenderer) Drawable() Drawable {
	return r.drawable
}

func (r *surfaceRenderer) Release() {
	r.tickMu.Lock()
	defer r.tickMu.Unlock()

	if r.released {
		return
	}
	r.released = true

	// Encode workers idle-exit on their own; drain so no task touches the
	// pool or drawable after they are released.
	r.drainEncode()
	r.buffers.Release()
	r.drawable.Release()
}
