package renderer

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/euansprr-dev/CosmoNative-sub007/engine/element"
	"github.com/euansprr-dev/CosmoNative-sub007/engine/metrics"
	"github.com/euansprr-dev/CosmoNative-sub007/engine/renderer/pipeline"
	"github.com/euansprr-dev/CosmoNative-sub007/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// headlessContext satisfies Context for tests that never reach the device.
type headlessContext struct{}

func (headlessContext) Device() *wgpu.Device                          { return nil }
func (headlessContext) Queue() *wgpu.Queue                            { return nil }
func (headlessContext) Adapter() *wgpu.Adapter                        { return nil }
func (headlessContext) SampleCount() MSAASampleCount                  { return MSAAOff }
func (headlessContext) UniformBindGroupLayout() *wgpu.BindGroupLayout { return nil }
func (headlessContext) Program(string) (shader.Program, bool)         { return shader.Program{}, false }
func (headlessContext) Release()                                      {}

func (headlessContext) Pipeline(programKey string, format wgpu.TextureFormat) (pipeline.Pipeline, error) {
	return nil, fmt.Errorf("headless: no pipeline for %q", programKey)
}

func (headlessContext) CreateWindowDrawable(*wgpu.SurfaceDescriptor, int, int) (Drawable, error) {
	return nil, errors.New("headless: no window drawables")
}

func (headlessContext) CreateOffscreenDrawable(int, int) (Drawable, error) {
	return nil, errors.New("headless: no offscreen drawables")
}

// recordingDrawable fails every Acquire and records lifecycle calls.
type recordingDrawable struct {
	mu     sync.Mutex
	events []string

	gate  chan struct{} // when set, Acquire blocks on it
	began chan struct{}
}

func (d *recordingDrawable) record(event string) {
	d.mu.Lock()
	d.events = append(d.events, event)
	d.mu.Unlock()
}

func (d *recordingDrawable) recorded() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.events...)
}

func (d *recordingDrawable) Acquire() (Frame, error) {
	d.record("acquire")
	if d.gate != nil {
		select {
		case d.began <- struct{}{}:
		default:
		}
		<-d.gate
	}
	d.record("acquire-done")
	return Frame{}, fmt.Errorf("%w: no surface in tests", ErrDrawableUnavailable)
}

func (d *recordingDrawable) Present() {}
func (d *recordingDrawable) Discard() {}

func (d *recordingDrawable) Resize(width, height int) error {
	d.record("resize")
	return nil
}

func (d *recordingDrawable) Size() (int, int)           { return 800, 600 }
func (d *recordingDrawable) Format() wgpu.TextureFormat { return wgpu.TextureFormatBGRA8Unorm }

func (d *recordingDrawable) Release() {
	d.record("release")
}

type emptyStates struct{}

func (emptyStates) ElementState(element.ID) element.AnimationState { return element.AnimationState{} }
func (emptyStates) Ambient() element.Ambient                       { return element.Ambient{} }
func (emptyStates) Metrics() metrics.Snapshot                      { return metrics.Snapshot{} }

func waitForStats(t *testing.T, r SurfaceRenderer, want func(FrameStats) bool) FrameStats {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		s := r.Stats()
		if want(s) {
			return s
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("stats never reached expected state: %+v", r.Stats())
	return FrameStats{}
}

func TestRenderTickPacesFrames(t *testing.T) {
	d := &recordingDrawable{}
	r := NewSurfaceRenderer(headlessContext{}, d, emptyStates{}, nil, WithFrameRate(100))
	defer r.Release()

	t0 := time.Now()
	r.RenderTick(t0)
	waitForStats(t, r, func(s FrameStats) bool { return s.Dropped == 1 })

	// Inside the 10 ms pacing window both ticks are skipped.
	r.RenderTick(t0.Add(2 * time.Millisecond))
	r.RenderTick(t0.Add(4 * time.Millisecond))
	if s := r.Stats(); s.Skipped != 2 {
		t.Errorf("Skipped = %d inside pacing window, want 2", s.Skipped)
	}

	// Past the window a new frame is attempted.
	r.RenderTick(t0.Add(11 * time.Millisecond))
	s := waitForStats(t, r, func(s FrameStats) bool { return s.Dropped == 2 })
	if s.Frames != 0 {
		t.Errorf("Frames = %d with failing acquire, want 0", s.Frames)
	}
}

func TestRenderTickSkipsWhileFrameInFlight(t *testing.T) {
	d := &recordingDrawable{
		gate:  make(chan struct{}),
		began: make(chan struct{}, 1),
	}
	r := NewSurfaceRenderer(headlessContext{}, d, emptyStates{}, nil, WithFrameRate(0))
	defer r.Release()

	t0 := time.Now()
	r.RenderTick(t0)
	<-d.began

	// Uncapped, so only the in-flight guard can skip this tick.
	r.RenderTick(t0.Add(time.Second))
	if s := r.Stats(); s.Skipped != 1 {
		t.Errorf("Skipped = %d while frame in flight, want 1", s.Skipped)
	}

	close(d.gate)
	waitForStats(t, r, func(s FrameStats) bool { return s.Dropped == 1 })
}

func TestResizeWaitsForInFlightFrame(t *testing.T) {
	d := &recordingDrawable{
		gate:  make(chan struct{}),
		began: make(chan struct{}, 1),
	}
	r := NewSurfaceRenderer(headlessContext{}, d, emptyStates{}, nil, WithFrameRate(0))
	defer r.Release()

	r.RenderTick(time.Now())
	<-d.began

	resized := make(chan error, 1)
	go func() { resized <- r.Resize(1024, 768) }()

	select {
	case <-resized:
		t.Fatal("Resize returned while a frame was still encoding")
	case <-time.After(50 * time.Millisecond):
	}

	close(d.gate)
	if err := <-resized; err != nil {
		t.Fatalf("Resize: %v", err)
	}

	events := d.recorded()
	last := events[len(events)-1]
	if last != "resize" {
		t.Errorf("events = %v, want resize after the frame drained", events)
	}
}

func TestReleaseIsIdempotentAndStopsTicks(t *testing.T) {
	d := &recordingDrawable{}
	r := NewSurfaceRenderer(headlessContext{}, d, emptyStates{}, nil)

	r.Release()
	r.Release()

	releases := 0
	for _, e := range d.recorded() {
		if e == "release" {
			releases++
		}
	}
	if releases != 1 {
		t.Errorf("drawable released %d times, want 1", releases)
	}

	before := r.Stats()
	r.RenderTick(time.Now())
	if after := r.Stats(); after != before {
		t.Errorf("stats moved after Release: %+v -> %+v", before, after)
	}
}

func TestNewSurfaceRendererRequiresCoreInputs(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil drawable")
		}
	}()
	NewSurfaceRenderer(headlessContext{}, nil, emptyStates{}, nil)
}
