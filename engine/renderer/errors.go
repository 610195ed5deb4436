package renderer

import (
	"errors"
	"fmt"
)

// Sentinel errors of the rendering layer. Device loss and drawable loss are
// recoverable conditions the host reacts to; everything else wraps one of
// these or carries its own type.
var (
	// ErrDeviceUnavailable is returned by NewContext when no suitable GPU
	// adapter or device can be acquired. Hosts fall back to a static
	// presentation instead of crashing.
	ErrDeviceUnavailable = errors.New("renderer: gpu device unavailable")

	// ErrDrawableUnavailable is returned when a drawable cannot hand out a
	// texture for the current frame, typically mid-resize or while the
	// surface is occluded. The frame is skipped; the next tick retries.
	ErrDrawableUnavailable = errors.New("renderer: drawable unavailable")

	// ErrFrameSubmissionFailed is returned when an encoded frame cannot be
	// finished or submitted. The frame is dropped; the next tick retries.
	ErrFrameSubmissionFailed = errors.New("renderer: frame submission failed")
)

// PipelineCompilationError reports a render pipeline that failed to build,
// carrying the program key so callers can tell which visual is affected.
type PipelineCompilationError struct {
	ProgramKey string
	Err        error
}

func (e *PipelineCompilationError) Error() string {
	return fmt.Sprintf("renderer: compile pipeline %q: %v", e.ProgramKey, e.Err)
}

func (e *PipelineCompilationError) Unwrap() error {
	return e.Err
}
