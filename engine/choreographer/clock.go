package choreographer

import (
	"sync"
	"time"
)

// Clock is the time source scripts are scheduled against. Implementations
// must be monotonically non-decreasing.
type Clock interface {
	// Now returns the current time.
	//
	// Returns:
	//   - time.Time: the current clock reading
	Now() time.Time
}

// systemClock reads the real monotonic clock.
type systemClock struct{}

var _ Clock = systemClock{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// MockClock is a controllable Clock for driving choreography in tests on a
// virtual timeline.
type MockClock struct {
	mu  sync.RWMutex
	now time.Time
}

var _ Clock = &MockClock{}

// NewMockClock creates a mock clock starting at the given time.
//
// Parameters:
//   - start: the initial clock reading
//
// Returns:
//   - *MockClock: the clock, ready for Advance/SetTime
func NewMockClock(start time.Time) *MockClock {
	return &MockClock{now: start}
}

// Now returns the current mocked time.
func (c *MockClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// SetTime sets the mocked time. Moving it backwards is the caller's mistake.
//
// Parameters:
//   - t: the new clock reading
func (c *MockClock) SetTime(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Advance moves the mocked time forward by d.
//
// Parameters:
//   - d: the duration to advance by
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
