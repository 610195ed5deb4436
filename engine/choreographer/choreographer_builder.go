package choreographer

// ChoreographerBuilderOption is a function that modifies the choreographer
// being built, following the functional options pattern.
//
// Parameters:
//   - c: pointer to the choreographer being constructed
type ChoreographerBuilderOption func(c *choreographer)

// WithClock overrides the time source used for script scheduling and tween
// advancement. Tests substitute a MockClock to step sequences
// deterministically.
//
// Parameters:
//   - clock: the time source to use
//
// Returns:
//   - ChoreographerBuilderOption: option to apply the clock
func WithClock(clock Clock) ChoreographerBuilderOption {
	return func(c *choreographer) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithTimings overrides the full timing table. Hosts that want a snappier
// or slower feel replace individual fields of DefaultTimings and pass the
// result here.
//
// Parameters:
//   - timings: the timing table to use
//
// Returns:
//   - ChoreographerBuilderOption: option to apply the timings
func WithTimings(timings Timings) ChoreographerBuilderOption {
	return func(c *choreographer) {
		c.timings = timings
	}
}
