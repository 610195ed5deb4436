package particle

import (
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// SystemBuilderOption is a functional option for configuring a particle
// system during construction.
type SystemBuilderOption func(*particleSystem)

// WithGravity sets the constant acceleration applied to every particle, in
// pixels per second squared. Positive Y pulls down in surface coordinates.
//
// Parameters:
//   - gravity: the acceleration vector
//
// Returns:
//   - SystemBuilderOption: the option to apply
func WithGravity(gravity mgl32.Vec2) SystemBuilderOption {
	return func(s *particleSystem) {
		s.gravity = gravity
	}
}

// WithTickRate sets the integration loop interval. Defaults to 60 steps per
// second.
//
// Parameters:
//   - rate: the time between integration steps
//
// Returns:
//   - SystemBuilderOption: the option to apply
func WithTickRate(rate time.Duration) SystemBuilderOption {
	return func(s *particleSystem) {
		if rate > 0 {
			s.tickRate = rate
		}
	}
}

// WithMaxParticles caps the live particle count; bursts that would exceed it
// are truncated.
//
// Parameters:
//   - maxParticles: the cap
//
// Returns:
//   - SystemBuilderOption: the option to apply
func WithMaxParticles(maxParticles int) SystemBuilderOption {
	return func(s *particleSystem) {
		if maxParticles > 0 {
			s.maxParticles = maxParticles
		}
	}
}

// WithSizeRange sets the sprite half-extent range in pixels.
//
// Parameters:
//   - minSize: smallest spawn size
//   - maxSize: largest spawn size
//
// Returns:
//   - SystemBuilderOption: the option to apply
func WithSizeRange(minSize, maxSize float32) SystemBuilderOption {
	return func(s *particleSystem) {
		s.sizeRange = [2]float32{minSize, maxSize}
	}
}

// WithSpeedRange sets the initial speed range in pixels per second.
//
// Parameters:
//   - minSpeed: slowest spawn speed
//   - maxSpeed: fastest spawn speed
//
// Returns:
//   - SystemBuilderOption: the option to apply
func WithSpeedRange(minSpeed, maxSpeed float32) SystemBuilderOption {
	return func(s *particleSystem) {
		s.speedRange = [2]float32{minSpeed, maxSpeed}
	}
}

// WithLifeRange sets the particle lifetime range in seconds.
//
// Parameters:
//   - minLife: shortest lifetime
//   - maxLife: longest lifetime
//
// Returns:
//   - SystemBuilderOption: the option to apply
func WithLifeRange(minLife, maxLife float32) SystemBuilderOption {
	return func(s *particleSystem) {
		s.lifeRange = [2]float32{minLife, maxLife}
	}
}

// WithRandSource seeds the spawn randomness, making burst shapes
// reproducible in tests.
//
// Parameters:
//   - source: the random source to draw from
//
// Returns:
//   - SystemBuilderOption: the option to apply
func WithRandSource(source rand.Source) SystemBuilderOption {
	return func(s *particleSystem) {
		s.rng = rand.New(source)
	}
}
