// package noise implements the procedural noise kernel shared by the shader
// programs: a lattice hash, 2D value noise, and fractal Brownian motion. The
// functions are pure and deterministic - identical inputs always produce
// identical outputs, with no time-seeded or global state - so animated noise
// stays continuous frame-to-frame.
//
// The same three functions exist exactly once in WGSL (GPUNoiseSource) and are
// injected into shader programs by the pre-processor. The Go side mirrors the
// GPU math in float32 and serves as the test oracle and CPU-side consumer.
package noise

import (
	_ "embed"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// GPUNoiseSource is the canonical WGSL definition of the noise kernel
// (hash21, value_noise, fbm). Injected into shader programs via the
// pre-processor so every shader shares a single source of truth.
//
//go:embed assets/noise.wgsl
var GPUNoiseSource string

// hashK is the fixed dot-product basis of the lattice hash. The constants are
// the widely used sine-hash pair; changing them changes every rendered surface.
var hashK = mgl32.Vec2{127.1, 311.7}

const hashScale = 43758.5453123

// Hash maps a 2D point to a pseudo-random value in [0, 1) using the fixed
// sine-dot-product-fract formula fract(sin(dot(p, k)) * s).
//
// Parameters:
//   - p: sample position
//
// Returns:
//   - float32: pseudo-random value in [0, 1)
func Hash(p mgl32.Vec2) float32 {
	s := math.Sin(float64(p.Dot(hashK))) * hashScale
	return float32(s - math.Floor(s))
}

// ValueNoise samples smooth 2D value noise at p: the four lattice-corner
// hashes around p blended bilinearly with the smoothstep weight 3t^2 - 2t^3
// per axis. Continuous everywhere, including across integer lattice lines.
//
// Parameters:
//   - p: sample position
//
// Returns:
//   - float32: noise value in [0, 1)
func ValueNoise(p mgl32.Vec2) float32 {
	ix := float32(math.Floor(float64(p.X())))
	iy := float32(math.Floor(float64(p.Y())))
	fx := p.X() - ix
	fy := p.Y() - iy

	ux := fx * fx * (3 - 2*fx)
	uy := fy * fy * (3 - 2*fy)

	a := Hash(mgl32.Vec2{ix, iy})
	b := Hash(mgl32.Vec2{ix + 1, iy})
	c := Hash(mgl32.Vec2{ix, iy + 1})
	d := Hash(mgl32.Vec2{ix + 1, iy + 1})

	ab := a + (b-a)*ux
	cd := c + (d-c)*ux
	return ab + (cd-ab)*uy
}

// FBM sums octaves rounds of ValueNoise, doubling the frequency and halving
// the amplitude each round, starting at amplitude 0.5. The octave count is the
// caller's primary quality/performance dial: fewer octaves cost proportionally
// less and the difference is invisible once the result is blurred or banded.
//
// Parameters:
//   - p: sample position
//   - octaves: number of noise rounds to sum (values < 1 return 0)
//
// Returns:
//   - float32: fractal noise value in [0, 1)
func FBM(p mgl32.Vec2, octaves int) float32 {
	var total float32
	amplitude := float32(0.5)
	frequency := float32(1.0)
	for range octaves {
		total += ValueNoise(p.Mul(frequency)) * amplitude
		frequency *= 2
		amplitude *= 0.5
	}
	return total
}
