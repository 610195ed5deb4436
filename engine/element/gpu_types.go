package element

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUOrbUniformSource is the canonical WGSL definition of the OrbUniform struct.
// Matches GPUOrbUniform layout exactly (112 bytes, WGSL uniform aligned).
//
//go:embed assets/orb_uniform.wgsl
var GPUOrbUniformSource string

// GPUAuroraUniformSource is the canonical WGSL definition of the AuroraUniform struct.
// Matches GPUAuroraUniform layout exactly (96 bytes, WGSL uniform aligned).
//
//go:embed assets/aurora_uniform.wgsl
var GPUAuroraUniformSource string

// GPUParticleUniformSource is the canonical WGSL definition of the ParticleUniform struct.
// Matches GPUParticleUniform layout exactly (16 bytes, WGSL uniform aligned).
//
//go:embed assets/particle_uniform.wgsl
var GPUParticleUniformSource string

// GPUParticleInstanceSource is the canonical WGSL definition of the per-instance
// vertex input consumed by the particle vertex stage. Matches GPUParticleInstance
// layout exactly (24-byte stride).
//
//go:embed assets/particle_instance.wgsl
var GPUParticleInstanceSource string

// GPUProgressRingUniformSource is the canonical WGSL definition of the ProgressRingUniform struct.
// Matches GPUProgressRingUniform layout exactly (80 bytes, WGSL uniform aligned).
//
//go:embed assets/progress_ring_uniform.wgsl
var GPUProgressRingUniformSource string

// GPUConnectionLineUniformSource is the canonical WGSL definition of the ConnectionLineUniform struct.
// Matches GPUConnectionLineUniform layout exactly (80 bytes, WGSL uniform aligned).
//
//go:embed assets/connection_line_uniform.wgsl
var GPUConnectionLineUniformSource string

// GPUGlassUniformSource is the canonical WGSL definition of the GlassUniform struct.
// Matches GPUGlassUniform layout exactly (80 bytes, WGSL uniform aligned).
//
//go:embed assets/glass_uniform.wgsl
var GPUGlassUniformSource string

// GPUTextGlowUniformSource is the canonical WGSL definition of the TextGlowUniform struct.
// Matches GPUTextGlowUniform layout exactly (48 bytes, WGSL uniform aligned).
//
//go:embed assets/text_glow_uniform.wgsl
var GPUTextGlowUniformSource string

// f32Writer appends little-endian float32 bit patterns to a pre-sized buffer.
// The struct fields below are all 4-byte scalars or arrays of them, so writing
// fields in declaration order reproduces the WGSL offsets without arithmetic.
type f32Writer struct {
	buf []byte
	off int
}

func (w *f32Writer) put(vals ...float32) {
	for _, v := range vals {
		binary.LittleEndian.PutUint32(w.buf[w.off:], math.Float32bits(v))
		w.off += 4
	}
}

func (w *f32Writer) putI32(v int32) {
	binary.LittleEndian.PutUint32(w.buf[w.off:], uint32(v))
	w.off += 4
}

// GPUOrbUniform is the GPU-aligned parameter block for the orb program.
// Matches the WGSL OrbUniform struct layout exactly (see GPUOrbUniformSource).
// Size: 112 bytes (WGSL uniform aligned).
type GPUOrbUniform struct {
	CoreColor     [4]float32 // offset   0: center glow color (vec4<f32>)
	MidColor      [4]float32 // offset  16: body color (vec4<f32>)
	EdgeColor     [4]float32 // offset  32: rim color before edge darken (vec4<f32>)
	Resolution    [2]float32 // offset  48: drawable size in pixels (vec2<f32>)
	Time          float32    // offset  56: ambient clock seconds
	Radius        float32    // offset  60: orb radius in normalized UV units
	GlowIntensity float32    // offset  64: ambient glow level plus element boost
	GrainAmount   float32    // offset  68: fbm surface grain amplitude
	ActivePulse   float32    // offset  72: 1 when the active sine pulse runs, else 0
	PulseRate     float32    // offset  76: pulse frequency in radians per second
	LightDir      [2]float32 // offset  80: specular light direction (vec2<f32>)
	Offset        [2]float32 // offset  88: center shift in UV units (vec2<f32>)
	Opacity       float32    // offset  96: final alpha multiplier
	_pad0         float32    // offset 100: padding
	_pad1         [2]float32 // offset 104: padding to 112 bytes
}

// Size returns the size of the GPUOrbUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (112)
func (g *GPUOrbUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUOrbUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUOrbUniform) Marshal() []byte {
	w := f32Writer{buf: make([]byte, g.Size())}
	w.put(g.CoreColor[:]...)
	w.put(g.MidColor[:]...)
	w.put(g.EdgeColor[:]...)
	w.put(g.Resolution[:]...)
	w.put(g.Time, g.Radius, g.GlowIntensity, g.GrainAmount, g.ActivePulse, g.PulseRate)
	w.put(g.LightDir[:]...)
	w.put(g.Offset[:]...)
	w.put(g.Opacity, 0, 0, 0)
	return w.buf
}

// GPUAuroraUniform is the GPU-aligned parameter block for the aurora background program.
// Matches the WGSL AuroraUniform struct layout exactly (see GPUAuroraUniformSource).
// Size: 96 bytes (WGSL uniform aligned).
type GPUAuroraUniform struct {
	ColorA     [4]float32 // offset  0: first band color (vec4<f32>)
	ColorB     [4]float32 // offset 16: second band color (vec4<f32>)
	ColorC     [4]float32 // offset 32: third band color (vec4<f32>)
	BaseColor  [4]float32 // offset 48: dark backdrop the bands composite over (vec4<f32>)
	Resolution [2]float32 // offset 64: drawable size in pixels (vec2<f32>)
	Time       float32    // offset 72: ambient clock seconds
	Intensity  float32    // offset 76: band brightness multiplier
	Octaves    int32      // offset 80: fbm octave count, the quality/perf dial
	HueDrift   float32    // offset 84: slow hue rotation in radians
	Vignette   float32    // offset 88: corner darkening strength
	Opacity    float32    // offset 92: final alpha multiplier
}

// Size returns the size of the GPUAuroraUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (96)
func (g *GPUAuroraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUAuroraUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUAuroraUniform) Marshal() []byte {
	w := f32Writer{buf: make([]byte, g.Size())}
	w.put(g.ColorA[:]...)
	w.put(g.ColorB[:]...)
	w.put(g.ColorC[:]...)
	w.put(g.BaseColor[:]...)
	w.put(g.Resolution[:]...)
	w.put(g.Time, g.Intensity)
	w.putI32(g.Octaves)
	w.put(g.HueDrift, g.Vignette, g.Opacity)
	return w.buf
}

// GPUParticleUniform is the GPU-aligned shared parameter block for the particle program.
// Per-particle data travels in the instance vertex stream, not here.
// Matches the WGSL ParticleUniform struct layout exactly (see GPUParticleUniformSource).
// Size: 16 bytes (WGSL uniform aligned).
type GPUParticleUniform struct {
	Resolution [2]float32 // offset 0: drawable size in pixels (vec2<f32>)
	Time       float32    // offset 8: clock seconds driving the sparkle sine
	Opacity    float32    // offset 12: whole-field alpha multiplier
}

// Size returns the size of the GPUParticleUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (16)
func (g *GPUParticleUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUParticleUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUParticleUniform) Marshal() []byte {
	w := f32Writer{buf: make([]byte, g.Size())}
	w.put(g.Resolution[:]...)
	w.put(g.Time, g.Opacity)
	return w.buf
}

// GPUParticleInstance is one particle's per-instance vertex data.
// Matches the WGSL ParticleInstance input layout exactly (see
// GPUParticleInstanceSource). Stride: 24 bytes. Slices of this struct are
// uploaded directly via common.SliceToBytes.
type GPUParticleInstance struct {
	Pos      [2]float32 // offset  0: position in pixels (vec2<f32>)
	Size     float32    // offset  8: sprite half-extent in pixels
	Life     float32    // offset 12: remaining life in [0, 1], drives alpha
	Rotation float32    // offset 16: sprite rotation in radians
	Seed     float32    // offset 20: per-particle sparkle phase offset
}

// Stride returns the per-instance stride in bytes (24), used as the vertex
// buffer ArrayStride.
func (g GPUParticleInstance) Stride() uint64 {
	return uint64(unsafe.Sizeof(g))
}

// GPUProgressRingUniform is the GPU-aligned parameter block for the progress ring program.
// Matches the WGSL ProgressRingUniform struct layout exactly (see GPUProgressRingUniformSource).
// Size: 80 bytes (WGSL uniform aligned).
type GPUProgressRingUniform struct {
	TrackColor    [4]float32 // offset  0: unfilled ring color (vec4<f32>)
	ProgressColor [4]float32 // offset 16: filled arc color (vec4<f32>)
	GlowColor     [4]float32 // offset 32: end-cap glow color (vec4<f32>)
	Resolution    [2]float32 // offset 48: drawable size in pixels (vec2<f32>)
	Progress      float32    // offset 56: fill fraction in [0, 1]
	InnerRadius   float32    // offset 60: ring inner radius in UV units
	OuterRadius   float32    // offset 64: ring outer radius in UV units
	EdgeSoftness  float32    // offset 68: smoothstep band half-width
	EndcapGlow    float32    // offset 72: exponential end-cap glow strength
	Opacity       float32    // offset 76: final alpha multiplier
}

// Size returns the size of the GPUProgressRingUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (80)
func (g *GPUProgressRingUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUProgressRingUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUProgressRingUniform) Marshal() []byte {
	w := f32Writer{buf: make([]byte, g.Size())}
	w.put(g.TrackColor[:]...)
	w.put(g.ProgressColor[:]...)
	w.put(g.GlowColor[:]...)
	w.put(g.Resolution[:]...)
	w.put(g.Progress, g.InnerRadius, g.OuterRadius, g.EdgeSoftness, g.EndcapGlow, g.Opacity)
	return w.buf
}

// GPUConnectionLineUniform is the GPU-aligned parameter block for the connection line program.
// Matches the WGSL ConnectionLineUniform struct layout exactly (see GPUConnectionLineUniformSource).
// Size: 80 bytes (WGSL uniform aligned).
type GPUConnectionLineUniform struct {
	ColorStart [4]float32 // offset  0: color at the hero end (vec4<f32>)
	ColorEnd   [4]float32 // offset 16: color at the secondary end (vec4<f32>)
	Start      [2]float32 // offset 32: segment start in UV units (vec2<f32>)
	End        [2]float32 // offset 40: segment end in UV units (vec2<f32>)
	Resolution [2]float32 // offset 48: drawable size in pixels (vec2<f32>)
	Time       float32    // offset 56: clock seconds driving the flow waves
	Thickness  float32    // offset 60: core band half-width in UV units
	GlowWidth  float32    // offset 64: exponential glow falloff width
	FlowSpeed  float32    // offset 68: traveling-wave speed along the line
	Opacity    float32    // offset 72: final alpha multiplier
	_pad       float32    // offset 76: padding to 80 bytes
}

// Size returns the size of the GPUConnectionLineUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (80)
func (g *GPUConnectionLineUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUConnectionLineUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUConnectionLineUniform) Marshal() []byte {
	w := f32Writer{buf: make([]byte, g.Size())}
	w.put(g.ColorStart[:]...)
	w.put(g.ColorEnd[:]...)
	w.put(g.Start[:]...)
	w.put(g.End[:]...)
	w.put(g.Resolution[:]...)
	w.put(g.Time, g.Thickness, g.GlowWidth, g.FlowSpeed, g.Opacity, 0)
	return w.buf
}

// GPUGlassUniform is the GPU-aligned parameter block for the glass panel program.
// Matches the WGSL GlassUniform struct layout exactly (see GPUGlassUniformSource).
// Size: 80 bytes (WGSL uniform aligned).
type GPUGlassUniform struct {
	TintColor    [4]float32 // offset  0: frosted fill color (vec4<f32>)
	BorderColor  [4]float32 // offset 16: edge highlight color (vec4<f32>)
	Resolution   [2]float32 // offset 32: drawable size in pixels (vec2<f32>)
	Time         float32    // offset 40: clock seconds driving the shimmer
	CornerRadius float32    // offset 44: rounded-corner radius in UV units
	NoiseAmount  float32    // offset 48: shimmer noise amplitude
	Opacity      float32    // offset 52: final alpha multiplier
	Offset       [2]float32 // offset 56: panel center shift in UV units (vec2<f32>)
	Scale        float32    // offset 64: panel scale around its center
	_pad0        float32    // offset 68: padding
	_pad1        [2]float32 // offset 72: padding to 80 bytes
}

// Size returns the size of the GPUGlassUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (80)
func (g *GPUGlassUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUGlassUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUGlassUniform) Marshal() []byte {
	w := f32Writer{buf: make([]byte, g.Size())}
	w.put(g.TintColor[:]...)
	w.put(g.BorderColor[:]...)
	w.put(g.Resolution[:]...)
	w.put(g.Time, g.CornerRadius, g.NoiseAmount, g.Opacity)
	w.put(g.Offset[:]...)
	w.put(g.Scale, 0, 0, 0)
	return w.buf
}

// GPUTextGlowUniform is the GPU-aligned parameter block for the text glow program.
// Matches the WGSL TextGlowUniform struct layout exactly (see GPUTextGlowUniformSource).
// Size: 48 bytes (WGSL uniform aligned).
type GPUTextGlowUniform struct {
	GlowColor  [4]float32 // offset  0: halo color (vec4<f32>)
	Resolution [2]float32 // offset 16: drawable size in pixels (vec2<f32>)
	Time       float32    // offset 24: clock seconds driving the pulse
	Intensity  float32    // offset 28: halo brightness
	Radius     float32    // offset 32: halo radius in UV units
	Opacity    float32    // offset 36: final alpha multiplier
	_pad       [2]float32 // offset 40: padding to 48 bytes
}

// Size returns the size of the GPUTextGlowUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (48)
func (g *GPUTextGlowUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUTextGlowUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUTextGlowUniform) Marshal() []byte {
	w := f32Writer{buf: make([]byte, g.Size())}
	w.put(g.GlowColor[:]...)
	w.put(g.Resolution[:]...)
	w.put(g.Time, g.Intensity, g.Radius, g.Opacity, 0, 0)
	return w.buf
}
