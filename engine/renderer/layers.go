package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/euansprr-dev/CosmoNative-sub007/common"
	"github.com/euansprr-dev/CosmoNative-sub007/engine/element"
	"github.com/euansprr-dev/CosmoNative-sub007/engine/metrics"
	"github.com/euansprr-dev/CosmoNative-sub007/engine/particle"
	"github.com/euansprr-dev/CosmoNative-sub007/engine/renderer/shader"
)

// StateProvider combines everything layers read per frame: per-element
// animation state, the shared ambient clock values, and the dashboard metrics
// snapshot. The choreographer implements it.
type StateProvider interface {
	element.StateSource

	// Metrics returns the current dashboard metrics snapshot.
	Metrics() metrics.Snapshot
}

// FrameInfo carries the per-frame values handed to every layer of a surface.
type FrameInfo struct {
	// Time is the render clock in seconds since the surface renderer
	// started. Unlike the ambient clock it never pauses.
	Time float32

	// Width and Height are the drawable's current pixel size.
	Width  int
	Height int

	// States is the animation state source for this frame.
	States StateProvider
}

// Layer derives the uniform block for one draw of one program. A layer is
// owned by a single surface renderer's encode worker, so the palette caches
// below need no locking.
type Layer interface {
	// ProgramKey returns the program this layer draws with.
	ProgramKey() string

	// Uniforms returns the marshaled uniform block for this frame, or nil to
	// skip drawing the layer this frame.
	//
	// Parameters:
	//   - frame: the per-frame inputs
	//
	// Returns:
	//   - []byte: the uniform block, or nil to skip
	Uniforms(frame FrameInfo) []byte
}

// InstancedLayer is a layer that additionally streams per-instance vertex
// data. Instances is called after Uniforms within the same frame.
type InstancedLayer interface {
	Layer

	// Instances returns the packed instance buffer and the instance count
	// captured by the preceding Uniforms call.
	Instances() ([]byte, int)
}

// pulseRate maps the biometric scalar to the orb breathing frequency in
// radians per second. Calmer input breathes slower.
func pulseRate(biometric float64) float32 {
	return float32(1.6 + 1.4*biometric)
}

func uv(v mgl32.Vec2) [2]float32 {
	return [2]float32{v.X(), v.Y()}
}

// AuroraLayer draws the fbm aurora backdrop.
type AuroraLayer struct {
	// Octaves is the fbm quality dial; values below 1 fall back to 4.
	Octaves int32

	cachedLevel int
	cachedBands [3][4]float32
	havePalette bool
}

var _ Layer = &AuroraLayer{}

func (l *AuroraLayer) ProgramKey() string {
	return shader.ProgramAurora
}

func (l *AuroraLayer) Uniforms(frame FrameInfo) []byte {
	st := frame.States.ElementState(element.Background).Clamped()
	amb := frame.States.Ambient()
	opacity := st.Opacity * amb.Dim
	if opacity <= 0 {
		return nil
	}

	snap := frame.States.Metrics().Normalized()
	if !l.havePalette || l.cachedLevel != snap.Level {
		l.cachedBands = metrics.AuroraColors(snap.Level)
		l.cachedLevel = snap.Level
		l.havePalette = true
	}

	bands := l.cachedBands
	if amb.TintAmount > 0 {
		for i := range bands {
			bands[i] = metrics.BlendTint(bands[i], amb.Tint, float64(amb.TintAmount))
		}
	}

	octaves := l.Octaves
	if octaves < 1 {
		octaves = 4
	}

	u := element.GPUAuroraUniform{
		ColorA:     bands[0],
		ColorB:     bands[1],
		ColorC:     bands[2],
		BaseColor:  [4]float32{0.02, 0.03, 0.06, 1},
		Resolution: [2]float32{float32(frame.Width), float32(frame.Height)},
		Time:       amb.Time,
		Intensity:  float32(0.35+0.45*snap.Intensity) * (0.6 + 0.4*amb.GlowIntensity),
		Octaves:    octaves,
		HueDrift:   amb.HueDrift,
		Vignette:   0.35,
		Opacity:    opacity,
	}
	return u.Marshal()
}

// OrbLayer draws one orb: the hero, colored by level, or a secondary orb,
// colored by its identity hue.
type OrbLayer struct {
	// ID selects which orb's state drives the layer.
	ID element.ID

	// Count is the total number of secondary orbs, used for identity hue
	// spacing. Ignored for the hero orb.
	Count int

	// BaseRadius is the orb radius in UV units at scale 1. Values <= 0 fall
	// back to 0.85.
	BaseRadius float32

	// Center is the orb's rest position in UV units. The zero value means
	// the surface center, for hosts that give each orb its own surface.
	Center mgl32.Vec2

	cachedLevel     int
	core, mid, edge [4]float32
	havePalette     bool
}

var _ Layer = &OrbLayer{}

func (l *OrbLayer) ProgramKey() string {
	return shader.ProgramOrb
}

func (l *OrbLayer) refreshPalette(level int) {
	if l.ID.Kind == element.KindSecondaryOrb {
		if !l.havePalette {
			l.core, l.mid, l.edge = metrics.IdentityOrbColors(l.ID.Index, l.Count)
			l.havePalette = true
		}
		return
	}
	if !l.havePalette || l.cachedLevel != level {
		l.core, l.mid, l.edge = metrics.LevelColors(level)
		l.cachedLevel = level
		l.havePalette = true
	}
}

func (l *OrbLayer) Uniforms(frame FrameInfo) []byte {
	st := frame.States.ElementState(l.ID).Clamped()
	amb := frame.States.Ambient()
	opacity := st.Opacity * amb.Dim
	if opacity <= 0 {
		return nil
	}

	snap := frame.States.Metrics().Normalized()
	l.refreshPalette(snap.Level)

	radius := l.BaseRadius
	if radius <= 0 {
		radius = 0.85
	}

	offset := st.Offset
	if l.Center != (mgl32.Vec2{}) {
		offset = offset.Add(l.Center.Sub(mgl32.Vec2{0.5, 0.5}))
	}

	u := element.GPUOrbUniform{
		CoreColor:     l.core,
		MidColor:      l.mid,
		EdgeColor:     l.edge,
		Resolution:    [2]float32{float32(frame.Width), float32(frame.Height)},
		Time:          amb.Time,
		Radius:        radius * st.Scale,
		GlowIntensity: 0.6*amb.GlowIntensity + st.GlowBoost,
		GrainAmount:   0.08,
		ActivePulse:   st.Pulse,
		PulseRate:     pulseRate(snap.Biometric),
		LightDir:      [2]float32{-0.45, -0.6},
		Offset:        uv(offset),
		Opacity:       opacity,
	}
	return u.Marshal()
}

// RingLayer draws the XP progress ring.
type RingLayer struct {
	// InnerRadius and OuterRadius bound the ring band in UV units at scale 1.
	// Values <= 0 fall back to 0.62 and 0.78.
	InnerRadius float32
	OuterRadius float32

	cachedLevel    int
	progress, glow [4]float32
	havePalette    bool
}

var _ Layer = &RingLayer{}

func (l *RingLayer) ProgramKey() string {
	return shader.ProgramProgressRing
}

func (l *RingLayer) Uniforms(frame FrameInfo) []byte {
	st := frame.States.ElementState(element.ProgressRing).Clamped()
	amb := frame.States.Ambient()
	opacity := st.Opacity * amb.Dim
	if opacity <= 0 {
		return nil
	}

	snap := frame.States.Metrics().Normalized()
	if !l.havePalette || l.cachedLevel != snap.Level {
		core, mid, _ := metrics.LevelColors(snap.Level)
		l.progress = mid
		l.glow = core
		l.cachedLevel = snap.Level
		l.havePalette = true
	}

	inner := l.InnerRadius
	if inner <= 0 {
		inner = 0.62
	}
	outer := l.OuterRadius
	if outer <= 0 {
		outer = 0.78
	}

	u := element.GPUProgressRingUniform{
		TrackColor:    [4]float32{0.16, 0.18, 0.24, 0.55},
		ProgressColor: l.progress,
		GlowColor:     l.glow,
		Resolution:    [2]float32{float32(frame.Width), float32(frame.Height)},
		Progress:      float32(snap.XPProgress),
		InnerRadius:   inner * st.Scale,
		OuterRadius:   outer * st.Scale,
		EdgeSoftness:  0.02,
		EndcapGlow:    0.6 + st.GlowBoost,
		Opacity:       opacity,
	}
	return u.Marshal()
}

// LineLayer draws the glowing connection between the hero orb and one
// secondary orb.
type LineLayer struct {
	// Index identifies which connection this is; Count is the total number
	// of secondary orbs for identity hue spacing.
	Index int
	Count int

	// Start and End are the segment endpoints in UV units at rest.
	Start mgl32.Vec2
	End   mgl32.Vec2

	cachedLevel int
	startColor  [4]float32
	endColor    [4]float32
	havePalette bool
}

var _ Layer = &LineLayer{}

func (l *LineLayer) ProgramKey() string {
	return shader.ProgramConnectionLine
}

func (l *LineLayer) Uniforms(frame FrameInfo) []byte {
	st := frame.States.ElementState(element.Connection(l.Index)).Clamped()
	amb := frame.States.Ambient()
	opacity := st.Opacity * amb.Dim
	if opacity <= 0 {
		return nil
	}

	snap := frame.States.Metrics().Normalized()
	if !l.havePalette || l.cachedLevel != snap.Level {
		_, mid, _ := metrics.LevelColors(snap.Level)
		l.startColor = mid
		l.endColor = metrics.IdentityColor(l.Index, l.Count)
		l.cachedLevel = snap.Level
		l.havePalette = true
	}

	u := element.GPUConnectionLineUniform{
		ColorStart: l.startColor,
		ColorEnd:   l.endColor,
		Start:      uv(l.Start.Add(st.Offset)),
		End:        uv(l.End.Add(st.Offset)),
		Resolution: [2]float32{float32(frame.Width), float32(frame.Height)},
		Time:       amb.Time,
		Thickness:  0.012 * st.Scale,
		GlowWidth:  0.045,
		FlowSpeed:  1.8,
		Opacity:    opacity,
	}
	return u.Marshal()
}

// GlassLayer draws a frosted panel, tinted toward the level palette.
type GlassLayer struct {
	// ID selects which panel's state drives the layer, usually
	// element.InsightPanel or element.GlassPanel.
	ID element.ID

	// Center is the panel's rest position in UV units. The zero value means
	// the surface center.
	Center mgl32.Vec2

	// BaseScale shrinks the panel from its full-surface extent; values <= 0
	// fall back to 1.
	BaseScale float32

	cachedLevel  int
	tint, border [4]float32
	havePalette  bool
}

var _ Layer = &GlassLayer{}

func (l *GlassLayer) ProgramKey() string {
	return shader.ProgramGlass
}

func (l *GlassLayer) Uniforms(frame FrameInfo) []byte {
	st := frame.States.ElementState(l.ID).Clamped()
	amb := frame.States.Ambient()
	opacity := st.Opacity * amb.Dim
	if opacity <= 0 {
		return nil
	}

	snap := frame.States.Metrics().Normalized()
	if !l.havePalette || l.cachedLevel != snap.Level {
		core, mid, _ := metrics.LevelColors(snap.Level)
		l.tint = metrics.BlendTint([4]float32{0.09, 0.10, 0.14, 0.55}, mid, 0.18)
		l.border = metrics.BlendTint([4]float32{0.85, 0.88, 0.95, 0.8}, core, 0.3)
		l.cachedLevel = snap.Level
		l.havePalette = true
	}

	offset := st.Offset
	if l.Center != (mgl32.Vec2{}) {
		offset = offset.Add(l.Center.Sub(mgl32.Vec2{0.5, 0.5}))
	}
	base := l.BaseScale
	if base <= 0 {
		base = 1
	}

	u := element.GPUGlassUniform{
		TintColor:    l.tint,
		BorderColor:  l.border,
		Resolution:   [2]float32{float32(frame.Width), float32(frame.Height)},
		Time:         amb.Time,
		CornerRadius: 0.08,
		NoiseAmount:  0.05,
		Opacity:      opacity,
		Offset:       uv(offset),
		Scale:        base * st.Scale,
	}
	return u.Marshal()
}

// TextGlowLayer draws the halo behind header text.
type TextGlowLayer struct {
	cachedLevel int
	color       [4]float32
	havePalette bool
}

var _ Layer = &TextGlowLayer{}

func (l *TextGlowLayer) ProgramKey() string {
	return shader.ProgramTextGlow
}

func (l *TextGlowLayer) Uniforms(frame FrameInfo) []byte {
	st := frame.States.ElementState(element.TextGlow).Clamped()
	amb := frame.States.Ambient()
	opacity := st.Opacity * amb.Dim
	if opacity <= 0 {
		return nil
	}

	snap := frame.States.Metrics().Normalized()
	if !l.havePalette || l.cachedLevel != snap.Level {
		core, _, _ := metrics.LevelColors(snap.Level)
		l.color = core
		l.cachedLevel = snap.Level
		l.havePalette = true
	}

	u := element.GPUTextGlowUniform{
		GlowColor:  l.color,
		Resolution: [2]float32{float32(frame.Width), float32(frame.Height)},
		Time:       amb.Time,
		Intensity:  0.55 + st.GlowBoost + 0.25*amb.GlowIntensity,
		Radius:     0.5 * st.Scale,
		Opacity:    opacity,
	}
	return u.Marshal()
}

// ParticleLayer streams the burst particle field as instanced quads. The
// snapshot taken in Uniforms is reused by the Instances call of the same
// frame.
type ParticleLayer struct {
	// System is the particle system backing this layer.
	System particle.System

	instances []element.GPUParticleInstance
}

var _ InstancedLayer = &ParticleLayer{}

func (l *ParticleLayer) ProgramKey() string {
	return shader.ProgramParticles
}

func (l *ParticleLayer) Uniforms(frame FrameInfo) []byte {
	st := frame.States.ElementState(element.Particles).Clamped()
	if st.Opacity <= 0 {
		return nil
	}

	l.instances = l.System.Snapshot()
	if len(l.instances) == 0 {
		return nil
	}

	// Particles are the celebration itself, so they ignore the global dim
	// and run on the never-pausing render clock.
	u := element.GPUParticleUniform{
		Resolution: [2]float32{float32(frame.Width), float32(frame.Height)},
		Time:       frame.Time,
		Opacity:    st.Opacity,
	}
	return u.Marshal()
}

func (l *ParticleLayer) Instances() ([]byte, int) {
	if len(l.instances) == 0 {
		return nil, 0
	}
	return common.SliceToBytes(l.instances), len(l.instances)
}
