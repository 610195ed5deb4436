package renderer

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/euansprr-dev/CosmoNative-sub007/engine/element"
	"github.com/euansprr-dev/CosmoNative-sub007/engine/metrics"
)

// scriptedStates is a StateProvider with fixed per-element states, handy for
// driving layers without a choreographer.
type scriptedStates struct {
	states  map[element.ID]element.AnimationState
	ambient element.Ambient
	snap    metrics.Snapshot
}

func (s *scriptedStates) ElementState(id element.ID) element.AnimationState {
	return s.states[id]
}

func (s *scriptedStates) Ambient() element.Ambient  { return s.ambient }
func (s *scriptedStates) Metrics() metrics.Snapshot { return s.snap }

// visibleStates returns a provider where the given elements are fully visible
// at rest, under a lit, undimmed ambient and a mid-game snapshot.
func visibleStates(ids ...element.ID) *scriptedStates {
	s := &scriptedStates{
		states:  make(map[element.ID]element.AnimationState),
		ambient: element.Ambient{Time: 2.5, GlowIntensity: 0.5, Dim: 1},
		snap:    metrics.Snapshot{Level: 7, XPProgress: 0.42, Intensity: 0.6, Biometric: 0.5},
	}
	for _, id := range ids {
		s.states[id] = element.AnimationState{Opacity: 1, Scale: 1}
	}
	return s
}

func frameOn(states StateProvider) FrameInfo {
	return FrameInfo{Time: 3.25, Width: 800, Height: 600, States: states}
}

// f32At decodes the little-endian float32 at a byte offset of a marshaled
// uniform block.
func f32At(t *testing.T, buf []byte, off int) float32 {
	t.Helper()
	if off+4 > len(buf) {
		t.Fatalf("offset %d out of range for %d-byte uniform", off, len(buf))
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
}

func i32At(t *testing.T, buf []byte, off int) int32 {
	t.Helper()
	if off+4 > len(buf) {
		t.Fatalf("offset %d out of range for %d-byte uniform", off, len(buf))
	}
	return int32(binary.LittleEndian.Uint32(buf[off:]))
}

func vec4At(t *testing.T, buf []byte, off int) [4]float32 {
	t.Helper()
	var v [4]float32
	for i := range v {
		v[i] = f32At(t, buf, off+4*i)
	}
	return v
}

func TestLayersSkipInvisibleElements(t *testing.T) {
	// No element has any opacity, so every layer should decline to draw.
	provider := &scriptedStates{
		states:  make(map[element.ID]element.AnimationState),
		ambient: element.Ambient{Dim: 1},
	}
	frame := frameOn(provider)

	layers := []Layer{
		&AuroraLayer{},
		&OrbLayer{ID: element.HeroOrb},
		&OrbLayer{ID: element.SecondaryOrb(0), Count: 3},
		&RingLayer{},
		&LineLayer{Index: 0, Count: 3},
		&GlassLayer{ID: element.GlassPanel},
		&TextGlowLayer{},
	}
	for _, l := range layers {
		if got := l.Uniforms(frame); got != nil {
			t.Errorf("%s: expected nil uniforms for invisible element, got %d bytes", l.ProgramKey(), len(got))
		}
	}
}

func TestGlobalDimZeroHidesEverythingButParticles(t *testing.T) {
	provider := visibleStates(
		element.Background, element.HeroOrb, element.ProgressRing,
		element.Connection(0), element.GlassPanel, element.TextGlow,
		element.Particles,
	)
	provider.ambient.Dim = 0
	frame := frameOn(provider)

	dimmed := []Layer{
		&AuroraLayer{},
		&OrbLayer{ID: element.HeroOrb},
		&RingLayer{},
		&LineLayer{Index: 0, Count: 3},
		&GlassLayer{ID: element.GlassPanel},
		&TextGlowLayer{},
	}
	for _, l := range dimmed {
		if got := l.Uniforms(frame); got != nil {
			t.Errorf("%s: expected nil uniforms at dim 0, got %d bytes", l.ProgramKey(), len(got))
		}
	}

	// Particles are the celebration itself and must survive the dim.
	pl := &ParticleLayer{System: &stubParticles{parts: []element.GPUParticleInstance{{Life: 1}}}}
	buf := pl.Uniforms(frame)
	if buf == nil {
		t.Fatal("particle layer skipped under dim, should ignore it")
	}
	if got := f32At(t, buf, 12); got != 1 {
		t.Errorf("particle opacity = %v, want element opacity 1 unscaled by dim", got)
	}
}

func TestAuroraUniformPlacement(t *testing.T) {
	provider := visibleStates(element.Background)
	provider.states[element.Background] = element.AnimationState{Opacity: 0.75, Scale: 1}
	provider.ambient.HueDrift = 0.125
	l := &AuroraLayer{Octaves: 6}

	buf := l.Uniforms(frameOn(provider))
	if buf == nil {
		t.Fatal("expected uniforms for visible background")
	}
	if len(buf) != 96 {
		t.Fatalf("aurora uniform length = %d, want 96", len(buf))
	}

	bands := metrics.AuroraColors(7)
	if got := vec4At(t, buf, 0); got != bands[0] {
		t.Errorf("colorA = %v, want level palette band %v", got, bands[0])
	}
	if got := f32At(t, buf, 64); got != 800 {
		t.Errorf("resolution.x = %v, want 800", got)
	}
	if got := f32At(t, buf, 68); got != 600 {
		t.Errorf("resolution.y = %v, want 600", got)
	}
	if got := f32At(t, buf, 72); got != 2.5 {
		t.Errorf("time = %v, want ambient clock 2.5", got)
	}
	if got := i32At(t, buf, 80); got != 6 {
		t.Errorf("octaves = %d, want 6", got)
	}
	if got := f32At(t, buf, 84); got != 0.125 {
		t.Errorf("hueDrift = %v, want 0.125", got)
	}
	if got := f32At(t, buf, 92); got != 0.75 {
		t.Errorf("opacity = %v, want 0.75", got)
	}
}

func TestAuroraOctavesFallBackToFour(t *testing.T) {
	provider := visibleStates(element.Background)
	l := &AuroraLayer{}

	buf := l.Uniforms(frameOn(provider))
	if buf == nil {
		t.Fatal("expected uniforms for visible background")
	}
	if got := i32At(t, buf, 80); got != 4 {
		t.Errorf("octaves = %d, want fallback 4", got)
	}
}

func TestAuroraBandsBlendTowardAmbientTint(t *testing.T) {
	provider := visibleStates(element.Background)
	plain := (&AuroraLayer{}).Uniforms(frameOn(provider))

	provider.ambient.Tint = [4]float32{1, 0, 0, 1}
	provider.ambient.TintAmount = 0.6
	tinted := (&AuroraLayer{}).Uniforms(frameOn(provider))

	want := metrics.BlendTint(metrics.AuroraColors(7)[0], provider.ambient.Tint, float64(provider.ambient.TintAmount))
	if got := vec4At(t, tinted, 0); got != want {
		t.Errorf("tinted colorA = %v, want %v", got, want)
	}
	if bytes.Equal(plain, tinted) {
		t.Error("tint amount 0.6 left the aurora bands unchanged")
	}
}

func TestOrbUniformAppliesCenterOffsetAndScale(t *testing.T) {
	provider := visibleStates(element.HeroOrb)
	provider.states[element.HeroOrb] = element.AnimationState{
		Opacity: 1,
		Scale:   1.5,
		Offset:  mgl32.Vec2{0.125, -0.25},
		Pulse:   1,
	}
	l := &OrbLayer{ID: element.HeroOrb, BaseRadius: 0.25, Center: mgl32.Vec2{0.75, 0.5}}

	buf := l.Uniforms(frameOn(provider))
	if buf == nil {
		t.Fatal("expected uniforms for visible hero orb")
	}
	if len(buf) != 112 {
		t.Fatalf("orb uniform length = %d, want 112", len(buf))
	}

	if got := f32At(t, buf, 60); got != 0.375 {
		t.Errorf("radius = %v, want base 0.25 scaled by 1.5 = 0.375", got)
	}
	// The center sits 0.25 right of the surface midpoint, added on top of the
	// animated offset.
	if got := f32At(t, buf, 88); got != 0.375 {
		t.Errorf("offset.x = %v, want 0.125 + 0.25 = 0.375", got)
	}
	if got := f32At(t, buf, 92); got != -0.25 {
		t.Errorf("offset.y = %v, want -0.25", got)
	}
	if got := f32At(t, buf, 72); got != 1 {
		t.Errorf("activePulse = %v, want 1", got)
	}
	if got, want := f32At(t, buf, 76), float32(2.3); math.Abs(float64(got-want)) > 1e-5 {
		t.Errorf("pulseRate = %v, want about %v for biometric 0.5", got, want)
	}
	if got := f32At(t, buf, 96); got != 1 {
		t.Errorf("opacity = %v, want 1", got)
	}
}

func TestOrbZeroCenterMeansSurfaceCenter(t *testing.T) {
	provider := visibleStates(element.HeroOrb)
	frame := frameOn(provider)

	implicit := (&OrbLayer{ID: element.HeroOrb}).Uniforms(frame)
	explicit := (&OrbLayer{ID: element.HeroOrb, Center: mgl32.Vec2{0.5, 0.5}}).Uniforms(frame)
	if !bytes.Equal(implicit, explicit) {
		t.Error("zero center and explicit surface center should marshal identically")
	}
}

func TestHeroOrbPaletteFollowsLevel(t *testing.T) {
	provider := visibleStates(element.HeroOrb)
	l := &OrbLayer{ID: element.HeroOrb}
	frame := frameOn(provider)

	buf := l.Uniforms(frame)
	core, _, _ := metrics.LevelColors(7)
	if got := vec4At(t, buf, 0); got != core {
		t.Errorf("core color = %v, want level 7 palette %v", got, core)
	}

	provider.snap.Level = 9
	buf = l.Uniforms(frame)
	core, mid, _ := metrics.LevelColors(9)
	if got := vec4At(t, buf, 0); got != core {
		t.Errorf("core color after level up = %v, want level 9 palette %v", got, core)
	}
	if got := vec4At(t, buf, 16); got != mid {
		t.Errorf("mid color after level up = %v, want level 9 palette %v", got, mid)
	}
}

func TestSecondaryOrbKeepsIdentityHueAcrossLevels(t *testing.T) {
	id := element.SecondaryOrb(1)
	provider := visibleStates(id)
	l := &OrbLayer{ID: id, Count: 4}
	frame := frameOn(provider)

	buf := l.Uniforms(frame)
	core, mid, edge := metrics.IdentityOrbColors(1, 4)
	if got := vec4At(t, buf, 0); got != core {
		t.Errorf("core color = %v, want identity palette %v", got, core)
	}
	if got := vec4At(t, buf, 16); got != mid {
		t.Errorf("mid color = %v, want identity palette %v", got, mid)
	}
	if got := vec4At(t, buf, 32); got != edge {
		t.Errorf("edge color = %v, want identity palette %v", got, edge)
	}

	provider.snap.Level = 20
	after := l.Uniforms(frame)
	if !bytes.Equal(buf, after) {
		t.Error("secondary orb palette should not change with level")
	}
}

func TestRingUniformScalesRadiiAndTracksProgress(t *testing.T) {
	provider := visibleStates(element.ProgressRing)
	provider.states[element.ProgressRing] = element.AnimationState{Opacity: 1, Scale: 1.5}
	l := &RingLayer{InnerRadius: 0.5, OuterRadius: 0.75}

	buf := l.Uniforms(frameOn(provider))
	if buf == nil {
		t.Fatal("expected uniforms for visible ring")
	}
	if len(buf) != 80 {
		t.Fatalf("ring uniform length = %d, want 80", len(buf))
	}

	if got, want := f32At(t, buf, 56), float32(0.42); got != want {
		t.Errorf("progress = %v, want snapshot xp %v", got, want)
	}
	if got := f32At(t, buf, 60); got != 0.75 {
		t.Errorf("inner radius = %v, want 0.5 * 1.5 = 0.75", got)
	}
	if got := f32At(t, buf, 64); got != 1.125 {
		t.Errorf("outer radius = %v, want 0.75 * 1.5 = 1.125", got)
	}
}

func TestRingRadiiDefaults(t *testing.T) {
	provider := visibleStates(element.ProgressRing)
	l := &RingLayer{}

	buf := l.Uniforms(frameOn(provider))
	if got, want := f32At(t, buf, 60), float32(0.62); got != want {
		t.Errorf("inner radius = %v, want default %v", got, want)
	}
	if got, want := f32At(t, buf, 64), float32(0.78); got != want {
		t.Errorf("outer radius = %v, want default %v", got, want)
	}
}

func TestLineEndpointsFollowAnimatedOffset(t *testing.T) {
	id := element.Connection(2)
	provider := visibleStates(id)
	provider.states[id] = element.AnimationState{
		Opacity: 1,
		Scale:   1,
		Offset:  mgl32.Vec2{0.125, 0.125},
	}
	l := &LineLayer{
		Index: 2,
		Count: 5,
		Start: mgl32.Vec2{0.5, 0.5},
		End:   mgl32.Vec2{0.75, 0.25},
	}

	buf := l.Uniforms(frameOn(provider))
	if buf == nil {
		t.Fatal("expected uniforms for visible connection")
	}
	if got := f32At(t, buf, 32); got != 0.625 {
		t.Errorf("start.x = %v, want 0.625", got)
	}
	if got := f32At(t, buf, 36); got != 0.625 {
		t.Errorf("start.y = %v, want 0.625", got)
	}
	if got := f32At(t, buf, 40); got != 0.875 {
		t.Errorf("end.x = %v, want 0.875", got)
	}
	if got := f32At(t, buf, 44); got != 0.375 {
		t.Errorf("end.y = %v, want 0.375", got)
	}
	if got, want := vec4At(t, buf, 16), metrics.IdentityColor(2, 5); got != want {
		t.Errorf("end color = %v, want identity hue %v", got, want)
	}
}

func TestGlassUniformDefaultsAndScale(t *testing.T) {
	provider := visibleStates(element.GlassPanel)
	provider.states[element.GlassPanel] = element.AnimationState{Opacity: 0.5, Scale: 1.25}
	provider.ambient.Dim = 0.5
	frame := frameOn(provider)

	full := (&GlassLayer{ID: element.GlassPanel}).Uniforms(frame)
	if full == nil {
		t.Fatal("expected uniforms for visible panel")
	}
	if len(full) != 80 {
		t.Fatalf("glass uniform length = %d, want 80", len(full))
	}
	if got := f32At(t, full, 52); got != 0.25 {
		t.Errorf("opacity = %v, want element 0.5 times dim 0.5 = 0.25", got)
	}
	if got := f32At(t, full, 64); got != 1.25 {
		t.Errorf("scale = %v, want element scale with base 1", got)
	}

	shrunk := (&GlassLayer{ID: element.GlassPanel, BaseScale: 0.5}).Uniforms(frame)
	if got := f32At(t, shrunk, 64); got != 0.625 {
		t.Errorf("scale = %v, want 0.5 * 1.25 = 0.625", got)
	}

	moved := (&GlassLayer{ID: element.GlassPanel, Center: mgl32.Vec2{0.5, 0.75}}).Uniforms(frame)
	if got := f32At(t, moved, 56); got != 0 {
		t.Errorf("offset.x = %v, want 0", got)
	}
	if got := f32At(t, moved, 60); got != 0.25 {
		t.Errorf("offset.y = %v, want center 0.75 - midpoint 0.5 = 0.25", got)
	}
}

func TestTextGlowIntensityAddsBoost(t *testing.T) {
	provider := visibleStates(element.TextGlow)
	provider.states[element.TextGlow] = element.AnimationState{Opacity: 1, Scale: 1, GlowBoost: 0.25}
	provider.ambient.GlowIntensity = 1
	l := &TextGlowLayer{}

	buf := l.Uniforms(frameOn(provider))
	if buf == nil {
		t.Fatal("expected uniforms for visible text glow")
	}
	if len(buf) != 48 {
		t.Fatalf("text glow uniform length = %d, want 48", len(buf))
	}
	if got, want := f32At(t, buf, 28), float32(1.05); math.Abs(float64(got-want)) > 1e-5 {
		t.Errorf("intensity = %v, want about %v (0.55 base + 0.25 boost + 0.25 ambient)", got, want)
	}
	if got := f32At(t, buf, 32); got != 0.5 {
		t.Errorf("radius = %v, want 0.5 at scale 1", got)
	}
}

// stubParticles is a canned particle system for layer tests.
type stubParticles struct {
	parts []element.GPUParticleInstance
}

func (s *stubParticles) SpawnBurst(mgl32.Vec2, int) {}
func (s *stubParticles) Step(float32)               {}
func (s *stubParticles) Count() int                 { return len(s.parts) }
func (s *stubParticles) Active() bool               { return false }
func (s *stubParticles) Stop()                      {}

func (s *stubParticles) Snapshot() []element.GPUParticleInstance {
	return s.parts
}

func TestParticleLayerStreamsInstances(t *testing.T) {
	provider := visibleStates(element.Particles)
	sys := &stubParticles{parts: []element.GPUParticleInstance{
		{Pos: [2]float32{100, 200}, Size: 4, Life: 1, Seed: 0.5},
		{Pos: [2]float32{300, 400}, Size: 6, Life: 0.5, Seed: 0.25},
	}}
	l := &ParticleLayer{System: sys}

	buf := l.Uniforms(frameOn(provider))
	if buf == nil {
		t.Fatal("expected uniforms with live particles")
	}
	if len(buf) != 16 {
		t.Fatalf("particle uniform length = %d, want 16", len(buf))
	}
	// Particles run on the render clock, not the pausable ambient clock.
	if got := f32At(t, buf, 8); got != 3.25 {
		t.Errorf("time = %v, want render clock 3.25", got)
	}

	data, count := l.Instances()
	if count != 2 {
		t.Fatalf("instance count = %d, want 2", count)
	}
	var stride element.GPUParticleInstance
	if want := int(stride.Stride()) * 2; len(data) != want {
		t.Errorf("instance bytes = %d, want %d", len(data), want)
	}
	if got := f32At(t, data, 0); got != 100 {
		t.Errorf("first instance pos.x = %v, want 100", got)
	}
	if got := f32At(t, data, int(stride.Stride())+8); got != 6 {
		t.Errorf("second instance size = %v, want 6", got)
	}
}

func TestParticleLayerSkipsWhenFieldEmptyOrHidden(t *testing.T) {
	provider := visibleStates(element.Particles)
	empty := &ParticleLayer{System: &stubParticles{}}
	if got := empty.Uniforms(frameOn(provider)); got != nil {
		t.Errorf("expected nil uniforms with no live particles, got %d bytes", len(got))
	}
	if data, count := empty.Instances(); data != nil || count != 0 {
		t.Errorf("expected empty instance stream, got %d bytes, count %d", len(data), count)
	}

	hidden := &scriptedStates{
		states:  make(map[element.ID]element.AnimationState),
		ambient: element.Ambient{Dim: 1},
	}
	l := &ParticleLayer{System: &stubParticles{parts: []element.GPUParticleInstance{{Life: 1}}}}
	if got := l.Uniforms(frameOn(hidden)); got != nil {
		t.Errorf("expected nil uniforms while the field element is invisible, got %d bytes", len(got))
	}
}
