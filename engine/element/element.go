// package element defines the identities and animation state of the visual
// elements the engine draws: the aurora background, the hero orb, the ring of
// secondary orbs, the insight panel, and the supporting overlay surfaces.
// Animation state is published by the choreographer as immutable snapshots and
// consumed read-only by surface renderers; the types here are the contract
// between the two sides.
package element

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Kind enumerates the categories of visual element.
type Kind uint8

const (
	// KindBackground is the full-viewport aurora backdrop.
	KindBackground Kind = iota
	// KindHeroOrb is the central orb visualizing the primary metric.
	KindHeroOrb
	// KindSecondaryOrb is one of the N smaller orbs around the hero.
	KindSecondaryOrb
	// KindInsightPanel is the glass panel carrying textual insights.
	KindInsightPanel
	// KindProgressRing is the XP progress ring around the hero orb.
	KindProgressRing
	// KindConnectionLine is a glowing line linking the hero to a secondary orb.
	KindConnectionLine
	// KindParticleField is the transient burst-particle overlay.
	KindParticleField
	// KindGlassPanel is a frosted panel surface other than the insight panel.
	KindGlassPanel
	// KindTextGlow is the soft glow drawn behind header text.
	KindTextGlow
)

func (k Kind) String() string {
	switch k {
	case KindBackground:
		return "background"
	case KindHeroOrb:
		return "heroOrb"
	case KindSecondaryOrb:
		return "secondaryOrb"
	case KindInsightPanel:
		return "insightPanel"
	case KindProgressRing:
		return "progressRing"
	case KindConnectionLine:
		return "connectionLine"
	case KindParticleField:
		return "particleField"
	case KindGlassPanel:
		return "glassPanel"
	case KindTextGlow:
		return "textGlow"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ID names one concrete visual element. Index disambiguates elements that
// exist in multiples (secondary orbs, connection lines); it is zero for
// singleton kinds.
type ID struct {
	Kind  Kind
	Index int
}

func (id ID) String() string {
	switch id.Kind {
	case KindSecondaryOrb, KindConnectionLine:
		return fmt.Sprintf("%s[%d]", id.Kind, id.Index)
	default:
		return id.Kind.String()
	}
}

// Singleton element IDs.
var (
	Background   = ID{Kind: KindBackground}
	HeroOrb      = ID{Kind: KindHeroOrb}
	InsightPanel = ID{Kind: KindInsightPanel}
	ProgressRing = ID{Kind: KindProgressRing}
	Particles    = ID{Kind: KindParticleField}
	GlassPanel   = ID{Kind: KindGlassPanel}
	TextGlow     = ID{Kind: KindTextGlow}
)

// SecondaryOrb returns the ID of the i-th secondary orb.
func SecondaryOrb(i int) ID {
	return ID{Kind: KindSecondaryOrb, Index: i}
}

// Connection returns the ID of the line linking the hero orb to the i-th
// secondary orb.
func Connection(i int) ID {
	return ID{Kind: KindConnectionLine, Index: i}
}

// MaxScale is the hard ceiling on any element's scale. Spring overshoot and
// the zoom transition's expansion leg may approach it but renderers clamp
// against it before building uniforms.
const MaxScale = 2.0

// AnimationState is one element's animation snapshot for a single tick.
// Instances are immutable values: the choreographer publishes a fresh copy
// per element per tick and renderers read whichever copy is current. A
// renderer seeing a one-tick-stale snapshot is accepted behavior.
type AnimationState struct {
	// Opacity in [0, 1]. Zero means the element is not drawn.
	Opacity float32

	// Scale multiplier around the element's own center, in [0, MaxScale].
	Scale float32

	// Offset is the translation from the element's rest position, in
	// normalized viewport units.
	Offset mgl32.Vec2

	// Rotation in radians around the element's center.
	Rotation float32

	// GlowBoost is an additive glow term layered on the ambient glow
	// intensity, used by celebrations and hover highlights.
	GlowBoost float32

	// Pulse gates the orb's active sine pulse in [0, 1]. The choreographer
	// raises it while an element should breathe: the hero orb during the
	// active phase, a secondary orb while hovered.
	Pulse float32
}

// Clamped returns the state with opacity and scale forced into their
// documented bounds. Renderers call this before building uniforms so that
// mid-animation overshoot never reaches the GPU out of range.
func (s AnimationState) Clamped() AnimationState {
	if s.Opacity < 0 {
		s.Opacity = 0
	} else if s.Opacity > 1 {
		s.Opacity = 1
	}
	if s.Scale < 0 {
		s.Scale = 0
	} else if s.Scale > MaxScale {
		s.Scale = MaxScale
	}
	return s
}

// Ambient carries the choreographer's master slow-clock values that drive
// shader uniforms shared by every element.
type Ambient struct {
	// Time is the ambient clock in seconds, advanced only while ambient
	// animation runs (paused during transitions and celebrations).
	Time float32

	// GlowIntensity is the low-frequency global glow level in [0, 1].
	GlowIntensity float32

	// HueDrift is the slow hue rotation input for the aurora, in radians.
	HueDrift float32

	// Dim is a global brightness multiplier in [0, 1], lowered briefly by
	// celebration build-ups.
	Dim float32

	// Tint is the RGBA color the background blends toward during zoom
	// transitions, usually the focused element's identity color.
	Tint [4]float32

	// TintAmount is the strength of the background tint blend in [0, 1].
	TintAmount float32
}

// StateSource supplies current animation state to surface renderers. The
// choreographer implements it; renderers must treat the returned values as
// read-only and call it once per frame rather than caching across frames.
type StateSource interface {
	// ElementState returns the current snapshot for the given element.
	// Unknown IDs return a zero state (invisible).
	//
	// Parameters:
	//   - id: the element to read
	//
	// Returns:
	//   - AnimationState: the element's current snapshot
	ElementState(id ID) AnimationState

	// Ambient returns the current master-clock values.
	//
	// Returns:
	//   - Ambient: the shared ambient animation inputs
	Ambient() Ambient
}
