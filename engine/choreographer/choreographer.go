// package choreographer sequences the dashboard's visual elements through
// phased animation scripts: entry cascade, ambient loop, zoom transition,
// celebrations, exit. All mutation is serialized under one mutex and applied
// on Update ticks; renderers read immutable snapshots through an atomic
// pointer, so the render path never contends with the write path.
package choreographer

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/euansprr-dev/CosmoNative-sub007/common"
	"github.com/euansprr-dev/CosmoNative-sub007/engine/element"
	"github.com/euansprr-dev/CosmoNative-sub007/engine/metrics"
)

// ErrInvalidSequenceRequest is returned when a phase script or zoom request
// arrives in a state that does not allow it. The request is a no-op and the
// state is unchanged; callers may log it and move on.
var ErrInvalidSequenceRequest = errors.New("choreographer: invalid sequence request")

// Ambient loop tuning. Amplitudes are fractions of the base scale; rates are
// radians per second of ambient time.
const (
	heroBreathAmp      = 0.02
	secondaryBreathAmp = 0.012
	secondaryDriftRate = 0.08
	hueDriftRate       = 0.05
)

// Choreographer owns every element's animation state and the master ambient
// clock. One instance drives all surfaces. Mutating methods may be called
// from any goroutine; Update must be called from a single tick goroutine.
type Choreographer interface {
	element.StateSource

	// Metrics returns the most recent external progress snapshot, as
	// published with the last Update tick.
	//
	// Returns:
	//   - metrics.Snapshot: the current snapshot
	Metrics() metrics.Snapshot

	// Update applies due script steps, advances tweens and the ambient
	// clock, and publishes a fresh state snapshot for renderers.
	//
	// Parameters:
	//   - now: the current time from the engine's tick clock
	Update(now time.Time)

	// StartEntry begins the entry cascade. Valid only from the idle phase.
	//
	// Returns:
	//   - error: an error wrapping ErrInvalidSequenceRequest if a sequence
	//     is already in flight
	StartEntry() error

	// StartExit begins the exit cascade, the temporal reverse of entry with
	// shorter durations. Valid only from the active phase.
	//
	// Returns:
	//   - error: an error wrapping ErrInvalidSequenceRequest if the phase
	//     is not active
	StartExit() error

	// ZoomTo begins the zoom-in script focusing the given secondary orb.
	// Valid only while active and at Home; a second zoom request while one
	// is in flight is rejected, never queued.
	//
	// Parameters:
	//   - id: the secondary orb to focus
	//
	// Returns:
	//   - error: an error wrapping ErrInvalidSequenceRequest if the request
	//     is not allowed from the current state
	ZoomTo(id element.ID) error

	// ReturnHome begins the return script. Valid only while an element is
	// showing.
	//
	// Returns:
	//   - error: an error wrapping ErrInvalidSequenceRequest if no element
	//     is showing
	ReturnHome() error

	// TriggerLevelUp runs the level-up celebration over the active phase:
	// dim build-up, flash with scale overshoot, spring settle. A no-op if a
	// level-up is already running or the phase is not active.
	TriggerLevelUp()

	// TriggerXPBurst runs the XP-gain celebration on the progress ring. A
	// no-op if one is already running or the phase is not active.
	TriggerXPBurst()

	// SetHovered feeds the host's hover signal straight into the element's
	// state, bypassing scripts. Allowed in any phase.
	//
	// Parameters:
	//   - id: the element under the pointer
	//   - hovered: whether the pointer is over it
	SetHovered(id element.ID, hovered bool)

	// SetPressed feeds the host's press signal straight into the element's
	// state, bypassing scripts. Allowed in any phase.
	//
	// Parameters:
	//   - id: the pressed element
	//   - pressed: whether the press is currently down
	SetPressed(id element.ID, pressed bool)

	// SetSnapshot stores the latest external progress snapshot. It is
	// normalized and published with the next Update tick.
	//
	// Parameters:
	//   - snapshot: the externally derived progress values
	SetSnapshot(snapshot metrics.Snapshot)

	// SetHeaderCallback registers the host's header-swap hook, invoked when
	// a zoom script reaches its header step. Called with focused=true when
	// an element takes over and focused=false when the return begins. The
	// callback runs outside the choreographer's lock.
	//
	// Parameters:
	//   - fn: the hook, or nil to clear it
	SetHeaderCallback(fn func(target element.ID, focused bool))

	// Phase returns the current primary phase tag.
	Phase() Phase

	// Transition returns the zoom state machine's current state.
	Transition() TransitionState

	// EntryComplete reports whether the entry cascade has finished. Hosts
	// gate input on it.
	EntryComplete() bool

	// SecondaryCount returns the number of secondary orbs in the roster.
	SecondaryCount() int
}

// snapshotTable is one tick's immutable publication. A new table is built
// and swapped in atomically each Update; readers see either the old or the
// new tick, never a mix.
type snapshotTable struct {
	states   map[element.ID]element.AnimationState
	ambient  element.Ambient
	snapshot metrics.Snapshot
}

type choreographer struct {
	mu sync.Mutex

	clock   Clock
	timings Timings

	secondaries int
	elements    map[element.ID]*elementAnimator

	phase      Phase
	transition TransitionState
	generation uint64
	sched      scheduler

	levelUpActive bool
	xpBurstActive bool

	// ambientSeconds advances only while the ambient loop runs, so
	// breathing and drift freeze during scripts and resume without a jump.
	ambientSeconds float64
	dim            channel
	tint           [4]float32
	tintAmount     channel

	snapshot metrics.Snapshot

	headerFn func(target element.ID, focused bool)
	deferred []func()

	lastUpdate time.Time
	hasUpdated bool

	entryDone atomic.Bool
	published atomic.Pointer[snapshotTable]
}

var _ Choreographer = &choreographer{}

// NewChoreographer creates a choreographer for a roster with the given
// number of secondary orbs. The roster also carries the background, hero
// orb, progress ring, insight panel, detail panel, text glow, and one
// connection line per secondary orb. Everything starts invisible in the
// idle phase.
//
// Parameters:
//   - secondaryCount: number of secondary orbs (negative treated as zero)
//   - options: optional overrides, see choreographer_builder.go
//
// Returns:
//   - Choreographer: the choreographer, ready for StartEntry
func NewChoreographer(secondaryCount int, options ...ChoreographerBuilderOption) Choreographer {
	if secondaryCount < 0 {
		secondaryCount = 0
	}
	c := &choreographer{
		clock:       systemClock{},
		timings:     DefaultTimings(),
		secondaries: secondaryCount,
		elements:    make(map[element.ID]*elementAnimator),
		phase:       PhaseIdle,
		transition:  TransitionState{Kind: TransitionHome},
	}
	for _, opt := range options {
		opt(c)
	}

	for _, id := range c.roster() {
		a := newElementAnimator()
		a.opacity.set(0)
		c.elements[id] = a
	}
	c.dim.set(1)
	c.tintAmount.set(0)

	c.publishLocked()
	return c
}

// roster lists every element this choreographer animates.
func (c *choreographer) roster() []element.ID {
	ids := []element.ID{
		element.Background,
		element.HeroOrb,
		element.ProgressRing,
		element.InsightPanel,
		element.GlassPanel,
		element.TextGlow,
		element.Particles,
	}
	for i := range c.secondaries {
		ids = append(ids, element.SecondaryOrb(i), element.Connection(i))
	}
	return ids
}

func (c *choreographer) Update(now time.Time) {
	c.mu.Lock()

	var dt float64
	if c.hasUpdated && now.After(c.lastUpdate) {
		dt = now.Sub(c.lastUpdate).Seconds()
	}
	c.lastUpdate = now
	c.hasUpdated = true

	for _, m := range c.sched.collectDue(now, c.generation) {
		m.apply()
	}

	if c.ambientRunningLocked() {
		c.ambientSeconds += dt
	}

	for _, a := range c.elements {
		a.advance(now)
	}
	c.dim.advance(now)
	c.tintAmount.advance(now)

	c.publishLocked()

	deferred := c.deferred
	c.deferred = nil
	c.mu.Unlock()

	// Host callbacks run outside the lock so they may call back in.
	for _, fn := range deferred {
		fn()
	}
}

// ambientRunningLocked reports whether the continuous ambient animation is
// live: active phase with no celebration overriding it. Transitions imply a
// non-active phase, so they pause ambient as well.
func (c *choreographer) ambientRunningLocked() bool {
	return c.phase == PhaseActive && !c.levelUpActive && !c.xpBurstActive
}

// publishLocked rebuilds the snapshot table from the current channel values
// plus the ambient overlay and swaps it in for readers.
func (c *choreographer) publishLocked() {
	ambientOn := c.ambientRunningLocked()
	at := float32(c.ambientSeconds)
	breath := c.breathPeriodLocked()

	states := make(map[element.ID]element.AnimationState, len(c.elements))
	for id, a := range c.elements {
		st := a.state()
		if ambientOn {
			st = overlayAmbient(id, st, at, breath)
		}
		states[id] = st
	}

	glowPeriod := float32(c.timings.GlowPeriod.Seconds())
	ambient := element.Ambient{
		Time:          at,
		GlowIntensity: 0.5 + 0.5*common.Sin32(2*math.Pi*at/glowPeriod),
		HueDrift:      at * hueDriftRate,
		Dim:           c.dim.value,
		Tint:          c.tint,
		TintAmount:    c.tintAmount.value,
	}

	c.published.Store(&snapshotTable{
		states:   states,
		ambient:  ambient,
		snapshot: c.snapshot,
	})
}

// breathPeriodLocked derives the breathing period from the biometric
// scalar: a livelier biometric breathes faster.
func (c *choreographer) breathPeriodLocked() float32 {
	base := float32(c.timings.BreathPeriod.Seconds())
	return base * (1 - 0.35*float32(c.snapshot.Biometric))
}

// overlayAmbient layers breathing and drift over an element's base state.
// The overlay is a pure function of ambient time, never written back to the
// channels, so scripts and ambient motion cannot fight.
func overlayAmbient(id element.ID, st element.AnimationState, at, breath float32) element.AnimationState {
	switch id.Kind {
	case element.KindHeroOrb:
		st.Scale *= 1 + heroBreathAmp*common.Sin32(2*math.Pi*at/breath)
	case element.KindSecondaryOrb:
		phase := float32(id.Index) * 0.9
		st.Scale *= 1 + secondaryBreathAmp*common.Sin32(2*math.Pi*at/breath+phase)
		dir := float32(1)
		if id.Index%2 == 1 {
			dir = -1
		}
		st.Rotation += dir * secondaryDriftRate * at
	}
	return st
}

func (c *choreographer) ElementState(id element.ID) element.AnimationState {
	if t := c.published.Load(); t != nil {
		return t.states[id]
	}
	return element.AnimationState{}
}

func (c *choreographer) Ambient() element.Ambient {
	if t := c.published.Load(); t != nil {
		return t.ambient
	}
	return element.Ambient{Dim: 1}
}

func (c *choreographer) Metrics() metrics.Snapshot {
	if t := c.published.Load(); t != nil {
		return t.snapshot
	}
	return metrics.Snapshot{}
}

// at schedules one script step. The closure receives the step's deadline as
// its time base so tween durations stay exact even when a tick fires late.
func (c *choreographer) at(start time.Time, offset time.Duration, generation uint64, apply func(stepTime time.Time)) {
	deadline := start.Add(offset)
	c.sched.schedule(deadline, generation, func() { apply(deadline) })
}

func (c *choreographer) StartEntry() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseIdle {
		return fmt.Errorf("%w: entry requested while %s", ErrInvalidSequenceRequest, c.phase)
	}

	now := c.clock.Now()
	c.generation++
	gen := c.generation
	c.phase = PhaseEntering
	c.entryDone.Store(false)
	c.interruptCelebrationsLocked(now)
	t := c.timings

	// Wind the springs: everything invisible at its pre-entry pose.
	for id, a := range c.elements {
		a.opacity.set(0)
		a.glow.set(0)
		a.pulse.set(0)
		a.rotation.set(0)
		a.offsetX.set(0)
		a.offsetY.set(0)
		switch id.Kind {
		case element.KindHeroOrb:
			a.scale.set(0.3)
		case element.KindSecondaryOrb:
			a.scale.set(0.2)
		case element.KindInsightPanel:
			a.scale.set(1)
			a.offsetY.set(0.08)
		default:
			a.scale.set(1)
		}
	}

	c.at(now, 0, gen, func(st time.Time) {
		c.elements[element.Background].opacity.animate(st, 1, t.EntryBackgroundFade, easeOutQuad)
		c.elements[element.Particles].opacity.animate(st, 1, t.EntryBackgroundFade, easeOutQuad)
	})
	c.at(now, t.EntryHeroDelay, gen, func(st time.Time) {
		hero := c.elements[element.HeroOrb]
		hero.opacity.animate(st, 1, t.EntryHeroDuration, easeOutQuad)
		hero.scale.animate(st, 1, t.EntryHeroDuration, common.EaseOutBack)
	})
	c.at(now, t.EntryRingDelay, gen, func(st time.Time) {
		c.elements[element.ProgressRing].opacity.animate(st, 1, t.EntryRingDuration, easeOutQuad)
		c.elements[element.TextGlow].opacity.animate(st, 1, t.EntryRingDuration, easeOutQuad)
	})
	for i := range c.secondaries {
		c.at(now, t.EntrySecondaryDelay+time.Duration(i)*t.EntrySecondaryStagger, gen, func(st time.Time) {
			orb := c.elements[element.SecondaryOrb(i)]
			orb.opacity.animate(st, 1, t.EntrySecondaryDuration, easeOutQuad)
			orb.scale.animate(st, 1, t.EntrySecondaryDuration, common.EaseOutBack)
			c.elements[element.Connection(i)].opacity.animate(st, 1, t.EntrySecondaryDuration, easeOutQuad)
		})
	}
	c.at(now, t.EntryInsightDelay, gen, func(st time.Time) {
		panel := c.elements[element.InsightPanel]
		panel.opacity.animate(st, 1, t.EntryInsightDuration, common.EaseOutCubic)
		panel.offsetY.animate(st, 0, t.EntryInsightDuration, common.EaseOutCubic)
	})
	c.at(now, t.entryCompleteAfter(c.secondaries), gen, func(st time.Time) {
		c.phase = PhaseActive
		c.entryDone.Store(true)
		c.elements[element.HeroOrb].pulse.animate(st, 1, t.PulseRamp, easeLinear)
	})

	return nil
}

func (c *choreographer) StartExit() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseActive {
		return fmt.Errorf("%w: exit requested while %s", ErrInvalidSequenceRequest, c.phase)
	}

	now := c.clock.Now()
	c.generation++
	gen := c.generation
	c.phase = PhaseExiting
	c.entryDone.Store(false)
	c.interruptCelebrationsLocked(now)
	t := c.timings

	c.at(now, 0, gen, func(st time.Time) {
		panel := c.elements[element.InsightPanel]
		panel.opacity.animate(st, 0, t.ExitInsightDuration, easeInCubic)
		panel.offsetY.animate(st, 0.06, t.ExitInsightDuration, easeInCubic)
	})
	for i := range c.secondaries {
		reverse := c.secondaries - 1 - i
		c.at(now, t.ExitSecondaryDelay+time.Duration(reverse)*t.ExitSecondaryStagger, gen, func(st time.Time) {
			orb := c.elements[element.SecondaryOrb(i)]
			orb.opacity.animate(st, 0, t.ExitSecondaryDuration, easeInCubic)
			orb.scale.animate(st, 0.6, t.ExitSecondaryDuration, easeInCubic)
			c.elements[element.Connection(i)].opacity.animate(st, 0, t.ExitSecondaryDuration, easeInCubic)
		})
	}
	c.at(now, t.ExitHeroDelay, gen, func(st time.Time) {
		hero := c.elements[element.HeroOrb]
		hero.opacity.animate(st, 0, t.ExitHeroDuration, easeInCubic)
		hero.scale.animate(st, 0.85, t.ExitHeroDuration, easeInCubic)
		hero.pulse.animate(st, 0, t.ExitHeroDuration, easeLinear)
		c.elements[element.ProgressRing].opacity.animate(st, 0, t.ExitHeroDuration, easeInCubic)
		c.elements[element.TextGlow].opacity.animate(st, 0, t.ExitHeroDuration, easeInCubic)
	})
	c.at(now, t.ExitBackgroundDelay, gen, func(st time.Time) {
		c.elements[element.Background].opacity.animate(st, 0, t.ExitBackgroundFade, easeInCubic)
		c.elements[element.Particles].opacity.animate(st, 0, t.ExitBackgroundFade, easeInCubic)
	})
	c.at(now, t.exitCompleteAfter(c.secondaries), gen, func(time.Time) {
		c.phase = PhaseIdle
	})

	return nil
}

func (c *choreographer) ZoomTo(id element.ID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if id.Kind != element.KindSecondaryOrb || id.Index < 0 || id.Index >= c.secondaries {
		return fmt.Errorf("%w: cannot zoom to %s", ErrInvalidSequenceRequest, id)
	}
	if c.phase != PhaseActive || c.transition.Kind != TransitionHome {
		return fmt.Errorf("%w: zoom to %s requested while %s", ErrInvalidSequenceRequest, id, c.transition)
	}

	now := c.clock.Now()
	c.generation++
	gen := c.generation
	c.phase = PhaseTransitioning
	c.transition = TransitionState{Kind: TransitionTo, Target: id}
	c.interruptCelebrationsLocked(now)
	t := c.timings
	target := c.elements[id]

	c.at(now, t.ZoomOffsets[0], gen, func(st time.Time) {
		target.scale.animate(st, 1.12, t.ZoomBumpDuration, common.EaseOutBack)
		target.glow.animate(st, 0.4, t.ZoomBumpDuration, easeOutQuad)
	})
	c.at(now, t.ZoomOffsets[1], gen, func(st time.Time) {
		for i := range c.secondaries {
			if i == id.Index {
				continue
			}
			orb := c.elements[element.SecondaryOrb(i)]
			orb.opacity.animate(st, 0.15, t.ZoomRecedeDuration, easeOutQuad)
			orb.scale.animate(st, 0.9, t.ZoomRecedeDuration, easeOutQuad)
		}
	})
	c.at(now, t.ZoomOffsets[2], gen, func(st time.Time) {
		for i := range c.secondaries {
			c.elements[element.Connection(i)].opacity.animate(st, 0, t.ZoomLineFade, easeOutQuad)
		}
		c.elements[element.ProgressRing].opacity.animate(st, 0, t.ZoomLineFade, easeOutQuad)
	})
	c.at(now, t.ZoomOffsets[3], gen, func(st time.Time) {
		target.scale.animate(st, element.MaxScale, t.ZoomExpandDuration, easeInOutCubic)
		hero := c.elements[element.HeroOrb]
		hero.opacity.animate(st, 0, t.ZoomHeroFade, easeInCubic)
		hero.pulse.animate(st, 0, t.ZoomHeroFade, easeLinear)
	})
	c.at(now, t.ZoomOffsets[4], gen, func(st time.Time) {
		c.tint = metrics.IdentityColor(id.Index, c.secondaries)
		c.tintAmount.animate(st, 0.6, t.ZoomTintDuration, easeOutQuad)
	})
	c.at(now, t.ZoomOffsets[5], gen, func(st time.Time) {
		panel := c.elements[element.InsightPanel]
		panel.opacity.animate(st, 0, t.ZoomInsightSlide, easeInCubic)
		panel.offsetY.animate(st, 0.12, t.ZoomInsightSlide, easeInCubic)
	})
	c.at(now, t.ZoomOffsets[6], gen, func(st time.Time) {
		detail := c.elements[element.GlassPanel]
		detail.offsetY.set(0.06)
		detail.opacity.animate(st, 1, t.ZoomPanelFade, common.EaseOutCubic)
		detail.offsetY.animate(st, 0, t.ZoomPanelFade, common.EaseOutCubic)
	})
	c.at(now, t.ZoomOffsets[7], gen, func(time.Time) {
		c.transition = TransitionState{Kind: TransitionShowing, Target: id}
		c.deferHeaderLocked(id, true)
	})

	return nil
}

func (c *choreographer) ReturnHome() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.transition.Kind != TransitionShowing {
		return fmt.Errorf("%w: return requested while %s", ErrInvalidSequenceRequest, c.transition)
	}

	now := c.clock.Now()
	c.generation++
	gen := c.generation
	id := c.transition.Target
	c.transition = TransitionState{Kind: TransitionReturning, Target: id}
	t := c.timings
	target := c.elements[id]

	c.at(now, t.ReturnOffsets[0], gen, func(st time.Time) {
		detail := c.elements[element.GlassPanel]
		detail.opacity.animate(st, 0, t.ReturnPanelFade, easeInCubic)
		detail.offsetY.animate(st, 0.06, t.ReturnPanelFade, easeInCubic)
		c.deferHeaderLocked(id, false)
	})
	c.at(now, t.ReturnOffsets[1], gen, func(st time.Time) {
		target.scale.animate(st, 1, t.ReturnContract, common.EaseOutCubic)
		target.glow.animate(st, 0, t.ReturnContract, easeOutQuad)
		c.tintAmount.animate(st, 0, t.ReturnTintFade, easeOutQuad)
	})
	c.at(now, t.ReturnOffsets[2], gen, func(st time.Time) {
		hero := c.elements[element.HeroOrb]
		hero.opacity.animate(st, 1, t.ReturnRestore, easeOutQuad)
		hero.pulse.animate(st, 1, t.ReturnRestore, easeLinear)
		c.elements[element.ProgressRing].opacity.animate(st, 1, t.ReturnRestore, easeOutQuad)
		c.elements[element.TextGlow].opacity.animate(st, 1, t.ReturnRestore, easeOutQuad)
		for i := range c.secondaries {
			if i != id.Index {
				orb := c.elements[element.SecondaryOrb(i)]
				orb.opacity.animate(st, 1, t.ReturnRestore, easeOutQuad)
				orb.scale.animate(st, 1, t.ReturnRestore, easeOutQuad)
			}
			c.elements[element.Connection(i)].opacity.animate(st, 1, t.ReturnRestore, easeOutQuad)
		}
	})
	c.at(now, t.ReturnOffsets[3], gen, func(st time.Time) {
		panel := c.elements[element.InsightPanel]
		panel.opacity.animate(st, 1, t.ReturnInsightBack, common.EaseOutCubic)
		panel.offsetY.animate(st, 0, t.ReturnInsightBack, common.EaseOutCubic)
	})
	c.at(now, t.ReturnOffsets[4], gen, func(time.Time) {
		c.transition = TransitionState{Kind: TransitionHome}
		c.phase = PhaseActive
	})

	return nil
}

func (c *choreographer) TriggerLevelUp() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.levelUpActive || c.phase != PhaseActive {
		return
	}
	c.levelUpActive = true

	now := c.clock.Now()
	gen := c.generation
	t := c.timings
	hero := c.elements[element.HeroOrb]

	c.at(now, 0, gen, func(st time.Time) {
		c.dim.animate(st, 0.55, t.LevelUpDimDuration, easeInOutCubic)
	})
	c.at(now, t.LevelUpFlashAt, gen, func(st time.Time) {
		c.dim.animate(st, 1, t.LevelUpFlashDuration, easeOutQuad)
		hero.scale.animate(st, 1.35, t.LevelUpFlashDuration, common.EaseOutBack)
		hero.glow.animate(st, 1, t.LevelUpFlashDuration, easeOutQuad)
	})
	c.at(now, t.LevelUpSettleAt, gen, func(st time.Time) {
		hero.scale.animate(st, 1, t.LevelUpSettleDuration, common.EaseOutBack)
		hero.glow.animate(st, 0, t.LevelUpSettleDuration, common.EaseOutCubic)
	})
	c.at(now, t.LevelUpClearAt, gen, func(time.Time) {
		c.levelUpActive = false
	})
}

func (c *choreographer) TriggerXPBurst() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.xpBurstActive || c.phase != PhaseActive {
		return
	}
	c.xpBurstActive = true

	now := c.clock.Now()
	gen := c.generation
	t := c.timings
	ring := c.elements[element.ProgressRing]

	c.at(now, 0, gen, func(st time.Time) {
		ring.glow.animate(st, 0.8, t.XPBurstBumpDuration, easeOutQuad)
		ring.scale.animate(st, 1.06, t.XPBurstBumpDuration, common.EaseOutBack)
	})
	c.at(now, t.XPBurstSettleAt, gen, func(st time.Time) {
		ring.glow.animate(st, 0, t.XPBurstSettleDuration, common.EaseOutCubic)
		ring.scale.animate(st, 1, t.XPBurstSettleDuration, common.EaseOutBack)
	})
	c.at(now, t.XPBurstClearAt, gen, func(time.Time) {
		c.xpBurstActive = false
	})
}

// interruptCelebrationsLocked cuts any running celebration short when a
// top-level sequence takes over. The sequence's generation bump already
// cancels the celebration's pending steps; this clears the flags and snaps
// the values they were holding.
func (c *choreographer) interruptCelebrationsLocked(now time.Time) {
	if !c.levelUpActive && !c.xpBurstActive {
		return
	}
	d := c.timings.CelebrationInterrupt
	if c.levelUpActive {
		c.levelUpActive = false
		c.elements[element.HeroOrb].glow.animate(now, 0, d, easeOutQuad)
	}
	if c.xpBurstActive {
		c.xpBurstActive = false
		c.elements[element.ProgressRing].glow.animate(now, 0, d, easeOutQuad)
	}
	c.dim.animate(now, 1, d, easeOutQuad)
}

func (c *choreographer) SetHovered(id element.ID, hovered bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	a, ok := c.elements[id]
	if !ok {
		return
	}
	now := c.clock.Now()
	t := c.timings
	if hovered {
		a.glow.animate(now, 0.35, t.HoverInDuration, easeOutQuad)
		a.scale.animate(now, 1.06, t.HoverInDuration, easeOutQuad)
		if id.Kind == element.KindSecondaryOrb {
			a.pulse.animate(now, 1, t.HoverInDuration, easeLinear)
		}
		return
	}
	a.glow.animate(now, 0, t.HoverOutDuration, easeOutQuad)
	a.scale.animate(now, 1, t.HoverOutDuration, easeOutQuad)
	if id.Kind == element.KindSecondaryOrb {
		a.pulse.animate(now, 0, t.HoverOutDuration, easeLinear)
	}
}

func (c *choreographer) SetPressed(id element.ID, pressed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	a, ok := c.elements[id]
	if !ok {
		return
	}
	now := c.clock.Now()
	if pressed {
		a.scale.animate(now, 0.94, c.timings.PressDuration, easeOutQuad)
		return
	}
	a.scale.animate(now, 1, c.timings.ReleaseDuration, common.EaseOutBack)
}

func (c *choreographer) SetSnapshot(snapshot metrics.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = snapshot.Normalized()
}

func (c *choreographer) SetHeaderCallback(fn func(target element.ID, focused bool)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.headerFn = fn
}

// deferHeaderLocked queues the header hook to run after the lock drops.
func (c *choreographer) deferHeaderLocked(target element.ID, focused bool) {
	fn := c.headerFn
	if fn == nil {
		return
	}
	c.deferred = append(c.deferred, func() { fn(target, focused) })
}

func (c *choreographer) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

func (c *choreographer) Transition() TransitionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transition
}

func (c *choreographer) EntryComplete() bool {
	return c.entryDone.Load()
}

func (c *choreographer) SecondaryCount() int {
	return c.secondaries
}
