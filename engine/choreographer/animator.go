package choreographer

import (
	"time"

	"github.com/euansprr-dev/CosmoNative-sub007/engine/element"
	"github.com/go-gl/mathgl/mgl32"
)

// tween moves one channel from a captured start value to a target over a
// fixed duration.
type tween struct {
	start    time.Time
	duration time.Duration
	from     float32
	to       float32
	ease     easeFunc
}

// channel is one animatable scalar: a current value plus at most one
// in-flight tween. Starting a new tween replaces the old one from the
// current value, so interruptions pick up mid-flight instead of jumping.
type channel struct {
	value float32
	tw    *tween
}

// set snaps the channel to v and cancels any in-flight tween.
func (c *channel) set(v float32) {
	c.value = v
	c.tw = nil
}

// animate tweens the channel from its current value to target. A zero or
// negative duration snaps immediately.
func (c *channel) animate(now time.Time, target float32, d time.Duration, ease easeFunc) {
	if d <= 0 {
		c.set(target)
		return
	}
	c.tw = &tween{
		start:    now,
		duration: d,
		from:     c.value,
		to:       target,
		ease:     ease,
	}
}

// advance moves the channel along its tween, clearing the tween once the
// duration has elapsed. Tween start times may sit slightly in the future
// when a script step fires early in a tick; progress is clamped at zero.
func (c *channel) advance(now time.Time) {
	if c.tw == nil {
		return
	}
	elapsed := now.Sub(c.tw.start)
	if elapsed >= c.tw.duration {
		c.value = c.tw.to
		c.tw = nil
		return
	}
	if elapsed < 0 {
		elapsed = 0
	}
	t := float32(elapsed.Seconds() / c.tw.duration.Seconds())
	c.value = c.tw.from + (c.tw.to-c.tw.from)*c.tw.ease(t)
}

// elementAnimator owns the tweened base state of one element. The ambient
// loop's breathing and drift are computed at snapshot build and never stored
// here, so scripts and ambient animation cannot fight over a channel.
type elementAnimator struct {
	opacity  channel
	scale    channel
	offsetX  channel
	offsetY  channel
	rotation channel
	glow     channel
	pulse    channel
}

func newElementAnimator() *elementAnimator {
	a := &elementAnimator{}
	a.scale.set(1)
	return a
}

func (a *elementAnimator) advance(now time.Time) {
	a.opacity.advance(now)
	a.scale.advance(now)
	a.offsetX.advance(now)
	a.offsetY.advance(now)
	a.rotation.advance(now)
	a.glow.advance(now)
	a.pulse.advance(now)
}

// state builds the element's base snapshot from the current channel values.
func (a *elementAnimator) state() element.AnimationState {
	return element.AnimationState{
		Opacity:   a.opacity.value,
		Scale:     a.scale.value,
		Offset:    mgl32.Vec2{a.offsetX.value, a.offsetY.value},
		Rotation:  a.rotation.value,
		GlowBoost: a.glow.value,
		Pulse:     a.pulse.value,
	}
}
