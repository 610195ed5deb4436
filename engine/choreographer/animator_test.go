package choreographer

import (
	"testing"
	"time"
)

func TestChannelAnimateReachesTargetExactly(t *testing.T) {
	var c channel
	base := time.Unix(0, 0)
	c.animate(base, 1, time.Second, easeLinear)

	c.advance(base.Add(500 * time.Millisecond))
	if c.value < 0.49 || c.value > 0.51 {
		t.Errorf("value = %v at midpoint, want ~0.5", c.value)
	}
	c.advance(base.Add(2 * time.Second))
	if c.value != 1 {
		t.Errorf("value = %v after duration, want exactly 1", c.value)
	}
	if c.tw != nil {
		t.Error("tween not cleared after completion")
	}
}

func TestChannelRetargetPicksUpMidFlight(t *testing.T) {
	var c channel
	base := time.Unix(0, 0)
	c.animate(base, 1, time.Second, easeLinear)
	c.advance(base.Add(600 * time.Millisecond))
	mid := c.value

	// Retargeting starts from the current value, no jump.
	c.animate(base.Add(600*time.Millisecond), 0, time.Second, easeLinear)
	c.advance(base.Add(600 * time.Millisecond))
	if c.value != mid {
		t.Errorf("value jumped on retarget: %v -> %v", mid, c.value)
	}
	c.advance(base.Add(1100 * time.Millisecond))
	if c.value >= mid {
		t.Errorf("value = %v after retarget, want below %v", c.value, mid)
	}
}

func TestChannelSnapOnZeroDuration(t *testing.T) {
	var c channel
	c.animate(time.Unix(0, 0), 0.7, 0, easeOutQuad)
	if c.value != 0.7 || c.tw != nil {
		t.Errorf("value = %v tw = %v, want immediate snap", c.value, c.tw)
	}
}

func TestChannelAdvanceBeforeStartHoldsValue(t *testing.T) {
	var c channel
	c.set(0.3)
	base := time.Unix(0, 0)
	// Script steps capture their deadline as the tween start, which can sit
	// a tick ahead of the update that applied them.
	c.animate(base.Add(50*time.Millisecond), 1, time.Second, easeLinear)
	c.advance(base)
	if c.value != 0.3 {
		t.Errorf("value = %v before tween start, want held at 0.3", c.value)
	}
}

func TestSetCancelsTween(t *testing.T) {
	var c channel
	base := time.Unix(0, 0)
	c.animate(base, 1, time.Second, easeLinear)
	c.set(0.2)
	c.advance(base.Add(time.Second))
	if c.value != 0.2 {
		t.Errorf("value = %v after set, want 0.2 with tween cancelled", c.value)
	}
}

func TestAnimatorStateMapsAllChannels(t *testing.T) {
	a := newElementAnimator()
	a.opacity.set(0.5)
	a.scale.set(1.2)
	a.offsetX.set(0.1)
	a.offsetY.set(-0.2)
	a.rotation.set(0.7)
	a.glow.set(0.3)
	a.pulse.set(1)

	st := a.state()
	if st.Opacity != 0.5 || st.Scale != 1.2 || st.Rotation != 0.7 {
		t.Errorf("state = %+v, want channel values carried over", st)
	}
	if st.Offset.X() != 0.1 || st.Offset.Y() != -0.2 {
		t.Errorf("offset = %v, want {0.1, -0.2}", st.Offset)
	}
	if st.GlowBoost != 0.3 || st.Pulse != 1 {
		t.Errorf("glow/pulse = %v/%v, want 0.3/1", st.GlowBoost, st.Pulse)
	}
}

func TestEaseCurvesHitEndpoints(t *testing.T) {
	for _, tc := range []struct {
		name string
		fn   easeFunc
	}{
		{"linear", easeLinear},
		{"outQuad", easeOutQuad},
		{"inCubic", easeInCubic},
		{"inOutCubic", easeInOutCubic},
	} {
		if got := tc.fn(0); got != 0 {
			t.Errorf("%s(0) = %v, want 0", tc.name, got)
		}
		if got := tc.fn(1); got != 1 {
			t.Errorf("%s(1) = %v, want 1", tc.name, got)
		}
	}
}
