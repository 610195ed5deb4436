package choreographer

import "time"

// Timings is the single table of every scripted offset and duration in the
// choreography. Scripts read offsets from here rather than carrying their
// own constants, so the full timeline is auditable in one place and tests
// can assert against the same values the scripts use.
type Timings struct {
	// Entry script. The background fade starts at zero; everything else is
	// delayed relative to script start.
	EntryBackgroundFade    time.Duration
	EntryHeroDelay         time.Duration
	EntryHeroDuration      time.Duration
	EntryRingDelay         time.Duration
	EntryRingDuration      time.Duration
	EntrySecondaryDelay    time.Duration // first secondary orb
	EntrySecondaryStagger  time.Duration // added per index
	EntrySecondaryDuration time.Duration
	EntryInsightDelay      time.Duration
	EntryInsightDuration   time.Duration

	// Exit script: temporal reverse of entry with shorter durations. The
	// insight panel leaves at zero; secondaries leave highest index first.
	ExitInsightDuration   time.Duration
	ExitSecondaryDelay    time.Duration
	ExitSecondaryStagger  time.Duration
	ExitSecondaryDuration time.Duration
	ExitHeroDelay         time.Duration
	ExitHeroDuration      time.Duration
	ExitBackgroundDelay   time.Duration
	ExitBackgroundFade    time.Duration

	// Zoom-in script step offsets, in order: press bump, others recede,
	// lines fade, expansion + hero fade, background tint, insight slide-out,
	// detail panel fade-in, header swap.
	ZoomOffsets [8]time.Duration

	ZoomBumpDuration   time.Duration
	ZoomRecedeDuration time.Duration
	ZoomLineFade       time.Duration
	ZoomExpandDuration time.Duration
	ZoomHeroFade       time.Duration
	ZoomTintDuration   time.Duration
	ZoomInsightSlide   time.Duration
	ZoomPanelFade      time.Duration

	// Return script step offsets, in order: detail panel out + header swap,
	// contraction + tint fade, hero and siblings restore, insight slide-in,
	// completion. Shorter than the zoom because the return path skips the
	// viewport-fill leg.
	ReturnOffsets [5]time.Duration

	ReturnPanelFade   time.Duration
	ReturnContract    time.Duration
	ReturnTintFade    time.Duration
	ReturnRestore     time.Duration
	ReturnInsightBack time.Duration

	// Level-up celebration: dim build-up, flash with scale overshoot,
	// spring settle, flag clear.
	LevelUpDimDuration    time.Duration
	LevelUpFlashAt        time.Duration
	LevelUpFlashDuration  time.Duration
	LevelUpSettleAt       time.Duration
	LevelUpSettleDuration time.Duration
	LevelUpClearAt        time.Duration

	// XP burst celebration: ring bump then settle, flag clear.
	XPBurstBumpDuration   time.Duration
	XPBurstSettleAt       time.Duration
	XPBurstSettleDuration time.Duration
	XPBurstClearAt        time.Duration

	// CelebrationInterrupt is the quick snap-back applied to dim and glow
	// when a top-level sequence cuts a celebration short.
	CelebrationInterrupt time.Duration

	// PulseRamp fades an orb's shader pulse gate in or out.
	PulseRamp time.Duration

	// Hover and press input tweens, applied outside any script.
	HoverInDuration  time.Duration
	HoverOutDuration time.Duration
	PressDuration    time.Duration
	ReleaseDuration  time.Duration

	// Ambient loop periods. The breathing period is shortened further by
	// the live biometric scalar.
	BreathPeriod time.Duration
	GlowPeriod   time.Duration
}

// DefaultTimings returns the production timing table.
//
// Returns:
//   - Timings: the default offsets and durations
func DefaultTimings() Timings {
	return Timings{
		EntryBackgroundFade:    800 * time.Millisecond,
		EntryHeroDelay:         200 * time.Millisecond,
		EntryHeroDuration:      700 * time.Millisecond,
		EntryRingDelay:         300 * time.Millisecond,
		EntryRingDuration:      500 * time.Millisecond,
		EntrySecondaryDelay:    400 * time.Millisecond,
		EntrySecondaryStagger:  120 * time.Millisecond,
		EntrySecondaryDuration: 600 * time.Millisecond,
		EntryInsightDelay:      900 * time.Millisecond,
		EntryInsightDuration:   500 * time.Millisecond,

		ExitInsightDuration:   300 * time.Millisecond,
		ExitSecondaryDelay:    150 * time.Millisecond,
		ExitSecondaryStagger:  80 * time.Millisecond,
		ExitSecondaryDuration: 350 * time.Millisecond,
		ExitHeroDelay:         500 * time.Millisecond,
		ExitHeroDuration:      400 * time.Millisecond,
		ExitBackgroundDelay:   700 * time.Millisecond,
		ExitBackgroundFade:    500 * time.Millisecond,

		ZoomOffsets: [8]time.Duration{
			0,
			50 * time.Millisecond,
			100 * time.Millisecond,
			200 * time.Millisecond,
			350 * time.Millisecond,
			500 * time.Millisecond,
			700 * time.Millisecond,
			800 * time.Millisecond,
		},
		ZoomBumpDuration:   120 * time.Millisecond,
		ZoomRecedeDuration: 400 * time.Millisecond,
		ZoomLineFade:       300 * time.Millisecond,
		ZoomExpandDuration: 600 * time.Millisecond,
		ZoomHeroFade:       500 * time.Millisecond,
		ZoomTintDuration:   600 * time.Millisecond,
		ZoomInsightSlide:   300 * time.Millisecond,
		ZoomPanelFade:      400 * time.Millisecond,

		ReturnOffsets: [5]time.Duration{
			0,
			80 * time.Millisecond,
			200 * time.Millisecond,
			350 * time.Millisecond,
			500 * time.Millisecond,
		},
		ReturnPanelFade:   200 * time.Millisecond,
		ReturnContract:    450 * time.Millisecond,
		ReturnTintFade:    500 * time.Millisecond,
		ReturnRestore:     400 * time.Millisecond,
		ReturnInsightBack: 400 * time.Millisecond,

		LevelUpDimDuration:    300 * time.Millisecond,
		LevelUpFlashAt:        300 * time.Millisecond,
		LevelUpFlashDuration:  400 * time.Millisecond,
		LevelUpSettleAt:       700 * time.Millisecond,
		LevelUpSettleDuration: 900 * time.Millisecond,
		LevelUpClearAt:        1600 * time.Millisecond,

		XPBurstBumpDuration:   150 * time.Millisecond,
		XPBurstSettleAt:       150 * time.Millisecond,
		XPBurstSettleDuration: 600 * time.Millisecond,
		XPBurstClearAt:        900 * time.Millisecond,

		CelebrationInterrupt: 200 * time.Millisecond,
		PulseRamp:            400 * time.Millisecond,

		HoverInDuration:  150 * time.Millisecond,
		HoverOutDuration: 250 * time.Millisecond,
		PressDuration:    80 * time.Millisecond,
		ReleaseDuration:  250 * time.Millisecond,

		BreathPeriod: 3200 * time.Millisecond,
		GlowPeriod:   5 * time.Second,
	}
}

// entryCompleteAfter returns when the entry script's last tween finishes for
// a roster with n secondary orbs, relative to script start.
func (t Timings) entryCompleteAfter(n int) time.Duration {
	end := max(t.EntryBackgroundFade,
		t.EntryHeroDelay+t.EntryHeroDuration,
		t.EntryRingDelay+t.EntryRingDuration,
		t.EntryInsightDelay+t.EntryInsightDuration)
	if n > 0 {
		last := t.EntrySecondaryDelay + time.Duration(n-1)*t.EntrySecondaryStagger
		end = max(end, last+t.EntrySecondaryDuration)
	}
	return end
}

// exitCompleteAfter returns when the exit script's last tween finishes for a
// roster with n secondary orbs, relative to script start.
func (t Timings) exitCompleteAfter(n int) time.Duration {
	end := max(t.ExitInsightDuration,
		t.ExitHeroDelay+t.ExitHeroDuration,
		t.ExitBackgroundDelay+t.ExitBackgroundFade)
	if n > 0 {
		last := t.ExitSecondaryDelay + time.Duration(n-1)*t.ExitSecondaryStagger
		end = max(end, last+t.ExitSecondaryDuration)
	}
	return end
}
