// package metrics defines the value objects consumed from the external
// progress service and the palette math that turns them into shader colors.
// Nothing here is persisted; snapshots arrive from the host, colors leave as
// RGBA arrays ready for uniform blocks.
package metrics

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Snapshot is the externally supplied progress state driving animation timing
// and color. It is an immutable in-process value; the engine never derives or
// stores the numbers itself.
type Snapshot struct {
	// Level is the user's current level; selects the orb palette.
	Level int

	// XPProgress is the fill fraction of the progress ring, in [0, 1].
	XPProgress float64

	// Intensity is the health/intensity scalar in [0, 1]; scales glow.
	Intensity float64

	// Biometric is the live biometric scalar in [0, 1] (e.g. normalized
	// heart-rate variability); tunes ambient breathing period.
	Biometric float64
}

// Normalized returns the snapshot with all fractional fields clamped to
// [0, 1] and a non-negative level.
//
// Returns:
//   - Snapshot: the clamped copy
func (s Snapshot) Normalized() Snapshot {
	if s.Level < 0 {
		s.Level = 0
	}
	s.XPProgress = clamp01(s.XPProgress)
	s.Intensity = clamp01(s.Intensity)
	s.Biometric = clamp01(s.Biometric)
	return s
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

// levelHue maps a level to its base hue in degrees. Consecutive levels step
// around the wheel so a level-up reads as a clear color change.
func levelHue(level int) float64 {
	return math.Mod(205+24*float64(level), 360)
}

// LevelColors derives the orb's three-color palette for a level: a bright
// core, the mid body tone, and a darker edge shifted slightly in hue.
// Deterministic per level, so callers cache the result until the level
// changes.
//
// Parameters:
//   - level: the user's current level
//
// Returns:
//   - core: RGBA center glow color
//   - mid: RGBA body color
//   - edge: RGBA rim color
func LevelColors(level int) (core, mid, edge [4]float32) {
	h := levelHue(level)
	core = rgba(colorful.Hsv(h, 0.30, 1.00), 1)
	mid = rgba(colorful.Hsv(h, 0.62, 0.86), 1)
	edge = rgba(colorful.Hsv(math.Mod(h+22, 360), 0.78, 0.42), 1)
	return core, mid, edge
}

// IdentityColor returns the hue-spaced identity color of the index-th
// secondary element out of total. The zoom transition tints the background
// toward this color.
//
// Parameters:
//   - index: the element index in [0, total)
//   - total: number of secondary elements (values < 1 treated as 1)
//
// Returns:
//   - [4]float32: the RGBA identity color
func IdentityColor(index, total int) [4]float32 {
	if total < 1 {
		total = 1
	}
	h := math.Mod(30+360*float64(index)/float64(total), 360)
	return rgba(colorful.Hsv(h, 0.55, 0.92), 1)
}

// IdentityOrbColors derives the three-color orb palette for the index-th
// secondary orb, built around its identity hue the same way LevelColors
// builds the hero palette around the level hue.
//
// Parameters:
//   - index: the orb index in [0, total)
//   - total: number of secondary orbs (values < 1 treated as 1)
//
// Returns:
//   - core: RGBA center glow color
//   - mid: RGBA body color
//   - edge: RGBA rim color
func IdentityOrbColors(index, total int) (core, mid, edge [4]float32) {
	if total < 1 {
		total = 1
	}
	h := math.Mod(30+360*float64(index)/float64(total), 360)
	core = rgba(colorful.Hsv(h, 0.28, 0.98), 1)
	mid = rgba(colorful.Hsv(h, 0.55, 0.80), 1)
	edge = rgba(colorful.Hsv(math.Mod(h+18, 360), 0.70, 0.38), 1)
	return core, mid, edge
}

// AuroraColors derives the three band colors for the background from a level
// palette: analogous hues around the level hue at low saturation, so the
// backdrop reads as atmosphere rather than competing with the orbs.
//
// Parameters:
//   - level: the user's current level
//
// Returns:
//   - [3][4]float32: the three RGBA band colors
func AuroraColors(level int) [3][4]float32 {
	h := levelHue(level)
	return [3][4]float32{
		rgba(colorful.Hsv(math.Mod(h+330, 360), 0.45, 0.55), 1),
		rgba(colorful.Hsv(h, 0.50, 0.60), 1),
		rgba(colorful.Hsv(math.Mod(h+35, 360), 0.40, 0.50), 1),
	}
}

// BlendTint blends two RGBA colors in Lab space, which keeps perceived
// lightness steady while the zoom transition shifts the background toward an
// element's identity color. Alpha interpolates linearly. t is clamped to
// [0, 1].
//
// Parameters:
//   - from: RGBA start color
//   - to: RGBA end color
//   - t: blend fraction
//
// Returns:
//   - [4]float32: the blended RGBA color
func BlendTint(from, to [4]float32, t float64) [4]float32 {
	t = clamp01(t)
	a := colorful.Color{R: float64(from[0]), G: float64(from[1]), B: float64(from[2])}
	b := colorful.Color{R: float64(to[0]), G: float64(to[1]), B: float64(to[2])}
	c := a.BlendLab(b, t).Clamped()
	alpha := float64(from[3]) + (float64(to[3])-float64(from[3]))*t
	return [4]float32{float32(c.R), float32(c.G), float32(c.B), float32(alpha)}
}

func rgba(c colorful.Color, a float64) [4]float32 {
	c = c.Clamped()
	return [4]float32{float32(c.R), float32(c.G), float32(c.B), float32(a)}
}
