package choreographer

// easeFunc maps normalized tween progress t in [0, 1] to an eased fraction.
// Results past 1 are allowed (common.EaseOutBack overshoots); renderers clamp
// final values against the documented bounds before building uniforms.
//
// The curves shared with shader-side math live in the common package; only
// the script-specific ones are defined here.
type easeFunc func(t float32) float32

func easeLinear(t float32) float32 {
	return t
}

func easeOutQuad(t float32) float32 {
	u := 1 - t
	return 1 - u*u
}

func easeInCubic(t float32) float32 {
	return t * t * t
}

func easeInOutCubic(t float32) float32 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}
