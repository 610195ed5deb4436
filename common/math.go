package common

import (
	"math"
	"unsafe"
)

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// StructToBytes reinterprets a pointer to a struct as a raw byte slice using unsafe.
// The returned slice has length equal to the struct's size in memory.
//
// Parameters:
//   - v: pointer to the struct to reinterpret
//
// Returns:
//   - []byte: byte slice view of the struct's memory
func StructToBytes[T any](v *T) []byte {
	size := unsafe.Sizeof(*v)
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(size))
}

// Clamp constrains v to the inclusive range [lo, hi].
//
// Parameters:
//   - v: value to constrain
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - float32: v limited to [lo, hi]
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp linearly interpolates between a and b by t. t is not clamped.
//
// Parameters:
//   - a: start value (t = 0)
//   - b: end value (t = 1)
//   - t: interpolation factor
//
// Returns:
//   - float32: the interpolated value
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// SmoothStep maps t through the cubic Hermite blend 3t^2 - 2t^3.
// Values outside [0, 1] are clamped before blending.
//
// Parameters:
//   - t: input factor
//
// Returns:
//   - float32: the blended factor in [0, 1]
func SmoothStep(t float32) float32 {
	t = Clamp(t, 0, 1)
	return t * t * (3 - 2*t)
}

// EaseOutCubic decelerates toward the end value: 1 - (1-t)^3.
// Used for fades and slides that should land softly.
//
// Parameters:
//   - t: input factor in [0, 1] (clamped)
//
// Returns:
//   - float32: the eased factor in [0, 1]
func EaseOutCubic(t float32) float32 {
	t = Clamp(t, 0, 1)
	inv := 1 - t
	return 1 - inv*inv*inv
}

// EaseOutBack overshoots past 1.0 before settling, giving a spring-like pop.
// Peak overshoot is roughly 1.1 near t = 0.7.
// Reference: https://easings.net/#easeOutBack
//
// Parameters:
//   - t: input factor in [0, 1] (clamped)
//
// Returns:
//   - float32: the eased factor, may briefly exceed 1.0
func EaseOutBack(t float32) float32 {
	t = Clamp(t, 0, 1)
	const c1 = 1.70158
	const c3 = c1 + 1
	u := t - 1
	return 1 + c3*u*u*u + c1*u*u
}

// Fract returns the fractional part of v, always in [0, 1) for any sign of v.
//
// Parameters:
//   - v: input value
//
// Returns:
//   - float32: v minus floor(v)
func Fract(v float32) float32 {
	return v - float32(math.Floor(float64(v)))
}

// Sin32 is a float32 convenience wrapper around math.Sin.
func Sin32(v float32) float32 {
	return float32(math.Sin(float64(v)))
}

// Cos32 is a float32 convenience wrapper around math.Cos.
func Cos32(v float32) float32 {
	return float32(math.Cos(float64(v)))
}
