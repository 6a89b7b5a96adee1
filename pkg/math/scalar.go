package math

import "math"

// Pi as float32.
const Pi = float32(math.Pi)

// Clamp limits v to the range [min, max].
func Clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Wrap01 wraps v into [0, 1), treating the range as cyclic.
func Wrap01(v float32) float32 {
	w := v - float32(math.Floor(float64(v)))
	if w >= 1 {
		return 0
	}
	return w
}

// Abs returns the absolute value of v.
func Abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// Sin returns the sine of x (radians).
func Sin(x float32) float32 {
	return float32(math.Sin(float64(x)))
}

// Cos returns the cosine of x (radians).
func Cos(x float32) float32 {
	return float32(math.Cos(float64(x)))
}

// Acos returns the arccosine of x, with x clamped to [-1, 1] first so that
// accumulated rounding in dot products cannot produce NaN.
func Acos(x float32) float32 {
	return float32(math.Acos(float64(Clamp(x, -1, 1))))
}
