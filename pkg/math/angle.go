package math

import "github.com/chewxy/math32"

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * math32.Pi / 180
}

// WrapAngle wraps an angle in radians into (-Pi, Pi].
func WrapAngle(a float32) float32 {
	for a > math32.Pi {
		a -= 2 * math32.Pi
	}
	for a <= -math32.Pi {
		a += 2 * math32.Pi
	}
	return a
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float32) float32 {
	return clampf(x, lo, hi)
}
