package math

import (
	m "math"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/exp/constraints"
)

// Clamp returns the value `f` clamped to the range [low, high].
// It works for any numeric type (integers and floats).
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// Wrap returns x modulo y using floored division, so the result has the sign of y.
// Wrap(-30, 360) is 330, matching GLSL/glm mod. Unlike mod the result never
// reaches y: a tiny negative x that rounds up to y folds to 0.
func Wrap[T constraints.Float](x, y T) T {
	r := x - y*T(m.Floor(float64(x/y)))
	if (y > 0 && r >= y) || (y < 0 && r <= y) {
		return 0
	}
	return r
}

/**
 * @brief Converts provided degrees to radians.
 */
func DegToRad(degrees float32) float32 {
	return mgl32.DegToRad(degrees)
}

/**
 * @brief Converts provided radians to degrees.
 */
func RadToDeg(radians float32) float32 {
	return mgl32.RadToDeg(radians)
}

// RangeConvertFloat32 maps value from [oldMin, oldMax] into [newMin, newMax].
func RangeConvertFloat32(value, oldMin, oldMax, newMin, newMax float32) float32 {
	return (((value - oldMin) * (newMax - newMin)) / (oldMax - oldMin)) + newMin
}

func Vec2IsZero(v mgl32.Vec2) bool {
	return v == mgl32.Vec2{}
}

func Vec3IsZero(v mgl32.Vec3) bool {
	return v == mgl32.Vec3{}
}
