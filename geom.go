package imagetap

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Bounds is an axis-aligned box in an image's local space.
type Bounds struct {
	Min, Max mgl64.Vec3
}

// ContainsXY reports whether p lies strictly inside the box on X and Y.
// Z is ignored.
func (b Bounds) ContainsXY(p mgl64.Vec3) bool {
	return p.X() > b.Min.X() && p.X() < b.Max.X() &&
		p.Y() > b.Min.Y() && p.Y() < b.Max.Y()
}

// Clamp01 clamps v to [0, 1].
func Clamp01(v float64) float64 {
	return mgl64.Clamp(v, 0, 1)
}

// InverseLerp returns where v sits between a and b, clamped to [0, 1].
// A zero-length span yields 0.
func InverseLerp(v, a, b float64) float64 {
	if a == b {
		return 0
	}
	return Clamp01((v - a) / (b - a))
}

// InPlaneRange reports whether depth d lies in the half-open range
// [near, far).
func InPlaneRange(d, near, far float64) bool {
	return d >= near && d < far
}
