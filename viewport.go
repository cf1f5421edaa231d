package imagetap

import "github.com/go-gl/mathgl/mgl64"

// MapToViewport remaps a normalized screen tap into vp's own [0, 1] space.
// It returns false when the tap is not strictly inside vp. Z of the result
// is always 0.
func MapToViewport(tap mgl64.Vec2, vp Rect) (mgl64.Vec3, bool) {
	if !vp.ContainsStrict(tap) {
		return mgl64.Vec3{}, false
	}
	return mgl64.Vec3{
		InverseLerp(tap.X(), vp.X, vp.X+vp.Width),
		InverseLerp(tap.Y(), vp.Y, vp.Y+vp.Height),
		0,
	}, true
}
