package imagetap

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// BuildBounds computes the image's box in its own local space as seen by
// cam, shifted so that the transform's pivot sits at the local origin.
//
// The half extent is measured as a pixel offset from the viewport center,
// pushed through cam.ScreenToWorld, then divided by the ortho scale.
// ScreenToWorld already applies the ortho scale, so the division cancels it
// and the box stays in canvas units at any zoom.
// TODO: revisit the ortho scale division once cameras with a
// non-unit pixel-per-unit ratio are supported.
func BuildBounds(t Transform, cam Camera) Bounds {
	vp := cam.ViewportRect()
	pw, ph := cam.TargetSize()
	w, h := float64(pw), float64(ph)

	// Viewports hanging off the right/top edge only cover part of their span.
	adjW := math.Min(vp.Width, 1-vp.X)
	adjH := math.Min(vp.Height, 1-vp.Y)

	size := t.Size()
	px := mgl64.Vec3{
		(w+size.X())*(0.5*adjW) + vp.X*w,
		(h+size.Y())*(0.5*adjH) + vp.Y*h,
		0,
	}
	half := cam.ScreenToWorld(px)
	if s := cam.OrthoScale(); s != 0 {
		half = half.Mul(1 / s)
	}
	half = mgl64.Vec3{math.Abs(half.X()), math.Abs(half.Y()), 0}

	off := pivotOffset(t.Pivot(), half)
	return Bounds{
		Min: mgl64.Vec3{-half.X() - off.X(), -half.Y() - off.Y(), 0},
		Max: mgl64.Vec3{half.X() - off.X(), half.Y() - off.Y(), 0},
	}
}

// pivotOffset remaps a [0, 1] pivot into [-half, half].
func pivotOffset(pivot mgl64.Vec2, half mgl64.Vec3) mgl64.Vec2 {
	return mgl64.Vec2{
		(pivot.X()*2 - 1) * half.X(),
		(pivot.Y()*2 - 1) * half.Y(),
	}
}
