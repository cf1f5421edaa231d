package imagetap

import "github.com/go-gl/mathgl/mgl64"

// IsHit reports whether a viewport-relative tap lands on the image.
// b must come from BuildBounds for the same transform and camera.
//
// The unprojected tap carries no useful depth, so its world Z is replaced by
// the image's own Z before moving it into image-local space. The box test
// works for rotated images because it happens in local space.
func IsHit(t Transform, cam Camera, viewportTap mgl64.Vec3, b Bounds) bool {
	imgPos := t.WorldPosition()

	world := cam.ViewportToWorld(viewportTap)
	world[2] = imgPos.Z()
	local := mgl64.TransformCoordinate(world, invertMat4(t.WorldMatrix()))

	inQuad := b.ContainsXY(local)
	inView := inViewPlanes(cam, cam.WorldToView(imgPos).Z())
	return inQuad && inView
}

// inViewPlanes only checks depth; the box test covers the other sides.
func inViewPlanes(cam Camera, depth float64) bool {
	near, far := cam.ClipPlanes()
	return InPlaneRange(depth, near, far)
}
