package imagetap

import (
	"iter"

	"github.com/go-gl/mathgl/mgl64"
)

// FindCanvas walks up from t's parent and returns the first canvas found.
func FindCanvas(t Transform) (*Canvas, bool) {
	return findInAncestors(t.ParentTransform(), func(e Entity) (*Canvas, bool) {
		c, ok := e.Component(CanvasComponent)
		if !ok {
			return nil, false
		}
		canvas, ok := c.(*Canvas)
		return canvas, ok
	})
}

// findInAncestors returns the first capability found on t or its ancestors.
func findInAncestors[T any](t Transform, lookup func(Entity) (T, bool)) (T, bool) {
	for ; t != nil; t = t.ParentTransform() {
		if v, ok := lookup(t.Entity()); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// eligibleCameras yields, in entity then attach order, every camera that
// can see layer and whose entity is visible.
func eligibleCameras(scene SceneGraph, layer Layer) iter.Seq[Camera] {
	return func(yield func(Camera) bool) {
		for _, e := range scene.Entities() {
			for _, cam := range e.Cameras() {
				if !cam.IsLayerVisible(layer) || !e.IsVisible() {
					continue
				}
				if !yield(cam) {
					return
				}
			}
		}
	}
}

// ResolveAndTest tests a normalized screen tap (Y up) against t through
// every eligible camera and returns the first camera that confirms a hit.
// An image with no canvas ancestor is never hit.
func ResolveAndTest(scene SceneGraph, t Transform, tap mgl64.Vec2) (Camera, bool) {
	canvas, ok := FindCanvas(t)
	if !ok {
		return nil, false
	}
	for cam := range eligibleCameras(scene, canvas.Layer()) {
		vpTap, ok := MapToViewport(tap, cam.ViewportRect())
		if !ok {
			continue
		}
		b := BuildBounds(t, cam)
		if IsHit(t, cam, vpTap, b) {
			return cam, true
		}
	}
	return nil, false
}
