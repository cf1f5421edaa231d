package imagetap

import (
	"reflect"

	"github.com/go-gl/mathgl/mgl64"
)

// ImageTap watches one image and reports, once per tick, whether the last
// touch-begin landed on it.
//
// It holds a single pending tap: a second touch before the next tick
// replaces the first. The pending tap is consumed by the next Update whether
// or not anything was hit.
type ImageTap struct {
	Name string
	// Image supplies the watched image. With a nil source taps are ignored.
	// The source must return an untyped nil when there is no image.
	// Returned values need not be comparable.
	Image ImageSource
	// OnTapped fires after a confirmed hit.
	OnTapped func()

	tapPos  mgl64.Vec2
	pending bool
	tapped  bool

	img        Image
	trans      Transform
	lastCamera Camera
}

// NewImageTap creates a detector watching the image returned by src.
func NewImageTap(name string, src ImageSource) *ImageTap {
	return &ImageTap{Name: name, Image: src}
}

// NewNodeTap creates a detector watching a fixed node.
func NewNodeTap(name string, n *Node) *ImageTap {
	return NewImageTap(name, func() Image { return n })
}

// TouchBegan records a touch at normalized screen (x, y) with y measured
// from the top. It is processed by the next Update.
func (d *ImageTap) TouchBegan(x, y float64) {
	if d.Image == nil {
		return
	}
	d.tapPos = mgl64.Vec2{x, 1 - y}
	d.pending = true
}

// Update runs one tick: it clears the output flag, tests the pending tap
// (if any) against scene and consumes it. It returns the new output flag.
func (d *ImageTap) Update(scene SceneGraph) bool {
	d.tapped = false
	if d.pending {
		d.run(scene)
		d.pending = false
	}
	return d.tapped
}

func (d *ImageTap) run(scene SceneGraph) {
	img := d.Image()
	if img == nil || !img.Entity().IsVisible() {
		return
	}
	if d.trans == nil || !sameImage(d.img, img) {
		d.trans = img.Transform()
		d.img = img
	}

	cam, ok := ResolveAndTest(scene, d.trans, d.tapPos)
	if !ok {
		return
	}
	d.tapped = true
	d.lastCamera = cam
	if d.OnTapped != nil {
		d.OnTapped()
	}
}

// sameImage reports whether a and b are the same image. Images whose
// dynamic value cannot be compared never match, so the cache is refreshed
// on every tap instead of panicking.
func sameImage(a, b Image) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	if !reflect.ValueOf(a).Comparable() || !reflect.ValueOf(b).Comparable() {
		return false
	}
	return a == b
}

// Tapped reports whether the most recent Update confirmed a hit.
func (d *ImageTap) Tapped() bool {
	return d.tapped
}

// Pending reports whether a tap is waiting for the next Update.
func (d *ImageTap) Pending() bool {
	return d.pending
}

// TapPosition returns the last recorded tap, Y measured from the bottom.
func (d *ImageTap) TapPosition() mgl64.Vec2 {
	return d.tapPos
}

// LastCamera returns the camera that confirmed the most recent hit, or nil.
func (d *ImageTap) LastCamera() Camera {
	return d.lastCamera
}
