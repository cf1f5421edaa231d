package imagetap

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Rect is an axis-aligned rectangle. Camera viewports use normalized screen
// space: the origin is at the bottom-left and the full screen is (0, 0, 1, 1).
type Rect struct {
	X, Y, Width, Height float64
}

// FullViewport covers the entire screen.
var FullViewport = Rect{X: 0, Y: 0, Width: 1, Height: 1}

// ContainsStrict reports whether p lies strictly inside the rectangle.
// Points on the edge are outside.
func (r Rect) ContainsStrict(p mgl64.Vec2) bool {
	return p.X() > r.X && p.X() < r.X+r.Width &&
		p.Y() > r.Y && p.Y() < r.Y+r.Height
}

// ClipToScreen trims the part of r hanging off the right and top screen
// edges. Width or Height go non-positive when r starts off-screen.
func (r Rect) ClipToScreen() Rect {
	r.Width = math.Min(r.Width, 1-r.X)
	r.Height = math.Min(r.Height, 1-r.Y)
	return r
}

// Layer is a render layer index in [0, 63].
type Layer uint8

// LayerMask is a set of render layers, one bit per Layer.
type LayerMask uint64

// AllLayers sees every layer.
const AllLayers LayerMask = ^LayerMask(0)

const maxLayer Layer = 63

// LayerMaskOf builds a mask containing the given layers.
func LayerMaskOf(layers ...Layer) LayerMask {
	var m LayerMask
	for _, l := range layers {
		if l <= maxLayer {
			m |= 1 << l
		}
	}
	return m
}

// Has reports whether l is in the mask. Layers above 63 are never present.
func (m LayerMask) Has(l Layer) bool {
	if l > maxLayer {
		return false
	}
	return m&(1<<l) != 0
}

// TapEvent describes a confirmed image tap. It is forwarded to the
// EntityStore when one is set on the Scene.
type TapEvent struct {
	// Detector is the name of the ImageTap that fired.
	Detector string
	// EntityID is the tapped node's EntityID (0 when the image is not a Node).
	EntityID uint32
	// X and Y are the normalized tap position, Y measured from the bottom.
	X, Y float64
}
