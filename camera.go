package imagetap

import (
	"image"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// RenderTarget is anything with pixel bounds. *ebiten.Image satisfies it.
type RenderTarget interface {
	Bounds() image.Rectangle
}

// zoomAnim holds an active zoom-to tween on the camera's Scale.
type zoomAnim struct {
	tween  *gween.Tween
	target float64
}

// cameraKey captures every input of the cached matrices.
type cameraKey struct {
	x, y, z, rot, scale, near, far float64
	viewport                       Rect
	w, h                           int
}

// OrthoCamera is an orthographic camera looking down -Z. It implements Camera.
//
// Hit bounds are built through ScreenToWorld, which includes the camera's X/Y
// position, so tap testing expects cameras centered on the canvas origin.
// Zoom through Scale is fully supported.
type OrthoCamera struct {
	// X, Y and Z are the world-space camera position.
	X, Y, Z float64
	// Rotation is the roll about the view axis in radians.
	Rotation float64
	// Scale is half the visible height in world units.
	Scale float64
	// ZNear and ZFar bound the visible depth range.
	ZNear, ZFar float64
	// Viewport is the normalized screen rectangle the camera renders into.
	// Any part past the right or top screen edge is clipped, and the view
	// is squeezed into what remains.
	Viewport Rect
	// Layers is the set of render layers the camera sees.
	Layers LayerMask
	// Target is the render target. When nil, Width and Height are used.
	Target RenderTarget
	// Width and Height are the render target size in pixels when Target is nil.
	Width, Height int

	key         cameraKey
	cached      bool
	view        mgl64.Mat4
	viewProj    mgl64.Mat4
	invViewProj mgl64.Mat4

	zoomTween *zoomAnim
}

// NewOrthoCamera creates a full-screen camera for a w x h pixel target,
// positioned at Z=10 and seeing every layer.
func NewOrthoCamera(w, h int) *OrthoCamera {
	return &OrthoCamera{
		Z:        10,
		Scale:    1,
		ZNear:    0.1,
		ZFar:     100,
		Viewport: FullViewport,
		Layers:   AllLayers,
		Width:    w,
		Height:   h,
	}
}

// ZoomTo animates Scale to the given value over duration seconds.
func (c *OrthoCamera) ZoomTo(scale float64, duration float32, easeFn ease.TweenFunc) {
	c.zoomTween = &zoomAnim{
		tween:  gween.New(float32(c.Scale), float32(scale), duration, easeFn),
		target: scale,
	}
}

// Zooming reports whether a ZoomTo animation is in progress.
func (c *OrthoCamera) Zooming() bool {
	return c.zoomTween != nil
}

// update advances the zoom animation. Called from Scene.Step.
func (c *OrthoCamera) update(dt float32) {
	if c.zoomTween == nil {
		return
	}
	val, done := c.zoomTween.tween.Update(dt)
	if done {
		// gween works in float32; land on the exact target.
		c.Scale = c.zoomTween.target
		c.zoomTween = nil
		return
	}
	c.Scale = float64(val)
}

// aspect is the render target's width/height ratio. The whole target is
// squeezed into the viewport, so the viewport does not change it.
func (c *OrthoCamera) aspect() float64 {
	w, h := c.TargetSize()
	if w <= 0 || h <= 0 {
		return 1
	}
	return float64(w) / float64(h)
}

// computeMatrices recomputes the cached matrices if any input changed.
//
// view     = RotateZ(-Rotation) * Translate(-X, -Y, -Z)
// viewProj = Ortho(±Scale*aspect, ±Scale, ZNear, ZFar) * view
func (c *OrthoCamera) computeMatrices() {
	w, h := c.TargetSize()
	key := cameraKey{
		x: c.X, y: c.Y, z: c.Z, rot: c.Rotation, scale: c.Scale,
		near: c.ZNear, far: c.ZFar, viewport: c.Viewport, w: w, h: h,
	}
	if c.cached && key == c.key {
		return
	}
	c.key = key
	c.cached = true

	halfH := c.Scale
	halfW := halfH * c.aspect()
	c.view = mgl64.HomogRotate3DZ(-c.Rotation).Mul4(mgl64.Translate3D(-c.X, -c.Y, -c.Z))
	proj := mgl64.Ortho(-halfW, halfW, -halfH, halfH, c.ZNear, c.ZFar)
	c.viewProj = proj.Mul4(c.view)
	c.invViewProj = invertMat4(c.viewProj)
}

// --- Camera interface ---

// ViewportRect returns Viewport clipped to the screen.
func (c *OrthoCamera) ViewportRect() Rect {
	return c.Viewport.ClipToScreen()
}

// TargetSize returns the render target size in pixels.
func (c *OrthoCamera) TargetSize() (w, h int) {
	if c.Target != nil {
		b := c.Target.Bounds()
		return b.Dx(), b.Dy()
	}
	return c.Width, c.Height
}

// OrthoScale returns Scale.
func (c *OrthoCamera) OrthoScale() float64 {
	return c.Scale
}

// ClipPlanes returns ZNear and ZFar.
func (c *OrthoCamera) ClipPlanes() (near, far float64) {
	return c.ZNear, c.ZFar
}

// IsLayerVisible reports whether l is in Layers.
func (c *OrthoCamera) IsLayerVisible(l Layer) bool {
	return c.Layers.Has(l)
}

// ViewportToWorld converts a viewport-relative point (Z = distance in front
// of the camera) to world space.
func (c *OrthoCamera) ViewportToWorld(p mgl64.Vec3) mgl64.Vec3 {
	c.computeMatrices()
	n, f := c.ZNear, c.ZFar
	ndcZ := 0.0
	if f != n {
		ndcZ = (2*p.Z() - (f + n)) / (f - n)
	}
	ndc := mgl64.Vec3{2*p.X() - 1, 2*p.Y() - 1, ndcZ}
	return mgl64.TransformCoordinate(ndc, c.invViewProj)
}

// WorldToView converts a world point to viewport-relative X/Y, with the
// distance in front of the camera in Z.
func (c *OrthoCamera) WorldToView(p mgl64.Vec3) mgl64.Vec3 {
	c.computeMatrices()
	ndc := mgl64.TransformCoordinate(p, c.viewProj)
	depth := -mgl64.TransformCoordinate(p, c.view).Z()
	return mgl64.Vec3{(ndc.X() + 1) / 2, (ndc.Y() + 1) / 2, depth}
}

// ScreenToWorld converts a render-target pixel (origin bottom-left) to world
// space. The pixel is first expressed relative to the viewport, unclamped.
func (c *OrthoCamera) ScreenToWorld(p mgl64.Vec3) mgl64.Vec3 {
	w, h := c.TargetSize()
	var sx, sy float64
	if w > 0 {
		sx = p.X() / float64(w)
	}
	if h > 0 {
		sy = p.Y() / float64(h)
	}
	vp := c.ViewportRect()
	var vx, vy float64
	if vp.Width != 0 {
		vx = (sx - vp.X) / vp.Width
	}
	if vp.Height != 0 {
		vy = (sy - vp.Y) / vp.Height
	}
	return c.ViewportToWorld(mgl64.Vec3{vx, vy, p.Z()})
}

// WorldToScreen converts a world point to render-target pixels (origin
// bottom-left).
func (c *OrthoCamera) WorldToScreen(p mgl64.Vec3) mgl64.Vec2 {
	v := c.WorldToView(p)
	w, h := c.TargetSize()
	vp := c.ViewportRect()
	return mgl64.Vec2{
		(vp.X + v.X()*vp.Width) * float64(w),
		(vp.Y + v.Y()*vp.Height) * float64(h),
	}
}
