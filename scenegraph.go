package imagetap

import "github.com/go-gl/mathgl/mgl64"

// CanvasComponent is the component name that marks a drawable surface.
const CanvasComponent = "Canvas2D"

// SceneGraph enumerates the entities that may own cameras. Entities must be
// returned in a stable order; the first camera that confirms a hit wins.
type SceneGraph interface {
	Entities() []Entity
}

// Entity is a scene object carrying components.
type Entity interface {
	// IsVisible reports whether the entity is shown. It must account for
	// hidden ancestors as well: cameras on an entity under a hidden parent
	// are skipped, and an image under a hidden parent is never tapped.
	IsVisible() bool
	Layer() Layer
	// Component looks up a component by name.
	Component(name string) (Component, bool)
	// Cameras returns the entity's camera components in attach order.
	Cameras() []Camera
}

// Component is anything attached to an Entity.
type Component interface {
	Owner() Entity
}

// Transform is the spatial view of an image or one of its ancestors.
type Transform interface {
	WorldPosition() mgl64.Vec3
	// WorldMatrix maps local space to world space. The pivot is not part
	// of it; BuildBounds accounts for the pivot instead.
	WorldMatrix() mgl64.Mat4
	// Size is the image extent in pixels.
	Size() mgl64.Vec2
	// Pivot is the anchor inside the image, each axis in [0, 1].
	Pivot() mgl64.Vec2
	// ParentTransform returns nil at the root.
	ParentTransform() Transform
	Entity() Entity
}

// Camera is the view an image is tap-tested against.
type Camera interface {
	// ViewportRect is the normalized screen rectangle the camera renders into.
	ViewportRect() Rect
	// TargetSize is the render target size in pixels.
	TargetSize() (w, h int)
	OrthoScale() float64
	ClipPlanes() (near, far float64)
	// ViewportToWorld maps a viewport-relative point to world space. Z is
	// the distance from the camera.
	ViewportToWorld(p mgl64.Vec3) mgl64.Vec3
	// WorldToView maps a world point to viewport-relative X/Y with the
	// view-space depth in Z.
	WorldToView(p mgl64.Vec3) mgl64.Vec3
	// ScreenToWorld maps a render-target pixel (Y up) to world space.
	ScreenToWorld(p mgl64.Vec3) mgl64.Vec3
	IsLayerVisible(l Layer) bool
}

// Image is what an ImageTap watches.
type Image interface {
	Entity() Entity
	Transform() Transform
}

// ImageSource supplies the image an ImageTap watches. It may return nil.
type ImageSource func() Image

// Canvas marks an entity as a drawable surface. Images below it are tested
// against the cameras that can see the canvas's layer.
type Canvas struct {
	owner Entity
}

// NewCanvas creates a canvas owned by e.
func NewCanvas(e Entity) *Canvas {
	return &Canvas{owner: e}
}

// Owner returns the entity the canvas is attached to.
func (c *Canvas) Owner() Entity {
	return c.owner
}

// Layer returns the owning entity's render layer.
func (c *Canvas) Layer() Layer {
	return c.owner.Layer()
}
