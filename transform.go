package imagetap

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// computeLocalTransform builds the node's local matrix.
//
// Composition order:
//
//	Scale(ScaleX, ScaleY, 1) -> RotateZ(Rotation) -> Translate(X, Y, Z)
//
// The pivot is deliberately absent; hit bounds are shifted by it instead.
func computeLocalTransform(n *Node) mgl64.Mat4 {
	return mgl64.Translate3D(n.X, n.Y, n.Z).
		Mul4(mgl64.HomogRotate3DZ(n.Rotation)).
		Mul4(mgl64.Scale3D(n.ScaleX, n.ScaleY, 1))
}

// invertMat4 returns the inverse of m, or the identity if m is singular.
func invertMat4(m mgl64.Mat4) mgl64.Mat4 {
	if det := m.Det(); math.Abs(det) < 1e-12 {
		return mgl64.Ident4()
	}
	return m.Inv()
}

// updateWorldTransform recomputes world matrices for n and its subtree.
// parentRecomputed forces recomputation of clean children.
func updateWorldTransform(n *Node, parent mgl64.Mat4, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.worldTransform = parent.Mul4(computeLocalTransform(n))
		n.transformDirty = false
	}

	for _, child := range n.children {
		updateWorldTransform(child, n.worldTransform, recompute)
	}
}

// refreshWorld brings n's world matrix up to date outside of Scene.Step.
// Setters mark the whole subtree dirty, so a clean node always has a clean
// chain above it.
func (n *Node) refreshWorld() {
	if !n.transformDirty {
		return
	}
	parent := mgl64.Ident4()
	if n.Parent != nil {
		n.Parent.refreshWorld()
		parent = n.Parent.worldTransform
	}
	n.worldTransform = parent.Mul4(computeLocalTransform(n))
	n.transformDirty = false
}

// --- Transform property setters ---

// SetPosition sets the node's local position and marks it dirty.
func (n *Node) SetPosition(x, y, z float64) {
	n.X = x
	n.Y = y
	n.Z = z
	markSubtreeDirty(n)
}

// SetScale sets the node's ScaleX and ScaleY and marks it dirty.
func (n *Node) SetScale(sx, sy float64) {
	n.ScaleX = sx
	n.ScaleY = sy
	markSubtreeDirty(n)
}

// SetRotation sets the node's rotation about Z (in radians, counter-clockwise).
func (n *Node) SetRotation(r float64) {
	n.Rotation = r
	markSubtreeDirty(n)
}

// SetSize sets the image extent in pixels.
func (n *Node) SetSize(w, h float64) {
	n.Width = w
	n.Height = h
}

// SetPivot sets the anchor point, each axis in [0, 1].
func (n *Node) SetPivot(px, py float64) {
	n.PivotX = px
	n.PivotY = py
}

// MarkDirty forces recomputation of this node's and its descendants' world
// matrices. Call it after setting X, Y, Z, ScaleX, ScaleY or Rotation directly.
func (n *Node) MarkDirty() {
	markSubtreeDirty(n)
}

// --- Transform interface ---

// WorldMatrix returns the node's local-to-world matrix.
func (n *Node) WorldMatrix() mgl64.Mat4 {
	n.refreshWorld()
	return n.worldTransform
}

// WorldPosition returns the node's origin in world space.
func (n *Node) WorldPosition() mgl64.Vec3 {
	n.refreshWorld()
	return n.worldTransform.Col(3).Vec3()
}

// Size returns Width and Height.
func (n *Node) Size() mgl64.Vec2 {
	return mgl64.Vec2{n.Width, n.Height}
}

// Pivot returns PivotX and PivotY.
func (n *Node) Pivot() mgl64.Vec2 {
	return mgl64.Vec2{n.PivotX, n.PivotY}
}

// ParentTransform returns the parent node, or nil at the root.
func (n *Node) ParentTransform() Transform {
	if n.Parent == nil {
		return nil
	}
	return n.Parent
}

// --- Coordinate conversion ---

// WorldToLocal converts a world-space point to this node's local space.
func (n *Node) WorldToLocal(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformCoordinate(p, invertMat4(n.WorldMatrix()))
}

// LocalToWorld converts a local-space point to world space.
func (n *Node) LocalToWorld(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformCoordinate(p, n.WorldMatrix())
}
