package imagetap

import (
	"github.com/go-gl/mathgl/mgl64"
)

// --- ID counter ---

// nodeIDCounter is a plain counter; imagetap is single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Node ---

// Node is the scene graph element. It is at once an Entity (visibility,
// layer, components, cameras), a Transform and an Image, so any node can be
// handed to an ImageTap.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local)
	X, Y, Z  float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64

	// Image extent in pixels and anchor in [0, 1].
	Width, Height  float64
	PivotX, PivotY float64

	worldTransform mgl64.Mat4
	transformDirty bool

	// Visibility & layering
	Visible     bool
	RenderLayer Layer

	// Metadata
	UserData any
	EntityID uint32

	components map[string]Component
	cameras    []Camera

	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.PivotX = 0.5
	n.PivotY = 0.5
	n.Visible = true
	n.worldTransform = mgl64.Ident4()
	n.transformDirty = true
}

// NewNode creates an empty node.
func NewNode(name string) *Node {
	n := &Node{Name: name}
	nodeDefaults(n)
	return n
}

// NewImage creates a node with the given pixel size and a centered pivot.
func NewImage(name string, w, h float64) *Node {
	n := &Node{Name: name, Width: w, Height: h}
	nodeDefaults(n)
	return n
}

// NewCanvasNode creates a node carrying a Canvas on the given layer.
func NewCanvasNode(name string, layer Layer) *Node {
	n := NewNode(name)
	n.RenderLayer = layer
	n.AddCanvas()
	return n
}

// --- Entity interface ---

// IsVisible reports whether the node and all of its ancestors are visible.
func (n *Node) IsVisible() bool {
	for p := n; p != nil; p = p.Parent {
		if !p.Visible {
			return false
		}
	}
	return true
}

// Layer returns the node's render layer.
func (n *Node) Layer() Layer {
	return n.RenderLayer
}

// Component returns the component attached under name.
func (n *Node) Component(name string) (Component, bool) {
	c, ok := n.components[name]
	return c, ok
}

// AddComponent attaches c under name, replacing any previous one.
func (n *Node) AddComponent(name string, c Component) {
	if n.components == nil {
		n.components = make(map[string]Component)
	}
	n.components[name] = c
}

// RemoveComponent detaches the component stored under name.
func (n *Node) RemoveComponent(name string) {
	delete(n.components, name)
}

// AddCanvas marks the node as a drawable surface and returns the canvas.
func (n *Node) AddCanvas() *Canvas {
	c := NewCanvas(n)
	n.AddComponent(CanvasComponent, c)
	return c
}

// Cameras returns the attached cameras. The returned slice MUST NOT be mutated.
func (n *Node) Cameras() []Camera {
	return n.cameras
}

// AddCamera attaches cam to the node. Cameras are tested in attach order.
func (n *Node) AddCamera(cam Camera) {
	n.cameras = append(n.cameras, cam)
}

// RemoveCamera detaches cam. No-op if it is not attached.
func (n *Node) RemoveCamera(cam Camera) {
	for i, c := range n.cameras {
		if c == cam {
			copy(n.cameras[i:], n.cameras[i+1:])
			n.cameras[len(n.cameras)-1] = nil
			n.cameras = n.cameras[:len(n.cameras)-1]
			return
		}
	}
}

// --- Image interface ---

// Entity returns the node itself.
func (n *Node) Entity() Entity {
	return n
}

// Transform returns the node itself.
func (n *Node) Transform() Transform {
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("imagetap: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("imagetap: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (n *Node) AddChildAt(child *Node, index int) {
	if child == nil {
		panic("imagetap: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChildAt (parent)")
		debugCheckDisposed(child, "AddChildAt (child)")
	}
	if isAncestor(child, n) {
		panic("imagetap: adding child would create a cycle")
	}
	if index < 0 || index > len(n.children) {
		panic("imagetap: child index out of range")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if globalDebug {
		debugCheckDisposed(n, "RemoveChild (parent)")
		debugCheckDisposed(child, "RemoveChild (child)")
	}
	if child.Parent != n {
		panic("imagetap: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.components = nil
	n.cameras = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
