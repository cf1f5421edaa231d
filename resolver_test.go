package imagetap

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// countingCamera records how often the bounds builder and hit tester use it.
type countingCamera struct {
	*OrthoCamera
	screenToWorld   int
	viewportToWorld int
}

func newCountingCamera(w, h int) *countingCamera {
	return &countingCamera{OrthoCamera: NewOrthoCamera(w, h)}
}

func (c *countingCamera) ScreenToWorld(p mgl64.Vec3) mgl64.Vec3 {
	c.screenToWorld++
	return c.OrthoCamera.ScreenToWorld(p)
}

func (c *countingCamera) ViewportToWorld(p mgl64.Vec3) mgl64.Vec3 {
	c.viewportToWorld++
	return c.OrthoCamera.ViewportToWorld(p)
}

// sliceScene is a SceneGraph over a fixed entity list.
type sliceScene []Entity

func (s sliceScene) Entities() []Entity { return s }

// newTapFixture builds the reference setup: a canvas on layer 0 holding a
// 200x200 centered image at the world origin.
func newTapFixture() (root, canvas, img *Node) {
	root = NewNode("root")
	canvas = NewCanvasNode("canvas", 0)
	root.AddChild(canvas)
	img = NewImage("img", 200, 200)
	canvas.AddChild(img)
	return root, canvas, img
}

func TestFindCanvas(t *testing.T) {
	_, canvas, img := newTapFixture()
	inner := NewNode("inner")
	canvas.AddChild(inner)
	inner.AddChild(img)

	got, ok := FindCanvas(img)
	if !ok {
		t.Fatal("canvas not found")
	}
	if got.Owner() != Entity(canvas) {
		t.Error("found canvas belongs to the wrong node")
	}
}

func TestFindCanvasSkipsSelf(t *testing.T) {
	img := NewImage("img", 10, 10)
	img.AddCanvas()
	if _, ok := FindCanvas(img); ok {
		t.Error("search should start at the parent, not the image")
	}
}

func TestFindCanvasNearest(t *testing.T) {
	outer := NewCanvasNode("outer", 1)
	inner := NewCanvasNode("inner", 2)
	outer.AddChild(inner)
	img := NewImage("img", 10, 10)
	inner.AddChild(img)

	got, ok := FindCanvas(img)
	if !ok || got.Layer() != 2 {
		t.Errorf("FindCanvas = (%v, %v), want the inner canvas on layer 2", got, ok)
	}
}

func TestResolveAndTestNoCanvas(t *testing.T) {
	img := NewImage("img", 200, 200)
	camNode := NewNode("cam")
	cam := newCountingCamera(1000, 1000)
	camNode.AddCamera(cam)

	if _, ok := ResolveAndTest(sliceScene{camNode}, img, mgl64.Vec2{0.5, 0.5}); ok {
		t.Error("image without a canvas should never be hit")
	}
	if cam.screenToWorld != 0 {
		t.Errorf("camera consulted %d times without a canvas", cam.screenToWorld)
	}
}

func TestResolveAndTestLayerFiltering(t *testing.T) {
	_, _, img := newTapFixture()

	first := newCountingCamera(1000, 1000)
	first.Layers = LayerMaskOf(5) // cannot see the canvas on layer 0
	second := newCountingCamera(1000, 1000)
	second.Layers = LayerMaskOf(0)

	a := NewNode("camA")
	a.AddCamera(first)
	b := NewNode("camB")
	b.AddCamera(second)

	cam, ok := ResolveAndTest(sliceScene{a, b}, img, mgl64.Vec2{0.5, 0.5})
	if !ok {
		t.Fatal("tap should hit through the second camera")
	}
	if cam != Camera(second) {
		t.Error("hit attributed to the wrong camera")
	}
	if first.screenToWorld != 0 {
		t.Errorf("first camera built bounds %d times, want 0", first.screenToWorld)
	}
	if second.screenToWorld != 1 {
		t.Errorf("second camera built bounds %d times, want 1", second.screenToWorld)
	}
}

func TestResolveAndTestInvisibleCameraEntity(t *testing.T) {
	_, _, img := newTapFixture()
	hidden := newCountingCamera(1000, 1000)
	node := NewNode("cam")
	node.Visible = false
	node.AddCamera(hidden)

	if _, ok := ResolveAndTest(sliceScene{node}, img, mgl64.Vec2{0.5, 0.5}); ok {
		t.Error("camera on an invisible entity should be skipped")
	}
	if hidden.screenToWorld != 0 {
		t.Error("invisible camera should not build bounds")
	}
}

func TestResolveAndTestFirstHitWins(t *testing.T) {
	_, _, img := newTapFixture()
	first := newCountingCamera(1000, 1000)
	second := newCountingCamera(1000, 1000)
	node := NewNode("cams")
	node.AddCamera(first)
	node.AddCamera(second)

	cam, ok := ResolveAndTest(sliceScene{node}, img, mgl64.Vec2{0.5, 0.5})
	if !ok || cam != Camera(first) {
		t.Fatal("first camera should confirm the hit")
	}
	if second.screenToWorld != 0 || second.viewportToWorld != 0 {
		t.Error("enumeration should stop after the first hit")
	}
}

func TestResolveAndTestViewportRejectionContinues(t *testing.T) {
	_, _, img := newTapFixture()
	left := newCountingCamera(1000, 1000)
	left.Viewport = Rect{X: 0, Y: 0, Width: 0.5, Height: 1}
	right := newCountingCamera(1000, 1000)
	right.Viewport = Rect{X: 0.5, Y: 0, Width: 0.5, Height: 1}
	node := NewNode("cams")
	node.AddCamera(left)
	node.AddCamera(right)

	cam, ok := ResolveAndTest(sliceScene{node}, img, mgl64.Vec2{0.75, 0.5})
	if !ok || cam != Camera(right) {
		t.Fatal("right camera should confirm the hit")
	}
	if left.screenToWorld != 0 {
		t.Error("a camera rejecting the tap should not build bounds")
	}
}

func TestResolveAndTestMissTriesAllCameras(t *testing.T) {
	_, _, img := newTapFixture()
	a := newCountingCamera(1000, 1000)
	b := newCountingCamera(1000, 1000)
	node := NewNode("cams")
	node.AddCamera(a)
	node.AddCamera(b)

	if _, ok := ResolveAndTest(sliceScene{node}, img, mgl64.Vec2{0.9, 0.9}); ok {
		t.Fatal("tap far from the image should miss")
	}
	if a.screenToWorld != 1 || b.screenToWorld != 1 {
		t.Errorf("bounds built (%d, %d) times, want once per camera", a.screenToWorld, b.screenToWorld)
	}
}

func TestEligibleCamerasOrder(t *testing.T) {
	c1 := NewOrthoCamera(10, 10)
	c2 := NewOrthoCamera(10, 10)
	c3 := NewOrthoCamera(10, 10)
	a := NewNode("a")
	a.AddCamera(c1)
	a.AddCamera(c2)
	b := NewNode("b")
	b.AddCamera(c3)

	var got []Camera
	for cam := range eligibleCameras(sliceScene{a, b}, 0) {
		got = append(got, cam)
	}
	want := []Camera{c1, c2, c3}
	if len(got) != len(want) {
		t.Fatalf("got %d cameras, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("camera %d out of order", i)
		}
	}
}

func TestResolveAndTestCameraUnderHiddenParent(t *testing.T) {
	_, _, img := newTapFixture()
	parent := NewNode("rig")
	parent.Visible = false
	camNode := NewNode("cam")
	parent.AddChild(camNode)
	cam := newCountingCamera(1000, 1000)
	camNode.AddCamera(cam)

	if _, ok := ResolveAndTest(sliceScene{parent, camNode}, img, mgl64.Vec2{0.5, 0.5}); ok {
		t.Error("camera below a hidden parent should be skipped")
	}
	if cam.screenToWorld != 0 {
		t.Error("skipped camera should not build bounds")
	}
}
