package imagetap

import (
	"image"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween/ease"
)

func assertVec3(t *testing.T, name string, got, want mgl64.Vec3) {
	t.Helper()
	if !got.ApproxEqualThreshold(want, 1e-6) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestOrthoCameraDefaults(t *testing.T) {
	cam := NewOrthoCamera(800, 600)
	if cam.Z != 10 {
		t.Errorf("Z = %f, want 10", cam.Z)
	}
	if cam.Scale != 1 {
		t.Errorf("Scale = %f, want 1", cam.Scale)
	}
	if cam.ZNear != 0.1 || cam.ZFar != 100 {
		t.Errorf("clip planes = (%f, %f), want (0.1, 100)", cam.ZNear, cam.ZFar)
	}
	if cam.Viewport != FullViewport {
		t.Errorf("Viewport = %v, want full", cam.Viewport)
	}
	if cam.Layers != AllLayers {
		t.Errorf("Layers = %x, want all", cam.Layers)
	}
	if w, h := cam.TargetSize(); w != 800 || h != 600 {
		t.Errorf("TargetSize = (%d, %d), want (800, 600)", w, h)
	}
}

func TestOrthoCameraTargetOverridesSize(t *testing.T) {
	cam := NewOrthoCamera(10, 10)
	cam.Target = image.NewRGBA(image.Rect(0, 0, 2000, 1000))
	if w, h := cam.TargetSize(); w != 2000 || h != 1000 {
		t.Errorf("TargetSize = (%d, %d), want (2000, 1000)", w, h)
	}
	// Aspect 2 widens the visible span.
	assertVec3(t, "right edge", cam.ViewportToWorld(mgl64.Vec3{1, 0.5, 10}), mgl64.Vec3{2, 0, 0})
}

func TestOrthoCameraViewportToWorld(t *testing.T) {
	cam := NewOrthoCamera(1000, 1000)
	tests := []struct {
		name string
		in   mgl64.Vec3
		want mgl64.Vec3
	}{
		{"center at canvas depth", mgl64.Vec3{0.5, 0.5, 10}, mgl64.Vec3{0, 0, 0}},
		{"bottom-left", mgl64.Vec3{0, 0, 10}, mgl64.Vec3{-1, -1, 0}},
		{"top-right", mgl64.Vec3{1, 1, 10}, mgl64.Vec3{1, 1, 0}},
		{"quarter in front of camera", mgl64.Vec3{0.75, 0.25, 4}, mgl64.Vec3{0.5, -0.5, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertVec3(t, "ViewportToWorld", cam.ViewportToWorld(tt.in), tt.want)
		})
	}
}

func TestOrthoCameraWorldToView(t *testing.T) {
	cam := NewOrthoCamera(1000, 1000)
	got := cam.WorldToView(mgl64.Vec3{0.5, -0.5, 2})
	assertVec3(t, "WorldToView", got, mgl64.Vec3{0.75, 0.25, 8})
}

func TestOrthoCameraRoundtrip(t *testing.T) {
	cam := NewOrthoCamera(1280, 720)
	cam.X = 0.4
	cam.Y = -0.3
	cam.Scale = 2.5
	cam.Rotation = 0.3

	orig := mgl64.Vec3{1.23, -0.45, 1.5}
	back := cam.ViewportToWorld(cam.WorldToView(orig))
	assertVec3(t, "roundtrip", back, orig)
}

func TestOrthoCameraRotation(t *testing.T) {
	cam := NewOrthoCamera(1000, 1000)
	cam.Rotation = math.Pi / 2
	// The view's right edge points along world +Y.
	assertVec3(t, "right edge", cam.ViewportToWorld(mgl64.Vec3{1, 0.5, 10}), mgl64.Vec3{0, 1, 0})
}

func TestOrthoCameraMatrixCache(t *testing.T) {
	cam := NewOrthoCamera(1000, 1000)
	assertVec3(t, "before move", cam.ViewportToWorld(mgl64.Vec3{0.5, 0.5, 10}), mgl64.Vec3{0, 0, 0})

	cam.X = 3
	assertVec3(t, "after move", cam.ViewportToWorld(mgl64.Vec3{0.5, 0.5, 10}), mgl64.Vec3{3, 0, 0})

	cam.Scale = 2
	assertVec3(t, "after zoom", cam.ViewportToWorld(mgl64.Vec3{1, 0.5, 10}), mgl64.Vec3{5, 0, 0})
}

func TestOrthoCameraScreenToWorld(t *testing.T) {
	cam := NewOrthoCamera(1000, 1000)
	got := cam.ScreenToWorld(mgl64.Vec3{750, 500, 10})
	assertVec3(t, "full viewport", got, mgl64.Vec3{0.5, 0, 0})

	cam.Viewport = Rect{X: 0.5, Y: 0, Width: 0.5, Height: 1}
	got = cam.ScreenToWorld(mgl64.Vec3{750, 500, 10})
	assertVec3(t, "viewport center", got, mgl64.Vec3{0, 0, 0})

	// Pixels left of the viewport extrapolate instead of clamping.
	got = cam.ScreenToWorld(mgl64.Vec3{0, 500, 10})
	assertVec3(t, "outside viewport", got, mgl64.Vec3{-3, 0, 0})
}

func TestOrthoCameraScreenToWorldEmptyTarget(t *testing.T) {
	cam := NewOrthoCamera(0, 0)
	got := cam.ScreenToWorld(mgl64.Vec3{100, 100, 10})
	for i := 0; i < 3; i++ {
		if math.IsNaN(got[i]) || math.IsInf(got[i], 0) {
			t.Fatalf("ScreenToWorld on empty target = %v, want finite", got)
		}
	}
}

func TestOrthoCameraWorldToScreen(t *testing.T) {
	cam := NewOrthoCamera(1000, 1000)
	got := cam.WorldToScreen(mgl64.Vec3{0.5, 0, 0})
	if !approxEqual(got.X(), 750, 1e-6) || !approxEqual(got.Y(), 500, 1e-6) {
		t.Errorf("WorldToScreen = %v, want (750, 500)", got)
	}

	cam.Viewport = Rect{X: 0.5, Y: 0.5, Width: 0.5, Height: 0.5}
	got = cam.WorldToScreen(mgl64.Vec3{0, 0, 0})
	if !approxEqual(got.X(), 750, 1e-6) || !approxEqual(got.Y(), 750, 1e-6) {
		t.Errorf("WorldToScreen in sub-viewport = %v, want (750, 750)", got)
	}
}

func TestOrthoCameraClipsViewport(t *testing.T) {
	cam := NewOrthoCamera(1000, 1000)
	cam.Viewport = Rect{X: 0.75, Y: 0.5, Width: 0.5, Height: 1}

	want := Rect{X: 0.75, Y: 0.5, Width: 0.25, Height: 0.5}
	if got := cam.ViewportRect(); got != want {
		t.Errorf("ViewportRect = %+v, want %+v", got, want)
	}
	if cam.Viewport.Width != 0.5 {
		t.Error("Viewport field should keep its configured value")
	}

	// Origin lands at the center of the clipped rectangle.
	got := cam.WorldToScreen(mgl64.Vec3{0, 0, 0})
	if !approxEqual(got.X(), 875, 1e-6) || !approxEqual(got.Y(), 750, 1e-6) {
		t.Errorf("WorldToScreen = %v, want (875, 750)", got)
	}
	assertVec3(t, "ScreenToWorld", cam.ScreenToWorld(mgl64.Vec3{875, 750, 10}), mgl64.Vec3{0, 0, 0})
}

func TestOrthoCameraLayers(t *testing.T) {
	cam := NewOrthoCamera(10, 10)
	cam.Layers = LayerMaskOf(1, 3)
	for l, want := range map[Layer]bool{0: false, 1: true, 2: false, 3: true} {
		if got := cam.IsLayerVisible(l); got != want {
			t.Errorf("IsLayerVisible(%d) = %v, want %v", l, got, want)
		}
	}
}

func TestOrthoCameraZoomTo(t *testing.T) {
	cam := NewOrthoCamera(1000, 1000)
	cam.ZoomTo(3, 1.0, ease.Linear)
	if !cam.Zooming() {
		t.Fatal("Zooming = false after ZoomTo")
	}

	cam.update(0.5)
	if !approxEqual(cam.Scale, 2, 1e-3) {
		t.Errorf("zoom halfway: Scale = %f, want ~2", cam.Scale)
	}

	cam.update(0.5)
	if !approxEqual(cam.Scale, 3, 1e-3) {
		t.Errorf("zoom end: Scale = %f, want 3", cam.Scale)
	}
	if cam.Zooming() {
		t.Error("Zooming = true after the tween finished")
	}
}

func TestOrthoCameraZoomToLandsExactly(t *testing.T) {
	cam := NewOrthoCamera(1000, 1000)
	cam.ZoomTo(1.1, 0.5, ease.OutQuad)
	cam.update(0.25)
	cam.update(0.5)
	if cam.Scale != 1.1 {
		t.Errorf("Scale = %v, want exactly 1.1", cam.Scale)
	}
	if cam.Zooming() {
		t.Error("zoom should be finished")
	}
}

func TestSceneStepAdvancesZoom(t *testing.T) {
	scene := NewScene()
	cam := NewOrthoCamera(1000, 1000)
	scene.Root().AddCamera(cam)
	cam.ZoomTo(2, 1.0, ease.Linear)

	scene.Step(1.0)
	if !approxEqual(cam.Scale, 2, 1e-3) {
		t.Errorf("Scale after Step = %f, want 2", cam.Scale)
	}
}

func TestZoomKeepsTapsOnImage(t *testing.T) {
	_, _, img := newTapFixture()
	cam := NewOrthoCamera(1000, 1000)
	node := NewNode("cam")
	node.AddCamera(cam)
	scene := sliceScene{node}

	for _, scale := range []float64{0.5, 1, 4} {
		cam.Scale = scale
		if _, ok := ResolveAndTest(scene, img, mgl64.Vec2{0.5, 0.5}); !ok {
			t.Errorf("scale %v: center tap missed", scale)
		}
	}
}
