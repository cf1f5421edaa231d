package imagetap

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, confirmed taps are forwarded to the ECS.
type EntityStore interface {
	EmitTap(event TapEvent)
}

// Scene owns the node tree and the tap detectors. It implements SceneGraph.
type Scene struct {
	root  *Node
	store EntityStore
	debug bool

	taps      []*ImageTap
	tapBuf    []*ImageTap
	entityBuf []Entity

	// Input state
	screenW, screenH int
	mouseTaps        bool
	touchBuf         []ebiten.TouchID
	injectQueue      []syntheticTap
	runner           *TapRunner
}

// NewScene creates a new scene with a pre-created root node.
func NewScene() *Scene {
	return &Scene{
		root:      NewNode("root"),
		mouseTaps: true,
	}
}

// Root returns the scene's root node.
func (s *Scene) Root() *Node {
	return s.root
}

// Entities returns every node in depth-first, child order, starting with
// the root. The returned slice is reused and MUST NOT be retained.
func (s *Scene) Entities() []Entity {
	s.entityBuf = appendEntities(s.root, s.entityBuf[:0])
	return s.entityBuf
}

func appendEntities(n *Node, buf []Entity) []Entity {
	buf = append(buf, n)
	for _, child := range n.children {
		buf = appendEntities(child, buf)
	}
	return buf
}

// AddImageTap registers a detector. Detectors run in registration order.
func (s *Scene) AddImageTap(d *ImageTap) {
	s.taps = append(s.taps, d)
}

// RemoveImageTap unregisters a detector.
func (s *Scene) RemoveImageTap(d *ImageTap) {
	for i, t := range s.taps {
		if t == d {
			copy(s.taps[i:], s.taps[i+1:])
			s.taps[len(s.taps)-1] = nil
			s.taps = s.taps[:len(s.taps)-1]
			return
		}
	}
}

// ImageTaps returns the registered detectors. The returned slice MUST NOT be mutated.
func (s *Scene) ImageTaps() []*ImageTap {
	return s.taps
}

// ImageTapByName returns the first detector with the given name, or nil.
func (s *Scene) ImageTapByName(name string) *ImageTap {
	for _, d := range s.taps {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// TouchBegan forwards a touch at normalized screen (x, y), y measured from
// the top, to every detector.
func (s *Scene) TouchBegan(x, y float64) {
	s.debugLogf("touch began at (%.3f, %.3f)", x, y)
	for _, d := range s.taps {
		d.TouchBegan(x, y)
	}
}

// Update polls Ebitengine touch and mouse input, then advances one tick.
// Injected taps take precedence over real input.
func (s *Scene) Update() {
	dt := float32(1.0 / float64(ebiten.TPS()))
	if len(s.injectQueue) == 0 {
		s.pollInput()
	}
	s.Step(dt)
}

// Step advances one tick without polling Ebitengine input: it refreshes
// world transforms, moves cameras, runs the tap script, consumes one
// injected tap and evaluates every detector.
func (s *Scene) Step(dt float32) {
	updateWorldTransform(s.root, mgl64.Ident4(), false)

	for _, e := range s.Entities() {
		for _, cam := range e.Cameras() {
			if oc, ok := cam.(*OrthoCamera); ok {
				oc.update(dt)
			}
		}
	}

	if s.runner != nil {
		s.runner.step(s)
	}
	s.processInjectedTap()

	// OnTapped may add or remove detectors; run this tick's set as it was.
	s.tapBuf = append(s.tapBuf[:0], s.taps...)
	for _, d := range s.tapBuf {
		pending := d.Pending()
		if d.Update(s) {
			s.debugLogf("%q tapped", d.Name)
			s.emitTap(d)
		} else if pending {
			s.debugLogf("%q not tapped", d.Name)
		}
	}
	clear(s.tapBuf)
}

// SetScreenSize sets the screen size in pixels used to normalize real input.
func (s *Scene) SetScreenSize(w, h int) {
	s.screenW = w
	s.screenH = h
}

// SetMouseTaps enables or disables treating left clicks as taps.
func (s *Scene) SetMouseTaps(enabled bool) {
	s.mouseTaps = enabled
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are printed, and tap
// results are logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply.
var globalDebug bool

func (s *Scene) emitTap(d *ImageTap) {
	if s.store == nil {
		return
	}
	pos := d.TapPosition()
	var entityID uint32
	if n, ok := d.img.(*Node); ok {
		entityID = n.EntityID
	}
	s.store.EmitTap(TapEvent{
		Detector: d.Name,
		EntityID: entityID,
		X:        pos.X(),
		Y:        pos.Y(),
	})
}
