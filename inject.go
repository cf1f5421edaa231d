package imagetap

// syntheticTap is a queued touch-begin in normalized screen coordinates,
// y measured from the top, exactly as real input is delivered.
type syntheticTap struct {
	x, y float64
}

// InjectTap queues a touch-begin at normalized screen (x, y), y measured
// from the top. One queued tap is consumed per tick, and real input is
// ignored on ticks where Update finds the queue non-empty.
func (s *Scene) InjectTap(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticTap{x: x, y: y})
}

// InjectTapPixels queues a touch-begin at a screen pixel position (origin
// top-left). Requires SetScreenSize; ignored otherwise.
func (s *Scene) InjectTapPixels(px, py float64) {
	if s.screenW <= 0 || s.screenH <= 0 {
		return
	}
	s.InjectTap(px/float64(s.screenW), py/float64(s.screenH))
}

// processInjectedTap pops one tap from the queue and forwards it to the
// detectors. Returns true if a tap was consumed.
func (s *Scene) processInjectedTap() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	s.TouchBegan(evt.x, evt.y)
	return true
}
