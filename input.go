package imagetap

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// pollInput forwards this frame's touch-begins (and left clicks, when mouse
// taps are enabled) to the detectors. Needs the screen size to normalize
// pixel positions; does nothing until SetScreenSize has been called.
func (s *Scene) pollInput() {
	if s.screenW <= 0 || s.screenH <= 0 {
		return
	}

	s.touchBuf = inpututil.AppendJustPressedTouchIDs(s.touchBuf[:0])
	for _, id := range s.touchBuf {
		x, y := ebiten.TouchPosition(id)
		s.touchBeganPixels(float64(x), float64(y))
	}

	if s.mouseTaps && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		s.touchBeganPixels(float64(x), float64(y))
	}
}

// touchBeganPixels normalizes a screen pixel position (origin top-left).
func (s *Scene) touchBeganPixels(px, py float64) {
	s.TouchBegan(px/float64(s.screenW), py/float64(s.screenH))
}
