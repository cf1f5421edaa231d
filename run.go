package imagetap

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig configures Run.
type RunConfig struct {
	// Title is the window title.
	Title string
	// Width and Height are the window size in pixels. Default 640x480.
	Width, Height int
	// ShowFPS overlays FPS and TPS in the top-left corner.
	ShowFPS bool
	// Update runs before the scene each tick. A non-nil error (including
	// ebiten.Termination) stops the game loop.
	Update func() error
	// Draw renders a frame. imagetap draws nothing on its own.
	Draw func(screen *ebiten.Image)
}

// gameShell adapts a Scene to ebiten.Game.
type gameShell struct {
	scene *Scene
	cfg   RunConfig
}

func (g *gameShell) Update() error {
	if g.cfg.Update != nil {
		if err := g.cfg.Update(); err != nil {
			return err
		}
	}
	g.scene.Update()
	return nil
}

func (g *gameShell) Draw(screen *ebiten.Image) {
	if g.cfg.Draw != nil {
		g.cfg.Draw(screen)
	}
	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

func (g *gameShell) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scene.SetScreenSize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Run opens a window and drives scene from Ebitengine's game loop.
// It blocks until the window is closed.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	scene.SetScreenSize(cfg.Width, cfg.Height)

	if err := ebiten.RunGame(&gameShell{scene: scene, cfg: cfg}); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run scene: %w", err)
	}
	return nil
}
