package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/castleview/internal/engine/input"
	"github.com/Faultbox/castleview/internal/engine/ui"
	"github.com/Faultbox/castleview/internal/logger"
)

// Run drives frames until quit is requested, then saves state when enabled.
func (a *App) Run() error {
	logger.Info("starting render loop", zap.String("backend", a.cfg.Window.Backend))

	if a.gui != nil {
		a.runImGui()
	} else {
		a.runSDL()
	}

	logger.Info("render loop finished", zap.Uint64("frames", a.ctx.Frames))
	if a.cfg.State.Persist {
		a.saveState()
	}
	return nil
}

// runSDL renders straight into the window; there is no GUI overlay.
func (a *App) runSDL() {
	w, h := a.win.DrawableSize()
	a.ctx.Width, a.ctx.Height = w, h
	a.renderer.Viewport(int32(w), int32(h))

	var fps fpsCounter
	for {
		a.win.Poll(&a.input)
		if !a.driver.Frame(&a.input) {
			return
		}
		a.win.CaptureMouse(a.ctx.MouseLook)
		a.win.SwapBuffers()

		if fps.tick(a.input.DeltaSeconds) {
			a.win.SetTitle(fmt.Sprintf("%s - %.0f FPS", a.cfg.Window.Title, fps.rate))
		}
	}
}

// runImGui renders the scene off-screen and shows it behind the panels.
// The backend clears the window after each callback, so the texture drawn
// as background is sampled when ImGui renders, after the frame below.
func (a *App) runImGui() {
	poller := ui.NewInput(input.DefaultBindings())
	a.gui.Run(func() {
		ui.DrawBackground(a.target.ColorTexture())
		poller.Poll(&a.input)

		a.target.Bind()
		ok := a.driver.Frame(&a.input)
		a.target.Unbind()

		if !ok {
			a.gui.Quit()
		}
	})
}

// fpsCounter averages frame rate over one second windows.
type fpsCounter struct {
	elapsed float32
	frames  int
	rate    float32
}

// tick accounts one frame and reports whether rate was refreshed.
func (c *fpsCounter) tick(dt float32) bool {
	c.elapsed += dt
	c.frames++
	if c.elapsed < 1 {
		return false
	}
	c.rate = float32(c.frames) / c.elapsed
	logger.Debug("fps", zap.Float32("rate", c.rate))
	c.elapsed, c.frames = 0, 0
	return true
}
