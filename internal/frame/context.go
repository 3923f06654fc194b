// Package frame runs one rendered frame: input actions, camera, the shadow
// and lit passes, the path animator, skybox and debug overlay, in that order.
package frame

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/castleview/internal/engine/camera"
	"github.com/Faultbox/castleview/internal/engine/lighting"
	"github.com/Faultbox/castleview/internal/engine/scene"
	"github.com/Faultbox/castleview/internal/motion"
	"github.com/Faultbox/castleview/internal/state"
)

// Context holds the live tunables shared by the driver and the debug GUI.
type Context struct {
	ClearColor    mgl32.Vec3
	ShowGUI       bool
	MouseLook     bool // camera follows the mouse; off while the GUI is shown
	Blinn         bool
	SkyboxEnabled bool

	Lights *lighting.Rig
	Camera *camera.FlyCamera
	Path   *motion.Animator // nil when the scene has no animated object

	// Selected is the last picked object, nil when nothing is selected.
	Selected *scene.Object

	Width  int
	Height int
	Frames uint64
	// LastScreenshot is the path of the most recent capture.
	LastScreenshot string
}

// SetGUI shows or hides the overlay. Mouse look is only active without it.
func (c *Context) SetGUI(show bool) {
	c.ShowGUI = show
	c.MouseLook = !show
}

// Aspect returns the framebuffer aspect ratio, 1 while minimized.
func (c *Context) Aspect() float32 {
	if c.Width <= 0 || c.Height <= 0 {
		return 1
	}
	return float32(c.Width) / float32(c.Height)
}

// Snapshot returns the persisted subset of the context.
func (c *Context) Snapshot() state.Snapshot {
	return state.Snapshot{
		ClearColor:     c.ClearColor,
		GUIEnabled:     c.ShowGUI,
		CameraPosition: c.Camera.Position,
		CameraFront:    c.Camera.Front,
	}
}

// Restore applies a loaded snapshot.
func (c *Context) Restore(s state.Snapshot) {
	c.ClearColor = s.ClearColor
	c.SetGUI(s.GUIEnabled)
	c.Camera.Position = s.CameraPosition
	c.Camera.SetFront(s.CameraFront)
}
