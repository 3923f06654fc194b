package frame

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/castleview/internal/engine/camera"
	"github.com/Faultbox/castleview/internal/engine/input"
	"github.com/Faultbox/castleview/internal/engine/lighting"
	"github.com/Faultbox/castleview/internal/engine/picking"
	"github.com/Faultbox/castleview/internal/engine/scene"
	"github.com/Faultbox/castleview/internal/logger"
)

// Raster owns default framebuffer state.
type Raster interface {
	Viewport(width, height int32)
	Clear(color mgl32.Vec3)
}

// ScenePass renders the shadow and lit passes.
type ScenePass interface {
	Render(v scene.View, rig *lighting.Rig, blinn bool)
}

// Backdrop draws behind the scene with a rotation-only view.
type Backdrop interface {
	Draw(view, projection mgl32.Mat4)
}

// Overlay draws the debug GUI bound to the context.
type Overlay interface {
	Draw(ctx *Context)
}

// Capturer saves the default framebuffer.
type Capturer interface {
	Capture(width, height int32) (string, error)
}

// Picker finds the object hit by a ray.
type Picker interface {
	Pick(r picking.Ray) *scene.Object
}

var moves = [...]struct {
	key input.Move
	dir camera.Movement
}{
	{input.MoveForward, camera.Forward},
	{input.MoveBackward, camera.Backward},
	{input.MoveLeft, camera.Left},
	{input.MoveRight, camera.Right},
}

// Driver runs frames against a context. Skybox, GUI, Screenshots and Picker
// may be nil.
type Driver struct {
	Ctx         *Context
	Raster      Raster
	Scene       ScenePass
	Skybox      Backdrop
	GUI         Overlay
	Screenshots Capturer
	Picker      Picker
	Near        float32
	Far         float32
}

// Frame runs one frame. It returns false once quit was requested; nothing
// is rendered on that frame.
func (d *Driver) Frame(in *input.Frame) bool {
	ctx := d.Ctx
	if in.Has(input.ActionQuit) {
		logger.Info("quit requested", zap.Uint64("frames", ctx.Frames))
		return false
	}
	if in.Has(input.ActionToggleGUI) {
		ctx.SetGUI(!ctx.ShowGUI)
		logger.Debug("gui toggled", zap.Bool("visible", ctx.ShowGUI))
	}
	if in.Has(input.ActionToggleBlinn) {
		ctx.Blinn = !ctx.Blinn
		logger.Info("shading mode", zap.Bool("blinn", ctx.Blinn))
	}
	if in.Resize {
		ctx.Width, ctx.Height = in.Width, in.Height
		d.Raster.Viewport(int32(in.Width), int32(in.Height))
	}

	d.moveCamera(in)

	v := scene.View{
		Projection: ctx.Camera.Projection(ctx.Aspect(), d.Near, d.Far),
		View:       ctx.Camera.ViewMatrix(),
		Eye:        ctx.Camera.Position,
	}

	// picking needs a visible cursor
	if in.Has(input.ActionPick) && !ctx.MouseLook {
		d.pick(in, v)
	}

	d.Raster.Clear(ctx.ClearColor)
	d.Scene.Render(v, ctx.Lights, ctx.Blinn)
	if ctx.Path != nil {
		ctx.Path.Advance()
	}
	if ctx.SkyboxEnabled && d.Skybox != nil {
		d.Skybox.Draw(StripTranslation(v.View), v.Projection)
	}
	// capture before the overlay so the GUI is not in the picture
	if in.Has(input.ActionScreenshot) {
		d.capture()
	}
	if ctx.ShowGUI && d.GUI != nil {
		d.GUI.Draw(ctx)
	}

	ctx.Frames++
	return true
}

func (d *Driver) moveCamera(in *input.Frame) {
	cam := d.Ctx.Camera
	for _, m := range moves {
		if in.Held(m.key) {
			cam.Move(m.dir, in.DeltaSeconds)
		}
	}
	if d.Ctx.MouseLook && (in.MouseDX != 0 || in.MouseDY != 0) {
		// screen y grows downward, pitch grows upward
		cam.Look(in.MouseDX, -in.MouseDY)
	}
	if in.Scroll != 0 {
		cam.Scroll(in.Scroll)
	}
}

func (d *Driver) pick(in *input.Frame, v scene.View) {
	ctx := d.Ctx
	if d.Picker == nil || ctx.Width <= 0 || ctx.Height <= 0 {
		return
	}
	r := picking.ScreenToRay(in.CursorX, in.CursorY, float32(ctx.Width), float32(ctx.Height),
		v.Projection.Mul4(v.View).Inv())
	ctx.Selected = d.Picker.Pick(r)
	if ctx.Selected != nil {
		logger.Debug("object picked", zap.String("name", ctx.Selected.Name))
	}
}

func (d *Driver) capture() {
	if d.Screenshots == nil {
		return
	}
	path, err := d.Screenshots.Capture(int32(d.Ctx.Width), int32(d.Ctx.Height))
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	d.Ctx.LastScreenshot = path
	logger.Info("screenshot saved", zap.String("path", path))
}

// StripTranslation keeps only the rotation of a view matrix.
func StripTranslation(view mgl32.Mat4) mgl32.Mat4 {
	return view.Mat3().Mat4()
}
