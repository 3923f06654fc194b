package frame

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/castleview/internal/engine/camera"
	"github.com/Faultbox/castleview/internal/engine/input"
	"github.com/Faultbox/castleview/internal/engine/lighting"
	"github.com/Faultbox/castleview/internal/engine/picking"
	"github.com/Faultbox/castleview/internal/engine/scene"
	"github.com/Faultbox/castleview/internal/motion"
	"github.com/Faultbox/castleview/internal/state"
)

func assertVecNear(t *testing.T, want, got mgl32.Vec3, tol float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], tol, "want %v, got %v", want, got)
	}
}

type recorder struct{ events []string }

func (r *recorder) add(e string) { r.events = append(r.events, e) }

type fakeRaster struct {
	rec      *recorder
	viewport [2]int32
	color    mgl32.Vec3
}

func (f *fakeRaster) Viewport(w, h int32)    { f.viewport = [2]int32{w, h}; f.rec.add("viewport") }
func (f *fakeRaster) Clear(color mgl32.Vec3) { f.color = color; f.rec.add("clear") }

type fakeScene struct {
	rec   *recorder
	view  scene.View
	blinn bool
}

func (f *fakeScene) Render(v scene.View, rig *lighting.Rig, blinn bool) {
	f.view, f.blinn = v, blinn
	f.rec.add("scene")
}

type fakeSkybox struct {
	rec  *recorder
	view mgl32.Mat4
}

func (f *fakeSkybox) Draw(view, projection mgl32.Mat4) { f.view = view; f.rec.add("skybox") }

type fakeGUI struct{ rec *recorder }

func (f *fakeGUI) Draw(ctx *Context) { f.rec.add("gui") }

type fakeCapturer struct {
	rec *recorder
	err error
}

func (f *fakeCapturer) Capture(w, h int32) (string, error) {
	f.rec.add("capture")
	if f.err != nil {
		return "", f.err
	}
	return "screenshots/shot.png", nil
}

type fakePicker struct {
	ray picking.Ray
	hit *scene.Object
	n   int
}

func (f *fakePicker) Pick(r picking.Ray) *scene.Object {
	f.ray = r
	f.n++
	return f.hit
}

type pathTarget struct{ rec *recorder }

func (p *pathTarget) SetPosition(mgl32.Vec3) { p.rec.add("advance") }
func (p *pathTarget) SetRotation(mgl32.Quat) {}

type harness struct {
	rec    *recorder
	raster *fakeRaster
	scene  *fakeScene
	sky    *fakeSkybox
	shots  *fakeCapturer
	driver *Driver
}

func newHarness() *harness {
	rec := &recorder{}
	h := &harness{
		rec:    rec,
		raster: &fakeRaster{rec: rec},
		scene:  &fakeScene{rec: rec},
		sky:    &fakeSkybox{rec: rec},
		shots:  &fakeCapturer{rec: rec},
	}
	ctx := &Context{
		ClearColor: mgl32.Vec3{0.1, 0.1, 0.1},
		MouseLook:  true,
		Lights:     &lighting.Rig{},
		Camera:     camera.NewFlyCamera(mgl32.Vec3{0, 10, -8}, 90, -30),
		Width:      800,
		Height:     600,
	}
	ctx.Path = motion.NewAnimator(&pathTarget{rec: rec}, mgl32.Vec3{-14, 17, 400}, motion.DefaultParams())
	rec.events = nil

	h.driver = &Driver{
		Ctx:         ctx,
		Raster:      h.raster,
		Scene:       h.scene,
		Skybox:      h.sky,
		GUI:         &fakeGUI{rec: rec},
		Screenshots: h.shots,
		Near:        0.1,
		Far:         100,
	}
	return h
}

func TestFrameOrder(t *testing.T) {
	h := newHarness()
	h.driver.Ctx.SkyboxEnabled = true
	h.driver.Ctx.SetGUI(true)

	var in input.Frame
	in.Trigger(input.ActionScreenshot)
	require.True(t, h.driver.Frame(&in))

	assert.Equal(t, []string{"clear", "scene", "advance", "skybox", "capture", "gui"}, h.rec.events)
	assert.Equal(t, uint64(1), h.driver.Ctx.Frames)
	assert.Equal(t, "screenshots/shot.png", h.driver.Ctx.LastScreenshot)
}

func TestFrameOptionalStagesOff(t *testing.T) {
	h := newHarness()
	h.driver.Skybox = nil
	h.driver.GUI = nil
	h.driver.Ctx.SkyboxEnabled = true
	h.driver.Ctx.ShowGUI = true

	var in input.Frame
	require.True(t, h.driver.Frame(&in))
	assert.Equal(t, []string{"clear", "scene", "advance"}, h.rec.events)
}

func TestQuitRendersNothing(t *testing.T) {
	h := newHarness()
	var in input.Frame
	in.Trigger(input.ActionQuit)

	assert.False(t, h.driver.Frame(&in))
	assert.Empty(t, h.rec.events)
	assert.Zero(t, h.driver.Ctx.Frames)
}

func TestToggleGUIControlsMouseLook(t *testing.T) {
	h := newHarness()
	ctx := h.driver.Ctx
	yaw := ctx.Camera.Yaw

	var in input.Frame
	in.Trigger(input.ActionToggleGUI)
	in.MouseDX = 50
	h.driver.Frame(&in)

	assert.True(t, ctx.ShowGUI)
	assert.False(t, ctx.MouseLook)
	assert.Equal(t, yaw, ctx.Camera.Yaw, "mouse must not turn the camera while the GUI is up")

	in.Reset()
	in.Trigger(input.ActionToggleGUI)
	in.MouseDX = 50
	h.driver.Frame(&in)

	assert.False(t, ctx.ShowGUI)
	assert.True(t, ctx.MouseLook)
	assert.InDelta(t, yaw+50*ctx.Camera.Sensitivity, ctx.Camera.Yaw, 1e-4)
}

func TestMouseUpLooksUp(t *testing.T) {
	h := newHarness()
	pitch := h.driver.Ctx.Camera.Pitch

	var in input.Frame
	in.MouseDY = -10
	h.driver.Frame(&in)
	assert.Greater(t, h.driver.Ctx.Camera.Pitch, pitch)
}

func TestToggleBlinnReachesScene(t *testing.T) {
	h := newHarness()

	var in input.Frame
	in.Trigger(input.ActionToggleBlinn)
	h.driver.Frame(&in)
	assert.True(t, h.scene.blinn)

	in.Reset()
	h.driver.Frame(&in)
	assert.True(t, h.scene.blinn, "blinn persists without a new toggle")
}

func TestMovementScalesWithFrameTime(t *testing.T) {
	h := newHarness()
	cam := h.driver.Ctx.Camera
	start, front := cam.Position, cam.Front

	var in input.Frame
	in.SetHeld(input.MoveForward, true)
	in.DeltaSeconds = 0.5
	h.driver.Frame(&in)

	want := start.Add(front.Mul(cam.Speed * 0.5))
	assertVecNear(t, want, cam.Position, 1e-5)
	assert.Equal(t, cam.Position, h.scene.view.Eye)
}

func TestResizeUpdatesViewportAndAspect(t *testing.T) {
	h := newHarness()

	var in input.Frame
	in.Resize, in.Width, in.Height = true, 1600, 400
	h.driver.Frame(&in)

	assert.Equal(t, [2]int32{1600, 400}, h.raster.viewport)
	assert.Equal(t, float32(4), h.driver.Ctx.Aspect())
	want := h.driver.Ctx.Camera.Projection(4, 0.1, 100)
	assert.Equal(t, want, h.scene.view.Projection)
}

func TestMinimizedAspect(t *testing.T) {
	ctx := &Context{Width: 800, Height: 0}
	assert.Equal(t, float32(1), ctx.Aspect())
}

func TestSkyboxViewHasNoTranslation(t *testing.T) {
	h := newHarness()
	h.driver.Ctx.SkyboxEnabled = true

	var in input.Frame
	h.driver.Frame(&in)

	col := h.sky.view.Col(3)
	assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, col)
	assert.Equal(t, h.scene.view.View.Mat3(), h.sky.view.Mat3())
}

func TestScreenshotFailureIsNotFatal(t *testing.T) {
	h := newHarness()
	h.shots.err = errors.New("read pixels")

	var in input.Frame
	in.Trigger(input.ActionScreenshot)
	assert.True(t, h.driver.Frame(&in))
	assert.Empty(t, h.driver.Ctx.LastScreenshot)
}

func TestSnapshotRestore(t *testing.T) {
	h := newHarness()
	ctx := h.driver.Ctx

	want := state.Snapshot{
		ClearColor:     mgl32.Vec3{0.1, 0.2, 0.3},
		GUIEnabled:     true,
		CameraPosition: mgl32.Vec3{1, 2, 3},
		CameraFront:    mgl32.Vec3{0, 0, -1},
	}
	ctx.Restore(want)

	assert.False(t, ctx.MouseLook)
	got := ctx.Snapshot()
	assert.Equal(t, want.ClearColor, got.ClearColor)
	assert.Equal(t, want.GUIEnabled, got.GUIEnabled)
	assert.Equal(t, want.CameraPosition, got.CameraPosition)
	assert.Equal(t, want.CameraFront, got.CameraFront)
}

func TestRestoreKeepsSavedFront(t *testing.T) {
	for _, front := range []mgl32.Vec3{
		{0, 0, -1},
		{0, 1, 0},
		{0.12345678, -0.5, 0.85},
	} {
		ctx := newHarness().driver.Ctx
		ctx.Restore(state.Snapshot{CameraFront: front})
		assert.Equal(t, front, ctx.Snapshot().CameraFront)
	}
}

func TestPickSelectsObject(t *testing.T) {
	h := newHarness()
	ctx := h.driver.Ctx
	ctx.SetGUI(true)

	obj := &scene.Object{Name: "tank"}
	p := &fakePicker{hit: obj}
	h.driver.Picker = p

	var in input.Frame
	in.Trigger(input.ActionPick)
	in.CursorX, in.CursorY = 400, 300
	h.driver.Frame(&in)

	require.Equal(t, 1, p.n)
	assert.Same(t, obj, ctx.Selected)
	// the center pixel looks along the camera front
	assertVecNear(t, ctx.Camera.Front, p.ray.Direction, 1e-3)

	p.hit = nil
	h.driver.Frame(&in)
	assert.Nil(t, ctx.Selected, "clicking empty space clears the selection")
}

func TestPickIgnoredDuringMouseLook(t *testing.T) {
	h := newHarness()
	p := &fakePicker{hit: &scene.Object{Name: "rock"}}
	h.driver.Picker = p

	var in input.Frame
	in.Trigger(input.ActionPick)
	h.driver.Frame(&in)

	assert.Zero(t, p.n)
	assert.Nil(t, h.driver.Ctx.Selected)
}
