package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/castleview/internal/frame"
)

// Panels is the debug overlay. It edits the frame context in place.
type Panels struct {
	ModelStats func() string // optional, shown under Scene
}

// Draw implements frame.Overlay.
func (p *Panels) Draw(ctx *frame.Context) {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondFirstUseEver, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(340, 0), imgui.CondFirstUseEver)
	if imgui.BeginV("Scene", nil, imgui.WindowFlagsNoCollapse) {
		p.drawScene(ctx)
		imgui.Spacing()
		drawLights(ctx)
		imgui.Spacing()
		drawCamera(ctx)
		if ctx.Path != nil {
			imgui.Spacing()
			drawPath(ctx)
		}
		imgui.Spacing()
		drawSelection(ctx)
	}
	imgui.End()
}

func (p *Panels) drawScene(ctx *frame.Context) {
	io := imgui.CurrentIO()
	imgui.Text(fmt.Sprintf("%.1f FPS (%.2f ms)", io.Framerate(), 1000/max(io.Framerate(), 1)))
	imgui.Text(fmt.Sprintf("Frame %d  %dx%d", ctx.Frames, ctx.Width, ctx.Height))
	if p.ModelStats != nil {
		imgui.TextDisabled(p.ModelStats())
	}
	imgui.Separator()

	editColor("Clear color", &ctx.ClearColor)
	imgui.Checkbox("Blinn-Phong", &ctx.Blinn)
	imgui.Checkbox("Skybox", &ctx.SkyboxEnabled)
	if ctx.LastScreenshot != "" {
		imgui.TextDisabled("Last screenshot: " + ctx.LastScreenshot)
	}
}

func drawLights(ctx *frame.Context) {
	if !imgui.TreeNodeExStrV("Lights", imgui.TreeNodeFlagsDefaultOpen) {
		return
	}
	point := &ctx.Lights.Point
	editVec3("Position", &point.Position, 0.1)
	editColor("Ambient", &point.Ambient)
	editColor("Diffuse", &point.Diffuse)
	editColor("Specular", &point.Specular)
	imgui.DragFloatV("Constant", &point.Constant, 0.01, 0, 10, "%.3f", imgui.SliderFlagsNone)
	imgui.DragFloatV("Linear", &point.Linear, 0.001, 0, 1, "%.4f", imgui.SliderFlagsNone)
	imgui.DragFloatV("Quadratic", &point.Quadratic, 0.0001, 0, 1, "%.5f", imgui.SliderFlagsNone)

	imgui.Separator()
	imgui.Checkbox("Spotlights", &ctx.Lights.SpotsEnabled)
	imgui.BeginDisabledV(!ctx.Lights.SpotsEnabled)
	for i := range ctx.Lights.Spots {
		spot := &ctx.Lights.Spots[i]
		editVec3(fmt.Sprintf("Spot %d position", i), &spot.Position, 0.1)
		editColor(fmt.Sprintf("Spot %d diffuse", i), &spot.Diffuse)
	}
	imgui.EndDisabled()
	imgui.TreePop()
}

func drawCamera(ctx *frame.Context) {
	if !imgui.TreeNodeExStrV("Camera", imgui.TreeNodeFlagsDefaultOpen) {
		return
	}
	cam := ctx.Camera
	imgui.Text(fmt.Sprintf("Position  %.2f %.2f %.2f", cam.Position.X(), cam.Position.Y(), cam.Position.Z()))
	imgui.Text(fmt.Sprintf("Yaw %.1f  Pitch %.1f  FOV %.1f", cam.Yaw, cam.Pitch, cam.Zoom))
	imgui.DragFloatV("Speed", &cam.Speed, 0.1, 0.1, 50, "%.1f", imgui.SliderFlagsNone)
	imgui.Checkbox("Mouse look", &ctx.MouseLook)
	imgui.TextDisabled("F1 toggles the GUI and mouse look")
	imgui.TreePop()
}

func drawPath(ctx *frame.Context) {
	if !imgui.TreeNodeExStrV("Path", imgui.TreeNodeFlagsDefaultOpen) {
		return
	}
	a := ctx.Path
	cur := a.Current()
	imgui.Text("Phase: " + a.Phase().String())
	imgui.Text(fmt.Sprintf("Walked %d  Cycles %d", a.Walked(), a.Cycles()))
	imgui.Text(fmt.Sprintf("At %.1f %.1f %.1f", cur.X(), cur.Y(), cur.Z()))
	if a.Waiting() {
		imgui.TextColored(imgui.NewVec4(1, 0.8, 0.2, 1), "waiting")
	}
	imgui.TreePop()
}

func drawSelection(ctx *frame.Context) {
	if !imgui.TreeNodeExStrV("Selection", imgui.TreeNodeFlagsDefaultOpen) {
		return
	}
	defer imgui.TreePop()

	o := ctx.Selected
	if o == nil {
		imgui.TextDisabled("Click an object to select it")
		return
	}
	world := o.WorldPosition()
	imgui.Text(o.Name)
	imgui.TextDisabled(o.ID.String())
	imgui.Text(fmt.Sprintf("World %.2f %.2f %.2f", world.X(), world.Y(), world.Z()))
	imgui.Text(fmt.Sprintf("Scale %.3f", o.Scale().X()))
	if box, ok := o.WorldBounds(); ok {
		size := box.Max.Sub(box.Min)
		imgui.Text(fmt.Sprintf("Size  %.2f %.2f %.2f", size.X(), size.Y(), size.Z()))
	}
	imgui.Checkbox("Double sided", &o.DoubleSided)
	if imgui.Button("Deselect") {
		ctx.Selected = nil
	}
}

func editColor(label string, v *mgl32.Vec3) bool {
	return imgui.ColorEdit3(label, (*[3]float32)(v))
}

func editVec3(label string, v *mgl32.Vec3, speed float32) bool {
	return imgui.DragFloat3V(label, (*[3]float32)(v), speed, 0, 0, "%.2f", imgui.SliderFlagsNone)
}
