package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/castleview/internal/engine/gfx"
)

// CubeFaces is the number of faces rendered by the shadow pass.
const CubeFaces = 6

// cubeFace holds the look direction and up vector of one cubemap face,
// in the GL face order +X, -X, +Y, -Y, +Z, -Z.
var cubeFace = [CubeFaces]struct{ dir, up mgl32.Vec3 }{
	{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, -1, 0}},
	{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, -1, 0}},
	{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}},
	{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{0, 0, -1}},
	{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, -1, 0}},
	{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, -1, 0}},
}

// CubeFaceMatrices returns projection·view for the six faces around the light.
func CubeFaceMatrices(lightPos mgl32.Vec3, near, far float32) [CubeFaces]mgl32.Mat4 {
	proj := mgl32.Perspective(mgl32.DegToRad(90), 1.0, near, far)

	var out [CubeFaces]mgl32.Mat4
	for i, f := range cubeFace {
		view := mgl32.LookAtV(lightPos, lightPos.Add(f.dir), f.up)
		out[i] = proj.Mul4(view)
	}
	return out
}

// shadowMatrixNames avoids formatting six names every frame.
var shadowMatrixNames = func() [CubeFaces]string {
	var n [CubeFaces]string
	for i := range n {
		n[i] = fmt.Sprintf("shadowMatrices[%d]", i)
	}
	return n
}()

// ShadowPass renders distance-to-light into the depth cube target.
type ShadowPass struct {
	Program gfx.Program
	Target  gfx.DepthTarget
	Near    float32
	Far     float32
}

// Render draws every object into the depth target from lightPos.
func (p *ShadowPass) Render(lightPos mgl32.Vec3, objects []*Object) {
	faces := CubeFaceMatrices(lightPos, p.Near, p.Far)

	p.Target.Bind()
	defer p.Target.Unbind()

	p.Program.Use()
	for i, m := range faces {
		p.Program.SetMat4(shadowMatrixNames[i], m)
	}
	p.Program.SetFloat("far_plane", p.Far)
	p.Program.SetVec3("lightPos", lightPos)

	for _, o := range objects {
		o.Render(p.Program)
	}
}
