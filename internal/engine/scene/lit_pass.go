package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/castleview/internal/engine/gfx"
	"github.com/Faultbox/castleview/internal/engine/lighting"
)

// DepthMapUnit is the texture unit the shadow cubemap is sampled from.
// Units below it are left to model materials.
const DepthMapUnit int32 = 8

// View holds the camera matrices of one frame.
type View struct {
	Projection mgl32.Mat4
	View       mgl32.Mat4
	Eye        mgl32.Vec3
}

// LitPass shades the scene with the light rig and the shadow cubemap.
type LitPass struct {
	Program   gfx.Program
	Raster    gfx.RasterState
	Depth     gfx.DepthTarget
	Shininess float32
	ShadowFar float32
}

// Render uploads the frame uniforms in a fixed order, then draws objects.
// Double-sided objects draw with culling off; it is back on afterwards.
func (p *LitPass) Render(v View, rig *lighting.Rig, blinn bool, objects []*Object) {
	prog := p.Program
	prog.Use()

	rig.Point.Apply(prog, "pointLight.")
	prog.SetVec3("viewPosition", v.Eye)
	prog.SetFloat("material.shininess", p.Shininess)
	prog.SetMat4("projection", v.Projection)
	prog.SetMat4("view", v.View)
	prog.SetFloat("far_plane", p.ShadowFar)
	p.Depth.BindTexture(DepthMapUnit)
	prog.SetInt("depthMap", DepthMapUnit)
	rig.ApplySpots(prog)
	prog.SetBool("blinn", blinn)

	for _, o := range objects {
		if o.DoubleSided {
			p.Raster.SetCulling(false)
			o.Render(prog)
			p.Raster.SetCulling(true)
			continue
		}
		o.Render(prog)
	}
}
