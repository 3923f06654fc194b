// Package lighting holds the scene light rig and its uniform upload.
package lighting

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/castleview/internal/engine/gfx"
)

// PointLight is an attenuated omnidirectional light.
type PointLight struct {
	Position mgl32.Vec3
	Ambient  mgl32.Vec3
	Diffuse  mgl32.Vec3
	Specular mgl32.Vec3

	Constant  float32
	Linear    float32
	Quadratic float32
}

// Apply uploads the light under prefix, e.g. "pointLight.".
// Fields go out in declaration order.
func (l *PointLight) Apply(u gfx.Uniforms, prefix string) {
	u.SetVec3(prefix+"position", l.Position)
	u.SetVec3(prefix+"ambient", l.Ambient)
	u.SetVec3(prefix+"diffuse", l.Diffuse)
	u.SetVec3(prefix+"specular", l.Specular)
	u.SetFloat(prefix+"constant", l.Constant)
	u.SetFloat(prefix+"linear", l.Linear)
	u.SetFloat(prefix+"quadratic", l.Quadratic)
}

// Attenuation returns the light's falloff factor at distance d.
func (l *PointLight) Attenuation(d float32) float32 {
	return 1.0 / (l.Constant + l.Linear*d + l.Quadratic*d*d)
}
