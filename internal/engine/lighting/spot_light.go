package lighting

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/castleview/internal/engine/gfx"
)

// SpotLightCount is the fixed size of the spotlight array in the lit shader.
const SpotLightCount = 2

// SpotLight is a cone light. CutOff and OuterCutOff are cosines of the
// inner and outer half-angles.
type SpotLight struct {
	PointLight
	Direction   mgl32.Vec3
	CutOff      float32
	OuterCutOff float32
}

// NewSpotLight builds a spotlight from cone half-angles in degrees.
func NewSpotLight(base PointLight, direction mgl32.Vec3, cutOffDeg, outerCutOffDeg float32) SpotLight {
	if direction.Len() > 0 {
		direction = direction.Normalize()
	}
	return SpotLight{
		PointLight:  base,
		Direction:   direction,
		CutOff:      math32.Cos(mgl32.DegToRad(cutOffDeg)),
		OuterCutOff: math32.Cos(mgl32.DegToRad(outerCutOffDeg)),
	}
}

// Apply uploads the spotlight under prefix, e.g. "spotLights[0].".
func (s *SpotLight) Apply(u gfx.Uniforms, prefix string) {
	s.PointLight.Apply(u, prefix)
	u.SetVec3(prefix+"direction", s.Direction)
	u.SetFloat(prefix+"cutOff", s.CutOff)
	u.SetFloat(prefix+"outerCutOff", s.OuterCutOff)
}

// SpotPrefix returns the uniform prefix of spotlight i.
func SpotPrefix(i int) string {
	return fmt.Sprintf("spotLights[%d].", i)
}

// Rig is the full light set of the scene.
type Rig struct {
	Point        PointLight
	Spots        [SpotLightCount]SpotLight
	SpotsEnabled bool
}

// ApplySpots uploads both spotlights when enabled, then the enable flag.
func (r *Rig) ApplySpots(u gfx.Uniforms) {
	if r.SpotsEnabled {
		for i := range r.Spots {
			r.Spots[i].Apply(u, SpotPrefix(i))
		}
	}
	u.SetBool("spotLightsEnabled", r.SpotsEnabled)
}
