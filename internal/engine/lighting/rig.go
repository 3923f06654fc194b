package lighting

import "github.com/Faultbox/castleview/internal/config"

// NewRig builds the light rig from configuration.
func NewRig(cfg config.LightingConfig) *Rig {
	r := &Rig{
		Point:        pointFrom(cfg.Point),
		SpotsEnabled: cfg.SpotlightsEnabled,
	}
	for i, sc := range cfg.Spotlights {
		r.Spots[i] = NewSpotLight(pointFrom(sc.PointLightConfig), sc.Direction, sc.CutOffDeg, sc.OuterCutOffDeg)
	}
	return r
}

func pointFrom(c config.PointLightConfig) PointLight {
	return PointLight{
		Position:  c.Position,
		Ambient:   c.Ambient,
		Diffuse:   c.Diffuse,
		Specular:  c.Specular,
		Constant:  c.Constant,
		Linear:    c.Linear,
		Quadratic: c.Quadratic,
	}
}
