// Package scene holds the placed scene objects and the two render passes
// that draw them: the depth cubemap pass around the point light followed by
// the lit pass that samples it.
package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/castleview/internal/config"
	"github.com/Faultbox/castleview/internal/engine/gfx"
	"github.com/Faultbox/castleview/internal/engine/lighting"
	"github.com/Faultbox/castleview/internal/logger"
)

// MaterialPrefix is the uniform struct the lit shader reads material samplers from.
const MaterialPrefix = "material."

// ModelLoader resolves a model path to a drawable shared between objects.
type ModelLoader interface {
	Load(path string) (gfx.Drawable, error)
}

// Scene is the ordered set of objects plus the passes that render them.
type Scene struct {
	Objects []*Object
	Shadow  ShadowPass
	Lit     LitPass
}

// Build places every configured object. It stops at the first model that
// fails to load.
func Build(layout []config.ObjectConfig, models ModelLoader) ([]*Object, error) {
	objects := make([]*Object, 0, len(layout))
	for _, oc := range layout {
		m, err := models.Load(oc.Model)
		if err != nil {
			return nil, fmt.Errorf("object %q: %w", oc.Name, err)
		}
		m.SetMaterialPrefix(MaterialPrefix)
		obj, err := NewObject(oc.Name, m)
		if err != nil {
			return nil, fmt.Errorf("object %q: %w", oc.Name, err)
		}
		obj.DoubleSided = oc.DoubleSided
		obj.SetScale(mgl32.Vec3{oc.Scale, oc.Scale, oc.Scale})
		if oc.RotationDeg != 0 {
			obj.Rotate(mgl32.QuatRotate(mgl32.DegToRad(oc.RotationDeg), mgl32.Vec3{0, 1, 0}))
		}
		obj.Translate(oc.Position)

		logger.Debug("object placed",
			zap.String("name", obj.Name),
			zap.Stringer("id", obj.ID),
			zap.String("model", oc.Model),
			zap.Float32("scale", oc.Scale))
		objects = append(objects, obj)
	}
	return objects, nil
}

// Find returns the object named name, or nil.
func (s *Scene) Find(name string) *Object {
	for _, o := range s.Objects {
		if o.Name == name {
			return o
		}
	}
	return nil
}

// Render runs the shadow pass and then the lit pass. The lit pass samples
// the cubemap the shadow pass has just written.
func (s *Scene) Render(v View, rig *lighting.Rig, blinn bool) {
	s.Shadow.Render(rig.Point.Position, s.Objects)
	s.Lit.Render(v, rig, blinn, s.Objects)
}
