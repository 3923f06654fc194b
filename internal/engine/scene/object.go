package scene

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/Faultbox/castleview/internal/engine/gfx"
)

// ErrNoModel is returned when an object is created without a model.
var ErrNoModel = errors.New("scene object has no model")

// Object is a placed instance of a shared model.
//
// The model matrix is R·S·T(position): the position is given in the
// object's rotated, scaled local frame.
type Object struct {
	ID          uuid.UUID
	Name        string
	DoubleSided bool // render with face culling disabled

	model    gfx.Drawable
	position mgl32.Vec3
	rotation mgl32.Quat
	scale    mgl32.Vec3
}

// NewObject wraps model at the origin with identity rotation and unit scale.
func NewObject(name string, model gfx.Drawable) (*Object, error) {
	if model == nil {
		return nil, ErrNoModel
	}
	return &Object{
		ID:       uuid.New(),
		Name:     name,
		model:    model,
		rotation: mgl32.QuatIdent(),
		scale:    mgl32.Vec3{1, 1, 1},
	}, nil
}

// SetPosition places the object in its rotated, scaled local frame.
func (o *Object) SetPosition(p mgl32.Vec3) { o.position = p }

// Translate moves the object by d in the same frame as SetPosition.
func (o *Object) Translate(d mgl32.Vec3) { o.position = o.position.Add(d) }

// SetRotation replaces the accumulated rotation.
func (o *Object) SetRotation(q mgl32.Quat) { o.rotation = q.Normalize() }

// Rotate composes q into the accumulated rotation.
func (o *Object) Rotate(q mgl32.Quat) { o.rotation = o.rotation.Mul(q).Normalize() }

// SetScale sets the per-axis scale.
func (o *Object) SetScale(s mgl32.Vec3) { o.scale = s }

// Position returns the local-frame position.
func (o *Object) Position() mgl32.Vec3 { return o.position }

// Rotation returns the accumulated unit rotation.
func (o *Object) Rotation() mgl32.Quat { return o.rotation }

// Scale returns the per-axis scale.
func (o *Object) Scale() mgl32.Vec3 { return o.scale }

// Model returns the shared model.
func (o *Object) Model() gfx.Drawable { return o.model }

// ModelMatrix composes R·S·T(position).
func (o *Object) ModelMatrix() mgl32.Mat4 {
	return o.rotation.Mat4().
		Mul4(mgl32.Scale3D(o.scale.X(), o.scale.Y(), o.scale.Z())).
		Mul4(mgl32.Translate3D(o.position.X(), o.position.Y(), o.position.Z()))
}

// WorldPosition returns where the object's origin lands in world space.
func (o *Object) WorldPosition() mgl32.Vec3 {
	return o.ModelMatrix().Col(3).Vec3()
}

// Render uploads the model matrix to the active program and draws.
func (o *Object) Render(p gfx.Program) {
	p.SetMat4("model", o.ModelMatrix())
	o.model.Draw(p)
}
