// Package camera provides the first-person fly camera used to inspect the scene.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/castleview/internal/config"
)

// Movement is a held movement key direction.
type Movement int

const (
	Forward Movement = iota
	Backward
	Left
	Right
)

// Limits for pitch and zoom.
const (
	MaxPitch = 89.0
	MinZoom  = 1.0
	MaxZoom  = 45.0
)

// FlyCamera is a yaw/pitch camera with a zoomable field of view.
// Angles are in degrees.
type FlyCamera struct {
	Position mgl32.Vec3
	Front    mgl32.Vec3
	Up       mgl32.Vec3
	Right    mgl32.Vec3
	WorldUp  mgl32.Vec3

	Yaw   float32
	Pitch float32
	Zoom  float32 // vertical field of view

	Speed       float32 // units per second
	Sensitivity float32 // degrees per pixel
}

// NewFlyCamera creates a camera at position facing along yaw and pitch.
func NewFlyCamera(position mgl32.Vec3, yaw, pitch float32) *FlyCamera {
	c := &FlyCamera{
		Position:    position,
		WorldUp:     mgl32.Vec3{0, 1, 0},
		Yaw:         yaw,
		Pitch:       pitch,
		Zoom:        MaxZoom,
		Speed:       2.5,
		Sensitivity: 0.1,
	}
	c.updateVectors()
	return c
}

// ViewMatrix returns the look-at matrix for the current pose.
func (c *FlyCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front), c.Up)
}

// Projection returns a perspective matrix using Zoom as the field of view.
func (c *FlyCamera) Projection(aspect, near, far float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.Zoom), aspect, near, far)
}

// Move translates the camera along its own axes for dt seconds.
func (c *FlyCamera) Move(dir Movement, dt float32) {
	v := c.Speed * dt
	switch dir {
	case Forward:
		c.Position = c.Position.Add(c.Front.Mul(v))
	case Backward:
		c.Position = c.Position.Sub(c.Front.Mul(v))
	case Left:
		c.Position = c.Position.Sub(c.Right.Mul(v))
	case Right:
		c.Position = c.Position.Add(c.Right.Mul(v))
	}
}

// Look turns the camera by a mouse offset in pixels. Positive dy looks up.
func (c *FlyCamera) Look(dx, dy float32) {
	c.Yaw += dx * c.Sensitivity
	c.Pitch = mgl32.Clamp(c.Pitch+dy*c.Sensitivity, -MaxPitch, MaxPitch)
	c.updateVectors()
}

// Scroll narrows or widens the field of view.
func (c *FlyCamera) Scroll(dy float32) {
	c.Zoom = mgl32.Clamp(c.Zoom-dy, MinZoom, MaxZoom)
}

// SetFront points the camera along front exactly as given. Yaw and pitch
// are derived from it so later mouse look continues from the same heading.
func (c *FlyCamera) SetFront(front mgl32.Vec3) {
	if front.Len() == 0 {
		return
	}
	f := front.Normalize()
	c.Pitch = mgl32.Clamp(mgl32.RadToDeg(math32.Asin(mgl32.Clamp(f.Y(), -1, 1))), -MaxPitch, MaxPitch)
	c.Yaw = mgl32.RadToDeg(math32.Atan2(f.Z(), f.X()))
	c.Front = front
	c.updateBasis()
}

func (c *FlyCamera) updateVectors() {
	yaw, pitch := mgl32.DegToRad(c.Yaw), mgl32.DegToRad(c.Pitch)
	c.Front = mgl32.Vec3{
		math32.Cos(yaw) * math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Sin(yaw) * math32.Cos(pitch),
	}.Normalize()
	c.updateBasis()
}

// updateBasis derives Right and Up from Front. Looking straight along
// WorldUp falls back to the yaw heading for Right.
func (c *FlyCamera) updateBasis() {
	right := c.Front.Cross(c.WorldUp)
	if right.Len() < 1e-6 {
		yaw := mgl32.DegToRad(c.Yaw)
		right = mgl32.Vec3{-math32.Sin(yaw), 0, math32.Cos(yaw)}
	}
	c.Right = right.Normalize()
	c.Up = c.Right.Cross(c.Front).Normalize()
}

// FromConfig creates the startup camera. Zero speed, sensitivity or zoom keep
// the defaults.
func FromConfig(cfg config.CameraConfig) *FlyCamera {
	c := NewFlyCamera(cfg.Position, cfg.Yaw, cfg.Pitch)
	if cfg.Zoom > 0 {
		c.Zoom = mgl32.Clamp(cfg.Zoom, MinZoom, MaxZoom)
	}
	if cfg.Speed > 0 {
		c.Speed = cfg.Speed
	}
	if cfg.Sensitivity > 0 {
		c.Sensitivity = cfg.Sensitivity
	}
	return c
}
