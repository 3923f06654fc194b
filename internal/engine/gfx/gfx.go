// Package gfx declares the narrow rendering interfaces that scene logic
// draws through. The GL implementations live in the sibling engine packages;
// tests substitute recording fakes.
package gfx

import "github.com/go-gl/mathgl/mgl32"

// Uniforms sets named uniforms on the active program.
type Uniforms interface {
	SetInt(name string, v int32)
	SetFloat(name string, v float32)
	SetBool(name string, v bool)
	SetVec3(name string, v mgl32.Vec3)
	SetMat4(name string, m mgl32.Mat4)
}

// Program is a linked shading program.
type Program interface {
	Uniforms
	Use()
}

// Drawable is a model that can issue its draw calls with a program.
type Drawable interface {
	Draw(p Program)
	// SetMaterialPrefix sets the struct name material samplers are bound
	// under, e.g. "material." for "material.texture_diffuse1".
	SetMaterialPrefix(prefix string)
}

// RasterState toggles fixed-function state between draws.
type RasterState interface {
	SetCulling(enabled bool)
}

// DepthTarget is an off-screen depth-only render target.
type DepthTarget interface {
	// Bind redirects rendering into the target and clears its depth.
	Bind()
	// Unbind restores the default framebuffer and viewport.
	Unbind()
	// BindTexture binds the depth texture to texture unit index unit.
	BindTexture(unit int32)
	Resolution() int32
}

// Bounded is implemented by drawables that know their local bounding box.
type Bounded interface {
	Bounds() (lo, hi mgl32.Vec3)
}
