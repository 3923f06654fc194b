// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// LightingVertexShader transforms model vertices for the lit pass.
//
//go:embed lighting.vert
var LightingVertexShader string

// LightingFragmentShader shades with the point light, the spotlights and
// the omnidirectional shadow.
//
//go:embed lighting.frag
var LightingFragmentShader string

// DepthVertexShader moves vertices to world space for the shadow pass.
//
//go:embed depth.vert
var DepthVertexShader string

// DepthGeometryShader emits each triangle once per cube face.
//
//go:embed depth.geom
var DepthGeometryShader string

// DepthFragmentShader writes linear light distance as depth.
//
//go:embed depth.frag
var DepthFragmentShader string

//go:embed skybox.vert
var SkyboxVertexShader string

//go:embed skybox.frag
var SkyboxFragmentShader string
