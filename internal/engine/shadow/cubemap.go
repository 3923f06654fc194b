// Package shadow provides the omnidirectional shadow map of the point light.
package shadow

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// DefaultResolution is the edge length of each cube face.
const DefaultResolution = 1024

// CubeMap is a depth-only cube map framebuffer. Each face stores linear
// light distance divided by the far plane. It implements gfx.DepthTarget.
type CubeMap struct {
	FBO          uint32
	DepthTexture uint32
	resolution   int32
	prevFBO      int32
	prevViewport [4]int32
}

// NewCubeMap allocates the depth cube map and its framebuffer.
func NewCubeMap(resolution int32) (*CubeMap, error) {
	if resolution <= 0 {
		resolution = DefaultResolution
	}
	cm := &CubeMap{resolution: resolution}

	gl.GenTextures(1, &cm.DepthTexture)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, cm.DepthTexture)
	for face := uint32(0); face < 6; face++ {
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+face, 0, gl.DEPTH_COMPONENT,
			resolution, resolution, 0, gl.DEPTH_COMPONENT, gl.FLOAT, nil)
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)

	// The geometry shader picks the layer, so the whole cube is attached.
	gl.GenFramebuffers(1, &cm.FBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, cm.FBO)
	gl.FramebufferTexture(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, cm.DepthTexture, 0)
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		cm.Destroy()
		return nil, fmt.Errorf("shadow cube map incomplete: 0x%x", status)
	}
	return cm, nil
}

// Bind targets the cube map for the depth pass and sizes the viewport to it.
// The previous framebuffer may be an off-screen scene target.
func (cm *CubeMap) Bind() {
	gl.GetIntegerv(gl.FRAMEBUFFER_BINDING, &cm.prevFBO)
	gl.GetIntegerv(gl.VIEWPORT, &cm.prevViewport[0])

	gl.BindFramebuffer(gl.FRAMEBUFFER, cm.FBO)
	gl.Viewport(0, 0, cm.resolution, cm.resolution)
	gl.Clear(gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
}

// Unbind restores the previous framebuffer and viewport.
func (cm *CubeMap) Unbind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(cm.prevFBO))
	gl.Viewport(cm.prevViewport[0], cm.prevViewport[1], cm.prevViewport[2], cm.prevViewport[3])
}

// BindTexture binds the depth cube to a texture unit index (0 for GL_TEXTURE0).
func (cm *CubeMap) BindTexture(unit int32) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, cm.DepthTexture)
}

// Resolution returns the face edge length.
func (cm *CubeMap) Resolution() int32 {
	return cm.resolution
}

// Destroy releases all GPU resources associated with this shadow map.
func (cm *CubeMap) Destroy() {
	if cm.FBO != 0 {
		gl.DeleteFramebuffers(1, &cm.FBO)
		cm.FBO = 0
	}
	if cm.DepthTexture != 0 {
		gl.DeleteTextures(1, &cm.DepthTexture)
		cm.DepthTexture = 0
	}
}
