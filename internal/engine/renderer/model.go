package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/castleview/internal/engine/gfx"
	"github.com/Faultbox/castleview/internal/engine/model"
)

// Texture units used by material samplers. The shadow cube map sits above them.
const (
	DiffuseUnit  int32 = 0
	SpecularUnit int32 = 1
)

type drawGroup struct {
	start    int32
	count    int32
	diffuse  uint32
	specular uint32
}

// Model is an uploaded mesh with its material textures. It implements
// gfx.Drawable. Textures are owned by the Models library, not the model.
type Model struct {
	vao    uint32
	vbo    uint32
	ebo    uint32
	groups []drawGroup
	prefix string
	bounds model.Bounds

	diffuseName  string
	specularName string
}

// materialTextures returns the diffuse and specular texture ids of a material.
type materialTextures func(m model.Material) (diffuse, specular uint32)

// upload creates the vertex array for mesh. textures resolves one id pair per
// material.
func upload(asset *model.Asset, textures materialTextures) *Model {
	mesh := asset.Mesh
	m := &Model{bounds: mesh.Bounds}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	stride := int32(unsafe.Sizeof(model.Vertex{}))
	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*int(stride), gl.Ptr(mesh.Vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)

	// Position (location = 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, unsafe.Offsetof(model.Vertex{}.Position))
	gl.EnableVertexAttribArray(0)
	// Normal (location = 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, unsafe.Offsetof(model.Vertex{}.Normal))
	gl.EnableVertexAttribArray(1)
	// TexCoord (location = 2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, unsafe.Offsetof(model.Vertex{}.TexCoord))
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)

	for _, g := range mesh.Groups {
		diffuse, specular := textures(asset.Materials[g.Material])
		m.groups = append(m.groups, drawGroup{
			start:    g.StartIndex,
			count:    g.IndexCount,
			diffuse:  diffuse,
			specular: specular,
		})
	}
	m.SetMaterialPrefix("")
	return m
}

// SetMaterialPrefix sets the struct name the samplers are uploaded under.
func (m *Model) SetMaterialPrefix(prefix string) {
	m.prefix = prefix
	m.diffuseName = prefix + "texture_diffuse1"
	m.specularName = prefix + "texture_specular1"
}

// Bounds returns the local bounding box. It implements gfx.Bounded.
func (m *Model) Bounds() (lo, hi mgl32.Vec3) {
	return mgl32.Vec3(m.bounds.Min), mgl32.Vec3(m.bounds.Max)
}

// Draw issues one indexed draw per material group.
func (m *Model) Draw(p gfx.Program) {
	p.SetInt(m.diffuseName, DiffuseUnit)
	p.SetInt(m.specularName, SpecularUnit)

	gl.BindVertexArray(m.vao)
	for _, g := range m.groups {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(DiffuseUnit))
		gl.BindTexture(gl.TEXTURE_2D, g.diffuse)
		gl.ActiveTexture(gl.TEXTURE0 + uint32(SpecularUnit))
		gl.BindTexture(gl.TEXTURE_2D, g.specular)
		gl.DrawElementsWithOffset(gl.TRIANGLES, g.count, gl.UNSIGNED_INT, uintptr(g.start)*4)
	}
	gl.BindVertexArray(0)
	gl.ActiveTexture(gl.TEXTURE0)
}

// Destroy releases the vertex array and buffers.
func (m *Model) Destroy() {
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
		m.ebo = 0
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
}
