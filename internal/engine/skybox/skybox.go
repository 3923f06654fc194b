// Package skybox draws a cube-mapped backdrop behind the scene.
package skybox

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/castleview/internal/engine/shader"
	"github.com/Faultbox/castleview/internal/engine/shaders"
	"github.com/Faultbox/castleview/internal/engine/texture"
)

// Unit is the texture unit the cube map is sampled from.
const Unit int32 = 0

// cubeVertices is a unit cube seen from inside, 36 vertices.
var cubeVertices = []float32{
	-1, 1, -1, -1, -1, -1, 1, -1, -1, 1, -1, -1, 1, 1, -1, -1, 1, -1,
	-1, -1, 1, -1, -1, -1, -1, 1, -1, -1, 1, -1, -1, 1, 1, -1, -1, 1,
	1, -1, -1, 1, -1, 1, 1, 1, 1, 1, 1, 1, 1, 1, -1, 1, -1, -1,
	-1, -1, 1, -1, 1, 1, 1, 1, 1, 1, 1, 1, 1, -1, 1, -1, -1, 1,
	-1, 1, -1, 1, 1, -1, 1, 1, 1, 1, 1, 1, -1, 1, 1, -1, 1, -1,
	-1, -1, -1, -1, -1, 1, 1, -1, -1, 1, -1, -1, -1, -1, 1, 1, -1, 1,
}

// Skybox is a cube map plus the geometry and program that draw it.
// It implements frame.Backdrop.
type Skybox struct {
	program *shader.Program
	vao     uint32
	vbo     uint32
	cubeMap uint32
}

// New loads all six faces and uploads them. Nothing is uploaded unless every
// face decodes.
func New(src texture.Source, faces [texture.CubeFaces]string) (*Skybox, error) {
	images, err := texture.LoadCubeFaces(src, faces)
	if err != nil {
		return nil, err
	}

	prog, err := shader.New("skybox", shader.Sources{
		Vertex:   shaders.SkyboxVertexShader,
		Fragment: shaders.SkyboxFragmentShader,
	})
	if err != nil {
		return nil, err
	}

	s := &Skybox{program: prog, cubeMap: uploadCube(images)}

	gl.GenVertexArrays(1, &s.vao)
	gl.BindVertexArray(s.vao)
	gl.GenBuffers(1, &s.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(cubeVertices)*4, gl.Ptr(cubeVertices), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)

	prog.Use()
	prog.SetInt("skybox", Unit)
	return s, nil
}

// Draw renders the backdrop at maximum depth. view must carry no translation.
func (s *Skybox) Draw(view, projection mgl32.Mat4) {
	gl.DepthFunc(gl.LEQUAL)
	gl.Disable(gl.CULL_FACE)
	s.program.Use()
	s.program.SetMat4("view", view)
	s.program.SetMat4("projection", projection)

	gl.BindVertexArray(s.vao)
	gl.ActiveTexture(gl.TEXTURE0 + uint32(Unit))
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, s.cubeMap)
	gl.DrawArrays(gl.TRIANGLES, 0, 36)
	gl.BindVertexArray(0)
	gl.Enable(gl.CULL_FACE)
	gl.DepthFunc(gl.LESS)
}

// Destroy releases GPU resources.
func (s *Skybox) Destroy() {
	if s.cubeMap != 0 {
		gl.DeleteTextures(1, &s.cubeMap)
		s.cubeMap = 0
	}
	if s.vbo != 0 {
		gl.DeleteBuffers(1, &s.vbo)
		s.vbo = 0
	}
	if s.vao != 0 {
		gl.DeleteVertexArrays(1, &s.vao)
		s.vao = 0
	}
	s.program.Delete()
}

func uploadCube(faces [texture.CubeFaces]*image.RGBA) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	for i, img := range faces {
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, gl.RGBA,
			int32(img.Rect.Dx()), int32(img.Rect.Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	return id
}
