package renderer

import (
	"fmt"
	"image"
	"image/color"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/castleview/internal/assets"
	"github.com/Faultbox/castleview/internal/engine/gfx"
	"github.com/Faultbox/castleview/internal/engine/model"
	"github.com/Faultbox/castleview/internal/engine/texture"
	"github.com/Faultbox/castleview/internal/logger"
)

// Models uploads each model path once and shares textures between models.
// It implements scene.ModelLoader.
type Models struct {
	src      model.Source
	models   *assets.Library[*Model]
	textures *assets.Library[uint32]
	solids   map[color.RGBA]uint32
}

// NewModels creates a loader reading from src.
func NewModels(src model.Source) *Models {
	m := &Models{src: src, solids: make(map[color.RGBA]uint32)}
	m.models = assets.NewLibrary(assets.KindModel, m.loadModel)
	m.textures = assets.NewLibrary(assets.KindTexture, func(path string) (uint32, error) {
		img, err := texture.Load(src, path)
		if err != nil {
			return 0, err
		}
		return Upload2D(img), nil
	})
	return m
}

// Load returns the uploaded model at path.
func (m *Models) Load(path string) (gfx.Drawable, error) {
	mod, err := m.models.Get(path)
	if err != nil {
		return nil, err
	}
	return mod, nil
}

func (m *Models) loadModel(path string) (*Model, error) {
	asset, err := model.Load(m.src, path)
	if err != nil {
		return nil, err
	}
	return upload(asset, m.materialTextures), nil
}

func (m *Models) materialTextures(mat model.Material) (diffuse, specular uint32) {
	return m.mapOrColor(mat.DiffuseMap, mat.DiffuseColor), m.mapOrColor(mat.SpecularMap, mat.SpecularColor)
}

// mapOrColor loads a texture map, falling back to a 1x1 texture of c when
// the map is absent or unreadable.
func (m *Models) mapOrColor(path string, c mgl32.Vec3) uint32 {
	if path != "" {
		id, err := m.textures.Get(path)
		if err == nil {
			return id
		}
		logger.Warn("texture unavailable, using flat color", zap.Error(err))
	}
	rgba := color.RGBA{R: channel(c[0]), G: channel(c[1]), B: channel(c[2]), A: 255}
	if id, ok := m.solids[rgba]; ok {
		return id
	}
	id := Upload2D(texture.Solid(rgba))
	m.solids[rgba] = id
	return id
}

func channel(v float32) uint8 {
	return uint8(mgl32.Clamp(v, 0, 1)*255 + 0.5)
}

// Stats reports how many models and textures are resident.
func (m *Models) Stats() string {
	return fmt.Sprintf("%d models, %d textures, %d flat colors", m.models.Len(), m.textures.Len(), len(m.solids))
}

// Close releases every model and texture in reverse load order.
func (m *Models) Close() {
	m.models.Release(func(mod *Model) { mod.Destroy() })
	m.textures.Release(func(id uint32) { DeleteTexture(id) })
	for c, id := range m.solids {
		DeleteTexture(id)
		delete(m.solids, c)
	}
}

// Upload2D creates a mipmapped, repeating 2D texture from img.
func Upload2D(img *image.RGBA) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(img.Rect.Dx()), int32(img.Rect.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return id
}

// DeleteTexture deletes an OpenGL texture.
func DeleteTexture(id uint32) {
	if id != 0 {
		gl.DeleteTextures(1, &id)
	}
}
