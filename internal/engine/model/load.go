package model

import (
	"errors"
	"path"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/castleview/internal/assets"
	"github.com/Faultbox/castleview/internal/logger"
	"github.com/Faultbox/castleview/pkg/encoding"
	"github.com/Faultbox/castleview/pkg/formats"
)

// ErrEmpty is returned for a model without triangles.
var ErrEmpty = errors.New("model has no triangles")

// Source reads raw asset bytes. *assets.Manager satisfies it.
type Source interface {
	Load(path string) ([]byte, error)
}

// Load reads an OBJ model and its material libraries. A missing or broken
// model fails with a *assets.LoadError of kind KindModel, a malformed
// material library with kind KindMaterial. Missing libraries and unknown
// material names fall back to a plain white material.
func Load(src Source, modelPath string) (*Asset, error) {
	data, err := src.Load(modelPath)
	if err != nil {
		return nil, &assets.LoadError{Kind: assets.KindModel, Path: modelPath, Err: err}
	}
	obj, err := formats.ParseOBJ(data)
	if err != nil {
		return nil, &assets.LoadError{Kind: assets.KindModel, Path: modelPath, Err: err}
	}
	mesh := BuildMesh(obj)
	if mesh == nil {
		return nil, &assets.LoadError{Kind: assets.KindModel, Path: modelPath, Err: ErrEmpty}
	}

	dir := path.Dir(encoding.NormalizePath(modelPath))
	library := make(map[string]*formats.MTLMaterial)
	for _, lib := range obj.MaterialLibs {
		libPath := path.Join(dir, encoding.NormalizePath(lib))
		data, err := src.Load(libPath)
		if err != nil {
			logger.Warn("material library missing", zap.String("model", modelPath), zap.String("library", libPath))
			continue
		}
		mats, err := formats.ParseMTL(data)
		if err != nil {
			return nil, &assets.LoadError{Kind: assets.KindMaterial, Path: libPath, Err: err}
		}
		for name, m := range mats {
			library[name] = m
		}
	}

	asset := &Asset{Path: modelPath, Mesh: mesh}
	for _, name := range mesh.Materials {
		m, ok := library[name]
		if !ok {
			if name != "" {
				logger.Warn("material not found", zap.String("model", modelPath), zap.String("material", name))
			}
			asset.Materials = append(asset.Materials, DefaultMaterial(name))
			continue
		}
		asset.Materials = append(asset.Materials, Material{
			Name:          name,
			DiffuseMap:    resolveMap(dir, m.DiffuseMap),
			SpecularMap:   resolveMap(dir, m.SpecularMap),
			DiffuseColor:  m.Diffuse,
			SpecularColor: m.Specular,
			Shininess:     m.Shininess,
		})
	}

	logger.Debug("model loaded",
		zap.String("path", modelPath),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("triangles", len(mesh.Indices)/3),
		zap.Int("materials", len(asset.Materials)),
	)
	return asset, nil
}

// DefaultMaterial is used for faces without a known material.
func DefaultMaterial(name string) Material {
	return Material{
		Name:         name,
		DiffuseColor: mgl32.Vec3{1, 1, 1},
		Shininess:    32,
	}
}

func resolveMap(dir, p string) string {
	if p == "" {
		return ""
	}
	p = encoding.NormalizePath(p)
	if path.IsAbs(p) {
		return p
	}
	return path.Join(dir, p)
}
