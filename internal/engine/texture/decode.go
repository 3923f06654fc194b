// Package texture decodes model and skybox images into RGBA pixels.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp" // BMP decoder registration

	"github.com/Faultbox/castleview/internal/assets"
)

// CubeFaces is the number of faces of a cube map.
const CubeFaces = 6

// Source reads raw asset bytes. *assets.Manager satisfies it.
type Source interface {
	Load(path string) ([]byte, error)
}

// Decode decodes an image by the extension of name. TGA goes through the
// built-in decoder, everything else through the registered image formats.
func Decode(data []byte, name string) (*image.RGBA, error) {
	if strings.EqualFold(filepath.Ext(name), ".tga") {
		img, err := DecodeTGA(data)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", filepath.Base(name), err)
		}
		return img, nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(name), err)
	}
	return ImageToRGBA(img), nil
}

// Load reads and decodes one texture. Failures are *assets.LoadError of
// kind KindTexture.
func Load(src Source, path string) (*image.RGBA, error) {
	data, err := src.Load(path)
	if err != nil {
		return nil, &assets.LoadError{Kind: assets.KindTexture, Path: path, Err: err}
	}
	img, err := Decode(data, path)
	if err != nil {
		return nil, &assets.LoadError{Kind: assets.KindTexture, Path: path, Err: err}
	}
	return img, nil
}

// LoadCubeFaces decodes six faces in +X,-X,+Y,-Y,+Z,-Z order. Either all six
// decode or none are returned; the error names the first failing face.
func LoadCubeFaces(src Source, paths [CubeFaces]string) ([CubeFaces]*image.RGBA, error) {
	var faces [CubeFaces]*image.RGBA
	for i, p := range paths {
		data, err := src.Load(p)
		if err != nil {
			return [CubeFaces]*image.RGBA{}, &assets.LoadError{Kind: assets.KindSkybox, Path: p, Err: err}
		}
		img, err := Decode(data, p)
		if err != nil {
			return [CubeFaces]*image.RGBA{}, &assets.LoadError{Kind: assets.KindSkybox, Path: p, Err: err}
		}
		faces[i] = img
	}
	return faces, nil
}

// ImageToRGBA converts any image.Image to *image.RGBA with a zero origin.
func ImageToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// Solid returns a 1x1 image of one color, used for missing material maps.
func Solid(c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, c)
	return img
}
