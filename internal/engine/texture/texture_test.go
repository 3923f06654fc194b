package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/Faultbox/castleview/internal/assets"
)

type memSource map[string][]byte

func (m memSource) Load(path string) ([]byte, error) {
	data, ok := m[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

func checker() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	img.SetRGBA(1, 0, color.RGBA{0, 255, 0, 255})
	img.SetRGBA(0, 1, color.RGBA{0, 0, 255, 255})
	img.SetRGBA(1, 1, color.RGBA{255, 255, 255, 255})
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func encodeBMP(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, img))
	return buf.Bytes()
}

// tga24 builds an uncompressed bottom-up 24-bit TGA.
func tga24(w, h int, bgr []byte) []byte {
	hdr := make([]byte, 18)
	hdr[2] = TGATypeUncompressed
	hdr[12], hdr[13] = byte(w), byte(w>>8)
	hdr[14], hdr[15] = byte(h), byte(h>>8)
	hdr[16] = 24
	return append(hdr, bgr...)
}

func TestDecodePNGAndBMP(t *testing.T) {
	want := checker()
	for name, data := range map[string][]byte{
		"face.png": encodePNG(t, want),
		"face.bmp": encodeBMP(t, want),
	} {
		t.Run(name, func(t *testing.T) {
			got, err := Decode(data, name)
			require.NoError(t, err)
			assert.Equal(t, want.Rect, got.Rect)
			assert.Equal(t, want.Pix, got.Pix)
		})
	}
}

func TestDecodeTGAByExtension(t *testing.T) {
	// bottom row first: blue, white then red, green
	data := tga24(2, 2, []byte{
		255, 0, 0, 255, 255, 255,
		0, 0, 255, 0, 255, 0,
	})
	got, err := Decode(data, "bark.TGA")
	require.NoError(t, err)
	assert.Equal(t, checker().Pix, got.Pix)
}

func TestDecodeTGAErrors(t *testing.T) {
	_, err := DecodeTGA([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrTGATruncated)

	mapped := tga24(2, 2, nil)
	mapped[1] = 1
	_, err = DecodeTGA(mapped)
	assert.ErrorIs(t, err, ErrTGAUnsupported)
	assert.ErrorContains(t, err, "color-mapped")

	depth := tga24(1, 1, []byte{1, 2})
	depth[16] = 16
	_, err = DecodeTGA(depth)
	assert.ErrorIs(t, err, ErrTGAUnsupported)

	truncated := tga24(2, 2, []byte{1, 2, 3})
	_, err = DecodeTGA(truncated)
	assert.ErrorIs(t, err, ErrTGATruncated)

	_, err = Decode(truncated, "wall.tga")
	assert.ErrorIs(t, err, ErrTGATruncated)
	assert.ErrorContains(t, err, "wall.tga")
}

func TestDecodeTGARLE(t *testing.T) {
	hdr := tga24(3, 1, nil)
	hdr[2] = TGATypeRLE
	// one run packet of three green pixels
	data := append(hdr, 0x82, 0, 255, 0)

	img, err := DecodeTGA(data)
	require.NoError(t, err)
	for x := 0; x < 3; x++ {
		assert.Equal(t, color.RGBA{0, 255, 0, 255}, img.RGBAAt(x, 0))
	}
}

func TestDecodeTGARLEMixedPackets(t *testing.T) {
	hdr := tga24(2, 2, nil)
	hdr[2] = TGATypeRLE
	hdr[17] = 0x20 // top-down
	data := append(hdr,
		0x01, 0, 0, 255, 0, 255, 0, // literal: red, green
		0x81, 255, 0, 0, // run of two blue, the second starting row 1
	)
	img, err := DecodeTGA(data)
	require.NoError(t, err)
	assert.Equal(t, []byte{
		255, 0, 0, 255, 0, 255, 0, 255,
		0, 0, 255, 255, 0, 0, 255, 255,
	}, img.Pix)

	_, err = DecodeTGA(append(hdr, 0x83, 255, 0, 0)[:len(hdr)+2])
	assert.ErrorIs(t, err, ErrTGATruncated)
}

func TestDecodeTGAOrigin(t *testing.T) {
	tests := []struct {
		name       string
		descriptor byte
		want       []byte
	}{
		{"bottom left", 0x00, []byte{3, 4, 1, 2}},
		{"top left", 0x20, []byte{1, 2, 3, 4}},
		{"bottom right", 0x10, []byte{4, 3, 2, 1}},
		{"top right", 0x30, []byte{2, 1, 4, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tga24(2, 2, nil)
			data[2] = TGATypeGray
			data[16] = 8
			data[17] = tt.descriptor
			data = append(data, 1, 2, 3, 4)

			img, err := DecodeTGA(data)
			require.NoError(t, err)
			var got []byte
			for i := 0; i < len(img.Pix); i += 4 {
				got = append(got, img.Pix[i])
				assert.Equal(t, byte(0xff), img.Pix[i+3])
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeTGA32KeepsAlpha(t *testing.T) {
	data := tga24(1, 1, nil)
	data[16] = 32
	data = append(data, 10, 20, 30, 40)

	img, err := DecodeTGA(data)
	require.NoError(t, err)
	assert.Equal(t, []byte{30, 20, 10, 40}, img.Pix)
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Decode([]byte("not an image"), "x.png")
	assert.Error(t, err)
}

func TestImageToRGBAOffsetBounds(t *testing.T) {
	src := image.NewNRGBA(image.Rect(5, 5, 7, 6))
	src.Set(5, 5, color.NRGBA{10, 20, 30, 255})
	got := ImageToRGBA(src)
	assert.Equal(t, image.Rect(0, 0, 2, 1), got.Rect)
	assert.Equal(t, color.RGBA{10, 20, 30, 255}, got.RGBAAt(0, 0))
}

func TestSolid(t *testing.T) {
	img := Solid(color.RGBA{1, 2, 3, 4})
	assert.Equal(t, []byte{1, 2, 3, 4}, img.Pix)
}

func TestLoad(t *testing.T) {
	src := memSource{"crate.png": encodePNG(t, checker())}

	img, err := Load(src, "crate.png")
	require.NoError(t, err)
	assert.Equal(t, 2, img.Rect.Dx())

	_, err = Load(src, "missing.png")
	var le *assets.LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, assets.KindTexture, le.Kind)
	assert.Equal(t, "missing.png", le.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func cubePaths() [CubeFaces]string {
	return [CubeFaces]string{"right.png", "left.png", "top.png", "bottom.png", "front.png", "back.png"}
}

func TestLoadCubeFaces(t *testing.T) {
	src := memSource{}
	for _, p := range cubePaths() {
		src[p] = encodePNG(t, checker())
	}

	faces, err := LoadCubeFaces(src, cubePaths())
	require.NoError(t, err)
	for i, f := range faces {
		require.NotNil(t, f, "face %d", i)
	}
}

func TestLoadCubeFacesIsAtomic(t *testing.T) {
	paths := cubePaths()
	src := memSource{}
	for _, p := range paths {
		src[p] = encodePNG(t, checker())
	}
	src["top.png"] = []byte("corrupt")

	faces, err := LoadCubeFaces(src, paths)
	require.Error(t, err)

	var le *assets.LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, assets.KindSkybox, le.Kind)
	assert.Equal(t, "top.png", le.Path)
	for i, f := range faces {
		assert.Nil(t, f, "face %d must not leak on failure", i)
	}
}
