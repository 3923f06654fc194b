package debug

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bottom-up 1x2: red on the bottom row, blue on top
var twoRows = []byte{
	255, 0, 0, 255,
	0, 0, 255, 255,
}

func fixedClock(sc *ScreenshotCapture) {
	sc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 45, 123e6, time.UTC) }
}

func TestCaptureFromPixelsFlipsRows(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	sc := NewScreenshotCapture(dir, "castleview")
	fixedClock(sc)

	path, err := sc.CaptureFromPixels(twoRows, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "castleview_2024-05-01_12-30-45.123.png"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	assert.Equal(t, color.RGBA{0, 0, 255, 255}, color.RGBAModel.Convert(img.At(0, 0)))
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, color.RGBAModel.Convert(img.At(0, 1)))
}

func TestCaptureFromPixelsSizeMismatch(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "x")
	_, err := sc.CaptureFromPixels(twoRows, 2, 2)
	assert.ErrorContains(t, err, "size mismatch")

	_, err = sc.CaptureFromPixels(nil, 0, 0)
	assert.ErrorContains(t, err, "invalid framebuffer size")
}

func TestGenerateFilenameWithoutDir(t *testing.T) {
	sc := NewScreenshotCapture("", "shot")
	fixedClock(sc)
	assert.Equal(t, "shot_2024-05-01_12-30-45.123.png", sc.GenerateFilename())
}

type stubReader struct {
	w, h int32
}

func (s *stubReader) ReadPixels(w, h int32) []byte {
	s.w, s.h = w, h
	return twoRows
}

func TestFramebufferCapture(t *testing.T) {
	reader := &stubReader{}
	c := &FramebufferCapture{Pixels: reader, Shots: NewScreenshotCapture(t.TempDir(), "castleview")}

	path, err := c.Capture(1, 2)
	require.NoError(t, err)
	assert.Equal(t, int32(1), reader.w)
	assert.Equal(t, int32(2), reader.h)
	assert.True(t, strings.HasSuffix(path, ".png"))

	_, err = c.Capture(0, 600)
	assert.Error(t, err)
}
