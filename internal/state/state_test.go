package state

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	want := Snapshot{
		ClearColor:     mgl32.Vec3{0.1, 0.2, 0.3},
		GUIEnabled:     true,
		CameraPosition: mgl32.Vec3{1, 2, 3},
		CameraFront:    mgl32.Vec3{0, 0, -1},
	}

	var buf bytes.Buffer
	require.NoError(t, want.Write(&buf))
	assert.Equal(t, "0.1\n0.2\n0.3\n1\n1\n2\n3\n0\n0\n-1\n", buf.String())

	var got Snapshot
	require.NoError(t, got.Read(&buf))
	assert.Equal(t, want, got)
}

func TestRoundTripAwkwardFloats(t *testing.T) {
	want := Snapshot{
		ClearColor:     mgl32.Vec3{1.0 / 3.0, 1e-7, 0.70000005},
		CameraPosition: mgl32.Vec3{-1234.5678, 3.4028235e38, -0},
		CameraFront:    mgl32.Vec3{0.57735026, -0.57735026, 0.57735026},
	}

	var buf bytes.Buffer
	require.NoError(t, want.Write(&buf))

	var got Snapshot
	require.NoError(t, got.Read(&buf))
	assert.Equal(t, want, got)
}

func TestMissingTrailingFieldsKeepValues(t *testing.T) {
	got := Snapshot{
		ClearColor:     mgl32.Vec3{0.5, 0.5, 0.5},
		CameraPosition: mgl32.Vec3{0, 10, -8},
		CameraFront:    mgl32.Vec3{0, 0, 1},
	}

	require.NoError(t, got.Read(strings.NewReader("0.1\n0.2\n0.3\n1\n4\n")))

	assert.Equal(t, mgl32.Vec3{0.1, 0.2, 0.3}, got.ClearColor)
	assert.True(t, got.GUIEnabled)
	assert.Equal(t, mgl32.Vec3{4, 10, -8}, got.CameraPosition)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, got.CameraFront)
}

func TestEmptyInputKeepsEverything(t *testing.T) {
	want := Snapshot{ClearColor: mgl32.Vec3{1, 1, 1}, GUIEnabled: true}
	got := want
	require.NoError(t, got.Read(strings.NewReader("")))
	assert.Equal(t, want, got)
}

func TestFlagSpellings(t *testing.T) {
	for in, want := range map[string]bool{"1": true, "true": true, "0": false, "false": false} {
		s := Snapshot{GUIEnabled: !want}
		require.NoError(t, s.Read(strings.NewReader("0\n0\n0\n"+in+"\n")))
		assert.Equal(t, want, s.GUIEnabled, "input %q", in)
	}
}

func TestMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  string
	}{
		{"bad float", "0.1\nabc\n", "line 2"},
		{"bad flag", "0\n0\n0\nyes\n", "line 4"},
		{"bad camera", "0\n0\n0\n1\n1\n2\n3\n0\n--1\n", "line 9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Snapshot
			err := s.Read(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, ErrMalformed)
			assert.Contains(t, err.Error(), tt.line)
		})
	}
}

func TestSaveLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resources", "program_state.txt")
	want := Snapshot{ClearColor: mgl32.Vec3{0.2, 0.3, 0.4}, CameraFront: mgl32.Vec3{0, -0.5, 0.8660254}}

	require.NoError(t, Save(path, &want))

	var got Snapshot
	require.NoError(t, Load(path, &got))
	assert.Equal(t, want, got)
}

func TestLoadMissingFile(t *testing.T) {
	s := Snapshot{GUIEnabled: true}
	require.NoError(t, Load(filepath.Join(t.TempDir(), "absent.txt"), &s))
	assert.True(t, s.GUIEnabled)
}

func TestLoadMalformedFileNamesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.txt")
	require.NoError(t, os.WriteFile(path, []byte("red\n"), 0644))

	var s Snapshot
	err := Load(path, &s)
	assert.ErrorIs(t, err, ErrMalformed)
	assert.Contains(t, err.Error(), path)
}
