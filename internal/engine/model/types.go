// Package model builds GPU-ready meshes and material descriptions from
// Wavefront OBJ/MTL files.
package model

import "github.com/go-gl/mathgl/mgl32"

// Vertex represents a model mesh vertex with position, normal, and texture coordinates.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Group is a contiguous index range drawn with one material.
type Group struct {
	Material   int // index into Mesh.Materials
	StartIndex int32
	IndexCount int32
}

// Mesh holds the complete model mesh data ready for GPU upload.
type Mesh struct {
	Vertices  []Vertex
	Indices   []uint32
	Groups    []Group
	Materials []string // material names in first-use order
	Bounds    Bounds
}

// Bounds holds the axis-aligned bounding box of the model.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Center returns the middle of the box.
func (b Bounds) Center() mgl32.Vec3 {
	return mgl32.Vec3{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// Size returns the box extent on each axis.
func (b Bounds) Size() mgl32.Vec3 {
	return mgl32.Vec3{b.Max[0] - b.Min[0], b.Max[1] - b.Min[1], b.Max[2] - b.Min[2]}
}

// Material describes how one group is textured. Map paths are resolved
// against the model directory; an empty map means the flat color is used.
type Material struct {
	Name          string
	DiffuseMap    string
	SpecularMap   string
	DiffuseColor  mgl32.Vec3
	SpecularColor mgl32.Vec3
	Shininess     float32
}

// Asset is a loaded model: its mesh and one material per Mesh.Materials entry.
type Asset struct {
	Path      string
	Mesh      *Mesh
	Materials []Material
}
