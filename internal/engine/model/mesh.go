package model

import (
	"github.com/Faultbox/castleview/pkg/formats"
)

// BuildMesh flattens the OBJ groups into one vertex and index buffer.
// Texture v is flipped so that image row 0 maps to the top of the texture,
// matching GL's bottom-up texture origin. Returns nil for an empty model.
func BuildMesh(obj *formats.OBJ) *Mesh {
	if obj == nil || obj.TriangleCount() == 0 {
		return nil
	}

	mesh := &Mesh{}
	materialIdx := make(map[string]int)
	bounds := Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}

	for _, g := range obj.Groups {
		if len(g.Indices) == 0 {
			continue
		}

		idx, ok := materialIdx[g.Material]
		if !ok {
			idx = len(mesh.Materials)
			materialIdx[g.Material] = idx
			mesh.Materials = append(mesh.Materials, g.Material)
		}

		base := uint32(len(mesh.Vertices))
		for _, v := range g.Vertices {
			pos := [3]float32(v.Position)
			updateBounds(&bounds, pos)
			mesh.Vertices = append(mesh.Vertices, Vertex{
				Position: pos,
				Normal:   [3]float32(v.Normal),
				TexCoord: [2]float32{v.TexCoord[0], 1 - v.TexCoord[1]},
			})
		}

		start := int32(len(mesh.Indices))
		for _, i := range g.Indices {
			mesh.Indices = append(mesh.Indices, base+i)
		}
		mesh.Groups = append(mesh.Groups, Group{
			Material:   idx,
			StartIndex: start,
			IndexCount: int32(len(g.Indices)),
		})
	}

	mesh.Bounds = bounds
	return mesh
}

// updateBounds expands the bounding box to include the given position.
func updateBounds(b *Bounds, pos [3]float32) {
	for i := 0; i < 3; i++ {
		if pos[i] < b.Min[i] {
			b.Min[i] = pos[i]
		}
		if pos[i] > b.Max[i] {
			b.Max[i] = pos[i]
		}
	}
}
