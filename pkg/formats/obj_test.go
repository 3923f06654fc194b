package formats

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const quadOBJ = `# unit quad
mtllib Castle OBJ.mtl
o quad
v 0 0 0
v 1 0 0
v 1 0 1
v 0 0 1
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 1 0
usemtl stone
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestParseOBJ_Quad(t *testing.T) {
	obj, err := ParseOBJ([]byte(quadOBJ))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	if len(obj.MaterialLibs) != 1 || obj.MaterialLibs[0] != "Castle OBJ.mtl" {
		t.Errorf("expected mtllib 'Castle OBJ.mtl', got %v", obj.MaterialLibs)
	}
	if len(obj.Groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(obj.Groups))
	}

	g := obj.Groups[0]
	if g.Material != "stone" || g.Name != "quad" {
		t.Errorf("unexpected group %q material %q", g.Name, g.Material)
	}
	if len(g.Vertices) != 4 {
		t.Errorf("expected 4 shared vertices, got %d", len(g.Vertices))
	}
	want := []uint32{0, 1, 2, 0, 2, 3}
	if len(g.Indices) != len(want) {
		t.Fatalf("expected %d indices, got %d", len(want), len(g.Indices))
	}
	for i := range want {
		if g.Indices[i] != want[i] {
			t.Errorf("index %d: expected %d, got %d", i, want[i], g.Indices[i])
		}
	}
	if g.Vertices[2].TexCoord != (mgl32.Vec2{1, 1}) {
		t.Errorf("unexpected texcoord %v", g.Vertices[2].TexCoord)
	}
	if obj.TriangleCount() != 2 {
		t.Errorf("expected 2 triangles, got %d", obj.TriangleCount())
	}
}

func TestParseOBJ_GeneratedNormals(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`
	obj, err := ParseOBJ([]byte(src))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	for i, v := range obj.Groups[0].Vertices {
		if v.Normal != (mgl32.Vec3{0, 0, 1}) {
			t.Errorf("vertex %d: expected normal +Z, got %v", i, v.Normal)
		}
	}
}

func TestParseOBJ_SmoothSharedNormals(t *testing.T) {
	// two triangles folded 90° along the shared X edge
	src := `
v 0 0 0
v 1 0 0
v 0 0 -1
v 0 1 0
f 1 2 3
f 1 2 4
`
	obj, err := ParseOBJ([]byte(src))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	g := obj.Groups[0]
	if len(g.Vertices) != 4 {
		t.Fatalf("expected 4 vertices, got %d", len(g.Vertices))
	}
	shared := g.Vertices[0].Normal
	inv := float32(1 / math.Sqrt2)
	if !shared.ApproxEqualThreshold(mgl32.Vec3{0, inv, inv}, 1e-5) {
		t.Errorf("expected averaged normal, got %v", shared)
	}
}

func TestParseOBJ_NegativeIndicesAndMaterials(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 1 1 0
usemtl bark
f -3 -2 -1
v 0 1 0
usemtl leaves
f 1 3 4
usemtl bark
f 1//1 2//1 4//1
vn 0 0 1
`
	_, err := ParseOBJ([]byte(src))
	if !errors.Is(err, ErrOBJBadIndex) {
		t.Fatalf("normal used before declaration should fail, got %v", err)
	}

	src = `
v 0 0 0
v 1 0 0
v 1 1 0
vn 0 0 1
usemtl bark
f -3 -2 -1
v 0 1 0
usemtl leaves
f 1 3 4
usemtl bark
f 1//1 3//1 4//1
`
	obj, err := ParseOBJ([]byte(src))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if len(obj.Groups) != 2 {
		t.Fatalf("expected 2 material groups, got %d", len(obj.Groups))
	}
	bark := obj.Groups[0]
	if bark.Material != "bark" || len(bark.Indices) != 6 {
		t.Errorf("expected bark with 6 indices, got %q with %d", bark.Material, len(bark.Indices))
	}
	if obj.Groups[1].Material != "leaves" {
		t.Errorf("expected leaves second, got %q", obj.Groups[1].Material)
	}
}

func TestParseOBJ_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"empty", "# nothing\n", ErrOBJEmpty},
		{"vertices only", "v 0 0 0\nv 1 0 0\n", ErrOBJEmpty},
		{"index out of range", "v 0 0 0\nv 1 0 0\nf 1 2 3\n", ErrOBJBadIndex},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n", ErrOBJBadIndex},
		{"short vertex", "v 0 0\n", ErrOBJMalformedRow},
		{"bad number", "v 0 x 0\n", ErrOBJMalformedRow},
		{"degenerate face", "v 0 0 0\nv 1 0 0\nf 1 2\n", ErrOBJMalformedRow},
		{"bad ref", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1/a 2 3\n", ErrOBJMalformedRow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOBJ([]byte(tt.src))
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestOBJBounds(t *testing.T) {
	obj, err := ParseOBJ([]byte(quadOBJ))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	min, max := obj.Bounds()
	if min != (mgl32.Vec3{0, 0, 0}) || max != (mgl32.Vec3{1, 0, 1}) {
		t.Errorf("unexpected bounds %v %v", min, max)
	}
}

func TestParseOBJFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.obj")
	if err := os.WriteFile(path, []byte(quadOBJ), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	if _, err := ParseOBJFile(path); err != nil {
		t.Errorf("ParseOBJFile failed: %v", err)
	}
	if _, err := ParseOBJFile(filepath.Join(t.TempDir(), "missing.obj")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParseOBJ_CrateFixture(t *testing.T) {
	obj, err := ParseOBJFile(filepath.Join("testdata", "crate.obj"))
	if err != nil {
		t.Fatalf("ParseOBJFile failed: %v", err)
	}
	if obj.TriangleCount() != 12 {
		t.Errorf("expected 12 triangles, got %d", obj.TriangleCount())
	}
	// each face has its own normal, so corners are not shared across faces
	if n := len(obj.Groups[0].Vertices); n != 24 {
		t.Errorf("expected 24 vertices, got %d", n)
	}
	min, max := obj.Bounds()
	if min != (mgl32.Vec3{-0.5, -0.5, -0.5}) || max != (mgl32.Vec3{0.5, 0.5, 0.5}) {
		t.Errorf("unexpected bounds %v %v", min, max)
	}

	mats, err := ParseMTLFile(filepath.Join("testdata", obj.MaterialLibs[0]))
	if err != nil {
		t.Fatalf("ParseMTLFile failed: %v", err)
	}
	wood := mats[obj.Groups[0].Material]
	if wood == nil || wood.DiffuseMap != "crate.png" {
		t.Errorf("unexpected material %+v", wood)
	}
}
