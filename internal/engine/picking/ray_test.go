package picking

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertVecNear(t *testing.T, want, got mgl32.Vec3, tol float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], tol, "want %v, got %v", want, got)
	}
}

func unitBox() AABB {
	return NewAABB(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1})
}

func TestIntersectAABB(t *testing.T) {
	tests := []struct {
		name  string
		ray   Ray
		hit   bool
		wantT float32
	}{
		{"front", Ray{mgl32.Vec3{0, 0, -5}, mgl32.Vec3{0, 0, 1}}, true, 4},
		{"inside", Ray{mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}}, true, 1},
		{"behind", Ray{mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 1}}, false, 0},
		{"miss", Ray{mgl32.Vec3{3, 0, -5}, mgl32.Vec3{0, 0, 1}}, false, 0},
		{"parallel outside", Ray{mgl32.Vec3{0, 2, -5}, mgl32.Vec3{0, 0, 1}}, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, hit := tt.ray.IntersectAABB(unitBox())
			assert.Equal(t, tt.hit, hit)
			if tt.hit {
				assert.InDelta(t, tt.wantT, d, 1e-5)
			}
		})
	}
}

func TestIntersectPlaneY(t *testing.T) {
	r := Ray{Origin: mgl32.Vec3{0, 10, 0}, Direction: mgl32.Vec3{0, -1, 1}.Normalize()}
	p, ok := r.IntersectPlaneY(0)
	require.True(t, ok)
	assert.InDelta(t, 0, p.Y(), 1e-4)
	assert.InDelta(t, 10, p.Z(), 1e-4)

	_, ok = Ray{Origin: mgl32.Vec3{0, 10, 0}, Direction: mgl32.Vec3{0, 1, 0}}.IntersectPlaneY(0)
	assert.False(t, ok, "plane behind the origin")

	_, ok = Ray{Direction: mgl32.Vec3{1, 0, 0}}.IntersectPlaneY(0)
	assert.False(t, ok, "parallel")
}

func TestNewAABBOrdersCorners(t *testing.T) {
	box := NewAABB(mgl32.Vec3{1, -2, 3}, mgl32.Vec3{-1, 2, -3})
	assert.Equal(t, mgl32.Vec3{-1, -2, -3}, box.Min)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, box.Max)
}

func TestTransform(t *testing.T) {
	m := mgl32.Translate3D(10, 0, 0).Mul4(mgl32.Scale3D(2, 2, 2))
	box := unitBox().Transform(m)
	assertVecNear(t, mgl32.Vec3{8, -2, -2}, box.Min, 1e-4)
	assertVecNear(t, mgl32.Vec3{12, 2, 2}, box.Max, 1e-4)

	// a quarter turn of a long box swaps its x and z extents
	long := NewAABB(mgl32.Vec3{-4, 0, -1}, mgl32.Vec3{4, 1, 1})
	rot := long.Transform(mgl32.HomogRotate3DY(mgl32.DegToRad(90)))
	assert.InDelta(t, 2, rot.Max[0]-rot.Min[0], 1e-4)
	assert.InDelta(t, 8, rot.Max[2]-rot.Min[2], 1e-4)
}

func TestScreenToRayCenter(t *testing.T) {
	proj := mgl32.Perspective(mgl32.DegToRad(45), 1, 0.1, 100)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	r := ScreenToRay(400, 400, 800, 800, proj.Mul4(view).Inv())

	assertVecNear(t, mgl32.Vec3{0, 0, -1}, r.Direction, 1e-3)
	assert.InDelta(t, 0, r.Origin.X(), 1e-3)
	assert.InDelta(t, 0, r.Origin.Y(), 1e-3)

	// top-left pixels point up and left
	corner := ScreenToRay(0, 0, 800, 800, proj.Mul4(view).Inv())
	assert.Less(t, corner.Direction.X(), float32(0))
	assert.Greater(t, corner.Direction.Y(), float32(0))
}

func TestNearest(t *testing.T) {
	r := Ray{Origin: mgl32.Vec3{0, 0, -10}, Direction: mgl32.Vec3{0, 0, 1}}
	near := NewAABB(mgl32.Vec3{-1, -1, -3}, mgl32.Vec3{1, 1, -2})
	far := unitBox()
	off := NewAABB(mgl32.Vec3{5, 5, 5}, mgl32.Vec3{6, 6, 6})

	idx, d, ok := r.Nearest([]Candidate{{Index: 0, Box: far}, {Index: 1, Box: near}, {Index: 2, Box: off}})
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.InDelta(t, 7, d, 1e-5)

	_, _, ok = r.Nearest([]Candidate{{Index: 0, Box: off}})
	assert.False(t, ok)
}
