package scene

import (
	"github.com/Faultbox/castleview/internal/engine/gfx"
	"github.com/Faultbox/castleview/internal/engine/picking"
)

// WorldBounds returns the world-space box of the object, if its model
// knows its extent.
func (o *Object) WorldBounds() (picking.AABB, bool) {
	b, ok := o.model.(gfx.Bounded)
	if !ok {
		return picking.AABB{}, false
	}
	lo, hi := b.Bounds()
	return picking.NewAABB(lo, hi).Transform(o.ModelMatrix()), true
}

// Pick returns the nearest object whose world bounds r hits, or nil.
func (s *Scene) Pick(r picking.Ray) *Object {
	candidates := make([]picking.Candidate, 0, len(s.Objects))
	for i, o := range s.Objects {
		if box, ok := o.WorldBounds(); ok {
			candidates = append(candidates, picking.Candidate{Index: i, Box: box})
		}
	}
	i, _, ok := r.Nearest(candidates)
	if !ok {
		return nil
	}
	return s.Objects[i]
}
