package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/castleview/pkg/encoding"
)

// OBJ format errors.
var (
	ErrOBJEmpty        = errors.New("OBJ has no faces")
	ErrOBJBadIndex     = errors.New("OBJ index out of range")
	ErrOBJMalformedRow = errors.New("malformed OBJ statement")
)

// OBJVertex is one unique position/texcoord/normal combination.
type OBJVertex struct {
	Position mgl32.Vec3
	TexCoord mgl32.Vec2
	Normal   mgl32.Vec3
}

// OBJGroup is a triangle list drawn with a single material.
type OBJGroup struct {
	Name     string
	Material string
	Vertices []OBJVertex
	Indices  []uint32
}

// OBJ is a parsed Wavefront model, split by material.
type OBJ struct {
	MaterialLibs []string
	Groups       []*OBJGroup
}

// TriangleCount returns the number of triangles across all groups.
func (o *OBJ) TriangleCount() int {
	n := 0
	for _, g := range o.Groups {
		n += len(g.Indices) / 3
	}
	return n
}

// Bounds returns the axis-aligned extent of all vertices.
func (o *OBJ) Bounds() (min, max mgl32.Vec3) {
	first := true
	for _, g := range o.Groups {
		for _, v := range g.Vertices {
			if first {
				min, max = v.Position, v.Position
				first = false
				continue
			}
			for i := 0; i < 3; i++ {
				if v.Position[i] < min[i] {
					min[i] = v.Position[i]
				}
				if v.Position[i] > max[i] {
					max[i] = v.Position[i]
				}
			}
		}
	}
	return min, max
}

// objRef indexes into the position, texcoord and normal pools; -1 is absent.
type objRef struct {
	v, vt, vn int
}

type objBuilder struct {
	positions []mgl32.Vec3
	texCoords []mgl32.Vec2
	normals   []mgl32.Vec3

	obj     *OBJ
	name    string
	current *OBJGroup
	lookup  map[objRef]uint32
	// smooth accumulates generated normals for vertices without vn.
	smooth map[uint32]bool
	groups map[string]*groupState
}

type groupState struct {
	group  *OBJGroup
	lookup map[objRef]uint32
	smooth map[uint32]bool
}

// ParseOBJ parses a Wavefront OBJ model. Polygons are fan-triangulated and
// vertices without normals get smoothed face normals.
func ParseOBJ(data []byte) (*OBJ, error) {
	b := &objBuilder{
		obj:    &OBJ{},
		groups: make(map[string]*groupState),
	}

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(encoding.ToUTF8(sc.Bytes()))
		if text == "" || text[0] == '#' {
			continue
		}
		if err := b.statement(text); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	b.finish()
	if b.obj.TriangleCount() == 0 {
		return nil, ErrOBJEmpty
	}
	return b.obj, nil
}

// ParseOBJFile reads and parses an OBJ file.
func ParseOBJFile(path string) (*OBJ, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading OBJ file: %w", err)
	}
	return ParseOBJ(data)
}

func (b *objBuilder) statement(text string) error {
	fields := strings.Fields(text)
	keyword, args := fields[0], fields[1:]

	switch keyword {
	case "v":
		v, err := parseFloats(args, 3)
		if err != nil {
			return err
		}
		b.positions = append(b.positions, mgl32.Vec3{v[0], v[1], v[2]})
	case "vt":
		v, err := parseFloats(args, 2)
		if err != nil {
			return err
		}
		b.texCoords = append(b.texCoords, mgl32.Vec2{v[0], v[1]})
	case "vn":
		v, err := parseFloats(args, 3)
		if err != nil {
			return err
		}
		b.normals = append(b.normals, mgl32.Vec3{v[0], v[1], v[2]})
	case "f":
		return b.face(args)
	case "o", "g":
		if len(args) > 0 {
			b.name = strings.Join(args, " ")
		}
	case "usemtl":
		if len(args) == 0 {
			return fmt.Errorf("%w: usemtl without name", ErrOBJMalformedRow)
		}
		b.use(strings.Join(args, " "))
	case "mtllib":
		// file names may contain spaces, e.g. "Castle OBJ.mtl"
		if len(args) > 0 {
			b.obj.MaterialLibs = append(b.obj.MaterialLibs, strings.Join(args, " "))
		}
	}
	// s, l, p and other statements do not affect triangle output
	return nil
}

func (b *objBuilder) use(material string) {
	st, ok := b.groups[material]
	if !ok {
		st = &groupState{
			group:  &OBJGroup{Name: b.name, Material: material},
			lookup: make(map[objRef]uint32),
			smooth: make(map[uint32]bool),
		}
		b.groups[material] = st
		b.obj.Groups = append(b.obj.Groups, st.group)
	}
	b.current = st.group
	b.lookup = st.lookup
	b.smooth = st.smooth
}

func (b *objBuilder) face(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("%w: face with %d vertices", ErrOBJMalformedRow, len(args))
	}
	if b.current == nil {
		b.use("")
	}

	refs := make([]objRef, len(args))
	for i, a := range args {
		r, err := b.resolve(a)
		if err != nil {
			return err
		}
		refs[i] = r
	}

	for i := 1; i+1 < len(refs); i++ {
		b.triangle(refs[0], refs[i], refs[i+1])
	}
	return nil
}

func (b *objBuilder) triangle(r0, r1, r2 objRef) {
	p0, p1, p2 := b.positions[r0.v], b.positions[r1.v], b.positions[r2.v]
	n := p1.Sub(p0).Cross(p2.Sub(p0))

	for _, r := range [3]objRef{r0, r1, r2} {
		idx, ok := b.lookup[r]
		if !ok {
			v := OBJVertex{Position: b.positions[r.v]}
			if r.vt >= 0 {
				v.TexCoord = b.texCoords[r.vt]
			}
			if r.vn >= 0 {
				v.Normal = b.normals[r.vn]
			}
			idx = uint32(len(b.current.Vertices))
			b.current.Vertices = append(b.current.Vertices, v)
			b.lookup[r] = idx
			if r.vn < 0 {
				b.smooth[idx] = true
			}
		}
		if b.smooth[idx] {
			// area-weighted: the cross product length is twice the area
			b.current.Vertices[idx].Normal = b.current.Vertices[idx].Normal.Add(n)
		}
		b.current.Indices = append(b.current.Indices, idx)
	}
}

func (b *objBuilder) finish() {
	for _, st := range b.groups {
		for idx := range st.smooth {
			n := st.group.Vertices[idx].Normal
			if n.Len() > 0 {
				st.group.Vertices[idx].Normal = n.Normalize()
			}
		}
	}
	kept := b.obj.Groups[:0]
	for _, g := range b.obj.Groups {
		if len(g.Indices) > 0 {
			kept = append(kept, g)
		}
	}
	b.obj.Groups = kept
}

// resolve parses "v", "v/vt", "v//vn" or "v/vt/vn". Negative indices count
// back from the most recent element.
func (b *objBuilder) resolve(s string) (objRef, error) {
	parts := strings.Split(s, "/")
	if len(parts) > 3 {
		return objRef{}, fmt.Errorf("%w: vertex %q", ErrOBJMalformedRow, s)
	}
	ref := objRef{v: -1, vt: -1, vn: -1}
	pools := [3]int{len(b.positions), len(b.texCoords), len(b.normals)}
	dst := [3]*int{&ref.v, &ref.vt, &ref.vn}

	for i, p := range parts {
		if p == "" {
			if i == 0 {
				return objRef{}, fmt.Errorf("%w: vertex %q", ErrOBJMalformedRow, s)
			}
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return objRef{}, fmt.Errorf("%w: vertex %q", ErrOBJMalformedRow, s)
		}
		switch {
		case n > 0:
			n--
		case n < 0:
			n += pools[i]
		default:
			return objRef{}, fmt.Errorf("%w: zero index in %q", ErrOBJBadIndex, s)
		}
		if n < 0 || n >= pools[i] {
			return objRef{}, fmt.Errorf("%w: %q", ErrOBJBadIndex, s)
		}
		*dst[i] = n
	}
	return ref, nil
}

func parseFloats(args []string, want int) ([]float32, error) {
	if len(args) < want {
		return nil, fmt.Errorf("%w: want %d values, got %d", ErrOBJMalformedRow, want, len(args))
	}
	out := make([]float32, want)
	for i := 0; i < want; i++ {
		f, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrOBJMalformedRow, err)
		}
		out[i] = float32(f)
	}
	return out, nil
}
