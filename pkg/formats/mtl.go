package formats

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/castleview/pkg/encoding"
)

// MTLMaterial is one material from a Wavefront MTL library.
type MTLMaterial struct {
	Name      string
	Ambient   mgl32.Vec3 // Ka
	Diffuse   mgl32.Vec3 // Kd
	Specular  mgl32.Vec3 // Ks
	Shininess float32    // Ns
	Dissolve  float32    // d, 1 is opaque

	DiffuseMap  string // map_Kd
	SpecularMap string // map_Ks
	NormalMap   string // map_Bump, bump or norm
}

// ParseMTL parses a material library. Materials are keyed by name.
func ParseMTL(data []byte) (map[string]*MTLMaterial, error) {
	materials := make(map[string]*MTLMaterial)
	var cur *MTLMaterial

	sc := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(encoding.ToUTF8(sc.Bytes()))
		if text == "" || text[0] == '#' {
			continue
		}
		fields := strings.Fields(text)
		keyword, args := fields[0], fields[1:]

		if keyword == "newmtl" {
			if len(args) == 0 {
				return nil, fmt.Errorf("line %d: %w: newmtl without name", line, ErrOBJMalformedRow)
			}
			cur = &MTLMaterial{
				Name:      strings.Join(args, " "),
				Diffuse:   mgl32.Vec3{1, 1, 1},
				Shininess: 32,
				Dissolve:  1,
			}
			materials[cur.Name] = cur
			continue
		}
		if cur == nil {
			continue
		}
		if err := cur.set(keyword, args); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return materials, nil
}

// ParseMTLFile reads and parses an MTL file.
func ParseMTLFile(path string) (map[string]*MTLMaterial, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading MTL file: %w", err)
	}
	return ParseMTL(data)
}

func (m *MTLMaterial) set(keyword string, args []string) error {
	switch keyword {
	case "Ka", "Kd", "Ks":
		v, err := parseFloats(args, 3)
		if err != nil {
			return err
		}
		c := mgl32.Vec3{v[0], v[1], v[2]}
		switch keyword {
		case "Ka":
			m.Ambient = c
		case "Kd":
			m.Diffuse = c
		case "Ks":
			m.Specular = c
		}
	case "Ns":
		v, err := parseFloats(args, 1)
		if err != nil {
			return err
		}
		m.Shininess = v[0]
	case "d":
		v, err := parseFloats(args, 1)
		if err != nil {
			return err
		}
		m.Dissolve = v[0]
	case "Tr":
		v, err := parseFloats(args, 1)
		if err != nil {
			return err
		}
		m.Dissolve = 1 - v[0]
	case "map_Kd":
		m.DiffuseMap = mapPath(args)
	case "map_Ks":
		m.SpecularMap = mapPath(args)
	case "map_Bump", "map_bump", "bump", "norm":
		m.NormalMap = mapPath(args)
	}
	return nil
}

// mapPath drops texture options such as "-bm 1" and keeps the file name,
// which may contain spaces.
func mapPath(args []string) string {
	i := 0
	for i < len(args) && strings.HasPrefix(args[i], "-") {
		i++ // option
		for i < len(args) {
			if _, err := strconv.ParseFloat(args[i], 32); err != nil {
				break
			}
			i++ // option values
		}
	}
	return strings.Join(args[i:], " ")
}
