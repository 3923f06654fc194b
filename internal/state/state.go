// Package state persists the small set of viewer settings that survive a
// restart: background color, GUI visibility and camera placement.
//
// The file holds one value per line in a fixed order with no header:
//
//	clear color r, g, b
//	GUI enabled (1 or 0)
//	camera position x, y, z
//	camera front x, y, z
//
// A file that ends early leaves the remaining fields untouched.
package state

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// FieldCount is the number of lines in a complete state file.
const FieldCount = 10

// ErrMalformed is wrapped by every parse failure.
var ErrMalformed = errors.New("malformed state file")

// Snapshot is the persisted subset of the frame context.
type Snapshot struct {
	ClearColor     mgl32.Vec3
	GUIEnabled     bool
	CameraPosition mgl32.Vec3
	CameraFront    mgl32.Vec3
}

// fields lists setters and getters in file order.
func (s *Snapshot) fields() [FieldCount]field {
	return [FieldCount]field{
		floatField(&s.ClearColor[0]),
		floatField(&s.ClearColor[1]),
		floatField(&s.ClearColor[2]),
		boolField(&s.GUIEnabled),
		floatField(&s.CameraPosition[0]),
		floatField(&s.CameraPosition[1]),
		floatField(&s.CameraPosition[2]),
		floatField(&s.CameraFront[0]),
		floatField(&s.CameraFront[1]),
		floatField(&s.CameraFront[2]),
	}
}

type field struct {
	format func() string
	parse  func(string) error
}

func floatField(v *float32) field {
	return field{
		// shortest representation that reads back to the same float32
		format: func() string { return strconv.FormatFloat(float64(*v), 'g', -1, 32) },
		parse: func(s string) error {
			f, err := strconv.ParseFloat(s, 32)
			if err != nil {
				return err
			}
			*v = float32(f)
			return nil
		},
	}
}

func boolField(v *bool) field {
	return field{
		format: func() string {
			if *v {
				return "1"
			}
			return "0"
		},
		parse: func(s string) error {
			switch s {
			case "1", "true":
				*v = true
			case "0", "false":
				*v = false
			default:
				return fmt.Errorf("invalid flag %q", s)
			}
			return nil
		},
	}
}

// Write encodes s to w.
func (s *Snapshot) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, f := range s.fields() {
		if _, err := bw.WriteString(f.format() + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Read decodes r into s. Fields after the last line are left unmodified.
// Blank lines count as fields that are absent.
func (s *Snapshot) Read(r io.Reader) error {
	sc := bufio.NewScanner(r)
	fields := s.fields()
	for i := 0; i < FieldCount && sc.Scan(); i++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		if err := fields[i].parse(text); err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrMalformed, i+1, err)
		}
	}
	return sc.Err()
}

// Load reads the snapshot at path into s. A missing file is not an error.
func Load(path string, s *Snapshot) error {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	if err := s.Read(f); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return nil
}

// Save writes s to path, creating parent directories as needed.
func Save(path string, s *Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.Write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
