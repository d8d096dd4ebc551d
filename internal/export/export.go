// Package export writes cave meshes in interchange formats.
package export

import (
	"fmt"
	"io"

	"github.com/OCharnyshevich/cavegen/pkg/cave"
)

// Format is a mesh file format.
type Format string

const (
	OBJ Format = "obj"
	STL Format = "stl"
)

// Formats lists every supported format.
var Formats = []Format{OBJ, STL}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case OBJ, STL:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q", s)
	}
}

// Ext returns the file extension for f, including the dot.
func (f Format) Ext() string { return "." + string(f) }

// Write encodes m to w in format f.
func Write(w io.Writer, f Format, m *cave.Mesh) error {
	switch f {
	case OBJ:
		return WriteOBJ(w, m)
	case STL:
		return WriteSTL(w, m)
	default:
		return fmt.Errorf("unknown export format %q", f)
	}
}
