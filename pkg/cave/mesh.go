package cave

import (
	"errors"
	"math"
	"slices"

	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// ErrDegenerateFace is returned when a triangle has repeated vertices or no area.
	ErrDegenerateFace = errors.New("degenerate face")
	// ErrDuplicateFace is returned when a triangle over the same vertices already exists.
	ErrDuplicateFace = errors.New("duplicate face")
)

// minFaceArea is the area below which a triangle is treated as degenerate.
const minFaceArea = 1e-9

// Face is a triangle over three mesh vertices.
type Face struct {
	V      [3]int
	Normal r3.Vec
	Smooth bool
	// Segment is the index of the first of the two rings the face spans.
	Segment int
}

// Mesh is a triangulated cave surface.
type Mesh struct {
	Name   string // mesh datablock name
	Object string // owning scene object name
	Seed   int64

	Vertices []r3.Vec
	Faces    []Face
	Centers  []r3.Vec
	Rings    [][]int

	// Skipped counts faces dropped as degenerate or duplicate.
	Skipped int

	faceKeys map[[3]int]struct{}
}

// NewMesh creates an empty mesh.
func NewMesh(name, object string) *Mesh {
	return &Mesh{
		Name:     name,
		Object:   object,
		faceKeys: make(map[[3]int]struct{}),
	}
}

// AddVertex appends a vertex and returns its index.
func (m *Mesh) AddVertex(p r3.Vec) int {
	m.Vertices = append(m.Vertices, p)
	return len(m.Vertices) - 1
}

// AddFace appends the triangle (a, b, c). The face is rejected if it repeats a
// vertex, has no area, or covers the same vertices as an existing face.
func (m *Mesh) AddFace(a, b, c, segment int) error {
	if a == b || b == c || a == c {
		return ErrDegenerateFace
	}
	tri := [3]r3.Vec{m.Vertices[a], m.Vertices[b], m.Vertices[c]}
	if triangleArea(tri) < minFaceArea {
		return ErrDegenerateFace
	}

	key := [3]int{a, b, c}
	slices.Sort(key[:])
	if _, ok := m.faceKeys[key]; ok {
		return ErrDuplicateFace
	}
	m.faceKeys[key] = struct{}{}

	m.Faces = append(m.Faces, Face{
		V:       [3]int{a, b, c},
		Normal:  triangleNormal(tri),
		Segment: segment,
	})
	return nil
}

// Ring returns the vertex positions of ring i.
func (m *Mesh) Ring(i int) []r3.Vec {
	out := make([]r3.Vec, len(m.Rings[i]))
	for j, vi := range m.Rings[i] {
		out[j] = m.Vertices[vi]
	}
	return out
}

// Triangle returns the corner positions of face i.
func (m *Mesh) Triangle(i int) [3]r3.Vec {
	f := m.Faces[i]
	return [3]r3.Vec{m.Vertices[f.V[0]], m.Vertices[f.V[1]], m.Vertices[f.V[2]]}
}

// Bounds returns the axis-aligned bounding box of all vertices.
func (m *Mesh) Bounds() (lo, hi r3.Vec) {
	if len(m.Vertices) == 0 {
		return r3.Vec{}, r3.Vec{}
	}
	lo, hi = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		lo = r3.Vec{X: math.Min(lo.X, v.X), Y: math.Min(lo.Y, v.Y), Z: math.Min(lo.Z, v.Z)}
		hi = r3.Vec{X: math.Max(hi.X, v.X), Y: math.Max(hi.Y, v.Y), Z: math.Max(hi.Z, v.Z)}
	}
	return lo, hi
}

// SurfaceArea returns the total area of all faces.
func (m *Mesh) SurfaceArea() float64 {
	var total float64
	for i := range m.Faces {
		total += triangleArea(m.Triangle(i))
	}
	return total
}

// Finalize recomputes face normals from winding, turns every face so its
// normal points away from the cave axis, and sets the shading flag.
func (m *Mesh) Finalize(smooth bool) {
	for i := range m.Faces {
		f := &m.Faces[i]
		tri := m.Triangle(i)
		f.Normal = triangleNormal(tri)

		f.Smooth = smooth
		if f.Segment+1 >= len(m.Centers) {
			continue
		}

		centroid := r3.Scale(1.0/3.0, r3.Add(r3.Add(tri[0], tri[1]), tri[2]))
		axis := closestOnSegment(centroid, m.Centers[f.Segment], m.Centers[f.Segment+1])
		if r3.Dot(f.Normal, r3.Sub(centroid, axis)) < 0 {
			f.V[1], f.V[2] = f.V[2], f.V[1]
			f.Normal = r3.Scale(-1, f.Normal)
		}
	}
}

func triangleArea(t [3]r3.Vec) float64 {
	return 0.5 * r3.Norm(r3.Cross(r3.Sub(t[1], t[0]), r3.Sub(t[2], t[0])))
}

func triangleNormal(t [3]r3.Vec) r3.Vec {
	n := r3.Cross(r3.Sub(t[1], t[0]), r3.Sub(t[2], t[0]))
	l := r3.Norm(n)
	if l == 0 {
		return r3.Vec{}
	}
	return r3.Scale(1/l, n)
}

// closestOnSegment returns the point of segment ab nearest to p.
func closestOnSegment(p, a, b r3.Vec) r3.Vec {
	ab := r3.Sub(b, a)
	l2 := r3.Dot(ab, ab)
	if l2 == 0 {
		return a
	}
	t := r3.Dot(r3.Sub(p, a), ab) / l2
	t = math.Max(0, math.Min(1, t))
	return r3.Add(a, r3.Scale(t, ab))
}
