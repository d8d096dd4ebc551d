// Package cave builds tunnel-shaped triangle meshes from noise.
//
// A cave is a chain of vertex rings placed along a descending, noise-driven
// path. Rings are rotated, pushed out into blocks where the shape noise
// crosses a threshold, and jittered on all three axes before adjacent rings
// are stitched together with triangles.
package cave

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	pathFrequency     = 0.04
	rotationFrequency = 0.2
	rotationScale     = 10.0 // radians
	shapeFrequencyI   = 0.15
	shapeFrequencyJ   = 0.35
	lateralFrequency  = 0.5
	blockExponent     = 0.45
)

// Option configures a Generator.
type Option func(*Generator)

// WithNoise sets the noise field. Defaults to simplex.
func WithNoise(n Noise) Option {
	return func(g *Generator) { g.noise = n }
}

// WithLogger sets the logger. Defaults to discarding output.
func WithLogger(log *slog.Logger) Option {
	return func(g *Generator) { g.log = log }
}

// Generator produces cave meshes deterministically from a seed.
type Generator struct {
	params Params
	seed   int64
	noise  Noise
	log    *slog.Logger
}

// New validates p and creates a Generator. A negative seed is replaced by a
// random one in [0, MaxRandomSeed].
func New(p Params, opts ...Option) (*Generator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	g := &Generator{
		params: p,
		seed:   p.resolveSeed(),
		noise:  NewSimplex(fieldSeed),
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Seed returns the seed the generator samples with.
func (g *Generator) Seed() int64 { return g.seed }

// Params returns the generator parameters with the resolved seed.
func (g *Generator) Params() Params {
	p := g.params
	p.Seed = g.seed
	return p
}

// Generate builds the full mesh.
func (g *Generator) Generate() *Mesh {
	p := g.params
	m := NewMesh(p.MeshName, p.ObjectName)
	m.Seed = g.seed

	steps := p.Steps()
	for i := 0; i <= steps; i++ {
		c := g.Center(i)
		m.Centers = append(m.Centers, c)
		m.Rings = append(m.Rings, g.addRing(m, c, i))
	}

	for i := 0; i+1 < len(m.Rings); i++ {
		m.Skipped += stitch(m, i)
	}

	m.Finalize(p.Smooth)

	g.log.Debug("cave mesh built",
		"seed", g.seed,
		"rings", len(m.Rings),
		"vertices", len(m.Vertices),
		"faces", len(m.Faces),
		"skipped", m.Skipped,
	)
	return m
}

// Center returns the path center point for step i.
func (g *Generator) Center(i int) r3.Vec {
	fi := float64(i)
	return r3.Vec{
		X: ChannelPathX.Sample(g.noise, g.seed, fi*pathFrequency, 0) * g.params.PathAmplitudeX,
		Y: ChannelPathY.Sample(g.noise, g.seed, fi*pathFrequency, 0) * g.params.PathAmplitudeY,
		Z: -fi * g.params.SegmentLength,
	}
}

// RingPoints returns the vertex positions of ring i around center c.
func (g *Generator) RingPoints(c r3.Vec, i int) []r3.Vec {
	p := g.params
	fi := float64(i)
	rot := ChannelRotation.Sample(g.noise, g.seed, fi*rotationFrequency, 0) * rotationScale
	step := 2 * math.Pi / float64(p.PointsPerRing)
	lateral := p.Jitter3D * 0.5

	pts := make([]r3.Vec, p.PointsPerRing)
	for j := range pts {
		fj := float64(j)
		angle := step*fj + rot

		n := ChannelShape.Sample(g.noise, g.seed, fi*shapeFrequencyI, fj*shapeFrequencyJ)
		var macro float64
		if n > p.BlockThreshold {
			macro = math.Pow(n-p.BlockThreshold, blockExponent) * p.BlockStrength
		}

		dz := ChannelDepth.Sample(g.noise, g.seed, fi, fj) * p.Jitter3D
		dx := ChannelLateralX.Sample(g.noise, g.seed, fi*lateralFrequency, fj) * lateral
		dy := ChannelLateralY.Sample(g.noise, g.seed, fi*lateralFrequency, fj) * lateral

		r := p.BaseRadius + macro
		pts[j] = r3.Vec{
			X: c.X + math.Cos(angle)*r + dx,
			Y: c.Y + math.Sin(angle)*r + dy,
			Z: c.Z + dz,
		}
	}
	return pts
}

func (g *Generator) addRing(m *Mesh, c r3.Vec, i int) []int {
	pts := g.RingPoints(c, i)
	ring := make([]int, len(pts))
	for j, pt := range pts {
		ring[j] = m.AddVertex(pt)
	}
	return ring
}

// stitch joins ring i to ring i+1 with two triangles per quad and returns the
// number of faces that were rejected.
func stitch(m *Mesh, i int) int {
	a, b := m.Rings[i], m.Rings[i+1]
	n := len(a)
	var skipped int
	for j := range n {
		k := (j + 1) % n
		for _, tri := range [2][3]int{
			{a[j], b[j], a[k]},
			{b[j], b[k], a[k]},
		} {
			// AddFace only rejects degenerate or duplicate triangles.
			if err := m.AddFace(tri[0], tri[1], tri[2], i); err != nil {
				skipped++
			}
		}
	}
	return skipped
}

// Build generates the mesh and registers it with h, replacing any object and
// mesh that already carry the configured names.
func (g *Generator) Build(h Host) (Handle, *Mesh, error) {
	if err := h.RemoveNamed(KindObject, g.params.ObjectName); err != nil {
		return Handle{}, nil, fmt.Errorf("remove object %s: %w", g.params.ObjectName, err)
	}
	if err := h.RemoveNamed(KindMesh, g.params.MeshName); err != nil {
		return Handle{}, nil, fmt.Errorf("remove mesh %s: %w", g.params.MeshName, err)
	}

	m := g.Generate()
	handle, err := h.CreateAndRegister(m)
	if err != nil {
		return Handle{}, nil, fmt.Errorf("register %s: %w", m.Object, err)
	}

	g.log.Info("cave generated",
		"seed", g.seed,
		"object", m.Object,
		"faces", len(m.Faces),
		"skipped", m.Skipped,
	)
	return handle, m, nil
}
