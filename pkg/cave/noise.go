package cave

import (
	"fmt"

	perlin "github.com/aquilax/go-perlin"
)

// Noise is a deterministic, continuous scalar field in approximately [-1, 1].
type Noise interface {
	Sample(x, y, z float64) float64
}

// NoiseFunc adapts a plain function to the Noise interface.
type NoiseFunc func(x, y, z float64) float64

// Sample calls f(x, y, z).
func (f NoiseFunc) Sample(x, y, z float64) float64 { return f(x, y, z) }

// Zero is a Noise that always returns 0. Useful to pin the path and jitter.
var Zero Noise = NoiseFunc(func(_, _, _ float64) float64 { return 0 })

// fieldSeed fixes the permutation of the built-in fields. The run seed is
// passed in as a coordinate, so every run samples the same field.
const fieldSeed = 0

// NewNoise returns the named noise backend: "simplex" (default) or "perlin".
func NewNoise(name string) (Noise, error) {
	switch name {
	case "", "simplex":
		return NewSimplex(fieldSeed), nil
	case "perlin":
		return NewPerlin(fieldSeed), nil
	default:
		return nil, fmt.Errorf("unknown noise %q", name)
	}
}

// Perlin wraps go-perlin as a Noise.
type Perlin struct {
	p *perlin.Perlin
}

// NewPerlin creates a 3-octave Perlin field with the given permutation seed.
func NewPerlin(seed int64) *Perlin {
	return &Perlin{p: perlin.NewPerlin(2, 2, 3, seed)}
}

// perlinShift moves sample points off the lattice, where Perlin noise is 0
// in every octave. Channels sample at integer coordinates.
var perlinShift = [3]float64{0.3183, 0.4142, 0.5772}

// Sample returns Perlin noise at (x, y, z).
func (p *Perlin) Sample(x, y, z float64) float64 {
	return p.p.Noise3D(x+perlinShift[0], y+perlinShift[1], z+perlinShift[2])
}

// Simplex noise based on the original algorithm by Ken Perlin.
// Produces values in the range [-1, 1].

// grad3 are gradient vectors for 3D simplex noise.
var grad3 = [12][3]float64{
	{1, 1, 0},
	{-1, 1, 0},
	{1, -1, 0},
	{-1, -1, 0},
	{1, 0, 1},
	{-1, 0, 1},
	{1, 0, -1},
	{-1, 0, -1},
	{0, 1, 1},
	{0, -1, 1},
	{0, 1, -1},
	{0, -1, -1},
}

// Simplex produces deterministic 3D simplex noise from a permutation seed.
type Simplex struct {
	perm [512]int
}

// NewSimplex creates a simplex field with a seeded permutation table.
func NewSimplex(seed int64) *Simplex {
	sx := &Simplex{}

	var p [256]int
	for i := range p {
		p[i] = i
	}

	// Fisher-Yates shuffle with seed-derived random.
	s := seed
	for i := 255; i > 0; i-- {
		s = s*6364136223846793005 + 1442695040888963407 // LCG
		j := int((s>>33)&0x7FFFFFFF) % (i + 1)
		p[i], p[j] = p[j], p[i]
	}

	for i := 0; i < 512; i++ {
		sx.perm[i] = p[i&255]
	}
	return sx
}

// Sample returns 3D simplex noise for the given coordinates.
func (sx *Simplex) Sample(x, y, z float64) float64 {
	const (
		f3 = 1.0 / 3.0
		g3 = 1.0 / 6.0
	)

	s := (x + y + z) * f3
	i := fastFloor(x + s)
	j := fastFloor(y + s)
	k := fastFloor(z + s)

	t := float64(i+j+k) * g3
	x0 := x - (float64(i) - t)
	y0 := y - (float64(j) - t)
	z0 := z - (float64(k) - t)

	var i1, j1, k1, i2, j2, k2 int
	if x0 >= y0 {
		if y0 >= z0 {
			i1, j1, k1 = 1, 0, 0
			i2, j2, k2 = 1, 1, 0
		} else if x0 >= z0 {
			i1, j1, k1 = 1, 0, 0
			i2, j2, k2 = 1, 0, 1
		} else {
			i1, j1, k1 = 0, 0, 1
			i2, j2, k2 = 1, 0, 1
		}
	} else {
		if y0 < z0 {
			i1, j1, k1 = 0, 0, 1
			i2, j2, k2 = 0, 1, 1
		} else if x0 < z0 {
			i1, j1, k1 = 0, 1, 0
			i2, j2, k2 = 0, 1, 1
		} else {
			i1, j1, k1 = 0, 1, 0
			i2, j2, k2 = 1, 1, 0
		}
	}

	x1 := x0 - float64(i1) + g3
	y1 := y0 - float64(j1) + g3
	z1 := z0 - float64(k1) + g3
	x2 := x0 - float64(i2) + 2.0*g3
	y2 := y0 - float64(j2) + 2.0*g3
	z2 := z0 - float64(k2) + 2.0*g3
	x3 := x0 - 1.0 + 3.0*g3
	y3 := y0 - 1.0 + 3.0*g3
	z3 := z0 - 1.0 + 3.0*g3

	ii := i & 255
	jj := j & 255
	kk := k & 255
	gi := [4]int{
		sx.perm[ii+sx.perm[jj+sx.perm[kk]]] % 12,
		sx.perm[ii+i1+sx.perm[jj+j1+sx.perm[kk+k1]]] % 12,
		sx.perm[ii+i2+sx.perm[jj+j2+sx.perm[kk+k2]]] % 12,
		sx.perm[ii+1+sx.perm[jj+1+sx.perm[kk+1]]] % 12,
	}

	return 32.0 * (corner(gi[0], x0, y0, z0) +
		corner(gi[1], x1, y1, z1) +
		corner(gi[2], x2, y2, z2) +
		corner(gi[3], x3, y3, z3))
}

// corner is the contribution of one simplex corner.
func corner(g int, x, y, z float64) float64 {
	t := 0.6 - x*x - y*y - z*z
	if t < 0 {
		return 0
	}
	t *= t
	return t * t * (grad3[g][0]*x + grad3[g][1]*y + grad3[g][2]*z)
}

func fastFloor(x float64) int {
	xi := int(x)
	if x < float64(xi) {
		return xi - 1
	}
	return xi
}
