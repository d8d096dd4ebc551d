package cave

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

// ErrInvalidParams is returned by Params.Validate.
var ErrInvalidParams = errors.New("invalid cave parameters")

// RandomSeed asks the generator to pick a seed in [0, MaxRandomSeed].
const RandomSeed int64 = -1

// MaxRandomSeed is the largest seed chosen when none is supplied.
const MaxRandomSeed = 9999

// MaxSteps bounds the number of path segments in one cave.
const MaxSteps = 1 << 20

// Params controls the shape of a generated cave.
type Params struct {
	SegmentLength  float64 `json:"segment_length" toml:"segment_length" yaml:"segment_length"`
	BaseRadius     float64 `json:"base_radius" toml:"base_radius" yaml:"base_radius"`
	PointsPerRing  int     `json:"points_per_ring" toml:"points_per_ring" yaml:"points_per_ring"`
	CaveLength     float64 `json:"cave_length" toml:"cave_length" yaml:"cave_length"`
	Seed           int64   `json:"seed" toml:"seed" yaml:"seed"` // RandomSeed (-1) = pick one
	BlockThreshold float64 `json:"block_threshold" toml:"block_threshold" yaml:"block_threshold"`
	BlockStrength  float64 `json:"block_strength" toml:"block_strength" yaml:"block_strength"`
	Jitter3D       float64 `json:"jitter_3d" toml:"jitter_3d" yaml:"jitter_3d"`

	// Lateral wander of the path.
	PathAmplitudeX float64 `json:"path_amplitude_x" toml:"path_amplitude_x" yaml:"path_amplitude_x"`
	PathAmplitudeY float64 `json:"path_amplitude_y" toml:"path_amplitude_y" yaml:"path_amplitude_y"`

	// Smooth disables flat shading on every face.
	Smooth bool `json:"smooth" toml:"smooth" yaml:"smooth"`

	ObjectName string `json:"object_name" toml:"object_name" yaml:"object_name"`
	MeshName   string `json:"mesh_name" toml:"mesh_name" yaml:"mesh_name"`
}

// DefaultParams returns the stock cave: 41 rings of 10 points, random seed.
func DefaultParams() Params {
	return Params{
		SegmentLength:  20.0,
		BaseRadius:     30.0,
		PointsPerRing:  10,
		CaveLength:     800.0,
		Seed:           RandomSeed,
		BlockThreshold: 0.53,
		BlockStrength:  28.0,
		Jitter3D:       15.0,
		PathAmplitudeX: 45.0,
		PathAmplitudeY: 25.0,
		ObjectName:     "UltimateCave",
		MeshName:       "UltimateCaveMesh",
	}
}

// Validate reports the first parameter that cannot produce a mesh.
func (p Params) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"segment length", p.SegmentLength},
		{"base radius", p.BaseRadius},
		{"cave length", p.CaveLength},
		{"block threshold", p.BlockThreshold},
		{"block strength", p.BlockStrength},
		{"jitter", p.Jitter3D},
		{"path amplitude x", p.PathAmplitudeX},
		{"path amplitude y", p.PathAmplitudeY},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s %g is not finite", ErrInvalidParams, f.name, f.v)
		}
	}

	switch {
	case p.PointsPerRing < 3:
		return fmt.Errorf("%w: points per ring %d < 3", ErrInvalidParams, p.PointsPerRing)
	case p.SegmentLength <= 0:
		return fmt.Errorf("%w: segment length %g <= 0", ErrInvalidParams, p.SegmentLength)
	case p.CaveLength < 0:
		return fmt.Errorf("%w: cave length %g < 0", ErrInvalidParams, p.CaveLength)
	case p.BaseRadius <= 0:
		return fmt.Errorf("%w: base radius %g <= 0", ErrInvalidParams, p.BaseRadius)
	case p.CaveLength/p.SegmentLength > MaxSteps:
		return fmt.Errorf("%w: %g / %g is more than %d steps", ErrInvalidParams, p.CaveLength, p.SegmentLength, MaxSteps)
	case p.ObjectName == "" || p.MeshName == "":
		return fmt.Errorf("%w: object and mesh names are required", ErrInvalidParams)
	}
	return nil
}

// Steps returns the number of path segments, floor(CaveLength / SegmentLength).
func (p Params) Steps() int {
	return int(p.CaveLength / p.SegmentLength)
}

// resolveSeed returns p.Seed, or a fresh seed in [0, MaxRandomSeed] when it is negative.
func (p Params) resolveSeed() int64 {
	if p.Seed >= 0 {
		return p.Seed
	}
	return rand.Int64N(MaxRandomSeed + 1)
}
