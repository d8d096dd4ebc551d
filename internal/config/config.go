package config

import (
	"github.com/OCharnyshevich/cavegen/pkg/cave"
)

// Config holds the generator configuration.
type Config struct {
	Cave   cave.Params `json:"cave" toml:"cave" yaml:"cave"`
	Noise  string      `json:"noise" toml:"noise" yaml:"noise"`     // "simplex" or "perlin"
	OutDir string      `json:"out_dir" toml:"out_dir" yaml:"out_dir"`
	Format string      `json:"format" toml:"format" yaml:"format"` // "obj" or "stl"
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Cave:   cave.DefaultParams(),
		Noise:  "simplex",
		OutDir: "out",
		Format: "obj",
	}
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	p, f := &cfg.Cave, &fromFile.Cave

	if !explicitFlags["seed"] {
		p.Seed = f.Seed
	}
	if !explicitFlags["points"] {
		p.PointsPerRing = f.PointsPerRing
	}
	if !explicitFlags["length"] {
		p.CaveLength = f.CaveLength
	}
	if !explicitFlags["segment"] {
		p.SegmentLength = f.SegmentLength
	}
	if !explicitFlags["radius"] {
		p.BaseRadius = f.BaseRadius
	}
	if !explicitFlags["threshold"] {
		p.BlockThreshold = f.BlockThreshold
	}
	if !explicitFlags["strength"] {
		p.BlockStrength = f.BlockStrength
	}
	if !explicitFlags["jitter"] {
		p.Jitter3D = f.Jitter3D
	}
	if !explicitFlags["smooth"] {
		p.Smooth = f.Smooth
	}
	if !explicitFlags["noise"] {
		cfg.Noise = fromFile.Noise
	}
	if !explicitFlags["out"] {
		cfg.OutDir = fromFile.OutDir
	}
	if !explicitFlags["format"] {
		cfg.Format = fromFile.Format
	}

	// No flags for these.
	p.PathAmplitudeX = f.PathAmplitudeX
	p.PathAmplitudeY = f.PathAmplitudeY
	p.ObjectName = f.ObjectName
	p.MeshName = f.MeshName
}
