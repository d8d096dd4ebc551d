package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OCharnyshevich/cavegen/pkg/cave"
)

const tomlConfig = `
noise = "perlin"
format = "stl"

[cave]
seed = 512
points_per_ring = 16
block_threshold = 0.6
mesh_name = "DeepMesh"
`

const yamlConfig = `
out_dir: caves
cave:
  seed: 9
  cave_length: 200
  smooth: true
`

const jsonConfig = `{"cave": {"jitter_3d": 4.5, "object_name": "Deep"}, "noise": "simplex"}`

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(data), 0o644))
	return p
}

func TestLoadFormats(t *testing.T) {
	ctx := context.Background()

	t.Run("toml", func(t *testing.T) {
		cfg := DefaultConfig()
		require.NoError(t, Load(ctx, writeFile(t, "c.toml", tomlConfig), cfg))
		assert.Equal(t, "perlin", cfg.Noise)
		assert.Equal(t, "stl", cfg.Format)
		assert.Equal(t, int64(512), cfg.Cave.Seed)
		assert.Equal(t, 16, cfg.Cave.PointsPerRing)
		assert.Equal(t, 0.6, cfg.Cave.BlockThreshold)
		assert.Equal(t, "DeepMesh", cfg.Cave.MeshName)
		// untouched defaults
		assert.Equal(t, 800.0, cfg.Cave.CaveLength)
		assert.Equal(t, "UltimateCave", cfg.Cave.ObjectName)
	})

	t.Run("yaml", func(t *testing.T) {
		cfg := DefaultConfig()
		require.NoError(t, Load(ctx, writeFile(t, "c.yml", yamlConfig), cfg))
		assert.Equal(t, "caves", cfg.OutDir)
		assert.Equal(t, int64(9), cfg.Cave.Seed)
		assert.Equal(t, 200.0, cfg.Cave.CaveLength)
		assert.True(t, cfg.Cave.Smooth)
		assert.Equal(t, 10, cfg.Cave.PointsPerRing)
	})

	t.Run("json", func(t *testing.T) {
		cfg := DefaultConfig()
		require.NoError(t, Load(ctx, writeFile(t, "c.json", jsonConfig), cfg))
		assert.Equal(t, 4.5, cfg.Cave.Jitter3D)
		assert.Equal(t, "Deep", cfg.Cave.ObjectName)
		assert.Equal(t, cave.RandomSeed, cfg.Cave.Seed)
	})
}

func TestLoadErrors(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()

	err := Load(ctx, writeFile(t, "c.ini", "seed=1"), cfg)
	require.ErrorIs(t, err, ErrUnknownFormat)

	err = Load(ctx, filepath.Join(t.TempDir(), "missing.toml"), cfg)
	require.ErrorIs(t, err, os.ErrNotExist)

	err = Load(ctx, writeFile(t, "c.json", "{"), cfg)
	require.Error(t, err)
}

func TestMergeRespectsExplicitFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cave.Seed = 1
	cfg.Format = "stl"

	fromFile := DefaultConfig()
	fromFile.Cave.Seed = 2
	fromFile.Cave.PointsPerRing = 6
	fromFile.Cave.PathAmplitudeX = 10
	fromFile.Format = "obj"
	fromFile.Noise = "perlin"

	Merge(cfg, fromFile, map[string]bool{"seed": true, "format": true})

	assert.Equal(t, int64(1), cfg.Cave.Seed)
	assert.Equal(t, "stl", cfg.Format)
	assert.Equal(t, 6, cfg.Cave.PointsPerRing)
	assert.Equal(t, 10.0, cfg.Cave.PathAmplitudeX)
	assert.Equal(t, "perlin", cfg.Noise)
}

func TestIsRemote(t *testing.T) {
	assert.False(t, IsRemote("caves/deep.toml"))
	assert.False(t, IsRemote("/etc/cavegen.yaml"))
	assert.True(t, IsRemote("https://example.com/deep.toml"))
	assert.True(t, IsRemote("git::https://example.com/repo.git//deep.yaml"))
	assert.True(t, IsRemote("s3::https://s3.amazonaws.com/bucket/deep.json"))
}

func TestRemoteName(t *testing.T) {
	tests := map[string]string{
		"https://example.com/presets/deep.toml":           "deep.toml",
		"git::https://example.com/repo.git//caves/a.yaml": "a.yaml",
		"https://example.com/deep.yml?checksum=md5:abc":   "deep.yml",
		"https://example.com/preset":                      "config.json",
	}
	for src, want := range tests {
		assert.Equal(t, want, remoteName(src), src)
	}
}
