package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OCharnyshevich/cavegen/pkg/cave"
)

func build(t *testing.T, s *Scene, seed int64) (cave.Handle, *cave.Mesh) {
	t.Helper()
	p := cave.DefaultParams()
	p.Seed = seed
	p.CaveLength = 100
	g, err := cave.New(p)
	require.NoError(t, err)
	h, m, err := g.Build(s)
	require.NoError(t, err)
	return h, m
}

func TestBuildRegistersActiveObject(t *testing.T) {
	s := New()
	h, m := build(t, s, 1)

	assert.Equal(t, 1, h.ID)
	obj := s.Active()
	require.NotNil(t, obj)
	assert.Equal(t, "UltimateCave", obj.Name)
	assert.Same(t, m, obj.Mesh)
	assert.Same(t, m, s.Mesh("UltimateCaveMesh"))
}

func TestRebuildReplaces(t *testing.T) {
	s := New()
	_, first := build(t, s, 1)
	h, second := build(t, s, 2)

	objects, meshes := s.Len()
	assert.Equal(t, 1, objects)
	assert.Equal(t, 1, meshes)
	assert.Equal(t, 2, h.ID)
	assert.NotSame(t, first, s.Mesh("UltimateCaveMesh"))
	assert.Same(t, second, s.Object("UltimateCave").Mesh)
}

func TestCreateRejectsTakenName(t *testing.T) {
	s := New()
	m := cave.NewMesh("mesh", "obj")
	_, err := s.CreateAndRegister(m)
	require.NoError(t, err)

	_, err = s.CreateAndRegister(cave.NewMesh("other", "obj"))
	require.ErrorIs(t, err, ErrExists)
	_, err = s.CreateAndRegister(cave.NewMesh("mesh", "other"))
	require.ErrorIs(t, err, ErrExists)
}

func TestRemoveMeshUnlinksObject(t *testing.T) {
	s := New()
	_, err := s.CreateAndRegister(cave.NewMesh("mesh", "obj"))
	require.NoError(t, err)

	require.NoError(t, s.RemoveNamed(cave.KindMesh, "mesh"))
	assert.Nil(t, s.Object("obj"))
	assert.Nil(t, s.Active())
}

func TestRemoveMissingIsNoop(t *testing.T) {
	s := New()
	require.NoError(t, s.RemoveNamed(cave.KindObject, "nothing"))
	require.NoError(t, s.RemoveNamed(cave.KindMesh, "nothing"))
	require.Error(t, s.RemoveNamed("camera", "nothing"))
}
