package scene

import (
	"errors"
	"fmt"
	"sync"

	"github.com/OCharnyshevich/cavegen/pkg/cave"
)

// ErrExists is returned when registering a name that is already in use.
var ErrExists = errors.New("name already in use")

// Object is a scene node that owns one mesh.
type Object struct {
	ID   int
	Name string
	Mesh *cave.Mesh
}

// Scene is an in-memory host collection of objects and meshes.
type Scene struct {
	mu      sync.RWMutex
	objects map[string]*Object
	meshes  map[string]*cave.Mesh
	active  string
	nextID  int
}

// New creates an empty Scene.
func New() *Scene {
	return &Scene{
		objects: make(map[string]*Object),
		meshes:  make(map[string]*cave.Mesh),
	}
}

// RemoveNamed destroys the named object or mesh. Missing names are ignored.
// Removing a mesh also unlinks every object that uses it.
func (s *Scene) RemoveNamed(kind cave.Kind, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch kind {
	case cave.KindObject:
		delete(s.objects, name)
		if s.active == name {
			s.active = ""
		}
	case cave.KindMesh:
		m, ok := s.meshes[name]
		if !ok {
			return nil
		}
		delete(s.meshes, name)
		for objName, obj := range s.objects {
			if obj.Mesh == m {
				delete(s.objects, objName)
				if s.active == objName {
					s.active = ""
				}
			}
		}
	default:
		return fmt.Errorf("unknown kind %q", kind)
	}
	return nil
}

// CreateAndRegister links a new object for m into the scene and makes it active.
func (s *Scene) CreateAndRegister(m *cave.Mesh) (cave.Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[m.Object]; ok {
		return cave.Handle{}, fmt.Errorf("object %s: %w", m.Object, ErrExists)
	}
	if _, ok := s.meshes[m.Name]; ok {
		return cave.Handle{}, fmt.Errorf("mesh %s: %w", m.Name, ErrExists)
	}

	s.nextID++
	obj := &Object{ID: s.nextID, Name: m.Object, Mesh: m}
	s.objects[m.Object] = obj
	s.meshes[m.Name] = m
	s.active = m.Object

	return cave.Handle{ID: obj.ID, Object: m.Object, Mesh: m.Name}, nil
}

// Object returns the named object, or nil.
func (s *Scene) Object(name string) *Object {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.objects[name]
}

// Mesh returns the named mesh, or nil.
func (s *Scene) Mesh(name string) *cave.Mesh {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.meshes[name]
}

// Active returns the active object, or nil.
func (s *Scene) Active() *Object {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.objects[s.active]
}

// Len returns the number of objects and meshes in the scene.
func (s *Scene) Len() (objects, meshes int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects), len(s.meshes)
}
