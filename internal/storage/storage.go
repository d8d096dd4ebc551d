package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/OCharnyshevich/cavegen/internal/export"
	"github.com/OCharnyshevich/cavegen/pkg/cave"
)

// ErrInvalidName is returned for object or mesh names that are not plain file names.
var ErrInvalidName = errors.New("invalid name")

// Storage is a directory-backed host. Each object is a JSON manifest that
// points at a mesh file in the configured export format.
type Storage struct {
	dir    string
	format export.Format
	log    *slog.Logger
	nextID int
}

// New creates a Storage rooted at dir, creating it as needed.
func New(dir string, format export.Format, log *slog.Logger) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create directory %s: %w", dir, err)
	}
	return &Storage{dir: dir, format: format, log: log}, nil
}

// RemoveNamed deletes the manifest of an object, or the file of a mesh in
// any supported format. Missing files are ignored.
func (s *Storage) RemoveNamed(kind cave.Kind, name string) error {
	if err := checkName(name); err != nil {
		return err
	}

	var paths []string
	switch kind {
	case cave.KindObject:
		paths = []string{s.manifestPath(name)}
	case cave.KindMesh:
		for _, f := range export.Formats {
			paths = append(paths, filepath.Join(s.dir, name+f.Ext()))
		}
	default:
		return fmt.Errorf("unknown kind %q", kind)
	}

	for _, path := range paths {
		if err := os.Remove(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("remove %s %s: %w", kind, name, err)
		}
		s.log.Debug("removed", "kind", kind, "path", path)
	}
	return nil
}

// CreateAndRegister writes the mesh file and its object manifest.
func (s *Storage) CreateAndRegister(m *cave.Mesh) (cave.Handle, error) {
	for _, name := range []string{m.Name, m.Object} {
		if err := checkName(name); err != nil {
			return cave.Handle{}, err
		}
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, s.format, m); err != nil {
		return cave.Handle{}, fmt.Errorf("encode %s: %w", m.Name, err)
	}
	path := s.meshPath(m.Name)
	if err := atomicWrite(path, buf.Bytes()); err != nil {
		return cave.Handle{}, err
	}

	lo, hi := m.Bounds()
	man := Manifest{
		Object:   m.Object,
		Mesh:     m.Name,
		File:     filepath.Base(path),
		Format:   string(s.format),
		Seed:     m.Seed,
		Rings:    len(m.Rings),
		Vertices: len(m.Vertices),
		Faces:    len(m.Faces),
		Skipped:  m.Skipped,
		Min:      [3]float64{lo.X, lo.Y, lo.Z},
		Max:      [3]float64{hi.X, hi.Y, hi.Z},
	}
	if err := atomicWriteJSON(s.manifestPath(m.Object), &man); err != nil {
		return cave.Handle{}, err
	}

	s.nextID++
	s.log.Info("saved mesh", "path", path, "faces", man.Faces)
	return cave.Handle{ID: s.nextID, Object: m.Object, Mesh: m.Name, Location: path}, nil
}

// LoadManifest reads the manifest of the named object, or nil if there is none.
func (s *Storage) LoadManifest(object string) (*Manifest, error) {
	if err := checkName(object); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.manifestPath(object))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read manifest %s: %w", object, err)
	}
	var man Manifest
	if err := json.Unmarshal(data, &man); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", object, err)
	}
	return &man, nil
}

// checkName rejects names that would resolve outside the storage directory.
func checkName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w %q", ErrInvalidName, name)
	}
	return nil
}

func (s *Storage) manifestPath(object string) string {
	return filepath.Join(s.dir, object+".json")
}

func (s *Storage) meshPath(mesh string) string {
	return filepath.Join(s.dir, mesh+s.format.Ext())
}

// atomicWriteJSON marshals v to JSON and writes it atomically.
func atomicWriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	return atomicWrite(path, append(data, '\n'))
}

// atomicWrite writes data using a temp file + rename.
func atomicWrite(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
