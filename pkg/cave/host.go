package cave

// Kind names a class of host datablock.
type Kind string

const (
	KindObject Kind = "object"
	KindMesh   Kind = "mesh"
)

// Handle identifies a mesh registered with a host.
type Handle struct {
	ID     int
	Object string
	Mesh   string
	// Location is host specific, e.g. the file the mesh was written to.
	Location string
}

// Host is the scene a generated cave is placed into.
type Host interface {
	// RemoveNamed destroys the named datablock if it exists.
	RemoveNamed(kind Kind, name string) error
	// CreateAndRegister creates an object for m and links it into the scene.
	CreateAndRegister(m *Mesh) (Handle, error)
}
