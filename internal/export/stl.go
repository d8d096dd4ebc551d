package export

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"

	"github.com/OCharnyshevich/cavegen/pkg/cave"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	stlHeaderSize   = 80
	stlTriangleSize = 50 // normal + 3 vertices as float32, 2 byte attribute
)

// WriteSTL writes m as binary STL.
func WriteSTL(w io.Writer, m *cave.Mesh) error {
	bw := bufio.NewWriter(w)

	var header [stlHeaderSize]byte
	copy(header[:], "cavegen "+m.Object)
	bw.Write(header[:])

	var count [4]byte
	binary.LittleEndian.PutUint32(count[:], uint32(len(m.Faces)))
	bw.Write(count[:])

	var rec [stlTriangleSize]byte
	for i, f := range m.Faces {
		tri := m.Triangle(i)
		putVec(rec[0:12], f.Normal)
		putVec(rec[12:24], tri[0])
		putVec(rec[24:36], tri[1])
		putVec(rec[36:48], tri[2])
		binary.LittleEndian.PutUint16(rec[48:50], 0)
		bw.Write(rec[:])
	}
	return bw.Flush()
}

func putVec(b []byte, v r3.Vec) {
	binary.LittleEndian.PutUint32(b[0:4], math.Float32bits(float32(v.X)))
	binary.LittleEndian.PutUint32(b[4:8], math.Float32bits(float32(v.Y)))
	binary.LittleEndian.PutUint32(b[8:12], math.Float32bits(float32(v.Z)))
}
