package export

import (
	"bufio"
	"io"
	"strconv"

	"github.com/OCharnyshevich/cavegen/pkg/cave"
	"gonum.org/v1/gonum/spatial/r3"
)

// WriteOBJ writes m as a Wavefront OBJ object with one normal per face.
// Flat faces are grouped under "s off", smooth ones under "s 1".
func WriteOBJ(w io.Writer, m *cave.Mesh) error {
	bw := bufio.NewWriter(w)

	bw.WriteString("# seed " + strconv.FormatInt(m.Seed, 10) + "\n")
	bw.WriteString("o " + m.Object + "\n")
	for _, v := range m.Vertices {
		writeVec(bw, "v", v)
	}
	for _, f := range m.Faces {
		writeVec(bw, "vn", f.Normal)
	}

	smooth := -1
	var buf []byte
	for i, f := range m.Faces {
		if s := boolInt(f.Smooth); s != smooth {
			smooth = s
			if f.Smooth {
				bw.WriteString("s 1\n")
			} else {
				bw.WriteString("s off\n")
			}
		}
		buf = append(buf[:0], 'f')
		for _, v := range f.V {
			buf = append(buf, ' ')
			buf = strconv.AppendInt(buf, int64(v+1), 10)
			buf = append(buf, '/', '/')
			buf = strconv.AppendInt(buf, int64(i+1), 10)
		}
		buf = append(buf, '\n')
		bw.Write(buf)
	}
	return bw.Flush()
}

func writeVec(bw *bufio.Writer, tag string, v r3.Vec) {
	buf := make([]byte, 0, 64)
	buf = append(buf, tag...)
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		buf = append(buf, ' ')
		buf = strconv.AppendFloat(buf, c, 'f', 6, 64)
	}
	buf = append(buf, '\n')
	bw.Write(buf)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
