package export

import (
	"bytes"
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/OCharnyshevich/cavegen/pkg/cave"
)

func squareTube(t *testing.T, smooth bool) *cave.Mesh {
	t.Helper()
	p := cave.DefaultParams()
	p.Seed = 0
	p.PointsPerRing = 4
	p.CaveLength = 20
	p.BaseRadius = 10
	p.BlockStrength = 0
	p.Jitter3D = 0
	p.Smooth = smooth
	g, err := cave.New(p, cave.WithNoise(cave.Zero))
	if err != nil {
		t.Fatal(err)
	}
	return g.Generate()
}

func TestWriteOBJ(t *testing.T) {
	m := squareTube(t, false)
	var buf bytes.Buffer
	if err := WriteOBJ(&buf, m); err != nil {
		t.Fatal(err)
	}

	counts := map[string]int{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		counts[strings.Fields(line)[0]]++
	}
	if counts["o"] != 1 {
		t.Errorf("got %d object lines, want 1", counts["o"])
	}
	if counts["v"] != 8 {
		t.Errorf("got %d vertices, want 8", counts["v"])
	}
	if counts["vn"] != 8 || counts["f"] != 8 {
		t.Errorf("got %d normals and %d faces, want 8 each", counts["vn"], counts["f"])
	}
	if counts["s"] != 1 || !strings.Contains(buf.String(), "s off\n") {
		t.Errorf("expected a single flat shading group")
	}
	if !strings.Contains(buf.String(), "v 10.000000 0.000000 0.000000\n") {
		t.Errorf("first vertex missing:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "f 1//1 ") {
		t.Errorf("face indices should be 1-based")
	}
}

func TestWriteOBJSmooth(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOBJ(&buf, squareTube(t, true)); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "s 1\n") || strings.Contains(buf.String(), "s off") {
		t.Errorf("expected only a smooth shading group")
	}
}

func TestWriteSTL(t *testing.T) {
	m := squareTube(t, false)
	var buf bytes.Buffer
	if err := WriteSTL(&buf, m); err != nil {
		t.Fatal(err)
	}

	data := buf.Bytes()
	if want := stlHeaderSize + 4 + stlTriangleSize*len(m.Faces); len(data) != want {
		t.Fatalf("got %d bytes, want %d", len(data), want)
	}
	if !bytes.HasPrefix(data, []byte("cavegen UltimateCave")) {
		t.Fatalf("unexpected header %q", data[:20])
	}
	n := binary.LittleEndian.Uint32(data[80:84])
	if n != 8 {
		t.Fatalf("expected 8 triangles, got %d", n)
	}
	// first vertex of the first triangle
	x := math.Float32frombits(binary.LittleEndian.Uint32(data[84+12 : 84+16]))
	if x != float32(m.Vertices[m.Faces[0].V[0]].X) {
		t.Fatalf("vertex x = %f, want %f", x, m.Vertices[m.Faces[0].V[0]].X)
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"obj", "stl"} {
		f, err := ParseFormat(s)
		if err != nil {
			t.Fatalf("ParseFormat(%q): %v", s, err)
		}
		if f.Ext() != "."+s {
			t.Errorf("Ext() = %q", f.Ext())
		}
	}
	if _, err := ParseFormat("fbx"); err == nil {
		t.Error("ParseFormat(\"fbx\") should fail")
	}
	if err := Write(&bytes.Buffer{}, Format("fbx"), squareTube(t, false)); err == nil {
		t.Error("Write with unknown format should fail")
	}
}
