package meshing

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"maze3d/internal/geom"
)

func TestAddBoxEmitsTwelveTriangles(t *testing.T) {
	b := NewBuilder()
	b.AddBox(geom.NewBox(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{4, 4, 4}), 4)

	if got, want := b.VertexCount(), 36; got != want {
		t.Fatalf("box: got %d vertices, want %d", got, want)
	}
	if got, want := len(b.Vertices()), 36*VertexStride; got != want {
		t.Fatalf("box: got %d floats, want %d", got, want)
	}
}

func TestAddPlaneWindingFacesNormal(t *testing.T) {
	box := geom.NewBox(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{5, 6, 11})

	for f := geom.FaceNegX; f <= geom.FacePosZ; f++ {
		b := NewBuilder()
		b.AddPlane(box, f, 4)
		v := b.Vertices()
		if len(v) != 6*VertexStride {
			t.Fatalf("face %d: got %d floats", f, len(v))
		}

		p0 := vertexPos(v, 0)
		p1 := vertexPos(v, 1)
		p2 := vertexPos(v, 2)
		geomNormal := p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
		want := f.Normal()
		if !geomNormal.ApproxEqual(want) {
			t.Errorf("face %d: winding normal %v, want %v", f, geomNormal, want)
		}

		stored := mgl32.Vec3{v[3], v[4], v[5]}
		if stored != want {
			t.Errorf("face %d: stored normal %v, want %v", f, stored, want)
		}
	}
}

func TestAddPlaneTextureRepeats(t *testing.T) {
	b := NewBuilder()
	// 8 wide (X), 12 deep (Z) floor
	b.AddPlane(geom.NewBox(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{8, 0, 12}), geom.FacePosY, 4)
	v := b.Vertices()

	// third vertex is the top-right corner
	u, w := v[2*VertexStride+6], v[2*VertexStride+7]
	if u != 2 || w != 3 {
		t.Fatalf("uv = (%v, %v), want (2, 3)", u, w)
	}
}

func TestReset(t *testing.T) {
	b := NewBuilder()
	b.AddBox(geom.NewBox(mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}), 1)
	b.Reset()
	if b.VertexCount() != 0 {
		t.Fatalf("reset left %d vertices", b.VertexCount())
	}
}

func vertexPos(v []float32, i int) mgl32.Vec3 {
	o := i * VertexStride
	return mgl32.Vec3{v[o], v[o+1], v[o+2]}
}

func BenchmarkAddBox(b *testing.B) {
	m := NewBuilder()
	box := geom.NewBox(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{4, 4, 40})
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		m.Reset()
		m.AddBox(box, 4)
	}
}
