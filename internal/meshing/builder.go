package meshing

import (
	"github.com/go-gl/mathgl/mgl32"

	"maze3d/internal/geom"
)

// VertexStride is number of float32 per vertex (pos.xyz + normal.xyz + uv)
const VertexStride = 8

// Builder accumulates an interleaved triangle list (pos+normal+uv).
// Faces are wound counter-clockwise when seen from outside the box.
type Builder struct {
	vertices []float32
}

func NewBuilder() *Builder {
	return &Builder{vertices: make([]float32, 0, 36*VertexStride)}
}

// AddBox emits all six faces of b. Texture coordinates repeat every tileSize
// world units.
func (m *Builder) AddBox(b geom.Box, tileSize float32) {
	for f := geom.FaceNegX; f <= geom.FacePosZ; f++ {
		m.AddPlane(b, f, tileSize)
	}
}

// AddPlane emits a single quad lying on the given side of b.
func (m *Builder) AddPlane(b geom.Box, face geom.Face, tileSize float32) {
	x0, y0, z0 := b.Min[0], b.Min[1], b.Min[2]
	x1, y1, z1 := b.Max[0], b.Max[1], b.Max[2]

	// corners in order bottom-left, bottom-right, top-right, top-left
	var c [4]mgl32.Vec3
	switch face {
	case geom.FacePosX:
		c = [4]mgl32.Vec3{{x1, y0, z1}, {x1, y0, z0}, {x1, y1, z0}, {x1, y1, z1}}
	case geom.FaceNegX:
		c = [4]mgl32.Vec3{{x0, y0, z0}, {x0, y0, z1}, {x0, y1, z1}, {x0, y1, z0}}
	case geom.FacePosY:
		c = [4]mgl32.Vec3{{x0, y1, z1}, {x1, y1, z1}, {x1, y1, z0}, {x0, y1, z0}}
	case geom.FaceNegY:
		c = [4]mgl32.Vec3{{x0, y0, z0}, {x1, y0, z0}, {x1, y0, z1}, {x0, y0, z1}}
	case geom.FacePosZ:
		c = [4]mgl32.Vec3{{x0, y0, z1}, {x1, y0, z1}, {x1, y1, z1}, {x0, y1, z1}}
	default:
		c = [4]mgl32.Vec3{{x1, y0, z0}, {x0, y0, z0}, {x0, y1, z0}, {x1, y1, z0}}
	}

	if tileSize <= 0 {
		tileSize = 1
	}
	u := c[1].Sub(c[0]).Len() / tileSize
	v := c[3].Sub(c[0]).Len() / tileSize
	uv := [4][2]float32{{0, 0}, {u, 0}, {u, v}, {0, v}}
	n := face.Normal()

	emit := func(i int) {
		m.vertices = append(m.vertices,
			c[i][0], c[i][1], c[i][2],
			n[0], n[1], n[2],
			uv[i][0], uv[i][1],
		)
	}
	// Triangle 1: v0,v1,v2
	emit(0)
	emit(1)
	emit(2)
	// Triangle 2: v2,v3,v0
	emit(2)
	emit(3)
	emit(0)
}

// Vertices returns the accumulated vertex data. The slice is owned by the builder.
func (m *Builder) Vertices() []float32 {
	return m.vertices
}

// VertexCount returns the number of emitted vertices.
func (m *Builder) VertexCount() int {
	return len(m.vertices) / VertexStride
}

func (m *Builder) Reset() {
	m.vertices = m.vertices[:0]
}
