package wireframe

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"maze3d/internal/geom"
	"maze3d/internal/graphics"
	renderer "maze3d/internal/graphics/renderer"
	"maze3d/internal/physics"
)

// outline grows the highlighted box so its edges are not hidden by the wall.
const outline = 0.02

// Wireframe outlines the wall the player is looking at.
type Wireframe struct {
	shader *graphics.Shader
	vao    uint32
	vbo    uint32
}

// NewWireframe creates a new wireframe renderable
func NewWireframe() *Wireframe {
	return &Wireframe{}
}

// Init initializes the wireframe rendering system
func (w *Wireframe) Init() error {
	var err error
	w.shader, err = graphics.LoadShader("maze")
	if err != nil {
		return err
	}
	w.setupWireframeVAO()
	return nil
}

// Render outlines the targeted wall box, if any.
func (w *Wireframe) Render(ctx renderer.RenderContext) {
	hit := ctx.Scene.LookAt(physics.MaxReachDistance)
	if !hit.Hit {
		return
	}
	defer ctx.Profiler.Track("renderer.highlight")()
	w.renderHighlightedBox(hit.Target.Bounds(), ctx.View, ctx.Proj)
}

// Dispose cleans up OpenGL resources
func (w *Wireframe) Dispose() {
	if w.vao != 0 {
		gl.DeleteVertexArrays(1, &w.vao)
	}
	if w.vbo != 0 {
		gl.DeleteBuffers(1, &w.vbo)
	}
	w.shader.Delete()
}

func (w *Wireframe) SetViewport(width, height int) {}

// EdgeVertices returns the 24 line endpoints of the edges of b, grown by pad.
func EdgeVertices(b geom.Box, pad float32) []float32 {
	lo := b.Min.Sub(mgl32.Vec3{pad, pad, pad})
	hi := b.Max.Add(mgl32.Vec3{pad, pad, pad})
	c := [8]mgl32.Vec3{
		{lo[0], lo[1], lo[2]}, {hi[0], lo[1], lo[2]}, {hi[0], lo[1], hi[2]}, {lo[0], lo[1], hi[2]},
		{lo[0], hi[1], lo[2]}, {hi[0], hi[1], lo[2]}, {hi[0], hi[1], hi[2]}, {lo[0], hi[1], hi[2]},
	}
	edges := [12][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}

	out := make([]float32, 0, 24*8)
	for _, e := range edges {
		for _, i := range e {
			// position, an upward normal so lighting is flat, no uv
			out = append(out, c[i][0], c[i][1], c[i][2], 0, 1, 0, 0.5, 0.5)
		}
	}
	return out
}

func (w *Wireframe) setupWireframeVAO() {
	gl.GenVertexArrays(1, &w.vao)
	gl.BindVertexArray(w.vao)

	gl.GenBuffers(1, &w.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, w.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 24*8*4, nil, gl.DYNAMIC_DRAW)

	stride := int32(8 * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)
	gl.BindVertexArray(0)
}

func (w *Wireframe) renderHighlightedBox(b geom.Box, view, projection mgl32.Mat4) {
	verts := EdgeVertices(b, outline)

	w.shader.Use()
	w.shader.SetMatrix4("proj", &projection[0])
	w.shader.SetMatrix4("view", &view[0])
	w.shader.SetVector3("color", 0, 0, 0) // black outline

	gl.BindVertexArray(w.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, w.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(verts)*4, gl.Ptr(verts))
	gl.LineWidth(1.0)
	gl.DrawArrays(gl.LINES, 0, 24)
	gl.BindVertexArray(0)
}
