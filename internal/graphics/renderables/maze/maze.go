// Package maze draws the chunks of a scene that are inside the camera frustum.
package maze

import (
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"maze3d/internal/chunk"
	"maze3d/internal/graphics"
	renderer "maze3d/internal/graphics/renderer"
	"maze3d/internal/meshing"
)

// FogDistance is the view distance at which geometry fully fades into the sky.
const FogDistance = 160

type mesh struct {
	vao   uint32
	vbo   uint32
	count int32
}

type chunkMesh struct {
	walls mesh
	floor mesh
}

// meshQueue bounds the chunk meshes waiting to be built.
const meshQueue = 256

// Maze renders maze chunks. Chunk vertices are built by a worker pool the
// first time the chunk becomes visible, uploaded on a later frame and
// dropped when the scene changes.
type Maze struct {
	shader  *graphics.Shader
	meshes  map[int]*chunkMesh
	pending map[int]bool
	sceneID uuid.UUID

	pool    *meshing.WorkerPool
	results chan meshing.MeshResult
}

func NewMaze() *Maze {
	return &Maze{
		meshes:  make(map[int]*chunkMesh),
		pending: make(map[int]bool),
		results: make(chan meshing.MeshResult, meshQueue),
	}
}

func (m *Maze) Init() error {
	var err error
	m.shader, err = graphics.LoadShader("maze")
	if err != nil {
		return err
	}
	m.pool = meshing.NewWorkerPool(runtime.NumCPU()-1, meshQueue)

	m.shader.Use()
	light := mgl32.Vec3{0.3, 1.0, 0.5}.Normalize()
	m.shader.SetVector3("lightDir", light.X(), light.Y(), light.Z())
	m.shader.SetVector3("fogColor", renderer.SkyColor[0], renderer.SkyColor[1], renderer.SkyColor[2])
	m.shader.SetFloat("fogFar", FogDistance)
	return nil
}

func (m *Maze) Render(ctx renderer.RenderContext) {
	if ctx.Scene.ID() != m.sceneID {
		m.releaseMeshes()
		clear(m.pending)
		m.sceneID = ctx.Scene.ID()
	}
	m.collectMeshes(ctx)

	if ctx.Settings.Wireframe() {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		defer gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	visible := func() []*chunk.Chunk {
		defer ctx.Profiler.Track("renderer.maze.cull")()
		return ctx.Scene.VisibleChunks(ctx.View, ctx.Proj)
	}()

	defer ctx.Profiler.Track("renderer.maze.draw")()

	m.shader.Use()
	m.shader.SetMatrix4("proj", &ctx.Proj[0])
	m.shader.SetMatrix4("view", &ctx.View[0])

	for _, c := range visible {
		cm, ok := m.meshes[c.ID]
		if !ok {
			m.requestMesh(c)
			continue
		}

		m.shader.SetVector3("color", WallColor.X(), WallColor.Y(), WallColor.Z())
		cm.walls.draw()

		fc := FloorColor(c.ID)
		m.shader.SetVector3("color", fc.X(), fc.Y(), fc.Z())
		cm.floor.draw()

		ctx.Stats.Vertices += c.Vertices()
	}
	ctx.Stats.VisibleChunks += len(visible)
	gl.BindVertexArray(0)
}

func (m *Maze) requestMesh(c *chunk.Chunk) {
	if m.pending[c.ID] {
		return
	}
	if m.pool.SubmitJob(meshing.MeshJob{Tag: m.sceneID.String(), Chunk: c, ResultChan: m.results}) {
		m.pending[c.ID] = true
	}
}

// collectMeshes uploads the meshes finished since the last frame.
func (m *Maze) collectMeshes(ctx renderer.RenderContext) {
	defer ctx.Profiler.Track("renderer.maze.upload")()

	tag := m.sceneID.String()
	for {
		select {
		case r := <-m.results:
			if r.Tag != tag {
				continue
			}
			delete(m.pending, r.ChunkID)
			m.meshes[r.ChunkID] = &chunkMesh{
				walls: upload(r.Walls),
				floor: upload(r.Floor),
			}
		default:
			return
		}
	}
}

func upload(verts []float32) mesh {
	var msh mesh
	msh.count = int32(len(verts) / meshing.VertexStride)
	if msh.count == 0 {
		return msh
	}

	gl.GenVertexArrays(1, &msh.vao)
	gl.BindVertexArray(msh.vao)
	gl.GenBuffers(1, &msh.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, msh.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)

	stride := int32(meshing.VertexStride * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)
	gl.BindVertexArray(0)
	return msh
}

func (msh *mesh) draw() {
	if msh.count == 0 {
		return
	}
	gl.BindVertexArray(msh.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, msh.count)
}

func (msh *mesh) release() {
	if msh.vao != 0 {
		gl.DeleteVertexArrays(1, &msh.vao)
	}
	if msh.vbo != 0 {
		gl.DeleteBuffers(1, &msh.vbo)
	}
	*msh = mesh{}
}

func (m *Maze) releaseMeshes() {
	for id, cm := range m.meshes {
		cm.walls.release()
		cm.floor.release()
		delete(m.meshes, id)
	}
}

func (m *Maze) Dispose() {
	if m.pool != nil {
		m.pool.Shutdown()
	}
	m.releaseMeshes()
	m.shader.Delete()
}

func (m *Maze) SetViewport(width, height int) {}
