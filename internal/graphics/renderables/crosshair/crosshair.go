package crosshair

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"maze3d/internal/graphics"
	renderer "maze3d/internal/graphics/renderer"
	"maze3d/internal/physics"
)

var Vertices = []float32{
	-0.02, 0.0,
	0.02, 0.0,
	0.0, -0.02,
	0.0, 0.02,
}

var (
	IdleColor   = mgl32.Vec3{1, 1, 1}
	TargetColor = mgl32.Vec3{1, 0.3, 0.2}
)

// Color returns the crosshair color for a look-at result.
func Color(r physics.RaycastResult) mgl32.Vec3 {
	if r.Hit {
		return TargetColor
	}
	return IdleColor
}

// Crosshair implements crosshair rendering
type Crosshair struct {
	shader *graphics.Shader
	vao    uint32
	vbo    uint32
}

// NewCrosshair creates a new crosshair renderable
func NewCrosshair() *Crosshair {
	return &Crosshair{}
}

// Init initializes the crosshair rendering system
func (c *Crosshair) Init() error {
	var err error
	c.shader, err = graphics.LoadShader("crosshair")
	if err != nil {
		return err
	}
	c.setupCrosshairVAO()
	return nil
}

// Render renders the crosshair, tinted when a wall is within reach.
func (c *Crosshair) Render(ctx renderer.RenderContext) {
	defer ctx.Profiler.Track("renderer.crosshair")()

	color := Color(ctx.Scene.LookAt(physics.MaxReachDistance))

	gl.Disable(gl.DEPTH_TEST)
	defer gl.Enable(gl.DEPTH_TEST)

	c.shader.Use()
	c.shader.SetFloat("aspectRatio", ctx.Player.Camera.AspectRatio)
	c.shader.SetVector3("color", color.X(), color.Y(), color.Z())

	gl.BindVertexArray(c.vao)
	gl.LineWidth(1.0)
	gl.DrawArrays(gl.LINES, 0, 4)
	gl.BindVertexArray(0)
}

// Dispose cleans up OpenGL resources
func (c *Crosshair) Dispose() {
	if c.vao != 0 {
		gl.DeleteVertexArrays(1, &c.vao)
	}
	if c.vbo != 0 {
		gl.DeleteBuffers(1, &c.vbo)
	}
	c.shader.Delete()
}

func (c *Crosshair) SetViewport(width, height int) {}

func (c *Crosshair) setupCrosshairVAO() {
	gl.GenVertexArrays(1, &c.vao)
	gl.BindVertexArray(c.vao)

	gl.GenBuffers(1, &c.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, c.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(Vertices)*4, gl.Ptr(Vertices), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
	gl.BindVertexArray(0)
}
