package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"maze3d/internal/config"
	"maze3d/internal/profiling"
	"maze3d/internal/world"
)

// SkyColor is the clear color, also used as fog color.
var SkyColor = [3]float32{0.53, 0.81, 0.92}

// fovSpeed is how fast the field of view follows its target, in degrees per
// second.
const fovSpeed = 100.0

// Renderer orchestrates rendering via renderable features
type Renderer struct {
	renderables []Renderable
	width       int
	height      int

	currentFOV float32
}

// NewRenderer configures OpenGL and initializes every renderable.
func NewRenderer(width, height int, rs ...Renderable) (*Renderer, error) {
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	r := &Renderer{renderables: rs}
	for i, rb := range rs {
		if err := rb.Init(); err != nil {
			// release what was already set up
			for j := i - 1; j >= 0; j-- {
				rs[j].Dispose()
			}
			return nil, err
		}
	}
	r.UpdateViewport(width, height)
	return r, nil
}

// Render draws one frame of scene and returns what was drawn. fps is shown by
// the overlay.
func (r *Renderer) Render(scene *world.Scene, settings *config.RenderSettings, prof *profiling.Recorder, dt, fps float64) FrameStats {
	gl.ClearColor(SkyColor[0], SkyColor[1], SkyColor[2], 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	p := scene.Player()
	p.Camera.FOV = r.stepFOV(p.Camera.FOV, settings.FOV(), dt)

	stats := FrameStats{FPS: fps}
	ctx := RenderContext{
		Scene:    scene,
		Player:   p,
		Settings: settings,
		Profiler: prof,
		DT:       dt,
		View:     p.Camera.ViewMatrix(),
		Proj:     p.Camera.ProjectionMatrix(),
		Width:    r.width,
		Height:   r.height,
		Stats:    &stats,
	}
	for _, rb := range r.renderables {
		rb.Render(ctx)
	}
	return stats
}

// stepFOV moves the camera field of view toward target.
func (r *Renderer) stepFOV(current, target float32, dt float64) float32 {
	if r.currentFOV == 0 {
		r.currentFOV = current
	}
	step := float32(dt) * fovSpeed
	switch {
	case r.currentFOV < target:
		r.currentFOV = min(r.currentFOV+step, target)
	case r.currentFOV > target:
		r.currentFOV = max(r.currentFOV-step, target)
	}
	return r.currentFOV
}

// Dispose cleans up all renderables in reverse order
func (r *Renderer) Dispose() {
	for i := len(r.renderables) - 1; i >= 0; i-- {
		r.renderables[i].Dispose()
	}
}

// UpdateViewport resizes the GL viewport and tells every renderable.
func (r *Renderer) UpdateViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.width, r.height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
	for _, rb := range r.renderables {
		rb.SetViewport(width, height)
	}
}
