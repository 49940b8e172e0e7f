package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"maze3d/internal/config"
	"maze3d/internal/player"
	"maze3d/internal/profiling"
	"maze3d/internal/world"
)

// FrameStats collects what the renderables drew during a frame.
type FrameStats struct {
	VisibleChunks int
	Vertices      int
	FPS           float64
	Collisions    int
}

// RenderContext provides shared context for all renderables
type RenderContext struct {
	Scene    *world.Scene
	Player   *player.Player
	Settings *config.RenderSettings
	Profiler *profiling.Recorder
	DT       float64
	View     mgl32.Mat4
	Proj     mgl32.Mat4
	Width    int
	Height   int
	Stats    *FrameStats
}

// Renderable interface defines the lifecycle for renderable features
type Renderable interface {
	Init() error
	Render(ctx RenderContext)
	Dispose()
	SetViewport(width, height int)
}
