// Package game runs the window loop around a maze scene.
package game

import (
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/go-gl/glfw/v3.3/glfw"

	"maze3d/internal/diagnostics"
	"maze3d/internal/graphics/renderables/crosshair"
	"maze3d/internal/graphics/renderables/hud"
	mazeview "maze3d/internal/graphics/renderables/maze"
	"maze3d/internal/graphics/renderables/wireframe"
	"maze3d/internal/graphics/renderer"
)

// SlowFrame is the frame time above which a frame is logged.
const SlowFrame = 16 * time.Millisecond

type App struct {
	window   *glfw.Window
	session  *Session
	renderer *renderer.Renderer
	hud      *hud.HUD

	fps        diagnostics.FPSCounter
	fpsLimiter *FPSLimiter
	lastTime   time.Time
	lastStats  renderer.FrameStats
}

// NewApp creates the renderables on the current GL context.
func NewApp(window *glfw.Window, session *Session, fontPath string, fpsLimit int) (*App, error) {
	h := hud.NewHUD(fontPath)
	width, height := window.GetFramebufferSize()

	r, err := renderer.NewRenderer(width, height,
		mazeview.NewMaze(),
		wireframe.NewWireframe(),
		crosshair.NewCrosshair(),
		h,
	)
	if err != nil {
		return nil, errors.New("creating renderer failed").Wrap(err)
	}

	app := &App{
		window:     window,
		session:    session,
		renderer:   r,
		hud:        h,
		fpsLimiter: NewFPSLimiter(fpsLimit),
		lastTime:   time.Now(),
	}
	app.resize(width, height)
	SetupInputHandlers(app)
	return app, nil
}

// Run loops until the window closes or an update fails.
func (a *App) Run() error {
	defer a.renderer.Dispose()

	for !a.window.ShouldClose() {
		if err := a.tick(); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) tick() error {
	prof := a.session.Profiler
	prof.ResetFrame()

	startTick := time.Now()
	frameTime := startTick.Sub(a.lastTime)
	a.lastTime = startTick
	a.fps.Update(frameTime)

	func() {
		defer prof.Track("glfw.PollEvents")()
		glfw.PollEvents()
	}()

	out, err := a.session.Update(frameTime.Seconds())
	if err != nil {
		return err
	}
	if out.Quit {
		a.window.SetShouldClose(true)
		return nil
	}
	if out.PauseChanged {
		a.applyCursorMode()
	}

	a.render(frameTime.Seconds())
	a.lastStats.Collisions = out.Collisions

	func() {
		defer prof.Track("glfw.SwapBuffers")()
		a.window.SwapBuffers()
	}()

	processing := time.Since(startTick)
	if processing > SlowFrame {
		logs.Warn(errors.New("slow frame").
			WithTag("duration", processing).
			WithTag("top", prof.TopN(5)))
	}
	if m := a.session.Metrics; m != nil {
		m.ObserveFrame(processing, a.lastStats.VisibleChunks, a.lastStats.Vertices, out.Collisions, a.fps.Average())
	}

	a.session.Input.PostUpdate()
	a.fpsLimiter.Wait(a.session.Paused)
	return nil
}

func (a *App) render(dt float64) {
	s := a.session
	start := time.Now()
	func() {
		defer s.Profiler.Track("renderer.Render")()
		a.lastStats = a.renderer.Render(s.Scene, s.Settings, s.Profiler, dt, a.fps.Average())
	}()
	a.hud.RecordFrame(time.Since(start))
}

func (a *App) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	a.renderer.UpdateViewport(width, height)
	a.session.Scene.SetAspectRatio(float32(width) / float32(height))
}

func (a *App) applyCursorMode() {
	if a.session.Paused {
		a.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
		return
	}
	a.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
}
