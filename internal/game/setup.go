package game

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"maze3d/internal/config"
)

// SetupWindow creates the game window with an OpenGL 4.1 core context.
func SetupWindow(conf config.Config) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	width, height := conf.WindowWidth, conf.WindowHeight
	var monitor *glfw.Monitor
	if conf.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
		if mode := monitor.GetVideoMode(); mode != nil {
			width, height = mode.Width, mode.Height
		}
	}

	window, err := glfw.CreateWindow(width, height, "maze3d", monitor, nil)
	if err != nil {
		return nil, errors.New("creating window failed").
			WithTag("width", width).
			WithTag("height", height).
			Wrap(err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		window.Destroy()
		return nil, errors.New("initializing opengl failed").Wrap(err)
	}

	// the frame limiter paces the loop
	glfw.SwapInterval(0)
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	return window, nil
}
