package game

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// SetupInputHandlers installs the window callbacks of app.
func SetupInputHandlers(app *App) {
	window := app.window
	app.session.Input.Attach(window)

	window.SetFramebufferSizeCallback(func(w *glfw.Window, fbWidth, fbHeight int) {
		app.resize(fbWidth, fbHeight)
	})

	window.SetFocusCallback(func(w *glfw.Window, focused bool) {
		if !focused && !app.session.Paused {
			app.session.SetPaused(true)
			app.applyCursorMode()
		}
	})

	window.SetRefreshCallback(func(w *glfw.Window) {
		app.render(0)
		w.SwapBuffers()
	})
}
