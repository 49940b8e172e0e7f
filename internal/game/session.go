package game

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"

	"maze3d/internal/config"
	"maze3d/internal/input"
	"maze3d/internal/metrics"
	"maze3d/internal/physics"
	"maze3d/internal/profiling"
	"maze3d/internal/world"
)

// ZoomStep is how much one zoom key press changes the field of view, in degrees.
const ZoomStep = 5

// Bumper is told when the player walks into a wall.
type Bumper interface {
	Bump() bool
}

// Outcome tells the window loop what changed during an update.
type Outcome struct {
	Quit         bool
	PauseChanged bool
	Regenerated  bool
	Collisions   int
}

// Session is a running game on one scene, independent of the window.
type Session struct {
	Scene    *world.Scene
	Input    *input.Manager
	Settings *config.RenderSettings
	Profiler *profiling.Recorder
	Metrics  *metrics.Metrics
	Bumper   Bumper

	Paused bool
}

// NewSession wires the collision feedback of scene and records its stats.
func NewSession(scene *world.Scene, im *input.Manager, settings *config.RenderSettings, prof *profiling.Recorder) *Session {
	s := &Session{
		Scene:    scene,
		Input:    im,
		Settings: settings,
		Profiler: prof,
	}
	scene.OnCollision = s.onCollision
	return s
}

func (s *Session) onCollision(dynamic, static physics.Collidable) {
	if s.Bumper != nil {
		s.Bumper.Bump()
	}
}

// SetPaused pauses or resumes the simulation.
func (s *Session) SetPaused(paused bool) {
	if s.Paused == paused {
		return
	}
	s.Paused = paused
	if !paused {
		// the cursor jumps while released
		s.Input.ResetCursor()
	}
}

// Update handles the actions pressed this frame and advances the scene by dt
// seconds unless paused.
func (s *Session) Update(dt float64) (Outcome, error) {
	out := s.handleInputActions()
	if out.Quit {
		return out, nil
	}

	if out.Regenerated {
		if err := s.regenerate(); err != nil {
			return out, err
		}
	}

	if s.Paused {
		return out, nil
	}

	defer s.Profiler.Track("world.Update")()
	n, err := s.Scene.Update(dt, s.Input.Movement(dt))
	out.Collisions = n
	if err != nil {
		return out, err
	}
	return out, nil
}

func (s *Session) handleInputActions() Outcome {
	var out Outcome
	im := s.Input

	if im.JustPressed(input.ActionQuit) {
		out.Quit = true
		return out
	}
	if im.JustPressed(input.ActionPause) {
		s.SetPaused(!s.Paused)
		out.PauseChanged = true
	}
	if s.Paused {
		return out
	}

	if im.JustPressed(input.ActionToggleCamera) {
		p := s.Scene.Player()
		p.ToggleMode()
		logs.WithTag("mode", p.Camera.Mode).Debug("camera mode changed")
	}
	if im.JustPressed(input.ActionToggleWireframe) {
		s.Settings.ToggleWireframe()
	}
	if im.JustPressed(input.ActionToggleHUD) {
		s.Settings.ToggleHUD()
	}
	if im.JustPressed(input.ActionZoomIn) {
		s.Settings.SetFOV(s.Settings.FOV() - ZoomStep)
	}
	if im.JustPressed(input.ActionZoomOut) {
		s.Settings.SetFOV(s.Settings.FOV() + ZoomStep)
	}
	if im.JustPressed(input.ActionRegenerate) {
		out.Regenerated = true
	}
	return out
}

func (s *Session) regenerate() error {
	defer s.Profiler.Track("world.Regenerate")()
	if err := s.Scene.Regenerate(0); err != nil {
		return errors.New("regenerating maze failed").Wrap(err)
	}
	s.ObserveScene()
	return nil
}

// ObserveScene publishes the stats of the current scene.
func (s *Session) ObserveScene() {
	if s.Metrics != nil {
		s.Metrics.ObserveScene(s.Scene.Stats())
	}
}
