package game

import (
	"testing"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"maze3d/internal/config"
	"maze3d/internal/input"
	"maze3d/internal/maze"
	"maze3d/internal/metrics"
	"maze3d/internal/player"
	"maze3d/internal/profiling"
	"maze3d/internal/world"
)

type countingBumper struct {
	bumps int
}

func (b *countingBumper) Bump() bool {
	b.bumps++
	return true
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	g, err := maze.ParseGrid(
		"######",
		"#....#",
		"######",
	)
	require.NoError(t, err)
	scene, err := world.NewFromGrid(g, world.Options{})
	require.NoError(t, err)

	return NewSession(scene, input.NewManager(), config.NewRenderSettings(45), profiling.NewRecorder())
}

func press(s *Session, key glfw.Key) {
	s.Input.HandleKeyEvent(key, glfw.Press)
}

func frame(t *testing.T, s *Session) Outcome {
	t.Helper()
	out, err := s.Update(1.0 / 60)
	require.NoError(t, err)
	s.Input.PostUpdate()
	return out
}

func TestSessionWalksAndBumps(t *testing.T) {
	s := newTestSession(t)
	b := &countingBumper{}
	s.Bumper = b

	press(s, glfw.KeyW)
	collisions := 0
	for i := 0; i < 240; i++ {
		collisions += frame(t, s).Collisions
	}

	pos := s.Scene.Player().Position()
	require.InDelta(t, 20-player.ClearanceMargin, pos[0], 1e-4)
	require.Positive(t, collisions)
	require.Equal(t, collisions, b.bumps)
}

func TestSessionPause(t *testing.T) {
	s := newTestSession(t)
	start := s.Scene.Player().Position()

	press(s, glfw.KeyEscape)
	out := frame(t, s)
	require.True(t, out.PauseChanged)
	require.True(t, s.Paused)

	press(s, glfw.KeyW)
	// toggles are ignored while paused
	press(s, glfw.KeyF)
	frame(t, s)
	require.Equal(t, start, s.Scene.Player().Position())
	require.False(t, s.Settings.Wireframe())

	s.Input.HandleKeyEvent(glfw.KeyEscape, glfw.Release)
	press(s, glfw.KeyEscape)
	out = frame(t, s)
	require.True(t, out.PauseChanged)
	require.False(t, s.Paused)
	require.NotEqual(t, start, s.Scene.Player().Position())
}

func TestSessionToggles(t *testing.T) {
	s := newTestSession(t)

	press(s, glfw.KeyF)
	press(s, glfw.KeyV)
	press(s, glfw.KeyC)
	press(s, glfw.KeyEqual)
	frame(t, s)

	require.True(t, s.Settings.Wireframe())
	require.False(t, s.Settings.HUD())
	require.Equal(t, player.Plane, s.Scene.Player().Camera.Mode)
	require.Equal(t, float32(45-ZoomStep), s.Settings.FOV())

	press(s, glfw.KeyMinus)
	frame(t, s)
	// zoom in is still held, only the new press counts
	require.Equal(t, float32(45), s.Settings.FOV())
}

func TestSessionRegenerate(t *testing.T) {
	s := newTestSession(t)
	reg := prometheus.NewRegistry()
	s.Metrics = metrics.New(reg, "test")
	first := s.Scene.ID()

	press(s, glfw.KeyR)
	out := frame(t, s)
	require.True(t, out.Regenerated)
	require.NotEqual(t, first, s.Scene.ID())
	require.Equal(t, float64(1), testutil.ToFloat64(s.Metrics.MazesGenerated))
}

func TestSessionQuit(t *testing.T) {
	s := newTestSession(t)
	start := s.Scene.Player().Position()

	press(s, glfw.KeyW)
	press(s, glfw.KeyQ)
	out := frame(t, s)
	require.True(t, out.Quit)
	require.Equal(t, start, s.Scene.Player().Position())
}

func TestFPSLimiterBudget(t *testing.T) {
	require.Zero(t, NewFPSLimiter(0).frameBudget(false))
	require.Equal(t, time.Second/PausedFPS, NewFPSLimiter(0).frameBudget(true))
	require.Equal(t, time.Second/120, NewFPSLimiter(120).frameBudget(false))
	require.Equal(t, time.Second/PausedFPS, NewFPSLimiter(120).frameBudget(true))
	require.Equal(t, time.Second/10, NewFPSLimiter(10).frameBudget(true))
}

func TestFPSLimiterWaits(t *testing.T) {
	l := NewFPSLimiter(200)
	start := time.Now()
	for i := 0; i < 4; i++ {
		l.Wait(false)
	}
	require.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)

	unlimited := NewFPSLimiter(0)
	start = time.Now()
	unlimited.Wait(false)
	require.Less(t, time.Since(start), 5*time.Millisecond)
}
