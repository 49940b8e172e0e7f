package input

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/require"
)

func TestEdgeDetection(t *testing.T) {
	m := NewManager()

	m.HandleKeyEvent(glfw.KeyR, glfw.Press)
	require.True(t, m.IsActive(ActionRegenerate))
	require.True(t, m.JustPressed(ActionRegenerate))

	m.PostUpdate()
	require.True(t, m.IsActive(ActionRegenerate))
	require.False(t, m.JustPressed(ActionRegenerate))

	// key repeat is not a new press
	m.HandleKeyEvent(glfw.KeyR, glfw.Repeat)
	require.False(t, m.JustPressed(ActionRegenerate))

	m.HandleKeyEvent(glfw.KeyR, glfw.Release)
	require.False(t, m.IsActive(ActionRegenerate))
	require.True(t, m.JustReleased(ActionRegenerate))

	require.False(t, m.IsActive(ActionCount))
	require.False(t, m.JustPressed(-1))
}

func TestMovementFromKeys(t *testing.T) {
	m := NewManager()
	m.HandleKeyEvent(glfw.KeyUp, glfw.Press)
	m.HandleKeyEvent(glfw.KeyD, glfw.Press)
	m.HandleKeyEvent(glfw.KeyLeftShift, glfw.Press)
	m.HandleKeyEvent(glfw.KeyRight, glfw.Press)

	mv := m.Movement(0.5)
	require.Equal(t, float32(1), mv.Forward)
	require.Equal(t, float32(1), mv.Strafe)
	require.True(t, mv.Sprint)
	require.InDelta(t, TurnSpeed*0.5, mv.Yaw, 1e-4)

	// opposite keys cancel
	m.HandleKeyEvent(glfw.KeyS, glfw.Press)
	m.HandleKeyEvent(glfw.KeyA, glfw.Press)
	mv = m.Movement(0.5)
	require.Zero(t, mv.Forward)
	require.Zero(t, mv.Strafe)
}

func TestMouseLookIsConsumed(t *testing.T) {
	m := NewManager()

	m.HandleCursor(100, 100) // reference point
	m.HandleCursor(110, 90)
	m.HandleCursor(130, 80)

	mv := m.Movement(1.0 / 60)
	require.InDelta(t, 3, mv.Yaw, 1e-4)
	require.InDelta(t, 2, mv.Pitch, 1e-4)

	mv = m.Movement(1.0 / 60)
	require.Zero(t, mv.Yaw)
	require.Zero(t, mv.Pitch)

	m.ResetCursor()
	m.HandleCursor(500, 500)
	require.Zero(t, m.Movement(1.0/60).Yaw)
}

func TestUnbindKey(t *testing.T) {
	m := NewManager()
	m.UnbindKey(glfw.KeyW)
	m.HandleKeyEvent(glfw.KeyW, glfw.Press)
	require.False(t, m.IsActive(ActionMoveForward))

	m.BindKey(glfw.KeyI, ActionMoveForward)
	m.HandleKeyEvent(glfw.KeyI, glfw.Press)
	require.True(t, m.IsActive(ActionMoveForward))
}
