// Package input maps glfw keys and mouse motion to game actions.
package input

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"

	"maze3d/internal/player"
)

// Action is a logical game action, not a physical key.
type Action int

const (
	ActionMoveForward Action = iota
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionTurnLeft
	ActionTurnRight
	ActionSprint
	ActionPause
	ActionQuit
	ActionToggleCamera
	ActionToggleWireframe
	ActionToggleHUD
	ActionRegenerate
	ActionZoomIn
	ActionZoomOut
	ActionCount // sentinel for array sizing
)

// TurnSpeed is how fast the turn keys rotate the view, in degrees per second.
const TurnSpeed = 120.0

// Manager tracks which actions are held and accumulates mouse look.
type Manager struct {
	mu sync.RWMutex

	keyToActions map[glfw.Key][]Action

	current      [ActionCount]bool
	justPressed  [ActionCount]bool
	justReleased [ActionCount]bool

	firstMouse bool
	lastX      float64
	lastY      float64
	yaw        float64
	pitch      float64
}

// NewManager returns a manager with the default bindings.
func NewManager() *Manager {
	m := &Manager{
		keyToActions: make(map[glfw.Key][]Action),
		firstMouse:   true,
	}

	m.BindKey(glfw.KeyW, ActionMoveForward)
	m.BindKey(glfw.KeyUp, ActionMoveForward)
	m.BindKey(glfw.KeyS, ActionMoveBackward)
	m.BindKey(glfw.KeyDown, ActionMoveBackward)
	m.BindKey(glfw.KeyA, ActionMoveLeft)
	m.BindKey(glfw.KeyD, ActionMoveRight)
	m.BindKey(glfw.KeyLeft, ActionTurnLeft)
	m.BindKey(glfw.KeyRight, ActionTurnRight)
	m.BindKey(glfw.KeyLeftShift, ActionSprint)
	m.BindKey(glfw.KeyRightShift, ActionSprint)
	m.BindKey(glfw.KeyEscape, ActionPause)
	m.BindKey(glfw.KeyQ, ActionQuit)
	m.BindKey(glfw.KeyC, ActionToggleCamera)
	m.BindKey(glfw.KeyF, ActionToggleWireframe)
	m.BindKey(glfw.KeyV, ActionToggleHUD)
	m.BindKey(glfw.KeyR, ActionRegenerate)
	m.BindKey(glfw.KeyEqual, ActionZoomIn)
	m.BindKey(glfw.KeyMinus, ActionZoomOut)
	return m
}

// BindKey adds action to the actions triggered by key.
func (m *Manager) BindKey(key glfw.Key, action Action) {
	if action < 0 || action >= ActionCount {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keyToActions[key] = append(m.keyToActions[key], action)
}

// UnbindKey removes every action bound to key.
func (m *Manager) UnbindKey(key glfw.Key) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.keyToActions, key)
}

// HandleKeyEvent updates the state of the actions bound to key.
func (m *Manager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	m.mu.Lock()
	defer m.mu.Unlock()

	actions, ok := m.keyToActions[key]
	if !ok {
		return
	}
	pressed := action == glfw.Press || action == glfw.Repeat
	for _, a := range actions {
		// edges are detected as events arrive
		if pressed && !m.current[a] {
			m.justPressed[a] = true
		}
		if !pressed && m.current[a] {
			m.justReleased[a] = true
		}
		m.current[a] = pressed
	}
}

// HandleCursor accumulates mouse look from an absolute cursor position.
func (m *Manager) HandleCursor(x, y float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.firstMouse {
		m.lastX, m.lastY = x, y
		m.firstMouse = false
		return
	}
	m.yaw += (x - m.lastX) * player.MouseSensitivity
	m.pitch += (m.lastY - y) * player.MouseSensitivity
	m.lastX, m.lastY = x, y
}

// ResetCursor makes the next cursor event a reference point only. Call it
// whenever the cursor is captured again.
func (m *Manager) ResetCursor() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.firstMouse = true
	m.yaw, m.pitch = 0, 0
}

// Attach installs the glfw callbacks on window.
func (m *Manager) Attach(window *glfw.Window) {
	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		m.HandleKeyEvent(key, action)
	})
	window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		m.HandleCursor(x, y)
	})
}

// Movement resolves the held actions and the mouse look gathered since the
// last call into the movement of a frame of dt seconds. Mouse look is consumed.
func (m *Manager) Movement(dt float64) player.Movement {
	m.mu.Lock()
	defer m.mu.Unlock()

	var mv player.Movement
	if m.current[ActionMoveForward] {
		mv.Forward++
	}
	if m.current[ActionMoveBackward] {
		mv.Forward--
	}
	if m.current[ActionMoveRight] {
		mv.Strafe++
	}
	if m.current[ActionMoveLeft] {
		mv.Strafe--
	}

	turn := m.yaw
	if m.current[ActionTurnRight] {
		turn += TurnSpeed * dt
	}
	if m.current[ActionTurnLeft] {
		turn -= TurnSpeed * dt
	}
	mv.Yaw = float32(turn)
	mv.Pitch = float32(m.pitch)
	mv.Sprint = m.current[ActionSprint]

	m.yaw, m.pitch = 0, 0
	return mv
}

// PostUpdate clears the edge flags. Call it at the end of every frame.
func (m *Manager) PostUpdate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.justPressed[:])
	clear(m.justReleased[:])
}

// IsActive reports whether action is held.
func (m *Manager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current[action]
}

// JustPressed reports whether action went down during this frame.
func (m *Manager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.justPressed[action]
}

// JustReleased reports whether action went up during this frame.
func (m *Manager) JustReleased(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.justReleased[action]
}
