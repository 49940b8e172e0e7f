package config

import "sync"

// RenderSettings holds toggles that change while the game runs.
type RenderSettings struct {
	mu        sync.RWMutex
	wireframe bool
	hud       bool
	fov       float32
}

func NewRenderSettings(fov float32) *RenderSettings {
	return &RenderSettings{hud: true, fov: fov}
}

func (s *RenderSettings) Wireframe() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.wireframe
}

// ToggleWireframe flips wireframe rendering and returns the new state.
func (s *RenderSettings) ToggleWireframe() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wireframe = !s.wireframe
	return s.wireframe
}

func (s *RenderSettings) HUD() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hud
}

// ToggleHUD flips the overlay and returns the new state.
func (s *RenderSettings) ToggleHUD() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hud = !s.hud
	return s.hud
}

func (s *RenderSettings) FOV() float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fov
}

// SetFOV sets the field of view in degrees.
func (s *RenderSettings) SetFOV(fov float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Clamp to reasonable values
	if fov < 30 {
		fov = 30
	}
	if fov > 110 {
		fov = 110
	}
	s.fov = fov
}
