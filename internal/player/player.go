package player

import (
	"fmt"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/go-gl/mathgl/mgl32"

	"maze3d/internal/geom"
	"maze3d/internal/physics"
)

const (
	EyeHeight = 2.0
	// HalfWidth is the distance from the eye to the side of the player box.
	HalfWidth = 1.0
	// ClearanceMargin is how far the eye is kept from a wall face.
	ClearanceMargin = HalfWidth

	WalkSpeed        = 8.0 // units per second
	SprintMultiplier = 2.0
	// MouseSensitivity converts cursor pixels to degrees.
	MouseSensitivity = 0.1
)

// Movement is the input of one frame.
type Movement struct {
	Forward float32 // -1..1
	Strafe  float32 // -1..1, positive is right
	Yaw     float32 // degrees
	Pitch   float32 // degrees
	Sprint  bool
}

// Player is the only dynamic collidable. Its position is the camera eye.
type Player struct {
	Camera Camera

	previous mgl32.Vec3
	bumps    int
}

// New places a player looking along +X at pos.
func New(pos mgl32.Vec3, aspect float32) *Player {
	return &Player{
		Camera:   NewCamera(pos, aspect),
		previous: pos,
	}
}

func (p *Player) Position() mgl32.Vec3 {
	return p.Camera.Position
}

// Previous returns the position at the start of the current tick.
func (p *Player) Previous() mgl32.Vec3 {
	return p.previous
}

// Teleport moves the player without it counting as movement.
func (p *Player) Teleport(pos mgl32.Vec3) {
	p.Camera.Position = pos
	p.previous = pos
}

// Bumps returns how many times a wall pushed the player back.
func (p *Player) Bumps() int {
	return p.bumps
}

// BeginTick remembers the current position for collision response.
func (p *Player) BeginTick() {
	p.previous = p.Camera.Position
}

// Apply turns and moves the player for a frame of dt seconds.
func (p *Player) Apply(m Movement, dt float64) {
	p.Camera.Rotate(m.Yaw, m.Pitch)

	speed := float32(WalkSpeed * dt)
	if m.Sprint {
		speed *= SprintMultiplier
	}
	p.Camera.Move(m.Forward*speed, m.Strafe*speed)
	if p.Camera.Mode == Person {
		p.Camera.Position[1] = EyeHeight
	}
}

// ToggleMode switches between walking and flying. Landing puts the eye back
// at walking height.
func (p *Player) ToggleMode() {
	if p.Camera.Mode == Person {
		p.Camera.Mode = Plane
		return
	}
	p.Camera.Mode = Person
	p.Camera.Position[1] = EyeHeight
	p.previous = p.Camera.Position
}

func (p *Player) Bounds() geom.Box {
	return geom.Around(p.Camera.Position, mgl32.Vec3{HalfWidth, 0, HalfWidth})
}

func (p *Player) IsStatic() bool { return false }

// Collides reports whether the player overlaps other. A flying player never
// collides.
func (p *Player) Collides(other physics.Collidable) bool {
	return p.Camera.Mode == Person && p.Bounds().Overlaps(other.Bounds())
}

// CollisionResponse pushes the player back out of a wall along every axis on
// which it crossed a face during this tick.
func (p *Player) CollisionResponse(other physics.Collidable) error {
	wall, ok := other.(*physics.Wall)
	if !ok {
		return errors.New("player cannot respond to collidable").
			WithType(physics.ErrTypeUnsupportedCollision).
			WithTag("collidable", fmt.Sprintf("%T", other))
	}

	b := wall.Bounds()
	pos := p.Camera.Position
	clamped := false
	for _, axis := range [2]int{0, 2} {
		lo := b.Min[axis] - ClearanceMargin
		hi := b.Max[axis] + ClearanceMargin
		switch {
		case p.previous[axis] <= lo && pos[axis] > lo:
			pos[axis] = lo
			clamped = true
		case p.previous[axis] >= hi && pos[axis] < hi:
			pos[axis] = hi
			clamped = true
		}
	}

	if clamped {
		p.Camera.Position = pos
		p.bumps++
	}
	return nil
}

// ViewMatrix returns the camera view matrix.
func (p *Player) ViewMatrix() mgl32.Mat4 {
	return p.Camera.ViewMatrix()
}
