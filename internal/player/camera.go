package player

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"maze3d/internal/geom"
)

// Mode selects how the camera moves.
type Mode uint8

const (
	// Person keeps the eye at a fixed height and collides with walls.
	Person Mode = iota
	// Plane flies freely in the direction of view and ignores walls.
	Plane
)

func (m Mode) String() string {
	if m == Plane {
		return "plane"
	}
	return "person"
}

const (
	DefaultFOV  = 45.0
	DefaultNear = 0.5
	DefaultFar  = 1000.0

	MaxPitch = 89.0
)

// Camera is a first person camera. Yaw and pitch are in degrees; a yaw of 0
// looks along +X.
type Camera struct {
	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32
	Mode     Mode

	FOV         float32 // vertical, degrees
	AspectRatio float32
	NearPlane   float32
	FarPlane    float32
}

func NewCamera(pos mgl32.Vec3, aspect float32) Camera {
	return Camera{
		Position:    pos,
		FOV:         DefaultFOV,
		AspectRatio: aspect,
		NearPlane:   DefaultNear,
		FarPlane:    DefaultFar,
	}
}

// Rotate turns the camera. Pitch is clamped so the view never flips.
func (c *Camera) Rotate(yaw, pitch float32) {
	c.Yaw = float32(math.Mod(float64(c.Yaw+yaw), 360))
	c.Pitch = mgl32.Clamp(c.Pitch+pitch, -MaxPitch, MaxPitch)
}

// Front returns the unit view direction.
func (c *Camera) Front() mgl32.Vec3 {
	y := float64(mgl32.DegToRad(c.Yaw))
	p := float64(mgl32.DegToRad(c.Pitch))
	return mgl32.Vec3{
		float32(math.Cos(y) * math.Cos(p)),
		float32(math.Sin(p)),
		float32(math.Sin(y) * math.Cos(p)),
	}.Normalize()
}

// Heading returns the view direction flattened onto the ground plane.
func (c *Camera) Heading() mgl32.Vec3 {
	y := float64(mgl32.DegToRad(c.Yaw))
	return mgl32.Vec3{float32(math.Cos(y)), 0, float32(math.Sin(y))}
}

// Right returns the unit vector to the right of the view direction.
func (c *Camera) Right() mgl32.Vec3 {
	return c.Heading().Cross(mgl32.Vec3{0, 1, 0}).Normalize()
}

// Move translates the camera relative to where it looks. In Person mode the
// camera stays on the ground plane.
func (c *Camera) Move(forward, strafe float32) {
	dir := c.Heading()
	if c.Mode == Plane {
		dir = c.Front()
	}
	c.Position = c.Position.Add(dir.Mul(forward)).Add(c.Right().Mul(strafe))
}

func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front()), mgl32.Vec3{0, 1, 0})
}

func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

// Frustum returns the current view volume.
func (c *Camera) Frustum() geom.Frustum {
	return geom.FrustumFromCamera(c.ViewMatrix(), c.ProjectionMatrix())
}
