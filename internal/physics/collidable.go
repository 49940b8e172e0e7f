package physics

import "maze3d/internal/geom"

const (
	ErrTypeNilCollidable        = "physics_nil_collidable"
	ErrTypeUnsupportedCollision = "physics_unsupported_collision"
)

// Collidable is anything that takes part in collision detection.
type Collidable interface {
	// Bounds is the box used by the broad phase.
	Bounds() geom.Box
	// IsStatic reports whether the collidable never moves. Static collidables
	// are indexed, dynamic ones are checked against the index every update.
	IsStatic() bool
	// Collides is the narrow phase test against other.
	Collides(other Collidable) bool
	// CollisionResponse reacts to touching other.
	CollisionResponse(other Collidable) error
}

// Wall is a static box that never reacts to anything.
type Wall struct {
	box geom.Box
}

func NewWall(box geom.Box) *Wall {
	return &Wall{box: box}
}

func (w *Wall) Bounds() geom.Box { return w.box }

func (w *Wall) IsStatic() bool { return true }

// Collides defers to other since a wall has no opinion about what touches it.
func (w *Wall) Collides(other Collidable) bool {
	return other.Collides(w)
}

func (w *Wall) CollisionResponse(Collidable) error { return nil }
