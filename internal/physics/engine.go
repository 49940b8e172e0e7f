package physics

import (
	"github.com/aukilabs/go-tooling/pkg/errors"

	"maze3d/internal/geom"
	"maze3d/internal/quadtree"
)

// Engine finds and resolves collisions between dynamic collidables and the
// static collidables stored in a quadtree.
type Engine struct {
	static  *quadtree.Tree[Collidable]
	dynamic []Collidable

	// OnCollision is called after every successful response.
	OnCollision func(dynamic, static Collidable)

	candidates []Collidable
}

// NewEngine returns an engine whose static collidables must fit in area.
func NewEngine(area geom.Box) *Engine {
	return &Engine{static: quadtree.New[Collidable](area)}
}

// Add registers c. Static collidables go to the index, dynamic ones to the
// per-update list.
func (e *Engine) Add(c Collidable) error {
	if c == nil {
		return errors.New("collidable is nil").WithType(ErrTypeNilCollidable)
	}
	if !c.IsStatic() {
		e.dynamic = append(e.dynamic, c)
		return nil
	}
	if err := e.static.Add(c); err != nil {
		return errors.New("adding static collidable failed").Wrap(err)
	}
	return nil
}

// Remove unregisters c. Removing an unknown collidable does nothing.
func (e *Engine) Remove(c Collidable) error {
	if c == nil {
		return errors.New("collidable is nil").WithType(ErrTypeNilCollidable)
	}
	if c.IsStatic() {
		e.static.Remove(c)
		return nil
	}
	for i, d := range e.dynamic {
		if d == c {
			e.dynamic = append(e.dynamic[:i], e.dynamic[i+1:]...)
			break
		}
	}
	return nil
}

// Update checks every dynamic collidable against the static ones it overlaps
// and lets it respond. It returns how many responses ran.
func (e *Engine) Update() (int, error) {
	responses := 0
	for _, d := range e.dynamic {
		e.candidates = e.static.AppendIntersecting(e.candidates[:0], d.Bounds())
		for _, s := range e.candidates {
			if !s.Collides(d) {
				continue
			}
			if err := d.CollisionResponse(s); err != nil {
				return responses, err
			}
			responses++
			if e.OnCollision != nil {
				e.OnCollision(d, s)
			}
		}
	}
	clear(e.candidates)
	return responses, nil
}

// StaticCount returns the number of indexed static collidables.
func (e *Engine) StaticCount() int {
	return e.static.Len()
}

// DynamicCount returns the number of dynamic collidables.
func (e *Engine) DynamicCount() int {
	return len(e.dynamic)
}

// Stats describes the static index.
func (e *Engine) Stats() quadtree.Stats {
	return e.static.Stats()
}
