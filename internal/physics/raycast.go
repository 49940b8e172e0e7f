package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"maze3d/internal/geom"
)

const (
	MinReachDistance = 0.1
	MaxReachDistance = 5.0
)

// RaycastResult stores the nearest static collidable hit by a ray.
type RaycastResult struct {
	Target   Collidable
	Point    mgl32.Vec3
	Distance float32
	Hit      bool
}

// Raycast returns the first static collidable hit by the ray starting at
// start. Hits closer than minDist or farther than maxDist are ignored.
func (e *Engine) Raycast(start, direction mgl32.Vec3, minDist, maxDist float32) RaycastResult {
	result := RaycastResult{Distance: maxDist}
	if direction.Len() == 0 {
		return result
	}
	direction = direction.Normalize()

	end := start.Add(direction.Mul(maxDist))
	e.candidates = e.static.AppendIntersecting(e.candidates[:0], geom.NewBox(start, end))
	for _, c := range e.candidates {
		d, ok := rayBox(start, direction, c.Bounds())
		if !ok || d < minDist || d > result.Distance {
			continue
		}
		result.Target = c
		result.Distance = d
		result.Hit = true
	}
	clear(e.candidates)

	if result.Hit {
		result.Point = start.Add(direction.Mul(result.Distance))
	}
	return result
}

// rayBox is the slab test. It returns the entry distance along dir, or zero
// when the origin is inside b.
func rayBox(origin, dir mgl32.Vec3, b geom.Box) (float32, bool) {
	tmin := float32(0)
	tmax := float32(math.MaxFloat32)
	for i := 0; i < 3; i++ {
		if dir[i] == 0 {
			if origin[i] < b.Min[i] || origin[i] > b.Max[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / dir[i]
		t1 := (b.Min[i] - origin[i]) * inv
		t2 := (b.Max[i] - origin[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}
