package geom

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Box is an axis-aligned bounding box. Min is component-wise <= Max.
type Box struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// NewBox returns the box spanned by two corners in any order.
func NewBox(a, b mgl32.Vec3) Box {
	return Box{
		Min: mgl32.Vec3{min(a[0], b[0]), min(a[1], b[1]), min(a[2], b[2])},
		Max: mgl32.Vec3{max(a[0], b[0]), max(a[1], b[1]), max(a[2], b[2])},
	}
}

// Around returns the box centred on c extending half in each direction.
func Around(c, half mgl32.Vec3) Box {
	return Box{Min: c.Sub(half), Max: c.Add(half)}
}

// Contains reports whether o lies fully inside b. Touching faces count as inside.
func (b Box) Contains(o Box) bool {
	return o.Min[0] >= b.Min[0] && o.Max[0] <= b.Max[0] &&
		o.Min[1] >= b.Min[1] && o.Max[1] <= b.Max[1] &&
		o.Min[2] >= b.Min[2] && o.Max[2] <= b.Max[2]
}

// ContainsPoint reports whether p lies inside b or on its surface.
func (b Box) ContainsPoint(p mgl32.Vec3) bool {
	return p[0] >= b.Min[0] && p[0] <= b.Max[0] &&
		p[1] >= b.Min[1] && p[1] <= b.Max[1] &&
		p[2] >= b.Min[2] && p[2] <= b.Max[2]
}

// Intersects reports whether the closed boxes share at least one point.
func (b Box) Intersects(o Box) bool {
	return b.Min[0] <= o.Max[0] && b.Max[0] >= o.Min[0] &&
		b.Min[1] <= o.Max[1] && b.Max[1] >= o.Min[1] &&
		b.Min[2] <= o.Max[2] && b.Max[2] >= o.Min[2]
}

// Overlaps reports whether the boxes share interior volume on every axis with
// a non-zero extent. Boxes that only touch do not overlap.
func (b Box) Overlaps(o Box) bool {
	for i := 0; i < 3; i++ {
		if b.Min[i] == b.Max[i] || o.Min[i] == o.Max[i] {
			if b.Min[i] > o.Max[i] || b.Max[i] < o.Min[i] {
				return false
			}
			continue
		}
		if b.Min[i] >= o.Max[i] || b.Max[i] <= o.Min[i] {
			return false
		}
	}
	return true
}

// Union returns the smallest box containing both b and o.
func (b Box) Union(o Box) Box {
	return Box{
		Min: mgl32.Vec3{min(b.Min[0], o.Min[0]), min(b.Min[1], o.Min[1]), min(b.Min[2], o.Min[2])},
		Max: mgl32.Vec3{max(b.Max[0], o.Max[0]), max(b.Max[1], o.Max[1]), max(b.Max[2], o.Max[2])},
	}
}

func (b Box) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

func (b Box) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// QuadrantsXZ splits b into four boxes by halving X and Z. Y is kept as is.
// Order: (-X,-Z), (+X,-Z), (-X,+Z), (+X,+Z).
func (b Box) QuadrantsXZ() [4]Box {
	c := b.Center()
	return [4]Box{
		{Min: b.Min, Max: mgl32.Vec3{c[0], b.Max[1], c[2]}},
		{Min: mgl32.Vec3{c[0], b.Min[1], b.Min[2]}, Max: mgl32.Vec3{b.Max[0], b.Max[1], c[2]}},
		{Min: mgl32.Vec3{b.Min[0], b.Min[1], c[2]}, Max: mgl32.Vec3{c[0], b.Max[1], b.Max[2]}},
		{Min: mgl32.Vec3{c[0], b.Min[1], c[2]}, Max: b.Max},
	}
}

func (b Box) String() string {
	return fmt.Sprintf("[(%g, %g, %g) (%g, %g, %g)]",
		b.Min[0], b.Min[1], b.Min[2], b.Max[0], b.Max[1], b.Max[2])
}

// Face selects one side of a box.
type Face uint8

const (
	FaceNegX Face = iota
	FacePosX
	FaceNegY
	FacePosY
	FaceNegZ
	FacePosZ
)

// Normal returns the outward unit normal of the face.
func (f Face) Normal() mgl32.Vec3 {
	switch f {
	case FaceNegX:
		return mgl32.Vec3{-1, 0, 0}
	case FacePosX:
		return mgl32.Vec3{1, 0, 0}
	case FaceNegY:
		return mgl32.Vec3{0, -1, 0}
	case FacePosY:
		return mgl32.Vec3{0, 1, 0}
	case FaceNegZ:
		return mgl32.Vec3{0, 0, -1}
	default:
		return mgl32.Vec3{0, 0, 1}
	}
}
