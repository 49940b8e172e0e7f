package chunk

import (
	"github.com/aukilabs/go-tooling/pkg/errors"

	"maze3d/internal/geom"
	"maze3d/internal/maze"
)

const ErrTypeInvalidRegion = "chunk_invalid_region"

// Region is a half-open rectangle of grid cells: [X0, X1) x [Y0, Y1).
type Region struct {
	X0, Y0 int
	X1, Y1 int
}

func (r Region) Width() int  { return r.X1 - r.X0 }
func (r Region) Height() int { return r.Y1 - r.Y0 }

func (r Region) Contains(x, y int) bool {
	return x >= r.X0 && x < r.X1 && y >= r.Y0 && y < r.Y1
}

func (r Region) validate(g *maze.Grid) error {
	if r.X0 < 0 || r.Y0 < 0 || r.X1 > g.Width() || r.Y1 > g.Height() || r.X0 >= r.X1 || r.Y0 >= r.Y1 {
		return errors.New("region is empty or outside the grid").
			WithType(ErrTypeInvalidRegion).
			WithTag("x0", r.X0).
			WithTag("y0", r.Y0).
			WithTag("x1", r.X1).
			WithTag("y1", r.Y1)
	}
	return nil
}

type mergeTag uint8

const (
	untagged mergeTag = iota
	mergeX            // joined to the wall on its left
	mergeY            // joined to the wall above it
	consumed          // already covered by an emitted box
)

// MergeWalls covers every wall cell of r with as few boxes as the run-length
// scheme allows. Horizontal runs are formed first; vertical runs only join
// cells that are not part of a horizontal run. Every wall cell ends up in
// exactly one box.
func MergeWalls(g *maze.Grid, r Region) ([]geom.Box, error) {
	if err := r.validate(g); err != nil {
		return nil, err
	}

	w := r.Width()
	tags := make([]mergeTag, w*r.Height())
	tag := func(x, y int) *mergeTag {
		return &tags[(y-r.Y0)*w+(x-r.X0)]
	}

	for y := r.Y0; y < r.Y1; y++ {
		for x := r.X0; x < r.X1; x++ {
			if g.IsWall(x, y) && x+1 < r.X1 && g.IsWall(x+1, y) {
				*tag(x+1, y) = mergeX
			}
		}
	}
	for y := r.Y0; y < r.Y1; y++ {
		for x := r.X0; x < r.X1; x++ {
			if !g.IsWall(x, y) || *tag(x, y) == mergeX {
				continue
			}
			if y+1 < r.Y1 && g.IsWall(x, y+1) && *tag(x, y+1) != mergeX {
				*tag(x, y+1) = mergeY
			}
		}
	}

	var boxes []geom.Box
	for y := r.Y0; y < r.Y1; y++ {
		for x := r.X0; x < r.X1; x++ {
			if !g.IsWall(x, y) || *tag(x, y) == consumed {
				continue
			}

			ex, ey := x, y
			for ex+1 < r.X1 && *tag(ex+1, y) == mergeX {
				ex++
			}
			if ex == x {
				for ey+1 < r.Y1 && *tag(x, ey+1) == mergeY {
					ey++
				}
			}

			for cy := y; cy <= ey; cy++ {
				for cx := x; cx <= ex; cx++ {
					*tag(cx, cy) = consumed
				}
			}
			boxes = append(boxes, maze.CellBox(x, y).Union(maze.CellBox(ex, ey)))
		}
	}
	return boxes, nil
}
