// Package chunk slices a generated maze into square groups of cells that are
// culled and drawn as a unit.
package chunk

import (
	"github.com/aukilabs/go-tooling/pkg/errors"

	"maze3d/internal/geom"
	"maze3d/internal/maze"
)

const (
	// DefaultSize is the edge length of a chunk in cells.
	DefaultSize = 25
	// TileSize is the world size of one texture repeat on walls and floors.
	TileSize float32 = 4
)

// MeshBuilder receives the geometry of a chunk. The renderer decides what to
// do with it.
type MeshBuilder interface {
	AddBox(b geom.Box, tileSize float32)
	AddPlane(b geom.Box, face geom.Face, tileSize float32)
}

// Chunk is an immutable group of cells with its merged wall boxes.
type Chunk struct {
	ID     int
	Region Region
	Walls  []geom.Box

	bounds geom.Box
}

// New builds the chunk covering r.
func New(g *maze.Grid, r Region, id int) (*Chunk, error) {
	walls, err := MergeWalls(g, r)
	if err != nil {
		return nil, err
	}
	return &Chunk{
		ID:     id,
		Region: r,
		Walls:  walls,
		bounds: maze.CellBox(r.X0, r.Y0).Union(maze.CellBox(r.X1-1, r.Y1-1)),
	}, nil
}

// Bounds returns the box spanning every cell of the chunk from floor to wall top.
func (c *Chunk) Bounds() geom.Box {
	return c.bounds
}

// Floor returns the flat box at the bottom of the chunk.
func (c *Chunk) Floor() geom.Box {
	f := c.bounds
	f.Max[1] = f.Min[1]
	return f
}

// BuildMesh emits the wall boxes into walls and the floor plane into floor.
func (c *Chunk) BuildMesh(walls, floor MeshBuilder) {
	for _, w := range c.Walls {
		walls.AddBox(w, TileSize)
	}
	floor.AddPlane(c.Floor(), geom.FacePosY, TileSize)
}

// Vertices returns the number of vertices BuildMesh emits.
func (c *Chunk) Vertices() int {
	return len(c.Walls)*36 + 6
}

// Partition cuts g into chunks of size x size cells, the last row and column
// possibly smaller. Chunks are numbered row by row.
func Partition(g *maze.Grid, size int) ([]*Chunk, error) {
	if size < 1 {
		return nil, errors.New("chunk size must be positive").
			WithType(ErrTypeInvalidRegion).
			WithTag("size", size)
	}

	var chunks []*Chunk
	for y := 0; y < g.Height(); y += size {
		for x := 0; x < g.Width(); x += size {
			r := Region{
				X0: x,
				Y0: y,
				X1: min(x+size, g.Width()),
				Y1: min(y+size, g.Height()),
			}
			c, err := New(g, r, len(chunks))
			if err != nil {
				return nil, err
			}
			chunks = append(chunks, c)
		}
	}
	return chunks, nil
}
