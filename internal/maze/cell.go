package maze

import (
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/go-gl/mathgl/mgl32"

	"maze3d/internal/geom"
)

const (
	// CellSize is the edge length of a cell in world units.
	CellSize float32 = 4
	// WallHeight is the height of every cell box.
	WallHeight float32 = 4
)

const (
	ErrTypeOutOfBounds  = "maze_out_of_bounds"
	ErrTypeInvalidStart = "maze_invalid_start"
	ErrTypeInvalidSize  = "maze_invalid_size"
)

// CellMode is the classification of a cell during and after generation.
type CellMode uint8

const (
	Undefined CellMode = iota
	Empty
	Wall
	Exposed
)

func (m CellMode) String() string {
	switch m {
	case Undefined:
		return "undefined"
	case Empty:
		return "empty"
	case Wall:
		return "wall"
	case Exposed:
		return "exposed"
	default:
		return "unknown"
	}
}

// Cell is one grid square of the maze.
type Cell struct {
	X, Y int
	Mode CellMode
}

// Box returns the world space box occupied by the cell.
func (c *Cell) Box() geom.Box {
	return CellBox(c.X, c.Y)
}

// CellBox returns the world space box of the cell at (x, y).
func CellBox(x, y int) geom.Box {
	return geom.Box{
		Min: mgl32.Vec3{float32(x) * CellSize, 0, float32(y) * CellSize},
		Max: mgl32.Vec3{float32(x+1) * CellSize, WallHeight, float32(y+1) * CellSize},
	}
}

// CellCenter returns the centre of the floor of cell (x, y) lifted to height h.
func CellCenter(x, y int, h float32) mgl32.Vec3 {
	return mgl32.Vec3{(float32(x) + 0.5) * CellSize, h, (float32(y) + 0.5) * CellSize}
}

// Grid is a fixed size rectangle of cells stored row by row.
type Grid struct {
	width  int
	height int
	cells  []Cell
}

// NewGrid creates a grid of width*height Undefined cells.
func NewGrid(width, height int) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, errors.New("grid size must be positive").
			WithType(ErrTypeInvalidSize).
			WithTag("width", width).
			WithTag("height", height)
	}

	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.cells[y*width+x] = Cell{X: x, Y: y}
		}
	}
	return g, nil
}

// ParseGrid builds a grid from rows of '#' (wall) and '.' (empty).
// Any other rune yields an Undefined cell.
func ParseGrid(rows ...string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, errors.New("no rows").WithType(ErrTypeInvalidSize)
	}
	g, err := NewGrid(len(rows[0]), len(rows))
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		if len(row) != g.width {
			return nil, errors.New("ragged rows").
				WithType(ErrTypeInvalidSize).
				WithTag("row", y)
		}
		for x, r := range row {
			c := g.cell(x, y)
			switch r {
			case '#':
				c.Mode = Wall
			case '.':
				c.Mode = Empty
			}
		}
	}
	return g, nil
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (x, y) addresses a cell of the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// At returns the cell at (x, y).
func (g *Grid) At(x, y int) (*Cell, error) {
	if !g.InBounds(x, y) {
		return nil, errors.New("cell out of bounds").
			WithType(ErrTypeOutOfBounds).
			WithTag("x", x).
			WithTag("y", y)
	}
	return g.cell(x, y), nil
}

func (g *Grid) cell(x, y int) *Cell {
	return &g.cells[y*g.width+x]
}

// Mode returns the mode of (x, y), or Undefined when out of bounds.
func (g *Grid) Mode(x, y int) CellMode {
	if !g.InBounds(x, y) {
		return Undefined
	}
	return g.cells[y*g.width+x].Mode
}

// IsWall reports whether (x, y) is an in-bounds wall cell.
func (g *Grid) IsWall(x, y int) bool {
	return g.Mode(x, y) == Wall
}

// Owns reports whether c is a cell of this grid.
func (g *Grid) Owns(c *Cell) bool {
	return c != nil && g.InBounds(c.X, c.Y) && g.cell(c.X, c.Y) == c
}

// AppendNeighbours appends the in-bounds neighbours of c to dst in the
// order left, up, right, down.
func (g *Grid) AppendNeighbours(dst []*Cell, c *Cell) []*Cell {
	if c.X > 0 {
		dst = append(dst, g.cell(c.X-1, c.Y))
	}
	if c.Y > 0 {
		dst = append(dst, g.cell(c.X, c.Y-1))
	}
	if c.X < g.width-1 {
		dst = append(dst, g.cell(c.X+1, c.Y))
	}
	if c.Y < g.height-1 {
		dst = append(dst, g.cell(c.X, c.Y+1))
	}
	return dst
}

// Bounds returns the union of every cell box.
func (g *Grid) Bounds() geom.Box {
	return CellBox(0, 0).Union(CellBox(g.width-1, g.height-1))
}

// Reset marks every cell Undefined.
func (g *Grid) Reset() {
	for i := range g.cells {
		g.cells[i].Mode = Undefined
	}
}

// Counts returns the number of cells in each mode, indexed by CellMode.
func (g *Grid) Counts() [4]int {
	var n [4]int
	for i := range g.cells {
		n[g.cells[i].Mode]++
	}
	return n
}

// String renders walls as '#', empty cells as '.', anything else as '?'.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.width + 1) * g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			switch g.cell(x, y).Mode {
			case Wall:
				sb.WriteByte('#')
			case Empty:
				sb.WriteByte('.')
			default:
				sb.WriteByte('?')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
