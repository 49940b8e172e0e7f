package maze

import (
	"math/rand/v2"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
)

// Rand is the source of randomness used to shuffle neighbours.
type Rand interface {
	// IntN returns a uniform value in [0, n).
	IntN(n int) int
}

// Generator carves mazes with the growing tree algorithm, always picking the
// most recently added cell. That makes it behave like a randomized depth first
// search and produces long winding corridors.
type Generator struct {
	rng Rand

	work  []*Cell
	neigh []*Cell
}

// NewGenerator returns a generator whose output is fully determined by seed.
func NewGenerator(seed int64) *Generator {
	return NewGeneratorWithRand(rand.New(rand.NewPCG(uint64(seed), 0)))
}

// NewRandomGenerator returns a generator seeded from the clock.
func NewRandomGenerator() *Generator {
	return NewGenerator(time.Now().UnixNano())
}

func NewGeneratorWithRand(r Rand) *Generator {
	return &Generator{rng: r}
}

// Generate classifies every cell reachable from start as Empty or Wall.
// start must belong to grid and be Undefined or Empty. Cells that cannot be
// reached are left Undefined.
func (g *Generator) Generate(grid *Grid, start *Cell) error {
	if start == nil {
		return errors.New("start cell is nil").WithType(ErrTypeInvalidStart)
	}
	if !grid.Owns(start) {
		return errors.New("start cell does not belong to grid").
			WithType(ErrTypeInvalidStart).
			WithTag("x", start.X).
			WithTag("y", start.Y)
	}
	if start.Mode != Undefined && start.Mode != Empty {
		return errors.New("start cell already classified").
			WithType(ErrTypeInvalidStart).
			WithTag("x", start.X).
			WithTag("y", start.Y).
			WithTag("mode", start.Mode.String())
	}

	g.work = append(g.work[:0], start)
	for len(g.work) > 0 {
		i := len(g.work) - 1
		c := g.work[i]
		c.Mode = Exposed

		all := grid.AppendNeighbours(g.neigh[:0], c)
		g.neigh = all[:0]
		for _, n := range all {
			if n.Mode == Undefined {
				g.neigh = append(g.neigh, n)
			}
		}

		if len(g.neigh) > 0 {
			c.Mode = Empty
			g.shuffle(g.neigh)
			for _, n := range g.neigh {
				n.Mode = Exposed
			}
			g.work = append(g.work, g.neigh...)
		} else {
			c.Mode = Wall
		}

		g.work = append(g.work[:i], g.work[i+1:]...)
	}

	clear(g.work[:cap(g.work)])
	g.work = g.work[:0]
	return nil
}

// GenerateFrom resolves the start cell at (x, y) and generates from it.
func (g *Generator) GenerateFrom(grid *Grid, x, y int) error {
	start, err := grid.At(x, y)
	if err != nil {
		return errors.New("invalid start cell").
			WithType(ErrTypeInvalidStart).
			Wrap(err)
	}
	return g.Generate(grid, start)
}

func (g *Generator) shuffle(cells []*Cell) {
	for i := len(cells) - 1; i > 0; i-- {
		j := g.rng.IntN(i + 1)
		cells[i], cells[j] = cells[j], cells[i]
	}
}
