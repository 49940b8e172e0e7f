// Package world owns a generated maze and everything derived from it: the
// chunks used for drawing, the walls used for collision and the player.
package world

import (
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"maze3d/internal/chunk"
	"maze3d/internal/geom"
	"maze3d/internal/maze"
	"maze3d/internal/physics"
	"maze3d/internal/player"
	"maze3d/internal/quadtree"
)

const (
	// MaxStep caps the simulated time of one update so a stalled frame
	// cannot carry the player through a wall.
	MaxStep = 0.1

	ErrTypeInvalidOptions = "world_invalid_options"
	ErrTypeNoSpawn        = "world_no_spawn"
)

// Options configures a scene.
type Options struct {
	Width       int
	Height      int
	Seed        int64 // 0 picks a seed from the clock
	ChunkSize   int
	AspectRatio float32
}

func (o *Options) normalize() error {
	if o.Width < 1 || o.Height < 1 {
		return errors.New("maze size must be positive").
			WithType(ErrTypeInvalidOptions).
			WithTag("width", o.Width).
			WithTag("height", o.Height)
	}
	if o.ChunkSize == 0 {
		o.ChunkSize = chunk.DefaultSize
	}
	if o.ChunkSize < 1 {
		return errors.New("chunk size must be positive").
			WithType(ErrTypeInvalidOptions).
			WithTag("chunk_size", o.ChunkSize)
	}
	if o.AspectRatio <= 0 {
		o.AspectRatio = 1
	}
	return nil
}

// Scene is one playable maze.
type Scene struct {
	opts Options

	id     uuid.UUID
	seed   int64
	grid   *maze.Grid
	spawn  [2]int
	chunks []*chunk.Chunk

	chunkTree  *quadtree.Tree[*chunk.Chunk]
	collisions *physics.Engine
	player     *player.Player

	wallBoxes int
	visible   []*chunk.Chunk

	// OnCollision is forwarded to the collision engine.
	OnCollision func(dynamic, static physics.Collidable)
}

// New generates a maze and builds a scene around it.
func New(opts Options) (*Scene, error) {
	if err := opts.normalize(); err != nil {
		return nil, err
	}
	s := &Scene{opts: opts}
	if err := s.Regenerate(opts.Seed); err != nil {
		return nil, err
	}
	return s, nil
}

// NewFromGrid builds a scene around an already classified grid. The player
// spawns in the first empty cell.
func NewFromGrid(g *maze.Grid, opts Options) (*Scene, error) {
	opts.Width = g.Width()
	opts.Height = g.Height()
	if err := opts.normalize(); err != nil {
		return nil, err
	}

	spawn, ok := firstEmpty(g)
	if !ok {
		return nil, errors.New("grid has no empty cell").WithType(ErrTypeNoSpawn)
	}
	s := &Scene{opts: opts}
	if err := s.build(g, opts.Seed, spawn, time.Now()); err != nil {
		return nil, err
	}
	return s, nil
}

func firstEmpty(g *maze.Grid) ([2]int, bool) {
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if g.Mode(x, y) == maze.Empty {
				return [2]int{x, y}, true
			}
		}
	}
	return [2]int{}, false
}

// Regenerate replaces the maze with a new one. A zero seed picks one from
// the clock. On error the scene keeps its current maze.
func (s *Scene) Regenerate(seed int64) error {
	started := time.Now()
	if seed == 0 {
		seed = started.UnixNano()
	}

	g, err := maze.NewGrid(s.opts.Width, s.opts.Height)
	if err != nil {
		return err
	}
	sx, sy := g.Width()/2, g.Height()/2
	if err := maze.NewGenerator(seed).GenerateFrom(g, sx, sy); err != nil {
		return errors.New("generating maze failed").
			WithTag("seed", seed).
			Wrap(err)
	}
	if g.Mode(sx, sy) != maze.Empty {
		return errors.New("start cell is not open").
			WithType(ErrTypeNoSpawn).
			WithTag("width", g.Width()).
			WithTag("height", g.Height())
	}

	return s.build(g, seed, [2]int{sx, sy}, started)
}

// build derives chunks, collision walls and the player position from g. The
// scene is only modified once every step succeeded.
func (s *Scene) build(g *maze.Grid, seed int64, spawnCell [2]int, started time.Time) error {
	chunks, err := chunk.Partition(g, s.opts.ChunkSize)
	if err != nil {
		return errors.New("partitioning maze failed").Wrap(err)
	}

	bounds := g.Bounds()
	chunkTree := quadtree.New[*chunk.Chunk](bounds)
	collisions := physics.NewEngine(bounds)
	collisions.OnCollision = s.forwardCollision

	wallBoxes := 0
	for _, c := range chunks {
		if err := chunkTree.Add(c); err != nil {
			return errors.New("indexing chunk failed").
				WithTag("chunk", c.ID).
				Wrap(err)
		}
		for _, w := range c.Walls {
			if err := collisions.Add(physics.NewWall(w)); err != nil {
				return errors.New("indexing wall failed").
					WithTag("chunk", c.ID).
					Wrap(err)
			}
			wallBoxes++
		}
	}

	spawn := maze.CellCenter(spawnCell[0], spawnCell[1], player.EyeHeight)
	p := s.player
	if p == nil {
		p = player.New(spawn, s.opts.AspectRatio)
	}
	prev, mode := p.Position(), p.Camera.Mode
	p.Camera.Mode = player.Person
	p.Teleport(spawn)
	if err := collisions.Add(p); err != nil {
		p.Camera.Mode = mode
		p.Teleport(prev)
		return errors.New("indexing player failed").Wrap(err)
	}

	s.id = uuid.New()
	s.seed = seed
	s.grid = g
	s.spawn = spawnCell
	s.player = p
	s.chunks = chunks
	s.chunkTree = chunkTree
	s.collisions = collisions
	s.wallBoxes = wallBoxes
	s.visible = s.visible[:0]

	counts := s.grid.Counts()
	logs.WithTag("maze_id", s.id).
		WithTag("width", s.grid.Width()).
		WithTag("height", s.grid.Height()).
		WithTag("seed", s.seed).
		WithTag("walls", counts[maze.Wall]).
		WithTag("wall_boxes", wallBoxes).
		WithTag("chunks", len(chunks)).
		WithTag("duration", time.Since(started)).
		Info("maze generated")
	return nil
}

func (s *Scene) forwardCollision(d, st physics.Collidable) {
	if s.OnCollision != nil {
		s.OnCollision(d, st)
	}
}

// Update advances the scene by dt seconds. It returns the number of
// collision responses.
func (s *Scene) Update(dt float64, m player.Movement) (int, error) {
	dt = min(max(dt, 0), MaxStep)

	s.player.BeginTick()
	s.player.Apply(m, dt)

	n, err := s.collisions.Update()
	if err != nil {
		return n, errors.New("collision update failed").
			WithTag("maze_id", s.id).
			Wrap(err)
	}
	return n, nil
}

// VisibleChunks returns the chunks inside the view volume of view and proj.
// The slice is reused by the next call.
func (s *Scene) VisibleChunks(view, proj mgl32.Mat4) []*chunk.Chunk {
	return s.VisibleChunksIn(geom.FrustumFromCamera(view, proj))
}

// VisibleChunksIn returns the chunks at least partially inside f. The slice is
// reused by the next call.
func (s *Scene) VisibleChunksIn(f geom.Frustum) []*chunk.Chunk {
	s.visible = s.chunkTree.AppendIntersectingFrustum(s.visible[:0], f)
	return s.visible
}

// LookAt returns the wall the player is looking at within maxDist.
func (s *Scene) LookAt(maxDist float32) physics.RaycastResult {
	c := &s.player.Camera
	return s.collisions.Raycast(c.Position, c.Front(), physics.MinReachDistance, maxDist)
}

// SetAspectRatio updates the player camera after a resize.
func (s *Scene) SetAspectRatio(aspect float32) {
	if aspect > 0 {
		s.opts.AspectRatio = aspect
		s.player.Camera.AspectRatio = aspect
	}
}

func (s *Scene) ID() uuid.UUID               { return s.id }
func (s *Scene) Seed() int64                 { return s.seed }
func (s *Scene) Grid() *maze.Grid            { return s.grid }
func (s *Scene) Chunks() []*chunk.Chunk      { return s.chunks }
func (s *Scene) Player() *player.Player      { return s.player }
func (s *Scene) Collisions() *physics.Engine { return s.collisions }

// Spawn returns the cell the player starts in.
func (s *Scene) Spawn() (x, y int) {
	return s.spawn[0], s.spawn[1]
}

// Stats summarizes the scene.
type Stats struct {
	ID        uuid.UUID
	Seed      int64
	Width     int
	Height    int
	Chunks    int
	WallCells int
	WallBoxes int
	Vertices  int
	Index     quadtree.Stats
}

func (s *Scene) Stats() Stats {
	st := Stats{
		ID:        s.id,
		Seed:      s.seed,
		Width:     s.grid.Width(),
		Height:    s.grid.Height(),
		Chunks:    len(s.chunks),
		WallCells: s.grid.Counts()[maze.Wall],
		WallBoxes: s.wallBoxes,
		Index:     s.collisions.Stats(),
	}
	for _, c := range s.chunks {
		st.Vertices += c.Vertices()
	}
	return st
}
