package physics

import (
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"

	"maze3d/internal/geom"
)

type probe struct {
	box     geom.Box
	enabled bool
	hits    []Collidable
	fail    error
}

func (p *probe) Bounds() geom.Box { return p.box }
func (p *probe) IsStatic() bool   { return false }

func (p *probe) Collides(other Collidable) bool {
	return p.enabled && p.box.Intersects(other.Bounds())
}

func (p *probe) CollisionResponse(other Collidable) error {
	p.hits = append(p.hits, other)
	return p.fail
}

func area() geom.Box {
	return geom.NewBox(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{100, 4, 100})
}

func wallAt(x, z float32) *Wall {
	return NewWall(geom.NewBox(mgl32.Vec3{x, 0, z}, mgl32.Vec3{x + 4, 4, z + 4}))
}

func TestEngineAddRejectsNil(t *testing.T) {
	e := NewEngine(area())
	require.True(t, errors.IsType(e.Add(nil), ErrTypeNilCollidable))
	require.True(t, errors.IsType(e.Remove(nil), ErrTypeNilCollidable))
}

func TestEngineAddOutsideArea(t *testing.T) {
	e := NewEngine(area())
	err := e.Add(wallAt(98, 0))
	require.Error(t, err)
	require.Zero(t, e.StaticCount())
}

func TestEngineUpdate(t *testing.T) {
	e := NewEngine(area())
	near := wallAt(10, 10)
	far := wallAt(60, 60)
	require.NoError(t, e.Add(near))
	require.NoError(t, e.Add(far))

	p := &probe{box: geom.Around(mgl32.Vec3{15, 2, 12}, mgl32.Vec3{1, 0, 1}), enabled: true}
	require.NoError(t, e.Add(p))
	require.Equal(t, 2, e.StaticCount())
	require.Equal(t, 1, e.DynamicCount())

	var seen []Collidable
	e.OnCollision = func(d, s Collidable) {
		require.Same(t, p, d)
		seen = append(seen, s)
	}

	n, err := e.Update()
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, []Collidable{near}, p.hits)
	require.Equal(t, []Collidable{near}, seen)

	// narrow phase says no
	p.enabled = false
	n, err = e.Update()
	require.NoError(t, err)
	require.Zero(t, n)

	// removed walls are no longer candidates
	p.enabled = true
	require.NoError(t, e.Remove(near))
	n, err = e.Update()
	require.NoError(t, err)
	require.Zero(t, n)

	// removing twice is fine
	require.NoError(t, e.Remove(near))

	require.NoError(t, e.Remove(p))
	require.Zero(t, e.DynamicCount())
}

func TestEngineUpdateStopsOnResponseError(t *testing.T) {
	e := NewEngine(area())
	require.NoError(t, e.Add(wallAt(10, 10)))

	fail := errors.New("boom").WithType(ErrTypeUnsupportedCollision)
	p := &probe{box: geom.Around(mgl32.Vec3{12, 2, 12}, mgl32.Vec3{1, 0, 1}), enabled: true, fail: fail}
	require.NoError(t, e.Add(p))

	_, err := e.Update()
	require.True(t, errors.IsType(err, ErrTypeUnsupportedCollision))
}

func TestWallDefersToOther(t *testing.T) {
	w := wallAt(0, 0)
	p := &probe{box: geom.Around(mgl32.Vec3{2, 2, 2}, mgl32.Vec3{1, 0, 1})}
	require.False(t, w.Collides(p))
	p.enabled = true
	require.True(t, w.Collides(p))
	require.NoError(t, w.CollisionResponse(p))
	require.True(t, w.IsStatic())
}

func TestRaycast(t *testing.T) {
	e := NewEngine(area())
	first := wallAt(20, 8)
	second := wallAt(40, 8)
	require.NoError(t, e.Add(first))
	require.NoError(t, e.Add(second))

	tests := []struct {
		name      string
		start     mgl32.Vec3
		direction mgl32.Vec3
		maxDist   float32
		target    Collidable
		distance  float32
	}{
		{"nearest of two", mgl32.Vec3{10, 2, 10}, mgl32.Vec3{1, 0, 0}, 50, first, 10},
		{"out of reach", mgl32.Vec3{10, 2, 10}, mgl32.Vec3{1, 0, 0}, 5, nil, 0},
		{"looking away", mgl32.Vec3{10, 2, 10}, mgl32.Vec3{-1, 0, 0}, 50, nil, 0},
		{"unnormalized", mgl32.Vec3{30, 2, 10}, mgl32.Vec3{4, 0, 0}, 50, second, 10},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			res := e.Raycast(test.start, test.direction, MinReachDistance, test.maxDist)
			if test.target == nil {
				require.False(t, res.Hit)
				return
			}
			require.True(t, res.Hit)
			require.Same(t, test.target, res.Target)
			require.InDelta(t, test.distance, res.Distance, 1e-4)
			require.InDelta(t, test.start[0]+test.distance, res.Point[0], 1e-4)
		})
	}
}

func BenchmarkEngineUpdate(b *testing.B) {
	e := NewEngine(geom.NewBox(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{400, 4, 400}))
	for x := float32(0); x < 400; x += 8 {
		for z := float32(0); z < 400; z += 8 {
			if err := e.Add(wallAt(x, z)); err != nil {
				b.Fatal(err)
			}
		}
	}
	p := &probe{box: geom.Around(mgl32.Vec3{201, 2, 205}, mgl32.Vec3{1, 0, 1})}
	if err := e.Add(p); err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := e.Update(); err != nil {
			b.Fatal(err)
		}
	}
}
