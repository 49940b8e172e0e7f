package quadtree

import (
	"math/rand/v2"
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"

	"maze3d/internal/geom"
)

type item struct {
	id  int
	box geom.Box
}

func (i *item) Bounds() geom.Box { return i.box }

func unitBox(x, z float32) geom.Box {
	return geom.NewBox(mgl32.Vec3{x, 0, z}, mgl32.Vec3{x + 1, 0, z + 1})
}

func flatArea() geom.Box {
	return geom.NewBox(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{100, 0, 100})
}

func TestAddRejectsInvalidElements(t *testing.T) {
	tree := New[*item](flatArea())

	err := tree.Add(nil)
	require.True(t, errors.IsType(err, ErrTypeNilElement))

	err = tree.Add(&item{box: unitBox(99.5, 10)})
	require.True(t, errors.IsType(err, ErrTypeNotContained))

	err = tree.Add(&item{box: geom.NewBox(mgl32.Vec3{1, -1, 1}, mgl32.Vec3{2, 0, 2})})
	require.True(t, errors.IsType(err, ErrTypeNotContained))

	require.Zero(t, tree.Len())
}

func TestSplitAfterThreshold(t *testing.T) {
	tree := New[*item](flatArea())

	var items []*item
	for i := 0; i < SplitThreshold+1; i++ {
		it := &item{id: i, box: unitBox(float32(i%7)*5+1, float32(i/7)*5+1)}
		items = append(items, it)
		require.NoError(t, tree.Add(it))

		if i < SplitThreshold {
			require.Zero(t, tree.Stats().Branches, "split too early at %d", i)
		}
	}

	stats := tree.Stats()
	require.Equal(t, branchKind, tree.nodes[tree.root].kind)
	require.GreaterOrEqual(t, stats.Branches, 1)
	require.Equal(t, SplitThreshold+1, stats.Elements)

	quadrant := geom.NewBox(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{50, 0, 50})
	require.ElementsMatch(t, items, tree.Intersecting(quadrant))
}

func TestSpillKeepsStraddlingElementsInBranch(t *testing.T) {
	tree := New[*item](flatArea())
	for i := 0; i < SplitThreshold+1; i++ {
		require.NoError(t, tree.Add(&item{id: i, box: unitBox(float32(i), 2)}))
	}

	straddle := &item{id: -1, box: geom.NewBox(mgl32.Vec3{49, 0, 49}, mgl32.Vec3{51, 0, 51})}
	require.NoError(t, tree.Add(straddle))
	require.Equal(t, 1, tree.Stats().Spilled)

	got := tree.Intersecting(geom.NewBox(mgl32.Vec3{50.5, 0, 50.5}, mgl32.Vec3{60, 0, 60}))
	require.Equal(t, []*item{straddle}, got)

	require.True(t, tree.Remove(straddle))
	require.Zero(t, tree.Stats().Spilled)
}

func TestQueryMatchesBruteForce(t *testing.T) {
	area := geom.NewBox(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{400, 4, 400})
	tree := New[*item](area)
	rng := rand.New(rand.NewPCG(3, 0))

	randomBox := func(maxSize float32) geom.Box {
		w := rng.Float32()*maxSize + 0.1
		d := rng.Float32()*maxSize + 0.1
		x := rng.Float32() * (400 - w)
		z := rng.Float32() * (400 - d)
		return geom.NewBox(mgl32.Vec3{x, 0, z}, mgl32.Vec3{x + w, 4, z + d})
	}

	var items []*item
	for i := 0; i < 1000; i++ {
		it := &item{id: i, box: randomBox(12)}
		items = append(items, it)
		require.NoError(t, tree.Add(it))
	}
	require.Greater(t, tree.Stats().Branches, 1)

	for q := 0; q < 200; q++ {
		query := randomBox(60)
		var want []*item
		for _, it := range items {
			if it.box.Intersects(query) {
				want = append(want, it)
			}
		}
		require.ElementsMatch(t, want, tree.Intersecting(query), "query %s", query)
	}
}

func TestFrustumQueryMatchesBruteForce(t *testing.T) {
	area := geom.NewBox(mgl32.Vec3{-200, 0, -200}, mgl32.Vec3{200, 4, 200})
	tree := New[*item](area)

	var items []*item
	id := 0
	for x := float32(-200); x < 200; x += 8 {
		for z := float32(-200); z < 200; z += 8 {
			it := &item{id: id, box: geom.NewBox(mgl32.Vec3{x, 0, z}, mgl32.Vec3{x + 4, 4, z + 4})}
			id++
			items = append(items, it)
			require.NoError(t, tree.Add(it))
		}
	}

	view := mgl32.LookAtV(mgl32.Vec3{0, 2, 0}, mgl32.Vec3{1, 2, -1}, mgl32.Vec3{0, 1, 0})
	proj := mgl32.Perspective(mgl32.DegToRad(45), 1.6, 0.5, 120)
	f := geom.FrustumFromCamera(view, proj)

	var want []*item
	for _, it := range items {
		if f.IntersectsBox(it.box) {
			want = append(want, it)
		}
	}
	got := tree.IntersectingFrustum(f)
	require.NotEmpty(t, got)
	require.Less(t, len(got), len(items))
	require.ElementsMatch(t, want, got)
}

func TestRemove(t *testing.T) {
	tree := New[*item](flatArea())
	var items []*item
	for i := 0; i < 300; i++ {
		it := &item{id: i, box: unitBox(float32(i%30)*3, float32(i/30)*9)}
		items = append(items, it)
		require.NoError(t, tree.Add(it))
	}

	for i, it := range items {
		if i%2 == 0 {
			require.True(t, tree.Remove(it))
		}
	}
	require.Equal(t, 150, tree.Len())

	// Removing twice or removing unknown elements is a no-op.
	require.False(t, tree.Remove(items[0]))
	require.False(t, tree.Remove(&item{id: 1000, box: unitBox(5, 5)}))
	require.False(t, tree.Remove(&item{id: 1001, box: unitBox(500, 5)}))
	require.False(t, tree.Remove(nil))
	require.Equal(t, 150, tree.Len())

	var want []*item
	for i, it := range items {
		if i%2 == 1 {
			want = append(want, it)
		}
	}
	require.ElementsMatch(t, want, tree.Intersecting(flatArea()))
}

func TestIdenticalBoxesStopAtMaxDepth(t *testing.T) {
	tree := New[*item](flatArea())
	box := geom.NewBox(mgl32.Vec3{10, 0, 10}, mgl32.Vec3{10, 0, 10})

	for i := 0; i < 200; i++ {
		require.NoError(t, tree.Add(&item{id: i, box: box}))
	}

	stats := tree.Stats()
	require.Equal(t, MaxDepth, stats.Depth)
	require.Len(t, tree.Intersecting(box), 200)
}

func TestWalkVisitsEveryElementOnce(t *testing.T) {
	tree := New[*item](flatArea())
	for i := 0; i < 120; i++ {
		require.NoError(t, tree.Add(&item{id: i, box: unitBox(float32(i%12)*8, float32(i/12)*8)}))
	}

	seen := make(map[int]int)
	tree.Walk(func(it *item) bool {
		seen[it.id]++
		return true
	})
	require.Len(t, seen, 120)
	for id, n := range seen {
		require.Equal(t, 1, n, "element %d", id)
	}

	visited := 0
	tree.Walk(func(*item) bool {
		visited++
		return visited < 10
	})
	require.Equal(t, 10, visited)
}

func TestNodeConstructionGuards(t *testing.T) {
	tree := New[*item](flatArea())

	_, err := tree.newBranch(flatArea(), 0, []int{1, 2, 3})
	require.True(t, errors.IsType(err, ErrTypeInvalidNode))

	_, err = tree.newLeaf(flatArea(), 1, leafKind)
	require.True(t, errors.IsType(err, ErrTypeInvalidNode))

	err = tree.replaceRoot(tree.root+7, tree.root+8)
	require.True(t, errors.IsType(err, ErrTypeNodeNotFound))
}

func TestReplaceChildUnknownNode(t *testing.T) {
	tree := New[*item](flatArea())
	for i := 0; i < SplitThreshold+1; i++ {
		require.NoError(t, tree.Add(&item{id: i, box: unitBox(float32(i), float32(i))}))
	}
	require.Equal(t, branchKind, tree.nodes[tree.root].kind)

	err := tree.replaceChild(tree.root, 12345, 0)
	require.True(t, errors.IsType(err, ErrTypeNodeNotFound))
}

func TestReleasedSlotsAreReused(t *testing.T) {
	tree := New[*item](flatArea())
	for i := 0; i < SplitThreshold+1; i++ {
		require.NoError(t, tree.Add(&item{id: i, box: unitBox(float32(i%10)*9, float32(i/10)*9)}))
	}
	// the old root leaf slot is waiting for reuse
	require.Len(t, tree.free, 1)

	for i := 0; i < 4*SplitThreshold; i++ {
		require.NoError(t, tree.Add(&item{id: 100 + i, box: unitBox(float32(i%50)*2, float32(i/50)*2)}))
	}
	stats := tree.Stats()
	require.Equal(t, len(tree.nodes)-len(tree.free), stats.Leaves+stats.Branches)
}

func BenchmarkIntersecting(b *testing.B) {
	area := geom.NewBox(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{400, 4, 400})
	tree := New[*item](area)
	for x := float32(0); x < 400; x += 4 {
		for z := float32(0); z < 400; z += 8 {
			if err := tree.Add(&item{box: geom.NewBox(mgl32.Vec3{x, 0, z}, mgl32.Vec3{x + 4, 4, z + 4})}); err != nil {
				b.Fatal(err)
			}
		}
	}
	query := geom.Around(mgl32.Vec3{200, 2, 200}, mgl32.Vec3{1, 0, 1})
	var dst []*item

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		dst = tree.AppendIntersecting(dst[:0], query)
	}
}
