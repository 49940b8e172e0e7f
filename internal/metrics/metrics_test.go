package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"maze3d/internal/world"
)

func TestObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg, "test")

	m.ObserveScene(world.Stats{WallBoxes: 12, WallCells: 40})
	m.ObserveScene(world.Stats{WallBoxes: 10, WallCells: 33})
	require.Equal(t, float64(2), testutil.ToFloat64(m.MazesGenerated))
	require.Equal(t, float64(10), testutil.ToFloat64(m.WallBoxes))
	require.Equal(t, float64(33), testutil.ToFloat64(m.WallCells))

	m.ObserveFrame(5*time.Millisecond, 3, 1200, 2, 59.5)
	m.ObserveFrame(6*time.Millisecond, 4, 1500, 1, 60)
	require.Equal(t, float64(4), testutil.ToFloat64(m.VisibleChunks))
	require.Equal(t, float64(1500), testutil.ToFloat64(m.RenderedVertices))
	require.Equal(t, float64(3), testutil.ToFloat64(m.Collisions))
	require.Equal(t, float64(60), testutil.ToFloat64(m.FPS))

	count, err := testutil.GatherAndCount(reg, "maze3d_frame_seconds", "maze3d_info")
	require.NoError(t, err)
	require.Equal(t, 2, count)
}
