package hud

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"maze3d/internal/player"
)

func TestLines(t *testing.T) {
	id := uuid.MustParse("2f1c9a8e-6b5d-4f0a-9a33-0f4a1c2b3d4e")
	lines := Lines(Info{
		FPS:           59.6,
		Position:      mgl32.Vec3{1, 2, 3.5},
		Mode:          player.Plane,
		VisibleChunks: 3,
		TotalChunks:   16,
		Vertices:      1234,
		Seed:          42,
		MazeID:        id,
		Bumps:         2,
		Frame:         1500 * time.Microsecond,
	})

	require.Equal(t, "FPS: 60", lines[0])
	require.Equal(t, "Pos: 1.00, 2.00, 3.50 | Yaw: 0 Pitch: 0", lines[1])
	require.Equal(t, "Camera: "+player.Plane.String()+" | Bumps: 2", lines[2])
	require.Equal(t, "Chunks: 3/16 | Vertices: 1234", lines[3])
	require.Equal(t, "Seed: 42 | Maze: "+id.String(), lines[4])
	require.Equal(t, "Frame(render): 1.50ms (0.00ms avg, 0.00ms max)", lines[5])
	require.Len(t, lines, 6)

	lines = Lines(Info{Mode: player.Person, Top: "a=1.0ms"})
	require.Equal(t, "Top: a=1.0ms", lines[len(lines)-1])
}

func TestFrameTimes(t *testing.T) {
	var f FrameTimes
	avg, lo, hi := f.Stats()
	require.Zero(t, avg)
	require.Zero(t, lo)
	require.Zero(t, hi)
	require.Zero(t, f.Last())

	f.Add(2 * time.Millisecond)
	f.Add(4 * time.Millisecond)
	avg, lo, hi = f.Stats()
	require.Equal(t, 3*time.Millisecond, avg)
	require.Equal(t, 2*time.Millisecond, lo)
	require.Equal(t, 4*time.Millisecond, hi)
	require.Equal(t, 4*time.Millisecond, f.Last())

	// old samples fall out of the window
	for i := 0; i < frameHistory; i++ {
		f.Add(time.Millisecond)
	}
	avg, lo, hi = f.Stats()
	require.Equal(t, time.Millisecond, avg)
	require.Equal(t, time.Millisecond, lo)
	require.Equal(t, time.Millisecond, hi)
}
