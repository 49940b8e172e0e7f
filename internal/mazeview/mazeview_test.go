package mazeview

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"

	"maze3d/internal/maze"
	"maze3d/internal/world"
)

func newViewer(t *testing.T, w, h int) (*Viewer, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)

	g, err := maze.ParseGrid(
		"######",
		"#....#",
		"#.##.#",
		"######",
	)
	require.NoError(t, err)
	scene, err := world.NewFromGrid(g, world.Options{ChunkSize: 3})
	require.NoError(t, err)
	return New(screen, scene), screen
}

func TestDraw(t *testing.T) {
	v, screen := newViewer(t, 40, 10)
	v.Draw()

	cells, w, _ := screen.GetContents()

	// top-left cell is a wall, two columns wide
	require.Equal(t, []rune{'█'}, cells[0].Runes)
	require.Equal(t, []rune{'█'}, cells[1].Runes)

	// the spawn cell (1,1) is marked
	require.Equal(t, []rune{'@'}, cells[1*w+1*CellWidth].Runes)

	// open cells are tinted with their chunk color: (4,1) is in chunk 1
	_, bg, _ := cells[1*w+4*CellWidth].Style.Decompose()
	require.Equal(t, Tint(1), bg)

	// status line
	status := ""
	for i := 0; i < w; i++ {
		if r := cells[9*w+i].Runes; len(r) > 0 {
			status += string(r)
		}
	}
	require.Contains(t, status, "6x4")
	require.Contains(t, status, "chunks 4")
}

func TestScrollStaysInside(t *testing.T) {
	v, _ := newViewer(t, 4, 3)

	// 2 cells by 2 rows visible of a 6x4 maze
	v.Scroll(10, 10)
	x, y := v.Offset()
	require.Equal(t, 4, x)
	require.Equal(t, 2, y)

	v.Scroll(-20, -1)
	x, y = v.Offset()
	require.Equal(t, 0, x)
	require.Equal(t, 1, y)
}

func TestHandleEvent(t *testing.T) {
	v, _ := newViewer(t, 4, 3)

	quit, err := v.HandleEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	require.NoError(t, err)
	require.False(t, quit)
	x, _ := v.Offset()
	require.Equal(t, 1, x)

	first := v.scene.ID()
	quit, err = v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone))
	require.NoError(t, err)
	require.False(t, quit)
	require.NotEqual(t, first, v.scene.ID())

	quit, err = v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone))
	require.NoError(t, err)
	require.True(t, quit)

	quit, err = v.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	require.NoError(t, err)
	require.True(t, quit)
}

func TestTintCycles(t *testing.T) {
	require.Equal(t, Tints[0], Tint(8))
	require.Equal(t, Tints[7], Tint(-1))
}
