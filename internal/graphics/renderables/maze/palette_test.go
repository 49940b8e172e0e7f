package maze

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFloorColorCycles(t *testing.T) {
	require.Len(t, FloorPalette, 8)
	for i := range FloorPalette {
		require.Equal(t, FloorPalette[i], FloorColor(i))
		require.Equal(t, FloorPalette[i], FloorColor(i+len(FloorPalette)))
	}
	require.Equal(t, FloorPalette[7], FloorColor(-1))
}

func TestNeighbouringChunksDiffer(t *testing.T) {
	for id := 0; id < 32; id++ {
		require.NotEqual(t, FloorColor(id), FloorColor(id+1))
	}
}
