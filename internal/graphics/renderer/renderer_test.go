package renderer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStepFOVApproachesTarget(t *testing.T) {
	var r Renderer

	fov := r.stepFOV(45, 65, 0.1)
	require.Equal(t, float32(55), fov)
	fov = r.stepFOV(fov, 65, 0.1)
	require.Equal(t, float32(65), fov)
	// never overshoots
	fov = r.stepFOV(fov, 65, 1)
	require.Equal(t, float32(65), fov)

	fov = r.stepFOV(fov, 60, 1)
	require.Equal(t, float32(60), fov)
}
