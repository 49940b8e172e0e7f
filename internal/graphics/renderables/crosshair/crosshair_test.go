package crosshair

import (
	"testing"

	"github.com/stretchr/testify/require"

	"maze3d/internal/physics"
)

func TestColorFollowsHit(t *testing.T) {
	require.Equal(t, IdleColor, Color(physics.RaycastResult{}))
	require.Equal(t, TargetColor, Color(physics.RaycastResult{Hit: true, Distance: 2}))
}
