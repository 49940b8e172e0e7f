package maze

import "github.com/go-gl/mathgl/mgl32"

// WallColor is the base color of every wall.
var WallColor = mgl32.Vec3{0.62, 0.6, 0.56}

// FloorPalette colors chunk floors so chunk edges stay visible.
var FloorPalette = []mgl32.Vec3{
	{1, 1, 1},         // white
	{0.85, 0.2, 0.2},  // red
	{0.2, 0.35, 0.85}, // blue
	{0.95, 0.85, 0.2}, // yellow
	{0.95, 0.55, 0.1}, // orange
	{0.2, 0.7, 0.3},   // green
	{0.95, 0.5, 0.7},  // pink
	{0.5, 0.5, 0.5},   // gray
}

// FloorColor returns the floor color of the chunk with the given id.
func FloorColor(id int) mgl32.Vec3 {
	n := len(FloorPalette)
	return FloorPalette[((id%n)+n)%n]
}
