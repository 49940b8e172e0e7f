// Package hud draws the text overlay: frame rate, camera state and what the
// renderer drew.
package hud

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"maze3d/internal/graphics"
	renderer "maze3d/internal/graphics/renderer"
)

const (
	fontSize   = 16
	atlasWidth = 512
	margin     = 10
)

// Info is everything the overlay displays.
type Info struct {
	FPS           float64
	Position      mgl32.Vec3
	Yaw           float32
	Pitch         float32
	Mode          fmt.Stringer
	VisibleChunks int
	TotalChunks   int
	Vertices      int
	Seed          int64
	MazeID        uuid.UUID
	Bumps         int
	Frame         time.Duration
	FrameAvg      time.Duration
	FrameMax      time.Duration
	Top           string
}

// Lines formats info as the overlay text, one entry per line.
func Lines(info Info) []string {
	lines := []string{
		fmt.Sprintf("FPS: %.0f", info.FPS),
		fmt.Sprintf("Pos: %.2f, %.2f, %.2f | Yaw: %.0f Pitch: %.0f", info.Position[0], info.Position[1], info.Position[2], info.Yaw, info.Pitch),
		fmt.Sprintf("Camera: %s | Bumps: %d", info.Mode, info.Bumps),
		fmt.Sprintf("Chunks: %d/%d | Vertices: %d", info.VisibleChunks, info.TotalChunks, info.Vertices),
		fmt.Sprintf("Seed: %d | Maze: %s", info.Seed, info.MazeID),
		fmt.Sprintf("Frame(render): %.2fms (%.2fms avg, %.2fms max)", ms(info.Frame), ms(info.FrameAvg), ms(info.FrameMax)),
	}
	if info.Top != "" {
		lines = append(lines, "Top: "+info.Top)
	}
	return lines
}

func ms(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}

// HUD implements the text overlay.
type HUD struct {
	fontPath     string
	fontRenderer *graphics.FontRenderer
	lineStep     float32

	frames FrameTimes
}

// NewHUD creates the overlay. An empty fontPath uses the built-in face.
func NewHUD(fontPath string) *HUD {
	return &HUD{fontPath: fontPath}
}

// Init builds the font atlas and uploads it.
func (h *HUD) Init() error {
	face, err := graphics.LoadFace(h.fontPath, fontSize)
	if err != nil {
		return err
	}
	atlas, err := graphics.BakeFontAtlas(face, atlasWidth)
	if err != nil {
		return err
	}
	fr, err := graphics.NewFontRenderer(atlas, 1, 1)
	if err != nil {
		return err
	}
	h.fontRenderer = fr
	h.lineStep = float32(atlas.LineHeight) + 2
	return nil
}

// RecordFrame feeds the duration of the last render call.
func (h *HUD) RecordFrame(d time.Duration) {
	h.frames.Add(d)
}

// Render draws the overlay when it is enabled.
func (h *HUD) Render(ctx renderer.RenderContext) {
	if !ctx.Settings.HUD() || h.fontRenderer == nil {
		return
	}
	defer ctx.Profiler.Track("renderer.hud")()

	avg, _, hi := h.frames.Stats()
	cam := ctx.Player.Camera
	lines := Lines(Info{
		FPS:           ctx.Stats.FPS,
		Position:      cam.Position,
		Yaw:           cam.Yaw,
		Pitch:         cam.Pitch,
		Mode:          cam.Mode,
		VisibleChunks: ctx.Stats.VisibleChunks,
		TotalChunks:   len(ctx.Scene.Chunks()),
		Vertices:      ctx.Stats.Vertices,
		Seed:          ctx.Scene.Seed(),
		MazeID:        ctx.Scene.ID(),
		Bumps:         ctx.Player.Bumps(),
		Frame:         h.frames.Last(),
		FrameAvg:      avg,
		FrameMax:      hi,
		Top:           ctx.Profiler.TopN(3),
	})
	h.fontRenderer.RenderLines(lines, margin, margin+h.lineStep, h.lineStep, 1, mgl32.Vec3{1, 1, 1})
}

func (h *HUD) Dispose() {
	if h.fontRenderer != nil {
		h.fontRenderer.Dispose()
	}
}

func (h *HUD) SetViewport(width, height int) {
	if h.fontRenderer != nil {
		h.fontRenderer.SetViewport(width, height)
	}
}
