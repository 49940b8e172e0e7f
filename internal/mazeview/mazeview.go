// Package mazeview draws a scene top-down in a terminal.
package mazeview

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"maze3d/internal/world"
)

// CellWidth is the number of terminal columns per maze cell, so cells look
// roughly square.
const CellWidth = 2

// Tints are the floor colors of the chunks, cycling by chunk id.
var Tints = []tcell.Color{
	tcell.ColorWhite,
	tcell.ColorRed,
	tcell.ColorBlue,
	tcell.ColorYellow,
	tcell.ColorOrange,
	tcell.ColorGreen,
	tcell.ColorPink,
	tcell.ColorGray,
}

var (
	wallStyle   = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray).Background(tcell.ColorBlack)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	spawnStyle  = tcell.StyleDefault.Foreground(tcell.ColorBlack).Bold(true)
)

// Tint returns the floor color of the chunk with the given id.
func Tint(id int) tcell.Color {
	n := len(Tints)
	return Tints[((id%n)+n)%n]
}

// Viewer shows one scene and regenerates it on request.
type Viewer struct {
	screen tcell.Screen
	scene  *world.Scene

	// chunk id of every cell, row by row
	chunkOf []int

	offX, offY int
}

func New(screen tcell.Screen, scene *world.Scene) *Viewer {
	v := &Viewer{screen: screen, scene: scene}
	v.indexChunks()
	return v
}

func (v *Viewer) indexChunks() {
	g := v.scene.Grid()
	v.chunkOf = make([]int, g.Width()*g.Height())
	for _, c := range v.scene.Chunks() {
		r := c.Region
		for y := r.Y0; y < r.Y1; y++ {
			for x := r.X0; x < r.X1; x++ {
				v.chunkOf[y*g.Width()+x] = c.ID
			}
		}
	}
}

// Offset returns the top-left visible cell.
func (v *Viewer) Offset() (x, y int) {
	return v.offX, v.offY
}

// Scroll moves the view by dx, dy cells and keeps it inside the maze.
func (v *Viewer) Scroll(dx, dy int) {
	g := v.scene.Grid()
	w, h := v.screen.Size()
	cols := max(w/CellWidth, 1)
	rows := max(h-1, 1)

	v.offX = min(max(v.offX+dx, 0), max(g.Width()-cols, 0))
	v.offY = min(max(v.offY+dy, 0), max(g.Height()-rows, 0))
}

// Regenerate replaces the maze with a new random one.
func (v *Viewer) Regenerate() error {
	if err := v.scene.Regenerate(0); err != nil {
		return err
	}
	v.indexChunks()
	v.Scroll(0, 0)
	return nil
}

// Draw renders the visible part of the maze and a status line.
func (v *Viewer) Draw() {
	v.screen.Clear()
	w, h := v.screen.Size()
	g := v.scene.Grid()
	sx, sy := v.scene.Spawn()

	for row := 0; row < h-1; row++ {
		y := v.offY + row
		if y >= g.Height() {
			break
		}
		for col := 0; col*CellWidth < w; col++ {
			x := v.offX + col
			if x >= g.Width() {
				break
			}

			r, style := ' ', tcell.StyleDefault.Background(Tint(v.chunkOf[y*g.Width()+x]))
			if g.IsWall(x, y) {
				r, style = '█', wallStyle
			}
			for i := 0; i < CellWidth; i++ {
				v.screen.SetContent(col*CellWidth+i, row, r, nil, style)
			}
			if x == sx && y == sy {
				v.screen.SetContent(col*CellWidth, row, '@', nil, spawnStyle.Background(Tint(v.chunkOf[y*g.Width()+x])))
			}
		}
	}

	st := v.scene.Stats()
	status := fmt.Sprintf(" seed %d | %dx%d | chunks %d | wall boxes %d | r: new maze  arrows: scroll  q: quit ",
		st.Seed, st.Width, st.Height, st.Chunks, st.WallBoxes)
	for i, r := range []rune(status) {
		if i >= w {
			break
		}
		v.screen.SetContent(i, h-1, r, nil, statusStyle)
	}
	v.screen.Show()
}

// HandleEvent applies ev and reports whether the viewer should quit.
func (v *Viewer) HandleEvent(ev tcell.Event) (quit bool, err error) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true, nil
		case tcell.KeyUp:
			v.Scroll(0, -1)
		case tcell.KeyDown:
			v.Scroll(0, 1)
		case tcell.KeyLeft:
			v.Scroll(-1, 0)
		case tcell.KeyRight:
			v.Scroll(1, 0)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return true, nil
			case 'r':
				if err := v.Regenerate(); err != nil {
					return false, err
				}
			}
		}

	case *tcell.EventResize:
		v.screen.Sync()
		v.Scroll(0, 0)
	}
	return false, nil
}

// Run draws and handles events until quit or ctx is done.
func (v *Viewer) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go v.screen.ChannelEvents(events, quit)

	v.Draw()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			done, err := v.HandleEvent(ev)
			if err != nil || done {
				return err
			}
			v.Draw()
		}
	}
}
