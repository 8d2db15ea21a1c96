// Package term is a terminal front-end drawn with tcell. The table is
// scaled to whatever cell grid the terminal offers.
package term

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/pong/internal/pong"
)

// hudRows are reserved under the table.
const hudRows = 3

var (
	styleNet     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	stylePaddle  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleBall    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	stylePowerUp = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleScore   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleHUD     = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleRunning = tcell.StyleDefault.Foreground(tcell.ColorGreen)
)

// Renderer implements pong.Renderer on a tcell screen. Render is called from
// the loop goroutine; Last may be read from any goroutine.
type Renderer struct {
	screen tcell.Screen

	mu   sync.Mutex
	last pong.Frame
}

func NewRenderer(s tcell.Screen) *Renderer {
	return &Renderer{screen: s}
}

// Last returns the most recently rendered frame.
func (r *Renderer) Last() pong.Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// grid maps table coordinates to cells.
type grid struct {
	cols, rows int
	w, h       float64
}

func (g grid) col(x float64) int { return clamp(int(x*float64(g.cols)/g.w), 0, g.cols-1) }
func (g grid) row(y float64) int { return clamp(int(y*float64(g.rows)/g.h), 0, g.rows-1) }

// tableY is the inverse of row, returning the centre of the cell.
func (g grid) tableY(row int) float64 {
	return (float64(row) + 0.5) * g.h / float64(g.rows)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (r *Renderer) grid(f pong.Frame) (grid, bool) {
	cols, rows := r.screen.Size()
	rows -= hudRows
	if cols < 3 || rows < 1 || f.Width <= 0 || f.Height <= 0 {
		return grid{}, false
	}
	return grid{cols: cols, rows: rows, w: f.Width, h: f.Height}, true
}

func (r *Renderer) Render(f pong.Frame) {
	r.mu.Lock()
	r.last = f
	r.mu.Unlock()

	r.screen.Clear()
	g, ok := r.grid(f)
	if !ok {
		r.screen.Show()
		return
	}

	for y := 0; y < g.rows; y += 2 {
		r.screen.SetContent(g.cols/2, y, '│', nil, styleNet)
	}
	r.text(g.cols/4, 0, fmt.Sprint(f.Player.Score), styleScore)
	r.text(3*g.cols/4, 0, fmt.Sprint(f.Opponent.Score), styleScore)

	for _, p := range []pong.Paddle{f.Player, f.Opponent} {
		x := g.col(p.X + p.Width/2)
		// Paddles may sit partly off the table.
		if p.Y+p.Height <= 0 || p.Y >= f.Height {
			continue
		}
		for y := g.row(p.Y); y <= g.row(p.Y+p.Height-1e-9); y++ {
			r.screen.SetContent(x, y, '█', nil, stylePaddle)
		}
	}
	for _, pu := range f.PowerUps {
		r.screen.SetContent(g.col(pu.X), g.row(pu.Y), '◆', nil, stylePowerUp)
	}
	r.screen.SetContent(g.col(f.Ball.X), g.row(f.Ball.Y), '●', nil, styleBall)

	r.drawHUD(g.rows, f)
	r.screen.Show()
}

func (r *Renderer) drawHUD(y int, f pong.Frame) {
	state, style := "STOPPED  enter=start", styleHUD
	if f.Running {
		state, style = "RUNNING  p=stop", styleRunning
	}
	x := r.text(0, y, state, style) + 2
	for _, l := range f.Settings.Labels() {
		x = r.text(x, y, l, styleHUD) + 2
	}
	r.text(0, y+1, f.Scoreboard(), styleHUD)
	r.text(0, y+2, "m=multiplayer u=power-ups 1/2/3=difficulty w/s=paddle c=copy q=quit", styleHUD)
}

// text writes s from (x, y) and returns the column after it.
func (r *Renderer) text(x, y int, s string, style tcell.Style) int {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}

var _ pong.Renderer = (*Renderer)(nil)
