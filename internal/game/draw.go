package game

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/pong/internal/pong"
)

var (
	colBackground = color.RGBA{R: 8, G: 8, B: 10, A: 255}
	colTable      = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	colBorder     = color.RGBA{R: 60, G: 60, B: 70, A: 255}
	colNet        = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	colPaddle     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colBall       = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colPowerUp    = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	colText       = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	colDim        = color.RGBA{R: 140, G: 140, B: 150, A: 255}
	colOn         = color.RGBA{R: 90, G: 210, B: 120, A: 255}
)

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colBackground)
	f := g.currentFrame()

	g.drawTable(screen, f)
	g.drawHUD(screen, f)
	g.eventLog.Draw(screen, g.width-logPanelWidth, g.height)
}

func (g *Game) drawTable(screen *ebiten.Image, f pong.Frame) {
	ox, oy := float32(g.offX), float32(g.offY)
	w, h := float32(f.Width), float32(f.Height)

	vector.FillRect(screen, ox, oy, w, h, colTable, false)
	vector.StrokeRect(screen, ox-1, oy-1, w+2, h+2, 1, colBorder, false)

	// Dashed net.
	for y := float32(0); y < h; y += 15 {
		vector.FillRect(screen, ox+w/2-1, oy+y, 2, 10, colNet, false)
	}

	g.drawScore(screen, f.Player.Score, g.offX+int(w)/4, g.offY+56)
	g.drawScore(screen, f.Opponent.Score, g.offX+3*int(w)/4, g.offY+56)

	for _, p := range []pong.Paddle{f.Player, f.Opponent} {
		vector.FillRect(screen, ox+float32(p.X), oy+float32(p.Y), float32(p.Width), float32(p.Height), colPaddle, false)
	}
	for _, pu := range f.PowerUps {
		vector.FillCircle(screen, ox+float32(pu.X), oy+float32(pu.Y), float32(pu.Radius), colPowerUp, true)
	}
	vector.FillCircle(screen, ox+float32(f.Ball.X), oy+float32(f.Ball.Y), float32(f.Ball.Radius), colBall, true)
}

// drawScore renders a score at scoreScale, centred on x with its baseline
// at y. The digits go through a small buffer so the 7x13 face scales up.
func (g *Game) drawScore(screen *ebiten.Image, score uint, x, y int) {
	const scoreScale = 4
	if g.scoreBuf == nil {
		g.scoreBuf = ebiten.NewImage(7*8, 16)
	}
	s := strconv.FormatUint(uint64(score), 10)
	g.scoreBuf.Clear()
	text.Draw(g.scoreBuf, s, basicfont.Face7x13, 0, 12, colText)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scoreScale, scoreScale)
	op.GeoM.Translate(float64(x-len(s)*7*scoreScale/2), float64(y-12*scoreScale))
	screen.DrawImage(g.scoreBuf, op)
}

func (g *Game) drawHUD(screen *ebiten.Image, f pong.Frame) {
	x := g.offX
	y := g.offY + g.tableH + 20

	state := "STOPPED  Enter=start"
	stateCol := colDim
	if f.Running {
		state = "RUNNING  P=stop"
		stateCol = colOn
	}
	text.Draw(screen, state, basicfont.Face7x13, x, y, stateCol)

	lx := x + 180
	for _, l := range f.Settings.Labels() {
		text.Draw(screen, l, basicfont.Face7x13, lx, y, colText)
		lx += 7*len(l) + 24
	}

	y += 20
	text.Draw(screen, f.Scoreboard(), basicfont.Face7x13, x, y, colText)
	text.Draw(screen, "M=multiplayer U=power-ups 1/2/3=difficulty C=copy", basicfont.Face7x13, x+340, y, colDim)

	if g.statusTicks > 0 {
		y += 20
		text.Draw(screen, g.status, basicfont.Face7x13, x, y, colPowerUp)
	} else if f.Settings.Multiplayer {
		y += 20
		text.Draw(screen, fmt.Sprintf("mouse=%s  up/down=%s", pong.SidePlayer, pong.SideOpponent), basicfont.Face7x13, x, y, colDim)
	}
}
