// Package game is the desktop front-end: it hosts a pong.Loop inside
// ebiten's fixed-rate Update and draws the frames it renders.
package game

import (
	"context"
	"log"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/pong/internal/highscore"
	"github.com/Garsondee/pong/internal/pong"
)

// borderWidth is the pixel gap between the window edge and the table.
const borderWidth = 24

// hudHeight is the strip under the table holding scores and captions.
const hudHeight = 72

// statusTicks is how long a status message stays on screen.
const statusTicks = 120

// saveTimeout bounds a high score write on stop or exit.
const saveTimeout = 2 * time.Second

// Config wires a Game to its collaborators. Store and Audio may be nil.
type Config struct {
	Params     pong.Params
	Settings   pong.Settings
	HighScores pong.HighScores
	Store      highscore.Store
	Audio      pong.Audio
	Seed       int64
	KeyStep    float64 // opponent paddle movement per tick in multiplayer
}

type Game struct {
	width      int
	height     int
	tableW     int
	tableH     int
	offX       int
	offY       int
	core       *pong.Game
	loop       *pong.Loop
	store      highscore.Store
	eventLog   *EventLog
	keyStep    float64
	prevKeys   map[ebiten.Key]bool
	prevCursor int

	// frame is the last snapshot the loop rendered. Until the first tick it
	// is taken directly from the game.
	frame    pong.Frame
	rendered bool

	status      string
	statusTicks int

	// scoreBuf holds score digits at 1x before they are scaled up.
	scoreBuf *ebiten.Image

	// copyText is replaced in tests.
	copyText func(string) error
}

// New builds the game and its loop. The loop starts stopped; Enter starts it.
func New(cfg Config) *Game {
	store := cfg.Store
	if store == nil {
		store = highscore.NopStore{}
	}
	opts := []pong.Option{
		pong.WithSeed(cfg.Seed),
		pong.WithSettings(cfg.Settings),
		pong.WithHighScores(cfg.HighScores),
		pong.WithSimLog(pong.NewSimLog(false)),
	}
	if cfg.Audio != nil {
		opts = append(opts, pong.WithAudio(cfg.Audio))
	}
	if cfg.KeyStep <= 0 {
		cfg.KeyStep = 8
	}

	tableW := int(cfg.Params.Width)
	tableH := int(cfg.Params.Height)
	g := &Game{
		width:      borderWidth + tableW + borderWidth + logPanelWidth,
		height:     borderWidth + tableH + hudHeight,
		tableW:     tableW,
		tableH:     tableH,
		offX:       borderWidth,
		offY:       borderWidth,
		core:       pong.NewGame(cfg.Params, opts...),
		store:      store,
		eventLog:   NewEventLog(),
		keyStep:    cfg.KeyStep,
		prevKeys:   make(map[ebiten.Key]bool),
		prevCursor: -1,
		copyText:   clipboard.WriteAll,
	}
	g.loop = pong.NewLoop(g.core, g)
	g.loop.OnStop = func(*pong.Game) { g.saveHighScores() }
	return g
}

// Render implements pong.Renderer. Draw paints whatever was rendered last.
func (g *Game) Render(f pong.Frame) {
	g.frame = f
	g.rendered = true
}

func (g *Game) Update() error {
	if ebiten.IsWindowBeingClosed() {
		g.Close()
		return ebiten.Termination
	}

	for _, c := range g.handleInput(ebiten.IsKeyPressed) {
		if err := g.loop.Dispatch(c); err != nil {
			log.Printf("game: %v", err)
		}
	}
	g.trackMouse()

	g.loop.Tick()
	g.eventLog.AddSim(g.core.Log().Drain())

	if g.statusTicks > 0 {
		g.statusTicks--
	}
	return nil
}

// trackMouse moves the player paddle to the cursor whenever the cursor
// moves vertically, like a mousemove handler.
func (g *Game) trackMouse() {
	_, y := ebiten.CursorPosition()
	if y == g.prevCursor {
		return
	}
	g.prevCursor = y
	c := pong.CenterPaddle(pong.SidePlayer, float64(y-g.offY))
	if err := g.loop.Dispatch(c); err != nil {
		log.Printf("game: %v", err)
	}
}

// currentFrame is the snapshot Draw should paint.
func (g *Game) currentFrame() pong.Frame {
	if g.rendered && g.loop.Running() {
		return g.frame
	}
	f := g.core.Frame()
	f.Running = g.loop.Running()
	return f
}

// Close persists the current scores. It is called when the window closes.
func (g *Game) Close() {
	if g.loop.Running() {
		g.loop.Stop() // OnStop saves
		return
	}
	g.saveHighScores()
}

func (g *Game) saveHighScores() {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	h, err := highscore.Record(ctx, g.store, g.core.Player.Score, g.core.Opponent.Score)
	if err != nil {
		log.Printf("game: save high scores: %v", err)
		return
	}
	g.core.SetHighScores(h)
}

func (g *Game) copyScoreboard() {
	if err := g.copyText(g.currentFrame().Scoreboard()); err != nil {
		g.setStatus("clipboard unavailable")
		log.Printf("game: copy scoreboard: %v", err)
		return
	}
	g.setStatus("scoreboard copied")
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusTicks = statusTicks
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// Size is the logical screen size, used for the initial window size.
func (g *Game) Size() (int, int) {
	return g.width, g.height
}

// Loop exposes the driven loop.
func (g *Game) Loop() *pong.Loop { return g.loop }

var _ pong.Renderer = (*Game)(nil)
