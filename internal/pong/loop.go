package pong

import (
	"context"
	"fmt"
	"time"
)

// Loop drives a Game at a fixed rate. Each tick renders the current state and
// then steps the simulation, so the drawn frame always trails the simulated
// state by one tick.
//
// A host with its own fixed-rate clock (ebiten's Update) calls Tick directly.
// Otherwise Run owns the ticker. Either way a Loop must only be used from one
// goroutine.
type Loop struct {
	game     *Game
	renderer Renderer
	running  bool
	ticks    int

	// OnStop runs after the loop transitions from running to stopped.
	OnStop func(*Game)
}

// NewLoop returns a stopped loop. A nil renderer is allowed.
func NewLoop(g *Game, r Renderer) *Loop {
	return &Loop{game: g, renderer: r}
}

// Start begins ticking. Starting a running loop does nothing.
func (l *Loop) Start() {
	if l.running {
		return
	}
	l.running = true
	l.game.log.Add(l.game.tick, "--", CatLoop, KeyStart, "running", 0)
}

// Stop halts ticking. Stopping a stopped loop does nothing.
func (l *Loop) Stop() {
	if !l.running {
		return
	}
	l.running = false
	l.game.log.Add(l.game.tick, "--", CatLoop, KeyStop, "stopped", 0)
	if l.OnStop != nil {
		l.OnStop(l.game)
	}
}

// Running reports whether the loop is ticking.
func (l *Loop) Running() bool { return l.running }

// Ticks is the number of ticks executed while running.
func (l *Loop) Ticks() int { return l.ticks }

// Game returns the driven game.
func (l *Loop) Game() *Game { return l.game }

// Tick performs one firing: render, then update. It does nothing while
// stopped.
func (l *Loop) Tick() {
	if !l.running {
		return
	}
	l.ticks++
	if l.renderer != nil {
		f := l.game.Frame()
		f.Running = true
		l.renderer.Render(f)
	}
	l.game.Step()
}

// Dispatch applies one command.
func (l *Loop) Dispatch(c Command) error {
	switch c.Op {
	case OpStart:
		l.Start()
	case OpStop:
		l.Stop()
	case OpToggleMultiplayer:
		l.game.ToggleMultiplayer()
	case OpTogglePowerUps:
		l.game.TogglePowerUps()
	case OpSetDifficulty:
		l.game.SetDifficulty(c.Difficulty)
	case OpCenterPaddle:
		l.game.CenterPaddle(c.Side, c.Value)
	case OpNudgePaddle:
		l.game.NudgePaddle(c.Side, c.Value)
	default:
		return fmt.Errorf("dispatch: unknown op %d", c.Op)
	}
	return nil
}

// Run ticks at the game's tick rate and applies commands from cmds between
// ticks until ctx is cancelled or cmds is closed. Commands and ticks never
// overlap. Unknown commands are passed to onErr when it is non-nil.
//
// While stopped no ticks render, so each applied command renders a frame
// instead and the host still sees settings and paddle changes.
func (l *Loop) Run(ctx context.Context, cmds <-chan Command, onErr func(error)) error {
	ticker := time.NewTicker(l.game.params.TickInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case c, ok := <-cmds:
			if !ok {
				return nil
			}
			if err := l.Dispatch(c); err != nil {
				if onErr != nil {
					onErr(err)
				}
				continue
			}
			if !l.running && l.renderer != nil {
				l.renderer.Render(l.game.Frame())
			}
		case <-ticker.C:
			l.Tick()
		}
	}
}
