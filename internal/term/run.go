package term

import (
	"context"
	"errors"
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/pong/internal/pong"
)

// Run drives loop from terminal input until ctx is cancelled or the user
// quits. copyText receives the scoreboard on 'c'; it may be nil. The caller
// owns the screen and must Fini it afterwards, which also unblocks the input
// goroutine.
func Run(ctx context.Context, screen tcell.Screen, loop *pong.Loop, r *Renderer, in *Input, copyText func(string) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	screen.EnableMouse()
	r.Render(loop.Game().Frame())

	cmds := make(chan pong.Command, 16)
	go func() {
		defer close(cmds)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			if _, ok := ev.(*tcell.EventResize); ok {
				screen.Sync()
				continue
			}
			act, cmd := in.Translate(ev)
			switch act {
			case ActQuit:
				// Closing cmds lets the loop apply what is queued, then return.
				return
			case ActCopy:
				if copyText == nil {
					continue
				}
				if err := copyText(r.Last().Scoreboard()); err != nil {
					log.Printf("term: copy scoreboard: %v", err)
				}
			case ActCommand:
				select {
				case cmds <- cmd:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	err := loop.Run(ctx, cmds, func(err error) { log.Printf("term: %v", err) })
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
