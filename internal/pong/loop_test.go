package pong

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLoop_StartStopIdempotent(t *testing.T) {
	g := NewGame(DefaultParams(), WithSeed(1), WithSimLog(NewSimLog(false)))
	l := NewLoop(g, nil)
	stops := 0
	l.OnStop = func(*Game) { stops++ }

	l.Stop()
	if stops != 0 {
		t.Fatal("stopping a stopped loop must not fire OnStop")
	}
	l.Start()
	l.Start()
	if !l.Running() {
		t.Fatal("loop should be running")
	}
	if n := g.Log().CountCategory(CatLoop, KeyStart); n != 1 {
		t.Fatalf("expected one start transition, got %d", n)
	}
	l.Stop()
	l.Stop()
	if l.Running() {
		t.Fatal("loop should be stopped")
	}
	if stops != 1 {
		t.Fatalf("expected OnStop once, got %d", stops)
	}
}

func TestLoop_TickIsNoOpWhenStopped(t *testing.T) {
	g := NewGame(DefaultParams(), WithSeed(1))
	rendered := 0
	l := NewLoop(g, RendererFunc(func(Frame) { rendered++ }))
	l.Tick()
	if g.Tick() != 0 || rendered != 0 || l.Ticks() != 0 {
		t.Fatalf("stopped loop ticked: game=%d rendered=%d loop=%d", g.Tick(), rendered, l.Ticks())
	}
	l.Start()
	l.Tick()
	l.Tick()
	if g.Tick() != 2 || rendered != 2 || l.Ticks() != 2 {
		t.Fatalf("expected 2 ticks, got game=%d rendered=%d loop=%d", g.Tick(), rendered, l.Ticks())
	}
}

func TestLoop_RenderPrecedesUpdate(t *testing.T) {
	ts := NewTestSim(WithFrameCapture(), WithBall(400, 200, 5, 0))
	ts.RunTicks(3)
	if len(ts.Frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(ts.Frames))
	}
	for i, f := range ts.Frames {
		if f.Tick != i {
			t.Fatalf("frame %d shows tick %d; it should show the state before the update", i, f.Tick)
		}
		if want := 400 + 5*float64(i); f.Ball.X != want {
			t.Fatalf("frame %d ball x=%.1f, want %.1f", i, f.Ball.X, want)
		}
		if !f.Running {
			t.Fatalf("frame %d not marked running", i)
		}
	}
	if ts.Game.Ball.X != 415 {
		t.Fatalf("simulated state should be one tick ahead of the last frame, x=%.1f", ts.Game.Ball.X)
	}
}

func TestLoop_Dispatch(t *testing.T) {
	g := NewGame(DefaultParams(), WithSeed(1))
	l := NewLoop(g, nil)
	cmds := []Command{
		Start(),
		ToggleMultiplayer(),
		TogglePowerUps(),
		SetDifficulty(DifficultyEasy),
		CenterPaddle(SidePlayer, 300),
		NudgePaddle(SideOpponent, -20),
	}
	for _, c := range cmds {
		if err := l.Dispatch(c); err != nil {
			t.Fatalf("dispatch %s: %v", c.Op, err)
		}
	}
	s := g.Settings()
	if !l.Running() || !s.Multiplayer || !s.PowerUpsEnabled || s.Difficulty != DifficultyEasy {
		t.Fatalf("unexpected state running=%v settings=%+v", l.Running(), s)
	}
	if g.Player.Y != 250 || g.Opponent.Y != 130 {
		t.Fatalf("unexpected paddles player=%.0f opponent=%.0f", g.Player.Y, g.Opponent.Y)
	}
	if err := l.Dispatch(Stop()); err != nil || l.Running() {
		t.Fatalf("stop failed: err=%v running=%v", err, l.Running())
	}
	if err := l.Dispatch(Command{Op: Op(99)}); err == nil {
		t.Fatal("unknown op should be rejected")
	}
}

func TestLoop_RunTicksUntilCancelled(t *testing.T) {
	p := DefaultParams()
	p.TickRate = 1000
	g := NewGame(p, WithSeed(1))
	l := NewLoop(g, nil)

	cmds := make(chan Command, 1)
	cmds <- Start()
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := l.Run(ctx, cmds, nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if !l.Running() {
		t.Fatal("start command was not applied")
	}
	if l.Ticks() == 0 || g.Tick() != l.Ticks() {
		t.Fatalf("expected ticks to run, loop=%d game=%d", l.Ticks(), g.Tick())
	}
}

func TestLoop_RunReturnsWhenCommandsClose(t *testing.T) {
	g := NewGame(DefaultParams(), WithSeed(1))
	l := NewLoop(g, nil)
	cmds := make(chan Command, 2)
	cmds <- ToggleMultiplayer()
	cmds <- Command{Op: Op(42)}
	close(cmds)

	var errs []error
	done := make(chan error, 1)
	go func() { done <- l.Run(context.Background(), cmds, func(err error) { errs = append(errs, err) }) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected nil on close, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after the command channel closed")
	}
	if !g.Settings().Multiplayer {
		t.Fatal("queued command was not applied")
	}
	if len(errs) != 1 {
		t.Fatalf("expected one dispatch error, got %d", len(errs))
	}
}

func TestLoop_RunRendersCommandsWhileStopped(t *testing.T) {
	g := NewGame(DefaultParams(), WithSeed(1))
	var frames []Frame
	l := NewLoop(g, RendererFunc(func(f Frame) { frames = append(frames, f) }))

	cmds := make(chan Command, 2)
	cmds <- TogglePowerUps()
	cmds <- Command{Op: Op(7)}
	close(cmds)
	if err := l.Run(context.Background(), cmds, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frames) != 1 {
		t.Fatalf("expected one render for the valid command, got %d", len(frames))
	}
	if frames[0].Running || !frames[0].Settings.PowerUpsEnabled {
		t.Fatalf("unexpected frame %+v", frames[0].Settings)
	}
}
