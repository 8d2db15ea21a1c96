package game

import (
	"context"
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/pong/internal/pong"
)

type memStore struct {
	h     pong.HighScores
	saves int
}

func (m *memStore) Load(context.Context) (pong.HighScores, error) { return m.h, nil }
func (m *memStore) Save(_ context.Context, h pong.HighScores) error {
	m.h = h
	m.saves++
	return nil
}

func newTestGame(t *testing.T, store *memStore) *Game {
	t.Helper()
	cfg := Config{Params: pong.DefaultParams(), Settings: pong.DefaultSettings(), Seed: 1}
	if store != nil {
		cfg.Store = store
	}
	return New(cfg)
}

func keys(down ...ebiten.Key) func(ebiten.Key) bool {
	set := map[ebiten.Key]bool{}
	for _, k := range down {
		set[k] = true
	}
	return func(k ebiten.Key) bool { return set[k] }
}

func TestEventLog_RingBuffer(t *testing.T) {
	el := NewEventLog()
	for i := 0; i < logMaxEntries+5; i++ {
		el.Add(i, "--", pong.CatWall, "bounce")
	}
	if el.Len() != logMaxEntries {
		t.Fatalf("expected %d entries, got %d", logMaxEntries, el.Len())
	}
	recent := el.Recent()
	if recent[0].Tick != 5 || recent[len(recent)-1].Tick != logMaxEntries+4 {
		t.Fatalf("unexpected order: first=%d last=%d", recent[0].Tick, recent[len(recent)-1].Tick)
	}
}

func TestEventLog_AddSimSkipsBallState(t *testing.T) {
	el := NewEventLog()
	el.AddSim([]pong.SimLogEntry{
		{Tick: 1, Side: "--", Category: pong.CatWall, Key: pong.KeyBounce, Value: "top"},
		{Tick: 1, Side: "--", Category: pong.CatBall, Key: pong.KeyState, Value: "5.0"},
		{Tick: 2, Side: "P", Category: pong.CatPaddle, Key: pong.KeyHit, Value: "speed 5.5"},
	})
	got := el.Recent()
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[1].Message != "hit speed 5.5" || got[1].Side != "P" {
		t.Fatalf("unexpected entry %+v", got[1])
	}
}

func TestHandleInput_EdgeTriggered(t *testing.T) {
	g := newTestGame(t, nil)
	cmds := g.handleInput(keys(ebiten.KeyEnter))
	if len(cmds) != 1 || cmds[0].Op != pong.OpStart {
		t.Fatalf("expected a single start, got %v", cmds)
	}
	if cmds = g.handleInput(keys(ebiten.KeyEnter)); len(cmds) != 0 {
		t.Fatalf("held key should not repeat, got %v", cmds)
	}
	g.handleInput(keys())
	if cmds = g.handleInput(keys(ebiten.Key3)); len(cmds) != 1 || cmds[0].Difficulty != pong.DifficultyHard {
		t.Fatalf("expected hard difficulty, got %v", cmds)
	}
}

func TestHandleInput_ArrowsOnlyInMultiplayer(t *testing.T) {
	g := newTestGame(t, nil)
	if cmds := g.handleInput(keys(ebiten.KeyArrowUp)); len(cmds) != 0 {
		t.Fatalf("arrows should be ignored against the computer, got %v", cmds)
	}
	g.core.ToggleMultiplayer()
	cmds := g.handleInput(keys(ebiten.KeyArrowDown))
	if len(cmds) != 1 || cmds[0].Op != pong.OpNudgePaddle || cmds[0].Side != pong.SideOpponent || cmds[0].Value != g.keyStep {
		t.Fatalf("expected opponent nudge, got %v", cmds)
	}
	// Held movement repeats every tick.
	if cmds = g.handleInput(keys(ebiten.KeyArrowDown)); len(cmds) != 1 {
		t.Fatalf("expected repeat nudge, got %v", cmds)
	}
}

func TestCopyScoreboard(t *testing.T) {
	g := newTestGame(t, nil)
	var copied string
	g.copyText = func(s string) error { copied = s; return nil }
	g.handleInput(keys(ebiten.KeyC))
	if copied != "High Scores: Player - 0, Computer - 0" {
		t.Fatalf("unexpected clipboard text %q", copied)
	}
	if g.status != "scoreboard copied" {
		t.Fatalf("unexpected status %q", g.status)
	}

	g.copyText = func(string) error { return errors.New("no clipboard") }
	g.handleInput(keys())
	g.handleInput(keys(ebiten.KeyC))
	if g.status != "clipboard unavailable" {
		t.Fatalf("unexpected status %q", g.status)
	}
}

func TestRender_FrameTrailsState(t *testing.T) {
	g := newTestGame(t, nil)
	g.loop.Start()
	g.loop.Tick()
	f := g.currentFrame()
	if !f.Running || f.Tick != 0 {
		t.Fatalf("expected the pre-step frame, got tick=%d running=%v", f.Tick, f.Running)
	}
	if g.core.Tick() != 1 {
		t.Fatalf("expected game at tick 1, got %d", g.core.Tick())
	}
	g.loop.Stop()
	if f := g.currentFrame(); f.Running || f.Tick != 1 {
		t.Fatalf("stopped frame should show live state, got tick=%d running=%v", f.Tick, f.Running)
	}
}

func TestStopSavesHighScores(t *testing.T) {
	store := &memStore{h: pong.HighScores{Player: 1, Opponent: 9}}
	g := newTestGame(t, store)
	g.core.Player.Score = 4
	g.core.Opponent.Score = 2

	if err := g.loop.Dispatch(pong.Start()); err != nil {
		t.Fatal(err)
	}
	if err := g.loop.Dispatch(pong.Stop()); err != nil {
		t.Fatal(err)
	}
	want := pong.HighScores{Player: 4, Opponent: 9}
	if store.h != want || store.saves != 1 {
		t.Fatalf("store = %+v after %d saves, want %+v", store.h, store.saves, want)
	}
	if g.core.HighScores() != want {
		t.Fatalf("displayed high scores not refreshed: %+v", g.core.HighScores())
	}

	// Closing with nothing new does not write again.
	g.Close()
	if store.saves != 1 {
		t.Fatalf("expected no extra save, got %d", store.saves)
	}
}

func TestSize(t *testing.T) {
	g := newTestGame(t, nil)
	w, h := g.Size()
	if w != borderWidth*2+800+logPanelWidth || h != borderWidth+400+hudHeight {
		t.Fatalf("unexpected size %dx%d", w, h)
	}
}
