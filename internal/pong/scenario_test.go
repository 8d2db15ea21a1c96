package pong

import (
	"testing"
)

// dumpLog prints the full SimLog to t.Log so it appears in `go test -v` output.
func dumpLog(t *testing.T, ts *TestSim) {
	t.Helper()
	entries := ts.SimLog.Entries()
	if len(entries) == 0 {
		t.Log("(no log entries)")
		return
	}
	for _, e := range entries {
		t.Log(e.String())
	}
}

// --- Scenario: autopilot match with power-ups ---

func TestScenario_AutopilotMatch(t *testing.T) {
	ts := NewTestSim(
		WithSimSeed(42),
		WithSimSettings(Settings{PowerUpsEnabled: true, Difficulty: DifficultyMedium}),
		WithPlayerAutopilot(DifficultyHard),
	)
	base := DefaultParams().BaseSpeed
	for i := 0; i < 3600; i++ {
		ts.RunTicks(1)
		if ts.Game.Ball.Speed < base {
			dumpLog(t, ts)
			t.Fatalf("tick %d: speed %.2f fell below base", ts.CurrentTick(), ts.Game.Ball.Speed)
		}
	}

	r := ts.Report()
	t.Log(r.Format())
	if r.Points != int(ts.Game.Player.Score+ts.Game.Opponent.Score) {
		t.Fatalf("score entries (%d) disagree with paddle scores %d-%d", r.Points, ts.Game.Player.Score, ts.Game.Opponent.Score)
	}
	if r.PlayerHits+r.OpponentHits == 0 {
		t.Fatal("expected some paddle contact in a minute of play")
	}
	if r.PowerUpsSpawned == 0 {
		t.Fatal("expected power-ups to spawn at 1% per tick over 3600 ticks")
	}
	// Every spawned power-up is live, taken or expired; never removed twice.
	if live := ts.Game.PowerUps.Len(); r.PowerUpsTaken+r.PowerUpsExpired+live != r.PowerUpsSpawned {
		t.Fatalf("power-up accounting off: spawned=%d taken=%d expired=%d live=%d",
			r.PowerUpsSpawned, r.PowerUpsTaken, r.PowerUpsExpired, live)
	}
}

// --- Scenario: resets always land on the centre ---

func TestScenario_EveryResetIsCentred(t *testing.T) {
	ts := NewTestSim(
		WithSimSeed(7),
		WithSimSettings(Settings{Difficulty: DifficultyEasy}),
	)
	resets := 0
	var prevScore uint
	for i := 0; i < 5000 && resets < 3; i++ {
		vx := ts.Game.Ball.VelocityX
		ts.RunTicks(1)
		total := ts.Game.Player.Score + ts.Game.Opponent.Score
		if total == prevScore {
			continue
		}
		prevScore = total
		resets++
		b := ts.Game.Ball
		if b.X != 400 || b.Y != 200 || b.Speed != 5 {
			t.Fatalf("reset %d left ball at (%.1f,%.1f) speed %.1f", resets, b.X, b.Y, b.Speed)
		}
		// The paddle can rewrite vx in the scoring tick, so compare against
		// the sign it had going into the goal only when no hit happened.
		if e, ok := ts.SimLog.LastOf(CatPaddle, KeyHit); !ok || e.Tick != ts.CurrentTick() {
			if (vx < 0) == (b.VelocityX < 0) {
				t.Fatalf("reset %d did not invert vx: before %.2f after %.2f", resets, vx, b.VelocityX)
			}
		}
	}
	if resets == 0 {
		t.Fatal("an idle player paddle should concede within 5000 ticks")
	}
}
