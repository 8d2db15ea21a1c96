package main

import (
	"strings"
	"testing"

	"github.com/Garsondee/pong/internal/pong"
)

func defaultOptions(ticks int) matchOptions {
	return matchOptions{
		params:   pong.DefaultParams(),
		settings: pong.DefaultSettings(),
		player:   pong.DifficultyMedium,
		ticks:    ticks,
	}
}

func TestAvg(t *testing.T) {
	if avg(10, 4) != 2.5 {
		t.Fatalf("expected 2.5, got %.2f", avg(10, 4))
	}
	if avg(10, 0) != 0 {
		t.Fatal("avg over zero runs should be 0")
	}
}

func TestAvgTickString(t *testing.T) {
	if got := avgTickString(nil); got != "n/a" {
		t.Fatalf("expected n/a, got %s", got)
	}
	if got := avgTickString([]int{100, 201}); got != "150.5" {
		t.Fatalf("expected 150.5, got %s", got)
	}
}

func TestRunMatch_Deterministic(t *testing.T) {
	opts := defaultOptions(1200)
	opts.settings.PowerUpsEnabled = true
	a := runMatch(1, 7, opts)
	b := runMatch(1, 7, opts)
	if a.report != b.report {
		t.Fatalf("same seed produced different reports:\n%+v\n%+v", a.report, b.report)
	}
	if a.report.PlayerHits+a.report.OpponentHits == 0 {
		t.Fatal("expected at least one paddle hit in 1200 ticks")
	}
}

func TestPrintAggregate_CountsWinners(t *testing.T) {
	all := []runStats{
		{runIndex: 1, report: pong.MatchReport{PlayerScore: 3, OpponentScore: 1, Points: 4, LongestRally: 6, PeakSpeed: 8, FirstPointTick: 100}},
		{runIndex: 2, report: pong.MatchReport{PlayerScore: 0, OpponentScore: 2, Points: 2, LongestRally: 2, PeakSpeed: 6.5, FirstPointTick: 300}},
		{runIndex: 3, report: pong.MatchReport{FirstPointTick: -1}},
	}
	var b strings.Builder
	printAggregate(&b, all)
	out := b.String()
	for _, want := range []string{
		"runs=3",
		"results: player_wins=1 opponent_wins=1 draws=1",
		"points=2.0",
		"longest_rally=6 peak_speed=8.0 first_point_avg_tick=200.0",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("aggregate missing %q:\n%s", want, out)
		}
	}
}
