package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/Garsondee/pong/internal/config"
	"github.com/Garsondee/pong/internal/pong"
)

type runStats struct {
	runIndex int
	seed     int64
	report   pong.MatchReport
}

type matchOptions struct {
	params   pong.Params
	settings pong.Settings
	player   pong.Difficulty
	ticks    int
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var configPath string
	var opponent string
	var player string
	var powerUps bool
	var copyReport bool

	flag.IntVar(&runs, "runs", 5, "number of headless matches")
	flag.IntVar(&ticks, "ticks", 3600, "ticks per match")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&configPath, "config", "", "TOML config for table parameters")
	flag.StringVar(&opponent, "difficulty", "", "opponent difficulty (default from config)")
	flag.StringVar(&player, "player", "medium", "autopilot difficulty for the player paddle")
	flag.BoolVar(&powerUps, "power-ups", false, "enable power-ups")
	flag.BoolVar(&copyReport, "copy", false, "copy the report to the clipboard")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	opts := matchOptions{
		params:   cfg.Params(),
		settings: cfg.Settings(),
		ticks:    ticks,
	}
	opts.settings.Multiplayer = false
	opts.settings.PowerUpsEnabled = powerUps || opts.settings.PowerUpsEnabled
	if opponent != "" {
		d, err := pong.ParseDifficulty(opponent)
		if err != nil {
			fmt.Printf("error: -difficulty: %v\n", err)
			return
		}
		opts.settings.Difficulty = d
	}
	if opts.player, err = pong.ParseDifficulty(player); err != nil {
		fmt.Printf("error: -player: %v\n", err)
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "=== Headless Match Report ===\n")
	fmt.Fprintf(&b, "runs=%d ticks=%d seed_base=%d seed_step=%d player=%s opponent=%s power_ups=%v\n\n",
		runs, ticks, seedBase, seedStep, opts.player, opts.settings.Difficulty, opts.settings.PowerUpsEnabled)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		rs := runMatch(i+1, seed, opts)
		all = append(all, rs)
		printRun(&b, rs)
	}
	printAggregate(&b, all)

	fmt.Fprint(os.Stdout, b.String())
	if copyReport {
		if err := clipboard.WriteAll(b.String()); err != nil {
			fmt.Printf("clipboard: %v\n", err)
			return
		}
		fmt.Println("report copied to clipboard")
	}
}

// runMatch plays one autopilot-versus-computer match.
func runMatch(runIndex int, seed int64, opts matchOptions) runStats {
	ts := pong.NewTestSim(
		pong.WithParams(opts.params),
		pong.WithSimSeed(seed),
		pong.WithSimSettings(opts.settings),
		pong.WithPlayerAutopilot(opts.player),
	)
	ts.RunTicks(opts.ticks)
	return runStats{
		runIndex: runIndex,
		seed:     seed,
		report:   ts.Report(),
	}
}

func printRun(w io.Writer, rs runStats) {
	fmt.Fprintf(w, "--- Run %d (seed=%d) winner=%s ---\n", rs.runIndex, rs.seed, rs.report.Winner())
	fmt.Fprint(w, rs.report.Format())
	fmt.Fprintln(w)
}

func printAggregate(w io.Writer, all []runStats) {
	var points, playerHits, opponentHits, walls, spawned, taken, expired int
	var playerWins, opponentWins, draws int
	var longest int
	var peak float64
	var firstPoints []int
	for _, rs := range all {
		r := rs.report
		points += r.Points
		playerHits += r.PlayerHits
		opponentHits += r.OpponentHits
		walls += r.WallBounces
		spawned += r.PowerUpsSpawned
		taken += r.PowerUpsTaken
		expired += r.PowerUpsExpired
		if r.LongestRally > longest {
			longest = r.LongestRally
		}
		if r.PeakSpeed > peak {
			peak = r.PeakSpeed
		}
		if r.FirstPointTick >= 0 {
			firstPoints = append(firstPoints, r.FirstPointTick)
		}
		switch r.Winner() {
		case "player":
			playerWins++
		case "opponent":
			opponentWins++
		default:
			draws++
		}
	}

	n := len(all)
	fmt.Fprintf(w, "=== Aggregate ===\n")
	fmt.Fprintf(w, "runs=%d\n", n)
	fmt.Fprintf(w, "results: player_wins=%d opponent_wins=%d draws=%d\n", playerWins, opponentWins, draws)
	fmt.Fprintf(w, "avg_per_run: points=%.1f player_hits=%.1f opponent_hits=%.1f wall_bounces=%.1f\n",
		avg(points, n), avg(playerHits, n), avg(opponentHits, n), avg(walls, n))
	fmt.Fprintf(w, "avg_power_ups_per_run: spawned=%.1f taken=%.1f expired=%.1f\n",
		avg(spawned, n), avg(taken, n), avg(expired, n))
	fmt.Fprintf(w, "longest_rally=%d peak_speed=%.1f first_point_avg_tick=%s\n", longest, peak, avgTickString(firstPoints))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}
