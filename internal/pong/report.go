package pong

import (
	"fmt"
	"strings"
)

// MatchReport summarises one match from its event log.
type MatchReport struct {
	PlayerScore   uint
	OpponentScore uint

	Points          int // rallies that ended in a score
	PlayerHits      int
	OpponentHits    int
	WallBounces     int
	LongestRally    int // paddle hits between two consecutive points
	PeakSpeed       float64
	PowerUpsSpawned int
	PowerUpsTaken   int
	PowerUpsExpired int
	FirstPointTick  int // -1 when nobody scored
}

// BuildMatchReport folds a log into a MatchReport. The final scores come from
// the paddles since the log may have been drained.
func BuildMatchReport(entries []SimLogEntry, playerScore, opponentScore uint) MatchReport {
	r := MatchReport{
		PlayerScore:    playerScore,
		OpponentScore:  opponentScore,
		FirstPointTick: -1,
	}
	rally := 0
	for _, e := range entries {
		switch e.Category {
		case CatPaddle:
			if e.Key != KeyHit {
				continue
			}
			rally++
			if e.Side == SidePlayer.Label() {
				r.PlayerHits++
			} else {
				r.OpponentHits++
			}
			if e.NumVal > r.PeakSpeed {
				r.PeakSpeed = e.NumVal
			}
		case CatWall:
			r.WallBounces++
		case CatScore:
			r.Points++
			if r.FirstPointTick < 0 {
				r.FirstPointTick = e.Tick
			}
			if rally > r.LongestRally {
				r.LongestRally = rally
			}
			if e.NumVal > r.PeakSpeed {
				r.PeakSpeed = e.NumVal
			}
			rally = 0
		case CatPowerUp:
			switch e.Key {
			case KeySpawn:
				r.PowerUpsSpawned++
			case KeyConsume:
				r.PowerUpsTaken++
				if e.NumVal > r.PeakSpeed {
					r.PeakSpeed = e.NumVal
				}
			case KeyExpire:
				r.PowerUpsExpired++
			}
		}
	}
	if rally > r.LongestRally {
		r.LongestRally = rally
	}
	return r
}

// AvgRally is the mean number of paddle hits per point.
func (r MatchReport) AvgRally() float64 {
	if r.Points == 0 {
		return 0
	}
	return float64(r.PlayerHits+r.OpponentHits) / float64(r.Points)
}

// Winner names the leading side, or "draw".
func (r MatchReport) Winner() string {
	switch {
	case r.PlayerScore > r.OpponentScore:
		return SidePlayer.String()
	case r.OpponentScore > r.PlayerScore:
		return SideOpponent.String()
	default:
		return "draw"
	}
}

// Format renders the report as key=value lines.
func (r MatchReport) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "score: player=%d opponent=%d winner=%s\n", r.PlayerScore, r.OpponentScore, r.Winner())
	fmt.Fprintf(&sb, "rallies: points=%d longest=%d avg=%.1f first_point_tick=%d\n",
		r.Points, r.LongestRally, r.AvgRally(), r.FirstPointTick)
	fmt.Fprintf(&sb, "contacts: player_hits=%d opponent_hits=%d wall_bounces=%d peak_speed=%.1f\n",
		r.PlayerHits, r.OpponentHits, r.WallBounces, r.PeakSpeed)
	fmt.Fprintf(&sb, "power_ups: spawned=%d taken=%d expired=%d\n",
		r.PowerUpsSpawned, r.PowerUpsTaken, r.PowerUpsExpired)
	return sb.String()
}
