package pong

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDifficulty is returned by ParseDifficulty for unrecognised names.
var ErrUnknownDifficulty = errors.New("unknown difficulty")

// Difficulty selects how aggressively the computer paddle chases the ball.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
	difficultyCount
)

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	case DifficultyHard:
		return "hard"
	default:
		return "unknown"
	}
}

// ParseDifficulty maps "easy", "medium" or "hard" (any case) to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy, nil
	case "medium":
		return DifficultyMedium, nil
	case "hard":
		return DifficultyHard, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}

// Track moves p a fraction gain of the way from its centre towards targetY.
// Repeated calls against a still target close the gap geometrically with
// ratio (1 - gain). The paddle is not kept inside the playfield.
func Track(p *Paddle, targetY, gain float64) {
	p.Y += (targetY - p.CenterY()) * gain
}
