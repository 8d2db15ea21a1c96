package pong

import (
	"math"
	"time"
)

// Params holds every tunable of the simulation. The zero value is not usable;
// start from DefaultParams and override what you need.
type Params struct {
	Width  float64 // playfield width
	Height float64 // playfield height

	PaddleWidth  float64
	PaddleHeight float64

	BallRadius       float64
	BaseSpeed        float64 // speed restored on every score
	InitialVelocityX float64
	InitialVelocityY float64
	PaddleSpeedUp    float64 // added to ball speed on every paddle hit

	// MaxBounceAngle is the bounce angle for a hit exactly one half-height
	// away from the paddle centre.
	MaxBounceAngle float64
	// ClampCollidePoint limits the normalised hit offset to [-1, 1] before the
	// bounce angle is computed. Off by default: corner hits against a moving
	// paddle can exceed MaxBounceAngle.
	ClampCollidePoint bool

	PowerUpRadius   float64
	PowerUpChance   float64 // per-tick spawn probability while power-ups are enabled
	PowerUpLifetime time.Duration
	PowerUpBoost    float64 // added to ball speed on consumption

	TickRate int // ticks per second

	// Gains is the opponent tracking gain per difficulty, indexed by Difficulty.
	Gains [difficultyCount]float64
}

// DefaultParams returns the classic 800x400 table.
func DefaultParams() Params {
	return Params{
		Width:             800,
		Height:            400,
		PaddleWidth:       10,
		PaddleHeight:      100,
		BallRadius:        10,
		BaseSpeed:         5,
		InitialVelocityX:  5,
		InitialVelocityY:  5,
		PaddleSpeedUp:     0.5,
		MaxBounceAngle:    math.Pi / 4,
		ClampCollidePoint: false,
		PowerUpRadius:     10,
		PowerUpChance:     0.01,
		PowerUpLifetime:   10 * time.Second,
		PowerUpBoost:      2,
		TickRate:          60,
		Gains: [difficultyCount]float64{
			DifficultyEasy:   0.05,
			DifficultyMedium: 0.10,
			DifficultyHard:   0.20,
		},
	}
}

// TickInterval is the wall-clock duration of one tick.
func (p Params) TickInterval() time.Duration {
	if p.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(p.TickRate)
}

// Gain returns the tracking gain for d, or 0 for an unknown difficulty so the
// opponent simply stays put.
func (p Params) Gain(d Difficulty) float64 {
	if d < 0 || d >= difficultyCount {
		return 0
	}
	return p.Gains[d]
}

// MidX is the x coordinate of the net.
func (p Params) MidX() float64 { return p.Width / 2 }
