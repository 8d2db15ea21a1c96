package pong

import "time"

// Sound is a sound effect the core asks the host to play.
type Sound int

const (
	SoundWall Sound = iota
	SoundHit
	SoundScore
	SoundPowerUp
)

// Sounds lists every sound effect.
var Sounds = []Sound{SoundWall, SoundHit, SoundScore, SoundPowerUp}

func (s Sound) String() string {
	switch s {
	case SoundWall:
		return "wall"
	case SoundHit:
		return "hit"
	case SoundScore:
		return "score"
	case SoundPowerUp:
		return "power_up"
	default:
		return "unknown"
	}
}

// Audio plays sound effects. Calls are fire-and-forget; the core never waits
// on or inspects the outcome.
type Audio interface {
	Play(Sound)
}

// Renderer draws one frame. It is called at the start of every running tick,
// before the simulation advances.
type Renderer interface {
	Render(Frame)
}

// Rand is the randomness the power-up manager draws from. *rand.Rand
// satisfies it.
type Rand interface {
	Float64() float64
}

// Clock returns the current time. Power-up expiry is measured against it.
type Clock func() time.Time

type nopAudio struct{}

func (nopAudio) Play(Sound) {}

// RendererFunc adapts a plain function to Renderer.
type RendererFunc func(Frame)

func (f RendererFunc) Render(fr Frame) { f(fr) }
