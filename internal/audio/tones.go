package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/Garsondee/pong/internal/pong"
)

// WaveType selects the oscillator shape.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
)

// tone is one blip: a waveform at a frequency, optionally sliding to a
// second frequency, shaped by a linear attack and exponential release.
type tone struct {
	wave     WaveType
	from, to float64
	duration time.Duration
	gain     float64
}

var tones = map[pong.Sound]tone{
	pong.SoundWall:    {wave: WaveSquare, from: 440, to: 440, duration: 40 * time.Millisecond, gain: 0.18},
	pong.SoundHit:     {wave: WaveSquare, from: 660, to: 660, duration: 60 * time.Millisecond, gain: 0.22},
	pong.SoundScore:   {wave: WaveTriangle, from: 520, to: 180, duration: 350 * time.Millisecond, gain: 0.3},
	pong.SoundPowerUp: {wave: WaveSine, from: 600, to: 1400, duration: 180 * time.Millisecond, gain: 0.25},
}

// oscillator streams a fixed number of samples then reports !ok.
type oscillator struct {
	t        tone
	rate     beep.SampleRate
	phase    float64
	position int
	length   int
}

func newOscillator(t tone, rate beep.SampleRate) *oscillator {
	return &oscillator{t: t, rate: rate, length: rate.N(t.duration)}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.length {
			return i, i > 0
		}
		progress := float64(o.position) / float64(o.length)
		freq := o.t.from + (o.t.to-o.t.from)*progress

		var val float64
		switch o.t.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveTriangle:
			val = 4*math.Abs(o.phase-0.5) - 1
		}
		val *= o.t.gain * envelope(progress)

		samples[i][0] = val
		samples[i][1] = val

		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope ramps up over the first 5% and decays afterwards.
func envelope(progress float64) float64 {
	const attack = 0.05
	if progress < attack {
		return progress / attack
	}
	return math.Exp(-4 * (progress - attack))
}

// streamerFor builds the streamer for s. volume is a beep exponent
// (base 2): 0 leaves the level unchanged, -1 halves it.
func streamerFor(s pong.Sound, rate beep.SampleRate, volume float64) (beep.Streamer, bool) {
	t, ok := tones[s]
	if !ok {
		return nil, false
	}
	return &effects.Volume{
		Streamer: newOscillator(t, rate),
		Base:     2,
		Volume:   volume,
	}, true
}
