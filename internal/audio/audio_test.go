package audio

import (
	"math"
	"testing"

	"github.com/gopxl/beep"

	"github.com/Garsondee/pong/internal/pong"
)

func drain(t *testing.T, s beep.Streamer) (n int, peak float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	for i := 0; i < 10000; i++ {
		got, ok := s.Stream(buf)
		for _, smp := range buf[:got] {
			if smp[0] != smp[1] {
				t.Fatalf("expected mono samples, got %v", smp)
			}
			peak = math.Max(peak, math.Abs(smp[0]))
		}
		n += got
		if !ok {
			return n, peak
		}
	}
	t.Fatal("streamer never finished")
	return 0, 0
}

func TestEverySoundHasATone(t *testing.T) {
	for _, s := range pong.Sounds {
		if _, ok := streamerFor(s, sampleRate, 0); !ok {
			t.Fatalf("no tone for %s", s)
		}
	}
	if _, ok := streamerFor(pong.Sound(99), sampleRate, 0); ok {
		t.Fatal("unknown sound should not produce a streamer")
	}
}

func TestOscillatorLengthAndLevel(t *testing.T) {
	for _, s := range pong.Sounds {
		tn := tones[s]
		n, peak := drain(t, newOscillator(tn, sampleRate))
		if want := sampleRate.N(tn.duration); n != want {
			t.Fatalf("%s: streamed %d samples, want %d", s, n, want)
		}
		if peak == 0 || peak > tn.gain+1e-9 {
			t.Fatalf("%s: peak %.3f outside (0, %.2f]", s, peak, tn.gain)
		}
	}
}

func TestVolumeAttenuates(t *testing.T) {
	loud, _ := streamerFor(pong.SoundHit, sampleRate, 0)
	quiet, _ := streamerFor(pong.SoundHit, sampleRate, -2)
	_, lp := drain(t, loud)
	_, qp := drain(t, quiet)
	if qp >= lp {
		t.Fatalf("expected volume -2 to be quieter: %.3f >= %.3f", qp, lp)
	}
}

func TestEnvelope(t *testing.T) {
	if envelope(0) != 0 {
		t.Fatalf("envelope should start silent, got %.3f", envelope(0))
	}
	if math.Abs(envelope(0.05)-1) > 1e-9 {
		t.Fatalf("envelope should peak after attack, got %.3f", envelope(0.05))
	}
	if envelope(0.9) >= envelope(0.5) {
		t.Fatal("envelope should decay")
	}
}

// Play before Initialize must be safe; the game runs without a device.
func TestSoundManagerUninitialized(t *testing.T) {
	sm := NewSoundManager(0)
	for _, s := range pong.Sounds {
		sm.Play(s)
	}
	sm.SetMuted(true)
	if !sm.Muted() {
		t.Fatal("expected muted")
	}
	sm.Cleanup()
}
