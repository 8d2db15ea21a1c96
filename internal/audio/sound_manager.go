// Package audio plays the game's sound effects through the system speaker.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/Garsondee/pong/internal/pong"
)

const sampleRate = beep.SampleRate(44100)

// SoundManager implements pong.Audio. Play is a no-op until Initialize
// succeeds, so a machine without an audio device still runs the game.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	muted       bool
	initialized bool
}

func NewSoundManager(volume float64) *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
}

// Initialize opens the speaker and starts the mixer.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup drops queued sounds. beep has no way to close the speaker.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// SetMuted silences Play without releasing the speaker.
func (sm *SoundManager) SetMuted(m bool) {
	sm.mu.Lock()
	sm.muted = m
	sm.mu.Unlock()
}

func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

func (sm *SoundManager) Play(s pong.Sound) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}
	st, ok := streamerFor(s, sampleRate, sm.volume)
	if !ok {
		return
	}
	speaker.Lock()
	sm.mixer.Add(st)
	speaker.Unlock()
}

var _ pong.Audio = (*SoundManager)(nil)
