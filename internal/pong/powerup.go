package pong

import (
	"time"
)

// PowerUp is a temporary pickup. Touching it with the ball speeds the ball up.
type PowerUp struct {
	ID        uint64
	X, Y      float64 // centre
	Radius    float64
	ExpiresAt time.Time
}

// Rect returns the power-up's bounding square.
func (p PowerUp) Rect() Rect {
	return Rect{X: p.X - p.Radius, Y: p.Y - p.Radius, W: 2 * p.Radius, H: 2 * p.Radius}
}

// PowerUpManager owns the set of active power-ups. A power-up leaves the set
// exactly once: when it expires or when the ball consumes it.
type PowerUpManager struct {
	params Params
	rng    Rand
	clock  Clock
	audio  Audio
	active []PowerUp
	nextID uint64
}

// NewPowerUpManager builds an empty manager. A nil audio is replaced by a
// silent one.
func NewPowerUpManager(params Params, rng Rand, clock Clock, audio Audio) *PowerUpManager {
	if audio == nil {
		audio = nopAudio{}
	}
	if clock == nil {
		clock = time.Now
	}
	return &PowerUpManager{
		params: params,
		rng:    rng,
		clock:  clock,
		audio:  audio,
	}
}

// TrySpawn rolls the per-tick spawn chance and, on success, places a power-up
// uniformly at random inside the playfield. Nothing is drawn from the random
// source while power-ups are disabled.
func (m *PowerUpManager) TrySpawn(enabled bool) (PowerUp, bool) {
	if !enabled {
		return PowerUp{}, false
	}
	if m.rng.Float64() >= m.params.PowerUpChance {
		return PowerUp{}, false
	}
	m.nextID++
	p := PowerUp{
		ID:        m.nextID,
		X:         m.rng.Float64() * m.params.Width,
		Y:         m.rng.Float64() * m.params.Height,
		Radius:    m.params.PowerUpRadius,
		ExpiresAt: m.clock().Add(m.params.PowerUpLifetime),
	}
	m.active = append(m.active, p)
	return p, true
}

// Expire drops every power-up whose lifetime has run out and returns them.
func (m *PowerUpManager) Expire() []PowerUp {
	now := m.clock()
	var expired []PowerUp
	kept := m.active[:0]
	for _, p := range m.active {
		if !now.Before(p.ExpiresAt) {
			expired = append(expired, p)
			continue
		}
		kept = append(kept, p)
	}
	m.active = kept
	return expired
}

// Remove deletes the power-up with the given ID. Removing one that is already
// gone is a no-op and reports false.
func (m *PowerUpManager) Remove(id uint64) bool {
	for i, p := range m.active {
		if p.ID == id {
			m.active = append(m.active[:i], m.active[i+1:]...)
			return true
		}
	}
	return false
}

// Consume checks every active power-up against the ball. Each one hit plays
// the pickup sound, adds PowerUpBoost to the ball speed and is removed. Any
// number can be taken in one call.
func (m *PowerUpManager) Consume(b *Ball) []PowerUp {
	var taken []PowerUp
	kept := m.active[:0]
	for _, p := range m.active {
		if Collides(*b, p.Rect()) {
			m.audio.Play(SoundPowerUp)
			b.Speed += m.params.PowerUpBoost
			taken = append(taken, p)
			continue
		}
		kept = append(kept, p)
	}
	m.active = kept
	return taken
}

// Active returns a copy of the live power-ups.
func (m *PowerUpManager) Active() []PowerUp {
	out := make([]PowerUp, len(m.active))
	copy(out, m.active)
	return out
}

// Len is the number of live power-ups.
func (m *PowerUpManager) Len() int {
	return len(m.active)
}
