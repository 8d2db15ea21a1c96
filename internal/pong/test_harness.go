package pong

import (
	"math/rand"
	"time"
)

// TestSim is a headless harness around Game and Loop. It uses a manual clock
// that advances one tick interval per tick, a seeded random source and a
// SimLog, so runs are reproducible.
type TestSim struct {
	Game   *Game
	Loop   *Loop
	SimLog *SimLog
	Clock  *ManualClock
	Audio  *SoundCounter
	Frames []Frame // filled only with WithFrameCapture

	params       Params
	settings     Settings
	highScores   HighScores
	rng          Rand
	autopilot    bool
	autopilotFor Difficulty
	capture      bool
}

// ManualClock is a Clock that only moves when told to.
type ManualClock struct {
	now time.Time
}

// NewManualClock starts a clock at a fixed instant.
func NewManualClock() *ManualClock {
	return &ManualClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the current manual time.
func (c *ManualClock) Now() time.Time { return c.now }

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// SoundCounter is an Audio that counts plays per sound.
type SoundCounter struct {
	Counts map[Sound]int
}

// Play records one play of s.
func (sc *SoundCounter) Play(s Sound) {
	if sc.Counts == nil {
		sc.Counts = map[Sound]int{}
	}
	sc.Counts[s]++
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra  simOptionKind = iota // params, seed, settings, verbose: applied before the game exists
	simOptEntity                      // ball and paddle placement: applied after
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithParams replaces the default table parameters.
func WithParams(p Params) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.params = p
	}}
}

// WithSimSeed sets the RNG seed for deterministic runs.
func WithSimSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- test harness
	}}
}

// WithSimRand injects a random source directly.
func WithSimRand(r Rand) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.rng = r
	}}
}

// WithVerbose enables per-tick ball logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.SimLog = NewSimLog(v)
	}}
}

// WithSimSettings sets the initial switches.
func WithSimSettings(s Settings) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.settings = s
	}}
}

// WithSimHighScores sets the startup high scores.
func WithSimHighScores(h HighScores) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.highScores = h
	}}
}

// WithPlayerAutopilot lets the player paddle track the ball with the gain of
// difficulty d, standing in for mouse input.
func WithPlayerAutopilot(d Difficulty) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.autopilot = true
		ts.autopilotFor = d
	}}
}

// WithFrameCapture stores every rendered frame in Frames.
func WithFrameCapture() SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.capture = true
	}}
}

// WithBall places the ball and sets its velocity. Speed is left at the base.
func WithBall(x, y, vx, vy float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		b := &ts.Game.Ball
		b.X, b.Y = x, y
		b.VelocityX, b.VelocityY = vx, vy
	}}
}

// WithBallSpeed overrides the ball's scalar speed.
func WithBallSpeed(speed float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.Game.Ball.Speed = speed
	}}
}

// WithPaddleY sets the top edge of a paddle.
func WithPaddleY(side Side, y float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.Game.paddle(side).Y = y
	}}
}

// NewTestSim constructs a running TestSim from the given options in two
// ordered passes:
//  1. Infrastructure (params, seed, settings, verbose)
//  2. Ball and paddle placement
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		params:   DefaultParams(),
		settings: DefaultSettings(),
		SimLog:   NewSimLog(false),
		Clock:    NewManualClock(),
		Audio:    &SoundCounter{},
		rng:      rand.New(rand.NewSource(1)), // #nosec G404 -- test harness default
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	ts.Game = NewGame(ts.params,
		WithRand(ts.rng),
		WithClock(ts.Clock.Now),
		WithAudio(ts.Audio),
		WithSimLog(ts.SimLog),
		WithSettings(ts.settings),
		WithHighScores(ts.highScores),
	)
	for _, o := range opts {
		if o.kind == simOptEntity {
			o.fn(ts)
		}
	}
	var r Renderer
	if ts.capture {
		r = RendererFunc(func(f Frame) { ts.Frames = append(ts.Frames, f) })
	}
	ts.Loop = NewLoop(ts.Game, r)
	ts.Loop.Start()
	return ts
}

// RunTicks advances the simulation n ticks.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.runOneTick()
	}
}

// RunUntil advances the simulation up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.runOneTick()
		if predicate(ts) {
			return ts.Game.Tick()
		}
	}
	return -1
}

func (ts *TestSim) runOneTick() {
	if ts.autopilot {
		Track(&ts.Game.Player, ts.Game.Ball.Y, ts.params.Gain(ts.autopilotFor))
	}
	ts.Loop.Tick()
	ts.Clock.Advance(ts.params.TickInterval())
}

// CurrentTick returns the current simulation tick.
func (ts *TestSim) CurrentTick() int {
	return ts.Game.Tick()
}

// Report summarises the run so far.
func (ts *TestSim) Report() MatchReport {
	return BuildMatchReport(ts.SimLog.Entries(), ts.Game.Player.Score, ts.Game.Opponent.Score)
}
