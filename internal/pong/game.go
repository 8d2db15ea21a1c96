package pong

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Settings are the switches the player flips between ticks.
type Settings struct {
	Multiplayer     bool // both paddles are driven by local input; no AI
	PowerUpsEnabled bool
	Difficulty      Difficulty
}

// DefaultSettings is single player, no power-ups, medium AI.
func DefaultSettings() Settings {
	return Settings{Difficulty: DifficultyMedium}
}

// Labels are the control captions shown by front-ends.
func (s Settings) Labels() []string {
	return []string{
		"Multiplayer: " + onOff(s.Multiplayer),
		"Power-ups: " + onOff(s.PowerUpsEnabled),
		"Difficulty: " + s.Difficulty.String(),
	}
}

// HighScores is the persisted best score for each side.
type HighScores struct {
	Player   uint `toml:"player"`
	Opponent uint `toml:"opponent"`
}

// Merge keeps the larger value per side.
func (h HighScores) Merge(player, opponent uint) HighScores {
	if player > h.Player {
		h.Player = player
	}
	if opponent > h.Opponent {
		h.Opponent = opponent
	}
	return h
}

// Game is the whole simulation state: both paddles, the ball, the power-ups
// and the settings. Step advances it by one tick. Game is not safe for
// concurrent use; the owning loop serialises every call.
type Game struct {
	Player   Paddle
	Opponent Paddle
	Ball     Ball
	PowerUps *PowerUpManager

	params     Params
	settings   Settings
	highScores HighScores
	audio      Audio
	rng        Rand
	clock      Clock
	log        *SimLog
	tick       int
}

// Option configures a Game at construction.
type Option func(*Game)

// WithRand sets the random source used for power-up spawning.
func WithRand(r Rand) Option {
	return func(g *Game) { g.rng = r }
}

// WithSeed seeds a private *rand.Rand for deterministic runs.
func WithSeed(seed int64) Option {
	return func(g *Game) {
		g.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- gameplay only
	}
}

// WithClock sets the clock power-up lifetimes are measured against.
func WithClock(c Clock) Option {
	return func(g *Game) { g.clock = c }
}

// WithAudio sets the sound effect sink.
func WithAudio(a Audio) Option {
	return func(g *Game) { g.audio = a }
}

// WithSimLog records gameplay events into sl.
func WithSimLog(sl *SimLog) Option {
	return func(g *Game) { g.log = sl }
}

// WithSettings sets the initial switches.
func WithSettings(s Settings) Option {
	return func(g *Game) { g.settings = s }
}

// WithHighScores sets the high scores loaded at startup.
func WithHighScores(h HighScores) Option {
	return func(g *Game) { g.highScores = h }
}

// NewGame lays out a fresh table: paddles centred on their baselines, ball in
// the middle heading down-right.
func NewGame(params Params, opts ...Option) *Game {
	g := &Game{
		params:   params,
		settings: DefaultSettings(),
		audio:    nopAudio{},
		clock:    time.Now,
	}
	for _, o := range opts {
		o(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404 -- gameplay only
	}
	if g.audio == nil {
		g.audio = nopAudio{}
	}
	g.Player = newPaddle(SidePlayer, params)
	g.Opponent = newPaddle(SideOpponent, params)
	g.Ball = newBall(params)
	g.PowerUps = NewPowerUpManager(params, g.rng, g.clock, g.audio)
	return g
}

// Step advances the simulation by one tick.
func (g *Game) Step() {
	g.tick++
	b := &g.Ball

	// 1. Integrate.
	b.X += b.VelocityX
	b.Y += b.VelocityY

	// 2. Power-up lifetime and spawning.
	for _, p := range g.PowerUps.Expire() {
		g.log.Add(g.tick, "--", CatPowerUp, KeyExpire, fmt.Sprintf("#%d at (%.0f,%.0f)", p.ID, p.X, p.Y), 0)
	}
	if p, ok := g.PowerUps.TrySpawn(g.settings.PowerUpsEnabled); ok {
		g.log.Add(g.tick, "--", CatPowerUp, KeySpawn, fmt.Sprintf("#%d at (%.0f,%.0f)", p.ID, p.X, p.Y), 0)
	}

	// 3. Computer opponent.
	if !g.settings.Multiplayer {
		Track(&g.Opponent, b.Y, g.params.Gain(g.settings.Difficulty))
	}

	// 4. Top and bottom walls. No positional correction.
	if b.Y+b.Radius > g.params.Height || b.Y-b.Radius < 0 {
		b.VelocityY = -b.VelocityY
		g.audio.Play(SoundWall)
		g.log.Add(g.tick, "--", CatWall, KeyBounce, fmt.Sprintf("y=%.1f vy=%.2f", b.Y, b.VelocityY), b.Y)
	}

	// 5. Paddle on the ball's half of the table.
	side, paddle := SidePlayer, &g.Player
	if b.X >= g.params.MidX() {
		side, paddle = SideOpponent, &g.Opponent
	}
	if Collides(*b, paddle.Rect()) {
		g.bounce(side, paddle)
	}

	// 6. Goals.
	if b.X-b.Radius < 0 {
		g.score(SideOpponent)
	} else if b.X+b.Radius > g.params.Width {
		g.score(SidePlayer)
	}

	// 7. Pickups.
	if g.settings.PowerUpsEnabled {
		for _, p := range g.PowerUps.Consume(b) {
			g.log.Add(g.tick, "--", CatPowerUp, KeyConsume, fmt.Sprintf("#%d speed %.1f", p.ID, b.Speed), b.Speed)
		}
	}

	g.log.AddVerbose(g.tick, "--", CatBall, KeyState,
		fmt.Sprintf("(%.1f,%.1f) v=(%.2f,%.2f)", b.X, b.Y, b.VelocityX, b.VelocityY), b.Speed)
}

// bounce sends the ball back off paddle. The further from the paddle centre
// the hit lands, the steeper the return angle.
func (g *Game) bounce(side Side, paddle *Paddle) {
	b := &g.Ball
	g.audio.Play(SoundHit)

	collidePoint := (b.Y - paddle.CenterY()) / (paddle.Height / 2)
	if g.params.ClampCollidePoint {
		collidePoint = math.Max(-1, math.Min(1, collidePoint))
	}
	angle := g.params.MaxBounceAngle * collidePoint

	direction := 1.0
	if side == SideOpponent {
		direction = -1
	}
	b.VelocityX = direction * b.Speed * math.Cos(angle)
	b.VelocityY = b.Speed * math.Sin(angle)
	b.Speed += g.params.PaddleSpeedUp

	g.log.Add(g.tick, side.Label(), CatPaddle, KeyHit,
		fmt.Sprintf("offset %.2f speed %.1f", collidePoint, b.Speed), b.Speed)
}

func (g *Game) score(side Side) {
	if side == SidePlayer {
		g.Player.Score++
	} else {
		g.Opponent.Score++
	}
	g.audio.Play(SoundScore)
	g.log.Add(g.tick, side.Label(), CatScore, KeyPoint,
		fmt.Sprintf("%d-%d peak %.1f", g.Player.Score, g.Opponent.Score, g.Ball.Speed), g.Ball.Speed)
	g.Ball.reset(g.params)
}

// ToggleMultiplayer flips AI control of the opponent paddle and returns the
// new state.
func (g *Game) ToggleMultiplayer() bool {
	g.settings.Multiplayer = !g.settings.Multiplayer
	g.log.Add(g.tick, "--", CatSetting, KeyChange, fmt.Sprintf("multiplayer %s", onOff(g.settings.Multiplayer)), 0)
	return g.settings.Multiplayer
}

// TogglePowerUps flips power-up spawning and consumption and returns the new
// state. Power-ups already on the table stay until they expire.
func (g *Game) TogglePowerUps() bool {
	g.settings.PowerUpsEnabled = !g.settings.PowerUpsEnabled
	g.log.Add(g.tick, "--", CatSetting, KeyChange, fmt.Sprintf("power-ups %s", onOff(g.settings.PowerUpsEnabled)), 0)
	return g.settings.PowerUpsEnabled
}

// SetDifficulty changes the AI tracking gain.
func (g *Game) SetDifficulty(d Difficulty) {
	g.settings.Difficulty = d
	g.log.Add(g.tick, "--", CatSetting, KeyChange, fmt.Sprintf("difficulty %s", d), 0)
}

// CenterPaddle moves a paddle so its centre sits at y, the way a pointer
// drives it. No clamping.
func (g *Game) CenterPaddle(side Side, y float64) {
	p := g.paddle(side)
	p.Y = y - p.Height/2
}

// NudgePaddle moves a paddle by dy.
func (g *Game) NudgePaddle(side Side, dy float64) {
	p := g.paddle(side)
	p.Y += dy
}

func (g *Game) paddle(side Side) *Paddle {
	if side == SideOpponent {
		return &g.Opponent
	}
	return &g.Player
}

// Settings returns the current switches.
func (g *Game) Settings() Settings { return g.settings }

// Params returns the table parameters.
func (g *Game) Params() Params { return g.params }

// HighScores returns the high scores loaded at startup.
func (g *Game) HighScores() HighScores { return g.highScores }

// Tick returns how many times Step has run.
func (g *Game) Tick() int { return g.tick }

// Log returns the event log, possibly nil.
func (g *Game) Log() *SimLog { return g.log }

// Frame snapshots everything a renderer needs.
func (g *Game) Frame() Frame {
	return Frame{
		Tick:       g.tick,
		Width:      g.params.Width,
		Height:     g.params.Height,
		Player:     g.Player,
		Opponent:   g.Opponent,
		Ball:       g.Ball,
		PowerUps:   g.PowerUps.Active(),
		Settings:   g.settings,
		HighScores: g.highScores,
	}
}

// Frame is a value copy of the table taken at the start of a tick.
type Frame struct {
	Tick          int
	Width, Height float64
	Player        Paddle
	Opponent      Paddle
	Ball          Ball
	PowerUps      []PowerUp
	Settings      Settings
	HighScores    HighScores
	Running       bool
}

// Scoreboard is the one-line high score caption.
func (f Frame) Scoreboard() string {
	return fmt.Sprintf("High Scores: Player - %d, Computer - %d", f.HighScores.Player, f.HighScores.Opponent)
}

func onOff(v bool) string {
	if v {
		return "ON"
	}
	return "OFF"
}

// SetHighScores replaces the displayed high scores, typically after the host
// has persisted a new record.
func (g *Game) SetHighScores(h HighScores) { g.highScores = h }
