// Package config loads game settings from a TOML file, a .env file and
// PONG_* environment variables, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/Garsondee/pong/internal/highscore"
	"github.com/Garsondee/pong/internal/pong"
)

// DefaultFile is read when no path is given and PONG_CONFIG is unset.
const DefaultFile = "pong.toml"

type Config struct {
	Table     Table     `toml:"table"`
	Ball      Ball      `toml:"ball"`
	PowerUps  PowerUps  `toml:"power_ups"`
	Opponent  Opponent  `toml:"opponent"`
	Game      Game      `toml:"game"`
	HighScore HighScore `toml:"high_scores"`
	Audio     Audio     `toml:"audio"`
	Window    Window    `toml:"window"`
}

type Table struct {
	Width        float64 `toml:"width"`
	Height       float64 `toml:"height"`
	PaddleWidth  float64 `toml:"paddle_width"`
	PaddleHeight float64 `toml:"paddle_height"`
}

type Ball struct {
	Radius            float64 `toml:"radius"`
	BaseSpeed         float64 `toml:"base_speed"`
	VelocityX         float64 `toml:"velocity_x"`
	VelocityY         float64 `toml:"velocity_y"`
	PaddleSpeedUp     float64 `toml:"paddle_speed_up"`
	MaxBounceDegrees  float64 `toml:"max_bounce_degrees"`
	ClampCollidePoint bool    `toml:"clamp_collide_point"`
}

type PowerUps struct {
	Enabled         bool    `toml:"enabled"`
	Radius          float64 `toml:"radius"`
	Chance          float64 `toml:"chance"`
	LifetimeSeconds float64 `toml:"lifetime_seconds"`
	Boost           float64 `toml:"boost"`
}

type Opponent struct {
	Difficulty string  `toml:"difficulty"`
	EasyGain   float64 `toml:"easy_gain"`
	MediumGain float64 `toml:"medium_gain"`
	HardGain   float64 `toml:"hard_gain"`
}

type Game struct {
	Multiplayer bool    `toml:"multiplayer"`
	TickRate    int     `toml:"tick_rate"`
	KeyStep     float64 `toml:"key_step"` // paddle movement per tick for keyboard control
}

type HighScore struct {
	Backend  string `toml:"backend"`
	Path     string `toml:"path"`
	RedisURL string `toml:"redis_url"`
	RedisKey string `toml:"redis_key"`
}

type Audio struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"` // beep volume exponent, 0 = unchanged
}

type Window struct {
	Title string `toml:"title"`
	Scale int    `toml:"scale"`
}

// Default mirrors pong.DefaultParams and pong.DefaultSettings.
func Default() *Config {
	p := pong.DefaultParams()
	return &Config{
		Table: Table{
			Width:        p.Width,
			Height:       p.Height,
			PaddleWidth:  p.PaddleWidth,
			PaddleHeight: p.PaddleHeight,
		},
		Ball: Ball{
			Radius:           p.BallRadius,
			BaseSpeed:        p.BaseSpeed,
			VelocityX:        p.InitialVelocityX,
			VelocityY:        p.InitialVelocityY,
			PaddleSpeedUp:    p.PaddleSpeedUp,
			MaxBounceDegrees: 45,
		},
		PowerUps: PowerUps{
			Radius:          p.PowerUpRadius,
			Chance:          p.PowerUpChance,
			LifetimeSeconds: p.PowerUpLifetime.Seconds(),
			Boost:           p.PowerUpBoost,
		},
		Opponent: Opponent{
			Difficulty: pong.DifficultyMedium.String(),
			EasyGain:   p.Gains[pong.DifficultyEasy],
			MediumGain: p.Gains[pong.DifficultyMedium],
			HardGain:   p.Gains[pong.DifficultyHard],
		},
		Game: Game{
			TickRate: p.TickRate,
			KeyStep:  8,
		},
		HighScore: HighScore{
			Backend: highscore.BackendFile,
			Path:    highscore.DefaultPath(),
		},
		Audio: Audio{Enabled: true},
		Window: Window{
			Title: "Pong",
			Scale: 1,
		},
	}
}

// Load reads path (or PONG_CONFIG, or DefaultFile) over the defaults, then
// applies environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	// .env is optional.
	_ = godotenv.Load()

	if path == "" {
		path = getEnv("PONG_CONFIG", DefaultFile)
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Opponent.Difficulty = getEnv("PONG_DIFFICULTY", c.Opponent.Difficulty)
	c.Game.Multiplayer = getEnvBool("PONG_MULTIPLAYER", c.Game.Multiplayer)
	c.Game.TickRate = getEnvInt("PONG_TICK_RATE", c.Game.TickRate)
	c.PowerUps.Enabled = getEnvBool("PONG_POWER_UPS", c.PowerUps.Enabled)
	c.HighScore.Backend = getEnv("PONG_HIGHSCORE_BACKEND", c.HighScore.Backend)
	c.HighScore.Path = getEnv("PONG_HIGHSCORE_PATH", c.HighScore.Path)
	c.HighScore.RedisURL = getEnv("PONG_REDIS_URL", c.HighScore.RedisURL)
	c.HighScore.RedisKey = getEnv("PONG_REDIS_KEY", c.HighScore.RedisKey)
	c.Audio.Enabled = getEnvBool("PONG_AUDIO", c.Audio.Enabled)
}

// Validate rejects values the simulation cannot run with.
func (c *Config) Validate() error {
	if _, err := pong.ParseDifficulty(c.Opponent.Difficulty); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Table.Width <= 0 || c.Table.Height <= 0 {
		return fmt.Errorf("config: table must have positive size, got %gx%g", c.Table.Width, c.Table.Height)
	}
	if c.Table.PaddleHeight <= 0 || c.Table.PaddleWidth <= 0 {
		return fmt.Errorf("config: paddle must have positive size, got %gx%g", c.Table.PaddleWidth, c.Table.PaddleHeight)
	}
	if c.Ball.Radius <= 0 {
		return fmt.Errorf("config: ball radius must be positive, got %g", c.Ball.Radius)
	}
	if c.Game.TickRate <= 0 {
		return fmt.Errorf("config: tick rate must be positive, got %d", c.Game.TickRate)
	}
	if c.PowerUps.Chance < 0 || c.PowerUps.Chance > 1 {
		return fmt.Errorf("config: power-up chance must be within [0,1], got %g", c.PowerUps.Chance)
	}
	return nil
}

// Params converts the config to simulation parameters.
func (c *Config) Params() pong.Params {
	p := pong.DefaultParams()
	p.Width = c.Table.Width
	p.Height = c.Table.Height
	p.PaddleWidth = c.Table.PaddleWidth
	p.PaddleHeight = c.Table.PaddleHeight
	p.BallRadius = c.Ball.Radius
	p.BaseSpeed = c.Ball.BaseSpeed
	p.InitialVelocityX = c.Ball.VelocityX
	p.InitialVelocityY = c.Ball.VelocityY
	p.PaddleSpeedUp = c.Ball.PaddleSpeedUp
	p.MaxBounceAngle = c.Ball.MaxBounceDegrees * math.Pi / 180
	p.ClampCollidePoint = c.Ball.ClampCollidePoint
	p.PowerUpRadius = c.PowerUps.Radius
	p.PowerUpChance = c.PowerUps.Chance
	p.PowerUpLifetime = time.Duration(c.PowerUps.LifetimeSeconds * float64(time.Second))
	p.PowerUpBoost = c.PowerUps.Boost
	p.TickRate = c.Game.TickRate
	p.Gains[pong.DifficultyEasy] = c.Opponent.EasyGain
	p.Gains[pong.DifficultyMedium] = c.Opponent.MediumGain
	p.Gains[pong.DifficultyHard] = c.Opponent.HardGain
	return p
}

// Settings returns the initial switches. Call Validate first; an invalid
// difficulty falls back to medium.
func (c *Config) Settings() pong.Settings {
	d, err := pong.ParseDifficulty(c.Opponent.Difficulty)
	if err != nil {
		d = pong.DifficultyMedium
	}
	return pong.Settings{
		Multiplayer:     c.Game.Multiplayer,
		PowerUpsEnabled: c.PowerUps.Enabled,
		Difficulty:      d,
	}
}

// HighScoreOptions converts the high score section for highscore.Open.
func (c *Config) HighScoreOptions() highscore.Options {
	return highscore.Options{
		Backend:  c.HighScore.Backend,
		Path:     c.HighScore.Path,
		RedisURL: c.HighScore.RedisURL,
		RedisKey: c.HighScore.RedisKey,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "on", "yes":
		return true
	case "0", "false", "off", "no":
		return false
	}
	return defaultValue
}
