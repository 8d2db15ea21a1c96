package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/pong/internal/audio"
	"github.com/Garsondee/pong/internal/config"
	"github.com/Garsondee/pong/internal/game"
	"github.com/Garsondee/pong/internal/highscore"
	"github.com/Garsondee/pong/internal/pong"
)

func main() {
	configPath := flag.String("config", "", "TOML config file (default $PONG_CONFIG or pong.toml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	store, err := highscore.Open(ctx, cfg.HighScoreOptions())
	if err != nil {
		log.Fatal(err)
	}
	if rs, ok := store.(*highscore.RedisStore); ok {
		defer rs.Close()
	}
	high, err := store.Load(ctx)
	if err != nil {
		log.Printf("high scores unavailable: %v", err)
	}

	var sound pong.Audio
	if cfg.Audio.Enabled {
		sm := audio.NewSoundManager(cfg.Audio.Volume)
		if err := sm.Initialize(); err != nil {
			log.Printf("audio disabled: %v", err)
		} else {
			defer sm.Cleanup()
			sound = sm
		}
	}

	g := game.New(game.Config{
		Params:     cfg.Params(),
		Settings:   cfg.Settings(),
		HighScores: high,
		Store:      store,
		Audio:      sound,
		Seed:       time.Now().UnixNano(),
		KeyStep:    cfg.Game.KeyStep,
	})

	w, h := g.Size()
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(w*cfg.Window.Scale, h*cfg.Window.Scale)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(cfg.Game.TickRate)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
