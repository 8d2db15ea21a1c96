package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/pong/internal/config"
	"github.com/Garsondee/pong/internal/highscore"
	"github.com/Garsondee/pong/internal/pong"
	"github.com/Garsondee/pong/internal/term"
)

func main() {
	configPath := flag.String("config", "", "TOML config file (default $PONG_CONFIG or pong.toml)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		log.Fatal(err)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	store, err := highscore.Open(ctx, cfg.HighScoreOptions())
	if err != nil {
		return err
	}
	if rs, ok := store.(*highscore.RedisStore); ok {
		defer rs.Close()
	}
	high, err := store.Load(ctx)
	if err != nil {
		log.Printf("high scores unavailable: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	settings := cfg.Settings()
	g := pong.NewGame(cfg.Params(),
		pong.WithSeed(time.Now().UnixNano()),
		pong.WithSettings(settings),
		pong.WithHighScores(high),
	)
	r := term.NewRenderer(screen)
	loop := pong.NewLoop(g, r)
	loop.OnStop = func(g *pong.Game) { record(store, g) }

	in := term.NewInput(screen, cfg.Table.Height, cfg.Game.KeyStep, settings.Multiplayer)
	err = term.Run(ctx, screen, loop, r, in, clipboard.WriteAll)
	record(store, g)
	return err
}

// record saves improved high scores and refreshes the displayed pair.
func record(store highscore.Store, g *pong.Game) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	h, err := highscore.Record(ctx, store, g.Player.Score, g.Opponent.Score)
	if err != nil {
		log.Printf("save high scores: %v", err)
		return
	}
	g.SetHighScores(h)
}
