// Package highscore persists the best score per side between sessions.
package highscore

import (
	"context"
	"errors"
	"fmt"

	"github.com/Garsondee/pong/internal/pong"
)

// ErrUnknownBackend is returned by Open for an unrecognised backend name.
var ErrUnknownBackend = errors.New("unknown high score backend")

// Store loads and saves the high score pair. A store with nothing saved yet
// returns the zero pair and no error.
type Store interface {
	Load(ctx context.Context) (pong.HighScores, error)
	Save(ctx context.Context, h pong.HighScores) error
}

// Backend names accepted by Open.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Options selects and configures a backend.
type Options struct {
	Backend  string
	Path     string // file backend
	RedisURL string // redis backend
	RedisKey string // redis backend; DefaultRedisKey when empty
}

// Open builds the store named by opts.Backend.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case BackendFile, "":
		return NewFileStore(opts.Path), nil
	case BackendRedis:
		client, err := Connect(ctx, opts.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("open redis high scores: %w", err)
		}
		return NewRedisStore(client, opts.RedisKey), nil
	case BackendNone:
		return NopStore{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
}

// Record merges the final scores into the stored pair and saves it when
// either side improved. It returns the pair now on record.
func Record(ctx context.Context, s Store, player, opponent uint) (pong.HighScores, error) {
	prev, err := s.Load(ctx)
	if err != nil {
		return prev, err
	}
	next := prev.Merge(player, opponent)
	if next == prev {
		return prev, nil
	}
	if err := s.Save(ctx, next); err != nil {
		return prev, err
	}
	return next, nil
}

// NopStore never remembers anything.
type NopStore struct{}

func (NopStore) Load(context.Context) (pong.HighScores, error) { return pong.HighScores{}, nil }
func (NopStore) Save(context.Context, pong.HighScores) error   { return nil }
