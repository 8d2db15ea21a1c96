package highscore

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/Garsondee/pong/internal/pong"
)

// DefaultRedisKey is the hash that holds the pair.
const DefaultRedisKey = "pong:high-scores"

const (
	fieldPlayer   = "player"
	fieldOpponent = "opponent"
)

// Connect parses redisURL and pings the server.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return client, nil
}

// RedisStore keeps the pair in a Redis hash, so several machines can share a
// leaderboard.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore stores under key, or DefaultRedisKey when key is empty.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

// Load reads both fields. Missing fields count as zero.
func (s *RedisStore) Load(ctx context.Context) (pong.HighScores, error) {
	vals, err := s.client.HMGet(ctx, s.key, fieldPlayer, fieldOpponent).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return pong.HighScores{}, fmt.Errorf("redis hmget %s: %w", s.key, err)
	}
	var h pong.HighScores
	if h.Player, err = parseField(vals, 0); err != nil {
		return pong.HighScores{}, err
	}
	if h.Opponent, err = parseField(vals, 1); err != nil {
		return pong.HighScores{}, err
	}
	return h, nil
}

// Save overwrites both fields.
func (s *RedisStore) Save(ctx context.Context, h pong.HighScores) error {
	err := s.client.HSet(ctx, s.key,
		fieldPlayer, strconv.FormatUint(uint64(h.Player), 10),
		fieldOpponent, strconv.FormatUint(uint64(h.Opponent), 10),
	).Err()
	if err != nil {
		return fmt.Errorf("redis hset %s: %w", s.key, err)
	}
	return nil
}

// Close releases the client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func parseField(vals []interface{}, i int) (uint, error) {
	if i >= len(vals) || vals[i] == nil {
		return 0, nil
	}
	str, ok := vals[i].(string)
	if !ok {
		return 0, fmt.Errorf("high score field %d: unexpected type %T", i, vals[i])
	}
	n, err := strconv.ParseUint(str, 10, 0)
	if err != nil {
		return 0, fmt.Errorf("high score field %d: %w", i, err)
	}
	return uint(n), nil
}
