package highscore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Garsondee/pong/internal/pong"
)

func TestFileStore_MissingFileIsZero(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "nope", "scores.toml"))
	h, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h != (pong.HighScores{}) {
		t.Fatalf("expected zero pair, got %+v", h)
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pong", "scores.toml")
	s := NewFileStore(path)
	ctx := context.Background()
	want := pong.HighScores{Player: 7, Opponent: 11}
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(raw), "[high_scores]") {
		t.Fatalf("unexpected file contents:\n%s", raw)
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.toml")
	if err := os.WriteFile(path, []byte("[high_scores\nplayer = ="), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileStore(path).Load(context.Background()); err == nil {
		t.Fatal("expected a decode error for a corrupt file")
	}
}

func TestRecord_OnlySavesImprovements(t *testing.T) {
	ctx := context.Background()
	s := NewFileStore(filepath.Join(t.TempDir(), "scores.toml"))
	if err := s.Save(ctx, pong.HighScores{Player: 5, Opponent: 5}); err != nil {
		t.Fatal(err)
	}

	h, err := Record(ctx, s, 3, 8)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if h != (pong.HighScores{Player: 5, Opponent: 8}) {
		t.Fatalf("unexpected merged pair %+v", h)
	}
	stored, _ := s.Load(ctx)
	if stored != h {
		t.Fatalf("merged pair not persisted: %+v", stored)
	}

	h, err = Record(ctx, s, 1, 1)
	if err != nil || h != stored {
		t.Fatalf("no improvement should keep %+v, got %+v (err=%v)", stored, h, err)
	}
}

func TestOpen_Backends(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, Options{Backend: BackendNone})
	if err != nil {
		t.Fatalf("none backend: %v", err)
	}
	if _, ok := s.(NopStore); !ok {
		t.Fatalf("expected NopStore, got %T", s)
	}

	path := filepath.Join(t.TempDir(), "x.toml")
	s, err = Open(ctx, Options{Backend: BackendFile, Path: path})
	if err != nil {
		t.Fatalf("file backend: %v", err)
	}
	if fs, ok := s.(*FileStore); !ok || fs.Path() != path {
		t.Fatalf("expected file store at %s, got %T", path, s)
	}

	if _, err := Open(ctx, Options{Backend: "sqlite"}); !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("expected ErrUnknownBackend, got %v", err)
	}
	if _, err := Open(ctx, Options{Backend: BackendRedis, RedisURL: "not a url"}); err == nil {
		t.Fatal("expected an error for a malformed redis url")
	}
}

func TestParseField(t *testing.T) {
	vals := []interface{}{"12", nil}
	if n, err := parseField(vals, 0); err != nil || n != 12 {
		t.Fatalf("expected 12, got %d (err=%v)", n, err)
	}
	if n, err := parseField(vals, 1); err != nil || n != 0 {
		t.Fatalf("nil field should be 0, got %d (err=%v)", n, err)
	}
	if _, err := parseField([]interface{}{"-3"}, 0); err == nil {
		t.Fatal("negative score should fail to parse")
	}
	if _, err := parseField([]interface{}{42}, 0); err == nil {
		t.Fatal("non-string field should be rejected")
	}
}
