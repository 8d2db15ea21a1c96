package highscore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/Garsondee/pong/internal/pong"
)

// DefaultPath is ~/.config/pong/highscores.toml.
func DefaultPath() string {
	h, err := os.UserHomeDir()
	if err != nil {
		return "highscores.toml"
	}
	return filepath.Join(h, ".config", "pong", "highscores.toml")
}

// FileStore keeps the pair in a small TOML file.
type FileStore struct {
	path string
}

// NewFileStore uses path, or DefaultPath when path is empty.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultPath()
	}
	return &FileStore{path: path}
}

// Path is the backing file.
func (s *FileStore) Path() string { return s.path }

type highScoresFile struct {
	HighScores pong.HighScores `toml:"high_scores"`
}

// Load reads the file. A missing file yields the zero pair.
func (s *FileStore) Load(context.Context) (pong.HighScores, error) {
	var f highScoresFile
	if _, err := toml.DecodeFile(s.path, &f); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return pong.HighScores{}, nil
		}
		return pong.HighScores{}, fmt.Errorf("read high scores %s: %w", s.path, err)
	}
	return f.HighScores, nil
}

// Save writes the file atomically via a temp file and rename.
func (s *FileStore) Save(_ context.Context, h pong.HighScores) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create high score dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".highscores-*.toml")
	if err != nil {
		return fmt.Errorf("create temp high score file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := toml.NewEncoder(tmp).Encode(highScoresFile{HighScores: h}); err != nil {
		tmp.Close()
		return fmt.Errorf("encode high scores: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp high score file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace high score file: %w", err)
	}
	return nil
}
