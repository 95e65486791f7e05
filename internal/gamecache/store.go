package gamecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"twitch/internal/catalog"
	"twitch/internal/fileutil"
	"twitch/internal/logging"
)

var (
	// ErrCacheMissing indicates no cache file has been written yet.
	ErrCacheMissing = errors.New("game cache missing")
	// ErrCacheCorrupt indicates the cache file exists but does not parse.
	ErrCacheCorrupt = errors.New("game cache corrupt")
)

const lockRetryDelay = 50 * time.Millisecond

// Store reads and writes the cache file.
type Store struct {
	path   string
	logger *slog.Logger
}

// NewStore returns a Store for the cache file at path.
func NewStore(path string, logger *slog.Logger) *Store {
	return &Store{
		path:   path,
		logger: logging.NewComponentLogger(logger, "gamecache"),
	}
}

// Path returns the cache file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the cached games in file order.
func (s *Store) Load() ([]catalog.Game, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", s.path, ErrCacheMissing)
		}
		return nil, fmt.Errorf("read cache: %w", err)
	}

	var games []catalog.Game
	if err := json.Unmarshal(data, &games); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", s.path, ErrCacheCorrupt, err)
	}
	s.logger.Debug("game cache loaded",
		logging.String(logging.FieldPath, s.path),
		logging.Int("games", len(games)))
	return games, nil
}

// Save replaces the cache file with games.
func (s *Store) Save(ctx context.Context, games []catalog.Game) error {
	if games == nil {
		games = []catalog.Game{}
	}
	data, err := json.MarshalIndent(games, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	lock := flock.New(s.path + ".lock")
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("acquire cache lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("acquire cache lock: %s busy", lock.Path())
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			s.logger.Debug("release cache lock failed", logging.Error(err))
		}
	}()

	if err := fileutil.WriteFileAtomic(s.path, data, 0o644); err != nil {
		return fmt.Errorf("persist cache: %w", err)
	}
	s.logger.Debug("game cache saved",
		logging.String(logging.FieldPath, s.path),
		logging.Int("games", len(games)))
	return nil
}
