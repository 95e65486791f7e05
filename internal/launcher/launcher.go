package launcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"twitch/internal/catalog"
	"twitch/internal/logging"
)

// Invocation is a fully resolved process start request.
type Invocation struct {
	Path string
	Args []string
	Dir  string
}

// Spawner starts a process without waiting for it and returns its PID.
type Spawner interface {
	Spawn(ctx context.Context, inv Invocation) (int, error)
}

// Opener hands a URL to whatever handles its scheme.
type Opener interface {
	Open(ctx context.Context, url string) error
}

// Result describes a launch that was handed off successfully.
type Result struct {
	Kind catalog.LaunchKind
	PID  int
	URL  string
	Dir  string
}

// Launcher dispatches games to a Spawner or an Opener.
type Launcher struct {
	spawner Spawner
	opener  Opener
	logger  *slog.Logger
}

// Option customizes a Launcher.
type Option func(*Launcher)

// WithSpawner replaces the process spawner.
func WithSpawner(s Spawner) Option {
	return func(l *Launcher) { l.spawner = s }
}

// WithOpener replaces the URL opener.
func WithOpener(o Opener) Option {
	return func(l *Launcher) { l.opener = o }
}

// New returns a Launcher using real processes and the platform URL handler
// unless overridden.
func New(logger *slog.Logger, opts ...Option) *Launcher {
	l := &Launcher{
		spawner: ExecSpawner{},
		opener:  PlatformOpener(),
		logger:  logging.NewComponentLogger(logger, "launcher"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Plan resolves what Launch would do without doing it.
func Plan(game catalog.Game) (catalog.LaunchKind, Invocation, error) {
	if game.Conflicting() {
		return catalog.Unresolved, Invocation{}, &LaunchError{Title: game.Title, Err: ErrConflictingLaunchInfo}
	}
	switch game.Kind() {
	case catalog.Direct:
		if strings.TrimSpace(game.InstallDirectory) == "" {
			return catalog.Unresolved, Invocation{}, &LaunchError{
				Title: game.Title,
				Err:   fmt.Errorf("%w: no install directory", ErrMissingLaunchInfo),
			}
		}
		dir := game.InstallDirectory
		if game.WorkingSubdirOverride != "" {
			dir = filepath.Join(dir, filepath.FromSlash(game.WorkingSubdirOverride))
		}
		return catalog.Direct, Invocation{
			Path: game.Command,
			Args: append([]string(nil), game.Args...),
			Dir:  dir,
		}, nil
	case catalog.Indirect:
		return catalog.Indirect, Invocation{}, nil
	default:
		return catalog.Unresolved, Invocation{}, &LaunchError{Title: game.Title, Err: ErrMissingLaunchInfo}
	}
}

// Launch starts game and returns as soon as the hand-off succeeds.
func (l *Launcher) Launch(ctx context.Context, game catalog.Game) (Result, error) {
	logger := logging.WithContext(ctx, l.logger).With(
		logging.String(logging.FieldASIN, game.ASIN),
		logging.String(logging.FieldTitle, game.Title),
	)

	kind, inv, err := Plan(game)
	if err != nil {
		logger.Error("launch refused", logging.Error(err))
		return Result{Kind: kind}, err
	}

	switch kind {
	case catalog.Direct:
		pid, err := l.spawner.Spawn(ctx, inv)
		if err != nil {
			return Result{Kind: kind}, &LaunchError{Title: game.Title, Err: err}
		}
		logger.Info("game started",
			logging.String("command", inv.Path),
			logging.String("dir", inv.Dir),
			logging.Int("pid", pid))
		return Result{Kind: kind, PID: pid, Dir: inv.Dir}, nil
	default:
		if err := l.opener.Open(ctx, game.URL); err != nil {
			return Result{Kind: kind}, &LaunchError{Title: game.Title, Err: err}
		}
		logger.Info("game handed to client", logging.String("url", game.URL))
		return Result{Kind: kind, URL: game.URL}, nil
	}
}
