package library

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"twitch/internal/catalog"
	"twitch/internal/config"
	"twitch/internal/gamecache"
	"twitch/internal/launcher"
	"twitch/internal/logging"
	"twitch/internal/manifest"
	"twitch/internal/registry"
	"twitch/internal/thumbnails"
)

// Source provides a fresh registry snapshot.
type Source interface {
	Read(ctx context.Context) (registry.Snapshot, error)
}

// Starter launches a single game.
type Starter interface {
	Launch(ctx context.Context, game catalog.Game) (launcher.Result, error)
}

// Service runs catalog operations against one configuration.
type Service struct {
	source   Source
	resolver catalog.Resolver
	store    *gamecache.Store
	starter  Starter
	fetcher  *thumbnails.Fetcher
	logger   *slog.Logger
}

// Option customizes a Service.
type Option func(*Service)

// WithSource replaces the registry reader.
func WithSource(src Source) Option {
	return func(s *Service) { s.source = src }
}

// WithStarter replaces the launcher.
func WithStarter(st Starter) Option {
	return func(s *Service) { s.starter = st }
}

// New assembles a Service from cfg.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Service, error) {
	if cfg == nil {
		return nil, errors.New("library: nil config")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	var launchOpts []launcher.Option
	if cfg.Launch.Opener != "" {
		opener, err := launcher.ParseOpener(cfg.Launch.Opener)
		if err != nil {
			return nil, fmt.Errorf("launch.opener: %w", err)
		}
		launchOpts = append(launchOpts, launcher.WithOpener(opener))
	}

	s := &Service{
		source:   registry.NewReader(cfg.Paths.ProductDB, cfg.Paths.InstallDB, logger),
		resolver: manifest.NewResolver(cfg.Launch.ProtocolScheme, logger),
		store:    gamecache.NewStore(cfg.Paths.CacheFile, logger),
		starter:  launcher.New(logger, launchOpts...),
		fetcher: thumbnails.NewFetcher(cfg.Paths.ImageDir,
			time.Duration(cfg.Images.TimeoutSeconds)*time.Second, cfg.Images.Concurrency, logger),
		logger: logging.NewComponentLogger(logger, "library"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Refresh rebuilds the catalog from the registries, reconciles it into the
// cache and saves the result. A corrupt cache is replaced.
func (s *Service) Refresh(ctx context.Context) ([]catalog.Game, error) {
	logger := logging.WithContext(ctx, s.logger)

	snap, err := s.source.Read(ctx)
	if err != nil {
		return nil, err
	}
	fresh := catalog.Build(snap.Products, snap.Installs, s.resolver, logger)

	persisted, err := s.store.Load()
	switch {
	case err == nil:
	case errors.Is(err, gamecache.ErrCacheMissing):
		persisted = nil
	case errors.Is(err, gamecache.ErrCacheCorrupt):
		logging.WarnWithContext(logger, "game cache unreadable, rebuilding", "cache_corrupt",
			logging.String(logging.FieldPath, s.store.Path()),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "restore the file from backup to recover tags"),
			logging.String(logging.FieldImpact, "local tags in the old cache are discarded"),
		)
		persisted = nil
	default:
		return nil, err
	}

	merged := catalog.Merge(persisted, fresh)
	if err := s.store.Save(ctx, merged); err != nil {
		return nil, err
	}

	installed := len(catalog.FilterInstalled(merged, true))
	logger.Info("catalog refreshed",
		logging.Int("games", len(merged)),
		logging.Int("installed", installed),
		logging.Int("registry_products", len(snap.Products)))
	return merged, nil
}

// Games returns the cached catalog. It refreshes when asked to or when no
// cache has been written yet. A corrupt cache fails unless refreshing.
func (s *Service) Games(ctx context.Context, refresh bool) ([]catalog.Game, error) {
	if refresh {
		return s.Refresh(ctx)
	}
	games, err := s.store.Load()
	if errors.Is(err, gamecache.ErrCacheMissing) {
		logging.WithContext(ctx, s.logger).Info("no game cache yet, building from registries",
			logging.String(logging.FieldPath, s.store.Path()))
		return s.Refresh(ctx)
	}
	if errors.Is(err, gamecache.ErrCacheCorrupt) {
		return nil, fmt.Errorf("%w (run with --refresh to rebuild)", err)
	}
	return games, err
}

// Find returns the cached game with the given title.
func (s *Service) Find(ctx context.Context, title string) (catalog.Game, error) {
	games, err := s.Games(ctx, false)
	if err != nil {
		return catalog.Game{}, err
	}
	return catalog.FindByTitle(games, title)
}

// Launch starts the cached game with the given title.
func (s *Service) Launch(ctx context.Context, title string) (launcher.Result, error) {
	game, err := s.Find(ctx, title)
	if err != nil {
		return launcher.Result{}, err
	}
	return s.starter.Launch(ctx, game)
}
