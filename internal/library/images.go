package library

import (
	"context"

	"twitch/internal/catalog"
	"twitch/internal/thumbnails"
)

// FetchImages downloads missing thumbnails, optionally for installed games
// only, and records each local path in the cache.
func (s *Service) FetchImages(ctx context.Context, installedOnly bool) ([]thumbnails.Result, error) {
	games, err := s.Games(ctx, false)
	if err != nil {
		return nil, err
	}

	targets := games
	if installedOnly {
		targets = catalog.FilterInstalled(games, true)
	}
	results := s.fetcher.FetchAll(ctx, targets)

	changed := false
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		idx := catalog.Index(games, res.ASIN)
		if idx < 0 || games[idx].ImagePath == res.Path {
			continue
		}
		games[idx].ImagePath = res.Path
		changed = true
	}
	if changed {
		if err := s.store.Save(ctx, games); err != nil {
			return results, err
		}
	}
	return results, nil
}
