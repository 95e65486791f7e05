package library

import (
	"context"

	"twitch/internal/catalog"
	"twitch/internal/logging"
)

// Annotation sets locally curated fields. Nil fields are left unchanged;
// Clear removes both before applying the rest.
type Annotation struct {
	Kids    *bool
	Players *int
	Clear   bool
}

// Annotate applies a to the cached game with the given title and saves the cache.
func (s *Service) Annotate(ctx context.Context, title string, a Annotation) (catalog.Game, error) {
	games, err := s.Games(ctx, false)
	if err != nil {
		return catalog.Game{}, err
	}
	target, err := catalog.FindByTitle(games, title)
	if err != nil {
		return catalog.Game{}, err
	}

	idx := catalog.Index(games, target.ASIN)
	game := games[idx].Clone()
	if a.Clear {
		game.Kids = nil
		game.Players = nil
	}
	if a.Kids != nil {
		v := *a.Kids
		game.Kids = &v
	}
	if a.Players != nil {
		v := *a.Players
		game.Players = &v
	}
	games[idx] = game

	if err := s.store.Save(ctx, games); err != nil {
		return catalog.Game{}, err
	}
	logging.WithContext(ctx, s.logger).Info("game annotated",
		logging.String(logging.FieldASIN, game.ASIN),
		logging.String(logging.FieldTitle, game.Title))
	return game, nil
}
