package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

var (
	// ErrNotFound indicates no game carries the requested title.
	ErrNotFound = errors.New("game not found")
	// ErrAmbiguousTitle indicates a case-insensitive title matched several games.
	ErrAmbiguousTitle = errors.New("ambiguous game title")
)

// SortByTitle returns a copy ordered by title, then ASIN.
func SortByTitle(games []Game) []Game {
	out := slices.Clone(games)
	slices.SortStableFunc(out, func(a, b Game) int {
		if c := strings.Compare(a.Title, b.Title); c != 0 {
			return c
		}
		return strings.Compare(a.ASIN, b.ASIN)
	})
	return out
}

// FilterInstalled returns the games whose installed flag equals installed.
func FilterInstalled(games []Game, installed bool) []Game {
	out := make([]Game, 0, len(games))
	for _, g := range games {
		if g.Installed == installed {
			out = append(out, g)
		}
	}
	return out
}

// FindByTitle returns the game with exactly this title, falling back to a
// unique case-insensitive match.
func FindByTitle(games []Game, title string) (Game, error) {
	for _, g := range games {
		if g.Title == title {
			return g, nil
		}
	}

	folder := cases.Fold()
	want := folder.String(strings.TrimSpace(title))
	var matches []Game
	for _, g := range games {
		if folder.String(strings.TrimSpace(g.Title)) == want {
			matches = append(matches, g)
		}
	}
	switch len(matches) {
	case 0:
		return Game{}, fmt.Errorf("unable to find game %s: %w", title, ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return Game{}, fmt.Errorf("%q matches %d games: %w", title, len(matches), ErrAmbiguousTitle)
	}
}

// Index returns the position of the game with the given ASIN, or -1.
func Index(games []Game, asin string) int {
	return slices.IndexFunc(games, func(g Game) bool { return g.ASIN == asin })
}
