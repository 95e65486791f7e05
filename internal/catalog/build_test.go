package catalog_test

import (
	"errors"
	"testing"

	"twitch/internal/catalog"
	"twitch/internal/registry"
)

type stubResolver struct {
	results map[string]catalog.Launch
	calls   []string
}

func (s *stubResolver) Resolve(dir string) (catalog.Launch, error) {
	s.calls = append(s.calls, dir)
	launch, ok := s.results[dir]
	if !ok {
		return catalog.Launch{}, errors.New("no manifest")
	}
	return launch, nil
}

func TestBuildJoinsOnASIN(t *testing.T) {
	products := []registry.Product{
		{ASIN: "A1", Title: "Alpha", IconURL: "a.png"},
		{ASIN: "B2", Title: "Beta", IconURL: "b.png"},
		{ASIN: "C3", Title: "Gamma"},
		{ASIN: "D4", Title: "Delta"},
	}
	installs := []registry.Install{
		{ASIN: "A1", InstallDirectory: "/games/alpha", Installed: 1},
		{ASIN: "C3", InstallDirectory: "/games/gamma-1", Installed: 1},
		{ASIN: "C3", InstallDirectory: "/games/gamma-2", Installed: 1},
		{ASIN: "D4", InstallDirectory: "/games/delta", Installed: 0},
	}
	resolver := &stubResolver{results: map[string]catalog.Launch{
		"/games/alpha": {Command: "/games/alpha/alpha.exe", Args: []string{"-x"}},
	}}

	games := catalog.Build(products, installs, resolver, nil)
	if len(games) != 4 {
		t.Fatalf("expected 4 games, got %d", len(games))
	}

	tests := []struct {
		asin      string
		installed bool
		dir       string
		kind      catalog.LaunchKind
	}{
		{"A1", true, "/games/alpha", catalog.Direct},
		{"B2", false, "", catalog.Unresolved},
		{"C3", false, "", catalog.Unresolved},
		{"D4", false, "/games/delta", catalog.Unresolved},
	}
	for i, tt := range tests {
		g := games[i]
		if g.ASIN != tt.asin {
			t.Fatalf("game %d: asin %q, want %q", i, g.ASIN, tt.asin)
		}
		if g.Installed != tt.installed || g.InstallDirectory != tt.dir || g.Kind() != tt.kind {
			t.Fatalf("%s: got installed=%v dir=%q kind=%s", tt.asin, g.Installed, g.InstallDirectory, g.Kind())
		}
	}
	if games[0].ImageURL != "a.png" || games[0].Args[0] != "-x" {
		t.Fatalf("unexpected alpha: %+v", games[0])
	}
	if len(resolver.calls) != 1 || resolver.calls[0] != "/games/alpha" {
		t.Fatalf("resolver should only run for installed titles, calls=%v", resolver.calls)
	}
}

func TestBuildDowngradesUnresolvableManifest(t *testing.T) {
	products := []registry.Product{{ASIN: "A1", Title: "Alpha"}, {ASIN: "B2", Title: "Beta"}}
	installs := []registry.Install{
		{ASIN: "A1", InstallDirectory: "/games/alpha", Installed: 1},
		{ASIN: "B2", InstallDirectory: "/games/beta", Installed: 1},
	}
	resolver := &stubResolver{results: map[string]catalog.Launch{
		"/games/beta": {URL: "twitch://fuel-launch/beta"},
	}}

	games := catalog.Build(products, installs, resolver, nil)
	if !games[0].Installed || games[0].Kind() != catalog.Unresolved {
		t.Fatalf("alpha should stay installed but unresolved: %+v", games[0])
	}
	if games[1].Kind() != catalog.Indirect {
		t.Fatalf("beta should be indirect: %+v", games[1])
	}
	for _, g := range games {
		if g.Command != "" && g.URL != "" {
			t.Fatalf("%s carries both launch strategies", g.ASIN)
		}
		if g.Kind() != catalog.Unresolved && !g.Installed {
			t.Fatalf("%s has launch info without being installed", g.ASIN)
		}
	}
}

func TestBuildFirstProductWins(t *testing.T) {
	products := []registry.Product{
		{ASIN: "A1", Title: "First"},
		{ASIN: "A1", Title: "Second"},
	}
	games := catalog.Build(products, nil, nil, nil)
	if len(games) != 1 || games[0].Title != "First" {
		t.Fatalf("expected single First entry, got %+v", games)
	}
}

func TestBuildCountsDamagedInstallRows(t *testing.T) {
	products := []registry.Product{{ASIN: "A1", Title: "Alpha"}}
	installs := []registry.Install{
		{ASIN: "A1", InstallDirectory: "/games/alpha", Installed: registry.InstalledSentinel},
		{ASIN: "A1", Installed: registry.InstallStateDamaged},
	}
	resolver := &stubResolver{results: map[string]catalog.Launch{
		"/games/alpha": {Command: "/games/alpha/alpha.exe"},
	}}

	games := catalog.Build(products, installs, resolver, nil)
	if g := games[0]; g.Installed || g.InstallDirectory != "" || g.Kind() != catalog.Unresolved {
		t.Fatalf("expected A1 not installed, got %+v", g)
	}
	if len(resolver.calls) != 0 {
		t.Fatalf("resolver must not run for ambiguous titles, calls=%v", resolver.calls)
	}
}
