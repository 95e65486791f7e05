package registry_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"twitch/internal/catalog"
	"twitch/internal/logging"
	"twitch/internal/registry"
	"twitch/internal/testsupport"
)

func TestReaderReadsBothRegistries(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithRegistry(
		[]testsupport.ProductRow{
			{ASIN: "A1", Title: "Alpha", IconURL: "https://img.example/a.png", Publisher: "Acme"},
			{ASIN: "B2", Title: "Beta"},
		},
		[]testsupport.InstallRow{
			{ASIN: "A1", Title: "Alpha", InstallDirectory: `C:\Games\Alpha`, Installed: 1},
		},
	))

	reader := registry.NewReader(cfg.Paths.ProductDB, cfg.Paths.InstallDB, logging.NewNop())
	snap, err := reader.Read(context.Background())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(snap.Products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(snap.Products))
	}
	alpha := snap.Products[0]
	if alpha.ASIN != "A1" || alpha.Title != "Alpha" || alpha.IconURL != "https://img.example/a.png" || alpha.Publisher != "Acme" {
		t.Fatalf("unexpected product: %+v", alpha)
	}
	if alpha.Description != "" {
		t.Fatalf("NULL description should decode empty, got %q", alpha.Description)
	}
	if len(snap.Installs) != 1 {
		t.Fatalf("expected 1 install, got %d", len(snap.Installs))
	}
	install := snap.Installs[0]
	if install.ASIN != "A1" || install.InstallDirectory != `C:\Games\Alpha` || !install.IsInstalled() {
		t.Fatalf("unexpected install: %+v", install)
	}
}

func TestReaderMissingDatabase(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	reader := registry.NewReader(cfg.Paths.ProductDB, cfg.Paths.InstallDB, nil)

	_, err := reader.Read(context.Background())
	if !errors.Is(err, registry.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
	var srcErr *registry.SourceError
	if !errors.As(err, &srcErr) || srcErr.Path != cfg.Paths.ProductDB {
		t.Fatalf("expected error naming %s, got %v", cfg.Paths.ProductDB, err)
	}
}

func TestReaderMissingInstallDatabase(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteProductDB(t, cfg.Paths.ProductDB, []testsupport.ProductRow{{ASIN: "A1", Title: "Alpha"}})

	_, err := registry.NewReader(cfg.Paths.ProductDB, cfg.Paths.InstallDB, nil).Read(context.Background())
	var srcErr *registry.SourceError
	if !errors.As(err, &srcErr) || srcErr.Registry != "Install" {
		t.Fatalf("expected install source error, got %v", err)
	}
}

func TestReaderBindsColumnsByName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "products.sqlite")
	// Reordered, snake_cased, and extended with an unknown column.
	db := testsupport.CreateRegistryDB(t, path, []string{"product_title", "extra", "product_icon_url", "product_asin", "id"})
	if _, err := db.Exec(`INSERT INTO "DbSet" VALUES ('Gamma', 'x', 'https://img/g.png', 'G3', '7')`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	db.Close()
	installPath := filepath.Join(dir, "installs.sqlite")
	testsupport.WriteInstallDB(t, installPath, nil)

	snap, err := registry.NewReader(path, installPath, nil).Read(context.Background())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	products := snap.Products
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}
	if got := products[0]; got.ASIN != "G3" || got.Title != "Gamma" || got.IconURL != "https://img/g.png" || got.ID != "7" {
		t.Fatalf("unexpected product: %+v", got)
	}
}

func TestReaderSchemaMismatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "installs.sqlite")
	db := testsupport.CreateRegistryDB(t, path, []string{"Id", "ProductAsin"})
	db.Close()
	productPath := filepath.Join(dir, "products.sqlite")
	testsupport.WriteProductDB(t, productPath, nil)

	_, err := registry.NewReader(productPath, path, nil).Read(context.Background())
	if !errors.Is(err, registry.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
	var schemaErr *registry.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected *SchemaError, got %T", err)
	}
	want := []string{"InstallDirectory", "Installed"}
	if len(schemaErr.Missing) != len(want) {
		t.Fatalf("missing = %v, want %v", schemaErr.Missing, want)
	}
	for i := range want {
		if schemaErr.Missing[i] != want[i] {
			t.Fatalf("missing = %v, want %v", schemaErr.Missing, want)
		}
	}
	if err := registry.CheckInstalls(context.Background(), path); !errors.Is(err, registry.ErrSchemaMismatch) {
		t.Fatalf("CheckInstalls: expected ErrSchemaMismatch, got %v", err)
	}
}

func readInstallRows(t *testing.T, rows [][]any) []registry.Install {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "installs.sqlite")
	db := testsupport.CreateRegistryDB(t, path, []string{"ProductAsin", "InstallDirectory", "Installed"})
	for _, r := range rows {
		if _, err := db.Exec(`INSERT INTO "DbSet" VALUES (?, ?, ?)`, r...); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	db.Close()
	productPath := filepath.Join(dir, "products.sqlite")
	testsupport.WriteProductDB(t, productPath, nil)

	snap, err := registry.NewReader(productPath, path, nil).Read(context.Background())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	return snap.Installs
}

func TestReaderKeepsUndecodableRowsByASIN(t *testing.T) {
	installs := readInstallRows(t, [][]any{
		{"A1", "/games/a", 1},
		{"B2", "/games/b", "not-a-number"},
		{"", "/games/c", 1},
		{"D4", "/games/d", "0"},
	})

	if len(installs) != 3 {
		t.Fatalf("expected 3 rows with an ASIN, got %d: %+v", len(installs), installs)
	}
	if installs[0].ASIN != "A1" || !installs[0].IsInstalled() || installs[0].Damaged() {
		t.Fatalf("unexpected first install: %+v", installs[0])
	}
	damaged := installs[1]
	if damaged.ASIN != "B2" || !damaged.Damaged() || damaged.IsInstalled() || damaged.InstallDirectory != "" {
		t.Fatalf("expected damaged B2 placeholder, got %+v", damaged)
	}
	if installs[2].ASIN != "D4" || installs[2].IsInstalled() || installs[2].Damaged() {
		t.Fatalf("unexpected third install: %+v", installs[2])
	}
}

func TestDamagedInstallRowKeepsTitleNotInstalled(t *testing.T) {
	installs := readInstallRows(t, [][]any{
		{"A1", "/games/alpha", 1},
		{"A1", "/games/alpha-old", "garbage"},
	})
	if len(installs) != 2 {
		t.Fatalf("expected both A1 rows, got %+v", installs)
	}

	resolver := stubResolver{"/games/alpha": {Command: "/games/alpha/alpha.exe"}}
	games := catalog.Build([]registry.Product{{ASIN: "A1", Title: "Alpha"}}, installs, resolver, nil)
	if len(games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(games))
	}
	if g := games[0]; g.Installed || g.InstallDirectory != "" || g.Kind() != catalog.Unresolved {
		t.Fatalf("two install rows for A1 must leave it not installed, got %+v", g)
	}
}

func TestDamagedOnlyInstallRowIsNotInstalled(t *testing.T) {
	installs := readInstallRows(t, [][]any{{"A1", "/games/alpha", "garbage"}})

	resolver := stubResolver{"/games/alpha": {Command: "/games/alpha/alpha.exe"}}
	games := catalog.Build([]registry.Product{{ASIN: "A1", Title: "Alpha"}}, installs, resolver, nil)
	if g := games[0]; g.Installed || g.Kind() != catalog.Unresolved {
		t.Fatalf("damaged row must not install A1, got %+v", g)
	}
}

type stubResolver map[string]catalog.Launch

func (s stubResolver) Resolve(dir string) (catalog.Launch, error) {
	launch, ok := s[dir]
	if !ok {
		return catalog.Launch{}, errors.New("no manifest")
	}
	return launch, nil
}

func TestCheckProductsAcceptsClientLayout(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithRegistry(nil, nil))
	if err := registry.CheckProducts(context.Background(), cfg.Paths.ProductDB); err != nil {
		t.Fatalf("CheckProducts: %v", err)
	}
	if err := registry.CheckInstalls(context.Background(), cfg.Paths.InstallDB); err != nil {
		t.Fatalf("CheckInstalls: %v", err)
	}
}
