package testsupport

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	_ "modernc.org/sqlite"
)

// ProductRow is a product registry fixture row. Unset fields are written as
// placeholders the client would normally fill.
type ProductRow struct {
	ID        string
	ASIN      string
	Title     string
	IconURL   string
	Publisher string
}

// InstallRow is an install registry fixture row.
type InstallRow struct {
	ID               string
	ASIN             string
	Title            string
	InstallDirectory string
	Installed        int
}

var productColumns = []string{
	"Id", "DateTime", "Background", "Background2", "IsDeveloper", "ProductAsin",
	"ProductAsinVersion", "ProductDescription", "ProductDomain", "ProductIconUrl",
	"ProductIdStr", "ProductLine", "ProductPublisher", "ProductSku", "ProductTitle",
	"ScreenshotsJson", "State", "VideosJson",
}

var installColumns = []string{
	"Id", "InstallDate", "InstallDirectory", "InstallVersion", "InstallVersionName",
	"Installed", "LastKnownLatestVersion", "LastKnownLatestVersionTimestamp",
	"LastUpdated", "LastPlayed", "ProductAsin", "ProductTitle",
}

// WriteProductDB creates a product registry at path with the client's DbSet layout.
func WriteProductDB(t testing.TB, path string, rows []ProductRow) {
	t.Helper()

	db := CreateRegistryDB(t, path, productColumns)
	defer db.Close()
	stmt := insertStatement(productColumns)
	for _, r := range rows {
		id := r.ID
		if id == "" {
			id = "id-" + r.ASIN
		}
		if _, err := db.Exec(stmt,
			id, "2020-01-01T00:00:00", "", "", 0, r.ASIN,
			"1", nil, "Games", r.IconURL,
			r.ASIN, "Twitch:FuelGame", r.Publisher, "sku-"+r.ASIN, r.Title,
			"[]", "LIVE", "[]",
		); err != nil {
			t.Fatalf("insert product %s: %v", r.ASIN, err)
		}
	}
}

// WriteInstallDB creates an install registry at path with the client's DbSet layout.
func WriteInstallDB(t testing.TB, path string, rows []InstallRow) {
	t.Helper()

	db := CreateRegistryDB(t, path, installColumns)
	defer db.Close()
	stmt := insertStatement(installColumns)
	for _, r := range rows {
		id := r.ID
		if id == "" {
			id = "install-" + r.ASIN + "-" + filepath.Base(r.InstallDirectory)
		}
		if _, err := db.Exec(stmt,
			id, "2020-01-01T00:00:00", r.InstallDirectory, nil, nil,
			r.Installed, "1", "2020-01-01T00:00:00",
			"2020-01-01T00:00:00", "", r.ASIN, r.Title,
		); err != nil {
			t.Fatalf("insert install %s: %v", r.ASIN, err)
		}
	}
}

// CreateRegistryDB creates a fresh SQLite file at path with a DbSet table of
// untyped columns and returns an open handle.
func CreateRegistryDB(t testing.TB, path string, columns []string) *sql.DB {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir registry dir: %v", err)
	}
	_ = os.Remove(path)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open registry %s: %v", path, err)
	}
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = `"` + c + `"`
	}
	if _, err := db.Exec(`CREATE TABLE "DbSet" (` + strings.Join(quoted, ", ") + `)`); err != nil {
		db.Close()
		t.Fatalf("create DbSet: %v", err)
	}
	return db
}

func insertStatement(columns []string) string {
	quoted := make([]string, len(columns))
	marks := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = `"` + c + `"`
		marks[i] = "?"
	}
	return `INSERT INTO "DbSet" (` + strings.Join(quoted, ", ") + `) VALUES (` + strings.Join(marks, ", ") + `)`
}
