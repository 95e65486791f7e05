package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"twitch/internal/logging"
)

var uriEscaper = strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23")

// Reader loads registry snapshots from the configured database files.
type Reader struct {
	productDB string
	installDB string
	logger    *slog.Logger
}

// NewReader constructs a Reader for the given product and install databases.
func NewReader(productDB, installDB string, logger *slog.Logger) *Reader {
	return &Reader{
		productDB: productDB,
		installDB: installDB,
		logger:    logging.NewComponentLogger(logger, "registry"),
	}
}

// Read loads both registries. Either database being absent fails the whole read.
func (r *Reader) Read(ctx context.Context) (Snapshot, error) {
	products, err := readTable(ctx, r.logger, r.productDB, productContract)
	if err != nil {
		return Snapshot{}, err
	}
	installs, err := readTable(ctx, r.logger, r.installDB, installContract)
	if err != nil {
		return Snapshot{}, err
	}
	r.logger.Debug("registry snapshot loaded",
		logging.Int("products", len(products)),
		logging.Int("installs", len(installs)))
	return Snapshot{Products: products, Installs: installs}, nil
}

// CheckProducts verifies a product registry against the column contract.
func CheckProducts(ctx context.Context, path string) error {
	return checkContract(ctx, path, productContract)
}

// CheckInstalls verifies an install registry against the column contract.
func CheckInstalls(ctx context.Context, path string) error {
	return checkContract(ctx, path, installContract)
}

func checkContract[T any](ctx context.Context, path string, c contract[T]) error {
	db, err := openReadOnly(path, c.registry)
	if err != nil {
		return err
	}
	defer db.Close()
	_, err = bindTable(ctx, db, path, c)
	return err
}

func openReadOnly(path, registry string) (*sql.DB, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, &SourceError{Registry: registry, Path: "(unset)"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &SourceError{Registry: registry, Path: path}
		}
		return nil, &SourceError{Registry: registry, Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &SourceError{Registry: registry, Path: path, Err: errors.New("is a directory")}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &SourceError{Registry: registry, Path: path, Err: err}
	}
	dsn := "file:" + uriEscaper.Replace(filepath.ToSlash(abs)) + "?mode=ro&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, &SourceError{Registry: registry, Path: path, Err: err}
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

func tableColumns(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf(`PRAGMA table_info("%s")`, tableName))
	if err != nil {
		return nil, fmt.Errorf("table info: %w", err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var (
			cid     int
			name    string
			typeStr string
			notNull int
			dflt    any
			pk      int
		)
		if err := rows.Scan(&cid, &name, &typeStr, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("scan table info: %w", err)
		}
		columns = append(columns, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate table info: %w", err)
	}
	return columns, nil
}

func bindTable[T any](ctx context.Context, db *sql.DB, path string, c contract[T]) ([]binding, error) {
	columns, err := tableColumns(ctx, db)
	if err != nil {
		return nil, &SourceError{Registry: c.registry, Path: path, Err: err}
	}
	if len(columns) == 0 {
		return nil, &SchemaError{Registry: c.registry, Path: path, Table: tableName}
	}
	bindings, missing := c.bind(columns)
	if len(missing) > 0 {
		return nil, &SchemaError{Registry: c.registry, Path: path, Table: tableName, Missing: missing}
	}
	return bindings, nil
}

func readTable[T any](ctx context.Context, logger *slog.Logger, path string, c contract[T]) ([]T, error) {
	db, err := openReadOnly(path, c.registry)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	bindings, err := bindTable(ctx, db, path, c)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, selectStatement(bindings))
	if err != nil {
		return nil, &SourceError{Registry: c.registry, Path: path, Err: err}
	}
	defer rows.Close()

	var (
		records []T
		skipped int
		rowNum  int
	)
	values := make([]any, len(bindings))
	targets := make([]any, len(bindings))
	for i := range values {
		targets[i] = &values[i]
	}
	for rows.Next() {
		rowNum++
		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("scan %s row %d: %w", c.registry, rowNum, err)
		}
		var rec T
		err := decodeRow(&rec, bindings, values, c.assign)
		if err == nil {
			records = append(records, rec)
			continue
		}
		impact := "title omitted from this refresh"
		if key, ok := keyValue(bindings, values); ok && c.damaged != nil {
			records = append(records, c.damaged(key))
			impact = "row kept as damaged so the title cannot be treated as installed"
		} else {
			skipped++
		}
		logging.WarnWithContext(logger, "registry row undecodable", "registry_row_undecodable",
			logging.String("registry", c.registry),
			logging.String(logging.FieldPath, path),
			logging.Int("row", rowNum),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "inspect the row in the client database"),
			logging.String(logging.FieldImpact, impact),
		)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s rows: %w", c.registry, err)
	}
	if skipped > 0 {
		logger.Info("registry rows skipped", logging.String("registry", c.registry), logging.Int("skipped", skipped))
	}
	return records, nil
}

func decodeRow[T any](rec *T, bindings []binding, values []any, assign func(*T, string, any) error) error {
	for i, b := range bindings {
		value := values[i]
		if b.column.key {
			if s, err := textValue(value); err != nil || strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s: required value empty", b.column.name)
			}
		}
		if err := assign(rec, b.column.name, value); err != nil {
			return err
		}
	}
	return nil
}

// keyValue returns the row's key column when it decodes to a non-empty value.
func keyValue(bindings []binding, values []any) (string, bool) {
	for i, b := range bindings {
		if !b.column.key {
			continue
		}
		s, err := textValue(values[i])
		s = strings.TrimSpace(s)
		return s, err == nil && s != ""
	}
	return "", false
}
