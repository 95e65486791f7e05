package registry

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSourceUnavailable indicates a registry database file is missing or unreadable.
	ErrSourceUnavailable = errors.New("registry source unavailable")
	// ErrSchemaMismatch indicates the DbSet table does not satisfy the column contract.
	ErrSchemaMismatch = errors.New("registry schema mismatch")
)

// SourceError names the registry file that could not be opened.
type SourceError struct {
	Registry string
	Path     string
	Err      error
}

func (e *SourceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s info missing: %s: %v", e.Registry, e.Path, e.Err)
	}
	return fmt.Sprintf("%s info missing: %s", e.Registry, e.Path)
}

func (e *SourceError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrSourceUnavailable}
	}
	return []error{ErrSourceUnavailable, e.Err}
}

// SchemaError lists the required columns absent from a registry table.
type SchemaError struct {
	Registry string
	Path     string
	Table    string
	Missing  []string
}

func (e *SchemaError) Error() string {
	if len(e.Missing) == 0 {
		return fmt.Sprintf("%s registry %s: table %s not found", e.Registry, e.Path, e.Table)
	}
	return fmt.Sprintf("%s registry %s: table %s missing columns %s", e.Registry, e.Path, e.Table, strings.Join(e.Missing, ", "))
}

func (e *SchemaError) Unwrap() error {
	return ErrSchemaMismatch
}
