package manifest

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrManifestMissing indicates the install directory has no fuel.json.
	ErrManifestMissing = errors.New("launch manifest missing")
	// ErrManifestInvalid indicates fuel.json exists but cannot be used.
	ErrManifestInvalid = errors.New("launch manifest invalid")
)

// InvalidError carries the schema issues found in a manifest.
type InvalidError struct {
	Path   string
	Issues []Issue
	Err    error
}

func (e *InvalidError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "manifest %s invalid", e.Path)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	for i, issue := range e.Issues {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		b.WriteString(issue.String())
	}
	return b.String()
}

func (e *InvalidError) Unwrap() error {
	return ErrManifestInvalid
}
