package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path string, content []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// Manifest mirrors the fields of fuel.json that fixtures need to set.
type Manifest struct {
	Command               string
	Args                  []string
	WorkingSubdirOverride string
	ClientID              string
	AuthScopes            []string
	SchemaVersion         string
}

// WriteManifest writes a fuel.json into installDir using the client's key casing.
func WriteManifest(t testing.TB, installDir string, m Manifest) string {
	t.Helper()

	main := map[string]any{"Command": m.Command}
	if m.Args != nil {
		main["Args"] = m.Args
	}
	if m.WorkingSubdirOverride != "" {
		main["WorkingSubdirOverride"] = m.WorkingSubdirOverride
	}
	if m.ClientID != "" {
		main["ClientId"] = m.ClientID
	}
	if m.AuthScopes != nil {
		main["AuthScopes"] = m.AuthScopes
	}
	version := m.SchemaVersion
	if version == "" {
		version = "2"
	}
	doc := map[string]any{
		"SchemaVersion": version,
		"Main":          main,
		"PostInstall":   []any{},
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("marshal manifest: %v", err)
	}
	path := filepath.Join(installDir, "fuel.json")
	WriteFile(t, path, data)
	return path
}

// WaitForFile polls until path exists or the timeout elapses. Launch tests use
// it to observe fire-and-forget stubs.
func WaitForFile(t testing.TB, path string, timeout time.Duration) []byte {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for {
		data, err := os.ReadFile(path)
		if err == nil && len(data) > 0 {
			return data
		}
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", path)
		}
		time.Sleep(20 * time.Millisecond)
	}
}
