package manifest_test

import (
	"errors"
	"path/filepath"
	"testing"

	"twitch/internal/catalog"
	"twitch/internal/manifest"
	"twitch/internal/testsupport"
)

func TestResolveDirect(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "games", "Foo")
	testsupport.WriteManifest(t, dir, testsupport.Manifest{
		Command:               "Foo.exe",
		Args:                  []string{"-windowed", "-nosplash"},
		WorkingSubdirOverride: "bin",
	})

	launch, err := manifest.NewResolver("twitch", nil).Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if launch.Kind() != catalog.Direct {
		t.Fatalf("expected direct launch, got %s", launch.Kind())
	}
	if launch.Command != filepath.Join(dir, "Foo.exe") {
		t.Fatalf("command = %q", launch.Command)
	}
	if filepath.Join(dir, launch.WorkingSubdirOverride) != filepath.Join(dir, "bin") {
		t.Fatalf("working dir override = %q", launch.WorkingSubdirOverride)
	}
	if len(launch.Args) != 2 || launch.Args[1] != "-nosplash" {
		t.Fatalf("args = %v", launch.Args)
	}
	if launch.URL != "" {
		t.Fatalf("direct launch must not carry a URL: %q", launch.URL)
	}
}

func TestResolveDirectWithoutOptionalFields(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteManifest(t, dir, testsupport.Manifest{Command: "game"})

	launch, err := manifest.NewResolver("twitch", nil).Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(launch.Args) != 0 || launch.WorkingSubdirOverride != "" {
		t.Fatalf("unexpected optional fields: %+v", launch)
	}
}

func TestResolveProtocolHandoff(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "ABC123")
	testsupport.WriteManifest(t, dir, testsupport.Manifest{
		Command:    "Launcher.exe",
		ClientID:   "client-1",
		AuthScopes: []string{"profile"},
	})

	launch, err := manifest.NewResolver("twitch", nil).Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if launch.URL != "twitch://fuel-launch/ABC123" {
		t.Fatalf("launch url = %q", launch.URL)
	}
	if launch.Command != "" || launch.Kind() != catalog.Indirect {
		t.Fatalf("indirect launch must not carry a command: %+v", launch)
	}
}

func TestResolveUsesConfiguredScheme(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "XYZ")
	// An empty ClientId still selects protocol handoff.
	testsupport.WriteFile(t, filepath.Join(dir, manifest.FileName),
		[]byte(`{"SchemaVersion":"2","Main":{"Command":"x.exe","ClientId":""}}`))

	launch, err := manifest.NewResolver("Amazon-Games://", nil).Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if launch.URL != "amazon-games://fuel-launch/XYZ" {
		t.Fatalf("launch url = %q", launch.URL)
	}
}

func TestResolveFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"missing", "", manifest.ErrManifestMissing},
		{"not json", "{", manifest.ErrManifestInvalid},
		{"no main", `{"SchemaVersion":"2"}`, manifest.ErrManifestInvalid},
		{"empty command", `{"Main":{"Command":""}}`, manifest.ErrManifestInvalid},
		{"args not strings", `{"Main":{"Command":"a","Args":[1,2]}}`, manifest.ErrManifestInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.content != "" {
				testsupport.WriteFile(t, filepath.Join(dir, manifest.FileName), []byte(tt.content))
			}
			_, err := manifest.NewResolver("twitch", nil).Resolve(dir)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestInvalidErrorListsIssues(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, manifest.FileName), []byte(`{"Main":{"Args":"oops"}}`))

	_, err := manifest.Load(dir)
	var invalid *manifest.InvalidError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected *InvalidError, got %v", err)
	}
	if len(invalid.Issues) < 2 {
		t.Fatalf("expected missing Command and bad Args issues, got %v", invalid.Issues)
	}
}

func TestLoadAcceptsBOMAndNumericVersion(t *testing.T) {
	dir := t.TempDir()
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`{"SchemaVersion":2,"Main":{"Command":"a.exe"},"PostInstall":[{"Command":"setup.exe"}]}`)...)
	testsupport.WriteFile(t, filepath.Join(dir, manifest.FileName), content)

	fuel, err := manifest.Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if fuel.Version() != "2" || fuel.Main.Command != "a.exe" || len(fuel.PostInstall) != 1 {
		t.Fatalf("unexpected decode: %+v", fuel)
	}
}

func TestUnknownSchemaVersionStillResolves(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteManifest(t, dir, testsupport.Manifest{Command: "a.exe", SchemaVersion: "7"})
	if _, err := manifest.NewResolver("twitch", nil).Resolve(dir); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
}

func TestBasename(t *testing.T) {
	tests := map[string]string{
		`C:\Games\Twitch\ABC123`:  "ABC123",
		`C:\Games\Twitch\ABC123\`: "ABC123",
		"/games/Foo":              "Foo",
		"/games/Foo/":             "Foo",
		"Foo":                     "Foo",
		`C:\`:                     "",
		"":                        "",
	}
	for in, want := range tests {
		if got := manifest.Basename(in); got != want {
			t.Errorf("Basename(%q) = %q, want %q", in, got, want)
		}
	}
}
