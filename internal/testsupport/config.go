package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"twitch/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Registry paths point at files that do not exist until a fixture is written.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.CacheDir = filepath.Join(base, "cache")
	cfgVal.Paths.CacheFile = filepath.Join(base, "cache", "twitch_games.json")
	cfgVal.Paths.ImageDir = filepath.Join(base, "cache", "images")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.ProductDB = filepath.Join(base, "registry", "GameProductInfo.sqlite")
	cfgVal.Paths.InstallDB = filepath.Join(base, "registry", "GameInstallInfo.sqlite")
	cfgVal.Images.TimeoutSeconds = 5

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithRegistry writes product and install fixture databases at the configured paths.
func WithRegistry(products []ProductRow, installs []InstallRow) ConfigOption {
	return func(b *configBuilder) {
		WriteProductDB(b.t, b.cfg.Paths.ProductDB, products)
		WriteInstallDB(b.t, b.cfg.Paths.InstallDB, installs)
	}
}

// WithOpener sets the protocol URL opener command.
func WithOpener(command string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Launch.Opener = command
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. Each stub records its arguments to <name>.args in
// the stub directory and exits 0.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		binDir := StubBinaries(b.t, filepath.Join(b.baseDir, "bin"), names...)

		oldPath := os.Getenv("PATH")
		if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath); err != nil {
			b.t.Fatalf("set PATH: %v", err)
		}
		b.t.Cleanup(func() {
			_ = os.Setenv("PATH", oldPath)
		})
	}
}

// StubBinaries writes argument-recording shell stubs into dir and returns dir.
func StubBinaries(t testing.TB, dir string, names ...string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir bin dir: %v", err)
	}
	for _, name := range names {
		target := filepath.Join(dir, name)
		script := []byte("#!/bin/sh\nprintf '%s\\n' \"$@\" > \"" + target + ".args\"\npwd > \"" + target + ".pwd\"\nexit 0\n")
		if err := os.WriteFile(target, script, 0o755); err != nil {
			t.Fatalf("write stub %s: %v", name, err)
		}
	}
	return dir
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LogDir)
}
