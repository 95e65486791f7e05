package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"twitch/internal/config"
	"twitch/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	gamesDir   string
	alphaDir   string
	betaDir    string
	openerArgs string
}

// setupCLITestEnv writes a registry with three games: Alpha (direct launch
// with a stub executable), Beta (protocol handoff) and Gamma (not installed).
func setupCLITestEnv(t *testing.T, iconBase string) *cliTestEnv {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub executables are shell scripts")
	}

	t.Setenv("HOME", t.TempDir())
	t.Setenv("TWITCH_CACHE_DIR", "")
	t.Setenv("TWITCH_PRODUCT_DB", "")
	t.Setenv("TWITCH_INSTALL_DB", "")

	gamesDir := filepath.Join(t.TempDir(), "games")
	alphaDir := filepath.Join(gamesDir, "alpha")
	betaDir := filepath.Join(gamesDir, "BETA01")
	testsupport.WriteManifest(t, alphaDir, testsupport.Manifest{
		Command:               "alpha.exe",
		Args:                  []string{"-windowed"},
		WorkingSubdirOverride: "bin",
	})
	testsupport.StubBinaries(t, alphaDir, "alpha.exe")
	if err := os.MkdirAll(filepath.Join(alphaDir, "bin"), 0o755); err != nil {
		t.Fatalf("mkdir alpha bin: %v", err)
	}
	testsupport.WriteManifest(t, betaDir, testsupport.Manifest{Command: "beta.exe", ClientID: "client-1"})

	icon := func(name string) string {
		if iconBase == "" {
			return ""
		}
		return iconBase + "/icons/" + name
	}
	cfg := testsupport.NewConfig(t, testsupport.WithRegistry(
		[]testsupport.ProductRow{
			{ASIN: "G3", Title: "Gamma"},
			{ASIN: "A1", Title: "Alpha", IconURL: icon("alpha.png")},
			{ASIN: "B2", Title: "Beta", IconURL: icon("beta.png")},
		},
		[]testsupport.InstallRow{
			{ASIN: "A1", Title: "Alpha", InstallDirectory: alphaDir, Installed: 1},
			{ASIN: "B2", Title: "Beta", InstallDirectory: betaDir, Installed: 1},
		},
	))
	binDir := testsupport.StubBinaries(t, filepath.Join(testsupport.BaseDir(cfg), "bin"), "opener")
	cfg.Launch.Opener = filepath.Join(binDir, "opener")

	configPath := filepath.Join(testsupport.BaseDir(cfg), "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		gamesDir:   gamesDir,
		alphaDir:   alphaDir,
		betaDir:    betaDir,
		openerArgs: filepath.Join(binDir, "opener.args"),
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
cache_dir = %q
cache_file = %q
image_dir = %q
log_dir = %q
product_db = %q
install_db = %q

[launch]
protocol_scheme = %q
opener = %q

[images]
timeout_seconds = 5

[logging]
level = "error"
`,
		cfg.Paths.CacheDir,
		cfg.Paths.CacheFile,
		cfg.Paths.ImageDir,
		cfg.Paths.LogDir,
		cfg.Paths.ProductDB,
		cfg.Paths.InstallDB,
		cfg.Launch.ProtocolScheme,
		cfg.Launch.Opener,
	)
	testsupport.WriteFile(t, path, []byte(content))
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireNotContains(t *testing.T, output, substr string) {
	t.Helper()
	if strings.Contains(output, substr) {
		t.Fatalf("expected %q not to contain %q", output, substr)
	}
}
