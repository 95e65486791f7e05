package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"twitch/internal/fileutil"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the cache location and the registry database files.
type Paths struct {
	CacheDir  string `toml:"cache_dir"`
	CacheFile string `toml:"cache_file"`
	ImageDir  string `toml:"image_dir"`
	LogDir    string `toml:"log_dir"`
	ProductDB string `toml:"product_db"`
	InstallDB string `toml:"install_db"`
}

// Launch contains settings used when a title is started.
type Launch struct {
	// ProtocolScheme prefixes protocol-handoff URLs ("<scheme>://fuel-launch/<id>").
	ProtocolScheme string `toml:"protocol_scheme"`
	// Opener overrides the platform URL handler (ShellExecute, open, xdg-open).
	Opener string `toml:"opener"`
}

// Images contains settings for thumbnail downloads.
type Images struct {
	TimeoutSeconds int `toml:"timeout_seconds"`
	// Concurrency caps simultaneous thumbnail downloads.
	Concurrency int `toml:"concurrency"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format     string `toml:"format"`
	Level      string `toml:"level"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// Config encapsulates all configuration values for twitch.
type Config struct {
	Paths   Paths   `toml:"paths"`
	Launch  Launch  `toml:"launch"`
	Images  Images  `toml:"images"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. It returns the
// config with every path expanded, the file path that was considered, and
// whether that file existed. Unknown keys are rejected.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolved, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}
	if exists {
		if err := decodeFile(resolved, &cfg); err != nil {
			return nil, "", false, err
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolved, exists, nil
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("parse config %s: unknown keys:\n%s", path, strict.String())
		}
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// resolveConfigPath returns the explicit path when one is given. Otherwise it
// picks the first existing file among the user config and ./twitch.toml, and
// falls back to the user config path when neither exists.
func resolveConfigPath(path string) (string, bool, error) {
	var candidates []string
	if strings.TrimSpace(path) != "" {
		candidates = []string{path}
	} else {
		candidates = []string{defaultConfigPath, "twitch.toml"}
	}

	var first string
	for _, candidate := range candidates {
		expanded, err := expandPath(candidate)
		if err != nil {
			return "", false, err
		}
		if first == "" {
			first = expanded
		}
		info, err := os.Stat(expanded)
		switch {
		case err == nil && !info.IsDir():
			return expanded, true, nil
		case err == nil:
			return "", false, fmt.Errorf("config path %s is a directory", expanded)
		case !errors.Is(err, fs.ErrNotExist):
			return "", false, fmt.Errorf("stat config: %w", err)
		}
	}
	return first, false, nil
}

// EnsureDirectories creates the cache, image, and log directories.
// Registry locations are owned by the distribution client and never created here.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.CacheDir, c.Paths.ImageDir, c.Paths.LogDir, filepath.Dir(c.Paths.CacheFile)}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// LogFile returns the path of the rotating log file.
func (c *Config) LogFile() string {
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return ""
	}
	return filepath.Join(c.Paths.LogDir, "twitch.log")
}

// expandPath resolves a leading ~ against the home directory and returns a
// clean absolute path. Empty input stays empty.
func expandPath(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	if value == "~" || strings.HasPrefix(value, "~/") || strings.HasPrefix(value, "~\\") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		value = filepath.Join(home, value[1:])
	}
	absolute, err := filepath.Abs(filepath.Clean(value))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", value, err)
	}
	return absolute, nil
}

// ExpandPath applies the config path rules (tilde, clean, absolute) to value.
func ExpandPath(value string) (string, error) {
	return expandPath(value)
}

// CreateSample writes the commented sample configuration to path, creating
// parent directories.
func CreateSample(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := fileutil.WriteFileAtomic(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
