package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	c.applyEnv()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLaunch()
	c.normalizeImages()
	c.normalizeLogging()
	return nil
}

// applyEnv lets environment variables override file values for the locations
// that differ most between machines.
func (c *Config) applyEnv() {
	if value, ok := os.LookupEnv("TWITCH_CACHE_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.CacheDir = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv("TWITCH_PRODUCT_DB"); ok && strings.TrimSpace(value) != "" {
		c.Paths.ProductDB = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv("TWITCH_INSTALL_DB"); ok && strings.TrimSpace(value) != "" {
		c.Paths.InstallDB = strings.TrimSpace(value)
	}
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.CacheDir) == "" {
		c.Paths.CacheDir = defaultCacheDir
	}
	if c.Paths.CacheDir, err = expandPath(strings.TrimSpace(c.Paths.CacheDir)); err != nil {
		return fmt.Errorf("paths.cache_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.CacheFile) == "" {
		c.Paths.CacheFile = filepath.Join(c.Paths.CacheDir, defaultCacheFileName)
	}
	if c.Paths.CacheFile, err = expandPath(strings.TrimSpace(c.Paths.CacheFile)); err != nil {
		return fmt.Errorf("paths.cache_file: %w", err)
	}
	if strings.TrimSpace(c.Paths.ImageDir) == "" {
		c.Paths.ImageDir = filepath.Join(c.Paths.CacheDir, defaultImageDirName)
	}
	if c.Paths.ImageDir, err = expandPath(strings.TrimSpace(c.Paths.ImageDir)); err != nil {
		return fmt.Errorf("paths.image_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = filepath.Join(c.Paths.CacheDir, defaultLogDirName)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ProductDB) == "" {
		c.Paths.ProductDB = defaultProductDB()
	}
	if c.Paths.ProductDB, err = expandPath(strings.TrimSpace(c.Paths.ProductDB)); err != nil {
		return fmt.Errorf("paths.product_db: %w", err)
	}
	if strings.TrimSpace(c.Paths.InstallDB) == "" {
		c.Paths.InstallDB = defaultInstallDB()
	}
	if c.Paths.InstallDB, err = expandPath(strings.TrimSpace(c.Paths.InstallDB)); err != nil {
		return fmt.Errorf("paths.install_db: %w", err)
	}
	return nil
}

func (c *Config) normalizeLaunch() {
	c.Launch.ProtocolScheme = strings.ToLower(strings.TrimSpace(c.Launch.ProtocolScheme))
	c.Launch.ProtocolScheme = strings.TrimSuffix(c.Launch.ProtocolScheme, "://")
	if c.Launch.ProtocolScheme == "" {
		c.Launch.ProtocolScheme = defaultProtocolScheme
	}
	c.Launch.Opener = strings.TrimSpace(c.Launch.Opener)
}

func (c *Config) normalizeImages() {
	if c.Images.TimeoutSeconds <= 0 {
		c.Images.TimeoutSeconds = defaultImageTimeoutSeconds
	}
	if c.Images.Concurrency == 0 {
		c.Images.Concurrency = defaultImageConcurrency
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.MaxSizeMB <= 0 {
		c.Logging.MaxSizeMB = defaultLogMaxSizeMB
	}
	if c.Logging.MaxBackups < 0 {
		c.Logging.MaxBackups = 0
	}
	if c.Logging.MaxAgeDays < 0 {
		c.Logging.MaxAgeDays = 0
	}
}
