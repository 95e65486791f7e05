package config

import (
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var schemePattern = regexp.MustCompile(`^[a-z][a-z0-9+.\-]*$`)

func init() {
	validation.ErrorTag = "toml"
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateLaunch(); err != nil {
		return err
	}
	if err := c.validateImages(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	p := &c.Paths
	if err := validation.ValidateStruct(p,
		validation.Field(&p.CacheDir, validation.Required),
		validation.Field(&p.CacheFile, validation.Required),
		validation.Field(&p.ImageDir, validation.Required),
		validation.Field(&p.LogDir, validation.Required),
		validation.Field(&p.ProductDB, validation.Required),
		validation.Field(&p.InstallDB, validation.Required),
	); err != nil {
		return fmt.Errorf("paths: %w", err)
	}
	return nil
}

func (c *Config) validateLaunch() error {
	l := &c.Launch
	if err := validation.ValidateStruct(l,
		validation.Field(&l.ProtocolScheme, validation.Required, validation.Match(schemePattern)),
	); err != nil {
		return fmt.Errorf("launch: %w", err)
	}
	return nil
}

func (c *Config) validateImages() error {
	i := &c.Images
	if err := validation.ValidateStruct(i,
		validation.Field(&i.TimeoutSeconds, validation.Required, validation.Min(1)),
		validation.Field(&i.Concurrency, validation.Required, validation.Min(1), validation.Max(32)),
	); err != nil {
		return fmt.Errorf("images: %w", err)
	}
	return nil
}

func (c *Config) validateLogging() error {
	l := &c.Logging
	if err := validation.ValidateStruct(l,
		validation.Field(&l.Format, validation.Required, validation.In("console", "json")),
		validation.Field(&l.Level, validation.Required, validation.In("debug", "info", "warn", "error")),
		validation.Field(&l.MaxSizeMB, validation.Min(1)),
	); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}
