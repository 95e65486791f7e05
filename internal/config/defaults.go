package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultConfigPath          = "~/.config/twitch/config.toml"
	defaultCacheDir            = "~/.twitch"
	defaultCacheFileName       = "twitch_games.json"
	defaultImageDirName        = "images"
	defaultLogDirName          = "logs"
	defaultProtocolScheme      = "twitch"
	defaultImageTimeoutSeconds = 30
	defaultImageConcurrency    = 4
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultLogMaxSizeMB        = 10
	defaultLogMaxBackups       = 3
	defaultLogMaxAgeDays       = 30

	registrySubdir  = "Twitch/Games/Sql"
	productDBName   = "GameProductInfo.sqlite"
	installDBName   = "GameInstallInfo.sqlite"
	fallbackDataDir = "~/.config"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CacheDir:  defaultCacheDir,
			ProductDB: defaultProductDB(),
			InstallDB: defaultInstallDB(),
		},
		Launch: Launch{
			ProtocolScheme: defaultProtocolScheme,
		},
		Images: Images{
			TimeoutSeconds: defaultImageTimeoutSeconds,
			Concurrency:    defaultImageConcurrency,
		},
		Logging: Logging{
			Format:     defaultLogFormat,
			Level:      defaultLogLevel,
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
			MaxAgeDays: defaultLogMaxAgeDays,
		},
	}
}

// defaultProductDB mirrors the client layout: the product catalog lives under
// the roaming application data directory.
func defaultProductDB() string {
	return filepath.Join(registryBase("APPDATA"), filepath.FromSlash(registrySubdir), productDBName)
}

// defaultInstallDB mirrors the client layout: install state lives under the
// machine-wide program data directory.
func defaultInstallDB() string {
	return filepath.Join(registryBase("PROGRAMDATA"), filepath.FromSlash(registrySubdir), installDBName)
}

func registryBase(envKey string) string {
	if base, ok := os.LookupEnv(envKey); ok && strings.TrimSpace(base) != "" {
		return strings.TrimSpace(base)
	}
	return fallbackDataDir
}
