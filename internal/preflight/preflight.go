package preflight

import (
	"context"
	"runtime"

	"twitch/internal/config"
	"twitch/internal/registry"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name     string
	Passed   bool
	Optional bool
	Detail   string
}

// RunAll executes every check for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	return []Result{
		CheckRegistry(ctx, "Product registry", cfg.Paths.ProductDB, registry.CheckProducts),
		CheckRegistry(ctx, "Install registry", cfg.Paths.InstallDB, registry.CheckInstalls),
		CheckDirectoryAccess("Cache directory", cfg.Paths.CacheDir),
		CheckCache("Game cache", cfg.Paths.CacheFile),
		CheckOpener("URL opener", cfg.Launch.Opener, runtime.GOOS),
	}
}

// Failed reports whether any required check failed.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed && !r.Optional {
			return true
		}
	}
	return false
}
