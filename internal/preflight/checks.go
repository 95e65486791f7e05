package preflight

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"twitch/internal/gamecache"
	"twitch/internal/launcher"
	"twitch/internal/registry"
)

// CheckRegistry verifies a registry database exists and satisfies its column contract.
func CheckRegistry(ctx context.Context, name, path string, check func(context.Context, string) error) Result {
	if err := check(ctx, path); err != nil {
		var schemaErr *registry.SchemaError
		switch {
		case errors.As(err, &schemaErr):
			if len(schemaErr.Missing) == 0 {
				return Result{Name: name, Detail: fmt.Sprintf("%s (error: no %s table)", path, schemaErr.Table)}
			}
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: missing columns %s)", path, strings.Join(schemaErr.Missing, ", "))}
		case errors.Is(err, registry.ErrSourceUnavailable):
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: not found)", path)}
		default:
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
		}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (schema ok)", path)}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := checkWritable(path); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckCache verifies the cache parses. A cache that has not been built yet passes.
func CheckCache(name, path string) Result {
	games, err := gamecache.NewStore(path, nil).Load()
	switch {
	case err == nil:
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d games)", path, len(games))}
	case errors.Is(err, gamecache.ErrCacheMissing):
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (not built yet)", path)}
	case errors.Is(err, gamecache.ErrCacheCorrupt):
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: corrupt, run twitch --refresh)", path)}
	default:
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
}

// CheckOpener verifies the command used for protocol handoff is available.
// Only indirect launches need it, so a failure is optional.
func CheckOpener(name, configured, goos string) Result {
	res := Result{Name: name, Optional: true}
	var command string
	switch {
	case strings.TrimSpace(configured) != "":
		opener, err := launcher.ParseOpener(configured)
		if err != nil {
			res.Detail = fmt.Sprintf("error: %v", err)
			return res
		}
		command = opener.Name
	case goos == "windows":
		res.Passed = true
		res.Detail = "ShellExecute"
		return res
	case goos == "darwin":
		command = "open"
	default:
		command = "xdg-open"
	}

	path, err := exec.LookPath(command)
	if err != nil {
		res.Detail = fmt.Sprintf("binary %q not found", command)
		return res
	}
	res.Passed = true
	res.Detail = path
	return res
}
