package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"

	"twitch/internal/catalog"
	"twitch/internal/logging"
)

// supportedVersions is the SchemaVersion range the resolver was written
// against. Manifests outside it still resolve; a warning is logged.
const supportedVersions = ">= 1, < 3"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Resolver resolves install directories into launch descriptors.
type Resolver struct {
	scheme      string
	constraints *semver.Constraints
	logger      *slog.Logger
}

// NewResolver builds a Resolver producing "<scheme>://fuel-launch/<id>" URLs
// for protocol-handoff titles.
func NewResolver(scheme string, logger *slog.Logger) *Resolver {
	constraints, err := semver.NewConstraint(supportedVersions)
	if err != nil {
		panic(fmt.Sprintf("manifest: bad version constraint: %v", err))
	}
	scheme = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(scheme)), "://")
	if scheme == "" {
		scheme = "twitch"
	}
	return &Resolver{
		scheme:      scheme,
		constraints: constraints,
		logger:      logging.NewComponentLogger(logger, "manifest"),
	}
}

// Load reads, validates and decodes installDir/fuel.json.
func Load(installDir string) (Fuel, error) {
	path := filepath.Join(installDir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Fuel{}, fmt.Errorf("%s: %w", path, ErrManifestMissing)
		}
		return Fuel{}, &InvalidError{Path: path, Err: err}
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	issues, err := Validate(data)
	if err != nil {
		return Fuel{}, err
	}
	if len(issues) > 0 {
		return Fuel{}, &InvalidError{Path: path, Issues: issues}
	}

	var fuel Fuel
	if err := json.Unmarshal(data, &fuel); err != nil {
		return Fuel{}, &InvalidError{Path: path, Err: err}
	}
	return fuel, nil
}

// Resolve implements catalog.Resolver.
func (r *Resolver) Resolve(installDir string) (catalog.Launch, error) {
	if strings.TrimSpace(installDir) == "" {
		return catalog.Launch{}, fmt.Errorf("empty install directory: %w", ErrManifestMissing)
	}
	fuel, err := Load(installDir)
	if err != nil {
		return catalog.Launch{}, err
	}
	r.checkVersion(installDir, fuel.Version())

	if fuel.ProtocolHandoff() {
		id := Basename(installDir)
		if id == "" {
			return catalog.Launch{}, &InvalidError{
				Path: filepath.Join(installDir, FileName),
				Err:  errors.New("install directory has no basename for protocol handoff"),
			}
		}
		return catalog.Launch{URL: r.scheme + "://fuel-launch/" + id}, nil
	}

	launch := catalog.Launch{
		Command: filepath.Join(installDir, filepath.FromSlash(fuel.Main.Command)),
		Args:    append([]string(nil), fuel.Main.Args...),
	}
	if fuel.Main.WorkingSubdirOverride != nil {
		launch.WorkingSubdirOverride = *fuel.Main.WorkingSubdirOverride
	}
	return launch, nil
}

func (r *Resolver) checkVersion(installDir, version string) {
	if version == "" {
		return
	}
	v, err := semver.NewVersion(version)
	if err != nil || !r.constraints.Check(v) {
		logging.WarnWithContext(r.logger, "unrecognised manifest schema version", "manifest_version_unknown",
			logging.String(logging.FieldPath, installDir),
			logging.String("schema_version", version),
			logging.String("supported", supportedVersions),
			logging.String(logging.FieldErrorHint, "update twitch if launches misbehave"),
			logging.String(logging.FieldImpact, "launch fields read on a best-effort basis"),
		)
	}
}

// Basename returns the last element of dir, treating both '/' and '\' as
// separators so registry paths written on Windows split the same everywhere.
func Basename(dir string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(dir), `/\`)
	if i := strings.LastIndexAny(trimmed, `/\`); i >= 0 {
		trimmed = trimmed[i+1:]
	}
	if strings.HasSuffix(trimmed, ":") {
		return ""
	}
	return trimmed
}
