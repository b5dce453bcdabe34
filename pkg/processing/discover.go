package processing

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/systemstart/bootstrap/pkg/api"
)

// ErrManifestNotFound is returned when no manifest exists in start or its parents.
var ErrManifestNotFound = errors.New("no " + api.ManifestFilename + " found")

// FindManifest walks from start towards the filesystem root looking for a
// .bootstrap.yaml. A maxLevels of -1 means unlimited, 0 means start only.
func FindManifest(start string, maxLevels int) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving start directory: %w", err)
	}

	for level := 0; maxLevels < 0 || level <= maxLevels; level++ {
		candidate := filepath.Join(dir, api.ManifestFilename)
		st, err := os.Stat(candidate)
		switch {
		case err == nil && !st.IsDir():
			return candidate, nil
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return "", fmt.Errorf("checking %s: %w", candidate, err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", ErrManifestNotFound
}

// ResolveManifest loads the manifest at path, or discovers one from start.
// Without a manifest the built-in default anchored at start is used.
func ResolveManifest(path, start string, maxLevels int) (*api.Manifest, error) {
	if path != "" {
		return api.LoadManifest(path)
	}

	found, err := FindManifest(start, maxLevels)
	if errors.Is(err, ErrManifestNotFound) {
		slog.Info("no manifest found, using built-in steps", "start", start)
		abs, absErr := filepath.Abs(start)
		if absErr != nil {
			return nil, fmt.Errorf("resolving start directory: %w", absErr)
		}
		return api.DefaultManifest(abs)
	}
	if err != nil {
		return nil, err
	}

	slog.Info("using manifest", "path", found)
	return api.LoadManifest(found)
}
