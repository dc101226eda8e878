// Package datafiles resolves reference files packaged with forcelab.
//
// In the source distribution these files live under datafiles/data/; in a
// built binary they travel embedded. Path extracts an embedded file to a
// per-process cache directory when a caller needs a real filesystem path
// (external tools, memory-mapped readers). Setting FORCELAB_DATA_DIR points
// resolution at an on-disk tree instead, for development against modified
// data.
package datafiles

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sync"
)

//go:embed data
var dataFS embed.FS

// EnvDataDir is the environment variable that overrides the embedded data
// tree with an on-disk directory.
const EnvDataDir = "FORCELAB_DATA_DIR"

// ErrNotFound reports a packaged data file that does not exist.
var ErrNotFound = errors.New("packaged data file not found")

var (
	cacheMu  sync.Mutex
	cacheDir string
)

// Open opens a packaged data file by its path relative to the data root.
func Open(rel string) (fs.File, error) {
	if root := os.Getenv(EnvDataDir); root != "" {
		full, err := overridePath(root, rel)
		if err != nil {
			return nil, err
		}
		return os.Open(full)
	}
	full := path.Join("data", rel)
	f, err := dataFS.Open(full)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not in the packaged data tree", ErrNotFound, full)
	}
	return f, nil
}

// ReadFile reads a packaged data file by its path relative to the data root.
func ReadFile(rel string) ([]byte, error) {
	f, err := Open(rel)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", rel, err)
	}
	return buf, nil
}

// Path returns an absolute filesystem path to a packaged data file.
//
// With FORCELAB_DATA_DIR set, the file is resolved against that directory
// and must already exist there. Otherwise the embedded copy is extracted
// once into a per-process cache directory. A missing file fails with an
// error naming the attempted absolute path.
func Path(rel string) (string, error) {
	if root := os.Getenv(EnvDataDir); root != "" {
		return overridePath(root, rel)
	}

	full := path.Join("data", rel)
	data, err := dataFS.ReadFile(full)
	if err != nil {
		return "", fmt.Errorf("%w: %s is not in the packaged data tree", ErrNotFound, full)
	}

	cacheMu.Lock()
	defer cacheMu.Unlock()

	if cacheDir == "" {
		dir, err := os.MkdirTemp("", "forcelab-data-")
		if err != nil {
			return "", fmt.Errorf("failed to create data cache directory: %w", err)
		}
		cacheDir = dir
	}

	target := filepath.Join(cacheDir, filepath.FromSlash(rel))
	if _, err := os.Stat(target); err == nil {
		return target, nil
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("failed to create data cache subdirectory: %w", err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to extract %q: %w", rel, err)
	}
	return target, nil
}

// overridePath resolves rel inside the FORCELAB_DATA_DIR tree.
func overridePath(root, rel string) (string, error) {
	abs, err := filepath.Abs(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q under %q: %w", rel, root, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("%w: %s does not exist (is %s pointing at a data directory?)",
			ErrNotFound, abs, EnvDataDir)
	}
	return abs, nil
}
