package scoped

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
)

const defaultPrefix = "forcelab-"

// TempDirOptions configures a temporary-directory scope.
type TempDirOptions struct {
	Root   string // Parent directory; empty means the platform temp root
	Prefix string // Directory name prefix; empty means "forcelab-"
	Keep   bool   // Skip cleanup, leaving the directory for inspection
}

// TempDir creates a uniquely named empty directory under the platform temp
// root, runs fn with its path, and recursively deletes it afterwards.
//
// Cleanup failures propagate, joined with fn's error if both fail.
func TempDir(fn func(dir string) error) error {
	return TempDirWith(TempDirOptions{}, fn)
}

// TempDirWith is TempDir with explicit options.
func TempDirWith(opts TempDirOptions, fn func(dir string) error) (err error) {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = defaultPrefix
	}

	dir, merr := os.MkdirTemp(opts.Root, prefix+"*")
	if merr != nil {
		return fmt.Errorf("failed to create temporary directory: %w", merr)
	}

	scopeID := uuid.NewString()
	logger.Debug().Str("scope_id", scopeID).Str("dir", dir).Msg("created temporary directory")

	// Cleanup runs on every exit path, including a panicking fn.
	defer func() {
		if opts.Keep {
			logger.Debug().Str("scope_id", scopeID).Str("dir", dir).Msg("keeping temporary directory")
			return
		}
		if rerr := os.RemoveAll(dir); rerr != nil {
			err = errors.Join(err, fmt.Errorf("failed to remove temporary directory %q: %w", dir, rerr))
			return
		}
		logger.Debug().Str("scope_id", scopeID).Str("dir", dir).Msg("removed temporary directory")
	}()

	return fn(dir)
}
