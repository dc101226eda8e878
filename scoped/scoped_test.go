package scoped

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInDirChangesAndRestores(t *testing.T) {
	before, err := os.Getwd()
	require.NoError(t, err)

	target := t.TempDir()
	var seen string
	err = InDir(target, func() error {
		seen, _ = os.Getwd()
		return nil
	})
	require.NoError(t, err)

	// macOS resolves /tmp symlinks, so compare the real paths.
	wantSeen, err := filepath.EvalSymlinks(target)
	require.NoError(t, err)
	gotSeen, err := filepath.EvalSymlinks(seen)
	require.NoError(t, err)
	assert.Equal(t, wantSeen, gotSeen)

	after, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestInDirRestoresOnError(t *testing.T) {
	before, err := os.Getwd()
	require.NoError(t, err)

	boom := errors.New("body failed")
	err = InDir(t.TempDir(), func() error { return boom })
	assert.ErrorIs(t, err, boom)

	after, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestInDirRelativePath(t *testing.T) {
	parent := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(parent, "sub"), 0o755))

	err := InDir(parent, func() error {
		return InDir("sub", func() error {
			got, err := os.Getwd()
			if err != nil {
				return err
			}
			if filepath.Base(got) != "sub" {
				t.Errorf("working directory = %q, want .../sub", got)
			}
			return nil
		})
	})
	require.NoError(t, err)
}

func TestInDirRestoresOnPanic(t *testing.T) {
	before, err := os.Getwd()
	require.NoError(t, err)

	func() {
		defer func() {
			require.NotNil(t, recover(), "body panic must propagate")
		}()
		_ = InDir(t.TempDir(), func() error { panic("body panicked") })
	}()

	after, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, before, after, "working directory must be restored after a panicking body")
}

func TestInDirConcurrentScopesSerialize(t *testing.T) {
	// Two goroutines repeatedly enter their own parent and then the
	// relative "sub" inside it. Serialization means the relative path must
	// always resolve against that goroutine's own scope.
	makeParent := func() string {
		parent := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(parent, "sub"), 0o755))
		return parent
	}
	parents := []string{makeParent(), makeParent()}

	var wg sync.WaitGroup
	errs := make(chan error, len(parents))
	for _, parent := range parents {
		wg.Add(1)
		go func(parent string) {
			defer wg.Done()
			want, err := filepath.EvalSymlinks(filepath.Join(parent, "sub"))
			if err != nil {
				errs <- err
				return
			}
			for i := 0; i < 20; i++ {
				err := InDir(parent, func() error {
					return InDir("sub", func() error {
						got, err := os.Getwd()
						if err != nil {
							return err
						}
						got, err = filepath.EvalSymlinks(got)
						if err != nil {
							return err
						}
						if got != want {
							return fmt.Errorf("scope entered %q, want %q", got, want)
						}
						return nil
					})
				})
				if err != nil {
					errs <- err
					return
				}
			}
		}(parent)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
}

func TestInDirMissingDirectory(t *testing.T) {
	err := InDir(filepath.Join(t.TempDir(), "nope"), func() error { return nil })
	require.Error(t, err)
}

func TestInDirRejectsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	err := InDir(path, func() error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestTempDirLifecycle(t *testing.T) {
	var dir string
	err := TempDir(func(d string) error {
		dir = d
		info, err := os.Stat(d)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			t.Errorf("%q is not a directory", d)
		}
		// Populate it: cleanup must be recursive.
		return os.WriteFile(filepath.Join(d, "scratch.bin"), []byte("data"), 0o644)
	})
	require.NoError(t, err)

	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr), "temporary directory still exists after scope exit")
}

func TestTempDirCleansUpOnError(t *testing.T) {
	boom := errors.New("body failed")
	var dir string
	err := TempDir(func(d string) error {
		dir = d
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr), "temporary directory still exists after failed scope")
}

func TestTempDirCleansUpOnPanic(t *testing.T) {
	var dir string
	func() {
		defer func() {
			require.NotNil(t, recover(), "body panic must propagate")
		}()
		_ = TempDir(func(d string) error {
			dir = d
			panic("body panicked")
		})
	}()

	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr), "temporary directory still exists after panicking scope")
}

func TestTempDirUniquePerScope(t *testing.T) {
	var first string
	require.NoError(t, TempDir(func(d string) error { first = d; return nil }))

	var second string
	require.NoError(t, TempDir(func(d string) error { second = d; return nil }))

	assert.NotEqual(t, first, second)
}

func TestTempDirWithKeep(t *testing.T) {
	var dir string
	err := TempDirWith(TempDirOptions{Keep: true}, func(d string) error {
		dir = d
		return nil
	})
	require.NoError(t, err)

	_, statErr := os.Stat(dir)
	require.NoError(t, statErr, "Keep must retain the directory")
	require.NoError(t, os.RemoveAll(dir))
}

func TestTempDirWithRootAndPrefix(t *testing.T) {
	root := t.TempDir()
	err := TempDirWith(TempDirOptions{Root: root, Prefix: "scratch-"}, func(d string) error {
		assert.Equal(t, root, filepath.Dir(d))
		assert.Contains(t, filepath.Base(d), "scratch-")
		return nil
	})
	require.NoError(t, err)
}

func TestTempDirCleanupFailurePropagates(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission-based removal failure is not portable to Windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}

	err := TempDir(func(d string) error {
		sub := filepath.Join(d, "locked")
		if err := os.Mkdir(sub, 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(sub, "f"), []byte("x"), 0o644); err != nil {
			return err
		}
		// Make the subdirectory unreadable so RemoveAll fails.
		if err := os.Chmod(sub, 0o000); err != nil {
			return err
		}
		t.Cleanup(func() {
			_ = os.Chmod(sub, 0o755)
			_ = os.RemoveAll(d)
		})
		return nil
	})
	require.Error(t, err, "cleanup failure must propagate")
	assert.Contains(t, err.Error(), "failed to remove temporary directory")
}
