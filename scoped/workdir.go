package scoped

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// logger receives scope lifecycle events. It defaults to a no-op logger so
// library consumers pay nothing; the CLI installs a real one.
var logger = zerolog.Nop()

// SetLogger installs the logger used for scope lifecycle events.
func SetLogger(l zerolog.Logger) {
	logger = l
}

// cwdSession serializes working-directory scopes across goroutines: the CWD
// is process-global, so unrelated scopes must not interleave. The lock is
// reentrant for the holding goroutine, because scopes nest on one call stack
// (InDir inside InDir, or inside a TempDir body) and fn runs synchronously.
type cwdSession struct {
	mu sync.Mutex // held by the outermost scope for its whole extent

	stateMu sync.Mutex
	owner   int64 // goroutine id of the holder, 0 when free
	depth   int
}

var session cwdSession

// enter acquires the session for the calling goroutine, re-entering if it
// already holds it.
func (s *cwdSession) enter() {
	gid := goroutineID()

	s.stateMu.Lock()
	if s.owner == gid {
		s.depth++
		s.stateMu.Unlock()
		return
	}
	s.stateMu.Unlock()

	s.mu.Lock()
	s.stateMu.Lock()
	s.owner = gid
	s.depth = 1
	s.stateMu.Unlock()
}

// exit releases one level of the session, freeing it at the outermost level.
func (s *cwdSession) exit() {
	s.stateMu.Lock()
	s.depth--
	release := s.depth == 0
	if release {
		s.owner = 0
	}
	s.stateMu.Unlock()

	if release {
		s.mu.Unlock()
	}
}

// goroutineID extracts the current goroutine's id from its stack header,
// "goroutine N [running]:". There is no runtime API for this.
func goroutineID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	fields := bytes.Fields(buf[:n])
	id, err := strconv.ParseInt(string(fields[1]), 10, 64)
	if err != nil {
		panic(fmt.Sprintf("cannot parse goroutine id from %q", buf[:n]))
	}
	return id
}

// InDir changes the process working directory to dir, runs fn, and restores
// the previous working directory on every exit path, including a panicking
// fn. dir must be an existing directory, absolute or relative to the current
// working directory. Scopes nest; unrelated goroutines' scopes serialize.
//
// fn's error is returned as-is. A failure to restore the working directory is
// joined with it rather than swallowed.
func InDir(dir string, fn func() error) (err error) {
	// Resolve inside the session so a relative dir cannot resolve against
	// another scope's temporarily-changed CWD.
	session.enter()
	defer session.exit()

	abs, aerr := filepath.Abs(dir)
	if aerr != nil {
		return fmt.Errorf("failed to resolve %q: %w", dir, aerr)
	}
	info, serr := os.Stat(abs)
	if serr != nil {
		return fmt.Errorf("cannot enter directory %q: %w", abs, serr)
	}
	if !info.IsDir() {
		return fmt.Errorf("cannot enter %q: not a directory", abs)
	}

	prev, gerr := os.Getwd()
	if gerr != nil {
		return fmt.Errorf("failed to capture working directory: %w", gerr)
	}
	if cerr := os.Chdir(abs); cerr != nil {
		return fmt.Errorf("failed to enter %q: %w", abs, cerr)
	}

	scopeID := uuid.NewString()
	logger.Debug().Str("scope_id", scopeID).Str("dir", abs).Msg("entered working-directory scope")

	defer func() {
		if cerr := os.Chdir(prev); cerr != nil {
			err = errors.Join(err, fmt.Errorf("failed to restore working directory %q: %w", prev, cerr))
			return
		}
		logger.Debug().Str("scope_id", scopeID).Str("dir", prev).Msg("restored working directory")
	}()

	return fn()
}
