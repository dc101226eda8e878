// Package scoped provides scoped filesystem resources: a bounded
// working-directory change and a temporary-directory lifecycle. A scoped
// resource is acquired at the start of a bounded block and guaranteed
// released when that block ends, regardless of why it ended.
//
// The process working directory is global mutable state, so InDir scopes on
// different goroutines serialize behind a single session lock; scopes on one
// call stack nest freely. Temporary-directory scopes are independent and may
// run concurrently.
//
// Example:
//
//	err := scoped.TempDir(func(dir string) error {
//	    return scoped.InDir(dir, func() error {
//	        // relative paths now resolve inside dir
//	        return writeIntermediates()
//	    })
//	})
package scoped
