//go:build linux || darwin

package util

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// CheckExecutable verifies that fname is a regular file current user may execute.
func CheckExecutable(fname string) error {

	fi, err := os.Stat(fname)
	if err != nil || !fi.Mode().IsRegular() {
		return fmt.Errorf("not a regular file %s", fname)
	}

	if err := unix.Access(fname, unix.X_OK); err != nil {
		return fmt.Errorf("file %s is not executable (mode %o): %w", fname, fi.Mode().Perm(), err)
	}
	return nil
}
