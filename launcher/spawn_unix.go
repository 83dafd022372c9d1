//go:build linux || darwin

package launcher

import (
	"os/exec"
	"syscall"
)

// spawn starts argv in its own session so it outlives us.
func spawn(argv []string) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
