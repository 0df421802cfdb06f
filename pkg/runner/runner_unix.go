//go:build !windows

package runner

import (
	"os/exec"
	"syscall"
)

func sysProcAttr() *syscall.SysProcAttr {
	// New process group so children can be killed as a unit.
	return &syscall.SysProcAttr{Setpgid: true}
}

func killProcessGroup(cmd *exec.Cmd, pid int) {
	// Negative PID addresses the whole process group.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
