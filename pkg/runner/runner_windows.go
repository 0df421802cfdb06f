//go:build windows

package runner

import (
	"os/exec"
	"syscall"
)

func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{}
}

func killProcessGroup(cmd *exec.Cmd, pid int) {
	if cmd.Process != nil {
		_ = cmd.Process.Kill()
	}
}
