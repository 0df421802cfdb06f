//go:build !windows

package osutil

import "golang.org/x/sys/unix"

const exeSuffix = ""

// WaitOnProcess blocks until the child process with the given PID exits.
// Errors (including "not a child of this process") are ignored; the wait is
// best effort.
func WaitOnProcess(pid int) {
	var status unix.WaitStatus
	for {
		wpid, err := unix.Wait4(pid, &status, 0, nil)
		if err == unix.EINTR {
			continue
		}
		if err != nil || wpid == pid {
			return
		}
	}
}
