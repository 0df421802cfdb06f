// Package osutil holds the small OS wrappers the SOCET GXP workflows need:
// launching the workstation executable, waiting on processes, normalizing
// local paths, and sleeping. The vendor install is Windows-native, so path
// handling keeps the backslash conventions of the workstation even when the
// tools run elsewhere.
package osutil

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// gxpInstallEnv names the environment variable that points at the bin
// directory of the SOCET GXP install. It is set by the start_gxp launcher
// scripts that ship with the workstation.
const gxpInstallEnv = "SOCETGXPEXE"

// StartApplication launches the named application with the platform
// executable suffix appended, detached from the caller's streams. It returns
// the PID of the new process, or 0 after printing the launch error.
//
// The original workstation template returned a fixed marker here instead of
// the PID; see DESIGN.md for why the real PID is returned now.
func StartApplication(application string) int {
	if strings.TrimSpace(application) == "" {
		return 0
	}

	cmd := exec.Command(application + exeSuffix)
	if err := cmd.Start(); err != nil {
		fmt.Printf("REPORTED ERROR: %v\n", err)
		return 0
	}

	pid := cmd.Process.Pid

	// Reap in the background so the child never lingers as a zombie.
	go func() { _, _ = cmd.Process.Wait() }()

	return pid
}

// StartGxpApplication launches the SOCET GXP workstation executable from the
// install directory named by SOCETGXPEXE. A missing variable is recoverable:
// it is reported to stdout and 0 is returned.
func StartGxpApplication() int {
	path, ok := os.LookupEnv(gxpInstallEnv)
	if !ok || path == "" {
		fmt.Println(gxpInstallEnv + " is not set.")
		return 0
	}

	return StartApplication(path + `\SocetGxp`)
}

// Sleep blocks the calling goroutine for the given number of seconds.
func Sleep(seconds int) {
	time.Sleep(time.Duration(seconds) * time.Second)
}
