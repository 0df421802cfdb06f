//go:build windows

package osutil

const exeSuffix = ".exe"

// WaitOnProcess is a no-op on Windows; launched applications are detached
// and the workstation manages its own lifetime. The function exists so the
// call sites stay portable.
func WaitOnProcess(pid int) {
}
