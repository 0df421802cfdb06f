package osutil

import (
	"io"
	"os"
	"strings"
	"testing"
	"time"
)

// captureStdout runs fn with os.Stdout redirected to a pipe and returns what
// was written.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe failed: %v", err)
	}
	os.Stdout = w
	defer func() { os.Stdout = old }()

	fn()

	_ = w.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read pipe failed: %v", err)
	}
	return string(data)
}

func TestNormalizeLocalPathEmpty(t *testing.T) {
	if got := NormalizeLocalPath(""); got != "" {
		t.Fatalf("expected empty result, got %q", got)
	}
}

func TestNormalizeLocalPathDriveLetter(t *testing.T) {
	in := `C:\foo`
	if got := NormalizeLocalPath(in); got != in {
		t.Fatalf("expected drive-letter path unchanged, got %q", got)
	}
}

func TestNormalizeLocalPathRelative(t *testing.T) {
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	want := cwd + `\` + `foo\bar`
	if got := NormalizeLocalPath(`foo\bar`); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestNormalizeLocalPathShortDrivePrefix(t *testing.T) {
	// A bare drive root is too short for the drive-letter test and gets the
	// cwd prefix, matching the historical behavior.
	cwd, _ := os.Getwd()
	want := cwd + `\` + `C:\`
	if got := NormalizeLocalPath(`C:\`); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestStartApplicationEmptyName(t *testing.T) {
	if pid := StartApplication(""); pid != 0 {
		t.Fatalf("expected failure sentinel for empty name, got %d", pid)
	}
}

func TestStartApplicationLaunchFailure(t *testing.T) {
	out := captureStdout(t, func() {
		if pid := StartApplication("definitely-not-a-real-binary-name"); pid != 0 {
			t.Errorf("expected failure sentinel, got %d", pid)
		}
	})
	if !strings.Contains(out, "REPORTED ERROR:") {
		t.Fatalf("expected launch error report, got %q", out)
	}
}

func TestStartGxpApplicationEnvUnset(t *testing.T) {
	t.Setenv(gxpInstallEnv, "")
	os.Unsetenv(gxpInstallEnv)

	out := captureStdout(t, func() {
		if pid := StartGxpApplication(); pid != 0 {
			t.Errorf("expected failure sentinel with unset env, got %d", pid)
		}
	})
	if !strings.Contains(out, "SOCETGXPEXE is not set.") {
		t.Fatalf("expected missing-variable message, got %q", out)
	}
}

func TestStartGxpApplicationUsesInstallPath(t *testing.T) {
	t.Setenv(gxpInstallEnv, "X")

	out := captureStdout(t, func() {
		// The composed path does not exist, so the launcher reports the error;
		// the report carries the path it was invoked with.
		if pid := StartGxpApplication(); pid != 0 {
			t.Errorf("expected failure sentinel, got %d", pid)
		}
	})
	if !strings.Contains(out, `X\SocetGxp`) {
		t.Fatalf("expected launcher to be invoked with X\\SocetGxp, got %q", out)
	}
}

func TestSleepBlocks(t *testing.T) {
	start := time.Now()
	Sleep(1)
	if elapsed := time.Since(start); elapsed < time.Second {
		t.Fatalf("Sleep returned early after %v", elapsed)
	}
}
