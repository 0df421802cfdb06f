// Package runner starts and tracks the external photogrammetry programs the
// workflows depend on (pc_align, pedr2tab, launched workstation tools). Each
// process runs in its own process group with combined stdout/stderr capture,
// so a driver can stream tool output while it runs and inspect it afterwards.
package runner

import (
	"errors"
	"os/exec"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ToolState mirrors the coarse lifecycle of a tracked tool process.
type ToolState int

const (
	ToolStateUnspecified ToolState = iota
	ToolStateRunning
	ToolStateStopped
)

// Command captures the invocation used to start a tool.
type Command struct {
	Name string
	Args []string
}

// ToolStatus captures runtime state and timestamps for a tracked tool.
type ToolStatus struct {
	State     ToolState
	ExitCode  *int
	StartTime time.Time
	EndTime   *time.Time
}

// Runner tracks tool processes started by this process.
type Runner struct {
	mu    sync.RWMutex
	tools map[string]*toolEntry
	log   *zap.Logger
}

type toolEntry struct {
	id      string
	command Command
	cmd     *exec.Cmd

	mu       sync.RWMutex
	state    ToolState
	exitCode *int
	start    time.Time
	end      *time.Time
	out      *Capture
	pid      int
}

// NewRunner creates an empty runner. A nil logger disables logging.
func NewRunner(log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{tools: make(map[string]*toolEntry), log: log}
}

// StartResult identifies a started tool and its initial status.
type StartResult struct {
	ID     string
	PID    int
	Status ToolStatus
}

// Start launches a tool with stderr piped into the same capture as stdout,
// matching how the workflows have always collected tool output. It returns a
// generated identifier for later Status/Output/Stop calls.
func (r *Runner) Start(name string, args ...string) (*StartResult, error) {
	if name == "" {
		return nil, errors.New("runner: command name is required")
	}

	id := uuid.NewString()

	cmd := exec.Command(name, args...)
	cmd.SysProcAttr = sysProcAttr()

	out := NewCapture()
	cmd.Stdout = out
	cmd.Stderr = out

	entry := &toolEntry{
		id:      id,
		command: Command{Name: name, Args: append([]string(nil), args...)},
		cmd:     cmd,
		state:   ToolStateRunning,
		start:   time.Now(),
		out:     out,
	}

	r.log.Info("starting tool", zap.String("id", id), zap.String("command", name), zap.Strings("args", args))
	if err := cmd.Start(); err != nil {
		r.log.Error("tool failed to start", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	entry.pid = cmd.Process.Pid

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	// Waiter
	go func() {
		err := <-done

		entry.mu.Lock()
		if err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				code := exitErr.ExitCode()
				entry.exitCode = &code
			}
		} else {
			code := 0
			entry.exitCode = &code
		}
		now := time.Now()
		entry.end = &now
		entry.state = ToolStateStopped
		entry.mu.Unlock()

		// Close after the status transition so a drained output channel
		// implies the final status is visible.
		out.Close()

		if err != nil {
			r.log.Info("tool finished with error", zap.String("id", id), zap.Error(err))
		} else {
			r.log.Info("tool finished", zap.String("id", id))
		}
	}()

	r.mu.Lock()
	r.tools[id] = entry
	r.mu.Unlock()

	return &StartResult{ID: id, PID: entry.pid, Status: entry.snapshot()}, nil
}

// Status returns the command and current status of a tracked tool.
func (r *Runner) Status(id string) (Command, ToolStatus, error) {
	entry, err := r.get(id)
	if err != nil {
		return Command{}, ToolStatus{}, err
	}
	return entry.command, entry.snapshot(), nil
}

// Output returns a channel replaying the tool's combined output from the
// beginning and following it live until the process exits.
func (r *Runner) Output(id string) (<-chan []byte, error) {
	entry, err := r.get(id)
	if err != nil {
		return nil, err
	}
	return entry.out.Subscribe(5), nil
}

// Stop kills the tool's process group and waits briefly for the status to
// transition. Stopping an already-stopped tool returns its final status.
func (r *Runner) Stop(id string) (ToolStatus, error) {
	entry, err := r.get(id)
	if err != nil {
		return ToolStatus{}, err
	}

	entry.mu.RLock()
	stopped := entry.state == ToolStateStopped
	entry.mu.RUnlock()
	if stopped {
		return entry.snapshot(), nil
	}

	killProcessGroup(entry.cmd, entry.pid)

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		st := entry.snapshot()
		if st.State == ToolStateStopped {
			return st, nil
		}
		time.Sleep(10 * time.Millisecond)
	}

	return entry.snapshot(), nil
}

func (r *Runner) get(id string) (*toolEntry, error) {
	r.mu.RLock()
	entry := r.tools[id]
	r.mu.RUnlock()
	if entry == nil {
		return nil, errors.New("runner: unknown tool id " + id)
	}
	return entry, nil
}

func (e *toolEntry) snapshot() ToolStatus {
	e.mu.RLock()
	defer e.mu.RUnlock()

	st := ToolStatus{State: e.state, StartTime: e.start}
	if e.exitCode != nil {
		code := *e.exitCode
		st.ExitCode = &code
	}
	if e.end != nil {
		t := *e.end
		st.EndTime = &t
	}
	return st
}
