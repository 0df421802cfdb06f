package runner

import (
	"context"
	"fmt"
	"io"
)

// Run starts a tool, streams its combined output to w as it arrives, and
// waits for completion. A nonzero exit code or a start failure is returned
// as an error; cancelling the context kills the tool's process group.
func (r *Runner) Run(ctx context.Context, w io.Writer, name string, args ...string) error {
	res, err := r.Start(name, args...)
	if err != nil {
		return err
	}

	out, err := r.Output(res.ID)
	if err != nil {
		return err
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for chunk := range out {
			if w != nil {
				_, _ = w.Write(chunk)
			}
		}
	}()

	select {
	case <-ctx.Done():
		_, _ = r.Stop(res.ID)
		<-done
		return ctx.Err()
	case <-done:
	}

	_, st, err := r.Status(res.ID)
	if err != nil {
		return err
	}
	if st.ExitCode == nil {
		return fmt.Errorf("%s: terminated without exit code", name)
	}
	if *st.ExitCode != 0 {
		return fmt.Errorf("%s: exit status %d", name, *st.ExitCode)
	}
	return nil
}

// Run is a convenience for one-shot tool invocations on a throwaway Runner.
func Run(ctx context.Context, w io.Writer, name string, args ...string) error {
	return NewRunner(nil).Run(ctx, w, name, args...)
}
