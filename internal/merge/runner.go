package merge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

const stderrTailLimit = 64 * 1024

// ProcessResult captures how an external command ended.
type ProcessResult struct {
	ExitCode int
	Stderr   string
	TimedOut bool
	Err      error
}

// OK reports a clean zero exit.
func (r ProcessResult) OK() bool {
	return r.Err == nil && !r.TimedOut && r.ExitCode == 0
}

// CommandRunner executes name with args under timeout. A non-positive timeout
// means no limit beyond ctx.
type CommandRunner func(ctx context.Context, timeout time.Duration, name string, args ...string) ProcessResult

func runProcess(ctx context.Context, timeout time.Duration, name string, args ...string) ProcessResult {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	stderr := &tailBuffer{limit: stderrTailLimit}
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = stderr
	err := cmd.Run()

	result := ProcessResult{Stderr: stderr.String()}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		result.TimedOut = true
		result.ExitCode = -1
		result.Err = fmt.Errorf("%s timed out after %s", name, timeout)
		return result
	}
	if err != nil {
		result.ExitCode = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		}
		result.Err = fmt.Errorf("%s: %w", name, err)
	}
	return result
}

// tailBuffer keeps only the last limit bytes written to it.
type tailBuffer struct {
	buf   bytes.Buffer
	limit int
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	n := len(p)
	if len(p) >= t.limit {
		t.buf.Reset()
		t.buf.Write(p[len(p)-t.limit:])
		return n, nil
	}
	if over := t.buf.Len() + len(p) - t.limit; over > 0 {
		t.buf.Next(over)
	}
	t.buf.Write(p)
	return n, nil
}

func (t *tailBuffer) String() string {
	return t.buf.String()
}
