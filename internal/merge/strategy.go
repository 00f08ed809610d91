package merge

import (
	"context"
	"os"
	"time"
	"unicode/utf8"

	"submerge/internal/fileutil"
	"submerge/internal/logging"
	"submerge/internal/services"
)

const diagnosticTailRunes = 200

// outputBaseName names every strategy output inside the workspace. The
// sanitized episode name only appears in Result.Filename, so an episode
// called "video" cannot overwrite or remove its staged input.
const outputBaseName = "merged"

// strategyFunc produces the output at out. A non-nil error means the attempt
// failed before or around the external process; otherwise the ProcessResult
// decides.
type strategyFunc func(ctx context.Context, j *job, out string) (ProcessResult, error)

// strategy is one entry of an ordered fallback chain.
type strategy struct {
	name string
	ext  string
	// silent is the diagnostic used when the attempt fails without stderr.
	silent string
	run    strategyFunc
}

type chainOutcome struct {
	winner   *strategy
	output   string
	attempts []Attempt
	lastErr  string
}

// runChain evaluates chain left to right and stops at the first attempt whose
// output is accepted. Rejected outputs are removed before the next attempt.
func (m *Merger) runChain(ctx context.Context, j *job, chain []strategy, initialErr string) chainOutcome {
	outcome := chainOutcome{lastErr: initialErr}
	for i := range chain {
		s := &chain[i]
		if err := ctx.Err(); err != nil {
			outcome.lastErr = err.Error()
			break
		}

		attemptCtx := services.WithStrategy(ctx, s.name)
		logger := logging.WithContext(attemptCtx, m.logger)
		j.report("Trying: " + s.name)
		logger.Info("strategy attempt", logging.String(logging.FieldEventType, "strategy_attempt"))

		out := j.ws.path(outputBaseName + s.ext)
		start := m.now()
		result, err := s.run(attemptCtx, j, out)
		attempt := Attempt{
			Strategy: s.name,
			ExitCode: result.ExitCode,
			TimedOut: result.TimedOut,
			Elapsed:  m.now().Sub(start),
		}

		if err == nil && m.good(result, out) {
			attempt.Succeeded = true
			outcome.attempts = append(outcome.attempts, attempt)
			outcome.winner = s
			outcome.output = out
			j.report("Success: " + s.name)
			logger.Info("strategy succeeded",
				logging.String(logging.FieldEventType, "strategy_succeeded"),
				logging.Int64("output_bytes", fileutil.FileSize(out)),
				logging.Duration("elapsed", attempt.Elapsed),
			)
			return outcome
		}

		switch {
		case err != nil:
			attempt.Detail = err.Error()
			attempt.Err = services.Wrap(services.ErrInternal, j.stage, s.name, "attempt failed", err)
			j.report("Error in " + s.name + ": " + err.Error())
		default:
			attempt.Detail = diagnostic(result, s.silent)
			attempt.Err = attemptError(j.stage, s.name, result, attempt.Detail)
		}
		outcome.lastErr = attempt.Detail
		outcome.attempts = append(outcome.attempts, attempt)
		_ = os.Remove(out)

		logging.WarnWithContext(logger, "strategy failed", "strategy_failed",
			logging.Int("exit_code", attempt.ExitCode),
			logging.Bool("timed_out", attempt.TimedOut),
			logging.String("stderr_tail", attempt.Detail),
			logging.Duration("elapsed", attempt.Elapsed),
			logging.String(logging.FieldErrorHint, "falling back to the next strategy"),
			logging.String(logging.FieldImpact, "this strategy's output was discarded"),
		)
	}
	return outcome
}

// good accepts an attempt that exited cleanly and left an output larger than
// the configured minimum.
func (m *Merger) good(result ProcessResult, out string) bool {
	return result.OK() && fileutil.FileSize(out) > m.cfg.Merge.MinOutputBytes
}

// diagnostic returns the tail of stderr, or silent when there is none.
func diagnostic(result ProcessResult, silent string) string {
	if result.Stderr == "" {
		return silent
	}
	return tailRunes(result.Stderr, diagnosticTailRunes)
}

func attemptError(stage, name string, result ProcessResult, detail string) error {
	marker := services.ErrExternalTool
	if result.TimedOut {
		marker = services.ErrTimeout
	}
	return services.Wrap(marker, stage, name, detail, result.Err)
}

func tailRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[len(runes)-n:])
}

func headRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func elapsedSince(now func() time.Time, start time.Time) time.Duration {
	return now().Sub(start)
}
