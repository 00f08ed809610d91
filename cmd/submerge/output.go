package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofrs/flock"

	"submerge/internal/config"
	"submerge/internal/deps"
	"submerge/internal/fileutil"
	"submerge/internal/logging"
	"submerge/internal/merge"
	"submerge/internal/subtitles"
)

const outputLockName = ".submerge.lock"

// parseMargin accepts either a percentage (5 to 45, optionally suffixed with
// "%") or a fraction (0.05 to 0.45). Empty input yields 0 so the configured
// default applies.
func parseMargin(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	percent := strings.HasSuffix(value, "%")
	number, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(value, "%")), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid margin %q", value)
	}
	if percent || number > 1 {
		number /= 100
	}
	if number < subtitles.MinMarginFraction || number > subtitles.MaxMarginFraction {
		return 0, fmt.Errorf("margin %q out of range (5-45%%)", value)
	}
	return number, nil
}

func resolveOutputDir(flagValue string, cfg *config.Config) (string, error) {
	dir := strings.TrimSpace(flagValue)
	if dir == "" {
		dir = cfg.Paths.OutputDir
	}
	expanded, err := config.ExpandPath(dir)
	if err != nil {
		return "", fmt.Errorf("resolve output directory: %w", err)
	}
	if err := os.MkdirAll(expanded, 0o755); err != nil {
		return "", fmt.Errorf("create output directory %q: %w", expanded, err)
	}
	return expanded, nil
}

// lockOutputDir takes an exclusive lock on dir so concurrent runs never
// interleave writes into the same directory.
func lockOutputDir(dir string) (*flock.Flock, error) {
	lock := flock.New(filepath.Join(dir, outputLockName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock output directory: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("output directory %s is in use by another submerge run", dir)
	}
	return lock, nil
}

func writeResult(dir string, res merge.Result) (string, error) {
	target := filepath.Join(dir, res.Filename)
	if err := fileutil.WriteFileAtomic(target, res.Output, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", target, err)
	}
	return target, nil
}

// resolveCapabilities queries filter support for hard mode only. A failed
// query yields no filters, which the merger reports as a capability failure.
func resolveCapabilities(ctx context.Context, c *commandContext, cfg *config.Config, logger *slog.Logger, mode merge.Mode) *deps.Filters {
	if mode == "" {
		mode = merge.Mode(cfg.Merge.Mode)
	}
	if mode != merge.ModeHard {
		return nil
	}
	filters, err := c.capabilities().Filters(ctx, cfg.FFmpeg.FFmpegBinary)
	if err != nil {
		logging.WarnWithContext(logger, "ffmpeg filter query failed", "capability_query_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "run submerge doctor"),
			logging.String(logging.FieldImpact, "hard mode unavailable for this run"),
		)
	}
	return &filters
}

func progressPrinter(out io.Writer, prefix string) merge.ProgressFunc {
	return func(message string) {
		fmt.Fprintf(out, "%s%s\n", prefix, message)
	}
}
