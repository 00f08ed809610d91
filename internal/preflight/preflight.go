package preflight

import (
	"context"
	"os"

	"submerge/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name     string
	Passed   bool
	Detail   string
	Optional bool
}

// RunAll executes the checks every merge depends on: scratch and output
// directory access plus FFmpeg and FFprobe availability.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	workDir := cfg.Paths.WorkDir
	if workDir == "" {
		workDir = os.TempDir()
	}
	results := []Result{
		CheckDirectoryAccess("Work directory", workDir),
		CheckDirectoryAccess("Output directory", cfg.Paths.OutputDir),
	}
	for _, status := range CheckSystemDeps(ctx, cfg) {
		results = append(results, Result{
			Name:     status.Name,
			Passed:   status.Available,
			Detail:   status.Detail,
			Optional: status.Optional,
		})
	}
	return results
}

// FirstFailure returns the first failed required result, if any.
func FirstFailure(results []Result) (Result, bool) {
	for _, r := range results {
		if !r.Passed && !r.Optional {
			return r, true
		}
	}
	return Result{}, false
}
