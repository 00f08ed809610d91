package preflight

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/unix"

	"submerge/internal/config"
	"submerge/internal/deps"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckSystemDeps evaluates the external binaries for the given config. FFmpeg
// is run with -version rather than only resolved on PATH.
func CheckSystemDeps(ctx context.Context, cfg *config.Config) []deps.Status {
	statuses := []deps.Status{deps.CheckFFmpeg(ctx, cfg.FFmpeg.FFmpegBinary)}
	statuses = append(statuses, deps.CheckBinaries([]deps.Requirement{
		{
			Name:        "FFprobe",
			Command:     cfg.FFmpeg.FFprobeBinary,
			Description: "Reads video dimensions for subtitle layout",
			Optional:    true,
		},
	})...)
	return statuses
}

// FilterSource is satisfied by deps.CapabilityCache.
type FilterSource interface {
	Filters(ctx context.Context, binary string) (deps.Filters, error)
}

// CheckFilters reports which burn-in filters the FFmpeg build offers. Hard
// mode needs at least one of them.
func CheckFilters(ctx context.Context, source FilterSource, binary string) (Result, deps.Filters) {
	const name = "Subtitle filters"
	filters, err := source.Filters(ctx, binary)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("query failed (%v)", err)}, deps.Filters{}
	}
	var available []string
	if filters.Subtitles {
		available = append(available, "subtitles")
	}
	if filters.ASS {
		available = append(available, "ass")
	}
	if len(available) == 0 {
		return Result{Name: name, Detail: "none available (hard mode disabled)"}, filters
	}
	return Result{Name: name, Passed: true, Detail: strings.Join(available, ", ")}, filters
}
