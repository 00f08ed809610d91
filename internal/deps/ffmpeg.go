package deps

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	// DefaultCapabilityTTL bounds how long a filter query result is reused.
	DefaultCapabilityTTL = 60 * time.Second

	versionTimeout = 10 * time.Second
	filtersTimeout = 10 * time.Second
)

// Filters reports which subtitle burn-in filters the FFmpeg build provides.
type Filters struct {
	Subtitles bool
	ASS       bool
}

// Any reports whether at least one burn-in filter is usable.
func (f Filters) Any() bool {
	return f.Subtitles || f.ASS
}

// CheckFFmpeg runs "<binary> -version" and reports whether it exits cleanly.
func CheckFFmpeg(ctx context.Context, binary string) Status {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	status := Status{
		Name:        "FFmpeg",
		Command:     binary,
		Description: "Encodes, burns, and muxes subtitles",
	}
	if _, err := exec.LookPath(binary); err != nil {
		status.Detail = fmt.Sprintf("binary %q not found", binary)
		return status
	}

	ctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()
	output, err := exec.CommandContext(ctx, binary, "-version").Output()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			status.Detail = "ffmpeg -version timed out"
		} else {
			status.Detail = fmt.Sprintf("ffmpeg -version failed: %v", err)
		}
		return status
	}
	status.Available = true
	if line, _, _ := strings.Cut(string(output), "\n"); line != "" {
		status.Detail = strings.TrimSpace(line)
	}
	return status
}

// QueryFilters runs "<binary> -filters" and inspects the listing for the
// video-to-video subtitles and ass filters.
func QueryFilters(ctx context.Context, binary string) (Filters, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	ctx, cancel := context.WithTimeout(ctx, filtersTimeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, "-hide_banner", "-filters")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return Filters{}, fmt.Errorf("ffmpeg -filters: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return ParseFilters(stdout.String()), nil
}

// ParseFilters scans "ffmpeg -filters" output.
func ParseFilters(listing string) Filters {
	var filters Filters
	scanner := bufio.NewScanner(strings.NewReader(listing))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, "V->V") {
			continue
		}
		if strings.Contains(line, "subtitles") {
			filters.Subtitles = true
		}
		if strings.Contains(line, " ass ") {
			filters.ASS = true
		}
	}
	return filters
}

// FilterQuery matches QueryFilters and is the seam used in tests.
type FilterQuery func(ctx context.Context, binary string) (Filters, error)

// CapabilityCache memoizes filter queries per binary for a bounded time.
// Concurrent misses for the same binary share one ffmpeg invocation.
type CapabilityCache struct {
	ttl   time.Duration
	query FilterQuery
	now   func() time.Time

	group   singleflight.Group
	mu      sync.Mutex
	entries map[string]capabilityEntry
}

type capabilityEntry struct {
	filters Filters
	fetched time.Time
}

// NewCapabilityCache builds a cache. A nil query uses QueryFilters and a
// non-positive ttl uses DefaultCapabilityTTL.
func NewCapabilityCache(ttl time.Duration, query FilterQuery) *CapabilityCache {
	if ttl <= 0 {
		ttl = DefaultCapabilityTTL
	}
	if query == nil {
		query = QueryFilters
	}
	return &CapabilityCache{
		ttl:     ttl,
		query:   query,
		now:     time.Now,
		entries: make(map[string]capabilityEntry),
	}
}

// Filters returns cached capabilities for binary, querying ffmpeg when the
// entry is missing or stale. Failed queries are not cached.
func (c *CapabilityCache) Filters(ctx context.Context, binary string) (Filters, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	c.mu.Lock()
	entry, ok := c.entries[binary]
	c.mu.Unlock()
	if ok && c.now().Sub(entry.fetched) < c.ttl {
		return entry.filters, nil
	}

	value, err, _ := c.group.Do(binary, func() (any, error) {
		c.mu.Lock()
		entry, ok := c.entries[binary]
		c.mu.Unlock()
		if ok && c.now().Sub(entry.fetched) < c.ttl {
			return entry.filters, nil
		}
		filters, err := c.query(ctx, binary)
		if err != nil {
			return Filters{}, err
		}
		c.mu.Lock()
		c.entries[binary] = capabilityEntry{filters: filters, fetched: c.now()}
		c.mu.Unlock()
		return filters, nil
	})
	if err != nil {
		return Filters{}, err
	}
	return value.(Filters), nil
}
