package deps

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}

	if results[1].Available {
		t.Fatalf("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatalf("expected detail message for missing binary")
	}

	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}

	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}
}

const filtersListing = `Filters:
  T.. = Timeline support
 ... ass               V->V       Render ASS subtitles onto input video using the libass library.
 ... subtitles         V->V       Render text subtitles onto input video using the libass library.
 ... scale             V->V       Scale the input video size and/or convert the image format.
`

func writeStub(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

func TestParseFilters(t *testing.T) {
	tests := []struct {
		name    string
		listing string
		want    Filters
	}{
		{name: "both", listing: filtersListing, want: Filters{Subtitles: true, ASS: true}},
		{name: "subtitles only", listing: " ... subtitles  V->V  Render text subtitles\n", want: Filters{Subtitles: true}},
		{name: "ass only", listing: " ... ass  V->V  Render ASS\n", want: Filters{ASS: true}},
		{name: "wrong direction", listing: " ... subtitles  A->A  nothing\n ... ass  |->V  nope\n", want: Filters{}},
		{name: "ass prefix ignored", listing: " ... assplit  V->V  not a match\n", want: Filters{}},
		{name: "empty", listing: "", want: Filters{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseFilters(tc.listing)
			if got != tc.want {
				t.Fatalf("ParseFilters() = %+v, want %+v", got, tc.want)
			}
			if got.Any() != (tc.want.Subtitles || tc.want.ASS) {
				t.Fatalf("Any() mismatch for %+v", got)
			}
		})
	}
}

func TestQueryFiltersRunsBinary(t *testing.T) {
	stub := writeStub(t, "ffmpeg", "cat <<'EOF'\n"+filtersListing+"EOF\n")
	filters, err := QueryFilters(context.Background(), stub)
	if err != nil {
		t.Fatalf("QueryFilters: %v", err)
	}
	if !filters.Subtitles || !filters.ASS {
		t.Fatalf("expected both filters, got %+v", filters)
	}
}

func TestQueryFiltersReportsFailure(t *testing.T) {
	stub := writeStub(t, "ffmpeg", "echo broken >&2\nexit 3\n")
	if _, err := QueryFilters(context.Background(), stub); err == nil {
		t.Fatal("expected error from failing ffmpeg")
	}
}

func TestCheckFFmpeg(t *testing.T) {
	ok := writeStub(t, "ffmpeg", "echo 'ffmpeg version 7.1 Copyright'\n")
	status := CheckFFmpeg(context.Background(), ok)
	if !status.Available {
		t.Fatalf("expected ffmpeg available, got %#v", status)
	}
	if status.Detail != "ffmpeg version 7.1 Copyright" {
		t.Fatalf("unexpected detail %q", status.Detail)
	}

	failing := writeStub(t, "ffmpeg", "exit 1\n")
	if status := CheckFFmpeg(context.Background(), failing); status.Available {
		t.Fatalf("expected failing ffmpeg to be unavailable")
	}

	if status := CheckFFmpeg(context.Background(), "clearly-not-present-ffmpeg"); status.Available || status.Detail == "" {
		t.Fatalf("expected missing ffmpeg to be reported, got %#v", status)
	}
}

func TestCapabilityCacheReusesWithinTTL(t *testing.T) {
	var calls atomic.Int32
	cache := NewCapabilityCache(time.Minute, func(context.Context, string) (Filters, error) {
		calls.Add(1)
		return Filters{Subtitles: true}, nil
	})
	now := time.Unix(1000, 0)
	cache.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		filters, err := cache.Filters(context.Background(), "ffmpeg")
		if err != nil || !filters.Subtitles {
			t.Fatalf("unexpected result %+v err=%v", filters, err)
		}
	}
	if calls.Load() != 1 {
		t.Fatalf("expected one query within ttl, got %d", calls.Load())
	}

	now = now.Add(2 * time.Minute)
	if _, err := cache.Filters(context.Background(), "ffmpeg"); err != nil {
		t.Fatalf("Filters: %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected refresh after ttl, got %d calls", calls.Load())
	}
}

func TestCapabilityCacheDoesNotCacheErrors(t *testing.T) {
	var calls atomic.Int32
	cache := NewCapabilityCache(0, func(context.Context, string) (Filters, error) {
		if calls.Add(1) == 1 {
			return Filters{}, errors.New("boom")
		}
		return Filters{ASS: true}, nil
	})
	if _, err := cache.Filters(context.Background(), "ffmpeg"); err == nil {
		t.Fatal("expected first query error")
	}
	filters, err := cache.Filters(context.Background(), "ffmpeg")
	if err != nil || !filters.ASS {
		t.Fatalf("expected retry to succeed, got %+v err=%v", filters, err)
	}
}

func TestCapabilityCacheDeduplicatesConcurrentMisses(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	cache := NewCapabilityCache(time.Minute, func(context.Context, string) (Filters, error) {
		calls.Add(1)
		<-release
		return Filters{Subtitles: true, ASS: true}, nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Filters(context.Background(), "ffmpeg"); err != nil {
				t.Errorf("Filters: %v", err)
			}
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	if calls.Load() != 1 {
		t.Fatalf("expected a single shared query, got %d", calls.Load())
	}
}
