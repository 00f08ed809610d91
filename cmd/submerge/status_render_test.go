package main

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"submerge/internal/preflight"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("FFmpeg", statusError, "not found", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "FFmpeg:", "[ERROR] not found")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("FFmpeg", statusOK, "ready", true)
	if !strings.HasPrefix(got, ansiGreen) || !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected green line, got %q", got)
	}
}

func TestPreflightLine(t *testing.T) {
	tests := []struct {
		result preflight.Result
		want   string
	}{
		{preflight.Result{Name: "FFmpeg", Passed: true, Detail: "ok"}, "[OK] ok"},
		{preflight.Result{Name: "FFmpeg", Detail: "missing"}, "[ERROR] missing"},
		{preflight.Result{Name: "FFprobe", Detail: "missing", Optional: true}, "[WARN] missing"},
	}
	for _, tt := range tests {
		if got := preflightLine(tt.result, false); !strings.Contains(got, tt.want) {
			t.Fatalf("preflightLine(%+v) = %q, want %q", tt.result, got, tt.want)
		}
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatalf("expected non-file writer to disable color")
	}
}

func TestRenderTablePadsRows(t *testing.T) {
	out := renderTable([]string{"#", "Episode"}, [][]string{{"1"}, {"2", "Pilot", "extra"}}, []columnAlignment{alignRight})
	if !strings.Contains(out, "Pilot") || strings.Contains(out, "extra") {
		t.Fatalf("unexpected table:\n%s", out)
	}
	if renderTable(nil, nil, nil) != "" {
		t.Fatal("expected empty output without headers")
	}
}
