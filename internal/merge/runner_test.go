package merge

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tool.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestRunProcessSuccess(t *testing.T) {
	script := writeScript(t, "echo progress >&2\nexit 0")
	res := runProcess(context.Background(), time.Minute, script)
	if !res.OK() {
		t.Fatalf("expected success, got %+v", res)
	}
	if strings.TrimSpace(res.Stderr) != "progress" {
		t.Fatalf("unexpected stderr %q", res.Stderr)
	}
}

func TestRunProcessExitCode(t *testing.T) {
	script := writeScript(t, "echo 'Invalid argument' >&2\nexit 3")
	res := runProcess(context.Background(), time.Minute, script)
	if res.OK() {
		t.Fatal("expected failure")
	}
	if res.ExitCode != 3 || res.TimedOut {
		t.Fatalf("unexpected result %+v", res)
	}
	if !strings.Contains(res.Stderr, "Invalid argument") {
		t.Fatalf("unexpected stderr %q", res.Stderr)
	}
}

func TestRunProcessTimeout(t *testing.T) {
	script := writeScript(t, "exec sleep 5")
	res := runProcess(context.Background(), 100*time.Millisecond, script)
	if !res.TimedOut || res.ExitCode != -1 || res.Err == nil {
		t.Fatalf("expected timeout, got %+v", res)
	}
}

func TestRunProcessMissingBinary(t *testing.T) {
	res := runProcess(context.Background(), time.Second, filepath.Join(t.TempDir(), "missing"))
	if res.OK() || res.ExitCode != -1 {
		t.Fatalf("expected launch failure, got %+v", res)
	}
}

func TestTailBufferKeepsLastBytes(t *testing.T) {
	buf := &tailBuffer{limit: 8}
	_, _ = buf.Write([]byte("abcdef"))
	_, _ = buf.Write([]byte("ghij"))
	if got := buf.String(); got != "cdefghij" {
		t.Fatalf("tail = %q", got)
	}
	_, _ = buf.Write([]byte("0123456789"))
	if got := buf.String(); got != "23456789" {
		t.Fatalf("tail after oversized write = %q", got)
	}
}

func TestRuneHelpers(t *testing.T) {
	if got := tailRunes("你好世界", 2); got != "世界" {
		t.Fatalf("tailRunes = %q", got)
	}
	if got := headRunes("你好世界", 2); got != "你好" {
		t.Fatalf("headRunes = %q", got)
	}
	if got := headRunes("ok", 5); got != "ok" {
		t.Fatalf("headRunes short = %q", got)
	}
}

func TestWorkspaceLifecycle(t *testing.T) {
	root := t.TempDir()
	ws, err := newWorkspace(root, "abcdef0123456789")
	if err != nil {
		t.Fatalf("newWorkspace: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(ws.dir), "submerge-abcdef01-") {
		t.Fatalf("unexpected workspace name %q", ws.dir)
	}
	path, err := ws.write("video.mp4", []byte("data"))
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if filepath.Dir(path) != ws.dir {
		t.Fatalf("file written outside workspace: %q", path)
	}
	if err := ws.remove(); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(ws.dir); !os.IsNotExist(err) {
		t.Fatalf("workspace still exists: %v", err)
	}
}

func TestInputExt(t *testing.T) {
	tests := []struct{ name, fallback, want string }{
		{"Movie.MKV", ".mp4", ".mkv"},
		{"noext", ".mp4", ".mp4"},
		{"", ".srt", ".srt"},
		{"subs.ass", ".srt", ".ass"},
	}
	for _, tt := range tests {
		if got := inputExt(tt.name, tt.fallback); got != tt.want {
			t.Fatalf("inputExt(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
