package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestTeeHandlerCollapses(t *testing.T) {
	if TeeHandler(nil, nil) != slog.DiscardHandler {
		t.Fatal("expected the discard handler when every handler is nil")
	}
	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, nil)
	if got := TeeHandler(nil, inner); got != inner {
		t.Fatalf("expected single handler to be returned unwrapped, got %T", got)
	}
}

func TestTeeHandlerRespectsEachLevel(t *testing.T) {
	var infoBuf, debugBuf bytes.Buffer
	logger := slog.New(TeeHandler(
		slog.NewJSONHandler(&infoBuf, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	))

	logger.Debug("debug only")
	logger.Info("both", slog.String("k", "v"))

	if strings.Contains(infoBuf.String(), "debug only") {
		t.Fatalf("info handler received debug record: %s", infoBuf.String())
	}
	if !strings.Contains(debugBuf.String(), "debug only") {
		t.Fatalf("debug handler missed debug record: %s", debugBuf.String())
	}
	for _, out := range []string{infoBuf.String(), debugBuf.String()} {
		if !strings.Contains(out, `"k":"v"`) {
			t.Fatalf("expected attribute in every handler, got %s", out)
		}
	}
	if !logger.Handler().Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("expected tee to be enabled when any handler is")
	}
}

func TestTeeHandlerWithAttrsAndGroup(t *testing.T) {
	var a, b bytes.Buffer
	logger := slog.New(TeeHandler(slog.NewJSONHandler(&a, nil), slog.NewJSONHandler(&b, nil)))
	logger.With("job_id", "abc").WithGroup("probe").Info("msg", "width", 1920)

	for _, out := range []string{a.String(), b.String()} {
		if !strings.Contains(out, `"job_id":"abc"`) || !strings.Contains(out, `"probe":{"width":1920}`) {
			t.Fatalf("unexpected output %s", out)
		}
	}
}
