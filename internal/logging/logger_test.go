package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"submerge/internal/config"
	"submerge/internal/logging"
	"submerge/internal/services"
)

func TestNewFromConfigWritesJSONLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("merge finished", logging.String("episode", "Episode_01"))

	data, err := os.ReadFile(filepath.Join(cfg.Paths.LogDir, logging.LogFileName))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var record map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &record); err != nil {
		t.Fatalf("log file is not JSON: %v (%q)", err, data)
	}
	if record["msg"] != "merge finished" || record["episode"] != "Episode_01" {
		t.Fatalf("unexpected record %v", record)
	}
	if record["level"] != "info" {
		t.Fatalf("expected lowercase level, got %v", record["level"])
	}
}

func TestNewFromConfigNil(t *testing.T) {
	logger, err := logging.NewFromConfig(nil)
	if err != nil || logger == nil {
		t.Fatalf("expected default logger, got %v %v", logger, err)
	}
}

func TestConsoleLoggerOmitsCallerForInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("message without caller")
	if strings.Contains(buf.String(), ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", buf.String())
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("message with caller")
	if !strings.Contains(buf.String(), ".go:") {
		t.Fatalf("expected caller information in debug logs, got %q", buf.String())
	}
}

func TestConsoleLoggerRendersSubjectAndFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	ctx := services.WithStage(services.WithJobID(context.Background(), "0123456789abcdef"), "hard")
	logger = logging.NewComponentLogger(logger, "merge")
	logging.WithContext(ctx, logger).Info("strategy succeeded",
		logging.String(logging.FieldEventType, "strategy_succeeded"),
		logging.Int64("output_bytes", 3*1024*1024),
	)

	out := buf.String()
	for _, want := range []string{"INFO [merge] Job 01234567 (hard) – strategy succeeded", "- Event: strategy_succeeded", "- Size: 3.0 MiB"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
	if strings.Contains(out, "Job Id") {
		t.Fatalf("job id should be rendered in the header only: %q", out)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewInvalidLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "invalid", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("expected info level filtering, got %q", buf.String())
	}
}

func TestWithContextAddsFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	ctx := context.Background()
	ctx = services.WithJobID(ctx, "job-1")
	ctx = services.WithStage(ctx, "soft")
	ctx = services.WithEpisode(ctx, "Episode_02")
	ctx = services.WithStrategy(ctx, "MP4 mux")

	logging.WithContext(ctx, logger).Info("contextual log")

	var record map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &record); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[string]string{
		logging.FieldJobID:    "job-1",
		logging.FieldStage:    "soft",
		logging.FieldEpisode:  "Episode_02",
		logging.FieldStrategy: "MP4 mux",
	}
	for key, value := range want {
		if record[key] != value {
			t.Fatalf("field %s = %v, want %s", key, record[key], value)
		}
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.WarnWithContext(logger, "probe failed", "probe_failed", logging.String(logging.FieldImpact, "default layout used"))

	var record map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &record); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if record[logging.FieldEventType] != "probe_failed" {
		t.Fatalf("missing event type: %v", record)
	}
	if record[logging.FieldErrorHint] == nil {
		t.Fatalf("missing error hint: %v", record)
	}
	if record[logging.FieldImpact] != "default layout used" {
		t.Fatalf("impact should not be overridden: %v", record)
	}
}

func TestGroupNestsInJSONAndStaysDebugOnlyOnConsole(t *testing.T) {
	streams := logging.Group("ffprobe", logging.Int("video_streams", 1), logging.Int("audio_streams", 0))

	var jsonBuf bytes.Buffer
	jsonLogger, err := logging.New(logging.Options{Format: "json", Level: "info", Writer: &jsonBuf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	jsonLogger.Info("inputs validated", streams, logging.Alert("video has no audio stream"))
	var record map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(jsonBuf.Bytes()), &record); err != nil {
		t.Fatalf("decode: %v", err)
	}
	nested, ok := record["ffprobe"].(map[string]any)
	if !ok || nested["audio_streams"] != float64(0) || nested["video_streams"] != float64(1) {
		t.Fatalf("expected nested ffprobe group, got %v", record["ffprobe"])
	}
	if record[logging.FieldAlert] != "video has no audio stream" {
		t.Fatalf("missing alert: %v", record)
	}

	var consoleBuf bytes.Buffer
	consoleLogger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &consoleBuf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	consoleLogger.Info("inputs validated", streams, logging.Alert("video has no audio stream"))
	out := consoleBuf.String()
	if !strings.Contains(out, "Alert:") || !strings.Contains(out, "no audio stream") {
		t.Fatalf("expected alert on console: %q", out)
	}
	if strings.Contains(out, "audio_streams") {
		t.Fatalf("ffprobe fields belong to debug output: %q", out)
	}
}

func TestErrorWithContextKeepsCallerHint(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.ErrorWithContext(logger, "merge panicked", "merge_panic", logging.String(logging.FieldErrorHint, "report a bug"))

	if n := strings.Count(buf.String(), `"`+logging.FieldErrorHint+`"`); n != 1 {
		t.Fatalf("expected a single error hint, found %d in %s", n, buf.String())
	}
	var record map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &record); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if record[logging.FieldEventType] != "merge_panic" || record[logging.FieldErrorHint] != "report a bug" {
		t.Fatalf("unexpected record %v", record)
	}
}
