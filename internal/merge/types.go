package merge

import (
	"fmt"
	"strings"
	"time"

	"submerge/internal/deps"
)

// Mode selects between burned-in and muxed subtitles.
type Mode string

const (
	ModeHard Mode = "hard"
	ModeSoft Mode = "soft"
)

// ParseMode accepts "hard" or "soft" in any case. Empty input yields "".
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return "", nil
	case string(ModeHard):
		return ModeHard, nil
	case string(ModeSoft):
		return ModeSoft, nil
	default:
		return "", fmt.Errorf("unknown merge mode %q (want hard or soft)", value)
	}
}

// ProgressFunc receives human-readable checkpoints while a job runs.
type ProgressFunc func(message string)

// Episode is one merge job. Zero-valued Mode, MarginFraction, and
// Capabilities fall back to the Merger defaults.
type Episode struct {
	VideoName      string
	Video          []byte
	SubtitleName   string
	Subtitle       []byte
	Name           string
	Mode           Mode
	MarginFraction float64
	Capabilities   *deps.Filters
	Progress       ProgressFunc
}

// Attempt records one strategy execution.
type Attempt struct {
	Strategy  string
	Succeeded bool
	ExitCode  int
	TimedOut  bool
	Detail    string
	Elapsed   time.Duration
	Err       error
}

// Result is the outcome of a job. Output and Filename are set only on success.
type Result struct {
	Success  bool
	Output   []byte
	Filename string
	Message  string
	Strategy string
	Attempts []Attempt
	Err      error
}
