package subtitles

import (
	"fmt"
	"os"
	"strings"
)

// FormatSRT re-serializes a script as clean SubRip: sequential 1-based
// indices, canonical timestamps, markup-free text.
func FormatSRT(script Script) string {
	var b strings.Builder
	for i, entry := range script.Entries {
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n", i+1, FormatSRTTime(entry.Start), FormatSRTTime(entry.End), entry.Text)
	}
	return b.String()
}

// WriteSRT writes the normalized SubRip text to path and returns the cue count.
func WriteSRT(path string, script Script) (int, error) {
	if err := os.WriteFile(path, []byte(FormatSRT(script)), 0o644); err != nil {
		return 0, fmt.Errorf("write srt: %w", err)
	}
	return script.Len(), nil
}
