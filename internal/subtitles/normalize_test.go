package subtitles

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFormatSRTRenumbersAndCleans(t *testing.T) {
	input := "7\n00:00:01.000 --> 00:00:02.500\n<b>Hello</b>\n\n" +
		"garbage block\n\n" +
		"42\n00:00:03,000 --> 00:00:04,000\n你好\nWorld\n"
	got := FormatSRT(Parse([]byte(input)))
	want := "1\n00:00:01,000 --> 00:00:02,500\nHello\n\n" +
		"2\n00:00:03,000 --> 00:00:04,000\n你好\nWorld\n\n"
	if got != want {
		t.Fatalf("FormatSRT mismatch:\n got %q\nwant %q", got, want)
	}
}

func TestFormatSRTReparsesIdentically(t *testing.T) {
	original := Parse([]byte(canonicalSRT))
	reparsed := Parse([]byte(FormatSRT(original)))
	if reparsed.Len() != original.Len() {
		t.Fatalf("entry count changed: %d -> %d", original.Len(), reparsed.Len())
	}
	for i := range original.Entries {
		if reparsed.Entries[i] != original.Entries[i] {
			t.Fatalf("entry %d changed: %+v -> %+v", i, original.Entries[i], reparsed.Entries[i])
		}
	}
}

func TestWriteSRT(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clean.srt")
	count, err := WriteSRT(path, Parse([]byte(canonicalSRT)))
	if err != nil {
		t.Fatalf("WriteSRT: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 entries, got %d", count)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file written: %v", err)
	}
}
