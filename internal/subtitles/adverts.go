package subtitles

import (
	"regexp"
	"strings"
)

var adPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)opensubtitles`),
	regexp.MustCompile(`(?i)subtitles? by`),
	regexp.MustCompile(`(?i)synced? and corrected`),
	regexp.MustCompile(`(?i)advertise (your|yours?) product`),
	regexp.MustCompile(`(?i)http(s)?://`),
	regexp.MustCompile(`(?i)\bwww\.`),
	regexp.MustCompile(`(?i)\bsubscene\b`),
	regexp.MustCompile(`(?i)\byts\b`),
	regexp.MustCompile(`(?i)\byify\b`),
	regexp.MustCompile(`字幕(组|組)`),
}

// IsAdvertisement reports whether a cue's text looks like a release-group or
// site credit rather than dialogue.
func IsAdvertisement(entry Entry) bool {
	payload := strings.TrimSpace(strings.ReplaceAll(entry.Text, "\n", " "))
	if payload == "" {
		return false
	}
	for _, pattern := range adPatterns {
		if pattern.MatchString(payload) {
			return true
		}
	}
	return false
}

// DropAdvertisements returns a copy of script without advertisement cues and
// the number removed. Timing of the remaining cues is unchanged.
func DropAdvertisements(script Script) (Script, int) {
	kept := Script{Encoding: script.Encoding, Entries: make([]Entry, 0, len(script.Entries))}
	for _, entry := range script.Entries {
		if IsAdvertisement(entry) {
			continue
		}
		kept.Entries = append(kept.Entries, entry)
	}
	return kept, len(script.Entries) - len(kept.Entries)
}
