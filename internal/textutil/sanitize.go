package textutil

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultEpisodeBase is used when a name sanitizes to nothing.
const DefaultEpisodeBase = "episode"

var underscoreRuns = regexp.MustCompile(`_+`)

// episodeReplacer maps the characters Windows and POSIX filesystems reject to underscores.
var episodeReplacer = strings.NewReplacer(
	"<", "_",
	">", "_",
	":", "_",
	"\"", "_",
	"/", "_",
	"\\", "_",
	"|", "_",
	"?", "_",
	"*", "_",
)

// SanitizeEpisodeName converts a user-supplied episode name into a safe file
// base name: unsafe characters become underscores, underscore runs collapse,
// surrounding underscores and whitespace are trimmed, and an empty result
// falls back to DefaultEpisodeBase.
func SanitizeEpisodeName(name string) string {
	out := episodeReplacer.Replace(strings.TrimSpace(name))
	out = underscoreRuns.ReplaceAllString(out, "_")
	out = strings.TrimSpace(strings.Trim(out, "_"))
	if out == "" {
		return DefaultEpisodeBase
	}
	return out
}

// EpisodeName returns the default display name for the n-th (1-based) episode of a batch.
func EpisodeName(n int) string {
	return fmt.Sprintf("Episode_%02d", n)
}
