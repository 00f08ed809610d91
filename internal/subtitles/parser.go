package subtitles

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

var (
	// \s is ASCII-only in RE2; CJK files often pad separator lines with
	// U+3000 or NBSP.
	blockSeparator = regexp.MustCompile(`\n[\s\p{Z}\x{FEFF}]*\n`)
	timingPattern  = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2})[,.](\d{3})\s*-->\s*(\d{2}):(\d{2}):(\d{2})[,.](\d{3})`)
	angleTags      = regexp.MustCompile(`<[^>]+>`)
	braceTags      = regexp.MustCompile(`\{[^}]+\}`)
)

// Entry is one timed cue with markup already stripped.
type Entry struct {
	Start float64
	End   float64
	Text  string
}

// Lines returns the cue text split on newlines.
func (e Entry) Lines() []string {
	return strings.Split(e.Text, "\n")
}

// Script is the ordered list of cues parsed from one subtitle file.
type Script struct {
	Entries  []Entry
	Encoding string
}

// Len reports the number of cues.
func (s Script) Len() int {
	return len(s.Entries)
}

// ParseFile reads and parses a subtitle file from disk.
func ParseFile(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("read subtitle: %w", err)
	}
	return Parse(data), nil
}

// Parse decodes raw bytes and extracts every block that carries a SubRip
// timing line. Blocks without one, including index-only blocks and blocks
// whose timing is malformed, are dropped without error.
func Parse(data []byte) Script {
	decoded := Decode(data)
	script := Script{Encoding: decoded.Encoding}

	content := strings.TrimSpace(decoded.Text)
	if content == "" {
		return script
	}
	for _, block := range blockSeparator.Split(content, -1) {
		entry, ok := parseBlock(block)
		if !ok {
			continue
		}
		script.Entries = append(script.Entries, entry)
	}
	return script
}

func parseBlock(block string) (Entry, bool) {
	lines := strings.Split(strings.TrimSpace(block), "\n")
	if len(lines) < 2 {
		return Entry{}, false
	}
	timingIdx := -1
	var match []string
	for i, line := range lines {
		if m := timingPattern.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			match = m
			timingIdx = i
			break
		}
	}
	if timingIdx < 0 {
		return Entry{}, false
	}

	text := strings.Join(lines[timingIdx+1:], "\n")
	text = stripMarkup(text)
	if text == "" {
		return Entry{}, false
	}
	return Entry{
		Start: clockSeconds(match[1], match[2], match[3], match[4]),
		End:   clockSeconds(match[5], match[6], match[7], match[8]),
		Text:  text,
	}, true
}

// stripMarkup removes HTML-style and ASS override tags.
func stripMarkup(text string) string {
	text = angleTags.ReplaceAllString(text, "")
	text = braceTags.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// clockSeconds converts regex-validated digit groups; Atoi cannot fail here.
func clockSeconds(hours, minutes, seconds, millis string) float64 {
	h, _ := strconv.Atoi(hours)
	m, _ := strconv.Atoi(minutes)
	s, _ := strconv.Atoi(seconds)
	ms, _ := strconv.Atoi(millis)
	return float64(h*3600+m*60+s) + float64(ms)/1000
}
