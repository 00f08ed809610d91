package subtitles

import (
	"strings"
	"unicode"
)

// Bucket is the script family a subtitle line is routed to.
type Bucket int

const (
	BucketLatin Bucket = iota
	BucketCJK
)

func (b Bucket) String() string {
	if b == BucketCJK {
		return "cjk"
	}
	return "latin"
}

// cjkRanges lists the blocks counted as CJK. The set is fixed: changing it
// changes which style a line renders with.
var cjkRanges = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x2E80, Hi: 0x2EFF, Stride: 1}, // CJK radicals supplement
		{Lo: 0x3000, Hi: 0x303F, Stride: 1}, // CJK symbols and punctuation
		{Lo: 0x3040, Hi: 0x309F, Stride: 1}, // Hiragana
		{Lo: 0x30A0, Hi: 0x30FF, Stride: 1}, // Katakana
		{Lo: 0x3400, Hi: 0x4DBF, Stride: 1}, // CJK unified ideographs extension A
		{Lo: 0x4E00, Hi: 0x9FFF, Stride: 1}, // CJK unified ideographs
		{Lo: 0xAC00, Hi: 0xD7AF, Stride: 1}, // Hangul syllables
		{Lo: 0xF900, Hi: 0xFAFF, Stride: 1}, // CJK compatibility ideographs
		{Lo: 0xFF00, Hi: 0xFFEF, Stride: 1}, // halfwidth and fullwidth forms
	},
}

// Classify routes a line to BucketCJK when more than 20% of its codepoints
// fall in cjkRanges. An empty line is Latin.
func Classify(line string) Bucket {
	var cjk, total int
	for _, r := range line {
		total++
		if unicode.Is(cjkRanges, r) {
			cjk++
		}
	}
	if total == 0 {
		return BucketLatin
	}
	// cjk/total > 0.2 without float rounding at the boundary.
	if cjk*5 > total {
		return BucketCJK
	}
	return BucketLatin
}

// Split partitions cue text into CJK and Latin lines. Lines are trimmed and
// blank ones skipped; order inside each bucket follows the input.
func Split(text string) (cjk string, latin string) {
	var cjkLines, latinLines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if Classify(line) == BucketCJK {
			cjkLines = append(cjkLines, line)
		} else {
			latinLines = append(latinLines, line)
		}
	}
	return strings.Join(cjkLines, "\n"), strings.Join(latinLines, "\n")
}
