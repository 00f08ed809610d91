package subtitles

import (
	"fmt"
	"os"
	"strings"
)

// Style names referenced by dialogue events.
const (
	StyleCJK   = "Chinese"
	StyleLatin = "English"
)

// StyleOptions selects the fonts for the two styles.
type StyleOptions struct {
	CJKFont   string
	LatinFont string
}

// DefaultStyleOptions returns the stock font pairing.
func DefaultStyleOptions() StyleOptions {
	return StyleOptions{CJKFont: "Arial Unicode MS", LatinFont: "Arial"}
}

func (o StyleOptions) withDefaults() StyleOptions {
	def := DefaultStyleOptions()
	if strings.TrimSpace(o.CJKFont) == "" {
		o.CJKFont = def.CJKFont
	}
	if strings.TrimSpace(o.LatinFont) == "" {
		o.LatinFont = def.LatinFont
	}
	return o
}

// Shared colours: white fill, red karaoke secondary, black outline, and a
// semi-opaque dark box behind the text.
const (
	primaryColour   = "&H00FFFFFF"
	secondaryColour = "&H000000FF"
	outlineColour   = "&H00000000"
	backColour      = "&H96000000"
)

// GenerateASS renders a dual-style ASS script. Each cue becomes one or two
// dialogue events; no cue is dropped even when neither bucket receives a line.
// The returned count always equals script.Len().
func GenerateASS(script Script, layout Layout, opts StyleOptions) (string, int) {
	opts = opts.withDefaults()

	var b strings.Builder
	writeASSHeader(&b, layout, opts)
	for _, entry := range script.Entries {
		writeDialogues(&b, entry)
	}
	return b.String(), script.Len()
}

// WriteASS generates the script and writes it to path as UTF-8.
func WriteASS(path string, script Script, layout Layout, opts StyleOptions) (int, error) {
	content, count := GenerateASS(script, layout, opts)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return 0, fmt.Errorf("write ass: %w", err)
	}
	return count, nil
}

func writeASSHeader(b *strings.Builder, layout Layout, opts StyleOptions) {
	b.WriteString("[Script Info]\n")
	b.WriteString("ScriptType: v4.00+\n")
	fmt.Fprintf(b, "PlayResX: %d\n", layout.Width)
	fmt.Fprintf(b, "PlayResY: %d\n", layout.Height)
	b.WriteString("WrapStyle: 0\n")
	b.WriteString("ScaledBorderAndShadow: yes\n\n")

	b.WriteString("[V4+ Styles]\n")
	b.WriteString("Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, " +
		"OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, " +
		"Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n")
	writeStyle(b, StyleCJK, opts.CJKFont, layout.CJKFontSize, -1, 3, layout.SideMargin, layout.CJKMarginV)
	writeStyle(b, StyleLatin, opts.LatinFont, layout.LatinFontSize, 0, 2, layout.SideMargin, layout.LatinMarginV)
	b.WriteString("\n")

	b.WriteString("[Events]\n")
	b.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")
}

// writeStyle emits a bottom-centre (alignment 2) style with border style 1.
func writeStyle(b *strings.Builder, name, font string, size, bold, outline, sideMargin, marginV int) {
	fmt.Fprintf(b, "Style: %s,%s,%d,%s,%s,%s,%s,%d,0,0,0,100,100,0,0,1,%d,1,2,%d,%d,%d,1\n",
		name, font, size,
		primaryColour, secondaryColour, outlineColour, backColour,
		bold, outline, sideMargin, sideMargin, marginV)
}

func writeDialogues(b *strings.Builder, entry Entry) {
	start := FormatASSTime(entry.Start)
	end := FormatASSTime(entry.End)
	cjk, latin := Split(entry.Text)

	switch {
	case cjk != "" && latin != "":
		writeDialogue(b, start, end, StyleCJK, cjk)
		writeDialogue(b, start, end, StyleLatin, latin)
	case cjk != "":
		writeDialogue(b, start, end, StyleCJK, cjk)
	case latin != "":
		writeDialogue(b, start, end, StyleLatin, latin)
	default:
		writeDialogue(b, start, end, StyleLatin, entry.Text)
	}
}

func writeDialogue(b *strings.Builder, start, end, style, text string) {
	fmt.Fprintf(b, "Dialogue: 0,%s,%s,%s,,0,0,0,,%s\n", start, end, style, strings.ReplaceAll(text, "\n", `\N`))
}
