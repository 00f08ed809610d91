package subtitles

import "math"

// Layout defaults and bounds.
const (
	DefaultWidth          = 1920
	DefaultHeight         = 1080
	DefaultMarginFraction = 0.18
	MinMarginFraction     = 0.05
	MaxMarginFraction     = 0.45

	cjkFontFraction   = 0.052
	latinFontFraction = 0.038
	sideMarginFrac    = 0.06
	styleGapFraction  = 0.015
	minCJKFontSize    = 26
	minLatinFontSize  = 20
)

// Layout holds the resolution-relative style geometry for one job.
type Layout struct {
	Width         int
	Height        int
	CJKFontSize   int
	LatinFontSize int
	SideMargin    int
	CJKMarginV    int
	// LatinMarginV sits above the CJK line: its margin plus the CJK font
	// height plus a gap, so it is always strictly greater than CJKMarginV.
	LatinMarginV int
}

// ComputeLayout derives font sizes and margins from the video resolution and
// the bottom-margin fraction. Unknown dimensions fall back to 1920x1080 and a
// non-positive fraction to the default.
func ComputeLayout(width, height int, marginFraction float64) Layout {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	if marginFraction <= 0 || math.IsNaN(marginFraction) {
		marginFraction = DefaultMarginFraction
	}
	h := float64(height)
	cjkFont := max(roundInt(h*cjkFontFraction), minCJKFontSize)
	latinFont := max(roundInt(h*latinFontFraction), minLatinFontSize)
	cjkMargin := roundInt(h * marginFraction)
	return Layout{
		Width:         width,
		Height:        height,
		CJKFontSize:   cjkFont,
		LatinFontSize: latinFont,
		SideMargin:    roundInt(float64(width) * sideMarginFrac),
		CJKMarginV:    cjkMargin,
		LatinMarginV:  cjkMargin + cjkFont + roundInt(h*styleGapFraction),
	}
}

// ClampMarginFraction bounds a user-supplied fraction to the supported range.
func ClampMarginFraction(fraction float64) float64 {
	if math.IsNaN(fraction) {
		return DefaultMarginFraction
	}
	return math.Min(math.Max(fraction, MinMarginFraction), MaxMarginFraction)
}

func roundInt(v float64) int {
	return int(math.Round(v))
}
