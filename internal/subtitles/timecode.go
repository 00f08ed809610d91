package subtitles

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatASSTime renders seconds as an ASS timestamp (H:MM:SS.CC). Centiseconds
// are truncated, not rounded. Negative input yields odd but harmless text.
func FormatASSTime(seconds float64) string {
	cs := truncUnits(seconds, 100)
	h := cs / 360_000
	m := (cs % 360_000) / 6000
	s := (cs % 6000) / 100
	return fmt.Sprintf("%d:%02d:%02d.%02d", h, m, s, cs%100)
}

// FormatSRTTime renders seconds as a SubRip timestamp (HH:MM:SS,mmm).
func FormatSRTTime(seconds float64) string {
	ms := truncUnits(seconds, 1000)
	h := ms / 3_600_000
	m := (ms % 3_600_000) / 60_000
	s := (ms % 60_000) / 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms%1000)
}

// truncUnits counts whole 1/perSecond units in seconds. The epsilon, a
// millionth of a unit, absorbs binary float drift (0.29*100 is
// 28.999999999999996) without rounding genuine fractions such as 1.9996 up.
func truncUnits(seconds, perSecond float64) int64 {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0
	}
	return int64(math.Floor(seconds*perSecond + 1e-6))
}

// ParseSRTTimestamp parses HH:MM:SS,mmm (or HH:MM:SS.mmm) into seconds.
func ParseSRTTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}
