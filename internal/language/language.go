package language

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Undetermined is the ISO 639-2 code for an unknown language.
const Undetermined = "und"

// bibliographic maps ISO 639-2/B codes that x/text does not resolve to their
// terminology equivalents.
var bibliographic = map[string]string{
	"chi": "zho",
	"fre": "fra",
	"ger": "deu",
	"dut": "nld",
	"cze": "ces",
	"gre": "ell",
	"per": "fas",
	"rum": "ron",
	"slo": "slk",
	"wel": "cym",
	"baq": "eus",
	"arm": "hye",
	"geo": "kat",
	"ice": "isl",
	"mac": "mkd",
	"may": "msa",
	"bur": "mya",
	"tib": "bod",
	"alb": "sqi",
}

func parseBase(code string) (language.Base, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" || code == Undetermined {
		return language.Base{}, false
	}
	if mapped, ok := bibliographic[code]; ok {
		code = mapped
	}
	tag, err := language.Parse(code)
	if err != nil {
		return language.Base{}, false
	}
	base, confidence := tag.Base()
	if confidence == language.No {
		return language.Base{}, false
	}
	return base, true
}

// ToISO3 converts a language code or tag to ISO 639-2 (3-letter).
// Unrecognized input yields "und".
func ToISO3(code string) string {
	base, ok := parseBase(code)
	if !ok {
		return Undetermined
	}
	if iso3 := base.ISO3(); iso3 != "" {
		return iso3
	}
	return Undetermined
}

// DisplayName returns the English name of a language code. Empty input
// yields "Unknown"; unrecognized input is returned uppercased.
func DisplayName(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return "Unknown"
	}
	base, ok := parseBase(trimmed)
	if !ok {
		return strings.ToUpper(trimmed)
	}
	if name := display.English.Languages().Name(language.Make(base.String())); name != "" {
		return name
	}
	return strings.ToUpper(trimmed)
}
