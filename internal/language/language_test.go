package language

import "testing"

func TestToISO3(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en", "eng"},
		{"EN", "eng"},
		{"eng", "eng"},
		{"en-US", "eng"},
		{"zh", "zho"},
		{"chi", "zho"},
		{"zh-Hans", "zho"},
		{"fre", "fra"},
		{"ger", "deu"},
		{"ja", "jpn"},
		{"", "und"},
		{"und", "und"},
		{"not a language", "und"},
	}
	for _, tc := range tests {
		if got := ToISO3(tc.input); got != tc.expected {
			t.Errorf("ToISO3(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"eng", "English"},
		{"en", "English"},
		{"jpn", "Japanese"},
		{"", "Unknown"},
		{"???", "???"},
	}
	for _, tc := range tests {
		if got := DisplayName(tc.input); got != tc.expected {
			t.Errorf("DisplayName(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}
