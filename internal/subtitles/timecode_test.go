package subtitles

import (
	"math"
	"testing"
)

func TestFormatASSTime(t *testing.T) {
	tests := []struct {
		seconds  float64
		expected string
	}{
		{0, "0:00:00.00"},
		{1.5, "0:00:01.50"},
		{0.29, "0:00:00.29"},
		{61.999, "0:01:01.99"},
		{1.9996, "0:00:01.99"},
		{2.675, "0:00:02.67"},
		{3725.456, "1:02:05.45"},
		{36000, "10:00:00.00"},
	}
	for _, tt := range tests {
		if got := FormatASSTime(tt.seconds); got != tt.expected {
			t.Errorf("FormatASSTime(%v) = %q, want %q", tt.seconds, got, tt.expected)
		}
	}
}

func TestFormatSRTTime(t *testing.T) {
	tests := []struct {
		seconds  float64
		expected string
	}{
		{0, "00:00:00,000"},
		{1.001, "00:00:01,001"},
		{0.29, "00:00:00,290"},
		{3725.456, "01:02:05,456"},
		{86399.999, "23:59:59,999"},
		{1.9999999, "00:00:01,999"},
	}
	for _, tt := range tests {
		if got := FormatSRTTime(tt.seconds); got != tt.expected {
			t.Errorf("FormatSRTTime(%v) = %q, want %q", tt.seconds, got, tt.expected)
		}
	}
}

func TestFormatTimeNegativeDoesNotPanic(t *testing.T) {
	_ = FormatSRTTime(-1.5)
	_ = FormatASSTime(-1.5)
	_ = FormatSRTTime(math.NaN())
}

func TestParseSRTTimestampAcceptsBothSeparators(t *testing.T) {
	for _, value := range []string{"00:01:02,345", "00:01:02.345"} {
		got, err := ParseSRTTimestamp(value)
		if err != nil {
			t.Fatalf("ParseSRTTimestamp(%q) error: %v", value, err)
		}
		if math.Abs(got-62.345) > 1e-9 {
			t.Fatalf("ParseSRTTimestamp(%q) = %v, want 62.345", value, got)
		}
	}
}

func TestParseSRTTimestampRejectsGarbage(t *testing.T) {
	for _, value := range []string{"", "12:34", "aa:bb:cc,ddd", "00:00:01"} {
		if _, err := ParseSRTTimestamp(value); err == nil {
			t.Errorf("expected error for %q", value)
		}
	}
}

func TestSRTTimestampRoundTrip(t *testing.T) {
	// Every 997ms across a day keeps the loop short while hitting varied digits.
	for ms := int64(0); ms < 86_400_000; ms += 997 {
		seconds := float64(ms) / 1000
		encoded := FormatSRTTime(seconds)
		decoded, err := ParseSRTTimestamp(encoded)
		if err != nil {
			t.Fatalf("decode %q: %v", encoded, err)
		}
		if math.Abs(decoded-seconds) >= 0.0005 {
			t.Fatalf("round trip %v -> %q -> %v", seconds, encoded, decoded)
		}
	}
}
