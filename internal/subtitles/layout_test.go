package subtitles

import "testing"

func TestComputeLayout1080p(t *testing.T) {
	got := ComputeLayout(1920, 1080, 0.18)
	want := Layout{
		Width:         1920,
		Height:        1080,
		CJKFontSize:   56,
		LatinFontSize: 41,
		SideMargin:    115,
		CJKMarginV:    194,
		LatinMarginV:  266,
	}
	if got != want {
		t.Fatalf("ComputeLayout = %+v, want %+v", got, want)
	}
}

func TestComputeLayoutFontFloors(t *testing.T) {
	got := ComputeLayout(854, 480, 0.18)
	if got.CJKFontSize != 26 || got.LatinFontSize != 20 {
		t.Fatalf("expected font floors at 480p, got %+v", got)
	}
	if got.LatinMarginV != 86+26+7 {
		t.Fatalf("unexpected latin margin %d", got.LatinMarginV)
	}
}

func TestComputeLayoutDefaults(t *testing.T) {
	got := ComputeLayout(0, -1, 0)
	want := ComputeLayout(DefaultWidth, DefaultHeight, DefaultMarginFraction)
	if got != want {
		t.Fatalf("defaults not applied: %+v vs %+v", got, want)
	}
}

func TestComputeLayoutLatinAboveCJK(t *testing.T) {
	resolutions := [][2]int{{640, 360}, {854, 480}, {1280, 720}, {1920, 1080}, {2560, 1440}, {3840, 2160}, {1080, 1920}}
	for _, res := range resolutions {
		for pct := 5; pct <= 45; pct++ {
			layout := ComputeLayout(res[0], res[1], float64(pct)/100)
			if layout.CJKMarginV < 0 || layout.LatinMarginV < 0 {
				t.Fatalf("negative margin for %v at %d%%: %+v", res, pct, layout)
			}
			if layout.LatinMarginV <= layout.CJKMarginV {
				t.Fatalf("latin margin not above cjk for %v at %d%%: %+v", res, pct, layout)
			}
		}
	}
}

func TestClampMarginFraction(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.01, MinMarginFraction},
		{0.18, 0.18},
		{0.9, MaxMarginFraction},
	}
	for _, tt := range tests {
		if got := ClampMarginFraction(tt.in); got != tt.want {
			t.Errorf("ClampMarginFraction(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
