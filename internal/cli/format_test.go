package cli

import (
	"testing"

	"github.com/pr-poehali-dev/planeval/internal/stats"
)

func TestFormatNumber(t *testing.T) {
	for _, tc := range []struct {
		in   float64
		want string
	}{
		{200, "200"},
		{40.5, "40.50"},
		{0, "0"},
		{-12.25, "-12.25"},
	} {
		if got := FormatNumber(tc.in); got != tc.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(85); got != "85.0%" {
		t.Fatalf("FormatPercent(85) = %q", got)
	}
	if got := FormatPercent(33.333); got != "33.3%" {
		t.Fatalf("FormatPercent(33.333) = %q", got)
	}
}

func TestFormatScore(t *testing.T) {
	if got := FormatScore(5); got != "5 (Отлично)" {
		t.Fatalf("FormatScore(5) = %q", got)
	}
	if got := FormatScore(0); got != "0 (Неудовлетворительно)" {
		t.Fatalf("FormatScore(0) = %q", got)
	}
}

func TestFormatTrend(t *testing.T) {
	if got := FormatTrend(stats.Summary{Trend: 12}); got != "↑ растет (+12.0%)" {
		t.Fatalf("improving trend = %q", got)
	}
	if got := FormatTrend(stats.Summary{Trend: -8}); got != "↓ падает (-8.0%)" {
		t.Fatalf("declining trend = %q", got)
	}
	if got := FormatTrend(stats.Summary{Trend: 2}); got != "→ стабильно" {
		t.Fatalf("stable trend = %q", got)
	}
}
