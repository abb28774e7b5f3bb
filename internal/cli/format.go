// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"

	"github.com/pr-poehali-dev/planeval/internal/score"
	"github.com/pr-poehali-dev/planeval/internal/stats"
)

// FormatNumber formats a plan or fact value, dropping the fractional part
// when the value is whole. e.g., 200 -> "200", 40.5 -> "40.50"
func FormatNumber(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatPercent formats a 0-100 percentage with one decimal.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// FormatScore renders a score with its verbal label.
// e.g., 4 -> "4 (Очень хорошо)"
func FormatScore(s int) string {
	return fmt.Sprintf("%d (%s)", s, score.Label(s))
}

// FormatTrend renders a trend delta with its direction arrow.
func FormatTrend(summary stats.Summary) string {
	switch summary.TrendDirection() {
	case stats.Improving:
		return fmt.Sprintf("↑ растет (%+.1f%%)", summary.Trend)
	case stats.Declining:
		return fmt.Sprintf("↓ падает (%+.1f%%)", summary.Trend)
	default:
		return "→ стабильно"
	}
}
