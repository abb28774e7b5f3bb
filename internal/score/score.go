// Package score maps completion percentages to the 0-5 performance scale.
package score

import "github.com/charmbracelet/lipgloss"

// Min and Max bound the performance scale.
const (
	Min = 0
	Max = 5
)

// FromPercentage maps a completion percentage to a score band. The ladder
// is total: negative values land in band 0, values above 100 in band 5.
func FromPercentage(p float64) int {
	switch {
	case p <= 10:
		return 0
	case p <= 35:
		return 1
	case p <= 50:
		return 2
	case p <= 65:
		return 3
	case p <= 79:
		return 4
	default:
		return 5
	}
}

var labels = [6]string{
	"Неудовлетворительно",
	"Плохо",
	"Удовлетворительно",
	"Хорошо",
	"Очень хорошо",
	"Отлично",
}

// Label returns the fixed display label for a score.
// Out-of-range scores clamp to band 0.
func Label(s int) string {
	if s < Min || s > Max {
		s = Min
	}
	return labels[s]
}

var colors = [6]lipgloss.Color{
	lipgloss.Color("#D14D41"), // red
	lipgloss.Color("#DA702C"), // orange
	lipgloss.Color("#D0A215"), // yellow
	lipgloss.Color("#4385BE"), // blue
	lipgloss.Color("#8B7EC8"), // purple
	lipgloss.Color("#879A39"), // green
}

// Color returns the presentation color for a score.
// Out-of-range scores clamp to band 0.
func Color(s int) lipgloss.Color {
	if s < Min || s > Max {
		s = Min
	}
	return colors[s]
}
