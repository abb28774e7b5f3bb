package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/pr-poehali-dev/planeval/internal/tui/theme"
)

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width, recordCount int, reminderTime string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	left := " [?]помощь  [q]выход"
	right := fmt.Sprintf("Расчетов: %d ", recordCount)
	if reminderTime != "" {
		right = fmt.Sprintf("Напоминание: %s │ ", reminderTime) + right
	}

	// Pad middle
	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	bar := left
	for i := 0; i < padding; i++ {
		bar += " "
	}
	bar += right

	return style.Render(bar)
}
