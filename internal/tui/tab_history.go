package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pr-poehali-dev/planeval/internal/cli"
	"github.com/pr-poehali-dev/planeval/internal/score"
	"github.com/pr-poehali-dev/planeval/internal/tui/components"
	"github.com/pr-poehali-dev/planeval/internal/tui/theme"
)

func (a App) renderHistoryTab(cw, contentH int) string {
	t := theme.Active

	if len(a.records) == 0 {
		emptyStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		return components.ContentCard("История",
			emptyStyle.Render("История пуста. Выполните расчет на вкладке Калькулятор."), cw)
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)

	// Visible window around the cursor.
	visible := contentH - 8
	if visible < 3 {
		visible = 3
	}
	start := 0
	if a.histCur >= visible {
		start = a.histCur - visible + 1
	}
	end := start + visible
	if end > len(a.records) {
		end = len(a.records)
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render(fmt.Sprintf("%-22s %10s %10s %9s  %s", "Дата", "План", "Факт", "Процент", "Оценка")))
	b.WriteString("\n")

	for i := start; i < end; i++ {
		r := a.records[i]
		scoreStyle := lipgloss.NewStyle().Foreground(t.ScoreColor(r.Score)).Background(t.Surface)
		line := fmt.Sprintf("%-22s %10s %10s %9s  ",
			r.Date,
			cli.FormatNumber(r.Plan),
			cli.FormatNumber(r.Fact),
			cli.FormatPercent(r.EffectivePercentage()))

		if i == a.histCur {
			b.WriteString(selStyle.Render("▸ " + line))
		} else {
			b.WriteString(rowStyle.Render("  " + line))
		}
		b.WriteString(scoreStyle.Render(fmt.Sprintf("%d %s", r.Score, truncStr(score.Label(r.Score), 18))))
		b.WriteString("\n")
	}

	// Sparkline runs oldest to newest.
	values := make([]float64, 0, len(a.records))
	for i := len(a.records) - 1; i >= 0; i-- {
		values = append(values, a.records[i].EffectivePercentage())
	}
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Динамика: "))
	b.WriteString(components.Sparkline(values, t.Accent))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).
		Render("j/k выбор · D очистить историю"))

	return components.ContentCard(fmt.Sprintf("История (%d)", len(a.records)), b.String(), cw)
}
