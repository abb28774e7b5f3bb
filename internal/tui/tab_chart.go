package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/pr-poehali-dev/planeval/internal/chartdata"
	"github.com/pr-poehali-dev/planeval/internal/tui/components"
	"github.com/pr-poehali-dev/planeval/internal/tui/theme"
)

func (a App) renderChartTab(cw, contentH int) string {
	t := theme.Active

	if len(a.records) == 0 {
		emptyStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		return components.ContentCard("График",
			emptyStyle.Render("История пуста, строить нечего."), cw)
	}

	points := chartdata.Series(a.records)
	values := chartdata.Values(points)
	labels := make([]string, len(points))
	for i, p := range points {
		labels[i] = p.Date
	}

	chartH := contentH - 6
	if chartH < 4 {
		chartH = 4
	}
	if chartH > 16 {
		chartH = 16
	}

	chart := components.BarChart(values, labels, t.Accent, components.CardInnerWidth(cw), chartH)
	return components.ContentCard("Процент выполнения по расчетам", chart, cw)
}
