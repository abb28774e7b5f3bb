package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pr-poehali-dev/planeval/internal/cli"
	"github.com/pr-poehali-dev/planeval/internal/model"
	"github.com/pr-poehali-dev/planeval/internal/score"
	"github.com/pr-poehali-dev/planeval/internal/tui/components"
	"github.com/pr-poehali-dev/planeval/internal/tui/theme"
)

func (a App) renderStatsTab(cw int) string {
	t := theme.Active

	if len(a.records) == 0 {
		emptyStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		return components.ContentCard("Статистика",
			emptyStyle.Render("История пуста, статистики пока нет."), cw)
	}

	s := a.summary

	cards := components.MetricCardRow([]struct{ Label, Value, Detail string }{
		{"Расчетов", fmt.Sprintf("%d", s.Count), ""},
		{"Средний %", cli.FormatPercent(s.AvgPercentage), cli.FormatTrend(s)},
		{"Максимум", cli.FormatPercent(s.MaxPercentage), ""},
		{"Минимум", cli.FormatPercent(s.MinPercentage), ""},
		{"Ср. оценка", fmt.Sprintf("%.1f", s.AvgScore), ""},
	}, cw)

	var rows []string
	rows = append(rows, cards)

	half := cw / 2
	if s.Best != nil && s.Worst != nil {
		best := components.ContentCard("Лучший результат", a.renderRecordSummary(*s.Best), half)
		worst := components.ContentCard("Худший результат", a.renderRecordSummary(*s.Worst), cw-half)
		rows = append(rows, components.CardRow([]string{best, worst}))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (a App) renderRecordSummary(r model.Record) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	scoreStyle := lipgloss.NewStyle().Foreground(t.ScoreColor(r.Score)).Background(t.Surface).Bold(true)

	var b strings.Builder
	b.WriteString(valueStyle.Render(cli.FormatPercent(r.EffectivePercentage())))
	b.WriteString(labelStyle.Render("  план "))
	b.WriteString(valueStyle.Render(cli.FormatNumber(r.Plan)))
	b.WriteString(labelStyle.Render(", факт "))
	b.WriteString(valueStyle.Render(cli.FormatNumber(r.Fact)))
	b.WriteString("\n")
	b.WriteString(scoreStyle.Render(fmt.Sprintf("%d · %s", r.Score, score.Label(r.Score))))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(r.Date))
	return b.String()
}
