package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pr-poehali-dev/planeval/internal/cli"
	"github.com/pr-poehali-dev/planeval/internal/indicator"
	"github.com/pr-poehali-dev/planeval/internal/model"
	"github.com/pr-poehali-dev/planeval/internal/score"
	"github.com/pr-poehali-dev/planeval/internal/tui/components"
	"github.com/pr-poehali-dev/planeval/internal/tui/theme"
)

// calcState holds the calculator tab: the plan/fact inputs, the editable
// indicator rows and the last result.
type calcState struct {
	editing bool
	focus   int // 0=plan, 1=fact, then three fields per indicator row

	planIn textinput.Model
	factIn textinput.Model

	set  *indicator.Set
	rows []indicatorRow

	result   *model.Result
	inputErr bool
}

// indicatorRow pairs one set entry with its three text inputs.
type indicatorRow struct {
	id     string
	nameIn textinput.Model
	planIn textinput.Model
	factIn textinput.Model
}

func newNumberInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 12
	ti.Width = 14
	return ti
}

func newCalcState() calcState {
	plan := newNumberInput("план")
	plan.Focus()
	fact := newNumberInput("факт")

	return calcState{
		editing: true,
		planIn:  plan,
		factIn:  fact,
		set:     indicator.NewSet(),
	}
}

func (c *calcState) fieldCount() int {
	return 2 + 3*len(c.rows)
}

// inputAt returns the text input at the given focus index.
func (c *calcState) inputAt(idx int) *textinput.Model {
	switch idx {
	case 0:
		return &c.planIn
	case 1:
		return &c.factIn
	}
	row := (idx - 2) / 3
	if row < 0 || row >= len(c.rows) {
		return &c.planIn
	}
	switch (idx - 2) % 3 {
	case 0:
		return &c.rows[row].nameIn
	case 1:
		return &c.rows[row].planIn
	default:
		return &c.rows[row].factIn
	}
}

// fieldFor maps a focus index to the indicator row and set field it edits,
// ok=false for the top plan/fact inputs.
func (c *calcState) fieldFor(idx int) (id, field string, ok bool) {
	if idx < 2 {
		return "", "", false
	}
	row := (idx - 2) / 3
	if row >= len(c.rows) {
		return "", "", false
	}
	switch (idx - 2) % 3 {
	case 0:
		field = indicator.FieldName
	case 1:
		field = indicator.FieldPlan
	default:
		field = indicator.FieldFact
	}
	return c.rows[row].id, field, true
}

func (a *App) focusedInput() *textinput.Model {
	return a.calc.inputAt(a.calc.focus)
}

func (a *App) blurAll() {
	a.calc.planIn.Blur()
	a.calc.factIn.Blur()
	for i := range a.calc.rows {
		a.calc.rows[i].nameIn.Blur()
		a.calc.rows[i].planIn.Blur()
		a.calc.rows[i].factIn.Blur()
	}
}

func (a *App) setFocus(idx int) tea.Cmd {
	a.blurAll()
	n := a.calc.fieldCount()
	a.calc.focus = ((idx % n) + n) % n
	in := a.focusedInput()
	cmd := in.Focus()
	return tea.Batch(cmd, in.Cursor.BlinkCmd())
}

func (a App) updateCalculator(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.calc.editing = false
		a.blurAll()
		return a, nil

	case "tab", "down":
		return a, a.setFocus(a.calc.focus + 1)

	case "shift+tab", "up":
		return a, a.setFocus(a.calc.focus - 1)

	case "ctrl+n":
		id := a.calc.set.Add()
		a.calc.rows = append(a.calc.rows, indicatorRow{
			id:     id,
			nameIn: newNumberInput("название"),
			planIn: newNumberInput("план"),
			factIn: newNumberInput("факт"),
		})
		// Jump to the new row's name field.
		return a, a.setFocus(2 + 3*(len(a.calc.rows)-1))

	case "ctrl+x":
		if id, _, ok := a.calc.fieldFor(a.calc.focus); ok {
			a.calc.set.Remove(id)
			for i := range a.calc.rows {
				if a.calc.rows[i].id == id {
					a.calc.rows = append(a.calc.rows[:i], a.calc.rows[i+1:]...)
					break
				}
			}
			return a, a.setFocus(0)
		}
		return a, nil

	case "enter":
		res, ok := a.eng.Calculate(a.calc.planIn.Value(), a.calc.factIn.Value(), a.calc.set.Average())
		if !ok {
			// Invalid input leaves the previous result on screen.
			a.calc.inputErr = true
			return a, nil
		}
		a.calc.inputErr = false
		a.calc.result = &res
		a.recompute()
		return a, nil
	}

	// Forward to the focused input, then mirror indicator edits into the set.
	in := a.focusedInput()
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	a.calc.inputErr = false

	if id, field, ok := a.calc.fieldFor(a.calc.focus); ok {
		a.calc.set.Update(id, field, in.Value())
	}
	return a, cmd
}

// updateCalculatorBlink forwards non-key messages (cursor blinks) to the
// focused input.
func (a App) updateCalculatorBlink(msg tea.Msg) (tea.Model, tea.Cmd) {
	in := a.focusedInput()
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return a, cmd
}

func (a App) renderCalculatorTab(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	errStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)

	var b strings.Builder
	b.WriteString(labelStyle.Render("План:  "))
	b.WriteString(a.calc.planIn.View())
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Факт:  "))
	b.WriteString(a.calc.factIn.View())
	b.WriteString("\n")

	if a.calc.inputErr {
		b.WriteString(errStyle.Render("План должен быть числом больше нуля, факт — числом."))
		b.WriteString("\n")
	}

	if len(a.calc.rows) > 0 {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Дополнительные показатели"))
		b.WriteString("\n")
		items := a.calc.set.Items()
		for i, row := range a.calc.rows {
			b.WriteString(row.nameIn.View())
			b.WriteString(" ")
			b.WriteString(row.planIn.View())
			b.WriteString(" ")
			b.WriteString(row.factIn.View())
			if i < len(items) && items[i].Valid() {
				b.WriteString("  ")
				b.WriteString(components.IndicatorBar(truncStr(items[i].Name, 12), items[i].Percentage, 12, 16))
			}
			b.WriteString("\n")
		}
		b.WriteString(labelStyle.Render(fmt.Sprintf("Среднее по показателям: +%s", cli.FormatPercent(a.calc.set.Average()))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if a.calc.editing {
		b.WriteString(hintStyle.Render("Enter рассчитать · Tab поле · ^n показатель · Esc навигация"))
	} else {
		b.WriteString(hintStyle.Render("Enter редактировать"))
	}

	form := components.ContentCard("Расчет выполнения плана", b.String(), cw)

	if a.calc.result == nil {
		return form
	}
	return lipgloss.JoinVertical(lipgloss.Left, form, a.renderResult(cw))
}

func (a App) renderResult(cw int) string {
	t := theme.Active
	res := *a.calc.result

	scoreStyle := lipgloss.NewStyle().
		Foreground(t.ScoreColor(res.Score)).
		Background(t.Surface).
		Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	var b strings.Builder
	b.WriteString(labelStyle.Render("Выполнение плана:  "))
	b.WriteString(valueStyle.Render(cli.FormatPercent(res.Percentage)))
	b.WriteString("\n")
	if res.AdditionalPercentage != 0 {
		b.WriteString(labelStyle.Render("Доп. показатели:   "))
		b.WriteString(valueStyle.Render("+" + cli.FormatPercent(res.AdditionalPercentage)))
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Итоговый процент:  "))
		b.WriteString(valueStyle.Render(cli.FormatPercent(res.FinalPercentage)))
		b.WriteString("\n")
	}
	b.WriteString(labelStyle.Render("Оценка:            "))
	b.WriteString(scoreStyle.Render(fmt.Sprintf("%d · %s", res.Score, score.Label(res.Score))))
	b.WriteString("\n\n")

	barW := components.CardInnerWidth(cw) - 8
	if barW > 50 {
		barW = 50
	}
	if barW < 10 {
		barW = 10
	}
	b.WriteString(components.CompletionBar(res.FinalPercentage, barW))

	if employees := a.settings.cfg.General.Employees; employees != "" {
		if per := a.calc.set.Distributed(employees); per > 0 {
			b.WriteString("\n")
			b.WriteString(labelStyle.Render(fmt.Sprintf("На сотрудника (%s чел.): ", employees)))
			b.WriteString(valueStyle.Render(cli.FormatPercent(per)))
		}
	}

	return components.ContentCard("Результат", b.String(), cw)
}
