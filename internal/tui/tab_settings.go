package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pr-poehali-dev/planeval/internal/config"
	"github.com/pr-poehali-dev/planeval/internal/history"
	"github.com/pr-poehali-dev/planeval/internal/remind"
	"github.com/pr-poehali-dev/planeval/internal/tui/components"
	"github.com/pr-poehali-dev/planeval/internal/tui/theme"
)

// Settings fields, top to bottom.
const (
	settingTheme = iota
	settingEmployees
	settingReminder
	settingsFieldCount
)

type settingsState struct {
	cfg     config.Config
	cursor  int
	editing bool
	input   textinput.Model
	status  string
}

func newSettingsState(cfg config.Config) settingsState {
	return settingsState{cfg: cfg}
}

// updateSettingsNav handles keys on the settings tab outside edit mode.
// handled=false lets the caller fall through to global bindings.
func (a App) updateSettingsNav(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		if a.settings.cursor < settingsFieldCount-1 {
			a.settings.cursor++
		}
		return a, nil, true
	case "k", "up":
		if a.settings.cursor > 0 {
			a.settings.cursor--
		}
		return a, nil, true
	case "enter":
		switch a.settings.cursor {
		case settingTheme:
			a.cycleTheme()
			return a, nil, true
		case settingEmployees:
			return a.startSettingsEdit("количество сотрудников", a.settings.cfg.General.Employees)
		case settingReminder:
			return a.startSettingsEdit("HH:MM", a.settings.cfg.Reminder.Time)
		}
	}
	return a, nil, false
}

func (a App) startSettingsEdit(placeholder, value string) (tea.Model, tea.Cmd, bool) {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 16
	ti.Width = 20
	ti.SetValue(value)
	cmd := ti.Focus()

	a.settings.input = ti
	a.settings.editing = true
	a.settings.status = ""
	return a, tea.Batch(cmd, ti.Cursor.BlinkCmd()), true
}

func (a *App) cycleTheme() {
	current := 0
	for i, t := range theme.All {
		if t.Name == a.settings.cfg.Appearance.Theme {
			current = i
			break
		}
	}
	next := theme.All[(current+1)%len(theme.All)]
	a.settings.cfg.Appearance.Theme = next.Name
	theme.SetActive(next.Name)
	a.saveSettings()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.settings.editing = false
		return a, nil

	case "enter":
		value := strings.TrimSpace(a.settings.input.Value())
		switch a.settings.cursor {
		case settingEmployees:
			a.settings.cfg.General.Employees = value
		case settingReminder:
			if value != "" {
				if err := remind.ParseTime(value); err != nil {
					a.settings.status = "Время напоминания должно быть в формате HH:MM"
					return a, nil
				}
			}
			a.settings.cfg.Reminder.Time = value
			a.settings.cfg.Reminder.Enabled = value != ""
			a.reminderTime = value
			if a.kv != nil {
				_ = a.kv.SetKV(history.ReminderTimeKey, value)
			}
		}
		a.settings.editing = false
		a.saveSettings()
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

func (a *App) saveSettings() {
	if err := config.Save(a.settings.cfg); err != nil {
		a.settings.status = fmt.Sprintf("Не удалось сохранить настройки: %v", err)
		return
	}
	a.settings.status = "Сохранено в " + config.ConfigPath()
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	row := func(idx int, label, value string) string {
		marker := "  "
		style := labelStyle
		if idx == a.settings.cursor {
			marker = "▸ "
			style = selStyle
		}
		if a.settings.editing && idx == a.settings.cursor {
			return marker + style.Render(fmt.Sprintf("%-22s", label)) + a.settings.input.View()
		}
		return marker + style.Render(fmt.Sprintf("%-22s", label)) + valueStyle.Render(value)
	}

	employees := a.settings.cfg.General.Employees
	if employees == "" {
		employees = "не задано"
	}
	reminderTime := a.settings.cfg.Reminder.Time
	if reminderTime == "" || !a.settings.cfg.Reminder.Enabled {
		reminderTime = "выключено"
	}

	var b strings.Builder
	b.WriteString(row(settingTheme, "Тема", a.settings.cfg.Appearance.Theme))
	b.WriteString("\n")
	b.WriteString(row(settingEmployees, "Сотрудников", employees))
	b.WriteString("\n")
	b.WriteString(row(settingReminder, "Напоминание", reminderTime))
	b.WriteString("\n\n")

	if a.settings.status != "" {
		b.WriteString(labelStyle.Render(a.settings.status))
		b.WriteString("\n")
	}
	if a.settings.editing {
		b.WriteString(hintStyle.Render("Enter сохранить · Esc отмена"))
	} else {
		b.WriteString(hintStyle.Render("j/k выбор · Enter изменить"))
	}

	return components.ContentCard("Настройки", b.String(), cw)
}
