package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/pr-poehali-dev/planeval/internal/config"
	"github.com/pr-poehali-dev/planeval/internal/history"
	"github.com/pr-poehali-dev/planeval/internal/remind"
	"github.com/pr-poehali-dev/planeval/internal/tui/theme"
)

// setupValues collects the first-run wizard answers.
type setupValues struct {
	Employees    string
	ReminderTime string
	Theme        string
}

func newSetupForm(v *setupValues) *huh.Form {
	def := config.DefaultConfig()
	v.ReminderTime = def.Reminder.Time
	v.Theme = def.Appearance.Theme

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Сколько сотрудников в отделе?").
				Description("Используется для распределения показателей. Оставьте пустым, чтобы пропустить.").
				Placeholder("например, 5").
				Value(&v.Employees).
				Validate(func(s string) error {
					s = strings.TrimSpace(s)
					if s == "" {
						return nil
					}
					n, err := strconv.ParseFloat(s, 64)
					if err != nil || n <= 0 {
						return fmt.Errorf("введите положительное число")
					}
					return nil
				}),

			huh.NewInput().
				Title("Время ежедневного напоминания").
				Description("Формат HH:MM. Оставьте пустым, чтобы выключить напоминания.").
				Placeholder(def.Reminder.Time).
				Value(&v.ReminderTime).
				Validate(func(s string) error {
					s = strings.TrimSpace(s)
					if s == "" {
						return nil
					}
					if err := remind.ParseTime(s); err != nil {
						return fmt.Errorf("время должно быть в формате HH:MM")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Title("Тема оформления").
				Options(themeOpts...).
				Value(&v.Theme),
		).Title("Настройка planeval"),
	)
}

// saveSetupConfig persists the wizard answers and applies them to the
// running model.
func (a *App) saveSetupConfig() {
	cfg := config.DefaultConfig()
	cfg.General.Employees = strings.TrimSpace(a.setupVals.Employees)
	cfg.Appearance.Theme = a.setupVals.Theme

	rt := strings.TrimSpace(a.setupVals.ReminderTime)
	cfg.Reminder.Time = rt
	cfg.Reminder.Enabled = rt != ""

	_ = config.Save(cfg)
	theme.SetActive(cfg.Appearance.Theme)

	a.settings = newSettingsState(cfg)
	a.reminderTime = rt
	if a.kv != nil && rt != "" {
		_ = a.kv.SetKV(history.ReminderTimeKey, rt)
	}
}
