// Package tui provides the interactive Bubble Tea interface for planeval.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/pr-poehali-dev/planeval/internal/config"
	"github.com/pr-poehali-dev/planeval/internal/engine"
	"github.com/pr-poehali-dev/planeval/internal/history"
	"github.com/pr-poehali-dev/planeval/internal/model"
	"github.com/pr-poehali-dev/planeval/internal/stats"
	"github.com/pr-poehali-dev/planeval/internal/tui/components"
	"github.com/pr-poehali-dev/planeval/internal/tui/theme"
)

// Tab indices.
const (
	tabCalculator = iota
	tabHistory
	tabChart
	tabStats
	tabSettings
)

// App is the root Bubble Tea model.
type App struct {
	// Data
	store   history.Store
	kv      history.KV // nil when the store has no kv table
	eng     *engine.Engine
	records []model.Record
	summary stats.Summary

	// Reminder time shown in the status bar, loaded from kv.
	reminderTime string

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Per-tab state
	calc     calcState
	histCur  int
	settings settingsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals setupValues
	needSetup bool
}

const (
	minTerminalWidth = 70
	maxContentWidth  = 160
	minContentHeight = 5
)

// loadConfigOrDefault loads config, returning defaults on error so the TUI
// can always start even if the file is corrupted.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// NewApp creates the TUI model on top of an opened history store. kv may be
// nil when reminder settings are unavailable.
func NewApp(store history.Store, kv history.KV) App {
	cfg := loadConfigOrDefault()
	theme.SetActive(cfg.Appearance.Theme)

	a := App{
		store:     store,
		kv:        kv,
		eng:       engine.New(store),
		needSetup: !config.Exists(),
		calc:      newCalcState(),
		settings:  newSettingsState(cfg),
	}

	if kv != nil {
		if v, err := kv.GetKV(history.ReminderTimeKey); err == nil {
			a.reminderTime = v
		}
	}

	a.recompute()

	if a.needSetup {
		a.setupForm = newSetupForm(&a.setupVals)
	}

	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnableMouseCellMotion,
		a.calc.planIn.Cursor.BlinkCmd(),
	}
	if a.needSetup && a.setupForm != nil {
		cmds = append(cmds, a.setupForm.Init())
	}
	return tea.Batch(cmds...)
}

// recompute reloads the history and rebuilds the derived aggregates.
func (a *App) recompute() {
	a.records = a.eng.History()
	a.summary = stats.Compute(a.records)

	if a.histCur >= len(a.records) {
		a.histCur = len(a.records) - 1
	}
	if a.histCur < 0 {
		a.histCur = 0
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || (a.needSetup && a.setupForm != nil) {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if a.activeTab == tabHistory && a.histCur > 0 {
				a.histCur--
			}
			return a, nil
		case tea.MouseButtonWheelDown:
			if a.activeTab == tabHistory && a.histCur < len(a.records)-1 {
				a.histCur++
			}
			return a, nil
		case tea.MouseButtonLeft:
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
			return a, nil
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		// First-run setup wizard intercepts all keys
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		// Calculator editing intercepts most keys
		if a.activeTab == tabCalculator && a.calc.editing {
			return a.updateCalculator(msg)
		}

		// Settings editing intercepts all keys
		if a.activeTab == tabSettings && a.settings.editing {
			return a.updateSettingsInput(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		if a.activeTab == tabHistory {
			switch key {
			case "j", "down":
				if a.histCur < len(a.records)-1 {
					a.histCur++
				}
				return a, nil
			case "k", "up":
				if a.histCur > 0 {
					a.histCur--
				}
				return a, nil
			case "G":
				a.histCur = len(a.records) - 1
				if a.histCur < 0 {
					a.histCur = 0
				}
				return a, nil
			case "g":
				a.histCur = 0
				return a, nil
			case "D":
				if err := a.eng.ClearHistory(); err == nil {
					a.recompute()
				}
				return a, nil
			}
		}

		if a.activeTab == tabSettings {
			if m, cmd, handled := a.updateSettingsNav(key); handled {
				return m, cmd
			}
		}

		if key == "q" {
			return a, tea.Quit
		}

		// Enter edit mode on the calculator
		if a.activeTab == tabCalculator && (key == "enter" || key == "i" || key == "e") {
			a.calc.editing = true
			return a, a.focusedInput().Focus()
		}

		// Tab navigation
		switch key {
		case "left":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		case "right":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		default:
			if len(key) == 1 {
				if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
					a.activeTab = idx
				}
			}
		}
		return a, nil
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	// Cursor blink messages for the focused input
	if a.activeTab == tabCalculator && a.calc.editing {
		return a.updateCalculatorBlink(msg)
	}

	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		a.saveSetupConfig()
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	if a.setupForm.State == huh.StateAborted {
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Терминал слишком узкий (%d колонок)\n\n  planeval требует минимум %d колонок.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Cyan).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Клавиши"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Навигация"))
	b.WriteString("\n")
	for _, bind := range []struct{ key, desc string }{
		{"c h g s x", "Перейти на вкладку"},
		{"← →", "Соседняя вкладка"},
		{"j k", "Перемещение по списку"},
	} {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Калькулятор"))
	b.WriteString("\n")
	for _, bind := range []struct{ key, desc string }{
		{"Enter", "Редактировать / Рассчитать"},
		{"Tab", "Следующее поле"},
		{"^n", "Добавить показатель"},
		{"^x", "Удалить показатель"},
		{"Esc", "Выйти из редактирования"},
	} {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Прочее"))
	b.WriteString("\n")
	for _, bind := range []struct{ key, desc string }{
		{"D", "Очистить историю (на вкладке История)"},
		{"?", "Помощь"},
		{"q", "Выход"},
	} {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Нажмите любую клавишу"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)
	statusBar := components.RenderStatusBar(w, len(a.records), a.reminderTime)

	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case tabCalculator:
		content = a.renderCalculatorTab(cw)
	case tabHistory:
		content = a.renderHistoryTab(cw, contentH)
	case tabChart:
		content = a.renderChartTab(cw, contentH)
	case tabStats:
		content = a.renderStatsTab(cw)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 1 // leading space
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW
		if i < len(components.Tabs)-1 {
			pos += 2 // separator
		}
	}
	return -1
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color,
// so gaps between cards and empty lines keep the theme background.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}
