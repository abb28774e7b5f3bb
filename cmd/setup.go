package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pr-poehali-dev/planeval/internal/config"
	"github.com/pr-poehali-dev/planeval/internal/history"
	"github.com/pr-poehali-dev/planeval/internal/remind"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)

	// Load existing config or defaults
	cfg, _ := config.Load()

	fmt.Println()
	fmt.Println("  Welcome to planeval!")
	fmt.Println()

	// 1. Employees
	fmt.Println("  1. Employee count")
	fmt.Println("     Used to distribute indicator results per person. Empty to skip.")
	if cfg.General.Employees != "" {
		fmt.Printf("     Current: %s\n", cfg.General.Employees)
	}
	fmt.Print("     > ")
	employees, _ := reader.ReadString('\n')
	employees = strings.TrimSpace(employees)
	if employees != "" {
		if n, err := strconv.ParseFloat(employees, 64); err != nil || n <= 0 {
			fmt.Println("     Not a positive number, keeping previous value.")
		} else {
			cfg.General.Employees = employees
		}
	}
	fmt.Println()

	// 2. Reminder time
	fmt.Println("  2. Daily reminder time (HH:MM)")
	fmt.Println("     Empty to disable reminders.")
	if cfg.Reminder.Enabled && cfg.Reminder.Time != "" {
		fmt.Printf("     Current: %s\n", cfg.Reminder.Time)
	}
	fmt.Print("     > ")
	reminderTime, _ := reader.ReadString('\n')
	reminderTime = strings.TrimSpace(reminderTime)
	switch {
	case reminderTime == "":
		cfg.Reminder.Enabled = false
	case remind.ParseTime(reminderTime) != nil:
		fmt.Println("     Not a valid HH:MM time, keeping previous value.")
	default:
		cfg.Reminder.Time = reminderTime
		cfg.Reminder.Enabled = true
	}
	fmt.Println()

	// 3. Theme
	fmt.Println("  3. Color theme")
	fmt.Println("     (1) Flexoki Dark [default]")
	fmt.Println("     (2) Catppuccin Mocha")
	fmt.Println("     (3) Tokyo Night")
	fmt.Println("     (4) Terminal (ANSI 16)")
	fmt.Print("     > ")
	themeChoice, _ := reader.ReadString('\n')
	themeChoice = strings.TrimSpace(themeChoice)
	switch themeChoice {
	case "2":
		cfg.Appearance.Theme = "catppuccin-mocha"
	case "3":
		cfg.Appearance.Theme = "tokyo-night"
	case "4":
		cfg.Appearance.Theme = "terminal"
	default:
		cfg.Appearance.Theme = "flexoki-dark"
	}

	// Save
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	// Mirror the reminder time into the database so `remind run` picks it up.
	if cfg.Reminder.Enabled {
		if kv, err := openKV(); err == nil {
			_ = kv.SetKV(history.ReminderTimeKey, cfg.Reminder.Time)
			_ = kv.Close()
		}
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `planeval setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}
