// Package cmd implements the planeval CLI commands.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pr-poehali-dev/planeval/internal/config"
	"github.com/pr-poehali-dev/planeval/internal/history"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	if cfg.General.Employees != "" {
		fmt.Printf("    Employees: %s\n", cfg.General.Employees)
	} else {
		fmt.Println("    Employees: not set")
	}
	fmt.Println()

	fmt.Println("  [Reminder]")
	fmt.Printf("    Enabled: %v\n", cfg.Reminder.Enabled)
	fmt.Printf("    Time:    %s\n", cfg.Reminder.Time)
	if kv, err := openKV(); err == nil {
		if v, err := kv.GetKV(history.ReminderTimeKey); err == nil && v != "" {
			fmt.Printf("    Active:  %s (from database)\n", v)
		}
		_ = kv.Close()
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Printf("  History database: %s\n", flagDBPath)
	fmt.Println()

	fmt.Println("  Run `planeval setup` to reconfigure.")
	return nil
}
