package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pr-poehali-dev/planeval/internal/engine"
	"github.com/pr-poehali-dev/planeval/internal/history"
	"github.com/pr-poehali-dev/planeval/internal/model"
)

var (
	flagDBPath  string
	flagNoStore bool
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "planeval",
	Short: "Plan completion tracker",
	Long:  "Track plan completion: percentage, 0-5 score, history, statistics and reports.",
	RunE:  runStats,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDBPath, "db", "d", history.DataPath(), "History database path")
	rootCmd.PersistentFlags().BoolVar(&flagNoStore, "no-store", false, "Do not persist this run's calculations")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress warnings")
}

// openStore opens the history database. When that fails the command still
// works against an in-memory store, so a broken database never blocks a
// calculation; results just won't persist.
func openStore() (history.Store, func(), error) {
	if flagNoStore {
		return history.NewMemoryStore(), func() {}, nil
	}
	s, err := history.Open(flagDBPath)
	if err != nil {
		warnf("history database unavailable (%v), results will not be saved", err)
		return history.NewMemoryStore(), func() {}, nil
	}
	return s, func() { _ = s.Close() }, nil
}

// openKV opens the database for key-value access. Unlike openStore there is
// no memory fallback, since reminder settings must survive the process.
func openKV() (*history.SQLiteStore, error) {
	s, err := history.Open(flagDBPath)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	return s, nil
}

func newEngine(store history.Store) *engine.Engine {
	return engine.New(store, engine.WithWarn(func(err error) {
		warnf("%v", err)
	}))
}

func loadHistory() ([]model.Record, func(), error) {
	store, closeFn, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	records, err := store.Load()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("load history: %w", err)
	}
	return records, closeFn, nil
}

func warnf(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, "  "+format+"\n", args...)
}

func nowLocal() time.Time {
	return time.Now()
}
