package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pr-poehali-dev/planeval/internal/cli"
	"github.com/pr-poehali-dev/planeval/internal/history"
)

var (
	flagHistScore int
	flagHistFrom  string
	flagHistTo    string
	flagHistMin   float64
	flagHistMax   float64
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the calculation history",
	RunE:  runHistory,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Erase the calculation history",
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistScore, "score", "s", -1, "Only records with this score (0-5)")
	historyCmd.Flags().StringVar(&flagHistFrom, "from", "", "Only records on or after this date (YYYY-MM-DD)")
	historyCmd.Flags().StringVar(&flagHistTo, "to", "", "Only records on or before this date (YYYY-MM-DD)")
	historyCmd.Flags().Float64Var(&flagHistMin, "min", -1, "Only records with at least this percentage")
	historyCmd.Flags().Float64Var(&flagHistMax, "max", -1, "Only records with at most this percentage")

	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	records, closeFn, err := loadHistory()
	if err != nil {
		return err
	}
	defer closeFn()

	criteria, err := historyCriteria(cmd)
	if err != nil {
		return err
	}
	records = history.Apply(records, criteria)

	if len(records) == 0 {
		fmt.Println("\n  История пуста.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("ИСТОРИЯ РАСЧЕТОВ"))
	fmt.Println()

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.Date,
			cli.FormatNumber(r.Plan),
			cli.FormatNumber(r.Fact),
			cli.FormatPercent(r.EffectivePercentage()),
			cli.FormatScore(r.Score),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Дата", "План", "Факт", "Процент", "Оценка"},
		Rows:    rows,
	}))

	// Sparkline runs oldest to newest.
	values := make([]float64, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		values = append(values, records[i].EffectivePercentage())
	}
	fmt.Printf("\n  Динамика: %s\n", cli.RenderSparkline(values))

	return nil
}

func runHistoryClear(_ *cobra.Command, _ []string) error {
	store, closeFn, err := openStore()
	if err != nil {
		return err
	}
	defer closeFn()

	if err := store.Clear(); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	fmt.Println("  История очищена.")
	return nil
}

func historyCriteria(cmd *cobra.Command) (history.Criteria, error) {
	var c history.Criteria

	if cmd.Flags().Changed("score") {
		s := flagHistScore
		c.Score = &s
	}
	if flagHistFrom != "" {
		t, err := time.ParseInLocation("2006-01-02", flagHistFrom, time.Local)
		if err != nil {
			return c, fmt.Errorf("invalid --from date %q, want YYYY-MM-DD", flagHistFrom)
		}
		c.DateFrom = t
	}
	if flagHistTo != "" {
		t, err := time.ParseInLocation("2006-01-02", flagHistTo, time.Local)
		if err != nil {
			return c, fmt.Errorf("invalid --to date %q, want YYYY-MM-DD", flagHistTo)
		}
		c.DateTo = t
	}
	if cmd.Flags().Changed("min") {
		v := flagHistMin
		c.PercentMin = &v
	}
	if cmd.Flags().Changed("max") {
		v := flagHistMax
		c.PercentMax = &v
	}

	return c, nil
}
