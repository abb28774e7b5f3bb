package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pr-poehali-dev/planeval/internal/cli"
	"github.com/pr-poehali-dev/planeval/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics over the calculation history",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, _ []string) error {
	records, closeFn, err := loadHistory()
	if err != nil {
		return err
	}
	defer closeFn()

	if len(records) == 0 {
		fmt.Println("\n  История пуста. Выполните расчет: planeval calc <план> <факт>")
		return nil
	}

	summary := stats.Compute(records)

	fmt.Println()
	fmt.Println(cli.RenderTitle("СТАТИСТИКА"))
	fmt.Println()
	fmt.Printf("  Расчетов:             %d\n", summary.Count)
	fmt.Printf("  Средний процент:      %s\n", cli.FormatPercent(summary.AvgPercentage))
	fmt.Printf("  Максимальный процент: %s\n", cli.FormatPercent(summary.MaxPercentage))
	fmt.Printf("  Минимальный процент:  %s\n", cli.FormatPercent(summary.MinPercentage))
	fmt.Printf("  Средняя оценка:       %.1f\n", summary.AvgScore)
	fmt.Printf("  Тенденция:            %s\n", cli.FormatTrend(summary))
	fmt.Println()

	if summary.Best != nil {
		fmt.Printf("  Лучший результат:  %s, %s от %s\n",
			cli.FormatPercent(summary.Best.EffectivePercentage()),
			cli.RenderScore(summary.Best.Score),
			summary.Best.Date)
	}
	if summary.Worst != nil {
		fmt.Printf("  Худший результат:  %s, %s от %s\n",
			cli.FormatPercent(summary.Worst.EffectivePercentage()),
			cli.RenderScore(summary.Worst.Score),
			summary.Worst.Date)
	}
	fmt.Println()

	return nil
}
