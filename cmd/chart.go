package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pr-poehali-dev/planeval/internal/chartdata"
	"github.com/pr-poehali-dev/planeval/internal/cli"
	"github.com/pr-poehali-dev/planeval/internal/score"
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Show a completion chart of the history",
	RunE:  runChart,
}

func init() {
	rootCmd.AddCommand(chartCmd)
}

func runChart(_ *cobra.Command, _ []string) error {
	records, closeFn, err := loadHistory()
	if err != nil {
		return err
	}
	defer closeFn()

	if len(records) == 0 {
		fmt.Println("\n  История пуста.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("ДИНАМИКА ВЫПОЛНЕНИЯ"))
	fmt.Println()

	points := chartdata.Series(records)

	maxPct := 0.0
	for _, p := range points {
		if v := p.Effective(); v > maxPct {
			maxPct = v
		}
	}

	for _, p := range points {
		pct := p.Effective()
		fmt.Printf("  %s  %-30s %s  %s\n",
			p.Date,
			cli.RenderHorizontalBar(pct, maxPct, 30),
			cli.FormatPercent(pct),
			cli.RenderScore(score.FromPercentage(pct)))
	}
	fmt.Println()

	return nil
}
