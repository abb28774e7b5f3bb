package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pr-poehali-dev/planeval/internal/cli"
	"github.com/pr-poehali-dev/planeval/internal/config"
	"github.com/pr-poehali-dev/planeval/internal/indicator"
)

var (
	flagIndicators []string
	flagEmployees  string
)

var calcCmd = &cobra.Command{
	Use:   "calc <plan> <fact>",
	Short: "Calculate plan completion and score",
	Long: `Calculate the completion percentage and 0-5 score for a plan/fact pair.
Additional indicators raise the final percentage by their average:

  planeval calc 200 150 --indicator sales=100:80 --indicator calls=50:60`,
	Args: cobra.ExactArgs(2),
	RunE: runCalc,
}

func init() {
	calcCmd.Flags().StringArrayVarP(&flagIndicators, "indicator", "i", nil,
		"Additional indicator as name=plan:fact (repeatable)")
	calcCmd.Flags().StringVarP(&flagEmployees, "employees", "e", "",
		"Distribute the indicator average across this many employees")
	rootCmd.AddCommand(calcCmd)
}

func runCalc(_ *cobra.Command, args []string) error {
	set := indicator.NewSet()
	for _, spec := range flagIndicators {
		name, plan, fact, err := parseIndicator(spec)
		if err != nil {
			return err
		}
		id := set.Add()
		set.Update(id, indicator.FieldName, name)
		set.Update(id, indicator.FieldPlan, plan)
		set.Update(id, indicator.FieldFact, fact)
	}

	store, closeFn, err := openStore()
	if err != nil {
		return err
	}
	defer closeFn()

	res, ok := newEngine(store).Calculate(args[0], args[1], set.Average())
	if !ok {
		return fmt.Errorf("invalid input: plan must be a number greater than zero, fact a number")
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("РАСЧЕТ ВЫПОЛНЕНИЯ ПЛАНА"))
	fmt.Println()
	fmt.Printf("  Выполнение плана:  %s\n", cli.FormatPercent(res.Percentage))
	if len(flagIndicators) > 0 {
		fmt.Printf("  Доп. показатели:   +%s\n", cli.FormatPercent(res.AdditionalPercentage))
		fmt.Printf("  Итоговый процент:  %s\n", cli.FormatPercent(res.FinalPercentage))
	}
	fmt.Printf("  Оценка:            %s\n", cli.RenderScore(res.Score))
	fmt.Println()
	fmt.Printf("  %s\n", cli.RenderProgressBar(res.FinalPercentage, 40))

	employees := flagEmployees
	if employees == "" {
		if cfg, err := config.Load(); err == nil {
			employees = cfg.General.Employees
		}
	}
	if employees != "" {
		if per := set.Distributed(employees); per > 0 {
			fmt.Println()
			fmt.Printf("  На сотрудника (%s чел.): %s\n", employees, cli.FormatPercent(per))
		}
	}
	fmt.Println()

	return nil
}

// parseIndicator splits "name=plan:fact". The name part is optional, so
// "100:80" is accepted too.
func parseIndicator(spec string) (name, plan, fact string, err error) {
	rest := spec
	if idx := strings.Index(spec, "="); idx >= 0 {
		name = spec[:idx]
		rest = spec[idx+1:]
	}
	parts := strings.SplitN(rest, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", "", fmt.Errorf("invalid indicator %q, want name=plan:fact", spec)
	}
	return name, parts[0], parts[1], nil
}
