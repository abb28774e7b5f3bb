package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pr-poehali-dev/planeval/internal/export"
	"github.com/pr-poehali-dev/planeval/internal/stats"
)

var flagExportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the calculation history",
}

var exportCSVCmd = &cobra.Command{
	Use:   "csv",
	Short: "Export the history as CSV",
	RunE:  runExportCSV,
}

var exportPDFCmd = &cobra.Command{
	Use:   "pdf",
	Short: "Export the history as a PDF table",
	RunE:  runExportPDF,
}

var exportReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export a detailed PDF report with statistics",
	RunE:  runExportReport,
}

func init() {
	exportCmd.PersistentFlags().StringVarP(&flagExportOut, "out", "o", "", "Output file (default: date-stamped name in the current directory)")
	exportCmd.AddCommand(exportCSVCmd)
	exportCmd.AddCommand(exportPDFCmd)
	exportCmd.AddCommand(exportReportCmd)
	rootCmd.AddCommand(exportCmd)
}

func runExportCSV(_ *cobra.Command, _ []string) error {
	return runExport(export.CSVFilename(nowLocal()), func(f *os.File) error {
		records, closeFn, err := loadHistory()
		if err != nil {
			return err
		}
		defer closeFn()
		if len(records) == 0 {
			return errEmptyHistory
		}
		return export.CSV(f, records)
	})
}

func runExportPDF(_ *cobra.Command, _ []string) error {
	return runExport(export.PDFFilename(nowLocal()), func(f *os.File) error {
		records, closeFn, err := loadHistory()
		if err != nil {
			return err
		}
		defer closeFn()
		if len(records) == 0 {
			return errEmptyHistory
		}
		return export.PDF(f, records)
	})
}

func runExportReport(_ *cobra.Command, _ []string) error {
	return runExport(export.ReportFilename(nowLocal()), func(f *os.File) error {
		records, closeFn, err := loadHistory()
		if err != nil {
			return err
		}
		defer closeFn()
		if len(records) == 0 {
			return errEmptyHistory
		}
		return export.DetailedPDF(f, records, stats.Compute(records))
	})
}

var errEmptyHistory = fmt.Errorf("история пуста, экспортировать нечего")

func runExport(defaultName string, write func(*os.File) error) error {
	path := flagExportOut
	if path == "" {
		path = defaultName
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}

	if err := write(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}

	fmt.Printf("  Сохранено: %s\n", path)
	return nil
}
