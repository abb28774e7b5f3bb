package export

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/pr-poehali-dev/planeval/internal/model"
	"github.com/pr-poehali-dev/planeval/internal/score"
	"github.com/pr-poehali-dev/planeval/internal/stats"
)

// PDF writes the history as a one-table landscape report. An empty record
// list is a no-op.
func PDF(w io.Writer, records []model.Record) error {
	if len(records) == 0 {
		return nil
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("cp1251")
	pdf.SetTitle(tr("История расчетов"), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("История расчетов"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	writeHistoryTable(pdf, tr, records)

	return pdf.Output(w)
}

// PDFFilename returns the date-stamped default name of the table export.
func PDFFilename(now time.Time) string {
	return fmt.Sprintf("история_расчетов_%s.pdf", now.Format("02.01.2006"))
}

// DetailedPDF writes the full report: aggregate statistics, the best and
// worst results, the per-record table and a generation footer. An empty
// record list is a no-op.
func DetailedPDF(w io.Writer, records []model.Record, summary stats.Summary) error {
	if len(records) == 0 {
		return nil
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("cp1251")
	pdf.SetTitle(tr("Подробный отчет"), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("Подробный отчет по выполнению плана"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, tr("Общая статистика"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	statLine(pdf, tr, "Количество расчетов", strconv.Itoa(summary.Count))
	statLine(pdf, tr, "Средний процент", fmt.Sprintf("%.1f%%", summary.AvgPercentage))
	statLine(pdf, tr, "Максимальный процент", fmt.Sprintf("%.1f%%", summary.MaxPercentage))
	statLine(pdf, tr, "Минимальный процент", fmt.Sprintf("%.1f%%", summary.MinPercentage))
	statLine(pdf, tr, "Средняя оценка", fmt.Sprintf("%.1f", summary.AvgScore))
	pdf.Ln(4)

	if summary.Best != nil {
		recordBlock(pdf, tr, "Лучший результат", *summary.Best)
	}
	if summary.Worst != nil {
		recordBlock(pdf, tr, "Худший результат", *summary.Worst)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, tr("Все расчеты"), "", 1, "L", false, 0, "")
	writeHistoryTable(pdf, tr, records)

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 8)
	footer := fmt.Sprintf("Отчет сформирован %s", time.Now().Format(model.DisplayDateFormat))
	pdf.CellFormat(0, 6, tr(footer), "", 1, "R", false, 0, "")

	return pdf.Output(w)
}

// ReportFilename returns the date-stamped default name of the detailed report.
func ReportFilename(now time.Time) string {
	return fmt.Sprintf("подробный_отчет_%s.pdf", now.Format("02.01.2006"))
}

func writeHistoryTable(pdf *fpdf.Fpdf, tr func(string) string, records []model.Record) {
	headers := []string{"План", "Факт", "Процент", "Оценка", "Результат", "Дата"}
	widths := []float64{35, 35, 30, 20, 60, 60}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, r := range records {
		cells := []string{
			formatNumber(r.Plan),
			formatNumber(r.Fact),
			fmt.Sprintf("%.1f%%", r.EffectivePercentage()),
			strconv.Itoa(r.Score),
			score.Label(r.Score),
			r.Date,
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 7, tr(c), "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

func statLine(pdf *fpdf.Fpdf, tr func(string) string, label, value string) {
	pdf.CellFormat(60, 6, tr(label+":"), "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(value), "", 1, "L", false, 0, "")
}

func recordBlock(pdf *fpdf.Fpdf, tr func(string) string, title string, r model.Record) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, tr(title), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	line := fmt.Sprintf("%.1f%% (%s, план %s, факт %s) от %s",
		r.EffectivePercentage(), score.Label(r.Score), formatNumber(r.Plan), formatNumber(r.Fact), r.Date)
	pdf.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
	pdf.Ln(2)
}
