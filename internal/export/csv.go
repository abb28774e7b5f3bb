// Package export renders the calculation history into CSV and PDF files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/pr-poehali-dev/planeval/internal/model"
)

// csvHeaders are the column titles of the CSV export.
var csvHeaders = []string{"План", "Факт", "Процент выполнения", "Оценка", "Дата"}

// utf8BOM is prepended so spreadsheet applications pick up the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSV writes the records as a UTF-8 CSV with a byte-order mark. An empty
// record list writes nothing at all, not even headers.
func CSV(w io.Writer, records []model.Record) error {
	if len(records) == 0 {
		return nil
	}

	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeaders); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}
	for _, r := range records {
		row := []string{
			formatNumber(r.Plan),
			formatNumber(r.Fact),
			fmt.Sprintf("%.1f%%", r.EffectivePercentage()),
			strconv.Itoa(r.Score),
			r.Date,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// CSVFilename returns the date-stamped default export name.
func CSVFilename(now time.Time) string {
	return fmt.Sprintf("история_расчетов_%s.csv", now.Format("02.01.2006"))
}

// formatNumber drops the fractional part when the value is whole.
func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
