package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/pr-poehali-dev/planeval/internal/model"
	"github.com/pr-poehali-dev/planeval/internal/stats"
)

func sampleRecords() []model.Record {
	final := 85.0
	return []model.Record{
		{
			ID:                   "1",
			Plan:                 200,
			Fact:                 150,
			Percentage:           75,
			AdditionalPercentage: 10,
			FinalPercentage:      &final,
			Score:                5,
			Date:                 "15.06.2025, 10:30:00",
			CreatedAt:            time.Date(2025, 6, 15, 10, 30, 0, 0, time.Local),
		},
		{
			ID:         "2",
			Plan:       100,
			Fact:       40.5,
			Percentage: 40.5,
			Score:      2,
			Date:       "14.06.2025, 09:00:00",
			CreatedAt:  time.Date(2025, 6, 14, 9, 0, 0, 0, time.Local),
		},
	}
}

func TestCSVContent(t *testing.T) {
	var buf bytes.Buffer
	if err := CSV(&buf, sampleRecords()); err != nil {
		t.Fatalf("CSV: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "\xEF\xBB\xBF") {
		t.Fatal("CSV output missing UTF-8 BOM")
	}

	lines := strings.Split(strings.TrimRight(strings.TrimPrefix(out, "\xEF\xBB\xBF"), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("CSV has %d lines, want 3", len(lines))
	}
	if lines[0] != "План,Факт,Процент выполнения,Оценка,Дата" {
		t.Fatalf("header line = %q", lines[0])
	}
	if lines[1] != `200,150,85.0%,5,"15.06.2025, 10:30:00"` {
		t.Fatalf("first row = %q", lines[1])
	}
	// Record without a final percentage falls back to the base percentage.
	if lines[2] != `100,40.50,40.5%,2,"14.06.2025, 09:00:00"` {
		t.Fatalf("second row = %q", lines[2])
	}
}

func TestCSVEmptyIsNoOp(t *testing.T) {
	var buf bytes.Buffer
	if err := CSV(&buf, nil); err != nil {
		t.Fatalf("CSV: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("empty history wrote %d bytes", buf.Len())
	}
}

func TestFilenames(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local)
	if got := CSVFilename(now); got != "история_расчетов_15.06.2025.csv" {
		t.Fatalf("CSVFilename = %q", got)
	}
	if got := PDFFilename(now); got != "история_расчетов_15.06.2025.pdf" {
		t.Fatalf("PDFFilename = %q", got)
	}
	if got := ReportFilename(now); got != "подробный_отчет_15.06.2025.pdf" {
		t.Fatalf("ReportFilename = %q", got)
	}
}

func TestPDFProducesDocument(t *testing.T) {
	var buf bytes.Buffer
	if err := PDF(&buf, sampleRecords()); err != nil {
		t.Fatalf("PDF: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatal("output does not start with a PDF header")
	}
}

func TestPDFEmptyIsNoOp(t *testing.T) {
	var buf bytes.Buffer
	if err := PDF(&buf, nil); err != nil {
		t.Fatalf("PDF: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("empty history wrote %d bytes", buf.Len())
	}
}

func TestDetailedPDFProducesDocument(t *testing.T) {
	records := sampleRecords()
	summary := stats.Compute(records)

	var buf bytes.Buffer
	if err := DetailedPDF(&buf, records, summary); err != nil {
		t.Fatalf("DetailedPDF: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatal("output does not start with a PDF header")
	}
}
