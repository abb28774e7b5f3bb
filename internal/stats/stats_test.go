package stats

import (
	"math"
	"testing"

	"github.com/pr-poehali-dev/planeval/internal/model"
)

func rec(id string, pct float64, sc int) model.Record {
	final := pct
	return model.Record{ID: id, Percentage: pct, FinalPercentage: &final, Score: sc}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeEmpty(t *testing.T) {
	s := Compute(nil)
	if s.Count != 0 || s.AvgPercentage != 0 || s.Trend != 0 {
		t.Fatalf("empty summary has non-zero aggregates: %+v", s)
	}
	if s.Best != nil || s.Worst != nil {
		t.Fatal("empty summary must have nil best/worst")
	}
	if s.TrendDirection() != Stable {
		t.Fatalf("empty trend direction = %s, want stable", s.TrendDirection())
	}
}

func TestComputeSingleRecord(t *testing.T) {
	s := Compute([]model.Record{rec("only", 72, 4)})
	if s.Count != 1 {
		t.Fatalf("count = %d, want 1", s.Count)
	}
	if !almostEqual(s.AvgPercentage, 72) || !almostEqual(s.MaxPercentage, 72) || !almostEqual(s.MinPercentage, 72) {
		t.Fatalf("percentage aggregates wrong: %+v", s)
	}
	if s.Best == nil || s.Worst == nil || s.Best.ID != "only" || s.Worst.ID != "only" {
		t.Fatal("single record must be both best and worst")
	}
	if s.Trend != 0 {
		t.Fatalf("trend with one record = %.1f, want 0", s.Trend)
	}
}

func TestComputeAggregates(t *testing.T) {
	records := []model.Record{
		rec("a", 90, 5),
		rec("b", 60, 3),
		rec("c", 30, 1),
	}
	s := Compute(records)
	if !almostEqual(s.AvgPercentage, 60) {
		t.Fatalf("avg = %.1f, want 60", s.AvgPercentage)
	}
	if !almostEqual(s.MaxPercentage, 90) || !almostEqual(s.MinPercentage, 30) {
		t.Fatalf("max/min = %.1f/%.1f, want 90/30", s.MaxPercentage, s.MinPercentage)
	}
	if !almostEqual(s.AvgScore, 3) || s.MaxScore != 5 || s.MinScore != 1 {
		t.Fatalf("score aggregates wrong: avg=%.1f max=%d min=%d", s.AvgScore, s.MaxScore, s.MinScore)
	}
	if s.Best.ID != "a" || s.Worst.ID != "c" {
		t.Fatalf("best/worst = %s/%s, want a/c", s.Best.ID, s.Worst.ID)
	}
}

func TestComputeTiesKeepFirstEncountered(t *testing.T) {
	records := []model.Record{
		rec("first", 80, 5),
		rec("second", 80, 5),
	}
	s := Compute(records)
	if s.Best.ID != "first" || s.Worst.ID != "first" {
		t.Fatalf("tie resolution picked %s/%s, want first/first", s.Best.ID, s.Worst.ID)
	}
}

func TestComputeTrendWindows(t *testing.T) {
	// Newest five at 80, next five at 60: trend +20, improving.
	var records []model.Record
	for i := 0; i < 5; i++ {
		records = append(records, rec("new", 80, 4))
	}
	for i := 0; i < 5; i++ {
		records = append(records, rec("old", 60, 3))
	}

	s := Compute(records)
	if !almostEqual(s.Trend, 20) {
		t.Fatalf("trend = %.1f, want 20", s.Trend)
	}
	if s.TrendDirection() != Improving {
		t.Fatalf("direction = %s, want improving", s.TrendDirection())
	}
}

func TestComputeTrendShortWindows(t *testing.T) {
	// Three records: recent window is all three, no older window left.
	s := Compute([]model.Record{rec("a", 90, 5), rec("b", 50, 2), rec("c", 40, 1)})
	if s.Trend != 0 {
		t.Fatalf("trend without an older window = %.1f, want 0", s.Trend)
	}

	// Seven records: recent five vs older two.
	records := []model.Record{
		rec("n1", 70, 4), rec("n2", 70, 4), rec("n3", 70, 4), rec("n4", 70, 4), rec("n5", 70, 4),
		rec("o1", 90, 5), rec("o2", 90, 5),
	}
	s = Compute(records)
	if !almostEqual(s.Trend, -20) {
		t.Fatalf("trend = %.1f, want -20", s.Trend)
	}
	if s.TrendDirection() != Declining {
		t.Fatalf("direction = %s, want declining", s.TrendDirection())
	}
}

func TestTrendDirectionThresholds(t *testing.T) {
	for _, tc := range []struct {
		trend float64
		want  string
	}{
		{4.9, Stable},
		{5, Stable},
		{5.1, Improving},
		{-5, Stable},
		{-5.1, Declining},
		{0, Stable},
	} {
		if got := (Summary{Trend: tc.trend}).TrendDirection(); got != tc.want {
			t.Errorf("TrendDirection(%.1f) = %s, want %s", tc.trend, got, tc.want)
		}
	}
}
