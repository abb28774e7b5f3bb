package history

import (
	"testing"
	"time"

	"github.com/pr-poehali-dev/planeval/internal/model"
)

func ptrF(v float64) *float64 { return &v }
func ptrI(v int) *int         { return &v }

func mkRecord(id string, score int, pct float64, created time.Time) model.Record {
	final := pct
	return model.Record{
		ID:              id,
		Percentage:      pct,
		FinalPercentage: &final,
		Score:           score,
		CreatedAt:       created,
	}
}

func TestApplyScoreFilter(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)
	records := []model.Record{
		mkRecord("a", 5, 90, base),
		mkRecord("b", 3, 60, base),
		mkRecord("c", 5, 85, base),
		mkRecord("d", 0, 5, base),
	}

	got := Apply(records, Criteria{Score: ptrI(5)})
	if len(got) != 2 {
		t.Fatalf("filtered len = %d, want 2", len(got))
	}
	if got[0].ID != "a" || got[1].ID != "c" {
		t.Fatalf("filtered ids = [%s %s], want [a c]", got[0].ID, got[1].ID)
	}
}

func TestApplyDateRangeInclusive(t *testing.T) {
	records := []model.Record{
		mkRecord("new", 5, 90, time.Date(2025, 6, 10, 23, 30, 0, 0, time.Local)),
		mkRecord("mid", 4, 70, time.Date(2025, 6, 5, 0, 5, 0, 0, time.Local)),
		mkRecord("old", 2, 40, time.Date(2025, 5, 20, 9, 0, 0, 0, time.Local)),
	}

	c := Criteria{
		DateFrom: time.Date(2025, 6, 5, 18, 0, 0, 0, time.Local),
		DateTo:   time.Date(2025, 6, 10, 1, 0, 0, 0, time.Local),
	}
	got := Apply(records, c)
	if len(got) != 2 {
		t.Fatalf("filtered len = %d, want 2 (bounds are whole-day inclusive)", len(got))
	}
	if got[0].ID != "new" || got[1].ID != "mid" {
		t.Fatalf("filtered ids = [%s %s], want [new mid]", got[0].ID, got[1].ID)
	}
}

func TestApplyPercentBoundsUseEffectivePercentage(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)

	// One record without a final percentage: the base percentage applies.
	legacy := model.Record{ID: "legacy", Percentage: 55, Score: 3, CreatedAt: base}
	boosted := model.Record{ID: "boosted", Percentage: 40, FinalPercentage: ptrF(75), Score: 4, CreatedAt: base}
	low := model.Record{ID: "low", Percentage: 20, FinalPercentage: ptrF(20), Score: 1, CreatedAt: base}

	got := Apply([]model.Record{boosted, legacy, low}, Criteria{PercentMin: ptrF(50), PercentMax: ptrF(80)})
	if len(got) != 2 {
		t.Fatalf("filtered len = %d, want 2", len(got))
	}
	if got[0].ID != "boosted" || got[1].ID != "legacy" {
		t.Fatalf("filtered ids = [%s %s], want [boosted legacy]", got[0].ID, got[1].ID)
	}
}

func TestApplyZeroFinalPercentageDoesNotFallBack(t *testing.T) {
	base := time.Now()
	rec := model.Record{ID: "z", Percentage: 90, FinalPercentage: ptrF(0), Score: 0, CreatedAt: base}

	got := Apply([]model.Record{rec}, Criteria{PercentMin: ptrF(50)})
	if len(got) != 0 {
		t.Fatal("record with final=0 matched a min-50 filter via base-percentage fallback")
	}
}

func TestApplyIdempotent(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)
	records := []model.Record{
		mkRecord("a", 5, 90, base),
		mkRecord("b", 3, 60, base),
		mkRecord("c", 1, 20, base),
	}
	c := Criteria{PercentMin: ptrF(50)}

	once := Apply(records, c)
	twice := Apply(once, c)
	if len(once) != len(twice) {
		t.Fatalf("second application changed length: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].ID != twice[i].ID {
			t.Fatalf("second application reordered records at %d", i)
		}
	}
}

func TestApplyEmptyCriteriaCopies(t *testing.T) {
	base := time.Now()
	records := []model.Record{mkRecord("a", 5, 90, base)}
	got := Apply(records, Criteria{})
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatal("empty criteria should return all records")
	}
}
